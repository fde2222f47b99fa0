package service

import (
	"context"
	"errors"
	"io"
	"log"
	"testing"

	"db-qa-be/internal/dto"
	"db-qa-be/pkg/llm"
	"db-qa-be/pkg/qa/pipeline"
	"db-qa-be/pkg/qa/state"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type noopLogger struct{}

func (noopLogger) Debug(module, message string, details map[string]interface{}) {}
func (noopLogger) Info(module, message string, details map[string]interface{})  {}
func (noopLogger) Warn(module, message string, details map[string]interface{})  {}
func (noopLogger) Error(module, message string, details map[string]interface{}) {}
func (noopLogger) Sync() error                                                  { return nil }

type fakeProvider struct{}

func (fakeProvider) Chat(ctx context.Context, history []llm.Message, options ...llm.Option) (string, error) {
	return `{"query": "SELECT count(*) FROM orders;"}`, nil
}

func (fakeProvider) Generate(ctx context.Context, prompt string, options ...llm.Option) (string, error) {
	return "There are 42 orders.", nil
}

// fakeAdapter backs both the pipeline and the schema surface of the service.
type fakeAdapter struct {
	tables       []string
	listErr      error
	schemaErr    error
	executedSQLs []string
}

func (f *fakeAdapter) Dialect() string { return "postgresql" }

func (f *fakeAdapter) ListTables(ctx context.Context) ([]string, error) {
	return f.tables, f.listErr
}

func (f *fakeAdapter) TableInfo(ctx context.Context, tables ...string) (string, error) {
	if f.schemaErr != nil {
		return "", f.schemaErr
	}
	return "CREATE TABLE orders ()", nil
}

func (f *fakeAdapter) Execute(ctx context.Context, sql string) (string, error) {
	f.executedSQLs = append(f.executedSQLs, sql)
	return "[(42,)]", nil
}

type mapStore struct {
	checkpoints map[string]*state.Checkpoint
}

func newMapStore() *mapStore { return &mapStore{checkpoints: map[string]*state.Checkpoint{}} }

func (m *mapStore) Save(cp *state.Checkpoint) { m.checkpoints[cp.ID] = cp }
func (m *mapStore) Get(id string) (*state.Checkpoint, bool) {
	cp, ok := m.checkpoints[id]
	return cp, ok
}
func (m *mapStore) Delete(id string) { delete(m.checkpoints, id) }
func (m *mapStore) List() []*state.Checkpoint {
	var out []*state.Checkpoint
	for _, cp := range m.checkpoints {
		out = append(out, cp)
	}
	return out
}

func newTestService(adapter *fakeAdapter, defaultApproval, autoApprove bool) IQaService {
	pl := pipeline.New(fakeProvider{}, adapter, newMapStore(), pipeline.Config{
		MaxQueryResults:    10,
		AutoApproveQueries: autoApprove,
	}, log.New(io.Discard, "", 0))
	return NewQaService(pl, adapter, defaultApproval, noopLogger{})
}

func TestAskDirectMode(t *testing.T) {
	adapter := &fakeAdapter{tables: []string{"orders"}}
	svc := newTestService(adapter, false, true)

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "How many orders?"})
	require.NoError(t, err)

	assert.Equal(t, state.StatusSuccess, res.Status)
	assert.Equal(t, "How many orders?", res.Question)
	assert.Equal(t, "SELECT count(*) FROM orders;", res.Query)
	assert.Equal(t, "There are 42 orders.", res.Answer)
	assert.Empty(t, res.CheckpointId)
}

func TestAskUsesInterventionDefaultWhenFlagOmitted(t *testing.T) {
	adapter := &fakeAdapter{tables: []string{"orders"}}
	svc := newTestService(adapter, true, false)

	res, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "How many orders?"})
	require.NoError(t, err)

	assert.Equal(t, state.StatusAwaitingApproval, res.Status)
	assert.NotEmpty(t, res.CheckpointId)
	assert.Empty(t, adapter.executedSQLs, "query must not run before approval")
}

func TestAskRequestFlagOverridesDefault(t *testing.T) {
	adapter := &fakeAdapter{tables: []string{"orders"}}
	svc := newTestService(adapter, true, false)

	noApproval := false
	res, err := svc.Ask(context.Background(), &dto.AskRequest{
		Question:         "How many orders?",
		UseHumanApproval: &noApproval,
	})
	require.NoError(t, err)

	assert.Equal(t, state.StatusSuccess, res.Status)
	assert.Len(t, adapter.executedSQLs, 1)
}

func TestDecideApproveAndListPending(t *testing.T) {
	adapter := &fakeAdapter{tables: []string{"orders"}}
	svc := newTestService(adapter, true, false)

	parked, err := svc.Ask(context.Background(), &dto.AskRequest{Question: "How many orders?"})
	require.NoError(t, err)

	pending, err := svc.PendingApprovals(context.Background())
	require.NoError(t, err)
	require.Len(t, pending, 1)
	assert.Equal(t, parked.CheckpointId, pending[0].Id)
	assert.Equal(t, "How many orders?", pending[0].Question)

	res, err := svc.Decide(context.Background(), parked.CheckpointId, true)
	require.NoError(t, err)
	assert.Equal(t, state.StatusSuccess, res.Status)
	assert.Equal(t, "There are 42 orders.", res.Answer)

	pending, err = svc.PendingApprovals(context.Background())
	require.NoError(t, err)
	assert.Empty(t, pending)
}

func TestDecideUnknownCheckpoint(t *testing.T) {
	adapter := &fakeAdapter{tables: []string{"orders"}}
	svc := newTestService(adapter, false, true)

	_, err := svc.Decide(context.Background(), "missing", true)
	assert.ErrorIs(t, err, pipeline.ErrCheckpointNotFound)
}

func TestGetTables(t *testing.T) {
	adapter := &fakeAdapter{tables: []string{"orders", "users"}}
	svc := newTestService(adapter, false, true)

	res, err := svc.GetTables(context.Background())
	require.NoError(t, err)
	assert.Equal(t, []string{"orders", "users"}, res.Tables)
}

func TestGetTableSchemaPropagatesError(t *testing.T) {
	adapter := &fakeAdapter{schemaErr: errors.New("boom")}
	svc := newTestService(adapter, false, true)

	_, err := svc.GetTableSchema(context.Background(), "orders")
	assert.Error(t, err)
}

func TestHealthDegradesInsteadOfFailing(t *testing.T) {
	adapter := &fakeAdapter{listErr: errors.New("connection refused")}
	svc := newTestService(adapter, false, true)

	res := svc.Health(context.Background())
	assert.Equal(t, "unhealthy", res.Status)
	assert.False(t, res.DatabaseConnected)
	assert.NotNil(t, res.AvailableTables, "tables must serialize as [] not null")
	assert.Empty(t, res.AvailableTables)
}

func TestHealthHealthy(t *testing.T) {
	adapter := &fakeAdapter{tables: []string{"orders"}}
	svc := newTestService(adapter, false, true)

	res := svc.Health(context.Background())
	assert.Equal(t, "healthy", res.Status)
	assert.True(t, res.DatabaseConnected)
	assert.Equal(t, []string{"orders"}, res.AvailableTables)
}
