package pipeline

import (
	"context"
	"errors"
	"log"
	"time"

	"db-qa-be/pkg/llm"
	"db-qa-be/pkg/qa/answer"
	"db-qa-be/pkg/qa/generator"
	"db-qa-be/pkg/qa/state"

	"github.com/google/uuid"
)

// ApprovalPlaceholder is the fixed answer returned when a generated query
// is parked for human review.
const ApprovalPlaceholder = "Query generated but requires human approval to execute."

// ErrCheckpointNotFound marks resume attempts against an unknown or expired
// checkpoint.
var ErrCheckpointNotFound = errors.New("checkpoint not found")

// DatabaseAdapter is the slice of the SQL adapter the pipeline needs.
type DatabaseAdapter interface {
	Dialect() string
	TableInfo(ctx context.Context, tables ...string) (string, error)
	Execute(ctx context.Context, sql string) (string, error)
}

// CheckpointStore persists awaiting-approval state between the generation
// and execution steps.
type CheckpointStore interface {
	Save(cp *state.Checkpoint)
	Get(id string) (*state.Checkpoint, bool)
	Delete(id string)
	List() []*state.Checkpoint
}

type Config struct {
	MaxQueryResults    int
	AutoApproveQueries bool
}

// Outcome is the terminal pipeline result handed back to the caller.
type Outcome struct {
	State        state.State
	Status       string
	CheckpointID string // set only while awaiting approval
}

// Pipeline sequences generation, execution, and synthesis. Steps within a
// request run strictly sequentially; concurrency across requests is left to
// the adapter and provider clients.
type Pipeline struct {
	generator   *generator.Generator
	synthesizer *answer.Synthesizer
	adapter     DatabaseAdapter
	checkpoints CheckpointStore
	cfg         Config
	logger      *log.Logger
}

func New(
	provider llm.LLMProvider,
	adapter DatabaseAdapter,
	checkpoints CheckpointStore,
	cfg Config,
	logger *log.Logger,
) *Pipeline {
	if cfg.MaxQueryResults <= 0 {
		cfg.MaxQueryResults = 10
	}
	return &Pipeline{
		generator:   generator.NewGenerator(provider, logger),
		synthesizer: answer.NewSynthesizer(provider, logger),
		adapter:     adapter,
		checkpoints: checkpoints,
		cfg:         cfg,
		logger:      logger,
	}
}

// Ask runs one question through the pipeline. With useApproval the run
// pauses after generation: auto-approve resumes immediately, otherwise the
// state is checkpointed and the caller gets the placeholder answer plus the
// checkpoint id for a later Resume. conversationID, when supplied, becomes
// the checkpoint id so a conversation keeps a stable review key.
func (p *Pipeline) Ask(ctx context.Context, question string, useApproval bool, conversationID string) (*Outcome, error) {
	st, err := p.generate(ctx, question)
	if err != nil {
		return nil, err
	}

	if !useApproval {
		return p.complete(ctx, st)
	}

	checkpointID := conversationID
	if checkpointID == "" {
		checkpointID = uuid.NewString()
	}
	p.checkpoints.Save(&state.Checkpoint{
		ID:        checkpointID,
		State:     st,
		CreatedAt: time.Now(),
	})
	p.logger.Printf("[PIPELINE] Checkpoint saved: %s", checkpointID)

	if p.cfg.AutoApproveQueries {
		return p.Resume(ctx, checkpointID, true)
	}

	st.Answer = ApprovalPlaceholder
	return &Outcome{
		State:        st,
		Status:       state.StatusAwaitingApproval,
		CheckpointID: checkpointID,
	}, nil
}

// Resume re-enters a stored checkpoint with a decision. Approval completes
// execution and synthesis; denial discards the query. The checkpoint is
// consumed either way.
func (p *Pipeline) Resume(ctx context.Context, checkpointID string, approve bool) (*Outcome, error) {
	cp, found := p.checkpoints.Get(checkpointID)
	if !found {
		return nil, ErrCheckpointNotFound
	}
	p.checkpoints.Delete(checkpointID)

	if !approve {
		p.logger.Printf("[PIPELINE] Checkpoint denied: %s", checkpointID)
		st := cp.State
		st.Answer = "Query execution was denied by the reviewer."
		return &Outcome{State: st, Status: state.StatusDenied}, nil
	}

	p.logger.Printf("[PIPELINE] Checkpoint approved, resuming: %s", checkpointID)
	return p.complete(ctx, cp.State)
}

// Pending lists checkpoints still awaiting a decision.
func (p *Pipeline) Pending() []*state.Checkpoint {
	return p.checkpoints.List()
}

func (p *Pipeline) generate(ctx context.Context, question string) (state.State, error) {
	st := state.State{Question: question}

	tableInfo, err := p.adapter.TableInfo(ctx)
	if err != nil {
		return st, err
	}

	query, err := p.generator.Generate(ctx, question, p.adapter.Dialect(), tableInfo, p.cfg.MaxQueryResults)
	if err != nil {
		return st, err
	}
	st.Query = query
	return st, nil
}

func (p *Pipeline) complete(ctx context.Context, st state.State) (*Outcome, error) {
	result, err := p.adapter.Execute(ctx, st.Query)
	if err != nil {
		return nil, err
	}
	st.Result = result

	ans, err := p.synthesizer.Synthesize(ctx, st.Question, st.Query, st.Result)
	if err != nil {
		return nil, err
	}
	st.Answer = ans

	return &Outcome{State: st, Status: state.StatusSuccess}, nil
}
