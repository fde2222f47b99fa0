package service

import (
	"context"
	"sort"

	"db-qa-be/internal/dto"
	"db-qa-be/internal/pkg/logger"
	"db-qa-be/pkg/qa/pipeline"
	"db-qa-be/pkg/qa/state"
)

// DatabaseAdapter is the schema surface the service reads for health,
// table listing, and schema lookups.
type DatabaseAdapter interface {
	ListTables(ctx context.Context) ([]string, error)
	TableInfo(ctx context.Context, tables ...string) (string, error)
}

// IQaService defines the question-answering service interface
type IQaService interface {
	Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error)
	Decide(ctx context.Context, checkpointId string, approve bool) (*dto.AskResponse, error)
	PendingApprovals(ctx context.Context) ([]*dto.PendingApprovalResponse, error)
	GetTables(ctx context.Context) (*dto.TablesResponse, error)
	GetTableSchema(ctx context.Context, table string) (*dto.SchemaResponse, error)
	Health(ctx context.Context) *dto.HealthResponse
}

type qaService struct {
	pipeline        *pipeline.Pipeline
	adapter         DatabaseAdapter
	defaultApproval bool
	sysLogger       logger.ILogger
}

func NewQaService(
	pl *pipeline.Pipeline,
	adapter DatabaseAdapter,
	defaultApproval bool,
	sysLogger logger.ILogger,
) IQaService {
	return &qaService{
		pipeline:        pl,
		adapter:         adapter,
		defaultApproval: defaultApproval,
		sysLogger:       sysLogger,
	}
}

func (s *qaService) Ask(ctx context.Context, request *dto.AskRequest) (*dto.AskResponse, error) {
	useApproval := s.defaultApproval
	if request.UseHumanApproval != nil {
		useApproval = *request.UseHumanApproval
	}

	s.sysLogger.Info("qa", "processing question", map[string]interface{}{
		"use_human_approval": useApproval,
	})

	outcome, err := s.pipeline.Ask(ctx, request.Question, useApproval, request.ConversationId)
	if err != nil {
		return nil, err
	}

	return outcomeToResponse(outcome), nil
}

func (s *qaService) Decide(ctx context.Context, checkpointId string, approve bool) (*dto.AskResponse, error) {
	s.sysLogger.Info("qa", "approval decision received", map[string]interface{}{
		"checkpoint_id": checkpointId,
		"approve":       approve,
	})

	outcome, err := s.pipeline.Resume(ctx, checkpointId, approve)
	if err != nil {
		return nil, err
	}

	return outcomeToResponse(outcome), nil
}

func (s *qaService) PendingApprovals(ctx context.Context) ([]*dto.PendingApprovalResponse, error) {
	checkpoints := s.pipeline.Pending()

	pending := make([]*dto.PendingApprovalResponse, 0, len(checkpoints))
	for _, cp := range checkpoints {
		pending = append(pending, &dto.PendingApprovalResponse{
			Id:        cp.ID,
			Question:  cp.State.Question,
			Query:     cp.State.Query,
			CreatedAt: cp.CreatedAt,
		})
	}
	sort.Slice(pending, func(i, j int) bool {
		return pending[i].CreatedAt.Before(pending[j].CreatedAt)
	})
	return pending, nil
}

func (s *qaService) GetTables(ctx context.Context) (*dto.TablesResponse, error) {
	tables, err := s.adapter.ListTables(ctx)
	if err != nil {
		return nil, err
	}
	return &dto.TablesResponse{Tables: tables}, nil
}

func (s *qaService) GetTableSchema(ctx context.Context, table string) (*dto.SchemaResponse, error) {
	schema, err := s.adapter.TableInfo(ctx, table)
	if err != nil {
		return nil, err
	}
	return &dto.SchemaResponse{Table: table, Schema: schema}, nil
}

// Health never fails: adapter trouble degrades the report instead.
func (s *qaService) Health(ctx context.Context) *dto.HealthResponse {
	tables, err := s.adapter.ListTables(ctx)
	if err != nil {
		s.sysLogger.Error("qa", "health check failed", map[string]interface{}{
			"error": err.Error(),
		})
		return &dto.HealthResponse{
			Status:            "unhealthy",
			DatabaseConnected: false,
			AvailableTables:   []string{},
		}
	}

	return &dto.HealthResponse{
		Status:            "healthy",
		DatabaseConnected: true,
		AvailableTables:   tables,
	}
}

func outcomeToResponse(outcome *pipeline.Outcome) *dto.AskResponse {
	resp := &dto.AskResponse{
		Question: outcome.State.Question,
		Query:    outcome.State.Query,
		Result:   outcome.State.Result,
		Answer:   outcome.State.Answer,
		Status:   outcome.Status,
	}
	if outcome.Status == state.StatusAwaitingApproval {
		resp.CheckpointId = outcome.CheckpointID
	}
	return resp
}
