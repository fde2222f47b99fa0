package dto

import "time"

type AskRequest struct {
	Question string `json:"question" validate:"required"`
	// Overrides the HUMAN_INTERVENTION default when set
	UseHumanApproval *bool `json:"use_human_approval,omitempty"`
	// Stable checkpoint key for approval mode; generated when omitted
	ConversationId string `json:"conversation_id,omitempty"`
}

type AskResponse struct {
	Question     string `json:"question"`
	Query        string `json:"query"`
	Result       string `json:"result"`
	Answer       string `json:"answer"`
	Status       string `json:"status"`
	CheckpointId string `json:"checkpoint_id,omitempty"`
}

type HealthResponse struct {
	Status            string   `json:"status"`
	DatabaseConnected bool     `json:"database_connected"`
	AvailableTables   []string `json:"available_tables"`
}

type TablesResponse struct {
	Tables []string `json:"tables"`
}

type SchemaResponse struct {
	Table  string `json:"table"`
	Schema string `json:"schema"`
}

type ApprovalDecisionRequest struct {
	Approve *bool `json:"approve" validate:"required"`
}

type PendingApprovalResponse struct {
	Id        string    `json:"id"`
	Question  string    `json:"question"`
	Query     string    `json:"query"`
	CreatedAt time.Time `json:"created_at"`
}
