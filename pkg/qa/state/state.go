package state

import "time"

// State carries one question through the pipeline. Fields fill in
// left-to-right as the steps run and are never mutated after the owning
// step completes.
type State struct {
	Question string `json:"question"`
	Query    string `json:"query"`
	Result   string `json:"result"`
	Answer   string `json:"answer"`
}

// Terminal statuses reported to the caller
const (
	StatusSuccess          = "success"
	StatusAwaitingApproval = "awaiting_approval"
	StatusDenied           = "denied"
)

// Checkpoint is a snapshot of pipeline state taken immediately before the
// execution step, held until a resume decision arrives or it expires.
type Checkpoint struct {
	ID        string    `json:"id"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}
