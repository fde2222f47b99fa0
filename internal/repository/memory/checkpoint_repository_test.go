package memory

import (
	"testing"
	"time"

	"db-qa-be/pkg/qa/state"
)

func newCheckpoint(id, question string) *state.Checkpoint {
	return &state.Checkpoint{
		ID: id,
		State: state.State{
			Question: question,
			Query:    "SELECT 1",
		},
		CreatedAt: time.Now(),
	}
}

func TestSaveAndGet(t *testing.T) {
	repo := NewCheckpointRepository()
	repo.Save(newCheckpoint("cp-1", "how many orders?"))

	got, found := repo.Get("cp-1")
	if !found {
		t.Fatal("saved checkpoint not found")
	}
	if got.State.Question != "how many orders?" {
		t.Errorf("Question = %q", got.State.Question)
	}
}

func TestGetMissing(t *testing.T) {
	repo := NewCheckpointRepository()

	if _, found := repo.Get("nope"); found {
		t.Error("Get() reported a checkpoint that was never saved")
	}
}

func TestSaveOverwritesSameID(t *testing.T) {
	repo := NewCheckpointRepository()
	repo.Save(newCheckpoint("cp-1", "first"))
	repo.Save(newCheckpoint("cp-1", "second"))

	got, found := repo.Get("cp-1")
	if !found {
		t.Fatal("checkpoint not found")
	}
	if got.State.Question != "second" {
		t.Errorf("Question = %q, want second", got.State.Question)
	}
	if len(repo.List()) != 1 {
		t.Errorf("List() = %d entries, want 1", len(repo.List()))
	}
}

func TestDelete(t *testing.T) {
	repo := NewCheckpointRepository()
	repo.Save(newCheckpoint("cp-1", "q"))
	repo.Delete("cp-1")

	if _, found := repo.Get("cp-1"); found {
		t.Error("checkpoint survived Delete()")
	}
}

func TestList(t *testing.T) {
	repo := NewCheckpointRepository()
	repo.Save(newCheckpoint("cp-1", "a"))
	repo.Save(newCheckpoint("cp-2", "b"))

	list := repo.List()
	if len(list) != 2 {
		t.Fatalf("List() = %d entries, want 2", len(list))
	}
	seen := map[string]bool{}
	for _, cp := range list {
		seen[cp.ID] = true
	}
	if !seen["cp-1"] || !seen["cp-2"] {
		t.Errorf("List() ids = %v", seen)
	}
}
