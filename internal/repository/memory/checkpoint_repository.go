package memory

import (
	"time"

	"db-qa-be/pkg/qa/state"

	"github.com/patrickmn/go-cache"
)

// CheckpointRepository holds awaiting-approval pipeline state in process
// memory. Entries expire so an abandoned review cannot pin state forever.
type CheckpointRepository struct {
	cache *cache.Cache
}

func NewCheckpointRepository() *CheckpointRepository {
	// Checkpoints live one hour; expired entries are purged every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &CheckpointRepository{
		cache: c,
	}
}

func (r *CheckpointRepository) Save(cp *state.Checkpoint) {
	r.cache.Set(cp.ID, cp, cache.DefaultExpiration)
}

func (r *CheckpointRepository) Get(id string) (*state.Checkpoint, bool) {
	if x, found := r.cache.Get(id); found {
		return x.(*state.Checkpoint), true
	}
	return nil, false
}

func (r *CheckpointRepository) Delete(id string) {
	r.cache.Delete(id)
}

func (r *CheckpointRepository) List() []*state.Checkpoint {
	items := r.cache.Items()
	checkpoints := make([]*state.Checkpoint, 0, len(items))
	for _, item := range items {
		checkpoints = append(checkpoints, item.Object.(*state.Checkpoint))
	}
	return checkpoints
}
