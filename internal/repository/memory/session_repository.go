package memory

import (
	"time"

	"adwise-be/pkg/store"

	"github.com/patrickmn/go-cache"
)

// SessionRepository keeps wizard states for thin clients that only send a
// session id. Clients that pass explicit state never touch it.
type SessionRepository struct {
	cache *cache.Cache
}

func NewSessionRepository() *SessionRepository {
	// Create a cache with a default expiration time of 1 hour, and which
	// purges expired items every 10 minutes
	c := cache.New(1*time.Hour, 10*time.Minute)
	return &SessionRepository{
		cache: c,
	}
}

func (r *SessionRepository) Save(sessionID string, state store.WizardState) {
	r.cache.Set(sessionID, state, cache.DefaultExpiration)
}

func (r *SessionRepository) Get(sessionID string) (store.WizardState, bool) {
	if x, found := r.cache.Get(sessionID); found {
		return x.(store.WizardState), true
	}
	return store.WizardState{}, false
}

func (r *SessionRepository) Delete(sessionID string) {
	r.cache.Delete(sessionID)
}
