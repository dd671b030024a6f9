package memory

import (
	"context"
	"time"

	"github.com/patrickmn/go-cache"

	"aurora-fiscalizacao-be/internal/entity"
)

type SessionRepository struct {
	cache *cache.Cache
}

// NewSessionRepository creates an in-process session store. Sessions expire
// after ttl of inactivity, matching the conversational timeout: a citizen who
// goes silent restarts from the main menu.
func NewSessionRepository(ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &SessionRepository{
		cache: cache.New(ttl, 10*time.Minute),
	}
}

func (r *SessionRepository) Get(_ context.Context, sender string) (*entity.Session, error) {
	if x, found := r.cache.Get(sender); found {
		return x.(*entity.Session), nil
	}
	return nil, nil
}

func (r *SessionRepository) Save(_ context.Context, sender string, session *entity.Session) error {
	r.cache.Set(sender, session, cache.DefaultExpiration)
	return nil
}

func (r *SessionRepository) Clear(_ context.Context, sender string) error {
	r.cache.Delete(sender)
	return nil
}
