package redisrepo

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"aurora-fiscalizacao-be/internal/entity"
)

const keyPrefix = "dialogue:session:"

// SessionRepository stores dialogue sessions in Redis so the bot can resume
// conversations after a restart and run more than one instance.
type SessionRepository struct {
	client *redis.Client
	ttl    time.Duration
}

func NewSessionRepository(client *redis.Client, ttl time.Duration) *SessionRepository {
	if ttl <= 0 {
		ttl = 1 * time.Hour
	}
	return &SessionRepository{client: client, ttl: ttl}
}

func (r *SessionRepository) Get(ctx context.Context, sender string) (*entity.Session, error) {
	raw, err := r.client.Get(ctx, keyPrefix+sender).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("redis get session: %w", err)
	}

	var session entity.Session
	if err := json.Unmarshal(raw, &session); err != nil {
		return nil, fmt.Errorf("decode session: %w", err)
	}
	return &session, nil
}

func (r *SessionRepository) Save(ctx context.Context, sender string, session *entity.Session) error {
	raw, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}
	if err := r.client.Set(ctx, keyPrefix+sender, raw, r.ttl).Err(); err != nil {
		return fmt.Errorf("redis set session: %w", err)
	}
	return nil
}

func (r *SessionRepository) Clear(ctx context.Context, sender string) error {
	if err := r.client.Del(ctx, keyPrefix+sender).Err(); err != nil {
		return fmt.Errorf("redis delete session: %w", err)
	}
	return nil
}
