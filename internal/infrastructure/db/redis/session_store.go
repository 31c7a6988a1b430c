package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/kolecta/collection-system/internal/core/domain"
)

// SessionStore keeps Principals in Redis, one JSON value per token.
// Key format: session:<token>
//
// The whole Principal is written as a single value so a reader can never
// observe a token without its accompanying role, and every write is verified
// by read-back: an unconfirmed write surfaces domain.ErrPersistence so the
// login flow never proceeds on a torn session.
type SessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore wraps the given Redis client. ttl bounds the session
// lifetime and should match the token lifetime.
func NewSessionStore(client *redis.Client, ttl time.Duration) *SessionStore {
	if ttl <= 0 {
		ttl = 24 * time.Hour
	}
	return &SessionStore{client: client, ttl: ttl}
}

func (s *SessionStore) Save(ctx context.Context, p domain.Principal) error {
	payload, err := json.Marshal(p)
	if err != nil {
		return fmt.Errorf("encode session: %w", err)
	}

	key := s.key(p.Token)
	if err := s.client.Set(ctx, key, payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("%w: %v", domain.ErrPersistence, err)
	}

	// Read-back verification.
	stored, err := s.client.Get(ctx, key).Bytes()
	if err != nil || string(stored) != string(payload) {
		_ = s.client.Del(ctx, key).Err()
		return domain.ErrPersistence
	}
	return nil
}

func (s *SessionStore) Read(ctx context.Context, token string) (*domain.Principal, error) {
	payload, err := s.client.Get(ctx, s.key(token)).Bytes()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, domain.ErrSessionAbsent
		}
		return nil, fmt.Errorf("read session: %w", err)
	}

	var p domain.Principal
	if err := json.Unmarshal(payload, &p); err != nil {
		// Corrupted value: clear it rather than hand back a torn principal.
		_ = s.client.Del(ctx, s.key(token)).Err()
		return nil, domain.ErrSessionAbsent
	}
	return &p, nil
}

func (s *SessionStore) Clear(ctx context.Context, token string) error {
	return s.client.Del(ctx, s.key(token)).Err()
}

func (s *SessionStore) key(token string) string {
	return "session:" + token
}
