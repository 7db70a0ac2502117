package redisstore

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-jobboard-gateway/internal/domain"

	"github.com/redis/go-redis/v9"
)

const sessionKeyPrefix = "session:"

// sessionStore keeps each session as a single JSON value so the token
// triplet is replaced in one SET and can never be read half-written.
type sessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewSessionStore builds a SessionStore over the given Redis client. ttl
// should match the refresh token lifetime; a session outliving its refresh
// token is useless anyway.
func NewSessionStore(client *redis.Client, ttl time.Duration) domain.SessionStore {
	return &sessionStore{client: client, ttl: ttl}
}

func sessionKey(id string) string {
	return sessionKeyPrefix + id
}

func (s *sessionStore) Save(ctx context.Context, session *domain.Session) error {
	if session == nil || session.ID == "" {
		return fmt.Errorf("redisstore: session must have an ID")
	}
	payload, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("redisstore: marshal session: %w", err)
	}
	if err := s.client.Set(ctx, sessionKey(session.ID), payload, s.ttl).Err(); err != nil {
		return fmt.Errorf("redisstore: save session: %w", err)
	}
	return nil
}

func (s *sessionStore) Get(ctx context.Context, sessionID string) (*domain.Session, error) {
	payload, err := s.client.Get(ctx, sessionKey(sessionID)).Bytes()
	if err == redis.Nil {
		return nil, domain.ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("redisstore: get session: %w", err)
	}
	var session domain.Session
	if err := json.Unmarshal(payload, &session); err != nil {
		return nil, fmt.Errorf("redisstore: unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *sessionStore) Delete(ctx context.Context, sessionID string) error {
	// DEL on a missing key is a no-op, which is exactly the idempotence
	// logout needs.
	if err := s.client.Del(ctx, sessionKey(sessionID)).Err(); err != nil {
		return fmt.Errorf("redisstore: delete session: %w", err)
	}
	return nil
}
