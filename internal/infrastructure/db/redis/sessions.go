package redis

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/fluxt/fluxt-api/internal/core/domain"
)

const (
	// sessionTTL bounds server-side state for browser-session logins; the
	// cookie itself is session-scoped.
	sessionTTL = 24 * time.Hour
	// rememberTTL applies when the client asked to stay logged in.
	rememberTTL = 30 * 24 * time.Hour
)

// SessionStore keeps login markers in Redis under session:<sid>.
type SessionStore struct {
	client *redis.Client
}

func NewSessionStore(client *redis.Client) *SessionStore {
	return &SessionStore{client: client}
}

// Get returns the marker for sid, or (nil, nil) when none exists.
func (s *SessionStore) Get(ctx context.Context, sid string) (*domain.SessionMarker, error) {
	raw, err := s.client.Get(ctx, s.key(sid)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return nil, nil
		}
		return nil, fmt.Errorf("session get: %w", err)
	}

	var marker domain.SessionMarker
	if err := json.Unmarshal([]byte(raw), &marker); err != nil {
		// An unreadable marker is treated as absent rather than fatal.
		return nil, nil
	}
	return &marker, nil
}

// Put writes the marker for sid, replacing any previous one.
func (s *SessionStore) Put(ctx context.Context, sid string, marker domain.SessionMarker, remember bool) error {
	raw, err := json.Marshal(marker)
	if err != nil {
		return fmt.Errorf("session encode: %w", err)
	}

	ttl := sessionTTL
	if remember {
		ttl = rememberTTL
	}
	if err := s.client.Set(ctx, s.key(sid), raw, ttl).Err(); err != nil {
		return fmt.Errorf("session put: %w", err)
	}
	return nil
}

// Delete drops the marker for sid. Deleting a missing session is a no-op.
func (s *SessionStore) Delete(ctx context.Context, sid string) error {
	if err := s.client.Del(ctx, s.key(sid)).Err(); err != nil {
		return fmt.Errorf("session delete: %w", err)
	}
	return nil
}

func (s *SessionStore) key(sid string) string {
	return "session:" + sid
}
