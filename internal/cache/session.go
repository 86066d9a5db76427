package cache

import (
	"context"
	"time"
)

// SessionStore implementa auth.Revoker sobre o redis.
type SessionStore struct {
	client *Client
}

func NewSessionStore(client *Client) *SessionStore {
	return &SessionStore{client: client}
}

func revokedKey(jti string) string {
	return "habitta:session:revoked:" + jti
}

func (s *SessionStore) Revoke(ctx context.Context, jti string, ttl time.Duration) error {
	return s.client.Set(ctx, revokedKey(jti), "1", ttl)
}

func (s *SessionStore) IsRevoked(ctx context.Context, jti string) (bool, error) {
	return s.client.Exists(ctx, revokedKey(jti))
}
