package cache

import (
	"context"
	"fmt"
	"time"

	"github.com/sirupsen/logrus"
)

// AvatarCache guarda o caminho do avatar por usuário.
// Toda escrita de perfil chama Invalidate.
type AvatarCache struct {
	client *Client
	ttl    time.Duration
}

func NewAvatarCache(client *Client, ttl time.Duration) *AvatarCache {
	return &AvatarCache{client: client, ttl: ttl}
}

func avatarKey(userID uint) string {
	return fmt.Sprintf("habitta:avatar:%d", userID)
}

func (a *AvatarCache) Get(ctx context.Context, userID uint) (string, bool) {
	val, ok, err := a.client.Get(ctx, avatarKey(userID))
	if err != nil {
		logrus.WithError(err).Warn("avatar cache get failed")
		return "", false
	}
	return val, ok
}

func (a *AvatarCache) Set(ctx context.Context, userID uint, path string) {
	if err := a.client.Set(ctx, avatarKey(userID), path, a.ttl); err != nil {
		logrus.WithError(err).Warn("avatar cache set failed")
	}
}

func (a *AvatarCache) Invalidate(ctx context.Context, userID uint) {
	if err := a.client.Delete(ctx, avatarKey(userID)); err != nil {
		logrus.WithError(err).Warn("avatar cache invalidate failed")
	}
}
