package avatar

import (
	"bytes"
	"context"
	"fmt"
	"io"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/BruksfildServices01/habitta/internal/storage"
)

// Imagem servida quando o usuário não tem avatar.
const DefaultPath = "assets/img/undraw_profile.svg"

type UserStore interface {
	AvatarKey(ctx context.Context, userID uint) (*string, error)
	SetAvatarKey(ctx context.Context, userID uint, key string) error
}

type Cache interface {
	Get(ctx context.Context, userID uint) (string, bool)
	Set(ctx context.Context, userID uint, url string)
	Invalidate(ctx context.Context, userID uint)
}

// NoCache é usado quando o redis não está configurado.
type NoCache struct{}

func (NoCache) Get(context.Context, uint) (string, bool) { return "", false }
func (NoCache) Set(context.Context, uint, string)        {}
func (NoCache) Invalidate(context.Context, uint)         {}

type Service struct {
	users   UserStore
	storage storage.Driver
	cache   Cache
}

func NewService(users UserStore, driver storage.Driver, cache Cache) *Service {
	if cache == nil {
		cache = NoCache{}
	}
	return &Service{users: users, storage: driver, cache: cache}
}

// Key segue o padrão avatars/user_<id>_<versão>.webp; a versão muda a cada troca.
func Key(userID uint) string {
	return fmt.Sprintf("avatars/user_%d_%s.webp", userID, uuid.NewString()[:8])
}

// URL devolve o endereço público do avatar ou o padrão.
func (s *Service) URL(ctx context.Context, userID uint) (string, error) {
	if url, ok := s.cache.Get(ctx, userID); ok {
		return url, nil
	}

	key, err := s.users.AvatarKey(ctx, userID)
	if err != nil {
		return "", err
	}

	url := DefaultPath
	if key != nil && *key != "" {
		url = s.storage.PublicURL(*key)
	}

	s.cache.Set(ctx, userID, url)
	return url, nil
}

// Replace grava o novo avatar e só então remove o anterior.
func (s *Service) Replace(ctx context.Context, userID uint, upload io.Reader) (string, error) {
	data, err := Normalize(upload)
	if err != nil {
		return "", err
	}

	previous, err := s.users.AvatarKey(ctx, userID)
	if err != nil {
		return "", err
	}

	key := Key(userID)
	if err := s.storage.Put(ctx, key, bytes.NewReader(data), ContentType); err != nil {
		return "", err
	}

	if err := s.users.SetAvatarKey(ctx, userID, key); err != nil {
		_ = s.storage.Delete(ctx, key)
		return "", err
	}
	s.cache.Invalidate(ctx, userID)

	if previous != nil && *previous != "" && *previous != key {
		if err := s.storage.Delete(ctx, *previous); err != nil {
			logrus.WithError(err).
				WithField("key", *previous).
				Warn("failed to delete previous avatar")
		}
	}

	return s.storage.PublicURL(key), nil
}

// Forget invalida o cache após qualquer alteração de perfil.
func (s *Service) Forget(ctx context.Context, userID uint) {
	s.cache.Invalidate(ctx, userID)
}
