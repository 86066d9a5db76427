package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/habitta/internal/auth"
	"github.com/BruksfildServices01/habitta/internal/domain/access"
	"github.com/BruksfildServices01/habitta/internal/httperr"
	"github.com/BruksfildServices01/habitta/internal/models"
)

const (
	ContextUser   = "currentUser"
	ContextClaims = "sessionClaims"

	SessionCookie = "habitta_session"
	DashboardURL  = "/dashboard"
)

type UserLoader interface {
	GetByID(ctx context.Context, id uint) (*models.User, error)
}

// SessionToken lê o token do cookie de sessão ou do header Authorization.
func SessionToken(c *gin.Context) string {
	if cookie, err := c.Cookie(SessionCookie); err == nil && cookie != "" {
		return cookie
	}

	parts := strings.SplitN(c.GetHeader("Authorization"), " ", 2)
	if len(parts) == 2 && strings.EqualFold(parts[0], "Bearer") {
		return strings.TrimSpace(parts[1])
	}
	return ""
}

// AuthMiddleware valida a sessão e recarrega o usuário do banco a cada requisição.
func AuthMiddleware(sessions *auth.SessionManager, users UserLoader) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := SessionToken(c)
		if token == "" {
			httperr.Unauthorized(c, "missing_session", "Faça login para continuar.")
			c.Abort()
			return
		}

		claims, err := sessions.Parse(c.Request.Context(), token)
		if err != nil {
			if !errors.Is(err, auth.ErrInvalidSession) && !errors.Is(err, auth.ErrRevokedSession) {
				logrus.WithError(err).Error("session check failed")
			}
			httperr.Unauthorized(c, "invalid_session", "Sessão expirada. Faça login novamente.")
			c.Abort()
			return
		}

		user, err := users.GetByID(c.Request.Context(), claims.UserID)
		if err != nil {
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				logrus.WithError(err).Error("failed to load session user")
			}
			httperr.Unauthorized(c, "invalid_session", "Sessão expirada. Faça login novamente.")
			c.Abort()
			return
		}

		c.Set(ContextUser, user)
		c.Set(ContextClaims, claims)

		c.Next()
	}
}

func CurrentUser(c *gin.Context) *models.User {
	if v, ok := c.Get(ContextUser); ok {
		if u, ok := v.(*models.User); ok {
			return u
		}
	}
	return nil
}

func CurrentClaims(c *gin.Context) *auth.Claims {
	if v, ok := c.Get(ContextClaims); ok {
		if cl, ok := v.(*auth.Claims); ok {
			return cl
		}
	}
	return nil
}

// RequireLevel barra usuários abaixo de min e devolve para o dashboard.
func RequireLevel(min access.Level) gin.HandlerFunc {
	return func(c *gin.Context) {
		user := CurrentUser(c)
		if user == nil {
			httperr.Unauthorized(c, "missing_session", "Faça login para continuar.")
			c.Abort()
			return
		}

		if !access.Level(user.Level).AtLeast(min) {
			httperr.Forbidden(c, "forbidden", "Você não tem permissão para acessar esta página.", DashboardURL)
			return
		}

		c.Next()
	}
}
