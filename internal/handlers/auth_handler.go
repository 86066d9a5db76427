package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/habitta/internal/audit"
	"github.com/BruksfildServices01/habitta/internal/auth"
	"github.com/BruksfildServices01/habitta/internal/config"
	"github.com/BruksfildServices01/habitta/internal/domain/access"
	"github.com/BruksfildServices01/habitta/internal/httperr"
	"github.com/BruksfildServices01/habitta/internal/httpresp"
	"github.com/BruksfildServices01/habitta/internal/infra/repository"
	"github.com/BruksfildServices01/habitta/internal/locale"
	"github.com/BruksfildServices01/habitta/internal/mailer"
	"github.com/BruksfildServices01/habitta/internal/middleware"
	"github.com/BruksfildServices01/habitta/internal/models"
	"github.com/BruksfildServices01/habitta/internal/validators"
)

const loginURL = "/login"

type AuthHandler struct {
	users    *repository.UserGormRepository
	sessions *auth.SessionManager
	mailer   mailer.Sender
	audit    *audit.Dispatcher
	config   *config.Config
}

func NewAuthHandler(
	users *repository.UserGormRepository,
	sessions *auth.SessionManager,
	mail mailer.Sender,
	dispatcher *audit.Dispatcher,
	cfg *config.Config,
) *AuthHandler {
	return &AuthHandler{
		users:    users,
		sessions: sessions,
		mailer:   mail,
		audit:    dispatcher,
		config:   cfg,
	}
}

// --------- Requests ---------

type RegisterRequest struct {
	Name            string `json:"nome" form:"nome" binding:"required"`
	LastName        string `json:"sobrenome" form:"sobrenome"`
	Email           string `json:"email" form:"email" binding:"required"`
	CPF             string `json:"cpf" form:"cpf" binding:"required"`
	Password        string `json:"senha" form:"senha" binding:"required"`
	ConfirmPassword string `json:"confirmar_senha" form:"confirmar_senha"`
}

type LoginRequest struct {
	CPF      string `json:"cpf" form:"cpf" binding:"required"`
	Password string `json:"senha" form:"senha" binding:"required"`
	Remember bool   `json:"lembrar" form:"lembrar"`
}

type ForgotPasswordRequest struct {
	Email string `json:"email" form:"email" binding:"required"`
}

type ResetPasswordRequest struct {
	Password        string `json:"senha" form:"senha" binding:"required"`
	ConfirmPassword string `json:"confirmar_senha" form:"confirmar_senha"`
}

// --------- Helpers ---------

func validatePassword(password, confirm string) error {
	if password != confirm {
		return httperr.ErrBusiness("password_mismatch")
	}
	if len(password) < auth.MinPasswordLength {
		return httperr.ErrBusiness("invalid_password")
	}
	return nil
}

func (h *AuthHandler) setSessionCookie(c *gin.Context, token string, maxAge int) {
	c.SetSameSite(http.SameSiteLaxMode)
	c.SetCookie(middleware.SessionCookie, token, maxAge, "/", "", h.config.CookieSecure, true)
}

// --------- Handlers ---------

func (h *AuthHandler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Preencha todos os campos obrigatórios.")
		return
	}

	cpf := validators.NormalizeCPF(req.CPF)
	if !validators.IsCPFValid(cpf) {
		writeError(c, httperr.ErrBusiness("invalid_cpf"))
		return
	}

	if err := validatePassword(req.Password, req.ConfirmPassword); err != nil {
		writeError(c, err)
		return
	}

	email := strings.ToLower(strings.TrimSpace(req.Email))
	if !validators.IsEmailSyntaxValid(email) {
		writeError(c, httperr.ErrBusiness("invalid_email"))
		return
	}
	if h.config.CheckEmailDomain && !validators.IsEmailDomainValid(c.Request.Context(), email) {
		writeError(c, httperr.ErrBusiness("invalid_email_domain"))
		return
	}

	ctx := c.Request.Context()

	exists, err := h.users.ExistsByCPFOrEmail(ctx, cpf, email, 0)
	if err != nil {
		writeError(c, err)
		return
	}
	if exists {
		writeError(c, httperr.ErrBusiness("user_already_exists"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	user := models.User{
		Name:         strings.TrimSpace(strings.TrimSpace(req.Name) + " " + strings.TrimSpace(req.LastName)),
		Email:        email,
		CPF:          cpf,
		PasswordHash: hash,
		Level:        string(access.LevelComum),
	}

	if err := h.users.Create(ctx, &user); err != nil {
		if httperr.IsUniqueViolation(err) {
			err = httperr.ErrBusiness("user_already_exists")
		}
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_registered",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.Mutation(c, http.StatusCreated, "Cadastro realizado com sucesso! Faça login.", loginURL, user)
}

func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe CPF e senha.")
		return
	}

	cpf := validators.NormalizeCPF(req.CPF)
	if !validators.IsCPFValid(cpf) {
		writeError(c, httperr.ErrBusiness("invalid_credentials"))
		return
	}

	user, err := h.users.GetByCPF(c.Request.Context(), cpf)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			err = httperr.ErrBusiness("invalid_credentials")
		}
		writeError(c, err)
		return
	}

	if !auth.CheckPassword(user.PasswordHash, req.Password) {
		writeError(c, httperr.ErrBusiness("invalid_credentials"))
		return
	}

	token, claims, err := h.sessions.Issue(user.ID, req.Remember)
	if err != nil {
		writeError(c, err)
		return
	}

	h.setSessionCookie(c, token, int(h.sessions.TTL(req.Remember).Seconds()))

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "user_logged_in",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"lembrar": req.Remember},
	})

	httpresp.Mutation(c, http.StatusOK, "Login realizado com sucesso!", middleware.DashboardURL, gin.H{
		"user":       user,
		"token":      token,
		"expires_at": claims.ExpiresAt.Time,
	})
}

func (h *AuthHandler) Logout(c *gin.Context) {
	if err := h.sessions.Revoke(c.Request.Context(), middleware.CurrentClaims(c)); err != nil {
		logrus.WithError(err).Warn("failed to revoke session")
	}

	h.setSessionCookie(c, "", -1)

	httpresp.Mutation(c, http.StatusOK, "Você saiu do sistema.", loginURL, nil)
}

// ForgotPassword gera um token de uso único e envia o link por e-mail.
func (h *AuthHandler) ForgotPassword(c *gin.Context) {
	var req ForgotPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe o e-mail.")
		return
	}

	ctx := c.Request.Context()

	user, err := h.users.GetByEmail(ctx, strings.TrimSpace(req.Email))
	if err != nil {
		writeError(c, orNotFound(err, "email_not_found"))
		return
	}

	token, err := auth.NewResetToken()
	if err != nil {
		writeError(c, err)
		return
	}

	reset := models.PasswordResetToken{
		UserID:    user.ID,
		Token:     token,
		ExpiresAt: locale.Now().Add(h.config.ResetTokenTTL),
	}
	if err := h.users.CreateResetToken(ctx, &reset); err != nil {
		writeError(c, err)
		return
	}

	link := mailer.ResetPasswordLink(h.config.PublicBaseURL, token)
	body := mailer.ResetPasswordBody(user.Name, link, h.config.ResetTokenTTL)
	if err := h.mailer.Send(ctx, user.Email, mailer.ResetPasswordSubject, body); err != nil {
		writeError(c, err)
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "password_reset_requested",
		Entity:   "user",
		EntityID: &user.ID,
	})

	httpresp.Mutation(c, http.StatusOK, "Um e-mail com instruções foi enviado!", loginURL, nil)
}

func (h *AuthHandler) ResetPassword(c *gin.Context) {
	var req ResetPasswordRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe a nova senha.")
		return
	}

	if err := validatePassword(req.Password, req.ConfirmPassword); err != nil {
		writeError(c, err)
		return
	}

	ctx := c.Request.Context()
	now := locale.Now()

	reset, err := h.users.GetResetToken(ctx, c.Param("token"))
	if err != nil {
		writeError(c, orNotFound(err, "invalid_token"))
		return
	}
	if !reset.Usable(now) {
		writeError(c, httperr.ErrBusiness("invalid_token"))
		return
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.users.ConsumeResetToken(ctx, reset, hash, now); err != nil {
		writeError(c, orNotFound(err, "invalid_token"))
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &reset.UserID,
		Action:   "password_reset",
		Entity:   "user",
		EntityID: &reset.UserID,
	})

	httpresp.Mutation(c, http.StatusOK, "Senha redefinida com sucesso!", loginURL, nil)
}
