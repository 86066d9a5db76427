package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/habitta/internal/audit"
	"github.com/BruksfildServices01/habitta/internal/auth"
	"github.com/BruksfildServices01/habitta/internal/avatar"
	"github.com/BruksfildServices01/habitta/internal/domain/access"
	"github.com/BruksfildServices01/habitta/internal/httperr"
	"github.com/BruksfildServices01/habitta/internal/httpresp"
	"github.com/BruksfildServices01/habitta/internal/infra/repository"
	"github.com/BruksfildServices01/habitta/internal/middleware"
	"github.com/BruksfildServices01/habitta/internal/models"
	"github.com/BruksfildServices01/habitta/internal/validators"
)

type MeHandler struct {
	users   *repository.UserGormRepository
	avatars *avatar.Service
	audit   *audit.Dispatcher
}

func NewMeHandler(
	users *repository.UserGormRepository,
	avatars *avatar.Service,
	dispatcher *audit.Dispatcher,
) *MeHandler {
	return &MeHandler{
		users:   users,
		avatars: avatars,
		audit:   dispatcher,
	}
}

type UpdateProfileRequest struct {
	Name            string `form:"nome" json:"nome"`
	Email           string `form:"email" json:"email"`
	CPF             string `form:"cpf" json:"cpf"`
	Password        string `form:"senha" json:"senha"`
	ConfirmPassword string `form:"confirmar_senha" json:"confirmar_senha"`
}

type SetLevelRequest struct {
	Level string `form:"nivel" json:"nivel" binding:"required"`
}

type profileResponse struct {
	*models.User
	AvatarURL string `json:"avatar_url"`
}

func (h *MeHandler) profile(c *gin.Context, user *models.User) (profileResponse, error) {
	url, err := h.avatars.URL(c.Request.Context(), user.ID)
	if err != nil {
		return profileResponse{}, err
	}
	return profileResponse{User: user, AvatarURL: url}, nil
}

func (h *MeHandler) GetMe(c *gin.Context) {
	user := middleware.CurrentUser(c)

	resp, err := h.profile(c, user)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, resp)
}

// UpdateMe aceita multipart com os dados do perfil e, opcionalmente, o avatar.
func (h *MeHandler) UpdateMe(c *gin.Context) {
	current := middleware.CurrentUser(c)

	var req UpdateProfileRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos.")
		return
	}

	name := strings.TrimSpace(req.Name)
	email := strings.ToLower(strings.TrimSpace(req.Email))
	cpf := validators.NormalizeCPF(req.CPF)

	if name == "" || email == "" || req.CPF == "" {
		httperr.BadRequest(c, "invalid_request", "Nome, CPF e e-mail são obrigatórios.")
		return
	}
	if !validators.IsCPFValid(cpf) {
		writeError(c, httperr.ErrBusiness("invalid_cpf"))
		return
	}
	if !validators.IsEmailSyntaxValid(email) {
		writeError(c, httperr.ErrBusiness("invalid_email"))
		return
	}

	updated := models.User{
		ID:    current.ID,
		Name:  name,
		Email: email,
		CPF:   cpf,
	}

	if req.Password != "" {
		if err := validatePassword(req.Password, req.ConfirmPassword); err != nil {
			writeError(c, err)
			return
		}
		hash, err := auth.HashPassword(req.Password)
		if err != nil {
			writeError(c, err)
			return
		}
		updated.PasswordHash = hash
	}

	ctx := c.Request.Context()

	taken, err := h.users.ExistsByCPFOrEmail(ctx, cpf, email, current.ID)
	if err != nil {
		writeError(c, err)
		return
	}
	if taken {
		writeError(c, httperr.ErrBusiness("user_already_exists"))
		return
	}

	if err := h.users.UpdateProfile(ctx, &updated); err != nil {
		if httperr.IsUniqueViolation(err) {
			err = httperr.ErrBusiness("user_already_exists")
		}
		writeError(c, err)
		return
	}

	file, err := c.FormFile("avatar")
	switch {
	case err == nil:
		f, err := file.Open()
		if err != nil {
			writeError(c, httperr.ErrBusiness("invalid_image"))
			return
		}
		defer f.Close()

		if _, err := h.avatars.Replace(ctx, current.ID, f); err != nil {
			writeError(c, err)
			return
		}
	case !errors.Is(err, http.ErrMissingFile) && !errors.Is(err, http.ErrNotMultipart):
		writeError(c, httperr.ErrBusiness("invalid_image"))
		return
	}

	h.avatars.Forget(ctx, current.ID)

	user, err := h.users.GetByID(ctx, current.ID)
	if err != nil {
		writeError(c, orNotFound(err, "user_not_found"))
		return
	}

	h.audit.Dispatch(audit.Event{
		UserID:   &user.ID,
		Action:   "profile_updated",
		Entity:   "user",
		EntityID: &user.ID,
		Metadata: map[string]any{"senha_alterada": req.Password != ""},
	})

	resp, err := h.profile(c, user)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Mutation(c, http.StatusOK, "Perfil atualizado com sucesso!", "", resp)
}

// Avatar devolve a URL pública do avatar de qualquer usuário.
func (h *MeHandler) Avatar(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	url, err := h.avatars.URL(c.Request.Context(), id)
	if err != nil {
		writeError(c, orNotFound(err, "user_not_found"))
		return
	}

	httpresp.OK(c, gin.H{"avatar_url": url})
}

func (h *MeHandler) SetLevel(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req SetLevelRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe o nível.")
		return
	}

	level, err := access.ParseLevel(req.Level)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := h.users.SetLevel(c.Request.Context(), id, string(level)); err != nil {
		writeError(c, orNotFound(err, "user_not_found"))
		return
	}

	actor := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &actor,
		Action:   "user_level_changed",
		Entity:   "user",
		EntityID: &id,
		Metadata: map[string]any{"nivel": level},
	})

	httpresp.Mutation(c, http.StatusOK, "Nível de acesso atualizado.", "", gin.H{"id": id, "nivel": level})
}
