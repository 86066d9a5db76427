package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/habitta/internal/audit"
	domain "github.com/BruksfildServices01/habitta/internal/domain/client"
	"github.com/BruksfildServices01/habitta/internal/export"
	"github.com/BruksfildServices01/habitta/internal/httperr"
	"github.com/BruksfildServices01/habitta/internal/httpresp"
	"github.com/BruksfildServices01/habitta/internal/infra/repository"
	"github.com/BruksfildServices01/habitta/internal/models"
	"github.com/BruksfildServices01/habitta/internal/pagination"
)

const clientsURL = "/clientes"

type ClientHandler struct {
	clients *repository.ClientGormRepository
	types   *repository.EstablishmentGormRepository
	audit   *audit.Dispatcher
}

func NewClientHandler(
	clients *repository.ClientGormRepository,
	types *repository.EstablishmentGormRepository,
	dispatcher *audit.Dispatcher,
) *ClientHandler {
	return &ClientHandler{
		clients: clients,
		types:   types,
		audit:   dispatcher,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type ClientRequest struct {
	Name                 string `json:"nome" form:"nome"`
	MonthlyIncome        amount `json:"renda_mensal" form:"renda_mensal"`
	Phone                string `json:"telefone" form:"telefone"`
	Email                string `json:"email" form:"email"`
	InterestType         string `json:"interesse_tipo" form:"interesse_tipo"`
	InterestNeighborhood string `json:"interesse_bairro" form:"interesse_bairro"`
	Status               string `json:"status" form:"status"`
}

// toModel deixa Status vazio quando o campo não veio; na edição isso preserva o atual.
func (r ClientRequest) toModel() (models.Client, error) {
	var status domain.Status
	if strings.TrimSpace(r.Status) != "" {
		var err error
		if status, err = domain.ParseStatus(r.Status); err != nil {
			return models.Client{}, err
		}
	}

	return models.Client{
		Name:                 r.Name,
		MonthlyIncome:        float64(r.MonthlyIncome),
		Phone:                strings.TrimSpace(r.Phone),
		Email:                r.Email,
		InterestType:         r.InterestType,
		InterestNeighborhood: r.InterestNeighborhood,
		Status:               string(status),
	}, nil
}

func (h *ClientHandler) bind(c *gin.Context) (models.Client, bool) {
	var req ClientRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Dados inválidos. Confira a renda mensal.")
		return models.Client{}, false
	}

	client, err := req.toModel()
	if err != nil {
		writeError(c, err)
		return models.Client{}, false
	}
	return client, true
}

func (h *ClientHandler) params(c *gin.Context) (pagination.Params, bool) {
	p := listParams(c)
	if !domain.ValidFilter(p.Filtro) {
		writeError(c, httperr.ErrBusiness("invalid_filter"))
		return p, false
	}
	return p, true
}

// ======================================================
// LIST
// ======================================================

func (h *ClientHandler) List(c *gin.Context) {
	p, ok := h.params(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	clients, total, err := h.clients.List(ctx, p)
	if err != nil {
		writeError(c, err)
		return
	}

	summary, err := h.clients.Summary(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Page(c, httpresp.PageResponse[models.Client]{
		Data:       clients,
		Total:      total,
		Page:       p.Page,
		TotalPages: pagination.TotalPages(total),
		Busca:      p.Busca,
		Filtro:     p.Filtro,
		Resumo:     summary,
	})
}

// ======================================================
// CRUD
// ======================================================

func (h *ClientHandler) Create(c *gin.Context) {
	client, ok := h.bind(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	types, err := h.types.ListTypes(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := domain.Validate(&client, types); err != nil {
		writeError(c, err)
		return
	}

	if client.Status == "" {
		client.Status = string(domain.StatusActive)
	}

	if err := h.clients.Create(ctx, &client); err != nil {
		writeError(c, err)
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "client_created",
		Entity:   "client",
		EntityID: &client.ID,
	})

	httpresp.Mutation(c, http.StatusCreated, "Cliente cadastrado com sucesso!", clientsURL, client)
}

func (h *ClientHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	client, err := h.clients.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, orNotFound(err, "client_not_found"))
		return
	}

	httpresp.OK(c, client)
}

func (h *ClientHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	client, ok := h.bind(c)
	if !ok {
		return
	}
	client.ID = id

	ctx := c.Request.Context()

	types, err := h.types.ListTypes(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	if err := domain.ValidateUpdate(&client, types); err != nil {
		writeError(c, err)
		return
	}

	if err := h.clients.Update(ctx, &client); err != nil {
		writeError(c, orNotFound(err, "client_not_found"))
		return
	}

	updated, err := h.clients.Get(ctx, id)
	if err != nil {
		writeError(c, orNotFound(err, "client_not_found"))
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "client_updated",
		Entity:   "client",
		EntityID: &id,
	})

	httpresp.Mutation(c, http.StatusOK, "Cliente atualizado com sucesso!", clientsURL, updated)
}

func (h *ClientHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.clients.Delete(c.Request.Context(), id); err != nil {
		writeError(c, orNotFound(err, "client_not_found"))
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "client_deleted",
		Entity:   "client",
		EntityID: &id,
	})

	httpresp.Mutation(c, http.StatusOK, "Cliente excluído com sucesso!", clientsURL, nil)
}

// ======================================================
// EXPORT
// ======================================================

func (h *ClientHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Param("formato"))
	if err != nil {
		writeError(c, err)
		return
	}

	p, ok := h.params(c)
	if !ok {
		return
	}

	clients, err := h.clients.ListAll(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}

	table := export.Table{
		Sheet: "Clientes",
		Headers: []string{
			"Nome", "Renda Mensal (R$)", "Telefone", "Email",
			"Tipo interesse", "Bairro interesse", "Status",
		},
	}
	for _, cl := range clients {
		table.Rows = append(table.Rows, []any{
			cl.Name,
			export.Money(cl.MonthlyIncome),
			cl.Phone,
			cl.Email,
			cl.InterestType,
			cl.InterestNeighborhood,
			cl.Status,
		})
	}

	sendExport(c, format, "clientes", table)
}
