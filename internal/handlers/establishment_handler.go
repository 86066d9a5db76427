package handlers

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/habitta/internal/audit"
	domain "github.com/BruksfildServices01/habitta/internal/domain/establishment"
	"github.com/BruksfildServices01/habitta/internal/export"
	"github.com/BruksfildServices01/habitta/internal/httperr"
	"github.com/BruksfildServices01/habitta/internal/httpresp"
	"github.com/BruksfildServices01/habitta/internal/infra/repository"
	"github.com/BruksfildServices01/habitta/internal/models"
	"github.com/BruksfildServices01/habitta/internal/pagination"
)

const establishmentsURL = "/estabelecimentos"

type EstablishmentHandler struct {
	establishments *repository.EstablishmentGormRepository
	audit          *audit.Dispatcher
}

func NewEstablishmentHandler(
	establishments *repository.EstablishmentGormRepository,
	dispatcher *audit.Dispatcher,
) *EstablishmentHandler {
	return &EstablishmentHandler{
		establishments: establishments,
		audit:          dispatcher,
	}
}

type EstablishmentRequest struct {
	Name         string `json:"nome" form:"nome"`
	Type         string `json:"tipo" form:"tipo"`
	Neighborhood string `json:"bairro" form:"bairro"`
	PriceMin     amount `json:"faixa_min" form:"faixa_min"`
	PriceMax     amount `json:"faixa_max" form:"faixa_max"`
	AveragePrice amount `json:"valor_medio" form:"valor_medio"`
	ContactName  string `json:"contato_nome" form:"contato_nome"`
	ContactPhone string `json:"contato_telefone" form:"contato_telefone"`
	Notes        string `json:"observacoes" form:"observacoes"`
}

func (r EstablishmentRequest) toModel() models.Establishment {
	return models.Establishment{
		Name:         r.Name,
		Type:         r.Type,
		Neighborhood: r.Neighborhood,
		PriceMin:     float64(r.PriceMin),
		PriceMax:     float64(r.PriceMax),
		AveragePrice: float64(r.AveragePrice),
		ContactName:  strings.TrimSpace(r.ContactName),
		ContactPhone: strings.TrimSpace(r.ContactPhone),
		Notes:        strings.TrimSpace(r.Notes),
	}
}

// bindValid lê o corpo e valida contra os tipos cadastrados.
func (h *EstablishmentHandler) bindValid(c *gin.Context) (models.Establishment, bool) {
	var req EstablishmentRequest
	if err := c.ShouldBind(&req); err != nil {
		writeError(c, httperr.ErrBusiness("invalid_price"))
		return models.Establishment{}, false
	}

	est := req.toModel()

	types, err := h.establishments.ListTypes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return est, false
	}

	if err := domain.Validate(&est, types); err != nil {
		writeError(c, err)
		return est, false
	}
	return est, true
}

func (h *EstablishmentHandler) params(c *gin.Context) (pagination.Params, bool) {
	p := listParams(c)
	if p.Filtro == domain.FilterAll {
		return p, true
	}

	types, err := h.establishments.ListTypes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return p, false
	}
	if !domain.IsKnownType(p.Filtro, types) {
		writeError(c, httperr.ErrBusiness("invalid_filter"))
		return p, false
	}
	return p, true
}

// ======================================================
// TYPES / LIST
// ======================================================

func (h *EstablishmentHandler) Types(c *gin.Context) {
	types, err := h.establishments.ListTypes(c.Request.Context())
	if err != nil {
		writeError(c, err)
		return
	}
	httpresp.List(c, types)
}

func (h *EstablishmentHandler) List(c *gin.Context) {
	p, ok := h.params(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	ests, total, err := h.establishments.List(ctx, p)
	if err != nil {
		writeError(c, err)
		return
	}

	summary, err := h.establishments.Summary(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Page(c, httpresp.PageResponse[models.Establishment]{
		Data:       ests,
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

func (h *EstablishmentHandler) Create(c *gin.Context) {
	est, ok := h.bindValid(c)
	if !ok {
		return
	}

	if err := h.establishments.Create(c.Request.Context(), &est); err != nil {
		writeError(c, err)
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "establishment_created",
		Entity:   "establishment",
		EntityID: &est.ID,
		Metadata: map[string]any{"tipo": est.Type},
	})

	httpresp.Mutation(c, http.StatusCreated, "Estabelecimento salvo com sucesso!", establishmentsURL, est)
}

func (h *EstablishmentHandler) Get(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	est, err := h.establishments.Get(c.Request.Context(), id)
	if err != nil {
		writeError(c, orNotFound(err, "establishment_not_found"))
		return
	}

	httpresp.OK(c, est)
}

func (h *EstablishmentHandler) Update(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	est, ok := h.bindValid(c)
	if !ok {
		return
	}
	est.ID = id

	if err := h.establishments.Update(c.Request.Context(), &est); err != nil {
		writeError(c, orNotFound(err, "establishment_not_found"))
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "establishment_updated",
		Entity:   "establishment",
		EntityID: &id,
	})

	httpresp.Mutation(c, http.StatusOK, "Estabelecimento atualizado com sucesso!", establishmentsURL, est)
}

func (h *EstablishmentHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	if err := h.establishments.Delete(c.Request.Context(), id); err != nil {
		writeError(c, orNotFound(err, "establishment_not_found"))
		return
	}

	userID := currentUserID(c)
	h.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "establishment_deleted",
		Entity:   "establishment",
		EntityID: &id,
	})

	httpresp.Mutation(c, http.StatusOK, "Estabelecimento excluído com sucesso!", establishmentsURL, nil)
}

// ======================================================
// EXPORT
// ======================================================

func (h *EstablishmentHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Param("formato"))
	if err != nil {
		writeError(c, err)
		return
	}

	p, ok := h.params(c)
	if !ok {
		return
	}

	ests, err := h.establishments.ListAll(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}

	table := export.Table{
		Sheet:   "Estabelecimentos",
		Headers: []string{"Nome", "Tipo", "Bairro", "Faixa Mínima (R$)", "Faixa Máxima (R$)"},
	}
	for _, e := range ests {
		table.Rows = append(table.Rows, []any{
			e.Name,
			e.Type,
			e.Neighborhood,
			export.Money(e.PriceMin),
			export.Money(e.PriceMax),
		})
	}

	sendExport(c, format, "estabelecimentos", table)
}
