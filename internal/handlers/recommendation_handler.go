package handlers

import (
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"

	domain "github.com/BruksfildServices01/habitta/internal/domain/recommendation"
	"github.com/BruksfildServices01/habitta/internal/dto"
	"github.com/BruksfildServices01/habitta/internal/export"
	"github.com/BruksfildServices01/habitta/internal/httperr"
	"github.com/BruksfildServices01/habitta/internal/httpresp"
	"github.com/BruksfildServices01/habitta/internal/infra/repository"
	"github.com/BruksfildServices01/habitta/internal/pagination"
	ucRecommendation "github.com/BruksfildServices01/habitta/internal/usecase/recommendation"
)

// ======================================================
// HANDLER
// ======================================================

type RecommendationHandler struct {
	repo *repository.RecommendationGormRepository

	view     *ucRecommendation.ViewClientRecommendations
	create   *ucRecommendation.CreateRecommendation
	sel      *ucRecommendation.SelectEstablishment
	desel    *ucRecommendation.DeselectEstablishment
	finalize *ucRecommendation.FinalizeSelection
	save     *ucRecommendation.SaveNotes
	delete   *ucRecommendation.DeleteRecommendation
}

func NewRecommendationHandler(
	repo *repository.RecommendationGormRepository,
	view *ucRecommendation.ViewClientRecommendations,
	create *ucRecommendation.CreateRecommendation,
	sel *ucRecommendation.SelectEstablishment,
	desel *ucRecommendation.DeselectEstablishment,
	finalize *ucRecommendation.FinalizeSelection,
	save *ucRecommendation.SaveNotes,
	del *ucRecommendation.DeleteRecommendation,
) *RecommendationHandler {
	return &RecommendationHandler{
		repo:     repo,
		view:     view,
		create:   create,
		sel:      sel,
		desel:    desel,
		finalize: finalize,
		save:     save,
		delete:   del,
	}
}

// ======================================================
// REQUESTS
// ======================================================

type SelectionRequest struct {
	ClientID        uint `json:"cliente_id" form:"cliente_id" binding:"required"`
	EstablishmentID uint `json:"estabelecimento_id" form:"estabelecimento_id" binding:"required"`
}

type FinalizeRequest struct {
	ClientID uint `json:"cliente_id" form:"cliente_id" binding:"required"`
}

type SaveNotesRequest struct {
	RecommendationID uint   `json:"recomendacao_id" form:"recomendacao_id" binding:"required"`
	Notes            string `json:"observacoes" form:"observacoes"`
	Message          string `json:"mensagem" form:"mensagem"`
}

func clientRecommendationsURL(clientID uint, mode domain.Mode) string {
	return fmt.Sprintf("/recomendacoes/cliente/%d?modo=%s", clientID, mode)
}

func (h *RecommendationHandler) params(c *gin.Context) (pagination.Params, bool) {
	p := listParams(c)
	if !domain.ValidOverviewFilter(p.Filtro) {
		writeError(c, httperr.ErrBusiness("invalid_filter"))
		return p, false
	}
	return p, true
}

// ======================================================
// OVERVIEW (um cliente por linha)
// ======================================================

func (h *RecommendationHandler) Overview(c *gin.Context) {
	p, ok := h.params(c)
	if !ok {
		return
	}

	ctx := c.Request.Context()

	rows, total, err := h.repo.Overview(ctx, p)
	if err != nil {
		writeError(c, err)
		return
	}

	summary, err := h.repo.OverviewSummary(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Page(c, httpresp.PageResponse[dto.RecommendationOverviewRow]{
		Data:       rows,
		Total:      total,
		Page:       p.Page,
		TotalPages: pagination.TotalPages(total),
		Busca:      p.Busca,
		Filtro:     p.Filtro,
		Resumo:     summary,
	})
}

func (h *RecommendationHandler) Export(c *gin.Context) {
	format, err := export.ParseFormat(c.Param("formato"))
	if err != nil {
		writeError(c, err)
		return
	}

	p, ok := h.params(c)
	if !ok {
		return
	}

	rows, err := h.repo.OverviewAll(c.Request.Context(), p)
	if err != nil {
		writeError(c, err)
		return
	}

	table := export.Table{
		Sheet: "Recomendações",
		Headers: []string{
			"ID", "Nome", "Renda Mensal (R$)", "Telefone", "Email",
			"Tipo interesse", "Bairro interesse", "Total Recomendações", "Total Ofertas",
		},
	}
	for _, r := range rows {
		table.Rows = append(table.Rows, []any{
			r.ClientID,
			r.Name,
			export.Money(r.MonthlyIncome),
			r.Phone,
			r.Email,
			r.InterestType,
			r.InterestNeighborhood,
			r.Recommendations,
			r.Offers,
		})
	}

	sendExport(c, format, "recomendacoes", table)
}

// ======================================================
// CLIENT VIEW
// ======================================================

func (h *RecommendationHandler) ViewClient(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}

	view, err := h.view.Execute(c.Request.Context(), clientID, domain.ParseMode(c.Query("modo")))
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, view)
}

// ======================================================
// MUTATIONS
// ======================================================

func (h *RecommendationHandler) New(c *gin.Context) {
	h.createFor(c, false, "Nova recomendação criada!")
}

// Generate cria a recomendação já com todos os imóveis compatíveis.
func (h *RecommendationHandler) Generate(c *gin.Context) {
	h.createFor(c, true, "Recomendação gerada com os imóveis compatíveis!")
}

func (h *RecommendationHandler) createFor(c *gin.Context, withMatches bool, message string) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}

	rec, err := h.create.Execute(c.Request.Context(), ucRecommendation.CreateRecommendationInput{
		UserID:      currentUserID(c),
		ClientID:    clientID,
		WithMatches: withMatches,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Mutation(c, http.StatusCreated, message, clientRecommendationsURL(clientID, domain.ModeView), rec)
}

func (h *RecommendationHandler) Select(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe o cliente e o imóvel.")
		return
	}

	rec, err := h.sel.Execute(c.Request.Context(), ucRecommendation.SelectionInput{
		UserID:          currentUserID(c),
		ClientID:        req.ClientID,
		EstablishmentID: req.EstablishmentID,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Mutation(c, http.StatusOK, "Imóvel selecionado com sucesso!",
		clientRecommendationsURL(req.ClientID, domain.ModeSelect), rec)
}

func (h *RecommendationHandler) Deselect(c *gin.Context) {
	var req SelectionRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe o cliente e o imóvel.")
		return
	}

	if err := h.desel.Execute(c.Request.Context(), ucRecommendation.SelectionInput{
		UserID:          currentUserID(c),
		ClientID:        req.ClientID,
		EstablishmentID: req.EstablishmentID,
	}); err != nil {
		writeError(c, err)
		return
	}

	httpresp.Mutation(c, http.StatusOK, "Imóvel removido da seleção!",
		clientRecommendationsURL(req.ClientID, domain.ModeSelect), nil)
}

func (h *RecommendationHandler) Finalize(c *gin.Context) {
	var req FinalizeRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe o cliente.")
		return
	}

	n, err := h.finalize.Execute(c.Request.Context(), currentUserID(c), req.ClientID)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Mutation(c, http.StatusOK, "Seleção finalizada com sucesso!",
		clientRecommendationsURL(req.ClientID, domain.ModeView), gin.H{"finalizadas": n})
}

func (h *RecommendationHandler) SaveNotes(c *gin.Context) {
	clientID, ok := parseID(c, "id")
	if !ok {
		return
	}

	var req SaveNotesRequest
	if err := c.ShouldBind(&req); err != nil {
		httperr.BadRequest(c, "invalid_request", "Informe a recomendação.")
		return
	}

	rec, err := h.save.Execute(c.Request.Context(), ucRecommendation.SaveNotesInput{
		UserID:           currentUserID(c),
		ClientID:         clientID,
		RecommendationID: req.RecommendationID,
		Notes:            req.Notes,
		Message:          req.Message,
	})
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Mutation(c, http.StatusOK, "Dados salvos!",
		clientRecommendationsURL(clientID, domain.ParseMode(c.Query("modo"))), rec)
}

func (h *RecommendationHandler) Delete(c *gin.Context) {
	id, ok := parseID(c, "id")
	if !ok {
		return
	}

	clientID, err := h.delete.Execute(c.Request.Context(), currentUserID(c), id)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.Mutation(c, http.StatusOK, "Recomendação excluída com sucesso!",
		clientRecommendationsURL(clientID, domain.ModeView), nil)
}
