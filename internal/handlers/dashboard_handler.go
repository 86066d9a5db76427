package handlers

import (
	"github.com/gin-gonic/gin"

	"github.com/BruksfildServices01/habitta/internal/dto"
	"github.com/BruksfildServices01/habitta/internal/httpresp"
	"github.com/BruksfildServices01/habitta/internal/infra/repository"
)

type DashboardHandler struct {
	clients         *repository.ClientGormRepository
	establishments  *repository.EstablishmentGormRepository
	recommendations *repository.RecommendationGormRepository
}

func NewDashboardHandler(
	clients *repository.ClientGormRepository,
	establishments *repository.EstablishmentGormRepository,
	recommendations *repository.RecommendationGormRepository,
) *DashboardHandler {
	return &DashboardHandler{
		clients:         clients,
		establishments:  establishments,
		recommendations: recommendations,
	}
}

// Get monta os contadores da tela inicial. "Sem ofertas" usa o mesmo
// predicado de compatibilidade da geração de recomendações.
func (h *DashboardHandler) Get(c *gin.Context) {
	ctx := c.Request.Context()

	clients, err := h.clients.Summary(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	ests, err := h.establishments.Summary(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	overview, err := h.recommendations.OverviewSummary(ctx)
	if err != nil {
		writeError(c, err)
		return
	}

	httpresp.OK(c, dto.Dashboard{
		TotalClients:              clients.Total,
		CommercialEstablishments:  ests.ByType["comercial"],
		ResidentialEstablishments: ests.ByType["residencial"],
		ClientsWithoutOffers:      overview.WithoutOffers,
	})
}
