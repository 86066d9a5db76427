package recommendation

import (
	"context"

	"github.com/BruksfildServices01/habitta/internal/audit"
	domain "github.com/BruksfildServices01/habitta/internal/domain/recommendation"
)

type DeleteRecommendation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeleteRecommendation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeleteRecommendation {
	return &DeleteRecommendation{
		repo:  repo,
		audit: audit,
	}
}

// Execute devolve o id do cliente para o redirecionamento.
func (uc *DeleteRecommendation) Execute(
	ctx context.Context,
	userID uint,
	recommendationID uint,
) (uint, error) {

	rec, err := uc.repo.GetByID(ctx, recommendationID)
	if err != nil {
		return 0, notFound(err, "recommendation_not_found")
	}

	if err := uc.repo.Delete(ctx, rec.ID); err != nil {
		return 0, notFound(err, "recommendation_not_found")
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &userID,
		Action:   "recommendation_deleted",
		Entity:   "recommendation",
		EntityID: &recommendationID,
		Metadata: map[string]any{
			"cliente_id": rec.ClientID,
			"status":     rec.Status,
		},
	})

	return rec.ClientID, nil
}
