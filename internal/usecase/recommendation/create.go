package recommendation

import (
	"context"

	"github.com/BruksfildServices01/habitta/internal/audit"
	domain "github.com/BruksfildServices01/habitta/internal/domain/recommendation"
	"github.com/BruksfildServices01/habitta/internal/models"
)

// ======================================================
// INPUT
// ======================================================

type CreateRecommendationInput struct {
	UserID   uint
	ClientID uint

	// WithMatches vincula na criação todos os imóveis compatíveis no momento.
	WithMatches bool
}

// ======================================================
// USE CASE
// ======================================================

type CreateRecommendation struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewCreateRecommendation(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *CreateRecommendation {
	return &CreateRecommendation{
		repo:  repo,
		audit: audit,
	}
}

func (uc *CreateRecommendation) Execute(
	ctx context.Context,
	in CreateRecommendationInput,
) (*models.Recommendation, error) {

	client, err := uc.repo.GetClient(ctx, in.ClientID)
	if err != nil {
		return nil, notFound(err, "client_not_found")
	}

	var ids []uint
	if in.WithMatches {
		matches, err := uc.repo.ListMatchingEstablishments(ctx, client)
		if err != nil {
			return nil, err
		}
		for _, e := range matches {
			ids = append(ids, e.ID)
		}
	}

	rec := domain.NewActive(client.ID)
	if err := uc.repo.Create(ctx, rec, ids); err != nil {
		return nil, err
	}

	action := "recommendation_created"
	if in.WithMatches {
		action = "recommendation_generated"
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   action,
		Entity:   "recommendation",
		EntityID: &rec.ID,
		Metadata: map[string]any{
			"cliente_id":       client.ID,
			"estabelecimentos": len(ids),
		},
	})

	return rec, nil
}
