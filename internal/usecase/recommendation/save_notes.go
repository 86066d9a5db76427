package recommendation

import (
	"context"
	"strings"

	"github.com/BruksfildServices01/habitta/internal/audit"
	domain "github.com/BruksfildServices01/habitta/internal/domain/recommendation"
	"github.com/BruksfildServices01/habitta/internal/models"
)

type SaveNotesInput struct {
	UserID           uint
	ClientID         uint
	RecommendationID uint
	Notes            string
	Message          string
}

type SaveNotes struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSaveNotes(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SaveNotes {
	return &SaveNotes{
		repo:  repo,
		audit: audit,
	}
}

func (uc *SaveNotes) Execute(
	ctx context.Context,
	in SaveNotesInput,
) (*models.Recommendation, error) {

	rec, err := uc.repo.GetForClient(ctx, in.RecommendationID, in.ClientID)
	if err != nil {
		return nil, notFound(err, "recommendation_not_found")
	}

	rec.Notes = strings.TrimSpace(in.Notes)
	rec.Message = strings.TrimSpace(in.Message)

	if err := uc.repo.UpdateNotes(ctx, rec); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "recommendation_updated",
		Entity:   "recommendation",
		EntityID: &rec.ID,
	})

	return rec, nil
}
