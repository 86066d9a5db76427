package recommendation

import (
	"context"

	"github.com/BruksfildServices01/habitta/internal/audit"
	domain "github.com/BruksfildServices01/habitta/internal/domain/recommendation"
	"github.com/BruksfildServices01/habitta/internal/models"
)

type SelectionInput struct {
	UserID          uint
	ClientID        uint
	EstablishmentID uint
}

// ======================================================
// SELECT
// ======================================================

type SelectEstablishment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewSelectEstablishment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *SelectEstablishment {
	return &SelectEstablishment{
		repo:  repo,
		audit: audit,
	}
}

// Execute é idempotente: selecionar duas vezes deixa um único vínculo.
func (uc *SelectEstablishment) Execute(
	ctx context.Context,
	in SelectionInput,
) (*models.Recommendation, error) {

	if _, err := uc.repo.GetClient(ctx, in.ClientID); err != nil {
		return nil, notFound(err, "client_not_found")
	}

	if _, err := uc.repo.GetEstablishment(ctx, in.EstablishmentID); err != nil {
		return nil, notFound(err, "establishment_not_found")
	}

	rec, _, err := uc.repo.GetOrCreateSelecting(ctx, in.ClientID)
	if err != nil {
		return nil, err
	}

	if err := domain.CanEditSelection(domain.Status(rec.Status)); err != nil {
		return nil, err
	}

	if err := uc.repo.Attach(ctx, rec.ID, in.EstablishmentID); err != nil {
		return nil, err
	}

	uc.audit.Dispatch(audit.Event{
		UserID:   &in.UserID,
		Action:   "establishment_selected",
		Entity:   "recommendation",
		EntityID: &rec.ID,
		Metadata: map[string]any{"estabelecimento_id": in.EstablishmentID},
	})

	return rec, nil
}

// ======================================================
// DESELECT
// ======================================================

type DeselectEstablishment struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewDeselectEstablishment(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *DeselectEstablishment {
	return &DeselectEstablishment{
		repo:  repo,
		audit: audit,
	}
}

func (uc *DeselectEstablishment) Execute(
	ctx context.Context,
	in SelectionInput,
) error {

	rec, err := uc.repo.FindSelecting(ctx, in.ClientID)
	if err != nil {
		return notFound(err, "selection_not_found")
	}

	removed, err := uc.repo.Detach(ctx, rec.ID, in.EstablishmentID)
	if err != nil {
		return err
	}

	if removed {
		uc.audit.Dispatch(audit.Event{
			UserID:   &in.UserID,
			Action:   "establishment_deselected",
			Entity:   "recommendation",
			EntityID: &rec.ID,
			Metadata: map[string]any{"estabelecimento_id": in.EstablishmentID},
		})
	}

	return nil
}
