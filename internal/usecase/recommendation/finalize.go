package recommendation

import (
	"context"

	"github.com/BruksfildServices01/habitta/internal/audit"
	domain "github.com/BruksfildServices01/habitta/internal/domain/recommendation"
	"github.com/BruksfildServices01/habitta/internal/locale"
)

type FinalizeSelection struct {
	repo  domain.Repository
	audit *audit.Dispatcher
}

func NewFinalizeSelection(
	repo domain.Repository,
	audit *audit.Dispatcher,
) *FinalizeSelection {
	return &FinalizeSelection{
		repo:  repo,
		audit: audit,
	}
}

// Execute promove toda recomendação "selecionar" do cliente para "ativa".
// Devolve quantas foram promovidas; zero não é erro.
func (uc *FinalizeSelection) Execute(
	ctx context.Context,
	userID uint,
	clientID uint,
) (int64, error) {

	if _, err := uc.repo.GetClient(ctx, clientID); err != nil {
		return 0, notFound(err, "client_not_found")
	}

	n, err := uc.repo.FinalizeSelecting(ctx, clientID, locale.Now())
	if err != nil {
		return 0, err
	}

	if n > 0 {
		uc.audit.Dispatch(audit.Event{
			UserID:   &userID,
			Action:   "selection_finalized",
			Entity:   "client",
			EntityID: &clientID,
			Metadata: map[string]any{"recomendacoes": n},
		})
	}

	return n, nil
}
