package recommendation

import (
	"context"

	domain "github.com/BruksfildServices01/habitta/internal/domain/recommendation"
	"github.com/BruksfildServices01/habitta/internal/dto"
	"github.com/BruksfildServices01/habitta/internal/models"
)

type ViewClientRecommendations struct {
	repo domain.Repository
}

func NewViewClientRecommendations(repo domain.Repository) *ViewClientRecommendations {
	return &ViewClientRecommendations{repo: repo}
}

func (uc *ViewClientRecommendations) Execute(
	ctx context.Context,
	clientID uint,
	mode domain.Mode,
) (*dto.ClientRecommendations, error) {

	client, err := uc.repo.GetClient(ctx, clientID)
	if err != nil {
		return nil, notFound(err, "client_not_found")
	}

	recs, err := uc.repo.ListForClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	view := &dto.ClientRecommendations{
		Mode:            mode,
		Client:          *client,
		Recommendations: recs,
		Offers:          []domain.Offer{},
	}
	if len(recs) > 0 {
		view.Current = &recs[0]
	}

	switch mode {
	case domain.ModeSelect:
		err = uc.selecting(ctx, view)
	case domain.ModeGenerate:
		err = uc.generating(ctx, view)
	default:
		err = uc.viewing(ctx, view)
	}
	if err != nil {
		return nil, err
	}

	return view, nil
}

// --------------------------------------------------
// selecionar: todos os imóveis, marcados os já escolhidos
// --------------------------------------------------

func (uc *ViewClientRecommendations) selecting(ctx context.Context, view *dto.ClientRecommendations) error {
	rec, created, err := uc.repo.GetOrCreateSelecting(ctx, view.Client.ID)
	if err != nil {
		return err
	}
	if created {
		view.Recommendations = append([]models.Recommendation{*rec}, view.Recommendations...)
	}
	view.Current = rec

	all, err := uc.repo.ListEstablishments(ctx)
	if err != nil {
		return err
	}

	attached, err := uc.repo.ListAttachedIDs(ctx, rec.ID)
	if err != nil {
		return err
	}

	view.Offers = domain.BuildOffers(all, attached, true)
	return nil
}

// --------------------------------------------------
// gerar: candidatos pelo predicado de compatibilidade
// --------------------------------------------------

func (uc *ViewClientRecommendations) generating(ctx context.Context, view *dto.ClientRecommendations) error {
	if view.Current == nil {
		rec := domain.NewActive(view.Client.ID)
		if err := uc.repo.Create(ctx, rec, nil); err != nil {
			return err
		}
		view.Current = rec
		view.Recommendations = []models.Recommendation{*rec}
	}

	matches, err := uc.repo.ListMatchingEstablishments(ctx, &view.Client)
	if err != nil {
		return err
	}

	attached, err := uc.repo.ListAttachedIDs(ctx, view.Current.ID)
	if err != nil {
		return err
	}

	view.Offers = domain.BuildOffers(matches, attached, false)
	return nil
}

// --------------------------------------------------
// ver: imóveis vinculados à recomendação mais recente
// --------------------------------------------------

func (uc *ViewClientRecommendations) viewing(ctx context.Context, view *dto.ClientRecommendations) error {
	if view.Current == nil {
		return nil
	}

	attached, err := uc.repo.ListAttached(ctx, view.Current.ID)
	if err != nil {
		return err
	}

	ids := make([]uint, 0, len(attached))
	for _, e := range attached {
		ids = append(ids, e.ID)
	}

	view.Offers = domain.BuildOffers(attached, ids, false)
	return nil
}
