package recommendation

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	domain "github.com/BruksfildServices01/habitta/internal/domain/recommendation"
	"github.com/BruksfildServices01/habitta/internal/httperr"
	"github.com/BruksfildServices01/habitta/internal/models"
)

func seed() *memRepo {
	repo := newMemRepo()
	repo.clients[1] = models.Client{ID: 1, Name: "Ana", MonthlyIncome: 3000, InterestType: "residencial", InterestNeighborhood: "Centro"}
	repo.ests[10] = models.Establishment{ID: 10, Name: "Aurora", Type: "residencial", Neighborhood: "Centro", PriceMin: 2000, PriceMax: 4000}
	repo.ests[11] = models.Establishment{ID: 11, Name: "Bela Vista", Type: "residencial", Neighborhood: "Centro", PriceMin: 3500, PriceMax: 6000}
	repo.ests[12] = models.Establishment{ID: 12, Name: "Cedro", Type: "comercial", Neighborhood: "Centro", PriceMin: 1000, PriceMax: 5000}
	return repo
}

func offerIDs(offers []domain.Offer) []uint {
	ids := make([]uint, 0, len(offers))
	for _, o := range offers {
		ids = append(ids, o.ID)
	}
	return ids
}

func TestSelectTwiceLeavesSingleLink(t *testing.T) {
	ctx := context.Background()
	repo := seed()
	uc := NewSelectEstablishment(repo, nil)

	in := SelectionInput{UserID: 1, ClientID: 1, EstablishmentID: 10}
	first, err := uc.Execute(ctx, in)
	require.NoError(t, err)
	second, err := uc.Execute(ctx, in)
	require.NoError(t, err)

	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, 1, repo.linksFor(first.ID))
}

func TestSelectRequiresExistingRecords(t *testing.T) {
	ctx := context.Background()
	uc := NewSelectEstablishment(seed(), nil)

	_, err := uc.Execute(ctx, SelectionInput{ClientID: 99, EstablishmentID: 10})
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))

	_, err = uc.Execute(ctx, SelectionInput{ClientID: 1, EstablishmentID: 99})
	assert.True(t, httperr.IsBusiness(err, "establishment_not_found"))
}

func TestDeselect(t *testing.T) {
	ctx := context.Background()
	repo := seed()

	err := NewDeselectEstablishment(repo, nil).Execute(ctx, SelectionInput{ClientID: 1, EstablishmentID: 10})
	assert.True(t, httperr.IsBusiness(err, "selection_not_found"))

	rec, err := NewSelectEstablishment(repo, nil).Execute(ctx, SelectionInput{ClientID: 1, EstablishmentID: 10})
	require.NoError(t, err)

	require.NoError(t, NewDeselectEstablishment(repo, nil).Execute(ctx, SelectionInput{ClientID: 1, EstablishmentID: 10}))
	assert.Zero(t, repo.linksFor(rec.ID))
}

func TestFinalizeLeavesNoSelecting(t *testing.T) {
	ctx := context.Background()
	repo := seed()

	_, err := NewSelectEstablishment(repo, nil).Execute(ctx, SelectionInput{ClientID: 1, EstablishmentID: 10})
	require.NoError(t, err)

	n, err := NewFinalizeSelection(repo, nil).Execute(ctx, 1, 1)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	_, err = repo.FindSelecting(ctx, 1)
	assert.Error(t, err)

	n, err = NewFinalizeSelection(repo, nil).Execute(ctx, 1, 1)
	require.NoError(t, err)
	assert.Zero(t, n)
}

func TestViewSelectModeCreatesSelectionAndFlags(t *testing.T) {
	ctx := context.Background()
	repo := seed()

	_, err := NewSelectEstablishment(repo, nil).Execute(ctx, SelectionInput{ClientID: 1, EstablishmentID: 12})
	require.NoError(t, err)

	view, err := NewViewClientRecommendations(repo).Execute(ctx, 1, domain.ModeSelect)
	require.NoError(t, err)

	require.NotNil(t, view.Current)
	assert.Equal(t, string(domain.StatusSelecting), view.Current.Status)
	assert.Equal(t, []uint{12, 10, 11}, offerIDs(view.Offers))
	assert.True(t, view.Offers[0].Selected)
	assert.False(t, view.Offers[1].Selected)
}

func TestViewSelectModeUsesSelectionEvenWhenNewerActiveExists(t *testing.T) {
	ctx := context.Background()
	repo := seed()

	_, err := NewSelectEstablishment(repo, nil).Execute(ctx, SelectionInput{ClientID: 1, EstablishmentID: 10})
	require.NoError(t, err)
	_, err = NewCreateRecommendation(repo, nil).Execute(ctx, CreateRecommendationInput{ClientID: 1})
	require.NoError(t, err)

	view, err := NewViewClientRecommendations(repo).Execute(ctx, 1, domain.ModeSelect)
	require.NoError(t, err)

	assert.Equal(t, string(domain.StatusSelecting), view.Current.Status)
	assert.Len(t, view.Recommendations, 2)
}

func TestViewGenerateModeListsMatchesOnly(t *testing.T) {
	ctx := context.Background()
	repo := seed()

	view, err := NewViewClientRecommendations(repo).Execute(ctx, 1, domain.ModeGenerate)
	require.NoError(t, err)

	// 10 cobre 3000; 11 começa em 3500; 12 é comercial
	assert.Equal(t, []uint{10}, offerIDs(view.Offers))
	require.NotNil(t, view.Current)
	assert.Equal(t, string(domain.StatusActive), view.Current.Status)
	assert.Len(t, view.Recommendations, 1)

	again, err := NewViewClientRecommendations(repo).Execute(ctx, 1, domain.ModeGenerate)
	require.NoError(t, err)
	assert.Len(t, again.Recommendations, 1)
}

func TestViewDefaultModeShowsLatestAttachments(t *testing.T) {
	ctx := context.Background()
	repo := seed()

	empty, err := NewViewClientRecommendations(repo).Execute(ctx, 1, domain.ModeView)
	require.NoError(t, err)
	assert.Nil(t, empty.Current)
	assert.Empty(t, empty.Offers)

	rec, err := NewCreateRecommendation(repo, nil).Execute(ctx, CreateRecommendationInput{ClientID: 1, WithMatches: true})
	require.NoError(t, err)

	view, err := NewViewClientRecommendations(repo).Execute(ctx, 1, domain.ModeView)
	require.NoError(t, err)
	assert.Equal(t, rec.ID, view.Current.ID)
	assert.Equal(t, []uint{10}, offerIDs(view.Offers))
	assert.True(t, view.Offers[0].Selected)

	_, err = NewViewClientRecommendations(repo).Execute(ctx, 42, domain.ModeView)
	assert.True(t, httperr.IsBusiness(err, "client_not_found"))
}

func TestSaveNotesScopedToClient(t *testing.T) {
	ctx := context.Background()
	repo := seed()
	repo.clients[2] = models.Client{ID: 2, Name: "Bruno"}

	rec, err := NewCreateRecommendation(repo, nil).Execute(ctx, CreateRecommendationInput{ClientID: 1})
	require.NoError(t, err)

	_, err = NewSaveNotes(repo, nil).Execute(ctx, SaveNotesInput{ClientID: 2, RecommendationID: rec.ID, Notes: "x"})
	assert.True(t, httperr.IsBusiness(err, "recommendation_not_found"))

	saved, err := NewSaveNotes(repo, nil).Execute(ctx, SaveNotesInput{ClientID: 1, RecommendationID: rec.ID, Notes: " visitar sábado ", Message: "Olá!"})
	require.NoError(t, err)
	assert.Equal(t, "visitar sábado", saved.Notes)
	assert.Equal(t, "visitar sábado", repo.recs[rec.ID].Notes)
}

func TestDeleteRemovesLinks(t *testing.T) {
	ctx := context.Background()
	repo := seed()

	rec, err := NewCreateRecommendation(repo, nil).Execute(ctx, CreateRecommendationInput{ClientID: 1, WithMatches: true})
	require.NoError(t, err)
	require.Equal(t, 1, repo.linksFor(rec.ID))

	clientID, err := NewDeleteRecommendation(repo, nil).Execute(ctx, 1, rec.ID)
	require.NoError(t, err)
	assert.Equal(t, uint(1), clientID)
	assert.Zero(t, repo.linksFor(rec.ID))
	assert.NotContains(t, repo.recs, rec.ID)

	_, err = NewDeleteRecommendation(repo, nil).Execute(ctx, 1, rec.ID)
	assert.True(t, httperr.IsBusiness(err, "recommendation_not_found"))
}
