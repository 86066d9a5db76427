package recommendation_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/BruksfildServices01/habitta/internal/domain/recommendation"
	"github.com/BruksfildServices01/habitta/internal/httperr"
	"github.com/BruksfildServices01/habitta/internal/models"
)

func TestMatches(t *testing.T) {
	client := &models.Client{MonthlyIncome: 3000, InterestType: "residencial", InterestNeighborhood: "Centro"}

	tests := []struct {
		name string
		e    models.Establishment
		want bool
	}{
		{"inside range", models.Establishment{Type: "residencial", Neighborhood: "Centro", PriceMin: 2000, PriceMax: 4000}, true},
		{"lower bound inclusive", models.Establishment{Type: "residencial", Neighborhood: "Centro", PriceMin: 3000, PriceMax: 4000}, true},
		{"upper bound inclusive", models.Establishment{Type: "residencial", Neighborhood: "Centro", PriceMin: 1000, PriceMax: 3000}, true},
		{"minimum above income", models.Establishment{Type: "residencial", Neighborhood: "Centro", PriceMin: 3500, PriceMax: 5000}, false},
		{"maximum below income", models.Establishment{Type: "residencial", Neighborhood: "Centro", PriceMin: 1000, PriceMax: 2500}, false},
		{"other type", models.Establishment{Type: "comercial", Neighborhood: "Centro", PriceMin: 2000, PriceMax: 4000}, false},
		{"other neighborhood", models.Establishment{Type: "residencial", Neighborhood: "Jardins", PriceMin: 2000, PriceMax: 4000}, false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, recommendation.Matches(client, &tt.e))
		})
	}
}

func TestBuildOffersSelectedFirst(t *testing.T) {
	all := []models.Establishment{
		{ID: 1, Name: "Aurora"},
		{ID: 2, Name: "Bela Vista"},
		{ID: 3, Name: "Cedro"},
		{ID: 4, Name: "Dália"},
	}

	offers := recommendation.BuildOffers(all, []uint{3, 2}, true)

	names := make([]string, 0, len(offers))
	for _, o := range offers {
		names = append(names, o.Name)
	}
	assert.Equal(t, []string{"Bela Vista", "Cedro", "Aurora", "Dália"}, names)
	assert.True(t, offers[0].Selected)
	assert.True(t, offers[1].Selected)
	assert.False(t, offers[2].Selected)
}

func TestBuildOffersKeepsOrder(t *testing.T) {
	all := []models.Establishment{{ID: 1, Name: "A"}, {ID: 2, Name: "B"}}

	offers := recommendation.BuildOffers(all, []uint{2}, false)

	assert.Equal(t, uint(1), offers[0].ID)
	assert.False(t, offers[0].Selected)
	assert.True(t, offers[1].Selected)
}

func TestParseMode(t *testing.T) {
	assert.Equal(t, recommendation.ModeView, recommendation.ParseMode(""))
	assert.Equal(t, recommendation.ModeView, recommendation.ParseMode("editar"))
	assert.Equal(t, recommendation.ModeSelect, recommendation.ParseMode("selecionar"))
	assert.Equal(t, recommendation.ModeGenerate, recommendation.ParseMode("GERAR"))
}

func TestFinalize(t *testing.T) {
	rec := &models.Recommendation{Status: string(recommendation.StatusSelecting)}
	now := time.Date(2026, 3, 10, 14, 0, 0, 0, time.UTC)

	assert.NoError(t, recommendation.Finalize(rec, now))
	assert.Equal(t, string(recommendation.StatusActive), rec.Status)
	assert.Equal(t, now, rec.UpdatedAt)

	err := recommendation.Finalize(rec, now)
	assert.True(t, httperr.IsBusiness(err, "invalid_state"))
}
