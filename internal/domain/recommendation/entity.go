package recommendation

import (
	"sort"
	"time"

	"github.com/BruksfildServices01/habitta/internal/models"
)

// ===============================
// Domain Actions
// ===============================

func Finalize(rec *models.Recommendation, now time.Time) error {
	if err := CanFinalize(Status(rec.Status)); err != nil {
		return err
	}

	rec.Status = string(StatusActive)
	rec.UpdatedAt = now
	return nil
}

func NewActive(clientID uint) *models.Recommendation {
	return &models.Recommendation{
		ClientID: clientID,
		Status:   string(InitialStatus()),
	}
}

// Offer é um estabelecimento exibido ao corretor, marcado quando já está na recomendação.
type Offer struct {
	models.Establishment
	Selected bool `json:"selecionado"`
}

// BuildOffers marca os estabelecimentos presentes em attached.
// Com selectedFirst os marcados sobem para o topo, mantendo a ordem por nome.
func BuildOffers(all []models.Establishment, attached []uint, selectedFirst bool) []Offer {
	set := make(map[uint]struct{}, len(attached))
	for _, id := range attached {
		set[id] = struct{}{}
	}

	offers := make([]Offer, 0, len(all))
	for _, e := range all {
		_, ok := set[e.ID]
		offers = append(offers, Offer{Establishment: e, Selected: ok})
	}

	if selectedFirst {
		sort.SliceStable(offers, func(i, j int) bool {
			return offers[i].Selected && !offers[j].Selected
		})
	}
	return offers
}
