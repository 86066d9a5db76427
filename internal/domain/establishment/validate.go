package establishment

import (
	"strings"

	"github.com/BruksfildServices01/habitta/internal/httperr"
	"github.com/BruksfildServices01/habitta/internal/models"
)

const FilterAll = "todos"

func Validate(e *models.Establishment, knownTypes []string) error {
	e.Name = strings.TrimSpace(e.Name)
	e.Neighborhood = strings.TrimSpace(e.Neighborhood)
	e.Type = strings.ToLower(strings.TrimSpace(e.Type))

	if e.Name == "" {
		return httperr.ErrBusiness("invalid_name")
	}
	if !IsKnownType(e.Type, knownTypes) {
		return httperr.ErrBusiness("invalid_type")
	}
	if e.PriceMin < 0 || e.PriceMax < 0 || e.AveragePrice < 0 {
		return httperr.ErrBusiness("invalid_price")
	}
	if e.PriceMin > e.PriceMax {
		return httperr.ErrBusiness("invalid_price_range")
	}
	return nil
}

func IsKnownType(t string, knownTypes []string) bool {
	for _, k := range knownTypes {
		if k == t {
			return true
		}
	}
	return false
}
