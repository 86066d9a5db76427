package recommendation

import "github.com/BruksfildServices01/habitta/internal/httperr"

// ===============================
// Recommendation Status
// ===============================

type Status string

const (
	StatusSelecting Status = "selecionar"
	StatusActive    Status = "ativa"
)

// ===============================
// Validations
// ===============================

// CanEditSelection: só a recomendação em seleção recebe ou perde imóveis
func CanEditSelection(current Status) error {
	if current != StatusSelecting {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// CanFinalize: só sai de "selecionar" para "ativa"
func CanFinalize(current Status) error {
	if current != StatusSelecting {
		return httperr.ErrBusiness("invalid_state")
	}
	return nil
}

// Recomendações criadas explicitamente (nova / gerar) já nascem ativas
func InitialStatus() Status {
	return StatusActive
}
