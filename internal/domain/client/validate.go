package client

import (
	"strings"

	"github.com/BruksfildServices01/habitta/internal/httperr"
	"github.com/BruksfildServices01/habitta/internal/models"
	"github.com/BruksfildServices01/habitta/internal/validators"
)

// Validate confere os campos obrigatórios antes de gravar.
// knownTypes vem da tabela de tipos de estabelecimento.
func Validate(c *models.Client, knownTypes []string) error {
	c.Name = strings.TrimSpace(c.Name)
	c.Email = strings.TrimSpace(c.Email)
	c.InterestNeighborhood = strings.TrimSpace(c.InterestNeighborhood)
	c.InterestType = strings.ToLower(strings.TrimSpace(c.InterestType))

	if c.Name == "" {
		return httperr.ErrBusiness("invalid_name")
	}
	if c.MonthlyIncome < 0 {
		return httperr.ErrBusiness("invalid_income")
	}
	if c.Email != "" && !validators.IsEmailSyntaxValid(c.Email) {
		return httperr.ErrBusiness("invalid_email")
	}
	if c.InterestType == "" {
		return nil
	}

	for _, t := range knownTypes {
		if t == c.InterestType {
			return nil
		}
	}
	return httperr.ErrBusiness("invalid_interest_type")
}

// ValidateUpdate exige também o tipo de interesse, como na edição.
func ValidateUpdate(c *models.Client, knownTypes []string) error {
	if strings.TrimSpace(c.InterestType) == "" {
		return httperr.ErrBusiness("invalid_interest_type")
	}
	return Validate(c, knownTypes)
}
