package recommendation

import (
	"gorm.io/gorm"

	"github.com/BruksfildServices01/habitta/internal/models"
)

// ===============================
// Matching predicate
// ===============================
//
// Um estabelecimento atende o cliente quando tipo e bairro coincidem com o
// interesse e a renda mensal está dentro da faixa [faixa_min, faixa_max].
// As três formas abaixo precisam continuar equivalentes.

// MatchJoinCondition é o predicado em SQL para joins com alias c (clientes) e e (estabelecimentos).
const MatchJoinCondition = "e.tipo = c.interesse_tipo" +
	" AND e.bairro = c.interesse_bairro" +
	" AND e.faixa_min <= c.renda_mensal" +
	" AND c.renda_mensal <= e.faixa_max"

func Matches(c *models.Client, e *models.Establishment) bool {
	return e.Type == c.InterestType &&
		e.Neighborhood == c.InterestNeighborhood &&
		e.PriceMin <= c.MonthlyIncome &&
		c.MonthlyIncome <= e.PriceMax
}

// MatchingScope filtra estabelecimentos para um cliente já carregado.
func MatchingScope(c *models.Client) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		return db.Where(
			"tipo = ? AND bairro = ? AND faixa_min <= ? AND faixa_max >= ?",
			c.InterestType,
			c.InterestNeighborhood,
			c.MonthlyIncome,
			c.MonthlyIncome,
		)
	}
}
