package dto

import (
	"github.com/BruksfildServices01/habitta/internal/domain/recommendation"
	"github.com/BruksfildServices01/habitta/internal/models"
)

// Linha da visão geral de recomendações (uma por cliente).
type RecommendationOverviewRow struct {
	ClientID             uint    `gorm:"column:id" json:"id"`
	Name                 string  `gorm:"column:nome" json:"nome"`
	MonthlyIncome        float64 `gorm:"column:renda_mensal" json:"renda_mensal"`
	Phone                string  `gorm:"column:telefone" json:"telefone"`
	Email                string  `gorm:"column:email" json:"email"`
	InterestType         string  `gorm:"column:interesse_tipo" json:"interesse_tipo"`
	InterestNeighborhood string  `gorm:"column:interesse_bairro" json:"interesse_bairro"`
	Recommendations      int64   `gorm:"column:total_recomendacoes" json:"total_recomendacoes"`
	Offers               int64   `gorm:"column:total_ofertas" json:"total_ofertas"`
}

type RecommendationOverviewSummary struct {
	Total                 int64 `gorm:"column:total" json:"total"`
	WithRecommendation    int64 `gorm:"column:com" json:"com"`
	WithoutRecommendation int64 `gorm:"column:sem" json:"sem"`
	WithoutOffers         int64 `gorm:"column:sem_ofertas" json:"sem_ofertas"`
}

// Tela de recomendações de um cliente.
type ClientRecommendations struct {
	Mode            recommendation.Mode     `json:"modo"`
	Client          models.Client           `json:"cliente"`
	Recommendations []models.Recommendation `json:"recomendacoes"`
	Current         *models.Recommendation  `json:"recomendacao_atual"`
	Offers          []recommendation.Offer  `json:"imoveis"`
}
