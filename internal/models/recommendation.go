package models

import "time"

type Recommendation struct {
	ID uint `gorm:"primaryKey" json:"id"`

	ClientID uint   `gorm:"column:cliente_id;not null;index" json:"cliente_id"`
	Client   Client `gorm:"foreignKey:ClientID;constraint:OnUpdate:CASCADE,OnDelete:RESTRICT;" json:"-"`

	Status  string `gorm:"size:20;not null;default:'ativa'" json:"status"`
	Notes   string `gorm:"column:observacoes;type:text" json:"observacoes"`
	Message string `gorm:"column:mensagem;type:text" json:"mensagem"`

	CreatedAt time.Time `gorm:"column:data" json:"data"`
	UpdatedAt time.Time `gorm:"column:data_atualizacao" json:"data_atualizacao"`
}

func (Recommendation) TableName() string { return "recomendacoes" }

// Junção recomendação x estabelecimento. A chave composta impede pares duplicados.
type RecommendationEstablishment struct {
	RecommendationID uint `gorm:"column:recomendacao_id;primaryKey;autoIncrement:false" json:"recomendacao_id"`
	EstablishmentID  uint `gorm:"column:estabelecimento_id;primaryKey;autoIncrement:false;index" json:"estabelecimento_id"`

	Recommendation Recommendation `gorm:"foreignKey:RecommendationID;constraint:OnDelete:RESTRICT;" json:"-"`
	Establishment  Establishment  `gorm:"foreignKey:EstablishmentID;constraint:OnDelete:RESTRICT;" json:"-"`

	CreatedAt time.Time `json:"created_at"`
}

func (RecommendationEstablishment) TableName() string { return "recomendacao_estabelecimentos" }
