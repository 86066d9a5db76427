package models

import "time"

// Cliente da imobiliária, com renda e preferência de imóvel
type Client struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name                 string  `gorm:"column:nome;size:150;not null;index" json:"nome"`
	MonthlyIncome        float64 `gorm:"column:renda_mensal;not null;default:0" json:"renda_mensal"`
	Phone                string  `gorm:"column:telefone;size:30" json:"telefone"`
	Email                string  `gorm:"size:150" json:"email"`
	InterestType         string  `gorm:"column:interesse_tipo;size:50" json:"interesse_tipo"`
	InterestNeighborhood string  `gorm:"column:interesse_bairro;size:100" json:"interesse_bairro"`
	Status               string  `gorm:"size:20;not null;default:'ativo';index" json:"status"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Client) TableName() string { return "clientes" }
