package models

import "time"

type Establishment struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string  `gorm:"column:nome;size:150;not null;index" json:"nome"`
	Type         string  `gorm:"column:tipo;size:50;not null;index:idx_estabelecimentos_tipo_bairro" json:"tipo"`
	Neighborhood string  `gorm:"column:bairro;size:100;index:idx_estabelecimentos_tipo_bairro" json:"bairro"`
	PriceMin     float64 `gorm:"column:faixa_min;not null;default:0" json:"faixa_min"`
	PriceMax     float64 `gorm:"column:faixa_max;not null;default:0" json:"faixa_max"`
	AveragePrice float64 `gorm:"column:valor_medio;not null;default:0" json:"valor_medio"`

	ContactName  string `gorm:"column:contato_nome;size:150" json:"contato_nome"`
	ContactPhone string `gorm:"column:contato_telefone;size:30" json:"contato_telefone"`
	Notes        string `gorm:"column:observacoes;type:text" json:"observacoes"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (Establishment) TableName() string { return "estabelecimentos" }

type EstablishmentType struct {
	ID   uint   `gorm:"primaryKey" json:"id"`
	Name string `gorm:"column:nome;size:50;uniqueIndex;not null" json:"nome"`
}

func (EstablishmentType) TableName() string { return "tipos_estabelecimento" }
