package models

import "time"

// Usuário do back-office. Nivel segue a ordem comum < gerente < admin.
type User struct {
	ID uint `gorm:"primaryKey" json:"id"`

	Name         string  `gorm:"column:nome;size:150;not null" json:"nome"`
	Email        string  `gorm:"size:150;uniqueIndex;not null" json:"email"`
	CPF          string  `gorm:"column:cpf;size:11;uniqueIndex;not null" json:"cpf"`
	PasswordHash string  `gorm:"column:senha;size:255;not null" json:"-"`
	Level        string  `gorm:"column:nivel;size:20;not null;default:'comum'" json:"nivel"`
	Avatar       *string `gorm:"size:255" json:"avatar"`

	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

func (User) TableName() string { return "usuarios" }
