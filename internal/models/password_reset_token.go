package models

import "time"

type PasswordResetToken struct {
	ID     uint `gorm:"primaryKey" json:"id"`
	UserID uint `gorm:"column:usuario_id;not null;index" json:"usuario_id"`

	Token     string     `gorm:"size:64;uniqueIndex;not null" json:"-"`
	ExpiresAt time.Time  `gorm:"column:expiracao;not null;index" json:"expiracao"`
	UsedAt    *time.Time `gorm:"column:usado_em" json:"usado_em"`

	CreatedAt time.Time `json:"created_at"`
}

func (PasswordResetToken) TableName() string { return "tokens_recuperacao" }

func (t *PasswordResetToken) Usable(now time.Time) bool {
	return t.UsedAt == nil && now.Before(t.ExpiresAt)
}
