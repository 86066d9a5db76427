package repository

import (
	"context"
	"time"

	"gorm.io/gorm"

	"github.com/BruksfildServices01/habitta/internal/models"
)

type UserGormRepository struct {
	db *gorm.DB
}

func NewUserGormRepository(db *gorm.DB) *UserGormRepository {
	return &UserGormRepository{db: db}
}

// --------------------------------------------------
// User
// --------------------------------------------------

func (r *UserGormRepository) GetByID(ctx context.Context, id uint) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).First(&user, id).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserGormRepository) GetByCPF(ctx context.Context, cpf string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("cpf = ?", cpf).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *UserGormRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Where("LOWER(email) = LOWER(?)", email).
		First(&user).Error; err != nil {
		return nil, err
	}
	return &user, nil
}

// ExistsByCPFOrEmail ignora exceptID (0 = ninguém), usado na edição de perfil.
func (r *UserGormRepository) ExistsByCPFOrEmail(
	ctx context.Context,
	cpf string,
	email string,
	exceptID uint,
) (bool, error) {

	var count int64
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("(cpf = ? OR LOWER(email) = LOWER(?)) AND id <> ?", cpf, email, exceptID).
		Count(&count).Error; err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *UserGormRepository) Create(ctx context.Context, user *models.User) error {
	return r.db.WithContext(ctx).Create(user).Error
}

func (r *UserGormRepository) UpdateProfile(ctx context.Context, user *models.User) error {
	fields := map[string]any{
		"nome":  user.Name,
		"email": user.Email,
		"cpf":   user.CPF,
	}
	if user.PasswordHash != "" {
		fields["senha"] = user.PasswordHash
	}

	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", user.ID).
		Updates(fields).Error
}

func (r *UserGormRepository) SetLevel(ctx context.Context, id uint, level string) error {
	res := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("nivel", level)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// --------------------------------------------------
// Avatar
// --------------------------------------------------

func (r *UserGormRepository) AvatarKey(ctx context.Context, userID uint) (*string, error) {
	var user models.User
	if err := r.db.WithContext(ctx).
		Select("id", "avatar").
		First(&user, userID).Error; err != nil {
		return nil, err
	}
	return user.Avatar, nil
}

func (r *UserGormRepository) SetAvatarKey(ctx context.Context, userID uint, key string) error {
	return r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", userID).
		Update("avatar", key).Error
}

// --------------------------------------------------
// Password reset
// --------------------------------------------------

func (r *UserGormRepository) CreateResetToken(ctx context.Context, token *models.PasswordResetToken) error {
	return r.db.WithContext(ctx).Create(token).Error
}

func (r *UserGormRepository) GetResetToken(ctx context.Context, token string) (*models.PasswordResetToken, error) {
	var t models.PasswordResetToken
	if err := r.db.WithContext(ctx).
		Where("token = ?", token).
		First(&t).Error; err != nil {
		return nil, err
	}
	return &t, nil
}

// ConsumeResetToken troca a senha e marca o token como usado numa única transação.
// Retorna gorm.ErrRecordNotFound se o token já foi usado ou expirou nesse meio tempo.
func (r *UserGormRepository) ConsumeResetToken(
	ctx context.Context,
	token *models.PasswordResetToken,
	passwordHash string,
	now time.Time,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		res := tx.Model(&models.PasswordResetToken{}).
			Where("id = ? AND usado_em IS NULL AND expiracao > ?", token.ID, now).
			Update("usado_em", now)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}

		return tx.Model(&models.User{}).
			Where("id = ?", token.UserID).
			Update("senha", passwordHash).Error
	})
}

func (r *UserGormRepository) PurgeExpiredResetTokens(ctx context.Context, now time.Time) (int64, error) {
	res := r.db.WithContext(ctx).
		Where("expiracao <= ? OR usado_em IS NOT NULL", now).
		Delete(&models.PasswordResetToken{})
	return res.RowsAffected, res.Error
}
