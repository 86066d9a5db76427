package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/habitta/internal/domain/establishment"
	"github.com/BruksfildServices01/habitta/internal/dto"
	"github.com/BruksfildServices01/habitta/internal/models"
	"github.com/BruksfildServices01/habitta/internal/pagination"
)

type EstablishmentGormRepository struct {
	db *gorm.DB
}

func NewEstablishmentGormRepository(db *gorm.DB) *EstablishmentGormRepository {
	return &EstablishmentGormRepository{db: db}
}

func establishmentFilter(p pagination.Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = pagination.NameLike("nome", p.Busca)(db)
		if p.Filtro != domain.FilterAll {
			db = db.Where("tipo = ?", p.Filtro)
		}
		return db
	}
}

func (r *EstablishmentGormRepository) ListTypes(ctx context.Context) ([]string, error) {
	var names []string
	if err := r.db.WithContext(ctx).
		Model(&models.EstablishmentType{}).
		Order("nome ASC").
		Pluck("nome", &names).Error; err != nil {
		return nil, err
	}
	return names, nil
}

func (r *EstablishmentGormRepository) List(
	ctx context.Context,
	p pagination.Params,
) ([]models.Establishment, int64, error) {

	db := r.db.WithContext(ctx)
	filter := establishmentFilter(p)

	var total int64
	if err := db.Model(&models.Establishment{}).
		Scopes(filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var ests []models.Establishment
	if err := db.
		Scopes(filter, p.Paginate).
		Order("nome ASC").
		Find(&ests).Error; err != nil {
		return nil, 0, err
	}

	return ests, total, nil
}

func (r *EstablishmentGormRepository) ListAll(
	ctx context.Context,
	p pagination.Params,
) ([]models.Establishment, error) {

	var ests []models.Establishment
	if err := r.db.WithContext(ctx).
		Scopes(establishmentFilter(p)).
		Order("nome ASC").
		Find(&ests).Error; err != nil {
		return nil, err
	}
	return ests, nil
}

func (r *EstablishmentGormRepository) Summary(ctx context.Context) (*dto.EstablishmentSummary, error) {
	var rows []struct {
		Tipo  string
		Total int64
	}
	if err := r.db.WithContext(ctx).
		Model(&models.Establishment{}).
		Select("tipo, COUNT(*) AS total").
		Group("tipo").
		Scan(&rows).Error; err != nil {
		return nil, err
	}

	s := &dto.EstablishmentSummary{ByType: map[string]int64{}}
	for _, row := range rows {
		s.ByType[row.Tipo] = row.Total
		s.Total += row.Total
	}
	return s, nil
}

func (r *EstablishmentGormRepository) Get(ctx context.Context, id uint) (*models.Establishment, error) {
	var est models.Establishment
	if err := r.db.WithContext(ctx).First(&est, id).Error; err != nil {
		return nil, err
	}
	return &est, nil
}

func (r *EstablishmentGormRepository) Create(ctx context.Context, est *models.Establishment) error {
	return r.db.WithContext(ctx).Create(est).Error
}

func (r *EstablishmentGormRepository) Update(ctx context.Context, est *models.Establishment) error {
	res := r.db.WithContext(ctx).
		Model(&models.Establishment{}).
		Where("id = ?", est.ID).
		Updates(map[string]any{
			"nome":             est.Name,
			"tipo":             est.Type,
			"bairro":           est.Neighborhood,
			"faixa_min":        est.PriceMin,
			"faixa_max":        est.PriceMax,
			"valor_medio":      est.AveragePrice,
			"contato_nome":     est.ContactName,
			"contato_telefone": est.ContactPhone,
			"observacoes":      est.Notes,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *EstablishmentGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("estabelecimento_id = ?", id).
			Delete(&models.RecommendationEstablishment{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Establishment{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
