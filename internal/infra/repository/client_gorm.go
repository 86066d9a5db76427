package repository

import (
	"context"

	"gorm.io/gorm"

	domain "github.com/BruksfildServices01/habitta/internal/domain/client"
	"github.com/BruksfildServices01/habitta/internal/dto"
	"github.com/BruksfildServices01/habitta/internal/models"
	"github.com/BruksfildServices01/habitta/internal/pagination"
)

type ClientGormRepository struct {
	db *gorm.DB
}

func NewClientGormRepository(db *gorm.DB) *ClientGormRepository {
	return &ClientGormRepository{db: db}
}

// clientFilter é o único lugar com as regras de busca/filtro de clientes.
func clientFilter(p pagination.Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = pagination.NameLike("nome", p.Busca)(db)
		if p.Filtro != domain.FilterAll {
			db = db.Where("status = ?", p.Filtro)
		}
		return db
	}
}

func (r *ClientGormRepository) List(
	ctx context.Context,
	p pagination.Params,
) ([]models.Client, int64, error) {

	db := r.db.WithContext(ctx)
	filter := clientFilter(p)

	var total int64
	if err := db.Model(&models.Client{}).
		Scopes(filter).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var clients []models.Client
	if err := db.
		Scopes(filter, p.Paginate).
		Order("nome ASC").
		Find(&clients).Error; err != nil {
		return nil, 0, err
	}

	return clients, total, nil
}

func (r *ClientGormRepository) ListAll(
	ctx context.Context,
	p pagination.Params,
) ([]models.Client, error) {

	var clients []models.Client
	if err := r.db.WithContext(ctx).
		Scopes(clientFilter(p)).
		Order("nome ASC").
		Find(&clients).Error; err != nil {
		return nil, err
	}
	return clients, nil
}

func (r *ClientGormRepository) Summary(ctx context.Context) (*dto.ClientSummary, error) {
	var s dto.ClientSummary
	if err := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Select("COUNT(*) AS total, "+
			"COUNT(*) FILTER (WHERE status = ?) AS ativos, "+
			"COUNT(*) FILTER (WHERE status = ?) AS concluidos, "+
			"COUNT(*) FILTER (WHERE status = ?) AS inativos",
			string(domain.StatusActive),
			string(domain.StatusConcluded),
			string(domain.StatusInactive),
		).
		Scan(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *ClientGormRepository) Get(ctx context.Context, id uint) (*models.Client, error) {
	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, id).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *ClientGormRepository) Create(ctx context.Context, client *models.Client) error {
	return r.db.WithContext(ctx).Create(client).Error
}

// Update só grava status quando informado; sem ele o cliente mantém a situação atual.
func (r *ClientGormRepository) Update(ctx context.Context, client *models.Client) error {
	fields := map[string]any{
		"nome":             client.Name,
		"renda_mensal":     client.MonthlyIncome,
		"telefone":         client.Phone,
		"email":            client.Email,
		"interesse_tipo":   client.InterestType,
		"interesse_bairro": client.InterestNeighborhood,
	}
	if client.Status != "" {
		fields["status"] = client.Status
	}

	res := r.db.WithContext(ctx).
		Model(&models.Client{}).
		Where("id = ?", client.ID).
		Updates(fields)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

// Delete apaga vínculos e recomendações do cliente antes do próprio cliente.
func (r *ClientGormRepository) Delete(ctx context.Context, id uint) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		recs := tx.Model(&models.Recommendation{}).
			Select("id").
			Where("cliente_id = ?", id)

		if err := tx.
			Where("recomendacao_id IN (?)", recs).
			Delete(&models.RecommendationEstablishment{}).Error; err != nil {
			return err
		}

		if err := tx.
			Where("cliente_id = ?", id).
			Delete(&models.Recommendation{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Client{}, id)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}
