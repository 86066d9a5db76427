package repository

import (
	"context"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	domain "github.com/BruksfildServices01/habitta/internal/domain/recommendation"
	"github.com/BruksfildServices01/habitta/internal/dto"
	"github.com/BruksfildServices01/habitta/internal/models"
	"github.com/BruksfildServices01/habitta/internal/pagination"
)

var _ domain.Repository = (*RecommendationGormRepository)(nil)

type RecommendationGormRepository struct {
	db *gorm.DB
}

func NewRecommendationGormRepository(db *gorm.DB) *RecommendationGormRepository {
	return &RecommendationGormRepository{db: db}
}

// --------------------------------------------------
// Client / Establishment
// --------------------------------------------------

func (r *RecommendationGormRepository) GetClient(
	ctx context.Context,
	clientID uint,
) (*models.Client, error) {

	var client models.Client
	if err := r.db.WithContext(ctx).First(&client, clientID).Error; err != nil {
		return nil, err
	}
	return &client, nil
}

func (r *RecommendationGormRepository) GetEstablishment(
	ctx context.Context,
	establishmentID uint,
) (*models.Establishment, error) {

	var est models.Establishment
	if err := r.db.WithContext(ctx).First(&est, establishmentID).Error; err != nil {
		return nil, err
	}
	return &est, nil
}

func (r *RecommendationGormRepository) ListEstablishments(
	ctx context.Context,
) ([]models.Establishment, error) {

	var ests []models.Establishment
	if err := r.db.WithContext(ctx).
		Order("nome ASC").
		Find(&ests).Error; err != nil {
		return nil, err
	}
	return ests, nil
}

func (r *RecommendationGormRepository) ListMatchingEstablishments(
	ctx context.Context,
	client *models.Client,
) ([]models.Establishment, error) {

	var ests []models.Establishment
	if err := r.db.WithContext(ctx).
		Scopes(domain.MatchingScope(client)).
		Order("nome ASC").
		Find(&ests).Error; err != nil {
		return nil, err
	}
	return ests, nil
}

// --------------------------------------------------
// Recommendation
// --------------------------------------------------

func (r *RecommendationGormRepository) ListForClient(
	ctx context.Context,
	clientID uint,
) ([]models.Recommendation, error) {

	var recs []models.Recommendation
	if err := r.db.WithContext(ctx).
		Where("cliente_id = ?", clientID).
		Order("data DESC, id DESC").
		Find(&recs).Error; err != nil {
		return nil, err
	}
	return recs, nil
}

func (r *RecommendationGormRepository) GetForClient(
	ctx context.Context,
	recommendationID uint,
	clientID uint,
) (*models.Recommendation, error) {

	var rec models.Recommendation
	if err := r.db.WithContext(ctx).
		Where("id = ? AND cliente_id = ?", recommendationID, clientID).
		First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecommendationGormRepository) GetByID(
	ctx context.Context,
	recommendationID uint,
) (*models.Recommendation, error) {

	var rec models.Recommendation
	if err := r.db.WithContext(ctx).First(&rec, recommendationID).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecommendationGormRepository) Create(
	ctx context.Context,
	rec *models.Recommendation,
	establishmentIDs []uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit(clause.Associations).Create(rec).Error; err != nil {
			return err
		}
		if len(establishmentIDs) == 0 {
			return nil
		}

		links := make([]models.RecommendationEstablishment, 0, len(establishmentIDs))
		for _, id := range establishmentIDs {
			links = append(links, models.RecommendationEstablishment{
				RecommendationID: rec.ID,
				EstablishmentID:  id,
			})
		}

		return tx.Omit(clause.Associations).
			Clauses(clause.OnConflict{DoNothing: true}).
			Create(&links).Error
	})
}

// A corrida entre duas requisições é resolvida pelo índice parcial
// ux_recomendacoes_uma_selecao: quem perde o INSERT lê a linha vencedora.
func (r *RecommendationGormRepository) GetOrCreateSelecting(
	ctx context.Context,
	clientID uint,
) (*models.Recommendation, bool, error) {

	rec := models.Recommendation{
		ClientID: clientID,
		Status:   string(domain.StatusSelecting),
	}

	res := r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&rec)
	if res.Error != nil {
		return nil, false, res.Error
	}
	if res.RowsAffected > 0 {
		return &rec, true, nil
	}

	existing, err := r.FindSelecting(ctx, clientID)
	if err != nil {
		return nil, false, err
	}
	return existing, false, nil
}

func (r *RecommendationGormRepository) FindSelecting(
	ctx context.Context,
	clientID uint,
) (*models.Recommendation, error) {

	var rec models.Recommendation
	if err := r.db.WithContext(ctx).
		Where("cliente_id = ? AND status = ?", clientID, string(domain.StatusSelecting)).
		First(&rec).Error; err != nil {
		return nil, err
	}
	return &rec, nil
}

func (r *RecommendationGormRepository) UpdateNotes(
	ctx context.Context,
	rec *models.Recommendation,
) error {

	return r.db.WithContext(ctx).
		Model(&models.Recommendation{}).
		Where("id = ?", rec.ID).
		Updates(map[string]any{
			"observacoes": rec.Notes,
			"mensagem":    rec.Message,
		}).Error
}

// FinalizeSelecting trava as recomendações em seleção do cliente e passa cada uma
// por domain.Finalize antes de gravar o novo status.
func (r *RecommendationGormRepository) FinalizeSelecting(
	ctx context.Context,
	clientID uint,
	now time.Time,
) (int64, error) {

	var n int64
	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var recs []models.Recommendation
		if err := tx.
			Clauses(clause.Locking{Strength: "UPDATE"}).
			Where("cliente_id = ? AND status = ?", clientID, string(domain.StatusSelecting)).
			Find(&recs).Error; err != nil {
			return err
		}
		if len(recs) == 0 {
			return nil
		}

		ids := make([]uint, 0, len(recs))
		for i := range recs {
			if err := domain.Finalize(&recs[i], now); err != nil {
				return err
			}
			ids = append(ids, recs[i].ID)
		}

		res := tx.
			Model(&models.Recommendation{}).
			Where("id IN ?", ids).
			Updates(map[string]any{
				"status":           string(domain.StatusActive),
				"data_atualizacao": now,
			})
		n = res.RowsAffected
		return res.Error
	})
	return n, err
}

// Delete remove os vínculos antes da recomendação, na mesma transação.
func (r *RecommendationGormRepository) Delete(
	ctx context.Context,
	recommendationID uint,
) error {

	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.
			Where("recomendacao_id = ?", recommendationID).
			Delete(&models.RecommendationEstablishment{}).Error; err != nil {
			return err
		}

		res := tx.Delete(&models.Recommendation{}, recommendationID)
		if res.Error != nil {
			return res.Error
		}
		if res.RowsAffected == 0 {
			return gorm.ErrRecordNotFound
		}
		return nil
	})
}

// --------------------------------------------------
// Attachments
// --------------------------------------------------

func (r *RecommendationGormRepository) Attach(
	ctx context.Context,
	recommendationID uint,
	establishmentID uint,
) error {

	link := models.RecommendationEstablishment{
		RecommendationID: recommendationID,
		EstablishmentID:  establishmentID,
	}

	return r.db.WithContext(ctx).
		Omit(clause.Associations).
		Clauses(clause.OnConflict{DoNothing: true}).
		Create(&link).Error
}

func (r *RecommendationGormRepository) Detach(
	ctx context.Context,
	recommendationID uint,
	establishmentID uint,
) (bool, error) {

	res := r.db.WithContext(ctx).
		Where("recomendacao_id = ? AND estabelecimento_id = ?", recommendationID, establishmentID).
		Delete(&models.RecommendationEstablishment{})
	return res.RowsAffected > 0, res.Error
}

func (r *RecommendationGormRepository) ListAttachedIDs(
	ctx context.Context,
	recommendationID uint,
) ([]uint, error) {

	var ids []uint
	if err := r.db.WithContext(ctx).
		Model(&models.RecommendationEstablishment{}).
		Where("recomendacao_id = ?", recommendationID).
		Pluck("estabelecimento_id", &ids).Error; err != nil {
		return nil, err
	}
	return ids, nil
}

func (r *RecommendationGormRepository) ListAttached(
	ctx context.Context,
	recommendationID uint,
) ([]models.Establishment, error) {

	var ests []models.Establishment
	if err := r.db.WithContext(ctx).
		Joins("JOIN recomendacao_estabelecimentos re ON re.estabelecimento_id = estabelecimentos.id").
		Where("re.recomendacao_id = ?", recommendationID).
		Order("estabelecimentos.nome ASC").
		Find(&ests).Error; err != nil {
		return nil, err
	}
	return ests, nil
}

// --------------------------------------------------
// Overview (uma linha por cliente)
// --------------------------------------------------

func overviewBase(db *gorm.DB) *gorm.DB {
	return db.Table("clientes AS c").
		Select("c.id, c.nome, c.renda_mensal, c.telefone, c.email, c.interesse_tipo, c.interesse_bairro, " +
			"COUNT(DISTINCT r.id) AS total_recomendacoes, " +
			"COUNT(DISTINCT e.id) AS total_ofertas").
		Joins("LEFT JOIN recomendacoes r ON r.cliente_id = c.id").
		Joins("LEFT JOIN estabelecimentos e ON " + domain.MatchJoinCondition).
		Group("c.id")
}

// overviewFilter é aplicado igual na página, na contagem e na exportação.
func overviewFilter(p pagination.Params) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		db = pagination.NameLike("c.nome", p.Busca)(db)

		switch p.Filtro {
		case domain.FilterWith:
			db = db.Having("COUNT(DISTINCT r.id) > 0")
		case domain.FilterWithout:
			db = db.Having("COUNT(DISTINCT r.id) = 0 AND COUNT(DISTINCT e.id) > 0")
		case domain.FilterWithoutMatches:
			db = db.Having("COUNT(DISTINCT e.id) = 0")
		}
		return db
	}
}

func (r *RecommendationGormRepository) Overview(
	ctx context.Context,
	p pagination.Params,
) ([]dto.RecommendationOverviewRow, int64, error) {

	db := r.db.WithContext(ctx)
	filter := overviewFilter(p)

	var total int64
	if err := db.
		Table("(?) AS sub", overviewBase(db).Scopes(filter)).
		Count(&total).Error; err != nil {
		return nil, 0, err
	}

	var rows []dto.RecommendationOverviewRow
	if err := overviewBase(db).
		Scopes(filter, p.Paginate).
		Order("c.nome ASC").
		Scan(&rows).Error; err != nil {
		return nil, 0, err
	}

	return rows, total, nil
}

func (r *RecommendationGormRepository) OverviewAll(
	ctx context.Context,
	p pagination.Params,
) ([]dto.RecommendationOverviewRow, error) {

	var rows []dto.RecommendationOverviewRow
	if err := overviewBase(r.db.WithContext(ctx)).
		Scopes(overviewFilter(p)).
		Order("c.nome ASC").
		Scan(&rows).Error; err != nil {
		return nil, err
	}
	return rows, nil
}

func (r *RecommendationGormRepository) OverviewSummary(
	ctx context.Context,
) (*dto.RecommendationOverviewSummary, error) {

	db := r.db.WithContext(ctx)

	var s dto.RecommendationOverviewSummary
	if err := db.
		Table("(?) AS sub", overviewBase(db)).
		Select("COUNT(*) AS total, " +
			"COUNT(*) FILTER (WHERE total_recomendacoes > 0) AS com, " +
			"COUNT(*) FILTER (WHERE total_recomendacoes = 0 AND total_ofertas > 0) AS sem, " +
			"COUNT(*) FILTER (WHERE total_ofertas = 0) AS sem_ofertas").
		Scan(&s).Error; err != nil {
		return nil, err
	}
	return &s, nil
}
