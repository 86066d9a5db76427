package repository

import (
	"context"
	"testing"
	"time"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/BruksfildServices01/habitta/internal/models"
	"github.com/BruksfildServices01/habitta/internal/pagination"
)

func TestAttachIsIdempotentUpsert(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecommendationGormRepository(db)
	ctx := context.Background()

	mock.ExpectExec(`INSERT INTO "recomendacao_estabelecimentos" .* ON CONFLICT DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectExec(`INSERT INTO "recomendacao_estabelecimentos" .* ON CONFLICT DO NOTHING`).
		WillReturnResult(sqlmock.NewResult(0, 0))

	require.NoError(t, repo.Attach(ctx, 5, 9))
	require.NoError(t, repo.Attach(ctx, 5, 9))

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateSelectingCreates(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecommendationGormRepository(db)

	mock.ExpectQuery(`INSERT INTO "recomendacoes" .* ON CONFLICT DO NOTHING RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}).AddRow(11))

	rec, created, err := repo.GetOrCreateSelecting(context.Background(), 3)
	require.NoError(t, err)
	assert.True(t, created)
	assert.Equal(t, uint(11), rec.ID)
	assert.Equal(t, "selecionar", rec.Status)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestGetOrCreateSelectingReadsWinnerOnConflict(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecommendationGormRepository(db)

	mock.ExpectQuery(`INSERT INTO "recomendacoes" .* ON CONFLICT DO NOTHING RETURNING`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))
	mock.ExpectQuery(`SELECT \* FROM "recomendacoes" WHERE cliente_id = \$1 AND status = \$2`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cliente_id", "status"}).AddRow(8, 3, "selecionar"))

	rec, created, err := repo.GetOrCreateSelecting(context.Background(), 3)
	require.NoError(t, err)
	assert.False(t, created)
	assert.Equal(t, uint(8), rec.ID)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalizeSelectingMovesAllToActive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecommendationGormRepository(db)
	now := time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "recomendacoes" WHERE cliente_id = \$1 AND status = \$2 FOR UPDATE`).
		WithArgs(int64(7), "selecionar").
		WillReturnRows(sqlmock.NewRows([]string{"id", "cliente_id", "status"}).
			AddRow(11, 7, "selecionar"))
	mock.ExpectExec(`UPDATE "recomendacoes" SET "data_atualizacao"=\$1,"status"=\$2 WHERE id IN \(\$3\)`).
		WithArgs(now, "ativa", int64(11)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	n, err := repo.FinalizeSelecting(context.Background(), 7, now)
	require.NoError(t, err)
	assert.Equal(t, int64(1), n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestFinalizeSelectingWithoutSelectionWritesNothing(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecommendationGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectQuery(`SELECT \* FROM "recomendacoes" WHERE cliente_id = \$1 AND status = \$2 FOR UPDATE`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "cliente_id", "status"}))
	mock.ExpectCommit()

	n, err := repo.FinalizeSelecting(context.Background(), 7, time.Now())
	require.NoError(t, err)
	assert.Zero(t, n)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteRemovesLinksBeforeRecommendation(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecommendationGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "recomendacao_estabelecimentos" WHERE recomendacao_id = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 3))
	mock.ExpectExec(`DELETE FROM "recomendacoes" WHERE "recomendacoes"."id" = \$1`).
		WithArgs(int64(4)).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 4))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestDeleteMissingRecommendationRollsBack(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecommendationGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "recomendacao_estabelecimentos"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectExec(`DELETE FROM "recomendacoes"`).
		WillReturnResult(sqlmock.NewResult(0, 0))
	mock.ExpectRollback()

	err := repo.Delete(context.Background(), 99)
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestListMatchingEstablishmentsUsesInclusiveRange(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecommendationGormRepository(db)

	client := &models.Client{MonthlyIncome: 3000, InterestType: "residencial", InterestNeighborhood: "Centro"}

	mock.ExpectQuery(`SELECT \* FROM "estabelecimentos" WHERE tipo = \$1 AND bairro = \$2 AND faixa_min <= \$3 AND faixa_max >= \$4 ORDER BY nome ASC`).
		WithArgs("residencial", "Centro", 3000.0, 3000.0).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "tipo", "bairro", "faixa_min", "faixa_max"}).
			AddRow(1, "Ed. Aurora", "residencial", "Centro", 2000.0, 4000.0))

	ests, err := repo.ListMatchingEstablishments(context.Background(), client)
	require.NoError(t, err)
	require.Len(t, ests, 1)
	assert.Equal(t, "Ed. Aurora", ests[0].Name)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverviewCountAndPageShareFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecommendationGormRepository(db)

	having := `HAVING COUNT\(DISTINCT r\.id\) > 0`

	mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT c\.id.* GROUP BY c\.id ` + having + `\) AS sub`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(12))
	mock.ExpectQuery(`SELECT c\.id.*LEFT JOIN estabelecimentos e ON e\.tipo = c\.interesse_tipo.* GROUP BY c\.id ` + having + ` ORDER BY c\.nome ASC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "total_recomendacoes", "total_ofertas"}).
			AddRow(1, "Ana", 2, 1))

	rows, total, err := repo.Overview(context.Background(), pagination.Params{Page: 2, Filtro: "com"})
	require.NoError(t, err)
	assert.Equal(t, int64(12), total)
	require.Len(t, rows, 1)
	assert.Equal(t, int64(2), rows[0].Recommendations)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverviewWithoutRecommendationExcludesClientsWithoutOffers(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecommendationGormRepository(db)

	having := `HAVING COUNT\(DISTINCT r\.id\) = 0 AND COUNT\(DISTINCT e\.id\) > 0`

	mock.ExpectQuery(`SELECT count\(\*\) FROM \(SELECT c\.id.* GROUP BY c\.id ` + having + `\) AS sub`).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(`SELECT c\.id.* GROUP BY c\.id ` + having + ` ORDER BY c\.nome ASC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "total_recomendacoes", "total_ofertas"}).
			AddRow(4, "Bruno", 0, 3))

	rows, total, err := repo.Overview(context.Background(), pagination.Params{Page: 1, Filtro: "sem"})
	require.NoError(t, err)
	assert.Equal(t, int64(1), total)
	require.Len(t, rows, 1)
	assert.Zero(t, rows[0].Recommendations)

	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestOverviewSummaryKeepsBucketsApart(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewRecommendationGormRepository(db)

	mock.ExpectQuery(`SELECT COUNT\(\*\) AS total, ` +
		`COUNT\(\*\) FILTER \(WHERE total_recomendacoes > 0\) AS com, ` +
		`COUNT\(\*\) FILTER \(WHERE total_recomendacoes = 0 AND total_ofertas > 0\) AS sem, ` +
		`COUNT\(\*\) FILTER \(WHERE total_ofertas = 0\) AS sem_ofertas FROM \(SELECT c\.id`).
		WillReturnRows(sqlmock.NewRows([]string{"total", "com", "sem", "sem_ofertas"}).
			AddRow(10, 4, 3, 3))

	s, err := repo.OverviewSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(10), s.Total)
	assert.Equal(t, int64(3), s.WithoutRecommendation)
	assert.Equal(t, int64(3), s.WithoutOffers)

	assert.NoError(t, mock.ExpectationsWereMet())
}
