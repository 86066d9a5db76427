package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/habitta/internal/pagination"
)

func TestEstablishmentListCountMatchesPageFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEstablishmentGormRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "estabelecimentos" WHERE tipo = \$1`).
		WithArgs("residencial").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "estabelecimentos" WHERE tipo = \$1 ORDER BY nome ASC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "tipo"}).
			AddRow(1, "Casa Centro", "residencial").
			AddRow(2, "Apto Jardim", "residencial"))

	ests, total, err := repo.List(context.Background(), pagination.Params{Page: 1, Filtro: "residencial"})
	require.NoError(t, err)

	assert.Equal(t, int64(len(ests)), total)
	for _, e := range ests {
		assert.Equal(t, "residencial", e.Type)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstablishmentListCombinesSearchAndType(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEstablishmentGormRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "estabelecimentos" WHERE nome ILIKE \$1 AND tipo = \$2`).
		WithArgs("%loja%", "comercial").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "estabelecimentos" WHERE nome ILIKE \$1 AND tipo = \$2 ORDER BY nome ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, total, err := repo.List(context.Background(), pagination.Params{Page: 1, Busca: "loja", Filtro: "comercial"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstablishmentExportUsesListingFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEstablishmentGormRepository(db)

	mock.ExpectQuery(`SELECT \* FROM "estabelecimentos" WHERE tipo = \$1 ORDER BY nome ASC$`).
		WithArgs("residencial").
		WillReturnRows(sqlmock.NewRows([]string{"id", "tipo"}).AddRow(1, "residencial"))

	ests, err := repo.ListAll(context.Background(), pagination.Params{Page: 3, Filtro: "residencial"})
	require.NoError(t, err)
	require.Len(t, ests, 1)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestEstablishmentSummaryGroupsByType(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewEstablishmentGormRepository(db)

	mock.ExpectQuery(`SELECT tipo, COUNT\(\*\) AS total FROM "estabelecimentos" GROUP BY "tipo"`).
		WillReturnRows(sqlmock.NewRows([]string{"tipo", "total"}).
			AddRow("comercial", 3).
			AddRow("residencial", 5))

	s, err := repo.Summary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(8), s.Total)
	assert.Equal(t, int64(5), s.ByType["residencial"])
	assert.NoError(t, mock.ExpectationsWereMet())
}
