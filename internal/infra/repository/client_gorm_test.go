package repository

import (
	"context"
	"testing"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BruksfildServices01/habitta/internal/models"
	"github.com/BruksfildServices01/habitta/internal/pagination"
)

func TestClientListCountMatchesPageFilter(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientGormRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "clientes" WHERE status = \$1`).
		WithArgs("ativo").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(2))
	mock.ExpectQuery(`SELECT \* FROM "clientes" WHERE status = \$1 ORDER BY nome ASC LIMIT`).
		WillReturnRows(sqlmock.NewRows([]string{"id", "nome", "status"}).
			AddRow(1, "Ana", "ativo").
			AddRow(2, "Bruno", "ativo"))

	clients, total, err := repo.List(context.Background(), pagination.Params{Page: 1, Filtro: "ativo"})
	require.NoError(t, err)

	assert.Equal(t, int64(len(clients)), total)
	for _, c := range clients {
		assert.Equal(t, "ativo", c.Status)
	}
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientListSearchIsCaseInsensitive(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientGormRepository(db)

	mock.ExpectQuery(`SELECT count\(\*\) FROM "clientes" WHERE nome ILIKE \$1`).
		WithArgs("%an\\_a%").
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(0))
	mock.ExpectQuery(`SELECT \* FROM "clientes" WHERE nome ILIKE \$1 ORDER BY nome ASC`).
		WillReturnRows(sqlmock.NewRows([]string{"id"}))

	_, total, err := repo.List(context.Background(), pagination.Params{Page: 1, Busca: "an_a", Filtro: "todos"})
	require.NoError(t, err)
	assert.Zero(t, total)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientDeleteCascadesInsideTransaction(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientGormRepository(db)

	mock.ExpectBegin()
	mock.ExpectExec(`DELETE FROM "recomendacao_estabelecimentos" WHERE recomendacao_id IN \(SELECT id FROM "recomendacoes" WHERE cliente_id = \$1\)`).
		WillReturnResult(sqlmock.NewResult(0, 4))
	mock.ExpectExec(`DELETE FROM "recomendacoes" WHERE cliente_id = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 2))
	mock.ExpectExec(`DELETE FROM "clientes" WHERE "clientes"."id" = \$1`).
		WillReturnResult(sqlmock.NewResult(0, 1))
	mock.ExpectCommit()

	require.NoError(t, repo.Delete(context.Background(), 6))
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientUpdateKeepsStatusWhenOmitted(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientGormRepository(db)

	mock.ExpectExec(`UPDATE "clientes" SET "email"=\$1,"interesse_bairro"=\$2,"interesse_tipo"=\$3,"nome"=\$4,"renda_mensal"=\$5,"telefone"=\$6,"updated_at"=\$7 WHERE id = \$8`).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Client{
		ID:                   7,
		Name:                 "Ana",
		MonthlyIncome:        3000,
		InterestType:         "residencial",
		InterestNeighborhood: "Centro",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}

func TestClientUpdateWritesExplicitStatus(t *testing.T) {
	db, mock := newMockDB(t)
	repo := NewClientGormRepository(db)

	mock.ExpectExec(`UPDATE "clientes" SET .*"renda_mensal"=\$5,"status"=\$6,"telefone"=\$7,"updated_at"=\$8 WHERE id = \$9`).
		WithArgs(sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(), sqlmock.AnyArg(),
			"inativo", sqlmock.AnyArg(), sqlmock.AnyArg(), int64(7)).
		WillReturnResult(sqlmock.NewResult(0, 1))

	err := repo.Update(context.Background(), &models.Client{
		ID:           7,
		Name:         "Ana",
		InterestType: "residencial",
		Status:       "inativo",
	})
	require.NoError(t, err)
	assert.NoError(t, mock.ExpectationsWereMet())
}
