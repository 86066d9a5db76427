package pagination_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/BruksfildServices01/habitta/internal/pagination"
)

func TestParse(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		page, busca, filtro string
		want                pagination.Params
	}{
		{"", "", "", pagination.Params{Page: 1, Filtro: "todos"}},
		{"0", " ana ", "ATIVO", pagination.Params{Page: 1, Busca: "ana", Filtro: "ativo"}},
		{"-3", "", "com", pagination.Params{Page: 1, Filtro: "com"}},
		{"abc", "", "", pagination.Params{Page: 1, Filtro: "todos"}},
		{"4", "", "sem_ofertas", pagination.Params{Page: 4, Filtro: "sem_ofertas"}},
	}

	for _, tt := range tests {
		c.Assert(pagination.Parse(tt.page, tt.busca, tt.filtro), qt.DeepEquals, tt.want)
	}
}

func TestOffsetAndTotalPages(t *testing.T) {
	c := qt.New(t)

	c.Assert(pagination.Params{Page: 1}.Offset(), qt.Equals, 0)
	c.Assert(pagination.Params{Page: 3}.Offset(), qt.Equals, 20)

	c.Assert(pagination.TotalPages(0), qt.Equals, 1)
	c.Assert(pagination.TotalPages(10), qt.Equals, 1)
	c.Assert(pagination.TotalPages(11), qt.Equals, 2)
	c.Assert(pagination.TotalPages(95), qt.Equals, 10)
}
