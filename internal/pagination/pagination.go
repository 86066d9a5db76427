package pagination

import (
	"strconv"
	"strings"

	"gorm.io/gorm"
)

const PageSize = 10

type Params struct {
	Page   int
	Busca  string
	Filtro string
}

// Parse normaliza os parâmetros de listagem. Página inválida ou <= 0 vira 1.
func Parse(page, busca, filtro string) Params {
	p, err := strconv.Atoi(strings.TrimSpace(page))
	if err != nil || p < 1 {
		p = 1
	}

	filtro = strings.ToLower(strings.TrimSpace(filtro))
	if filtro == "" {
		filtro = "todos"
	}

	return Params{
		Page:   p,
		Busca:  strings.TrimSpace(busca),
		Filtro: filtro,
	}
}

func (p Params) Offset() int {
	return (p.Page - 1) * PageSize
}

// Paginate aplica LIMIT/OFFSET da página corrente.
func (p Params) Paginate(db *gorm.DB) *gorm.DB {
	return db.Offset(p.Offset()).Limit(PageSize)
}

func TotalPages(total int64) int {
	if total <= 0 {
		return 1
	}
	return int((total + PageSize - 1) / PageSize)
}

// NameLike: busca case-insensitive por substring no nome.
func NameLike(column, busca string) func(*gorm.DB) *gorm.DB {
	return func(db *gorm.DB) *gorm.DB {
		if busca == "" {
			return db
		}
		return db.Where(column+" ILIKE ?", "%"+escapeLike(busca)+"%")
	}
}

func escapeLike(s string) string {
	return strings.NewReplacer(`\`, `\\`, `%`, `\%`, `_`, `\_`).Replace(s)
}
