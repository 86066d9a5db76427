package recommendation

import "strings"

// Modo de visualização das recomendações de um cliente.
type Mode string

const (
	ModeView     Mode = "ver"
	ModeSelect   Mode = "selecionar"
	ModeGenerate Mode = "gerar"
)

// ParseMode cai em "ver" para qualquer valor desconhecido.
func ParseMode(raw string) Mode {
	switch m := Mode(strings.ToLower(strings.TrimSpace(raw))); m {
	case ModeSelect, ModeGenerate:
		return m
	}
	return ModeView
}

// Filtros da visão geral por cliente.
const (
	FilterAll            = "todos"
	FilterWith           = "com"
	FilterWithout        = "sem"
	FilterWithoutMatches = "sem_ofertas"
)

func ValidOverviewFilter(f string) bool {
	switch f {
	case FilterAll, FilterWith, FilterWithout, FilterWithoutMatches:
		return true
	}
	return false
}
