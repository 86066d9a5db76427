package access

import (
	"strings"

	"github.com/BruksfildServices01/habitta/internal/httperr"
)

// ===============================
// Permission Level
// ===============================

type Level string

const (
	LevelComum   Level = "comum"
	LevelGerente Level = "gerente"
	LevelAdmin   Level = "admin"
)

var rank = map[Level]int{
	LevelComum:   1,
	LevelGerente: 2,
	LevelAdmin:   3,
}

func ParseLevel(raw string) (Level, error) {
	l := Level(strings.ToLower(strings.TrimSpace(raw)))
	if !l.Valid() {
		return "", httperr.ErrBusiness("invalid_level")
	}
	return l, nil
}

func (l Level) Valid() bool {
	_, ok := rank[l]
	return ok
}

// AtLeast compara na ordem comum < gerente < admin. Nível desconhecido nunca passa.
func (l Level) AtLeast(min Level) bool {
	r, ok := rank[l]
	if !ok {
		return false
	}
	return r >= rank[min]
}
