package client

import (
	"strings"

	"github.com/BruksfildServices01/habitta/internal/httperr"
)

// ===============================
// Client Status
// ===============================

type Status string

const (
	StatusActive    Status = "ativo"
	StatusConcluded Status = "concluido"
	StatusInactive  Status = "inativo"
)

const FilterAll = "todos"

func ParseStatus(raw string) (Status, error) {
	s := Status(strings.ToLower(strings.TrimSpace(raw)))
	switch s {
	case "":
		return StatusActive, nil
	case StatusActive, StatusConcluded, StatusInactive:
		return s, nil
	}
	return "", httperr.ErrBusiness("invalid_status")
}

// ValidFilter aceita "todos" ou um status conhecido.
func ValidFilter(filtro string) bool {
	if filtro == FilterAll {
		return true
	}
	switch Status(filtro) {
	case StatusActive, StatusConcluded, StatusInactive:
		return true
	}
	return false
}
