package access_test

import (
	"testing"

	qt "github.com/frankban/quicktest"

	"github.com/BruksfildServices01/habitta/internal/domain/access"
	"github.com/BruksfildServices01/habitta/internal/httperr"
)

func TestAtLeast(t *testing.T) {
	c := qt.New(t)

	tests := []struct {
		level, min access.Level
		want       bool
	}{
		{access.LevelComum, access.LevelComum, true},
		{access.LevelComum, access.LevelGerente, false},
		{access.LevelGerente, access.LevelComum, true},
		{access.LevelGerente, access.LevelAdmin, false},
		{access.LevelAdmin, access.LevelGerente, true},
		{access.Level("root"), access.LevelComum, false},
		{access.Level(""), access.LevelComum, false},
	}

	for _, tt := range tests {
		c.Check(tt.level.AtLeast(tt.min), qt.Equals, tt.want, qt.Commentf("%s >= %s", tt.level, tt.min))
	}
}

func TestParseLevel(t *testing.T) {
	c := qt.New(t)

	l, err := access.ParseLevel(" Admin ")
	c.Assert(err, qt.IsNil)
	c.Assert(l, qt.Equals, access.LevelAdmin)

	_, err = access.ParseLevel("superuser")
	c.Assert(httperr.IsBusiness(err, "invalid_level"), qt.IsTrue)
}
