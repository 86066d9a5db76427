package locale

import (
	"time"
	_ "time/tzdata"

	"golang.org/x/text/language"
	"golang.org/x/text/message"
)

const DefaultTimezone = "America/Sao_Paulo"

var (
	printer = message.NewPrinter(language.BrazilianPortuguese)
	zone    = DefaultTimezone
)

// SetTimezone troca o fuso de Now e FormatDateTime. Chamar só na inicialização.
func SetTimezone(tz string) {
	if IsValid(tz) {
		zone = tz
	}
}

func IsValid(tz string) bool {
	if tz == "" {
		return false
	}
	_, err := time.LoadLocation(tz)
	return err == nil
}

func Location(tz string) *time.Location {
	if loc, err := time.LoadLocation(tz); tz != "" && err == nil {
		return loc
	}

	if loc, err := time.LoadLocation(DefaultTimezone); err == nil {
		return loc
	}
	return time.UTC
}

func Current() *time.Location {
	return Location(zone)
}

func Now() time.Time {
	return time.Now().In(Current())
}

// FormatMoney formata no padrão brasileiro: 3000 → "3.000,00".
func FormatMoney(v float64) string {
	return printer.Sprintf("%.2f", v)
}

func FormatDateTime(t time.Time) string {
	if t.IsZero() {
		return ""
	}
	return t.In(Current()).Format("02/01/2006 15:04")
}
