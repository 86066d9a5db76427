package export

import (
	"encoding/csv"
	"fmt"
	"io"
	"strings"
	"time"

	"github.com/xuri/excelize/v2"

	"github.com/BruksfildServices01/habitta/internal/httperr"
	"github.com/BruksfildServices01/habitta/internal/locale"
)

type Format string

const (
	FormatCSV   Format = "csv"
	FormatExcel Format = "excel"
)

func ParseFormat(raw string) (Format, error) {
	switch f := Format(strings.ToLower(strings.TrimSpace(raw))); f {
	case FormatCSV, FormatExcel:
		return f, nil
	}
	return "", httperr.ErrBusiness("invalid_format")
}

func (f Format) ContentType() string {
	if f == FormatExcel {
		return "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"
	}
	return "text/csv; charset=utf-8"
}

func (f Format) Filename(base string, now time.Time) string {
	ext := "csv"
	if f == FormatExcel {
		ext = "xlsx"
	}
	return fmt.Sprintf("%s_%s.%s", base, now.Format("20060102_1504"), ext)
}

// Money marca um valor monetário: texto pt-BR no CSV, número na planilha.
type Money float64

type Table struct {
	Sheet   string
	Headers []string
	Rows    [][]any
}

func Write(w io.Writer, f Format, t Table) error {
	if f == FormatExcel {
		return WriteXLSX(w, t)
	}
	return WriteCSV(w, t)
}

func WriteCSV(w io.Writer, t Table) error {
	cw := csv.NewWriter(w)

	if err := cw.Write(t.Headers); err != nil {
		return err
	}

	record := make([]string, len(t.Headers))
	for _, row := range t.Rows {
		for i := range record {
			record[i] = ""
			if i < len(row) {
				record[i] = cellText(row[i])
			}
		}
		if err := cw.Write(record); err != nil {
			return err
		}
	}

	cw.Flush()
	return cw.Error()
}

func cellText(v any) string {
	switch x := v.(type) {
	case nil:
		return ""
	case string:
		return x
	case Money:
		return locale.FormatMoney(float64(x))
	case time.Time:
		return locale.FormatDateTime(x)
	default:
		return fmt.Sprint(x)
	}
}

func WriteXLSX(w io.Writer, t Table) error {
	f := excelize.NewFile()
	defer f.Close()

	sheet := t.Sheet
	if sheet == "" {
		sheet = "Dados"
	}
	if err := f.SetSheetName("Sheet1", sheet); err != nil {
		return err
	}

	if err := setRow(f, sheet, 1, toAny(t.Headers)); err != nil {
		return err
	}

	for i, row := range t.Rows {
		values := make([]any, len(row))
		for j, v := range row {
			values[j] = cellValue(v)
		}
		if err := setRow(f, sheet, i+2, values); err != nil {
			return err
		}
	}

	return f.Write(w)
}

func setRow(f *excelize.File, sheet string, row int, values []any) error {
	cell, err := excelize.CoordinatesToCellName(1, row)
	if err != nil {
		return err
	}
	return f.SetSheetRow(sheet, cell, &values)
}

func cellValue(v any) any {
	switch x := v.(type) {
	case Money:
		return float64(x)
	case time.Time:
		return locale.FormatDateTime(x)
	default:
		return v
	}
}

func toAny(in []string) []any {
	out := make([]any, len(in))
	for i, s := range in {
		out[i] = s
	}
	return out
}
