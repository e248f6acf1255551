// Package view renders resource lists as tables shared by JSON list views
// and CSV/PDF exports.
package view

import (
	"strings"
	"time"

	"github.com/noah-isme/sms-console/pkg/export"
)

// Column renders one cell of a row.
type Column[T any] struct {
	Key    string
	Label  string
	Format func(T) string
}

// Table is an ordered set of columns over T.
type Table[T any] struct {
	Title   string
	Columns []Column[T]
}

// Headers returns the column labels.
func (t Table[T]) Headers() []string {
	out := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = col.Label
	}
	return out
}

// Keys returns the column keys.
func (t Table[T]) Keys() []string {
	out := make([]string, len(t.Columns))
	for i, col := range t.Columns {
		out[i] = col.Key
	}
	return out
}

// Rows renders every item, one cell per column.
func (t Table[T]) Rows(items []T) [][]string {
	rows := make([][]string, 0, len(items))
	for _, item := range items {
		row := make([]string, len(t.Columns))
		for i, col := range t.Columns {
			row[i] = col.Format(item)
		}
		rows = append(rows, row)
	}
	return rows
}

// Records renders every item keyed by column key.
func (t Table[T]) Records(items []T) []map[string]string {
	out := make([]map[string]string, 0, len(items))
	for _, item := range items {
		rec := make(map[string]string, len(t.Columns))
		for _, col := range t.Columns {
			rec[col.Key] = col.Format(item)
		}
		out = append(out, rec)
	}
	return out
}

// Select keeps the named columns in the requested order. Unknown keys are
// ignored; an empty selection keeps every column.
func (t Table[T]) Select(keys []string) Table[T] {
	if len(keys) == 0 {
		return t
	}
	byKey := make(map[string]Column[T], len(t.Columns))
	for _, col := range t.Columns {
		byKey[col.Key] = col
	}
	out := Table[T]{Title: t.Title}
	for _, key := range keys {
		if col, ok := byKey[strings.TrimSpace(key)]; ok {
			out.Columns = append(out.Columns, col)
		}
	}
	if len(out.Columns) == 0 {
		return t
	}
	return out
}

// Dataset converts items into an export dataset.
func (t Table[T]) Dataset(items []T) export.Dataset {
	return export.Dataset{Title: t.Title, Headers: t.Headers(), Rows: t.Rows(items)}
}

func date(ts *time.Time) string {
	if ts == nil {
		return ""
	}
	return ts.UTC().Format("2006-01-02")
}

func clock(ts *time.Time) string {
	if ts == nil {
		return "-"
	}
	return ts.UTC().Format("15:04")
}

func dash(s string) string {
	if strings.TrimSpace(s) == "" {
		return "-"
	}
	return s
}

func title(s string) string {
	if s == "" {
		return ""
	}
	words := strings.Fields(strings.ReplaceAll(s, "_", " "))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}
