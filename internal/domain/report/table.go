// Package report builds tabular reports over the domain data and
// prepares them for JSON output or file export.
package report

import (
	"encoding/json"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// Kind discriminates the cell value union.
type Kind int

const (
	KindNull Kind = iota
	KindString
	KindInt
	KindDecimal
	KindBool
	KindTime
)

// Column describes one report column.
type Column struct {
	Name string `json:"name"`
	Kind Kind   `json:"kind"`
}

// Value is a typed report cell. The zero value is null.
type Value struct {
	kind Kind
	str  string
	num  int64
	dec  decimal.Decimal
	flag bool
	ts   time.Time
}

func Null() Value                     { return Value{} }
func String(s string) Value           { return Value{kind: KindString, str: s} }
func Int(i int64) Value               { return Value{kind: KindInt, num: i} }
func Decimal(d decimal.Decimal) Value { return Value{kind: KindDecimal, dec: d} }
func Bool(b bool) Value               { return Value{kind: KindBool, flag: b} }
func Time(t time.Time) Value          { return Value{kind: KindTime, ts: t.UTC()} }

func (v Value) Kind() Kind { return v.kind }

func (v Value) IsNull() bool { return v.kind == KindNull }

func (v Value) Str() string          { return v.str }
func (v Value) Int() int64           { return v.num }
func (v Value) Dec() decimal.Decimal { return v.dec }
func (v Value) Flag() bool           { return v.flag }
func (v Value) Timestamp() time.Time { return v.ts }

// Display renders the cell for text output. Null becomes empty,
// booleans true/false, times "2006-01-02 15:04:05".
func (v Value) Display() string {
	switch v.kind {
	case KindString:
		return v.str
	case KindInt:
		return decimal.NewFromInt(v.num).String()
	case KindDecimal:
		return v.dec.String()
	case KindBool:
		if v.flag {
			return "true"
		}
		return "false"
	case KindTime:
		return v.ts.Format("2006-01-02 15:04:05")
	}
	return ""
}

// MarshalJSON renders the native JSON representation per kind.
func (v Value) MarshalJSON() ([]byte, error) {
	switch v.kind {
	case KindString:
		return json.Marshal(v.str)
	case KindInt:
		return json.Marshal(v.num)
	case KindDecimal:
		return json.Marshal(v.dec)
	case KindBool:
		return json.Marshal(v.flag)
	case KindTime:
		return json.Marshal(v.ts)
	}
	return []byte("null"), nil
}

// Compare orders two values of the same kind. Mixed kinds and nulls
// sort nulls first, then by display text.
func (v Value) Compare(other Value) int {
	if v.kind != other.kind {
		if v.kind == KindNull {
			return -1
		}
		if other.kind == KindNull {
			return 1
		}
		return strings.Compare(v.Display(), other.Display())
	}
	switch v.kind {
	case KindNull:
		return 0
	case KindString:
		return strings.Compare(strings.ToLower(v.str), strings.ToLower(other.str))
	case KindInt:
		switch {
		case v.num < other.num:
			return -1
		case v.num > other.num:
			return 1
		}
		return 0
	case KindDecimal:
		return v.dec.Cmp(other.dec)
	case KindBool:
		switch {
		case !v.flag && other.flag:
			return -1
		case v.flag && !other.flag:
			return 1
		}
		return 0
	case KindTime:
		switch {
		case v.ts.Before(other.ts):
			return -1
		case v.ts.After(other.ts):
			return 1
		}
		return 0
	}
	return 0
}

// Table is a generated report.
type Table struct {
	Title   string
	Columns []Column
	Rows    [][]Value
}

// ColumnIndex finds a column by case-insensitive name, -1 when absent.
func (t *Table) ColumnIndex(name string) int {
	for i, col := range t.Columns {
		if strings.EqualFold(col.Name, name) {
			return i
		}
	}
	return -1
}

// RowMaps renders rows as column-name keyed maps for JSON responses.
func (t *Table) RowMaps() []map[string]Value {
	out := make([]map[string]Value, len(t.Rows))
	for i, row := range t.Rows {
		m := make(map[string]Value, len(t.Columns))
		for j, col := range t.Columns {
			if j < len(row) {
				m[col.Name] = row[j]
			} else {
				m[col.Name] = Null()
			}
		}
		out[i] = m
	}
	return out
}
