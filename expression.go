package cron

import (
	"strings"
	"time"

	"github.com/pkg/errors"
)

// Canonical field order, shared by Parse, String and Matches.
const (
	fieldSecond = iota
	fieldMinute
	fieldHour
	fieldDay
	fieldMonth
	fieldWeekday
	fieldYear
	numFields
)

var fieldCtors = [numFields]func(interface{}) (Field, error){
	Second, Minute, Hour, DayOfMonth, Month, DayOfWeek, Year,
}

// Fields names the seven cron fields for NewExpression. Each value may be an
// int, a pattern string or an []int; nil fields default to the wildcard.
type Fields struct {
	Second  interface{}
	Minute  interface{}
	Hour    interface{}
	Day     interface{}
	Month   interface{}
	Weekday interface{}
	Year    interface{}
}

// Expression is a full seven-field cron expression. It is immutable once
// constructed and carries no time zone; matching is against local wall-clock
// components.
type Expression struct {
	fields [numFields]Field
}

// NewExpression builds an expression from named fields, defaulting every
// absent field to the wildcard for its kind.
func NewExpression(f Fields) (*Expression, error) {
	values := [numFields]interface{}{
		f.Second, f.Minute, f.Hour, f.Day, f.Month, f.Weekday, f.Year,
	}

	var e Expression
	for i, v := range values {
		if v == nil {
			v = "*"
		}
		field, err := fieldCtors[i](v)
		if err != nil {
			return nil, err
		}
		e.fields[i] = field
	}
	return &e, nil
}

// Parse builds an expression from a whitespace-separated string of up to seven
// tokens in the order "second minute hour day month weekday year". Missing
// trailing tokens default to the wildcard. A single "@keyword" token resolves
// through the preset table.
func Parse(expr string) (*Expression, error) {
	if strings.HasPrefix(expr, "@") {
		preset, ok := Keyword(strings.TrimPrefix(expr, "@"))
		if !ok {
			return nil, errors.Errorf("cron: unknown keyword %q", expr)
		}
		if preset == nil {
			return nil, errors.Errorf("cron: %q has no clock schedule", expr)
		}
		return preset, nil
	}

	tokens := strings.Fields(expr)
	if len(tokens) > numFields {
		return nil, errors.Errorf("cron: expression %q has %d fields, at most %d allowed", expr, len(tokens), numFields)
	}

	var e Expression
	for i := 0; i < numFields; i++ {
		token := "*"
		if i < len(tokens) {
			token = tokens[i]
		}
		field, err := fieldCtors[i](token)
		if err != nil {
			return nil, errors.Wrapf(err, "cron: bad expression %q", expr)
		}
		e.fields[i] = field
	}
	return &e, nil
}

// MustParse is Parse that panics on error, for expressions known at compile
// time.
func MustParse(expr string) *Expression {
	e, err := Parse(expr)
	if err != nil {
		panic(err)
	}
	return e
}

// Matches reports whether t satisfies all seven fields. The weekday component
// is evaluated with Monday as 0.
func (e *Expression) Matches(t time.Time) bool {
	components := [numFields]int{
		t.Second(),
		t.Minute(),
		t.Hour(),
		t.Day(),
		int(t.Month()),
		(int(t.Weekday()) + 6) % 7,
		t.Year(),
	}
	for i, f := range e.fields {
		if !f.Matches(components[i]) {
			return false
		}
	}
	return true
}

// String renders the seven fields space-joined in canonical order.
func (e *Expression) String() string {
	parts := make([]string, numFields)
	for i, f := range e.fields {
		parts[i] = f.String()
	}
	return strings.Join(parts, " ")
}
