// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package share computes component-share reports: for an ordered set
// of labels, each label's time in milliseconds and its fraction of a
// denominator.
//
// Values are looked up by label and are in nanoseconds. A label that
// has no value counts as zero.
package share

import (
	"errors"
	"math"
	"strconv"
	"unicode/utf8"

	"github.com/aclements/go-moremath/stats"
)

// NanosPerMilli converts recorded values to milliseconds.
const NanosPerMilli = 1e6

// Values is a source of labeled measurements in nanoseconds.
// Value must return 0 for an unknown label.
type Values interface {
	Value(label string) float64
}

// Map is a Values backed by a map.
type Map map[string]float64

// Value returns m[label], or 0 if m has no such label.
func (m Map) Value(label string) float64 {
	return m[label]
}

// Millis returns the value of label in v, in milliseconds.
func Millis(v Values, label string) float64 {
	return v.Value(label) / NanosPerMilli
}

// Sum returns the total of labels' values in v, in milliseconds.
func Sum(v Values, labels []string) float64 {
	xs := make([]float64, len(labels))
	for i, l := range labels {
		xs[i] = v.Value(l)
	}
	return stats.Sample{Xs: xs}.Sum() / NanosPerMilli
}

// ErrNoLabels is returned by Compute for an empty label set.
var ErrNoLabels = errors.New("empty label set")

// A ZeroDenominatorError is returned when the denominator of a report
// is not positive, so no meaningful percentage can be computed.
type ZeroDenominatorError struct {
	// First is the first label of the report's label set.
	First string

	// Total is the label holding the total time, if the denominator
	// was that total rather than a value derived from the label set.
	Total string

	// Denominator is the rejected denominator, in milliseconds.
	Denominator float64
}

func (e *ZeroDenominatorError) Error() string {
	what := "zero"
	switch {
	case math.IsNaN(e.Denominator):
		what = "not a number"
	case e.Denominator < 0:
		what = "negative (" + strconv.FormatFloat(e.Denominator, 'g', -1, 64) + "ms)"
	}
	if e.Total != "" {
		return "cannot compute percentages: total " + e.Total + " is " + what
	}
	return "cannot compute percentages: denominator is " + what + " for label set starting with " + e.First
}

// positive reports whether d can serve as a denominator. NaN is not.
func positive(d float64) bool {
	return d > 0
}

// A Row is one label's line in a report.
type Row struct {
	Label    string
	Millis   float64
	Fraction float64 // Millis / Table.Denominator
}

// A Table is a computed component-share report.
type Table struct {
	// Name identifies the table in machine-readable output.
	Name string

	// Title is printed on its own line before the table, if non-empty.
	Title string

	Rows []Row

	// Denominator is the value, in milliseconds, each row is a
	// fraction of.
	Denominator float64

	// Width is the width of the label column.
	Width int

	Layout Layout
}

// Option configures a Table built by Compute.
type Option func(*Table)

// Named sets the table's name.
func Named(name string) Option {
	return func(t *Table) { t.Name = name }
}

// Title sets the table's title.
func Title(title string) Option {
	return func(t *Table) { t.Title = title }
}

// WithLayout sets the table's layout. The default is Standard.
func WithLayout(l Layout) Option {
	return func(t *Table) { t.Layout = l }
}

// WidthFrom sizes the label column to the longest of labels instead
// of the table's own labels.
func WidthFrom(labels []string) Option {
	return func(t *Table) {
		if len(labels) > 0 {
			t.Width = labelWidth(labels)
		}
	}
}

// Compute builds the report of labels' values in v as fractions of
// denominator, in milliseconds. Rows appear in the order of labels.
func Compute(v Values, labels []string, denominator float64, opts ...Option) (*Table, error) {
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}
	if !positive(denominator) {
		return nil, &ZeroDenominatorError{First: labels[0], Denominator: denominator}
	}
	t := &Table{
		Rows:        make([]Row, len(labels)),
		Denominator: denominator,
		Width:       labelWidth(labels),
		Layout:      Standard,
	}
	for i, l := range labels {
		ms := Millis(v, l)
		t.Rows[i] = Row{l, ms, ms / denominator}
	}
	for _, o := range opts {
		o(t)
	}
	return t, nil
}

// Sum returns the total milliseconds over t's rows.
func (t *Table) Sum() float64 {
	xs := make([]float64, len(t.Rows))
	for i, r := range t.Rows {
		xs[i] = r.Millis
	}
	return stats.Sample{Xs: xs}.Sum()
}

func labelWidth(labels []string) int {
	w := 0
	for _, l := range labels {
		if n := utf8.RuneCountInString(l); n > w {
			w = n
		}
	}
	return w
}

// Totals compares the time accounted for by a label set against a
// total time.
type Totals struct {
	AccountedMillis float64
	TotalMillis     float64
}

// NewTotals returns the totals of labels against the value of
// totalLabel in v.
func NewTotals(v Values, labels []string, totalLabel string) (*Totals, error) {
	if len(labels) == 0 {
		return nil, ErrNoLabels
	}
	t := &Totals{Sum(v, labels), Millis(v, totalLabel)}
	if !positive(t.TotalMillis) {
		return nil, &ZeroDenominatorError{First: labels[0], Total: totalLabel, Denominator: t.TotalMillis}
	}
	return t, nil
}

// Fraction returns the accounted fraction of the total.
func (t *Totals) Fraction() float64 {
	return t.AccountedMillis / t.TotalMillis
}
