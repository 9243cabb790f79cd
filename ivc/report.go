// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package ivc

import (
	"fmt"
	"io"

	"golang.org/x/ivcshare/share"
)

// A Section describes one component-share report.
type Section struct {
	// Name identifies the section in CSV output, charts and the
	// report archive.
	Name string

	// Title, if non-empty, is printed above the section.
	Title string

	// Labels are the reported labels, in print order.
	Labels []string

	// Basis determines the denominator of the section's
	// percentages.
	Basis Basis

	Layout share.Layout

	// WidthFrom, if non-empty, sizes the label column to these
	// labels instead of Labels.
	WidthFrom []string

	// Totals prints how much of the benchmark's total time
	// Labels account for.
	Totals bool
}

// A Basis computes the denominator of a section from a record.
type Basis struct {
	labels []string // sum of these labels; nil means the section's own labels
	label  string   // value of this label, if non-empty
}

// OwnSum is the sum of the section's own labels.
func OwnSum() Basis { return Basis{} }

// SumOf is the sum of labels.
func SumOf(labels []string) Basis { return Basis{labels: labels} }

// LabelValue is the value of a single label.
func LabelValue(label string) Basis { return Basis{label: label} }

// Denominator returns b's value in milliseconds for section labels
// in v.
func (b Basis) Denominator(v share.Values, labels []string) float64 {
	switch {
	case b.label != "":
		return share.Millis(v, b.label)
	case b.labels != nil:
		return share.Sum(v, b.labels)
	}
	return share.Sum(v, labels)
}

func (b Basis) String() string {
	switch {
	case b.label != "":
		return b.label
	case b.labels != nil:
		return fmt.Sprintf("sum of %d labels", len(b.labels))
	}
	return "own sum"
}

// A Report is a fully evaluated set of sections.
type Report struct {
	Benchmark string
	Tables    []*share.Table

	// Totals holds the totals line printed after each table, or
	// nil if the section has none.
	Totals []*share.Totals
}

// Evaluate computes every section against v. It fails on the first
// section that cannot be computed, so a Report is always complete.
func Evaluate(benchmark string, v share.Values, sections []Section) (*Report, error) {
	r := &Report{Benchmark: benchmark}
	for _, s := range sections {
		d := s.Basis.Denominator(v, s.Labels)
		t, err := share.Compute(v, s.Labels, d,
			share.Named(s.Name), share.Title(s.Title), share.WithLayout(s.Layout), share.WidthFrom(s.WidthFrom))
		if err != nil {
			return nil, err
		}
		var tot *share.Totals
		if s.Totals {
			tot, err = share.NewTotals(v, s.Labels, TotalLabel)
			if err != nil {
				return nil, err
			}
		}
		r.Tables = append(r.Tables, t)
		r.Totals = append(r.Totals, tot)
	}
	return r, nil
}

// WriteText writes the text form of r to w.
func (r *Report) WriteText(w io.Writer) error {
	for i, t := range r.Tables {
		if err := share.FormatText(w, t); err != nil {
			return err
		}
		if tot := r.Totals[i]; tot != nil {
			if err := tot.Format(w); err != nil {
				return err
			}
		}
	}
	return nil
}

// WriteCSV writes r's rows to w as CSV.
func (r *Report) WriteCSV(w io.Writer) error {
	return share.FormatCSV(w, r.Tables)
}

// WriteHTML writes r's tables to w as HTML.
func (r *Report) WriteHTML(w io.Writer) error {
	return share.FormatHTML(w, r.Tables)
}
