// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package share

import (
	"fmt"
	"io"
	"strconv"
)

// A Layout controls the spacing of a text table.
//
// All layouts put the label column first, left-aligned to the table
// width, followed by milliseconds right-aligned in 8 columns and the
// percentage right-aligned in 8 columns.
type Layout struct {
	// Header prints a "function ms % sum" header line.
	Header bool

	// PercentWidth is the width of the header's "% sum" column.
	PercentWidth int

	// Gap separates the milliseconds and percentage columns of
	// data rows.
	Gap string
}

var (
	// Standard has a header and a two-space gap.
	Standard = Layout{Header: true, PercentWidth: 8, Gap: "  "}

	// Compact has a header and a one-space gap in data rows. The
	// header's percentage column is one narrower, so the header
	// lines up with the rows.
	Compact = Layout{Header: true, PercentWidth: 7, Gap: " "}

	// Bare has no header.
	Bare = Layout{Gap: "  "}
)

const (
	millisWidth  = 8
	percentWidth = 8
)

// Column headers.
const (
	FunctionHeader = "function"
	MillisHeader   = "ms"
	PercentHeader  = "% sum"
)

// FormatPercent formats a fraction as a percentage with two decimal
// places, such as "75.00%".
func FormatPercent(frac float64) string {
	return strconv.FormatFloat(frac*100, 'f', 2, 64) + "%"
}

// FormatText writes the text form of each table to w.
func FormatText(w io.Writer, tables ...*Table) error {
	for _, t := range tables {
		if err := t.formatText(w); err != nil {
			return err
		}
	}
	return nil
}

func (t *Table) formatText(w io.Writer) error {
	if t.Title != "" {
		if _, err := fmt.Fprintf(w, "\n%s\n", t.Title); err != nil {
			return err
		}
	}
	l := t.Layout
	if l.Header {
		if _, err := fmt.Fprintf(w, "%-*s%*s  %*s\n", t.Width, FunctionHeader, millisWidth, MillisHeader, l.PercentWidth, PercentHeader); err != nil {
			return err
		}
	}
	for _, r := range t.Rows {
		if _, err := fmt.Fprintf(w, "%-*s%*.0f%s%*s\n", t.Width, r.Label, millisWidth, r.Millis, l.Gap, percentWidth, FormatPercent(r.Fraction)); err != nil {
			return err
		}
	}
	return nil
}

// Format writes the summary line for t to w. The line is preceded by
// a blank line.
func (t *Totals) Format(w io.Writer) error {
	_, err := fmt.Fprintf(w, "\nTotal time accounted for: %.0fms/%.0fms = %s\n", t.AccountedMillis, t.TotalMillis, FormatPercent(t.Fraction()))
	return err
}
