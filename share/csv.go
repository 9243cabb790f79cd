// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package share

import (
	"encoding/csv"
	"io"
	"strconv"
)

// FormatCSV writes tables to w as CSV with columns section, label,
// ms and fraction. Numbers are written with full precision. section
// is the table's name.
func FormatCSV(w io.Writer, tables []*Table) error {
	cw := csv.NewWriter(w)
	cw.Write([]string{"section", "label", "ms", "fraction"})
	for _, t := range tables {
		for _, r := range t.Rows {
			cw.Write([]string{
				t.Name,
				r.Label,
				strconv.FormatFloat(r.Millis, 'f', -1, 64),
				strconv.FormatFloat(r.Fraction, 'f', -1, 64),
			})
		}
	}
	cw.Flush()
	return cw.Error()
}
