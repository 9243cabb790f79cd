// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package share

import (
	"fmt"
	"image/color"
	"io"
	"math"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// ChartFormats lists the formats accepted by Chart.
var ChartFormats = []string{"png", "svg", "pdf"}

// Chart draws t as a bar chart of each label's percentage and writes
// it to w in the given format, one of ChartFormats.
func Chart(w io.Writer, t *Table, format string) error {
	pl, err := newChart(t)
	if err != nil {
		return err
	}
	// Heuristic size: wide enough for the rotated labels.
	width := vg.Length(2+len(t.Rows)) * 1.5 * vg.Centimeter
	height := 12 * vg.Centimeter
	wt, err := pl.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}

func newChart(t *Table) (*plot.Plot, error) {
	vals := make(plotter.Values, len(t.Rows))
	names := make([]string, len(t.Rows))
	for i, r := range t.Rows {
		v := r.Fraction * 100
		if math.IsInf(v, 0) || math.IsNaN(v) {
			return nil, fmt.Errorf("%s: row %s has no finite percentage", t.Name, r.Label)
		}
		vals[i] = v
		names[i] = r.Label
	}

	pl := plot.New()
	pl.Title.Text = t.Title
	if pl.Title.Text == "" {
		pl.Title.Text = t.Name
	}
	pl.Y.Label.Text = PercentHeader
	pl.Y.Min = 0

	bars, err := plotter.NewBarChart(vals, vg.Points(20))
	if err != nil {
		return nil, err
	}
	bars.LineStyle.Width = vg.Length(0)
	bars.Color = color.RGBA{R: 0x42, G: 0x85, B: 0xf4, A: 0xff}
	pl.Add(bars)
	pl.NominalX(names...)

	pl.X.Tick.Label.Rotation = -math.Pi / 8
	pl.X.Tick.Label.YAlign = draw.YTop
	pl.X.Tick.Label.XAlign = draw.XLeft

	grid := plotter.NewGrid()
	grid.Vertical.Color = nil
	pl.Add(grid)
	return pl, nil
}
