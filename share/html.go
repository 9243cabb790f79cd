// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package share

import (
	"io"

	"github.com/google/safehtml/template"
)

const htmlText = `
{{- range .}}
{{with .Title}}<h3>{{.}}</h3>
{{end -}}
<table class='share'>
<tr><th>function<th>ms<th>% sum
{{range .Rows -}}
<tr><td>{{.Label}}<td>{{printf "%.0f" .Millis}}<td>{{percent .Fraction}}
{{end -}}
</table>
{{end -}}
`

var htmlTemplate = template.Must(template.New("share").Funcs(template.FuncMap{
	"percent": FormatPercent,
}).Parse(htmlText))

// FormatHTML writes an HTML table for each table to w.
func FormatHTML(w io.Writer, tables []*Table) error {
	return htmlTemplate.Execute(w, tables)
}
