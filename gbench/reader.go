// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gbench

import (
	"fmt"
	"io"

	jsoniter "github.com/json-iterator/go"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type rawFile struct {
	Context    map[string]any   `json:"context"`
	Benchmarks []map[string]any `json:"benchmarks"`
}

// Parse reads a benchmark results file from r. fileName is used in
// error messages; it is purely diagnostic. The input must hold exactly
// one JSON object.
func Parse(r io.Reader, fileName string) (*File, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("reading %s: %w", fileName, err)
	}
	var raw rawFile
	if err := json.Unmarshal(data, &raw); err != nil {
		return nil, fmt.Errorf("parsing %s: %w", fileName, err)
	}
	f := &File{Context: raw.Context}
	for i, entry := range raw.Benchmarks {
		if entry == nil {
			return nil, fmt.Errorf("parsing %s: benchmark %d is null", fileName, i)
		}
		f.Benchmarks = append(f.Benchmarks, newRecord(entry))
	}
	return f, nil
}

func newRecord(entry map[string]any) *Record {
	r := &Record{Values: make(map[string]float64, len(entry))}
	for key, val := range entry {
		switch val := val.(type) {
		case float64:
			r.Values[key] = val
		case string:
			switch key {
			case "name":
				r.Name = val
			case "run_name":
				r.RunName = val
			case "run_type":
				r.RunType = val
			case "time_unit":
				r.TimeUnit = val
			}
		}
	}
	r.Iterations = int64(r.Values["iterations"])
	r.RealTime = r.Values["real_time"]
	r.CPUTime = r.Values["cpu_time"]
	return r
}
