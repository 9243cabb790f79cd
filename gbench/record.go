// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package gbench reads the JSON output format of the Google Benchmark
// harness, as produced by "--benchmark_format=json" or
// "--benchmark_out=file.json".
//
// A file looks like
//
//	{
//	  "context": {...},
//	  "benchmarks": [
//	    {"name": "ClientIVCBench/Full/6", "real_time": 1.2e10, "commit(t)": 3.4e9, ...},
//	    ...
//	  ]
//	}
//
// Every numeric field of a benchmark entry, including user counters
// such as "commit(t)", is exposed through Record.Values. Values are
// treated as nanoseconds regardless of the entry's time_unit.
package gbench

import "sort"

// A File is a parsed benchmark results file.
type File struct {
	// Context is the harness's description of the machine and
	// build that produced the results. It is passed through
	// without interpretation.
	Context map[string]any

	// Benchmarks is the list of benchmark entries, in file order.
	Benchmarks []*Record
}

// A Record is a single benchmark entry.
//
// Records are not modified after parsing.
type Record struct {
	Name     string
	RunName  string
	RunType  string
	TimeUnit string

	Iterations int64
	RealTime   float64
	CPUTime    float64

	// Values maps every numeric key of the entry to its value.
	Values map[string]float64
}

// Value returns the value recorded under label, or 0 if the record
// has no such label.
func (r *Record) Value(label string) float64 {
	return r.Values[label]
}

// Has reports whether the record has a value for label.
func (r *Record) Has(label string) bool {
	_, ok := r.Values[label]
	return ok
}

// Labels returns the record's value labels in sorted order.
func (r *Record) Labels() []string {
	labels := make([]string, 0, len(r.Values))
	for l := range r.Values {
		labels = append(labels, l)
	}
	sort.Strings(labels)
	return labels
}

// A NotFoundError is returned by Lookup when no benchmark has the
// requested name.
type NotFoundError struct {
	Name string
}

func (e *NotFoundError) Error() string {
	return "benchmark '" + e.Name + "' not found"
}

// Lookup returns the first benchmark whose name is exactly name.
func (f *File) Lookup(name string) (*Record, error) {
	for _, b := range f.Benchmarks {
		if b.Name == name {
			return b, nil
		}
	}
	return nil, &NotFoundError{name}
}

// Names returns the benchmark names in file order.
func (f *File) Names() []string {
	names := make([]string, len(f.Benchmarks))
	for i, b := range f.Benchmarks {
		names[i] = b.Name
	}
	return names
}
