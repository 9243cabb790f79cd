// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package gbench

import (
	"context"
	"errors"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

const sample = `{
  "context": {"date": "2024-05-01T10:00:00+00:00", "num_cpus": 16},
  "benchmarks": [
    {
      "name": "ClientIVCBench/Full/2",
      "run_name": "ClientIVCBench/Full/2",
      "run_type": "iteration",
      "iterations": 1,
      "real_time": 5000000,
      "cpu_time": 4000000,
      "time_unit": "ms",
      "commit(t)": 1000000
    },
    {
      "name": "ClientIVCBench/Full/6",
      "iterations": 1,
      "real_time": 10000000,
      "cpu_time": 9000000,
      "time_unit": "ms",
      "commit(t)": 3000000,
      "Goblin::merge(t)": 1000000,
      "label": "ignored",
      "error_occurred": false
    },
    {
      "name": "ClientIVCBench/Full/6",
      "real_time": 1
    }
  ]
}`

func TestParse(t *testing.T) {
	f, err := Parse(strings.NewReader(sample), "test")
	if err != nil {
		t.Fatal(err)
	}
	if got, want := f.Names(), []string{"ClientIVCBench/Full/2", "ClientIVCBench/Full/6", "ClientIVCBench/Full/6"}; !reflect.DeepEqual(got, want) {
		t.Errorf("names: want %v, got %v", want, got)
	}
	if got := f.Context["num_cpus"]; got != 16.0 {
		t.Errorf("context num_cpus: want 16, got %v", got)
	}

	r := f.Benchmarks[0]
	if r.RunName != "ClientIVCBench/Full/2" || r.RunType != "iteration" || r.TimeUnit != "ms" {
		t.Errorf("string fields: got %+v", r)
	}
	if r.Iterations != 1 || r.RealTime != 5e6 || r.CPUTime != 4e6 {
		t.Errorf("numeric fields: got iterations=%d real=%v cpu=%v", r.Iterations, r.RealTime, r.CPUTime)
	}

	r = f.Benchmarks[1]
	want := []string{"Goblin::merge(t)", "commit(t)", "cpu_time", "iterations", "real_time"}
	if got := r.Labels(); !reflect.DeepEqual(got, want) {
		t.Errorf("labels: want %v, got %v", want, got)
	}
	if r.Has("label") || r.Has("error_occurred") {
		t.Errorf("non-numeric fields should not be values")
	}
}

func TestValueMissing(t *testing.T) {
	f, err := Parse(strings.NewReader(sample), "test")
	if err != nil {
		t.Fatal(err)
	}
	r := f.Benchmarks[1]
	if got := r.Value("commit(t)"); got != 3e6 {
		t.Errorf("commit(t): want 3e6, got %v", got)
	}
	if r.Has("compute_combiner(t)") {
		t.Errorf("Has(compute_combiner(t)) = true, want false")
	}
	if got := r.Value("compute_combiner(t)"); got != 0 {
		t.Errorf("missing label: want 0, got %v", got)
	}
}

func TestLookup(t *testing.T) {
	f, err := Parse(strings.NewReader(sample), "test")
	if err != nil {
		t.Fatal(err)
	}

	// The first match wins.
	r, err := f.Lookup("ClientIVCBench/Full/6")
	if err != nil {
		t.Fatal(err)
	}
	if r.RealTime != 1e7 {
		t.Errorf("want first ClientIVCBench/Full/6, got real_time %v", r.RealTime)
	}

	_, err = f.Lookup("ClientIVCBench/Full/5")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("want *NotFoundError, got %v", err)
	}
	if got, want := err.Error(), "benchmark 'ClientIVCBench/Full/5' not found"; got != want {
		t.Errorf("want %q, got %q", want, got)
	}
}

func TestParseErrors(t *testing.T) {
	for _, test := range []struct {
		name, data, want string
	}{
		{"truncated", `{"benchmarks": [`, "parsing bad.json: "},
		{"notObject", `[1, 2]`, "parsing bad.json: "},
		{"nullEntry", `{"benchmarks": [null]}`, "parsing bad.json: benchmark 0 is null"},
		{"trailingData", `{"benchmarks": [{"name": "ClientIVCBench/Full/6", "real_time": 1}]} }garbage{`, "parsing bad.json: "},
		{"twoObjects", `{"benchmarks": []} {"benchmarks": []}`, "parsing bad.json: "},
	} {
		t.Run(test.name, func(t *testing.T) {
			_, err := Parse(strings.NewReader(test.data), "bad.json")
			if err == nil {
				t.Fatal("want error, got nil")
			}
			if !strings.HasPrefix(err.Error(), test.want) {
				t.Errorf("want error starting with %q, got %q", test.want, err)
			}
		})
	}
}

func TestParseEmpty(t *testing.T) {
	f, err := Parse(strings.NewReader(`{}`), "empty")
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Benchmarks) != 0 {
		t.Errorf("want no benchmarks, got %d", len(f.Benchmarks))
	}
	if _, err := f.Lookup("x"); err == nil {
		t.Errorf("want not found error")
	}
}

func TestOpener(t *testing.T) {
	ctx := context.Background()
	dir := t.TempDir()
	path := filepath.Join(dir, "bench.json")
	if err := os.WriteFile(path, []byte(sample), 0666); err != nil {
		t.Fatal(err)
	}

	var o Opener
	f, err := o.Load(ctx, path)
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Benchmarks) != 3 {
		t.Errorf("want 3 benchmarks, got %d", len(f.Benchmarks))
	}

	o.Stdin = strings.NewReader(sample)
	f, err = o.Load(ctx, "-")
	if err != nil {
		t.Fatal(err)
	}
	if len(f.Benchmarks) != 3 {
		t.Errorf("stdin: want 3 benchmarks, got %d", len(f.Benchmarks))
	}

	missing := filepath.Join(dir, "missing.json")
	_, err = o.Load(ctx, missing)
	if !errors.Is(err, fs.ErrNotExist) {
		t.Fatalf("want not-exist error, got %v", err)
	}
	if !strings.Contains(err.Error(), missing) {
		t.Errorf("error %q does not name %s", err, missing)
	}
}

func TestSplitGCSPath(t *testing.T) {
	for _, test := range []struct {
		path           string
		bucket, object string
		ok             bool
	}{
		{"gs://perf/ivc/bench.json", "perf", "ivc/bench.json", true},
		{"gs://perf/", "", "", false},
		{"gs://perf", "", "", false},
		{"gs:///x", "", "", false},
		{"build-op-count-time/client_ivc_bench.json", "", "", false},
	} {
		bucket, object, ok := splitGCSPath(test.path)
		if bucket != test.bucket || object != test.object || ok != test.ok {
			t.Errorf("splitGCSPath(%q) = %q, %q, %v; want %q, %q, %v", test.path, bucket, object, ok, test.bucket, test.object, test.ok)
		}
	}
}

func TestGCSOptions(t *testing.T) {
	opts, err := GCSOptions(false, "")
	if err != nil || opts != nil {
		t.Errorf("default: want nil, nil; got %v, %v", opts, err)
	}
	opts, err = GCSOptions(true, "")
	if err != nil || len(opts) != 1 {
		t.Errorf("anonymous: want 1 option, got %v, %v", opts, err)
	}
	if _, err := GCSOptions(true, "tok"); err == nil {
		t.Errorf("anonymous with token file: want error")
	}

	dir := t.TempDir()
	tok := filepath.Join(dir, "token")
	if err := os.WriteFile(tok, []byte("ya29.secret\n"), 0600); err != nil {
		t.Fatal(err)
	}
	opts, err = GCSOptions(false, tok)
	if err != nil || len(opts) != 1 {
		t.Errorf("token file: want 1 option, got %v, %v", opts, err)
	}
	empty := filepath.Join(dir, "empty")
	if err := os.WriteFile(empty, []byte("\n"), 0600); err != nil {
		t.Fatal(err)
	}
	if _, err := GCSOptions(false, empty); err == nil {
		t.Errorf("empty token file: want error")
	}
}
