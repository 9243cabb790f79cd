// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Ivcshare summarizes where the time of a ClientIVC benchmark goes.
//
// Usage:
//
//	ivcshare [flags] [file]
//
// The input file holds the JSON output of the ClientIVC benchmark
// built with op-count timing, for example
//
//	client_ivc_bench --benchmark_out=build-op-count-time/client_ivc_bench.json
//
// By default ivcshare reads build-op-count-time/client_ivc_bench.json.
// The file may also be "-" for standard input or a gs://bucket/object
// path in Google Cloud Storage.
//
// Ivcshare selects the benchmark named by -bench (default
// ClientIVCBench/Full/6) and prints four tables. Each lists a set of
// timed functions with their total time in milliseconds and their
// share of a denominator:
//
//   - an independent set of functions accounting for most of the
//     benchmark, as shares of their own sum, followed by how much of the
//     benchmark's real_time they account for;
//   - the major lower-level contributors, as shares of the same sum;
//   - the rounds of Protogalaxy folding, as shares of
//     ProtogalaxyProver::fold_instances;
//   - the relation accumulators, as shares of their own sum. These are
//     timed in a hot loop, so only their relative sizes are meaningful.
//
// A label missing from the benchmark counts as zero. If a table's
// denominator is zero, ivcshare fails without printing anything.
//
// The -format flag selects text (the default), csv, or html output.
// The -png, -svg, and -pdf flags additionally write a bar chart of each
// table into a directory. The -db flag archives the report in a SQL
// database given as driver:dsn, where driver is sqlite3 or mysql. The
// report is archived after it has been printed, so a report that could
// not be written to standard output is never archived.
//
// Example:
//
//	$ ivcshare -bench ClientIVCBench/Full/6
//	function                                  ms     % sum
//	construct_circuits(t)                   4124    12.63%
//	...
//
//	Total time accounted for: 32659ms/33867ms = 96.43%
package main

import (
	"bytes"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"

	"golang.org/x/ivcshare/gbench"
	"golang.org/x/ivcshare/ivc"
	"golang.org/x/ivcshare/share"
	"golang.org/x/ivcshare/store"
	_ "golang.org/x/ivcshare/store/mysql"
	_ "golang.org/x/ivcshare/store/sqlite3"
)

var exit = os.Exit // replaced during testing

func main() {
	log.SetPrefix("ivcshare: ")
	log.SetFlags(0)
	if err := ivcshare(os.Stdout, os.Stderr, os.Args[1:]); err != nil {
		if errors.Is(err, errUsage) {
			exit(2)
			return
		}
		log.Print(err)
		exit(1)
	}
}

// errUsage reports a command-line error. The usage message has
// already been printed.
var errUsage = errors.New("usage error")

// stdin is read for the input path "-".
var stdin io.Reader = os.Stdin

func ivcshare(stdout, stderr io.Writer, args []string) error {
	flags := flag.NewFlagSet("ivcshare", flag.ContinueOnError)
	flags.SetOutput(stderr)
	flags.Usage = func() {
		fmt.Fprintf(stderr, "usage: ivcshare [flags] [file]\n")
		fmt.Fprintf(stderr, "flags:\n")
		flags.PrintDefaults()
	}
	var (
		flagBench     = flags.String("bench", ivc.DefaultBenchmark, "report on benchmark `name`")
		flagFormat    = flags.String("format", "text", "print report as `format`: text, csv, or html")
		flagDB        = flags.String("db", "", "archive the report in `driver:dsn` (sqlite3 or mysql)")
		flagAnonymous = flags.Bool("gcs-anonymous", false, "read gs:// inputs without credentials")
		flagTokenFile = flags.String("gcs-token-file", "", "read gs:// inputs with the OAuth2 access token in `file`")
		flagVerbose   = flags.Bool("v", false, "print verbose log messages")
	)
	chartDirs := make(map[string]*string)
	for _, format := range share.ChartFormats {
		chartDirs[format] = flags.String(format, "", "write "+format+" charts into `dir`")
	}
	if err := flags.Parse(args); err != nil {
		return errUsage
	}
	if flags.NArg() > 1 {
		flags.Usage()
		return errUsage
	}
	write, ok := formats[*flagFormat]
	if !ok {
		fmt.Fprintf(stderr, "unknown format %q\n", *flagFormat)
		flags.Usage()
		return errUsage
	}
	path := ivc.DefaultPath
	if flags.NArg() == 1 {
		path = flags.Arg(0)
	}

	vlog := log.New(io.Discard, "ivcshare: ", 0)
	if *flagVerbose {
		vlog.SetOutput(stderr)
	}

	ctx := context.Background()
	opts, err := gbench.GCSOptions(*flagAnonymous, *flagTokenFile)
	if err != nil {
		return err
	}
	opener := &gbench.Opener{Stdin: stdin, ClientOptions: opts}
	f, err := opener.Load(ctx, path)
	if err != nil {
		return err
	}
	vlog.Printf("read %d benchmarks from %s", len(f.Benchmarks), path)
	rec, err := f.Lookup(*flagBench)
	if err != nil {
		return err
	}

	report, err := ivc.Evaluate(rec.Name, rec, ivc.Sections())
	if err != nil {
		return err
	}

	// Render everything before printing anything, so a failure
	// never leaves a partial report.
	var buf bytes.Buffer
	if err := write(&buf, report); err != nil {
		return err
	}
	for _, format := range share.ChartFormats {
		dir := *chartDirs[format]
		if dir == "" {
			continue
		}
		if err := writeCharts(dir, format, report); err != nil {
			return err
		}
		vlog.Printf("wrote %d %s charts to %s", len(report.Tables), format, dir)
	}
	var db *store.DB
	if *flagDB != "" {
		if db, err = store.Open(*flagDB); err != nil {
			return err
		}
		defer db.Close()
	}

	// A report is archived only once it has been printed.
	if _, err := stdout.Write(buf.Bytes()); err != nil {
		return err
	}
	if db != nil {
		id, err := db.InsertReport(ctx, report)
		if err != nil {
			return fmt.Errorf("archiving report: %w", err)
		}
		vlog.Printf("archived report %d", id)
	}
	return nil
}

var formats = map[string]func(io.Writer, *ivc.Report) error{
	"text": func(w io.Writer, r *ivc.Report) error { return r.WriteText(w) },
	"csv":  func(w io.Writer, r *ivc.Report) error { return r.WriteCSV(w) },
	"html": func(w io.Writer, r *ivc.Report) error {
		io.WriteString(w, htmlHeader)
		if err := r.WriteHTML(w); err != nil {
			return err
		}
		_, err := io.WriteString(w, htmlFooter)
		return err
	},
}

// writeCharts writes a chart of each of r's tables into dir.
func writeCharts(dir, format string, r *ivc.Report) error {
	if err := os.MkdirAll(dir, 0777); err != nil {
		return err
	}
	for _, t := range r.Tables {
		path := filepath.Join(dir, t.Name+"."+format)
		f, err := os.Create(path)
		if err != nil {
			return err
		}
		err = share.Chart(f, t, format)
		if cerr := f.Close(); err == nil {
			err = cerr
		}
		if err != nil {
			return fmt.Errorf("%s: %w", path, err)
		}
	}
	return nil
}

var htmlHeader = `<!doctype html>
<html>
<head>
<meta charset="utf-8">
<title>ClientIVC time breakdown</title>
<style>
.share { border-collapse: collapse; }
.share th:nth-child(1) { text-align: left; }
.share td:nth-child(1n+2) { text-align: right; padding: 0em 1em; }
.share th { border-top: 1px solid #666; border-bottom: 1px solid #ccc; }
</style>
</head>
<body>
`
var htmlFooter = `</body>
</html>
`
