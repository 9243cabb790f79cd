// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package store_test

import (
	"context"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"golang.org/x/ivcshare/ivc"
	"golang.org/x/ivcshare/share"
	. "golang.org/x/ivcshare/store"
	_ "golang.org/x/ivcshare/store/sqlite3"
)

func newDB(t *testing.T) *DB {
	t.Helper()
	db, err := OpenSQL("sqlite3", ":memory:")
	if err != nil {
		t.Fatalf("open database: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func testReport(t *testing.T) *ivc.Report {
	t.Helper()
	v := share.Map{"a": 3e6, "b": 1e6, "c": 2e6, "real_time": 10e6}
	sections := []ivc.Section{
		{Name: "ab", Labels: []string{"a", "b"}, Basis: ivc.OwnSum(), Layout: share.Standard, Totals: true},
		{Name: "c", Labels: []string{"c"}, Basis: ivc.LabelValue("real_time"), Layout: share.Bare},
	}
	r, err := ivc.Evaluate("Bench/1", v, sections)
	if err != nil {
		t.Fatal(err)
	}
	return r
}

func TestInsertReport(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)

	defer SetNow(time.Time{})
	SetNow(time.Unix(86400, 0))

	if n, err := db.CountReports(ctx); err != nil || n != 0 {
		t.Fatalf("CountReports = %d, %v; want 0, nil", n, err)
	}

	r := testReport(t)
	id1, err := db.InsertReport(ctx, r)
	if err != nil {
		t.Fatal(err)
	}
	id2, err := db.InsertReport(ctx, r)
	if err != nil {
		t.Fatal(err)
	}
	if id2 <= id1 {
		t.Errorf("report IDs not increasing: %d, %d", id1, id2)
	}
	if n, err := db.CountReports(ctx); err != nil || n != 2 {
		t.Errorf("CountReports = %d, %v; want 2, nil", n, err)
	}

	rows, err := db.Rows(ctx, id1)
	if err != nil {
		t.Fatal(err)
	}
	want := []Row{
		{"ab", "a", 3, 0.75},
		{"ab", "b", 1, 0.25},
		{"c", "c", 2, 0.2},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Errorf("Rows(%d):\nwant %+v\ngot  %+v", id1, want, rows)
	}

	infos, err := db.Reports(ctx, "Bench/1")
	if err != nil {
		t.Fatal(err)
	}
	wantInfos := []ReportInfo{
		{id2, "Bench/1", time.Unix(86400, 0).UTC()},
		{id1, "Bench/1", time.Unix(86400, 0).UTC()},
	}
	if !reflect.DeepEqual(infos, wantInfos) {
		t.Errorf("Reports:\nwant %+v\ngot  %+v", wantInfos, infos)
	}
	if infos, err := db.Reports(ctx, "Bench/2"); err != nil || len(infos) != 0 {
		t.Errorf("Reports(Bench/2) = %v, %v; want none", infos, err)
	}
}

func TestForeignKeys(t *testing.T) {
	ctx := context.Background()
	db := newDB(t)
	id, err := db.InsertReport(ctx, testReport(t))
	if err != nil {
		t.Fatal(err)
	}
	if _, err := DBSQL(db).ExecContext(ctx, "DELETE FROM Reports WHERE ReportID = ?", id); err != nil {
		t.Fatal(err)
	}
	rows, err := db.Rows(ctx, id)
	if err != nil {
		t.Fatal(err)
	}
	if len(rows) != 0 {
		t.Errorf("rows of deleted report survived: %+v", rows)
	}
}

func TestOpen(t *testing.T) {
	path := filepath.Join(t.TempDir(), "reports.db")
	db, err := Open("sqlite3:" + path)
	if err != nil {
		t.Fatal(err)
	}
	if _, err := db.InsertReport(context.Background(), testReport(t)); err != nil {
		t.Fatal(err)
	}
	db.Close()

	// Reopening sees the same archive.
	db, err = Open("sqlite3:" + path)
	if err != nil {
		t.Fatal(err)
	}
	defer db.Close()
	if n, err := db.CountReports(context.Background()); err != nil || n != 1 {
		t.Errorf("CountReports = %d, %v; want 1, nil", n, err)
	}

	for _, bad := range []string{"reports.db", ":memory:"} {
		if _, err := Open(bad); err == nil {
			t.Errorf("Open(%q): want error", bad)
		}
	}
}
