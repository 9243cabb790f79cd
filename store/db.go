// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package store archives component-share reports in a SQL database,
// so reports from successive benchmark runs can be compared later.
package store

import (
	"bytes"
	"context"
	"database/sql"
	"fmt"
	"strings"
	"text/template"
	"time"

	"golang.org/x/ivcshare/ivc"
)

// DB is an archive of reports backed by a SQL database. It's safe for
// concurrent use by multiple goroutines.
type DB struct {
	sql *sql.DB // underlying database connection
	// prepared statements
	insertReport *sql.Stmt
	insertRow    *sql.Stmt
}

// OpenSQL creates a DB backed by a SQL database. The parameters are
// the same as the parameters for sql.Open. Only mysql and sqlite3 are
// explicitly supported; other database engines will receive MySQL
// query syntax which may or may not be compatible.
func OpenSQL(driverName, dataSourceName string) (*DB, error) {
	db, err := sql.Open(driverName, dataSourceName)
	if err != nil {
		return nil, err
	}
	if hook := openHooks[driverName]; hook != nil {
		if err := hook(db); err != nil {
			db.Close()
			return nil, err
		}
	}
	d := &DB{sql: db}
	if err := d.createTables(driverName); err != nil {
		db.Close()
		return nil, err
	}
	if err := d.prepareStatements(); err != nil {
		db.Close()
		return nil, err
	}
	return d, nil
}

// Open opens a DB described by spec, which has the form
// "driver:dataSourceName", for example "sqlite3:reports.db".
func Open(spec string) (*DB, error) {
	driverName, dataSourceName, ok := strings.Cut(spec, ":")
	if !ok || driverName == "" {
		return nil, fmt.Errorf("database %q: want driver:dsn", spec)
	}
	return OpenSQL(driverName, dataSourceName)
}

var openHooks = make(map[string]func(*sql.DB) error)

// RegisterOpenHook registers a hook to be called after opening a connection to driverName.
// It must be called from an init function.
func RegisterOpenHook(driverName string, hook func(*sql.DB) error) {
	openHooks[driverName] = hook
}

// createTmpl is the template used to prepare the CREATE statements
// for the database. It is evaluated with . as a map containing one
// entry whose key is the driver name.
var createTmpl = template.Must(template.New("create").Parse(`
CREATE TABLE IF NOT EXISTS Reports (
	ReportID {{if .sqlite3}}INTEGER PRIMARY KEY AUTOINCREMENT{{else}}SERIAL PRIMARY KEY AUTO_INCREMENT{{end}},
	Benchmark VARCHAR(255),
	Created BIGINT
);
CREATE TABLE IF NOT EXISTS ReportRows (
	ReportID BIGINT UNSIGNED,
	Position INTEGER,
	Section VARCHAR(64),
	Label VARCHAR(255),
	Millis DOUBLE,
	Fraction DOUBLE,
	PRIMARY KEY (ReportID, Position),
	FOREIGN KEY (ReportID) REFERENCES Reports(ReportID) ON UPDATE CASCADE ON DELETE CASCADE
);
`))

// createTables creates any missing tables on the connection in
// db.sql. driverName is the same driver name passed to sql.Open and
// is used to select the correct syntax.
func (db *DB) createTables(driverName string) error {
	var buf bytes.Buffer
	if err := createTmpl.Execute(&buf, map[string]bool{driverName: true}); err != nil {
		return err
	}
	for _, q := range strings.Split(buf.String(), ";") {
		if strings.TrimSpace(q) == "" {
			continue
		}
		if _, err := db.sql.Exec(q); err != nil {
			return fmt.Errorf("create table: %v", err)
		}
	}
	return nil
}

// prepareStatements calls db.sql.Prepare on reusable SQL statements.
func (db *DB) prepareStatements() error {
	var err error
	db.insertReport, err = db.sql.Prepare("INSERT INTO Reports(Benchmark, Created) VALUES (?, ?)")
	if err != nil {
		return err
	}
	db.insertRow, err = db.sql.Prepare("INSERT INTO ReportRows(ReportID, Position, Section, Label, Millis, Fraction) VALUES (?, ?, ?, ?, ?, ?)")
	if err != nil {
		return err
	}
	return nil
}

// now is a hook for testing
var now = time.Now

// InsertReport stores every row of r in a single transaction and
// returns the new report's ID.
func (db *DB) InsertReport(ctx context.Context, r *ivc.Report) (id int64, err error) {
	tx, err := db.sql.BeginTx(ctx, nil)
	if err != nil {
		return 0, err
	}
	defer func() {
		if err != nil {
			tx.Rollback()
		} else {
			err = tx.Commit()
		}
	}()
	res, err := tx.StmtContext(ctx, db.insertReport).ExecContext(ctx, r.Benchmark, now().Unix())
	if err != nil {
		return 0, err
	}
	id, err = res.LastInsertId()
	if err != nil {
		return 0, err
	}
	stmt := tx.StmtContext(ctx, db.insertRow)
	pos := 0
	for _, t := range r.Tables {
		for _, row := range t.Rows {
			if _, err := stmt.ExecContext(ctx, id, pos, t.Name, row.Label, row.Millis, row.Fraction); err != nil {
				return 0, err
			}
			pos++
		}
	}
	return id, nil
}

// A Row is one archived report row.
type Row struct {
	Section  string
	Label    string
	Millis   float64
	Fraction float64
}

// A ReportInfo describes an archived report.
type ReportInfo struct {
	ID        int64
	Benchmark string
	Created   time.Time
}

// Reports returns the archived reports for benchmark, newest first.
func (db *DB) Reports(ctx context.Context, benchmark string) ([]ReportInfo, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT ReportID, Benchmark, Created FROM Reports WHERE Benchmark = ? ORDER BY ReportID DESC", benchmark)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []ReportInfo
	for rows.Next() {
		var info ReportInfo
		var created int64
		if err := rows.Scan(&info.ID, &info.Benchmark, &created); err != nil {
			return nil, err
		}
		info.Created = time.Unix(created, 0).UTC()
		out = append(out, info)
	}
	return out, rows.Err()
}

// Rows returns the rows of report id in their original order.
func (db *DB) Rows(ctx context.Context, id int64) ([]Row, error) {
	rows, err := db.sql.QueryContext(ctx, "SELECT Section, Label, Millis, Fraction FROM ReportRows WHERE ReportID = ? ORDER BY Position", id)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Section, &r.Label, &r.Millis, &r.Fraction); err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// CountReports returns the number of reports in the archive.
func (db *DB) CountReports(ctx context.Context) (int, error) {
	var n int
	err := db.sql.QueryRowContext(ctx, "SELECT COUNT(*) FROM Reports").Scan(&n)
	return n, err
}

// Close closes the database connections, releasing any open resources.
func (db *DB) Close() error {
	if err := db.insertReport.Close(); err != nil {
		return err
	}
	if err := db.insertRow.Close(); err != nil {
		return err
	}
	return db.sql.Close()
}
