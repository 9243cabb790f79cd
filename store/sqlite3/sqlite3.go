// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package sqlite3 links the sqlite3 driver into the store package.
package sqlite3

import (
	"database/sql"

	_ "github.com/mattn/go-sqlite3"
	"golang.org/x/ivcshare/store"
)

func init() {
	store.RegisterOpenHook("sqlite3", func(db *sql.DB) error {
		// An in-memory database is private to its
		// connection, and foreign_keys is a per-connection
		// setting, so use a single connection.
		db.SetMaxOpenConns(1)
		_, err := db.Exec("PRAGMA foreign_keys = ON")
		return err
	})
}
