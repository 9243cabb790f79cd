// Copyright 2024 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

// Package mysql links the MySQL driver into the store package.
//
// Besides ordinary MySQL DSNs, it accepts Cloud SQL instances through
// the "cloudsql" network, for example
//
//	mysql:root:@cloudsql(project:region:instance)/reports
package mysql

import (
	"database/sql"

	_ "github.com/GoogleCloudPlatform/cloudsql-proxy/proxy/dialers/mysql"
	_ "github.com/go-sql-driver/mysql"
	"golang.org/x/ivcshare/store"
)

func init() {
	store.RegisterOpenHook("mysql", func(db *sql.DB) error {
		return db.Ping()
	})
}
