// Package db provides the embedded database schema for the postgres
// collection store.
package db

import _ "embed"

// Schema contains the DDL for the collections table.
//
//go:embed migrations/001_schema.sql
var Schema string
