// Package database opens GORM connections for the bundled lockfile store.
//
// MySQL is the production backend; SQLite (including ":memory:") is
// supported for local runs and tests.
package database
