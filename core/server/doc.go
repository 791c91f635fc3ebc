// Package server holds the HTTP server configuration for the bundled
// lockfile store.
package server
