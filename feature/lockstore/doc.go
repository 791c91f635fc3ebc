// Package lockstore is the bundled lockfile store server: the reference
// implementation of the store contract the sync client targets.
//
// It exposes two endpoints per repository, GET and PUT on
// /lockfiles/{repositoryId}, backed by GORM. Writes replace the whole
// record; a write carrying a stale revision is rejected with 409 so two
// concurrent sync runs cannot silently drop each other's updates.
package lockstore
