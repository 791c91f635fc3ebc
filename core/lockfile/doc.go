// Package lockfile defines the persisted remote-state snapshot and the
// client for the lockfile store.
//
// A Lockfile records, per repository, every document that has been
// published: its path, the content fingerprint at the time of the last
// successful publish, and the platform-assigned id and URL. The
// reconciliation engine diffs the local document set against it to decide
// which documents need a create, an update, or nothing at all.
//
// The store is a keyed blob store with one record per repository. A
// missing record is not an error; it means the repository has never been
// synced (first run). Writes replace the whole record.
package lockfile
