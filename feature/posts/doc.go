// Package posts scans the local posts directory, normalizes each source
// file into a Document, and orchestrates a full sync run: scan and
// lockfile retrieval, plan, publish fan-out, merge, persist.
//
// Per-document problems (malformed front matter, a failed cover upload)
// are isolated as issues and never abort the batch. Run-level problems
// (lockfile retrieval or persistence) are fatal.
package posts
