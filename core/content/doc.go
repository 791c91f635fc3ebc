// Package content normalizes locally authored source files into canonical
// Document records ready for publishing.
//
// A Document carries two kinds of fields:
//
//  1. Identity: the repository-relative Path, a URL slug derived from the
//     title, and a SHA-256 fingerprint of the raw source bytes. The
//     fingerprint is computed before any transformation so it stays stable
//     across converter changes and is comparable between runs.
//
//  2. Publish attributes: title, optional description and cover image,
//     draft flag, and tags (each with a derived slug).
//
// Two source shapes are supported: Markdown with a YAML front-matter block
// (FromMarkdown) and plain HTML pages whose metadata is scraped from the
// document head (FromHTML). Normalization failures are per-document errors;
// callers are expected to isolate them rather than abort a batch.
package content
