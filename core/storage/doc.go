// Package storage provides the S3-compatible object storage client used
// for cover-image sideloading.
package storage
