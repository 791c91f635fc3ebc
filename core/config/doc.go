// Package config loads the application configuration from environment
// variables and an optional .env file.
//
// Defaults come from `default` struct tags on the partial Config structs,
// which live next to the packages they configure. Environment variables
// map onto nested keys with underscores, e.g. POSTS_DIRECTORY sets
// posts.directory and LOCKFILE_REPOSITORY_ID sets lockfile.repository_id.
package config
