package lockfile

// Config holds configuration for the lockfile store client.
type Config struct {
	// Endpoint is the base URL of the lockfile store.
	Endpoint string `mapstructure:"endpoint" default:"http://localhost:8080"`
	// ApiKey is sent as a Bearer token when the store requires one.
	ApiKey string `mapstructure:"api_key" default:""`
	// RepositoryID keys the lockfile record for this repository.
	RepositoryID string `mapstructure:"repository_id" default:""`
	// RepositoryName is the human-readable repository identity.
	RepositoryName string `mapstructure:"repository_name" default:""`
	// TimeoutSeconds bounds each request to the store.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
