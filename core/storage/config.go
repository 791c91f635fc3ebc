package storage

// Config holds configuration for the cover-image storage provider.
type Config struct {
	// Enabled turns cover-image sideloading on.
	Enabled bool `mapstructure:"enabled" default:"false"`
	// Endpoint is the URL of the storage service.
	Endpoint string `mapstructure:"endpoint" default:"localhost:9000"`
	// AccessKey is the access key ID for authentication.
	AccessKey string `mapstructure:"access_key" default:"minioadmin"`
	// SecretKey is the secret access key for authentication.
	SecretKey string `mapstructure:"secret_key" default:"minioadmin"`
	// UseSSL indicates whether to use SSL/TLS for connections.
	UseSSL bool `mapstructure:"use_ssl" default:"false"`
	// Bucket is the name of the bucket to upload cover images to.
	Bucket string `mapstructure:"bucket" default:"covers"`
	// PublicBaseURL is the URL prefix under which uploaded objects are
	// reachable. Defaults to the endpoint + bucket when empty.
	PublicBaseURL string `mapstructure:"public_base_url" default:""`
	// Region is the location of the bucket (e.g., us-east-1).
	Region string `mapstructure:"region" default:""`
	// TimeoutSeconds is the connection timeout in seconds.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"30"`
}
