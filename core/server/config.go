package server

// Config holds configuration for the lockfile store HTTP server.
type Config struct {
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
	// ApiKey, when set, is required as a Bearer token on every request.
	ApiKey string `mapstructure:"api_key" default:""`
}
