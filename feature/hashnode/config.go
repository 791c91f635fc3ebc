package hashnode

// Config holds configuration for the Hashnode API client.
type Config struct {
	// Endpoint is the GraphQL endpoint.
	Endpoint string `mapstructure:"endpoint" default:"https://gql.hashnode.com"`
	// AccessToken authenticates every request.
	AccessToken string `mapstructure:"access_token" default:""`
	// PublicationID is the publication documents are published into.
	PublicationID string `mapstructure:"publication_id" default:""`
	// TimeoutSeconds bounds each publish call.
	TimeoutSeconds int `mapstructure:"timeout_seconds" default:"5"`
}
