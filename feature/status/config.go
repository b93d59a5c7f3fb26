package status

// Config holds configuration for the status HTTP server.
type Config struct {
	// Enabled toggles the server.
	Enabled bool `mapstructure:"enabled" default:"true"`
	// Port is the port where the server will listen.
	Port string `mapstructure:"port" default:"8080"`
}
