package config

// Defaults matching the reference target of a locally running server.
const (
	DefaultHost      = "localhost"
	DefaultPort      = 8080
	DefaultTimeoutMs = 5000
	DefaultPauseMs   = 500
)

// DefaultConfig returns a configuration with default values
func DefaultConfig() *Config {
	return &Config{
		Host:    DefaultHost,
		Port:    DefaultPort,
		Timeout: DefaultTimeoutMs,
		Pause:   DefaultPauseMs,
	}
}
