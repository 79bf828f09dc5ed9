package config

import (
	"time"

	"github.com/caarlos0/env/v11"
)

// rawEnv mirrors Config with the variable names used by deployments.
// JWT_EXPIRATION_MS is an integer number of milliseconds.
type rawEnv struct {
	EndpointAddrHTTP string `env:"RUN_ADDRESS"`
	DatabaseDSN      string `env:"DATABASE_DSN"`
	SecretKey        string `env:"JWT_SECRET"`
	TokenValidityMs  int64  `env:"JWT_EXPIRATION_MS"`
	S3RootUser       string `env:"S3_ROOT_USER"`
	S3RootPassword   string `env:"S3_ROOT_PASSWORD"`
	S3Bucket         string `env:"S3_BUCKET"`
	S3Region         string `env:"S3_REGION"`
	S3BaseEndpoint   string `env:"S3_BASE_ENDPOINT"`
}

// parseEnv overlays Config fields from environment variables. Only variables
// that are actually set override the current values.
func parseEnv(config *Config) {
	raw := rawEnv{}
	if err := env.Parse(&raw); err != nil {
		panic(err)
	}

	if raw.EndpointAddrHTTP != "" {
		config.EndpointAddrHTTP = raw.EndpointAddrHTTP
	}
	if raw.DatabaseDSN != "" {
		config.DatabaseDSN = raw.DatabaseDSN
	}
	if raw.SecretKey != "" {
		config.SecretKey = raw.SecretKey
	}
	if raw.TokenValidityMs > 0 {
		config.TokenValidityDuration = time.Duration(raw.TokenValidityMs) * time.Millisecond
	}
	if raw.S3RootUser != "" {
		config.S3RootUser = raw.S3RootUser
	}
	if raw.S3RootPassword != "" {
		config.S3RootPassword = raw.S3RootPassword
	}
	if raw.S3Bucket != "" {
		config.S3Bucket = raw.S3Bucket
	}
	if raw.S3Region != "" {
		config.S3Region = raw.S3Region
	}
	if raw.S3BaseEndpoint != "" {
		config.S3BaseEndpoint = raw.S3BaseEndpoint
	}
}
