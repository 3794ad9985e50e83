// Package config loads environment variables into typed configuration
// structs for the voicegate service.
//
// It wraps github.com/caarlos0/env with optional .env file support through
// github.com/joho/godotenv. The .env file is loaded at most once per process;
// a missing file is not an error.
//
// # Usage
//
//	type AuthConfig struct {
//		MasterUserID     string `env:"MASTER_USER_ID" envDefault:"buddy"`
//		MasterPassphrase string `env:"MASTER_PASSPHRASE" envDefault:"happy birthday"`
//	}
//
//	var cfg AuthConfig
//	if err := config.Load(&cfg); err != nil {
//		// handle error
//	}
//
// MustLoad panics on failure and is intended for configuration the service
// cannot start without.
package config
