// Package config defines the server configuration structure.
package config

import "time"

// Default configuration values.
const (
	DefaultHTTPAddr        = "127.0.0.1:5000"
	DefaultReadTimeout     = 15 * time.Second
	DefaultWriteTimeout    = 15 * time.Second
	DefaultShutdownTimeout = 10 * time.Second

	DefaultSessionTTL    = 24 * time.Hour
	DefaultCookieName    = "auth_token"
	DefaultSweepInterval = 10 * time.Minute

	DefaultStorageBackend = "memory"
	DefaultDataDir        = "/var/lib/estate-server/data"

	DefaultAdminUsername = "admin"
	DefaultAdminPassword = "admin123"

	DefaultLogLevel  = "info"
	DefaultLogFormat = "json"
)

// Default returns the default server configuration.
func Default() *ServerConfig {
	return &ServerConfig{
		Server: ServerSection{
			HTTP: HTTPConfig{
				Addr:            DefaultHTTPAddr,
				ReadTimeout:     DefaultReadTimeout,
				WriteTimeout:    DefaultWriteTimeout,
				ShutdownTimeout: DefaultShutdownTimeout,
			},
		},
		Auth: AuthSection{
			SessionTTL:    DefaultSessionTTL,
			CookieName:    DefaultCookieName,
			CookieSecure:  false,
			SweepInterval: DefaultSweepInterval,
		},
		Storage: StorageSection{
			Backend: DefaultStorageBackend,
			DataDir: DefaultDataDir,
		},
		Seed: SeedSection{
			AdminUsername: DefaultAdminUsername,
			AdminPassword: DefaultAdminPassword,
			SampleData:    true,
		},
		Log: LogSection{
			Level:  DefaultLogLevel,
			Format: DefaultLogFormat,
		},
	}
}
