// Package config defines the server configuration structure.
package config

import "time"

// ServerConfig is the root configuration for estate-server.
type ServerConfig struct {
	Server  ServerSection  `koanf:"server"`
	Auth    AuthSection    `koanf:"auth"`
	Storage StorageSection `koanf:"storage"`
	Seed    SeedSection    `koanf:"seed"`
	Log     LogSection     `koanf:"log"`
}

// ServerSection configures server endpoints.
type ServerSection struct {
	HTTP HTTPConfig `koanf:"http"`
}

// HTTPConfig configures the HTTP server.
type HTTPConfig struct {
	Addr            string        `koanf:"addr"`
	TLSCertFile     string        `koanf:"tls_cert_file"`
	TLSKeyFile      string        `koanf:"tls_key_file"`
	ReadTimeout     time.Duration `koanf:"read_timeout"`
	WriteTimeout    time.Duration `koanf:"write_timeout"`
	ShutdownTimeout time.Duration `koanf:"shutdown_timeout"`
}

// AuthSection configures session behavior.
type AuthSection struct {
	// SessionTTL is the lifetime of a session from login.
	SessionTTL time.Duration `koanf:"session_ttl"`

	// CookieName is the name of the session cookie.
	CookieName string `koanf:"cookie_name"`

	// CookieSecure marks the session cookie Secure. Required when TLS
	// is configured.
	CookieSecure bool `koanf:"cookie_secure"`

	// SweepInterval is how often expired sessions are evicted in the
	// background. Expired sessions are rejected on access regardless.
	SweepInterval time.Duration `koanf:"sweep_interval"`
}

// StorageSection configures content storage.
type StorageSection struct {
	// Backend selects the content store: "memory" or "badger".
	// Sessions are always held in memory.
	Backend string `koanf:"backend"`

	// DataDir is the Badger data directory. Required for the badger
	// backend.
	DataDir string `koanf:"data_dir"`
}

// SeedSection configures startup seeding.
type SeedSection struct {
	AdminUsername string `koanf:"admin_username"`
	AdminPassword string `koanf:"admin_password"`
	SampleData    bool   `koanf:"sample_data"`
}

// LogSection configures logging.
type LogSection struct {
	Level  string `koanf:"level"`
	Format string `koanf:"format"`
}
