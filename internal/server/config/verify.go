// Package config defines the server configuration structure.
package config

import (
	"errors"
	"os"
)

// Verify validates the configuration.
func Verify(cfg *ServerConfig) error {
	if err := verifyServer(&cfg.Server, &cfg.Auth); err != nil {
		return err
	}
	if err := verifyAuth(&cfg.Auth); err != nil {
		return err
	}
	if err := verifyStorage(&cfg.Storage); err != nil {
		return err
	}
	if err := verifySeed(&cfg.Seed); err != nil {
		return err
	}
	if err := verifyLog(&cfg.Log); err != nil {
		return err
	}
	return nil
}

func verifyServer(cfg *ServerSection, auth *AuthSection) error {
	if cfg.HTTP.Addr == "" {
		return errors.New("server.http.addr is required")
	}

	tlsConfigured := cfg.HTTP.TLSCertFile != "" || cfg.HTTP.TLSKeyFile != ""
	if tlsConfigured {
		if cfg.HTTP.TLSCertFile == "" || cfg.HTTP.TLSKeyFile == "" {
			return errors.New("server.http: tls_cert_file and tls_key_file must both be set")
		}
		if _, err := os.Stat(cfg.HTTP.TLSCertFile); err != nil {
			return errors.New("server.http.tls_cert_file: " + err.Error())
		}
		if _, err := os.Stat(cfg.HTTP.TLSKeyFile); err != nil {
			return errors.New("server.http.tls_key_file: " + err.Error())
		}
		if !auth.CookieSecure {
			return errors.New("auth.cookie_secure must be true when TLS is configured")
		}
	}
	return nil
}

func verifyAuth(cfg *AuthSection) error {
	if cfg.SessionTTL <= 0 {
		return errors.New("auth.session_ttl must be positive")
	}
	if cfg.CookieName == "" {
		return errors.New("auth.cookie_name is required")
	}
	if cfg.SweepInterval <= 0 {
		return errors.New("auth.sweep_interval must be positive")
	}
	return nil
}

func verifyStorage(cfg *StorageSection) error {
	switch cfg.Backend {
	case "memory":
		return nil
	case "badger":
		if cfg.DataDir == "" {
			return errors.New("storage.data_dir is required for the badger backend")
		}
		if err := os.MkdirAll(cfg.DataDir, 0750); err != nil {
			return errors.New("cannot create data directory: " + err.Error())
		}
		return nil
	default:
		return errors.New("storage.backend must be \"memory\" or \"badger\"")
	}
}

func verifySeed(cfg *SeedSection) error {
	// An admin seeded with an empty password could never log in, since
	// login rejects empty secrets before hashing.
	if cfg.AdminUsername != "" && cfg.AdminPassword == "" {
		return errors.New("seed.admin_password is required when seed.admin_username is set")
	}
	return nil
}

func verifyLog(cfg *LogSection) error {
	switch cfg.Level {
	case "debug", "info", "warn", "error":
	default:
		return errors.New("log.level must be one of debug, info, warn, error")
	}
	switch cfg.Format {
	case "json", "text":
	default:
		return errors.New("log.format must be \"json\" or \"text\"")
	}
	return nil
}
