package confloader

import (
	"os"
	"path/filepath"
	"testing"
)

type testConfig struct {
	Server struct {
		HTTP struct {
			Addr string `koanf:"addr"`
		} `koanf:"http"`
	} `koanf:"server"`
	Log struct {
		Level  string `koanf:"level"`
		Format string `koanf:"format"`
	} `koanf:"log"`
}

func defaultTestConfig() *testConfig {
	cfg := &testConfig{}
	cfg.Server.HTTP.Addr = "127.0.0.1:5000"
	cfg.Log.Level = "info"
	cfg.Log.Format = "json"
	return cfg
}

func writeConfigFile(t *testing.T, content string) string {
	t.Helper()

	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write config file: %v", err)
	}
	return path
}

func TestLoad_DefaultsSurviveEmptySources(t *testing.T) {
	cfg := defaultTestConfig()

	if err := NewLoader().Load(cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTP.Addr != "127.0.0.1:5000" {
		t.Errorf("addr = %q, defaults were lost", cfg.Server.HTTP.Addr)
	}
	if cfg.Log.Level != "info" {
		t.Errorf("level = %q, defaults were lost", cfg.Log.Level)
	}
}

func TestLoad_FileOverridesDefaults(t *testing.T) {
	path := writeConfigFile(t, "server:\n  http:\n    addr: \"0.0.0.0:8080\"\nlog:\n  level: debug\n")

	cfg := defaultTestConfig()
	if err := NewLoader(WithConfigFile(path)).Load(cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTP.Addr != "0.0.0.0:8080" {
		t.Errorf("addr = %q, want file value", cfg.Server.HTTP.Addr)
	}
	if cfg.Log.Level != "debug" {
		t.Errorf("level = %q, want file value", cfg.Log.Level)
	}
	// Keys the file omits keep their defaults.
	if cfg.Log.Format != "json" {
		t.Errorf("format = %q, want default", cfg.Log.Format)
	}
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	path := writeConfigFile(t, "log:\n  level: debug\n")
	t.Setenv("NAINALAND_LOG_LEVEL", "error")

	cfg := defaultTestConfig()
	if err := NewLoader(WithConfigFile(path)).Load(cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Level != "error" {
		t.Errorf("level = %q, want env value", cfg.Log.Level)
	}
}

func TestLoad_EnvKeyMapping(t *testing.T) {
	t.Setenv("NAINALAND_SERVER_HTTP_ADDR", "[::1]:9090")

	cfg := defaultTestConfig()
	if err := NewLoader().Load(cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Server.HTTP.Addr != "[::1]:9090" {
		t.Errorf("addr = %q, env mapping failed", cfg.Server.HTTP.Addr)
	}
}

func TestLoad_MissingFileFails(t *testing.T) {
	cfg := defaultTestConfig()
	err := NewLoader(WithConfigFile("/nonexistent/config.yaml")).Load(cfg)
	if err == nil {
		t.Fatal("loading a missing file succeeded")
	}
}

func TestLoad_CustomEnvPrefix(t *testing.T) {
	t.Setenv("ESTATE_LOG_FORMAT", "text")

	cfg := defaultTestConfig()
	if err := NewLoader(WithEnvPrefix("ESTATE_")).Load(cfg); err != nil {
		t.Fatalf("Load: %v", err)
	}
	if cfg.Log.Format != "text" {
		t.Errorf("format = %q, want env value", cfg.Log.Format)
	}
}

func TestLoadMap(t *testing.T) {
	loader := NewLoader()
	if err := loader.LoadMap(map[string]any{"log.level": "warn"}); err != nil {
		t.Fatalf("LoadMap: %v", err)
	}
	if got := loader.GetString("log.level"); got != "warn" {
		t.Errorf("log.level = %q", got)
	}
}
