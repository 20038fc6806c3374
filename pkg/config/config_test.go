package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/charmbracelet/log"

	"github.com/USQVE/bleprint/pkg/errors"
	"github.com/USQVE/bleprint/pkg/pipeline"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.toml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	if err := cfg.Validate(); err != nil {
		t.Fatalf("Default().Validate() error = %v", err)
	}
	if cfg.Level() != log.InfoLevel {
		t.Errorf("Level() = %v, want info", cfg.Level())
	}
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `
log_level = "debug"

[parse]
identity = "windowed"
window = 5
pin_reuse = "name"

[cache]
backend = "redis"
redis_addr = "localhost:6379"
prefix = "dev:"

[store]
backend = "postgres"
postgres_url = "postgres://localhost/bleprint"

[server]
addr = "127.0.0.1:9000"
request_timeout = "5s"
`)
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.Level() != log.DebugLevel {
		t.Errorf("Level() = %v, want debug", cfg.Level())
	}
	if cfg.Parse.Identity != pipeline.IdentityWindowed || cfg.Parse.Window != 5 || cfg.Parse.PinReuse != pipeline.PinReuseName {
		t.Errorf("Parse = %+v", cfg.Parse)
	}
	if cfg.Cache.Backend != CacheRedis || cfg.Cache.Prefix != "dev:" {
		t.Errorf("Cache = %+v", cfg.Cache)
	}
	if cfg.Store.Backend != StorePostgres {
		t.Errorf("Store.Backend = %q, want postgres", cfg.Store.Backend)
	}
	if cfg.Server.Addr != "127.0.0.1:9000" || cfg.Server.RequestTimeout != 5*time.Second {
		t.Errorf("Server = %+v", cfg.Server)
	}
	if cfg.Server.MaxBodyBytes != errors.MaxTextSize {
		t.Errorf("MaxBodyBytes = %d, want default %d", cfg.Server.MaxBodyBytes, errors.MaxTextSize)
	}
}

func TestLoadErrors(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"syntax", `log_level = `},
		{"unknown key", `colour = "red"`},
		{"log level", `log_level = "loud"`},
		{"identity", "[parse]\nidentity = \"fuzzy\""},
		{"cache backend", "[cache]\nbackend = \"memcached\""},
		{"redis without addr", "[cache]\nbackend = \"redis\""},
		{"store backend", "[store]\nbackend = \"sqlite\""},
		{"mongo without uri", "[store]\nbackend = \"mongo\""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Load(writeConfig(t, tt.body))
			if !errors.Is(err, errors.ErrCodeInvalidInput) {
				t.Errorf("Load() error = %v, want INVALID_INPUT", err)
			}
		})
	}
}

func TestLoadMissing(t *testing.T) {
	t.Setenv(EnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() with no file error = %v", err)
	}
	if cfg.Store.Backend != StoreMemory {
		t.Errorf("Store.Backend = %q, want memory", cfg.Store.Backend)
	}

	_, err = Load(filepath.Join(t.TempDir(), "absent.toml"))
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("Load(explicit missing) error = %v, want NOT_FOUND", err)
	}
}

func TestPath(t *testing.T) {
	t.Setenv(EnvVar, "/etc/bleprint.toml")
	if p, explicit := Path("custom.toml"); p != "custom.toml" || !explicit {
		t.Errorf("Path(flag) = %q, %v", p, explicit)
	}
	if p, explicit := Path(""); p != "/etc/bleprint.toml" || !explicit {
		t.Errorf("Path(env) = %q, %v", p, explicit)
	}

	t.Setenv(EnvVar, "")
	t.Setenv("XDG_CONFIG_HOME", "/xdg")
	if p, explicit := Path(""); p != filepath.Join("/xdg", "bleprint", "config.toml") || explicit {
		t.Errorf("Path(xdg) = %q, %v", p, explicit)
	}
}
