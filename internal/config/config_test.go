package config_test

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	qt "github.com/frankban/quicktest"

	"github.com/Spok95/furniture-db/internal/config"
)

func writeConfig(c *qt.C, body string) string {
	path := filepath.Join(c.TempDir(), "config.yaml")
	c.Assert(os.WriteFile(path, []byte(body), 0o644), qt.IsNil)
	return path
}

func TestLoadFile(t *testing.T) {
	c := qt.New(t)

	path := writeConfig(c, `
app:
  env: prod
http:
  addr: ":9090"
  shutdown_timeout: 10s
postgres:
  dsn: postgres://u:p@db:5432/furniture
  max_conns: 4
metrics:
  enabled: false
`)
	cfg, err := config.Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.App.Env, qt.Equals, "prod")
	c.Assert(cfg.HTTP.Addr, qt.Equals, ":9090")
	c.Assert(cfg.HTTP.ShutdownTimeout, qt.Equals, 10*time.Second)
	c.Assert(cfg.Postgres.DSN, qt.Equals, "postgres://u:p@db:5432/furniture")
	c.Assert(cfg.Postgres.MaxConns, qt.Equals, int32(4))
	c.Assert(cfg.Metrics.Enabled, qt.IsFalse)
	// не указано в файле: значение по умолчанию
	c.Assert(cfg.Export.Dir, qt.Equals, "exports")
	c.Assert(cfg.Postgres.Migrate, qt.IsTrue)
}

func TestEnvOverridesFile(t *testing.T) {
	c := qt.New(t)

	path := writeConfig(c, "http:\n  addr: \":9090\"\n")
	c.Setenv("APP_HTTP_ADDR", ":7070")
	c.Setenv("APP_POSTGRES_DSN", "postgres://env/furniture")

	cfg, err := config.Load(path)
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.HTTP.Addr, qt.Equals, ":7070")
	c.Assert(cfg.Postgres.DSN, qt.Equals, "postgres://env/furniture")
}

func TestDefaultsWithoutFile(t *testing.T) {
	c := qt.New(t)

	cfg, err := config.Load("")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.App.Env, qt.Equals, "dev")
	c.Assert(cfg.HTTP.Addr, qt.Equals, ":8080")
	c.Assert(cfg.Import.Dir, qt.Equals, "data")
}

func TestValidation(t *testing.T) {
	c := qt.New(t)

	path := writeConfig(c, "app:\n  env: staging\n")
	_, err := config.Load(path)
	c.Assert(err, qt.ErrorMatches, `(?s).*Env.*oneof.*`)
}

func TestMissingFile(t *testing.T) {
	c := qt.New(t)

	_, err := config.Load(filepath.Join(c.TempDir(), "absent.yaml"))
	c.Assert(err, qt.IsNotNil)
}

func TestLoadDotEnv(t *testing.T) {
	c := qt.New(t)

	c.Assert(config.LoadDotEnv(filepath.Join(c.TempDir(), ".env")), qt.IsNil)

	path := filepath.Join(c.TempDir(), ".env")
	c.Assert(os.WriteFile(path, []byte("APP_EXPORT_DIR=/tmp/out\n"), 0o644), qt.IsNil)
	c.Setenv("APP_EXPORT_DIR", "")
	c.Assert(os.Unsetenv("APP_EXPORT_DIR"), qt.IsNil)
	c.Assert(config.LoadDotEnv(path), qt.IsNil)

	cfg, err := config.Load("")
	c.Assert(err, qt.IsNil)
	c.Assert(cfg.Export.Dir, qt.Equals, "/tmp/out")
}
