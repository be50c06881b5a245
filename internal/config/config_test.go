package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected default addr :8080, got %q", cfg.Addr)
	}
	if cfg.WebDir != "web" {
		t.Errorf("expected default web dir, got %q", cfg.WebDir)
	}
	if cfg.DB.Driver != "postgres" || cfg.DB.Host != "localhost" {
		t.Errorf("unexpected db defaults: %+v", cfg.DB)
	}
	if cfg.OIDC.Issuer != "" {
		t.Errorf("sso should be off by default, got issuer %q", cfg.OIDC.Issuer)
	}
}

func TestLoadMissingFileIsSkipped(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err != nil {
		t.Fatalf("missing file should not be an error, got %v", err)
	}
	if cfg.Addr != ":8080" {
		t.Errorf("expected defaults, got addr %q", cfg.Addr)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	body := `addr: ":9000"
db:
  driver: mysql
  host: db.internal
  user: todoapp
  password: secret
  name: todos
`
	if err := os.WriteFile(path, []byte(body), 0o600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":9000" {
		t.Errorf("expected addr from file, got %q", cfg.Addr)
	}
	if cfg.DB.Driver != "mysql" || cfg.DB.Host != "db.internal" {
		t.Errorf("unexpected db config: %+v", cfg.DB)
	}
	// Fields absent from the file keep their defaults.
	if cfg.SessionSecret != "development-secret" {
		t.Errorf("expected default secret, got %q", cfg.SessionSecret)
	}
}

func TestLoadEnvOverridesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("addr: \":9000\"\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	t.Setenv("ADDR", ":7000")
	t.Setenv("DB_DRIVER", "mysql")
	t.Setenv("SESSION_SECRET", "from-env")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Addr != ":7000" {
		t.Errorf("env should win over file, got %q", cfg.Addr)
	}
	if cfg.DB.Driver != "mysql" {
		t.Errorf("expected driver from env, got %q", cfg.DB.Driver)
	}
	if cfg.SessionSecret != "from-env" {
		t.Errorf("expected secret from env, got %q", cfg.SessionSecret)
	}
}

func TestDSN(t *testing.T) {
	pg := DBConfig{Driver: "postgres", Host: "localhost", User: "u", Password: "p", Name: "todos"}
	want := "host=localhost user=u password=p dbname=todos sslmode=disable"
	if got := pg.DSN(); got != want {
		t.Errorf("postgres dsn: got %q, want %q", got, want)
	}

	my := DBConfig{Driver: "mysql", Host: "localhost", User: "u", Password: "p", Name: "todos"}
	want = "u:p@tcp(localhost)/todos?parseTime=true"
	if got := my.DSN(); got != want {
		t.Errorf("mysql dsn: got %q, want %q", got, want)
	}
}
