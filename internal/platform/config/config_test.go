package config

import (
	"testing"
	"time"
)

const sample = `
version: "1.0.0"
mode: dev
database:
  host: db
  user: lablend
  password: from-yaml
  dbname: lablend
redis:
  enabled: false
auth:
  jwt_secret: yaml-secret
sweeper:
  interval: 30s
`

func TestParse_DefaultsAndDurations(t *testing.T) {
	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.Sweeper.Interval != 30*time.Second {
		t.Fatalf("interval=%v", cfg.Sweeper.Interval)
	}
	if cfg.Auth.TokenTTL != 24*time.Hour {
		t.Fatalf("token ttl default=%v", cfg.Auth.TokenTTL)
	}
	if cfg.Reports.CacheTTL != 5*time.Minute {
		t.Fatalf("cache ttl default=%v", cfg.Reports.CacheTTL)
	}
	if cfg.DB.Port != 3306 || cfg.Server.Addr != ":8443" {
		t.Fatalf("unexpected defaults: port=%d addr=%s", cfg.DB.Port, cfg.Server.Addr)
	}
	if !cfg.IsDev() {
		t.Fatalf("expected dev mode")
	}
}

func TestParse_EnvOverridesSecrets(t *testing.T) {
	t.Setenv(envDBPassword, "from-env")
	t.Setenv(envJWTSecret, "env-secret")

	cfg, err := Parse([]byte(sample))
	if err != nil {
		t.Fatalf("parse: %v", err)
	}
	if cfg.DB.Password != "from-env" {
		t.Fatalf("db password=%q", cfg.DB.Password)
	}
	if cfg.Auth.JWTSecret != "env-secret" {
		t.Fatalf("jwt secret=%q", cfg.Auth.JWTSecret)
	}
}

func TestParse_Invalid(t *testing.T) {
	cases := map[string]string{
		"bad mode":       "mode: prod\nauth:\n  jwt_secret: x\n",
		"missing secret": "mode: dev\n",
		"redis no addr":  "mode: dev\nauth:\n  jwt_secret: x\nredis:\n  enabled: true\n",
	}
	for name, doc := range cases {
		t.Run(name, func(t *testing.T) {
			if _, err := Parse([]byte(doc)); err == nil {
				t.Fatalf("expected error")
			}
		})
	}
}
