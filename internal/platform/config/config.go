package config

import (
	"errors"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "config/config.yaml"

	ModeDev     = "dev"
	ModeRelease = "release"

	envConfigPath    = "LABLEND_CONFIG"
	envDBPassword    = "LABLEND_DB_PASSWORD"
	envJWTSecret     = "LABLEND_JWT_SECRET"
	envRedisPassword = "LABLEND_REDIS_PASSWORD"
	envAdminPassword = "LABLEND_ADMIN_PASSWORD"
)

type DatabaseConfig struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`
}

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type ServerConfig struct {
	Addr           string   `yaml:"addr"`
	AllowedOrigins []string `yaml:"allowed_origins"`
	WebDir         string   `yaml:"web_dir"`
	Certificate    Certs    `yaml:"certificate"`
}

type RedisConfig struct {
	Enabled  bool   `yaml:"enabled"`
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
}

type BootstrapAdmin struct {
	Username string `yaml:"username"`
	Email    string `yaml:"email"`
	Password string `yaml:"password"`
}

type AuthConfig struct {
	JWTSecret      string         `yaml:"jwt_secret"`
	TokenTTL       time.Duration  `yaml:"token_ttl"`
	BootstrapAdmin BootstrapAdmin `yaml:"bootstrap_admin"`
}

type SweeperConfig struct {
	Interval time.Duration `yaml:"interval"`
}

type ReportsConfig struct {
	CacheTTL time.Duration `yaml:"cache_ttl"`
}

type Config struct {
	Version string         `yaml:"version"`
	Mode    string         `yaml:"mode"`
	Server  ServerConfig   `yaml:"server"`
	DB      DatabaseConfig `yaml:"database"`
	Redis   RedisConfig    `yaml:"redis"`
	Auth    AuthConfig     `yaml:"auth"`
	Sweeper SweeperConfig  `yaml:"sweeper"`
	Reports ReportsConfig  `yaml:"reports"`
}

// Path は LABLEND_CONFIG があればそれを、なければ既定パスを返す
func Path() string {
	if p := strings.TrimSpace(os.Getenv(envConfigPath)); p != "" {
		return p
	}
	return DefaultPath
}

// Load は YAML を読み込み、.env / 環境変数の秘密情報で上書きしてから検証する
func Load(path string) (*Config, error) {
	// .env は任意。無ければ環境変数だけを見る
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	return Parse(buf)
}

func Parse(buf []byte) (*Config, error) {
	var cfg Config
	if err := yaml.Unmarshal(buf, &cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	cfg.applyEnv()
	cfg.applyDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) applyEnv() {
	if v := os.Getenv(envDBPassword); v != "" {
		c.DB.Password = v
	}
	if v := os.Getenv(envJWTSecret); v != "" {
		c.Auth.JWTSecret = v
	}
	if v := os.Getenv(envRedisPassword); v != "" {
		c.Redis.Password = v
	}
	if v := os.Getenv(envAdminPassword); v != "" {
		c.Auth.BootstrapAdmin.Password = v
	}
}

func (c *Config) applyDefaults() {
	if c.Server.Addr == "" {
		c.Server.Addr = ":8443"
	}
	if c.DB.Port == 0 {
		c.DB.Port = 3306
	}
	if c.Auth.TokenTTL <= 0 {
		c.Auth.TokenTTL = 24 * time.Hour
	}
	if c.Sweeper.Interval <= 0 {
		c.Sweeper.Interval = time.Minute
	}
	if c.Reports.CacheTTL <= 0 {
		c.Reports.CacheTTL = 5 * time.Minute
	}
}

func (c *Config) Validate() error {
	if c.Mode != ModeDev && c.Mode != ModeRelease {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeDev, ModeRelease, c.Mode)
	}
	if strings.TrimSpace(c.Auth.JWTSecret) == "" {
		return errors.New("auth.jwt_secret is required (or set " + envJWTSecret + ")")
	}
	if c.Redis.Enabled && c.Redis.Addr == "" {
		return errors.New("redis.addr is required when redis is enabled")
	}
	return nil
}

func (c *Config) IsDev() bool { return c.Mode == ModeDev }
