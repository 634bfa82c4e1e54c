package config

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultPath = "config/config.yaml"

	ModeDev     = "dev"
	ModeRelease = "release"

	envPrefix = "BBS_"
)

type Database struct {
	Host     string `yaml:"host"`
	Port     int    `yaml:"port"`
	Username string `yaml:"user"`
	Password string `yaml:"password"`
	DBName   string `yaml:"dbname"`

	MaxOpenConns int `yaml:"max_open_conns"`
	MaxIdleConns int `yaml:"max_idle_conns"`
}

type Certs struct {
	Cert string `yaml:"cert"`
	Key  string `yaml:"key"`
}

type Server struct {
	Addr           string        `yaml:"addr"`
	RequestTimeout time.Duration `yaml:"request_timeout"`
	StaticDir      string        `yaml:"static_dir"`
	AllowOrigins   []string      `yaml:"allow_origins"`
}

type Config struct {
	Version     string   `yaml:"version"`
	Mode        string   `yaml:"mode"`
	LogLevel    string   `yaml:"log_level"`
	Server      Server   `yaml:"server"`
	DB          Database `yaml:"database"`
	Certificate Certs    `yaml:"certificate"`
}

// Load reads the yaml file at path, then applies BBS_* environment
// overrides. A .env file next to the working directory is loaded first
// when present.
func Load(path string) (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load .env: %w", err)
	}

	buf, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}
	cfg := Default()
	if err := yaml.Unmarshal(buf, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func Default() *Config {
	return &Config{
		Mode:     ModeDev,
		LogLevel: "info",
		Server: Server{
			Addr:           ":8080",
			RequestTimeout: 5 * time.Second,
			AllowOrigins:   []string{"http://localhost:3000"},
		},
		DB: Database{
			Host:         "127.0.0.1",
			Port:         3306,
			MaxOpenConns: 40,
			MaxIdleConns: 10,
		},
	}
}

func (c *Config) Validate() error {
	if c.Mode != ModeDev && c.Mode != ModeRelease {
		return fmt.Errorf("mode must be %q or %q, got %q", ModeDev, ModeRelease, c.Mode)
	}
	if c.DB.DBName == "" {
		return errors.New("database.dbname is required")
	}
	if c.Server.RequestTimeout <= 0 {
		return errors.New("server.request_timeout must be > 0")
	}
	if (c.Certificate.Cert == "") != (c.Certificate.Key == "") {
		return errors.New("certificate.cert and certificate.key must be set together")
	}
	return nil
}

func (c *Config) TLSEnabled() bool { return c.Certificate.Cert != "" && c.Certificate.Key != "" }

func (c *Config) applyEnv(lookup func(string) (string, bool)) error {
	str := func(key string, dst *string) {
		if v, ok := lookup(envPrefix + key); ok && v != "" {
			*dst = v
		}
	}
	str("MODE", &c.Mode)
	str("LOG_LEVEL", &c.LogLevel)
	str("SERVER_ADDR", &c.Server.Addr)
	str("STATIC_DIR", &c.Server.StaticDir)
	str("DB_HOST", &c.DB.Host)
	str("DB_USER", &c.DB.Username)
	str("DB_PASSWORD", &c.DB.Password)
	str("DB_NAME", &c.DB.DBName)
	str("TLS_CERT", &c.Certificate.Cert)
	str("TLS_KEY", &c.Certificate.Key)

	if v, ok := lookup(envPrefix + "DB_PORT"); ok && v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%sDB_PORT: %w", envPrefix, err)
		}
		c.DB.Port = n
	}
	if v, ok := lookup(envPrefix + "REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("%sREQUEST_TIMEOUT: %w", envPrefix, err)
		}
		c.Server.RequestTimeout = d
	}
	if v, ok := lookup(envPrefix + "ALLOW_ORIGINS"); ok && v != "" {
		var origins []string
		for _, o := range strings.Split(v, ",") {
			if o = strings.TrimSpace(o); o != "" {
				origins = append(origins, o)
			}
		}
		c.Server.AllowOrigins = origins
	}
	return nil
}
