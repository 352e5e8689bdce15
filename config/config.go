package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	DefaultTTLSeconds = 3600
	defaultEnvFile    = ".env"
)

type CacheConfig struct {
	// TTL is the default entry lifetime in seconds.
	TTL      int    `yaml:"ttl"`
	Prefix   string `yaml:"prefix"`
	MaxBytes int64  `yaml:"maxBytes"`
	// SweepInterval is how often expired entries are cleared, in seconds. Zero disables it.
	SweepInterval int `yaml:"sweepInterval"`
}

type Config struct {
	Env       string      `yaml:"env"`
	Addr      string      `yaml:"addr"`
	DB        string      `yaml:"db"`
	Cache     CacheConfig `yaml:"cache"`
	APIURL    string      `yaml:"apiUrl"`
	LogLevel  string      `yaml:"logLevel"`
	JWTSecret string      `yaml:"jwtSecret"`
}

func Default() Config {
	return Config{
		Env:  EnvDevelopment,
		Addr: ":8080",
		DB:   "taskflow.db",
		Cache: CacheConfig{
			TTL:           DefaultTTLSeconds,
			Prefix:        "taskflow_cache_",
			SweepInterval: 300,
		},
		APIURL:   "http://localhost:8080",
		LogLevel: "error",
	}
}

func (c Config) Production() bool {
	return c.Env == EnvProduction
}

func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTL) * time.Second
}

func (c Config) SweepInterval() time.Duration {
	return time.Duration(c.Cache.SweepInterval) * time.Second
}

// Load builds the configuration from the defaults, the YAML file at path when path is
// not empty, and the environment. Variables found in the env files (".env" when none is
// given) are added to the environment without replacing variables already set.
func Load(path string, envFiles ...string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, er := os.ReadFile(path)
		if er != nil {
			return cfg, fmt.Errorf("reading config: %w", er)
		}
		if er = yaml.Unmarshal(data, &cfg); er != nil {
			return cfg, fmt.Errorf("parsing config %s: %w", path, er)
		}
	}

	if len(envFiles) == 0 {
		envFiles = []string{defaultEnvFile}
	}
	for _, f := range envFiles {
		if er := godotenv.Load(f); er != nil && !errors.Is(er, os.ErrNotExist) {
			return cfg, fmt.Errorf("loading %s: %w", f, er)
		}
	}

	applyEnv(&cfg)
	return cfg, nil
}

func applyEnv(cfg *Config) {
	str := func(name string, dst *string) {
		if v, ok := os.LookupEnv(name); ok && v != "" {
			*dst = v
		}
	}
	str("TASKFLOW_ENV", &cfg.Env)
	str("TASKFLOW_ADDR", &cfg.Addr)
	str("TASKFLOW_DB", &cfg.DB)
	str("TASKFLOW_CACHE_PREFIX", &cfg.Cache.Prefix)
	str("TASKFLOW_API_URL", &cfg.APIURL)
	str("TASKFLOW_LOG_LEVEL", &cfg.LogLevel)
	str("TASKFLOW_JWT_SECRET", &cfg.JWTSecret)

	if v, ok := os.LookupEnv("TASKFLOW_CACHE_TTL"); ok && v != "" {
		cfg.Cache.TTL = ParseTTL(v)
	}
	if v, ok := os.LookupEnv("TASKFLOW_CACHE_MAX_BYTES"); ok {
		if n, er := strconv.ParseInt(v, 10, 64); er == nil && n >= 0 {
			cfg.Cache.MaxBytes = n
		}
	}
}

// ParseTTL reads a TTL in seconds. Empty, non numeric and non positive values give
// DefaultTTLSeconds.
func ParseTTL(s string) int {
	n, er := strconv.Atoi(s)
	if er != nil || n <= 0 {
		return DefaultTTLSeconds
	}
	return n
}
