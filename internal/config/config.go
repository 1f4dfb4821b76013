package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

const (
	BackendMemory = "memory"
	BackendRedis  = "redis"
	BackendMySQL  = "mysql"
)

type LogSection struct {
	// Level is one of debug, info, warn, error
	Level string `yaml:"level"`
	// Format is json or console
	Format string `yaml:"format"`
}

type CheckoutSection struct {
	Workers   int `yaml:"workers"`
	QueueSize int `yaml:"queue_size"`
}

type IdempotencySection struct {
	Backend   string `yaml:"backend"`
	RedisAddr string `yaml:"redis_addr"`
}

type JournalSection struct {
	Backend  string `yaml:"backend"`
	MySQLDSN string `yaml:"mysql_dsn"`
}

type Config struct {
	HTTPAddr    string             `yaml:"http_addr"`
	GRPCAddr    string             `yaml:"grpc_addr"`
	Log         LogSection         `yaml:"log"`
	Checkout    CheckoutSection    `yaml:"checkout"`
	Idempotency IdempotencySection `yaml:"idempotency"`
	Journal     JournalSection     `yaml:"journal"`
}

func Default() Config {
	return Config{
		HTTPAddr: ":8080",
		GRPCAddr: ":50051",
		Log: LogSection{
			Level:  "info",
			Format: "json",
		},
		Checkout: CheckoutSection{
			Workers:   10,
			QueueSize: 10000,
		},
		Idempotency: IdempotencySection{
			Backend:   BackendMemory,
			RedisAddr: "localhost:6379",
		},
		Journal: JournalSection{
			Backend:  BackendMemory,
			MySQLDSN: "root:root@tcp(localhost:3306)/bookstore?parseTime=true",
		},
	}
}

// Load reads the YAML file at path over the defaults, then applies BOOKSTORE_*
// environment overrides. An empty path skips the file.
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config: %w", err)
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyEnv(cfg *Config) error {
	setString := func(key string, dst *string) {
		if v := os.Getenv(key); v != "" {
			*dst = v
		}
	}
	setInt := func(key string, dst *int) error {
		v := os.Getenv(key)
		if v == "" {
			return nil
		}
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("%s must be an integer: %w", key, err)
		}
		*dst = n
		return nil
	}

	setString("BOOKSTORE_HTTP_ADDR", &cfg.HTTPAddr)
	setString("BOOKSTORE_GRPC_ADDR", &cfg.GRPCAddr)
	setString("BOOKSTORE_LOG_LEVEL", &cfg.Log.Level)
	setString("BOOKSTORE_LOG_FORMAT", &cfg.Log.Format)
	setString("BOOKSTORE_IDEMPOTENCY_BACKEND", &cfg.Idempotency.Backend)
	setString("REDIS_ADDR", &cfg.Idempotency.RedisAddr)
	setString("BOOKSTORE_JOURNAL_BACKEND", &cfg.Journal.Backend)
	setString("MYSQL_DSN", &cfg.Journal.MySQLDSN)

	if err := setInt("BOOKSTORE_CHECKOUT_WORKERS", &cfg.Checkout.Workers); err != nil {
		return err
	}
	return setInt("BOOKSTORE_CHECKOUT_QUEUE_SIZE", &cfg.Checkout.QueueSize)
}

func (c Config) Validate() error {
	var errs []error

	if c.HTTPAddr == "" {
		errs = append(errs, errors.New("http_addr is required"))
	}
	if c.GRPCAddr == "" {
		errs = append(errs, errors.New("grpc_addr is required"))
	}
	if c.Checkout.Workers <= 0 {
		errs = append(errs, fmt.Errorf("checkout.workers must be positive, got %d", c.Checkout.Workers))
	}
	if c.Checkout.QueueSize <= 0 {
		errs = append(errs, fmt.Errorf("checkout.queue_size must be positive, got %d", c.Checkout.QueueSize))
	}

	switch c.Idempotency.Backend {
	case BackendMemory:
	case BackendRedis:
		if c.Idempotency.RedisAddr == "" {
			errs = append(errs, errors.New("idempotency.redis_addr is required for the redis backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown idempotency backend %q", c.Idempotency.Backend))
	}

	switch c.Journal.Backend {
	case BackendMemory:
	case BackendMySQL:
		if c.Journal.MySQLDSN == "" {
			errs = append(errs, errors.New("journal.mysql_dsn is required for the mysql backend"))
		}
	default:
		errs = append(errs, fmt.Errorf("unknown journal backend %q", c.Journal.Backend))
	}

	return errors.Join(errs...)
}
