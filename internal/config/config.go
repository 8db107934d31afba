package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/pkg/errors"
)

const (
	EnvProduction  = "production"
	EnvDevelopment = "development"

	StorePostgres = "postgres"
	StoreMemory   = "memory"
)

type Config struct {
	Addr     string `toml:"addr"`      // application listen address
	DiagAddr string `toml:"diag-addr"` // metrics listen address

	DatabaseURL string `toml:"database-url"`
	Store       string `toml:"store"` // postgres or memory

	// Env is the runtime mode. "production" hides error detail from
	// clients and switches logging to JSON.
	Env string `toml:"env"`

	ShutdownTimeout time.Duration `toml:"shutdown-timeout"`

	// Routes prints route documentation instead of serving.
	Routes bool `toml:"-"`
}

func NewDefaultConfig() *Config {
	return &Config{
		Addr:            ":3333",
		DiagAddr:        ":9999",
		Store:           StorePostgres,
		Env:             EnvDevelopment,
		ShutdownTimeout: 5 * time.Second,
	}
}

func (c *Config) Production() bool {
	return c.Env == EnvProduction
}

func (c *Config) Validate() error {
	switch c.Store {
	case StorePostgres:
		if c.DatabaseURL == "" {
			return fmt.Errorf("database url is required for the %s store", StorePostgres)
		}
	case StoreMemory:
	default:
		return fmt.Errorf("unknown store %q", c.Store)
	}

	if c.Addr == "" {
		return fmt.Errorf("addr must not be empty")
	}
	if c.ShutdownTimeout <= 0 {
		return fmt.Errorf("shutdown timeout must be greater than 0")
	}

	return nil
}

// Load builds a Config for service. Later sources override earlier ones:
// defaults, the TOML file named by -config, <SERVICE>_* environment
// variables, then flags set on the command line.
func Load(service string, args []string, getenv func(string) string) (*Config, error) {
	prefix := strings.ToUpper(service) + "_"
	env := func(name string) (string, bool) {
		v := getenv(prefix + name)
		return v, v != ""
	}

	fs := flag.NewFlagSet(service, flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		path            = fs.String("config", "", "path to a TOML config file")
		routes          = fs.Bool("routes", false, "generate router documentation")
		addr            = fs.String("addr", "", "application address")
		diagAddr        = fs.String("diag_addr", "", "diagnostics address")
		databaseURL     = fs.String("database_url", "", "postgres connection string")
		store           = fs.String("store", "", "article store: postgres or memory")
		mode            = fs.String("env", "", "runtime mode")
		shutdownTimeout = fs.Duration("shutdown_timeout", 0, "graceful shutdown timeout")
	)
	if err := fs.Parse(args); err != nil {
		return nil, errors.Wrap(err, "parse flags")
	}

	c := NewDefaultConfig()

	if *path == "" {
		*path, _ = env("CONFIG")
	}
	if *path != "" {
		if _, err := toml.DecodeFile(*path, c); err != nil {
			return nil, errors.Wrapf(err, "read config %s", *path)
		}
	}

	if v, ok := env("ADDR"); ok {
		c.Addr = v
	}
	if v, ok := env("DIAG_ADDR"); ok {
		c.DiagAddr = v
	}
	if v, ok := env("DATABASE_URL"); ok {
		c.DatabaseURL = v
	}
	if v, ok := env("STORE"); ok {
		c.Store = v
	}
	if v, ok := env("ENV"); ok {
		c.Env = v
	}
	if v, ok := env("SHUTDOWN_TIMEOUT"); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			return nil, errors.Wrapf(err, "%sSHUTDOWN_TIMEOUT", prefix)
		}
		c.ShutdownTimeout = d
	}
	if v, ok := env("ROUTES"); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			return nil, errors.Wrapf(err, "%sROUTES", prefix)
		}
		c.Routes = b
	}

	fs.Visit(func(f *flag.Flag) {
		switch f.Name {
		case "routes":
			c.Routes = *routes
		case "addr":
			c.Addr = *addr
		case "diag_addr":
			c.DiagAddr = *diagAddr
		case "database_url":
			c.DatabaseURL = *databaseURL
		case "store":
			c.Store = *store
		case "env":
			c.Env = *mode
		case "shutdown_timeout":
			c.ShutdownTimeout = *shutdownTimeout
		}
	})

	return c, nil
}

// FromEnvironment is Load over os.Args and os.Getenv.
func FromEnvironment(service string) (*Config, error) {
	return Load(service, os.Args[1:], os.Getenv)
}
