// Package config loads application settings into an explicit Config value.
//
// Values are layered, later sources win:
//
//	built-in defaults → config/app.json → .env → process environment
//
// The result is built once at startup and passed to the components that need
// it; nothing in the module reads settings from a package global.
package config

import (
	"bufio"
	"encoding/json"
	"fmt"
	"net"
	"net/url"
	"os"
	"strconv"
	"strings"
	"time"
)

const (
	DriverPostgres  = "postgres"
	DriverMySQL     = "mysql"
	DriverSQLite    = "sqlite"
	DriverSQLServer = "sqlserver"
)

// Config is the fully resolved application configuration.
type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Log      LogConfig
	Orders   OrderConfig
	HTTP     HTTPConfig
}

type AppConfig struct {
	Env  string
	Port string
}

// IsProduction reports whether APP_ENV names a production deployment.
func (a AppConfig) IsProduction() bool {
	return a.Env == "production" || a.Env == "prod"
}

// Addr is the listen address for the HTTP server.
func (a AppConfig) Addr() string {
	return ":" + a.Port
}

// DatabaseConfig describes how to reach the relational store. URL, when set,
// takes precedence over the discrete fields.
type DatabaseConfig struct {
	Driver       string
	URL          string
	Host         string
	Port         int
	User         string
	Password     string
	Name         string
	MaxOpenConns int
	MaxIdleConns int
}

type RedisConfig struct {
	Addr     string
	Password string
	DB       int
	TTL      time.Duration
}

// Enabled reports whether a Redis address was configured.
func (r RedisConfig) Enabled() bool { return r.Addr != "" }

type LogConfig struct {
	MongoURI        string
	MongoDatabase   string
	MongoCollection string
}

type OrderConfig struct {
	// TxTimeout bounds a single order placement transaction.
	TxTimeout time.Duration
}

type HTTPConfig struct {
	RateLimitRPS   float64
	RateLimitBurst int
	MaxBodyBytes   int64
}

func defaultValues() map[string]string {
	return map[string]string{
		"APP_ENV":              "local",
		"APP_PORT":             "8080",
		"DB_DRIVER":            DriverPostgres,
		"DATABASE_URL":         "",
		"DB_HOST":              "localhost",
		"DB_PORT":              "5432",
		"DB_USER":              "",
		"DB_PASSWORD":          "",
		"DB_NAME":              "",
		"DB_MAX_OPEN_CONNS":    "15",
		"DB_MAX_IDLE_CONNS":    "5",
		"REDIS_ADDR":           "",
		"REDIS_PASSWORD":       "",
		"REDIS_DB":             "0",
		"CACHE_TTL":            "60s",
		"ORDER_TX_TIMEOUT":     "5s",
		"RATE_LIMIT_RPS":       "20",
		"RATE_LIMIT_BURST":     "40",
		"MAX_BODY_BYTES":       "1048576",
		"LOG_MONGO_URI":        "",
		"LOG_MONGO_DB":         "shop",
		"LOG_MONGO_COLLECTION": "logs",
	}
}

// Options controls where Load looks for configuration.
type Options struct {
	JSONPath string
	EnvPath  string
	// Environ supplies process variables; nil means os.Environ.
	Environ func() []string
}

// DefaultOptions reads config/app.json and .env from the working directory.
func DefaultOptions() Options {
	return Options{JSONPath: "config/app.json", EnvPath: ".env", Environ: os.Environ}
}

// Load resolves a Config from the default sources.
func Load() (*Config, error) {
	return LoadWith(DefaultOptions())
}

// LoadWith resolves a Config from the given sources. Missing files are skipped.
func LoadWith(opts Options) (*Config, error) {
	values := defaultValues()

	if opts.JSONPath != "" {
		if err := mergeJSONConfig(opts.JSONPath, values); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}
	if opts.EnvPath != "" {
		if err := mergeDotEnv(opts.EnvPath, values); err != nil && !os.IsNotExist(err) {
			return nil, err
		}
	}

	environ := opts.Environ
	if environ == nil {
		environ = os.Environ
	}
	mergeEnviron(environ(), values)

	return build(values)
}

func build(v map[string]string) (*Config, error) {
	p := parser{values: v}

	cfg := &Config{
		App: AppConfig{
			Env:  p.str("APP_ENV"),
			Port: p.str("APP_PORT"),
		},
		Database: DatabaseConfig{
			Driver:       strings.ToLower(p.str("DB_DRIVER")),
			URL:          p.str("DATABASE_URL"),
			Host:         p.str("DB_HOST"),
			Port:         p.int("DB_PORT"),
			User:         p.str("DB_USER"),
			Password:     p.values["DB_PASSWORD"],
			Name:         p.str("DB_NAME"),
			MaxOpenConns: p.int("DB_MAX_OPEN_CONNS"),
			MaxIdleConns: p.int("DB_MAX_IDLE_CONNS"),
		},
		Redis: RedisConfig{
			Addr:     p.str("REDIS_ADDR"),
			Password: p.values["REDIS_PASSWORD"],
			DB:       p.int("REDIS_DB"),
			TTL:      p.duration("CACHE_TTL"),
		},
		Log: LogConfig{
			MongoURI:        p.str("LOG_MONGO_URI"),
			MongoDatabase:   p.str("LOG_MONGO_DB"),
			MongoCollection: p.str("LOG_MONGO_COLLECTION"),
		},
		Orders: OrderConfig{
			TxTimeout: p.duration("ORDER_TX_TIMEOUT"),
		},
		HTTP: HTTPConfig{
			RateLimitRPS:   p.float("RATE_LIMIT_RPS"),
			RateLimitBurst: p.int("RATE_LIMIT_BURST"),
			MaxBodyBytes:   int64(p.int("MAX_BODY_BYTES")),
		},
	}

	if p.err != nil {
		return nil, p.err
	}

	switch cfg.Database.Driver {
	case DriverPostgres, DriverMySQL, DriverSQLite, DriverSQLServer:
	default:
		return nil, fmt.Errorf("config: unsupported DB_DRIVER %q (supported: postgres, mysql, sqlite, sqlserver)", cfg.Database.Driver)
	}

	return cfg, nil
}

// Validate checks that enough is known to open a connection.
func (d DatabaseConfig) Validate() error {
	if d.URL != "" || d.Driver == DriverSQLite {
		return nil
	}
	var missing []string
	if d.User == "" {
		missing = append(missing, "DB_USER")
	}
	if d.Name == "" {
		missing = append(missing, "DB_NAME")
	}
	if len(missing) > 0 {
		return fmt.Errorf("config: DATABASE_URL is unset and %s missing", strings.Join(missing, ", "))
	}
	return nil
}

// DSN returns the driver-specific connection string.
func (d DatabaseConfig) DSN() string {
	if d.URL != "" {
		return normalizeURL(d.URL)
	}

	hostPort := net.JoinHostPort(d.Host, strconv.Itoa(d.Port))

	switch d.Driver {
	case DriverSQLite:
		name := d.Name
		if name == "" {
			name = "shop.db"
		}
		// Immediate transactions take the write lock up front, which is the
		// closest SQLite gets to row locking.
		return name + "?_txlock=immediate&_busy_timeout=5000&_foreign_keys=1"
	case DriverMySQL:
		return fmt.Sprintf("%s:%s@tcp(%s)/%s?charset=utf8mb4&parseTime=True&loc=UTC",
			d.User, d.Password, hostPort, d.Name)
	case DriverSQLServer:
		u := url.URL{
			Scheme:   "sqlserver",
			User:     url.UserPassword(d.User, d.Password),
			Host:     hostPort,
			RawQuery: url.Values{"database": {d.Name}}.Encode(),
		}
		return u.String()
	default:
		u := url.URL{
			Scheme:   "postgres",
			User:     url.UserPassword(d.User, d.Password),
			Host:     hostPort,
			Path:     "/" + d.Name,
			RawQuery: "sslmode=disable",
		}
		return u.String()
	}
}

// normalizeURL strips SQLAlchemy-style driver suffixes such as
// "postgresql+psycopg2://" so existing deployment env files keep working.
func normalizeURL(raw string) string {
	scheme, rest, ok := strings.Cut(raw, "://")
	if !ok {
		return raw
	}
	if base, _, found := strings.Cut(scheme, "+"); found {
		return base + "://" + rest
	}
	return raw
}

type parser struct {
	values map[string]string
	err    error
}

func (p *parser) str(key string) string {
	return strings.TrimSpace(p.values[key])
}

func (p *parser) int(key string) int {
	raw := p.str(key)
	if raw == "" {
		return 0
	}
	n, err := strconv.Atoi(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("config: %s: %w", key, err)
	}
	return n
}

func (p *parser) float(key string) float64 {
	raw := p.str(key)
	if raw == "" {
		return 0
	}
	f, err := strconv.ParseFloat(raw, 64)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("config: %s: %w", key, err)
	}
	return f
}

func (p *parser) duration(key string) time.Duration {
	raw := p.str(key)
	if raw == "" {
		return 0
	}
	d, err := time.ParseDuration(raw)
	if err != nil && p.err == nil {
		p.err = fmt.Errorf("config: %s: %w", key, err)
	}
	return d
}

func mergeJSONConfig(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	var raw map[string]any
	if err := json.NewDecoder(file).Decode(&raw); err != nil {
		return fmt.Errorf("config: decode %s: %w", path, err)
	}

	for key, val := range raw {
		k := strings.ToUpper(strings.TrimSpace(key))
		if k == "" {
			continue
		}
		switch v := val.(type) {
		case string:
			out[k] = strings.TrimSpace(v)
		case float64:
			out[k] = strconv.FormatFloat(v, 'f', -1, 64)
		case bool:
			out[k] = strconv.FormatBool(v)
		}
	}

	return nil
}

func mergeDotEnv(path string, out map[string]string) error {
	file, err := os.Open(path)
	if err != nil {
		return err
	}
	defer file.Close()

	scanner := bufio.NewScanner(file)
	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		line = strings.TrimPrefix(line, "export ")

		key, value, ok := strings.Cut(line, "=")
		key = strings.ToUpper(strings.TrimSpace(key))
		if !ok || key == "" {
			continue
		}
		out[key] = strings.Trim(strings.TrimSpace(value), `"'`)
	}

	if err := scanner.Err(); err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}

	return nil
}

// mergeEnviron overlays process variables for keys the application knows.
func mergeEnviron(environ []string, out map[string]string) {
	known := defaultValues()
	for _, kv := range environ {
		key, value, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if _, tracked := known[key]; tracked {
			out[key] = value
		}
	}
}
