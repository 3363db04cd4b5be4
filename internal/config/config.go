package config

import (
	"net"
	"net/url"
	"strconv"
	"strings"
	"time"
)

// Config is the root application configuration.
type Config struct {
	Server    ServerConfig    `yaml:"server"`
	Database  DatabaseConfig  `yaml:"database"`
	Log       LogConfig       `yaml:"log"`
	CORS      CORSConfig      `yaml:"cors"`
	RateLimit RateLimitConfig `yaml:"rate_limit"`
	Metrics   MetricsConfig   `yaml:"metrics"`
	MCP       MCPConfig       `yaml:"mcp"`
	Kafka     KafkaConfig     `yaml:"kafka"`
	Web       WebConfig       `yaml:"web"`
}

// CORSConfig holds CORS settings.
type CORSConfig struct {
	AllowedOrigins   string `yaml:"allowed_origins"   env:"CORS_ALLOWED_ORIGINS"   env-default:"*"`
	AllowedMethods   string `yaml:"allowed_methods"   env:"CORS_ALLOWED_METHODS"   env-default:"GET,POST,PUT,DELETE,OPTIONS"`
	AllowedHeaders   string `yaml:"allowed_headers"   env:"CORS_ALLOWED_HEADERS"   env-default:"Content-Type,X-Request-Id"`
	AllowCredentials bool   `yaml:"allow_credentials" env:"CORS_ALLOW_CREDENTIALS" env-default:"false"`
	MaxAge           int    `yaml:"max_age"           env:"CORS_MAX_AGE"           env-default:"86400"`
}

// ServerConfig holds HTTP server settings for the notes API.
type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HOST"                    env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"                    env-default:"5000"`
	ReadTimeout     time.Duration `yaml:"read_timeout"     env:"SERVER_READ_TIMEOUT"     env-default:"10s"`
	WriteTimeout    time.Duration `yaml:"write_timeout"    env:"SERVER_WRITE_TIMEOUT"    env-default:"30s"`
	IdleTimeout     time.Duration `yaml:"idle_timeout"     env:"SERVER_IDLE_TIMEOUT"     env-default:"60s"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SERVER_SHUTDOWN_TIMEOUT" env-default:"10s"`
}

// Addr returns the host:port listen address.
func (c ServerConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}

// DatabaseConfig holds PostgreSQL connection settings.
// When DSN is set it is used verbatim and the discrete fields are ignored.
type DatabaseConfig struct {
	DSN             string        `yaml:"dsn"                env:"DATABASE_DSN"`
	Host            string        `yaml:"host"               env:"DB_HOST"               env-default:"postgres"`
	Port            int           `yaml:"port"               env:"DB_PORT"               env-default:"5432"`
	User            string        `yaml:"user"               env:"DB_USER"               env-default:"admin"`
	Password        string        `yaml:"password"           env:"DB_PASSWORD"           env-default:"notespass"`
	Name            string        `yaml:"name"               env:"DB_NAME"               env-default:"notes-db"`
	SSLMode         string        `yaml:"sslmode"            env:"DB_SSLMODE"            env-default:"disable"`
	MaxConns        int32         `yaml:"max_conns"          env:"DB_MAX_CONNS"          env-default:"10"`
	MinConns        int32         `yaml:"min_conns"          env:"DB_MIN_CONNS"          env-default:"1"`
	MaxConnLifetime time.Duration `yaml:"max_conn_lifetime"  env:"DB_MAX_CONN_LIFETIME"  env-default:"1h"`
	MaxConnIdleTime time.Duration `yaml:"max_conn_idle_time" env:"DB_MAX_CONN_IDLE_TIME" env-default:"30m"`
	ConnectAttempts uint          `yaml:"connect_attempts"   env:"DB_CONNECT_ATTEMPTS"   env-default:"5"`
}

// ConnString returns the connection URL for pgx.
func (c DatabaseConfig) ConnString() string {
	if c.DSN != "" {
		return c.DSN
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   url.UserPassword(c.User, c.Password),
		Host:   net.JoinHostPort(c.Host, strconv.Itoa(c.Port)),
		Path:   c.Name,
	}
	if c.SSLMode != "" {
		u.RawQuery = url.Values{"sslmode": {c.SSLMode}}.Encode()
	}
	return u.String()
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

// RateLimitConfig holds per-client request limits. RPS of 0 disables limiting.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps"   env:"RATE_LIMIT_RPS"   env-default:"0"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST" env-default:"20"`
}

// Enabled reports whether rate limiting is switched on.
func (c RateLimitConfig) Enabled() bool { return c.RPS > 0 }

// MetricsConfig controls the Prometheus endpoint.
type MetricsConfig struct {
	Enabled bool   `yaml:"enabled" env:"METRICS_ENABLED" env-default:"true"`
	Path    string `yaml:"path"    env:"METRICS_PATH"    env-default:"/metrics"`
}

// MCPConfig controls the Model Context Protocol endpoint.
type MCPConfig struct {
	Enabled bool   `yaml:"enabled" env:"MCP_ENABLED" env-default:"false"`
	Name    string `yaml:"name"    env:"MCP_NAME"    env-default:"Notes"`
}

// KafkaConfig configures note event publication. Empty Brokers disables it.
type KafkaConfig struct {
	Brokers      string        `yaml:"brokers"       env:"KAFKA_BROKERS"`
	Topic        string        `yaml:"topic"         env:"KAFKA_TOPIC"         env-default:"note-events"`
	WriteTimeout time.Duration `yaml:"write_timeout" env:"KAFKA_WRITE_TIMEOUT" env-default:"5s"`
}

// BrokerList splits the comma-separated broker list.
func (c KafkaConfig) BrokerList() []string {
	var brokers []string
	for _, b := range strings.Split(c.Brokers, ",") {
		if b = strings.TrimSpace(b); b != "" {
			brokers = append(brokers, b)
		}
	}
	return brokers
}

// Enabled reports whether at least one broker is configured.
func (c KafkaConfig) Enabled() bool { return len(c.BrokerList()) > 0 }

// WebConfig holds settings for the server-rendered client UI.
type WebConfig struct {
	Host         string        `yaml:"host"          env:"WEB_HOST"          env-default:"0.0.0.0"`
	Port         int           `yaml:"port"          env:"WEB_PORT"          env-default:"3000"`
	APIURL       string        `yaml:"api_url"       env:"NOTES_API_URL"     env-default:"http://localhost:5000"`
	APITimeout   time.Duration `yaml:"api_timeout"   env:"NOTES_API_TIMEOUT" env-default:"5s"`
	CookieSecure bool          `yaml:"cookie_secure" env:"WEB_COOKIE_SECURE" env-default:"false"`
}

// Addr returns the host:port listen address.
func (c WebConfig) Addr() string {
	return net.JoinHostPort(c.Host, strconv.Itoa(c.Port))
}
