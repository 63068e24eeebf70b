package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/ethereum/go-ethereum/common"
	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/feral-file/claim-ledger/internal/domain"
	"github.com/feral-file/claim-ledger/internal/leaderboard"
)

// ENV_PREFIX prefixes every environment override, e.g. CLAIM_LEDGER_DATABASE_HOST
const ENV_PREFIX = "CLAIM_LEDGER"

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// DatabaseConfig holds database configuration
type DatabaseConfig struct {
	Host            string        `mapstructure:"host"`
	Port            int           `mapstructure:"port"`
	User            string        `mapstructure:"user"`
	Password        string        `mapstructure:"password"`
	DBName          string        `mapstructure:"dbname"`
	SSLMode         string        `mapstructure:"sslmode"`
	MaxOpenConns    int           `mapstructure:"max_open_conns"`     // Maximum number of open connections to the database
	MaxIdleConns    int           `mapstructure:"max_idle_conns"`     // Maximum number of idle connections in the pool
	ConnMaxLifetime time.Duration `mapstructure:"conn_max_lifetime"`  // Maximum amount of time a connection may be reused (e.g., "5m", "1h")
	ConnMaxIdleTime time.Duration `mapstructure:"conn_max_idle_time"` // Maximum amount of time a connection may be idle (e.g., "10m", "30m")
}

// NATSConfig holds NATS JetStream configuration
type NATSConfig struct {
	URL                    string        `mapstructure:"url"`
	StreamName             string        `mapstructure:"stream_name"`
	ConsumerName           string        `mapstructure:"consumer_name"`
	MaxReconnects          int           `mapstructure:"max_reconnects"`
	ReconnectWait          time.Duration `mapstructure:"reconnect_wait"`
	ConnectionName         string        `mapstructure:"connection_name"`
	AckWait                time.Duration `mapstructure:"ack_wait"`
	MaxDeliver             int           `mapstructure:"max_deliver"`
	PublishRetryMaxElapsed time.Duration `mapstructure:"publish_retry_max_elapsed"`
}

// EthereumConfig holds the chain connection and the followed contracts
type EthereumConfig struct {
	WebSocketURL         string        `mapstructure:"websocket_url"`
	ChainID              domain.Chain  `mapstructure:"chain_id"`
	TokenAddress         string        `mapstructure:"token_address"`
	TreasuryAddress      string        `mapstructure:"treasury_address"`
	StartBlock           uint64        `mapstructure:"start_block"`
	LogStep              uint64        `mapstructure:"log_step"`
	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"`
	CursorSaveFreq       uint64        `mapstructure:"cursor_save_freq"`
	CursorSaveDelay      time.Duration `mapstructure:"cursor_save_delay"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host           string   `mapstructure:"host"`
	Port           int      `mapstructure:"port"`
	ReadTimeout    int      `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout   int      `mapstructure:"write_timeout"` // in seconds
	IdleTimeout    int      `mapstructure:"idle_timeout"`  // in seconds
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AuthConfig holds the game server credentials accepted for score submission
type AuthConfig struct {
	JWTPublicKey string   `mapstructure:"jwt_public_key"`
	JWTIssuer    string   `mapstructure:"jwt_issuer"`
	APIKeys      []string `mapstructure:"api_keys"`
}

// WorkerConfig holds worker configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// LeaderboardConfig holds projection configuration
type LeaderboardConfig struct {
	Timezone        string `mapstructure:"timezone"`
	DefaultLimit    int    `mapstructure:"default_limit"`
	MaxLimit        int    `mapstructure:"max_limit"`
	RefreshSchedule string `mapstructure:"refresh_schedule"`
}

// RateLimitConfig holds the per-client API rate limit, shared across replicas through Redis
type RateLimitConfig struct {
	Enabled                 bool    `mapstructure:"enabled"`
	RedisAddr               string  `mapstructure:"redis_addr"`
	RedisPassword           string  `mapstructure:"redis_password"`
	RedisDB                 int     `mapstructure:"redis_db"`
	RedisKeyPrefix          string  `mapstructure:"redis_key_prefix"`
	RequestsPerSecond       int     `mapstructure:"requests_per_second"`
	Burst                   int     `mapstructure:"burst"`
	EnableLocalFallback     bool    `mapstructure:"enable_local_fallback"`
	LocalFallbackMultiplier float64 `mapstructure:"local_fallback_multiplier"` // Local rate = requests_per_second * multiplier
}

// EthereumEmitterConfig holds configuration for ethereum-event-emitter
type EthereumEmitterConfig struct {
	BaseConfig `mapstructure:",squash"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
}

// LedgerBridgeConfig holds configuration for ledger-bridge
type LedgerBridgeConfig struct {
	BaseConfig `mapstructure:",squash"`
	Worker     WorkerConfig   `mapstructure:"worker"`
	Database   DatabaseConfig `mapstructure:"database"`
	NATS       NATSConfig     `mapstructure:"nats"`
}

// APIConfig holds configuration for API server
type APIConfig struct {
	BaseConfig  `mapstructure:",squash"`
	Server      ServerConfig      `mapstructure:"server"`
	Database    DatabaseConfig    `mapstructure:"database"`
	Auth        AuthConfig        `mapstructure:"auth"`
	Leaderboard LeaderboardConfig `mapstructure:"leaderboard"`
	RateLimit   RateLimitConfig   `mapstructure:"rate_limit"`
}

// LoadEthereumEmitterConfig loads configuration for ethereum-event-emitter
func LoadEthereumEmitterConfig(configFile string, envPath string) (*EthereumEmitterConfig, error) {
	v := configureViper("ethereum-event-emitter", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	v.SetDefault("nats.connection_name", "ethereum-event-emitter")
	v.SetDefault("nats.publish_retry_max_elapsed", "1m")
	v.SetDefault("ethereum.chain_id", string(domain.ChainBaseMainnet))
	v.SetDefault("ethereum.log_step", 10000)
	v.SetDefault("ethereum.block_head_ttl", "2s")
	v.SetDefault("ethereum.block_head_stale_window", "1m")
	v.SetDefault("ethereum.cursor_save_freq", 50)
	v.SetDefault("ethereum.cursor_save_delay", "30s")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg EthereumEmitterConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	if cfg.NATS.URL == "" {
		return nil, errors.New("nats.url is required")
	}
	if cfg.Ethereum.WebSocketURL == "" {
		return nil, errors.New("ethereum.websocket_url is required")
	}
	if !domain.IsValidChain(cfg.Ethereum.ChainID) {
		return nil, fmt.Errorf("ethereum.chain_id %q is not supported", cfg.Ethereum.ChainID)
	}
	if !common.IsHexAddress(cfg.Ethereum.TokenAddress) {
		return nil, errors.New("ethereum.token_address must be a hex address")
	}
	if !common.IsHexAddress(cfg.Ethereum.TreasuryAddress) {
		return nil, errors.New("ethereum.treasury_address must be a hex address")
	}

	return &cfg, nil
}

// LoadLedgerBridgeConfig loads configuration for ledger-bridge
func LoadLedgerBridgeConfig(configFile string, envPath string) (*LedgerBridgeConfig, error) {
	v := configureViper("ledger-bridge", configFile, envPath)

	// Set defaults
	setDatabaseDefaults(v)
	setNATSDefaults(v)
	v.SetDefault("nats.connection_name", "ledger-bridge")
	v.SetDefault("nats.consumer_name", "ledger-bridge")
	v.SetDefault("nats.ack_wait", "30s")
	v.SetDefault("nats.max_deliver", 10)
	v.SetDefault("worker.pool_size", 8)
	v.SetDefault("worker.queue_size", 256)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg LedgerBridgeConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	if cfg.NATS.URL == "" {
		return nil, errors.New("nats.url is required")
	}

	return &cfg, nil
}

// LoadAPIConfig loads configuration for API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	// Set defaults
	v.SetDefault("debug", false)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 10)
	v.SetDefault("server.write_timeout", 10)
	v.SetDefault("server.idle_timeout", 120)
	setDatabaseDefaults(v)
	v.SetDefault("leaderboard.timezone", "UTC")
	v.SetDefault("leaderboard.default_limit", domain.DEFAULT_PAGE_LIMIT)
	v.SetDefault("leaderboard.max_limit", domain.MAX_PAGE_LIMIT)
	v.SetDefault("leaderboard.refresh_schedule", leaderboard.DEFAULT_REFRESH_SCHEDULE)
	v.SetDefault("rate_limit.enabled", false)
	v.SetDefault("rate_limit.requests_per_second", 20)
	v.SetDefault("rate_limit.burst", 40)
	v.SetDefault("rate_limit.enable_local_fallback", true)
	v.SetDefault("rate_limit.local_fallback_multiplier", 1.0)

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	// Validate required fields
	if err := cfg.Database.validate(); err != nil {
		return nil, err
	}
	if _, err := leaderboard.LoadLocation(cfg.Leaderboard.Timezone); err != nil {
		return nil, fmt.Errorf("leaderboard.timezone: %w", err)
	}
	if cfg.Auth.JWTPublicKey == "" && len(cfg.Auth.APIKeys) == 0 {
		return nil, errors.New("auth.jwt_public_key or auth.api_keys is required")
	}
	if cfg.RateLimit.Enabled {
		if cfg.RateLimit.RedisAddr == "" {
			return nil, errors.New("rate_limit.redis_addr is required when rate limiting is enabled")
		}
		if cfg.RateLimit.RequestsPerSecond <= 0 {
			return nil, errors.New("rate_limit.requests_per_second must be positive")
		}
	}

	return &cfg, nil
}

func setDatabaseDefaults(v *viper.Viper) {
	v.SetDefault("database.port", 5432)
	v.SetDefault("database.sslmode", "disable")
}

func setNATSDefaults(v *viper.Viper) {
	v.SetDefault("nats.max_reconnects", 10)
	v.SetDefault("nats.reconnect_wait", "2s")
	v.SetDefault("nats.stream_name", "LEDGER_EVENTS")
}

// readInConfig reads the config file, falling back to environment variables when none exists
func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
			// Config file not found, use environment variables
			return nil
		}
		return fmt.Errorf("failed to read config: %w", err)
	}
	return nil
}

// configureViper returns a viper instance with the config file and environment variables set
func configureViper(service string, configFile string, envPath string) *viper.Viper {
	v := viper.New()

	// Load environment variables
	loadEnv(envPath, service)

	// Set config file
	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		// Search for config.yaml in multiple locations:
		// 1. Current directory
		v.AddConfigPath(".")
		// 2. Service-specific directory (e.g., cmd/api/)
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		// 3. Config directory
		v.AddConfigPath("config/")
	}

	// Set environment variables
	v.SetEnvPrefix(ENV_PREFIX)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Explicitly bind all environment variables
	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Database
		"database.host",
		"database.port",
		"database.user",
		"database.password",
		"database.dbname",
		"database.sslmode",
		"database.max_open_conns",
		"database.max_idle_conns",
		"database.conn_max_lifetime",
		"database.conn_max_idle_time",
		// NATS
		"nats.url",
		"nats.stream_name",
		"nats.consumer_name",
		"nats.max_reconnects",
		"nats.reconnect_wait",
		"nats.connection_name",
		"nats.ack_wait",
		"nats.max_deliver",
		"nats.publish_retry_max_elapsed",
		// Ethereum
		"ethereum.websocket_url",
		"ethereum.chain_id",
		"ethereum.token_address",
		"ethereum.treasury_address",
		"ethereum.start_block",
		"ethereum.log_step",
		"ethereum.block_head_ttl",
		"ethereum.block_head_stale_window",
		"ethereum.cursor_save_freq",
		"ethereum.cursor_save_delay",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.allowed_origins",
		// Auth
		"auth.jwt_public_key",
		"auth.jwt_issuer",
		"auth.api_keys",
		// Leaderboard
		"leaderboard.timezone",
		"leaderboard.default_limit",
		"leaderboard.max_limit",
		"leaderboard.refresh_schedule",
		// Rate limit
		"rate_limit.enabled",
		"rate_limit.redis_addr",
		"rate_limit.redis_password",
		"rate_limit.redis_db",
		"rate_limit.redis_key_prefix",
		"rate_limit.requests_per_second",
		"rate_limit.burst",
		"rate_limit.enable_local_fallback",
		"rate_limit.local_fallback_multiplier",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	// Always try shared base first, then local, then optional per-service local.
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	// Default to config directory
	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		_ = godotenv.Overload(filepath.Join(envPath, envFile)) // Overload lets later files override earlier ones
	}
}

// ChdirRepoRoot changes the current working directory to the repository root
func ChdirRepoRoot() {
	cwd, _ := os.Getwd()
	for range 5 {
		if _, err := os.Stat(filepath.Join(cwd, "config")); err == nil {
			_ = os.Chdir(cwd)
			return
		}
		cwd = filepath.Dir(cwd)
	}
}

// DSN returns the database connection string
func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.DBName, c.SSLMode)
}

func (c *DatabaseConfig) validate() error {
	if c.Host == "" {
		return errors.New("database.host is required")
	}
	if c.DBName == "" {
		return errors.New("database.dbname is required")
	}
	return nil
}
