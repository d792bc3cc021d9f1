package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"

	"github.com/duanblockchain/marketview/internal/domain"
)

// BaseConfig holds base configuration
type BaseConfig struct {
	Debug     bool   `mapstructure:"debug"`
	SentryDSN string `mapstructure:"sentry_dsn"`
}

// EthereumConfig holds the chain and marketplace contract configuration
type EthereumConfig struct {
	RPCURL               string        `mapstructure:"rpc_url"`
	ChainID              domain.Chain  `mapstructure:"chain_id"`
	ContractAddress      string        `mapstructure:"contract_address"`
	BlockHeadTTL         time.Duration `mapstructure:"block_head_ttl"`
	BlockHeadStaleWindow time.Duration `mapstructure:"block_head_stale_window"`
	HistoryWindow        uint64        `mapstructure:"history_window"`
	RequestsPerSecond    float64       `mapstructure:"requests_per_second"` // 0 disables throttling
}

// MetadataConfig holds metadata resolver configuration
type MetadataConfig struct {
	HTTPTimeout     time.Duration `mapstructure:"http_timeout"`
	RetryMaxElapsed time.Duration `mapstructure:"retry_max_elapsed"` // 0 disables 429 retries
	IPFSGateways    []string      `mapstructure:"ipfs_gateways"`
	ArweaveGateways []string      `mapstructure:"arweave_gateways"`
}

// WorkerConfig holds worker pool configuration
type WorkerConfig struct {
	WorkerPoolSize  int `mapstructure:"pool_size"`
	WorkerQueueSize int `mapstructure:"queue_size"`
}

// ExplorerConfig holds block explorer configuration
type ExplorerConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host         string `mapstructure:"host"`
	Port         int    `mapstructure:"port"`
	ReadTimeout  int    `mapstructure:"read_timeout"`  // in seconds
	WriteTimeout int    `mapstructure:"write_timeout"` // in seconds
	IdleTimeout  int    `mapstructure:"idle_timeout"`  // in seconds

	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"` // empty allows any origin
}

// SessionConfig holds per-caller session configuration
type SessionConfig struct {
	IdleTTL time.Duration `mapstructure:"idle_ttl"`
}

// WalletConfig holds signing configuration for write actions
type WalletConfig struct {
	PrivateKey          string        `mapstructure:"private_key"`
	Address             string        `mapstructure:"address"` // read-only identity when no key is set
	ConfirmationTimeout time.Duration `mapstructure:"confirmation_timeout"`
}

// APIConfig holds configuration for the API server
type APIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Server     ServerConfig   `mapstructure:"server"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Metadata   MetadataConfig `mapstructure:"metadata"`
	Worker     WorkerConfig   `mapstructure:"worker"`
	Explorer   ExplorerConfig `mapstructure:"explorer"`
	Session    SessionConfig  `mapstructure:"session"`
}

// CLIConfig holds configuration for marketctl
type CLIConfig struct {
	BaseConfig `mapstructure:",squash"`
	Ethereum   EthereumConfig `mapstructure:"ethereum"`
	Metadata   MetadataConfig `mapstructure:"metadata"`
	Worker     WorkerConfig   `mapstructure:"worker"`
	Explorer   ExplorerConfig `mapstructure:"explorer"`
	Wallet     WalletConfig   `mapstructure:"wallet"`
}

// LoadAPIConfig loads configuration for the API server
func LoadAPIConfig(configFile string, envPath string) (*APIConfig, error) {
	v := configureViper("api", configFile, envPath)

	setEngineDefaults(v)
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15)
	v.SetDefault("server.write_timeout", 60)
	v.SetDefault("server.idle_timeout", 120)
	v.SetDefault("session.idle_ttl", "30m")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg APIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Ethereum.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// LoadCLIConfig loads configuration for marketctl
func LoadCLIConfig(configFile string, envPath string) (*CLIConfig, error) {
	v := configureViper("marketctl", configFile, envPath)

	setEngineDefaults(v)
	v.SetDefault("wallet.confirmation_timeout", "3m")

	if err := readInConfig(v); err != nil {
		return nil, err
	}

	var cfg CLIConfig
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if err := cfg.Ethereum.Validate(); err != nil {
		return nil, err
	}

	return &cfg, nil
}

// Validate checks the settings every engine component relies on
func (c *EthereumConfig) Validate() error {
	if c.RPCURL == "" {
		return fmt.Errorf("ethereum.rpc_url is required")
	}
	if _, err := domain.ParseAddress(c.ContractAddress); err != nil {
		return fmt.Errorf("ethereum.contract_address: %w", err)
	}
	if _, err := c.ChainID.ChainID(); err != nil {
		return fmt.Errorf("ethereum.chain_id: %w", err)
	}
	if c.HistoryWindow == 0 {
		return fmt.Errorf("ethereum.history_window must be positive")
	}
	return nil
}

// setEngineDefaults sets the defaults shared by every binary
func setEngineDefaults(v *viper.Viper) {
	v.SetDefault("ethereum.rpc_url", "https://evm-t3.cronos.org")
	v.SetDefault("ethereum.chain_id", string(domain.ChainCronosTestnet))
	v.SetDefault("ethereum.block_head_ttl", "5s")
	v.SetDefault("ethereum.block_head_stale_window", "1m")
	v.SetDefault("ethereum.history_window", domain.HISTORY_WINDOW)
	v.SetDefault("ethereum.requests_per_second", 0)
	v.SetDefault("metadata.http_timeout", "15s")
	v.SetDefault("metadata.retry_max_elapsed", "0s")
	v.SetDefault("metadata.ipfs_gateways", []string{
		"https://gateway.pinata.cloud",
		"https://ipfs.io",
		"https://dweb.link",
	})
	v.SetDefault("metadata.arweave_gateways", []string{domain.DEFAULT_ARWEAVE_GATEWAY})
	v.SetDefault("worker.pool_size", 16)
	v.SetDefault("worker.queue_size", 1024)
	v.SetDefault("explorer.base_url", domain.DEFAULT_EXPLORER_URL)
}

// readInConfig reads the config file, falling back to environment variables when none exists
func readInConfig(v *viper.Viper) error {
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if errors.As(err, &notFound) {
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

	if configFile != "" {
		v.SetConfigFile(configFile)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath(fmt.Sprintf("cmd/%s/", service))
		v.AddConfigPath("config/")
	}

	v.SetEnvPrefix("MARKETVIEW")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindAllEnvVars(v)
	return v
}

// bindAllEnvVars explicitly binds all possible environment variables
// This is required for viper to map env vars to config struct fields when no config file exists
func bindAllEnvVars(v *viper.Viper) {
	keys := []string{
		"debug",
		"sentry_dsn",
		// Ethereum
		"ethereum.rpc_url",
		"ethereum.chain_id",
		"ethereum.contract_address",
		"ethereum.block_head_ttl",
		"ethereum.block_head_stale_window",
		"ethereum.history_window",
		"ethereum.requests_per_second",
		// Metadata
		"metadata.http_timeout",
		"metadata.retry_max_elapsed",
		"metadata.ipfs_gateways",
		"metadata.arweave_gateways",
		// Worker
		"worker.pool_size",
		"worker.queue_size",
		// Explorer
		"explorer.base_url",
		// Server
		"server.host",
		"server.port",
		"server.read_timeout",
		"server.write_timeout",
		"server.idle_timeout",
		"server.cors_allowed_origins",
		// Session
		"session.idle_ttl",
		// Wallet
		"wallet.private_key",
		"wallet.address",
		"wallet.confirmation_timeout",
	}

	for _, key := range keys {
		_ = v.BindEnv(key)
	}
}

// loadEnv loads environment variables from the config directory
func loadEnv(envPath string, service string) {
	envFiles := []string{".env", ".env.local"}
	if service != "" {
		envFiles = append(envFiles, ".env."+service+".local")
	}

	if envPath == "" {
		envPath = "config/"
	}

	for _, envFile := range envFiles {
		candidate := filepath.Join(envPath, envFile)
		_ = godotenv.Overload(candidate) // later files override earlier ones
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
