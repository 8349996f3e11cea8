package config

import (
	"flag"
	"log"
	"os"
	"time"

	"github.com/ilyakaznacheev/cleanenv"
)

type (
	// Config represents an application configuration.
	Config struct {
		// Subconfigs.
		HTTPServer HTTPServer `yaml:"http_server"`
		Bank       Bank       `yaml:"bank"`
		Audit      Audit      `yaml:"audit"`
		Logger     Logger     `yaml:"logger"`
	}
	// Config for HTTP server.
	HTTPServer struct {
		// The server startup address.
		Address string `yaml:"run_address" env:"RUN_ADDRESS" env-default:"127.0.0.1:8080"`
		// Read Header Timeout in seconds.
		Timeout time.Duration `yaml:"timeout" env-default:"5s"`
		// Idle timeout in seconds.
		IdleTimeout time.Duration `yaml:"idle_timeout" env-default:"60s"`
		// Shutdown timeout in seconds.
		ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"30s"`
		// Request throttling.
		RateEvery time.Duration `yaml:"rate_every" env-default:"10ms"`
		RateBurst int           `yaml:"rate_burst" env-default:"100"`
	}
	// Business policy applied to every new account.
	Bank struct {
		// Fixed branch code stamped on every account.
		Agency string `yaml:"agency" env:"BANK_AGENCY" env-default:"0001"`
		// Maximum single withdrawal amount.
		WithdrawLimit float64 `yaml:"withdraw_limit" env:"BANK_WITHDRAW_LIMIT" env-default:"500"`
		// Successful withdrawals allowed per day.
		MaxWithdrawals int `yaml:"max_withdrawals" env:"BANK_MAX_WITHDRAWALS" env-default:"3"`
		// Combined deposit+withdraw ceiling per calendar day.
		MaxTransactions int `yaml:"max_transactions" env:"BANK_MAX_TRANSACTIONS" env-default:"10"`
	}
	// Config for the audit trail sink.
	Audit struct {
		// Path of the append-only audit file.
		Path string `yaml:"path" env:"AUDIT_PATH" env-default:"audit.log"`
		// Audit file rotation details.
		MaxSizeMB  int `yaml:"max_size_mb" env-default:"10"`
		MaxBackups int `yaml:"max_backups" env-default:"3"`
	}
	// Config for application's logger.
	Logger struct {
		// Path to store log files. Empty means stderr only.
		Path string `yaml:"path" env:"LOG_PATH"`
		// Application logging level.
		Level string `yaml:"level" env:"LOG_LEVEL" env-default:"info"`
		// Log files details.
		MaxSizeMB  int `yaml:"max_size_mb"`
		MaxBackups int `yaml:"max_backups"`
		MaxAgeDays int `yaml:"max_age_days"`
	}
)

// MustLoad returns an application configuration which is populated
// from the given configuration file, environment variables and flags.
func MustLoad() *Config {
	// Configuration yaml file path.
	configPath := flag.String("config", "./config/local.yml", "path to the config file")
	flag.Parse()

	var cfg Config

	// Load from YAML cfg file when it exists; env defaults cover the rest.
	if _, err := os.Stat(*configPath); err == nil {
		f, err := os.Open(*configPath)
		if err != nil {
			log.Fatalf("failed to open config file: %s", *configPath)
		}
		if err = cleanenv.ParseYAML(f, &cfg); err != nil {
			log.Fatalf("failed to parse config file: %s", *configPath)
		}
	}

	// Read given flags.
	flag.StringVar(&cfg.HTTPServer.Address, "a", cfg.HTTPServer.Address, "server startup address")
	flag.StringVar(&cfg.Audit.Path, "audit", cfg.Audit.Path, "audit trail file path")
	flag.Parse()

	// Read environment variables.
	if err := cleanenv.ReadEnv(&cfg); err != nil {
		log.Fatalf("failed to read environment variables: %v", err)
	}

	return &cfg
}
