package config

import (
	"os"
	"strconv"
)

// Env carries process-level knobs that do not belong in the portfolio file.
// Values come from the environment (a .env file is honored by main).
type Env struct {
	PortfolioPath string
	LogFile       string
	LogLevel      string
	MaxLogSizeMB  int64
	MaxLogBackups int
}

// LoadEnv reads environment overrides with sensible defaults.
func LoadEnv() Env {
	e := Env{
		PortfolioPath: "stocks_config.txt",
		LogFile:       "stock_monitor.log",
		LogLevel:      "info",
		MaxLogSizeMB:  5,
		MaxLogBackups: 3,
	}

	if v := os.Getenv("STOCK_MONITOR_CONFIG"); v != "" {
		e.PortfolioPath = v
	}
	if v := os.Getenv("STOCK_MONITOR_LOG_FILE"); v != "" {
		e.LogFile = v
	}
	if v := os.Getenv("STOCK_MONITOR_LOG_LEVEL"); v != "" {
		e.LogLevel = v
	}
	if v := os.Getenv("STOCK_MONITOR_LOG_SIZE_MB"); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil && n > 0 {
			e.MaxLogSizeMB = n
		}
	}
	if v := os.Getenv("STOCK_MONITOR_LOG_BACKUPS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n >= 0 {
			e.MaxLogBackups = n
		}
	}
	return e
}
