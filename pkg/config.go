package pkg

import (
	"encoding/json"
	"os"
	"path/filepath"

	"github.com/joho/godotenv"

	"sky-scheduling/logger"
)

// AppConfig holds all application configuration settings
type AppConfig struct {
	DatabasePath   string `json:"database_path"`
	LogFile        string `json:"log_file"`
	LogLevel       string `json:"log_level"`
	DefaultView    string `json:"default_view"`
	ConfirmCascade bool   `json:"confirm_cascade"`
}

// Default configuration values
var defaultConfig = AppConfig{
	DatabasePath:   "data/scheduling.db",
	LogFile:        "logs/scheduling.log",
	LogLevel:       "info",
	DefaultView:    "home",
	ConfirmCascade: true,
}

// Global configuration instance
var Config AppConfig

// DefaultConfig returns a copy of the built-in settings
func DefaultConfig() AppConfig {
	return defaultConfig
}

// LoadConfig loads configuration from a JSON file, then applies environment
// overrides (SCHEDULING_DB, SCHEDULING_LOG, SCHEDULING_LOG_LEVEL), reading a
// .env file first if there is one. A missing config file is not an error.
func LoadConfig(configPath string) error {
	// Set defaults first
	Config = defaultConfig

	data, err := os.ReadFile(configPath)
	switch {
	case os.IsNotExist(err):
		logger.Info.Printf("Config file not found at %s, using default settings", configPath)
	case err != nil:
		logger.Error.Printf("Failed to read config file: %v", err)
		return err
	default:
		if err := json.Unmarshal(data, &Config); err != nil {
			logger.Error.Printf("Failed to parse config file: %v", err)
			return err
		}
	}

	_ = godotenv.Load()
	Config.applyEnv()

	logger.Info.Printf("Configuration loaded: Database=%s, DefaultView=%s, ConfirmCascade=%v",
		Config.DatabasePath, Config.DefaultView, Config.ConfirmCascade)
	return nil
}

func (c *AppConfig) applyEnv() {
	if v := os.Getenv("SCHEDULING_DB"); v != "" {
		c.DatabasePath = v
	}
	if v := os.Getenv("SCHEDULING_LOG"); v != "" {
		c.LogFile = v
	}
	if v := os.Getenv("SCHEDULING_LOG_LEVEL"); v != "" {
		c.LogLevel = v
	}
}

// SaveConfig saves current configuration to file
func SaveConfig(configPath string) error {
	// Ensure directory exists
	dir := filepath.Dir(configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		logger.Error.Printf("Failed to create config directory: %v", err)
		return err
	}

	data, err := json.MarshalIndent(Config, "", "  ")
	if err != nil {
		logger.Error.Printf("Failed to marshal config: %v", err)
		return err
	}

	if err := os.WriteFile(configPath, data, 0644); err != nil {
		logger.Error.Printf("Failed to write config file: %v", err)
		return err
	}

	logger.Info.Printf("Configuration saved to %s", configPath)
	return nil
}
