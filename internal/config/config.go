// internal/config/config.go
package config

import (
	"log"
	"os"
	"path/filepath"
	"sync"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	API    APIConfig
	Server ServerConfig
	App    AppConfig
	Search SearchConfig
}

// APIConfig holds settings for the ERP backend connection.
type APIConfig struct {
	BaseURL         string
	TimeoutSeconds  int
	CredentialsFile string
}

// ServerConfig holds settings for the sandbox backend.
type ServerConfig struct {
	Port           string
	Mode           string
	ReadTimeout    int
	WriteTimeout   int
	AllowedOrigins []string
}

type AppConfig struct {
	LogLevel string
	DataDir  string
}

type SearchConfig struct {
	DebounceMillis int
}

var (
	once     sync.Once
	instance *Config
)

func Load() *Config {
	once.Do(func() {
		// Load .env file if it exists
		_ = godotenv.Load()

		// Set default values
		viper.SetDefault("ERP_API_BASE_URL", "http://localhost:8000/api")
		viper.SetDefault("ERP_TIMEOUT_SECONDS", 30)
		viper.SetDefault("ERP_CREDENTIALS_FILE", defaultCredentialsFile())
		viper.SetDefault("ERP_LOG_LEVEL", "info")
		viper.SetDefault("SERVER_PORT", "8000")
		viper.SetDefault("SERVER_MODE", "debug")
		viper.SetDefault("SERVER_READ_TIMEOUT", 15)
		viper.SetDefault("SERVER_WRITE_TIMEOUT", 15)
		viper.SetDefault("SERVER_ALLOWED_ORIGINS", []string{"*"})
		viper.SetDefault("APP_DATA_DIR", "./data")
		viper.SetDefault("SEARCH_DEBOUNCE_MS", 350)

		// Read from environment variables
		viper.AutomaticEnv()

		// Ensure the data directory exists
		ensureDir(viper.GetString("APP_DATA_DIR"))
		ensureDir(filepath.Dir(viper.GetString("ERP_CREDENTIALS_FILE")))

		instance = &Config{
			API: APIConfig{
				BaseURL:         viper.GetString("ERP_API_BASE_URL"),
				TimeoutSeconds:  viper.GetInt("ERP_TIMEOUT_SECONDS"),
				CredentialsFile: viper.GetString("ERP_CREDENTIALS_FILE"),
			},
			Server: ServerConfig{
				Port:           viper.GetString("SERVER_PORT"),
				Mode:           viper.GetString("SERVER_MODE"),
				ReadTimeout:    viper.GetInt("SERVER_READ_TIMEOUT"),
				WriteTimeout:   viper.GetInt("SERVER_WRITE_TIMEOUT"),
				AllowedOrigins: viper.GetStringSlice("SERVER_ALLOWED_ORIGINS"),
			},
			App: AppConfig{
				LogLevel: viper.GetString("ERP_LOG_LEVEL"),
				DataDir:  viper.GetString("APP_DATA_DIR"),
			},
			Search: SearchConfig{
				DebounceMillis: viper.GetInt("SEARCH_DEBOUNCE_MS"),
			},
		}
	})

	return instance
}

func defaultCredentialsFile() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "./data/session.json"
	}
	return filepath.Join(home, ".orchid-erp", "session.json")
}

func ensureDir(dir string) {
	if _, err := os.Stat(dir); os.IsNotExist(err) {
		if err := os.MkdirAll(dir, 0755); err != nil {
			log.Fatalf("Failed to create directory %s: %v", dir, err)
		}
	}
}
