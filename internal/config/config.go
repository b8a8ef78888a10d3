package config

import (
	"fmt"
	"os"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Port                 string   `mapstructure:"PORT"`
	Env                  string   `mapstructure:"ENV"`
	MongoURL             string   `mapstructure:"MONGO_URL"`
	DBName               string   `mapstructure:"DB_NAME"`
	CORSOrigins          []string `mapstructure:"CORS_ORIGINS"`
	LocalUploadEnabled   bool     `mapstructure:"LOCAL_UPLOAD_ENABLED"`
	UploadsDir           string   `mapstructure:"UPLOADS_DIR"`
	DriveCredentialsFile string   `mapstructure:"GDRIVE_CREDENTIALS_FILE"`
	DriveFolderID        string   `mapstructure:"GDRIVE_FOLDER_ID"`
}

func Load() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.AutomaticEnv()

	// Defaults
	v.SetDefault("PORT", "8000")
	v.SetDefault("ENV", "development")
	v.SetDefault("CORS_ORIGINS", "http://localhost:3000")
	v.SetDefault("LOCAL_UPLOAD_ENABLED", false)
	v.SetDefault("UPLOADS_DIR", "./uploads")

	// Bind env vars explicitly so Unmarshal picks them up
	v.BindEnv("PORT")
	v.BindEnv("ENV")
	v.BindEnv("MONGO_URL")
	v.BindEnv("DB_NAME")
	v.BindEnv("CORS_ORIGINS")
	v.BindEnv("LOCAL_UPLOAD_ENABLED")
	v.BindEnv("UPLOADS_DIR")
	v.BindEnv("GDRIVE_CREDENTIALS_FILE")
	v.BindEnv("GDRIVE_FOLDER_ID")

	// Try reading .env file, but don't fail if missing
	_ = v.ReadInConfig()

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}

	if cfg.CORSOrigins == nil {
		origins := v.GetString("CORS_ORIGINS")
		if origins != "" {
			cfg.CORSOrigins = strings.Split(origins, ",")
		}
	}

	if cfg.MongoURL == "" {
		return nil, fmt.Errorf("MONGO_URL is required")
	}
	if cfg.DBName == "" {
		return nil, fmt.Errorf("DB_NAME is required")
	}

	return cfg, nil
}

func (c *Config) IsDev() bool {
	return c.Env == "development"
}

// DriveEnabled reports whether a real Google Drive backend is configured.
// Without credentials the remote upload path falls back to the in-memory
// mock store.
func (c *Config) DriveEnabled() bool {
	return c.DriveCredentialsFile != ""
}

// Validate checks that the configuration is safe to run. The Drive
// credentials file must exist when set, and local mode needs a usable
// uploads directory path.
func (c *Config) Validate() error {
	if c.DriveCredentialsFile != "" {
		if _, err := os.Stat(c.DriveCredentialsFile); err != nil {
			return fmt.Errorf("GDRIVE_CREDENTIALS_FILE %q is not readable: %w", c.DriveCredentialsFile, err)
		}
	}
	if c.LocalUploadEnabled && c.UploadsDir == "" {
		return fmt.Errorf("UPLOADS_DIR is required when LOCAL_UPLOAD_ENABLED is true")
	}
	return nil
}
