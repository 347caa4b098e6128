package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

const (
	StoreDriverPostgres = "postgres"
	StoreDriverDynamoDB = "dynamodb"
)

// Config holds the runtime settings, read from app.yaml and overridden by environment variables.
type Config struct {
	ServerAddress string         `mapstructure:"server_address"`
	DBSource      string         `mapstructure:"db_source"`
	Store         StoreConfig    `mapstructure:"store"`
	DynamoDB      DynamoDBConfig `mapstructure:"dynamodb"`
	Google        GoogleConfig   `mapstructure:"google"`
	Log           LogConfig      `mapstructure:"log"`
}

type StoreConfig struct {
	Driver string `mapstructure:"driver"`
}

type DynamoDBConfig struct {
	Table  string `mapstructure:"table"`
	Region string `mapstructure:"region"`
}

// GoogleConfig configures the Google Geocoding API client.
type GoogleConfig struct {
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Language string        `mapstructure:"language"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ConfigError reports a missing or invalid setting.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return fmt.Sprintf("config error: field %q: %s", e.Field, e.Message)
}

// LoadConfig reads app.yaml from path when present and applies environment
// overrides, where a key such as google.api_key maps to GOOGLE_API_KEY.
func LoadConfig(path string) (Config, error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("app")
	v.SetConfigType("yaml")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()
	setDefaults(v)

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return Config{}, fmt.Errorf("config: read %s: %w", path, err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return Config{}, fmt.Errorf("config: decode: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Every key needs a default so AutomaticEnv can resolve it during Unmarshal.
func setDefaults(v *viper.Viper) {
	v.SetDefault("server_address", ":8080")
	v.SetDefault("db_source", "")
	v.SetDefault("store.driver", StoreDriverPostgres)
	v.SetDefault("dynamodb.table", "gasp_locations")
	v.SetDefault("dynamodb.region", "")
	v.SetDefault("google.api_key", "")
	v.SetDefault("google.base_url", "https://maps.googleapis.com/maps/api/geocode/json")
	v.SetDefault("google.language", "en")
	v.SetDefault("google.timeout", 10*time.Second)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")
}

// Validate checks the settings required by the selected store driver and the geocoding client.
func (c Config) Validate() error {
	var errs []error
	if c.Google.APIKey == "" {
		errs = append(errs, &ConfigError{Field: "google.api_key", Message: "required but not set"})
	}
	if c.Google.Timeout <= 0 {
		errs = append(errs, &ConfigError{Field: "google.timeout", Message: "must be positive"})
	}

	switch c.Store.Driver {
	case StoreDriverPostgres:
		if c.DBSource == "" {
			errs = append(errs, &ConfigError{Field: "db_source", Message: "required for the postgres store"})
		}
	case StoreDriverDynamoDB:
		if c.DynamoDB.Table == "" {
			errs = append(errs, &ConfigError{Field: "dynamodb.table", Message: "required for the dynamodb store"})
		}
	default:
		errs = append(errs, &ConfigError{Field: "store.driver", Message: fmt.Sprintf("unknown driver %q", c.Store.Driver)})
	}
	return errors.Join(errs...)
}
