package config

import (
	"errors"
	"fmt"
	"reflect"
	"time"

	"github.com/spf13/viper"
)

// Supported storage drivers.
const (
	DriverEmbedded = "embedded"
	DriverRedis    = "redis"
	DriverPostgres = "postgres"
)

// AppConfig holds the configuration for the application.
// Tags used:
// - mapstructure: used by viper to unmarshal
// - default: default value to set if missing
// - required: if "true", error if missing
type AppConfig struct {
	// Environment specifies the runtime environment (e.g., development, production).
	Environment string `mapstructure:"APP_ENV" default:"development"`
	// LogLevel defines the logging verbosity (e.g., debug, info, error).
	LogLevel string `mapstructure:"LOG_LEVEL" default:"info"`
	// ServerPort is the port where the server will listen.
	ServerPort int `mapstructure:"SERVER_PORT" default:"8080"`

	// Storage selects and configures the key-value backend.
	Storage StorageConfig `mapstructure:",squash"`

	// Checkout holds the checkout workflow settings.
	Checkout CheckoutConfig `mapstructure:",squash"`

	// Mocks tunes the local payment, shipping and catalog collaborators.
	Mocks MockConfig `mapstructure:",squash"`
}

// StorageConfig selects the durable key-value backend.
type StorageConfig struct {
	// Driver is one of embedded, redis or postgres.
	Driver string `mapstructure:"STORAGE_DRIVER" default:"embedded" required:"true"`
	// EmbeddedPath is the snapshot file of the embedded driver.
	EmbeddedPath string `mapstructure:"STORAGE_EMBEDDED_PATH" default:"data/embedded.json"`
	// Namespace is prepended to every persisted key when set.
	Namespace string `mapstructure:"STORAGE_NAMESPACE"`
	// RedisURL is used by the redis driver.
	RedisURL string `mapstructure:"REDIS_URL" default:"redis://localhost:6379/0"`
	// Database is used by the postgres driver.
	Database DatabaseConfig `mapstructure:",squash"`
}

// DatabaseConfig holds database connection details.
type DatabaseConfig struct {
	// Host is the database server hostname.
	Host string `mapstructure:"DB_HOST" default:"localhost"`
	// Port is the database connection port.
	Port int `mapstructure:"DB_PORT" default:"5432"`
	// User is the database role.
	User string `mapstructure:"DB_USER" default:"postgres"`
	// Password is the database password.
	Password string `mapstructure:"DB_PASSWORD"`
	// Name is the database name.
	Name string `mapstructure:"DB_NAME" default:"storefront"`
	// SSLMode is passed through to the driver.
	SSLMode string `mapstructure:"DB_SSLMODE" default:"disable"`
}

// DSN builds the PostgreSQL connection string.
func (d DatabaseConfig) DSN() string {
	return fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		d.Host, d.Port, d.User, d.Password, d.Name, d.SSLMode)
}

// CheckoutConfig holds checkout workflow settings.
type CheckoutConfig struct {
	// SessionTTL expires an abandoned checkout session. 0 keeps it until reset.
	SessionTTL time.Duration `mapstructure:"CHECKOUT_SESSION_TTL" default:"0s"`
	// AuthorizeCards runs the gateway authorisation for card payments before the order is persisted.
	AuthorizeCards bool `mapstructure:"CHECKOUT_AUTHORIZE_CARDS" default:"false"`
	// ArtifactTimeout bounds PIX/boleto generation.
	ArtifactTimeout time.Duration `mapstructure:"PAYMENT_ARTIFACT_TIMEOUT" default:"10s"`
	// DownloadExpiry is how long an ebook download link stays valid.
	DownloadExpiry time.Duration `mapstructure:"DOWNLOAD_EXPIRY" default:"720h"`
	// DownloadMax is the number of downloads allowed per link.
	DownloadMax int `mapstructure:"DOWNLOAD_MAX" default:"5"`
}

// MockConfig tunes the local collaborators.
type MockConfig struct {
	// Latency is the artificial delay applied to every mock call.
	Latency time.Duration `mapstructure:"MOCK_LATENCY" default:"0s"`
	// PixExpiry is the validity of a generated PIX code.
	PixExpiry time.Duration `mapstructure:"PIX_EXPIRY" default:"30m"`
	// BoletoExpiry is the validity of a generated boleto.
	BoletoExpiry time.Duration `mapstructure:"BOLETO_EXPIRY" default:"72h"`
	// ShippingMinCost is the floor of a Correios quote base cost.
	ShippingMinCost string `mapstructure:"SHIPPING_MIN_COST" default:"15.90"`
	// ShippingOriginCEP is the warehouse postal code used for Correios quotes.
	ShippingOriginCEP string `mapstructure:"SHIPPING_ORIGIN_CEP" default:"01310-100"`
}

// Load loads configuration from .env files and environment variables.
func Load(path string) (*AppConfig, error) {
	v := viper.New()

	v.AutomaticEnv()

	v.AddConfigPath(path)
	v.SetConfigName(".env")
	v.SetConfigType("env")

	if err := v.ReadInConfig(); err != nil {
		var configFileNotFoundError viper.ConfigFileNotFoundError
		if !errors.As(err, &configFileNotFoundError) {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config AppConfig

	if err := processTags(v, &config); err != nil {
		return nil, err
	}

	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode into struct: %w", err)
	}

	if err := validateRequired(&config); err != nil {
		return nil, err
	}

	if err := validateStorage(config.Storage); err != nil {
		return nil, err
	}

	return &config, nil
}

// processTags iterates over the struct fields, binds env keys and sets default values in Viper.
func processTags(v *viper.Viper, config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := processTags(v, val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		key := field.Tag.Get("mapstructure")
		defaultValue := field.Tag.Get("default")

		if key != "" {
			if err := v.BindEnv(key); err != nil {
				return fmt.Errorf("failed to bind %s: %w", key, err)
			}
		}

		if key != "" && defaultValue != "" {
			v.SetDefault(key, defaultValue)
		}
	}
	return nil
}

// validateRequired checks if fields marked as required have non-zero values.
func validateRequired(config interface{}) error {
	val := reflect.ValueOf(config)
	if val.Kind() == reflect.Ptr {
		val = val.Elem()
	}

	t := val.Type()

	for i := 0; i < t.NumField(); i++ {
		field := t.Field(i)

		if field.Type.Kind() == reflect.Struct {
			if err := validateRequired(val.Field(i).Addr().Interface()); err != nil {
				return err
			}
			continue
		}

		if field.Tag.Get("required") == "true" && isZero(val.Field(i)) {
			return fmt.Errorf("missing required configuration: %s", field.Tag.Get("mapstructure"))
		}
	}
	return nil
}

// validateStorage checks the driver-specific settings.
func validateStorage(s StorageConfig) error {
	switch s.Driver {
	case DriverEmbedded:
		if s.EmbeddedPath == "" {
			return fmt.Errorf("missing required configuration: STORAGE_EMBEDDED_PATH")
		}
		return nil
	case DriverRedis:
		if s.RedisURL == "" {
			return fmt.Errorf("missing required configuration: REDIS_URL")
		}
		return nil
	case DriverPostgres:
		if s.Database.Host == "" || s.Database.Name == "" {
			return fmt.Errorf("missing required configuration: DB_HOST/DB_NAME")
		}
		return nil
	default:
		return fmt.Errorf("unsupported storage driver: %q", s.Driver)
	}
}

// isZero checks if a reflect.Value is the zero value for its type.
func isZero(v reflect.Value) bool {
	switch v.Kind() {
	case reflect.String:
		return v.String() == ""
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		return v.Int() == 0
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		return v.Uint() == 0
	case reflect.Float32, reflect.Float64:
		return v.Float() == 0
	case reflect.Bool:
		return !v.Bool()
	case reflect.Slice, reflect.Map:
		return v.Len() == 0
	default:
		return v.IsZero()
	}
}
