package config

import (
	"fmt"
	"os"
	"reflect"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the service
type Config struct {
	Environment string `mapstructure:"environment"`
	LogLevel    string `mapstructure:"logLevel"`
	Server      struct {
		Port      int    `mapstructure:"port"`
		StaticDir string `mapstructure:"staticDir"` // Directory served at /, empty disables static serving
	} `mapstructure:"server"`
	Database struct {
		PostgresDSN         string `mapstructure:"postgresDSN"`
		PostgresAutoMigrate bool   `mapstructure:"postgresAutoMigrate"`
	} `mapstructure:"database"`
	SMTP struct {
		Enabled      bool   `mapstructure:"enabled"`
		Host         string `mapstructure:"host"`
		Port         int    `mapstructure:"port"`
		Username     string `mapstructure:"username"`
		Password     string `mapstructure:"password"`
		FromEmail    string `mapstructure:"fromEmail"`
		FromName     string `mapstructure:"fromName"`
		AdminEmail   string `mapstructure:"adminEmail"`   // Destination for new-enquiry notifications
		DashboardURL string `mapstructure:"dashboardURL"` // Linked from the admin notification body
	} `mapstructure:"smtp"`
	CORS struct {
		AllowedOrigins []string `mapstructure:"allowedOrigins"`
	} `mapstructure:"cors"`
	RateLimit struct {
		Window      time.Duration `mapstructure:"window"`      // Length of the fixed window
		MaxRequests int           `mapstructure:"maxRequests"` // Budget per client IP per window
	} `mapstructure:"rateLimit"`
	Metrics struct {
		Enabled bool `mapstructure:"enabled"`
	} `mapstructure:"metrics"`
	WorkerPools struct {
		Mail MailWorkerPoolConfig `mapstructure:"mail"`
	} `mapstructure:"workerPools"`
}

// MailWorkerPoolConfig holds configuration for the mail dispatch worker pool
type MailWorkerPoolConfig struct {
	PoolSize   int           `mapstructure:"poolSize"`   // Number of workers
	QueueSize  int           `mapstructure:"queueSize"`  // Task queue buffer size
	ExpiryTime time.Duration `mapstructure:"expiryTime"` // Idle worker expiry time
}

// IsDevelopment reports whether the service runs in development mode.
// Error detail in HTTP responses is only exposed in this mode.
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// LoadConfig reads configuration from file or environment variables
func LoadConfig(path string) (*Config, error) {
	// Create new viper instance
	v := viper.New()

	// Set defaults
	v.SetDefault("environment", "development")
	v.SetDefault("logLevel", "info")
	v.SetDefault("server.port", 3001)
	v.SetDefault("server.staticDir", "")
	v.SetDefault("database.postgresAutoMigrate", true)
	v.SetDefault("smtp.enabled", false)
	v.SetDefault("smtp.port", 587)
	v.SetDefault("smtp.fromName", "Ingwane Enquiries")
	v.SetDefault("smtp.dashboardURL", "http://localhost:3001/admin")
	v.SetDefault("cors.allowedOrigins", []string{"http://localhost:5500", "http://127.0.0.1:5500"})
	v.SetDefault("rateLimit.window", 15*time.Minute)
	v.SetDefault("rateLimit.maxRequests", 100)
	v.SetDefault("metrics.enabled", true)

	// Mail worker pool defaults
	v.SetDefault("workerPools.mail.poolSize", 4)
	v.SetDefault("workerPools.mail.queueSize", 1000)
	v.SetDefault("workerPools.mail.expiryTime", time.Minute)

	// Config file settings
	v.SetConfigName("default")
	v.SetConfigType("yaml")

	// Add lookup paths
	if path != "" {
		v.AddConfigPath(path)
	}
	v.AddConfigPath(".")
	v.AddConfigPath("./internal/config")
	v.AddConfigPath("/etc/enquiry-service")

	// Try to read from config file
	if err := v.ReadInConfig(); err != nil {
		// It's ok if config file is not found, we'll use env vars
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	// Override with environment variables
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Map environment variables to config fields
	bindEnvs(v, Config{})

	// Read directly from ENV for critical values
	if dsn := os.Getenv("POSTGRES_DSN"); dsn != "" {
		v.Set("database.postgresDSN", dsn)
	}
	if lgLevel := os.Getenv("LOG_LEVEL"); lgLevel != "" {
		v.Set("logLevel", lgLevel)
	}
	if port := os.Getenv("PORT"); port != "" {
		v.Set("server.port", port)
	}
	if pass := os.Getenv("SMTP_PASSWORD"); pass != "" {
		v.Set("smtp.password", pass)
	}
	if admin := os.Getenv("ADMIN_EMAIL"); admin != "" {
		v.Set("smtp.adminEmail", admin)
	}

	// Unmarshal config
	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config into struct: %w", err)
	}

	return &config, nil
}

// bindEnvs recursively binds environment variables to config struct fields
func bindEnvs(v *viper.Viper, cfg interface{}, parts ...string) {
	ifv := reflect.ValueOf(cfg)
	ift := reflect.TypeOf(cfg)
	for i := 0; i < ift.NumField(); i++ {
		fieldVal := ifv.Field(i)
		fieldType := ift.Field(i)

		// Get the field tag value (mapstructure)
		tag := fieldType.Tag.Get("mapstructure")
		if tag == "" || tag == "-" {
			continue
		}

		// Build the env var path
		path := append(parts, tag)
		key := strings.Join(path, ".")

		// If it's a struct, recursively bind its fields
		if fieldType.Type.Kind() == reflect.Struct {
			bindEnvs(v, fieldVal.Interface(), path...)
			continue
		}

		// Bind the env var
		_ = v.BindEnv(key)
	}
}
