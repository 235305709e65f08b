package config

import (
	"errors"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Storage  StorageConfig  `mapstructure:"storage"`
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	Backup   BackupConfig   `mapstructure:"backup"`
	Session  SessionConfig  `mapstructure:"session"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// StorageConfig selects the persistence collaborator.
type StorageConfig struct {
	Driver      string      `mapstructure:"driver"` // memory, sqlite, postgres or mongo
	SQLitePath  string      `mapstructure:"sqlite_path"`
	PostgresDSN string      `mapstructure:"postgres_dsn"`
	Retry       RetryConfig `mapstructure:"retry"`
}

type RetryConfig struct {
	MaxTries   uint          `mapstructure:"max_tries"`
	MaxElapsed time.Duration `mapstructure:"max_elapsed"`
}

// DatabaseConfig is used by the mongo driver.
type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	UseSSL          bool   `mapstructure:"use_ssl"`
}

// BackupConfig schedules state snapshots to object storage. An empty
// Schedule disables backups.
type BackupConfig struct {
	Schedule string `mapstructure:"schedule"`
	Keep     int    `mapstructure:"keep"`
}

type SessionConfig struct {
	// RequireSetsToComplete rejects completing a workout with no logged sets
	// unless the request says otherwise.
	RequireSetsToComplete bool `mapstructure:"require_sets_to_complete"`
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"` // text or json
}

// Storage drivers.
const (
	DriverMemory   = "memory"
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMongo    = "mongo"
)

var ErrUnknownDriver = errors.New("unknown storage driver")

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	setDefaults(v)

	err = v.ReadInConfig()
	if _, ok := err.(viper.ConfigFileNotFoundError); ok {
		// No config file; defaults and env vars are enough.
		err = nil
	} else if err != nil {
		return
	}

	if err = v.Unmarshal(&config); err != nil {
		return
	}
	if err = config.Validate(); err != nil {
		return
	}
	return config, nil
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("server.address", ":8080")
	v.SetDefault("storage.driver", DriverSQLite)
	v.SetDefault("storage.sqlite_path", "gym-tracker.db")
	v.SetDefault("storage.postgres_dsn", "")
	v.SetDefault("storage.retry.max_tries", 3)
	v.SetDefault("storage.retry.max_elapsed", "5s")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "gym_tracker")
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("backup.schedule", "")
	v.SetDefault("backup.keep", 14)
	v.SetDefault("session.require_sets_to_complete", true)
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
}

// Validate checks cross-field constraints viper cannot express.
func (c Config) Validate() error {
	switch c.Storage.Driver {
	case DriverMemory, DriverSQLite, DriverMongo:
	case DriverPostgres:
		if c.Storage.PostgresDSN == "" {
			return errors.New("storage.postgres_dsn is required for the postgres driver")
		}
	default:
		return ErrUnknownDriver
	}
	if c.Backup.Schedule != "" && !c.S3.Enabled {
		return errors.New("backup.schedule requires s3.enabled")
	}
	if c.S3.Enabled && c.S3.BucketName == "" {
		return errors.New("s3.bucket_name is required when s3 is enabled")
	}
	return nil
}
