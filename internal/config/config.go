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
	Database DatabaseConfig `mapstructure:"database"`
	S3       S3Config       `mapstructure:"s3"`
	JWT      JWTConfig      `mapstructure:"jwt"`
	Catalog  CatalogConfig  `mapstructure:"catalog"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

type DatabaseConfig struct {
	URI  string `mapstructure:"uri"`
	Name string `mapstructure:"name"`
}

// S3Config locates the persisted catalog snapshot. The tier is off unless Enabled.
type S3Config struct {
	Enabled         bool   `mapstructure:"enabled"`
	Endpoint        string `mapstructure:"endpoint"`
	Region          string `mapstructure:"region"`
	AccessKeyID     string `mapstructure:"access_key_id"`
	SecretAccessKey string `mapstructure:"secret_access_key"`
	BucketName      string `mapstructure:"bucket_name"`
	SnapshotKey     string `mapstructure:"snapshot_key"`
}

// JWTConfig holds the secret used to verify tokens issued by the auth service.
type JWTConfig struct {
	Secret string `mapstructure:"secret"`
}

// CatalogConfig tunes catalog loading.
type CatalogConfig struct {
	StalenessWindow time.Duration `mapstructure:"staleness_window"`
	PageSize        int           `mapstructure:"page_size"`
	LoadTimeout     time.Duration `mapstructure:"load_timeout"`
	// RefreshSchedule is a cron expression for keeping the cache warm; empty disables it.
	RefreshSchedule string `mapstructure:"refresh_schedule"`
}

type LogConfig struct {
	Level string `mapstructure:"level"`
}

// LoadConfig reads config.yaml from path (if present) and overlays environment
// variables, e.g. catalog.page_size -> CATALOG_PAGE_SIZE.
func LoadConfig(path string) (Config, error) {
	var config Config

	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))

	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "fitness_catalog")
	v.SetDefault("s3.enabled", false)
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.snapshot_key", "catalog/snapshot.yaml")
	v.SetDefault("jwt.secret", "")
	v.SetDefault("catalog.staleness_window", "5m")
	v.SetDefault("catalog.page_size", 1000)
	v.SetDefault("catalog.load_timeout", "30s")
	v.SetDefault("catalog.refresh_schedule", "@every 10m")
	v.SetDefault("log.level", "info")

	// A missing file is fine: defaults and env vars still apply.
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, err
		}
	}

	if err := v.Unmarshal(&config); err != nil {
		return config, err
	}
	return config, nil
}
