package config

import (
	"strings"
	"time"

	"github.com/cockroachdb/errors"
	"github.com/spf13/viper"
)

// Supported backends.
const (
	DatabaseSQLite = "sqlite"
	DatabaseMongo  = "mongo"

	StorageLocal = "local"
	StorageS3    = "s3"
)

// DefaultMasterCode is used when no master code is configured.
const DefaultMasterCode = "COACH123"

// Config holds all configuration for the application.
// The values are read by Viper from a config file or environment variables.
type Config struct {
	Server   ServerConfig   `mapstructure:"server"`
	Database DatabaseConfig `mapstructure:"database"`
	Storage  StorageConfig  `mapstructure:"storage"`
	S3       S3Config       `mapstructure:"s3"`
	Session  SessionConfig  `mapstructure:"session"`
	Auth     AuthConfig     `mapstructure:"auth"`
	SMS      SMSConfig      `mapstructure:"sms"`
	Log      LogConfig      `mapstructure:"log"`
}

type ServerConfig struct {
	Address string `mapstructure:"address"`
}

// DatabaseConfig selects the persistence backend. DSN is the sqlite file path,
// URI and Name are used by the mongo backend.
type DatabaseConfig struct {
	Driver string `mapstructure:"driver"`
	DSN    string `mapstructure:"dsn"`
	URI    string `mapstructure:"uri"`
	Name   string `mapstructure:"name"`
}

type StorageConfig struct {
	Driver string `mapstructure:"driver"`
	Root   string `mapstructure:"root"`
}

type S3Config struct {
	Endpoint        string        `mapstructure:"endpoint"`
	Region          string        `mapstructure:"region"`
	AccessKeyID     string        `mapstructure:"access_key_id"`
	SecretAccessKey string        `mapstructure:"secret_access_key"`
	BucketName      string        `mapstructure:"bucket_name"`
	UseSSL          bool          `mapstructure:"use_ssl"`
	URLExpiry       time.Duration `mapstructure:"url_expiry"`
}

// SessionConfig defines the signed session cookie.
type SessionConfig struct {
	Secret string        `mapstructure:"secret"`
	MaxAge time.Duration `mapstructure:"max_age"`
	Secure bool          `mapstructure:"secure"`
}

type AuthConfig struct {
	MasterCode string `mapstructure:"master_code"`
}

// SMSConfig holds the Twilio credentials. Texting is disabled unless all of
// AccountSID, AuthToken and From are set.
type SMSConfig struct {
	AccountSID string        `mapstructure:"account_sid"`
	AuthToken  string        `mapstructure:"auth_token"`
	From       string        `mapstructure:"from"`
	BaseURL    string        `mapstructure:"base_url"`
	Timeout    time.Duration `mapstructure:"timeout"`
}

// Enabled reports whether every gateway setting is present.
func (c SMSConfig) Enabled() bool {
	return c.AccountSID != "" && c.AuthToken != "" && c.From != ""
}

type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// Plain environment names accepted in addition to the SECTION_KEY form.
var envAliases = map[string][]string{
	"auth.master_code": {"AUTH_MASTER_CODE", "INSTRUCTOR_MASTER_CODE"},
	"session.secret":   {"SESSION_SECRET", "SECRET_KEY"},
	"sms.account_sid":  {"SMS_ACCOUNT_SID", "TWILIO_ACCOUNT_SID"},
	"sms.auth_token":   {"SMS_AUTH_TOKEN", "TWILIO_AUTH_TOKEN"},
	"sms.from":         {"SMS_FROM", "TWILIO_FROM", "TWILIO_FROM_NUMBER"},
	"database.dsn":     {"DATABASE_DSN", "DATABASE_PATH"},
}

// LoadConfig reads configuration from file or environment variables.
func LoadConfig(path string) (config Config, err error) {
	v := viper.New()
	v.AddConfigPath(path)
	v.SetConfigName("config")
	v.SetConfigType("yaml")

	// server.address -> SERVER_ADDRESS
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	for key, names := range envAliases {
		if err = v.BindEnv(append([]string{key}, names...)...); err != nil {
			return config, errors.Wrapf(err, "bind env for %s", key)
		}
	}

	v.SetDefault("server.address", ":8080")
	v.SetDefault("database.driver", DatabaseSQLite)
	v.SetDefault("database.dsn", "coach.db")
	v.SetDefault("database.uri", "mongodb://localhost:27017")
	v.SetDefault("database.name", "coaching_app")
	v.SetDefault("storage.driver", StorageLocal)
	v.SetDefault("storage.root", "static")
	v.SetDefault("s3.endpoint", "")
	v.SetDefault("s3.region", "us-east-1")
	v.SetDefault("s3.access_key_id", "")
	v.SetDefault("s3.secret_access_key", "")
	v.SetDefault("s3.bucket_name", "")
	v.SetDefault("s3.use_ssl", true)
	v.SetDefault("s3.url_expiry", "15m")
	v.SetDefault("session.secret", "dev_secret")
	v.SetDefault("session.max_age", "336h")
	v.SetDefault("session.secure", false)
	v.SetDefault("auth.master_code", DefaultMasterCode)
	v.SetDefault("sms.base_url", "https://api.twilio.com")
	v.SetDefault("sms.timeout", "10s")
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	if err = v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return config, errors.Wrap(err, "read config file")
		}
	}

	if err = v.Unmarshal(&config); err != nil {
		return config, errors.Wrap(err, "decode config")
	}
	if err = config.Validate(); err != nil {
		return config, err
	}
	return config, nil
}

// Validate checks the settings that have a fixed set of values.
func (c Config) Validate() error {
	switch c.Database.Driver {
	case DatabaseSQLite, DatabaseMongo:
	default:
		return errors.Newf("unsupported database.driver %q", c.Database.Driver)
	}
	switch c.Storage.Driver {
	case StorageLocal, StorageS3:
	default:
		return errors.Newf("unsupported storage.driver %q", c.Storage.Driver)
	}
	if c.Storage.Driver == StorageS3 && c.S3.BucketName == "" {
		return errors.New("s3.bucket_name is required when storage.driver is s3")
	}
	if c.Session.Secret == "" {
		return errors.New("session.secret must not be empty")
	}
	if c.Auth.MasterCode == "" {
		return errors.New("auth.master_code must not be empty")
	}
	return nil
}
