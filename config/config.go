// Package config contains code to set the default values and read
// config files to be used throughout the whole application
package config

import (
	"errors"
	"fmt"
	"slices"

	"github.com/spf13/pflag"
	v "github.com/spf13/viper"
)

var validLogLevels = []string{"debug", "info", "warn", "error", "fatal"}

// Setup prepares everything config-related so that the app can
// start working. Function will return an error if something
// is critically wrong and the application can't run because of
// that.
func Setup() error {
	pflag.Parse()
	v.BindPFlags(pflag.CommandLine)

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")

	v.AutomaticEnv()

	//
	// ENVS
	//
	v.BindEnv("app.log_level", "app_log_level")

	v.BindEnv("host.port", "host_port")
	v.BindEnv("host.domain", "host_domain")
	v.BindEnv("host.ssl_enabled", "host_ssl_enabled")
	v.BindEnv("host.cors_origins", "host_cors_origins")

	v.BindEnv("db.driver", "db_driver")
	v.BindEnv("db.host", "db_host")
	v.BindEnv("db.port", "db_port")
	v.BindEnv("db.user", "db_user")
	v.BindEnv("db.password", "db_password")
	v.BindEnv("db.name", "db_name")
	v.BindEnv("db.sslmode", "db_sslmode")
	v.BindEnv("db.path", "db_path")

	v.BindEnv("jwt.secret", "jwt_secret")
	v.BindEnv("jwt.ttl", "jwt_ttl")
	v.BindEnv("jwt.confirm_ttl_days", "jwt_confirm_ttl_days")

	v.BindEnv("mail.host", "mail_host")
	v.BindEnv("mail.port", "mail_port")
	v.BindEnv("mail.username", "mail_username")
	v.BindEnv("mail.password", "mail_password")
	v.BindEnv("mail.from", "mail_from")
	v.BindEnv("mail.from_name", "mail_from_name")
	v.BindEnv("mail.workers", "mail_workers")
	v.BindEnv("mail.queue_size", "mail_queue_size")

	v.BindEnv("aws.access_key_id", "aws_access_key_id")
	v.BindEnv("aws.secret_access_key", "aws_secret_access_key")
	v.BindEnv("aws.region", "aws_region")
	v.BindEnv("aws.bucket", "aws_bucket")
	v.BindEnv("aws.public_url", "aws_public_url")

	v.BindEnv("security.me_rate_limit", "security_me_rate_limit")

	//
	// Defaults
	//
	v.SetDefault("app.log_level", "info")

	v.SetDefault("host.port", 8080)
	v.SetDefault("host.domain", "localhost")
	v.SetDefault("host.ssl_enabled", false)
	v.SetDefault("host.cors_origins", []string{"http://localhost:5173"})

	v.SetDefault("db.driver", "postgres")
	v.SetDefault("db.port", 5432)
	v.SetDefault("db.sslmode", "disable")
	v.SetDefault("db.path", "contacts.db")

	v.SetDefault("jwt.ttl", 3600)
	v.SetDefault("jwt.confirm_ttl_days", 7)

	v.SetDefault("mail.port", 465)
	v.SetDefault("mail.from_name", "Contacts App")
	v.SetDefault("mail.workers", 2)
	v.SetDefault("mail.queue_size", 64)

	v.SetDefault("security.me_rate_limit", 5)

	if err := v.ReadInConfig(); err != nil {
		// Config file is optional, everything can come from the environment
		if _, ok := err.(v.ConfigFileNotFoundError); !ok {
			return fmt.Errorf("failed to read config file, %w", err)
		}
	}

	if !slices.Contains(validLogLevels, v.GetString("app.log_level")) {
		return errors.New("invalid log level provided")
	}

	if v.GetInt("host.port") <= 0 {
		return errors.New("invalid port provided")
	}

	if v.GetString("jwt.secret") == "" {
		return errors.New("jwt.secret can't be empty")
	}

	if v.GetInt("jwt.ttl") <= 0 {
		return errors.New("jwt.ttl must be bigger than 0")
	}

	switch v.GetString("db.driver") {
	case "postgres":
		if v.GetString("db.host") == "" {
			return errors.New("db.host can't be empty")
		}
		if v.GetString("db.user") == "" {
			return errors.New("db.user can't be empty")
		}
		if v.GetString("db.password") == "" {
			return errors.New("db.password can't be empty")
		}
		if v.GetString("db.name") == "" {
			return errors.New("db.name can't be empty")
		}
	case "sqlite":
		if v.GetString("db.path") == "" {
			return errors.New("db.path can't be empty")
		}
	default:
		return errors.New("invalid db driver provided")
	}

	if v.GetString("mail.host") == "" {
		return errors.New("mail.host can't be empty")
	}
	if v.GetString("mail.username") == "" {
		return errors.New("mail.username can't be empty")
	}
	if v.GetString("mail.password") == "" {
		return errors.New("mail.password can't be empty")
	}
	if v.GetString("mail.from") == "" {
		return errors.New("mail.from can't be empty")
	}

	if v.GetString("aws.access_key_id") == "" {
		return errors.New("aws.access_key_id can't be empty")
	}
	if v.GetString("aws.secret_access_key") == "" {
		return errors.New("aws.secret_access_key can't be empty")
	}
	if v.GetString("aws.bucket") == "" {
		return errors.New("aws.bucket can't be empty")
	}

	if v.GetInt("security.me_rate_limit") <= 0 {
		return errors.New("security.me_rate_limit must be bigger than 0")
	}

	return nil
}
