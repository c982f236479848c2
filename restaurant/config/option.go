package config

import (
	"time"

	"go.uber.org/zap/zapcore"
)

type Option func(cfg *Config)

// Fields set by options carry no default tag, otherwise envconfig would
// overwrite them when the variable is unset.
func defaultOptions() []Option {
	return []Option{
		WithLogLevel(zapcore.DebugLevel),
		WithWriteTimeout(10 * time.Second),
		WithStorageDriver("file"),
	}
}

func WithLogLevel(level zapcore.Level) Option {
	return func(cfg *Config) {
		cfg.Log.LogLevel = level
	}
}

func WithWriteTimeout(timeout time.Duration) Option {
	return func(cfg *Config) {
		cfg.Server.WriteTimeout = timeout
	}
}

func WithStorageDriver(driver string) Option {
	return func(cfg *Config) {
		cfg.Storage.Driver = driver
	}
}
