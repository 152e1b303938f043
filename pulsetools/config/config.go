package config

import (
	"flag"
	"fmt"
	"strings"
	"time"

	"github.com/github/go-config"
	"github.com/go-playground/validator/v10"
)

// Config holds application configuration, including the snapshot sources.
type Config struct {
	HTTPPort int `validate:"min=1,max=65535"`

	LogLevel    string `config:"info,env=PULSE_LOG_LEVEL" validate:"oneof=debug info warn warning error"`
	LogFormat   string `config:"text,env=PULSE_LOG_FORMAT" validate:"oneof=text json"`
	ColorPolicy string `config:"destination,env=PULSE_COLOR_POLICY" validate:"oneof=destination origin"`

	NATSURL     string `config:"nats://localhost:4222,env=PULSE_NATS_URL" validate:"required"`
	NATSSubject string `config:"pulse.snapshot,env=PULSE_NATS_SUBJECT" validate:"required"`

	ValkeyAddr    string `config:"localhost:6379,env=PULSE_VALKEY_ADDR" validate:"required"`
	ValkeyKey     string `config:"pulse_data,env=PULSE_VALKEY_KEY" validate:"required"`
	ValkeyChannel string `config:"pulse_data.changed,env=PULSE_VALKEY_CHANNEL" validate:"required"`

	PollIntervalMS int `config:"1000,env=PULSE_POLL_INTERVAL_MS" validate:"min=50"`
}

// Load parses configuration from the environment and places it in a newly
// allocated Config struct. Top-level flags override the environment.
func Load() (*Config, error) {
	port := flag.Int("port", 8080, "port number to serve metrics on")
	logLevel := flag.String("log-level", "", "log level (debug, info, warn, error)")
	logFormat := flag.String("log-format", "", "log format (text, json)")

	flag.Parse()

	cfg := &Config{}
	if err := config.Load(cfg); err != nil {
		return nil, err
	}

	cfg.HTTPPort = *port
	if *logLevel != "" {
		cfg.LogLevel = *logLevel
	}
	if *logFormat != "" {
		cfg.LogFormat = *logFormat
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate checks that configuration fields are present and sane
func (c *Config) Validate() error {
	err := validator.New().Struct(c)
	if err == nil {
		return nil
	}

	verrs, ok := err.(validator.ValidationErrors)
	if !ok {
		return err
	}

	msgs := make([]string, len(verrs))
	for i, fe := range verrs {
		msgs[i] = fmt.Sprintf("%s: invalid value '%v' (%s %s)", fe.Field(), fe.Value(), fe.Tag(), fe.Param())
	}
	return fmt.Errorf("config validation failed:\n  - %s", strings.Join(msgs, "\n  - "))
}

// PollInterval returns the file polling interval
func (c *Config) PollInterval() time.Duration {
	return time.Duration(c.PollIntervalMS) * time.Millisecond
}
