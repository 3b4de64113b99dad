package config

import (
	"fmt"
	"net"
	"strconv"
	"time"
)

type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Log      LogConfig      `yaml:"log"`
	Cycle    CycleConfig    `yaml:"cycle"`
}

type ServerConfig struct {
	Host            string        `yaml:"host"             env:"HOST"             env-default:"0.0.0.0"`
	Port            int           `yaml:"port"             env:"PORT"             env-default:"8080"`
	ShutdownTimeout time.Duration `yaml:"shutdown_timeout" env:"SHUTDOWN_TIMEOUT" env-default:"10s"`
}

func (s ServerConfig) Address() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

type DatabaseConfig struct {
	Path string `yaml:"path" env:"DB_PATH" env-default:"data/lunara.db"`
}

type LogConfig struct {
	Level  string `yaml:"level"  env:"LOG_LEVEL"  env-default:"info"`
	Format string `yaml:"format" env:"LOG_FORMAT" env-default:"json"`
}

type CycleConfig struct {
	Timezone         string `yaml:"timezone"           env:"TZ"                 env-default:"UTC"`
	ReminderLeadDays int    `yaml:"reminder_lead_days" env:"REMINDER_LEAD_DAYS" env-default:"2"`
}

// Location resolves the configured timezone. Validate has already checked it.
func (c CycleConfig) Location() *time.Location {
	location, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return time.UTC
	}
	return location
}

func (c CycleConfig) String() string {
	return fmt.Sprintf("tz=%s reminder_lead_days=%d", c.Timezone, c.ReminderLeadDays)
}
