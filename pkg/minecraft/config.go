package minecraft

import (
	"fmt"
	"path/filepath"
	"time"
)

type (
	Config struct {
		ServerHost       string   `json:"serverHost" validate:"required,hostname|ip"`
		ServerPort       uint16   `json:"serverPort,omitempty"`
		ServerProperties string   `json:"serverProperties" validate:"required"`
		PingPeriod       Duration `json:"pingPeriod" validate:"min=1000000000"`
		ConnectTimeout   Duration `json:"connectTimeout" validate:"min=1"`
		ResponseTimeout  Duration `json:"responseTimeout" validate:"min=1"`

		baseDir string
	}

	// Duration reads and writes as "30s".
	Duration time.Duration
)

const (
	DefaultServerPort = 25565
)

func NewConfig(baseDir string) *Config {
	return &Config{
		ServerHost:       "localhost",
		ServerPort:       DefaultServerPort,
		ServerProperties: "server.properties",
		PingPeriod:       Duration(30 * time.Second),
		ConnectTimeout:   Duration(5 * time.Second),
		ResponseTimeout:  Duration(5 * time.Second),
		baseDir:          baseDir,
	}
}

func (c *Config) AbsServerProperties() string {
	if filepath.IsAbs(c.ServerProperties) {
		return c.ServerProperties
	}
	return filepath.Join(c.baseDir, c.ServerProperties)
}

func (d Duration) MarshalText() ([]byte, error) {
	return []byte(time.Duration(d).String()), nil
}

func (d *Duration) UnmarshalText(text []byte) error {
	value, err := time.ParseDuration(string(text))
	if err != nil {
		return fmt.Errorf("invalid duration: %w", err)
	}
	*d = Duration(value)
	return nil
}
