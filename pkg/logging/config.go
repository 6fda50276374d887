package logging

import (
	"path/filepath"

	"github.com/apex/log"
	"github.com/apex/log/handlers/multi"
	"github.com/thejerf/suture/v4"
)

type (
	Config struct {
		Console ConsoleConfig `json:"console"`
		File    *FileConfig   `json:"file,omitempty"`
	}

	factory interface {
		CreateLogging() (log.Handler, log.Level, suture.Service)
	}
)

var _ factory = (*Config)(nil)

func NewConfig(baseDir string) *Config {
	return &Config{
		Console: ConsoleConfig(log.WarnLevel),
		File:    NewFileConfig(baseDir),
	}
}

// SetBaseDir resolves a relative log file path.
func (c *Config) SetBaseDir(baseDir string) {
	if c.File != nil && c.File.Path != "" && !filepath.IsAbs(c.File.Path) {
		c.File.Path = filepath.Join(baseDir, c.File.Path)
	}
}

// CreateLogging combines the enabled handlers. The returned service, if any,
// must be supervised for file logging to happen.
func (c *Config) CreateLogging() (log.Handler, log.Level, suture.Service) {
	handler, minLevel, svc := c.Console.CreateLogging()

	if c.File != nil && !c.File.Disabled {
		if fh, fileLevel, fileSvc := c.File.CreateLogging(); fh != nil {
			handler = multi.New(handler, fh)
			if fileLevel < minLevel {
				minLevel = fileLevel
			}
			svc = fileSvc
		}
	}

	return handler, minLevel, svc
}

// Setup installs the handlers as the apex default.
func (c *Config) Setup() suture.Service {
	handler, level, svc := c.CreateLogging()
	log.SetHandler(handler)
	log.SetLevel(level)
	return svc
}
