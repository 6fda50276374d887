package main

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/Adirelle/mondo/pkg/commands"
	"github.com/Adirelle/mondo/pkg/discord"
	"github.com/Adirelle/mondo/pkg/logging"
	"github.com/Adirelle/mondo/pkg/minecraft"
	"github.com/go-playground/validator/v10"
)

const (
	ConfigFilename = "mondo.json"
)

type (
	Config struct {
		Path    string          `json:"-"`
		Logging *logging.Config `json:"logging" validate:"required"`
		// Format is validated by FormatConfig.Validate.
		Format *commands.FormatConfig `json:"format" validate:"-"`
		// MessagesFile optionally overrides Format with a properties file.
		MessagesFile string            `json:"messagesFile,omitempty"`
		Discord      *discord.Config   `json:"discord,omitempty"`
		Minecraft    *minecraft.Config `json:"minecraft,omitempty"`
	}
)

func ConfigSearchPath() []string {
	paths := os.Args[1:]
	workDir, err := os.Getwd()
	if err == nil {
		paths = append(paths, workDir)
	}
	return append(paths, filepath.Dir(os.Args[0]))
}

func FindConfigFile(paths []string) string {
	for _, path := range paths {
		stat, err := os.Stat(path)
		if err != nil {
			continue
		}
		if stat.IsDir() {
			path = filepath.Join(path, ConfigFilename)
			_, err = os.Stat(path)
		}
		if err == nil {
			return path
		}
	}
	if len(paths) == 0 {
		return ConfigFilename
	}
	if stat, err := os.Stat(paths[0]); err == nil && stat.IsDir() {
		return filepath.Join(paths[0], ConfigFilename)
	}
	return paths[0]
}

func NewConfig(path string) *Config {
	baseDir := filepath.Dir(path)
	return &Config{
		Path:      path,
		Logging:   logging.NewConfig(""),
		Format:    commands.NewFormatConfig(),
		Minecraft: minecraft.NewConfig(baseDir),
	}
}

// LoadConfig reads the configuration, writing the defaults first if the file
// does not exist.
func LoadConfig(path string) (c *Config, err error) {
	c = NewConfig(path)

	err = c.Read()
	if os.IsNotExist(err) {
		err = c.Write()
	}
	if err != nil {
		return
	}

	c.Logging.SetBaseDir(filepath.Dir(path))

	if c.MessagesFile != "" {
		messages := c.MessagesFile
		if !filepath.IsAbs(messages) {
			messages = filepath.Join(filepath.Dir(path), messages)
		}
		if err = c.Format.LoadProperties(messages); err != nil {
			return
		}
	}

	if err = validator.New().Struct(c); err != nil {
		return c, fmt.Errorf("invalid configuration `%s`: %w", path, err)
	}
	if err = c.Format.Validate(); err != nil {
		return c, fmt.Errorf("invalid message format in `%s`: %w", path, err)
	}

	return
}

func (c *Config) Read() error {
	content, err := os.ReadFile(c.Path)
	if err != nil {
		return err
	}
	return json.Unmarshal(content, c)
}

func (c *Config) Write() error {
	content, err := json.MarshalIndent(c, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(c.Path, content, os.FileMode(0o666))
}
