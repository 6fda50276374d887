package logging

import (
	"encoding/json"

	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
	"github.com/apex/log/handlers/level"
	"github.com/thejerf/suture/v4"
)

type (
	// ConsoleConfig is the minimum level printed on stderr, written as "warn".
	ConsoleConfig log.Level
)

var (
	_ factory          = (*ConsoleConfig)(nil)
	_ json.Marshaler   = (*ConsoleConfig)(nil)
	_ json.Unmarshaler = (*ConsoleConfig)(nil)
)

func (c ConsoleConfig) Level() log.Level {
	return log.Level(c)
}

// CreateLogging never returns a service: the cli handler writes synchronously.
func (c ConsoleConfig) CreateLogging() (log.Handler, log.Level, suture.Service) {
	return level.New(cli.Default, c.Level()), c.Level(), nil
}

func (c ConsoleConfig) MarshalJSON() ([]byte, error) {
	return c.Level().MarshalJSON()
}

func (c *ConsoleConfig) UnmarshalJSON(data []byte) error {
	return json.Unmarshal(data, (*log.Level)(c))
}
