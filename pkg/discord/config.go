package discord

import (
	"github.com/Adirelle/mondo/pkg/permissions"
)

type (
	Config struct {
		Token         Secret      `json:"token" validate:"required"`
		ChannelIDs    []Snowflake `json:"channelIds,omitempty"`
		CommandPrefix string      `json:"commandPrefix" validate:"required,len=1"`
		// Permissions maps permission nodes (wildcards allowed) to who holds them.
		Permissions map[permissions.Node]PermissionList `json:"permissions,omitempty" validate:"dive,dive"`
	}

	// Secret is a string that is never printed.
	Secret string
)

func NewConfig() *Config {
	return &Config{CommandPrefix: "!"}
}

func (c *Config) PermissionTable() permissions.Table {
	table := make(permissions.Table, len(c.Permissions))
	for node, list := range c.Permissions {
		table[node] = list
	}
	return table
}

func (c *Config) AcceptChannel(channelID string) bool {
	if len(c.ChannelIDs) == 0 {
		return true
	}
	for _, id := range c.ChannelIDs {
		if string(id) == channelID {
			return true
		}
	}
	return false
}

func (s Secret) Reveal() string {
	return string(s)
}

func (Secret) String() string {
	return "<secret>"
}

func (Secret) GoString() string {
	return "<secret>"
}
