package discord

import (
	"fmt"
	"strings"

	"github.com/Adirelle/mondo/pkg/chat"
	"github.com/Adirelle/mondo/pkg/commands"
	"github.com/Adirelle/mondo/pkg/permissions"
	"github.com/apex/log"
	"github.com/bwmarrin/discordgo"
)

type (
	// messageSender is the commands.Player behind a Discord message.
	messageSender struct {
		*discordgo.Message
		permissions permissions.Table
		reply       func(content string)
	}
)

var (
	// Interface checks
	_ commands.Player = (*messageSender)(nil)
	_ Actor           = (*messageSender)(nil)
	_ log.Fielder     = (*messageSender)(nil)
)

// SendMessage sends all lines as a single Discord message, without formatting codes.
func (m *messageSender) SendMessage(messages ...string) {
	if len(messages) == 0 {
		return
	}
	lines := make([]string, len(messages))
	for i, message := range messages {
		lines[i] = chat.Strip(message)
	}
	m.reply(strings.Join(lines, "\n"))
}

func (m *messageSender) HasPermission(permission string) bool {
	return m.permissions.Allow(permission, m)
}

func (m *messageSender) Name() string {
	if m.Author == nil {
		return ""
	}
	return m.Author.Username
}

func (m *messageSender) DescribeActor() string {
	if m.Author == nil {
		return "unknown"
	}
	return fmt.Sprintf("<@%s>", m.Author.ID)
}

func (m *messageSender) IsUser(userID Snowflake) bool {
	return m.Author != nil && m.Author.ID == string(userID)
}

func (m *messageSender) HasRole(roleID Snowflake) bool {
	if m.Member != nil {
		for _, r := range m.Member.Roles {
			if r == string(roleID) {
				return true
			}
		}
	}
	return false
}

func (m *messageSender) InChannel(channelID Snowflake) bool {
	return m.ChannelID == string(channelID)
}

func (m *messageSender) GoString() string {
	return fmt.Sprintf("Message(content=%q, author=%q)", m.Content, m.Name())
}

func (m *messageSender) Fields() log.Fields {
	fields := log.Fields{
		"author":    m.Name(),
		"channelID": m.ChannelID,
	}
	if m.Member != nil {
		fields["roleIDs"] = m.Member.Roles
	} else {
		fields["roleIDs"] = nil
	}
	return fields
}
