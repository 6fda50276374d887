package commands

import (
	"strconv"
	"strings"

	"github.com/Adirelle/mondo/pkg/chat"
	"github.com/apex/log"
)

// Call holds everything about one sub-command invocation.
//
// Replies are buffered and delivered to the Sender, in order, once the
// handler has returned.
type Call struct {
	Sender Sender
	// Player is nil when the command comes from a non-interactive sender.
	Player Player
	// Path is the label the sub-command runs under, e.g. "/house color".
	Path string
	Sub  *SubCommand

	args      []string
	format    *FormatConfig
	colorizer *chat.Colorizer
	messages  []string
}

var _ log.Fielder = (*Call)(nil)

// NewCall is used by Registry. It is exported for testing handlers in isolation.
func NewCall(sender Sender, player Player, path string, sub *SubCommand, args []string, format *FormatConfig) *Call {
	if format == nil {
		format = NewFormatConfig()
	}
	return &Call{
		Sender:    sender,
		Player:    player,
		Path:      path,
		Sub:       sub,
		args:      args,
		format:    format,
		colorizer: format.colorizer(),
	}
}

// Arg returns the argument at index, or an empty string past the end.
func (c *Call) Arg(index int) string {
	if index < 0 || index >= len(c.args) {
		return ""
	}
	return c.args[index]
}

func (c *Call) Args() []string {
	return append([]string(nil), c.args...)
}

func (c *Call) NumArgs() int {
	return len(c.args)
}

// IntArg parses the argument at index. A malformed number is reported as a Failure.
func (c *Call) IntArg(index int) (int, error) {
	value, err := strconv.Atoi(c.Arg(index))
	if err != nil {
		return 0, Fail("%q is not a number", c.Arg(index))
	}
	return value, nil
}

// JoinedArgsAfter joins the arguments from index (inclusive) to the end, for free-form text.
func (c *Call) JoinedArgsAfter(index int) string {
	if index < 0 {
		index = 0
	}
	if index >= len(c.args) {
		return ""
	}
	return strings.Join(c.args[index:], " ")
}

// Reply adds a colorized line, prefixed with the configured reply prefix.
func (c *Call) Reply(template string, args ...interface{}) {
	c.messages = append(c.messages, c.colorizer.Colorize(c.format.ReplyPrefix)+c.colorizer.Colorize(template, args...))
}

// Append adds a colorized line without prefix.
func (c *Call) Append(template string, args ...interface{}) {
	c.messages = append(c.messages, c.colorizer.Colorize(template, args...))
}

// AppendRaw adds a line as is.
func (c *Call) AppendRaw(message string) {
	c.messages = append(c.messages, message)
}

func (c *Call) Messages() []string {
	return append([]string(nil), c.messages...)
}

func (c *Call) flush() {
	if len(c.messages) == 0 {
		return
	}
	c.Sender.SendMessage(c.messages...)
	c.messages = nil
}

func (c *Call) discard() {
	c.messages = nil
}

func (c *Call) Fields() log.Fields {
	fields := log.Fields{
		"path": c.Path,
		"args": c.args,
	}
	if c.Sub != nil {
		fields["subcommand"] = c.Sub.name
	}
	if c.Player != nil {
		fields["player"] = c.Player.Name()
	}
	if fielder, isFielder := c.Sender.(log.Fielder); isFielder {
		for key, value := range fielder.Fields() {
			fields[key] = value
		}
	}
	return fields
}
