package commands

import (
	"github.com/apex/log"
)

// SubCommand is a named entry of a Registry. It is configured by chaining
// setters right after Registry.AddSub, before any dispatch happens.
type SubCommand struct {
	name           string
	permission     string
	minArgs        int
	consoleAllowed bool
	usage          string
	description    string
	handler        Handler
}

var _ log.Fielder = (*SubCommand)(nil)

func newSubCommand(name, permission string) *SubCommand {
	return &SubCommand{name: name, permission: permission, handler: unboundHandler{}}
}

func (s *SubCommand) Name() string         { return s.name }
func (s *SubCommand) Permission() string   { return s.permission }
func (s *SubCommand) MinArgs() int         { return s.minArgs }
func (s *SubCommand) ConsoleAllowed() bool { return s.consoleAllowed }
func (s *SubCommand) Usage() string        { return s.usage }
func (s *SubCommand) Description() string  { return s.description }
func (s *SubCommand) Handler() Handler     { return s.handler }

// AllowConsole lets non-interactive senders see and use the sub-command.
func (s *SubCommand) AllowConsole() *SubCommand {
	s.consoleAllowed = true
	return s
}

func (s *SubCommand) SetMinArgs(minArgs int) *SubCommand {
	if minArgs < 0 {
		minArgs = 0
	}
	s.minArgs = minArgs
	return s
}

func (s *SubCommand) SetUsage(usage string) *SubCommand {
	s.usage = usage
	return s
}

func (s *SubCommand) SetDescription(description string) *SubCommand {
	s.description = description
	return s
}

// SetHandler binds the handler. A nil handler restores the unbound one.
func (s *SubCommand) SetHandler(handler Handler) *SubCommand {
	if handler == nil {
		handler = unboundHandler{}
	}
	s.handler = handler
	return s
}

func (s *SubCommand) SetHandlerFunc(handler func(*Call) error) *SubCommand {
	return s.SetHandler(HandlerFunc(handler))
}

// CheckPermission is always true when no permission is required.
func (s *SubCommand) CheckPermission(sender Sender) bool {
	return s.permission == "" || sender.HasPermission(s.permission)
}

// VisibleTo tells whether the sub-command is listed in usage for this sender.
func (s *SubCommand) VisibleTo(sender Sender, player Player) bool {
	return (player != nil || s.consoleAllowed) && s.CheckPermission(sender)
}

func (s *SubCommand) Fields() log.Fields {
	return log.Fields{
		"subcommand": s.name,
		"permission": s.permission,
	}
}
