package commands

import (
	"errors"
	"fmt"
	"strings"

	"github.com/apex/log"
)

type panicError struct {
	value interface{}
}

func (p *panicError) Error() string {
	return fmt.Sprintf("panic: %v", p.value)
}

// Registry dispatches a command line to its sub-commands.
//
// A Registry is also a Handler: installed as the handler of a SubCommand of
// another Registry, it handles the remaining arguments as a nested command.
//
// Sub-commands must be added before dispatching begins; after that the
// Registry is safe for concurrent dispatches.
type Registry struct {
	format *FormatConfig
	subs   map[string]*SubCommand
	order  []string
	logger log.Interface
}

// NewRegistry creates a Registry with the given formatting; nil means defaults.
func NewRegistry(format *FormatConfig) *Registry {
	if format == nil {
		format = NewFormatConfig()
	}
	format.registerAliases()
	return &Registry{
		format: format,
		subs:   make(map[string]*SubCommand),
		logger: log.Log,
	}
}

func (r *Registry) Format() *FormatConfig {
	return r.format
}

// SetLogger replaces the apex logger used to report handler errors.
func (r *Registry) SetLogger(logger log.Interface) *Registry {
	r.logger = logger
	return r
}

// AddSub registers a sub-command under the lowercase form of name, replacing
// any previous one. An empty permission means anyone can use it.
func (r *Registry) AddSub(name, permission string) *SubCommand {
	if name == "" {
		panic("commands: empty sub-command name")
	}
	key := strings.ToLower(name)
	if _, exists := r.subs[key]; !exists {
		r.order = append(r.order, key)
	}
	sub := newSubCommand(name, permission)
	r.subs[key] = sub
	return sub
}

func (r *Registry) Lookup(name string) (*SubCommand, bool) {
	sub, found := r.subs[strings.ToLower(name)]
	return sub, found
}

// ListCommands returns all sub-commands in registration order.
func (r *Registry) ListCommands() []*SubCommand {
	subs := make([]*SubCommand, 0, len(r.order))
	for _, key := range r.order {
		subs = append(subs, r.subs[key])
	}
	return subs
}

// AvailableCommands returns the sub-commands the sender can see, in registration order.
func (r *Registry) AvailableCommands(sender Sender, player Player) []*SubCommand {
	subs := make([]*SubCommand, 0, len(r.order))
	for _, key := range r.order {
		if sub := r.subs[key]; sub.VisibleTo(sender, player) {
			subs = append(subs, sub)
		}
	}
	return subs
}

// Execute is the host entry point. The sender is interactive if it implements Player.
func (r *Registry) Execute(sender Sender, label string, args []string) {
	player, _ := sender.(Player)
	r.Dispatch(sender, player, label, args)
}

// Handle runs the Registry as a nested command.
func (r *Registry) Handle(call *Call) error {
	r.Dispatch(call.Sender, call.Player, call.Path+" "+call.Sub.Name(), call.Args())
	return nil
}

// Dispatch resolves args[0] to a sub-command, checks its permission then its
// argument count, and runs it with the remaining arguments.
func (r *Registry) Dispatch(sender Sender, player Player, path string, args []string) {
	if len(args) == 0 {
		r.ShowUsage(sender, player, path)
		return
	}

	sub, found := r.Lookup(args[0])
	switch {
	case !found:
		r.ShowUsage(sender, player, path)
		return
	case !sub.CheckPermission(sender):
		sender.SendMessage(r.colorize(r.format.PermissionWarning))
		return
	case len(args)-1 < sub.minArgs:
		sender.SendMessage(r.colorize(r.format.UsageHeading) + r.colorize("{GREEN}%s %s {USAGE}%s", path, sub.name, sub.usage))
		return
	}

	call := NewCall(sender, player, path, sub, append([]string(nil), args[1:]...), r.format)
	r.invoke(call)
}

func (r *Registry) invoke(call *Call) {
	logger := r.logger.WithFields(call)
	logger.Debug("command.handle")

	outcome, failure, err := r.run(call)
	switch outcome {
	case Succeeded:
		logger.Info("command.success")
	case Declared:
		logger.WithField("failure", failure.Message).Info("command.failure")
		call.Reply("{ERROR}%s", failure.Message)
	case Unexpected:
		var panicked *panicError
		if errors.As(err, &panicked) {
			logger.WithField("panic", panicked.value).Error("command.panic")
		} else {
			logger.WithError(err).Error("command.error")
		}
		call.discard()
	}
	call.flush()
}

func (r *Registry) run(call *Call) (outcome Outcome, failure *Failure, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			if f, isFailure := recovered.(*Failure); isFailure {
				outcome, failure, err = Declared, f, f
				return
			}
			outcome, failure, err = Unexpected, nil, &panicError{recovered}
		}
	}()
	err = call.Sub.handler.Handle(call)
	outcome, failure = Classify(err)
	return
}

// ShowUsage sends the heading and one line per sub-command the sender can see.
func (r *Registry) ShowUsage(sender Sender, player Player, path string) {
	lines := []string{r.colorize(r.format.UsageHeading) + r.colorize("%s <command> [<args>]", path)}
	for _, sub := range r.AvailableCommands(sender, player) {
		lines = append(lines, r.UsageLine(path, sub))
	}
	sender.SendMessage(lines...)
}

// UsageLine renders the listing line of one sub-command.
func (r *Registry) UsageLine(path string, sub *SubCommand) string {
	usage := ""
	if sub.usage != "" {
		usage = r.colorize(" {USAGE}%s", sub.usage)
	}
	return r.colorize("{GREEN}%s %s%s {BLUE}%s", path, sub.name, usage, sub.description)
}

func (r *Registry) colorize(template string, args ...interface{}) string {
	return r.format.colorizer().Colorize(template, args...)
}
