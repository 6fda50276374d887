// Package console runs command lines typed on the terminal.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/Adirelle/mondo/pkg/chat"
	"github.com/Adirelle/mondo/pkg/commands"
	"github.com/apex/log"
	"github.com/thejerf/suture/v4"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Console reads one command line per line of input. Lines start with a
	// registered label, like "house build".
	Console struct {
		input  io.Reader
		sender *Sender
		roots  map[string]*commands.Registry
	}

	// Sender is the non-interactive operator: it holds every permission and
	// only sees console-allowed sub-commands.
	Sender struct {
		mu     sync.Mutex
		output io.Writer
	}
)

var (
	// Interface checks
	_ suture.Service  = (*Console)(nil)
	_ commands.Sender = (*Sender)(nil)
)

func New(input io.Reader, output io.Writer) *Console {
	return &Console{
		input:  input,
		sender: &Sender{output: output},
		roots:  make(map[string]*commands.Registry),
	}
}

// Register must be called before Serve.
func (c *Console) Register(label string, root *commands.Registry) {
	c.roots[strings.ToLower(label)] = root
}

func (c *Console) Sender() *Sender {
	return c.sender
}

func (c *Console) GoString() string {
	return "Console"
}

func (c *Console) Serve(ctx context.Context) error {
	log.WithField("labels", len(c.roots)).Debug("console.started")

	lines := make(chan string)
	go func() {
		defer close(lines)
		readLines(c.input, func(line string) {
			select {
			case lines <- line:
			case <-ctx.Done():
			}
		})
	}()

	for {
		select {
		case <-ctx.Done():
			return nil
		case line, open := <-lines:
			if !open {
				log.Debug("console.eof")
				return suture.ErrDoNotRestart
			}
			c.Run(line)
		}
	}
}

// Run executes one command line. Blank lines are ignored.
func (c *Console) Run(line string) {
	words := strings.Fields(line)
	if len(words) == 0 {
		return
	}
	label := strings.ToLower(words[0])
	root, found := c.roots[label]
	if !found {
		c.unknownCommand(words[0])
		return
	}
	log.WithField("line", line).Debug("console.command")
	root.Execute(c.sender, label, words[1:])
}

// unknownCommand lists the labels, colored by the first root's aliases.
func (c *Console) unknownCommand(label string) {
	labels := maps.Keys(c.roots)
	slices.Sort(labels)
	message := fmt.Sprintf("Unknown command %q. Available: %s", label, strings.Join(labels, ", "))
	if len(labels) > 0 {
		colorizer := c.roots[labels[0]].Format().Colorizer
		message = colorizer.Colorize("{ERROR}Unknown command %q. {GRAY}Available: %s", label, strings.Join(labels, ", "))
	}
	c.sender.SendMessage(message)
}

// SendMessage writes each message on its own line, with ANSI colors.
func (s *Sender) SendMessage(messages ...string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, message := range messages {
		if _, err := fmt.Fprintln(s.output, chat.ToANSI(message)); err != nil {
			log.WithError(err).Warn("console.write")
			return
		}
	}
}

func (*Sender) HasPermission(string) bool {
	return true
}

func readLines(rd io.Reader, f func(string)) {
	scanner := bufio.NewScanner(rd)
	for scanner.Scan() {
		f(scanner.Text())
	}
	if err := scanner.Err(); err != nil {
		log.WithError(err).Warn("console.read")
	}
}
