package main

import (
	"strings"
	"sync"

	"github.com/Adirelle/mondo/pkg/chat"
	"github.com/Adirelle/mondo/pkg/commands"
	"github.com/Adirelle/mondo/pkg/commands/dynamic"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Houses is the demo domain: named houses with a size and a color.
	Houses struct {
		mu     sync.RWMutex
		houses map[string]*House
	}

	House struct {
		Name  string
		Size  int
		Color chat.Color
	}
)

const (
	defaultHouseSize = 4
	maxHouseSize     = 64
)

var version = "dev"

func NewHouses() *Houses {
	return &Houses{houses: make(map[string]*House)}
}

// NewHouseCommand builds the "house" tree. List and Info are bound from
// methods of Houses; everything else is declared here.
func NewHouseCommand(format *commands.FormatConfig, houses *Houses) *commands.Registry {
	house := commands.NewRegistry(format)

	house.AddSub("build", "house.build").
		SetDescription("Build a new house").
		SetUsage("<name> [size]").
		SetMinArgs(1).
		SetHandlerFunc(houses.build)

	house.AddSub("destroy", "house.destroy").
		SetDescription("Destroy a house").
		SetUsage("<name>").
		SetMinArgs(1).
		AllowConsole().
		SetHandlerFunc(houses.destroy)

	dynamic.AutoRegister(house, houses)

	house.AddSub("version", "").
		SetDescription("Show the version").
		AllowConsole().
		SetHandlerFunc(func(call *commands.Call) error {
			call.Reply("{NOUN}mondo {GRAY}%s", version)
			return nil
		})

	color := commands.NewRegistry(format)
	color.AddSub("add", "house.color").
		SetDescription("Paint a house").
		SetUsage("<name> <color>").
		SetMinArgs(2).
		AllowConsole().
		SetHandlerFunc(houses.paint)
	color.AddSub("remove", "house.color").
		SetDescription("Remove the paint of a house").
		SetUsage("<name>").
		SetMinArgs(1).
		AllowConsole().
		SetHandlerFunc(houses.strip)

	house.AddSub("color", "").
		SetDescription("Manage house colors").
		SetUsage("[add|remove]").
		AllowConsole().
		SetHandler(color)

	return house
}

func (h *Houses) SubCommands() map[string]dynamic.Sub {
	return map[string]dynamic.Sub{
		"List": {Description: "List the houses"},
		"Info": {Description: "Describe a house", Usage: "<name>", MinArgs: 1},
	}
}

// build needs a player to own the house. It is hidden from the console
// listing, and fails when the console calls it anyway.
func (h *Houses) build(call *commands.Call) error {
	if call.Player == nil {
		return commands.Fail("Only players can build houses")
	}

	size := defaultHouseSize
	if call.NumArgs() > 1 {
		var err error
		if size, err = call.IntArg(1); err != nil {
			return err
		}
		if size < 1 || size > maxHouseSize {
			return commands.Fail("The size must be between 1 and %d", maxHouseSize)
		}
	}

	name := strings.ToLower(call.Arg(0))
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.houses[name]; exists {
		return commands.Fail("There is already a house named %s", name)
	}
	h.houses[name] = &House{Name: name, Size: size, Color: chat.White}

	call.Reply("{VERB}Built {NOUN}%s {GRAY}(size %d) for %s", name, size, call.Player.Name())
	return nil
}

func (h *Houses) destroy(call *commands.Call) error {
	name := strings.ToLower(call.Arg(0))
	h.mu.Lock()
	defer h.mu.Unlock()
	if _, exists := h.houses[name]; !exists {
		return commands.Fail("No house named %s", name)
	}
	delete(h.houses, name)
	call.Reply("{VERB}Destroyed {NOUN}%s", name)
	return nil
}

func (h *Houses) paint(call *commands.Call) error {
	color, ok := chat.ParseColor(call.Arg(1))
	if !ok || color.IsFormat() || color == chat.Reset {
		return commands.Fail("Unknown color %q", call.Arg(1))
	}
	house, err := h.lookup(call.Arg(0))
	if err != nil {
		return err
	}
	h.mu.Lock()
	house.Color = color
	h.mu.Unlock()
	call.Reply("{VERB}Painted {NOUN}%s %s%s", house.Name, color, color.Name())
	return nil
}

func (h *Houses) strip(call *commands.Call) error {
	house, err := h.lookup(call.Arg(0))
	if err != nil {
		return err
	}
	h.mu.Lock()
	house.Color = chat.White
	h.mu.Unlock()
	call.Reply("{VERB}Stripped {NOUN}%s", house.Name)
	return nil
}

func (h *Houses) List(call *commands.Call) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if len(h.houses) == 0 {
		call.Reply("{GRAY}No houses yet")
		return
	}
	names := maps.Keys(h.houses)
	slices.Sort(names)
	call.Reply("{HEADER}%d house(s):", len(names))
	for _, name := range names {
		call.Append("{GRAY}- %s%s", h.houses[name].Color, name)
	}
}

func (h *Houses) Info(call *commands.Call) error {
	house, err := h.lookup(call.Arg(0))
	if err != nil {
		return err
	}
	h.mu.RLock()
	defer h.mu.RUnlock()
	call.Reply("{NOUN}%s{GRAY}: size %d, %s%s", house.Name, house.Size, house.Color, house.Color.Name())
	return nil
}

func (h *Houses) lookup(name string) (*House, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	house, found := h.houses[strings.ToLower(name)]
	if !found {
		return nil, commands.Fail("No house named %s", strings.ToLower(name))
	}
	return house, nil
}
