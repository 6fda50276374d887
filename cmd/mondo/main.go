package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	"github.com/Adirelle/mondo/pkg/commands"
	"github.com/Adirelle/mondo/pkg/console"
	"github.com/Adirelle/mondo/pkg/discord"
	"github.com/Adirelle/mondo/pkg/minecraft"
	"github.com/apex/log"
	"github.com/apex/log/handlers/cli"
)

type (
	// host is implemented by the console and the Discord bot.
	host interface {
		Register(label string, root *commands.Registry)
	}
)

func init() {
	log.SetHandler(cli.New(os.Stderr))
	log.SetLevel(log.InfoLevel)
}

func main() {
	conf, err := LoadConfig(FindConfigFile(ConfigSearchPath()))
	if err != nil {
		log.WithError(err).Fatal("could not load configuration")
	}

	rootSupervisor := MakeRootSupervisor()
	if svc := conf.Logging.Setup(); svc != nil {
		rootSupervisor.Add(svc)
	}

	roots := BuildCommands(conf, NewHouses())

	term := console.New(os.Stdin, os.Stdout)
	hosts := []host{term}
	rootSupervisor.Add(term)

	if conf.Discord != nil {
		bot := discord.NewBot(*conf.Discord)
		hosts = append(hosts, bot)
		rootSupervisor.Add(bot)
	}

	for label, root := range roots.registries {
		for _, h := range hosts {
			h.Register(label, root)
		}
	}
	if roots.pinger != nil {
		rootSupervisor.Add(roots.pinger)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	err = rootSupervisor.Serve(ctx)
	if err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("exit")
	}
}

type commandTree struct {
	registries map[string]*commands.Registry
	pinger     *minecraft.Pinger
}

// BuildCommands creates the root labels: "house", and "mondo" which nests
// "house" and, when configured, "server".
func BuildCommands(conf *Config, houses *Houses) commandTree {
	house := NewHouseCommand(conf.Format, houses)

	mondo := commands.NewRegistry(conf.Format)
	mondo.AddSub("house", "").
		SetDescription("Build and paint houses").
		AllowConsole().
		SetHandler(house)

	tree := commandTree{
		registries: map[string]*commands.Registry{
			"house": house,
			"mondo": mondo,
		},
	}
	if conf.Minecraft != nil {
		tree.pinger = minecraft.NewPinger(conf.Minecraft)
		minecraft.RegisterCommands(mondo, tree.pinger)
	}
	return tree
}
