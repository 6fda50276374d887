package minecraft

import (
	"github.com/Adirelle/mondo/pkg/commands"
)

// RegisterCommands adds a nested "server" command with status and players to parent.
func RegisterCommands(parent *commands.Registry, pinger *Pinger) *commands.Registry {
	server := commands.NewRegistry(parent.Format())

	server.AddSub("status", "server.status").
		AllowConsole().
		SetDescription("Show the last ping result").
		SetHandlerFunc(pinger.handleStatus)

	server.AddSub("players", "server.players").
		AllowConsole().
		SetDescription("List online players").
		SetHandlerFunc(pinger.handlePlayers)

	parent.AddSub("server", "").
		AllowConsole().
		SetDescription("Minecraft server status").
		SetHandler(server)

	return server
}

func (p *Pinger) handleStatus(call *commands.Call) error {
	p.LastPing().report(call)
	return nil
}

func (p *Pinger) handlePlayers(call *commands.Call) error {
	result := p.LastPing()
	success, isSuccess := result.(*PingSucceeded)
	if !isSuccess {
		result.report(call)
		return nil
	}
	if success.PlayerList == nil {
		return commands.Fail("The player list requires enable-query in server.properties")
	}
	if len(success.PlayerList) == 0 {
		call.Reply("{NOUN}Nobody is online")
		return nil
	}
	call.Reply("{NOUN}%d player(s) online:", len(success.PlayerList))
	for _, name := range success.PlayerList {
		call.Append("{GRAY}- {AQUA}%s", name)
	}
	return nil
}
