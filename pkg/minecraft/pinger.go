package minecraft

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/Adirelle/mondo/pkg/commands"
	"github.com/apex/log"
	properties "github.com/dmotylev/goproperties"
	"github.com/millkhan/mcstatusgo/v2"
	"github.com/thejerf/suture/v4"
)

type (
	// Pinger polls the server periodically and keeps the last result for commands.
	Pinger struct {
		*Config
		// Strategy is resolved from server.properties when nil.
		Strategy PingStrategy

		mu       sync.RWMutex
		lastPing PingResult
	}

	PingStrategy interface {
		Ping(when time.Time) PingResult
	}

	statusPingStrategy struct {
		*Config
	}

	queryPingStrategy struct {
		*Config
		QueryPort uint16
	}

	nullPingStrategy struct{}

	PingResult interface {
		IsSuccess() bool
		report(call *commands.Call)
	}

	PingSucceeded struct {
		When          time.Time
		Latency       time.Duration
		MaxPlayers    uint
		OnlinePlayers uint
		// PlayerList is only available with the query protocol.
		PlayerList []string
	}

	PingFailed struct {
		When   time.Time
		Reason error
	}

	PingDisabled struct{}

	pingPending struct{}
)

var (
	// Interface checks
	_ suture.Service = (*Pinger)(nil)
	_ PingResult     = (*PingSucceeded)(nil)
	_ PingResult     = (*PingFailed)(nil)
	_ PingResult     = PingDisabled{}
	_ PingStrategy   = (*statusPingStrategy)(nil)
	_ PingStrategy   = (*queryPingStrategy)(nil)
	_ PingStrategy   = nullPingStrategy{}
)

func NewPinger(config *Config) *Pinger {
	return &Pinger{Config: config, lastPing: pingPending{}}
}

func (p *Pinger) GoString() string {
	return "Minecraft Pinger"
}

func (p *Pinger) Serve(ctx context.Context) error {
	if p.Strategy == nil {
		strategy, err := p.ResolveStrategy()
		if err != nil {
			log.WithError(err).WithField("path", p.AbsServerProperties()).Error("pinger.config")
			return err
		}
		p.Strategy = strategy
	}

	ticker := time.NewTicker(time.Duration(p.PingPeriod))
	defer ticker.Stop()

	p.Ping(time.Now())
	for {
		select {
		case <-ctx.Done():
			return nil
		case when := <-ticker.C:
			p.Ping(when)
		}
	}
}

// Ping runs the strategy once and records the result.
func (p *Pinger) Ping(when time.Time) PingResult {
	result := p.Strategy.Ping(when)
	log.WithField("success", result.IsSuccess()).WithFields(asFielder(result)).Debug("pinger.update")

	p.mu.Lock()
	p.lastPing = result
	p.mu.Unlock()
	return result
}

func (p *Pinger) LastPing() PingResult {
	p.mu.RLock()
	defer p.mu.RUnlock()
	return p.lastPing
}

// ResolveStrategy reads server.properties: query wins over status, and
// neither means pinging is disabled.
func (p *Pinger) ResolveStrategy() (PingStrategy, error) {
	props, err := properties.Load(p.AbsServerProperties())
	if err != nil {
		return nil, fmt.Errorf("could not read server properties: %w", err)
	}
	return p.strategyFor(props), nil
}

func (p *Pinger) strategyFor(props properties.Properties) PingStrategy {
	p.ServerPort = uint16(props.Int("server-port", int64(p.ServerPort)))

	if props.Bool("enable-query", false) {
		port := uint16(props.Int("query.port", int64(p.ServerPort)))
		return &queryPingStrategy{p.Config, port}
	}

	if props.Bool("enable-status", false) {
		return &statusPingStrategy{p.Config}
	}

	return nullPingStrategy{}
}

func (p *queryPingStrategy) Ping(when time.Time) PingResult {
	log.Debug("pinger.ping.fullQuery")
	response, err := mcstatusgo.FullQuery(p.ServerHost, p.QueryPort, time.Duration(p.ConnectTimeout), time.Duration(p.ResponseTimeout))
	if err != nil {
		return &PingFailed{when, err}
	}
	return &PingSucceeded{
		When:          when,
		Latency:       response.Latency,
		MaxPlayers:    uint(response.Players.Max),
		OnlinePlayers: uint(response.Players.Online),
		PlayerList:    response.Players.PlayerList,
	}
}

func (p *statusPingStrategy) Ping(when time.Time) PingResult {
	log.Debug("pinger.ping.status")
	response, err := mcstatusgo.Status(p.ServerHost, p.ServerPort, time.Duration(p.ConnectTimeout), time.Duration(p.ResponseTimeout))
	if err != nil {
		return &PingFailed{when, err}
	}
	return &PingSucceeded{
		When:          when,
		Latency:       response.Latency,
		MaxPlayers:    uint(response.Players.Max),
		OnlinePlayers: uint(response.Players.Online),
	}
}

func (nullPingStrategy) Ping(time.Time) PingResult {
	return PingDisabled{}
}

func (*PingSucceeded) IsSuccess() bool {
	return true
}

func (p *PingSucceeded) Fields() log.Fields {
	return log.Fields{
		"latency":        p.Latency,
		"players.online": p.OnlinePlayers,
		"players.max":    p.MaxPlayers,
		"players.list":   p.PlayerList,
	}
}

func (p *PingSucceeded) report(call *commands.Call) {
	call.Reply("{NOUN}Online players: {GREEN}%d/%d {GRAY}(%s, %s ago)", p.OnlinePlayers, p.MaxPlayers,
		p.Latency.Round(time.Millisecond), time.Since(p.When).Round(time.Second))
}

func (*PingFailed) IsSuccess() bool {
	return false
}

func (p *PingFailed) Fields() log.Fields {
	return log.Fields{"error": p.Reason}
}

func (p *PingFailed) report(call *commands.Call) {
	call.Reply("{ERROR}Last ping failed {GRAY}(%s ago)", time.Since(p.When).Round(time.Second))
}

func (PingDisabled) IsSuccess() bool {
	return false
}

func (PingDisabled) report(call *commands.Call) {
	call.Reply("{WARNING}Both status and query are disabled in server configuration")
}

func (pingPending) IsSuccess() bool {
	return false
}

func (pingPending) report(call *commands.Call) {
	call.Reply("{WARNING}The server has not been pinged yet")
}

func asFielder(result PingResult) log.Fielder {
	if fielder, isFielder := result.(log.Fielder); isFielder {
		return fielder
	}
	return log.Fields{}
}
