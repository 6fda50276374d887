package discord

import (
	"context"
	"fmt"
	"strings"

	"github.com/Adirelle/mondo/pkg/commands"
	"github.com/Adirelle/mondo/pkg/permissions"
	"github.com/apex/log"
	"github.com/bwmarrin/discordgo"
	"github.com/thejerf/suture/v4"
)

type (
	// Bot runs prefixed chat messages like "!house build" through command registries.
	Bot struct {
		Config
		*discordgo.Session
		permissions permissions.Table
		roots       map[string]*commands.Registry
	}
)

var _ suture.Service = (*Bot)(nil)

func NewBot(config Config) *Bot {
	return &Bot{
		Config:      config,
		permissions: config.PermissionTable(),
		roots:       make(map[string]*commands.Registry),
	}
}

// Register makes root reachable as <prefix><label>. It must be called before Serve.
func (b *Bot) Register(label string, root *commands.Registry) {
	b.roots[strings.ToLower(label)] = root
}

func (b *Bot) GoString() string {
	return "Discord Bot"
}

func (b *Bot) Serve(ctx context.Context) (err error) {
	err = b.connect()
	if err != nil {
		return fmt.Errorf("could not connect to Discord: %w", err)
	}
	defer b.disconnect()

	<-ctx.Done()
	return nil
}

// Route executes content if it is a command line for one of the registered roots.
func (b *Bot) Route(content string, sender commands.Sender) bool {
	if len(content) < 2 || !strings.HasPrefix(content, b.CommandPrefix) {
		return false
	}
	words := strings.Fields(content[len(b.CommandPrefix):])
	if len(words) == 0 {
		return false
	}
	root, found := b.roots[strings.ToLower(words[0])]
	if !found {
		return false
	}
	root.Execute(sender, b.CommandPrefix+strings.ToLower(words[0]), words[1:])
	return true
}

func (b *Bot) connect() (err error) {
	if b.Session != nil {
		return
	}
	log.Debug("discord.connecting")

	if b.Session, err = discordgo.New("Bot " + b.Config.Token.Reveal()); err == nil {
		b.Identify.Intents = discordgo.IntentsGuildMessages
		b.AddHandler(b.onReady)
		b.AddHandler(b.onMessage)

		err = b.Open()
	}

	if err != nil {
		log.WithError(err).Error("discord.connect")
		b.Session = nil
	}
	return
}

func (b *Bot) onReady(_ *discordgo.Session, ready *discordgo.Ready) {
	log.WithField("username", ready.User.Username).Info("discord.ready")
}

func (b *Bot) onMessage(s *discordgo.Session, m *discordgo.MessageCreate) {
	if m.Author == nil || m.Author.ID == s.State.User.ID || !b.AcceptChannel(m.ChannelID) {
		return
	}
	sender := &messageSender{
		Message:     m.Message,
		permissions: b.permissions,
		reply: func(content string) {
			_, err := s.ChannelMessageSendComplex(m.ChannelID, &discordgo.MessageSend{Content: content, Reference: m.Reference()})
			if err != nil {
				log.WithFields(log.Fields{"author": m.Author.Username, "channelID": m.ChannelID}).WithError(err).Warn("discord.reply")
			}
		},
	}
	b.Route(m.Content, sender)
}

func (b *Bot) disconnect() {
	if b.Session == nil {
		return
	}
	log.Debug("discord.disconnecting")

	err := b.Session.Close()
	b.Session = nil

	if err != nil {
		log.WithError(err).Info("discord.disconnect")
	}
}
