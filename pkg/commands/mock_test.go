package commands_test

import (
	"github.com/Adirelle/mondo/pkg/chat"
	"github.com/Adirelle/mondo/pkg/commands"
)

type (
	mockSender struct {
		permissions map[string]bool
		messages    []string
	}

	mockPlayer struct {
		mockSender
		name string
	}
)

var (
	_ commands.Sender = (*mockSender)(nil)
	_ commands.Player = (*mockPlayer)(nil)
)

func newSender(permissions ...string) *mockSender {
	s := &mockSender{permissions: make(map[string]bool)}
	for _, p := range permissions {
		s.permissions[p] = true
	}
	return s
}

func newPlayer(permissions ...string) *mockPlayer {
	return &mockPlayer{mockSender: *newSender(permissions...), name: "Steve"}
}

func (s *mockSender) SendMessage(messages ...string) {
	s.messages = append(s.messages, messages...)
}

func (s *mockSender) HasPermission(permission string) bool {
	return s.permissions[permission]
}

func (s *mockSender) stripped(n int) string {
	return chat.Strip(s.messages[n])
}

func (p *mockPlayer) Name() string {
	return p.name
}
