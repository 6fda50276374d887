package commands

type (
	// Sender is whoever issued a command: a player, the console, a chat bot user.
	Sender interface {
		SendMessage(messages ...string)
		HasPermission(permission string) bool
	}

	// Player is an interactive Sender. Console-like senders do not implement it.
	Player interface {
		Sender
		Name() string
	}
)
