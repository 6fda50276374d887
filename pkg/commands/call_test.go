package commands_test

import (
	"errors"
	"testing"

	"github.com/Adirelle/mondo/pkg/chat"
	"github.com/Adirelle/mondo/pkg/commands"
)

func newCall(sender commands.Sender, player commands.Player) *commands.Call {
	format := newFormat().SetReplyPrefix("{GREEN}HEADER: ")
	sub := commands.NewRegistry(format).AddSub("bar", "")
	return commands.NewCall(sender, player, "foo", sub, []string{"foo", "bar", "42"}, format)
}

func TestCallArgs(t *testing.T) {
	t.Parallel()
	call := newCall(newSender(), nil)

	if call.Arg(0) != "foo" || call.Arg(2) != "42" {
		t.Errorf("args: %q", call.Args())
	}
	if call.Arg(3) != "" || call.Arg(-1) != "" {
		t.Error("out of range arguments should be empty")
	}
	if call.NumArgs() != 3 {
		t.Errorf("NumArgs: %d", call.NumArgs())
	}
}

func TestCallIntArg(t *testing.T) {
	t.Parallel()
	call := newCall(newSender(), nil)

	if value, err := call.IntArg(2); err != nil || value != 42 {
		t.Errorf("IntArg(2) = %d, %v", value, err)
	}
	_, err := call.IntArg(1)
	var failure *commands.Failure
	if !errors.As(err, &failure) || failure.Message != `"bar" is not a number` {
		t.Errorf("IntArg(1) error: %v", err)
	}
}

func TestCallJoinedArgsAfter(t *testing.T) {
	t.Parallel()
	call := newCall(newSender(), nil)

	for index, want := range map[int]string{0: "foo bar 42", 1: "bar 42", 3: "", 10: ""} {
		if got := call.JoinedArgsAfter(index); got != want {
			t.Errorf("JoinedArgsAfter(%d) = %q, want %q", index, got, want)
		}
	}
}

func TestCallReplyIsBuffered(t *testing.T) {
	t.Parallel()
	sender := newSender()
	call := newCall(sender, nil)

	call.Reply("foo {red}%d", 42)
	call.Append("{BLUE}plain")
	call.AppendRaw("{raw}")

	if len(sender.messages) != 0 {
		t.Errorf("replies should be buffered, got %q", sender.messages)
	}
	want := []string{
		chat.Green.String() + "HEADER: foo " + chat.Red.String() + "42",
		chat.Blue.String() + "plain",
		"{raw}",
	}
	got := call.Messages()
	if len(got) != len(want) {
		t.Fatalf("got %q", got)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("message %d: got %q, want %q", i, got[i], want[i])
		}
	}
}

func TestCallFields(t *testing.T) {
	t.Parallel()
	player := newPlayer()
	call := newCall(player, player)

	fields := call.Fields()
	if fields["path"] != "foo" || fields["subcommand"] != "bar" || fields["player"] != "Steve" {
		t.Errorf("fields: %v", fields)
	}
}

func TestClassify(t *testing.T) {
	t.Parallel()
	if outcome, _ := commands.Classify(nil); outcome != commands.Succeeded {
		t.Errorf("nil: %s", outcome)
	}
	if outcome, failure := commands.Classify(commands.Fail("nope")); outcome != commands.Declared || failure.Message != "nope" {
		t.Errorf("failure: %s %v", outcome, failure)
	}
	if outcome, failure := commands.Classify(errors.New("boom")); outcome != commands.Unexpected || failure != nil {
		t.Errorf("error: %s %v", outcome, failure)
	}
}
