package chat_test

import (
	"testing"

	"github.com/Adirelle/mondo/pkg/chat"
	"github.com/fatih/color"
)

func TestStrip(t *testing.T) {
	t.Parallel()
	cases := map[string]string{
		"":                    "",
		"plain":               "plain",
		"§6Usage: §afoo bar":  "Usage: foo bar",
		"§l§cbold red§r done": "bold red done",
		"trailing §":          "trailing ",
	}
	for input, want := range cases {
		if got := chat.Strip(input); got != want {
			t.Errorf("Strip(%q) = %q, want %q", input, got, want)
		}
	}
}

func TestParseColor(t *testing.T) {
	t.Parallel()
	for _, name := range []string{"red", "RED", "Red", "c"} {
		if c, ok := chat.ParseColor(name); !ok || c != chat.Red {
			t.Errorf("ParseColor(%q) = %#v, %t", name, c, ok)
		}
	}
	if c, ok := chat.ParseColor("light_purple"); !ok || c != chat.LightPurple {
		t.Errorf("light_purple = %#v, %t", c, ok)
	}
	if _, ok := chat.ParseColor("chartreuse"); ok {
		t.Error("chartreuse should not be a color")
	}
}

func TestColorString(t *testing.T) {
	t.Parallel()
	if s := chat.Gold.String(); s != "§6" {
		t.Errorf("got %q", s)
	}
	if !chat.Bold.IsFormat() || chat.Red.IsFormat() || chat.Reset.IsFormat() {
		t.Error("IsFormat mismatch")
	}
}

func TestToANSI(t *testing.T) {
	noColor := color.NoColor
	color.NoColor = false
	defer func() { color.NoColor = noColor }()

	got := chat.ToANSI("hello §cred§r plain")
	want := "hello " + color.New(color.FgHiRed).Sprint("red") + " plain"
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	got = chat.ToANSI("§a§lbig")
	want = color.New(color.FgHiGreen, color.Bold).Sprint("big")
	if got != want {
		t.Errorf("got %q, want %q", got, want)
	}

	if got := chat.ToANSI("no codes"); got != "no codes" {
		t.Errorf("got %q", got)
	}
}
