package commands_test

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/Adirelle/mondo/pkg/chat"
	"github.com/Adirelle/mondo/pkg/commands"
	properties "github.com/dmotylev/goproperties"
)

func TestFormatConfigDefaults(t *testing.T) {
	t.Parallel()
	format := commands.NewFormatConfig()

	if format.PermissionWarning != commands.DefaultPermissionWarning || format.UsageHeading != commands.DefaultUsageHeading {
		t.Errorf("unexpected defaults: %#v", format)
	}
	if err := format.Validate(); err != nil {
		t.Errorf("defaults should be valid: %s", err)
	}
}

func TestFormatConfigValidation(t *testing.T) {
	t.Parallel()
	format := newFormat().SetPermissionWarning("")
	if err := format.Validate(); err == nil {
		t.Error("an empty permission warning should be rejected")
	}

	format = newFormat()
	format.Aliases = map[string]string{"ERROR": "chartreuse"}
	if err := format.Validate(); err == nil {
		t.Error("an unknown color should be rejected")
	}

	format = newFormat().SetAlias("{ERROR}", chat.DarkRed)
	if err := format.Validate(); err != nil {
		t.Errorf("unexpected error: %s", err)
	}
}

func TestConfiguredAliasesAreRegistered(t *testing.T) {
	t.Parallel()
	format := newFormat().SetAlias("ERROR", chat.DarkRed).SetAlias("{PLAYER}", chat.Yellow)
	commands.NewRegistry(format)

	if value, _ := format.Colorizer.Alias("{ERROR}"); value != chat.DarkRed.String() {
		t.Errorf("{ERROR} = %q", value)
	}
	if value, _ := format.Colorizer.Alias("{PLAYER}"); value != chat.Yellow.String() {
		t.Errorf("{PLAYER} = %q", value)
	}
	if value, _ := format.Colorizer.Alias("{HEADER}"); value != chat.Gold.String() {
		t.Errorf("{HEADER} = %q", value)
	}
}

func TestApplyProperties(t *testing.T) {
	t.Parallel()
	props := properties.Properties{
		"permission-warning": "{RED}Nope.",
		"reply-prefix":       "{GOLD}[House] ",
		"alias.NOUN":         "yellow",
	}

	format := newFormat()
	format.ApplyProperties(props)

	if format.PermissionWarning != "{RED}Nope." {
		t.Errorf("permission warning: %q", format.PermissionWarning)
	}
	if format.UsageHeading != commands.DefaultUsageHeading {
		t.Errorf("usage heading should be unchanged: %q", format.UsageHeading)
	}
	if format.ReplyPrefix != "{GOLD}[House] " {
		t.Errorf("reply prefix: %q", format.ReplyPrefix)
	}
	if format.Aliases["NOUN"] != "yellow" {
		t.Errorf("aliases: %v", format.Aliases)
	}
}

func TestLoadProperties(t *testing.T) {
	t.Parallel()
	path := filepath.Join(t.TempDir(), "messages.properties")
	if err := os.WriteFile(path, []byte("# messages\nusage-heading={AQUA}Try:\nalias.ERROR=blurple\n"), 0o600); err != nil {
		t.Fatal(err)
	}

	format := newFormat()
	if err := format.LoadProperties(path); err == nil {
		t.Error("an invalid alias color should fail validation")
	}
	if strings.TrimSpace(format.UsageHeading) != "{AQUA}Try:" {
		t.Errorf("usage heading: %q", format.UsageHeading)
	}

	if err := newFormat().LoadProperties(filepath.Join(t.TempDir(), "missing.properties")); err == nil {
		t.Error("a missing file should be reported")
	}
}
