package chat

import (
	"strings"

	"github.com/fatih/color"
)

var ansiAttributes = map[Color]color.Attribute{
	Black:         color.FgBlack,
	DarkBlue:      color.FgBlue,
	DarkGreen:     color.FgGreen,
	DarkAqua:      color.FgCyan,
	DarkRed:       color.FgRed,
	DarkPurple:    color.FgMagenta,
	Gold:          color.FgYellow,
	Gray:          color.FgWhite,
	DarkGray:      color.FgHiBlack,
	Blue:          color.FgHiBlue,
	Green:         color.FgHiGreen,
	Aqua:          color.FgHiCyan,
	Red:           color.FgHiRed,
	LightPurple:   color.FgHiMagenta,
	Yellow:        color.FgHiYellow,
	White:         color.FgHiWhite,
	Magic:         color.BlinkSlow,
	Bold:          color.Bold,
	Strikethrough: color.CrossedOut,
	Underline:     color.Underline,
	Italic:        color.Italic,
}

// ToANSI renders formatting codes as terminal escape sequences.
// A color code resets the active styles, as in the game client.
// Output is plain when fatih/color has detected a non-terminal output.
func ToANSI(message string) string {
	if !strings.ContainsRune(message, Marker) {
		return message
	}

	var (
		out    strings.Builder
		text   strings.Builder
		attrs  []color.Attribute
		marker bool
	)

	flush := func() {
		if text.Len() == 0 {
			return
		}
		if len(attrs) == 0 {
			out.WriteString(text.String())
		} else {
			out.WriteString(color.New(attrs...).Sprint(text.String()))
		}
		text.Reset()
	}

	for _, r := range message {
		if r == Marker {
			marker = true
			continue
		}
		if !marker {
			text.WriteRune(r)
			continue
		}
		marker = false
		code := Color(r)
		if r < 128 {
			code = Color(strings.ToLower(string(r))[0])
		}
		flush()
		switch attr, known := ansiAttributes[code]; {
		case code == Reset:
			attrs = nil
		case !known:
		case code.IsFormat():
			attrs = append(attrs, attr)
		default:
			attrs = []color.Attribute{attr}
		}
	}
	flush()

	return out.String()
}
