package chat

import (
	"fmt"
	"strings"
)

type (
	// Color is a Minecraft legacy formatting code, either a color or a text style.
	Color byte
)

// Marker introduces a formatting code in chat messages.
const Marker = '§'

const (
	Black         Color = '0'
	DarkBlue      Color = '1'
	DarkGreen     Color = '2'
	DarkAqua      Color = '3'
	DarkRed       Color = '4'
	DarkPurple    Color = '5'
	Gold          Color = '6'
	Gray          Color = '7'
	DarkGray      Color = '8'
	Blue          Color = '9'
	Green         Color = 'a'
	Aqua          Color = 'b'
	Red           Color = 'c'
	LightPurple   Color = 'd'
	Yellow        Color = 'e'
	White         Color = 'f'
	Magic         Color = 'k'
	Bold          Color = 'l'
	Strikethrough Color = 'm'
	Underline     Color = 'n'
	Italic        Color = 'o'
	Reset         Color = 'r'
)

var (
	colorNames = map[Color]string{
		Black:         "BLACK",
		DarkBlue:      "DARK_BLUE",
		DarkGreen:     "DARK_GREEN",
		DarkAqua:      "DARK_AQUA",
		DarkRed:       "DARK_RED",
		DarkPurple:    "DARK_PURPLE",
		Gold:          "GOLD",
		Gray:          "GRAY",
		DarkGray:      "DARK_GRAY",
		Blue:          "BLUE",
		Green:         "GREEN",
		Aqua:          "AQUA",
		Red:           "RED",
		LightPurple:   "LIGHT_PURPLE",
		Yellow:        "YELLOW",
		White:         "WHITE",
		Magic:         "MAGIC",
		Bold:          "BOLD",
		Strikethrough: "STRIKETHROUGH",
		Underline:     "UNDERLINE",
		Italic:        "ITALIC",
		Reset:         "RESET",
	}

	colorsByName = make(map[string]Color, len(colorNames))

	_ fmt.Stringer   = Color(0)
	_ fmt.GoStringer = Color(0)
)

func init() {
	for color, name := range colorNames {
		colorsByName[name] = color
	}
}

// Colors lists every known formatting code.
func Colors() []Color {
	colors := make([]Color, 0, len(colorNames))
	for color := range colorNames {
		colors = append(colors, color)
	}
	return colors
}

// ParseColor accepts a color name in any case ("red", "LIGHT_PURPLE") or a bare code character.
func ParseColor(name string) (Color, bool) {
	if color, found := colorsByName[strings.ToUpper(name)]; found {
		return color, true
	}
	if len(name) == 1 {
		if _, found := colorNames[Color(strings.ToLower(name)[0])]; found {
			return Color(strings.ToLower(name)[0]), true
		}
	}
	return 0, false
}

func (c Color) Name() string {
	return colorNames[c]
}

func (c Color) IsFormat() bool {
	return c >= Magic && c <= Italic
}

func (c Color) String() string {
	return string([]rune{Marker, rune(c)})
}

func (c Color) GoString() string {
	return fmt.Sprintf("chat.Color(%s)", c.Name())
}

// Strip removes all formatting codes from the message.
func Strip(message string) string {
	if !strings.ContainsRune(message, Marker) {
		return message
	}
	b := strings.Builder{}
	b.Grow(len(message))
	skip := false
	for _, r := range message {
		switch {
		case skip:
			skip = false
		case r == Marker:
			skip = true
		default:
			b.WriteRune(r)
		}
	}
	return b.String()
}
