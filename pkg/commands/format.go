package commands

import (
	"fmt"
	"strings"

	"github.com/Adirelle/mondo/pkg/chat"
	properties "github.com/dmotylev/goproperties"
	"github.com/go-playground/validator/v10"
)

// FormatConfig customizes the messages a Registry sends. Setters chain.
type FormatConfig struct {
	PermissionWarning string `json:"permissionWarning" validate:"required"`
	UsageHeading      string `json:"usageHeading"`
	ReplyPrefix       string `json:"replyPrefix,omitempty"`
	// Aliases maps alias names without brackets ("ERROR") to color names ("RED").
	Aliases map[string]string `json:"aliases,omitempty" validate:"dive,keys,required,endkeys,chatcolor"`

	// Colorizer holds the aliases and the template cache. Registries sharing a
	// FormatConfig share it; a nil Colorizer is replaced by a new one.
	Colorizer *chat.Colorizer `json:"-" validate:"-"`
}

const (
	DefaultPermissionWarning = "{WARNING}You do not have permissions for this command."
	DefaultUsageHeading      = "{HEADER}Usage: "

	aliasPropertyPrefix = "alias."
)

var (
	defaultAliases = []struct {
		alias string
		color chat.Color
	}{
		{"{HEADER}", chat.Gold},
		{"{USAGE}", chat.LightPurple},
		{"{WARNING}", chat.DarkRed},
		{"{ERROR}", chat.Red},
		{"{NOUN}", chat.Aqua},
		{"{VERB}", chat.Gray},
	}

	validate = newValidator()
)

func NewFormatConfig() *FormatConfig {
	return &FormatConfig{
		PermissionWarning: DefaultPermissionWarning,
		UsageHeading:      DefaultUsageHeading,
		Colorizer:         chat.NewColorizer(),
	}
}

func newValidator() *validator.Validate {
	v := validator.New()
	_ = v.RegisterValidation("chatcolor", func(fl validator.FieldLevel) bool {
		_, ok := chat.ParseColor(fl.Field().String())
		return ok
	})
	return v
}

func (f *FormatConfig) SetPermissionWarning(permissionWarning string) *FormatConfig {
	f.PermissionWarning = permissionWarning
	return f
}

func (f *FormatConfig) SetUsageHeading(usageHeading string) *FormatConfig {
	f.UsageHeading = usageHeading
	return f
}

func (f *FormatConfig) SetReplyPrefix(replyPrefix string) *FormatConfig {
	f.ReplyPrefix = replyPrefix
	return f
}

func (f *FormatConfig) SetAlias(name string, color chat.Color) *FormatConfig {
	if f.Aliases == nil {
		f.Aliases = make(map[string]string)
	}
	f.Aliases[strings.Trim(name, "{}")] = color.Name()
	return f
}

func (f *FormatConfig) Validate() error {
	return validate.Struct(f)
}

// LoadProperties reads overrides from a Java-style properties file.
func (f *FormatConfig) LoadProperties(path string) error {
	props, err := properties.Load(path)
	if err != nil {
		return fmt.Errorf("could not read message properties `%s`: %w", path, err)
	}
	f.ApplyProperties(props)
	return f.Validate()
}

// ApplyProperties recognizes permission-warning, usage-heading, reply-prefix and alias.<NAME>=<COLOR>.
func (f *FormatConfig) ApplyProperties(props properties.Properties) {
	f.PermissionWarning = props.String("permission-warning", f.PermissionWarning)
	f.UsageHeading = props.String("usage-heading", f.UsageHeading)
	f.ReplyPrefix = props.String("reply-prefix", f.ReplyPrefix)
	for key, value := range props {
		if name := strings.TrimPrefix(key, aliasPropertyPrefix); name != key && name != "" {
			if f.Aliases == nil {
				f.Aliases = make(map[string]string)
			}
			f.Aliases[name] = strings.TrimSpace(value)
		}
	}
}

func (f *FormatConfig) colorizer() *chat.Colorizer {
	if f.Colorizer == nil {
		f.Colorizer = chat.NewColorizer()
	}
	return f.Colorizer
}

func (f *FormatConfig) registerAliases() {
	c := f.colorizer()
	for _, a := range defaultAliases {
		c.RegisterDefaultAlias(a.alias, a.color)
	}
	for name, colorName := range f.Aliases {
		if color, ok := chat.ParseColor(colorName); ok {
			c.RegisterAlias("{"+name+"}", color)
		}
	}
}
