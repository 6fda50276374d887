package discord

import (
	"errors"
	"fmt"
	"strconv"
)

// Snowflake is a Discord identifier.
// cf https://discord.com/developers/docs/reference#snowflakes
type Snowflake string

const (
	// The first second of the Discord epoch
	discordEpochPlusOne uint64 = 1 << 22
)

var ErrInvalidSnowflake = errors.New("invalid snowflake")

func (s Snowflake) String() string {
	return string(s)
}

func (s Snowflake) GoString() string {
	return "<snowflake>"
}

func (s Snowflake) MarshalText() ([]byte, error) {
	return []byte(s), nil
}

func (s *Snowflake) UnmarshalText(text []byte) error {
	uintValue, err := strconv.ParseUint(string(text), 10, 64)
	if err != nil {
		return fmt.Errorf("%w: %s", ErrInvalidSnowflake, err)
	} else if uintValue < discordEpochPlusOne {
		return ErrInvalidSnowflake
	}
	*s = Snowflake(text)
	return nil
}
