package commands

import (
	"errors"
	"fmt"
)

type (
	// Failure is the error a Handler returns to abort with a message for the sender.
	Failure struct {
		Message string
	}

	Outcome int
)

const (
	Succeeded Outcome = iota
	Declared
	Unexpected
)

var (
	ErrUnbound = &Failure{"This sub-command does not have an appropriate handler registered."}

	_ error        = (*Failure)(nil)
	_ fmt.Stringer = Outcome(0)
)

// Fail builds a Failure, interpolating args like fmt.Sprintf.
func Fail(format string, args ...interface{}) error {
	if len(args) == 0 {
		return &Failure{format}
	}
	return &Failure{fmt.Sprintf(format, args...)}
}

func (f *Failure) Error() string {
	return f.Message
}

// Classify tells apart success, declared failures and any other error.
func Classify(err error) (Outcome, *Failure) {
	if err == nil {
		return Succeeded, nil
	}
	var failure *Failure
	if errors.As(err, &failure) {
		return Declared, failure
	}
	return Unexpected, nil
}

func (o Outcome) String() string {
	switch o {
	case Succeeded:
		return "succeeded"
	case Declared:
		return "declared"
	case Unexpected:
		return "unexpected"
	default:
		panic(fmt.Sprintf("invalid Outcome value: %d", o))
	}
}
