package commands

type (
	// Handler does the work of a sub-command. Returning a *Failure sends its
	// message to the sender; any other error is logged and not shown.
	Handler interface {
		Handle(call *Call) error
	}

	HandlerFunc func(call *Call) error

	unboundHandler struct{}
)

var (
	_ Handler = HandlerFunc(nil)
	_ Handler = unboundHandler{}
	_ Handler = (*Registry)(nil)
)

func (f HandlerFunc) Handle(call *Call) error {
	return f(call)
}

func (unboundHandler) Handle(*Call) error {
	return ErrUnbound
}
