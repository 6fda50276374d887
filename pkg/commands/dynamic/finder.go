// Package dynamic binds methods of a handler object to sub-commands.
//
// A handler object lists its sub-command methods by implementing Marked:
//
//	func (h *HouseHandler) SubCommands() map[string]dynamic.Sub {
//		return map[string]dynamic.Sub{
//			"List": {Description: "list houses"},
//			"Info": {Name: "show", Usage: "<house>", MinArgs: 1},
//		}
//	}
//
//	func (h *HouseHandler) List(call *commands.Call) error { ... }
//
// Each marked method must take exactly one *commands.Call and return either
// nothing or an error. Methods that do not match are reported and skipped.
package dynamic

import (
	"fmt"
	"reflect"
	"strings"

	"github.com/Adirelle/mondo/pkg/commands"
	"github.com/apex/log"
	"golang.org/x/exp/maps"
	"golang.org/x/exp/slices"
)

type (
	// Sub describes how a method is registered.
	Sub struct {
		// Name defaults to the lowercased method name.
		Name        string
		Description string
		Usage       string
		// Permission is optional.
		Permission string
		MinArgs    int
		// NoConsole hides the sub-command from non-interactive senders.
		NoConsole bool
	}

	// Marked is implemented by handler objects, keyed by method name.
	Marked interface {
		SubCommands() map[string]Sub
	}

	// Entry is one row of an explicit registration table. Func follows the same
	// rules as a marked method; Sub.Name is required.
	Entry struct {
		Sub
		Func interface{}
	}

	Finder struct {
		Base   *commands.Registry
		Logger log.Interface
	}
)

var (
	ErrNotMarked = fmt.Errorf("handler does not implement %T", (*Marked)(nil))

	callType  = reflect.TypeOf((*commands.Call)(nil))
	errorType = reflect.TypeOf((*error)(nil)).Elem()
)

func NewFinder(base *commands.Registry) *Finder {
	return &Finder{Base: base, Logger: log.Log}
}

// AutoRegister registers the marked methods of handler into base.
func AutoRegister(base *commands.Registry, handler interface{}) int {
	return NewFinder(base).RegisterMethods(handler)
}

// RegisterMethods registers every well-formed marked method of handler, sorted
// by method name, and returns how many were registered.
func (f *Finder) RegisterMethods(handler interface{}) (count int) {
	marked, isMarked := handler.(Marked)
	if !isMarked {
		f.Logger.WithField("type", fmt.Sprintf("%T", handler)).WithError(ErrNotMarked).Warn("dynamic.unmarked")
		return 0
	}

	subs := marked.SubCommands()
	names := maps.Keys(subs)
	slices.Sort(names)

	value := reflect.ValueOf(handler)
	for _, methodName := range names {
		logger := f.Logger.WithFields(log.Fields{
			"method": methodName,
			"type":   fmt.Sprintf("%T", handler),
		})

		method := value.MethodByName(methodName)
		if !method.IsValid() {
			logger.Error("dynamic.missing")
			continue
		}
		if !isHandlerFunc(method.Type()) {
			logger.WithField("signature", method.Type().String()).Error("dynamic.signature")
			continue
		}

		sub := subs[methodName]
		if sub.Name == "" {
			sub.Name = strings.ToLower(methodName)
		}
		f.register(sub, method, logger)
		count++
	}
	return
}

// RegisterTable registers the entries in table order and returns how many were registered.
func (f *Finder) RegisterTable(entries []Entry) (count int) {
	for i, entry := range entries {
		logger := f.Logger.WithFields(log.Fields{
			"entry": i,
			"name":  entry.Name,
		})

		if entry.Name == "" {
			logger.Error("dynamic.unnamed")
			continue
		}
		fn := reflect.ValueOf(entry.Func)
		if !fn.IsValid() || fn.Kind() != reflect.Func || fn.IsNil() || !isHandlerFunc(fn.Type()) {
			logger.WithField("signature", fmt.Sprintf("%T", entry.Func)).Error("dynamic.signature")
			continue
		}

		f.register(entry.Sub, fn, logger)
		count++
	}
	return
}

func (f *Finder) register(info Sub, fn reflect.Value, logger log.Interface) {
	sub := f.Base.AddSub(info.Name, info.Permission).
		SetMinArgs(info.MinArgs).
		SetDescription(info.Description).
		SetUsage(info.Usage).
		SetHandler(bind(fn, logger))
	if !info.NoConsole {
		sub.AllowConsole()
	}
	logger.WithField("subcommand", info.Name).Debug("dynamic.registered")
}

func isHandlerFunc(t reflect.Type) bool {
	if t.Kind() != reflect.Func || t.IsVariadic() || t.NumIn() != 1 || t.In(0) != callType {
		return false
	}
	switch t.NumOut() {
	case 0:
		return true
	case 1:
		return t.Out(0) == errorType
	default:
		return false
	}
}

// bind wraps fn into a Handler. Errors and panics reach the Registry unchanged,
// after a diagnostic naming the method for the unexpected ones.
func bind(fn reflect.Value, logger log.Interface) commands.HandlerFunc {
	return func(call *commands.Call) error {
		defer func() {
			if recovered := recover(); recovered != nil {
				if _, isFailure := recovered.(*commands.Failure); !isFailure {
					logger.WithFields(call).WithField("panic", recovered).Error("dynamic.panic")
				}
				panic(recovered)
			}
		}()

		out := fn.Call([]reflect.Value{reflect.ValueOf(call)})
		if len(out) == 0 || out[0].IsNil() {
			return nil
		}

		err := out[0].Interface().(error)
		if outcome, _ := commands.Classify(err); outcome == commands.Unexpected {
			logger.WithFields(call).WithError(err).Error("dynamic.error")
		}
		return err
	}
}
