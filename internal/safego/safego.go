// Package safego turns panics in background work into logged errors, so a
// bad scene in watch mode reports a failure instead of killing the process.
package safego

import (
	"fmt"
	"runtime/debug"
	"sync"

	"github.com/zscript/textframe/internal/logging"
)

// PanicHandler receives panic details from recovered calls.
type PanicHandler func(name string, recovered any, stack []byte)

var (
	panicHandlerMu sync.RWMutex
	panicHandler   PanicHandler
)

// SetPanicHandler registers a global handler for recovered panics.
func SetPanicHandler(handler PanicHandler) {
	panicHandlerMu.Lock()
	panicHandler = handler
	panicHandlerMu.Unlock()
}

// PanicError is returned by Call when fn panicked.
type PanicError struct {
	Name      string
	Recovered any
	Stack     []byte
}

func (e *PanicError) Error() string {
	return fmt.Sprintf("panic in %s: %v", e.Name, e.Recovered)
}

// Call runs fn and converts a panic into a *PanicError.
// This does not recover from runtime-fatal errors (e.g., concurrent map writes).
func Call(name string, fn func() error) (err error) {
	defer func() {
		r := recover()
		if r == nil {
			return
		}
		if name == "" {
			name = "goroutine"
		}
		pe := &PanicError{Name: name, Recovered: r, Stack: debug.Stack()}
		logging.Error("%v\n%s", pe, pe.Stack)
		notify(pe)
		err = pe
	}()
	return fn()
}

func notify(pe *PanicError) {
	panicHandlerMu.RLock()
	handler := panicHandler
	panicHandlerMu.RUnlock()
	if handler == nil {
		return
	}
	defer func() { _ = recover() }()
	handler(pe.Name, pe.Recovered, pe.Stack)
}

// Go runs fn in a new goroutine with panic recovery. Errors are logged and
// delivered on the returned channel, which receives exactly one value.
func Go(name string, fn func() error) <-chan error {
	done := make(chan error, 1)
	go func() {
		err := Call(name, fn)
		if err != nil {
			logging.WithError(err, name)
		}
		done <- err
	}()
	return done
}
