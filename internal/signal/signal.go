package signal

import (
	"context"
	"os"
	"os/signal"
)

// interruptChannel receives the shutdown signals.
var interruptChannel chan os.Signal

// addHandlerChannel registers interrupt handlers with mainInterruptHandler.
var addHandlerChannel = make(chan func())

// InterruptHandlersDone is closed after all interrupt handlers ran.
var InterruptHandlersDone = make(chan struct{})

var simulateInterruptChannel = make(chan struct{}, 1)

// signals that trigger a clean shutdown. signalsigterm.go adds SIGTERM on unix.
var signals = []os.Signal{os.Interrupt}

// SimulateInterrupt starts the shutdown as if a signal had been received.
func SimulateInterrupt() {
	select {
	case simulateInterruptChannel <- struct{}{}:
	default:
	}
}

// mainInterruptHandler runs the registered handlers in LIFO order on the
// first signal. It must be run as a goroutine.
func mainInterruptHandler() {
	var interruptCallbacks []func()
	invokeCallbacks := func() {
		for i := range interruptCallbacks {
			idx := len(interruptCallbacks) - 1 - i
			interruptCallbacks[idx]()
		}
		close(InterruptHandlersDone)
	}

	for {
		select {
		case <-interruptChannel:
			invokeCallbacks()
			return
		case <-simulateInterruptChannel:
			invokeCallbacks()
			return
		case handler := <-addHandlerChannel:
			interruptCallbacks = append(interruptCallbacks, handler)
		}
	}
}

// AddInterruptHandler adds a handler to call on shutdown.
func AddInterruptHandler(handler func()) {
	if interruptChannel == nil {
		interruptChannel = make(chan os.Signal, 1)
		signal.Notify(interruptChannel, signals...)
		go mainInterruptHandler()
	}
	addHandlerChannel <- handler
}

// InterruptRequested reports whether the shutdown handlers have run.
func InterruptRequested() bool {
	select {
	case <-InterruptHandlersDone:
		return true
	default:
	}
	return false
}

// WithInterrupt returns a context canceled when shutdown starts.
func WithInterrupt(ctx context.Context) (context.Context, context.CancelFunc) {
	ctx, cancel := context.WithCancel(ctx)
	AddInterruptHandler(cancel)
	return ctx, cancel
}
