package event

import (
	"log/slog"
	"runtime/debug"
	"sync"

	"github.com/sghaida/typereg/hmap"
	"github.com/sghaida/typereg/typeid"
)

// Listener handles one event of type E.
type Listener[E any] func(*E)

// listeners is the slot type stored in the dispatcher's map. Using a distinct
// generic type keeps E's sequence from colliding with any other stored value.
type listeners[E any] []Listener[E]

// Dispatcher delivers events to listeners registered for the event's type.
type Dispatcher struct {
	mu       sync.RWMutex
	slots    hmap.Map // typeid.Of[listeners[E]]() -> listeners[E]
	logger   *slog.Logger
	recovers bool
}

// Option configures a Dispatcher.
type Option func(*Dispatcher)

// WithLogger sets the logger used for panic reports. Defaults to a discarding logger.
func WithLogger(l *slog.Logger) Option {
	return func(d *Dispatcher) {
		if l != nil {
			d.logger = l
		}
	}
}

// WithPanicRecovery makes Trigger recover listener panics, log them, and continue
// with the remaining listeners.
func WithPanicRecovery() Option {
	return func(d *Dispatcher) { d.recovers = true }
}

// NewDispatcher creates an empty Dispatcher.
func NewDispatcher(opts ...Option) *Dispatcher {
	d := &Dispatcher{logger: slog.New(slog.DiscardHandler)}
	for _, opt := range opts {
		opt(d)
	}
	return d
}

// AddListener appends fn to the listeners for E. A nil fn is ignored.
func AddListener[E any](d *Dispatcher, fn func(*E)) {
	if fn == nil {
		return
	}
	d.mu.Lock()
	defer d.mu.Unlock()

	seq := hmap.GetOrInit[listeners[E]](&d.slots, nil)
	*seq = append(*seq, fn)
}

// Trigger calls every listener for E in registration order, passing each a
// pointer to the same copy of payload. It returns once all listeners have run.
func Trigger[E any](d *Dispatcher, payload E) {
	d.mu.RLock()
	// The slice header is a snapshot: later appends never touch elements [0:len).
	seq, _ := hmap.Get[listeners[E]](&d.slots)
	d.mu.RUnlock()

	if len(seq) == 0 {
		return
	}

	p := &payload
	for _, fn := range seq {
		if d.recovers {
			safeCall(d, fn, p)
			continue
		}
		fn(p)
	}
}

// ListenerCount returns how many listeners are registered for E.
func ListenerCount[E any](d *Dispatcher) int {
	d.mu.RLock()
	defer d.mu.RUnlock()
	seq, _ := hmap.Get[listeners[E]](&d.slots)
	return len(seq)
}

func safeCall[E any](d *Dispatcher, fn Listener[E], payload *E) {
	defer func() {
		if r := recover(); r != nil {
			d.logger.Error("event listener panicked",
				"event", typeid.Of[E]().String(),
				"panic", r,
				"stack", string(debug.Stack()))
		}
	}()
	fn(payload)
}
