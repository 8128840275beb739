package event_test

import (
	"bytes"
	"log/slog"
	"sync"
	"testing"

	"github.com/sourcegraph/conc"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"pgregory.net/rapid"

	"github.com/sghaida/typereg/event"
)

type Click struct {
	X, Y   int
	Button string
}

type KeyPress struct {
	Key rune
}

// TestTrigger_ClickScenario: two Click listeners run in order and see the same payload;
// a KeyPress listener is never reached.
func TestTrigger_ClickScenario(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()

	var (
		order []string
		seen  []*Click
	)
	event.AddListener(d, func(c *Click) {
		order = append(order, "A")
		seen = append(seen, c)
	})
	event.AddListener(d, func(c *Click) {
		order = append(order, "B")
		seen = append(seen, c)
	})
	event.AddListener(d, func(*KeyPress) {
		t.Error("KeyPress listener must not be invoked by a Click trigger")
	})

	event.Trigger(d, Click{X: 3, Y: 4, Button: "left"})

	require.Equal(t, []string{"A", "B"}, order)
	require.Len(t, seen, 2)
	assert.Same(t, seen[0], seen[1], "listeners should share one payload instance")
	assert.Equal(t, Click{X: 3, Y: 4, Button: "left"}, *seen[1])
}

// TestTrigger_NoListeners verifies triggering an unknown type is a no-op.
func TestTrigger_NoListeners(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	assert.NotPanics(t, func() { event.Trigger(d, KeyPress{Key: 'q'}) })
	assert.Equal(t, 0, event.ListenerCount[KeyPress](d))
}

// TestTrigger_EachListenerOncePerTrigger verifies no listener is called twice for one trigger.
func TestTrigger_EachListenerOncePerTrigger(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	counts := make([]int, 3)
	for i := range counts {
		event.AddListener(d, func(*Click) { counts[i]++ })
	}

	event.Trigger(d, Click{})
	event.Trigger(d, Click{})

	assert.Equal(t, []int{2, 2, 2}, counts)
}

// TestAddListener_NilIgnored verifies nil listeners are not registered.
func TestAddListener_NilIgnored(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	event.AddListener[Click](d, nil)

	assert.Equal(t, 0, event.ListenerCount[Click](d))
	assert.NotPanics(t, func() { event.Trigger(d, Click{}) })
}

// TestListenerCount counts per event type.
func TestListenerCount(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	event.AddListener(d, func(*Click) {})
	event.AddListener(d, func(*Click) {})
	event.AddListener(d, func(*KeyPress) {})

	assert.Equal(t, 2, event.ListenerCount[Click](d))
	assert.Equal(t, 1, event.ListenerCount[KeyPress](d))
}

// TestTrigger_ListenerAddedDuringDispatch runs on the next trigger only.
func TestTrigger_ListenerAddedDuringDispatch(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	late := 0
	added := false
	event.AddListener(d, func(*Click) {
		if !added {
			added = true
			event.AddListener(d, func(*Click) { late++ })
		}
	})

	event.Trigger(d, Click{})
	assert.Equal(t, 0, late)

	event.Trigger(d, Click{})
	assert.Equal(t, 1, late)
}

//
// -----------------------------------------------------------------------------
// Failures
// -----------------------------------------------------------------------------

// TestTrigger_PanicPropagatesByDefault verifies a listener panic reaches the caller unchanged.
func TestTrigger_PanicPropagatesByDefault(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	after := false
	event.AddListener(d, func(*Click) { panic("boom") })
	event.AddListener(d, func(*Click) { after = true })

	require.PanicsWithValue(t, "boom", func() { event.Trigger(d, Click{}) })
	assert.False(t, after)
}

// TestTrigger_PanicRecovery verifies recovered panics are logged and later listeners still run.
func TestTrigger_PanicRecovery(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	logger := slog.New(slog.NewJSONHandler(&buf, nil))
	d := event.NewDispatcher(event.WithPanicRecovery(), event.WithLogger(logger))

	after := false
	event.AddListener(d, func(*Click) { panic("boom") })
	event.AddListener(d, func(*Click) { after = true })

	require.NotPanics(t, func() { event.Trigger(d, Click{}) })
	assert.True(t, after)
	assert.Contains(t, buf.String(), "event listener panicked")
	assert.Contains(t, buf.String(), "event_test.Click")
	assert.Contains(t, buf.String(), "boom")
}

// TestWithLogger_NilKeepsDefault verifies a nil logger does not break recovery.
func TestWithLogger_NilKeepsDefault(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher(event.WithLogger(nil), event.WithPanicRecovery())
	event.AddListener(d, func(*Click) { panic("boom") })

	assert.NotPanics(t, func() { event.Trigger(d, Click{}) })
}

//
// -----------------------------------------------------------------------------
// Concurrency
// -----------------------------------------------------------------------------

// TestDispatcher_ConcurrentUse exercises AddListener and Trigger from many goroutines.
func TestDispatcher_ConcurrentUse(t *testing.T) {
	t.Parallel()

	d := event.NewDispatcher()
	var (
		mu    sync.Mutex
		calls int
	)

	var wg conc.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Go(func() {
			event.AddListener(d, func(*Click) {
				mu.Lock()
				calls++
				mu.Unlock()
			})
		})
		wg.Go(func() { event.Trigger(d, Click{}) })
	}
	wg.Wait()

	assert.Equal(t, 16, event.ListenerCount[Click](d))

	mu.Lock()
	before := calls
	mu.Unlock()
	event.Trigger(d, Click{})
	mu.Lock()
	assert.Equal(t, before+16, calls)
	mu.Unlock()
}

//
// -----------------------------------------------------------------------------
// Properties
// -----------------------------------------------------------------------------

// TestProperty_TriggerReachesExactlyItsListeners checks that for any registration
// sequence across two event types, a trigger invokes exactly the listeners of its
// own type, each once, in registration order.
func TestProperty_TriggerReachesExactlyItsListeners(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		d := event.NewDispatcher()
		var calls []int

		var clickIdx, keyIdx []int
		n := rapid.IntRange(0, 30).Draw(t, "listeners")
		for i := 0; i < n; i++ {
			if rapid.Bool().Draw(t, "isClick") {
				event.AddListener(d, func(*Click) { calls = append(calls, i) })
				clickIdx = append(clickIdx, i)
			} else {
				event.AddListener(d, func(*KeyPress) { calls = append(calls, i) })
				keyIdx = append(keyIdx, i)
			}
		}

		calls = nil
		event.Trigger(d, Click{})
		if !equalInts(calls, clickIdx) {
			t.Fatalf("click trigger called %v, want %v", calls, clickIdx)
		}

		calls = nil
		event.Trigger(d, KeyPress{})
		if !equalInts(calls, keyIdx) {
			t.Fatalf("keypress trigger called %v, want %v", calls, keyIdx)
		}
	})
}

func equalInts(a, b []int) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
