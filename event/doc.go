// Package event provides a synchronous event dispatcher keyed by payload type.
//
// Listeners are registered for an event type E and receive a *E. Because the
// event type itself is the lookup key, a listener for E can only ever be called
// with an E, and triggering E can only reach E's listeners. There are no string
// event names to mistype and no payload assertions in listener bodies.
//
// # Basic Usage
//
//	type Click struct{ X, Y int }
//
//	d := event.NewDispatcher()
//
//	event.AddListener(d, func(c *Click) {
//	    log.Printf("click at %d,%d", c.X, c.Y)
//	})
//
//	event.Trigger(d, Click{X: 10, Y: 20})
//
// # Ordering and Delivery
//
// Trigger calls every listener registered for E exactly once, in registration
// order, and returns only after the last one has run. All listeners receive a
// pointer to the same payload instance. Triggering a type with no listeners is
// a no-op.
//
// Listeners cannot be removed; the sequence for a type only grows.
//
// # Failures
//
// Listeners have no error channel. By default a panicking listener unwinds
// through Trigger like any other function call. With WithPanicRecovery the
// panic is logged with its stack and delivery continues with the next listener.
//
// # Thread Safety
//
// A Dispatcher is safe for concurrent use. Trigger works on a snapshot of the
// listener sequence, so a listener may register further listeners; they are
// first called on the next Trigger.
package event
