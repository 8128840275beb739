// Package di provides a small, explicit dependency injection container keyed by type.
//
// A component is declared once with a Descriptor: a name, an ordered list of
// dependency types, and a constructor that receives the dependencies' handles.
// Building a descriptor resolves those dependencies against the handles the
// Container already tracks, runs the constructor, and tracks the result as a
// shared Handle for the component's output type.
//
//	var MySQL = di.Provide0("MySQL", func() Database { return Database{Name: "MySQL"} })
//	var Web = di.Provide1("WebServer", func(db *di.Handle[Database]) WebServer {
//	    return WebServer{DB: db}
//	})
//
//	c := di.New()
//	if _, err := di.Build(c, MySQL); err != nil { ... }
//	web, err := di.Build(c, Web)
//
// Design goals:
//   - Explicit order: the caller builds components in dependency order. The
//     container never builds a missing dependency on its own and does not sort
//     a graph; a missing dependency fails fast with MissingDependencyError.
//   - No wrong types: handles are stored and looked up by the same type
//     identity, so a lookup can never return a value of another type.
//   - Shared, guarded instances: every consumer of a component holds the same
//     Handle; mutation goes through the handle's guard.
//
// # Rebuilds
//
// Building a component again tracks a new handle. Handles obtained earlier are
// not retargeted: a WebServer built against the first Database keeps it until
// the WebServer itself is rebuilt. Both instances live as long as someone
// holds them.
//
// # Cycles
//
// There is no cycle detection. Components that depend on each other cannot be
// built until one of the types is provided from outside with Supply, and every
// Build in the cycle fails with MissingDependencyError until then.
//
// # Catalogs and plans
//
// A Catalog holds descriptors by name, and Catalog.BuildPlan builds a list of
// names in the given order. This lets bootstrap code keep its build order in
// configuration while the container stays order-agnostic.
//
// # Observability
//
// WithLogger, WithTracerProvider and WithDispatcher attach slog logging,
// OpenTelemetry spans (one per build) and Built/BuildFailed events.
//
// # Concurrency
//
// Wiring (Build, Supply, Get) is expected to happen from one goroutine during
// bootstrap and is not synchronized. Handles are safe for concurrent use.
//
// Import
//
//	"github.com/sghaida/typereg/di"
package di
