// Package typereg is a set of small registries keyed by Go type.
//
// The packages build on each other:
//
//   - typeid: a stable, ordered identity per Go type
//   - hmap: a heterogeneous map holding at most one value per type
//   - event: a synchronous dispatcher with listeners registered per event type
//   - di: an explicit dependency injection container that builds components
//     in the order the caller chooses and shares them through guarded handles
//
// The goal is to keep wiring explicit (usually in your composition root / main),
// avoid type assertions at call sites, and keep the surface area intentionally small.
//
// See subpackages:
//   - examples/webapp: a composition root with swappable database components
//   - cmd/diplan: builds the webapp from a YAML plan file
package typereg
