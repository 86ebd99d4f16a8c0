// Package analytics holds the pure metric functions behind the placement dashboards.
//
// Every function here is deterministic given its inputs. Callers fetch facts through a
// repository.EntityAccessor and hand the slices in; nothing in this package performs
// I/O, so live and snapshot data produce the same numbers for the same facts.
package analytics
