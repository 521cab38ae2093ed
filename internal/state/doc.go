// Package state holds the process-wide state containers of the storefront:
// the commerce store (catalog, filters, wishlist, cart), the identity store
// (user directory and session), and the shop and store-product catalogs.
//
// Every container owns one immutable state record. Mutations run under the
// container mutex, build a new record, publish it with a version bump and
// write it to the container's durable slot. Readers never lock: they load the
// current record and read derived views that are memoized per version, so a
// reader always sees the result of the latest completed mutation and never a
// partially applied one.
//
// Persistence is best effort. A failed slot write is logged and counted but
// never fails the mutation; in-memory state stays authoritative.
package state
