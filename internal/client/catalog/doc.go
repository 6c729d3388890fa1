// Package catalog is the offline-first game catalog.
//
// Manager reconciles the local games table with the remote catalog API. The
// local store is the source of truth for reads; the network is used to fill
// misses and refresh the cache when the reachability probe says it is up.
// Every record enters the cache through Normalize, which guarantees a
// non-empty primary key and non-nil list fields.
//
// No Manager method returns a bare error. Each returns a Result carrying the
// best-effort value, where it came from and, when something degraded, why.
package catalog
