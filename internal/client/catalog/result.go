package catalog

import "errors"

// ErrOffline is the reason recorded when the remote API was skipped because
// the reachability probe reported no network.
var ErrOffline = errors.New("network unreachable")

// ErrCacheWrite marks fetched records that could not be stored locally.
var ErrCacheWrite = errors.New("cache write failed")

// Source tells where a Result value came from.
type Source string

const (
	SourceRemote Source = "remote"
	SourceCache  Source = "cache"
	// SourceLocal marks values computed on the device, such as offline scoring.
	SourceLocal Source = "local"
	SourceNone  Source = "none"
)

// Result is the outcome of a catalog operation. Err is non-nil whenever the
// preferred path failed, even if a fallback still produced a Value.
type Result[T any] struct {
	Value  T
	Source Source
	Err    error
}

// Empty reports whether no value could be produced at all.
func (r Result[T]) Empty() bool {
	return r.Source == SourceNone
}

// Degraded reports whether a failure was recorded on the way.
func (r Result[T]) Degraded() bool {
	return r.Err != nil
}
