// Package volsearch drives the resumable, index-assisted volume search
// primitive (searchfs on darwin). One logical search spans many calls:
// each call returns a buffer of opaque matches plus a condition telling
// the driver to stop, call again with the same continuation state, or
// throw the state away and start over because the catalog was busy.
package volsearch

import (
	"errors"
	"time"
)

// Defaults mirror the tuning of the search primitive's documented usage:
// small result batches when every match is resolved to a path, large ones
// when matches are only counted.
const (
	DefaultMaxMatchesResolve = 64
	DefaultMaxMatchesCount   = 4096
	DefaultTimeLimit         = time.Second
	DefaultMaxRestarts       = 5
)

// Request holds the immutable parameters of one logical search.
type Request struct {
	Volume  string
	Pattern string

	Exact  bool // match the whole name instead of substrings
	Negate bool // return names NOT matching the pattern

	MatchFiles bool
	MatchDirs  bool

	// MaxMatches bounds the matches returned per call; TimeLimit is the
	// per-call time budget honored by the primitive itself.
	MaxMatches int
	TimeLimit  time.Duration

	// MaxRestarts bounds busy-condition restarts before the search is
	// abandoned. Zero selects DefaultMaxRestarts.
	MaxRestarts int
}

// Match is an opaque (filesystem id, object id) pair identifying one
// matched object. It is only meaningful immediately after the call that
// produced it: resolution must happen before the next call reuses the
// result buffer.
type Match struct {
	FSID [2]int32
	Obj  uint64 // object id | generation<<32
}

// Status classifies the outcome of one search call.
type Status int

const (
	// StatusDone means the search is exhausted.
	StatusDone Status = iota
	// StatusMore means more results are available; call again with the
	// same continuation state.
	StatusMore
	// StatusBusy means the index was temporarily unavailable. The
	// continuation state is now invalid: the search must restart from
	// the beginning with a freshly zeroed state.
	StatusBusy
)

// Batch is the result of one search call. Results aliases a buffer
// reused by the next call.
type Batch struct {
	Matched int
	Results []Match
	Status  Status
}

// Searcher is the port over the search primitive. start=true begins a
// new search with a zeroed continuation state; start=false resumes the
// previous call's state. Implementations own the state and the result
// buffer; neither may be shared across concurrent searches.
type Searcher interface {
	Search(req *Request, start bool) (Batch, error)
}

// Resolver converts a Match back to an absolute path. Resolution may
// fail per-handle (the object was removed since the index saw it)
// without failing the batch.
type Resolver interface {
	Resolve(m Match) (string, error)
}

// Result summarizes one completed (or abandoned) logical search.
type Result struct {
	Matched       int64
	Restarts      int
	ResolveErrors int64
}

// ErrUnsupported is returned by NewSearcher and NewResolver on platforms
// without an indexed search facility.
var ErrUnsupported = errors.New("volsearch: indexed volume search is only available on macOS")

// ErrRestartBudget is returned when busy restarts exceed the request's
// budget.
var ErrRestartBudget = errors.New("volsearch: busy restart budget exceeded")
