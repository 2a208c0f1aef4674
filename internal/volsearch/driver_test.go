package volsearch

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// scriptedSearcher replays a canned sequence of call outcomes and
// records the start flag of every call it receives.
type scriptedSearcher struct {
	script     []Batch
	err        error // returned once the script is exhausted
	startFlags []bool
}

func (s *scriptedSearcher) Search(_ *Request, start bool) (Batch, error) {
	s.startFlags = append(s.startFlags, start)
	if len(s.script) == 0 {
		if s.err != nil {
			return Batch{}, s.err
		}
		return Batch{Status: StatusDone}, nil
	}
	b := s.script[0]
	s.script = s.script[1:]
	return b, nil
}

// mapResolver resolves matches by object id from a fixed table.
type mapResolver struct {
	paths map[uint64]string
}

func (r *mapResolver) Resolve(m Match) (string, error) {
	p, ok := r.paths[m.Obj]
	if !ok {
		return "", errors.New("stale handle")
	}
	return p, nil
}

func TestDriverContinuesOnMore(t *testing.T) {
	s := &scriptedSearcher{script: []Batch{
		{Matched: 10, Status: StatusMore},
		{Matched: 5, Status: StatusMore},
		{Matched: 2, Status: StatusDone},
	}}

	res, err := (&Driver{Searcher: s}).Run(Request{Volume: "/", Pattern: "x"})
	require.NoError(t, err)
	assert.Equal(t, int64(17), res.Matched)
	assert.Equal(t, 0, res.Restarts)
	// Only the first call begins the search; the rest resume.
	assert.Equal(t, []bool{true, false, false}, s.startFlags)
}

// A busy condition invalidates the continuation state: exactly one
// reset, and totals only reflect calls after it.
func TestDriverBusyRestartsOnce(t *testing.T) {
	s := &scriptedSearcher{script: []Batch{
		{Matched: 10, Status: StatusMore},
		{Matched: 10, Status: StatusMore},
		{Matched: 3, Status: StatusBusy},
		{Matched: 7, Status: StatusMore},
		{Matched: 4, Status: StatusDone},
	}}

	res, err := (&Driver{Searcher: s}).Run(Request{Volume: "/", Pattern: "x"})
	require.NoError(t, err)
	// Pre-busy counts (10+10+3) are discarded, not double-counted.
	assert.Equal(t, int64(11), res.Matched)
	assert.Equal(t, 1, res.Restarts)
	assert.Equal(t, []bool{true, false, false, true, false}, s.startFlags)
}

func TestDriverBusyBudgetExceeded(t *testing.T) {
	busy := make([]Batch, 10)
	for i := range busy {
		busy[i] = Batch{Status: StatusBusy}
	}
	s := &scriptedSearcher{script: busy}

	res, err := (&Driver{Searcher: s}).Run(Request{Volume: "/", Pattern: "x", MaxRestarts: 5})
	require.ErrorIs(t, err, ErrRestartBudget)
	assert.Equal(t, 6, res.Restarts)
	// 5 restarts are allowed: the first call plus 5 restarted calls ran,
	// and the 6th busy condition aborted without another call.
	assert.Len(t, s.startFlags, 6)
	for _, f := range s.startFlags {
		assert.True(t, f, "every post-busy call must begin a fresh search")
	}
}

func TestDriverBudgetBoundaryIsExact(t *testing.T) {
	// Exactly MaxRestarts busy conditions followed by success completes.
	s := &scriptedSearcher{script: []Batch{
		{Status: StatusBusy},
		{Status: StatusBusy},
		{Matched: 1, Status: StatusDone},
	}}

	res, err := (&Driver{Searcher: s}).Run(Request{Volume: "/", Pattern: "x", MaxRestarts: 2})
	require.NoError(t, err)
	assert.Equal(t, int64(1), res.Matched)
	assert.Equal(t, 2, res.Restarts)
}

func TestDriverFatalError(t *testing.T) {
	wantErr := errors.New("volume does not support searching")
	s := &scriptedSearcher{
		script: []Batch{{Matched: 4, Status: StatusMore}},
		err:    wantErr,
	}

	res, err := (&Driver{Searcher: s}).Run(Request{Volume: "/net", Pattern: "x"})
	require.ErrorIs(t, err, wantErr)
	assert.Equal(t, int64(4), res.Matched)
	assert.Len(t, s.startFlags, 2)
}

func TestDriverResolvesMatchesPerCall(t *testing.T) {
	s := &scriptedSearcher{script: []Batch{
		{
			Matched: 2,
			Results: []Match{{Obj: 1}, {Obj: 2}},
			Status:  StatusMore,
		},
		{
			Matched: 2,
			Results: []Match{{Obj: 3}, {Obj: 99}}, // 99 is stale
			Status:  StatusDone,
		},
	}}
	r := &mapResolver{paths: map[uint64]string{
		1: "/a/one",
		2: "/a/two",
		3: "/b/three",
	}}

	var paths []string
	d := &Driver{
		Searcher: s,
		Resolver: r,
		Emit:     func(p string) { paths = append(paths, p) },
	}

	res, err := d.Run(Request{Volume: "/", Pattern: "o"})
	require.NoError(t, err)
	assert.Equal(t, []string{"/a/one", "/a/two", "/b/three"}, paths)
	assert.Equal(t, int64(4), res.Matched)
	// One stale handle was skipped without aborting the search.
	assert.Equal(t, int64(1), res.ResolveErrors)
}

func TestDriverDefaultRestartBudget(t *testing.T) {
	busy := make([]Batch, 20)
	for i := range busy {
		busy[i] = Batch{Status: StatusBusy}
	}
	s := &scriptedSearcher{script: busy}

	res, err := (&Driver{Searcher: s}).Run(Request{Volume: "/", Pattern: "x"})
	require.ErrorIs(t, err, ErrRestartBudget)
	assert.Equal(t, DefaultMaxRestarts+1, res.Restarts)
	assert.Len(t, s.startFlags, DefaultMaxRestarts+1)
}
