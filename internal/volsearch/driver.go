package volsearch

import "log/slog"

// driverState is the explicit state of one logical search. The busy and
// more-available conditions are handled here, uniformly, so cursor
// invalidation and the restart budget cannot be applied inconsistently.
type driverState int

const (
	stateStart driverState = iota
	stateContinuing
	stateExhausted
	stateFatal
)

// Driver runs one logical search to completion across busy and
// more-available conditions. With a Resolver set, every match is
// resolved to a path and handed to Emit before the next call overwrites
// the result buffer; without one, only match counts are accumulated.
type Driver struct {
	Searcher Searcher
	Resolver Resolver
	Emit     func(path string)
}

// Run drives req until the search is exhausted or fatal. On a busy
// condition the continuation state is discarded, accumulated counts are
// reset (the restarted search re-reports everything), and the whole
// search begins again, at most req.MaxRestarts times.
//
// The returned Result is valid even on error: it holds the best-effort
// totals at the point the search died.
func (d *Driver) Run(req Request) (Result, error) {
	maxRestarts := req.MaxRestarts
	if maxRestarts <= 0 {
		maxRestarts = DefaultMaxRestarts
	}

	var res Result
	st := stateStart

	for {
		batch, err := d.Searcher.Search(&req, st == stateStart)
		if err != nil {
			// stateFatal: any error other than the retryable conditions
			// ends the search immediately.
			return res, err
		}

		if d.Resolver != nil {
			for _, m := range batch.Results {
				path, err := d.Resolver.Resolve(m)
				if err != nil {
					// Stale handle; skip it, the search goes on.
					res.ResolveErrors++
					continue
				}
				if d.Emit != nil {
					d.Emit(path)
				}
			}
		}
		res.Matched += int64(batch.Matched)

		switch batch.Status {
		case StatusMore:
			st = stateContinuing
		case StatusBusy:
			res.Restarts++
			if res.Restarts > maxRestarts {
				// stateFatal: the index never settled.
				return res, ErrRestartBudget
			}
			// The cursor is invalid and partial counts would be
			// double-reported by the restarted search.
			res.Matched = 0
			res.ResolveErrors = 0
			st = stateStart
			slog.Debug("search index busy, restarting",
				"volume", req.Volume, "restart", res.Restarts)
		case StatusDone:
			// stateExhausted: terminal success.
			return res, nil
		}
	}
}
