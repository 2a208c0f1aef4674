package main

import (
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/spf13/cobra"

	"github.com/bamsammich/scour/internal/config"
	"github.com/bamsammich/scour/internal/report"
	"github.com/bamsammich/scour/internal/volsearch"
)

// searchFlags are the knobs shared by find and count.
type searchFlags struct {
	volumes     []string
	maxMatches  int
	timeLimit   time.Duration
	maxRestarts int
}

func (f *searchFlags) register(cmd *cobra.Command, defaultMaxMatches int) {
	cmd.Flags().StringArrayVar(&f.volumes, "volume", nil, "volume to search (repeatable; default: / and the data volume)")
	cmd.Flags().IntVar(&f.maxMatches, "max-matches", defaultMaxMatches, "matches per search call")
	cmd.Flags().DurationVar(&f.timeLimit, "time-limit", volsearch.DefaultTimeLimit, "per-call time budget")
	cmd.Flags().IntVar(&f.maxRestarts, "max-restarts", volsearch.DefaultMaxRestarts, "busy restarts before giving up")
}

// apply folds in config-file defaults for flags not set on the CLI and
// resolves the volume list.
func (f *searchFlags) apply(cmd *cobra.Command, cfg config.SearchConfig) {
	if !cmd.Flags().Changed("volume") {
		if len(cfg.Volumes) > 0 {
			f.volumes = cfg.Volumes
		} else {
			f.volumes = defaultVolumes
		}
	}
	if !cmd.Flags().Changed("max-matches") && cfg.MaxMatches != nil {
		f.maxMatches = *cfg.MaxMatches
	}
	if !cmd.Flags().Changed("time-limit") && cfg.TimeLimitSec != nil {
		f.timeLimit = time.Duration(*cfg.TimeLimitSec) * time.Second
	}
	if !cmd.Flags().Changed("max-restarts") && cfg.MaxRestarts != nil {
		f.maxRestarts = *cfg.MaxRestarts
	}
}

func newFindCmd() *cobra.Command {
	var (
		exact bool
		flags searchFlags
	)

	cmd := &cobra.Command{
		Use:   "find <pattern>",
		Short: "Search volume indexes for names matching a pattern and print their paths",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := args[0]

			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			flags.apply(cmd, cfg.Search)

			searcher, err := volsearch.NewSearcher()
			if err != nil {
				return err
			}
			resolver, err := volsearch.NewResolver()
			if err != nil {
				return err
			}

			rep := report.New(os.Stdout, os.Stderr)
			driver := &volsearch.Driver{
				Searcher: searcher,
				Resolver: resolver,
				Emit: func(path string) {
					fmt.Fprintln(os.Stdout, path)
				},
			}

			var total volsearch.Result
			failed := 0
			for _, vol := range flags.volumes {
				res, err := driver.Run(volsearch.Request{
					Volume:      vol,
					Pattern:     pattern,
					Exact:       exact,
					MatchFiles:  true,
					MatchDirs:   true,
					MaxMatches:  flags.maxMatches,
					TimeLimit:   flags.timeLimit,
					MaxRestarts: flags.maxRestarts,
				})
				total.Matched += res.Matched
				total.Restarts += res.Restarts
				total.ResolveErrors += res.ResolveErrors
				if err != nil {
					// Fatal for this volume only; siblings still run.
					failed++
					slog.Error("search failed", "volume", vol, "error", err)
				}
			}

			rep.Resultf("matched=%d resolve_errors=%d restarts=%d failed_volumes=%d",
				total.Matched, total.ResolveErrors, total.Restarts, failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&exact, "exact", false, "match the whole name instead of substrings")
	flags.register(cmd, volsearch.DefaultMaxMatchesResolve)

	return cmd
}
