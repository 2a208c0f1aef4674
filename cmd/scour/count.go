package main

import (
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamsammich/scour/internal/config"
	"github.com/bamsammich/scour/internal/report"
	"github.com/bamsammich/scour/internal/volsearch"
)

func newCountCmd() *cobra.Command {
	var (
		negate bool
		all    bool
		flags  searchFlags
	)

	cmd := &cobra.Command{
		Use:   "count [pattern]",
		Short: "Count files whose names match a pattern using the volume index",
		Long: `Count files whose names match a pattern using the volume index.

With --negate, counts names NOT matching instead. With --all, each
volume is counted twice (matching plus negated) and the two are summed,
which totals every indexed file regardless of pattern.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			pattern := "."
			if len(args) == 1 {
				pattern = args[0]
			}

			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			flags.apply(cmd, cfg.Search)

			searcher, err := volsearch.NewSearcher()
			if err != nil {
				return err
			}

			driver := &volsearch.Driver{Searcher: searcher}
			rep := report.New(os.Stdout, os.Stderr)

			countOne := func(vol string, negated bool) (int64, bool) {
				res, err := driver.Run(volsearch.Request{
					Volume:      vol,
					Pattern:     pattern,
					Negate:      negated,
					MatchFiles:  true,
					MaxMatches:  flags.maxMatches,
					TimeLimit:   flags.timeLimit,
					MaxRestarts: flags.maxRestarts,
				})
				if err != nil {
					slog.Error("search failed", "volume", vol, "negate", negated, "error", err)
					return res.Matched, false
				}
				return res.Matched, true
			}

			var total int64
			failed := 0
			for _, vol := range flags.volumes {
				if all {
					with, okWith := countOne(vol, false)
					without, okWithout := countOne(vol, true)
					if !okWith || !okWithout {
						failed++
					}
					rep.Statusf("  %-24s with: %10d  without: %10d", vol, with, without)
					total += with + without
					continue
				}

				n, ok := countOne(vol, negate)
				if !ok {
					failed++
				}
				rep.Statusf("  %-24s %10d", vol, n)
				total += n
			}

			rep.Resultf("matched=%d failed_volumes=%d", total, failed)
			return nil
		},
	}

	cmd.Flags().BoolVar(&negate, "negate", false, "count names NOT matching the pattern")
	cmd.Flags().BoolVar(&all, "all", false, "sum matching and negated counts (total file census)")
	flags.register(cmd, volsearch.DefaultMaxMatchesCount)

	return cmd
}
