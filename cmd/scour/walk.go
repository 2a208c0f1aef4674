package main

import (
	"fmt"
	"log/slog"
	"os"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/bamsammich/scour/internal/config"
	"github.com/bamsammich/scour/internal/exclude"
	"github.com/bamsammich/scour/internal/report"
	"github.com/bamsammich/scour/internal/stats"
	"github.com/bamsammich/scour/internal/walk"
)

func newWalkCmd() *cobra.Command {
	var (
		bufferKiB         int
		progressEvery     int64
		parallel          bool
		workers           int
		noDefaultExcludes bool
	)

	excludes := exclude.New()

	cmd := &cobra.Command{
		Use:   "walk [root]",
		Short: "Walk a tree with bulk attribute fetches and total up its metadata",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			root := "/"
			if len(args) == 1 {
				root = args[0]
			}

			cfg, err := config.Load()
			if err != nil {
				slog.Warn("failed to load config", "error", err)
			}
			for _, rule := range cfg.Walk.Excludes {
				if err := excludes.Add(rule); err != nil {
					return fmt.Errorf("config exclude %q: %w", rule, err)
				}
			}
			if !noDefaultExcludes && root == "/" {
				for _, rule := range defaultExcludes {
					if err := excludes.Add(rule); err != nil {
						return fmt.Errorf("default exclude %q: %w", rule, err)
					}
				}
			}
			if !cmd.Flags().Changed("buffer") && cfg.Walk.BufferKiB != nil {
				bufferKiB = *cfg.Walk.BufferKiB
			}
			if !cmd.Flags().Changed("progress-every") && cfg.Walk.ProgressEvery != nil {
				progressEvery = *cfg.Walk.ProgressEvery
			}

			collector := stats.NewCollector()
			rep := report.New(os.Stdout, os.Stderr)

			slog.Debug("starting walk",
				"root", root,
				"parallel", parallel,
				"buffer_kib", bufferKiB,
			)

			if parallel {
				if workers <= 0 {
					workers = min(runtime.NumCPU(), 8)
				}
				if err := walk.RunParallel(root, excludes, collector, workers); err != nil {
					collector.AddErrors(1)
					slog.Error("parallel walk failed", "error", err)
				}
			} else {
				w := walk.New(walk.Config{
					Root:          root,
					Lister:        walk.NewLister(bufferKiB * 1024),
					Excludes:      excludes,
					Stats:         collector,
					ProgressEvery: progressEvery,
					OnProgress:    rep.WalkProgress,
				})
				w.Run()
			}

			rep.WalkSummary(collector.Snapshot())
			// Per-directory failures are reflected in the error counter
			// only; a completed scan loop always exits 0.
			return nil
		},
	}

	cmd.Flags().Var(&ruleFlag{set: excludes}, "exclude", "skip PATH (or glob) and everything under it (repeatable)")
	cmd.Flags().BoolVar(&noDefaultExcludes, "no-default-excludes", false, "walk into the data volume firmlink too")
	cmd.Flags().IntVar(&bufferKiB, "buffer", walk.DefaultBufferSize/1024, "bulk fetch buffer size in KiB")
	cmd.Flags().Int64Var(&progressEvery, "progress-every", 10000, "directories between progress updates (0 disables)")
	cmd.Flags().BoolVar(&parallel, "parallel", false, "use the multi-worker readdir walk instead of bulk fetches")
	cmd.Flags().IntVar(&workers, "workers", 0, "parallel walk workers (default: min(NumCPU, 8))")

	return cmd
}
