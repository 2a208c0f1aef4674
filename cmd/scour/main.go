// Command scour censuses filesystem metadata at volume scale: a bulk
// attribute-fetch tree walk and an index-assisted name search, each
// printing a machine-parsable summary line on stdout and a human report
// on stderr. Scans always run to completion; individual failures are
// tallied, never fatal.
package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/bamsammich/scour/internal/exclude"
)

var version = "dev"

// defaultVolumes are the volumes searched when none are given: the
// system volume plus the data volume firmlinked beneath it.
var defaultVolumes = []string{"/", "/System/Volumes/Data"}

// defaultExcludes keeps a walk of "/" from descending into the firmlink
// duplicate of the data volume.
var defaultExcludes = []string{"/System/Volumes/Data"}

func main() {
	os.Exit(run())
}

// ruleFlag is a custom pflag.Value appending repeatable --exclude rules
// straight into an exclude.Set.
type ruleFlag struct {
	set *exclude.Set
}

func (*ruleFlag) String() string { return "" }
func (*ruleFlag) Type() string   { return "string" }

func (f *ruleFlag) Set(val string) error {
	return f.set.Add(val)
}

func run() int {
	var (
		verbose     bool
		quiet       bool
		showVersion bool
	)

	rootCmd := &cobra.Command{
		Use:           "scour",
		Short:         "Volume-scale filesystem metadata census and indexed name search",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRun: func(*cobra.Command, []string) {
			logLevel := slog.LevelInfo
			if verbose {
				logLevel = slog.LevelDebug
			} else if quiet {
				logLevel = slog.LevelWarn
			}
			logger := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{
				Level: logLevel,
			}))
			slog.SetDefault(logger)
		},
		RunE: func(cmd *cobra.Command, _ []string) error {
			if showVersion {
				fmt.Fprintf(os.Stdout, "scour %s\n", version)
				return nil
			}
			return cmd.Help()
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "verbose output")
	rootCmd.PersistentFlags().BoolVarP(&quiet, "quiet", "q", false, "suppress all output except warnings")
	rootCmd.Flags().BoolVar(&showVersion, "version", false, "print version and exit")

	rootCmd.AddCommand(newWalkCmd())
	rootCmd.AddCommand(newFindCmd())
	rootCmd.AddCommand(newCountCmd())

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		return 2
	}
	return 0
}
