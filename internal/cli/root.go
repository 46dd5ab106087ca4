// Package cli implements the treealign command-line interface: an "align"
// command for scoring one pair of sequences, and a "tree" command for
// building a maximum spanning tree from a CSV stream of scored edges.
package cli

import (
	"context"
	"fmt"
	"os"

	charmlog "github.com/charmbracelet/log"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/hmmm42/treealign/logging"
)

var (
	version string
	commit  string
	date    string
)

// SetVersion sets the version information displayed by --version. It is
// typically called by main with values injected via ldflags at build time.
func SetVersion(v, c, d string) {
	version = v
	commit = c
	date = d
}

// Execute runs the treealign CLI under ctx and returns an error if any
// command fails. Callers typically derive ctx from signal.NotifyContext so
// Ctrl-C aborts a long-running tree build or alignment cleanly.
func Execute(ctx context.Context) error {
	var verbose bool

	root := &cobra.Command{
		Use:          "treealign",
		Short:        "treealign scores sequence pairs and builds maximum spanning trees over their similarity",
		Version:      version,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			level := charmlog.InfoLevel
			if verbose {
				level = charmlog.DebugLevel
			}
			logger := logging.New(os.Stderr, level).With("run", uuid.NewString())
			ctx := logging.WithLogger(cmd.Context(), logger)
			cmd.SetContext(ctx)
		},
	}

	root.SetVersionTemplate(fmt.Sprintf("treealign %s\ncommit: %s\nbuilt: %s\n", version, commit, date))
	root.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable verbose logging")

	root.AddCommand(newAlignCmd())
	root.AddCommand(newTreeCmd())

	return root.ExecuteContext(ctx)
}

// openOutput returns a file to write results to: path itself if given,
// otherwise os.Stdout. Both satisfy io.Writer and io.Closer, so a defer
// Close() after this call is always safe.
func openOutput(path string) (*os.File, error) {
	if path == "" {
		return os.Stdout, nil
	}
	return os.Create(path)
}
