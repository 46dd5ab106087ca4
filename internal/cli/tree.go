package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/hmmm42/treealign/config"
	"github.com/hmmm42/treealign/edgeio"
	"github.com/hmmm42/treealign/logging"
	"github.com/hmmm42/treealign/snapshot"
	"github.com/hmmm42/treealign/tree"
)

type treeOpts struct {
	input            string
	nodes            int
	threshold        int
	progressInterval int
	format           string
	output           string
	configPath       string
}

func newTreeCmd() *cobra.Command {
	defaults := config.Default()
	opts := treeOpts{
		threshold:        defaults.Tree.TwilightThreshold,
		progressInterval: defaults.Tree.ProgressInterval,
		format:           "json",
	}

	cmd := &cobra.Command{
		Use:   "tree",
		Short: "Build a maximum spanning tree from a CSV stream of scored edges",
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if !c.Flags().Changed("threshold") {
				opts.threshold = cfg.Tree.TwilightThreshold
			}
			if !c.Flags().Changed("progress-interval") {
				opts.progressInterval = cfg.Tree.ProgressInterval
			}
			return runTree(c.Context(), opts)
		},
	}

	cmd.Flags().StringVar(&opts.input, "input", "", "path to the edge CSV file")
	cmd.Flags().IntVar(&opts.nodes, "nodes", 0, "node count (0 scans the input for the largest id)")
	cmd.Flags().IntVar(&opts.threshold, "threshold", opts.threshold, "twilight score threshold")
	cmd.Flags().IntVar(&opts.progressInterval, "progress-interval", opts.progressInterval, "log progress at query ids that are multiples of N (0 disables)")
	cmd.Flags().StringVar(&opts.format, "format", opts.format, "output format: json, ascii, or dot")
	cmd.Flags().StringVarP(&opts.output, "output", "o", "", "output file (stdout if empty)")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a treealign TOML config file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func runTree(ctx context.Context, opts treeOpts) error {
	logger := logging.FromContext(ctx)

	nodes := opts.nodes
	if nodes <= 0 {
		maxID, err := edgeio.ScanMaxID(ctx, opts.input, opts.progressInterval)
		if err != nil {
			return err
		}
		nodes = maxID + 1
	}

	b := tree.New(nodes)
	prog := logging.StartProgress(logger)
	err := edgeio.Load(ctx, opts.input, nodes, opts.progressInterval, func(e edgeio.Edge) bool {
		b.AddLink(e.Query, e.Target, e.Score, e.Score, e.Location, e.Length)
		return true
	})
	if err != nil {
		return err
	}
	prog.Done(fmt.Sprintf("processed %d links (%d added, %d rejected)", b.LinksProcessed(), b.LinksAdded(), b.LinksRejected()))

	out, err := openOutput(opts.output)
	if err != nil {
		return err
	}
	defer out.Close()

	switch opts.format {
	case "json":
		return snapshot.Write(out, b, opts.threshold)
	case "ascii":
		return snapshot.WriteASCII(out, b, opts.threshold)
	case "dot":
		return snapshot.WriteDOT(ctx, out, b, opts.threshold)
	default:
		return fmt.Errorf("tree: unknown format %q (want json, ascii, or dot)", opts.format)
	}
}
