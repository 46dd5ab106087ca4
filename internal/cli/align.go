package cli

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/hmmm42/treealign/align"
	"github.com/hmmm42/treealign/config"
	"github.com/hmmm42/treealign/logging"
	"github.com/hmmm42/treealign/matrix"
)

type alignOpts struct {
	matrixName string
	gap        float64
	configPath string
}

func newAlignCmd() *cobra.Command {
	defaults := config.Default()
	opts := alignOpts{matrixName: defaults.Align.Matrix, gap: defaults.Align.GapPenalty}

	cmd := &cobra.Command{
		Use:   "align <query> <target>",
		Short: "Compute the Smith-Waterman local alignment of two sequences (each a literal sequence or a path to a file containing one)",
		Args:  cobra.ExactArgs(2),
		RunE: func(c *cobra.Command, args []string) error {
			cfg, err := config.Load(opts.configPath)
			if err != nil {
				return err
			}
			if !c.Flags().Changed("matrix") {
				opts.matrixName = cfg.Align.Matrix
			}
			if !c.Flags().Changed("gap") {
				opts.gap = cfg.Align.GapPenalty
			}
			query, err := loadSequence(args[0])
			if err != nil {
				return err
			}
			target, err := loadSequence(args[1])
			if err != nil {
				return err
			}
			return runAlign(c.Context(), opts, query, target)
		},
	}

	cmd.Flags().StringVar(&opts.matrixName, "matrix", opts.matrixName, "substitution matrix (pam250 or identity)")
	cmd.Flags().Float64Var(&opts.gap, "gap", opts.gap, "linear gap penalty")
	cmd.Flags().StringVar(&opts.configPath, "config", "", "path to a treealign TOML config file")
	return cmd
}

// loadSequence treats arg as a file path if it names an existing file,
// reading and trimming its contents; otherwise arg is taken as the literal
// sequence itself.
func loadSequence(arg string) (string, error) {
	data, err := os.ReadFile(arg)
	if err != nil {
		if os.IsNotExist(err) {
			return arg, nil
		}
		return "", fmt.Errorf("align: reading %s: %w", arg, err)
	}
	return strings.TrimSpace(string(data)), nil
}

func resolveMatrix(name string) (matrix.Matrix32, error) {
	switch name {
	case "pam250":
		return matrix.PAM250(), nil
	case "identity":
		return matrix.Identity(1, -1), nil
	default:
		return matrix.Matrix32{}, fmt.Errorf("align: unknown matrix %q (want pam250 or identity)", name)
	}
}

func runAlign(ctx context.Context, opts alignOpts, query, target string) error {
	logger := logging.FromContext(ctx)

	sub, err := resolveMatrix(opts.matrixName)
	if err != nil {
		return err
	}

	prog := logging.StartProgress(logger)
	result, err := align.Local([]byte(query), []byte(target), sub, opts.gap)
	if err != nil {
		return err
	}
	prog.Done(fmt.Sprintf("aligned %d x %d residues", len(query), len(target)))

	qLine, tLine := renderAlignment(query, target, result.Forward())
	fmt.Printf("score: %.2f\n", result.Score)
	if qLine != "" {
		fmt.Println(qLine)
		fmt.Println(tLine)
	}
	return nil
}

func renderAlignment(query, target string, cols []align.Column) (string, string) {
	if len(cols) == 0 {
		return "", ""
	}
	q := make([]byte, len(cols))
	t := make([]byte, len(cols))
	for i, c := range cols {
		if c.A >= 0 {
			q[i] = query[c.A]
		} else {
			q[i] = '-'
		}
		if c.B >= 0 {
			t[i] = target[c.B]
		} else {
			t[i] = '-'
		}
	}
	return string(q), string(t)
}
