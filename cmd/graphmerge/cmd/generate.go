package cmd

import (
	"encoding/json"

	"github.com/spf13/cobra"

	"github.com/agentstation/graphmerge/pkg/gen"
)

func newGenerateCommand() *cobra.Command {
	var (
		cfg     gen.Config
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "generate",
		Short: "Generate a synthetic graph for testing",
		Long: `Generate a deterministic synthetic graph.

The same flags always produce the same graph, which makes generated
files usable as reproducible fixtures for merge experiments.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			g := gen.Generate(cfg)

			if outPath != "" {
				return g.Save(outPath)
			}

			encoder := json.NewEncoder(cmd.OutOrStdout())
			encoder.SetIndent("", "  ")
			return encoder.Encode(g)
		},
	}

	cmd.Flags().IntVar(&cfg.Roots, "roots", 1, "number of independent trees")
	cmd.Flags().IntVar(&cfg.Depth, "depth", 3, "levels below each root")
	cmd.Flags().IntVar(&cfg.FanOut, "fanout", 3, "children per non-leaf entity")
	cmd.Flags().Float64Var(&cfg.TransitionDensity, "density", 0.25, "transitions per entity")
	cmd.Flags().Int64Var(&cfg.Seed, "seed", 1, "random seed")
	cmd.Flags().StringVar(&outPath, "out", "", "write the graph to this file (.json, .yaml) instead of stdout")

	return cmd
}
