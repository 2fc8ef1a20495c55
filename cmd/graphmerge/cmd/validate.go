package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/agentstation/graphmerge/internal/cmd/output"
	"github.com/agentstation/graphmerge/pkg/graph"
	"github.com/agentstation/graphmerge/pkg/index"
)

// validateSummary describes a validated graph file.
type validateSummary struct {
	Entities    int `json:"entities"`
	Transitions int `json:"transitions"`
	Roots       int `json:"roots"`
	Reachable   int `json:"reachable"`
	Warnings    int `json:"warnings"`
}

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate <graph>",
		Short: "Validate a graph file and report structural warnings",
		Long: `Validate a graph file and report structural warnings.

Validation rejects malformed files (missing entities, transitions, or
roots). Structural inconsistencies such as cycles, multi-parent
entities, and dangling references are reported as warnings; a merge
would recover from all of them.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.Load(args[0])
			if err != nil {
				return err
			}

			idx := index.New(g)

			formatter := output.NewFormatter(output.DetectFormat(viper.GetString("output")))
			summary := validateSummary{
				Entities:    len(g.Entities),
				Transitions: len(g.Transitions),
				Roots:       len(g.Roots),
				Reachable:   idx.Len(),
				Warnings:    len(idx.Warnings()),
			}
			if err := formatter.Format(cmd.OutOrStdout(), summary); err != nil {
				return err
			}

			if len(idx.Warnings()) > 0 {
				fmt.Fprintln(cmd.OutOrStdout())
				return formatter.Format(cmd.OutOrStdout(), warningRows(idx.Warnings()))
			}
			return nil
		},
	}

	return cmd
}
