// Package cmd implements the graphmerge CLI commands.
package cmd

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

// NewRootCommand creates the root command with all subcommands attached.
func NewRootCommand(version, commit, date string) *cobra.Command {
	root := &cobra.Command{
		Use:   "graphmerge",
		Short: "Merge hierarchical entity graphs",
		Long: `graphmerge merges hierarchical entity graphs from different source
systems into one consolidated graph.

Entities are matched across graphs by their position in the hierarchy
(exact path, then parent-scoped name, then name and level within the
same tree), properties and children are reconciled under an explicit
conflict policy, and every reference in the output is validated.`,
		Version:       fmt.Sprintf("%s (commit %s, built %s)", version, commit, date),
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(_ *cobra.Command, _ []string) error {
			return setupLogging()
		},
	}

	root.PersistentFlags().String("log-level", "info", "log level (trace, debug, info, warn, error)")
	root.PersistentFlags().StringP("output", "o", "", "output format (table, json, yaml)")

	viper.SetEnvPrefix("GRAPHMERGE")
	viper.AutomaticEnv()
	_ = viper.BindPFlag("log-level", root.PersistentFlags().Lookup("log-level"))
	_ = viper.BindPFlag("output", root.PersistentFlags().Lookup("output"))

	root.AddCommand(newMergeCommand())
	root.AddCommand(newValidateCommand())
	root.AddCommand(newReportCommand())
	root.AddCommand(newGenerateCommand())

	return root
}

func setupLogging() error {
	levelStr := viper.GetString("log-level")
	level, err := zerolog.ParseLevel(levelStr)
	if err != nil {
		return fmt.Errorf("invalid log level %q: %w", levelStr, err)
	}
	zerolog.SetGlobalLevel(level)
	return nil
}
