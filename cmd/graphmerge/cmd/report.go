package cmd

import (
	"fmt"
	"io"
	"os"

	"github.com/spf13/cobra"

	"github.com/agentstation/graphmerge/internal/cmd/output"
	"github.com/agentstation/graphmerge/pkg/errors"
	"github.com/agentstation/graphmerge/pkg/graph"
	"github.com/agentstation/graphmerge/pkg/report"
)

func newReportCommand() *cobra.Command {
	var (
		format  string
		title   string
		outPath string
	)

	cmd := &cobra.Command{
		Use:   "report <graph>",
		Short: "Generate a data dictionary from a graph",
		Long: `Generate a data dictionary from a graph.

Each entity becomes one record with its id, the names collected for it
(display name plus the "aliases" property), and its descriptions (the
"description" and "descriptions" properties).`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			g, err := graph.Load(args[0])
			if err != nil {
				return err
			}
			definitions := report.FromGraph(g)

			var w io.Writer = cmd.OutOrStdout()
			if outPath != "" {
				file, err := os.Create(outPath)
				if err != nil {
					return errors.WrapIO("create", outPath, err)
				}
				defer file.Close()
				w = file
			}

			switch format {
			case "text":
				return report.WriteText(w, definitions)
			case "markdown", "md":
				return report.WriteMarkdown(w, title, definitions)
			case "json", "yaml":
				return output.NewFormatter(output.Format(format)).Format(w, definitions)
			default:
				return fmt.Errorf("invalid format %q: must be one of: text, markdown, json, yaml", format)
			}
		},
	}

	cmd.Flags().StringVar(&format, "format", "text", "report format (text, markdown, json, yaml)")
	cmd.Flags().StringVar(&title, "title", "Data Dictionary", "document title for markdown reports")
	cmd.Flags().StringVar(&outPath, "out", "", "write the report to this file instead of stdout")

	return cmd
}
