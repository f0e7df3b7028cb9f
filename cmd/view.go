package cmd

import (
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"gooze.dev/pkg/fuzzmut/internal/domain"
	m "gooze.dev/pkg/fuzzmut/internal/model"
)

// viewCmd represents the view command.
var viewCmd = newViewCmd()

func newViewCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "view [output]",
		Short: "View the manifest of a previous run",
		Long: `Show the skipped and failed jobs and the per-strategy summary recorded in
the manifest of a previous run. Defaults to the configured output directory.`,
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			output := m.Path(viper.GetString(outputFlagName))
			if len(args) == 1 {
				output = m.Path(args[0])
			}

			return workflow.View(cmd.Context(), domain.ViewArgs{Output: output})
		},
	}
}

func init() {
	rootCmd.AddCommand(viewCmd)
}
