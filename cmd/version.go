package cmd

import (
	"runtime/debug"

	"github.com/spf13/cobra"

	"gooze.dev/pkg/fuzzmut/internal/domain"
)

func newVersionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Show the version information",
		Long:  "Displays the build version, the Go version and the number of registered strategies.",
		Run: func(cmd *cobra.Command, _ []string) {
			cmd.Println("strategies\t", len(domain.Strategies()))

			info, ok := debug.ReadBuildInfo()
			if !ok || info.Main.Version == "" {
				cmd.Println("fuzzmut version: unknown")
				return
			}

			cmd.Println("fuzzmut version\t", info.Main.Version)
			cmd.Println("go version\t", info.GoVersion)
		},
	}
}

// versionCmd represents the version command.
var versionCmd = newVersionCmd()

func init() {
	rootCmd.AddCommand(versionCmd)
}
