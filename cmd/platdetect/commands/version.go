package commands

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/thoreinstein/platdetect/cmd"
	"github.com/thoreinstein/platdetect/internal/paths"
)

func init() {
	rootCmd.AddCommand(versionCmd)
}

var versionCmd = &cobra.Command{
	Use:   "version",
	Short: "Print the version information",
	Long:  `Print the version, commit, and build date of platdetect.`,
	Run: func(c *cobra.Command, _ []string) {
		out := c.OutOrStdout()
		fmt.Fprintf(out, "platdetect version %s\n", cmd.Version)
		fmt.Fprintf(out, "  commit:    %s\n", cmd.Commit)
		fmt.Fprintf(out, "  built:     %s\n", cmd.Date)
		fmt.Fprintf(out, "  go:        %s\n", runtime.Version())
		fmt.Fprintln(out, "  platforms:")
		for _, name := range paths.Platforms() {
			fmt.Fprintf(out, "    %-8s default %s\n", name+":", paths.DefaultVersion(name))
		}
	},
}
