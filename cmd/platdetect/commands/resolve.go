package commands

import (
	"fmt"

	"github.com/spf13/cobra"
)

var resolveCmd = &cobra.Command{
	Use:   "resolve PLATFORM [CONSTRAINT]",
	Short: "Resolve a version constraint to a supported version",
	Long: `Print the greatest supported version of PLATFORM satisfying CONSTRAINT.

Constraints use npm-style syntax: exact versions, partial versions such as
"14" or "3.8", ranges such as ">=12 <15", caret and tilde ranges. Without a
constraint the platform default is printed.`,
	Example: `  # Newest supported node 14
  platdetect resolve nodejs 14

  # Default python
  platdetect resolve python

  See Also: platdetect versions`,
	Args: cobra.RangeArgs(1, 2),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]
		if err := validatePlatformArg(name); err != nil {
			return err
		}

		var constraint string
		if len(args) > 1 {
			constraint = args[1]
		}

		version, err := newVersionSet()[name].Resolve(cmd.Context(), constraint)
		if err != nil {
			return err
		}
		fmt.Fprintln(cmd.OutOrStdout(), version)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(resolveCmd)
}
