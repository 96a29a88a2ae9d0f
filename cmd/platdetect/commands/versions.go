package commands

import (
	"fmt"
	"io"

	"github.com/fatih/color"
	"github.com/ktr0731/go-fuzzyfinder"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/platdetect/internal/catalog"
	"github.com/thoreinstein/platdetect/internal/errors"
)

var (
	versionsJSON   bool
	versionsSelect bool
)

func init() {
	versionsCmd.Flags().BoolVar(&versionsJSON, "json", false,
		"output in JSON format")
	versionsCmd.Flags().BoolVar(&versionsSelect, "select", false,
		"pick a version interactively and print it")
	versionsCmd.MarkFlagsMutuallyExclusive("json", "select")
	rootCmd.AddCommand(versionsCmd)
}

var versionsCmd = &cobra.Command{
	Use:   "versions PLATFORM",
	Short: "List the supported versions of a platform",
	Long: `List the versions a platform can resolve to, oldest first, marking the
default. For dotnet the SDK shipped with each runtime is shown when the
catalog knows it.

The catalog source follows the configuration: supported_versions when set,
the remote SDK storage when dynamic_install is enabled, and the local
install directory otherwise.`,
	Example: `  # List node versions
  platdetect versions nodejs

  # Choose a python version interactively
  platdetect versions python --select

  See Also: platdetect resolve, platdetect config`,
	Args: cobra.ExactArgs(1),
	RunE: runVersions,
}

func runVersions(cmd *cobra.Command, args []string) error {
	name := args[0]
	if err := validatePlatformArg(name); err != nil {
		return err
	}

	cat, err := newVersionSet()[name].Catalog(cmd.Context())
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	switch {
	case versionsJSON:
		return writeJSON(out, cat)
	case versionsSelect:
		return selectVersion(out, cat)
	default:
		printCatalog(out, cat)
		return nil
	}
}

func printCatalog(w io.Writer, cat *catalog.Catalog) {
	fmt.Fprintf(w, "%s versions (source: %s)\n", cat.Platform, cat.Source)
	if len(cat.Supported) == 0 {
		fmt.Fprintln(w, "  none")
		return
	}

	mark := painter(w, color.FgGreen, color.Bold)
	for _, v := range cat.Supported {
		line := "  " + v
		if v == cat.Default {
			line = mark.Sprint("* "+v) + " (default)"
		}
		if sdk, ok := cat.SDKFor(v); ok {
			line += "  sdk " + sdk
		}
		fmt.Fprintln(w, line)
	}
	if cat.Default != "" && !cat.Contains(cat.Default) {
		fmt.Fprintf(w, "  default %s is not supported\n", cat.Default)
	}
}

func selectVersion(w io.Writer, cat *catalog.Catalog) error {
	if len(cat.Supported) == 0 {
		fmt.Fprintf(w, "No %s versions found.\n", cat.Platform)
		return nil
	}

	idx, err := fuzzyfinder.Find(
		cat.Supported,
		func(i int) string {
			return cat.Supported[i]
		},
		fuzzyfinder.WithPromptString(cat.Platform+"> "),
		fuzzyfinder.WithPreviewWindow(func(i, _, _ int) string {
			if i == -1 {
				return ""
			}
			v := cat.Supported[i]
			preview := fmt.Sprintf("Platform: %s\nVersion:  %s\nSource:   %s", cat.Platform, v, cat.Source)
			if v == cat.Default {
				preview += "\nDefault:  yes"
			}
			if sdk, ok := cat.SDKFor(v); ok {
				preview += "\nSDK:      " + sdk
			}
			return preview
		}),
	)
	if err != nil {
		if errors.Is(err, fuzzyfinder.ErrAbort) {
			return nil
		}
		return errors.Wrap(err, "interactive selection failed")
	}

	fmt.Fprintln(w, cat.Supported[idx])
	return nil
}
