package commands

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/cobra/doc"

	"github.com/thoreinstein/platdetect/cmd"
	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/paths"
)

var (
	genDocDir    string
	genDocFormat string
)

var genDocCmd = &cobra.Command{
	Use:    "gen-doc",
	Short:  "Generate reference documentation for the CLI",
	Hidden: true,
	Args:   cobra.NoArgs,
	RunE: func(c *cobra.Command, _ []string) error {
		if genDocDir == "" {
			return errors.NewUserError(errors.New("output directory is required"), "Run: platdetect gen-doc --dir <dir>")
		}
		if err := paths.EnsureDir(genDocDir, 0755); err != nil {
			return errors.Wrap(err, "creating output directory")
		}

		var err error
		switch genDocFormat {
		case "markdown", "md":
			err = doc.GenMarkdownTreeCustom(rootCmd, genDocDir, markdownHeader, markdownLink)
		case "man":
			err = doc.GenManTree(rootCmd, &doc.GenManHeader{
				Title:   "PLATDETECT",
				Section: "1",
				Source:  "platdetect " + cmd.Version,
			}, genDocDir)
		default:
			return errors.NewUserError(errors.Newf("unknown format %q", genDocFormat), "Use --format markdown or --format man")
		}
		if err != nil {
			return errors.Wrapf(err, "generating %s docs", genDocFormat)
		}

		fmt.Fprintf(c.OutOrStdout(), "Documentation generated in %s\n", genDocDir)
		return nil
	},
}

func init() {
	genDocCmd.Flags().StringVarP(&genDocDir, "dir", "d", "", "output directory for documentation")
	genDocCmd.Flags().StringVar(&genDocFormat, "format", "markdown", "output format: markdown, man")
	rootCmd.AddCommand(genDocCmd)
}

func markdownHeader(filename string) string {
	base := strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
	// platdetect_config_get -> platdetect config get
	return fmt.Sprintf("---\ntitle: %q\n---\n\n", strings.ReplaceAll(base, "_", " "))
}

func markdownLink(name string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + "/"
}
