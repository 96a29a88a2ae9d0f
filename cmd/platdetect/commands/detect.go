package commands

import (
	"fmt"
	"log/slog"
	"path/filepath"

	"github.com/fatih/color"
	"github.com/spf13/cobra"

	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/logging"
	"github.com/thoreinstein/platdetect/internal/platform"
	"github.com/thoreinstein/platdetect/internal/platform/builtin"
	"github.com/thoreinstein/platdetect/internal/repo"
	"github.com/thoreinstein/platdetect/pkg/fileutil"
)

var (
	detectAll             bool
	detectPlatform        string
	detectPlatformVersion string
	detectJSON            bool
	detectOutput          string
)

func init() {
	detectCmd.Flags().BoolVar(&detectAll, "all", false,
		"report every matching platform instead of the first")
	detectCmd.Flags().StringVar(&detectPlatform, "platform", "",
		"only consider this platform")
	detectCmd.Flags().StringVar(&detectPlatformVersion, "platform-version", "",
		"use this version for --platform instead of resolving one")
	detectCmd.Flags().BoolVar(&detectJSON, "json", false,
		"output in JSON format")
	detectCmd.Flags().StringVarP(&detectOutput, "output", "o", "",
		"also write the result to a .json or .yaml file")
	rootCmd.AddCommand(detectCmd)
}

// detectReport is the artifact printed and written by detect.
type detectReport struct {
	Source    string               `json:"source" yaml:"source"`
	Detected  bool                 `json:"detected" yaml:"detected"`
	Platforms []platform.Detection `json:"platforms" yaml:"platforms"`
}

var detectCmd = &cobra.Command{
	Use:   "detect [SOURCE_DIR]",
	Short: "Detect the platform and version of a source directory",
	Long: `Run the platform detectors against SOURCE_DIR (default: the current
directory) in order: dotnet, php, python, nodejs. The first detector that
recognizes the tree wins and its version constraint is resolved against the
supported versions.

A tree no detector recognizes is reported as undetermined. An unsupported
version or a catalog that cannot be loaded fails the command.`,
	Example: `  # Detect the current directory
  platdetect detect

  # Pin the node version instead of resolving it
  platdetect detect ./app --platform nodejs --platform-version 14.3.0

  # Report every matching platform and save it
  platdetect detect ./app --all --output build/platform.yaml

  See Also: platdetect versions, platdetect resolve`,
	Args: cobra.MaximumNArgs(1),
	RunE: runDetect,
}

func runDetect(cmd *cobra.Command, args []string) error {
	if detectPlatformVersion != "" && detectPlatform == "" {
		return errors.NewUserError(
			errors.New("cannot use --platform-version without specifying --platform"),
			"Run: platdetect detect --platform <name> --platform-version <version>")
	}
	if detectPlatform != "" {
		if err := validatePlatformArg(detectPlatform); err != nil {
			return err
		}
	}

	dir := "."
	if len(args) > 0 {
		dir = args[0]
	}
	src, err := repo.NewLocal(dir)
	if err != nil {
		return errors.NewUserError(err, "SOURCE_DIR must be an existing directory")
	}

	ctx := cmd.Context()
	logger := logging.FromContext(ctx)

	reg, err := builtin.Registry(newVersionSet(), logger)
	if err != nil {
		return err
	}
	orch := platform.NewOrchestratorFromRegistry(reg, platform.WithLogger(logger))
	if detectPlatform != "" {
		if orch, err = orch.Only(detectPlatform); err != nil {
			return err
		}
	}

	dctx := &platform.DetectionContext{Repo: src}
	if detectPlatformVersion != "" {
		dctx.ResolvedVersions = map[string]string{detectPlatform: detectPlatformVersion}
	}

	report := detectReport{Source: absPath(dir)}
	if detectAll {
		found, err := orch.DetectAll(ctx, dctx)
		if err != nil {
			return err
		}
		report.Platforms = found
	} else {
		found, err := orch.Detect(ctx, dctx)
		if err != nil {
			return err
		}
		if found != nil {
			report.Platforms = []platform.Detection{*found}
		}
	}
	report.Detected = len(report.Platforms) > 0
	if report.Platforms == nil {
		report.Platforms = []platform.Detection{}
	}

	logger.Info("detection finished", "source", report.Source, "detected", report.Detected)

	if detectOutput != "" {
		if err := fileutil.AtomicWriteByExt(detectOutput, report); err != nil {
			return errors.NewSystemError(err, "check that the output directory exists")
		}
		slog.Debug("wrote detection result", "path", detectOutput)
	}

	out := cmd.OutOrStdout()
	if detectJSON {
		return writeJSON(out, report)
	}

	if !report.Detected {
		fmt.Fprintf(out, "undetermined: no platform detected in %s\n", report.Source)
		return nil
	}
	name := painter(out, color.FgCyan, color.Bold)
	for _, d := range report.Platforms {
		fmt.Fprintf(out, "%s %s\n", name.Sprint(d.Platform), d.Version)
	}
	return nil
}

func absPath(dir string) string {
	if abs, err := filepath.Abs(dir); err == nil {
		return abs
	}
	return dir
}
