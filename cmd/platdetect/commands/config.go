package commands

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/thoreinstein/platdetect/internal/config"
	"github.com/thoreinstein/platdetect/internal/errors"
	"github.com/thoreinstein/platdetect/internal/paths"
)

func init() {
	configCmd.AddCommand(configGetCmd)
	rootCmd.AddCommand(configCmd)
}

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Show the effective configuration",
	Long: `Print the configuration platdetect runs with, after the config file,
PLATDETECT_* environment variables and built-in defaults are merged.

Every platform is listed with its effective install directory and default.`,
	Example: `  # Show everything
  platdetect config

  # Show one value
  platdetect config get platforms.nodejs.install_dir

See Also: platdetect versions`,
	Args: cobra.NoArgs,
	RunE: runConfigList,
}

var configGetCmd = &cobra.Command{
	Use:   "get <key>",
	Short: "Get a configuration value",
	Long: `Get a single configuration value by key.

Supports dot notation for nested keys. List values are printed one per line.`,
	Example: `  # Get the storage URL
  platdetect config get sdk_storage_url

See Also: platdetect config`,
	Args: cobra.ExactArgs(1),
	RunE: runConfigGet,
}

func runConfigList(cmd *cobra.Command, _ []string) error {
	effective := config.Config{
		DynamicInstall: appConfig.DynamicInstall,
		SDKStorageURL:  appConfig.SDKStorageURL,
		Platforms:      make(map[string]config.PlatformOverride, len(paths.Platforms())),
	}
	for _, name := range paths.Platforms() {
		effective.Platforms[name] = appConfig.Platform(name)
	}

	data, err := yaml.Marshal(effective)
	if err != nil {
		return errors.Wrap(err, "marshaling config")
	}

	out := cmd.OutOrStdout()
	if used := config.ConfigFileUsed(); used != "" {
		fmt.Fprintf(out, "# %s\n", used)
	}
	fmt.Fprint(out, string(data))
	return nil
}

func runConfigGet(cmd *cobra.Command, args []string) error {
	key := args[0]
	if !viper.IsSet(key) {
		return errors.NewUserError(
			errors.Newf("unknown config key %q", key),
			"Run: platdetect config")
	}

	out := cmd.OutOrStdout()
	switch v := viper.Get(key).(type) {
	case []string:
		for _, item := range v {
			fmt.Fprintln(out, item)
		}
	case []any:
		for _, item := range v {
			fmt.Fprintln(out, item)
		}
	case string:
		fmt.Fprintln(out, strings.TrimSpace(v))
	default:
		fmt.Fprintln(out, v)
	}
	return nil
}
