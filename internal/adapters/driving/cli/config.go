package cli

import (
	"fmt"
	"os"
	"sort"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-tagger/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/services"
)

var configForce bool

var configCmd = &cobra.Command{
	Use:   "config",
	Short: "Inspect and create configuration",
	RunE:  runConfigShow,
}

var configShowCmd = &cobra.Command{
	Use:   "show",
	Short: "Show the effective settings",
	Long:  `Shows the settings a run would use: defaults, overlaid with the config file, overlaid with flags.`,
	RunE:  runConfigShow,
}

var configInitCmd = &cobra.Command{
	Use:   "init",
	Short: "Write a config file holding the default settings",
	Annotations: map[string]string{
		skipSetupAnnotation: "true",
	},
	RunE: runConfigInit,
}

func init() {
	configInitCmd.Flags().BoolVarP(&configForce, "force", "f", false, "overwrite an existing file")
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configInitCmd)
	rootCmd.AddCommand(configCmd)
}

func runConfigShow(cmd *cobra.Command, _ []string) error {
	values := services.SettingsValues(settings)
	keys := make([]string, 0, len(values))
	for k := range values {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	cmd.Println("Effective Settings")
	cmd.Println("==================")
	for _, k := range keys {
		cmd.Printf("  %-24s %v\n", k, values[k])
	}
	return nil
}

func runConfigInit(cmd *cobra.Command, _ []string) error {
	path := configPath
	if path == "" {
		path = file.DefaultFileName
	}
	if _, err := os.Stat(path); err == nil && !configForce {
		return fmt.Errorf("%s already exists (use --force to overwrite)", path)
	}

	store, err := file.NewConfigStore(path)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}
	for k, v := range services.SettingsValues(domain.DefaultSettings()) {
		store.Set(k, v)
	}
	if err := store.Save(); err != nil {
		return fmt.Errorf("save config: %w", err)
	}

	cmd.Printf("Wrote %s\n", path)
	return nil
}
