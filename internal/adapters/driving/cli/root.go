// Package cli provides the cobra command tree for sercha-tagger.
package cli

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-tagger/internal/adapters/driven/config/file"
	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driving"
	"github.com/custodia-labs/sercha-tagger/internal/core/services"
	"github.com/custodia-labs/sercha-tagger/internal/logger"
)

// version is set at build time via -ldflags.
var version = "dev"

// Services used by the commands. They are built from the effective settings
// before any command runs; tests replace newServices to inject mocks.
var (
	taggingService driving.TaggingService
	historyService driving.HistoryService
	settings       domain.Settings
	closeServices  func() error
)

// skipSetupAnnotation marks commands that run without loading settings.
const skipSetupAnnotation = "sercha-tagger/skip-setup"

// newServices builds the application services for the given settings.
var newServices = wireServices

// Persistent flags.
var (
	configPath     string
	rootFlag       string
	recursiveFlag  bool
	exclusionsFlag string
	outputFlag     string
	topKFlag       int
	workersFlag    int
	patchFlag      bool
	sqliteFlag     string
	verboseFlag    bool
)

var rootCmd = &cobra.Command{
	Use:   "sercha-tagger",
	Short: "Extract ranked keywords from PDF and EPUB collections",
	Long: `sercha-tagger walks a directory tree, extracts the text of every PDF and
EPUB it finds, removes operator-excluded terms and ranks the remaining words.
The normalised top keywords of each document are written as JSON and, when
configured, archived in SQLite and copied into sibling metadata files.`,
	SilenceUsage:       true,
	PersistentPreRunE:  setup,
	PersistentPostRunE: teardown,
}

func init() {
	flags := rootCmd.PersistentFlags()
	flags.StringVarP(&configPath, "config", "c", "", "config file (default ./"+file.DefaultFileName+")")
	flags.StringVar(&rootFlag, "root", "", "directory to process")
	flags.BoolVarP(&recursiveFlag, "recursive", "r", true, "descend into subdirectories")
	flags.StringVar(&exclusionsFlag, "exclusions", "", "CSV file of excluded terms")
	flags.StringVarP(&outputFlag, "output", "o", "", "JSON output file")
	flags.IntVarP(&topKFlag, "top-k", "k", 0, "maximum keywords per document")
	flags.IntVarP(&workersFlag, "workers", "w", 0, "files processed concurrently")
	flags.BoolVar(&patchFlag, "patch-metadata", false, "update sibling <name>.metadata.json files")
	flags.StringVar(&sqliteFlag, "sqlite", "", "SQLite run archive (empty disables)")
	flags.BoolVarP(&verboseFlag, "verbose", "v", false, "enable verbose logging")
}

// Execute runs the root command.
func Execute(ctx context.Context) error {
	err := rootCmd.ExecuteContext(ctx)
	// PersistentPostRunE is skipped when a command fails.
	if closeErr := teardown(rootCmd, nil); closeErr != nil && err == nil {
		err = closeErr
	}
	return err
}

// setup loads the effective settings and builds the services.
func setup(cmd *cobra.Command, _ []string) error {
	if cmd.Annotations[skipSetupAnnotation] == "true" {
		return nil
	}

	s, err := loadSettings(cmd)
	if err != nil {
		return err
	}
	if err := s.Validate(); err != nil {
		return err
	}
	logger.SetVerbose(s.Verbose)

	wired, err := newServices(s)
	if err != nil {
		return err
	}
	taggingService = wired.Tagging
	historyService = wired.History
	closeServices = wired.Close
	settings = s
	return nil
}

func teardown(_ *cobra.Command, _ []string) error {
	if closeServices == nil {
		return nil
	}
	err := closeServices()
	closeServices = nil
	return err
}

// loadSettings reads the config file and applies every flag the user set.
func loadSettings(cmd *cobra.Command) (domain.Settings, error) {
	store, err := file.NewConfigStore(configPath)
	if err != nil {
		return domain.Settings{}, fmt.Errorf("load config: %w", err)
	}
	s := services.LoadSettings(store)

	flags := cmd.Flags()
	if flags.Changed("root") {
		s.Root = rootFlag
	}
	if flags.Changed("recursive") {
		s.Recursive = recursiveFlag
	}
	if flags.Changed("exclusions") {
		s.ExclusionsPath = exclusionsFlag
	}
	if flags.Changed("output") {
		s.OutputPath = outputFlag
	}
	if flags.Changed("top-k") {
		s.TopK = topKFlag
	}
	if flags.Changed("workers") {
		s.Workers = workersFlag
	}
	if flags.Changed("patch-metadata") {
		s.PatchMetadata = patchFlag
	}
	if flags.Changed("sqlite") {
		s.SQLitePath = sqliteFlag
	}
	if flags.Changed("verbose") {
		s.Verbose = verboseFlag
	}
	return s, nil
}

// requireTagging returns the tagging service or an error if none was built.
func requireTagging() (driving.TaggingService, error) {
	if taggingService == nil {
		return nil, errors.New("tagging service not configured")
	}
	return taggingService, nil
}

// requireHistory returns the history service or an error naming the missing archive.
func requireHistory() (driving.HistoryService, error) {
	if historyService == nil {
		return nil, errors.New("run history is not enabled; set --sqlite or the sqlite config key")
	}
	return historyService, nil
}
