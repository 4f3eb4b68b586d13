package cli

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-tagger/internal/adapters/driven/metadata"
	"github.com/custodia-labs/sercha-tagger/internal/extractors"
	"github.com/custodia-labs/sercha-tagger/internal/logger"
)

var watchDebounce time.Duration

var watchCmd = &cobra.Command{
	Use:   "watch [root]",
	Short: "Tag a directory and re-tag it whenever it changes",
	Long: `Runs a full batch, then watches root and the exclusion list. Each change to
an eligible document or to the exclusion list triggers a new full batch once
the directory has been quiet for the debounce interval.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runWatch,
}

func init() {
	watchCmd.Flags().DurationVar(&watchDebounce, "debounce", 2*time.Second, "quiet period before re-running")
	rootCmd.AddCommand(watchCmd)
}

func runWatch(cmd *cobra.Command, args []string) error {
	tagging, err := requireTagging()
	if err != nil {
		return err
	}

	root := settings.Root
	if len(args) > 0 {
		root = args[0]
	}
	report := newReporter(cmd)

	batch := func(ctx context.Context) error {
		run, err := tagging.Run(ctx, root, settings.Recursive)
		if run != nil {
			report.Run(run)
		}
		return err
	}

	if err := batch(cmd.Context()); err != nil {
		return err
	}

	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	if err := addWatches(watcher, root, settings.Recursive); err != nil {
		return err
	}
	// The exclusion list may be absent; it is watched only when present.
	if settings.ExclusionsPath != "" {
		if err := watcher.Add(filepath.Dir(settings.ExclusionsPath)); err != nil {
			logger.Warn("Not watching exclusions %s: %v", settings.ExclusionsPath, err)
		}
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Watching %s (Ctrl+C to stop)\n", root)
	return watchLoop(cmd.Context(), watcher, newChangeMatcher(settings.ExclusionsPath, settings.OutputPath),
		watchDebounce, func(ctx context.Context) {
			if err := batch(ctx); err != nil {
				report.Failure(err)
			}
		})
}

// addWatches registers root and, when recursive, every directory below it.
func addWatches(w *fsnotify.Watcher, root string, recursive bool) error {
	if !recursive {
		return w.Add(root)
	}
	return filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			logger.Warn("Not watching %s: %v", path, err)
			return nil
		}
		if d.IsDir() {
			if err := w.Add(path); err != nil {
				return fmt.Errorf("watch %s: %w", path, err)
			}
		}
		return nil
	})
}

// changeMatcher decides which filesystem events warrant a new batch.
type changeMatcher struct {
	exclusions string
	output     string
	extensions map[string]bool
}

func newChangeMatcher(exclusionsPath, outputPath string) *changeMatcher {
	m := &changeMatcher{
		exclusions: cleanAbs(exclusionsPath),
		output:     cleanAbs(outputPath),
		extensions: make(map[string]bool),
	}
	for _, ext := range extractors.DefaultRegistry().Extensions() {
		m.extensions[ext] = true
	}
	return m
}

// Matches reports whether event should trigger a re-run.
// Writes to the output file and to metadata sidecars are the tagger's own
// and are ignored.
func (m *changeMatcher) Matches(event fsnotify.Event) bool {
	if event.Op == fsnotify.Chmod {
		return false
	}
	path := cleanAbs(event.Name)
	if path == m.output || strings.HasSuffix(path, metadata.Suffix) {
		return false
	}
	if path == m.exclusions {
		return true
	}
	return m.extensions[strings.ToLower(filepath.Ext(path))]
}

func cleanAbs(path string) string {
	if path == "" {
		return ""
	}
	abs, err := filepath.Abs(path)
	if err != nil {
		return filepath.Clean(path)
	}
	return abs
}

// watchLoop calls rerun once events have stopped arriving for debounce.
// It returns nil when ctx is cancelled.
func watchLoop(
	ctx context.Context,
	w *fsnotify.Watcher,
	matcher *changeMatcher,
	debounce time.Duration,
	rerun func(context.Context),
) error {
	timer := time.NewTimer(debounce)
	timer.Stop()

	for {
		select {
		case <-ctx.Done():
			return nil
		case event, ok := <-w.Events:
			if !ok {
				return nil
			}
			if event.Has(fsnotify.Create) {
				if info, err := os.Stat(event.Name); err == nil && info.IsDir() && settings.Recursive {
					if err := addWatches(w, event.Name, true); err != nil {
						logger.Warn("%v", err)
					}
				}
			}
			if !matcher.Matches(event) {
				continue
			}
			logger.Debug("Change detected: %s", event)
			timer.Reset(debounce)
		case <-timer.C:
			rerun(ctx)
		case err, ok := <-w.Errors:
			if !ok {
				return nil
			}
			if errors.Is(err, fsnotify.ErrEventOverflow) {
				logger.Warn("Watcher overflowed; re-running")
				timer.Reset(debounce)
				continue
			}
			logger.Error("Watcher error: %v", err)
		}
	}
}
