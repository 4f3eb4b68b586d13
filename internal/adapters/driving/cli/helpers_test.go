package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
	"github.com/custodia-labs/sercha-tagger/internal/core/ports/driving"
)

// mockTaggingService implements driving.TaggingService for testing.
type mockTaggingService struct {
	run      *domain.RunResult
	keywords []string
	err      error

	calls        int
	gotRoot      string
	gotRecursive bool
}

func (m *mockTaggingService) Run(_ context.Context, root string, recursive bool) (*domain.RunResult, error) {
	m.calls++
	m.gotRoot = root
	m.gotRecursive = recursive
	return m.run, m.err
}

func (m *mockTaggingService) RankText(_ context.Context, _ string, _ int) ([]string, error) {
	return m.keywords, m.err
}

// mockHistoryService implements driving.HistoryService for testing.
type mockHistoryService struct {
	runs []domain.RunSummary
	run  *domain.RunResult
	docs domain.ResultSet
	err  error

	gotLimit   int
	gotRunID   string
	gotKeyword string
}

func (m *mockHistoryService) ListRuns(_ context.Context, limit int) ([]domain.RunSummary, error) {
	m.gotLimit = limit
	return m.runs, m.err
}

func (m *mockHistoryService) GetRun(_ context.Context, id string) (*domain.RunResult, error) {
	m.gotRunID = id
	return m.run, m.err
}

func (m *mockHistoryService) FindByKeyword(_ context.Context, runID, keyword string) (domain.ResultSet, error) {
	m.gotRunID = runID
	m.gotKeyword = keyword
	return m.docs, m.err
}

// setupCLITest runs the test in an empty working directory and replaces the
// service wiring with the given mocks. It returns the settings the command
// tree was configured with.
func setupCLITest(t *testing.T, tagging *mockTaggingService, history *mockHistoryService) *domain.Settings {
	t.Helper()
	t.Chdir(t.TempDir())

	captured := &domain.Settings{}
	oldNew := newServices
	newServices = func(s domain.Settings) (*Services, error) {
		*captured = s
		wired := &Services{}
		if tagging != nil {
			wired.Tagging = tagging
		}
		if history != nil {
			wired.History = history
		}
		return wired, nil
	}

	t.Cleanup(func() {
		newServices = oldNew
		taggingService = nil
		historyService = nil
		settings = domain.Settings{}
	})
	return captured
}

// execute runs the root command with args and returns what it printed.
func execute(t *testing.T, args ...string) (stdout, stderr string, err error) {
	t.Helper()

	out := new(bytes.Buffer)
	errOut := new(bytes.Buffer)
	rootCmd.SetOut(out)
	rootCmd.SetErr(errOut)
	rootCmd.SetArgs(args)
	t.Cleanup(func() {
		rootCmd.SetArgs(nil)
		rootCmd.SetOut(nil)
		rootCmd.SetErr(nil)
		resetFlags(rootCmd)
	})

	err = rootCmd.Execute()
	return out.String(), errOut.String(), err
}

// resetFlags restores every flag in the tree to its default so tests do not
// leak values into each other.
func resetFlags(cmd *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	cmd.PersistentFlags().VisitAll(reset)
	cmd.Flags().VisitAll(reset)
	for _, child := range cmd.Commands() {
		resetFlags(child)
	}
}

var _ driving.TaggingService = (*mockTaggingService)(nil)
var _ driving.HistoryService = (*mockHistoryService)(nil)
