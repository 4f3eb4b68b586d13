package cli

import (
	"fmt"
	"io"
	"os"
	"time"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

// Palette for terminal output.
var (
	colourAccent  = lipgloss.Color("#7C3AED")
	colourMuted   = lipgloss.Color("#6C7086")
	colourSuccess = lipgloss.Color("#A6E3A1")
	colourWarning = lipgloss.Color("#F9E2AF")
	colourError   = lipgloss.Color("#F38BA8")
)

// reportStyles holds the styles used by reporter.
// Every style is a no-op when output is not a terminal.
type reportStyles struct {
	Title   lipgloss.Style
	Muted   lipgloss.Style
	Success lipgloss.Style
	Warning lipgloss.Style
	Error   lipgloss.Style
}

func newReportStyles(styled bool) reportStyles {
	if !styled {
		plain := lipgloss.NewStyle()
		return reportStyles{Title: plain, Muted: plain, Success: plain, Warning: plain, Error: plain}
	}
	return reportStyles{
		Title:   lipgloss.NewStyle().Bold(true).Foreground(colourAccent),
		Muted:   lipgloss.NewStyle().Foreground(colourMuted),
		Success: lipgloss.NewStyle().Foreground(colourSuccess),
		Warning: lipgloss.NewStyle().Bold(true).Foreground(colourWarning),
		Error:   lipgloss.NewStyle().Bold(true).Foreground(colourError),
	}
}

// reporter prints run outcomes. The summary goes to the command's stdout,
// the error log to its stderr.
type reporter struct {
	out    io.Writer
	errOut io.Writer
	styles reportStyles
}

func newReporter(cmd *cobra.Command) *reporter {
	errOut := cmd.ErrOrStderr()
	return &reporter{
		out:    cmd.OutOrStdout(),
		errOut: errOut,
		styles: newReportStyles(isTerminal(errOut)),
	}
}

// isTerminal reports whether w is a terminal file descriptor.
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	return ok && term.IsTerminal(int(f.Fd()))
}

// Run prints the summary line followed by every recorded error.
func (r *reporter) Run(run *domain.RunResult) {
	summary := fmt.Sprintf("Processed %d documents (%d errors)", len(run.Documents), len(run.Errors))
	if len(run.Errors) == 0 {
		summary = r.styles.Success.Render(summary)
	}
	fmt.Fprintf(r.out, "%s %s\n", summary,
		r.styles.Muted.Render("in "+run.Duration().Round(time.Millisecond).String()))
	if run.ID != "" {
		fmt.Fprintf(r.out, "Run ID: %s\n", run.ID)
	}

	for _, msg := range run.Errors.Messages() {
		fmt.Fprintf(r.errOut, "%s %s\n", r.styles.Error.Render("Error:"), msg)
	}
	if run.Partial {
		fmt.Fprintln(r.errOut, r.styles.Warning.Render("Warning: traversal stopped early; results are incomplete"))
	}
}

// Failure prints a setup or sink failure.
func (r *reporter) Failure(err error) {
	fmt.Fprintf(r.errOut, "%s %v\n", r.styles.Error.Render("Error:"), err)
}

// Title prints a section header.
func (r *reporter) Title(text string) {
	fmt.Fprintln(r.out, r.styles.Title.Render(text))
}
