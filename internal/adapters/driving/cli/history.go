package cli

import (
	"encoding/json"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/custodia-labs/sercha-tagger/internal/core/domain"
)

var (
	historyLimit int
	historyJSON  bool
)

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "Browse archived runs",
	Long: `Lists and inspects runs stored in the SQLite archive.
The archive is enabled with --sqlite or the sqlite config key.`,
	RunE: runHistoryList,
}

var historyListCmd = &cobra.Command{
	Use:   "list",
	Short: "List archived runs, newest first",
	Args:  cobra.NoArgs,
	RunE:  runHistoryList,
}

var historyShowCmd = &cobra.Command{
	Use:   "show [run-id]",
	Short: "Show the documents of a run (default: latest)",
	Args:  cobra.MaximumNArgs(1),
	RunE:  runHistoryShow,
}

var historyFindCmd = &cobra.Command{
	Use:   "find <keyword> [run-id]",
	Short: "Find documents tagged with a keyword (default: latest run)",
	Args:  cobra.RangeArgs(1, 2),
	RunE:  runHistoryFind,
}

func init() {
	historyCmd.PersistentFlags().BoolVar(&historyJSON, "json", false, "output as JSON")
	historyCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs")
	historyListCmd.Flags().IntVarP(&historyLimit, "limit", "n", 10, "maximum number of runs")

	historyCmd.AddCommand(historyListCmd)
	historyCmd.AddCommand(historyShowCmd)
	historyCmd.AddCommand(historyFindCmd)
	rootCmd.AddCommand(historyCmd)
}

func runHistoryList(cmd *cobra.Command, _ []string) error {
	history, err := requireHistory()
	if err != nil {
		return err
	}

	runs, err := history.ListRuns(cmd.Context(), historyLimit)
	if err != nil {
		return fmt.Errorf("list runs: %w", err)
	}

	if historyJSON {
		return printJSON(cmd, runs)
	}
	if len(runs) == 0 {
		cmd.Println("No runs archived.")
		return nil
	}

	for _, r := range runs {
		partial := ""
		if r.Partial {
			partial = " partial"
		}
		cmd.Printf("%s  %s  %s  %d documents, %d errors%s\n",
			r.ID, r.StartedAt.Local().Format("2006-01-02 15:04:05"), r.Root,
			r.DocumentCount, r.ErrorCount, partial)
	}
	return nil
}

func runHistoryShow(cmd *cobra.Command, args []string) error {
	history, err := requireHistory()
	if err != nil {
		return err
	}

	var id string
	if len(args) > 0 {
		id = args[0]
	}

	run, err := history.GetRun(cmd.Context(), id)
	if err != nil {
		return fmt.Errorf("get run: %w", err)
	}

	if historyJSON {
		return printJSON(cmd, run.Documents)
	}

	report := newReporter(cmd)
	report.Title(fmt.Sprintf("Run %s (%s)", run.ID, run.Root))
	printDocuments(cmd, run.Documents)
	report.Run(run)
	return nil
}

func runHistoryFind(cmd *cobra.Command, args []string) error {
	history, err := requireHistory()
	if err != nil {
		return err
	}

	var runID string
	if len(args) > 1 {
		runID = args[1]
	}

	docs, err := history.FindByKeyword(cmd.Context(), runID, args[0])
	if err != nil {
		return fmt.Errorf("find keyword: %w", err)
	}

	if historyJSON {
		return printJSON(cmd, docs)
	}
	if len(docs) == 0 {
		cmd.Printf("No documents tagged %q.\n", args[0])
		return nil
	}
	printDocuments(cmd, docs)
	return nil
}

func printDocuments(cmd *cobra.Command, docs domain.ResultSet) {
	for _, id := range docs.SortedIDs() {
		doc := docs[id]
		cmd.Printf("%s  %s\n", doc.Filename, strings.Join(doc.Keywords, ", "))
	}
}

func printJSON(cmd *cobra.Command, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal output: %w", err)
	}
	cmd.Println(string(data))
	return nil
}
