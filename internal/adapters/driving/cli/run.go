package cli

import (
	"github.com/spf13/cobra"
)

var runCmd = &cobra.Command{
	Use:   "run [root]",
	Short: "Tag every document under a directory",
	Long: `Processes every PDF and EPUB under root (or the configured root) once.

The keyword map is written to the output file. Per-file failures are listed
on stderr and never abort the batch; the exit status is non-zero only when
the run could not start or its results could not be written.`,
	Args: cobra.MaximumNArgs(1),
	RunE: runRun,
}

func init() {
	rootCmd.AddCommand(runCmd)
}

func runRun(cmd *cobra.Command, args []string) error {
	tagging, err := requireTagging()
	if err != nil {
		return err
	}

	root := settings.Root
	if len(args) > 0 {
		root = args[0]
	}

	run, err := tagging.Run(cmd.Context(), root, settings.Recursive)
	if run != nil {
		newReporter(cmd).Run(run)
	}
	return err
}
