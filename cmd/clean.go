package cmd

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/msgboard/msgboard/internal/logger"
)

var skipConfirm bool

var cleanCmd = &cobra.Command{
	Use:   "clean",
	Short: "Remove the stored session and log files",
	Long: `Deletes the locally stored session without contacting the service and
removes msgboard log files. Use it when 'msgboard logout' cannot reach the
backend or the stored session is corrupt.

It will prompt for confirmation before proceeding unless the --yes flag is used.`,
	RunE: runClean,
}

func init() {
	cleanCmd.Flags().BoolVarP(&skipConfirm, "yes", "y", false, "Skip confirmation prompt")
	rootCmd.AddCommand(cleanCmd)
}

// clearLogs removes log files. Tests replace it.
var clearLogs = logger.ClearLogs

func runClean(cmd *cobra.Command, args []string) error {
	return runCleanWithReader(cmd.OutOrStdout(), os.Stdin)
}

// runCleanWithReader allows injecting a reader for testing
func runCleanWithReader(out io.Writer, input io.Reader) error {
	store, err := sessionStore()
	if err != nil {
		return err
	}

	_, statErr := os.Stat(store.Path())
	hasSession := statErr == nil

	fmt.Fprintln(out, "This will clean:")
	if hasSession {
		fmt.Fprintf(out, "  - Stored session (%s)\n", store.Path())
	}
	fmt.Fprintln(out, "  - All msgboard log files in /tmp")

	if !skipConfirm {
		if !confirm(out, input, "Continue?") {
			fmt.Fprintln(out, "Aborted.")
			return nil
		}
	}

	if err := store.Clear(); err != nil {
		return fmt.Errorf("error removing session: %w", err)
	}

	logsCleared, err := clearLogs()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: error clearing logs: %v\n", err)
	}

	fmt.Fprintln(out)
	fmt.Fprintln(out, "Cleaned:")
	if hasSession {
		fmt.Fprintln(out, "  - Session removed")
	}
	fmt.Fprintf(out, "  - %d log file(s) removed\n", logsCleared)
	return nil
}

// confirm prompts the user for y/n confirmation
func confirm(out io.Writer, input io.Reader, prompt string) bool {
	reader := bufio.NewReader(input)
	fmt.Fprintf(out, "%s [y/N]: ", prompt)
	response, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	response = strings.ToLower(strings.TrimSpace(response))
	return response == "y" || response == "yes"
}
