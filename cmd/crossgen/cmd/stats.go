package cmd

import (
	"fmt"

	"github.com/crossplay/fillengine/internal/apiserver"
	"github.com/spf13/cobra"
)

var statsDB string

var statsCmd = &cobra.Command{
	Use:   "stats",
	Short: "Display fill job database statistics",
	Long: `Display statistics about the fill job database the serve
subcommand writes to.

Shows information about:
  - Total jobs by status (queued, running, succeeded, failed)
  - Average candidates explored across completed jobs

Examples:
  # Show stats for the default job database
  crossgen stats

  # Show stats for a custom job database
  crossgen stats --db /path/to/fill_jobs.db`,
	RunE: runStats,
}

func init() {
	rootCmd.AddCommand(statsCmd)

	statsCmd.Flags().StringVarP(&statsDB, "db", "d", "fill_jobs.db", "path to the fill job database")
}

func runStats(cmd *cobra.Command, args []string) error {
	if verbosity > 0 {
		fmt.Printf("Reading job database: %s\n", statsDB)
	}

	store, err := apiserver.OpenJobStore(statsDB)
	if err != nil {
		return fmt.Errorf("failed to open job database: %w", err)
	}
	defer store.Close()

	fmt.Printf("\nFill Job Statistics\n")
	fmt.Printf("====================\n")
	fmt.Printf("Database: %s\n\n", statsDB)

	if err := displayJobsByStatus(store); err != nil {
		return err
	}

	avg, err := store.AverageCandidatesExplored()
	if err != nil {
		return err
	}
	fmt.Printf("Average candidates explored (completed jobs): %.1f\n", avg)

	return nil
}

func displayJobsByStatus(store *apiserver.JobStore) error {
	fmt.Println("Total Jobs by Status:")
	fmt.Println("---------------------")

	counts, err := store.CountByStatus()
	if err != nil {
		return fmt.Errorf("failed to count jobs by status: %w", err)
	}

	statuses := []apiserver.Status{
		apiserver.StatusQueued,
		apiserver.StatusRunning,
		apiserver.StatusSucceeded,
		apiserver.StatusFailed,
	}

	total := 0
	for _, status := range statuses {
		count := counts[status]
		fmt.Printf("  %-10s: %d\n", status, count)
		total += count
	}
	fmt.Printf("  %-10s: %d\n", "TOTAL", total)
	fmt.Println()

	return nil
}
