package cli

import (
	"fmt"
	"time"

	"github.com/orgball2608/mention-pulse/internal/repositories/mention"
	"github.com/orgball2608/mention-pulse/pkg/logger"
	"github.com/spf13/cobra"
)

var cleanupOlderThan time.Duration

func init() {
	RootCmd.AddCommand(cleanupCmd)

	cleanupCmd.Flags().DurationVar(&cleanupOlderThan, "older-than", 30*24*time.Hour, "Delete mentions stored longer ago than this")
}

var cleanupCmd = &cobra.Command{
	Use:   "cleanup",
	Short: "Delete old mentions",
	Args:  cobra.NoArgs,
	RunE:  runCleanup,
}

func runCleanup(cmd *cobra.Command, args []string) error {
	if cleanupOlderThan <= 0 {
		return fmt.Errorf("--older-than must be positive, got %s", cleanupOlderThan)
	}

	var (
		repo mention.Repository
		log  logger.Logger
	)
	return runApp(cmd.Context(), func() error {
		rows, err := repo.CleanupOldRecords(cmd.Context(), cleanupOlderThan)
		if err != nil {
			return fmt.Errorf("failed to clean up mentions: %w", err)
		}
		log.Info("Cleanup completed", "rows_deleted", rows, "older_than", cleanupOlderThan.String())
		return nil
	}, &repo, &log)
}
