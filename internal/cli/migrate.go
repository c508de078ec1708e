package cli

import (
	"github.com/orgball2608/mention-pulse/internal/migrations"
	"github.com/orgball2608/mention-pulse/pkg/config"
	"github.com/spf13/cobra"
)

func init() {
	RootCmd.AddCommand(migrateCmd)
}

var migrateCmd = &cobra.Command{
	Use:       "migrate <up|down|status|reset|version>",
	Short:     "Run database migrations",
	Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down", "status", "reset", "version"},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	log, err := newLogger()
	if err != nil {
		return err
	}

	log.Info("Running migrations", "command", args[0], "host", cfg.Postgres.Host, "db", cfg.Postgres.Name)
	if err := migrations.Run(cmd.Context(), cfg.GetDSN(), args[0]); err != nil {
		return err
	}
	log.Info("Migrations finished", "command", args[0])
	return nil
}
