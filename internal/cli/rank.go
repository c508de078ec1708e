package cli

import (
	"strconv"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/orgball2608/mention-pulse/internal/domain"
	"github.com/orgball2608/mention-pulse/internal/ranking"
	"github.com/orgball2608/mention-pulse/pkg/config"
	"github.com/orgball2608/mention-pulse/pkg/formatter"
	"github.com/spf13/cobra"
)

var rankDays int

func init() {
	RootCmd.AddCommand(rankCmd)

	rankCmd.Flags().IntVarP(&rankDays, "days", "d", 0, "Window in days (defaults to SCORING_WINDOW_DAYS)")
}

var rankCmd = &cobra.Command{
	Use:   "rank",
	Short: "Rank subjects by platform-weighted sentiment",
	Args:  cobra.NoArgs,
	RunE:  runRank,
}

func runRank(cmd *cobra.Command, args []string) error {
	var (
		client ranking.Client
		cfg    *config.Config
	)
	return runApp(cmd.Context(), func() error {
		days := rankDays
		if days <= 0 {
			days = cfg.Scoring.WindowDays
		}

		scores, err := client.Rank(cmd.Context(), time.Now().AddDate(0, 0, -days))
		if err != nil {
			return err
		}
		renderScores(cmd, scores)
		return nil
	}, &client, &cfg)
}

func renderScores(cmd *cobra.Command, scores []domain.SubjectScore) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"#", "Subject", "Mentions", "Score", "Std Dev", "Engagement", "Trend", "Ready"})

	for _, s := range scores {
		ready := "no"
		if s.EndorsementReady {
			ready = "yes"
		}
		table.Append([]string{
			strconv.Itoa(s.Rank),
			s.Subject,
			strconv.Itoa(s.Mentions),
			formatter.FormatScore(s.WeightedScore),
			strconv.FormatFloat(s.StdDev, 'f', 3, 64),
			formatter.FormatNumber(int64(s.TotalEngagement)),
			s.Trend,
			ready,
		})
	}

	table.Render()
}
