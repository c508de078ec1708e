package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/olekukonko/tablewriter"
	"github.com/orgball2608/mention-pulse/internal/domain"
	"github.com/orgball2608/mention-pulse/internal/ingest"
	"github.com/orgball2608/mention-pulse/internal/validator"
	"github.com/spf13/cobra"
)

var ingestSubject string

func init() {
	RootCmd.AddCommand(ingestCmd)

	ingestCmd.Flags().StringVarP(&ingestSubject, "subject", "s", "", "Subject for bare JSON arrays of posts")
}

var ingestCmd = &cobra.Command{
	Use:   "ingest <file>...",
	Short: "Validate batches and store their accepted mentions",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runIngest,
}

func runIngest(cmd *cobra.Command, args []string) error {
	batches := make([]domain.Batch, 0, len(args))
	for _, path := range args {
		batch, err := readBatch(path, ingestSubject)
		if err != nil {
			return err
		}
		batches = append(batches, batch)
	}

	var client ingest.Client
	return runApp(cmd.Context(), func() error {
		reports, err := client.IngestAll(cmd.Context(), batches)
		renderReports(cmd, reports)
		return err
	}, &client)
}

func renderReports(cmd *cobra.Command, reports []domain.IngestReport) {
	table := tablewriter.NewWriter(cmd.OutOrStdout())
	table.SetAutoWrapText(false)
	table.SetHeader([]string{"Subject", "Received", "Accepted", "Stored", "Duplicates", "Unparseable", "Rejected"})

	for _, r := range reports {
		if r.Subject == "" && r.Received == 0 {
			continue
		}
		table.Append([]string{
			r.Subject,
			strconv.Itoa(r.Received),
			strconv.Itoa(r.Accepted),
			strconv.Itoa(r.Stored),
			strconv.Itoa(r.Duplicates),
			strconv.Itoa(r.Unparseable),
			formatRejected(r.Rejected),
		})
	}

	table.Render()
}

// formatRejected lists per-reason counts in check order.
func formatRejected(rejected map[string]int) string {
	parts := make([]string, 0, len(rejected))
	for _, reason := range validator.Reasons {
		if n := rejected[string(reason)]; n > 0 {
			parts = append(parts, fmt.Sprintf("%s=%d", reason, n))
		}
	}
	if len(parts) == 0 {
		return "-"
	}
	return strings.Join(parts, " ")
}
