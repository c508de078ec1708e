package cli

import (
	"encoding/json"

	"github.com/orgball2608/mention-pulse/internal/validator"
	"github.com/spf13/cobra"
)

var (
	validateSubject string
	validateExplain bool
)

func init() {
	RootCmd.AddCommand(validateCmd)

	validateCmd.Flags().StringVarP(&validateSubject, "subject", "s", "", "Subject for a bare JSON array of posts")
	validateCmd.Flags().BoolVarP(&validateExplain, "explain", "e", false, "Log why each dropped post was rejected")
}

var validateCmd = &cobra.Command{
	Use:   "validate <file>",
	Short: "Print the posts of a batch that pass validation",
	Args:  cobra.ExactArgs(1),
	RunE:  runValidate,
}

func runValidate(cmd *cobra.Command, args []string) error {
	log, err := newLogger()
	if err != nil {
		return err
	}

	batch, err := readBatch(args[0], validateSubject)
	if err != nil {
		return err
	}

	if validateExplain {
		rejected := make(map[string]int)
		for i, post := range batch.Posts {
			if reason := validator.Check(post); reason != validator.ReasonNone {
				rejected[string(reason)]++
				log.Info("Dropped post", "subject", batch.Subject, "index", i, "reason", reason, "post_url", post["post_url"])
			}
		}
		log.Info("Rejections", "subject", batch.Subject, "reasons", formatRejected(rejected))
	}

	valid := validator.Filter(batch.Posts, batch.Subject)
	log.Info("Batch validated", "subject", batch.Subject, "received", len(batch.Posts), "accepted", len(valid))

	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(valid)
}
