package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ledgerd/recordcache/cmd/util/cmd/common"
	"github.com/ledgerd/recordcache/model/ledger"
)

var flagLimit int

func init() {
	rootCmd.AddCommand(roundsCmd)

	roundsCmd.Flags().IntVar(&flagLimit, "limit", 0, "maximum number of rounds to print, 0 prints all")
}

type roundOutput struct {
	Index            int           `json:"index"`
	LatestValidStart string        `json:"latest_valid_start"`
	Entries          []entryOutput `json:"entries"`
}

type entryOutput struct {
	NodeID        uint64 `json:"node_id"`
	TransactionID string `json:"transaction_id"`
	Status        string `json:"status"`
}

var roundsCmd = &cobra.Command{
	Use:   "rounds",
	Short: "print the committed rounds of the receipt log, oldest first",
	Run: func(cmd *cobra.Command, args []string) {
		receiptLog, closer, err := common.OpenReceiptLog(log.Logger, nil)
		if err != nil {
			log.Fatal().Err(err).Msg("could not open receipt log")
		}
		defer func() {
			if err := closer(); err != nil {
				log.Error().Err(err).Msg("could not close receipt log")
			}
		}()

		var rounds []roundOutput
		err = receiptLog.Iterate(func(round *ledger.RoundReceipts) (bool, error) {
			out := roundOutput{
				Index:            len(rounds),
				LatestValidStart: round.LatestValidStart().String(),
			}
			for _, entry := range round.Entries {
				out.Entries = append(out.Entries, entryOutput{
					NodeID:        entry.NodeID,
					TransactionID: entry.TransactionID.String(),
					Status:        entry.Status.String(),
				})
			}
			rounds = append(rounds, out)
			return flagLimit == 0 || len(rounds) < flagLimit, nil
		})
		if err != nil {
			log.Fatal().Err(err).Msg("could not read receipt log")
		}

		log.Info().Int("rounds", len(rounds)).Msg("read receipt log")
		common.PrettyPrint(rounds)
	},
}
