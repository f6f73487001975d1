package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ledgerd/recordcache/cmd/util/cmd/common"
	"github.com/ledgerd/recordcache/model/ledger"
)

var flagTxID string

func init() {
	rootCmd.AddCommand(historyCmd)

	historyCmd.Flags().StringVar(&flagTxID, "tx-id", "", "transaction id, e.g. 0.0.100@1000.000000000")
	_ = historyCmd.MarkFlagRequired("tx-id")
}

type recordOutput struct {
	TransactionID      string `json:"transaction_id"`
	Status             string `json:"status"`
	ConsensusTimestamp string `json:"consensus_timestamp,omitempty"`
}

type historyOutput struct {
	TransactionID   string         `json:"transaction_id"`
	NodeIDs         []uint64       `json:"node_ids"`
	PriorityReceipt string         `json:"priority_receipt"`
	Duplicates      []recordOutput `json:"duplicates"`
	Children        []recordOutput `json:"children"`
}

func recordsOutput(records []*ledger.TransactionRecord) []recordOutput {
	out := make([]recordOutput, 0, len(records))
	for _, record := range records {
		r := recordOutput{
			TransactionID: record.TransactionID.String(),
			Status:        record.Receipt.Status.String(),
		}
		if !record.ConsensusTimestamp.IsZero() {
			r.ConsensusTimestamp = record.ConsensusTimestamp.String()
		}
		out = append(out, r)
	}
	return out
}

var historyCmd = &cobra.Command{
	Use:   "history",
	Short: "print the history of a transaction as held by the rebuilt record cache",
	Run: func(cmd *cobra.Command, args []string) {
		id, err := ledger.ParseTransactionID(flagTxID)
		if err != nil {
			log.Fatal().Err(err).Msg("malformed transaction id")
		}

		cache, err := common.InitCache(log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("could not init record cache")
		}
		defer func() {
			if err := cache.Close(); err != nil {
				log.Error().Err(err).Msg("could not close record cache")
			}
		}()

		history := cache.GetHistory(id)
		if history == nil {
			log.Fatal().Str("tx_id", id.String()).Msg("transaction unknown to the record cache")
		}

		receipt, err := cache.GetReceipts(id).PriorityReceipt(id)
		if err != nil {
			log.Fatal().Err(err).Msg("could not get priority receipt")
		}

		common.PrettyPrint(historyOutput{
			TransactionID:   id.String(),
			NodeIDs:         history.NodeIDs,
			PriorityReceipt: receipt.Status.String(),
			Duplicates:      recordsOutput(history.DuplicateRecords),
			Children:        recordsOutput(history.ChildRecords),
		})
	},
}
