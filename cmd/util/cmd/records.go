package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ledgerd/recordcache/cmd/util/cmd/common"
	"github.com/ledgerd/recordcache/model/ledger"
)

var flagAccount string

func init() {
	rootCmd.AddCommand(recordsCmd)

	recordsCmd.Flags().StringVar(&flagAccount, "account", "", "payer account, e.g. 0.0.100")
	_ = recordsCmd.MarkFlagRequired("account")
}

var recordsCmd = &cobra.Command{
	Use:   "records",
	Short: "print the records indexed under a payer account",
	Run: func(cmd *cobra.Command, args []string) {
		account, err := ledger.ParseAccountID(flagAccount)
		if err != nil {
			log.Fatal().Err(err).Msg("malformed account id")
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

		common.PrettyPrint(recordsOutput(cache.GetRecords(account)))
	},
}
