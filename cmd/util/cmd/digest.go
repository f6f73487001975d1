package cmd

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/ledgerd/recordcache/cmd/util/cmd/common"
)

func init() {
	rootCmd.AddCommand(digestCmd)
}

var digestCmd = &cobra.Command{
	Use:   "digest",
	Short: "print the fingerprint of the record cache rebuilt from the receipt log",
	Long: `Rebuilds the record cache from the receipt log and prints the fingerprint of its
history index. Replicas rebuilt from the same receipt log print the same digest.`,
	Run: func(cmd *cobra.Command, args []string) {
		cache, err := common.InitCache(log.Logger)
		if err != nil {
			log.Fatal().Err(err).Msg("could not init record cache")
		}
		defer func() {
			if err := cache.Close(); err != nil {
				log.Error().Err(err).Msg("could not close record cache")
			}
		}()

		digest, err := cache.Digest()
		if err != nil {
			log.Fatal().Err(err).Msg("could not compute digest")
		}
		common.PrettyPrint(map[string]string{"digest": digest.String()})
	},
}
