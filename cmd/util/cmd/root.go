package cmd

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/ledgerd/recordcache/cmd/util/cmd/common"
	"github.com/ledgerd/recordcache/module/updatable_configs"
)

var (
	flagConfigFile string
	flagLogLevel   string
	flagDatadir    string
	flagBackend    common.BackendFlag
)

var rootCmd = &cobra.Command{
	Use:   "util",
	Short: "inspect the receipt log and the record cache rebuilt from it",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		level, err := zerolog.ParseLevel(viper.GetString("log-level"))
		if err != nil {
			log.Fatal().Err(err).Msg("invalid log level")
		}
		zerolog.SetGlobalLevel(level)
	},
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Println(err)
		os.Exit(1)
	}
}

func init() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	rootCmd.PersistentFlags().StringVar(&flagConfigFile, "config", "",
		"config file holding the address book and cache settings")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "log level")
	common.InitDataDirFlag(rootCmd.PersistentFlags(), &flagDatadir)
	common.InitBackendFlag(rootCmd.PersistentFlags(), &flagBackend)
	rootCmd.PersistentFlags().Int64("max-transaction-valid-duration", updatable_configs.DefaultMaxTransactionValidDuration,
		"maximum transaction valid duration in seconds")
	rootCmd.PersistentFlags().Int("records-max-queryable-by-account", updatable_configs.DefaultRecordsMaxQueryableByAccount,
		"maximum number of records returned per account")
	rootCmd.PersistentFlags().Int64("consensus-time", 0,
		"consensus time in unix seconds used for the deduplication window, defaults to now")
	rootCmd.PersistentFlags().Uint("metrics-port", 0, "port to serve metrics on while the command runs, 0 disables")

	err := viper.BindPFlags(rootCmd.PersistentFlags())
	if err != nil {
		log.Fatal().Err(err).Msg("could not bind flags")
	}

	cobra.OnInitialize(initConfig)
}

func initConfig() {
	viper.SetEnvPrefix("ledger")
	viper.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	viper.AutomaticEnv()

	if flagConfigFile == "" {
		return
	}
	viper.SetConfigFile(flagConfigFile)
	err := viper.ReadInConfig()
	if err != nil {
		log.Fatal().Err(err).Str("config", flagConfigFile).Msg("could not read config file")
	}
	log.Debug().Str("config", viper.ConfigFileUsed()).Msg("using config file")
}
