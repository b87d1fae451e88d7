package cmd

import (
	"overseer/core"
	"overseer/handler/views"

	"github.com/spf13/cobra"
)

var protocolCmd = &cobra.Command{
	Use:   "protocol",
	Short: "manage protocol config",
}

var protocolSetCmd = &cobra.Command{
	Use:   "set <market contract> <oracle contract> <base denom>",
	Short: "write the protocol config",
	Args:  cobra.ExactArgs(3),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec := provideAddressCodec()

		market, err := codec.Canonical(args[0])
		if err != nil {
			return err
		}

		oracle, err := codec.Canonical(args[1])
		if err != nil {
			return err
		}

		database := provideDatabase()
		defer database.Close()

		protocolConfig := &core.ProtocolConfig{
			MarketContract: market,
			OracleContract: oracle,
			BaseDenom:      args[2],
		}

		if err := provideProtocolStore(database).Save(cmd.Context(), protocolConfig); err != nil {
			return err
		}

		printFields(cmd, views.ProtocolView(codec, protocolConfig))
		return nil
	},
}

var protocolGetCmd = &cobra.Command{
	Use:   "get",
	Short: "show the protocol config",
	RunE: func(cmd *cobra.Command, args []string) error {
		database := provideDatabase()
		defer database.Close()

		protocolConfig, err := provideProtocolStore(database).Get(cmd.Context())
		if err != nil {
			return err
		}

		printFields(cmd, views.ProtocolView(provideAddressCodec(), protocolConfig))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(protocolCmd)
	protocolCmd.AddCommand(protocolSetCmd, protocolGetCmd)
}
