package cmd

import (
	"fmt"
	"overseer/core"
	"overseer/pkg/risk"

	"github.com/shopspring/decimal"
	"github.com/spf13/cobra"
)

type whitelistRow struct {
	Collateral string `json:"collateral"`
	Name       string `json:"name"`
	Symbol     string `json:"symbol"`
	LTV        string `json:"ltv"`
	Version    int64  `json:"version"`
}

func whitelistRowOf(codec core.AddressCodec, item *core.WhitelistItem) whitelistRow {
	row := whitelistRow{
		Collateral: item.Collateral,
		Name:       item.Name,
		Symbol:     item.Symbol,
		LTV:        item.LTV.String(),
		Version:    item.Version,
	}

	if addr, err := item.Address(); err == nil {
		row.Collateral = codec.MustHuman(addr)
	}

	return row
}

var whitelistCmd = &cobra.Command{
	Use:     "whitelist",
	Aliases: []string{"wl"},
	Short:   "manage collateral whitelist",
}

var whitelistSetCmd = &cobra.Command{
	Use:   "set <collateral> <ltv>",
	Short: "add a collateral or update its ltv",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		codec := provideAddressCodec()

		collateral, err := codec.Canonical(args[0])
		if err != nil {
			return err
		}

		ltv, err := decimal.NewFromString(args[1])
		if err != nil || !risk.ValidLTV(ltv) {
			return fmt.Errorf("%w: ltv must lie in [0, 1], got %s", core.ErrInvalidArgument, args[1])
		}

		name, _ := cmd.Flags().GetString("name")
		symbol, _ := cmd.Flags().GetString("symbol")

		database := provideDatabase()
		defer database.Close()

		whitelists := provideWhitelistStore(database)
		item := &core.WhitelistItem{
			Collateral: collateral.Hex(),
			Name:       name,
			Symbol:     symbol,
			LTV:        ltv,
		}

		if err := whitelists.Save(ctx, item); err != nil {
			return err
		}

		saved, err := whitelists.Find(ctx, collateral)
		if err != nil {
			return err
		}

		printFields(cmd, whitelistRowOf(codec, saved))
		return nil
	},
}

var whitelistGetCmd = &cobra.Command{
	Use:   "get <collateral>",
	Short: "show a whitelisted collateral",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		codec := provideAddressCodec()

		collateral, err := codec.Canonical(args[0])
		if err != nil {
			return err
		}

		database := provideDatabase()
		defer database.Close()

		item, err := provideWhitelistStore(database).Find(cmd.Context(), collateral)
		if err != nil {
			return err
		}

		if item.ID == 0 {
			return fmt.Errorf("%w: %s", core.ErrUnknownCollateral, args[0])
		}

		printFields(cmd, whitelistRowOf(codec, item))
		return nil
	},
}

var whitelistListCmd = &cobra.Command{
	Use:   "list",
	Short: "list whitelisted collaterals",
	RunE: func(cmd *cobra.Command, args []string) error {
		codec := provideAddressCodec()

		database := provideDatabase()
		defer database.Close()

		items, err := provideWhitelistStore(database).All(cmd.Context())
		if err != nil {
			return err
		}

		for idx, item := range items {
			if idx > 0 {
				cmd.Println()
			}

			printFields(cmd, whitelistRowOf(codec, item))
		}

		return nil
	},
}

func init() {
	rootCmd.AddCommand(whitelistCmd)
	whitelistCmd.AddCommand(whitelistSetCmd, whitelistGetCmd, whitelistListCmd)

	whitelistSetCmd.Flags().String("name", "", "collateral name")
	whitelistSetCmd.Flags().String("symbol", "", "collateral symbol")
}
