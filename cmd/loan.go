package cmd

import (
	"encoding/json"
	"overseer/handler/views"

	"github.com/spf13/cobra"
)

var loanCmd = &cobra.Command{
	Use:   "loan <borrower>",
	Short: "show a borrower's loan, reads the ledger directly",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		codec := provideAddressCodec()

		borrower, err := codec.Canonical(args[0])
		if err != nil {
			return err
		}

		loans := provideLedger()
		defer loans.Close()

		var v interface{}
		if withLimit, _ := cmd.Flags().GetBool("limit"); withLimit {
			database := provideDatabase()
			defer database.Close()

			protocols := provideProtocolStore(database)
			limits := provideLimitService(protocols, provideWhitelistStore(database))

			loan, limit, err := provideOverseerService(loans, limits, protocols).BorrowLimit(ctx, borrower)
			if err != nil {
				return err
			}

			v = views.BorrowLimitView(codec, loan, limit)
		} else {
			loan, err := loans.Find(ctx, borrower)
			if err != nil {
				return err
			}

			v = views.LoanView(codec, loan)
		}

		data, err := json.MarshalIndent(v, "", "  ")
		if err != nil {
			return err
		}

		cmd.Println(string(data))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(loanCmd)
	loanCmd.Flags().Bool("limit", false, "also value the collaterals and show the borrow limit")
}
