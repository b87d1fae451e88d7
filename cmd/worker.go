package cmd

import (
	"overseer/worker"
	"sync"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/spf13/cobra"
)

var workerCmd = &cobra.Command{
	Use:   "worker",
	Short: "deliver committed instructions without serving the api",
	Long: "deliver committed instructions without serving the api.\n" +
		"The ledger is opened exclusively, run it instead of `server`, not next to it.",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := signal.WithContext(cmd.Context())

		log := logger.FromContext(ctx)
		ctx = logger.WithContext(ctx, log)

		loans := provideLedger()
		defer loans.Close()

		nc, js := provideJetStream(ctx)
		defer nc.Close()

		workers := []worker.Worker{
			provideDispatcher(loans, js),
		}

		wg := sync.WaitGroup{}
		for _, w := range workers {
			wg.Add(1)

			go func(w worker.Worker) {
				defer wg.Done()
				if err := w.Run(ctx); err != nil {
					log.WithError(err).Errorln("worker stopped")
				}
			}(w)
		}

		wg.Wait()
	},
}

func init() {
	rootCmd.AddCommand(workerCmd)
}
