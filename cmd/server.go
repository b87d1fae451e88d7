package cmd

import (
	"context"
	"fmt"
	"net/http"
	"overseer/handler"
	"overseer/handler/hc"
	"overseer/handler/metrics"
	"time"

	"github.com/drone/signal"
	"github.com/fox-one/pkg/logger"
	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
	"github.com/rs/cors"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"
)

var serverCmd = &cobra.Command{
	Use:   "server",
	Short: "run overseer api server",
	Run: func(cmd *cobra.Command, args []string) {
		ctx := cmd.Context()

		database := provideDatabase()
		defer database.Close()

		loans := provideLedger()
		defer loans.Close()

		whitelists := provideWhitelistStore(database)
		protocols := provideProtocolStore(database)
		limits := provideLimitService(protocols, whitelists)
		overseers := provideOverseerService(loans, limits, protocols)

		m := metrics.New()
		svr := handler.New(provideAddressCodec(), overseers, whitelists, protocols, m)

		mux := chi.NewMux()
		mux.Use(middleware.Recoverer)
		mux.Use(middleware.StripSlashes)
		mux.Use(cors.AllowAll().Handler)
		mux.Use(logger.WithRequestID)
		mux.Use(middleware.Logger)
		mux.Use(middleware.NewCompressor(5).Handler)

		{
			//hc
			mux.Mount("/hc", hc.Handle(rootCmd.Version, map[string]hc.Check{
				"db": func(ctx context.Context) error {
					return database.View().DB().PingContext(ctx)
				},
			}))
		}

		{
			//metrics
			mux.Mount("/metrics", svr.HandleMetrics())
		}

		{
			//restful api
			mux.Mount("/api", svr.HandleRestAPI())
		}

		port, _ := cmd.Flags().GetInt("port")
		addr := fmt.Sprintf(":%d", port)

		server := &http.Server{
			Addr:    addr,
			Handler: mux,
		}

		ctx, quit := context.WithCancel(ctx)
		done := make(chan struct{}, 1)
		ctx = signal.WithContextFunc(ctx, func() {
			quit()

			ctx, cancel := context.WithTimeout(context.Background(), 3*time.Second)
			defer cancel()

			if err := server.Shutdown(ctx); err != nil {
				logrus.WithError(err).Error("graceful shutdown server failed")
			}

			close(done)
		})

		var g errgroup.Group

		if dispatch, _ := cmd.Flags().GetBool("dispatch"); dispatch {
			nc, js := provideJetStream(ctx)
			defer nc.Close()

			d := provideDispatcher(loans, js)
			g.Go(func() error {
				return d.Run(ctx)
			})
		}

		logrus.Infoln("serve at", addr)
		if err := server.ListenAndServe(); err != http.ErrServerClosed {
			logrus.WithError(err).Fatal("server aborted")
		}

		<-done

		if err := g.Wait(); err != nil {
			logrus.WithError(err).Errorln("dispatcher stopped")
		}
	},
}

func init() {
	rootCmd.AddCommand(serverCmd)
	serverCmd.Flags().IntP("port", "p", 9000, "server port")
	serverCmd.Flags().Bool("dispatch", true, "deliver committed instructions from this process")
}
