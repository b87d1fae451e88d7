package cmd

import (
	"context"
	"fmt"
	"overseer/core"
	"overseer/service/limit"
	"overseer/service/oracle"
	"overseer/service/overseer"
	"overseer/store/ledger"
	"overseer/store/protocol"
	"overseer/store/whitelist"
	"overseer/worker/dispatcher"
	"time"

	"github.com/fox-one/pkg/property"
	"github.com/fox-one/pkg/store/db"
	propertystore "github.com/fox-one/pkg/store/property"
	_ "github.com/lib/pq"
	"github.com/nats-io/nats.go"
	"github.com/nats-io/nats.go/jetstream"
	"github.com/sirupsen/logrus"
)

func provideDatabase() *db.DB {
	return db.MustOpen(cfg.DB)
}

func provideAddressCodec() core.AddressCodec {
	return core.AddressCodec{Prefix: cfg.App.AddressPrefix}
}

func provideLedger() *ledger.Store {
	s, err := ledger.Open(cfg.Ledger.Path)
	if err != nil {
		panic(err)
	}

	return s
}

func provideJetStream(ctx context.Context) (*nats.Conn, jetstream.JetStream) {
	nc, err := nats.Connect(cfg.Nats.URL,
		nats.Name("overseer"),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
		nats.DisconnectErrHandler(func(_ *nats.Conn, err error) {
			logrus.WithError(err).Warnln("nats disconnected")
		}),
		nats.ReconnectHandler(func(_ *nats.Conn) {
			logrus.Infoln("nats reconnected")
		}),
	)
	if err != nil {
		panic(fmt.Errorf("nats connect: %w", err))
	}

	js, err := jetstream.New(nc)
	if err != nil {
		nc.Close()
		panic(fmt.Errorf("jetstream: %w", err))
	}

	if _, err := js.CreateOrUpdateStream(ctx, jetstream.StreamConfig{
		Name:       "OVERSEER_INSTRUCTIONS",
		Subjects:   dispatcher.StreamSubjects(cfg.Nats.SubjectPrefix),
		Storage:    jetstream.FileStorage,
		Retention:  jetstream.LimitsPolicy,
		MaxAge:     72 * time.Hour,
		Duplicates: 10 * time.Minute,
	}); err != nil {
		nc.Close()
		panic(fmt.Errorf("create stream: %w", err))
	}

	return nc, js
}

// ---------------store-----------------------------------------

func providePropertyStore(db *db.DB) property.Store {
	return propertystore.New(db)
}

func provideWhitelistStore(db *db.DB) core.WhitelistStore {
	return whitelist.Cache(whitelist.New(db), cfg.WhitelistCache.Size, cfg.WhitelistCache.TTL)
}

func provideProtocolStore(db *db.DB) core.ProtocolConfigStore {
	return protocol.New(providePropertyStore(db))
}

// ------------------service------------------------------------

func provideOracle() core.PriceOracle {
	return oracle.New(cfg.Oracle)
}

func provideLimitService(protocols core.ProtocolConfigStore, whitelists core.WhitelistStore) core.BorrowLimitService {
	return limit.New(provideAddressCodec(), protocols, whitelists, provideOracle())
}

func provideOverseerService(loans core.LoanStore, limits core.BorrowLimitService, protocols core.ProtocolConfigStore) core.OverseerService {
	return overseer.New(provideAddressCodec(), loans, limits, protocols)
}

// ------------------worker-------------------------------------

func provideDispatcher(instructions core.InstructionStore, js jetstream.JetStream) *dispatcher.Dispatcher {
	return dispatcher.New(instructions, js, dispatcher.Config{
		SubjectPrefix: cfg.Nats.SubjectPrefix,
		Batch:         cfg.Dispatcher.Batch,
		Interval:      cfg.Dispatcher.Interval,
	})
}
