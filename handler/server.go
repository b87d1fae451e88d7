package handler

import (
	"net/http"
	"overseer/core"
	"overseer/handler/metrics"
	"overseer/handler/rest"

	"github.com/go-chi/chi"
)

// Server server
type Server struct {
	codec      core.AddressCodec
	overseers  core.OverseerService
	whitelists core.WhitelistStore
	protocols  core.ProtocolConfigStore
	metrics    *metrics.Metrics
}

// New new server function
func New(
	codec core.AddressCodec,
	overseers core.OverseerService,
	whitelists core.WhitelistStore,
	protocols core.ProtocolConfigStore,
	m *metrics.Metrics,
) Server {
	return Server{
		codec:      codec,
		overseers:  overseers,
		whitelists: whitelists,
		protocols:  protocols,
		metrics:    m,
	}
}

// HandleRestAPI handle restful apis
func (s Server) HandleRestAPI() http.Handler {
	r := chi.NewRouter()
	r.Use(resetRoutePath)
	r.Use(s.metrics.Middleware)
	r.Mount("/", rest.Handle(s.codec, s.overseers, s.whitelists, s.protocols, s.metrics))
	return r
}

// HandleMetrics prometheus exposition
func (s Server) HandleMetrics() http.Handler {
	return s.metrics.Handler()
}

func resetRoutePath(next http.Handler) http.Handler {
	fn := func(w http.ResponseWriter, r *http.Request) {
		ctx := r.Context()
		if c := chi.RouteContext(ctx); c != nil {
			c.RoutePath = r.URL.Path
		}

		next.ServeHTTP(w, r)
	}

	return http.HandlerFunc(fn)
}
