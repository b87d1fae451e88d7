package hc

import (
	"context"
	"net/http"
	"overseer/handler/render"
	"time"

	"github.com/go-chi/chi"
	"github.com/go-chi/chi/middleware"
)

// Check dependency probe, nil when healthy
type Check func(ctx context.Context) error

// Handle handle hc request
func Handle(ver string, checks map[string]Check) http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.NoCache)
	r.Handle("/", handle(ver, checks))
	return r
}

func handle(version string, checks map[string]Check) http.HandlerFunc {
	b := time.Now()
	return func(w http.ResponseWriter, r *http.Request) {
		uptime := time.Since(b).Truncate(time.Millisecond)

		status := render.H{}
		for name, check := range checks {
			if err := check(r.Context()); err != nil {
				status[name] = err.Error()
				continue
			}

			status[name] = "ok"
		}

		render.JSON(w, render.H{
			"uptime":  uptime.String(),
			"version": version,
			"checks":  status,
		})
	}
}
