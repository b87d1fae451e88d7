package metrics

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"overseer/core"
	"testing"

	"github.com/go-chi/chi"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware(t *testing.T) {
	m := New()

	r := chi.NewRouter()
	r.Use(m.Middleware)
	r.Get("/loans/{borrower}", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusTeapot)
	})

	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/loans/abc", nil))
	r.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/loans/def", nil))

	assert.Equal(t, float64(2), testutil.ToFloat64(m.requests.WithLabelValues("/loans/{borrower}", "GET", "418")))
}

func TestObserveAction(t *testing.T) {
	m := New()
	m.ObserveAction("borrow", nil)
	m.ObserveAction("borrow", fmt.Errorf("%w: limit 0", core.ErrExceedsLimit))

	assert.Equal(t, float64(1), testutil.ToFloat64(m.actions.WithLabelValues("borrow", "ok")))
	assert.Equal(t, float64(1), testutil.ToFloat64(m.actions.WithLabelValues("borrow", core.ErrExceedsLimit.String())))
}
