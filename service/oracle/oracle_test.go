package oracle

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"overseer/core"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPrice(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/contracts/terra1oracle/price" {
			http.NotFound(w, r)
			return
		}

		switch r.URL.Query().Get("quote") {
		case "bluna":
			assert.Equal(t, "uusd", r.URL.Query().Get("base"))
			_, _ = w.Write([]byte(`{"rate":"10.5","last_updated_base":1600000000,"last_updated_quote":1600000100}`))
		case "negative":
			_, _ = w.Write([]byte(`{"rate":"-1"}`))
		default:
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"no price"}`))
		}
	}))
	defer srv.Close()

	ctx := context.Background()
	oracle := New(core.Oracle{EndPoint: srv.URL + "/", Timeout: time.Second})

	price, err := oracle.Price(ctx, "terra1oracle", "uusd", "bluna")
	require.NoError(t, err)
	assert.Equal(t, "10.5", price.Rate.String())
	assert.Equal(t, int64(1600000000), price.LastUpdatedBase)
	assert.Equal(t, int64(1600000100), price.LastUpdatedQuote)

	_, err = oracle.Price(ctx, "terra1oracle", "uusd", "unknown")
	assert.True(t, errors.Is(err, core.ErrPriceUnavailable))
	assert.True(t, core.ErrorCodeOf(err).Retryable())

	_, err = oracle.Price(ctx, "terra1oracle", "uusd", "negative")
	assert.True(t, errors.Is(err, core.ErrPriceUnavailable))
}

func TestPriceUnreachable(t *testing.T) {
	oracle := New(core.Oracle{EndPoint: "http://127.0.0.1:1", Timeout: 100 * time.Millisecond})
	_, err := oracle.Price(context.Background(), "terra1oracle", "uusd", "bluna")
	assert.True(t, errors.Is(err, core.ErrPriceUnavailable))
}
