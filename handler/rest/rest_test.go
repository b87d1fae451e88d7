package rest

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"overseer/core"
	"overseer/handler/auth"
	"overseer/handler/metrics"
	"overseer/internal/fake"
	"overseer/service/limit"
	"overseer/service/overseer"
	"overseer/store/ledger"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/syndtr/goleveldb/leveldb"
	"github.com/syndtr/goleveldb/leveldb/storage"
)

var codec = core.AddressCodec{Prefix: "terra"}

var (
	borrower = codec.MustHuman(fake.Address(0x01))
	assetX   = codec.MustHuman(fake.Address(0x10))
)

func newHandler(t *testing.T) http.Handler {
	db, err := leveldb.Open(storage.NewMemStorage(), nil)
	require.NoError(t, err)

	loans, err := ledger.New(db)
	require.NoError(t, err)
	t.Cleanup(func() { loans.Close() })

	protocols := &fake.Protocol{Config: &core.ProtocolConfig{
		MarketContract: fake.Address(0xaa),
		OracleContract: fake.Address(0xbb),
		BaseDenom:      "uusd",
	}}

	whitelists := fake.NewWhitelist()
	whitelists.Set(fake.Address(0x10), "0.5")

	oracle := fake.NewOracle()
	oracle.Set("uusd", assetX, "10", 1600000000)

	limits := limit.New(codec, protocols, whitelists, oracle)
	overseers := overseer.New(codec, loans, limits, protocols)
	return Handle(codec, overseers, whitelists, protocols, metrics.New())
}

func do(t *testing.T, h http.Handler, method, path, sender string, body interface{}) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}

	r := httptest.NewRequest(method, path, &buf).WithContext(context.Background())
	if sender != "" {
		r.Header.Set(auth.SenderHeader, sender)
	}

	w := httptest.NewRecorder()
	h.ServeHTTP(w, r)
	return w
}

type errorBody struct {
	Code int    `json:"code"`
	Msg  string `json:"msg"`
}

func decodeError(t *testing.T, w *httptest.ResponseRecorder) errorBody {
	var body errorBody
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	return body
}

func TestBorrowFlow(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodPost, "/loans/lock", borrower, map[string]interface{}{
		"deposits": []map[string]string{{"asset": assetX, "amount": "100"}},
	})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	var resp struct {
		Instructions []struct {
			Kind   string `json:"kind"`
			Amount string `json:"amount"`
		} `json:"instructions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	require.Len(t, resp.Instructions, 1)
	assert.Equal(t, "lock_collateral", resp.Instructions[0].Kind)

	w = do(t, h, http.MethodGet, "/loans/"+borrower+"/borrow-limit", "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var limit struct {
		BorrowLimit  string `json:"borrow_limit"`
		OldestUpdate int64  `json:"oldest_update"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &limit))
	assert.Equal(t, "500", limit.BorrowLimit)
	assert.Equal(t, int64(1600000000), limit.OldestUpdate)

	w = do(t, h, http.MethodPost, "/loans/borrow", borrower, map[string]string{"amount": "500"})
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())

	w = do(t, h, http.MethodPost, "/loans/borrow", borrower, map[string]string{"amount": "1"})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, int(core.ErrExceedsLimit), decodeError(t, w).Code)

	w = do(t, h, http.MethodPost, "/loans/unlock", borrower, map[string]interface{}{
		"withdrawals": []map[string]string{{"asset": assetX, "amount": "100"}},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Equal(t, int(core.ErrInsufficientCollateral), decodeError(t, w).Code)

	w = do(t, h, http.MethodGet, "/loans/"+borrower, "", nil)
	require.Equal(t, http.StatusOK, w.Code)
	var loan struct {
		BorrowAmount string `json:"borrow_amount"`
		Collaterals  []struct {
			Asset  string `json:"asset"`
			Amount string `json:"amount"`
		} `json:"collaterals"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &loan))
	assert.Equal(t, "500", loan.BorrowAmount)
	require.Len(t, loan.Collaterals, 1)
	assert.Equal(t, assetX, loan.Collaterals[0].Asset)
}

func TestRequestErrors(t *testing.T) {
	h := newHandler(t)

	for _, tc := range []struct {
		name   string
		path   string
		sender string
		body   interface{}
		status int
		code   core.ErrorCode
	}{
		{
			name:   "no sender",
			path:   "/loans/borrow",
			body:   map[string]string{"amount": "1"},
			status: http.StatusUnauthorized,
			code:   core.ErrUnauthorized,
		},
		{
			name:   "bad sender",
			path:   "/loans/borrow",
			sender: "cosmos1xyz",
			body:   map[string]string{"amount": "1"},
			status: http.StatusBadRequest,
			code:   core.ErrInvalidAddress,
		},
		{
			name:   "amount not numeric",
			path:   "/loans/borrow",
			sender: borrower,
			body:   map[string]string{"amount": "-1"},
			status: http.StatusBadRequest,
			code:   core.ErrInvalidArgument,
		},
		{
			name:   "empty deposits",
			path:   "/loans/lock",
			sender: borrower,
			body:   map[string]interface{}{"deposits": []interface{}{}},
			status: http.StatusBadRequest,
			code:   core.ErrInvalidArgument,
		},
		{
			name:   "underflow",
			path:   "/loans/unlock",
			sender: borrower,
			body: map[string]interface{}{
				"withdrawals": []map[string]string{{"asset": assetX, "amount": "1"}},
			},
			status: http.StatusBadRequest,
			code:   core.ErrUnderflow,
		},
	} {
		t.Run(tc.name, func(t *testing.T) {
			w := do(t, h, http.MethodPost, tc.path, tc.sender, tc.body)
			assert.Equal(t, tc.status, w.Code, w.Body.String())
			assert.Equal(t, int(tc.code), decodeError(t, w).Code)
		})
	}
}

func TestLiquidate(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodPost, "/loans/liquidate", "", map[string]string{"borrower": borrower})
	require.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Instructions []interface{} `json:"instructions"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Empty(t, resp.Instructions)
}

func TestProtocol(t *testing.T) {
	h := newHandler(t)

	w := do(t, h, http.MethodGet, "/protocol", "", nil)
	require.Equal(t, http.StatusOK, w.Code)

	var cfg struct {
		MarketContract string `json:"market_contract"`
		BaseDenom      string `json:"base_denom"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &cfg))
	assert.Equal(t, codec.MustHuman(fake.Address(0xaa)), cfg.MarketContract)
	assert.Equal(t, "uusd", cfg.BaseDenom)
}
