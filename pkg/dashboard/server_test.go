package dashboard

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/phishscan/pkg/analyzer"
	"github.com/phishscan/pkg/checker"
	"github.com/phishscan/pkg/config"
	"github.com/phishscan/pkg/db"
	"github.com/phishscan/pkg/fetcher"
)

const (
	bscToken = "0x1234567890abcdef1234567890abcdef12345678"
	solMint  = "EPjFWdd5AufqSSqeM2qN1xzybapC8G4wEGGkZwyTDt1v"
)

// fakeSource serves the API handlers without network access.
type fakeSource struct {
	transfers []analyzer.TransferRecord
	buys      map[string]analyzer.BuyRecord
	infoAge   time.Duration
}

func (s *fakeSource) FirstTransfersFourmeme(ctx context.Context, token string) ([]analyzer.TransferRecord, error) {
	return s.transfers, nil
}

func (s *fakeSource) FirstBuysFourmeme(ctx context.Context, token string, buyers []string) (map[string]analyzer.BuyRecord, error) {
	return s.buys, nil
}

func (s *fakeSource) FirstTransfersPumpfun(ctx context.Context, mint, curve string) ([]analyzer.TransferRecord, error) {
	return s.transfers, nil
}

func (s *fakeSource) FirstBuysPumpfun(ctx context.Context, mint string, buyers []string) (map[string]analyzer.BuyRecord, error) {
	return s.buys, nil
}

func (s *fakeSource) ResolveBondingCurve(ctx context.Context, mint string) (string, error) {
	return "", fetcher.ErrBondingCurveNotFound
}

func (s *fakeSource) TokenInfo(ctx context.Context, mint string) (*fetcher.TokenInfo, error) {
	return &fetcher.TokenInfo{Symbol: "TST", CreatedAt: time.Now().Add(-s.infoAge)}, nil
}

func (s *fakeSource) FetchMetadataJSON(ctx context.Context, uri string) (*fetcher.Metadata, error) {
	return nil, errors.New("no metadata")
}

func (s *fakeSource) HolderSnapshot(ctx context.Context, mint string) ([]analyzer.HolderBalance, error) {
	return nil, nil
}

func (s *fakeSource) Supply(ctx context.Context, mint string) (total, circulating float64, err error) {
	return 0, 0, errors.New("no supply data")
}

func (s *fakeSource) Liquidity(ctx context.Context, curve string) (*float64, error) {
	return nil, nil
}

func newTestDashboard(t *testing.T, src *fakeSource) *Dashboard {
	t.Helper()
	cfg := &config.Config{
		Port:              0,
		RecentPhishyLimit: 100,
		MaxTokenAge:       8 * time.Hour,
		MinLiquiditySOL:   10,
		CreatorMaxPct:     5,
		HolderMaxPct:      5,
		Top10MaxPct:       70,
	}
	store, err := db.NewStore(filepath.Join(t.TempDir(), "dash.db"))
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })

	return New(cfg, checker.New(cfg, src, store), store)
}

func postCheck(t *testing.T, d *Dashboard, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest("POST", "/api/check", strings.NewReader(body))
	rec := httptest.NewRecorder()
	cors(d.handleCheck)(rec, req)
	return rec
}

func tsp(sec int64) *time.Time {
	t := time.Unix(sec, 0).UTC()
	return &t
}

func TestHandleCheck_PhishyToken(t *testing.T) {
	src := &fakeSource{
		transfers: []analyzer.TransferRecord{
			{Address: "recv1", FirstTransferTime: time.Unix(100, 0).UTC(), TotalTransferred: 1000},
			{Address: "recv2", FirstTransferTime: time.Unix(200, 0).UTC(), TotalTransferred: 50},
		},
		buys: map[string]analyzer.BuyRecord{
			"recv2": {Address: "recv2", FirstBuyTime: tsp(150), TotalBought: 50},
		},
	}
	d := newTestDashboard(t, src)

	rec := postCheck(t, d, `{"token_address":"`+bscToken+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp struct {
		Success      bool   `json:"success"`
		Phishy       bool   `json:"phishy"`
		TokenAddress string `json:"token_address"`
		TokenType    string `json:"token_type"`
		Data         struct {
			TotalAddresses  int              `json:"total_addresses"`
			PhishyCount     int              `json:"phishy_count"`
			NormalCount     int              `json:"normal_count"`
			PhishyAddresses []map[string]any `json:"phishy_addresses"`
			Totals          *struct {
				TotalWithoutBuy float64 `json:"total_without_buy"`
			} `json:"totals"`
			RiskScore int `json:"risk_score"`
		} `json:"data"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))

	assert.True(t, resp.Success)
	assert.True(t, resp.Phishy)
	assert.Equal(t, bscToken, resp.TokenAddress)
	assert.Equal(t, "fourmeme", resp.TokenType)
	assert.Equal(t, 2, resp.Data.TotalAddresses)
	assert.Equal(t, 1, resp.Data.PhishyCount)
	assert.Equal(t, 1, resp.Data.NormalCount)
	require.Len(t, resp.Data.PhishyAddresses, 1)
	assert.Equal(t, "recv1", resp.Data.PhishyAddresses[0]["address"])
	require.NotNil(t, resp.Data.Totals)
	assert.Equal(t, 1000.0, resp.Data.Totals.TotalWithoutBuy)
	assert.Equal(t, 80, resp.Data.RiskScore)
}

func TestHandleCheck_PhishyResultAppendsToRecentLog(t *testing.T) {
	src := &fakeSource{
		transfers: []analyzer.TransferRecord{
			{Address: "recv1", FirstTransferTime: time.Unix(100, 0).UTC(), TotalTransferred: 10},
		},
	}
	d := newTestDashboard(t, src)

	rec := postCheck(t, d, `{"token_address":"`+bscToken+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	req := httptest.NewRequest("GET", "/api/recent-phishy", nil)
	out := httptest.NewRecorder()
	d.handleRecentPhishy(out, req)
	require.Equal(t, http.StatusOK, out.Code)

	var resp struct {
		Success bool                  `json:"success"`
		Count   int                   `json:"count"`
		Tokens  []db.PhishyTokenEntry `json:"tokens"`
	}
	require.NoError(t, json.Unmarshal(out.Body.Bytes(), &resp))
	assert.True(t, resp.Success)
	require.Equal(t, 1, resp.Count)
	assert.Equal(t, bscToken, resp.Tokens[0].TokenAddress)
	assert.Equal(t, 1, resp.Tokens[0].PhishyCount)
}

func TestHandleCheck_InfoConditionIs200WithInfoType(t *testing.T) {
	// Token older than the supported window: reported as info, not failure.
	d := newTestDashboard(t, &fakeSource{infoAge: 24 * time.Hour})

	rec := postCheck(t, d, `{"token_address":"`+solMint+`"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var resp struct {
		Success   bool   `json:"success"`
		Error     string `json:"error"`
		ErrorType string `json:"error_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Equal(t, "info", resp.ErrorType)
	assert.Contains(t, resp.Error, "hours ago")
}

func TestHandleCheck_InvalidAddressIs400(t *testing.T) {
	d := newTestDashboard(t, &fakeSource{})

	rec := postCheck(t, d, `{"token_address":"garbage"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	var resp struct {
		Success   bool   `json:"success"`
		ErrorType string `json:"error_type"`
	}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.False(t, resp.Success)
	assert.Empty(t, resp.ErrorType)
}

func TestHandleCheck_MissingAddressIs400(t *testing.T) {
	d := newTestDashboard(t, &fakeSource{})

	rec := postCheck(t, d, `{}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCheck_MalformedJSONIs400(t *testing.T) {
	d := newTestDashboard(t, &fakeSource{})

	rec := postCheck(t, d, `{not json`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestHandleCheck_GETIsRejected(t *testing.T) {
	d := newTestDashboard(t, &fakeSource{})

	req := httptest.NewRequest("GET", "/api/check", nil)
	rec := httptest.NewRecorder()
	d.handleCheck(rec, req)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestCORS_PreflightShortCircuits(t *testing.T) {
	called := false
	h := cors(func(w http.ResponseWriter, r *http.Request) { called = true })

	req := httptest.NewRequest("OPTIONS", "/api/check", nil)
	rec := httptest.NewRecorder()
	h(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.False(t, called)
}

func TestHandleHealth(t *testing.T) {
	d := newTestDashboard(t, &fakeSource{})

	req := httptest.NewRequest("GET", "/api/health", nil)
	rec := httptest.NewRecorder()
	d.handleHealth(rec, req)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}
