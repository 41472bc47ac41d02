package dashboard

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/phishscan/pkg/checker"
	"github.com/phishscan/pkg/config"
	"github.com/phishscan/pkg/db"
)

type Dashboard struct {
	cfg     *config.Config
	checker *checker.Checker
	store   *db.Store
	srv     *http.Server
}

func New(cfg *config.Config, chk *checker.Checker, store *db.Store) *Dashboard {
	return &Dashboard{cfg: cfg, checker: chk, store: store}
}

func (d *Dashboard) Run(ctx context.Context) error {
	mux := http.NewServeMux()

	mux.HandleFunc("/api/check", cors(d.handleCheck))
	mux.HandleFunc("/api/recent-phishy", cors(d.handleRecentPhishy))
	mux.HandleFunc("/api/health", cors(d.handleHealth))
	mux.HandleFunc("/", d.serveFrontend)

	addr := fmt.Sprintf(":%d", d.cfg.Port)
	d.srv = &http.Server{Addr: addr, Handler: mux}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		d.srv.Shutdown(shutdownCtx)
	}()

	log.Info().Str("addr", addr).Msg("🌐 dashboard started")
	err := d.srv.ListenAndServe()
	if err == http.ErrServerClosed {
		return nil
	}
	return err
}

func cors(h http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == "OPTIONS" {
			w.WriteHeader(200)
			return
		}
		h(w, r)
	}
}

func writeJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

type checkRequest struct {
	TokenAddress string `json:"token_address"`
	BondingCurve string `json:"bonding_curve"`
}

type errorResponse struct {
	Success   bool   `json:"success"`
	Error     string `json:"error"`
	ErrorType string `json:"error_type,omitempty"` // "info" marks non-fatal conditions
}

type checkResponse struct {
	Success      bool       `json:"success"`
	Phishy       bool       `json:"phishy"`
	TokenAddress string     `json:"token_address"`
	TokenType    string     `json:"token_type"`
	Message      string     `json:"message,omitempty"`
	Data         *checkData `json:"data"`
}

type checkData struct {
	TotalAddresses  int                       `json:"total_addresses"`
	PhishyCount     int                       `json:"phishy_count"`
	NormalCount     int                       `json:"normal_count"`
	PhishyAddresses []any                     `json:"phishy_addresses"`
	Totals          *totalsData               `json:"totals,omitempty"`
	RiskScore       int                       `json:"risk_score"`
	Checks          any                       `json:"checks,omitempty"`
	LiquiditySOL    *float64                  `json:"liquidity_sol,omitempty"`
	BondingCurve    string                    `json:"bonding_curve,omitempty"`
	TokenInfo       any                       `json:"token_info,omitempty"`
	Metadata        any                       `json:"metadata,omitempty"`
	HolderAnalysis  any                       `json:"holder_analysis,omitempty"`
}

type totalsData struct {
	TotalTransferred float64 `json:"total_transferred"`
	TotalBought      float64 `json:"total_bought"`
	TotalWithoutBuy  float64 `json:"total_without_buy"`
}

// handleCheck runs a full token analysis. The request context is passed
// through to every upstream call, so a client disconnect aborts in-flight
// queries without touching any shared state.
func (d *Dashboard) handleCheck(w http.ResponseWriter, r *http.Request) {
	if r.Method != "POST" {
		http.Error(w, "POST only", http.StatusMethodNotAllowed)
		return
	}

	body, _ := io.ReadAll(io.LimitReader(r.Body, 1<<20))
	var req checkRequest
	if err := json.Unmarshal(body, &req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "invalid json"})
		return
	}
	if req.TokenAddress == "" {
		writeJSON(w, http.StatusBadRequest, errorResponse{Error: "Token address is required"})
		return
	}

	res, err := d.checker.Run(r.Context(), req.TokenAddress, req.BondingCurve)
	if err != nil {
		switch {
		case checker.IsInvalidInput(err):
			writeJSON(w, http.StatusBadRequest, errorResponse{Error: err.Error()})
		case checker.IsInfo(err):
			writeJSON(w, http.StatusOK, errorResponse{Error: err.Error(), ErrorType: "info"})
		default:
			log.Error().Err(err).Str("token", req.TokenAddress).Msg("check failed")
			writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		}
		return
	}

	writeJSON(w, http.StatusOK, toCheckResponse(res))
}

func toCheckResponse(res *checker.Result) checkResponse {
	data := &checkData{
		TotalAddresses:  res.TotalAddresses,
		PhishyCount:     res.PhishyCount,
		NormalCount:     res.NormalCount,
		PhishyAddresses: []any{},
		RiskScore:       res.RiskScore,
		LiquiditySOL:    res.LiquiditySOL,
		BondingCurve:    res.BondingCurve,
	}
	for _, p := range res.Classification.Phishy {
		data.PhishyAddresses = append(data.PhishyAddresses, p)
	}
	if res.PhishyCount > 0 {
		data.Totals = &totalsData{
			TotalTransferred: res.Totals.TotalTransferred,
			TotalBought:      res.Totals.TotalBought,
			TotalWithoutBuy:  res.Totals.TotalWithoutBuy,
		}
	}
	if len(res.Checks) > 0 {
		data.Checks = res.Checks
	}
	if res.TokenInfo != nil {
		data.TokenInfo = res.TokenInfo
	}
	if res.Metadata != nil {
		data.Metadata = res.Metadata
	}
	if res.Holders != nil {
		data.HolderAnalysis = res.Holders
	}

	return checkResponse{
		Success:      true,
		Phishy:       res.Phishy,
		TokenAddress: res.TokenAddress,
		TokenType:    string(res.TokenType),
		Message:      res.Message,
		Data:         data,
	}
}

func (d *Dashboard) handleRecentPhishy(w http.ResponseWriter, r *http.Request) {
	entries, err := d.store.GetRecent(d.cfg.RecentPhishyLimit)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse{Error: err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"success": true,
		"tokens":  entries,
		"count":   len(entries),
	})
}

func (d *Dashboard) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}
