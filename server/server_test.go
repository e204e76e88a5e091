package server

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bogleworks/boglesim/advisor"
	"github.com/bogleworks/boglesim/portfolio"
	"github.com/bogleworks/boglesim/simulate"
	"github.com/bogleworks/boglesim/store"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(&simulate.Engine{}, st, nil, 200)
}

func doJSON(t *testing.T, mux *http.ServeMux, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			t.Fatalf("encode body: %v", err)
		}
	}
	req := httptest.NewRequest(method, path, &buf)
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	return w
}

func decodeBody(t *testing.T, w *httptest.ResponseRecorder, dst any) {
	t.Helper()
	if err := json.Unmarshal(w.Body.Bytes(), dst); err != nil {
		t.Fatalf("decode response: %v\nbody: %s", err, w.Body.String())
	}
}

func simReq(save bool) map[string]any {
	return map[string]any{
		"assumption": map[string]any{
			"starting_balance":    100000,
			"annual_contribution": 12000,
			"horizon_years":       10,
			"mean_return":         0.07,
			"volatility":          0.15,
		},
		"trials": 100,
		"seed":   42,
		"save":   save,
	}
}

func TestHealthz(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	w := doJSON(t, mux, http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, w.Code)
}

func TestSimulateEndpoint(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	w := doJSON(t, mux, http.MethodPost, "/api/simulate", simReq(false))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RunID   string            `json:"run_id"`
		Summary *simulate.Summary `json:"summary"`
	}
	decodeBody(t, w, &resp)
	assert.Empty(t, resp.RunID)
	assert.Equal(t, 100, resp.Summary.Trials)
	assert.Equal(t, int64(42), resp.Summary.Seed)
	assert.Len(t, resp.Summary.Years, 10)
}

func TestSimulateSavesRun(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	w := doJSON(t, mux, http.MethodPost, "/api/simulate", simReq(true))
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		RunID string `json:"run_id"`
	}
	decodeBody(t, w, &resp)
	assert.NotEmpty(t, resp.RunID)

	got := doJSON(t, mux, http.MethodGet, "/api/runs/"+resp.RunID, nil)
	assert.Equal(t, http.StatusOK, got.Code)

	var rec store.RunRecord
	decodeBody(t, got, &rec)
	assert.Equal(t, resp.RunID, rec.ID)
	assert.Equal(t, 10, rec.Assumption.HorizonYears)

	list := doJSON(t, mux, http.MethodGet, "/api/runs", nil)
	assert.Equal(t, http.StatusOK, list.Code)
	var listResp struct {
		Runs []store.RunInfo `json:"runs"`
	}
	decodeBody(t, list, &listResp)
	assert.Len(t, listResp.Runs, 1)
}

func TestSimulateInvalidAssumption(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	req := simReq(false)
	req["assumption"].(map[string]any)["horizon_years"] = 0

	w := doJSON(t, mux, http.MethodPost, "/api/simulate", req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestSimulateInvalidTrials(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	req := simReq(false)
	req["trials"] = simulate.DefaultMaxTrials + 1

	w := doJSON(t, mux, http.MethodPost, "/api/simulate", req)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestSimulateMalformedBody(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	req := httptest.NewRequest(http.MethodPost, "/api/simulate", bytes.NewBufferString("{not json"))
	w := httptest.NewRecorder()
	mux.ServeHTTP(w, req)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestSimulateChartReturnsPNG(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	w := doJSON(t, mux, http.MethodPost, "/api/simulate/chart", simReq(false))
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "image/png", w.Header().Get("Content-Type"))
	assert.True(t, bytes.HasPrefix(w.Body.Bytes(), []byte("\x89PNG")))
}

func TestGrowthEndpoint(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	w := doJSON(t, mux, http.MethodPost, "/api/growth", map[string]any{
		"initial":               10000,
		"monthly_contribution":  500,
		"years":                 5,
		"annual_return_percent": 7,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Years []struct {
			Month   int     `json:"month"`
			Balance float64 `json:"balance"`
		} `json:"years"`
	}
	decodeBody(t, w, &resp)
	assert.Len(t, resp.Years, 6)
	assert.Equal(t, 10000.0, resp.Years[0].Balance)
}

func TestGrowthEndpointRejectsBadYears(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	w := doJSON(t, mux, http.MethodPost, "/api/growth", map[string]any{
		"initial": 10000,
		"years":   0,
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGrowthPortfolioEndpoint(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	w := doJSON(t, mux, http.MethodPost, "/api/growth/portfolio", portfolio.Default())
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Years []struct {
			TotalBalance float64 `json:"total_balance"`
		} `json:"years"`
	}
	decodeBody(t, w, &resp)
	assert.Len(t, resp.Years, 31)
}

func TestFeeImpactEndpoint(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	w := doJSON(t, mux, http.MethodPost, "/api/growth/fees", map[string]any{
		"initial":              50000,
		"monthly_contribution": 500,
		"years":                10,
		"gross_return_percent": 7,
		"current_ratio":        0.0075,
		"alternative_ratio":    0.0003,
	})
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Years []struct {
			Impact float64 `json:"impact"`
		} `json:"years"`
	}
	decodeBody(t, w, &resp)
	assert.Len(t, resp.Years, 11)
	assert.Greater(t, resp.Years[10].Impact, 0.0)
}

func TestFundsEndpoint(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()

	w := doJSON(t, mux, http.MethodGet, "/api/funds", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var all struct {
		Funds []struct {
			Ticker string `json:"ticker"`
		} `json:"funds"`
	}
	decodeBody(t, w, &all)
	assert.Len(t, all.Funds, 33)

	w = doJSON(t, mux, http.MethodGet, "/api/funds?category=US+Total+Bond", nil)
	assert.Equal(t, http.StatusOK, w.Code)
	var filtered struct {
		Funds []struct {
			Category string `json:"category"`
		} `json:"funds"`
	}
	decodeBody(t, w, &filtered)
	assert.NotEmpty(t, filtered.Funds)
	for _, f := range filtered.Funds {
		assert.Equal(t, "US Total Bond", f.Category)
	}
}

func TestTaxPlaceEndpoint(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	w := doJSON(t, mux, http.MethodPost, "/api/taxplace", portfolio.Default())
	assert.Equal(t, http.StatusOK, w.Code)

	var resp struct {
		Placements []struct {
			Ticker  string  `json:"ticker"`
			Account string  `json:"account"`
			Amount  float64 `json:"amount"`
		} `json:"placements"`
		Principles []struct {
			Title string `json:"title"`
		} `json:"principles"`
	}
	decodeBody(t, w, &resp)
	assert.Len(t, resp.Placements, 5)
	assert.Len(t, resp.Principles, 5)
	assert.Equal(t, "BND", resp.Placements[0].Ticker)
}

func TestAdvisorUnavailableWithoutKey(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	for _, path := range []string{"/api/advisor", "/api/advisor/compare", "/api/advisor/allocation"} {
		w := doJSON(t, mux, http.MethodPost, path, map[string]any{"question": "hi"})
		assert.Equal(t, http.StatusServiceUnavailable, w.Code, path)
	}
}

// newAdvisorServer has a configured advisor so request validation runs;
// tests only exercise paths that fail before any API call is made.
func newAdvisorServer(t *testing.T) *Server {
	t.Helper()
	st, err := store.NewSQLite(filepath.Join(t.TempDir(), "test.db"))
	if err != nil {
		t.Fatalf("open store: %v", err)
	}
	t.Cleanup(func() { st.Close() })
	return New(&simulate.Engine{}, st, advisor.New("sk-test", ""), 200)
}

func TestAdvisorCompareValidation(t *testing.T) {
	t.Parallel()

	mux := newAdvisorServer(t).Mux()

	w := doJSON(t, mux, http.MethodPost, "/api/advisor/compare", map[string]any{
		"tickers": []string{"VTI"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)

	w = doJSON(t, mux, http.MethodPost, "/api/advisor/compare", map[string]any{
		"tickers": []string{"VTI", "NOPE"},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
	assert.Contains(t, w.Body.String(), "NOPE")
}

func TestAdvisorAllocationValidation(t *testing.T) {
	t.Parallel()

	mux := newAdvisorServer(t).Mux()
	w := doJSON(t, mux, http.MethodPost, "/api/advisor/allocation", map[string]any{
		"age":            0,
		"risk_tolerance": "moderate",
	})
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestPortfolioLifecycle(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()

	created := doJSON(t, mux, http.MethodPost, "/api/portfolios", portfolio.Default())
	assert.Equal(t, http.StatusCreated, created.Code)
	var createResp struct {
		ID string `json:"id"`
	}
	decodeBody(t, created, &createResp)
	assert.NotEmpty(t, createResp.ID)

	got := doJSON(t, mux, http.MethodGet, "/api/portfolios/"+createResp.ID, nil)
	assert.Equal(t, http.StatusOK, got.Code)
	var p portfolio.Portfolio
	decodeBody(t, got, &p)
	assert.Equal(t, portfolio.Default(), p)

	list := doJSON(t, mux, http.MethodGet, "/api/portfolios", nil)
	assert.Equal(t, http.StatusOK, list.Code)
	var listResp struct {
		Portfolios []store.PortfolioInfo `json:"portfolios"`
	}
	decodeBody(t, list, &listResp)
	assert.Len(t, listResp.Portfolios, 1)

	deleted := doJSON(t, mux, http.MethodDelete, "/api/portfolios/"+createResp.ID, nil)
	assert.Equal(t, http.StatusNoContent, deleted.Code)

	missing := doJSON(t, mux, http.MethodGet, "/api/portfolios/"+createResp.ID, nil)
	assert.Equal(t, http.StatusNotFound, missing.Code)
}

func TestSavePortfolioRejectsInvalid(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	p := portfolio.Default()
	p.Allocation.Bond = 0 // now sums to 90

	w := doJSON(t, mux, http.MethodPost, "/api/portfolios", p)
	assert.Equal(t, http.StatusUnprocessableEntity, w.Code)
}

func TestGetRunNotFound(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	w := doJSON(t, mux, http.MethodGet, "/api/runs/nope", nil)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestMethodNotAllowed(t *testing.T) {
	t.Parallel()

	mux := newTestServer(t).Mux()
	w := doJSON(t, mux, http.MethodGet, "/api/simulate", nil)
	assert.Equal(t, http.StatusMethodNotAllowed, w.Code)
}
