// Package server exposes the optimizer over HTTP as a JSON API: the
// boundary consumed by the web UI.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/bogleworks/boglesim/advisor"
	"github.com/bogleworks/boglesim/chart"
	"github.com/bogleworks/boglesim/funds"
	"github.com/bogleworks/boglesim/growth"
	"github.com/bogleworks/boglesim/portfolio"
	"github.com/bogleworks/boglesim/simulate"
	"github.com/bogleworks/boglesim/store"
	"github.com/bogleworks/boglesim/taxplace"
)

// Server wires the calculation engines, the store, and the optional
// advisor behind an http.ServeMux.
type Server struct {
	engine        *simulate.Engine
	store         store.Store
	advisor       *advisor.Advisor // nil when no API key is configured
	defaultTrials int
}

// New builds a server. adv may be nil; the advisor endpoint then
// responds 503.
func New(engine *simulate.Engine, st store.Store, adv *advisor.Advisor, defaultTrials int) *Server {
	if defaultTrials < 1 {
		defaultTrials = 5000
	}
	return &Server{
		engine:        engine,
		store:         st,
		advisor:       adv,
		defaultTrials: defaultTrials,
	}
}

// Mux returns the route table.
func (s *Server) Mux() *http.ServeMux {
	mux := http.NewServeMux()

	mux.HandleFunc("POST /api/simulate", s.handleSimulate)
	mux.HandleFunc("POST /api/simulate/chart", s.handleSimulateChart)
	mux.HandleFunc("POST /api/growth", s.handleGrowth)
	mux.HandleFunc("POST /api/growth/portfolio", s.handleGrowthPortfolio)
	mux.HandleFunc("POST /api/growth/fees", s.handleFeeImpact)
	mux.HandleFunc("GET /api/funds", s.handleFunds)
	mux.HandleFunc("POST /api/taxplace", s.handleTaxPlace)
	mux.HandleFunc("POST /api/advisor", s.handleAdvisor)
	mux.HandleFunc("POST /api/advisor/compare", s.handleAdvisorCompare)
	mux.HandleFunc("POST /api/advisor/allocation", s.handleAdvisorAllocation)

	mux.HandleFunc("POST /api/portfolios", s.handleSavePortfolio)
	mux.HandleFunc("GET /api/portfolios", s.handleListPortfolios)
	mux.HandleFunc("GET /api/portfolios/{id}", s.handleGetPortfolio)
	mux.HandleFunc("DELETE /api/portfolios/{id}", s.handleDeletePortfolio)

	mux.HandleFunc("GET /api/runs", s.handleListRuns)
	mux.HandleFunc("GET /api/runs/{id}", s.handleGetRun)

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})

	return mux
}

// ListenAndServe starts the server on addr.
func (s *Server) ListenAndServe(addr string) error {
	return http.ListenAndServe(addr, s.Mux())
}

type simulateRequest struct {
	Assumption simulate.Assumption `json:"assumption"`
	Trials     int                 `json:"trials,omitempty"`
	Seed       *int64              `json:"seed,omitempty"`
	Save       bool                `json:"save,omitempty"`
}

type simulateResponse struct {
	RunID   string            `json:"run_id,omitempty"`
	Summary *simulate.Summary `json:"summary"`
}

func (s *Server) runSimulation(ctx context.Context, req simulateRequest) (*simulate.Summary, error) {
	trials := req.Trials
	if trials == 0 {
		trials = s.defaultTrials
	}
	return s.engine.Run(ctx, req.Assumption, trials, req.Seed)
}

func (s *Server) handleSimulate(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if !decode(w, r, &req) {
		return
	}

	summary, err := s.runSimulation(r.Context(), req)
	if err != nil {
		writeSimError(w, err)
		return
	}

	resp := simulateResponse{Summary: summary}
	if req.Save {
		runID, err := s.store.SaveRun(req.Assumption, summary)
		if err != nil {
			writeError(w, http.StatusInternalServerError, err)
			return
		}
		resp.RunID = runID
	}
	writeJSON(w, http.StatusOK, resp)
}

func (s *Server) handleSimulateChart(w http.ResponseWriter, r *http.Request) {
	var req simulateRequest
	if !decode(w, r, &req) {
		return
	}

	summary, err := s.runSimulation(r.Context(), req)
	if err != nil {
		writeSimError(w, err)
		return
	}

	png, err := chart.RenderFan(summary, "")
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(png)
}

type growthRequest struct {
	Initial             float64 `json:"initial"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	Years               int     `json:"years"`
	AnnualReturnPercent float64 `json:"annual_return_percent"`
}

func (s *Server) handleGrowth(w http.ResponseWriter, r *http.Request) {
	var req growthRequest
	if !decode(w, r, &req) {
		return
	}

	points, err := growth.Project(req.Initial, req.MonthlyContribution, req.Years, req.AnnualReturnPercent)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"years": growth.Annual(points)})
}

func (s *Server) handleGrowthPortfolio(w http.ResponseWriter, r *http.Request) {
	var p portfolio.Portfolio
	if !decode(w, r, &p) {
		return
	}

	rows, err := growth.ProjectPortfolio(p)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"years": rows})
}

type feeImpactRequest struct {
	Initial             float64 `json:"initial"`
	MonthlyContribution float64 `json:"monthly_contribution"`
	Years               int     `json:"years"`
	GrossReturnPercent  float64 `json:"gross_return_percent"`
	CurrentRatio        float64 `json:"current_ratio"`
	AlternativeRatio    float64 `json:"alternative_ratio"`
}

func (s *Server) handleFeeImpact(w http.ResponseWriter, r *http.Request) {
	var req feeImpactRequest
	if !decode(w, r, &req) {
		return
	}

	rows, err := growth.FeeImpact(req.Initial, req.MonthlyContribution, req.Years,
		req.GrossReturnPercent, req.CurrentRatio, req.AlternativeRatio)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"years": rows})
}

func (s *Server) handleFunds(w http.ResponseWriter, r *http.Request) {
	category := r.URL.Query().Get("category")
	if category == "" {
		writeJSON(w, http.StatusOK, map[string]any{"funds": funds.All()})
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"funds": funds.ByCategory(category)})
}

func (s *Server) handleTaxPlace(w http.ResponseWriter, r *http.Request) {
	var p portfolio.Portfolio
	if !decode(w, r, &p) {
		return
	}

	plan, err := taxplace.Recommend(p)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"placements": plan,
		"principles": taxplace.Principles(),
	})
}

type advisorRequest struct {
	Question string `json:"question"`
}

func (s *Server) handleAdvisor(w http.ResponseWriter, r *http.Request) {
	if s.advisor == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("advisor is not configured"))
		return
	}

	var req advisorRequest
	if !decode(w, r, &req) {
		return
	}

	answer, err := s.advisor.Ask(r.Context(), req.Question)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"answer": answer})
}

type compareRequest struct {
	Tickers []string `json:"tickers"`
}

func (s *Server) handleAdvisorCompare(w http.ResponseWriter, r *http.Request) {
	if s.advisor == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("advisor is not configured"))
		return
	}

	var req compareRequest
	if !decode(w, r, &req) {
		return
	}
	if len(req.Tickers) < 2 {
		writeError(w, http.StatusUnprocessableEntity, errors.New("need at least two tickers to compare"))
		return
	}

	list := make([]funds.Fund, 0, len(req.Tickers))
	for _, ticker := range req.Tickers {
		f, ok := funds.ByTicker(ticker)
		if !ok {
			writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("unknown fund %q", ticker))
			return
		}
		list = append(list, f)
	}

	answer, err := s.advisor.CompareFunds(r.Context(), list)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"answer": answer})
}

type allocationRequest struct {
	Age           int    `json:"age"`
	RiskTolerance string `json:"risk_tolerance"`
	Situation     string `json:"situation"`
}

func (s *Server) handleAdvisorAllocation(w http.ResponseWriter, r *http.Request) {
	if s.advisor == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("advisor is not configured"))
		return
	}

	var req allocationRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Age < 1 {
		writeError(w, http.StatusUnprocessableEntity, fmt.Errorf("age must be positive, got %d", req.Age))
		return
	}

	answer, err := s.advisor.AllocationAdvice(r.Context(), req.Age, req.RiskTolerance, req.Situation)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"answer": answer})
}

func (s *Server) handleSavePortfolio(w http.ResponseWriter, r *http.Request) {
	var p portfolio.Portfolio
	if !decode(w, r, &p) {
		return
	}

	pid, err := s.store.SavePortfolio(p)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]any{"id": pid})
}

func (s *Server) handleListPortfolios(w http.ResponseWriter, _ *http.Request) {
	infos, err := s.store.ListPortfolios()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"portfolios": infos})
}

func (s *Server) handleGetPortfolio(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.GetPortfolio(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleDeletePortfolio(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePortfolio(r.PathValue("id")); err != nil {
		writeStoreError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleListRuns(w http.ResponseWriter, _ *http.Request) {
	infos, err := s.store.ListRuns(0)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"runs": infos})
}

func (s *Server) handleGetRun(w http.ResponseWriter, r *http.Request) {
	rec, err := s.store.GetRun(r.PathValue("id"))
	if err != nil {
		writeStoreError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, rec)
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, err)
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

// writeSimError maps engine errors onto HTTP statuses: validation
// failures are the caller's fault, cancellation means the client went
// away, anything else is ours.
func writeSimError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, simulate.ErrInvalidAssumption),
		errors.Is(err, simulate.ErrInvalidTrialCount):
		writeError(w, http.StatusUnprocessableEntity, err)
	case errors.Is(err, simulate.ErrCancelled):
		// Client disconnected; nothing useful to write.
	default:
		writeError(w, http.StatusInternalServerError, err)
	}
}

func writeStoreError(w http.ResponseWriter, err error) {
	if errors.Is(err, store.ErrNotFound) {
		writeError(w, http.StatusNotFound, err)
		return
	}
	writeError(w, http.StatusInternalServerError, err)
}
