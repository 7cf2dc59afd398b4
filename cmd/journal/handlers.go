package main

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"trade-journal-go/internal/journal"
	"trade-journal-go/internal/models"
)

// APIHandler holds dependencies for the API endpoints.
type APIHandler struct {
	log     *zap.Logger
	service *journal.Service
}

// NewAPIHandler creates a new APIHandler.
func NewAPIHandler(log *zap.Logger, service *journal.Service) *APIHandler {
	return &APIHandler{log: log, service: service}
}

// Routes mounts all endpoints on the router.
func (h *APIHandler) Routes(r chi.Router) {
	r.Get("/health", h.HealthHandler)
	r.Route("/api", func(r chi.Router) {
		r.Get("/trades", h.ListTradesHandler)
		r.Post("/trades", h.CreateTradeHandler)
		r.Get("/trades/day", h.TradesOnDayHandler)
		r.Put("/trades/{id}", h.UpdateTradeHandler)
		r.Delete("/trades/{id}", h.DeleteTradeHandler)
		r.Get("/stats", h.StatsHandler)
		r.Get("/dashboard", h.DashboardHandler)
		r.Get("/calendar", h.CalendarHandler)
		r.Get("/pnl/week", h.WeeklyPnLHandler)
	})
}

// tradeRequest is the form payload for creating or updating a trade.
type tradeRequest struct {
	Symbol string   `json:"symbol"`
	Side   string   `json:"side"`
	Profit *float64 `json:"profit"`
	Date   string   `json:"date"`
	Notes  string   `json:"notes"`
}

// draft validates the payload and converts it into a TradeDraft.
func (req *tradeRequest) draft() (models.TradeDraft, error) {
	side, err := models.ParseSide(req.Side)
	if err != nil {
		return models.TradeDraft{}, err
	}
	if req.Profit == nil {
		return models.TradeDraft{}, errors.New("profit is required")
	}
	if req.Date == "" {
		return models.TradeDraft{}, errors.New("date is required")
	}
	date, err := models.ParseLocalDate(req.Date)
	if err != nil {
		return models.TradeDraft{}, err
	}
	draft := models.TradeDraft{
		Symbol: req.Symbol,
		Side:   side,
		Profit: *req.Profit,
		Date:   date,
		Notes:  req.Notes,
	}
	if err := draft.Validate(); err != nil {
		return models.TradeDraft{}, err
	}
	return draft, nil
}

func (h *APIHandler) HealthHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// ListTradesHandler returns all trades, newest first.
func (h *APIHandler) ListTradesHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Store().All())
}

// CreateTradeHandler logs a new trade from the form payload.
func (h *APIHandler) CreateTradeHandler(w http.ResponseWriter, r *http.Request) {
	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	draft, err := req.draft()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trade, err := h.service.Store().Add(draft)
	if err != nil {
		// The trade is in memory; only the write to the slot failed.
		h.log.Error("Failed to persist new trade", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, persistFailure(trade, err))
		return
	}
	writeJSON(w, http.StatusCreated, trade)
}

// UpdateTradeHandler replaces the trade with the id from the path.
func (h *APIHandler) UpdateTradeHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req tradeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	draft, err := req.draft()
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}

	trade := models.Trade{
		ID:     id,
		Symbol: draft.Symbol,
		Side:   draft.Side,
		Profit: draft.Profit,
		Date:   draft.Date,
		Notes:  draft.Notes,
	}
	switch err := h.service.Store().Update(trade); {
	case errors.Is(err, journal.ErrNotFound):
		writeError(w, http.StatusNotFound, "trade not found")
	case err != nil:
		h.log.Error("Failed to persist updated trade", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, persistFailure(trade, err))
	default:
		writeJSON(w, http.StatusOK, trade)
	}
}

// DeleteTradeHandler removes a trade. Unknown ids still return 204; the
// operation is idempotent.
func (h *APIHandler) DeleteTradeHandler(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	if err := h.service.Store().Remove(id); err != nil {
		h.log.Error("Failed to persist removal", zap.Error(err))
		writeJSON(w, http.StatusBadGateway, map[string]string{"error": err.Error()})
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// TradesOnDayHandler returns the trades for the day given as ?date=YYYY-MM-DD.
func (h *APIHandler) TradesOnDayHandler(w http.ResponseWriter, r *http.Request) {
	date, err := models.ParseLocalDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date":   date.Format("2006-01-02"),
		"pnl":    h.service.PnLForDay(date),
		"trades": h.service.TradesOnDay(date),
	})
}

// StatsHandler returns all-time statistics for the collection.
func (h *APIHandler) StatsHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, h.service.Stats())
}

// DashboardHandler returns the stats block plus the daily P&L series for a
// month (?month=YYYY-MM, defaulting to the current month).
func (h *APIHandler) DashboardHandler(w http.ResponseWriter, r *http.Request) {
	anchor, err := monthAnchor(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"month":    anchor.Format("2006-01"),
		"stats":    h.service.Stats(),
		"dailyPnl": h.service.DailySeries(anchor),
	})
}

// CalendarHandler returns the month grid (?month=YYYY-MM, defaulting to the
// current month).
func (h *APIHandler) CalendarHandler(w http.ResponseWriter, r *http.Request) {
	anchor, err := monthAnchor(r.URL.Query().Get("month"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, h.service.Calendar(anchor))
}

// WeeklyPnLHandler returns the P&L for the week containing ?date=YYYY-MM-DD.
func (h *APIHandler) WeeklyPnLHandler(w http.ResponseWriter, r *http.Request) {
	date, err := models.ParseLocalDate(r.URL.Query().Get("date"))
	if err != nil {
		writeError(w, http.StatusBadRequest, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{
		"date": date.Format("2006-01-02"),
		"pnl":  h.service.PnLForWeek(date),
	})
}

// monthAnchor parses "YYYY-MM" into the first of that month, local time.
// Empty input means the current month.
func monthAnchor(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	return time.ParseInLocation("2006-01", s, time.Local)
}

func persistFailure(trade models.Trade, err error) map[string]any {
	return map[string]any{"error": err.Error(), "trade": trade}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
