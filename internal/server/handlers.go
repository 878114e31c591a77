package server

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/tabscope/tabscope/internal/analytics"
	"github.com/tabscope/tabscope/internal/ingest"
	"github.com/tabscope/tabscope/internal/storage"
)

type handlers struct {
	store     storage.Store
	builder   *ingest.Builder
	trends    *analytics.Trends
	suggester *analytics.Suggester
	logger    *slog.Logger
}

// importRequest accepts both envelope shapes the extension has shipped:
// {tabData:{tabs:[...]}} and the flat {tabs:[...]}.
type importRequest struct {
	TabData *struct {
		Tabs []ingest.RawTab `json:"tabs"`
	} `json:"tabData"`
	Tabs         []ingest.RawTab `json:"tabs"`
	PeakTabCount int             `json:"peakTabCount"`
	NewTabs      int             `json:"newTabs"`
	ClosedTabs   int             `json:"closedTabs"`
}

type statusResponse struct {
	Status     string `json:"status"`
	Message    string `json:"message,omitempty"`
	SnapshotID int64  `json:"snapshot_id,omitempty"`
}

// distributionResponse mirrors the dashboard's distribution payload.
type distributionResponse struct {
	Timestamp    string         `json:"timestamp"`
	Count        int            `json:"count"`
	Distribution map[string]int `json:"distribution"`
	PeakCount    int            `json:"peak_count"`
}

func (h *handlers) handleImport(w http.ResponseWriter, r *http.Request) {
	var req importRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body")
		return
	}

	tabs := req.Tabs
	if req.TabData != nil {
		tabs = req.TabData.Tabs
	}
	if tabs == nil {
		writeError(w, http.StatusBadRequest, "invalid data format")
		return
	}

	batch := ingest.Batch{
		Tabs:         tabs,
		PeakTabCount: req.PeakTabCount,
		NewTabs:      req.NewTabs,
		ClosedTabs:   req.ClosedTabs,
	}

	snap, err := h.builder.Ingest(r.Context(), batch)
	if err != nil {
		var verr *ingest.ValidationError
		if errors.As(err, &verr) {
			writeError(w, http.StatusBadRequest, verr.Error())
			return
		}
		h.logger.Error("import failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to import data")
		return
	}

	h.logger.Info("snapshot ingested",
		"snapshot_id", snap.ID, "tabs", snap.Count,
		"new", snap.NewTabs, "closed", snap.ClosedTabs)

	writeJSON(w, http.StatusOK, statusResponse{Status: "success", SnapshotID: snap.ID})
}

func (h *handlers) handleTrend(w http.ResponseWriter, r *http.Request) {
	trend, err := h.trends.History(r.Context())
	if err != nil {
		h.logger.Error("trend query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load trend data")
		return
	}
	writeJSON(w, http.StatusOK, trend)
}

func (h *handlers) handleTabChanges(w http.ResponseWriter, r *http.Request) {
	window, err := h.trends.RecentWindow(r.Context())
	if err != nil {
		h.logger.Error("tab-changes query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load tab changes")
		return
	}
	writeJSON(w, http.StatusOK, window)
}

func (h *handlers) handleDistribution(w http.ResponseWriter, r *http.Request) {
	latest, err := h.store.LatestSnapshot(r.Context())
	if err != nil {
		h.logger.Error("distribution query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load distribution")
		return
	}
	if latest == nil {
		// Dashboard expects an empty array when nothing has been ingested.
		writeJSON(w, http.StatusOK, []struct{}{})
		return
	}

	writeJSON(w, http.StatusOK, distributionResponse{
		Timestamp: latest.Timestamp.UTC().Format(time.RFC3339),
		Count:     latest.Count,
		Distribution: map[string]int{
			"today":   latest.TodayCount,
			"week":    latest.WeekCount,
			"month":   latest.MonthCount,
			"older":   latest.OlderCount,
			"unknown": latest.UnknownCount,
		},
		PeakCount: latest.PeakCount,
	})
}

func (h *handlers) handleSuggestGroups(w http.ResponseWriter, r *http.Request) {
	limit := analytics.DefaultSuggestionLimit
	if raw := r.URL.Query().Get("limit"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n > 0 {
			limit = n
		}
	}

	groups, err := h.suggester.Suggest(r.Context(), limit)
	if err != nil {
		h.logger.Error("suggestion query failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load suggestions")
		return
	}
	writeJSON(w, http.StatusOK, groups)
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, statusResponse{Status: "error", Message: msg})
}
