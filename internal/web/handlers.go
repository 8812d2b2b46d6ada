package web

import (
	"encoding/json"
	"math"
	"net/http"
	"strconv"
	"time"

	"go.uber.org/zap"

	"github.com/r0mik/dogecoinanalyzer/internal/domain"
)

func (s *Server) writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		s.logger.Error("Failed to encode response", zap.Error(err))
	}
}

func (s *Server) writeError(w http.ResponseWriter, status int, message string) {
	s.writeJSON(w, status, map[string]string{"error": message})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if _, err := s.marketData.CountMarketData(r.Context()); err != nil {
		s.logger.Error("Health check failed", zap.Error(err))
		s.writeJSON(w, http.StatusInternalServerError, map[string]string{
			"status":    "unhealthy",
			"error":     err.Error(),
			"timestamp": time.Now().UTC().Format(time.RFC3339),
		})
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]string{
		"status":    "healthy",
		"timestamp": time.Now().UTC().Format(time.RFC3339),
	})
}

func (s *Server) handleCurrent(w http.ResponseWriter, r *http.Request) {
	latest, err := s.marketData.LatestMarketData(r.Context())
	if err != nil {
		s.logger.Error("Failed to fetch current data", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if latest == nil {
		s.writeError(w, http.StatusNotFound, "No market data available")
		return
	}
	s.writeJSON(w, http.StatusOK, latest)
}

func (s *Server) handleHistory(w http.ResponseWriter, r *http.Request) {
	hours := queryInt(r, "hours", 24)
	limit := queryInt(r, "limit", 100)

	since := time.Now().UTC().Add(-time.Duration(hours) * time.Hour)
	data, err := s.marketData.GetMarketData(r.Context(), since)
	if err != nil {
		s.logger.Error("Failed to fetch history", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if len(data) > limit {
		data = data[:limit]
	}
	if data == nil {
		data = []domain.MarketData{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"data":  data,
		"count": len(data),
		"hours": hours,
	})
}

func (s *Server) handleAnalysis(w http.ResponseWriter, r *http.Request) {
	results, err := s.analysis.LatestAnalysisResults(r.Context())
	if err != nil {
		s.logger.Error("Failed to fetch analysis", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	if tf := r.URL.Query().Get("timeframe"); tf != "" {
		filtered := results[:0]
		for _, res := range results {
			if res.Timeframe == domain.Timeframe(tf) {
				filtered = append(filtered, res)
			}
		}
		results = filtered
	}
	if results == nil {
		results = []domain.AnalysisResult{}
	}

	byTimeframe := make(map[domain.Timeframe]domain.AnalysisResult, len(results))
	for _, res := range results {
		byTimeframe[res.Timeframe] = res
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"data":         results,
		"by_timeframe": byTimeframe,
	})
}

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	statuses, err := s.status.ListStatuses(r.Context())
	if err != nil {
		s.logger.Error("Failed to fetch statuses", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	if statuses == nil {
		statuses = []domain.ServiceStatus{}
	}

	s.writeJSON(w, http.StatusOK, map[string]any{
		"data":  statuses,
		"count": len(statuses),
	})
}

func (s *Server) handleStats(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	latest, err := s.marketData.LatestMarketData(ctx)
	if err != nil {
		s.logger.Error("Failed to fetch stats", zap.Error(err))
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	totalData, err := s.marketData.CountMarketData(ctx)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	totalAnalyses, err := s.analysis.CountAnalysisResults(ctx)
	if err != nil {
		s.writeError(w, http.StatusInternalServerError, err.Error())
		return
	}

	stats := map[string]any{
		"current_price":     nil,
		"price_change_24h":  nil,
		"total_data_points": totalData,
		"total_analyses":    totalAnalyses,
		"last_update":       nil,
	}

	if latest != nil {
		stats["current_price"] = latest.PriceUSD
		stats["last_update"] = latest.Timestamp.UTC().Format(time.RFC3339)

		dayAgo := time.Now().UTC().Add(-24 * time.Hour)
		old, err := s.marketData.MarketDataBefore(ctx, dayAgo)
		if err != nil {
			s.writeError(w, http.StatusInternalServerError, err.Error())
			return
		}
		if old != nil && old.PriceUSD != 0 {
			change := (latest.PriceUSD - old.PriceUSD) / old.PriceUSD * 100
			stats["price_change_24h"] = math.Round(change*100) / 100
		}
	}

	s.writeJSON(w, http.StatusOK, stats)
}

func (s *Server) handleLive(w http.ResponseWriter, r *http.Request) {
	if s.live == nil {
		s.writeError(w, http.StatusNotFound, "Live stream not enabled")
		return
	}
	price := s.live.Get()
	if price == nil {
		s.writeError(w, http.StatusNotFound, "No live data yet")
		return
	}
	s.writeJSON(w, http.StatusOK, price)
}

func queryInt(r *http.Request, name string, fallback int) int {
	raw := r.URL.Query().Get(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}
