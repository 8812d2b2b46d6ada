// Package web serves the dashboard JSON API.
package web

import (
	"context"
	"fmt"
	"net/http"

	"go.uber.org/zap"

	"github.com/r0mik/dogecoinanalyzer/internal/domain"
)

type Server struct {
	router     *http.ServeMux
	server     *http.Server
	marketData domain.MarketDataRepository
	analysis   domain.AnalysisRepository
	status     domain.StatusRepository
	live       *LiveTicker
	logger     *zap.Logger
}

func NewServer(
	port int,
	marketData domain.MarketDataRepository,
	analysis domain.AnalysisRepository,
	status domain.StatusRepository,
	live *LiveTicker,
	logger *zap.Logger,
) *Server {
	s := &Server{
		router:     http.NewServeMux(),
		marketData: marketData,
		analysis:   analysis,
		status:     status,
		live:       live,
		logger:     logger,
	}
	s.routes()
	s.server = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: s.router,
	}
	return s
}

func (s *Server) routes() {
	s.router.HandleFunc("GET /api/health", s.handleHealth)
	s.router.HandleFunc("GET /api/current", s.handleCurrent)
	s.router.HandleFunc("GET /api/history", s.handleHistory)
	s.router.HandleFunc("GET /api/analysis", s.handleAnalysis)
	s.router.HandleFunc("GET /api/status", s.handleStatus)
	s.router.HandleFunc("GET /api/stats", s.handleStats)
	s.router.HandleFunc("GET /api/live", s.handleLive)
}

func (s *Server) Start() error {
	s.logger.Info("Starting dashboard server", zap.String("addr", s.server.Addr))
	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}
