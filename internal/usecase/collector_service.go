package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/r0mik/dogecoinanalyzer/internal/domain"
	"go.uber.org/zap"
)

// CollectorService fetches market snapshots from every configured source and
// stores each successful one. One working source is enough for a run to
// count as a success.
type CollectorService struct {
	sources    []domain.Source
	marketData domain.MarketDataRepository
	status     domain.StatusRepository
	logger     *zap.Logger
	interval   time.Duration
	timeNow    func() time.Time // For testing
}

func NewCollectorService(
	sources []domain.Source,
	marketData domain.MarketDataRepository,
	status domain.StatusRepository,
	logger *zap.Logger,
	interval time.Duration,
) *CollectorService {
	return &CollectorService{
		sources:    sources,
		marketData: marketData,
		status:     status,
		logger:     logger,
		interval:   interval,
		timeNow:    time.Now,
	}
}

// Collect queries all sources sequentially, validating and storing whatever
// they return. Per-source failures are recorded in the status message but do
// not stop the run.
func (s *CollectorService) Collect(ctx context.Context) error {
	s.logger.Info("Starting data collection")
	s.updateStatus(ctx, domain.StatusRunning, "Data collection in progress", nil)

	succeeded := 0
	var failures []string

	for _, src := range s.sources {
		data, err := src.Fetch(ctx)
		if err != nil {
			s.logger.Warn("Source fetch failed",
				zap.String("source", src.Name()), zap.Error(err))
			failures = append(failures, fmt.Sprintf("%s: %v", src.Name(), err))
			continue
		}
		if err := validateMarketData(data); err != nil {
			s.logger.Warn("Invalid data from source",
				zap.String("source", src.Name()), zap.Error(err))
			failures = append(failures, fmt.Sprintf("%s: %v", src.Name(), err))
			continue
		}
		if err := s.marketData.SaveMarketData(ctx, data); err != nil {
			s.logger.Error("Failed to store market data",
				zap.String("source", src.Name()), zap.Error(err))
			failures = append(failures, fmt.Sprintf("%s: %v", src.Name(), err))
			continue
		}

		s.logger.Info("Stored market data",
			zap.String("source", src.Name()),
			zap.Float64("price_usd", data.PriceUSD))
		succeeded++
	}

	message := fmt.Sprintf("Collected from %d/%d sources", succeeded, len(s.sources))
	if len(failures) > 0 {
		if len(failures) > 3 {
			failures = failures[:3]
		}
		message += ". Errors: " + strings.Join(failures, "; ")
	}

	nextRun := s.timeNow().UTC().Add(s.interval)
	if succeeded == 0 {
		s.updateStatus(ctx, domain.StatusError, message, &nextRun)
		s.logger.Error("Data collection failed from all sources")
		return errors.New("data collection failed from all sources")
	}

	s.updateStatus(ctx, domain.StatusSuccess, message, &nextRun)
	s.logger.Info("Data collection completed", zap.Int("sources", succeeded))
	return nil
}

func validateMarketData(data *domain.MarketData) error {
	if data == nil {
		return errors.New("empty payload")
	}
	if data.Timestamp.IsZero() {
		return errors.New("missing timestamp")
	}
	if data.PriceUSD <= 0 {
		return fmt.Errorf("invalid price: %v", data.PriceUSD)
	}
	return nil
}

func (s *CollectorService) updateStatus(ctx context.Context, status, message string, nextRun *time.Time) {
	if err := s.status.UpdateStatus(ctx, domain.ScriptCollector, status, message, nextRun); err != nil {
		s.logger.Warn("Failed to update collector status", zap.Error(err))
	}
}
