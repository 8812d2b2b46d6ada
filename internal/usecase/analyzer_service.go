package usecase

import (
	"context"
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/r0mik/dogecoinanalyzer/internal/domain"
	"github.com/r0mik/dogecoinanalyzer/internal/indicator"
	"go.uber.org/zap"
)

// analysisLookback is how much history is loaded per run. The 30d horizon
// needs 720 hours of data plus warm-up for the longer moving averages.
const analysisLookback = 800 * time.Hour

// windowFallbackPoints caps the fallback slice when no point is recent
// enough for the requested horizon.
const windowFallbackPoints = 50

// AnalyzerService produces one AnalysisResult per timeframe per run from a
// single immutable snapshot of the market data series.
type AnalyzerService struct {
	marketData domain.MarketDataRepository
	analysis   domain.AnalysisRepository
	status     domain.StatusRepository
	enhancer   domain.Enhancer
	logger     *zap.Logger
	interval   time.Duration
	timeNow    func() time.Time // For testing
}

// NewAnalyzerService wires the analyzer. enhancer may be nil when reasoning
// enhancement is disabled; interval is only used to report the next run time.
func NewAnalyzerService(
	marketData domain.MarketDataRepository,
	analysis domain.AnalysisRepository,
	status domain.StatusRepository,
	enhancer domain.Enhancer,
	logger *zap.Logger,
	interval time.Duration,
) *AnalyzerService {
	return &AnalyzerService{
		marketData: marketData,
		analysis:   analysis,
		status:     status,
		enhancer:   enhancer,
		logger:     logger,
		interval:   interval,
		timeNow:    time.Now,
	}
}

// RunAnalysis loads the market data snapshot and analyzes every timeframe
// against it sequentially. A failure in one timeframe is logged and skipped;
// the remaining timeframes still run.
func (s *AnalyzerService) RunAnalysis(ctx context.Context) error {
	s.logger.Info("Starting analysis run")
	s.updateStatus(ctx, domain.StatusRunning, "Analysis in progress", nil)

	since := s.timeNow().UTC().Add(-analysisLookback)
	points, err := s.marketData.GetMarketData(ctx, since)
	if err != nil {
		msg := fmt.Sprintf("Analysis failed: %v", err)
		s.updateStatus(ctx, domain.StatusError, msg, nil)
		return fmt.Errorf("load market data: %w", err)
	}
	if len(points) == 0 {
		msg := "No market data available for analysis"
		s.logger.Error(msg)
		s.updateStatus(ctx, domain.StatusError, msg, nil)
		return errors.New("no market data available")
	}

	for _, tf := range domain.AllTimeframes {
		s.logger.Info("Analyzing timeframe", zap.String("timeframe", string(tf)))
		if err := s.analyzeAndStore(ctx, points, tf); err != nil {
			s.logger.Error("Timeframe analysis failed",
				zap.String("timeframe", string(tf)), zap.Error(err))
			continue
		}
	}

	nextRun := s.timeNow().UTC().Add(s.interval)
	s.updateStatus(ctx, domain.StatusSuccess, "Analysis completed successfully", &nextRun)
	s.logger.Info("Analysis run completed")
	return nil
}

// analyzeAndStore isolates a single timeframe: a panic or storage error here
// must not corrupt the remaining timeframes' results.
func (s *AnalyzerService) analyzeAndStore(ctx context.Context, points []domain.MarketData, tf domain.Timeframe) (err error) {
	defer func() {
		if r := recover(); r != nil {
			err = fmt.Errorf("panic analyzing %s: %v", tf, r)
		}
	}()

	result := s.AnalyzeTimeframe(ctx, points, tf)
	if err := s.analysis.SaveAnalysisResult(ctx, &result); err != nil {
		return fmt.Errorf("save %s result: %w", tf, err)
	}

	s.logger.Info("Timeframe analysis complete",
		zap.String("timeframe", string(tf)),
		zap.Float64("predicted_price", result.PredictedPrice),
		zap.String("trend", string(result.TrendDirection)),
		zap.Int("confidence", result.ConfidenceScore))
	return nil
}

// AnalyzeTimeframe runs the full pipeline for one horizon: windowing,
// indicators, trend vote, prediction, confidence, reasoning. An empty or
// unusable series yields the defined "insufficient data" result, never an
// error.
func (s *AnalyzerService) AnalyzeTimeframe(ctx context.Context, points []domain.MarketData, tf domain.Timeframe) domain.AnalysisResult {
	result := domain.AnalysisResult{
		Timestamp:      s.timeNow().UTC(),
		Timeframe:      tf,
		TrendDirection: domain.TrendNeutral,
	}

	if len(points) == 0 {
		s.logger.Warn("No data available for analysis", zap.String("timeframe", string(tf)))
		result.Reasoning = "No data available"
		return result
	}

	window := s.windowForTimeframe(points, tf)
	set := indicator.CalculateAll(window)
	if set.Empty() {
		result.Reasoning = "Insufficient data for analysis"
		return result
	}

	currentPrice := *set.CurrentPrice
	trend := determineTrend(set, window)
	predicted := predictPrice(currentPrice, set, trend, tf)
	confidence := confidenceScore(set, trend, len(window), tf)
	basic := buildReasoning(set, trend, predicted, currentPrice, tf)

	result.PredictedPrice = predicted
	result.ConfidenceScore = confidence
	result.TrendDirection = trend
	result.Indicators = set
	result.Reasoning = s.enhanceReasoning(ctx, tf, currentPrice, predicted, trend, set, basic)
	return result
}

// windowForTimeframe selects the trailing slice covering twice the horizon,
// so longer-lookback indicators have enough history. When no point is recent
// enough it falls back to the last windowFallbackPoints points.
func (s *AnalyzerService) windowForTimeframe(points []domain.MarketData, tf domain.Timeframe) []domain.MarketData {
	cutoff := s.timeNow().UTC().Add(-2 * time.Duration(tf.Hours()) * time.Hour)
	start := sort.Search(len(points), func(i int) bool {
		return !points[i].Timestamp.Before(cutoff)
	})
	window := points[start:]
	if len(window) == 0 {
		n := windowFallbackPoints
		if len(points) < n {
			n = len(points)
		}
		window = points[len(points)-n:]
	}
	return window
}

// enhanceReasoning asks the optional enhancer to append commentary. The
// canonical deterministic reasoning is always the prefix of the returned
// text; enhancer failure or unavailability degrades silently to it.
func (s *AnalyzerService) enhanceReasoning(
	ctx context.Context,
	tf domain.Timeframe,
	currentPrice, predictedPrice float64,
	trend domain.TrendDirection,
	set domain.IndicatorSet,
	basic string,
) string {
	if s.enhancer == nil {
		return basic
	}

	enhanced, err := s.enhancer.Enhance(ctx, domain.EnhanceRequest{
		Timeframe:      tf,
		CurrentPrice:   currentPrice,
		PredictedPrice: predictedPrice,
		Trend:          trend,
		Indicators:     set,
		BasicReasoning: basic,
	})
	if err != nil {
		if !errors.Is(err, domain.ErrEnhancerUnavailable) {
			s.logger.Warn("Reasoning enhancement failed",
				zap.String("timeframe", string(tf)), zap.Error(err))
		}
		return basic
	}
	if enhanced == "" {
		return basic
	}
	return basic + "\n\n--- Enhanced Analysis ---\n" + enhanced
}

func (s *AnalyzerService) updateStatus(ctx context.Context, status, message string, nextRun *time.Time) {
	if err := s.status.UpdateStatus(ctx, domain.ScriptAnalyzer, status, message, nextRun); err != nil {
		s.logger.Warn("Failed to update analyzer status", zap.Error(err))
	}
}
