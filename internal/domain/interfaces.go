package domain

import (
	"context"
	"errors"
	"time"
)

// ErrEnhancerUnavailable is the explicit "unavailable" signal from the
// reasoning enhancer. Callers must treat it as a valid outcome and fall back
// to the deterministic reasoning.
var ErrEnhancerUnavailable = errors.New("enhancer unavailable")

// MarketDataRepository stores and queries the observed price series.
type MarketDataRepository interface {
	SaveMarketData(ctx context.Context, data *MarketData) error
	// GetMarketData returns points with timestamp >= since in ascending
	// timestamp order.
	GetMarketData(ctx context.Context, since time.Time) ([]MarketData, error)
	LatestMarketData(ctx context.Context) (*MarketData, error)
	// MarketDataBefore returns the most recent point at or before the given
	// time, or nil when none exists.
	MarketDataBefore(ctx context.Context, at time.Time) (*MarketData, error)
	CountMarketData(ctx context.Context) (int64, error)
}

// AnalysisRepository stores and queries analysis results.
type AnalysisRepository interface {
	SaveAnalysisResult(ctx context.Context, result *AnalysisResult) error
	// LatestAnalysisResults returns the most recent result per timeframe.
	LatestAnalysisResults(ctx context.Context) ([]AnalysisResult, error)
	ListAnalysisResults(ctx context.Context, timeframe Timeframe, limit int) ([]AnalysisResult, error)
	CountAnalysisResults(ctx context.Context) (int64, error)
}

// StatusRepository tracks background service health.
type StatusRepository interface {
	UpdateStatus(ctx context.Context, scriptName, status, message string, nextRun *time.Time) error
	ListStatuses(ctx context.Context) ([]ServiceStatus, error)
}

// Source fetches one market snapshot from an external price API.
type Source interface {
	Fetch(ctx context.Context) (*MarketData, error)
	Name() string
}

// EnhanceRequest carries everything the enhancer needs to expand the
// deterministic reasoning.
type EnhanceRequest struct {
	Timeframe      Timeframe
	CurrentPrice   float64
	PredictedPrice float64
	Trend          TrendDirection
	Indicators     IndicatorSet
	BasicReasoning string
}

// Enhancer optionally appends free-text commentary to the deterministic
// reasoning. It returns ErrEnhancerUnavailable when it cannot serve the
// request; any error must never abort the timeframe.
type Enhancer interface {
	Enhance(ctx context.Context, req EnhanceRequest) (string, error)
}
