package storage

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/r0mik/dogecoinanalyzer/internal/domain"
)

func newTestStore(t *testing.T) *SQLiteStore {
	t.Helper()
	store, err := NewSQLiteStore(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { store.Close() })
	return store
}

func f64(v float64) *float64 { return &v }

func TestMarketDataRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	data := &domain.MarketData{
		Timestamp:      time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
		PriceUSD:       0.1234,
		Volume24h:      f64(1_000_000),
		PriceChange24h: f64(-2.5),
		Source:         "coingecko",
	}
	require.NoError(t, store.SaveMarketData(ctx, data))
	require.NotZero(t, data.ID)

	got, err := store.GetMarketData(ctx, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC))
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.Equal(t, 0.1234, got[0].PriceUSD)
	require.Equal(t, "coingecko", got[0].Source)
	require.NotNil(t, got[0].Volume24h)
	require.Equal(t, 1_000_000.0, *got[0].Volume24h)
	require.NotNil(t, got[0].PriceChange24h)
	// Fields the source never reported stay nil.
	require.Nil(t, got[0].MarketCap)
	require.Nil(t, got[0].High24h)
	require.Nil(t, got[0].Low24h)
}

func TestGetMarketDataOrderingAndCutoff(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	// Insert out of order on purpose.
	for _, offset := range []int{3, 1, 2, 0} {
		require.NoError(t, store.SaveMarketData(ctx, &domain.MarketData{
			Timestamp: base.Add(time.Duration(offset) * time.Hour),
			PriceUSD:  0.10 + float64(offset)*0.01,
			Source:    "test",
		}))
	}

	got, err := store.GetMarketData(ctx, base.Add(time.Hour))
	require.NoError(t, err)
	require.Len(t, got, 3)
	for i := 1; i < len(got); i++ {
		require.False(t, got[i].Timestamp.Before(got[i-1].Timestamp), "results must be ascending")
	}
}

func TestLatestAndBeforeMarketData(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	latest, err := store.LatestMarketData(ctx)
	require.NoError(t, err)
	require.Nil(t, latest)

	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		require.NoError(t, store.SaveMarketData(ctx, &domain.MarketData{
			Timestamp: base.Add(time.Duration(i) * time.Hour),
			PriceUSD:  0.10 + float64(i)*0.01,
			Source:    "test",
		}))
	}

	latest, err = store.LatestMarketData(ctx)
	require.NoError(t, err)
	require.NotNil(t, latest)
	require.InDelta(t, 0.12, latest.PriceUSD, 1e-12)

	before, err := store.MarketDataBefore(ctx, base.Add(90*time.Minute))
	require.NoError(t, err)
	require.NotNil(t, before)
	require.Equal(t, 0.11, before.PriceUSD)

	before, err = store.MarketDataBefore(ctx, base.Add(-time.Hour))
	require.NoError(t, err)
	require.Nil(t, before)

	count, err := store.CountMarketData(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(3), count)
}

func TestAnalysisResultRoundTrip(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	result := &domain.AnalysisResult{
		Timestamp:       time.Date(2025, 6, 2, 12, 0, 0, 0, time.UTC),
		Timeframe:       domain.Timeframe24h,
		PredictedPrice:  0.105,
		ConfidenceScore: 70,
		TrendDirection:  domain.TrendBullish,
		Indicators: domain.IndicatorSet{
			RSI:          f64(65.5),
			SMA20:        f64(0.101),
			CurrentPrice: f64(0.102),
		},
		Reasoning: "Analysis for 24 hours timeframe: | Trend: BULLISH",
	}
	require.NoError(t, store.SaveAnalysisResult(ctx, result))
	require.NotZero(t, result.ID)

	got, err := store.ListAnalysisResults(ctx, domain.Timeframe24h, 10)
	require.NoError(t, err)
	require.Len(t, got, 1)

	require.Equal(t, domain.TrendBullish, got[0].TrendDirection)
	require.Equal(t, 70, got[0].ConfidenceScore)
	require.Equal(t, result.Reasoning, got[0].Reasoning)
	require.NotNil(t, got[0].Indicators.RSI)
	require.Equal(t, 65.5, *got[0].Indicators.RSI)
	require.Nil(t, got[0].Indicators.SMA200)
}

func TestLatestAnalysisResultsOnePerTimeframe(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	base := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	for i := 0; i < 3; i++ {
		for _, tf := range []domain.Timeframe{domain.Timeframe1h, domain.Timeframe24h} {
			require.NoError(t, store.SaveAnalysisResult(ctx, &domain.AnalysisResult{
				Timestamp:      base.Add(time.Duration(i) * time.Hour),
				Timeframe:      tf,
				PredictedPrice: 0.10 + float64(i)*0.01,
				TrendDirection: domain.TrendNeutral,
			}))
		}
	}

	got, err := store.LatestAnalysisResults(ctx)
	require.NoError(t, err)
	require.Len(t, got, 2)
	for _, res := range got {
		require.InDelta(t, 0.12, res.PredictedPrice, 1e-12, "must be the newest result for %s", res.Timeframe)
	}

	count, err := store.CountAnalysisResults(ctx)
	require.NoError(t, err)
	require.Equal(t, int64(6), count)
}

func TestStatusUpsert(t *testing.T) {
	store := newTestStore(t)
	ctx := context.Background()

	require.NoError(t, store.UpdateStatus(ctx, domain.ScriptCollector, domain.StatusRunning, "Data collection in progress", nil))

	next := time.Date(2025, 6, 2, 12, 5, 0, 0, time.UTC)
	require.NoError(t, store.UpdateStatus(ctx, domain.ScriptCollector, domain.StatusSuccess, "Collected from 3/3 sources", &next))
	require.NoError(t, store.UpdateStatus(ctx, domain.ScriptAnalyzer, domain.StatusError, "No market data available for analysis", nil))

	statuses, err := store.ListStatuses(ctx)
	require.NoError(t, err)
	require.Len(t, statuses, 2)

	// Ordered by script name: analyzer first.
	require.Equal(t, domain.ScriptAnalyzer, statuses[0].ScriptName)
	require.Equal(t, domain.StatusError, statuses[0].Status)
	require.Nil(t, statuses[0].NextRun)

	require.Equal(t, domain.ScriptCollector, statuses[1].ScriptName)
	require.Equal(t, domain.StatusSuccess, statuses[1].Status)
	require.Equal(t, "Collected from 3/3 sources", statuses[1].Message)
	require.NotNil(t, statuses[1].NextRun)
	require.True(t, statuses[1].NextRun.Equal(next))
}
