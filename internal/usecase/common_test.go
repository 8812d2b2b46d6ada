package usecase

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/r0mik/dogecoinanalyzer/internal/domain"
)

type fakeMarketRepo struct {
	points  []domain.MarketData
	saved   []domain.MarketData
	getErr  error
	saveErr error
}

func (f *fakeMarketRepo) SaveMarketData(ctx context.Context, data *domain.MarketData) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *data)
	return nil
}

func (f *fakeMarketRepo) GetMarketData(ctx context.Context, since time.Time) ([]domain.MarketData, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	var out []domain.MarketData
	for _, p := range f.points {
		if !p.Timestamp.Before(since) {
			out = append(out, p)
		}
	}
	return out, nil
}

func (f *fakeMarketRepo) LatestMarketData(ctx context.Context) (*domain.MarketData, error) {
	if len(f.points) == 0 {
		return nil, nil
	}
	p := f.points[len(f.points)-1]
	return &p, nil
}

func (f *fakeMarketRepo) MarketDataBefore(ctx context.Context, at time.Time) (*domain.MarketData, error) {
	for i := len(f.points) - 1; i >= 0; i-- {
		if !f.points[i].Timestamp.After(at) {
			p := f.points[i]
			return &p, nil
		}
	}
	return nil, nil
}

func (f *fakeMarketRepo) CountMarketData(ctx context.Context) (int64, error) {
	return int64(len(f.points)), nil
}

type fakeAnalysisRepo struct {
	saved   []domain.AnalysisResult
	saveErr error
}

func (f *fakeAnalysisRepo) SaveAnalysisResult(ctx context.Context, result *domain.AnalysisResult) error {
	if f.saveErr != nil {
		return f.saveErr
	}
	f.saved = append(f.saved, *result)
	return nil
}

func (f *fakeAnalysisRepo) LatestAnalysisResults(ctx context.Context) ([]domain.AnalysisResult, error) {
	return f.saved, nil
}

func (f *fakeAnalysisRepo) ListAnalysisResults(ctx context.Context, tf domain.Timeframe, limit int) ([]domain.AnalysisResult, error) {
	var out []domain.AnalysisResult
	for _, r := range f.saved {
		if r.Timeframe == tf {
			out = append(out, r)
		}
	}
	return out, nil
}

func (f *fakeAnalysisRepo) CountAnalysisResults(ctx context.Context) (int64, error) {
	return int64(len(f.saved)), nil
}

type statusUpdate struct {
	Script  string
	Status  string
	Message string
	NextRun *time.Time
}

type fakeStatusRepo struct {
	updates []statusUpdate
}

func (f *fakeStatusRepo) UpdateStatus(ctx context.Context, scriptName, status, message string, nextRun *time.Time) error {
	f.updates = append(f.updates, statusUpdate{scriptName, status, message, nextRun})
	return nil
}

func (f *fakeStatusRepo) ListStatuses(ctx context.Context) ([]domain.ServiceStatus, error) {
	return nil, nil
}

func (f *fakeStatusRepo) last() statusUpdate {
	if len(f.updates) == 0 {
		return statusUpdate{}
	}
	return f.updates[len(f.updates)-1]
}

type fakeEnhancer struct {
	text string
	err  error
}

func (f *fakeEnhancer) Enhance(ctx context.Context, req domain.EnhanceRequest) (string, error) {
	if f.err != nil {
		return "", f.err
	}
	return f.text, nil
}

type fakeSource struct {
	name string
	data *domain.MarketData
	err  error
}

func (f *fakeSource) Name() string { return f.name }

func (f *fakeSource) Fetch(ctx context.Context) (*domain.MarketData, error) {
	if f.err != nil {
		return nil, f.err
	}
	return f.data, nil
}

var errSourceDown = errors.New("source down")

func testLogger() *zap.Logger { return zap.NewNop() }
