package storage

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "github.com/mattn/go-sqlite3"
	"github.com/r0mik/dogecoinanalyzer/internal/domain"
)

type SQLiteStore struct {
	db *sql.DB
}

func NewSQLiteStore(dbPath string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite3", dbPath)
	if err != nil {
		return nil, err
	}

	store := &SQLiteStore{db: db}
	if err := store.initSchema(); err != nil {
		return nil, err
	}

	return store, nil
}

func (s *SQLiteStore) initSchema() error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS market_data (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp DATETIME NOT NULL,
			price_usd REAL NOT NULL,
			volume_24h REAL,
			market_cap REAL,
			price_change_24h REAL,
			high_24h REAL,
			low_24h REAL,
			source TEXT,
			created_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_market_data_timestamp ON market_data(timestamp);`,
		`CREATE TABLE IF NOT EXISTS analysis_results (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp DATETIME NOT NULL,
			timeframe TEXT NOT NULL,
			predicted_price REAL,
			confidence_score INTEGER,
			trend_direction TEXT,
			technical_indicators TEXT,
			reasoning TEXT,
			created_at DATETIME NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_analysis_results_timeframe ON analysis_results(timeframe, timestamp);`,
		`CREATE TABLE IF NOT EXISTS script_status (
			script_name TEXT PRIMARY KEY,
			last_run DATETIME,
			status TEXT,
			message TEXT,
			next_run DATETIME,
			updated_at DATETIME NOT NULL
		);`,
	}

	for _, q := range queries {
		if _, err := s.db.Exec(q); err != nil {
			return fmt.Errorf("failed to exec query %s: %w", q, err)
		}
	}

	return nil
}

func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

// MarketDataRepository implementation

const marketDataSelect = `SELECT id, timestamp, price_usd, volume_24h, market_cap, price_change_24h, high_24h, low_24h, source, created_at FROM market_data`

func (s *SQLiteStore) SaveMarketData(ctx context.Context, data *domain.MarketData) error {
	query := `INSERT INTO market_data (timestamp, price_usd, volume_24h, market_cap, price_change_24h, high_24h, low_24h, source, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query,
		data.Timestamp.UTC(),
		data.PriceUSD,
		nullable(data.Volume24h),
		nullable(data.MarketCap),
		nullable(data.PriceChange24h),
		nullable(data.High24h),
		nullable(data.Low24h),
		data.Source,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save market data: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		data.ID = id
	}
	return nil
}

func (s *SQLiteStore) GetMarketData(ctx context.Context, since time.Time) ([]domain.MarketData, error) {
	query := marketDataSelect + ` WHERE timestamp >= ? ORDER BY timestamp ASC`

	rows, err := s.db.QueryContext(ctx, query, since.UTC())
	if err != nil {
		return nil, fmt.Errorf("get market data: %w", err)
	}
	defer rows.Close()

	var out []domain.MarketData
	for rows.Next() {
		data, err := scanMarketData(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *data)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) LatestMarketData(ctx context.Context) (*domain.MarketData, error) {
	return s.queryOneMarketData(ctx, marketDataSelect+` ORDER BY timestamp DESC LIMIT 1`)
}

func (s *SQLiteStore) MarketDataBefore(ctx context.Context, at time.Time) (*domain.MarketData, error) {
	return s.queryOneMarketData(ctx, marketDataSelect+` WHERE timestamp <= ? ORDER BY timestamp DESC LIMIT 1`, at.UTC())
}

func (s *SQLiteStore) CountMarketData(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM market_data`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count market data: %w", err)
	}
	return count, nil
}

func (s *SQLiteStore) queryOneMarketData(ctx context.Context, query string, args ...any) (*domain.MarketData, error) {
	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("query market data: %w", err)
	}
	defer rows.Close()

	if !rows.Next() {
		return nil, rows.Err()
	}
	return scanMarketData(rows)
}

func scanMarketData(rows *sql.Rows) (*domain.MarketData, error) {
	var data domain.MarketData
	var volume, marketCap, change, high, low sql.NullFloat64
	var source sql.NullString

	err := rows.Scan(
		&data.ID,
		&data.Timestamp,
		&data.PriceUSD,
		&volume,
		&marketCap,
		&change,
		&high,
		&low,
		&source,
		&data.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan market data: %w", err)
	}

	data.Volume24h = fromNull(volume)
	data.MarketCap = fromNull(marketCap)
	data.PriceChange24h = fromNull(change)
	data.High24h = fromNull(high)
	data.Low24h = fromNull(low)
	data.Source = source.String
	return &data, nil
}

// AnalysisRepository implementation

const analysisSelect = `SELECT id, timestamp, timeframe, predicted_price, confidence_score, trend_direction, technical_indicators, reasoning, created_at FROM analysis_results`

func (s *SQLiteStore) SaveAnalysisResult(ctx context.Context, result *domain.AnalysisResult) error {
	indicators, err := json.Marshal(result.Indicators)
	if err != nil {
		return fmt.Errorf("marshal indicators: %w", err)
	}

	query := `INSERT INTO analysis_results (timestamp, timeframe, predicted_price, confidence_score, trend_direction, technical_indicators, reasoning, created_at)
			  VALUES (?, ?, ?, ?, ?, ?, ?, ?)`

	res, err := s.db.ExecContext(ctx, query,
		result.Timestamp.UTC(),
		string(result.Timeframe),
		result.PredictedPrice,
		result.ConfidenceScore,
		string(result.TrendDirection),
		string(indicators),
		result.Reasoning,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("save analysis result: %w", err)
	}
	if id, err := res.LastInsertId(); err == nil {
		result.ID = id
	}
	return nil
}

func (s *SQLiteStore) LatestAnalysisResults(ctx context.Context) ([]domain.AnalysisResult, error) {
	rows, err := s.db.QueryContext(ctx, analysisSelect+` ORDER BY timestamp DESC LIMIT 100`)
	if err != nil {
		return nil, fmt.Errorf("latest analysis results: %w", err)
	}
	defer rows.Close()

	seen := make(map[domain.Timeframe]bool)
	var out []domain.AnalysisResult
	for rows.Next() {
		result, err := scanAnalysisResult(rows)
		if err != nil {
			return nil, err
		}
		if seen[result.Timeframe] {
			continue
		}
		seen[result.Timeframe] = true
		out = append(out, *result)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) ListAnalysisResults(ctx context.Context, timeframe domain.Timeframe, limit int) ([]domain.AnalysisResult, error) {
	query := analysisSelect + ` WHERE timeframe = ? ORDER BY timestamp DESC LIMIT ?`

	rows, err := s.db.QueryContext(ctx, query, string(timeframe), limit)
	if err != nil {
		return nil, fmt.Errorf("list analysis results: %w", err)
	}
	defer rows.Close()

	var out []domain.AnalysisResult
	for rows.Next() {
		result, err := scanAnalysisResult(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *result)
	}
	return out, rows.Err()
}

func (s *SQLiteStore) CountAnalysisResults(ctx context.Context) (int64, error) {
	var count int64
	err := s.db.QueryRowContext(ctx, `SELECT COUNT(*) FROM analysis_results`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count analysis results: %w", err)
	}
	return count, nil
}

func scanAnalysisResult(rows *sql.Rows) (*domain.AnalysisResult, error) {
	var result domain.AnalysisResult
	var timeframe, trend string
	var indicators, reasoning sql.NullString

	err := rows.Scan(
		&result.ID,
		&result.Timestamp,
		&timeframe,
		&result.PredictedPrice,
		&result.ConfidenceScore,
		&trend,
		&indicators,
		&reasoning,
		&result.CreatedAt,
	)
	if err != nil {
		return nil, fmt.Errorf("scan analysis result: %w", err)
	}

	result.Timeframe = domain.Timeframe(timeframe)
	result.TrendDirection = domain.TrendDirection(trend)
	result.Reasoning = reasoning.String
	if indicators.Valid && indicators.String != "" {
		if err := json.Unmarshal([]byte(indicators.String), &result.Indicators); err != nil {
			return nil, fmt.Errorf("unmarshal indicators: %w", err)
		}
	}
	return &result, nil
}

// StatusRepository implementation

func (s *SQLiteStore) UpdateStatus(ctx context.Context, scriptName, status, message string, nextRun *time.Time) error {
	now := time.Now().UTC()
	query := `INSERT INTO script_status (script_name, last_run, status, message, next_run, updated_at)
			  VALUES (?, ?, ?, ?, ?, ?)
			  ON CONFLICT(script_name)
			  DO UPDATE SET last_run = excluded.last_run, status = excluded.status,
							message = excluded.message, next_run = excluded.next_run,
							updated_at = excluded.updated_at`

	var next any
	if nextRun != nil {
		next = nextRun.UTC()
	}
	if _, err := s.db.ExecContext(ctx, query, scriptName, now, status, message, next, now); err != nil {
		return fmt.Errorf("update status: %w", err)
	}
	return nil
}

func (s *SQLiteStore) ListStatuses(ctx context.Context) ([]domain.ServiceStatus, error) {
	query := `SELECT script_name, last_run, status, message, next_run, updated_at FROM script_status ORDER BY script_name`

	rows, err := s.db.QueryContext(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("list statuses: %w", err)
	}
	defer rows.Close()

	var out []domain.ServiceStatus
	for rows.Next() {
		var st domain.ServiceStatus
		var lastRun, nextRun sql.NullTime
		var status, message sql.NullString
		if err := rows.Scan(&st.ScriptName, &lastRun, &status, &message, &nextRun, &st.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan status: %w", err)
		}
		if lastRun.Valid {
			t := lastRun.Time
			st.LastRun = &t
		}
		if nextRun.Valid {
			t := nextRun.Time
			st.NextRun = &t
		}
		st.Status = status.String
		st.Message = message.String
		out = append(out, st)
	}
	return out, rows.Err()
}

func nullable(v *float64) any {
	if v == nil {
		return nil
	}
	return *v
}

func fromNull(v sql.NullFloat64) *float64 {
	if !v.Valid {
		return nil
	}
	f := v.Float64
	return &f
}
