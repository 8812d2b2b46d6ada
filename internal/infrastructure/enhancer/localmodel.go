// Package enhancer talks to a local OpenAI-compatible model server
// (LM Studio) to expand the deterministic analysis reasoning.
package enhancer

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/r0mik/dogecoinanalyzer/internal/domain"
)

// LocalModel implements domain.Enhancer against the LM Studio chat
// completions API. When disabled or unreachable it reports
// domain.ErrEnhancerUnavailable instead of failing the analysis.
type LocalModel struct {
	enabled     bool
	baseURL     string
	client      *http.Client
	temperature float64
	maxTokens   int
	logger      *zap.Logger
}

func NewLocalModel(enabled bool, baseURL string, timeout time.Duration, temperature float64, maxTokens int, logger *zap.Logger) *LocalModel {
	return &LocalModel{
		enabled:     enabled,
		baseURL:     strings.TrimRight(baseURL, "/"),
		client:      &http.Client{Timeout: timeout},
		temperature: temperature,
		maxTokens:   maxTokens,
		logger:      logger,
	}
}

// IsAvailable probes the models endpoint. Used at startup for logging only.
func (m *LocalModel) IsAvailable(ctx context.Context) bool {
	if !m.enabled {
		return false
	}

	probeCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	req, err := http.NewRequestWithContext(probeCtx, http.MethodGet, m.baseURL+"/v1/models", nil)
	if err != nil {
		return false
	}
	resp, err := m.client.Do(req)
	if err != nil {
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

func (m *LocalModel) Enhance(ctx context.Context, req domain.EnhanceRequest) (string, error) {
	if !m.enabled {
		return "", domain.ErrEnhancerUnavailable
	}

	text, err := m.chat(ctx, buildPrompt(req))
	if err != nil {
		m.logger.Warn("Local model call failed", zap.Error(err))
		return "", domain.ErrEnhancerUnavailable
	}
	if text == "" {
		return "", domain.ErrEnhancerUnavailable
	}
	return text, nil
}

type chatMessage struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type chatRequest struct {
	Model       string        `json:"model"`
	Messages    []chatMessage `json:"messages"`
	Temperature float64       `json:"temperature"`
	MaxTokens   int           `json:"max_tokens"`
	Stream      bool          `json:"stream"`
}

type chatResponse struct {
	Choices []struct {
		Message chatMessage `json:"message"`
	} `json:"choices"`
}

func (m *LocalModel) chat(ctx context.Context, prompt string) (string, error) {
	payload := chatRequest{
		Model: "local-model",
		Messages: []chatMessage{
			{Role: "system", Content: "You are a professional cryptocurrency market analyst."},
			{Role: "user", Content: prompt},
		},
		Temperature: m.temperature,
		MaxTokens:   m.maxTokens,
		Stream:      false,
	}

	body, err := json.Marshal(payload)
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, m.baseURL+"/v1/chat/completions", bytes.NewReader(body))
	if err != nil {
		return "", err
	}
	req.Header.Set("Content-Type", "application/json")

	resp, err := m.client.Do(req)
	if err != nil {
		return "", err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("local model returned status %d", resp.StatusCode)
	}

	var parsed chatResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", fmt.Errorf("decode local model response: %w", err)
	}
	if len(parsed.Choices) == 0 {
		return "", nil
	}
	return strings.TrimSpace(parsed.Choices[0].Message.Content), nil
}

func buildPrompt(req domain.EnhanceRequest) string {
	changePct := 0.0
	if req.CurrentPrice != 0 {
		changePct = (req.PredictedPrice - req.CurrentPrice) / req.CurrentPrice * 100
	}

	return fmt.Sprintf(`You are a cryptocurrency market analyst specializing in Dogecoin (DOGE) analysis.

Current Market Analysis:
- Timeframe: %s
- Current Price: $%.8f
- Predicted Price: $%.8f (%+.2f%%)
- Trend Direction: %s

Technical Indicators:
%s

Basic Technical Analysis:
%s

Please provide a deeper analysis that:
1. Interprets the technical indicators in the context of Dogecoin's market behavior
2. Considers market sentiment and potential catalysts
3. Explains the reasoning behind the %s trend
4. Discusses potential risks and opportunities
5. Provides context for the %s timeframe prediction

Keep the analysis concise, professional, and focused on actionable insights.
Do not provide financial advice, only market analysis.

Enhanced Analysis:`,
		req.Timeframe,
		req.CurrentPrice,
		req.PredictedPrice,
		changePct,
		strings.ToUpper(string(req.Trend)),
		formatIndicators(req.Indicators),
		req.BasicReasoning,
		req.Trend,
		req.Timeframe,
	)
}

func formatIndicators(ind domain.IndicatorSet) string {
	var lines []string

	if ind.RSI != nil {
		status := "Neutral"
		if *ind.RSI < 30 {
			status = "Oversold"
		} else if *ind.RSI > 70 {
			status = "Overbought"
		}
		lines = append(lines, fmt.Sprintf("- RSI: %.2f (%s)", *ind.RSI, status))
	}

	if ind.SMA20 != nil {
		lines = append(lines, fmt.Sprintf("- SMA 20: $%.8f", *ind.SMA20))
	}
	if ind.SMA50 != nil {
		lines = append(lines, fmt.Sprintf("- SMA 50: $%.8f", *ind.SMA50))
	}
	if ind.SMA200 != nil {
		lines = append(lines, fmt.Sprintf("- SMA 200: $%.8f", *ind.SMA200))
	}
	if ind.EMA12 != nil {
		lines = append(lines, fmt.Sprintf("- EMA 12: $%.8f", *ind.EMA12))
	}
	if ind.EMA26 != nil {
		lines = append(lines, fmt.Sprintf("- EMA 26: $%.8f", *ind.EMA26))
	}

	if ind.MACD != nil && ind.MACDSignal != nil {
		trend := "Bearish"
		if *ind.MACD > *ind.MACDSignal {
			trend = "Bullish"
		}
		lines = append(lines, fmt.Sprintf("- MACD: %.8f (Signal: %.8f, %s)", *ind.MACD, *ind.MACDSignal, trend))
	}

	if ind.BBUpper != nil && ind.BBLower != nil && ind.BBMiddle != nil {
		lines = append(lines, fmt.Sprintf("- Bollinger Bands: Upper $%.8f, Middle $%.8f, Lower $%.8f",
			*ind.BBUpper, *ind.BBMiddle, *ind.BBLower))
	}

	if ind.VolumeTrend != "" && ind.VolumeRatio != nil {
		lines = append(lines, fmt.Sprintf("- Volume: %s (Ratio: %.2fx)", strings.ToUpper(ind.VolumeTrend), *ind.VolumeRatio))
	}

	if len(lines) == 0 {
		return "No indicators available"
	}
	return strings.Join(lines, "\n")
}
