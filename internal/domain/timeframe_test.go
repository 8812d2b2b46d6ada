package domain

import "testing"

func TestTimeframeParameters(t *testing.T) {
	tests := []struct {
		tf         Timeframe
		hours      int
		multiplier float64
		adjustment int
		display    string
	}{
		{Timeframe1h, 1, 0.02, 0, "1 hour"},
		{Timeframe4h, 4, 0.05, -2, "4 hours"},
		{Timeframe24h, 24, 0.10, -5, "24 hours"},
		{Timeframe7d, 168, 0.20, -15, "7 days"},
		{Timeframe30d, 720, 0.40, -25, "30 days (1 month)"},
	}

	for _, tt := range tests {
		if got := tt.tf.Hours(); got != tt.hours {
			t.Errorf("%s Hours() = %d, want %d", tt.tf, got, tt.hours)
		}
		if got := tt.tf.Multiplier(); got != tt.multiplier {
			t.Errorf("%s Multiplier() = %v, want %v", tt.tf, got, tt.multiplier)
		}
		if got := tt.tf.ConfidenceAdjustment(); got != tt.adjustment {
			t.Errorf("%s ConfidenceAdjustment() = %d, want %d", tt.tf, got, tt.adjustment)
		}
		if got := tt.tf.DisplayName(); got != tt.display {
			t.Errorf("%s DisplayName() = %q, want %q", tt.tf, got, tt.display)
		}
	}
}

func TestTimeframeDefaults(t *testing.T) {
	unknown := Timeframe("2h")
	if unknown.Hours() != 24 {
		t.Errorf("unknown Hours() = %d, want 24", unknown.Hours())
	}
	if unknown.Multiplier() != 0.05 {
		t.Errorf("unknown Multiplier() = %v, want 0.05", unknown.Multiplier())
	}
	if unknown.ConfidenceAdjustment() != 0 {
		t.Errorf("unknown ConfidenceAdjustment() = %d, want 0", unknown.ConfidenceAdjustment())
	}
	if unknown.DisplayName() != "2h" {
		t.Errorf("unknown DisplayName() = %q", unknown.DisplayName())
	}
}

func TestIndicatorSetEmptyAndCount(t *testing.T) {
	var set IndicatorSet
	if !set.Empty() {
		t.Fatal("zero set must be empty")
	}

	price := 0.10
	set.CurrentPrice = &price
	if set.Empty() {
		t.Fatal("set with current price is not empty")
	}
	if got := set.NumericCount(); got != 1 {
		t.Fatalf("NumericCount() = %d, want 1", got)
	}

	rsi := 55.0
	set.RSI = &rsi
	set.VolumeTrend = "high" // label is not numeric
	if got := set.NumericCount(); got != 2 {
		t.Fatalf("NumericCount() = %d, want 2", got)
	}
}
