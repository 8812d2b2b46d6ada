package indicator

// VolumeAnalysis summarizes current volume against the window average.
type VolumeAnalysis struct {
	AvgVolume     float64
	CurrentVolume float64
	Ratio         float64
	Trend         string
}

// AnalyzeVolume compares the latest volume to the mean of the window. A zero
// average yields a ratio of 1.0 rather than a division by zero.
func AnalyzeVolume(volumes []float64) VolumeAnalysis {
	if len(volumes) == 0 {
		return VolumeAnalysis{Ratio: 1.0, Trend: "neutral"}
	}

	var sum float64
	for _, v := range volumes {
		sum += v
	}
	avg := sum / float64(len(volumes))
	current := volumes[len(volumes)-1]

	ratio := 1.0
	if avg > 0 {
		ratio = current / avg
	}

	trend := "normal"
	switch {
	case ratio > 1.5:
		trend = "high"
	case ratio < 0.5:
		trend = "low"
	}

	return VolumeAnalysis{
		AvgVolume:     avg,
		CurrentVolume: current,
		Ratio:         ratio,
		Trend:         trend,
	}
}
