package metrics

import "github.com/hansajasandeepabadalge/naiterm/internal/client/nai"

// TrendEpsilon is the percentage-change threshold below which movement
// counts as noise.
const TrendEpsilon = 1.0

// ClassifyTrend buckets a percentage change as up, down, or stable.
func ClassifyTrend(changePercent float64) nai.Trend {
	switch {
	case changePercent > TrendEpsilon:
		return nai.TrendUp
	case changePercent < -TrendEpsilon:
		return nai.TrendDown
	default:
		return nai.TrendStable
	}
}
