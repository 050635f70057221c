// Package metrics holds the pure derived-metric computations the
// dashboard presents: overall health, pipeline dropoff, and trend
// classification. Nothing here performs I/O.
package metrics

import (
	"math"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
)

// HealthScore computes the aggregate national health score in [0, 100]
// from indicator impact scores. Positive impact scores denote adverse
// impact; non-positive scores contribute zero. The mean of adverse
// contributions over the full indicator count is mapped onto the scale
// as 100 - mean*100, clamped at 0.
//
// An empty input scores 100: no indicators means no known adverse
// impact. Whether "no data" should really read as "perfect" is a
// product question, not an engineering one.
func HealthScore(indicators []nai.Indicator) int {
	if len(indicators) == 0 {
		return 100
	}

	var adverse float64
	for _, indicator := range indicators {
		if indicator.ImpactScore > 0 {
			adverse += indicator.ImpactScore
		}
	}

	mean := adverse / float64(len(indicators))
	score := 100 - mean*100
	if score < 0 {
		score = 0
	}
	return int(math.Round(score))
}
