package metrics

import "github.com/hansajasandeepabadalge/naiterm/internal/client/nai"

// StageDropoff is the loss between two consecutive pipeline stages.
type StageDropoff struct {
	From    string
	To      string
	Dropoff int

	// DropoffPercent is Dropoff relative to the preceding stage's
	// count; 0 when the preceding count is 0.
	DropoffPercent float64
}

// StageDropoffs computes per-gap losses for an ordered sequence of
// pipeline stages. Fewer than two stages yield no gaps.
func StageDropoffs(stages []nai.PipelineStage) []StageDropoff {
	if len(stages) < 2 {
		return nil
	}

	dropoffs := make([]StageDropoff, 0, len(stages)-1)
	for i := 1; i < len(stages); i++ {
		prev, cur := stages[i-1], stages[i]

		d := StageDropoff{
			From:    prev.Name,
			To:      cur.Name,
			Dropoff: prev.Count - cur.Count,
		}
		if prev.Count != 0 {
			d.DropoffPercent = float64(d.Dropoff) / float64(prev.Count) * 100
		}
		dropoffs = append(dropoffs, d)
	}
	return dropoffs
}

// OverallSuccessRate is the percentage of items entering the first
// stage that survive to the last: last.count / first.count * 100.
// A single stage passes everything through (100); no stages or an
// empty first stage yield 0.
func OverallSuccessRate(stages []nai.PipelineStage) float64 {
	if len(stages) == 0 {
		return 0
	}
	if len(stages) == 1 {
		return 100
	}

	first, last := stages[0], stages[len(stages)-1]
	if first.Count == 0 {
		return 0
	}
	return float64(last.Count) / float64(first.Count) * 100
}
