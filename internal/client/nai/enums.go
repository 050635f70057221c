package nai

// PESTELCategory groups national indicators into the fixed PESTEL
// classification used by the backend.
type PESTELCategory string

const (
	CategoryPolitical     PESTELCategory = "political"
	CategoryEconomic      PESTELCategory = "economic"
	CategorySocial        PESTELCategory = "social"
	CategoryTechnological PESTELCategory = "technological"
	CategoryEnvironmental PESTELCategory = "environmental"
	CategoryLegal         PESTELCategory = "legal"
)

func Categories() []PESTELCategory {
	return []PESTELCategory{
		CategoryPolitical,
		CategoryEconomic,
		CategorySocial,
		CategoryTechnological,
		CategoryEnvironmental,
		CategoryLegal,
	}
}

// Trend is the backend's classification of an indicator's movement.
type Trend string

const (
	TrendUp     Trend = "up"
	TrendDown   Trend = "down"
	TrendStable Trend = "stable"
)

// Severity ranks business insights.
type Severity string

const (
	SeverityInfo     Severity = "info"
	SeverityWarning  Severity = "warning"
	SeverityCritical Severity = "critical"
)
