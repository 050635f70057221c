package nai

import (
	"time"

	"golang.org/x/oauth2"
)

// TokenPair is the credential pair as the backend serializes it.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int    `json:"expires_in"`
}

// Token converts the wire pair into an oauth2.Token, turning the
// relative expires_in into an absolute expiry.
func (p *TokenPair) Token() *oauth2.Token {
	token := &oauth2.Token{
		AccessToken:  p.AccessToken,
		RefreshToken: p.RefreshToken,
		TokenType:    p.TokenType,
	}
	if p.ExpiresIn > 0 {
		token.Expiry = time.Now().Add(time.Duration(p.ExpiresIn) * time.Second)
	}
	return token
}

type Credentials struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type Registration struct {
	Email       string `json:"email"`
	Password    string `json:"password"`
	CompanyName string `json:"company_name"`
}

// Thresholds are the per-indicator alerting bounds. Either bound may be
// absent.
type Thresholds struct {
	Warning  *float64 `json:"warning,omitempty"`
	Critical *float64 `json:"critical,omitempty"`
}

// Indicator is a read-only snapshot of one national indicator. The
// authoritative copy lives server-side.
type Indicator struct {
	ID            string         `json:"id"`
	Name          string         `json:"name"`
	Category      PESTELCategory `json:"category"`
	CurrentValue  float64        `json:"current_value"`
	BaselineValue float64        `json:"baseline_value"`
	ImpactScore   float64        `json:"impact_score"`
	Trend         Trend          `json:"trend"`
	ChangePercent float64        `json:"change_percent"`
	Thresholds    *Thresholds    `json:"thresholds,omitempty"`
}

type IndicatorList struct {
	Indicators []Indicator `json:"indicators"`
	Total      int         `json:"total"`
}

type HistoryPoint struct {
	Timestamp time.Time `json:"timestamp"`
	Value     float64   `json:"value"`
}

type IndicatorHistory struct {
	IndicatorID string         `json:"indicator_id"`
	Points      []HistoryPoint `json:"points"`
}

// OperationsData is the operational-metrics payload from
// /user/operations-data.
type OperationsData struct {
	Indicators    []Indicator `json:"indicators"`
	Total         int         `json:"total"`
	CriticalCount int         `json:"critical_count"`
	WarningCount  int         `json:"warning_count"`
}

// PipelineStage is one stage of the scraping pipeline with the number
// of items that made it through.
type PipelineStage struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// DashboardSummary is the admin dashboard aggregate.
type DashboardSummary struct {
	Indicators     []Indicator     `json:"indicators"`
	PipelineStages []PipelineStage `json:"pipeline_stages"`
	ActiveSources  int             `json:"active_sources"`
	LastScrapeAt   *time.Time      `json:"last_scrape_at,omitempty"`
}

type BusinessInsight struct {
	ID        string         `json:"id"`
	Title     string         `json:"title"`
	Summary   string         `json:"summary"`
	Category  PESTELCategory `json:"category"`
	Severity  Severity       `json:"severity"`
	CreatedAt time.Time      `json:"created_at"`
}

type InsightList struct {
	Insights []BusinessInsight `json:"insights"`
	Total    int               `json:"total"`
}

type CompanyProfile struct {
	ID       string `json:"id"`
	Name     string `json:"name"`
	Industry string `json:"industry"`
	Region   string `json:"region"`
}
