package repository

import (
	"context"
	"database/sql"
	"fmt"
	"time"

	"github.com/hansajasandeepabadalge/naiterm/internal/client/nai"
)

type indicatorRepo struct {
	db *sql.DB
}

const upsertIndicatorQuery = `
INSERT INTO indicators (id, name, category, current_value, baseline_value, impact_score, trend, warning_at, critical_at, updated_at)
VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
ON CONFLICT (id) DO UPDATE SET
    name = excluded.name,
    category = excluded.category,
    current_value = excluded.current_value,
    baseline_value = excluded.baseline_value,
    impact_score = excluded.impact_score,
    trend = excluded.trend,
    warning_at = excluded.warning_at,
    critical_at = excluded.critical_at,
    updated_at = excluded.updated_at`

func (r *indicatorRepo) UpsertBatch(ctx context.Context, indicators []nai.Indicator) error {
	if len(indicators) == 0 {
		return nil
	}

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback() }()

	stmt, err := tx.PrepareContext(ctx, upsertIndicatorQuery)
	if err != nil {
		return fmt.Errorf("failed to prepare upsert: %w", err)
	}
	defer func() { _ = stmt.Close() }()

	now := time.Now()
	for _, indicator := range indicators {
		var warningAt, criticalAt *float64
		if indicator.Thresholds != nil {
			warningAt = indicator.Thresholds.Warning
			criticalAt = indicator.Thresholds.Critical
		}

		_, err := stmt.ExecContext(ctx,
			indicator.ID,
			indicator.Name,
			string(indicator.Category),
			indicator.CurrentValue,
			indicator.BaselineValue,
			indicator.ImpactScore,
			string(indicator.Trend),
			warningAt,
			criticalAt,
			now,
		)
		if err != nil {
			return fmt.Errorf("failed to upsert indicator %s: %w", indicator.ID, err)
		}
	}

	return tx.Commit()
}

func (r *indicatorRepo) GetAll(ctx context.Context) ([]nai.Indicator, error) {
	const query = `
SELECT id, name, category, current_value, baseline_value, impact_score, trend, warning_at, critical_at
FROM indicators ORDER BY category, name`

	return r.queryIndicators(ctx, query)
}

func (r *indicatorRepo) GetByCategory(ctx context.Context, category nai.PESTELCategory) ([]nai.Indicator, error) {
	const query = `
SELECT id, name, category, current_value, baseline_value, impact_score, trend, warning_at, critical_at
FROM indicators WHERE category = ? ORDER BY name`

	return r.queryIndicators(ctx, query, string(category))
}

func (r *indicatorRepo) queryIndicators(ctx context.Context, query string, args ...any) ([]nai.Indicator, error) {
	rows, err := r.db.QueryContext(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to query indicators: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var indicators []nai.Indicator
	for rows.Next() {
		var (
			indicator  nai.Indicator
			warningAt  sql.NullFloat64
			criticalAt sql.NullFloat64
		)
		err := rows.Scan(
			&indicator.ID,
			&indicator.Name,
			&indicator.Category,
			&indicator.CurrentValue,
			&indicator.BaselineValue,
			&indicator.ImpactScore,
			&indicator.Trend,
			&warningAt,
			&criticalAt,
		)
		if err != nil {
			return nil, fmt.Errorf("failed to scan indicator: %w", err)
		}

		if warningAt.Valid || criticalAt.Valid {
			indicator.Thresholds = &nai.Thresholds{}
			if warningAt.Valid {
				indicator.Thresholds.Warning = &warningAt.Float64
			}
			if criticalAt.Valid {
				indicator.Thresholds.Critical = &criticalAt.Float64
			}
		}

		indicators = append(indicators, indicator)
	}
	return indicators, rows.Err()
}
