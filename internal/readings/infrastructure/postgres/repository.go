package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	readings "building-energy/internal/readings/domain"
)

const defaultReadingsTable = "hourly_readings"

// ReadingRepository is a Postgres implementation for hourly readings.
type ReadingRepository struct {
	db    *sql.DB
	table string
}

// RepositoryOption configures the repository.
type RepositoryOption func(*ReadingRepository)

// WithTable overrides the default table name.
func WithTable(table string) RepositoryOption {
	return func(repo *ReadingRepository) {
		if table != "" {
			repo.table = table
		}
	}
}

// NewReadingRepository constructs a repository with the default table name.
func NewReadingRepository(db *sql.DB, opts ...RepositoryOption) *ReadingRepository {
	repo := &ReadingRepository{db: db, table: defaultReadingsTable}
	for _, opt := range opts {
		opt(repo)
	}
	return repo
}

// Insert upserts readings keyed by (meter_id, ts).
func (r *ReadingRepository) Insert(ctx context.Context, items []readings.Reading) error {
	if r == nil || r.db == nil {
		return errors.New("readings repo: nil db")
	}
	if len(items) == 0 {
		return nil
	}

	query := fmt.Sprintf(`
INSERT INTO %s (
	meter_id,
	ts,
	kw,
	kwh
) VALUES (
	$1, $2, $3, $4
)
ON CONFLICT (meter_id, ts)
DO UPDATE SET
	kw = EXCLUDED.kw,
	kwh = EXCLUDED.kwh,
	updated_at = NOW()`, r.table)

	tx, err := r.db.BeginTx(ctx, nil)
	if err != nil {
		return err
	}

	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		_ = tx.Rollback()
		return err
	}
	defer stmt.Close()

	for _, item := range items {
		if item.MeterID == "" {
			_ = tx.Rollback()
			return readings.ErrEmptyMeterID
		}
		if item.Timestamp.IsZero() {
			_ = tx.Rollback()
			return readings.ErrInvalidTimestamp
		}
		if _, err := stmt.ExecContext(ctx, item.MeterID, item.Timestamp.UTC(), item.KW, item.KWh); err != nil {
			_ = tx.Rollback()
			return err
		}
	}

	return tx.Commit()
}

// ListRange returns readings for a meter in [from, to), ascending by ts.
func (r *ReadingRepository) ListRange(ctx context.Context, meterID string, from, to time.Time) ([]readings.Reading, error) {
	if r == nil || r.db == nil {
		return nil, errors.New("readings repo: nil db")
	}
	if meterID == "" {
		return nil, readings.ErrEmptyMeterID
	}
	if from.IsZero() || to.IsZero() || !to.After(from) {
		return nil, readings.ErrInvalidRange
	}

	query := fmt.Sprintf(`
SELECT meter_id, ts, kw, kwh
FROM %s
WHERE meter_id = $1 AND ts >= $2 AND ts < $3
ORDER BY ts ASC`, r.table)

	rows, err := r.db.QueryContext(ctx, query, meterID, from.UTC(), to.UTC())
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var result []readings.Reading
	for rows.Next() {
		var item readings.Reading
		if err := rows.Scan(&item.MeterID, &item.Timestamp, &item.KW, &item.KWh); err != nil {
			return nil, err
		}
		item.Timestamp = item.Timestamp.UTC()
		result = append(result, item)
	}
	return result, rows.Err()
}
