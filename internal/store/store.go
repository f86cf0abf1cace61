// Package store persists discovered jobs in Postgres. Persistence is
// optional; when no database is configured the pipeline runs without it.
package store

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"go.uber.org/zap"

	"github.com/jobhunter/backend/internal/domain"
)

// JobStore writes discovered jobs into the job_feed table.
type JobStore struct {
	pool   *pgxpool.Pool
	logger *zap.Logger
}

// New connects to Postgres and verifies the connection.
func New(ctx context.Context, databaseURL string, logger *zap.Logger) (*JobStore, error) {
	pool, err := pgxpool.New(ctx, databaseURL)
	if err != nil {
		return nil, fmt.Errorf("creating pool: %w", err)
	}
	if err := pool.Ping(ctx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("connecting to postgres: %w", err)
	}
	return &JobStore{pool: pool, logger: logger}, nil
}

// Close shuts down the connection pool.
func (s *JobStore) Close() {
	s.pool.Close()
}

// SaveJobs inserts records, deduplicating on URL. Synthetic placeholders
// are skipped. Returns the number of newly inserted rows.
func (s *JobStore) SaveJobs(ctx context.Context, records []domain.JobRecord) (int, error) {
	inserted := 0
	for _, r := range records {
		if r.IsSynthetic {
			continue
		}
		tag, err := s.pool.Exec(ctx, `
			INSERT INTO job_feed (title, company, location, url, salary, source, source_type, country, posted_date, discovered_at)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
			ON CONFLICT (url) DO NOTHING`,
			r.Title, r.Company, r.Location, r.URL, r.Salary,
			r.Source, string(r.SourceType), r.Country, r.PostedDate, time.Now(),
		)
		if err != nil {
			return inserted, fmt.Errorf("inserting job %q: %w", r.URL, err)
		}
		inserted += int(tag.RowsAffected())
	}
	s.logger.Debug("jobs persisted",
		zap.Int("offered", len(records)),
		zap.Int("inserted", inserted),
	)
	return inserted, nil
}

// RecentJobs returns the newest stored jobs, most recent first.
func (s *JobStore) RecentJobs(ctx context.Context, limit int) ([]domain.JobRecord, error) {
	rows, err := s.pool.Query(ctx, `
		SELECT title, company, location, url, salary, source, source_type, country, posted_date
		FROM job_feed
		ORDER BY discovered_at DESC
		LIMIT $1`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying jobs: %w", err)
	}
	defer rows.Close()

	var records []domain.JobRecord
	for rows.Next() {
		var r domain.JobRecord
		var sourceType string
		if err := rows.Scan(&r.Title, &r.Company, &r.Location, &r.URL, &r.Salary,
			&r.Source, &sourceType, &r.Country, &r.PostedDate); err != nil {
			return nil, fmt.Errorf("scanning job row: %w", err)
		}
		r.SourceType = domain.SourceType(sourceType)
		records = append(records, r)
	}
	return records, rows.Err()
}
