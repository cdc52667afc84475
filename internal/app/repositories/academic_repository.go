package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
)

// AcademicRepository reads the fixed taxonomy tables: batches, streams
// and semesters. These are seeded at install time and never mutated by
// request handlers.
type AcademicRepository struct {
	db *pgxpool.Pool
}

// NewAcademicRepository creates a new academic taxonomy repository
func NewAcademicRepository(db *pgxpool.Pool) *AcademicRepository {
	return &AcademicRepository{db: db}
}

// ListBatches returns all batches ordered by id.
func (r *AcademicRepository) ListBatches(ctx context.Context) ([]models.Batch, error) {
	rows, err := r.db.Query(ctx, `SELECT batch_id, batch_year FROM batches ORDER BY batch_id`)
	if err != nil {
		return nil, fmt.Errorf("error listing batches: %w", err)
	}
	defer rows.Close()

	var batches []models.Batch
	for rows.Next() {
		var b models.Batch
		if err := rows.Scan(&b.ID, &b.Year); err != nil {
			return nil, err
		}
		batches = append(batches, b)
	}
	return batches, rows.Err()
}

// GetBatch returns a single batch by id.
func (r *AcademicRepository) GetBatch(ctx context.Context, id int64) (*models.Batch, error) {
	var b models.Batch
	err := r.db.QueryRow(ctx,
		`SELECT batch_id, batch_year FROM batches WHERE batch_id = $1`, id).Scan(&b.ID, &b.Year)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving batch: %w", err)
	}
	return &b, nil
}

// GetStream returns a single stream by id.
func (r *AcademicRepository) GetStream(ctx context.Context, id int64) (*models.Stream, error) {
	var s models.Stream
	err := r.db.QueryRow(ctx,
		`SELECT stream_id, stream_name FROM streams WHERE stream_id = $1`, id).Scan(&s.ID, &s.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving stream: %w", err)
	}
	return &s, nil
}

// ListStreams returns all streams ordered by id.
func (r *AcademicRepository) ListStreams(ctx context.Context) ([]models.Stream, error) {
	rows, err := r.db.Query(ctx, `SELECT stream_id, stream_name FROM streams ORDER BY stream_id`)
	if err != nil {
		return nil, fmt.Errorf("error listing streams: %w", err)
	}
	defer rows.Close()

	var streams []models.Stream
	for rows.Next() {
		var s models.Stream
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		streams = append(streams, s)
	}
	return streams, rows.Err()
}

// ListSemesters returns both semesters ordered by id.
func (r *AcademicRepository) ListSemesters(ctx context.Context) ([]models.Semester, error) {
	rows, err := r.db.Query(ctx, `SELECT semester_id, semester_name FROM semesters ORDER BY semester_id`)
	if err != nil {
		return nil, fmt.Errorf("error listing semesters: %w", err)
	}
	defer rows.Close()

	var semesters []models.Semester
	for rows.Next() {
		var s models.Semester
		if err := rows.Scan(&s.ID, &s.Name); err != nil {
			return nil, err
		}
		semesters = append(semesters, s)
	}
	return semesters, rows.Err()
}
