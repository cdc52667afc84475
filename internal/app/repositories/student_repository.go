package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/dberrors"
)

// StudentRepository handles database operations for student records
type StudentRepository struct {
	db *pgxpool.Pool
}

// NewStudentRepository creates a new student repository
func NewStudentRepository(db *pgxpool.Pool) *StudentRepository {
	return &StudentRepository{db: db}
}

// Create inserts a student record. A duplicate id_number maps to
// ErrDuplicateUser.
func (r *StudentRepository) Create(ctx context.Context, student *models.Student) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO students (first_name, last_name, id_number, batch_id, stream_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING student_id`,
		student.FirstName, student.LastName, student.IDNumber, student.BatchID, student.StreamID).Scan(&id)
	if err != nil {
		if dberrors.IsUniqueViolation(err) {
			return 0, apperrors.ErrDuplicateUser
		}
		return 0, fmt.Errorf("error inserting student: %w", err)
	}
	return id, nil
}

// Exists checks whether a student carries the given id_number.
func (r *StudentRepository) Exists(ctx context.Context, idNumber string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx,
		`SELECT EXISTS(SELECT 1 FROM students WHERE id_number = $1)`, idNumber).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking student existence: %w", err)
	}
	return exists, nil
}

// GetByCredentials looks up a student by its ID number and first name.
// The pair is the student login credential; first name matching is
// case-insensitive.
func (r *StudentRepository) GetByCredentials(ctx context.Context, idNumber, firstName string) (*models.StudentDetail, error) {
	var d models.StudentDetail
	err := r.db.QueryRow(ctx, `
		SELECT s.student_id, s.first_name, s.last_name, s.id_number,
		       s.batch_id, b.batch_year, s.stream_id, st.stream_name, s.created_at
		FROM students s
		JOIN batches b ON s.batch_id = b.batch_id
		LEFT JOIN streams st ON s.stream_id = st.stream_id
		WHERE s.id_number = $1 AND LOWER(s.first_name) = LOWER($2)`,
		idNumber, firstName).Scan(
		&d.ID, &d.FirstName, &d.LastName, &d.IDNumber,
		&d.BatchID, &d.BatchYear, &d.StreamID, &d.StreamName, &d.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving student: %w", err)
	}
	return &d, nil
}

// ListByBatch returns every student of a batch, optionally narrowed to
// a stream, joined with batch and stream labels.
func (r *StudentRepository) ListByBatch(ctx context.Context, batchID int64, streamID *int64) ([]models.StudentDetail, error) {
	query := `
		SELECT s.student_id, s.first_name, s.last_name, s.id_number,
		       s.batch_id, b.batch_year, s.stream_id, st.stream_name, s.created_at
		FROM students s
		JOIN batches b ON s.batch_id = b.batch_id
		LEFT JOIN streams st ON s.stream_id = st.stream_id
		WHERE s.batch_id = $1
	`
	args := []any{batchID}
	if streamID != nil {
		args = append(args, *streamID)
		query += " AND s.stream_id = $2"
	}
	query += " ORDER BY s.first_name, s.last_name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing students: %w", err)
	}
	defer rows.Close()

	var students []models.StudentDetail
	for rows.Next() {
		var d models.StudentDetail
		if err := rows.Scan(
			&d.ID, &d.FirstName, &d.LastName, &d.IDNumber,
			&d.BatchID, &d.BatchYear, &d.StreamID, &d.StreamName, &d.CreatedAt,
		); err != nil {
			return nil, err
		}
		students = append(students, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return students, nil
}

// Delete removes a student record.
func (r *StudentRepository) Delete(ctx context.Context, studentID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM students WHERE student_id = $1`, studentID)
	if err != nil {
		return fmt.Errorf("error deleting student: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
