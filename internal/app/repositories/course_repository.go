package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/db"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/dberrors"
)

// CourseRepository handles database operations for the course catalog
// and its batch offerings.
type CourseRepository struct {
	db *pgxpool.Pool
}

// NewCourseRepository creates a new course repository
func NewCourseRepository(db *pgxpool.Pool) *CourseRepository {
	return &CourseRepository{db: db}
}

// CreateOffering registers a course in the catalog (reusing the row
// when the same name/code pair already exists) and links it to a
// (batch, stream, semester) combination, all in one transaction.
// Re-linking an already linked combination is a no-op reporting the
// existing offering, so repeated creates converge on one row.
func (r *CourseRepository) CreateOffering(ctx context.Context, name, code string, batchID int64, streamID *int64, semesterID int64) (*models.BatchCourse, error) {
	var bc models.BatchCourse
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var courseID int64
		err := tx.QueryRow(ctx,
			`SELECT course_id FROM courses WHERE course_name = $1 AND course_code = $2`,
			name, code).Scan(&courseID)
		if errors.Is(err, pgx.ErrNoRows) {
			err = tx.QueryRow(ctx, `
				INSERT INTO courses (course_name, course_code)
				VALUES ($1, $2)
				RETURNING course_id`, name, code).Scan(&courseID)
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrDuplicateCourse
			}
		}
		if err != nil {
			return fmt.Errorf("error resolving course: %w", err)
		}

		err = tx.QueryRow(ctx, `
			SELECT batch_course_id FROM batch_courses
			WHERE batch_id = $1 AND course_id = $2 AND semester_id = $3
			  AND stream_id IS NOT DISTINCT FROM $4`,
			batchID, courseID, semesterID, streamID).Scan(&bc.ID)
		if errors.Is(err, pgx.ErrNoRows) {
			err = tx.QueryRow(ctx, `
				INSERT INTO batch_courses (batch_id, stream_id, semester_id, course_id)
				VALUES ($1, $2, $3, $4)
				RETURNING batch_course_id`,
				batchID, streamID, semesterID, courseID).Scan(&bc.ID)
		}
		if err != nil {
			return fmt.Errorf("error linking course to batch: %w", err)
		}

		bc.BatchID = batchID
		bc.StreamID = streamID
		bc.SemesterID = semesterID
		bc.CourseID = courseID
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &bc, nil
}

// GetCourse returns a catalog row by id.
func (r *CourseRepository) GetCourse(ctx context.Context, courseID int64) (*models.Course, error) {
	var c models.Course
	err := r.db.QueryRow(ctx,
		`SELECT course_id, course_name, course_code FROM courses WHERE course_id = $1`,
		courseID).Scan(&c.ID, &c.Name, &c.Code)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving course: %w", err)
	}
	return &c, nil
}

// GetBatchCourse returns the raw batch_courses row.
func (r *CourseRepository) GetBatchCourse(ctx context.Context, batchCourseID int64) (*models.BatchCourse, error) {
	var bc models.BatchCourse
	err := r.db.QueryRow(ctx, `
		SELECT batch_course_id, batch_id, stream_id, semester_id, course_id
		FROM batch_courses
		WHERE batch_course_id = $1`,
		batchCourseID).Scan(&bc.ID, &bc.BatchID, &bc.StreamID, &bc.SemesterID, &bc.CourseID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving batch course: %w", err)
	}
	return &bc, nil
}

// GetOffering returns one offering joined with its labels.
func (r *CourseRepository) GetOffering(ctx context.Context, batchCourseID int64) (*models.CourseOffering, error) {
	var o models.CourseOffering
	err := r.db.QueryRow(ctx, offeringSelect+` WHERE bc.batch_course_id = $1`, batchCourseID).Scan(
		&o.BatchCourseID, &o.CourseID, &o.CourseName, &o.CourseCode,
		&o.BatchID, &o.BatchYear, &o.StreamName, &o.SemesterID, &o.SemesterName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving course offering: %w", err)
	}
	return &o, nil
}

const offeringSelect = `
	SELECT bc.batch_course_id, c.course_id, c.course_name, c.course_code,
	       bc.batch_id, b.batch_year, st.stream_name, bc.semester_id, sm.semester_name
	FROM batch_courses bc
	JOIN courses c ON bc.course_id = c.course_id
	JOIN batches b ON bc.batch_id = b.batch_id
	JOIN semesters sm ON bc.semester_id = sm.semester_id
	LEFT JOIN streams st ON bc.stream_id = st.stream_id`

// ListOfferings returns the offerings of a (batch, semester), narrowed
// to a stream when one is given. An empty result is not an error; a
// batch may simply have no courses yet.
func (r *CourseRepository) ListOfferings(ctx context.Context, batchID, semesterID int64, streamID *int64) ([]models.CourseOffering, error) {
	query := offeringSelect + ` WHERE bc.batch_id = $1 AND bc.semester_id = $2`
	args := []any{batchID, semesterID}
	if streamID != nil {
		args = append(args, *streamID)
		query += " AND bc.stream_id = $3"
	}
	query += " ORDER BY c.course_name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing course offerings: %w", err)
	}
	defer rows.Close()

	var offerings []models.CourseOffering
	for rows.Next() {
		var o models.CourseOffering
		if err := rows.Scan(
			&o.BatchCourseID, &o.CourseID, &o.CourseName, &o.CourseCode,
			&o.BatchID, &o.BatchYear, &o.StreamName, &o.SemesterID, &o.SemesterName,
		); err != nil {
			return nil, err
		}
		offerings = append(offerings, o)
	}
	return offerings, rows.Err()
}

// UpdateOffering rewrites both the catalog row and the batch linkage of
// an offering in one transaction.
func (r *CourseRepository) UpdateOffering(ctx context.Context, batchCourseID int64, name, code string, batchID int64, streamID *int64, semesterID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var courseID int64
		err := tx.QueryRow(ctx,
			`SELECT course_id FROM batch_courses WHERE batch_course_id = $1`,
			batchCourseID).Scan(&courseID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("error resolving offering: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE courses SET course_name = $1, course_code = $2 WHERE course_id = $3`,
			name, code, courseID)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrDuplicateCourse
			}
			return fmt.Errorf("error updating course: %w", err)
		}

		_, err = tx.Exec(ctx, `
			UPDATE batch_courses SET batch_id = $1, stream_id = $2, semester_id = $3
			WHERE batch_course_id = $4`,
			batchID, streamID, semesterID, batchCourseID)
		if err != nil {
			return fmt.Errorf("error updating batch course: %w", err)
		}
		return nil
	})
}

// DeleteOffering unlinks a course from its batch and drops the
// materials attached to that offering in the same transaction. The
// catalog row survives so other batches keep their linkage.
func (r *CourseRepository) DeleteOffering(ctx context.Context, batchCourseID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		if _, err := tx.Exec(ctx,
			`DELETE FROM materials WHERE batch_course_id = $1`, batchCourseID); err != nil {
			return fmt.Errorf("error deleting course materials: %w", err)
		}

		tag, err := tx.Exec(ctx,
			`DELETE FROM batch_courses WHERE batch_course_id = $1`, batchCourseID)
		if err != nil {
			return fmt.Errorf("error deleting batch course: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}
