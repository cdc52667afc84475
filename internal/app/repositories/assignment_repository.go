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
	"github.com/dawitf/ece-backend/internal/pkg/auth"
)

// AssignmentRepository handles database operations for the
// staff_courses and staff_batches linkage tables.
type AssignmentRepository struct {
	db *pgxpool.Pool
}

// NewAssignmentRepository creates a new assignment repository
func NewAssignmentRepository(db *pgxpool.Pool) *AssignmentRepository {
	return &AssignmentRepository{db: db}
}

// Assign binds a staff user to the course behind an offering and
// refreshes the user's batch context, both in one transaction.
// Assigning the same (user, course) pair again overwrites the
// batch/stream/semester instead of erroring.
func (r *AssignmentRepository) Assign(ctx context.Context, userID int64, bc *models.BatchCourse) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		_, err := tx.Exec(ctx, `
			INSERT INTO staff_courses (user_id, course_id, batch_id, stream_id, semester_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, course_id)
			DO UPDATE SET batch_id = EXCLUDED.batch_id, stream_id = EXCLUDED.stream_id, semester_id = EXCLUDED.semester_id`,
			userID, bc.CourseID, bc.BatchID, bc.StreamID, bc.SemesterID)
		if err != nil {
			return fmt.Errorf("error assigning course: %w", err)
		}

		_, err = tx.Exec(ctx, `
			INSERT INTO staff_batches (user_id, batch_id, stream_id, semester_id)
			VALUES ($1, $2, $3, $4)
			ON CONFLICT (user_id, batch_id, semester_id)
			DO UPDATE SET stream_id = EXCLUDED.stream_id`,
			userID, bc.BatchID, bc.StreamID, bc.SemesterID)
		if err != nil {
			return fmt.Errorf("error recording staff batch: %w", err)
		}
		return nil
	})
}

// Remove unbinds a staff user from a course and cleans up whatever the
// removal orphans, in one transaction: the staff_batches row when the
// user teaches nothing else in that batch and semester, and the removed
// assignment's batch_courses link when no staff member anywhere teaches
// the course anymore. Returns the removed row so callers can describe
// the assignment that was dropped.
func (r *AssignmentRepository) Remove(ctx context.Context, userID, courseID int64) (*models.StaffCourse, error) {
	var removed models.StaffCourse
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			SELECT staff_course_id, user_id, course_id, batch_id, stream_id, semester_id
			FROM staff_courses
			WHERE user_id = $1 AND course_id = $2`,
			userID, courseID).Scan(
			&removed.ID, &removed.UserID, &removed.CourseID,
			&removed.BatchID, &removed.StreamID, &removed.SemesterID)
		if err != nil {
			if errors.Is(err, pgx.ErrNoRows) {
				return apperrors.ErrNotFound
			}
			return fmt.Errorf("error resolving assignment: %w", err)
		}

		if _, err := tx.Exec(ctx,
			`DELETE FROM staff_courses WHERE staff_course_id = $1`, removed.ID); err != nil {
			return fmt.Errorf("error deleting assignment: %w", err)
		}

		var remainingForUser int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM staff_courses
			WHERE user_id = $1 AND batch_id = $2 AND semester_id = $3`,
			userID, removed.BatchID, removed.SemesterID).Scan(&remainingForUser)
		if err != nil {
			return fmt.Errorf("error counting remaining assignments: %w", err)
		}
		if remainingForUser == 0 {
			if _, err := tx.Exec(ctx, `
				DELETE FROM staff_batches
				WHERE user_id = $1 AND batch_id = $2 AND semester_id = $3`,
				userID, removed.BatchID, removed.SemesterID); err != nil {
				return fmt.Errorf("error cleaning up staff batch: %w", err)
			}
		}

		var remainingForCourse int
		err = tx.QueryRow(ctx, `
			SELECT COUNT(*) FROM staff_courses
			WHERE course_id = $1`,
			removed.CourseID).Scan(&remainingForCourse)
		if err != nil {
			return fmt.Errorf("error counting remaining teachers: %w", err)
		}
		if remainingForCourse == 0 {
			if _, err := tx.Exec(ctx, `
				DELETE FROM batch_courses
				WHERE course_id = $1 AND batch_id = $2 AND semester_id = $3
				  AND stream_id IS NOT DISTINCT FROM $4`,
				removed.CourseID, removed.BatchID, removed.SemesterID, removed.StreamID); err != nil {
				return fmt.Errorf("error cleaning up batch course: %w", err)
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return &removed, nil
}

// ListStaffCourses returns a staff member's assignments joined with
// course and batch labels. The batch_courses join is a LEFT JOIN so an
// assignment still lists after its offering link was deleted.
func (r *AssignmentRepository) ListStaffCourses(ctx context.Context, userID int64) ([]models.StaffCourseView, error) {
	rows, err := r.db.Query(ctx, `
		SELECT sc.staff_course_id, sc.course_id, c.course_name, c.course_code,
		       bc.batch_course_id, sc.batch_id, b.batch_year, sc.semester_id,
		       sc.stream_id, COALESCE(st.stream_name, 'N/A')
		FROM staff_courses sc
		JOIN courses c ON sc.course_id = c.course_id
		JOIN batches b ON sc.batch_id = b.batch_id
		LEFT JOIN streams st ON sc.stream_id = st.stream_id
		LEFT JOIN batch_courses bc
		       ON bc.course_id = sc.course_id
		      AND bc.batch_id = sc.batch_id
		      AND bc.semester_id = sc.semester_id
		      AND bc.stream_id IS NOT DISTINCT FROM sc.stream_id
		WHERE sc.user_id = $1
		ORDER BY c.course_name`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing staff courses: %w", err)
	}
	defer rows.Close()

	var views []models.StaffCourseView
	for rows.Next() {
		var v models.StaffCourseView
		if err := rows.Scan(
			&v.StaffCourseID, &v.CourseID, &v.CourseName, &v.CourseCode,
			&v.BatchCourseID, &v.BatchID, &v.BatchYear, &v.SemesterID,
			&v.StreamID, &v.StreamName,
		); err != nil {
			return nil, err
		}
		views = append(views, v)
	}
	return views, rows.Err()
}

// ListStaffDetails returns staff operating in a batch context for a
// semester, each joined with the courses they teach there. Rows fan out
// per course; the service layer deduplicates.
func (r *AssignmentRepository) ListStaffDetails(ctx context.Context, batchID, semesterID int64, streamID *int64) ([]models.StaffDetail, error) {
	query := `
		SELECT u.user_id, u.name, sc.course_id, c.course_name, st.stream_name,
		       sb.batch_id, b.batch_year, sb.semester_id, sm.semester_name
		FROM staff_batches sb
		JOIN users u ON sb.user_id = u.user_id
		JOIN staff_courses sc ON sc.user_id = sb.user_id
		     AND sc.batch_id = sb.batch_id AND sc.semester_id = sb.semester_id
		JOIN courses c ON sc.course_id = c.course_id
		JOIN batches b ON sb.batch_id = b.batch_id
		JOIN semesters sm ON sb.semester_id = sm.semester_id
		LEFT JOIN streams st ON sc.stream_id = st.stream_id
		WHERE sb.batch_id = $1 AND sb.semester_id = $2
	`
	args := []any{batchID, semesterID}
	if streamID != nil {
		args = append(args, *streamID)
		query += " AND sc.stream_id = $3"
	}
	query += " ORDER BY u.name, c.course_name"

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing staff details: %w", err)
	}
	defer rows.Close()

	var details []models.StaffDetail
	for rows.Next() {
		var d models.StaffDetail
		if err := rows.Scan(
			&d.UserID, &d.Name, &d.CourseID, &d.CourseName, &d.StreamName,
			&d.BatchID, &d.BatchYear, &d.SemesterID, &d.SemesterName,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	return details, rows.Err()
}

// StaffClaims gathers the batch ids and course assignments embedded in
// a staff member's token at login.
func (r *AssignmentRepository) StaffClaims(ctx context.Context, userID int64) ([]int64, []auth.CourseClaim, error) {
	rows, err := r.db.Query(ctx,
		`SELECT DISTINCT batch_id FROM staff_batches WHERE user_id = $1 ORDER BY batch_id`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing staff batches: %w", err)
	}
	defer rows.Close()

	var batchIDs []int64
	for rows.Next() {
		var id int64
		if err := rows.Scan(&id); err != nil {
			return nil, nil, err
		}
		batchIDs = append(batchIDs, id)
	}
	if err := rows.Err(); err != nil {
		return nil, nil, err
	}

	courseRows, err := r.db.Query(ctx, `
		SELECT sc.course_id, c.course_name
		FROM staff_courses sc
		JOIN courses c ON sc.course_id = c.course_id
		WHERE sc.user_id = $1
		ORDER BY sc.course_id`, userID)
	if err != nil {
		return nil, nil, fmt.Errorf("error listing staff course claims: %w", err)
	}
	defer courseRows.Close()

	var courses []auth.CourseClaim
	for courseRows.Next() {
		var c auth.CourseClaim
		if err := courseRows.Scan(&c.CourseID, &c.CourseName); err != nil {
			return nil, nil, err
		}
		courses = append(courses, c)
	}
	return batchIDs, courses, courseRows.Err()
}
