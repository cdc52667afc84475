package repositories

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/db"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/dberrors"
)

// UserRepository handles database operations for non-student users
type UserRepository struct {
	db *pgxpool.Pool
}

// NewUserRepository creates a new user repository
func NewUserRepository(db *pgxpool.Pool) *UserRepository {
	return &UserRepository{db: db}
}

// GetByID retrieves a user by ID
func (r *UserRepository) GetByID(ctx context.Context, id int64) (*models.User, error) {
	query := `
		SELECT user_id, role_id, id_number, name, email, password, batch_id, stream_id, semester_id, created_at, updated_at
		FROM users
		WHERE user_id = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, id).Scan(
		&user.ID,
		&user.Role,
		&user.IDNumber,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.BatchID,
		&user.StreamID,
		&user.SemesterID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving user: %w", err)
	}

	return &user, nil
}

// GetByEmail retrieves a user by email
func (r *UserRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	query := `
		SELECT user_id, role_id, id_number, name, email, password, batch_id, stream_id, semester_id, created_at, updated_at
		FROM users
		WHERE email = $1
	`

	var user models.User
	err := r.db.QueryRow(ctx, query, email).Scan(
		&user.ID,
		&user.Role,
		&user.IDNumber,
		&user.Name,
		&user.Email,
		&user.Password,
		&user.BatchID,
		&user.StreamID,
		&user.SemesterID,
		&user.CreatedAt,
		&user.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving user by email: %w", err)
	}

	return &user, nil
}

// Exists checks whether any user carries the given id_number or email.
func (r *UserRepository) Exists(ctx context.Context, idNumber, email string) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE id_number = $1 OR email = $2)`,
		idNumber, email).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking user existence: %w", err)
	}
	return exists, nil
}

// ExistsExcept checks whether another user carries the given id_number
// or email, excluding the row being updated.
func (r *UserRepository) ExistsExcept(ctx context.Context, idNumber, email string, excludeID int64) (bool, error) {
	var exists bool
	err := r.db.QueryRow(ctx, `
		SELECT EXISTS(SELECT 1 FROM users WHERE (id_number = $1 OR email = $2) AND user_id != $3)`,
		idNumber, email, excludeID).Scan(&exists)
	if err != nil {
		return false, fmt.Errorf("error checking user existence: %w", err)
	}
	return exists, nil
}

// upsertStaffLinks refreshes the staff_batches row and, when a course
// is supplied, the staff_courses row for a staff user. Takes a Querier
// so it runs against the caller's transaction or the pool directly.
func upsertStaffLinks(ctx context.Context, q db.Querier, userID int64, batchID, streamID, semesterID, courseID *int64) error {
	if batchID == nil || semesterID == nil {
		return nil
	}

	_, err := q.Exec(ctx, `
		INSERT INTO staff_batches (user_id, batch_id, stream_id, semester_id)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (user_id, batch_id, semester_id)
		DO UPDATE SET stream_id = EXCLUDED.stream_id`,
		userID, *batchID, streamID, *semesterID)
	if err != nil {
		return fmt.Errorf("error upserting staff batch: %w", err)
	}

	if courseID != nil {
		_, err = q.Exec(ctx, `
			INSERT INTO staff_courses (user_id, course_id, batch_id, stream_id, semester_id)
			VALUES ($1, $2, $3, $4, $5)
			ON CONFLICT (user_id, course_id)
			DO UPDATE SET batch_id = EXCLUDED.batch_id, stream_id = EXCLUDED.stream_id, semester_id = EXCLUDED.semester_id`,
			userID, *courseID, *batchID, streamID, *semesterID)
		if err != nil {
			return fmt.Errorf("error upserting staff course: %w", err)
		}
	}

	return nil
}

// CreateWithStaffLinks inserts a user and, for staff, its batch/course
// linkage rows in one transaction. A duplicate id_number or email maps
// to ErrDuplicateUser with no partial effects.
func (r *UserRepository) CreateWithStaffLinks(ctx context.Context, user *models.User, courseID *int64) (int64, error) {
	var userID int64
	err := db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		err := tx.QueryRow(ctx, `
			INSERT INTO users (role_id, id_number, name, email, password, batch_id, stream_id, semester_id)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
			RETURNING user_id`,
			user.Role, user.IDNumber, user.Name, user.Email, user.Password,
			user.BatchID, user.StreamID, user.SemesterID).Scan(&userID)
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrDuplicateUser
			}
			return fmt.Errorf("error inserting user: %w", err)
		}

		if user.Role == models.RoleStaff {
			return upsertStaffLinks(ctx, tx, userID, user.BatchID, user.StreamID, user.SemesterID, courseID)
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	return userID, nil
}

// UpdateWithStaffLinks updates a user row and refreshes staff linkage
// in one transaction. passwordHash is applied only when non-empty.
func (r *UserRepository) UpdateWithStaffLinks(ctx context.Context, user *models.User, passwordHash string, courseID *int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		var tag pgconn.CommandTag
		var err error
		if passwordHash != "" {
			tag, err = tx.Exec(ctx, `
				UPDATE users
				SET role_id = $1, id_number = $2, name = $3, email = $4, password = $5, updated_at = NOW()
				WHERE user_id = $6`,
				user.Role, user.IDNumber, user.Name, user.Email, passwordHash, user.ID)
		} else {
			tag, err = tx.Exec(ctx, `
				UPDATE users
				SET role_id = $1, id_number = $2, name = $3, email = $4, updated_at = NOW()
				WHERE user_id = $5`,
				user.Role, user.IDNumber, user.Name, user.Email, user.ID)
		}
		if err != nil {
			if dberrors.IsUniqueViolation(err) {
				return apperrors.ErrDuplicateUser
			}
			return fmt.Errorf("error updating user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}

		if user.Role == models.RoleStaff {
			return upsertStaffLinks(ctx, tx, user.ID, user.BatchID, user.StreamID, user.SemesterID, courseID)
		}
		return nil
	})
}

// DeleteCascade removes a user and every row that references it, in
// dependency order, inside one transaction: staff_batches,
// staff_courses, contacts, news, then the user row itself.
func (r *UserRepository) DeleteCascade(ctx context.Context, userID int64) error {
	return db.WithTransaction(ctx, r.db, func(ctx context.Context, tx pgx.Tx) error {
		for _, stmt := range []string{
			`DELETE FROM staff_batches WHERE user_id = $1`,
			`DELETE FROM staff_courses WHERE user_id = $1`,
			`DELETE FROM contacts WHERE user_id = $1`,
			`DELETE FROM news WHERE posted_by = $1`,
		} {
			if _, err := tx.Exec(ctx, stmt, userID); err != nil {
				return fmt.Errorf("error cleaning up user references: %w", err)
			}
		}

		tag, err := tx.Exec(ctx, `DELETE FROM users WHERE user_id = $1`, userID)
		if err != nil {
			return fmt.Errorf("error deleting user: %w", err)
		}
		if tag.RowsAffected() == 0 {
			return apperrors.ErrNotFound
		}
		return nil
	})
}

// UpdatePassword replaces the stored password hash.
func (r *UserRepository) UpdatePassword(ctx context.Context, userID int64, passwordHash string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE users SET password = $1, updated_at = NOW() WHERE user_id = $2`,
		passwordHash, userID)
	if err != nil {
		return fmt.Errorf("error updating password: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// UserFilter narrows a user listing. Nil fields are not applied.
type UserFilter struct {
	Role       models.Role
	SemesterID *int64
	BatchID    *int64
	StreamID   *int64
}

// ListDetails returns users of a role joined with their batch, stream,
// semester and assigned course labels. The staff joins fan out per
// assignment; the service layer deduplicates.
func (r *UserRepository) ListDetails(ctx context.Context, filter UserFilter) ([]models.UserDetail, error) {
	query := `
		SELECT
			u.user_id, u.role_id, r.role_name, u.id_number, u.name, u.email,
			u.batch_id, b.batch_year,
			u.semester_id, sm.semester_name,
			u.stream_id, st.stream_name,
			c.course_name,
			u.created_at, u.updated_at
		FROM users u
		LEFT JOIN roles r ON u.role_id = r.role_id
		LEFT JOIN batches b ON u.batch_id = b.batch_id
		LEFT JOIN semesters sm ON u.semester_id = sm.semester_id
		LEFT JOIN streams st ON u.stream_id = st.stream_id
		LEFT JOIN staff_courses sc ON u.user_id = sc.user_id
		LEFT JOIN courses c ON sc.course_id = c.course_id
		WHERE u.role_id = $1
	`
	args := []any{filter.Role}

	if filter.Role == models.RoleStaff || filter.Role == models.RoleRepresentative {
		if filter.Role == models.RoleStaff && filter.SemesterID != nil {
			args = append(args, *filter.SemesterID)
			query += fmt.Sprintf(" AND u.semester_id = $%d", len(args))
		}
		if filter.BatchID != nil {
			args = append(args, *filter.BatchID)
			query += fmt.Sprintf(" AND u.batch_id = $%d", len(args))
		}
		if filter.StreamID != nil {
			args = append(args, *filter.StreamID)
			query += fmt.Sprintf(" AND u.stream_id = $%d", len(args))
		}
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("error listing users: %w", err)
	}
	defer rows.Close()

	var details []models.UserDetail
	for rows.Next() {
		var d models.UserDetail
		if err := rows.Scan(
			&d.UserID, &d.Role, &d.RoleName, &d.IDNumber, &d.Name, &d.Email,
			&d.BatchID, &d.BatchYear,
			&d.SemesterID, &d.SemesterName,
			&d.StreamID, &d.StreamName,
			&d.CourseName,
			&d.CreatedAt, &d.UpdatedAt,
		); err != nil {
			return nil, err
		}
		details = append(details, d)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	return details, nil
}
