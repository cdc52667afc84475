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

// ContactRepository handles database operations for office contact
// information. Each user owns at most one contact row.
type ContactRepository struct {
	db *pgxpool.Pool
}

// NewContactRepository creates a new contact repository
func NewContactRepository(db *pgxpool.Pool) *ContactRepository {
	return &ContactRepository{db: db}
}

// Upsert writes a user's contact row, replacing any existing one.
func (r *ContactRepository) Upsert(ctx context.Context, contact *models.Contact) error {
	_, err := r.db.Exec(ctx, `
		INSERT INTO contacts (user_id, office_room, email, phone_number, availability)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (user_id)
		DO UPDATE SET office_room = EXCLUDED.office_room, email = EXCLUDED.email,
		              phone_number = EXCLUDED.phone_number, availability = EXCLUDED.availability,
		              updated_at = NOW()`,
		contact.UserID, contact.OfficeRoom, contact.Email, contact.PhoneNumber, contact.Availability)
	if err != nil {
		return fmt.Errorf("error upserting contact: %w", err)
	}
	return nil
}

// GetByUserID returns a user's contact row joined with the user's name.
func (r *ContactRepository) GetByUserID(ctx context.Context, userID int64) (*models.ContactInfo, error) {
	var c models.ContactInfo
	err := r.db.QueryRow(ctx, `
		SELECT ct.user_id, u.name, ct.office_room, ct.phone_number, ct.availability
		FROM contacts ct
		JOIN users u ON ct.user_id = u.user_id
		WHERE ct.user_id = $1`,
		userID).Scan(&c.UserID, &c.Name, &c.OfficeRoom, &c.PhoneNumber, &c.Availability)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, apperrors.ErrNotFound
		}
		return nil, fmt.Errorf("error retrieving contact: %w", err)
	}
	return &c, nil
}

// ListAll returns every contact row joined with owner names.
func (r *ContactRepository) ListAll(ctx context.Context) ([]models.ContactInfo, error) {
	rows, err := r.db.Query(ctx, `
		SELECT ct.user_id, u.name, ct.office_room, ct.phone_number, ct.availability
		FROM contacts ct
		JOIN users u ON ct.user_id = u.user_id
		ORDER BY u.name`)
	if err != nil {
		return nil, fmt.Errorf("error listing contacts: %w", err)
	}
	defer rows.Close()

	var contacts []models.ContactInfo
	for rows.Next() {
		var c models.ContactInfo
		if err := rows.Scan(&c.UserID, &c.Name, &c.OfficeRoom, &c.PhoneNumber, &c.Availability); err != nil {
			return nil, err
		}
		contacts = append(contacts, c)
	}
	return contacts, rows.Err()
}

// Delete removes a user's contact row.
func (r *ContactRepository) Delete(ctx context.Context, userID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM contacts WHERE user_id = $1`, userID)
	if err != nil {
		return fmt.Errorf("error deleting contact: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
