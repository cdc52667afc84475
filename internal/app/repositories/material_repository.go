package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
)

// MaterialRepository handles database operations for course material
// records. File bytes live in object storage; rows hold the reference.
type MaterialRepository struct {
	db *pgxpool.Pool
}

// NewMaterialRepository creates a new material repository
func NewMaterialRepository(db *pgxpool.Pool) *MaterialRepository {
	return &MaterialRepository{db: db}
}

// Create inserts a material record.
func (r *MaterialRepository) Create(ctx context.Context, m *models.Material) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO materials (title, file_url, batch_course_id, uploaded_by)
		VALUES ($1, $2, $3, $4)
		RETURNING material_id`,
		m.Title, m.FileURL, m.BatchCourseID, m.UploadedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting material: %w", err)
	}
	return id, nil
}

// ListByOffering returns the materials of a course offering joined with
// uploader names, newest first.
func (r *MaterialRepository) ListByOffering(ctx context.Context, batchCourseID int64) ([]models.MaterialItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT m.material_id, m.title, m.file_url, m.batch_course_id, u.name,
		       m.created_at, m.updated_at
		FROM materials m
		JOIN users u ON m.uploaded_by = u.user_id
		WHERE m.batch_course_id = $1
		ORDER BY m.created_at DESC`, batchCourseID)
	if err != nil {
		return nil, fmt.Errorf("error listing materials: %w", err)
	}
	defer rows.Close()

	var items []models.MaterialItem
	for rows.Next() {
		var m models.MaterialItem
		if err := rows.Scan(&m.ID, &m.Title, &m.FileURL, &m.BatchCourseID, &m.UploadedBy,
			&m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, err
		}
		items = append(items, m)
	}
	return items, rows.Err()
}

// GetUploader returns who uploaded a material.
func (r *MaterialRepository) GetUploader(ctx context.Context, materialID int64) (int64, error) {
	var uploader int64
	err := r.db.QueryRow(ctx,
		`SELECT uploaded_by FROM materials WHERE material_id = $1`, materialID).Scan(&uploader)
	if err != nil {
		return 0, apperrors.ErrNotFound
	}
	return uploader, nil
}

// Delete removes a material record.
func (r *MaterialRepository) Delete(ctx context.Context, materialID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM materials WHERE material_id = $1`, materialID)
	if err != nil {
		return fmt.Errorf("error deleting material: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
