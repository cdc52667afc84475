package repositories

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
)

// NewsRepository handles database operations for news postings
type NewsRepository struct {
	db *pgxpool.Pool
}

// NewNewsRepository creates a new news repository
func NewNewsRepository(db *pgxpool.Pool) *NewsRepository {
	return &NewsRepository{db: db}
}

// Create inserts a news posting.
func (r *NewsRepository) Create(ctx context.Context, news *models.News) (int64, error) {
	var id int64
	err := r.db.QueryRow(ctx, `
		INSERT INTO news (title, content, posted_by)
		VALUES ($1, $2, $3)
		RETURNING news_id`,
		news.Title, news.Content, news.PostedBy).Scan(&id)
	if err != nil {
		return 0, fmt.Errorf("error inserting news: %w", err)
	}
	return id, nil
}

// ListAll returns all postings joined with the poster's name and role,
// newest first.
func (r *NewsRepository) ListAll(ctx context.Context) ([]models.NewsItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT n.news_id, n.title, n.content, u.name, rl.role_name, n.created_at
		FROM news n
		JOIN users u ON n.posted_by = u.user_id
		JOIN roles rl ON u.role_id = rl.role_id
		ORDER BY n.created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("error listing news: %w", err)
	}
	defer rows.Close()

	var items []models.NewsItem
	for rows.Next() {
		var n models.NewsItem
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.PostedBy, &n.Role, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// ListByUser returns the postings of a single user, newest first.
func (r *NewsRepository) ListByUser(ctx context.Context, userID int64) ([]models.NewsItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT n.news_id, n.title, n.content, u.name, rl.role_name, n.created_at
		FROM news n
		JOIN users u ON n.posted_by = u.user_id
		JOIN roles rl ON u.role_id = rl.role_id
		WHERE n.posted_by = $1
		ORDER BY n.created_at DESC`, userID)
	if err != nil {
		return nil, fmt.Errorf("error listing news for user %d: %w", userID, err)
	}
	defer rows.Close()

	var items []models.NewsItem
	for rows.Next() {
		var n models.NewsItem
		if err := rows.Scan(&n.ID, &n.Title, &n.Content, &n.PostedBy, &n.Role, &n.CreatedAt); err != nil {
			return nil, err
		}
		items = append(items, n)
	}
	return items, rows.Err()
}

// GetOwner returns the poster of a news item.
func (r *NewsRepository) GetOwner(ctx context.Context, newsID int64) (int64, error) {
	var owner int64
	err := r.db.QueryRow(ctx,
		`SELECT posted_by FROM news WHERE news_id = $1`, newsID).Scan(&owner)
	if err != nil {
		return 0, apperrors.ErrNotFound
	}
	return owner, nil
}

// Update rewrites the title and content of a posting.
func (r *NewsRepository) Update(ctx context.Context, newsID int64, title, content string) error {
	tag, err := r.db.Exec(ctx, `
		UPDATE news SET title = $1, content = $2, updated_at = NOW()
		WHERE news_id = $3`,
		title, content, newsID)
	if err != nil {
		return fmt.Errorf("error updating news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}

// Delete removes a posting.
func (r *NewsRepository) Delete(ctx context.Context, newsID int64) error {
	tag, err := r.db.Exec(ctx, `DELETE FROM news WHERE news_id = $1`, newsID)
	if err != nil {
		return fmt.Errorf("error deleting news: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return apperrors.ErrNotFound
	}
	return nil
}
