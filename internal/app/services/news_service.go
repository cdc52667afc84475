package services

import (
	"context"

	identity "github.com/dawitf/ece-backend/internal/app/auth"
	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/logger"
)

// newsStore is the slice of news persistence the service needs.
type newsStore interface {
	Create(ctx context.Context, news *models.News) (int64, error)
	ListAll(ctx context.Context) ([]models.NewsItem, error)
	ListByUser(ctx context.Context, userID int64) ([]models.NewsItem, error)
	GetOwner(ctx context.Context, newsID int64) (int64, error)
	Update(ctx context.Context, newsID int64, title, content string) error
	Delete(ctx context.Context, newsID int64) error
}

// NewsService manages department news postings.
type NewsService struct {
	news newsStore
}

// NewNewsService creates a new news service
func NewNewsService(news newsStore) *NewsService {
	return &NewsService{news: news}
}

// PostNews publishes a posting attributed to the acting user.
func (s *NewsService) PostNews(ctx context.Context, actor identity.ActingIdentity, req dto.NewsRequest) (int64, error) {
	if req.Title == "" || req.Content == "" {
		return 0, apperrors.NewValidationError("title and content are required")
	}

	newsID, err := s.news.Create(ctx, &models.News{
		Title:    req.Title,
		Content:  req.Content,
		PostedBy: actor.UserID,
	})
	if err != nil {
		return 0, err
	}

	logger.Info().Int64("news_id", newsID).Int64("user_id", actor.UserID).Msg("News posted")
	return newsID, nil
}

// GetNews lists all postings, newest first.
func (s *NewsService) GetNews(ctx context.Context) ([]models.NewsItem, error) {
	return s.news.ListAll(ctx)
}

// GetNewsByUser lists the acting user's own postings, newest first.
func (s *NewsService) GetNewsByUser(ctx context.Context, actor identity.ActingIdentity) ([]models.NewsItem, error) {
	return s.news.ListByUser(ctx, actor.UserID)
}

// canEdit reports whether the actor may modify a posting: its author or
// an admin.
func (s *NewsService) canEdit(ctx context.Context, actor identity.ActingIdentity, newsID int64) error {
	owner, err := s.news.GetOwner(ctx, newsID)
	if err != nil {
		return apperrors.NewNotFoundError("news item not found")
	}
	if owner != actor.UserID && actor.Role != models.RoleAdmin {
		return apperrors.ErrForbidden
	}
	return nil
}

// UpdateNews rewrites a posting. Only the author or an admin may do so.
func (s *NewsService) UpdateNews(ctx context.Context, actor identity.ActingIdentity, newsID int64, req dto.NewsRequest) error {
	if req.Title == "" || req.Content == "" {
		return apperrors.NewValidationError("title and content are required")
	}
	if err := s.canEdit(ctx, actor, newsID); err != nil {
		return err
	}
	return s.news.Update(ctx, newsID, req.Title, req.Content)
}

// DeleteNews removes a posting. Only the author or an admin may do so.
func (s *NewsService) DeleteNews(ctx context.Context, actor identity.ActingIdentity, newsID int64) error {
	if err := s.canEdit(ctx, actor, newsID); err != nil {
		return err
	}
	return s.news.Delete(ctx, newsID)
}
