package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identity "github.com/dawitf/ece-backend/internal/app/auth"
	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
)

type fakeNewsStore struct {
	nextID int64
	items  map[int64]*models.News
}

func newFakeNewsStore() *fakeNewsStore {
	return &fakeNewsStore{items: map[int64]*models.News{}}
}

func (f *fakeNewsStore) Create(_ context.Context, n *models.News) (int64, error) {
	f.nextID++
	n.ID = f.nextID
	f.items[n.ID] = n
	return n.ID, nil
}

func (f *fakeNewsStore) ListAll(_ context.Context) ([]models.NewsItem, error) {
	var out []models.NewsItem
	for _, n := range f.items {
		out = append(out, models.NewsItem{ID: n.ID, Title: n.Title, Content: n.Content})
	}
	return out, nil
}

func (f *fakeNewsStore) ListByUser(_ context.Context, userID int64) ([]models.NewsItem, error) {
	var out []models.NewsItem
	for _, n := range f.items {
		if n.PostedBy == userID {
			out = append(out, models.NewsItem{ID: n.ID, Title: n.Title, Content: n.Content})
		}
	}
	return out, nil
}

func (f *fakeNewsStore) GetOwner(_ context.Context, newsID int64) (int64, error) {
	n, ok := f.items[newsID]
	if !ok {
		return 0, apperrors.ErrNotFound
	}
	return n.PostedBy, nil
}

func (f *fakeNewsStore) Update(_ context.Context, newsID int64, title, content string) error {
	n, ok := f.items[newsID]
	if !ok {
		return apperrors.ErrNotFound
	}
	n.Title, n.Content = title, content
	return nil
}

func (f *fakeNewsStore) Delete(_ context.Context, newsID int64) error {
	if _, ok := f.items[newsID]; !ok {
		return apperrors.ErrNotFound
	}
	delete(f.items, newsID)
	return nil
}

func TestNewsOwnership(t *testing.T) {
	store := newFakeNewsStore()
	svc := NewNewsService(store)
	ctx := context.Background()

	staff := identity.ActingIdentity{UserID: 2, Role: models.RoleStaff}
	otherStaff := identity.ActingIdentity{UserID: 3, Role: models.RoleStaff}

	newsID, err := svc.PostNews(ctx, staff, dto.NewsRequest{Title: "Exam schedule", Content: "Finals start next week."})
	require.NoError(t, err)

	// Only the author or an admin may modify.
	err = svc.UpdateNews(ctx, otherStaff, newsID, dto.NewsRequest{Title: "Edited", Content: "x"})
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	err = svc.UpdateNews(ctx, staff, newsID, dto.NewsRequest{Title: "Edited", Content: "x"})
	require.NoError(t, err)
	assert.Equal(t, "Edited", store.items[newsID].Title)

	err = svc.DeleteNews(ctx, otherStaff, newsID)
	assert.ErrorIs(t, err, apperrors.ErrForbidden)

	require.NoError(t, svc.DeleteNews(ctx, adminActor(), newsID))
	assert.ErrorIs(t, svc.DeleteNews(ctx, staff, newsID), apperrors.ErrNotFound)
}

func TestGetNewsByUserReturnsOwnPostingsOnly(t *testing.T) {
	store := newFakeNewsStore()
	svc := NewNewsService(store)
	ctx := context.Background()

	author := identity.ActingIdentity{UserID: 2, Role: models.RoleDepartmentAdmin}
	other := identity.ActingIdentity{UserID: 3, Role: models.RoleDepartmentAdmin}

	_, err := svc.PostNews(ctx, author, dto.NewsRequest{Title: "Lab closed", Content: "Maintenance on Friday."})
	require.NoError(t, err)
	_, err = svc.PostNews(ctx, other, dto.NewsRequest{Title: "Seminar", Content: "Guest lecture."})
	require.NoError(t, err)

	mine, err := svc.GetNewsByUser(ctx, author)
	require.NoError(t, err)
	require.Len(t, mine, 1)
	assert.Equal(t, "Lab closed", mine[0].Title)
}

func TestPostNewsValidation(t *testing.T) {
	svc := NewNewsService(newFakeNewsStore())

	_, err := svc.PostNews(context.Background(), adminActor(), dto.NewsRequest{Title: "No content"})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}
