package services

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	identity "github.com/dawitf/ece-backend/internal/app/auth"
	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/app/repositories"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/auth"
	"github.com/dawitf/ece-backend/internal/pkg/email"
)

type fakeAuthUsers struct {
	users map[int64]*models.User
}

func (f *fakeAuthUsers) GetByID(_ context.Context, id int64) (*models.User, error) {
	u, ok := f.users[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return u, nil
}

func (f *fakeAuthUsers) GetByEmail(_ context.Context, emailAddr string) (*models.User, error) {
	for _, u := range f.users {
		if u.Email == emailAddr {
			return u, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeAuthUsers) UpdatePassword(_ context.Context, userID int64, hash string) error {
	u, ok := f.users[userID]
	if !ok {
		return apperrors.ErrNotFound
	}
	u.Password = hash
	return nil
}

type fakeAuthStudents struct {
	students []*models.StudentDetail
}

func (f *fakeAuthStudents) GetByCredentials(_ context.Context, idNumber, firstName string) (*models.StudentDetail, error) {
	for _, s := range f.students {
		if s.IDNumber == idNumber && s.FirstName == firstName {
			return s, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

type fakeStaffClaims struct {
	batches map[int64][]int64
	courses map[int64][]auth.CourseClaim
}

func (f *fakeStaffClaims) StaffClaims(_ context.Context, userID int64) ([]int64, []auth.CourseClaim, error) {
	return f.batches[userID], f.courses[userID], nil
}

type fakeResetStore struct {
	tokens map[string]*repositories.PasswordResetToken
	nextID int64
}

func (f *fakeResetStore) Create(_ context.Context, userID int64, token string, expiresAt time.Time) error {
	for _, t := range f.tokens {
		if t.UserID == userID {
			t.Used = true
		}
	}
	f.nextID++
	f.tokens[token] = &repositories.PasswordResetToken{
		ID: f.nextID, UserID: userID, Token: token, ExpiresAt: expiresAt,
	}
	return nil
}

func (f *fakeResetStore) Get(_ context.Context, token string) (*repositories.PasswordResetToken, error) {
	t, ok := f.tokens[token]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return t, nil
}

func (f *fakeResetStore) MarkUsed(_ context.Context, tokenID int64) error {
	for _, t := range f.tokens {
		if t.ID == tokenID {
			t.Used = true
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeMail struct {
	welcome     []email.WelcomeMail
	assignments []email.AssignmentMail
	resetLinks  []string
	fail        bool
}

func (f *fakeMail) SendWelcomeEmail(m email.WelcomeMail) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.welcome = append(f.welcome, m)
	return nil
}

func (f *fakeMail) SendAssignmentEmail(m email.AssignmentMail) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.assignments = append(f.assignments, m)
	return nil
}

func (f *fakeMail) SendPasswordResetEmail(_, resetLink string) error {
	if f.fail {
		return errors.New("smtp unavailable")
	}
	f.resetLinks = append(f.resetLinks, resetLink)
	return nil
}

func mustHash(t *testing.T, password string) string {
	t.Helper()
	hash, err := auth.HashPassword(password)
	require.NoError(t, err)
	return hash
}

func newAuthFixture(t *testing.T) (*AuthService, *fakeAuthUsers, *fakeAuthStudents, *fakeStaffClaims, *fakeResetStore, *fakeMail) {
	t.Helper()
	stream := int64(1)
	users := &fakeAuthUsers{users: map[int64]*models.User{
		1: {ID: 1, Role: models.RoleAdmin, Email: "admin@example.com", Password: mustHash(t, "admin-pass")},
		2: {ID: 2, Role: models.RoleStaff, Email: "staff@example.com", Password: mustHash(t, "staff-pass"), StreamID: &stream},
	}}
	students := &fakeAuthStudents{students: []*models.StudentDetail{
		{Student: models.Student{ID: 10, FirstName: "Abel", LastName: "Tesfaye", IDNumber: "ETS-0001", BatchID: 3}, BatchYear: "4th Year"},
	}}
	claims := &fakeStaffClaims{
		batches: map[int64][]int64{2: {2, 4}},
		courses: map[int64][]auth.CourseClaim{2: {{CourseID: 7, CourseName: "Signals and Systems"}}},
	}
	resets := &fakeResetStore{tokens: map[string]*repositories.PasswordResetToken{}}
	mail := &fakeMail{}

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret"})
	svc := NewAuthService(users, students, claims, resets, jwtService, mail, "http://localhost:8080")
	return svc, users, students, claims, resets, mail
}

func TestLoginStaffEmbedsScope(t *testing.T) {
	svc, _, _, _, _, _ := newAuthFixture(t)

	token, err := svc.Login(context.Background(), dto.LoginRequest{
		Email: "staff@example.com", Password: "staff-pass",
	})
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret"})
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)

	assert.Equal(t, int64(2), claims.UserID)
	assert.Equal(t, models.RoleStaff, claims.Role)
	assert.Equal(t, []int64{2, 4}, claims.BatchIDs)
	require.Len(t, claims.Courses, 1)
	assert.Equal(t, int64(7), claims.Courses[0].CourseID)
}

func TestLoginRejectsBadCredentials(t *testing.T) {
	svc, _, _, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.Login(ctx, dto.LoginRequest{Email: "nobody@example.com", Password: "x"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "admin@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)

	_, err = svc.Login(ctx, dto.LoginRequest{Email: "", Password: ""})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestLoginStudent(t *testing.T) {
	svc, _, _, _, _, _ := newAuthFixture(t)
	ctx := context.Background()

	token, err := svc.LoginStudent(ctx, dto.StudentLoginRequest{IDNumber: "ETS-0001", FirstName: "Abel"})
	require.NoError(t, err)

	jwtService := auth.NewJWTService(auth.JWTConfig{SecretKey: "test-secret"})
	claims, err := jwtService.ValidateToken(token)
	require.NoError(t, err)
	assert.Equal(t, models.RoleStudent, claims.Role)
	assert.Equal(t, []int64{3}, claims.BatchIDs)

	_, err = svc.LoginStudent(ctx, dto.StudentLoginRequest{IDNumber: "ETS-0001", FirstName: "Someone"})
	assert.ErrorIs(t, err, apperrors.ErrInvalidCredentials)
}

func TestChangePassword(t *testing.T) {
	svc, users, _, _, _, _ := newAuthFixture(t)
	ctx := context.Background()
	actor := identity.ActingIdentity{UserID: 1, Role: models.RoleAdmin}

	err := svc.ChangePassword(ctx, actor, dto.ChangePasswordRequest{OldPassword: "wrong", NewPassword: "new-pass"})
	assert.ErrorIs(t, err, apperrors.ErrWrongPassword)

	err = svc.ChangePassword(ctx, actor, dto.ChangePasswordRequest{OldPassword: "admin-pass", NewPassword: "admin-pass"})
	assert.ErrorIs(t, err, apperrors.ErrSamePassword)

	err = svc.ChangePassword(ctx, actor, dto.ChangePasswordRequest{OldPassword: "admin-pass", NewPassword: "new-pass"})
	require.NoError(t, err)
	assert.True(t, auth.CheckPassword(users.users[1].Password, "new-pass"))
}

func TestPasswordResetFlow(t *testing.T) {
	svc, users, _, _, resets, mail := newAuthFixture(t)
	ctx := context.Background()

	require.NoError(t, svc.RequestPasswordReset(ctx, "admin@example.com"))
	require.Len(t, mail.resetLinks, 1)
	require.Len(t, resets.tokens, 1)

	var token string
	for tok := range resets.tokens {
		token = tok
	}
	assert.Contains(t, mail.resetLinks[0], token)

	require.NoError(t, svc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: "fresh-pass"}))
	assert.True(t, auth.CheckPassword(users.users[1].Password, "fresh-pass"))

	// A consumed token cannot be replayed.
	err := svc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: token, NewPassword: "again"})
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestPasswordResetExpiry(t *testing.T) {
	svc, _, _, _, resets, _ := newAuthFixture(t)
	ctx := context.Background()

	resets.tokens["stale"] = &repositories.PasswordResetToken{
		ID: 99, UserID: 1, Token: "stale", ExpiresAt: time.Now().Add(-time.Minute),
	}
	err := svc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: "stale", NewPassword: "x-pass"})
	assert.ErrorIs(t, err, apperrors.ErrTokenExpired)

	err = svc.ResetPassword(ctx, dto.ResetPasswordRequest{Token: "unknown", NewPassword: "x-pass"})
	assert.ErrorIs(t, err, apperrors.ErrTokenInvalid)
}

func TestPasswordResetMailFailure(t *testing.T) {
	svc, _, _, _, _, mail := newAuthFixture(t)
	mail.fail = true

	err := svc.RequestPasswordReset(context.Background(), "admin@example.com")
	assert.ErrorIs(t, err, apperrors.ErrDependencyFailed)
}
