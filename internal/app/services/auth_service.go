package services

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	identity "github.com/dawitf/ece-backend/internal/app/auth"
	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/app/repositories"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/auth"
	"github.com/dawitf/ece-backend/internal/pkg/email"
	"github.com/dawitf/ece-backend/internal/pkg/logger"
)

// ResetTokenTTL is the lifetime of a password reset token.
const ResetTokenTTL = 15 * time.Minute

// authUserStore is the slice of user persistence the auth service needs.
type authUserStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	UpdatePassword(ctx context.Context, userID int64, passwordHash string) error
}

// authStudentStore resolves the passwordless student credential pair.
type authStudentStore interface {
	GetByCredentials(ctx context.Context, idNumber, firstName string) (*models.StudentDetail, error)
}

// staffClaimSource gathers the batch and course scope embedded in staff
// tokens.
type staffClaimSource interface {
	StaffClaims(ctx context.Context, userID int64) ([]int64, []auth.CourseClaim, error)
}

// resetTokenStore persists single-use password reset tokens.
type resetTokenStore interface {
	Create(ctx context.Context, userID int64, token string, expiresAt time.Time) error
	Get(ctx context.Context, token string) (*repositories.PasswordResetToken, error)
	MarkUsed(ctx context.Context, tokenID int64) error
}

// AuthService issues tokens and manages credentials.
type AuthService struct {
	users       authUserStore
	students    authStudentStore
	staffClaims staffClaimSource
	resetTokens resetTokenStore
	jwtService  *auth.JWTService
	mailService email.MailService
	baseURL     string
}

// NewAuthService creates a new authentication service
func NewAuthService(
	users authUserStore,
	students authStudentStore,
	staffClaims staffClaimSource,
	resetTokens resetTokenStore,
	jwtService *auth.JWTService,
	mailService email.MailService,
	baseURL string,
) *AuthService {
	return &AuthService{
		users:       users,
		students:    students,
		staffClaims: staffClaims,
		resetTokens: resetTokens,
		jwtService:  jwtService,
		mailService: mailService,
		baseURL:     baseURL,
	}
}

// Login verifies an email/password pair and issues a token carrying the
// user's role and scope. Staff tokens embed every batch membership and
// assigned course; other roles carry at most their home batch. Unknown
// email and wrong password are indistinguishable to the caller.
func (s *AuthService) Login(ctx context.Context, req dto.LoginRequest) (string, error) {
	if req.Email == "" || req.Password == "" {
		return "", apperrors.NewValidationError("email and password are required")
	}

	user, err := s.users.GetByEmail(ctx, req.Email)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}
	if !auth.CheckPassword(user.Password, req.Password) {
		return "", apperrors.ErrInvalidCredentials
	}

	claims := &auth.Claims{
		UserID:     user.ID,
		Role:       user.Role,
		StreamID:   user.StreamID,
		SemesterID: user.SemesterID,
	}

	if user.Role == models.RoleStaff {
		batchIDs, courses, err := s.staffClaims.StaffClaims(ctx, user.ID)
		if err != nil {
			return "", fmt.Errorf("error loading staff scope: %w", err)
		}
		claims.BatchIDs = batchIDs
		claims.Courses = courses
	} else if user.BatchID != nil {
		claims.BatchIDs = []int64{*user.BatchID}
	}

	token, err := s.jwtService.GenerateToken(claims)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	logger.Info().Int64("user_id", user.ID).Str("role", user.Role.String()).Msg("User logged in")
	return token, nil
}

// LoginStudent verifies the passwordless student credential pair (ID
// number plus first name) and issues a student-scoped token.
func (s *AuthService) LoginStudent(ctx context.Context, req dto.StudentLoginRequest) (string, error) {
	if req.IDNumber == "" || req.FirstName == "" {
		return "", apperrors.NewValidationError("idNumber and firstName are required")
	}

	student, err := s.students.GetByCredentials(ctx, req.IDNumber, req.FirstName)
	if err != nil {
		return "", apperrors.ErrInvalidCredentials
	}

	claims := &auth.Claims{
		UserID:   student.ID,
		Role:     models.RoleStudent,
		BatchIDs: []int64{student.BatchID},
		StreamID: student.StreamID,
	}

	token, err := s.jwtService.GenerateToken(claims)
	if err != nil {
		return "", fmt.Errorf("error signing token: %w", err)
	}

	logger.Info().Int64("student_id", student.ID).Msg("Student logged in")
	return token, nil
}

// ChangePassword replaces the acting user's password after verifying
// the current one. The new password must differ from the old.
func (s *AuthService) ChangePassword(ctx context.Context, actor identity.ActingIdentity, req dto.ChangePasswordRequest) error {
	if req.OldPassword == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("oldPassword and newPassword are required")
	}

	user, err := s.users.GetByID(ctx, actor.UserID)
	if err != nil {
		return err
	}
	if !auth.CheckPassword(user.Password, req.OldPassword) {
		return apperrors.ErrWrongPassword
	}
	if req.OldPassword == req.NewPassword {
		return apperrors.ErrSamePassword
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	return s.users.UpdatePassword(ctx, user.ID, hash)
}

// RequestPasswordReset issues a single-use reset token and mails the
// reset link. Outstanding tokens for the user are invalidated first.
func (s *AuthService) RequestPasswordReset(ctx context.Context, emailAddr string) error {
	if emailAddr == "" {
		return apperrors.NewValidationError("email is required")
	}

	user, err := s.users.GetByEmail(ctx, emailAddr)
	if err != nil {
		return apperrors.NewNotFoundError("no account with that email")
	}

	token := uuid.NewString()
	if err := s.resetTokens.Create(ctx, user.ID, token, time.Now().Add(ResetTokenTTL)); err != nil {
		return err
	}

	resetLink := fmt.Sprintf("%s/reset-password?token=%s", s.baseURL, token)
	if err := s.mailService.SendPasswordResetEmail(user.Email, resetLink); err != nil {
		logger.Error().Err(err).Int64("user_id", user.ID).Msg("Failed to send password reset email")
		return apperrors.NewDependencyError("could not send reset email")
	}
	return nil
}

// ResetPassword consumes a reset token and sets the new password.
// Unknown and already-used tokens are rejected as invalid; a known
// token past its expiry is reported as expired.
func (s *AuthService) ResetPassword(ctx context.Context, req dto.ResetPasswordRequest) error {
	if req.Token == "" || req.NewPassword == "" {
		return apperrors.NewValidationError("token and newPassword are required")
	}

	token, err := s.resetTokens.Get(ctx, req.Token)
	if err != nil {
		return apperrors.ErrTokenInvalid
	}
	if token.Used {
		return apperrors.ErrTokenInvalid
	}
	if time.Now().After(token.ExpiresAt) {
		return apperrors.ErrTokenExpired
	}

	hash, err := auth.HashPassword(req.NewPassword)
	if err != nil {
		return fmt.Errorf("error hashing password: %w", err)
	}
	if err := s.users.UpdatePassword(ctx, token.UserID, hash); err != nil {
		return err
	}
	return s.resetTokens.MarkUsed(ctx, token.ID)
}
