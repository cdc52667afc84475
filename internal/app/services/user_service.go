package services

import (
	"context"
	"fmt"
	"strings"

	identity "github.com/dawitf/ece-backend/internal/app/auth"
	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/app/repositories"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/auth"
	"github.com/dawitf/ece-backend/internal/pkg/email"
	"github.com/dawitf/ece-backend/internal/pkg/logger"
)

// userStore is the slice of user persistence the directory service needs.
type userStore interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	Exists(ctx context.Context, idNumber, email string) (bool, error)
	ExistsExcept(ctx context.Context, idNumber, email string, excludeID int64) (bool, error)
	CreateWithStaffLinks(ctx context.Context, user *models.User, courseID *int64) (int64, error)
	UpdateWithStaffLinks(ctx context.Context, user *models.User, passwordHash string, courseID *int64) error
	DeleteCascade(ctx context.Context, userID int64) error
	ListDetails(ctx context.Context, filter repositories.UserFilter) ([]models.UserDetail, error)
}

// labelSource resolves taxonomy and catalog labels for notifications.
type labelSource interface {
	GetBatch(ctx context.Context, id int64) (*models.Batch, error)
	GetStream(ctx context.Context, id int64) (*models.Stream, error)
}

// catalogSource resolves catalog rows for notifications.
type catalogSource interface {
	GetCourse(ctx context.Context, courseID int64) (*models.Course, error)
}

// staffDetailSource lists staff operating in a batch context.
type staffDetailSource interface {
	ListStaffDetails(ctx context.Context, batchID, semesterID int64, streamID *int64) ([]models.StaffDetail, error)
}

// UserService manages the non-student user directory.
type UserService struct {
	users       userStore
	labels      labelSource
	catalog     catalogSource
	staff       staffDetailSource
	mailService email.MailService
}

// NewUserService creates a new user directory service
func NewUserService(users userStore, labels labelSource, catalog catalogSource, staff staffDetailSource, mailService email.MailService) *UserService {
	return &UserService{
		users:       users,
		labels:      labels,
		catalog:     catalog,
		staff:       staff,
		mailService: mailService,
	}
}

// resolveRole applies the role rules for user creation: actors without
// role-assignment capability always mint staff, and nobody mints
// students or representatives of another batch through this path.
func resolveRole(actor identity.ActingIdentity, requested int64) (models.Role, error) {
	if !actor.CanAssignRoles() {
		return models.RoleStaff, nil
	}
	role := models.Role(requested)
	if !role.Valid() {
		return 0, apperrors.NewValidationError("unknown roleId")
	}
	if role == models.RoleStudent {
		return 0, apperrors.NewValidationError("students are registered through the student endpoint")
	}
	return role, nil
}

func validateUserPayload(name, emailAddr, idNumber, password string, requirePassword bool) error {
	var missing []string
	if name == "" {
		missing = append(missing, "name")
	}
	if emailAddr == "" {
		missing = append(missing, "email")
	}
	if idNumber == "" {
		missing = append(missing, "idNumber")
	}
	if requirePassword && password == "" {
		missing = append(missing, "password")
	}
	if len(missing) > 0 {
		return apperrors.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	return nil
}

// CreateUser creates a non-student user, links staff to their batch and
// optional course, and sends a welcome notification. Representatives
// and department admins always create staff; a representative's own
// batch, stream and semester override whatever the payload carries.
// Notification failure does not undo the creation; the response reports
// it instead.
func (s *UserService) CreateUser(ctx context.Context, actor identity.ActingIdentity, req dto.CreateUserRequest) (*dto.CreateUserResponse, error) {
	if err := validateUserPayload(req.Name, req.Email, req.IDNumber, req.Password, true); err != nil {
		return nil, err
	}

	role, err := resolveRole(actor, req.RoleID)
	if err != nil {
		return nil, err
	}

	batchID, streamID, semesterID := req.BatchID, req.StreamID, req.SemesterID
	if actor.Role == models.RoleRepresentative {
		if home, ok := actor.HomeBatch(); ok {
			batchID = &home
		}
		streamID = actor.StreamID
		semesterID = actor.SemesterID
	}

	exists, err := s.users.Exists(ctx, req.IDNumber, req.Email)
	if err != nil {
		return nil, err
	}
	if exists {
		return nil, apperrors.ErrDuplicateUser
	}

	hash, err := auth.HashPassword(req.Password)
	if err != nil {
		return nil, fmt.Errorf("error hashing password: %w", err)
	}

	user := &models.User{
		Role:       role,
		IDNumber:   req.IDNumber,
		Name:       req.Name,
		Email:      req.Email,
		Password:   hash,
		BatchID:    batchID,
		StreamID:   streamID,
		SemesterID: semesterID,
	}

	userID, err := s.users.CreateWithStaffLinks(ctx, user, req.CourseID)
	if err != nil {
		return nil, err
	}

	notified := s.sendWelcome(ctx, user, req.Password, req.CourseID)

	logger.Info().Int64("user_id", userID).Str("role", role.String()).Msg("User created")
	return &dto.CreateUserResponse{UserID: userID, Notified: notified}, nil
}

// sendWelcome mails the new user their credentials and, for staff with
// an assignment, the course context. Failures are logged and reported
// through the return value only.
func (s *UserService) sendWelcome(ctx context.Context, user *models.User, plainPassword string, courseID *int64) bool {
	m := email.WelcomeMail{
		ToName:   user.Name,
		ToEmail:  user.Email,
		Password: plainPassword,
		Role:     user.Role,
	}
	if courseID != nil {
		if course, err := s.catalog.GetCourse(ctx, *courseID); err == nil {
			m.CourseName = course.Name
			m.CourseCode = course.Code
		}
	}
	if user.BatchID != nil {
		if batch, err := s.labels.GetBatch(ctx, *user.BatchID); err == nil {
			m.BatchYear = batch.Year
		}
	}
	if user.StreamID != nil {
		if stream, err := s.labels.GetStream(ctx, *user.StreamID); err == nil {
			m.StreamName = stream.Name
		}
	}

	if err := s.mailService.SendWelcomeEmail(m); err != nil {
		logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send welcome email")
		return false
	}
	return true
}

// ListFilter narrows user and staff listings. Nil fields are not applied.
type ListFilter struct {
	SemesterID *int64
	BatchID    *int64
	StreamID   *int64
}

// GetAllUsers lists users of a role with their labels. Batch-scoped
// actors are pinned to their own batch regardless of the filter. Rows
// fan out per staff assignment, so the result is deduplicated on
// (name, batch).
func (s *UserService) GetAllUsers(ctx context.Context, actor identity.ActingIdentity, role models.Role, filter ListFilter) ([]models.UserDetail, error) {
	if !role.Valid() {
		return nil, apperrors.NewValidationError("unknown roleId")
	}

	if actor.BatchScoped() {
		if home, ok := actor.HomeBatch(); ok {
			filter.BatchID = &home
		}
	}

	details, err := s.users.ListDetails(ctx, repositories.UserFilter{
		Role:       role,
		SemesterID: filter.SemesterID,
		BatchID:    filter.BatchID,
		StreamID:   filter.StreamID,
	})
	if err != nil {
		return nil, err
	}

	type userKey struct {
		name  string
		batch int64
	}
	return dedupBy(details, func(d models.UserDetail) userKey {
		k := userKey{name: d.Name, batch: -1}
		if d.BatchID != nil {
			k.batch = *d.BatchID
		}
		return k
	}), nil
}

// UpdateUserByID rewrites a user's identity fields and staff linkage.
// An empty password keeps the stored hash. The duplicate check excludes
// the user being updated.
func (s *UserService) UpdateUserByID(ctx context.Context, actor identity.ActingIdentity, userID int64, req dto.UpdateUserRequest) error {
	if err := validateUserPayload(req.Name, req.Email, req.IDNumber, "", false); err != nil {
		return err
	}

	role, err := resolveRole(actor, req.RoleID)
	if err != nil {
		return err
	}

	taken, err := s.users.ExistsExcept(ctx, req.IDNumber, req.Email, userID)
	if err != nil {
		return err
	}
	if taken {
		return apperrors.ErrDuplicateUser
	}

	var hash string
	if req.Password != "" {
		hash, err = auth.HashPassword(req.Password)
		if err != nil {
			return fmt.Errorf("error hashing password: %w", err)
		}
	}

	user := &models.User{
		ID:         userID,
		Role:       role,
		IDNumber:   req.IDNumber,
		Name:       req.Name,
		Email:      req.Email,
		BatchID:    req.BatchID,
		StreamID:   req.StreamID,
		SemesterID: req.SemesterID,
	}
	return s.users.UpdateWithStaffLinks(ctx, user, hash, req.CourseID)
}

// DeleteUserByID removes a user and everything that references it.
func (s *UserService) DeleteUserByID(ctx context.Context, userID int64) error {
	if err := s.users.DeleteCascade(ctx, userID); err != nil {
		return err
	}
	logger.Info().Int64("user_id", userID).Msg("User deleted")
	return nil
}

// GetStaffDetails lists staff operating in a batch for a semester, one
// row per (staff, course). Representatives are pinned to their own
// batch and stream.
func (s *UserService) GetStaffDetails(ctx context.Context, actor identity.ActingIdentity, batchID, semesterID int64, streamID *int64) ([]models.StaffDetail, error) {
	if actor.Role == models.RoleRepresentative {
		if home, ok := actor.HomeBatch(); ok {
			batchID = home
		}
		streamID = actor.StreamID
	}
	if batchID == 0 || semesterID == 0 {
		return nil, apperrors.NewValidationError("batchId and semesterId are required")
	}

	details, err := s.staff.ListStaffDetails(ctx, batchID, semesterID, streamID)
	if err != nil {
		return nil, err
	}

	type staffKey struct {
		user   int64
		course int64
	}
	return dedupBy(details, func(d models.StaffDetail) staffKey {
		return staffKey{user: d.UserID, course: d.CourseID}
	}), nil
}
