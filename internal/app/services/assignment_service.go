package services

import (
	"context"

	identity "github.com/dawitf/ece-backend/internal/app/auth"
	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/email"
	"github.com/dawitf/ece-backend/internal/pkg/logger"
)

// assignmentStore is the slice of linkage persistence the assignment
// service needs.
type assignmentStore interface {
	Assign(ctx context.Context, userID int64, bc *models.BatchCourse) error
	Remove(ctx context.Context, userID, courseID int64) (*models.StaffCourse, error)
	ListStaffCourses(ctx context.Context, userID int64) ([]models.StaffCourseView, error)
}

// offeringSource resolves offerings while assigning.
type offeringSource interface {
	GetBatchCourse(ctx context.Context, batchCourseID int64) (*models.BatchCourse, error)
	GetOffering(ctx context.Context, batchCourseID int64) (*models.CourseOffering, error)
}

// assigneeSource resolves the staff member being assigned.
type assigneeSource interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
}

// AssignmentService manages staff-course bindings and the cleanup they
// imply.
type AssignmentService struct {
	assignments assignmentStore
	offerings   offeringSource
	users       assigneeSource
	mailService email.MailService
}

// NewAssignmentService creates a new assignment service
func NewAssignmentService(assignments assignmentStore, offerings offeringSource, users assigneeSource, mailService email.MailService) *AssignmentService {
	return &AssignmentService{
		assignments: assignments,
		offerings:   offerings,
		users:       users,
		mailService: mailService,
	}
}

// AssignResult reports a completed assignment and whether the staff
// member was notified.
type AssignResult struct {
	UserID        int64 `json:"userId"`
	CourseID      int64 `json:"courseId"`
	BatchCourseID int64 `json:"batchCourseId"`
	Notified      bool  `json:"notified"`
}

// AssignCourse binds a staff member to the course behind an offering.
// The target must exist and hold the staff role. Re-assigning the same
// course moves the binding to the offering's batch and semester. The
// database write and the notification are decoupled; a failed mail
// downgrades the result instead of undoing the assignment.
func (s *AssignmentService) AssignCourse(ctx context.Context, req dto.AssignCourseRequest) (*AssignResult, error) {
	if req.UserID == 0 || req.BatchCourseID == 0 {
		return nil, apperrors.NewValidationError("userId and batchCourseId are required")
	}

	user, err := s.users.GetByID(ctx, req.UserID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("staff member not found")
	}
	if user.Role != models.RoleStaff {
		return nil, apperrors.NewValidationError("courses can only be assigned to staff")
	}

	bc, err := s.offerings.GetBatchCourse(ctx, req.BatchCourseID)
	if err != nil {
		return nil, apperrors.NewNotFoundError("course offering not found")
	}

	if err := s.assignments.Assign(ctx, user.ID, bc); err != nil {
		return nil, err
	}

	notified := s.notifyAssignment(ctx, user, req.BatchCourseID)

	logger.Info().
		Int64("user_id", user.ID).
		Int64("course_id", bc.CourseID).
		Int64("batch_id", bc.BatchID).
		Msg("Course assigned")
	return &AssignResult{
		UserID:        user.ID,
		CourseID:      bc.CourseID,
		BatchCourseID: bc.ID,
		Notified:      notified,
	}, nil
}

func (s *AssignmentService) notifyAssignment(ctx context.Context, user *models.User, batchCourseID int64) bool {
	offering, err := s.offerings.GetOffering(ctx, batchCourseID)
	if err != nil {
		logger.Warn().Err(err).Int64("batch_course_id", batchCourseID).Msg("Could not describe assignment for notification")
		return false
	}

	m := email.AssignmentMail{
		ToName:     user.Name,
		ToEmail:    user.Email,
		CourseName: offering.CourseName,
		CourseCode: offering.CourseCode,
		BatchYear:  offering.BatchYear,
	}
	if offering.StreamName != nil {
		m.StreamName = *offering.StreamName
	}

	if err := s.mailService.SendAssignmentEmail(m); err != nil {
		logger.Warn().Err(err).Str("email", user.Email).Msg("Failed to send assignment email")
		return false
	}
	return true
}

// GetStaffCourses lists a staff member's assignments. Staff see their
// own; admins may query any user by id.
func (s *AssignmentService) GetStaffCourses(ctx context.Context, actor identity.ActingIdentity, userID int64) ([]models.StaffCourseView, error) {
	if actor.Role == models.RoleStaff {
		userID = actor.UserID
	}
	if userID == 0 {
		return nil, apperrors.NewValidationError("userId is required")
	}
	return s.assignments.ListStaffCourses(ctx, userID)
}

// RemoveStaffCourse unbinds a staff member from a course. The removal
// cleans up the staff's batch context and the offering link when
// nothing references them anymore.
func (s *AssignmentService) RemoveStaffCourse(ctx context.Context, req dto.RemoveAssignmentRequest) (*models.StaffCourse, error) {
	if req.UserID == 0 || req.CourseID == 0 {
		return nil, apperrors.NewValidationError("userId and courseId are required")
	}

	removed, err := s.assignments.Remove(ctx, req.UserID, req.CourseID)
	if err != nil {
		return nil, err
	}

	logger.Info().
		Int64("user_id", req.UserID).
		Int64("course_id", req.CourseID).
		Msg("Course assignment removed")
	return removed, nil
}
