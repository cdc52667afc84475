package services

import (
	"context"
	"strings"
	"unicode"

	identity "github.com/dawitf/ece-backend/internal/app/auth"
	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/logger"
)

// studentStore is the slice of student persistence the service needs.
type studentStore interface {
	Create(ctx context.Context, student *models.Student) (int64, error)
	Exists(ctx context.Context, idNumber string) (bool, error)
	ListByBatch(ctx context.Context, batchID int64, streamID *int64) ([]models.StudentDetail, error)
	Delete(ctx context.Context, studentID int64) error
}

// batchSource resolves batch labels for the cohort rule.
type batchSource interface {
	GetBatch(ctx context.Context, id int64) (*models.Batch, error)
}

// StudentService manages student records.
type StudentService struct {
	students studentStore
	batches  batchSource
}

// NewStudentService creates a new student service
func NewStudentService(students studentStore, batches batchSource) *StudentService {
	return &StudentService{students: students, batches: batches}
}

// streamRequired reports whether a batch tier splits by stream. Upper
// tiers always do.
func streamRequired(batchYear string) bool {
	switch batchYear {
	case "4th Year", "5th Year":
		return true
	}
	return false
}

func isAlpha(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) {
			return false
		}
	}
	return len(s) > 0
}

// isIDNumber accepts institutional id formats such as ETS-0419.
func isIDNumber(s string) bool {
	for _, r := range s {
		if !unicode.IsLetter(r) && !unicode.IsDigit(r) && r != '-' && r != '/' {
			return false
		}
	}
	return len(s) > 0
}

// AddStudent registers a student into a batch. Representatives may only
// register into their own batch. Upper-tier batches require a stream.
func (s *StudentService) AddStudent(ctx context.Context, actor identity.ActingIdentity, req dto.RegisterStudentRequest) (int64, error) {
	var missing []string
	if req.FirstName == "" {
		missing = append(missing, "firstName")
	}
	if req.LastName == "" {
		missing = append(missing, "lastName")
	}
	if req.IDNumber == "" {
		missing = append(missing, "idNumber")
	}
	if len(missing) > 0 {
		return 0, apperrors.NewValidationError("missing required fields: " + strings.Join(missing, ", "))
	}
	if !isAlpha(req.FirstName) || !isAlpha(req.LastName) {
		return 0, apperrors.NewValidationError("first and last names must contain only letters")
	}
	if !isIDNumber(req.IDNumber) {
		return 0, apperrors.NewValidationError("idNumber has an invalid format")
	}

	batchID := req.BatchID
	streamID := req.StreamID
	if actor.Role == models.RoleRepresentative {
		if home, ok := actor.HomeBatch(); ok {
			batchID = home
		}
		streamID = actor.StreamID
	}
	if batchID == 0 {
		return 0, apperrors.NewValidationError("batchId is required")
	}

	batch, err := s.batches.GetBatch(ctx, batchID)
	if err != nil {
		return 0, apperrors.NewNotFoundError("batch not found")
	}
	if streamRequired(batch.Year) && streamID == nil {
		return 0, apperrors.NewValidationError("streamId is required for " + batch.Year + " students")
	}

	exists, err := s.students.Exists(ctx, req.IDNumber)
	if err != nil {
		return 0, err
	}
	if exists {
		return 0, apperrors.ErrDuplicateUser
	}

	studentID, err := s.students.Create(ctx, &models.Student{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		IDNumber:  req.IDNumber,
		BatchID:   batchID,
		StreamID:  streamID,
	})
	if err != nil {
		return 0, err
	}

	logger.Info().Int64("student_id", studentID).Int64("batch_id", batchID).Msg("Student registered")
	return studentID, nil
}

// GetStudentsByBatch lists the students of a batch. Batch-scoped actors
// are pinned to their own batch and stream.
func (s *StudentService) GetStudentsByBatch(ctx context.Context, actor identity.ActingIdentity, batchID int64, streamID *int64) ([]models.StudentDetail, error) {
	if actor.BatchScoped() {
		if home, ok := actor.HomeBatch(); ok {
			batchID = home
		}
		if actor.StreamID != nil {
			streamID = actor.StreamID
		}
	}
	if batchID == 0 {
		return nil, apperrors.NewValidationError("batchId is required")
	}
	return s.students.ListByBatch(ctx, batchID, streamID)
}

// DeleteStudent removes a student record.
func (s *StudentService) DeleteStudent(ctx context.Context, studentID int64) error {
	if err := s.students.Delete(ctx, studentID); err != nil {
		return err
	}
	logger.Info().Int64("student_id", studentID).Msg("Student deleted")
	return nil
}
