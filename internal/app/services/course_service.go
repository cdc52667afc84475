package services

import (
	"context"

	identity "github.com/dawitf/ece-backend/internal/app/auth"
	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/pkg/logger"
)

// offeringStore is the slice of catalog persistence the course service
// needs.
type offeringStore interface {
	CreateOffering(ctx context.Context, name, code string, batchID int64, streamID *int64, semesterID int64) (*models.BatchCourse, error)
	ListOfferings(ctx context.Context, batchID, semesterID int64, streamID *int64) ([]models.CourseOffering, error)
	GetOffering(ctx context.Context, batchCourseID int64) (*models.CourseOffering, error)
	UpdateOffering(ctx context.Context, batchCourseID int64, name, code string, batchID int64, streamID *int64, semesterID int64) error
	DeleteOffering(ctx context.Context, batchCourseID int64) error
}

// taxonomyStore reads the fixed batch/stream/semester tables.
type taxonomyStore interface {
	ListBatches(ctx context.Context) ([]models.Batch, error)
	ListStreams(ctx context.Context) ([]models.Stream, error)
	ListSemesters(ctx context.Context) ([]models.Semester, error)
}

// CourseService manages the course catalog and its batch offerings.
type CourseService struct {
	offerings offeringStore
	taxonomy  taxonomyStore
}

// NewCourseService creates a new course service
func NewCourseService(offerings offeringStore, taxonomy taxonomyStore) *CourseService {
	return &CourseService{offerings: offerings, taxonomy: taxonomy}
}

// resolveScope pins representatives to their own batch and stream; other
// actors must name a batch explicitly.
func resolveScope(actor identity.ActingIdentity, batchID *int64, streamID *int64) (int64, *int64, error) {
	if actor.Role == models.RoleRepresentative {
		home, ok := actor.HomeBatch()
		if !ok {
			return 0, nil, apperrors.ErrForbidden
		}
		return home, actor.StreamID, nil
	}
	if batchID == nil || *batchID == 0 {
		return 0, nil, apperrors.NewValidationError("batchId is required")
	}
	return *batchID, streamID, nil
}

// CreateCourse registers a course and links it to a (batch, semester,
// stream) scope. Creating the same course for the same scope again is
// idempotent and reports the existing offering.
func (s *CourseService) CreateCourse(ctx context.Context, actor identity.ActingIdentity, req dto.CreateCourseRequest) (*models.BatchCourse, error) {
	if req.CourseName == "" || req.CourseCode == "" {
		return nil, apperrors.NewValidationError("courseName and courseCode are required")
	}
	if req.SemesterID == 0 {
		return nil, apperrors.NewValidationError("semesterId is required")
	}

	batchID, streamID, err := resolveScope(actor, req.BatchID, req.StreamID)
	if err != nil {
		return nil, err
	}

	bc, err := s.offerings.CreateOffering(ctx, req.CourseName, req.CourseCode, batchID, streamID, req.SemesterID)
	if err != nil {
		return nil, err
	}

	logger.Info().Int64("batch_course_id", bc.ID).Str("course", req.CourseName).Msg("Course offering created")
	return bc, nil
}

// GetCourses lists the offerings of a (batch, semester). Batch-scoped
// actors are pinned to their own batch and stream. A course offered to
// several streams fans out into one row per stream; the listing is
// deduplicated on (name, code). An empty catalog is a valid result,
// not an error.
func (s *CourseService) GetCourses(ctx context.Context, actor identity.ActingIdentity, batchID *int64, semesterID int64, streamID *int64) ([]models.CourseOffering, error) {
	if semesterID == 0 {
		return nil, apperrors.NewValidationError("semesterId is required")
	}

	resolvedBatch := int64(0)
	resolvedStream := streamID
	if actor.BatchScoped() {
		home, ok := actor.HomeBatch()
		if !ok {
			return nil, apperrors.ErrForbidden
		}
		resolvedBatch = home
		if actor.StreamID != nil {
			resolvedStream = actor.StreamID
		}
	} else {
		if batchID == nil || *batchID == 0 {
			return nil, apperrors.NewValidationError("batchId is required")
		}
		resolvedBatch = *batchID
	}

	offerings, err := s.offerings.ListOfferings(ctx, resolvedBatch, semesterID, resolvedStream)
	if err != nil {
		return nil, err
	}

	type courseKey struct {
		name string
		code string
	}
	return dedupBy(offerings, func(o models.CourseOffering) courseKey {
		return courseKey{name: o.CourseName, code: o.CourseCode}
	}), nil
}

// GetCourse returns one offering with its labels.
func (s *CourseService) GetCourse(ctx context.Context, batchCourseID int64) (*models.CourseOffering, error) {
	return s.offerings.GetOffering(ctx, batchCourseID)
}

// UpdateCourse rewrites an offering and its catalog entry.
func (s *CourseService) UpdateCourse(ctx context.Context, actor identity.ActingIdentity, batchCourseID int64, req dto.UpdateCourseRequest) error {
	if req.CourseName == "" || req.CourseCode == "" {
		return apperrors.NewValidationError("courseName and courseCode are required")
	}
	if req.SemesterID == 0 {
		return apperrors.NewValidationError("semesterId is required")
	}

	batchID, streamID, err := resolveScope(actor, req.BatchID, req.StreamID)
	if err != nil {
		return err
	}
	return s.offerings.UpdateOffering(ctx, batchCourseID, req.CourseName, req.CourseCode, batchID, streamID, req.SemesterID)
}

// DeleteCourse unlinks an offering from its batch.
func (s *CourseService) DeleteCourse(ctx context.Context, batchCourseID int64) error {
	if err := s.offerings.DeleteOffering(ctx, batchCourseID); err != nil {
		return err
	}
	logger.Info().Int64("batch_course_id", batchCourseID).Msg("Course offering deleted")
	return nil
}

// ListBatches returns the seeded batch tiers.
func (s *CourseService) ListBatches(ctx context.Context) ([]models.Batch, error) {
	return s.taxonomy.ListBatches(ctx)
}

// ListStreams returns the seeded specialization streams.
func (s *CourseService) ListStreams(ctx context.Context) ([]models.Stream, error) {
	return s.taxonomy.ListStreams(ctx)
}

// ListSemesters returns the two seeded semesters.
func (s *CourseService) ListSemesters(ctx context.Context) ([]models.Semester, error) {
	return s.taxonomy.ListSemesters(ctx)
}
