package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
)

type offeringKey struct {
	name, code         string
	batch, semester    int64
	stream             int64
}

type fakeOfferingStore struct {
	nextID    int64
	offerings map[offeringKey]*models.BatchCourse
	listBatch int64
}

func newFakeOfferingStore() *fakeOfferingStore {
	return &fakeOfferingStore{offerings: map[offeringKey]*models.BatchCourse{}}
}

func (f *fakeOfferingStore) key(name, code string, batchID int64, streamID *int64, semesterID int64) offeringKey {
	k := offeringKey{name: name, code: code, batch: batchID, semester: semesterID}
	if streamID != nil {
		k.stream = *streamID
	}
	return k
}

func (f *fakeOfferingStore) CreateOffering(_ context.Context, name, code string, batchID int64, streamID *int64, semesterID int64) (*models.BatchCourse, error) {
	k := f.key(name, code, batchID, streamID, semesterID)
	if bc, ok := f.offerings[k]; ok {
		return bc, nil
	}
	f.nextID++
	bc := &models.BatchCourse{ID: f.nextID, BatchID: batchID, StreamID: streamID, SemesterID: semesterID, CourseID: f.nextID}
	f.offerings[k] = bc
	return bc, nil
}

func (f *fakeOfferingStore) ListOfferings(_ context.Context, batchID, semesterID int64, _ *int64) ([]models.CourseOffering, error) {
	f.listBatch = batchID
	var out []models.CourseOffering
	for k, bc := range f.offerings {
		if bc.BatchID == batchID && bc.SemesterID == semesterID {
			out = append(out, models.CourseOffering{BatchCourseID: bc.ID, CourseName: k.name, CourseCode: k.code})
		}
	}
	return out, nil
}

func (f *fakeOfferingStore) GetOffering(_ context.Context, batchCourseID int64) (*models.CourseOffering, error) {
	for k, bc := range f.offerings {
		if bc.ID == batchCourseID {
			return &models.CourseOffering{BatchCourseID: bc.ID, CourseName: k.name, CourseCode: k.code}, nil
		}
	}
	return nil, apperrors.ErrNotFound
}

func (f *fakeOfferingStore) UpdateOffering(_ context.Context, batchCourseID int64, name, code string, batchID int64, streamID *int64, semesterID int64) error {
	for k, bc := range f.offerings {
		if bc.ID == batchCourseID {
			delete(f.offerings, k)
			bc.BatchID, bc.StreamID, bc.SemesterID = batchID, streamID, semesterID
			f.offerings[f.key(name, code, batchID, streamID, semesterID)] = bc
			return nil
		}
	}
	return apperrors.ErrNotFound
}

func (f *fakeOfferingStore) DeleteOffering(_ context.Context, batchCourseID int64) error {
	for k, bc := range f.offerings {
		if bc.ID == batchCourseID {
			delete(f.offerings, k)
			return nil
		}
	}
	return apperrors.ErrNotFound
}

type fakeTaxonomy struct{}

func (fakeTaxonomy) ListBatches(context.Context) ([]models.Batch, error) {
	return []models.Batch{{ID: 1, Year: "2nd Year"}}, nil
}

func (fakeTaxonomy) ListStreams(context.Context) ([]models.Stream, error) {
	return []models.Stream{{ID: 1, Name: "Computer"}}, nil
}

func (fakeTaxonomy) ListSemesters(context.Context) ([]models.Semester, error) {
	return []models.Semester{{ID: 1, Name: "1st Semester"}, {ID: 2, Name: "2nd Semester"}}, nil
}

func newCourseFixture() (*CourseService, *fakeOfferingStore) {
	store := newFakeOfferingStore()
	return NewCourseService(store, fakeTaxonomy{}), store
}

func TestCreateCourseIdempotent(t *testing.T) {
	svc, _ := newCourseFixture()
	ctx := context.Background()
	batch := int64(3)

	req := dto.CreateCourseRequest{CourseName: "Microprocessors", CourseCode: "ECE-3101", BatchID: &batch, SemesterID: 1}
	first, err := svc.CreateCourse(ctx, adminActor(), req)
	require.NoError(t, err)

	second, err := svc.CreateCourse(ctx, adminActor(), req)
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
}

func TestCreateCourseValidation(t *testing.T) {
	svc, _ := newCourseFixture()
	ctx := context.Background()
	batch := int64(3)

	_, err := svc.CreateCourse(ctx, adminActor(), dto.CreateCourseRequest{CourseCode: "ECE-3101", BatchID: &batch, SemesterID: 1})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateCourse(ctx, adminActor(), dto.CreateCourseRequest{CourseName: "X", CourseCode: "Y", BatchID: &batch})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.CreateCourse(ctx, adminActor(), dto.CreateCourseRequest{CourseName: "X", CourseCode: "Y", SemesterID: 1})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)
}

func TestCreateCourseRepresentativePinnedToOwnScope(t *testing.T) {
	svc, _ := newCourseFixture()
	other := int64(4)

	bc, err := svc.CreateCourse(context.Background(), repActor(), dto.CreateCourseRequest{
		CourseName: "Microprocessors", CourseCode: "ECE-3101", BatchID: &other, SemesterID: 1,
	})
	require.NoError(t, err)
	assert.Equal(t, int64(2), bc.BatchID)
	require.NotNil(t, bc.StreamID)
	assert.Equal(t, int64(1), *bc.StreamID)
}

func TestGetCoursesEmptyIsNotAnError(t *testing.T) {
	svc, store := newCourseFixture()
	batch := int64(3)

	offerings, err := svc.GetCourses(context.Background(), adminActor(), &batch, 1, nil)
	require.NoError(t, err)
	assert.Empty(t, offerings)
	assert.Equal(t, int64(3), store.listBatch)
}

func TestGetCoursesCollapsesPerStreamFanOut(t *testing.T) {
	svc, _ := newCourseFixture()
	ctx := context.Background()
	batch := int64(3)
	computer, power := int64(1), int64(4)

	// The same course offered to two streams of one batch.
	_, err := svc.CreateCourse(ctx, adminActor(), dto.CreateCourseRequest{
		CourseName: "Control Systems", CourseCode: "ECE-4201", BatchID: &batch, StreamID: &computer, SemesterID: 1,
	})
	require.NoError(t, err)
	_, err = svc.CreateCourse(ctx, adminActor(), dto.CreateCourseRequest{
		CourseName: "Control Systems", CourseCode: "ECE-4201", BatchID: &batch, StreamID: &power, SemesterID: 1,
	})
	require.NoError(t, err)

	offerings, err := svc.GetCourses(ctx, adminActor(), &batch, 1, nil)
	require.NoError(t, err)
	require.Len(t, offerings, 1)
	assert.Equal(t, "Control Systems", offerings[0].CourseName)
	assert.Equal(t, "ECE-4201", offerings[0].CourseCode)
}

func TestGetCoursesPinsBatchScopedActors(t *testing.T) {
	svc, store := newCourseFixture()
	other := int64(4)

	_, err := svc.GetCourses(context.Background(), repActor(), &other, 1, nil)
	require.NoError(t, err)
	assert.Equal(t, int64(2), store.listBatch)
}

func TestUpdateAndDeleteCourse(t *testing.T) {
	svc, _ := newCourseFixture()
	ctx := context.Background()
	batch := int64(3)

	bc, err := svc.CreateCourse(ctx, adminActor(), dto.CreateCourseRequest{
		CourseName: "Microprocessors", CourseCode: "ECE-3101", BatchID: &batch, SemesterID: 1,
	})
	require.NoError(t, err)

	err = svc.UpdateCourse(ctx, adminActor(), bc.ID, dto.UpdateCourseRequest{
		CourseName: "Advanced Microprocessors", CourseCode: "ECE-3102", BatchID: &batch, SemesterID: 2,
	})
	require.NoError(t, err)

	require.NoError(t, svc.DeleteCourse(ctx, bc.ID))
	assert.ErrorIs(t, svc.DeleteCourse(ctx, bc.ID), apperrors.ErrNotFound)
}

func TestTaxonomyListings(t *testing.T) {
	svc, _ := newCourseFixture()
	ctx := context.Background()

	batches, err := svc.ListBatches(ctx)
	require.NoError(t, err)
	assert.Len(t, batches, 1)

	semesters, err := svc.ListSemesters(ctx)
	require.NoError(t, err)
	assert.Len(t, semesters, 2)

	streams, err := svc.ListStreams(ctx)
	require.NoError(t, err)
	assert.Len(t, streams, 1)
}
