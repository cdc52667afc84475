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

type fakeAssignments struct {
	assigned map[int64]*models.BatchCourse
	removed  map[int64]*models.StaffCourse
	listed   map[int64][]models.StaffCourseView
}

func newFakeAssignments() *fakeAssignments {
	return &fakeAssignments{
		assigned: map[int64]*models.BatchCourse{},
		removed:  map[int64]*models.StaffCourse{},
		listed:   map[int64][]models.StaffCourseView{},
	}
}

func (f *fakeAssignments) Assign(_ context.Context, userID int64, bc *models.BatchCourse) error {
	f.assigned[userID] = bc
	return nil
}

func (f *fakeAssignments) Remove(_ context.Context, userID, courseID int64) (*models.StaffCourse, error) {
	sc, ok := f.removed[userID]
	if !ok || sc.CourseID != courseID {
		return nil, apperrors.ErrNotFound
	}
	delete(f.removed, userID)
	return sc, nil
}

func (f *fakeAssignments) ListStaffCourses(_ context.Context, userID int64) ([]models.StaffCourseView, error) {
	return f.listed[userID], nil
}

type fakeOfferings struct {
	batchCourses map[int64]*models.BatchCourse
	offerings    map[int64]*models.CourseOffering
}

func (f *fakeOfferings) GetBatchCourse(_ context.Context, id int64) (*models.BatchCourse, error) {
	bc, ok := f.batchCourses[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return bc, nil
}

func (f *fakeOfferings) GetOffering(_ context.Context, id int64) (*models.CourseOffering, error) {
	o, ok := f.offerings[id]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return o, nil
}

func newAssignmentFixture() (*AssignmentService, *fakeAssignments, *fakeAuthUsers, *fakeMail) {
	assignments := newFakeAssignments()
	offerings := &fakeOfferings{
		batchCourses: map[int64]*models.BatchCourse{
			20: {ID: 20, BatchID: 2, SemesterID: 1, CourseID: 7},
		},
		offerings: map[int64]*models.CourseOffering{
			20: {BatchCourseID: 20, CourseID: 7, CourseName: "Microprocessors", CourseCode: "ECE-3101", BatchID: 2, BatchYear: "3rd Year", SemesterID: 1, SemesterName: "1st Semester"},
		},
	}
	users := &fakeAuthUsers{users: map[int64]*models.User{
		2: {ID: 2, Role: models.RoleStaff, Name: "Daniel Bekele", Email: "daniel@example.com"},
		3: {ID: 3, Role: models.RoleRepresentative, Name: "Sara Lemma", Email: "sara@example.com"},
	}}
	mail := &fakeMail{}
	return NewAssignmentService(assignments, offerings, users, mail), assignments, users, mail
}

func TestAssignCourse(t *testing.T) {
	svc, assignments, _, mail := newAssignmentFixture()

	result, err := svc.AssignCourse(context.Background(), dto.AssignCourseRequest{UserID: 2, BatchCourseID: 20})
	require.NoError(t, err)
	assert.True(t, result.Notified)
	assert.Equal(t, int64(7), result.CourseID)

	require.Contains(t, assignments.assigned, int64(2))
	assert.Equal(t, int64(2), assignments.assigned[2].BatchID)

	require.Len(t, mail.assignments, 1)
	assert.Equal(t, "Microprocessors", mail.assignments[0].CourseName)
	assert.Equal(t, "3rd Year", mail.assignments[0].BatchYear)
}

func TestAssignCourseRejectsNonStaff(t *testing.T) {
	svc, _, _, _ := newAssignmentFixture()
	ctx := context.Background()

	_, err := svc.AssignCourse(ctx, dto.AssignCourseRequest{UserID: 3, BatchCourseID: 20})
	assert.ErrorIs(t, err, apperrors.ErrValidationFailed)

	_, err = svc.AssignCourse(ctx, dto.AssignCourseRequest{UserID: 99, BatchCourseID: 20})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)

	_, err = svc.AssignCourse(ctx, dto.AssignCourseRequest{UserID: 2, BatchCourseID: 99})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}

func TestAssignCourseMailFailureDowngrades(t *testing.T) {
	svc, assignments, _, mail := newAssignmentFixture()
	mail.fail = true

	result, err := svc.AssignCourse(context.Background(), dto.AssignCourseRequest{UserID: 2, BatchCourseID: 20})
	require.NoError(t, err)
	// The assignment survives the failed notification.
	assert.False(t, result.Notified)
	assert.Contains(t, assignments.assigned, int64(2))
}

func TestGetStaffCoursesScopesStaffToSelf(t *testing.T) {
	svc, assignments, _, _ := newAssignmentFixture()
	assignments.listed[2] = []models.StaffCourseView{{StaffCourseID: 1, CourseID: 7, CourseName: "Microprocessors"}}
	assignments.listed[9] = []models.StaffCourseView{{StaffCourseID: 2, CourseID: 8, CourseName: "Other"}}

	staffActor := identity.ActingIdentity{UserID: 2, Role: models.RoleStaff}
	courses, err := svc.GetStaffCourses(context.Background(), staffActor, 9)
	require.NoError(t, err)
	// Staff always read their own list, whatever id they pass.
	require.Len(t, courses, 1)
	assert.Equal(t, int64(7), courses[0].CourseID)

	courses, err = svc.GetStaffCourses(context.Background(), adminActor(), 9)
	require.NoError(t, err)
	require.Len(t, courses, 1)
	assert.Equal(t, int64(8), courses[0].CourseID)
}

func TestRemoveStaffCourse(t *testing.T) {
	svc, assignments, _, _ := newAssignmentFixture()
	assignments.removed[2] = &models.StaffCourse{ID: 1, UserID: 2, CourseID: 7, BatchID: 2, SemesterID: 1}

	removed, err := svc.RemoveStaffCourse(context.Background(), dto.RemoveAssignmentRequest{UserID: 2, CourseID: 7})
	require.NoError(t, err)
	assert.Equal(t, int64(7), removed.CourseID)

	_, err = svc.RemoveStaffCourse(context.Background(), dto.RemoveAssignmentRequest{UserID: 2, CourseID: 7})
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
