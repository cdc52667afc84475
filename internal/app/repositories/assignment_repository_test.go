//go:build testutil
// +build testutil

package repositories_test

import (
	"context"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/repositories"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
	"github.com/dawitf/ece-backend/internal/testutil/testdb"
)

func startDB(t *testing.T) (context.Context, *testdb.Handle) {
	t.Helper()
	ctx := context.Background()
	h, err := testdb.Start(ctx)
	require.NoError(t, err)
	t.Cleanup(h.Close)
	return ctx, h
}

func createStaff(t *testing.T, ctx context.Context, users *repositories.UserRepository, label string) int64 {
	t.Helper()
	id, err := users.CreateWithStaffLinks(ctx, &models.User{
		Role:     models.RoleStaff,
		IDNumber: "STF/" + label,
		Name:     "Staff " + label,
		Email:    fmt.Sprintf("staff-%s@ece.edu", label),
		Password: "$2a$10$placeholderhashplaceholderhashplaceholde",
	}, nil)
	require.NoError(t, err)
	return id
}

func countBatchCourses(t *testing.T, ctx context.Context, h *testdb.Handle, courseID, batchID int64) int {
	t.Helper()
	var n int
	err := h.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM batch_courses WHERE course_id = $1 AND batch_id = $2`,
		courseID, batchID).Scan(&n)
	require.NoError(t, err)
	return n
}

func semesterID(t *testing.T, ctx context.Context, h *testdb.Handle, name string) int64 {
	t.Helper()
	var id int64
	err := h.Pool.QueryRow(ctx,
		`SELECT semester_id FROM semesters WHERE semester_name = $1`, name).Scan(&id)
	require.NoError(t, err)
	return id
}

// A course offered to two batches keeps both offering rows while anyone
// still teaches it, regardless of which batch their assignment targets.
func TestRemoveKeepsOfferingTaughtInAnotherBatch(t *testing.T) {
	ctx, h := startDB(t)

	users := repositories.NewUserRepository(h.Pool)
	courses := repositories.NewCourseRepository(h.Pool)
	assignments := repositories.NewAssignmentRepository(h.Pool)

	batch2, err := h.BatchID(ctx, "2nd Year")
	require.NoError(t, err)
	batch3, err := h.BatchID(ctx, "3rd Year")
	require.NoError(t, err)
	sem := semesterID(t, ctx, h, "1st Semester")

	second, err := courses.CreateOffering(ctx, "Digital Logic Design", "ECE-2101", batch2, nil, sem)
	require.NoError(t, err)
	third, err := courses.CreateOffering(ctx, "Digital Logic Design", "ECE-2101", batch3, nil, sem)
	require.NoError(t, err)
	require.Equal(t, second.CourseID, third.CourseID)

	staffA := createStaff(t, ctx, users, "dld-a")
	staffB := createStaff(t, ctx, users, "dld-b")
	require.NoError(t, assignments.Assign(ctx, staffA, second))
	require.NoError(t, assignments.Assign(ctx, staffB, third))

	// staffB still teaches the course (in the other batch), so neither
	// offering row may be deleted.
	removed, err := assignments.Remove(ctx, staffA, second.CourseID)
	require.NoError(t, err)
	assert.Equal(t, batch2, removed.BatchID)
	assert.Equal(t, 1, countBatchCourses(t, ctx, h, second.CourseID, batch2))
	assert.Equal(t, 1, countBatchCourses(t, ctx, h, second.CourseID, batch3))

	// Last teacher gone: only the removed assignment's own offering row
	// goes, the 2nd Year link is not staffB's to delete.
	_, err = assignments.Remove(ctx, staffB, third.CourseID)
	require.NoError(t, err)
	assert.Equal(t, 1, countBatchCourses(t, ctx, h, second.CourseID, batch2))
	assert.Equal(t, 0, countBatchCourses(t, ctx, h, second.CourseID, batch3))
}

// Two staff sharing one offering: the first removal leaves the offering
// in place, the second one orphans it and cleans it up.
func TestRemoveDeletesOfferingOnlyAfterLastTeacher(t *testing.T) {
	ctx, h := startDB(t)

	users := repositories.NewUserRepository(h.Pool)
	courses := repositories.NewCourseRepository(h.Pool)
	assignments := repositories.NewAssignmentRepository(h.Pool)

	batch4, err := h.BatchID(ctx, "4th Year")
	require.NoError(t, err)
	sem := semesterID(t, ctx, h, "2nd Semester")

	bc, err := courses.CreateOffering(ctx, "Microprocessors", "ECE-3305", batch4, nil, sem)
	require.NoError(t, err)

	staffA := createStaff(t, ctx, users, "mp-a")
	staffB := createStaff(t, ctx, users, "mp-b")
	require.NoError(t, assignments.Assign(ctx, staffA, bc))
	require.NoError(t, assignments.Assign(ctx, staffB, bc))

	_, err = assignments.Remove(ctx, staffA, bc.CourseID)
	require.NoError(t, err)
	assert.Equal(t, 1, countBatchCourses(t, ctx, h, bc.CourseID, batch4))

	_, err = assignments.Remove(ctx, staffB, bc.CourseID)
	require.NoError(t, err)
	assert.Equal(t, 0, countBatchCourses(t, ctx, h, bc.CourseID, batch4))
}

// An assign followed by a remove leaves no linkage rows behind, and a
// repeated remove reports the assignment as gone.
func TestAssignThenRemoveLeavesNoLinkage(t *testing.T) {
	ctx, h := startDB(t)

	users := repositories.NewUserRepository(h.Pool)
	courses := repositories.NewCourseRepository(h.Pool)
	assignments := repositories.NewAssignmentRepository(h.Pool)

	batch5, err := h.BatchID(ctx, "5th Year")
	require.NoError(t, err)
	sem := semesterID(t, ctx, h, "1st Semester")

	bc, err := courses.CreateOffering(ctx, "VLSI Design", "ECE-5203", batch5, nil, sem)
	require.NoError(t, err)

	staff := createStaff(t, ctx, users, "vlsi")
	require.NoError(t, assignments.Assign(ctx, staff, bc))

	removed, err := assignments.Remove(ctx, staff, bc.CourseID)
	require.NoError(t, err)
	assert.Equal(t, staff, removed.UserID)
	assert.Equal(t, bc.CourseID, removed.CourseID)

	var staffCourses, staffBatches int
	require.NoError(t, h.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM staff_courses WHERE user_id = $1`, staff).Scan(&staffCourses))
	require.NoError(t, h.Pool.QueryRow(ctx,
		`SELECT COUNT(*) FROM staff_batches WHERE user_id = $1`, staff).Scan(&staffBatches))
	assert.Equal(t, 0, staffCourses)
	assert.Equal(t, 0, staffBatches)
	assert.Equal(t, 0, countBatchCourses(t, ctx, h, bc.CourseID, batch5))

	_, err = assignments.Remove(ctx, staff, bc.CourseID)
	assert.ErrorIs(t, err, apperrors.ErrNotFound)
}
