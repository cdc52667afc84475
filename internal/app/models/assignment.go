package models

// StaffBatch records that a staff user operates within a (batch,
// stream, semester) context, based on the 'staff_batches' table. At
// most one row exists per (user, batch, semester).
type StaffBatch struct {
	ID         int64  `json:"staffBatchId" db:"staff_batch_id"`
	UserID     int64  `json:"userId" db:"user_id"`
	BatchID    int64  `json:"batchId" db:"batch_id"`
	StreamID   *int64 `json:"streamId,omitempty" db:"stream_id"`
	SemesterID int64  `json:"semesterId" db:"semester_id"`
}

// StaffCourse binds a staff user to a course offering, based on the
// 'staff_courses' table. The row is keyed by (user, course); assigning
// again overwrites batch/stream/semester instead of erroring.
type StaffCourse struct {
	ID         int64  `json:"staffCourseId" db:"staff_course_id"`
	UserID     int64  `json:"userId" db:"user_id"`
	CourseID   int64  `json:"courseId" db:"course_id"`
	BatchID    int64  `json:"batchId" db:"batch_id"`
	StreamID   *int64 `json:"streamId,omitempty" db:"stream_id"`
	SemesterID int64  `json:"semesterId" db:"semester_id"`
}

// StaffCourseView is the joined read model for a staff member's
// assignment: staff_courses joined with courses and batches, left-joined
// with batch_courses (so the offering id survives even when the
// batch_courses row was later deleted) and streams.
type StaffCourseView struct {
	StaffCourseID int64  `json:"staffCourseId"`
	CourseID      int64  `json:"courseId"`
	CourseName    string `json:"courseName"`
	CourseCode    string `json:"courseCode"`
	BatchCourseID *int64 `json:"batchCourseId,omitempty"`
	BatchID       int64  `json:"batchId"`
	BatchYear     string `json:"batchYear"`
	SemesterID    int64  `json:"semesterId"`
	StreamID      *int64 `json:"streamId,omitempty"`
	StreamName    string `json:"streamName"` // "N/A" when the assignment has no stream
}

// StaffDetail is the joined read model for staff operating in a batch
// context: staff_batches joined with users, staff_courses, courses,
// batches, streams and semesters.
type StaffDetail struct {
	UserID       int64   `json:"userId"`
	Name         string  `json:"name"`
	CourseID     int64   `json:"courseId"`
	CourseName   string  `json:"courseName"`
	StreamName   *string `json:"streamName,omitempty"`
	BatchID      int64   `json:"batchId"`
	BatchYear    string  `json:"batchYear"`
	SemesterID   int64   `json:"semesterId"`
	SemesterName string  `json:"semesterName"`
}
