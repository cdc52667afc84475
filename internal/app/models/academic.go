package models

// Batch defines a year cohort based on the 'batches' table
type Batch struct {
	ID   int64  `json:"batchId" db:"batch_id"`
	Year string `json:"batchYear" db:"batch_year"` // e.g. "2nd Year" … "5th Year"
}

// Semester defines one of the two academic terms based on the 'semesters' table
type Semester struct {
	ID   int64  `json:"semesterId" db:"semester_id"`
	Name string `json:"semesterName" db:"semester_name"` // "1st Semester" or "2nd Semester"
}

// Stream defines a specialization track based on the 'streams' table.
// Streams apply only from the 4th year tier onward.
type Stream struct {
	ID   int64  `json:"streamId" db:"stream_id"`
	Name string `json:"streamName" db:"stream_name"`
}

// Course defines an entry in the course catalog based on the 'courses'
// table. A course is independent of any batch until linked through a
// BatchCourse row.
type Course struct {
	ID   int64  `json:"courseId" db:"course_id"`
	Name string `json:"courseName" db:"course_name"`
	Code string `json:"courseCode" db:"course_code"` // globally unique
}

// BatchCourse links a course to a (batch, semester, stream) combination
// based on the 'batch_courses' table. StreamID is nullable because only
// upper batches split by stream.
type BatchCourse struct {
	ID         int64  `json:"batchCourseId" db:"batch_course_id"`
	BatchID    int64  `json:"batchId" db:"batch_id"`
	StreamID   *int64 `json:"streamId,omitempty" db:"stream_id"`
	SemesterID int64  `json:"semesterId" db:"semester_id"`
	CourseID   int64  `json:"courseId" db:"course_id"`
}

// CourseOffering is the joined read model for a BatchCourse row:
// batch_courses joined with courses, batches, streams and semesters.
type CourseOffering struct {
	BatchCourseID int64   `json:"batchCourseId"`
	CourseID      int64   `json:"courseId"`
	CourseName    string  `json:"courseName"`
	CourseCode    string  `json:"courseCode"`
	BatchID       int64   `json:"batchId"`
	BatchYear     string  `json:"batchYear"`
	StreamName    *string `json:"streamName,omitempty"`
	SemesterID    int64   `json:"semesterId"`
	SemesterName  string  `json:"semesterName"`
}
