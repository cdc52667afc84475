package dto

// CreateCourseRequest creates a course and links it to a batch,
// semester and optional stream. BatchID and StreamID are ignored for
// representatives, who are pinned to their own scope.
type CreateCourseRequest struct {
	CourseName string `json:"courseName"`
	CourseCode string `json:"courseCode"`
	BatchID    *int64 `json:"batchId"`
	SemesterID int64  `json:"semesterId"`
	StreamID   *int64 `json:"streamId"`
}

// UpdateCourseRequest updates a course and its offering link.
type UpdateCourseRequest struct {
	CourseName string `json:"courseName"`
	CourseCode string `json:"courseCode"`
	BatchID    *int64 `json:"batchId"`
	SemesterID int64  `json:"semesterId"`
	StreamID   *int64 `json:"streamId"`
}

// AssignCourseRequest binds a staff member to a course offering.
type AssignCourseRequest struct {
	UserID        int64 `json:"userId"`
	BatchCourseID int64 `json:"batchCourseId"`
}

// RemoveAssignmentRequest removes a staff member's course binding.
type RemoveAssignmentRequest struct {
	UserID   int64 `json:"userId"`
	CourseID int64 `json:"courseId"`
}

// NewsRequest is the payload for posting or updating news.
type NewsRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

// DeleteMaterialRequest removes a material record and its stored object.
type DeleteMaterialRequest struct {
	MaterialID int64  `json:"materialId"`
	FileKey    string `json:"fileKey"`
}
