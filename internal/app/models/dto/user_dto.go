package dto

// CreateUserRequest is the payload for creating a non-student user.
// RoleID and BatchID are requests, not guarantees: the directory
// service coerces both depending on the acting identity.
type CreateUserRequest struct {
	RoleID     int64  `json:"roleId"`
	IDNumber   string `json:"idNumber"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	BatchID    *int64 `json:"batchId"`
	StreamID   *int64 `json:"streamId"`
	SemesterID *int64 `json:"semesterId"`
	CourseID   *int64 `json:"courseId"`
}

// UpdateUserRequest is the payload for updating a user. An empty
// Password leaves the stored hash untouched.
type UpdateUserRequest struct {
	RoleID     int64  `json:"roleId"`
	IDNumber   string `json:"idNumber"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	Password   string `json:"password"`
	BatchID    *int64 `json:"batchId"`
	StreamID   *int64 `json:"streamId"`
	SemesterID *int64 `json:"semesterId"`
	CourseID   *int64 `json:"courseId"`
}

// CreateUserResponse reports the created user's id and whether the
// welcome notification went out.
type CreateUserResponse struct {
	UserID   int64 `json:"userId"`
	Notified bool  `json:"notified"`
}

// RegisterStudentRequest is the student self-registration payload.
type RegisterStudentRequest struct {
	FirstName string `json:"firstName"`
	LastName  string `json:"lastName"`
	IDNumber  string `json:"idNumber"`
	BatchID   int64  `json:"batchId"`
	StreamID  *int64 `json:"streamId"`
}

// ContactRequest is the payload for adding or updating contact
// information.
type ContactRequest struct {
	OfficeRoom   string  `json:"officeRoom"`
	PhoneNumber  string  `json:"phoneNumber"`
	Availability string  `json:"availability"`
	Email        *string `json:"email"`
}
