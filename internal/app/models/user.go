package models

import "time"

// User defines a non-student person (admin, staff, department admin or
// representative) based on the 'users' table. Batch/stream/semester are
// the user's home context and are meaningful mainly for representatives
// and staff.
type User struct {
	ID         int64     `json:"userId" db:"user_id"`
	Role       Role      `json:"roleId" db:"role_id"`
	IDNumber   string    `json:"idNumber" db:"id_number"` // globally unique
	Name       string    `json:"name" db:"name"`
	Email      string    `json:"email" db:"email"` // globally unique
	Password   string    `json:"-" db:"password"`  // bcrypt hash, excluded from JSON
	BatchID    *int64    `json:"batchId,omitempty" db:"batch_id"`
	StreamID   *int64    `json:"streamId,omitempty" db:"stream_id"`
	SemesterID *int64    `json:"semesterId,omitempty" db:"semester_id"`
	CreatedAt  time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt  time.Time `json:"updatedAt" db:"updated_at"`
}

// UserDetail is the joined read model returned by user listings: the
// user row enriched with role, batch, stream, semester and assigned
// course labels. Listing queries fan out across staff assignments, so
// rows are deduplicated before they reach the caller.
type UserDetail struct {
	UserID       int64     `json:"userId"`
	Role         Role      `json:"roleId"`
	RoleName     string    `json:"roleName"`
	IDNumber     string    `json:"idNumber"`
	Name         string    `json:"name"`
	Email        string    `json:"email"`
	BatchID      *int64    `json:"batchId,omitempty"`
	BatchYear    *string   `json:"batchYear,omitempty"`
	SemesterID   *int64    `json:"semesterId,omitempty"`
	SemesterName *string   `json:"semesterName,omitempty"`
	StreamID     *int64    `json:"streamId,omitempty"`
	StreamName   *string   `json:"streamName,omitempty"`
	CourseName   *string   `json:"courseName,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
	UpdatedAt    time.Time `json:"updatedAt"`
}

// Student defines a student record based on the 'students' table.
// Students are a distinct entity from User and authenticate without a
// password (ID number + first name).
type Student struct {
	ID        int64     `json:"studentId" db:"student_id"`
	FirstName string    `json:"firstName" db:"first_name"`
	LastName  string    `json:"lastName" db:"last_name"`
	IDNumber  string    `json:"idNumber" db:"id_number"` // unique among students
	BatchID   int64     `json:"batchId" db:"batch_id"`
	StreamID  *int64    `json:"streamId,omitempty" db:"stream_id"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

// StudentDetail is a student row joined with its batch and stream labels.
type StudentDetail struct {
	Student
	BatchYear  string  `json:"batchYear"`
	StreamName *string `json:"streamName,omitempty"`
}
