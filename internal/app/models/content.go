package models

import "time"

// News defines a posting based on the 'news' table.
type News struct {
	ID        int64     `json:"newsId" db:"news_id"`
	Title     string    `json:"title" db:"title"`
	Content   string    `json:"content" db:"content"`
	PostedBy  int64     `json:"postedBy" db:"posted_by"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

// NewsItem is a news row joined with the poster's name and role.
type NewsItem struct {
	ID        int64     `json:"newsId"`
	Title     string    `json:"title"`
	Content   string    `json:"content"`
	PostedBy  string    `json:"postedBy"`
	Role      string    `json:"role"`
	CreatedAt time.Time `json:"createdAt"`
}

// Contact defines per-user office information based on the 'contacts'
// table. One row per user.
type Contact struct {
	ID           int64     `json:"contactId" db:"contact_id"`
	UserID       int64     `json:"userId" db:"user_id"`
	OfficeRoom   string    `json:"officeRoom" db:"office_room"`
	Email        *string   `json:"email,omitempty" db:"email"`
	PhoneNumber  string    `json:"phoneNumber" db:"phone_number"`
	Availability string    `json:"availability" db:"availability"`
	CreatedAt    time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt    time.Time `json:"updatedAt" db:"updated_at"`
}

// ContactInfo is a contact row joined with the owning user's name.
type ContactInfo struct {
	UserID       int64  `json:"userId"`
	Name         string `json:"name"`
	OfficeRoom   string `json:"officeRoom"`
	PhoneNumber  string `json:"phoneNumber"`
	Availability string `json:"availability"`
}

// Material defines a file record attached to a course offering, based
// on the 'materials' table. The bytes live in external object storage
// keyed by title; only the reference is persisted.
type Material struct {
	ID            int64     `json:"materialId" db:"material_id"`
	Title         string    `json:"title" db:"title"`
	FileURL       string    `json:"fileUrl" db:"file_url"`
	BatchCourseID int64     `json:"batchCourseId" db:"batch_course_id"`
	UploadedBy    int64     `json:"uploadedBy" db:"uploaded_by"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

// MaterialItem is a material row joined with the uploader's name.
type MaterialItem struct {
	ID            int64     `json:"materialId"`
	Title         string    `json:"title"`
	FileURL       string    `json:"fileUrl"`
	BatchCourseID int64     `json:"batchCourseId"`
	UploadedBy    string    `json:"uploadedBy"`
	CreatedAt     time.Time `json:"createdAt"`
	UpdatedAt     time.Time `json:"updatedAt"`
}
