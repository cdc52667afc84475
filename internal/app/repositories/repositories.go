package repositories

import (
	"github.com/jackc/pgx/v5/pgxpool"
)

// Repositories contains all repository instances
type Repositories struct {
	User          *UserRepository
	Student       *StudentRepository
	Academic      *AcademicRepository
	Course        *CourseRepository
	Assignment    *AssignmentRepository
	News          *NewsRepository
	Contact       *ContactRepository
	Material      *MaterialRepository
	PasswordReset *PasswordResetRepository
}

// NewRepositories creates and initializes all repositories
func NewRepositories(db *pgxpool.Pool) *Repositories {
	return &Repositories{
		User:          NewUserRepository(db),
		Student:       NewStudentRepository(db),
		Academic:      NewAcademicRepository(db),
		Course:        NewCourseRepository(db),
		Assignment:    NewAssignmentRepository(db),
		News:          NewNewsRepository(db),
		Contact:       NewContactRepository(db),
		Material:      NewMaterialRepository(db),
		PasswordReset: NewPasswordResetRepository(db),
	}
}
