package services

import (
	"github.com/dawitf/ece-backend/internal/app/repositories"
	"github.com/dawitf/ece-backend/internal/config"
	"github.com/dawitf/ece-backend/internal/pkg/auth"
	"github.com/dawitf/ece-backend/internal/pkg/email"
	"github.com/dawitf/ece-backend/internal/pkg/filestorage"
)

// Services contains all service instances
type Services struct {
	Auth       *AuthService
	User       *UserService
	Student    *StudentService
	Course     *CourseService
	Assignment *AssignmentService
	News       *NewsService
	Contact    *ContactService
	Material   *MaterialService
}

// NewServices creates and initializes all services
func NewServices(
	repos *repositories.Repositories,
	jwtService *auth.JWTService,
	mailService email.MailService,
	storage filestorage.ObjectStorage,
	cfg *config.Config,
) *Services {
	return &Services{
		Auth:       NewAuthService(repos.User, repos.Student, repos.Assignment, repos.PasswordReset, jwtService, mailService, cfg.Server.BaseURL),
		User:       NewUserService(repos.User, repos.Academic, repos.Course, repos.Assignment, mailService),
		Student:    NewStudentService(repos.Student, repos.Academic),
		Course:     NewCourseService(repos.Course, repos.Academic),
		Assignment: NewAssignmentService(repos.Assignment, repos.Course, repos.User, mailService),
		News:       NewNewsService(repos.News),
		Contact:    NewContactService(repos.Contact),
		Material:   NewMaterialService(repos.Material, repos.Course, storage),
	}
}
