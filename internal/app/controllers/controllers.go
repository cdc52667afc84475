package controllers

import (
	"github.com/dawitf/ece-backend/internal/app/services"
)

// Controllers contains all controller instances
type Controllers struct {
	Auth       *AuthController
	User       *UserController
	Course     *CourseController
	Assignment *AssignmentController
	News       *NewsController
	Contact    *ContactController
	Material   *MaterialController
}

// NewControllers creates and initializes all controllers
func NewControllers(svc *services.Services) *Controllers {
	return &Controllers{
		Auth:       NewAuthController(svc.Auth),
		User:       NewUserController(svc.User, svc.Student, svc.Auth),
		Course:     NewCourseController(svc.Course),
		Assignment: NewAssignmentController(svc.Assignment),
		News:       NewNewsController(svc.News),
		Contact:    NewContactController(svc.Contact),
		Material:   NewMaterialController(svc.Material),
	}
}
