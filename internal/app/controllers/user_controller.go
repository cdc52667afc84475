package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/app/services"
	"github.com/dawitf/ece-backend/internal/middleware"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
)

// UserController handles user directory endpoints
type UserController struct {
	userService    *services.UserService
	studentService *services.StudentService
	authService    *services.AuthService
}

// NewUserController creates a new user controller
func NewUserController(userService *services.UserService, studentService *services.StudentService, authService *services.AuthService) *UserController {
	return &UserController{userService: userService, studentService: studentService, authService: authService}
}

// CreateUser creates a non-student user.
func (uc *UserController) CreateUser(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.CreateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("malformed request body"))
		return
	}

	resp, err := uc.userService.CreateUser(c.Request.Context(), actor, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(resp))
}

// GetAllUsers lists users of a role, optionally narrowed by semester,
// batch and stream.
func (uc *UserController) GetAllUsers(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	roleID, err := queryID(c, "roleId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var filter services.ListFilter
	if filter.SemesterID, err = optionalQueryID(c, "semesterId"); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if filter.BatchID, err = optionalQueryID(c, "batchId"); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if filter.StreamID, err = optionalQueryID(c, "streamId"); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	users, err := uc.userService.GetAllUsers(c.Request.Context(), actor, models.Role(roleID), filter)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if len(users) == 0 {
		c.JSON(http.StatusOK, dto.NewMessageResponse("no users found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(users))
}

// UpdateUser rewrites a user's identity fields and staff linkage.
func (uc *UserController) UpdateUser(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	userID, err := pathID(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateUserRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("malformed request body"))
		return
	}

	if err := uc.userService.UpdateUserByID(c.Request.Context(), actor, userID, req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("user updated"))
}

// DeleteUser removes a user and everything referencing it.
func (uc *UserController) DeleteUser(c *gin.Context) {
	userID, err := pathID(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := uc.userService.DeleteUserByID(c.Request.Context(), userID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("user deleted"))
}

// GetStaffDetails lists staff operating in a batch for a semester.
func (uc *UserController) GetStaffDetails(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	var batchID, semesterID int64
	var err error
	// Representatives are pinned server-side; others must name a batch.
	if actor.Role != models.RoleRepresentative {
		if batchID, err = queryID(c, "batchId"); err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
	}
	if semesterID, err = queryID(c, "semesterId"); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	streamID, err := optionalQueryID(c, "streamId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	details, err := uc.userService.GetStaffDetails(c.Request.Context(), actor, batchID, semesterID, streamID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if len(details) == 0 {
		c.JSON(http.StatusOK, dto.NewMessageResponse("no staff found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(details))
}

// AddStudent registers a student into a batch and signs the new student
// in. The route is public, so the acting identity is usually absent.
func (uc *UserController) AddStudent(c *gin.Context) {
	actor, _ := middleware.IdentityFromContext(c)

	var req dto.RegisterStudentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("malformed request body"))
		return
	}

	studentID, err := uc.studentService.AddStudent(c.Request.Context(), actor, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	token, err := uc.authService.LoginStudent(c.Request.Context(), dto.StudentLoginRequest{
		IDNumber:  req.IDNumber,
		FirstName: req.FirstName,
	})
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(gin.H{"studentId": studentID, "token": token}))
}

// GetStudentsByBatch lists the students of a batch.
func (uc *UserController) GetStudentsByBatch(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	var batchID int64
	var err error
	if !actor.BatchScoped() {
		if batchID, err = queryID(c, "batchId"); err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
	}
	streamID, err := optionalQueryID(c, "streamId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	students, err := uc.studentService.GetStudentsByBatch(c.Request.Context(), actor, batchID, streamID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if len(students) == 0 {
		c.JSON(http.StatusOK, dto.NewMessageResponse("no students found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(students))
}

// DeleteStudent removes a student record.
func (uc *UserController) DeleteStudent(c *gin.Context) {
	studentID, err := pathID(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := uc.studentService.DeleteStudent(c.Request.Context(), studentID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("student deleted"))
}
