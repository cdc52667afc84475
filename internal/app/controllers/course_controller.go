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

// CourseController handles course catalog endpoints
type CourseController struct {
	courseService *services.CourseService
}

// NewCourseController creates a new course controller
func NewCourseController(courseService *services.CourseService) *CourseController {
	return &CourseController{courseService: courseService}
}

// CreateCourse registers a course offering. Repeating an identical
// request converges on the same offering instead of erroring.
func (cc *CourseController) CreateCourse(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.CreateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("malformed request body"))
		return
	}

	bc, err := cc.courseService.CreateCourse(c.Request.Context(), actor, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(bc))
}

// GetCourses lists the offerings of a (batch, semester).
func (cc *CourseController) GetCourses(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	semesterID, err := queryID(c, "semesterId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var batchID *int64
	if !actor.BatchScoped() {
		if batchID, err = optionalQueryID(c, "batchId"); err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
	}
	streamID, err := optionalQueryID(c, "streamId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	offerings, err := cc.courseService.GetCourses(c.Request.Context(), actor, batchID, semesterID, streamID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if len(offerings) == 0 {
		c.JSON(http.StatusOK, dto.NewMessageResponse("no courses found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(offerings))
}

// GetCourse returns one offering with its labels.
func (cc *CourseController) GetCourse(c *gin.Context) {
	batchCourseID, err := pathID(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	offering, err := cc.courseService.GetCourse(c.Request.Context(), batchCourseID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(offering))
}

// UpdateCourse rewrites an offering and its catalog entry.
func (cc *CourseController) UpdateCourse(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	batchCourseID, err := pathID(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.UpdateCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("malformed request body"))
		return
	}

	if err := cc.courseService.UpdateCourse(c.Request.Context(), actor, batchCourseID, req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("course updated"))
}

// DeleteCourse unlinks an offering from its batch.
func (cc *CourseController) DeleteCourse(c *gin.Context) {
	batchCourseID, err := pathID(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.courseService.DeleteCourse(c.Request.Context(), batchCourseID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("course deleted"))
}

// GetBatches lists the seeded batch tiers.
func (cc *CourseController) GetBatches(c *gin.Context) {
	batches, err := cc.courseService.ListBatches(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(batches))
}

// GetStreams lists the seeded specialization streams.
func (cc *CourseController) GetStreams(c *gin.Context) {
	streams, err := cc.courseService.ListStreams(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(streams))
}

// GetSemesters lists the two seeded semesters.
func (cc *CourseController) GetSemesters(c *gin.Context) {
	semesters, err := cc.courseService.ListSemesters(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(semesters))
}

// AssignmentController handles staff-course assignment endpoints
type AssignmentController struct {
	assignmentService *services.AssignmentService
}

// NewAssignmentController creates a new assignment controller
func NewAssignmentController(assignmentService *services.AssignmentService) *AssignmentController {
	return &AssignmentController{assignmentService: assignmentService}
}

// AssignCourse binds a staff member to the course behind an offering.
func (ac *AssignmentController) AssignCourse(c *gin.Context) {
	var req dto.AssignCourseRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("malformed request body"))
		return
	}

	result, err := ac.assignmentService.AssignCourse(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(result))
}

// GetStaffCourses lists a staff member's assignments.
func (ac *AssignmentController) GetStaffCourses(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	var userID int64
	var err error
	if actor.Role != models.RoleStaff {
		if userID, err = queryID(c, "userId"); err != nil {
			middleware.HandleAPIError(c, err)
			return
		}
	}

	courses, err := ac.assignmentService.GetStaffCourses(c.Request.Context(), actor, userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if len(courses) == 0 {
		c.JSON(http.StatusOK, dto.NewMessageResponse("no assigned courses"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(courses))
}

// RemoveStaffCourse unbinds a staff member from a course.
func (ac *AssignmentController) RemoveStaffCourse(c *gin.Context) {
	var req dto.RemoveAssignmentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("malformed request body"))
		return
	}

	removed, err := ac.assignmentService.RemoveStaffCourse(c.Request.Context(), req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(removed))
}
