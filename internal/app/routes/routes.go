package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/dawitf/ece-backend/internal/app/controllers"
	"github.com/dawitf/ece-backend/internal/app/models"
	"github.com/dawitf/ece-backend/internal/middleware"
	"github.com/dawitf/ece-backend/internal/pkg/auth"
)

// Setup registers every route with its role gate. Role checks stop at
// the gate; scope narrowing (a representative seeing only its batch)
// happens in the services.
func Setup(r *gin.Engine, ctrl *controllers.Controllers, jwtService *auth.JWTService, staticDir string) {
	r.Static("/uploads", staticDir)

	api := r.Group("/api")

	// Credential endpoints, no token required. Student registration is
	// public as well and signs the new student in.
	api.POST("/login", ctrl.Auth.Login)
	api.POST("/student-login", ctrl.Auth.LoginStudent)
	api.POST("/students/register", ctrl.User.AddStudent)
	api.POST("/forgot-password", ctrl.Auth.ForgotPassword)
	api.POST("/reset-password", ctrl.Auth.ResetPassword)

	anyRole := middleware.Authorize(jwtService)
	adminOnly := middleware.Authorize(jwtService, models.RoleAdmin)
	deptAdmins := middleware.Authorize(jwtService,
		models.RoleAdmin, models.RoleDepartmentAdmin)
	managers := middleware.Authorize(jwtService,
		models.RoleAdmin, models.RoleDepartmentAdmin, models.RoleRepresentative)
	viewers := middleware.Authorize(jwtService,
		models.RoleAdmin, models.RoleStudent, models.RoleDepartmentAdmin, models.RoleRepresentative)
	nonStudent := middleware.Authorize(jwtService,
		models.RoleAdmin, models.RoleStaff, models.RoleDepartmentAdmin, models.RoleRepresentative)
	passwordHolders := middleware.Authorize(jwtService,
		models.RoleStaff, models.RoleDepartmentAdmin, models.RoleRepresentative)

	api.GET("/check-auth", anyRole, ctrl.Auth.CheckAuthStatus)
	api.POST("/change-password", passwordHolders, ctrl.Auth.ChangePassword)

	// User directory.
	api.POST("/users", managers, ctrl.User.CreateUser)
	api.GET("/users", viewers, ctrl.User.GetAllUsers)
	api.PUT("/users/:id", adminOnly, ctrl.User.UpdateUser)
	api.DELETE("/users/:id", managers, ctrl.User.DeleteUser)
	api.GET("/staff-details", viewers, ctrl.User.GetStaffDetails)

	// Student records.
	api.GET("/students", managers, ctrl.User.GetStudentsByBatch)
	api.DELETE("/students/:id", viewers, ctrl.User.DeleteStudent)

	// Academic taxonomy, readable by every authenticated user.
	api.GET("/batches", anyRole, ctrl.Course.GetBatches)
	api.GET("/streams", anyRole, ctrl.Course.GetStreams)
	api.GET("/semesters", anyRole, ctrl.Course.GetSemesters)

	// Course catalog.
	api.POST("/courses", deptAdmins, ctrl.Course.CreateCourse)
	api.GET("/courses", anyRole, ctrl.Course.GetCourses)
	api.GET("/courses/:id", anyRole, ctrl.Course.GetCourse)
	api.PUT("/courses/:id", deptAdmins, ctrl.Course.UpdateCourse)
	api.DELETE("/courses/:id", deptAdmins, ctrl.Course.DeleteCourse)

	// Staff-course assignments.
	api.POST("/assignments", deptAdmins, ctrl.Assignment.AssignCourse)
	api.GET("/staff-courses", anyRole, ctrl.Assignment.GetStaffCourses)
	api.DELETE("/assignments", deptAdmins, ctrl.Assignment.RemoveStaffCourse)

	// News.
	api.POST("/news", deptAdmins, ctrl.News.PostNews)
	api.GET("/news", anyRole, ctrl.News.GetNews)
	api.GET("/news/mine", deptAdmins, ctrl.News.GetMyNews)
	api.PUT("/news/:id", deptAdmins, ctrl.News.UpdateNews)
	api.DELETE("/news/:id", deptAdmins, ctrl.News.DeleteNews)

	// Office contacts.
	api.POST("/contacts", nonStudent, ctrl.Contact.SaveContact)
	api.PUT("/contacts", nonStudent, ctrl.Contact.SaveContact)
	api.GET("/contacts", anyRole, ctrl.Contact.GetContacts)
	api.GET("/contacts/:userId", anyRole, ctrl.Contact.GetContact)
	api.DELETE("/contacts/:userId", nonStudent, ctrl.Contact.DeleteContact)

	// Course materials.
	api.POST("/materials/:batchCourseId", nonStudent, ctrl.Material.UploadMaterial)
	api.GET("/materials/:batchCourseId", anyRole, ctrl.Material.GetMaterials)
	api.DELETE("/materials", nonStudent, ctrl.Material.DeleteMaterial)
}
