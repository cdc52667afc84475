package controllers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/dawitf/ece-backend/internal/app/models/dto"
	"github.com/dawitf/ece-backend/internal/app/services"
	"github.com/dawitf/ece-backend/internal/middleware"
	"github.com/dawitf/ece-backend/internal/pkg/apperrors"
)

// NewsController handles news posting endpoints
type NewsController struct {
	newsService *services.NewsService
}

// NewNewsController creates a new news controller
func NewNewsController(newsService *services.NewsService) *NewsController {
	return &NewsController{newsService: newsService}
}

// PostNews publishes a posting attributed to the acting user.
func (nc *NewsController) PostNews(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("title and content are required"))
		return
	}

	newsID, err := nc.newsService.PostNews(c.Request.Context(), actor, req)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(gin.H{"newsId": newsID}))
}

// GetNews lists all postings.
func (nc *NewsController) GetNews(c *gin.Context) {
	items, err := nc.newsService.GetNews(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusOK, dto.NewMessageResponse("no news found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

// GetMyNews lists the acting user's own postings.
func (nc *NewsController) GetMyNews(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	items, err := nc.newsService.GetNewsByUser(c.Request.Context(), actor)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if len(items) == 0 {
		c.JSON(http.StatusOK, dto.NewMessageResponse("no news found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(items))
}

// UpdateNews rewrites a posting.
func (nc *NewsController) UpdateNews(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	newsID, err := pathID(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	var req dto.NewsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("title and content are required"))
		return
	}

	if err := nc.newsService.UpdateNews(c.Request.Context(), actor, newsID, req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("news updated"))
}

// DeleteNews removes a posting.
func (nc *NewsController) DeleteNews(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	newsID, err := pathID(c, "id")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := nc.newsService.DeleteNews(c.Request.Context(), actor, newsID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("news deleted"))
}

// ContactController handles office contact endpoints
type ContactController struct {
	contactService *services.ContactService
}

// NewContactController creates a new contact controller
func NewContactController(contactService *services.ContactService) *ContactController {
	return &ContactController{contactService: contactService}
}

// SaveContact writes the acting user's contact card.
func (cc *ContactController) SaveContact(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.ContactRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("malformed request body"))
		return
	}

	if err := cc.contactService.SaveContact(c.Request.Context(), actor, req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("contact saved"))
}

// GetContact returns one user's contact card.
func (cc *ContactController) GetContact(c *gin.Context) {
	userID, err := pathID(c, "userId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	contact, err := cc.contactService.GetContact(c.Request.Context(), userID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(contact))
}

// GetContacts lists every contact card.
func (cc *ContactController) GetContacts(c *gin.Context) {
	contacts, err := cc.contactService.GetContacts(c.Request.Context())
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if len(contacts) == 0 {
		c.JSON(http.StatusOK, dto.NewMessageResponse("no contacts found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(contacts))
}

// DeleteContact removes a contact card.
func (cc *ContactController) DeleteContact(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	userID, err := pathID(c, "userId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	if err := cc.contactService.DeleteContact(c.Request.Context(), actor, userID); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("contact deleted"))
}

// MaterialController handles course material endpoints
type MaterialController struct {
	materialService *services.MaterialService
}

// NewMaterialController creates a new material controller
func NewMaterialController(materialService *services.MaterialService) *MaterialController {
	return &MaterialController{materialService: materialService}
}

// UploadMaterial accepts a multipart upload and attaches it to a course
// offering.
func (mc *MaterialController) UploadMaterial(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	title := c.PostForm("title")
	batchCourseID, err := pathID(c, "batchCourseId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	fileHeader, err := c.FormFile("file")
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("file is required"))
		return
	}
	file, err := fileHeader.Open()
	if err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("could not read uploaded file"))
		return
	}
	defer file.Close()

	materialID, err := mc.materialService.UploadMaterial(
		c.Request.Context(), actor, title, batchCourseID, file,
		fileHeader.Header.Get("Content-Type"))
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusCreated, dto.NewSuccessResponse(gin.H{"materialId": materialID}))
}

// GetMaterials lists the materials of a course offering.
func (mc *MaterialController) GetMaterials(c *gin.Context) {
	batchCourseID, err := pathID(c, "batchCourseId")
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}

	materials, err := mc.materialService.GetMaterials(c.Request.Context(), batchCourseID)
	if err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	if len(materials) == 0 {
		c.JSON(http.StatusOK, dto.NewMessageResponse("no materials found"))
		return
	}
	c.JSON(http.StatusOK, dto.NewSuccessResponse(materials))
}

// DeleteMaterial removes a material record and its stored object.
func (mc *MaterialController) DeleteMaterial(c *gin.Context) {
	actor, ok := middleware.IdentityFromContext(c)
	if !ok {
		middleware.HandleAPIError(c, apperrors.ErrUnauthenticated)
		return
	}

	var req dto.DeleteMaterialRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		middleware.HandleAPIError(c, apperrors.NewValidationError("malformed request body"))
		return
	}

	if err := mc.materialService.DeleteMaterial(c.Request.Context(), actor, req); err != nil {
		middleware.HandleAPIError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.NewMessageResponse("material deleted"))
}
