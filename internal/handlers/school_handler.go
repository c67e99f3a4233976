package handlers

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"github.com/SAP-F-2025/admission-service/internal/services"
	"github.com/SAP-F-2025/admission-service/internal/utils"
)

// SchoolHandler exposes school CRUD and quota management.
type SchoolHandler struct {
	BaseHandler
	schoolService services.SchoolService
}

func NewSchoolHandler(schoolService services.SchoolService, logger utils.Logger) *SchoolHandler {
	return &SchoolHandler{
		BaseHandler:   NewBaseHandler(logger),
		schoolService: schoolService,
	}
}

// CreateSchool handles POST /api/v1/schools
func (h *SchoolHandler) CreateSchool(c *gin.Context) {
	var req models.SchoolCreateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Creating school", "school_id", req.ID, "name", req.Name)

	school, err := h.schoolService.Create(c.Request.Context(), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusCreated, school)
}

// GetSchool handles GET /api/v1/schools/:id
func (h *SchoolHandler) GetSchool(c *gin.Context) {
	id := c.Param("id")
	if id == "" {
		c.JSON(http.StatusBadRequest, ErrorResponse{Message: "School ID is required"})
		return
	}

	school, err := h.schoolService.GetByID(c.Request.Context(), id)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

// ListSchools handles GET /api/v1/schools
func (h *SchoolHandler) ListSchools(c *gin.Context) {
	filters := repositories.SchoolFilters{
		Region: c.Query("region"),
		Search: c.Query("q"),
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	size, _ := strconv.Atoi(c.DefaultQuery("size", "50"))
	if size < 1 || size > 200 {
		size = 50
	}
	filters.Limit = size
	filters.Offset = (page - 1) * size

	response, err := h.schoolService.List(c.Request.Context(), filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// UpdateSchool handles PUT /api/v1/schools/:id
func (h *SchoolHandler) UpdateSchool(c *gin.Context) {
	id := c.Param("id")

	var req models.SchoolUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	school, err := h.schoolService.Update(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

// UpdateSchoolQuotas handles PUT /api/v1/schools/:id/quotas (admin only)
func (h *SchoolHandler) UpdateSchoolQuotas(c *gin.Context) {
	id := c.Param("id")

	var req models.SchoolQuotaUpdateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Updating school quotas", "school_id", id)

	school, err := h.schoolService.UpdateQuotas(c.Request.Context(), id, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, school)
}

// DeleteSchool handles DELETE /api/v1/schools/:id (admin only)
func (h *SchoolHandler) DeleteSchool(c *gin.Context) {
	id := c.Param("id")

	if err := h.schoolService.Delete(c.Request.Context(), id); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "School deleted"})
}

func (h *SchoolHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrSchoolNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "School not found",
		})
	case errors.Is(err, services.ErrSchoolExists):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "School already exists",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
