package handlers

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"github.com/SAP-F-2025/admission-service/internal/services"
	"github.com/SAP-F-2025/admission-service/internal/utils"
)

// ApprovalHandler exposes the approval workflow over HTTP.
type ApprovalHandler struct {
	BaseHandler
	approvalService services.ApprovalService
	exportService   services.ExportService
}

func NewApprovalHandler(approvalService services.ApprovalService, exportService services.ExportService, logger utils.Logger) *ApprovalHandler {
	return &ApprovalHandler{
		BaseHandler:     NewBaseHandler(logger),
		approvalService: approvalService,
		exportService:   exportService,
	}
}

// ApproveUser handles POST /api/v1/approval/approve-user
func (h *ApprovalHandler) ApproveUser(c *gin.Context) {
	approverUID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	var req models.ApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request body",
			Details: err.Error(),
		})
		return
	}

	h.LogRequest(c, "Processing approval decision",
		"approver_uid", approverUID, "target_uid", req.UserUID, "approved", req.Approved)

	result, err := h.approvalService.ApproveUser(c.Request.Context(), approverUID, &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, result)
}

// GetPendingUsers handles GET /api/v1/approval/pending-users
func (h *ApprovalHandler) GetPendingUsers(c *gin.Context) {
	approverUID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	h.LogRequest(c, "Listing pending users", "approver_uid", approverUID)

	users, err := h.approvalService.GetPendingUsers(c.Request.Context(), approverUID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, models.UserListResponse{Users: users, Total: int64(len(users))})
}

// GetApprovalHistory handles GET /api/v1/approval/history
func (h *ApprovalHandler) GetApprovalHistory(c *gin.Context) {
	approverUID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	filters := parseHistoryFilters(c)

	history, err := h.approvalService.GetApprovalHistory(c.Request.Context(), approverUID, filters)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, history)
}

// GetApprovalStatistics handles GET /api/v1/approval/statistics
func (h *ApprovalHandler) GetApprovalStatistics(c *gin.Context) {
	approverUID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	stats, err := h.approvalService.GetApprovalStatistics(c.Request.Context(), approverUID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, stats)
}

// ExportApprovalHistory handles GET /api/v1/approval/history/export
func (h *ApprovalHandler) ExportApprovalHistory(c *gin.Context) {
	approverUID, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	h.LogRequest(c, "Exporting approval history", "approver_uid", approverUID)

	file, err := h.exportService.ExportApprovalHistory(c.Request.Context(), approverUID)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	filename := fmt.Sprintf("approval-history-%s.xlsx", time.Now().Format("2006-01-02"))
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Header("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")

	if err := file.Write(c.Writer); err != nil {
		h.LogError(c, err, "Failed to stream export")
	}
}

// GetMyStatus handles GET /api/v1/approval/my-status
func (h *ApprovalHandler) GetMyStatus(c *gin.Context) {
	uid, err := GetUserIDFromContext(c)
	if err != nil {
		c.JSON(http.StatusUnauthorized, ErrorResponse{Message: "Authentication required"})
		return
	}

	status, err := h.approvalService.GetMyStatus(c.Request.Context(), uid)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, status)
}

// GetRules handles GET /api/v1/approval/rules (public)
func (h *ApprovalHandler) GetRules(c *gin.Context) {
	c.JSON(http.StatusOK, h.approvalService.GetRules())
}

func parseHistoryFilters(c *gin.Context) repositories.ApprovalLogFilters {
	filters := repositories.ApprovalLogFilters{}

	if actionStr := c.Query("action"); actionStr != "" {
		action := models.ApprovalAction(actionStr)
		filters.Action = &action
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

	return filters
}

func (h *ApprovalHandler) handleServiceError(c *gin.Context, err error) {
	var validationErrors services.ValidationErrors
	if errors.As(err, &validationErrors) {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Validation failed",
			Details: validationErrors,
		})
		return
	}

	var permissionError *services.PermissionError
	if errors.As(err, &permissionError) {
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Access denied",
			Details: map[string]interface{}{
				"resource": permissionError.Resource,
				"action":   permissionError.Action,
				"reason":   permissionError.Reason,
			},
		})
		return
	}

	switch {
	case errors.Is(err, services.ErrUserNotFound):
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "User not found",
		})
	case errors.Is(err, services.ErrAlreadyDecided):
		c.JSON(http.StatusConflict, ErrorResponse{
			Message: "User has already been approved or rejected",
		})
	case errors.Is(err, services.ErrUnauthorized):
		c.JSON(http.StatusUnauthorized, ErrorResponse{
			Message: "Unauthorized",
		})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, ErrorResponse{
			Message: "Forbidden",
		})
	default:
		h.LogError(c, err, "Unexpected service error")
		c.JSON(http.StatusInternalServerError, ErrorResponse{
			Message: "Internal server error",
		})
	}
}
