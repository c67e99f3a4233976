package services

import (
	"context"

	"github.com/xuri/excelize/v2"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
)

// ===== REQUEST/RESPONSE DTOs =====

type ApprovalRequest = models.ApprovalRequest
type RegisterUserRequest = models.RegisterUserRequest
type SchoolCreateRequest = models.SchoolCreateRequest
type SchoolUpdateRequest = models.SchoolUpdateRequest
type SchoolQuotaUpdateRequest = models.SchoolQuotaUpdateRequest

type ApprovalHistoryResponse struct {
	Entries []*models.ApprovalLog `json:"entries"`
	Total   int64                 `json:"total"`
}

// ===== SERVICE INTERFACES =====

// ApprovalService owns the decision workflow and its query surface.
type ApprovalService interface {
	// ApproveUser applies one decision. The approver is identified by UID;
	// the request names the target and the outcome.
	ApproveUser(ctx context.Context, approverUID string, req *ApprovalRequest) (*models.ApprovalResult, error)

	// GetPendingUsers returns the undecided users this approver may decide,
	// oldest first.
	GetPendingUsers(ctx context.Context, approverUID string) ([]*models.User, error)

	// GetApprovalHistory returns the approver's own past decisions, newest
	// first.
	GetApprovalHistory(ctx context.Context, approverUID string, filters repositories.ApprovalLogFilters) (*ApprovalHistoryResponse, error)

	// GetApprovalStatistics aggregates counts over the approver's scope.
	GetApprovalStatistics(ctx context.Context, approverUID string) (*models.ApprovalStatistics, error)

	// GetMyStatus returns the caller's own approval standing.
	GetMyStatus(ctx context.Context, uid string) (*models.UserApprovalStatus, error)

	// GetRules describes the static approval hierarchy.
	GetRules() *models.ApprovalRules
}

type UserService interface {
	Register(ctx context.Context, req *RegisterUserRequest) (*models.User, error)
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	List(ctx context.Context, filters repositories.UserFilters) (*models.UserListResponse, error)
	Search(ctx context.Context, query string, filters repositories.UserFilters) (*models.UserListResponse, error)
}

type SchoolService interface {
	Create(ctx context.Context, req *SchoolCreateRequest) (*models.School, error)
	GetByID(ctx context.Context, id string) (*models.School, error)
	List(ctx context.Context, filters repositories.SchoolFilters) (*models.SchoolListResponse, error)
	Update(ctx context.Context, id string, req *SchoolUpdateRequest) (*models.School, error)
	UpdateQuotas(ctx context.Context, id string, req *SchoolQuotaUpdateRequest) (*models.School, error)
	Delete(ctx context.Context, id string) error
}

// ExportService renders reporting views to spreadsheets.
type ExportService interface {
	ExportApprovalHistory(ctx context.Context, approverUID string) (*excelize.File, error)
}

// ===== SERVICE MANAGER =====

type ServiceManager interface {
	Approval() ApprovalService
	User() UserService
	School() SchoolService
	Export() ExportService

	Initialize(ctx context.Context) error
	HealthCheck(ctx context.Context) error
	Shutdown(ctx context.Context) error
}
