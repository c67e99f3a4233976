package repositories

import (
	"context"

	"github.com/SAP-F-2025/admission-service/internal/models"
)

type ApprovalLogFilters struct {
	Action *models.ApprovalAction
	Limit  int
	Offset int
}

// ApprovalLogRepository is the append-only audit trail. There are no update
// or delete operations on purpose.
type ApprovalLogRepository interface {
	Append(ctx context.Context, entry *models.ApprovalLog) error

	// ListByApprover returns the approver's decisions, newest first.
	ListByApprover(ctx context.Context, approverUID string, filters ApprovalLogFilters) ([]*models.ApprovalLog, error)

	// ListByTarget returns the decisions recorded against one user.
	ListByTarget(ctx context.Context, targetUID string) ([]*models.ApprovalLog, error)

	CountByApprover(ctx context.Context, approverUID string, action *models.ApprovalAction) (int64, error)
}
