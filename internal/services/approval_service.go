package services

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"time"

	"gorm.io/datatypes"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/admission-service/internal/events"
	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"github.com/SAP-F-2025/admission-service/internal/validator"
)

type approvalService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewApprovalService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) ApprovalService {
	return &approvalService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// ApproveUser runs the decision workflow in a fixed order: resolve both
// parties, gate on the hierarchy, apply the conditional state update, then
// append the audit entry and publish the notification. Only the state
// update can fail the request; log and notification failures are logged
// and swallowed.
func (s *approvalService) ApproveUser(ctx context.Context, approverUID string, req *ApprovalRequest) (*models.ApprovalResult, error) {
	s.logger.Info("Processing approval decision",
		"approver_uid", approverUID, "target_uid", req.UserUID, "approved", req.Approved)

	if errs := s.validator.ValidateApprovalRequest(req); len(errs) > 0 {
		return nil, errs
	}

	approver, err := s.repo.User().GetByUID(ctx, approverUID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get approver: %w", err)
	}

	if !HasApprovalPermission(approver.Role) {
		return nil, NewPermissionError(approverUID, req.UserUID, "user", "approve", "role has no approval authority")
	}

	target, err := s.repo.User().GetByUID(ctx, req.UserUID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get target user: %w", err)
	}

	if !CanApprove(approver, target) {
		return nil, NewPermissionError(approverUID, req.UserUID, "user", "approve", "target role is outside approval authority")
	}

	// Department heads only ever act inside their own school. CanApprove
	// already enforces this; the second gate keeps the school boundary
	// intact even if the hierarchy table changes.
	if !approver.Role.Canonical().IsSystemAdmin() && !SameSchool(approver, target) {
		return nil, NewPermissionError(approverUID, req.UserUID, "user", "approve", "target belongs to a different school")
	}

	now := time.Now().UTC()
	updated, err := s.repo.User().Decide(ctx, repositories.DecideParams{
		TargetUID:   target.UID,
		Approved:    req.Approved,
		ApproverUID: approver.UID,
		Reason:      req.RejectionReason,
		DecidedAt:   now,
	})
	if err != nil {
		if repositories.IsAlreadyDecidedError(err) {
			return nil, ErrAlreadyDecided
		}
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to apply decision: %w", err)
	}

	s.appendAuditLog(ctx, approver, updated, req, now)
	s.publishDecision(ctx, approver, updated, req, now)

	result := &models.ApprovalResult{
		Success:     true,
		TargetUID:   updated.UID,
		TargetEmail: updated.Email,
		IsApproved:  updated.IsApproved,
		ApprovedBy:  approver.UID,
	}
	if req.Approved {
		result.Message = fmt.Sprintf("User %s approved", updated.Email)
		result.ApprovedAt = updated.ApprovedAt
	} else {
		result.Message = fmt.Sprintf("User %s rejected", updated.Email)
	}

	s.logger.Info("Approval decision applied",
		"approver_uid", approver.UID, "target_uid", updated.UID, "approved", req.Approved)

	return result, nil
}

func (s *approvalService) GetPendingUsers(ctx context.Context, approverUID string) ([]*models.User, error) {
	approver, err := s.repo.User().GetByUID(ctx, approverUID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get approver: %w", err)
	}

	if !HasApprovalPermission(approver.Role) {
		return nil, NewPermissionError(approverUID, "", "user", "list_pending", "role has no approval authority")
	}

	filters := repositories.UserFilters{Roles: approvableRoles(approver.Role)}
	if !approver.Role.Canonical().IsSystemAdmin() {
		if approver.SchoolID == nil {
			// A department head without a school can approve nobody.
			return []*models.User{}, nil
		}
		filters.SchoolID = approver.SchoolID
	}

	candidates, err := s.repo.User().ListPending(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending users: %w", err)
	}

	// The scan is role and school scoped already; the per-user check is the
	// final word.
	pending := make([]*models.User, 0, len(candidates))
	for _, candidate := range candidates {
		if CanApprove(approver, candidate) {
			pending = append(pending, candidate)
		}
	}

	return pending, nil
}

func (s *approvalService) GetApprovalHistory(ctx context.Context, approverUID string, filters repositories.ApprovalLogFilters) (*ApprovalHistoryResponse, error) {
	approver, err := s.repo.User().GetByUID(ctx, approverUID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get approver: %w", err)
	}

	if !HasApprovalPermission(approver.Role) {
		return nil, NewPermissionError(approverUID, "", "approval_log", "read", "role has no approval authority")
	}

	entries, err := s.repo.ApprovalLog().ListByApprover(ctx, approverUID, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list approval history: %w", err)
	}

	total, err := s.repo.ApprovalLog().CountByApprover(ctx, approverUID, filters.Action)
	if err != nil {
		return nil, fmt.Errorf("failed to count approval history: %w", err)
	}

	return &ApprovalHistoryResponse{Entries: entries, Total: total}, nil
}

func (s *approvalService) GetApprovalStatistics(ctx context.Context, approverUID string) (*models.ApprovalStatistics, error) {
	approver, err := s.repo.User().GetByUID(ctx, approverUID)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUnauthorized
		}
		return nil, fmt.Errorf("failed to get approver: %w", err)
	}

	if !HasApprovalPermission(approver.Role) {
		return nil, NewPermissionError(approverUID, "", "approval_statistics", "read", "role has no approval authority")
	}

	pendingUsers, err := s.GetPendingUsers(ctx, approverUID)
	if err != nil {
		return nil, err
	}

	approvedAction := models.ApprovalActionApproved
	approved, err := s.repo.ApprovalLog().CountByApprover(ctx, approverUID, &approvedAction)
	if err != nil {
		return nil, fmt.Errorf("failed to count approvals: %w", err)
	}

	rejectedAction := models.ApprovalActionRejected
	rejected, err := s.repo.ApprovalLog().CountByApprover(ctx, approverUID, &rejectedAction)
	if err != nil {
		return nil, fmt.Errorf("failed to count rejections: %w", err)
	}

	return &models.ApprovalStatistics{
		PendingCount:   int64(len(pendingUsers)),
		ApprovedCount:  approved,
		RejectedCount:  rejected,
		TotalProcessed: approved + rejected,
	}, nil
}

func (s *approvalService) GetMyStatus(ctx context.Context, uid string) (*models.UserApprovalStatus, error) {
	user, err := s.repo.User().GetByUID(ctx, uid)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	return &models.UserApprovalStatus{
		UID:             user.UID,
		Email:           user.Email,
		Role:            user.Role.Canonical(),
		IsApproved:      user.IsApproved,
		IsActive:        user.IsActive,
		IsPending:       user.IsPending(),
		ApprovedBy:      user.ApprovedBy,
		ApprovedAt:      user.ApprovedAt,
		RejectedAt:      user.RejectedAt,
		RejectionReason: user.RejectionReason,
		RegisteredAt:    user.CreatedAt,
	}, nil
}

func (s *approvalService) GetRules() *models.ApprovalRules {
	return ApprovalRulesDescription()
}

// appendAuditLog records the decision. The user state is already settled at
// this point, so a log failure must not fail the request.
func (s *approvalService) appendAuditLog(ctx context.Context, approver, target *models.User, req *ApprovalRequest, decidedAt time.Time) {
	action := models.ApprovalActionApproved
	if !req.Approved {
		action = models.ApprovalActionRejected
	}

	metadata, _ := json.Marshal(map[string]interface{}{
		"approver_role": approver.Role.Canonical(),
		"target_role":   target.Role.Canonical(),
		"same_school":   SameSchool(approver, target),
	})

	entry := &models.ApprovalLog{
		ApproverUID:  approver.UID,
		ApproverRole: approver.Role.Canonical(),
		TargetUID:    target.UID,
		TargetEmail:  target.Email,
		TargetRole:   target.Role.Canonical(),
		Action:       action,
		Reason:       req.RejectionReason,
		SchoolID:     target.SchoolID,
		Metadata:     datatypes.JSON(metadata),
		CreatedAt:    decidedAt,
	}

	if err := s.repo.ApprovalLog().Append(ctx, entry); err != nil {
		s.logger.Warn("Failed to append approval log",
			"error", err, "approver_uid", approver.UID, "target_uid", target.UID)
	}
}

// publishDecision emits the outcome event. Best-effort.
func (s *approvalService) publishDecision(ctx context.Context, approver, target *models.User, req *ApprovalRequest, decidedAt time.Time) {
	var event events.Event
	if req.Approved {
		event = events.NewEvent(events.EventUserApproved, events.UserApprovedEvent{
			UID:        target.UID,
			Email:      target.Email,
			Role:       string(target.Role.Canonical()),
			ApprovedBy: approver.UID,
			ApprovedAt: decidedAt,
		})
	} else {
		reason := ""
		if req.RejectionReason != nil {
			reason = *req.RejectionReason
		}
		event = events.NewEvent(events.EventUserRejected, events.UserRejectedEvent{
			UID:        target.UID,
			Email:      target.Email,
			Role:       string(target.Role.Canonical()),
			RejectedBy: approver.UID,
			Reason:     reason,
			RejectedAt: decidedAt,
		})
	}

	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish decision event",
			"error", err, "event_type", event.Type, "target_uid", target.UID)
	}
}
