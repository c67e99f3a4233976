package models

import (
	"time"

	"gorm.io/datatypes"
)

type ApprovalAction string

const (
	ApprovalActionApproved ApprovalAction = "approved"
	ApprovalActionRejected ApprovalAction = "rejected"
)

// ApprovalLog is the append-only audit trail of decisions. Rows are never
// updated or deleted after insert.
type ApprovalLog struct {
	ID           string         `json:"id" gorm:"primaryKey;size:36"`
	ApproverUID  string         `json:"approver_uid" gorm:"not null;size:255;index"`
	ApproverRole UserRole       `json:"approver_role" gorm:"not null;size:32"`
	TargetUID    string         `json:"target_uid" gorm:"not null;size:255;index"`
	TargetEmail  string         `json:"target_email" gorm:"size:255"`
	TargetRole   UserRole       `json:"target_role" gorm:"not null;size:32"`
	Action       ApprovalAction `json:"action" gorm:"not null;size:16"`
	Reason       *string        `json:"reason" gorm:"size:500"`
	SchoolID     *string        `json:"school_id" gorm:"size:255;index"`
	Metadata     datatypes.JSON `json:"metadata"`
	CreatedAt    time.Time      `json:"created_at" gorm:"index"`
}

func (ApprovalLog) TableName() string {
	return "approval_logs"
}

// ApprovalResult is the outcome returned to the caller of a decision.
type ApprovalResult struct {
	Success     bool       `json:"success"`
	Message     string     `json:"message"`
	TargetUID   string     `json:"target_uid"`
	TargetEmail string     `json:"target_email"`
	IsApproved  bool       `json:"is_approved"`
	ApprovedBy  string     `json:"approved_by"`
	ApprovedAt  *time.Time `json:"approved_at,omitempty"`
}

type ApprovalStatistics struct {
	PendingCount   int64 `json:"pending_count"`
	ApprovedCount  int64 `json:"approved_count"`
	RejectedCount  int64 `json:"rejected_count"`
	TotalProcessed int64 `json:"total_processed"`
}

// ApprovalRuleEntry describes one edge of the approval hierarchy for the
// public rules endpoint.
type ApprovalRuleEntry struct {
	ApproverRole UserRole   `json:"approver_role"`
	CanApprove   []UserRole `json:"can_approve"`
	SameSchool   bool       `json:"same_school_required"`
	Description  string     `json:"description"`
}

type ApprovalRules struct {
	Hierarchy []ApprovalRuleEntry `json:"hierarchy"`
	Notes     []string            `json:"notes"`
}

// UserApprovalStatus is the caller-facing view of their own standing.
type UserApprovalStatus struct {
	UID             string     `json:"uid"`
	Email           string     `json:"email"`
	Role            UserRole   `json:"role"`
	IsApproved      bool       `json:"is_approved"`
	IsActive        bool       `json:"is_active"`
	IsPending       bool       `json:"is_pending"`
	ApprovedBy      *string    `json:"approved_by,omitempty"`
	ApprovedAt      *time.Time `json:"approved_at,omitempty"`
	RejectedAt      *time.Time `json:"rejected_at,omitempty"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	RegisteredAt    time.Time  `json:"registered_at"`
}
