package models

import (
	"time"

	"gorm.io/gorm"
)

type UserRole string
type Role = UserRole // Alias for compatibility

const (
	RoleDeveloper       UserRole = "developer"
	RoleAdmin           UserRole = "admin"
	RoleDepartmentHead  UserRole = "department_head"
	RoleHomeroomTeacher UserRole = "homeroom_teacher"
	RoleGeneralTeacher  UserRole = "general_teacher"
	RoleStudent         UserRole = "student"

	// Deprecated role names kept for records created before the role split.
	// Policy code must never compare against these directly; use Canonical().
	RoleHeadTeacherLegacy     UserRole = "head_teacher"
	RoleThirdGradeHomeroomOld UserRole = "third_grade_homeroom"
)

// legacyAliases maps deprecated role names to their canonical replacement.
var legacyAliases = map[UserRole]UserRole{
	RoleHeadTeacherLegacy:     RoleDepartmentHead,
	RoleThirdGradeHomeroomOld: RoleHomeroomTeacher,
}

// Canonical resolves legacy alias roles to their current name.
// Canonical roles map to themselves.
func (r UserRole) Canonical() UserRole {
	if canonical, ok := legacyAliases[r]; ok {
		return canonical
	}
	return r
}

// IsValid reports whether the role is a known canonical or legacy role.
func (r UserRole) IsValid() bool {
	switch r.Canonical() {
	case RoleDeveloper, RoleAdmin, RoleDepartmentHead, RoleHomeroomTeacher, RoleGeneralTeacher, RoleStudent:
		return true
	}
	return false
}

// Role groups. Groups are not mutually exclusive.
var (
	// SystemAdminRoles can manage the whole platform and approve department heads.
	SystemAdminRoles = []UserRole{RoleDeveloper, RoleAdmin}

	// SelectableRoles are the roles a user may pick at self-registration.
	// System admin roles are provisioned out of band, never self-selected.
	SelectableRoles = []UserRole{RoleDepartmentHead, RoleHomeroomTeacher, RoleGeneralTeacher, RoleStudent}

	// ApprovalRoles are the roles permitted to approve at least one other role.
	ApprovalRoles = []UserRole{RoleDeveloper, RoleAdmin, RoleDepartmentHead}
)

func roleIn(role UserRole, group []UserRole) bool {
	canonical := role.Canonical()
	for _, r := range group {
		if canonical == r {
			return true
		}
	}
	return false
}

// IsSystemAdmin reports whether the role belongs to SystemAdminRoles.
func (r UserRole) IsSystemAdmin() bool {
	return roleIn(r, SystemAdminRoles)
}

// IsSelectable reports whether the role may be chosen at registration.
func (r UserRole) IsSelectable() bool {
	return roleIn(r, SelectableRoles)
}

// IsApprovalRole reports whether the role may approve other users.
func (r UserRole) IsApprovalRole() bool {
	return roleIn(r, ApprovalRoles)
}

// User is an account in the admission platform. A user is created pending
// (IsApproved=false) and is decided exactly once: approval sets IsApproved,
// rejection keeps IsApproved=false, forces IsActive=false and records the
// reason. DecidedAt is set on either outcome and guards against re-deciding.
type User struct {
	UID      string   `json:"uid" gorm:"primaryKey;size:255"`
	Username string   `json:"username" gorm:"uniqueIndex;not null;size:100"`
	Email    string   `json:"email" gorm:"uniqueIndex;not null;size:255"`
	FullName string   `json:"full_name" gorm:"size:100"`
	Role     UserRole `json:"role" gorm:"not null;size:32;index"`

	// School affiliation. Nullable: system admins have no school.
	SchoolID *string `json:"school_id" gorm:"size:255;index"`

	// Homeroom assignment (homeroom teachers, and department heads that
	// double as homeroom teachers).
	Grade             *int  `json:"grade"`
	ClassNumber       *int  `json:"class_number"`
	IsHomeroomTeacher *bool `json:"is_homeroom_teacher"`

	// Approval state
	IsActive        bool       `json:"is_active" gorm:"default:true"`
	IsApproved      bool       `json:"is_approved" gorm:"default:false;index"`
	ApprovedBy      *string    `json:"approved_by" gorm:"size:255"`
	ApprovedAt      *time.Time `json:"approved_at"`
	RejectedAt      *time.Time `json:"rejected_at"`
	RejectionReason *string    `json:"rejection_reason" gorm:"size:500"`
	DecidedAt       *time.Time `json:"decided_at" gorm:"index"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (User) TableName() string {
	return "users"
}

// IsPending reports whether the user is still awaiting a decision.
func (u *User) IsPending() bool {
	return !u.IsApproved && u.DecidedAt == nil
}
