package services

import "github.com/SAP-F-2025/admission-service/internal/models"

// The approval hierarchy is a fixed two-level table:
//
//	developer, admin     -> department_head        (any school)
//	department_head      -> homeroom_teacher,
//	                        general_teacher        (same school only)
//
// Nobody else approves anybody. The table is code, not configuration.

// HasApprovalPermission reports whether the role may approve anyone at all.
func HasApprovalPermission(role models.UserRole) bool {
	return role.IsApprovalRole()
}

// SameSchool reports whether both users belong to the same school. A user
// without a school (system admins) is never in the same school as anyone.
func SameSchool(approver, target *models.User) bool {
	if approver.SchoolID == nil || target.SchoolID == nil {
		return false
	}
	return *approver.SchoolID == *target.SchoolID
}

// CanApprove reports whether the approver may decide this target under the
// hierarchy, including the same-school constraint.
func CanApprove(approver, target *models.User) bool {
	approverRole := approver.Role.Canonical()
	targetRole := target.Role.Canonical()

	switch {
	case approverRole.IsSystemAdmin():
		return targetRole == models.RoleDepartmentHead
	case approverRole == models.RoleDepartmentHead:
		if targetRole != models.RoleHomeroomTeacher && targetRole != models.RoleGeneralTeacher {
			return false
		}
		return SameSchool(approver, target)
	default:
		return false
	}
}

// approvableRoles lists the target roles one approver role may decide.
func approvableRoles(role models.UserRole) []models.UserRole {
	switch {
	case role.Canonical().IsSystemAdmin():
		return []models.UserRole{models.RoleDepartmentHead}
	case role.Canonical() == models.RoleDepartmentHead:
		return []models.UserRole{models.RoleHomeroomTeacher, models.RoleGeneralTeacher}
	default:
		return nil
	}
}

// ApprovalRulesDescription is the static hierarchy served on the public
// rules endpoint.
func ApprovalRulesDescription() *models.ApprovalRules {
	return &models.ApprovalRules{
		Hierarchy: []models.ApprovalRuleEntry{
			{
				ApproverRole: models.RoleDeveloper,
				CanApprove:   []models.UserRole{models.RoleDepartmentHead},
				SameSchool:   false,
				Description:  "Developers approve department heads of any school",
			},
			{
				ApproverRole: models.RoleAdmin,
				CanApprove:   []models.UserRole{models.RoleDepartmentHead},
				SameSchool:   false,
				Description:  "Administrators approve department heads of any school",
			},
			{
				ApproverRole: models.RoleDepartmentHead,
				CanApprove:   []models.UserRole{models.RoleHomeroomTeacher, models.RoleGeneralTeacher},
				SameSchool:   true,
				Description:  "Department heads approve teachers of their own school",
			},
		},
		Notes: []string{
			"A user is decided at most once; the first decision is final.",
			"Rejection deactivates the account and records the reason.",
		},
	}
}
