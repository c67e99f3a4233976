package services

import (
	"testing"

	"github.com/SAP-F-2025/admission-service/internal/models"
)

func userWithRole(role models.UserRole, schoolID *string) *models.User {
	return &models.User{UID: string(role), Role: role, SchoolID: schoolID}
}

func TestCanApprove(t *testing.T) {
	schoolA := "school-a"
	schoolB := "school-b"

	tests := []struct {
		name     string
		approver *models.User
		target   *models.User
		want     bool
	}{
		{
			name:     "DeveloperApprovesDepartmentHead",
			approver: userWithRole(models.RoleDeveloper, nil),
			target:   userWithRole(models.RoleDepartmentHead, &schoolA),
			want:     true,
		},
		{
			name:     "AdminApprovesDepartmentHeadAnySchool",
			approver: userWithRole(models.RoleAdmin, &schoolA),
			target:   userWithRole(models.RoleDepartmentHead, &schoolB),
			want:     true,
		},
		{
			name:     "AdminCannotApproveTeacher",
			approver: userWithRole(models.RoleAdmin, nil),
			target:   userWithRole(models.RoleGeneralTeacher, &schoolA),
			want:     false,
		},
		{
			name:     "AdminCannotApproveStudent",
			approver: userWithRole(models.RoleAdmin, nil),
			target:   userWithRole(models.RoleStudent, &schoolA),
			want:     false,
		},
		{
			name:     "DepartmentHeadApprovesHomeroomTeacherSameSchool",
			approver: userWithRole(models.RoleDepartmentHead, &schoolA),
			target:   userWithRole(models.RoleHomeroomTeacher, &schoolA),
			want:     true,
		},
		{
			name:     "DepartmentHeadApprovesGeneralTeacherSameSchool",
			approver: userWithRole(models.RoleDepartmentHead, &schoolA),
			target:   userWithRole(models.RoleGeneralTeacher, &schoolA),
			want:     true,
		},
		{
			name:     "DepartmentHeadDeniedAcrossSchools",
			approver: userWithRole(models.RoleDepartmentHead, &schoolA),
			target:   userWithRole(models.RoleGeneralTeacher, &schoolB),
			want:     false,
		},
		{
			name:     "DepartmentHeadWithoutSchoolDenied",
			approver: userWithRole(models.RoleDepartmentHead, nil),
			target:   userWithRole(models.RoleGeneralTeacher, &schoolA),
			want:     false,
		},
		{
			name:     "DepartmentHeadCannotApproveDepartmentHead",
			approver: userWithRole(models.RoleDepartmentHead, &schoolA),
			target:   userWithRole(models.RoleDepartmentHead, &schoolA),
			want:     false,
		},
		{
			name:     "DepartmentHeadCannotApproveStudent",
			approver: userWithRole(models.RoleDepartmentHead, &schoolA),
			target:   userWithRole(models.RoleStudent, &schoolA),
			want:     false,
		},
		{
			name:     "TeacherCannotApprove",
			approver: userWithRole(models.RoleGeneralTeacher, &schoolA),
			target:   userWithRole(models.RoleStudent, &schoolA),
			want:     false,
		},
		{
			name:     "StudentCannotApprove",
			approver: userWithRole(models.RoleStudent, &schoolA),
			target:   userWithRole(models.RoleStudent, &schoolA),
			want:     false,
		},
		{
			name:     "LegacyHeadTeacherActsAsDepartmentHead",
			approver: userWithRole(models.RoleHeadTeacherLegacy, &schoolA),
			target:   userWithRole(models.RoleGeneralTeacher, &schoolA),
			want:     true,
		},
		{
			name:     "LegacyHomeroomTargetApprovable",
			approver: userWithRole(models.RoleDepartmentHead, &schoolA),
			target:   userWithRole(models.RoleThirdGradeHomeroomOld, &schoolA),
			want:     true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := CanApprove(tt.approver, tt.target); got != tt.want {
				t.Errorf("CanApprove(%s, %s) = %v, want %v",
					tt.approver.Role, tt.target.Role, got, tt.want)
			}
		})
	}
}

func TestSameSchool(t *testing.T) {
	schoolA := "school-a"

	t.Run("NilSchoolNeverMatches", func(t *testing.T) {
		admin := userWithRole(models.RoleAdmin, nil)
		head := userWithRole(models.RoleDepartmentHead, &schoolA)
		if SameSchool(admin, head) {
			t.Error("A user without a school must not match anyone")
		}
		if SameSchool(admin, admin) {
			t.Error("Two users without schools must not match each other")
		}
	})

	t.Run("SameIDMatches", func(t *testing.T) {
		a := userWithRole(models.RoleDepartmentHead, &schoolA)
		b := userWithRole(models.RoleGeneralTeacher, &schoolA)
		if !SameSchool(a, b) {
			t.Error("Same school ID must match")
		}
	})
}

func TestHasApprovalPermission(t *testing.T) {
	approvers := []models.UserRole{
		models.RoleDeveloper,
		models.RoleAdmin,
		models.RoleDepartmentHead,
		models.RoleHeadTeacherLegacy,
	}
	for _, role := range approvers {
		if !HasApprovalPermission(role) {
			t.Errorf("Role %s must have approval permission", role)
		}
	}

	nonApprovers := []models.UserRole{
		models.RoleHomeroomTeacher,
		models.RoleGeneralTeacher,
		models.RoleStudent,
		models.RoleThirdGradeHomeroomOld,
	}
	for _, role := range nonApprovers {
		if HasApprovalPermission(role) {
			t.Errorf("Role %s must not have approval permission", role)
		}
	}
}

func TestApprovalRulesDescription(t *testing.T) {
	rules := ApprovalRulesDescription()

	if len(rules.Hierarchy) != 3 {
		t.Fatalf("Expected 3 hierarchy entries, got %d", len(rules.Hierarchy))
	}

	for _, entry := range rules.Hierarchy {
		switch entry.ApproverRole {
		case models.RoleDeveloper, models.RoleAdmin:
			if entry.SameSchool {
				t.Errorf("%s must approve across schools", entry.ApproverRole)
			}
		case models.RoleDepartmentHead:
			if !entry.SameSchool {
				t.Error("Department heads must be school-bound")
			}
		default:
			t.Errorf("Unexpected approver role in hierarchy: %s", entry.ApproverRole)
		}
	}
}
