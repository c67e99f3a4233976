package models

import (
	"testing"
	"time"
)

func TestUserRoleCanonical(t *testing.T) {
	tests := []struct {
		role UserRole
		want UserRole
	}{
		{RoleHeadTeacherLegacy, RoleDepartmentHead},
		{RoleThirdGradeHomeroomOld, RoleHomeroomTeacher},
		{RoleDepartmentHead, RoleDepartmentHead},
		{RoleStudent, RoleStudent},
		{RoleAdmin, RoleAdmin},
	}
	for _, tt := range tests {
		if got := tt.role.Canonical(); got != tt.want {
			t.Errorf("Canonical(%s) = %s, want %s", tt.role, got, tt.want)
		}
	}
}

func TestUserRoleGroups(t *testing.T) {
	if !RoleHeadTeacherLegacy.IsApprovalRole() {
		t.Error("Legacy head_teacher must count as an approval role")
	}
	if RoleStudent.IsApprovalRole() {
		t.Error("Students must not be approval roles")
	}
	if RoleAdmin.IsSelectable() {
		t.Error("Admin must not be selectable at registration")
	}
	if !RoleThirdGradeHomeroomOld.IsSelectable() {
		t.Error("Legacy homeroom alias must remain selectable")
	}
	if !RoleDeveloper.IsSystemAdmin() || !RoleAdmin.IsSystemAdmin() {
		t.Error("Developer and admin are the system admin roles")
	}
	if RoleDepartmentHead.IsSystemAdmin() {
		t.Error("Department head is not a system admin")
	}
}

func TestUserRoleIsValid(t *testing.T) {
	for _, role := range []UserRole{
		RoleDeveloper, RoleAdmin, RoleDepartmentHead, RoleHomeroomTeacher,
		RoleGeneralTeacher, RoleStudent, RoleHeadTeacherLegacy, RoleThirdGradeHomeroomOld,
	} {
		if !role.IsValid() {
			t.Errorf("Role %s must be valid", role)
		}
	}
	if UserRole("principal").IsValid() {
		t.Error("Unknown role must be invalid")
	}
}

func TestUserIsPending(t *testing.T) {
	user := &User{}
	if !user.IsPending() {
		t.Error("Undecided user must be pending")
	}

	now := time.Now()
	approved := &User{IsApproved: true, DecidedAt: &now}
	if approved.IsPending() {
		t.Error("Approved user must not be pending")
	}

	rejected := &User{IsApproved: false, DecidedAt: &now}
	if rejected.IsPending() {
		t.Error("Rejected user must not be pending")
	}
}

func TestSchoolRecalculateCompetitionQuota(t *testing.T) {
	school := &School{TotalQuota: 100, PriorityWithinQuota: 30, PriorityOutsideQuota: 20}
	school.RecalculateCompetitionQuota()
	if school.ActualCompetitionQuota != 50 {
		t.Errorf("Expected 50, got %d", school.ActualCompetitionQuota)
	}

	// Never negative, even on inconsistent data.
	school = &School{TotalQuota: 10, PriorityWithinQuota: 20, PriorityOutsideQuota: 20}
	school.RecalculateCompetitionQuota()
	if school.ActualCompetitionQuota != 0 {
		t.Errorf("Expected clamp at 0, got %d", school.ActualCompetitionQuota)
	}
}
