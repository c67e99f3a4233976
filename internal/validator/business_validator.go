package validator

import (
	"strings"

	"github.com/SAP-F-2025/admission-service/internal/models"
)

const (
	homeroomGrade   = 3
	maxClassNumber  = 20
	minRejectionLen = 3
	maxRejectionLen = 500
)

// ValidateRegistration checks the role-conditional field rules on top of the
// struct tags. Which fields a registrant must or must not provide depends on
// the role they picked.
func (v *Validator) ValidateRegistration(req *models.RegisterUserRequest) ValidationErrors {
	errors := v.Validate(req)

	switch req.Role.Canonical() {
	case models.RoleDepartmentHead:
		// A department head must say whether they also run a homeroom; the
		// answer decides which classes they can be assigned later.
		if req.IsHomeroomTeacher == nil {
			errors = append(errors, ValidationError{
				Field:   "is_homeroom_teacher",
				Message: "department heads must state whether they are a homeroom teacher",
				Rule:    "role_fields",
			})
		} else if *req.IsHomeroomTeacher {
			errors = append(errors, v.validateHomeroomAssignment(req)...)
		}
	case models.RoleHomeroomTeacher:
		errors = append(errors, v.validateHomeroomAssignment(req)...)
	case models.RoleGeneralTeacher:
		if req.Grade != nil || req.ClassNumber != nil {
			errors = append(errors, ValidationError{
				Field:   "class_number",
				Message: "general teachers must not carry a class assignment",
				Rule:    "role_fields",
			})
		}
	}

	if !req.Role.Canonical().IsSystemAdmin() && req.SchoolID == nil {
		errors = append(errors, ValidationError{
			Field:   "school_id",
			Message: "is required for this role",
			Rule:    "role_fields",
		})
	}

	return errors
}

func (v *Validator) validateHomeroomAssignment(req *models.RegisterUserRequest) ValidationErrors {
	var errors ValidationErrors

	if req.Grade == nil || *req.Grade != homeroomGrade {
		errors = append(errors, ValidationError{
			Field:   "grade",
			Message: "homeroom assignments are limited to grade 3",
			Value:   req.Grade,
			Rule:    "role_fields",
		})
	}
	if req.ClassNumber == nil || *req.ClassNumber < 1 || *req.ClassNumber > maxClassNumber {
		errors = append(errors, ValidationError{
			Field:   "class_number",
			Message: "must be between 1 and 20",
			Value:   req.ClassNumber,
			Rule:    "role_fields",
		})
	}

	return errors
}

// ValidateApprovalRequest checks decision payload rules: a rejection must
// carry a reason, an approval must not.
func (v *Validator) ValidateApprovalRequest(req *models.ApprovalRequest) ValidationErrors {
	errors := v.Validate(req)

	if !req.Approved {
		reason := ""
		if req.RejectionReason != nil {
			reason = strings.TrimSpace(*req.RejectionReason)
		}
		if len(reason) < minRejectionLen || len(reason) > maxRejectionLen {
			errors = append(errors, ValidationError{
				Field:   "rejection_reason",
				Message: "a reason between 3 and 500 characters is required when rejecting",
				Rule:    "rejection_reason",
			})
		}
	} else if req.RejectionReason != nil {
		errors = append(errors, ValidationError{
			Field:   "rejection_reason",
			Message: "must not be set when approving",
			Rule:    "rejection_reason",
		})
	}

	return errors
}

// ValidateQuotaUpdate ensures the priority allocations fit inside the total.
func (v *Validator) ValidateQuotaUpdate(req *models.SchoolQuotaUpdateRequest, existing *models.School) ValidationErrors {
	errors := v.Validate(req)

	total := existing.TotalQuota
	within := existing.PriorityWithinQuota
	outside := existing.PriorityOutsideQuota
	if req.TotalQuota != nil {
		total = *req.TotalQuota
	}
	if req.PriorityWithinQuota != nil {
		within = *req.PriorityWithinQuota
	}
	if req.PriorityOutsideQuota != nil {
		outside = *req.PriorityOutsideQuota
	}

	if within+outside > total {
		errors = append(errors, ValidationError{
			Field:   "total_quota",
			Message: "priority allocations exceed the total quota",
			Value:   total,
			Rule:    "quota_balance",
		})
	}

	return errors
}
