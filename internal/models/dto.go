package models

// ===== REQUEST DTOs =====

type ApprovalRequest struct {
	UserUID         string  `json:"user_uid" validate:"required,max=255"`
	Approved        bool    `json:"approved"`
	RejectionReason *string `json:"rejection_reason" validate:"omitempty,min=3,max=500"`
}

type RegisterUserRequest struct {
	Username          string   `json:"username" validate:"required,min=3,max=100"`
	Email             string   `json:"email" validate:"required,email,max=255"`
	FullName          string   `json:"full_name" validate:"required,min=1,max=100"`
	Role              UserRole `json:"role" validate:"required,selectable_role"`
	SchoolID          *string  `json:"school_id" validate:"omitempty,max=255"`
	Grade             *int     `json:"grade" validate:"omitempty,min=1,max=12"`
	ClassNumber       *int     `json:"class_number" validate:"omitempty,min=1,max=20"`
	IsHomeroomTeacher *bool    `json:"is_homeroom_teacher"`
}

type SchoolCreateRequest struct {
	ID                   string           `json:"id" validate:"required,max=255"`
	Name                 string           `json:"name" validate:"required,min=1,max=200"`
	Region               string           `json:"region" validate:"omitempty,max=100"`
	Address              string           `json:"address" validate:"omitempty,max=300"`
	TotalQuota           int              `json:"total_quota" validate:"min=0"`
	PriorityWithinQuota  int              `json:"priority_within_quota" validate:"min=0"`
	PriorityOutsideQuota int              `json:"priority_outside_quota" validate:"min=0"`
	GenderType           SchoolGenderType `json:"gender_type" validate:"omitempty,school_gender_type"`
	IsLevelized          bool             `json:"is_levelized"`
}

type SchoolUpdateRequest struct {
	Name        *string           `json:"name" validate:"omitempty,min=1,max=200"`
	Region      *string           `json:"region" validate:"omitempty,max=100"`
	Address     *string           `json:"address" validate:"omitempty,max=300"`
	GenderType  *SchoolGenderType `json:"gender_type" validate:"omitempty,school_gender_type"`
	IsLevelized *bool             `json:"is_levelized"`
}

type SchoolQuotaUpdateRequest struct {
	TotalQuota           *int `json:"total_quota" validate:"omitempty,min=0"`
	PriorityWithinQuota  *int `json:"priority_within_quota" validate:"omitempty,min=0"`
	PriorityOutsideQuota *int `json:"priority_outside_quota" validate:"omitempty,min=0"`
}

type ListUsersParams struct {
	Role     UserRole `json:"role" validate:"omitempty,user_role"`
	SchoolID *string  `json:"school_id"`
	Search   string   `json:"search" validate:"omitempty,max=100"`
	Pending  *bool    `json:"pending"`
}

// ===== RESPONSE DTOs =====

type UserListResponse struct {
	Users []*User `json:"users"`
	Total int64   `json:"total"`
}

type SchoolListResponse struct {
	Schools []*School `json:"schools"`
	Total   int64     `json:"total"`
}
