package models

import (
	"time"

	"gorm.io/gorm"
)

type SchoolGenderType string

const (
	SchoolGenderCoed  SchoolGenderType = "coed"
	SchoolGenderBoys  SchoolGenderType = "boys"
	SchoolGenderGirls SchoolGenderType = "girls"
)

// School is an admission unit. Quota fields drive the admission competition:
// the actual competition quota is the total minus the priority allocations
// and is recomputed whenever quotas change, never written directly.
type School struct {
	ID      string `json:"id" gorm:"primaryKey;size:255"`
	Name    string `json:"name" gorm:"uniqueIndex;not null;size:200"`
	Region  string `json:"region" gorm:"size:100;index"`
	Address string `json:"address" gorm:"size:300"`

	TotalQuota             int              `json:"total_quota" gorm:"default:0"`
	PriorityWithinQuota    int              `json:"priority_within_quota" gorm:"default:0"`
	PriorityOutsideQuota   int              `json:"priority_outside_quota" gorm:"default:0"`
	ActualCompetitionQuota int              `json:"actual_competition_quota" gorm:"default:0"`
	GenderType             SchoolGenderType `json:"gender_type" gorm:"size:16;default:'coed'"`
	IsLevelized            bool             `json:"is_levelized" gorm:"default:false"`

	CreatedAt time.Time      `json:"created_at"`
	UpdatedAt time.Time      `json:"updated_at"`
	DeletedAt gorm.DeletedAt `json:"-" gorm:"index"`
}

func (School) TableName() string {
	return "schools"
}

// RecalculateCompetitionQuota derives the open competition quota from the
// total and the priority allocations. Clamped at zero.
func (s *School) RecalculateCompetitionQuota() {
	q := s.TotalQuota - s.PriorityWithinQuota - s.PriorityOutsideQuota
	if q < 0 {
		q = 0
	}
	s.ActualCompetitionQuota = q
}
