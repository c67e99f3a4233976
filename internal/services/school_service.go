package services

import (
	"context"
	"fmt"
	"log/slog"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"github.com/SAP-F-2025/admission-service/internal/validator"
)

type schoolService struct {
	repo      repositories.Repository
	db        *gorm.DB
	logger    *slog.Logger
	validator *validator.Validator
}

func NewSchoolService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator) SchoolService {
	return &schoolService{
		repo:      repo,
		db:        db,
		logger:    logger,
		validator: v,
	}
}

func (s *schoolService) Create(ctx context.Context, req *SchoolCreateRequest) (*models.School, error) {
	s.logger.Info("Creating school", "school_id", req.ID, "name", req.Name)

	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	genderType := req.GenderType
	if genderType == "" {
		genderType = models.SchoolGenderCoed
	}

	school := &models.School{
		ID:                   req.ID,
		Name:                 req.Name,
		Region:               req.Region,
		Address:              req.Address,
		TotalQuota:           req.TotalQuota,
		PriorityWithinQuota:  req.PriorityWithinQuota,
		PriorityOutsideQuota: req.PriorityOutsideQuota,
		GenderType:           genderType,
		IsLevelized:          req.IsLevelized,
	}
	school.RecalculateCompetitionQuota()

	if err := s.repo.School().Create(ctx, school); err != nil {
		if repositories.IsDuplicateError(err) {
			return nil, ErrSchoolExists
		}
		return nil, fmt.Errorf("failed to create school: %w", err)
	}

	return school, nil
}

func (s *schoolService) GetByID(ctx context.Context, id string) (*models.School, error) {
	school, err := s.repo.School().GetByID(ctx, id)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrSchoolNotFound
		}
		return nil, fmt.Errorf("failed to get school: %w", err)
	}
	return school, nil
}

func (s *schoolService) List(ctx context.Context, filters repositories.SchoolFilters) (*models.SchoolListResponse, error) {
	schools, total, err := s.repo.School().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list schools: %w", err)
	}
	return &models.SchoolListResponse{Schools: schools, Total: total}, nil
}

func (s *schoolService) Update(ctx context.Context, id string, req *SchoolUpdateRequest) (*models.School, error) {
	if errs := s.validator.Validate(req); len(errs) > 0 {
		return nil, errs
	}

	school, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		school.Name = *req.Name
	}
	if req.Region != nil {
		school.Region = *req.Region
	}
	if req.Address != nil {
		school.Address = *req.Address
	}
	if req.GenderType != nil {
		school.GenderType = *req.GenderType
	}
	if req.IsLevelized != nil {
		school.IsLevelized = *req.IsLevelized
	}

	if err := s.repo.School().Update(ctx, school); err != nil {
		return nil, fmt.Errorf("failed to update school: %w", err)
	}

	return school, nil
}

// UpdateQuotas changes the admission quota allocation and rederives the
// open competition quota.
func (s *schoolService) UpdateQuotas(ctx context.Context, id string, req *SchoolQuotaUpdateRequest) (*models.School, error) {
	school, err := s.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if errs := s.validator.ValidateQuotaUpdate(req, school); len(errs) > 0 {
		return nil, errs
	}

	if req.TotalQuota != nil {
		school.TotalQuota = *req.TotalQuota
	}
	if req.PriorityWithinQuota != nil {
		school.PriorityWithinQuota = *req.PriorityWithinQuota
	}
	if req.PriorityOutsideQuota != nil {
		school.PriorityOutsideQuota = *req.PriorityOutsideQuota
	}
	school.RecalculateCompetitionQuota()

	if err := s.repo.School().Update(ctx, school); err != nil {
		return nil, fmt.Errorf("failed to update school quotas: %w", err)
	}

	s.logger.Info("School quotas updated",
		"school_id", school.ID,
		"total_quota", school.TotalQuota,
		"competition_quota", school.ActualCompetitionQuota)

	return school, nil
}

func (s *schoolService) Delete(ctx context.Context, id string) error {
	if err := s.repo.School().Delete(ctx, id); err != nil {
		if repositories.IsNotFoundError(err) {
			return ErrSchoolNotFound
		}
		return fmt.Errorf("failed to delete school: %w", err)
	}
	return nil
}
