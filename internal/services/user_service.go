package services

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/admission-service/internal/events"
	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
	"github.com/SAP-F-2025/admission-service/internal/validator"
)

type userService struct {
	repo           repositories.Repository
	db             *gorm.DB
	logger         *slog.Logger
	validator      *validator.Validator
	eventPublisher events.EventPublisher
}

func NewUserService(repo repositories.Repository, db *gorm.DB, logger *slog.Logger, v *validator.Validator, publisher events.EventPublisher) UserService {
	return &userService{
		repo:           repo,
		db:             db,
		logger:         logger,
		validator:      v,
		eventPublisher: publisher,
	}
}

// Register creates a pending account. The caller picks a selectable role;
// system admin roles are provisioned out of band and rejected here.
func (s *userService) Register(ctx context.Context, req *RegisterUserRequest) (*models.User, error) {
	s.logger.Info("Registering user", "email", req.Email, "role", req.Role)

	if errs := s.validator.ValidateRegistration(req); len(errs) > 0 {
		return nil, errs
	}

	if req.SchoolID != nil {
		exists, err := s.repo.School().ExistsByID(ctx, *req.SchoolID)
		if err != nil {
			return nil, fmt.Errorf("failed to check school: %w", err)
		}
		if !exists {
			return nil, ErrSchoolNotFound
		}
	}

	if taken, err := s.repo.User().ExistsByEmail(ctx, req.Email); err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	} else if taken {
		return nil, ErrEmailTaken
	}
	if taken, err := s.repo.User().ExistsByUsername(ctx, req.Username); err != nil {
		return nil, fmt.Errorf("failed to check username: %w", err)
	} else if taken {
		return nil, ErrUsernameTaken
	}

	user := &models.User{
		UID:               uuid.New().String(),
		Username:          req.Username,
		Email:             req.Email,
		FullName:          req.FullName,
		Role:              req.Role.Canonical(),
		SchoolID:          req.SchoolID,
		Grade:             req.Grade,
		ClassNumber:       req.ClassNumber,
		IsHomeroomTeacher: req.IsHomeroomTeacher,
		IsActive:          true,
		IsApproved:        false,
	}

	if err := s.repo.User().Create(ctx, user); err != nil {
		if repositories.IsDuplicateError(err) {
			// Lost the race with a concurrent registration. Check which
			// unique column collided so the caller sees the right conflict.
			if _, lookupErr := s.repo.User().GetByEmail(ctx, req.Email); lookupErr == nil {
				return nil, ErrEmailTaken
			}
			return nil, ErrUsernameTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	event := events.NewEvent(events.EventUserRegistered, events.UserRegisteredEvent{
		UID:          user.UID,
		Email:        user.Email,
		Role:         string(user.Role),
		SchoolID:     user.SchoolID,
		RegisteredAt: user.CreatedAt,
	})
	if err := s.eventPublisher.Publish(ctx, event); err != nil {
		s.logger.Warn("Failed to publish registration event", "error", err, "uid", user.UID)
	}

	s.logger.Info("User registered", "uid", user.UID, "email", user.Email, "role", user.Role)
	return user, nil
}

func (s *userService) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	user, err := s.repo.User().GetByUID(ctx, uid)
	if err != nil {
		if repositories.IsNotFoundError(err) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", err)
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, filters repositories.UserFilters) (*models.UserListResponse, error) {
	users, total, err := s.repo.User().List(ctx, filters)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	return &models.UserListResponse{Users: users, Total: total}, nil
}

func (s *userService) Search(ctx context.Context, query string, filters repositories.UserFilters) (*models.UserListResponse, error) {
	filters.Search = query
	return s.List(ctx, filters)
}
