package postgres

import (
	"context"
	"fmt"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/admission-service/internal/cache"
	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
)

type userRepository struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewUserPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.UserRepository {
	return &userRepository{db: db, cache: cacheManager}
}

// ===== BASIC CRUD OPERATIONS =====

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return handleDBError(err, "create user")
	}
	r.invalidate(ctx, user.UID, user.Email, user.Username)
	return nil
}

func (r *userRepository) GetByUID(ctx context.Context, uid string) (*models.User, error) {
	var user models.User
	err := r.cache.User.CacheOrExecute(ctx, "uid:"+uid, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var u models.User
		if err := r.db.WithContext(ctx).Where("uid = ?", uid).First(&u).Error; err != nil {
			return nil, handleDBError(err, "get user by uid")
		}
		return &u, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

func (r *userRepository) GetByEmail(ctx context.Context, email string) (*models.User, error) {
	var user models.User
	err := r.cache.User.CacheOrExecute(ctx, "email:"+email, &user, cache.UserCacheConfig.TTL, func() (interface{}, error) {
		var u models.User
		if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
			return nil, handleDBError(err, "get user by email")
		}
		return &u, nil
	})
	if err != nil {
		return nil, err
	}
	return &user, nil
}

// ===== QUERY OPERATIONS =====

func (r *userRepository) List(ctx context.Context, filters repositories.UserFilters) ([]*models.User, int64, error) {
	var users []*models.User
	var total int64

	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.User{}), filters)

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count users")
	}

	query = applyPagination(query.Order("created_at DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&users).Error; err != nil {
		return nil, 0, handleDBError(err, "list users")
	}

	return users, total, nil
}

func (r *userRepository) ListPending(ctx context.Context, filters repositories.UserFilters) ([]*models.User, error) {
	pending := true
	filters.Pending = &pending

	var users []*models.User
	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.User{}), filters)

	// Oldest registrations first so nobody waits behind newer ones.
	query = applyPagination(query.Order("created_at ASC"), filters.Limit, filters.Offset)
	if err := query.Find(&users).Error; err != nil {
		return nil, handleDBError(err, "list pending users")
	}

	return users, nil
}

func (r *userRepository) Count(ctx context.Context, filters repositories.UserFilters) (int64, error) {
	var total int64
	query := r.applyFilters(r.db.WithContext(ctx).Model(&models.User{}), filters)
	if err := query.Count(&total).Error; err != nil {
		return 0, handleDBError(err, "count users")
	}
	return total, nil
}

func (r *userRepository) ExistsByEmail(ctx context.Context, email string) (bool, error) {
	return r.exists(ctx, "email", email)
}

func (r *userRepository) ExistsByUsername(ctx context.Context, username string) (bool, error) {
	return r.exists(ctx, "username", username)
}

// ===== DECISION =====

// Decide applies one approval decision. The UPDATE carries the undecided
// precondition in its WHERE clause, so two concurrent approvers cannot both
// win: the loser's write matches zero rows and comes back ErrAlreadyDecided.
func (r *userRepository) Decide(ctx context.Context, params repositories.DecideParams) (*models.User, error) {
	updates := map[string]interface{}{
		"decided_at": params.DecidedAt,
		"updated_at": params.DecidedAt,
	}
	if params.Approved {
		updates["is_approved"] = true
		updates["approved_by"] = params.ApproverUID
		updates["approved_at"] = params.DecidedAt
	} else {
		updates["is_active"] = false
		updates["approved_by"] = params.ApproverUID
		updates["rejected_at"] = params.DecidedAt
		updates["rejection_reason"] = params.Reason
	}

	result := r.db.WithContext(ctx).Model(&models.User{}).
		Where("uid = ? AND is_approved = ? AND decided_at IS NULL", params.TargetUID, false).
		Updates(updates)
	if result.Error != nil {
		return nil, handleDBError(result.Error, "decide user")
	}

	if result.RowsAffected == 0 {
		// Zero rows means the user is gone or already settled.
		var existing models.User
		if err := r.db.WithContext(ctx).Where("uid = ?", params.TargetUID).First(&existing).Error; err != nil {
			return nil, handleDBError(err, "decide user lookup")
		}
		return nil, repositories.ErrAlreadyDecided
	}

	var updated models.User
	if err := r.db.WithContext(ctx).Where("uid = ?", params.TargetUID).First(&updated).Error; err != nil {
		return nil, handleDBError(err, "reload decided user")
	}

	r.invalidate(ctx, updated.UID, updated.Email, updated.Username)
	return &updated, nil
}

// ===== HELPERS =====

func (r *userRepository) applyFilters(query *gorm.DB, filters repositories.UserFilters) *gorm.DB {
	if len(filters.Roles) > 0 {
		// Legacy alias rows must match their canonical role filter.
		expanded := make([]models.UserRole, 0, len(filters.Roles))
		for _, role := range filters.Roles {
			expanded = append(expanded, role)
			switch role {
			case models.RoleDepartmentHead:
				expanded = append(expanded, models.RoleHeadTeacherLegacy)
			case models.RoleHomeroomTeacher:
				expanded = append(expanded, models.RoleThirdGradeHomeroomOld)
			}
		}
		query = query.Where("role IN ?", expanded)
	}
	if filters.SchoolID != nil {
		query = query.Where("school_id = ?", *filters.SchoolID)
	}
	if filters.Pending != nil && *filters.Pending {
		query = query.Where("is_approved = ? AND decided_at IS NULL", false)
	}
	if filters.Approved != nil && *filters.Approved {
		query = query.Where("is_approved = ?", true)
	}
	if filters.Rejected != nil && *filters.Rejected {
		query = query.Where("is_approved = ? AND decided_at IS NOT NULL", false)
	}
	if filters.Search != "" {
		like := "%" + filters.Search + "%"
		query = query.Where("full_name ILIKE ? OR email ILIKE ? OR username ILIKE ?", like, like, like)
	}
	return query
}

func (r *userRepository) exists(ctx context.Context, column, value string) (bool, error) {
	cacheKey := fmt.Sprintf("%s:%s", column, value)

	var found bool
	err := r.cache.Exists.CacheOrExecute(ctx, cacheKey, &found, cache.ExistsCacheConfig.TTL, func() (interface{}, error) {
		var count int64
		if err := r.db.WithContext(ctx).Model(&models.User{}).Where(column+" = ?", value).Count(&count).Error; err != nil {
			return nil, handleDBError(err, "check user exists")
		}
		return count > 0, nil
	})
	if err != nil {
		return false, err
	}
	return found, nil
}

func (r *userRepository) invalidate(ctx context.Context, uid, email, username string) {
	// Cache invalidation failures must never surface to callers.
	_ = r.cache.InvalidateUser(ctx, uid, email, username)
}
