package postgres

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/SAP-F-2025/admission-service/internal/cache"
	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
)

type approvalLogRepository struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewApprovalLogPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.ApprovalLogRepository {
	return &approvalLogRepository{db: db, cache: cacheManager}
}

func (r *approvalLogRepository) Append(ctx context.Context, entry *models.ApprovalLog) error {
	if entry.ID == "" {
		entry.ID = uuid.New().String()
	}
	if err := r.db.WithContext(ctx).Create(entry).Error; err != nil {
		return handleDBError(err, "append approval log")
	}
	// New entries change the approver's counts immediately, ahead of the TTL.
	_ = r.cache.Stats.Delete(ctx,
		countCacheKey(entry.ApproverUID, nil),
		countCacheKey(entry.ApproverUID, &entry.Action),
	)
	return nil
}

func (r *approvalLogRepository) ListByApprover(ctx context.Context, approverUID string, filters repositories.ApprovalLogFilters) ([]*models.ApprovalLog, error) {
	var entries []*models.ApprovalLog

	query := r.db.WithContext(ctx).Model(&models.ApprovalLog{}).
		Where("approver_uid = ?", approverUID)
	if filters.Action != nil {
		query = query.Where("action = ?", *filters.Action)
	}

	query = applyPagination(query.Order("created_at DESC"), filters.Limit, filters.Offset)
	if err := query.Find(&entries).Error; err != nil {
		return nil, handleDBError(err, "list approval logs by approver")
	}

	return entries, nil
}

func (r *approvalLogRepository) ListByTarget(ctx context.Context, targetUID string) ([]*models.ApprovalLog, error) {
	var entries []*models.ApprovalLog

	if err := r.db.WithContext(ctx).
		Where("target_uid = ?", targetUID).
		Order("created_at DESC").
		Find(&entries).Error; err != nil {
		return nil, handleDBError(err, "list approval logs by target")
	}

	return entries, nil
}

func (r *approvalLogRepository) CountByApprover(ctx context.Context, approverUID string, action *models.ApprovalAction) (int64, error) {
	var total int64
	err := r.cache.Stats.CacheOrExecute(ctx, countCacheKey(approverUID, action), &total, cache.StatsCacheConfig.TTL, func() (interface{}, error) {
		var count int64
		query := r.db.WithContext(ctx).Model(&models.ApprovalLog{}).
			Where("approver_uid = ?", approverUID)
		if action != nil {
			query = query.Where("action = ?", *action)
		}
		if err := query.Count(&count).Error; err != nil {
			return nil, handleDBError(err, "count approval logs")
		}
		return count, nil
	})
	if err != nil {
		return 0, err
	}
	return total, nil
}

func countCacheKey(approverUID string, action *models.ApprovalAction) string {
	if action == nil {
		return "approver:" + approverUID + ":all"
	}
	return "approver:" + approverUID + ":" + string(*action)
}
