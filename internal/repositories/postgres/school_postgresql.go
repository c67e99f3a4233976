package postgres

import (
	"context"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/admission-service/internal/cache"
	"github.com/SAP-F-2025/admission-service/internal/models"
	"github.com/SAP-F-2025/admission-service/internal/repositories"
)

type schoolRepository struct {
	db    *gorm.DB
	cache *cache.CacheManager
}

func NewSchoolPostgreSQL(db *gorm.DB, cacheManager *cache.CacheManager) repositories.SchoolRepository {
	return &schoolRepository{db: db, cache: cacheManager}
}

func (r *schoolRepository) Create(ctx context.Context, school *models.School) error {
	if err := r.db.WithContext(ctx).Create(school).Error; err != nil {
		return handleDBError(err, "create school")
	}
	_ = r.cache.InvalidateSchool(ctx, school.ID)
	return nil
}

func (r *schoolRepository) GetByID(ctx context.Context, id string) (*models.School, error) {
	var school models.School
	err := r.cache.School.CacheOrExecute(ctx, "id:"+id, &school, cache.SchoolCacheConfig.TTL, func() (interface{}, error) {
		var s models.School
		if err := r.db.WithContext(ctx).Where("id = ?", id).First(&s).Error; err != nil {
			return nil, handleDBError(err, "get school by id")
		}
		return &s, nil
	})
	if err != nil {
		return nil, err
	}
	return &school, nil
}

func (r *schoolRepository) List(ctx context.Context, filters repositories.SchoolFilters) ([]*models.School, int64, error) {
	var schools []*models.School
	var total int64

	query := r.db.WithContext(ctx).Model(&models.School{})
	if filters.Region != "" {
		query = query.Where("region = ?", filters.Region)
	}
	if filters.Search != "" {
		query = query.Where("name ILIKE ?", "%"+filters.Search+"%")
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, handleDBError(err, "count schools")
	}

	query = applyPagination(query.Order("name ASC"), filters.Limit, filters.Offset)
	if err := query.Find(&schools).Error; err != nil {
		return nil, 0, handleDBError(err, "list schools")
	}

	return schools, total, nil
}

func (r *schoolRepository) Update(ctx context.Context, school *models.School) error {
	if err := r.db.WithContext(ctx).Save(school).Error; err != nil {
		return handleDBError(err, "update school")
	}
	_ = r.cache.InvalidateSchool(ctx, school.ID)
	return nil
}

func (r *schoolRepository) Delete(ctx context.Context, id string) error {
	result := r.db.WithContext(ctx).Delete(&models.School{}, "id = ?", id)
	if result.Error != nil {
		return handleDBError(result.Error, "delete school")
	}
	if result.RowsAffected == 0 {
		return repositories.ErrNotFound
	}
	_ = r.cache.InvalidateSchool(ctx, id)
	return nil
}

func (r *schoolRepository) ExistsByID(ctx context.Context, id string) (bool, error) {
	var count int64
	if err := r.db.WithContext(ctx).Model(&models.School{}).Where("id = ?", id).Count(&count).Error; err != nil {
		return false, handleDBError(err, "check school exists")
	}
	return count > 0, nil
}
