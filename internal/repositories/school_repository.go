package repositories

import (
	"context"

	"github.com/SAP-F-2025/admission-service/internal/models"
)

type SchoolFilters struct {
	Region string
	Search string
	Limit  int
	Offset int
}

type SchoolRepository interface {
	Create(ctx context.Context, school *models.School) error
	GetByID(ctx context.Context, id string) (*models.School, error)
	List(ctx context.Context, filters SchoolFilters) ([]*models.School, int64, error)
	Update(ctx context.Context, school *models.School) error
	Delete(ctx context.Context, id string) error
	ExistsByID(ctx context.Context, id string) (bool, error)
}
