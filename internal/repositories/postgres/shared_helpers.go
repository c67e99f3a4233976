package postgres

import (
	"errors"
	"fmt"
	"strings"

	"gorm.io/gorm"

	"github.com/SAP-F-2025/admission-service/internal/repositories"
)

// handleDBError translates GORM errors into repository sentinel errors so
// callers never import gorm.
func handleDBError(err error, op string) error {
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		return repositories.ErrNotFound
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return repositories.ErrDuplicate
	case strings.Contains(err.Error(), "duplicate key"):
		// postgres drivers without error translation still surface 23505
		// as a plain message
		return repositories.ErrDuplicate
	default:
		return fmt.Errorf("%s: %w", op, err)
	}
}

func applyPagination(query *gorm.DB, limit, offset int) *gorm.DB {
	if limit > 0 {
		query = query.Limit(limit)
	}
	if offset > 0 {
		query = query.Offset(offset)
	}
	return query
}
