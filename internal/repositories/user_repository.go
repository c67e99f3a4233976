package repositories

import (
	"context"
	"time"

	"github.com/SAP-F-2025/admission-service/internal/models"
)

// UserFilters defines filters for user queries. Nil pointers mean "no
// constraint".
type UserFilters struct {
	Roles    []models.UserRole // canonical roles
	SchoolID *string
	Pending  *bool // undecided users
	Approved *bool
	Rejected *bool // decided and not approved
	Search   string
	Limit    int
	Offset   int
}

// DecideParams carries one approval decision to the store.
type DecideParams struct {
	TargetUID   string
	Approved    bool
	ApproverUID string
	Reason      *string
	DecidedAt   time.Time
}

// UserRepository owns user records and their approval state.
type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByUID(ctx context.Context, uid string) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)

	List(ctx context.Context, filters UserFilters) ([]*models.User, int64, error)

	// ListPending returns undecided users matching the filters, oldest
	// registration first.
	ListPending(ctx context.Context, filters UserFilters) ([]*models.User, error)

	// Decide applies one approval decision atomically: the write is
	// conditional on the target still being undecided and returns
	// ErrAlreadyDecided when the precondition fails. Returns the updated
	// record on success.
	Decide(ctx context.Context, params DecideParams) (*models.User, error)

	Count(ctx context.Context, filters UserFilters) (int64, error)
	ExistsByEmail(ctx context.Context, email string) (bool, error)
	ExistsByUsername(ctx context.Context, username string) (bool, error)
}
