package repositories

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("record not found")

	// ErrAlreadyDecided is returned when a decision targets a user whose
	// approval state has already been settled. The first decision wins.
	ErrAlreadyDecided = errors.New("user already decided")

	// ErrDuplicate is returned when an insert violates a uniqueness
	// constraint (email, username, school id).
	ErrDuplicate = errors.New("record already exists")
)

func IsNotFoundError(err error) bool {
	return errors.Is(err, ErrNotFound)
}

func IsAlreadyDecidedError(err error) bool {
	return errors.Is(err, ErrAlreadyDecided)
}

func IsDuplicateError(err error) bool {
	return errors.Is(err, ErrDuplicate)
}
