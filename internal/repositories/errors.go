package repositories

import (
	"errors"

	"gorm.io/gorm"
)

// Store error taxonomy. Constraint violations surface to the caller as
// these sentinels, never swallowed.
var (
	ErrDuplicateKey        = errors.New("duplicate key")
	ErrForeignKeyViolation = errors.New("foreign key violation")
	ErrUserNotFound        = errors.New("user not found")
	ErrJobNotFound         = errors.New("job not found")
)

// translateConstraintError maps GORM's translated driver errors onto the
// store taxonomy. Requires the gorm.Config{TranslateError: true} session
// option, which both the postgres and sqlite drivers support.
func translateConstraintError(err error) error {
	switch {
	case errors.Is(err, gorm.ErrDuplicatedKey):
		return ErrDuplicateKey
	case errors.Is(err, gorm.ErrForeignKeyViolated):
		return ErrForeignKeyViolation
	default:
		return err
	}
}
