package repo

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

var ErrNilEntity = errors.New("repo: nil entity")

// IsConstraintViolation reports whether err came from a unique, foreign key
// or not-null check in the store.
func IsConstraintViolation(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, gorm.ErrDuplicatedKey) || errors.Is(err, gorm.ErrForeignKeyViolated) {
		return true
	}
	msg := strings.ToLower(err.Error())
	for _, s := range []string{"constraint", "duplicate", "foreign key", "cannot be null", "violates"} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
