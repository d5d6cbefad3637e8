package storage

import (
	"errors"
	"fmt"

	"github.com/mattn/go-sqlite3"

	"github.com/redsthan/Group-project---Goods-DB/internal/errs"
)

// wrapError classifies a driver error before it leaves the executor.
// Constraint violations become the matching errs sentinel so callers can
// rely on errors.Is; anything else surfaces as errs.ErrStorage.
func wrapError(op string, err error) error {
	var se sqlite3.Error
	if errors.As(err, &se) {
		switch se.ExtendedCode {
		case sqlite3.ErrConstraintUnique, sqlite3.ErrConstraintPrimaryKey:
			return fmt.Errorf("%w: %s: %w", errs.ErrDuplicate, op, err)
		case sqlite3.ErrConstraintForeignKey, sqlite3.ErrConstraintNotNull:
			return fmt.Errorf("%w: %s: %w", errs.ErrInvalidArgument, op, err)
		}
	}
	return fmt.Errorf("%w: %s: %w", errs.ErrStorage, op, err)
}
