package sqlconfig

import (
	"database/sql"
	"errors"

	"github.com/lib/pq"

	"github.com/carson-networks/expense-tracker/internal/apperrors"
)

const (
	pqUniqueViolation     = "23505"
	pqForeignKeyViolation = "23503"
)

// MapError translates driver errors into apperrors kinds for the given entity.
func MapError(err error, entity string, id any) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, sql.ErrNoRows) {
		return apperrors.NotFound(entity, id)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		switch pqErr.Code {
		case pqUniqueViolation:
			return &apperrors.Error{Kind: apperrors.KindConflict, Entity: entity, Message: "already exists", Err: err}
		case pqForeignKeyViolation:
			return &apperrors.Error{Kind: apperrors.KindConflict, Entity: entity, ID: id, Message: "referenced by other records", Err: err}
		}
	}
	return err
}
