package repositories

import (
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5/pgconn"
	"github.com/mattn/go-sqlite3"
	"gorm.io/gorm"
)

// ErrNotFound is returned when a lookup matches no row.
var ErrNotFound = errors.New("record not found")

// pgUniqueViolation is the SQLSTATE of unique_violation.
const pgUniqueViolation = "23505"

// FailureKind tags the outcome of a failed storage call.
type FailureKind int

const (
	FailureOther FailureKind = iota
	FailureUniqueViolation
)

// StorageError is the tagged failure returned by every repository write and query.
type StorageError struct {
	Kind   FailureKind
	Op     string
	Detail string
	Err    error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

// IsUniqueViolation reports whether err is a storage uniqueness violation.
func IsUniqueViolation(err error) bool {
	var storageErr *StorageError
	return errors.As(err, &storageErr) && storageErr.Kind == FailureUniqueViolation
}

// wrapError classifies a driver error into a *StorageError. Nil stays nil and
// gorm.ErrRecordNotFound becomes ErrNotFound.
func wrapError(op string, err error) error {
	if err == nil {
		return nil
	}
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == pgUniqueViolation {
		detail := pgErr.Detail
		if detail == "" {
			detail = pgErr.Message
		}
		return &StorageError{Kind: FailureUniqueViolation, Op: op, Detail: detail, Err: err}
	}

	var sqliteErr sqlite3.Error
	if errors.As(err, &sqliteErr) &&
		(sqliteErr.ExtendedCode == sqlite3.ErrConstraintUnique || sqliteErr.ExtendedCode == sqlite3.ErrConstraintPrimaryKey) {
		return &StorageError{Kind: FailureUniqueViolation, Op: op, Detail: sqliteErr.Error(), Err: err}
	}

	if errors.Is(err, gorm.ErrDuplicatedKey) {
		return &StorageError{Kind: FailureUniqueViolation, Op: op, Detail: err.Error(), Err: err}
	}
	return &StorageError{Kind: FailureOther, Op: op, Detail: err.Error(), Err: err}
}
