package services

import (
	"errors"

	"teslo/internal/apperrors"
	"teslo/internal/repositories"
	"teslo/pkg/logger"
)

// translateStorageError maps a repository failure onto the caller-facing
// taxonomy. Unique violations keep the storage detail; every other failure is
// logged here and surfaces only as the generic internal error.
func translateStorageError(log *logger.Logger, op string, err error, notFound func() *apperrors.Error) error {
	if err == nil {
		return nil
	}
	var appErr *apperrors.Error
	if errors.As(err, &appErr) {
		return appErr
	}
	if errors.Is(err, repositories.ErrNotFound) && notFound != nil {
		return notFound()
	}
	var storageErr *repositories.StorageError
	if errors.As(err, &storageErr) && storageErr.Kind == repositories.FailureUniqueViolation {
		return apperrors.Conflict(storageErr.Detail, err)
	}
	log.Error("storage failure", "op", op, "error", err)
	return apperrors.Internal(err)
}
