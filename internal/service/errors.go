package service

import (
	"fmt"

	apperrors "festivales/internal/errors"
	"festivales/internal/model"
	"festivales/internal/repository"
)

func checkID(id string) error {
	if !model.IsValidID(id) {
		return fmt.Errorf("%w: %q", apperrors.ErrInvalidID, id)
	}
	return nil
}

// lookupErr maps a repository read failure for entity/id.
func lookupErr(err error, entity, id string) error {
	if repository.IsNotFound(err) {
		return apperrors.NotFound(entity, id)
	}
	return fmt.Errorf("find %s: %w", entity, err)
}

// writeErr maps a repository write failure. Duplicate keys become conflicts.
func writeErr(err error, entity string) error {
	if repository.IsDuplicate(err) {
		return apperrors.Conflict("%s already exists", entity)
	}
	return fmt.Errorf("save %s: %w", entity, err)
}

func deleteErr(deleted bool, err error, entity, id string) error {
	if err != nil {
		return fmt.Errorf("delete %s: %w", entity, err)
	}
	if !deleted {
		return apperrors.NotFound(entity, id)
	}
	return nil
}

func parseEstado(s string) (model.Estado, error) {
	e := model.Estado(s)
	if !e.Valid() {
		return "", fmt.Errorf("%w: %q is not activo or inactivo", apperrors.ErrInvalidState, s)
	}
	return e, nil
}
