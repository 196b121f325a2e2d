package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"vidtube/internal/repo/persistent"
	"vidtube/pkg/apperror"

	"github.com/google/uuid"
)

// validateID rejects ids that are not UUIDs with "Invalid <entity> ID".
func validateID(id, entity string) error {
	if _, err := uuid.Parse(id); err != nil {
		return apperror.Validation(fmt.Sprintf("Invalid %s ID", entity))
	}
	return nil
}

// load fetches an entity by id, translating a missing row into NotFound.
func load[T any](ctx context.Context, id, entity string, get func(context.Context, string) (*T, error)) (*T, error) {
	if err := validateID(id, entity); err != nil {
		return nil, err
	}
	item, err := get(ctx, id)
	if errors.Is(err, persistent.ErrNotFound) {
		return nil, apperror.NotFound(capitalize(entity) + " not found")
	}
	if err != nil {
		return nil, fmt.Errorf("load %s %s: %w", entity, id, err)
	}
	return item, nil
}

// loadOwned is the guard every owner-only mutation goes through: validate
// the id, load the entity, then compare its owner with the requester.
func loadOwned[T any](
	ctx context.Context,
	id, requesterID, entity, action string,
	get func(context.Context, string) (*T, error),
	owner func(*T) string,
) (*T, error) {
	item, err := load(ctx, id, entity, get)
	if err != nil {
		return nil, err
	}
	if owner(item) != requesterID {
		return nil, apperror.Forbidden(fmt.Sprintf("You are not authorized to %s this %s", action, entity))
	}
	return item, nil
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
