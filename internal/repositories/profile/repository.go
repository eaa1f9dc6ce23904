// Package profile provides the interface for profile persistence. The
// store is the single serialization point for all concurrent mutation:
// writes succeed only when the caller's version is still current.
package profile

//go:generate mockgen -destination=mock/mock_repository.go -package=profilemock github.com/epicquest/rpg-engine/internal/repositories/profile Repository

import (
	"context"

	"github.com/epicquest/rpg-engine/internal/entities"
)

// Repository defines the interface for profile persistence
type Repository interface {
	// Create stores a new profile at version 1.
	// Returns errors.InvalidArgument for validation failures
	// Returns errors.AlreadyExists if a profile with the same ID exists
	// Returns errors.Unavailable for storage failures
	Create(ctx context.Context, input CreateInput) (*CreateOutput, error)

	// Get retrieves a profile by ID.
	// Returns errors.InvalidArgument for empty IDs
	// Returns errors.NotFound if the profile doesn't exist
	// Returns errors.Unavailable for storage failures
	Get(ctx context.Context, input GetInput) (*GetOutput, error)

	// Update conditionally replaces a profile. The write applies only if
	// the stored version still equals ExpectedVersion; the stored version
	// then increases by one.
	// Returns errors.VersionConflict when the stored version moved
	// Returns errors.NotFound if the profile doesn't exist
	// Returns errors.Unavailable for storage failures
	Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error)
}

// CreateInput defines the input for creating a profile
type CreateInput struct {
	Profile *entities.Profile
}

// CreateOutput defines the output for creating a profile
type CreateOutput struct {
	Profile *entities.Profile
}

// GetInput defines the input for getting a profile
type GetInput struct {
	ID string
}

// GetOutput defines the output for getting a profile
type GetOutput struct {
	Profile *entities.Profile
}

// UpdateInput defines the input for conditionally updating a profile
type UpdateInput struct {
	ExpectedVersion int64
	Profile         *entities.Profile
}

// UpdateOutput defines the output for updating a profile
type UpdateOutput struct {
	Profile *entities.Profile
	Version int64
}
