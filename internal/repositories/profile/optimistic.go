package profile

import (
	"context"
	"log/slog"

	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
)

// DefaultUpdateAttempts bounds how many times Apply retries a mutation
// that lost a version race before giving up.
const DefaultUpdateAttempts = 3

// Mutation modifies a profile in place. Returning an error aborts the
// update without writing; the error is passed through to the caller.
type Mutation func(p *entities.Profile) error

// Apply reads a profile, runs the mutation against a copy, and writes the
// result back with a compare-and-set on the version that was read. When the
// write loses a race it re-reads and retries the mutation against the fresh
// state, up to attempts total tries. Every path other than a version
// conflict returns immediately.
func Apply(ctx context.Context, repo Repository, id string, attempts int, mutate Mutation) (*entities.Profile, error) {
	if id == "" {
		return nil, errors.InvalidArgument(errProfileIDEmpty)
	}
	if mutate == nil {
		return nil, errors.InvalidArgument("mutation cannot be nil")
	}
	if attempts < 1 {
		attempts = DefaultUpdateAttempts
	}

	var lastErr error
	for attempt := 1; attempt <= attempts; attempt++ {
		got, err := repo.Get(ctx, GetInput{ID: id})
		if err != nil {
			return nil, err
		}

		working := got.Profile.Clone()
		if err := mutate(working); err != nil {
			return nil, err
		}

		updated, err := repo.Update(ctx, UpdateInput{
			ExpectedVersion: got.Profile.Version,
			Profile:         working,
		})
		if err == nil {
			return updated.Profile, nil
		}
		if !errors.IsVersionConflict(err) {
			return nil, err
		}

		lastErr = err
		slog.DebugContext(ctx, "profile update lost version race, retrying",
			"profile_id", id,
			"attempt", attempt)
	}

	return nil, errors.WrapWithCode(lastErr, errors.CodeVersionConflict,
		"profile update exhausted retries")
}
