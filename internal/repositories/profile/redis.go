package profile

import (
	"context"
	"encoding/json"
	"log/slog"

	redis "github.com/redis/go-redis/v9"

	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
	"github.com/epicquest/rpg-engine/internal/pkg/clock"
	redisclient "github.com/epicquest/rpg-engine/internal/redis"
)

const (
	profileKeyPrefix = "profile:"

	// Error messages
	errProfileNil     = "profile cannot be nil"
	errProfileIDEmpty = "profile ID cannot be empty"
)

type redisRepository struct {
	client redisclient.Client
	clock  clock.Clock
}

// RedisConfig contains configuration for the Redis profile repository.
type RedisConfig struct {
	Client redisclient.Client
	Clock  clock.Clock
}

// Validate validates the RedisConfig.
func (cfg *RedisConfig) Validate() error {
	if cfg == nil {
		return errors.InvalidArgument("config cannot be nil")
	}
	if cfg.Client == nil {
		return errors.InvalidArgument("client cannot be nil")
	}
	return nil
}

// NewRedis creates a new Redis-backed profile repository
func NewRedis(cfg *RedisConfig) (Repository, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	c := cfg.Clock
	if c == nil {
		c = clock.New()
	}

	return &redisRepository{
		client: cfg.Client,
		clock:  c,
	}, nil
}

func (r *redisRepository) Create(ctx context.Context, input CreateInput) (*CreateOutput, error) {
	if input.Profile == nil {
		return nil, errors.InvalidArgument(errProfileNil)
	}
	if input.Profile.ID == "" {
		return nil, errors.InvalidArgument(errProfileIDEmpty)
	}

	stored := input.Profile.Clone()
	stored.Version = 1
	now := r.clock.Now().UTC()
	stored.CreatedAt = now
	stored.UpdatedAt = now

	data, err := json.Marshal(stored)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to marshal profile %s", stored.ID)
	}

	key := profileKeyPrefix + stored.ID
	created, err := r.client.SetNX(ctx, key, data, 0).Result()
	if err != nil {
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to create profile")
	}
	if !created {
		return nil, errors.AlreadyExistsf("profile %s already exists", stored.ID)
	}

	slog.InfoContext(ctx, "created profile", "profile_id", stored.ID)
	return &CreateOutput{Profile: stored}, nil
}

func (r *redisRepository) Get(ctx context.Context, input GetInput) (*GetOutput, error) {
	if input.ID == "" {
		return nil, errors.InvalidArgument(errProfileIDEmpty)
	}

	key := profileKeyPrefix + input.ID
	raw, err := r.client.Get(ctx, key).Result()
	if err != nil {
		if err == redis.Nil {
			return nil, errors.NotFoundf("profile %s not found", input.ID)
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to get profile")
	}

	var p entities.Profile
	if err := json.Unmarshal([]byte(raw), &p); err != nil {
		return nil, errors.Wrapf(err, "failed to unmarshal profile %s", input.ID)
	}

	return &GetOutput{Profile: &p}, nil
}

func (r *redisRepository) Update(ctx context.Context, input UpdateInput) (*UpdateOutput, error) {
	if input.Profile == nil {
		return nil, errors.InvalidArgument(errProfileNil)
	}
	if input.Profile.ID == "" {
		return nil, errors.InvalidArgument(errProfileIDEmpty)
	}
	if input.ExpectedVersion < 1 {
		return nil, errors.InvalidArgumentf("expected version must be at least 1, got %d", input.ExpectedVersion)
	}

	key := profileKeyPrefix + input.Profile.ID
	updated := input.Profile.Clone()
	updated.Version = input.ExpectedVersion + 1
	updated.UpdatedAt = r.clock.Now().UTC()

	// WATCH gives us the compare-and-set: if the key changes between the
	// read and the EXEC, the transaction fails and we report a conflict
	// for the caller to retry.
	err := r.client.Watch(ctx, func(tx *redis.Tx) error {
		raw, err := tx.Get(ctx, key).Result()
		if err != nil {
			if err == redis.Nil {
				return errors.NotFoundf("profile %s not found", input.Profile.ID)
			}
			return errors.WrapWithCode(err, errors.CodeUnavailable, "failed to read profile for update")
		}

		var stored entities.Profile
		if err := json.Unmarshal([]byte(raw), &stored); err != nil {
			return errors.Wrapf(err, "failed to unmarshal stored profile %s", input.Profile.ID)
		}

		if stored.Version != input.ExpectedVersion {
			return errors.VersionConflictf(
				"profile %s is at version %d, caller expected %d",
				input.Profile.ID, stored.Version, input.ExpectedVersion)
		}

		updated.CreatedAt = stored.CreatedAt

		data, err := json.Marshal(updated)
		if err != nil {
			return errors.Wrapf(err, "failed to marshal profile %s", input.Profile.ID)
		}

		_, err = tx.TxPipelined(ctx, func(pipe redis.Pipeliner) error {
			pipe.Set(ctx, key, data, 0)
			return nil
		})
		return err
	}, key)

	if err != nil {
		if err == redis.TxFailedErr {
			return nil, errors.VersionConflictf("profile %s changed during update", input.Profile.ID)
		}
		var typed *errors.Error
		if errors.As(err, &typed) {
			return nil, typed
		}
		return nil, errors.WrapWithCode(err, errors.CodeUnavailable, "failed to update profile")
	}

	slog.DebugContext(ctx, "updated profile",
		"profile_id", updated.ID,
		"version", updated.Version)

	return &UpdateOutput{Profile: updated, Version: updated.Version}, nil
}
