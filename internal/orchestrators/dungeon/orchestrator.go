// Package dungeon implements the dungeon orchestrator: a per-profile run of
// consecutive floor fights with escalating monsters. Floor rewards
// accumulate on the run record and only land on the profile when the final
// floor falls; failure or abandonment forfeits everything pending.
package dungeon

import (
	"context"
	"log/slog"

	"github.com/epicquest/rpg-engine/internal/catalog"
	"github.com/epicquest/rpg-engine/internal/combat"
	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
	"github.com/epicquest/rpg-engine/internal/orchestrators/battle"
	"github.com/epicquest/rpg-engine/internal/pkg/clock"
	"github.com/epicquest/rpg-engine/internal/pkg/idgen"
	"github.com/epicquest/rpg-engine/internal/pkg/rng"
	"github.com/epicquest/rpg-engine/internal/progression"
	profilerepo "github.com/epicquest/rpg-engine/internal/repositories/profile"
)

//go:generate mockgen -destination=mock/mock_service.go -package=dungeonmock github.com/epicquest/rpg-engine/internal/orchestrators/dungeon Service

const (
	// FinalFloor is the last floor index; clearing it completes the run.
	FinalFloor = 4

	// DefaultLocation is the monster pool runs draw from.
	DefaultLocation = "dungeon"

	// floorScaleStep raises monster stats per floor, so difficulty is
	// strictly increasing: floor 0 fights base stats, the final floor
	// fights double.
	floorScaleStep = 0.25
)

// Service defines the dungeon operations
type Service interface {
	Start(ctx context.Context, input *StartInput) (*StartOutput, error)
	Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error)
	Abandon(ctx context.Context, input *AbandonInput) (*AbandonOutput, error)
	Status(ctx context.Context, input *StatusInput) (*StatusOutput, error)
}

// Config holds the dependencies for the dungeon orchestrator
type Config struct {
	ProfileRepo    profilerepo.Repository
	Catalog        *catalog.Catalog
	Resolver       *combat.Resolver
	Progression    *progression.Engine
	IDGenerator    idgen.Generator
	Clock          clock.Clock
	Location       string
	UpdateAttempts int
}

// Validate ensures all required dependencies are provided
func (c *Config) Validate() error {
	vb := errors.NewValidationBuilder()

	if c.ProfileRepo == nil {
		vb.RequiredField("ProfileRepo")
	}
	if c.Catalog == nil {
		vb.RequiredField("Catalog")
	}
	if c.Resolver == nil {
		vb.RequiredField("Resolver")
	}
	if c.Progression == nil {
		vb.RequiredField("Progression")
	}
	if c.IDGenerator == nil {
		vb.RequiredField("IDGenerator")
	}

	return vb.Build()
}

type orchestrator struct {
	repo        profilerepo.Repository
	catalog     *catalog.Catalog
	resolver    *combat.Resolver
	progression *progression.Engine
	idGen       idgen.Generator
	clock       clock.Clock
	location    string
	attempts    int
}

// NewOrchestrator creates a new dungeon orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		repo:        cfg.ProfileRepo,
		catalog:     cfg.Catalog,
		resolver:    cfg.Resolver,
		progression: cfg.Progression,
		idGen:       cfg.IDGenerator,
		clock:       cfg.Clock,
		location:    cfg.Location,
		attempts:    cfg.UpdateAttempts,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.location == "" {
		o.location = DefaultLocation
	}
	if o.attempts < 1 {
		o.attempts = profilerepo.DefaultUpdateAttempts
	}
	return o, nil
}

// FloorMultiplier returns the stat scale for a floor index.
func FloorMultiplier(floor int) float64 {
	if floor < 0 {
		floor = 0
	}
	return 1 + floorScaleStep*float64(floor)
}

func (o *orchestrator) Start(ctx context.Context, input *StartInput) (*StartOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user id is required")
	}

	runID := o.idGen.Generate()
	now := o.clock.Now()

	updated, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if p.Run != nil {
			return errors.AlreadyExistsf("dungeon run %s is already in progress", p.Run.ID)
		}
		p.Run = &entities.DungeonRun{
			ID:        runID,
			Floor:     0,
			State:     entities.RunInProgress,
			StartedAt: now,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "dungeon run started",
		"profile_id", input.UserID,
		"run_id", updated.Run.ID)

	return &StartOutput{Profile: updated, Run: updated.Run}, nil
}

func (o *orchestrator) Advance(ctx context.Context, input *AdvanceInput) (*AdvanceOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user id is required")
	}

	seed := input.Seed
	if seed == 0 {
		seed = o.clock.Now().UnixNano()
	}

	monster, err := o.catalog.RandomMonster(rng.New(seed), o.location)
	if err != nil {
		return nil, err
	}

	out := &AdvanceOutput{Monster: monster}

	updated, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if p.Run == nil {
			return errors.FailedPrecondition("no dungeon run in progress")
		}
		floor := p.Run.Floor
		out.Floor = floor
		out.Committed = entities.RewardBundle{}
		out.LevelUp = false
		out.Run = nil

		// The fight runs inside the write: a retried attempt re-resolves
		// against the floor and profile state it commits.
		result, resErr := o.resolver.Resolve(
			battle.ProfileCombatant(o.catalog, p),
			battle.MonsterCombatant(monster, FloorMultiplier(floor)),
			seed,
		)
		if resErr != nil {
			return resErr
		}
		out.Result = result

		var rewards entities.RewardBundle
		if result.Outcome == combat.OutcomeVictory {
			rewards = catalog.RollLoot(rng.New(seed+1), monster.Loot)
		}
		out.Rewards = rewards

		p.Health = result.Initiator.Health
		if p.Health < 1 {
			p.Health = 1
		}

		switch result.Outcome {
		case combat.OutcomeVictory:
			p.BattlesWon++
			p.Run.Pending.Merge(rewards)

			if p.Run.Floor == FinalFloor {
				// Everything pending lands in one write with the
				// completion itself.
				out.Committed = p.Run.Pending
				p.Coins += out.Committed.Coins
				for id, qty := range out.Committed.Items {
					p.AddItem(id, qty)
				}
				gain, gainErr := o.progression.ApplyGain(p, out.Committed.Experience)
				if gainErr != nil {
					return gainErr
				}
				out.LevelUp = gain.LeveledUp
				out.State = entities.RunCompleted
				p.Run = nil
			} else {
				p.Run.Floor++
				out.State = entities.RunInProgress
				out.Run = p.Run
			}
		case combat.OutcomeDefeat:
			p.BattlesLost++
			out.State = entities.RunFailed
			p.Run = nil
		default:
			// A draw repels the party; the run holds at the same floor.
			out.State = entities.RunInProgress
			out.Run = p.Run
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	out.Profile = updated
	if out.Run != nil {
		out.Run = updated.Run
	}

	slog.InfoContext(ctx, "dungeon floor resolved",
		"profile_id", input.UserID,
		"floor", out.Floor,
		"monster_id", monster.ID,
		"outcome", string(out.Result.Outcome),
		"state", string(out.State))

	return out, nil
}

func (o *orchestrator) Abandon(ctx context.Context, input *AbandonInput) (*AbandonOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user id is required")
	}

	var discarded entities.RewardBundle
	updated, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if p.Run == nil {
			return errors.FailedPrecondition("no dungeon run in progress")
		}
		discarded = p.Run.Pending
		p.Run = nil
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "dungeon run abandoned",
		"profile_id", input.UserID,
		"forfeited_coins", discarded.Coins)

	return &AbandonOutput{Profile: updated, Discarded: discarded}, nil
}

func (o *orchestrator) Status(ctx context.Context, input *StatusInput) (*StatusOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user id is required")
	}

	got, err := o.repo.Get(ctx, profilerepo.GetInput{ID: input.UserID})
	if err != nil {
		return nil, err
	}
	return &StatusOutput{Run: got.Profile.Run}, nil
}
