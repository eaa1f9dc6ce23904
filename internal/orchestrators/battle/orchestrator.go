// Package battle implements the battle orchestrator: profile-versus-monster
// fights and profile-versus-profile duels. Simulation is delegated to the
// combat resolver; this package applies the consequences to persisted
// profiles through versioned writes.
package battle

import (
	"context"
	"log/slog"
	"time"

	"github.com/epicquest/rpg-engine/internal/catalog"
	"github.com/epicquest/rpg-engine/internal/combat"
	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
	profileorc "github.com/epicquest/rpg-engine/internal/orchestrators/profile"
	"github.com/epicquest/rpg-engine/internal/pkg/clock"
	"github.com/epicquest/rpg-engine/internal/pkg/rng"
	"github.com/epicquest/rpg-engine/internal/progression"
	profilerepo "github.com/epicquest/rpg-engine/internal/repositories/profile"
)

//go:generate mockgen -destination=mock/mock_service.go -package=battlemock github.com/epicquest/rpg-engine/internal/orchestrators/battle Service

const (
	// CooldownAction is the cooldown key battles are gated on.
	CooldownAction = "battle"

	// DefaultCooldown applies when the config leaves the cooldown unset.
	DefaultCooldown = 5 * time.Minute
)

// Service defines the battle operations
type Service interface {
	Battle(ctx context.Context, input *BattleInput) (*BattleOutput, error)
	Duel(ctx context.Context, input *DuelInput) (*DuelOutput, error)
}

// Config holds the dependencies for the battle orchestrator
type Config struct {
	ProfileRepo    profilerepo.Repository
	Catalog        *catalog.Catalog
	Resolver       *combat.Resolver
	Progression    *progression.Engine
	Clock          clock.Clock
	Cooldown       time.Duration
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

	return vb.Build()
}

type orchestrator struct {
	repo        profilerepo.Repository
	catalog     *catalog.Catalog
	resolver    *combat.Resolver
	progression *progression.Engine
	clock       clock.Clock
	cooldown    time.Duration
	attempts    int
}

// NewOrchestrator creates a new battle orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		repo:        cfg.ProfileRepo,
		catalog:     cfg.Catalog,
		resolver:    cfg.Resolver,
		progression: cfg.Progression,
		clock:       cfg.Clock,
		cooldown:    cfg.Cooldown,
		attempts:    cfg.UpdateAttempts,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if o.cooldown <= 0 {
		o.cooldown = DefaultCooldown
	}
	if o.attempts < 1 {
		o.attempts = profilerepo.DefaultUpdateAttempts
	}
	return o, nil
}

// ProfileCombatant builds a combat snapshot from a profile with equipped
// modifiers applied. Current health is capped at the effective max.
func ProfileCombatant(cat *catalog.Catalog, p *entities.Profile) combat.Combatant {
	eff := profileorc.EffectiveStats(cat, p)
	health := p.Health
	if health > eff.MaxHealth {
		health = eff.MaxHealth
	}
	return combat.Combatant{
		ID:        p.ID,
		Name:      p.ID,
		Attack:    eff.Attack,
		Defense:   eff.Defense,
		Speed:     eff.Speed,
		MaxHealth: eff.MaxHealth,
		Health:    health,
	}
}

// MonsterCombatant builds a combat snapshot from a monster definition at
// full health, with stats scaled by multiplier. A multiplier of 1 keeps the
// definition's values.
func MonsterCombatant(m *entities.MonsterDefinition, multiplier float64) combat.Combatant {
	if multiplier < 1 {
		multiplier = 1
	}
	scale := func(v int) int {
		scaled := int(float64(v) * multiplier)
		if scaled < 1 {
			scaled = 1
		}
		return scaled
	}
	return combat.Combatant{
		ID:        m.ID,
		Name:      m.Name,
		Attack:    scale(m.Attack),
		Defense:   scale(m.Defense),
		Speed:     scale(m.Speed),
		MaxHealth: scale(m.MaxHealth),
		Health:    scale(m.MaxHealth),
	}
}

func (o *orchestrator) seed(input int64) int64 {
	if input != 0 {
		return input
	}
	return o.clock.Now().UnixNano()
}

func checkCooldown(p *entities.Profile, action string, now time.Time) error {
	expiry := p.CooldownExpiry(action)
	if expiry.After(now) {
		return errors.CooldownActive(action, expiry.Sub(now))
	}
	return nil
}

// survivorHealth floors post-battle health at 1 so a defeat never leaves a
// profile locked out of every other action.
func survivorHealth(h int) int {
	if h < 1 {
		return 1
	}
	return h
}

func (o *orchestrator) Battle(ctx context.Context, input *BattleInput) (*BattleOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user id is required")
	}
	if (input.MonsterID == "") == (input.Location == "") {
		return nil, errors.InvalidArgument("exactly one of monster id or location is required")
	}

	now := o.clock.Now()
	seed := o.seed(input.Seed)

	var monster *entities.MonsterDefinition
	var err error
	if input.MonsterID != "" {
		monster, err = o.catalog.Monster(input.MonsterID)
	} else {
		monster, err = o.catalog.RandomMonster(rng.New(seed), input.Location)
	}
	if err != nil {
		return nil, err
	}

	var (
		result    *combat.Result
		rewards   entities.RewardBundle
		leveledUp bool
	)
	updated, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if err := checkCooldown(p, CooldownAction, now); err != nil {
			return err
		}

		// Resolution runs inside the write: a retried attempt re-fights
		// from the exact state it commits against.
		var resErr error
		result, resErr = o.resolver.Resolve(ProfileCombatant(o.catalog, p), MonsterCombatant(monster, 1), seed)
		if resErr != nil {
			return resErr
		}
		rewards = entities.RewardBundle{}
		leveledUp = false
		if result.Outcome == combat.OutcomeVictory {
			rewards = catalog.RollLoot(rng.New(seed+1), monster.Loot)
		}

		p.Health = survivorHealth(result.Initiator.Health)
		p.SetCooldown(CooldownAction, now.Add(o.cooldown))

		switch result.Outcome {
		case combat.OutcomeVictory:
			p.BattlesWon++
			p.Coins += rewards.Coins
			for id, qty := range rewards.Items {
				p.AddItem(id, qty)
			}
			gain, gainErr := o.progression.ApplyGain(p, rewards.Experience)
			if gainErr != nil {
				return gainErr
			}
			leveledUp = gain.LeveledUp
		case combat.OutcomeDefeat:
			p.BattlesLost++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "battle resolved",
		"profile_id", input.UserID,
		"monster_id", monster.ID,
		"outcome", string(result.Outcome),
		"rounds", result.Rounds)

	return &BattleOutput{
		Profile: updated,
		Monster: monster,
		Result:  result,
		Rewards: rewards,
		LevelUp: leveledUp,
	}, nil
}

func (o *orchestrator) Duel(ctx context.Context, input *DuelInput) (*DuelOutput, error) {
	if input == nil || input.UserID == "" || input.OpponentID == "" {
		return nil, errors.InvalidArgument("user id and opponent id are required")
	}
	if input.UserID == input.OpponentID {
		return nil, errors.InvalidArgument("cannot duel yourself")
	}
	if input.Wager < 0 {
		return nil, errors.InvalidArgumentf("wager must not be negative, got %d", input.Wager)
	}

	initiator, err := o.repo.Get(ctx, profilerepo.GetInput{ID: input.UserID})
	if err != nil {
		return nil, err
	}
	opponent, err := o.repo.Get(ctx, profilerepo.GetInput{ID: input.OpponentID})
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	if err := checkCooldown(initiator.Profile, CooldownAction, now); err != nil {
		return nil, err
	}
	if initiator.Profile.Coins < input.Wager {
		return nil, errors.InsufficientResourcef("wager %d exceeds your %d coins", input.Wager, initiator.Profile.Coins)
	}
	if opponent.Profile.Coins < input.Wager {
		return nil, errors.InsufficientResourcef("wager %d exceeds opponent's %d coins", input.Wager, opponent.Profile.Coins)
	}

	result, err := o.resolver.Resolve(
		ProfileCombatant(o.catalog, initiator.Profile),
		ProfileCombatant(o.catalog, opponent.Profile),
		o.seed(input.Seed),
	)
	if err != nil {
		return nil, err
	}

	// The wager only moves on a decisive outcome.
	var initiatorDelta, opponentDelta int64
	switch result.Outcome {
	case combat.OutcomeVictory:
		initiatorDelta, opponentDelta = input.Wager, -input.Wager
	case combat.OutcomeDefeat:
		initiatorDelta, opponentDelta = -input.Wager, input.Wager
	}

	updatedInitiator, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if err := checkCooldown(p, CooldownAction, now); err != nil {
			return err
		}
		applyDuelSide(p, result.Initiator.Health, result.Outcome == combat.OutcomeVictory,
			result.Outcome == combat.OutcomeDefeat, initiatorDelta)
		p.SetCooldown(CooldownAction, now.Add(o.cooldown))
		return nil
	})
	if err != nil {
		return nil, err
	}

	updatedOpponent, err := profilerepo.Apply(ctx, o.repo, input.OpponentID, o.attempts, func(p *entities.Profile) error {
		applyDuelSide(p, result.Opponent.Health, result.Outcome == combat.OutcomeDefeat,
			result.Outcome == combat.OutcomeVictory, opponentDelta)
		return nil
	})
	if err != nil {
		// Reverse the initiator's coin movement so the wager is not
		// created or destroyed. Stats stay; the fight did happen.
		if initiatorDelta != 0 {
			if _, rbErr := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
				p.Coins -= initiatorDelta
				return nil
			}); rbErr != nil {
				slog.ErrorContext(ctx, "failed to reverse duel wager",
					"profile_id", input.UserID,
					"delta", initiatorDelta,
					"error", rbErr)
			}
		}
		return nil, err
	}

	slog.InfoContext(ctx, "duel resolved",
		"profile_id", input.UserID,
		"opponent_id", input.OpponentID,
		"outcome", string(result.Outcome),
		"wager", input.Wager)

	return &DuelOutput{
		Profile:  updatedInitiator,
		Opponent: updatedOpponent,
		Result:   result,
		Wager:    input.Wager,
	}, nil
}

func applyDuelSide(p *entities.Profile, health int, won, lost bool, coinDelta int64) {
	p.Health = survivorHealth(health)
	p.Coins += coinDelta
	if p.Coins < 0 {
		p.Coins = 0
	}
	if won {
		p.BattlesWon++
	}
	if lost {
		p.BattlesLost++
	}
}
