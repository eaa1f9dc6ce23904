// Package combat implements deterministic turn-based battle resolution.
//
// Resolve is a pure function of two combatant snapshots and a seed: it never
// touches stores or profiles. Callers apply consequences (rewards, health,
// win counters) to persisted state themselves.
package combat

import (
	"math"

	"github.com/epicquest/rpg-engine/internal/errors"
	"github.com/epicquest/rpg-engine/internal/pkg/rng"
)

// Outcome is the terminal battle result from the initiator's perspective.
type Outcome string

// Battle outcomes
const (
	OutcomeVictory Outcome = "victory"
	OutcomeDefeat  Outcome = "defeat"
	OutcomeDraw    Outcome = "draw"
)

// Combatant is a stat snapshot. It is a copy, not a live reference; the
// resolver mutates health on its own copies only.
type Combatant struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	Attack    int    `json:"attack"`
	Defense   int    `json:"defense"`
	Speed     int    `json:"speed"`
	MaxHealth int    `json:"max_health"`
	Health    int    `json:"health"`
}

// Action is one attack in the battle log.
type Action struct {
	Round          int    `json:"round"`
	AttackerID     string `json:"attacker_id"`
	DefenderID     string `json:"defender_id"`
	Damage         int    `json:"damage"`
	DefenderHealth int    `json:"defender_health"`
}

// Result is the outcome of a resolved battle: terminal state, final health
// of both sides, and the ordered action log.
type Result struct {
	Outcome   Outcome   `json:"outcome"`
	Rounds    int       `json:"rounds"`
	Initiator Combatant `json:"initiator"`
	Opponent  Combatant `json:"opponent"`
	Log       []Action  `json:"log"`
}

// Config tunes the resolver.
type Config struct {
	// ReductionFactor scales how much defense subtracts from incoming
	// attack. Defaults to 0.5.
	ReductionFactor float64
	// Variance is the symmetric damage spread. 0.10 means each hit lands
	// within ±10% of its base damage. Defaults to 0.10.
	Variance float64
	// MaxRounds bounds the simulation; reaching it is a Draw. Stat
	// configurations that prevent lethal damage would otherwise never
	// terminate. Defaults to 30.
	MaxRounds int
}

// Resolver simulates battles.
type Resolver struct {
	reduction float64
	variance  float64
	maxRounds int
}

// New creates a resolver, filling config defaults for zero values.
func New(cfg *Config) *Resolver {
	if cfg == nil {
		cfg = &Config{}
	}
	r := &Resolver{
		reduction: cfg.ReductionFactor,
		variance:  cfg.Variance,
		maxRounds: cfg.MaxRounds,
	}
	if r.reduction == 0 {
		r.reduction = 0.5
	}
	if r.variance == 0 {
		r.variance = 0.10
	}
	if r.maxRounds == 0 {
		r.maxRounds = 30
	}
	return r
}

// Resolve simulates a battle between initiator and opponent using a source
// seeded with seed. The same snapshots and seed always produce an identical
// result and log.
func (r *Resolver) Resolve(initiator, opponent Combatant, seed int64) (*Result, error) {
	if initiator.ID == "" || opponent.ID == "" {
		return nil, errors.InvalidArgument("both combatants need an id")
	}
	if initiator.ID == opponent.ID {
		return nil, errors.InvalidArgumentf("combatant %s cannot fight itself", initiator.ID)
	}
	if initiator.Health <= 0 {
		return nil, errors.FailedPreconditionf("combatant %s has no health left", initiator.ID)
	}
	if opponent.Health <= 0 {
		return nil, errors.FailedPreconditionf("combatant %s has no health left", opponent.ID)
	}

	src := rng.New(seed)

	// Turn order: descending speed, initiator wins ties.
	first, second := &initiator, &opponent
	if opponent.Speed > initiator.Speed {
		first, second = &opponent, &initiator
	}

	result := &Result{}
	for round := 1; round <= r.maxRounds; round++ {
		result.Rounds = round

		if r.strike(result, round, first, second, src) {
			break
		}
		if r.strike(result, round, second, first, src) {
			break
		}
	}

	switch {
	case opponent.Health <= 0:
		result.Outcome = OutcomeVictory
	case initiator.Health <= 0:
		result.Outcome = OutcomeDefeat
	default:
		result.Outcome = OutcomeDraw
	}
	result.Initiator = initiator
	result.Opponent = opponent
	return result, nil
}

// strike applies one attack and reports whether the defender dropped.
func (r *Resolver) strike(result *Result, round int, attacker, defender *Combatant, src rng.Source) bool {
	damage := r.damage(attacker.Attack, defender.Defense, src)
	defender.Health -= damage
	if defender.Health < 0 {
		defender.Health = 0
	}
	result.Log = append(result.Log, Action{
		Round:          round,
		AttackerID:     attacker.ID,
		DefenderID:     defender.ID,
		Damage:         damage,
		DefenderHealth: defender.Health,
	})
	return defender.Health == 0
}

// damage computes max(1, attack - defense*reduction) with bounded variance.
func (r *Resolver) damage(attack, defense int, src rng.Source) int {
	base := float64(attack) - float64(defense)*r.reduction
	if base < 1 {
		base = 1
	}
	spread := (src.Float64()*2 - 1) * r.variance
	dmg := int(math.Round(base * (1 + spread)))
	if dmg < 1 {
		dmg = 1
	}
	return dmg
}
