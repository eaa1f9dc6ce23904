// Package progression derives levels from experience and applies level-up
// stat growth. Everything here is pure: level is a function of experience,
// growth is fixed increments, no randomness.
package progression

import (
	"math"

	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
)

const (
	// Default curve shape: level 2 costs 100 XP and each level costs 1.5x
	// the previous one, accumulated into absolute thresholds.
	defaultBaseExperience = 100
	defaultMultiplier     = 1.5

	// MaxLevel caps the curve so a misconfigured reward cannot loop forever.
	MaxLevel = 100
)

// Curve maps total experience to level via cumulative thresholds.
// thresholds[i] is the total experience required for level i+1, so
// thresholds[0] is always 0.
type Curve struct {
	thresholds []int64
}

// NewCurve builds a curve from cumulative thresholds. The table must start
// at zero and be strictly increasing past the first entry.
func NewCurve(thresholds []int64) (*Curve, error) {
	if len(thresholds) == 0 {
		return nil, errors.InvalidArgument("curve needs at least one threshold")
	}
	if thresholds[0] != 0 {
		return nil, errors.InvalidArgumentf("first threshold must be 0, got %d", thresholds[0])
	}
	for i := 1; i < len(thresholds); i++ {
		if thresholds[i] <= thresholds[i-1] {
			return nil, errors.InvalidArgumentf(
				"thresholds must be strictly increasing: [%d]=%d, [%d]=%d",
				i-1, thresholds[i-1], i, thresholds[i])
		}
	}
	cp := make([]int64, len(thresholds))
	copy(cp, thresholds)
	return &Curve{thresholds: cp}, nil
}

// DefaultCurve returns the standard curve: 100 XP to level 2, 1.5x per level.
// The table stops early if a threshold would exceed what int64 can hold, so
// the curve stays strictly increasing at every entry.
func DefaultCurve() *Curve {
	thresholds := make([]int64, 1, MaxLevel)
	cost := float64(defaultBaseExperience)
	var total int64
	for i := 1; i < MaxLevel; i++ {
		if cost >= float64(math.MaxInt64) {
			break
		}
		step := int64(cost)
		if total > math.MaxInt64-step {
			break
		}
		total += step
		thresholds = append(thresholds, total)
		cost *= defaultMultiplier
	}
	return &Curve{thresholds: thresholds}
}

// LevelFor returns the level for a total experience amount. Monotonic
// non-decreasing in xp and idempotent: the same xp always yields the same
// level. Negative xp clamps to level 1.
func (c *Curve) LevelFor(xp int64) int {
	level := 1
	for i := 1; i < len(c.thresholds); i++ {
		if xp < c.thresholds[i] {
			break
		}
		level = i + 1
	}
	return level
}

// Growth is the fixed per-level stat increment applied on level-up.
type Growth struct {
	MaxHealth int
	Attack    int
	Defense   int
	Speed     int
}

// DefaultGrowth matches the classic progression: +10 HP, +2 ATK, +1 DEF,
// +1 SPD per level.
func DefaultGrowth() Growth {
	return Growth{MaxHealth: 10, Attack: 2, Defense: 1, Speed: 1}
}

// Engine applies experience gains to profiles.
type Engine struct {
	curve  *Curve
	growth Growth
}

// Config holds the dependencies for the progression engine
type Config struct {
	// Curve is optional; DefaultCurve is used when nil.
	Curve *Curve
	// Growth is optional; zero value falls back to DefaultGrowth.
	Growth Growth
}

// New creates a progression engine.
func New(cfg *Config) *Engine {
	if cfg == nil {
		cfg = &Config{}
	}
	curve := cfg.Curve
	if curve == nil {
		curve = DefaultCurve()
	}
	growth := cfg.Growth
	if growth == (Growth{}) {
		growth = DefaultGrowth()
	}
	return &Engine{curve: curve, growth: growth}
}

// LevelForExperience derives the level for a total experience amount.
func (e *Engine) LevelForExperience(xp int64) int {
	return e.curve.LevelFor(xp)
}

// GainResult reports what an experience gain did to a profile.
type GainResult struct {
	Amount        int64
	PreviousLevel int
	Level         int
	LeveledUp     bool
}

// ApplyGain adds experience to the profile, recomputes the level, and on a
// level increase applies the fixed growth per level gained and restores
// health to the new maximum. The profile is mutated in place; callers pass
// the working copy inside a versioned update. Negative amounts are rejected.
func (e *Engine) ApplyGain(p *entities.Profile, amount int64) (*GainResult, error) {
	if p == nil {
		return nil, errors.InvalidArgument("profile cannot be nil")
	}
	if amount < 0 {
		return nil, errors.InvalidArgumentf("experience gain must not be negative, got %d", amount)
	}

	previous := p.Level
	p.Experience += amount
	newLevel := e.curve.LevelFor(p.Experience)

	// Level is a pure function of experience and experience only grows, so
	// newLevel can never be below the stored level for a consistent profile.
	if newLevel > previous {
		gained := newLevel - previous
		p.Level = newLevel
		p.MaxHealth += e.growth.MaxHealth * gained
		p.Attack += e.growth.Attack * gained
		p.Defense += e.growth.Defense * gained
		p.Speed += e.growth.Speed * gained
		p.Health = p.MaxHealth
	}

	return &GainResult{
		Amount:        amount,
		PreviousLevel: previous,
		Level:         p.Level,
		LeveledUp:     newLevel > previous,
	}, nil
}
