// Package adventure implements the timed reward commands: adventure draws
// from location loot tables, work pays out a job shift, and the daily claim
// tracks consecutive-day streaks. Every command is cooldown gated and lands
// in a single versioned write.
package adventure

import (
	"context"
	"log/slog"
	"time"

	"github.com/epicquest/rpg-engine/internal/catalog"
	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
	"github.com/epicquest/rpg-engine/internal/pkg/clock"
	"github.com/epicquest/rpg-engine/internal/pkg/rng"
	"github.com/epicquest/rpg-engine/internal/progression"
	profilerepo "github.com/epicquest/rpg-engine/internal/repositories/profile"
)

//go:generate mockgen -destination=mock/mock_service.go -package=adventuremock github.com/epicquest/rpg-engine/internal/orchestrators/adventure Service

const (
	// Cooldown action keys. Adventures are gated per location, so the
	// location id is appended to the prefix.
	adventureCooldownPrefix = "adventure:"
	workCooldownAction      = "work"

	// Default gate durations
	DefaultAdventureCooldown = 30 * time.Minute
	DefaultWorkCooldown      = time.Hour
	DefaultDailyCooldown     = 24 * time.Hour

	// Daily reward tuning. The streak bonus applies per day already
	// banked, and the streak stops growing at the cap.
	dailyBaseCoins   = 100
	dailyCoinsPerLvl = 10
	dailyStreakBonus = 25
	dailyBaseXP      = 50
	dailyXPPerLvl    = 5
	dailyStreakCap   = 7

	// A streak survives as long as the next claim lands within this
	// window of the previous one.
	dailyStreakWindow = 48 * time.Hour
)

// Service defines the timed reward operations
type Service interface {
	Adventure(ctx context.Context, input *AdventureInput) (*AdventureOutput, error)
	Work(ctx context.Context, input *WorkInput) (*WorkOutput, error)
	Daily(ctx context.Context, input *DailyInput) (*DailyOutput, error)
}

// Config holds the dependencies for the adventure orchestrator
type Config struct {
	ProfileRepo       profilerepo.Repository
	Catalog           *catalog.Catalog
	Progression       *progression.Engine
	Clock             clock.Clock
	Jobs              []Job
	AdventureCooldown time.Duration
	WorkCooldown      time.Duration
	DailyCooldown     time.Duration
	UpdateAttempts    int
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
	if c.Progression == nil {
		vb.RequiredField("Progression")
	}

	return vb.Build()
}

type orchestrator struct {
	repo        profilerepo.Repository
	catalog     *catalog.Catalog
	progression *progression.Engine
	clock       clock.Clock
	jobs        []Job
	advCooldown time.Duration
	workCd      time.Duration
	dailyCd     time.Duration
	attempts    int
}

// NewOrchestrator creates a new adventure orchestrator with the provided dependencies
func NewOrchestrator(cfg *Config) (Service, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.Wrap(err, "invalid config")
	}

	o := &orchestrator{
		repo:        cfg.ProfileRepo,
		catalog:     cfg.Catalog,
		progression: cfg.Progression,
		clock:       cfg.Clock,
		jobs:        cfg.Jobs,
		advCooldown: cfg.AdventureCooldown,
		workCd:      cfg.WorkCooldown,
		dailyCd:     cfg.DailyCooldown,
		attempts:    cfg.UpdateAttempts,
	}
	if o.clock == nil {
		o.clock = clock.New()
	}
	if len(o.jobs) == 0 {
		o.jobs = DefaultJobs()
	}
	if o.advCooldown <= 0 {
		o.advCooldown = DefaultAdventureCooldown
	}
	if o.workCd <= 0 {
		o.workCd = DefaultWorkCooldown
	}
	if o.dailyCd <= 0 {
		o.dailyCd = DefaultDailyCooldown
	}
	if o.attempts < 1 {
		o.attempts = profilerepo.DefaultUpdateAttempts
	}
	return o, nil
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

func (o *orchestrator) Adventure(ctx context.Context, input *AdventureInput) (*AdventureOutput, error) {
	if input == nil || input.UserID == "" || input.Location == "" {
		return nil, errors.InvalidArgument("user id and location are required")
	}

	loc, err := o.catalog.Location(input.Location)
	if err != nil {
		return nil, err
	}

	now := o.clock.Now()
	action := adventureCooldownPrefix + loc.ID
	rewards := catalog.RollLoot(rng.New(o.seed(input.Seed)), loc.Loot)

	var leveledUp bool
	updated, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if err := checkCooldown(p, action, now); err != nil {
			return err
		}
		p.SetCooldown(action, now.Add(o.advCooldown))
		p.Adventures++
		p.Coins += rewards.Coins
		for id, qty := range rewards.Items {
			p.AddItem(id, qty)
		}
		gain, gainErr := o.progression.ApplyGain(p, rewards.Experience)
		if gainErr != nil {
			return gainErr
		}
		leveledUp = gain.LeveledUp
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "adventure resolved",
		"profile_id", input.UserID,
		"location", loc.ID,
		"coins", rewards.Coins,
		"experience", rewards.Experience)

	return &AdventureOutput{
		Profile:  updated,
		Location: loc.ID,
		Rewards:  rewards,
		LevelUp:  leveledUp,
	}, nil
}

func (o *orchestrator) Work(ctx context.Context, input *WorkInput) (*WorkOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user id is required")
	}

	now := o.clock.Now()
	src := rng.New(o.seed(input.Seed))
	job := o.jobs[src.Intn(len(o.jobs))]
	coins := int64(rng.IntBetween(src, int(job.CoinsMin), int(job.CoinsMax)))
	xp := int64(rng.IntBetween(src, int(job.ExperienceMin), int(job.ExperienceMax)))

	var leveledUp bool
	updated, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if err := checkCooldown(p, workCooldownAction, now); err != nil {
			return err
		}
		p.SetCooldown(workCooldownAction, now.Add(o.workCd))
		p.WorkShifts++
		p.Coins += coins
		gain, gainErr := o.progression.ApplyGain(p, xp)
		if gainErr != nil {
			return gainErr
		}
		leveledUp = gain.LeveledUp
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "work shift resolved",
		"profile_id", input.UserID,
		"job", job.ID,
		"coins", coins)

	return &WorkOutput{
		Profile:    updated,
		Job:        job,
		Coins:      coins,
		Experience: xp,
		LevelUp:    leveledUp,
	}, nil
}

func (o *orchestrator) Daily(ctx context.Context, input *DailyInput) (*DailyOutput, error) {
	if input == nil || input.UserID == "" {
		return nil, errors.InvalidArgument("user id is required")
	}

	now := o.clock.Now()

	var coins, xp int64
	var streak int
	var leveledUp bool
	updated, err := profilerepo.Apply(ctx, o.repo, input.UserID, o.attempts, func(p *entities.Profile) error {
		if !p.LastDaily.IsZero() {
			since := now.Sub(p.LastDaily)
			if since < o.dailyCd {
				return errors.CooldownActive("daily", o.dailyCd-since)
			}
			if since < dailyStreakWindow {
				streak = p.DailyStreak + 1
				if streak > dailyStreakCap {
					streak = dailyStreakCap
				}
			} else {
				streak = 1
			}
		} else {
			streak = 1
		}

		coins = int64(dailyBaseCoins + dailyCoinsPerLvl*p.Level + dailyStreakBonus*(streak-1))
		xp = int64(dailyBaseXP + dailyXPPerLvl*p.Level)

		p.DailyStreak = streak
		p.LastDaily = now
		p.Coins += coins
		gain, gainErr := o.progression.ApplyGain(p, xp)
		if gainErr != nil {
			return gainErr
		}
		leveledUp = gain.LeveledUp
		return nil
	})
	if err != nil {
		return nil, err
	}

	slog.InfoContext(ctx, "daily claimed",
		"profile_id", input.UserID,
		"streak", streak,
		"coins", coins)

	return &DailyOutput{
		Profile:    updated,
		Coins:      coins,
		Experience: xp,
		Streak:     streak,
		LevelUp:    leveledUp,
	}, nil
}
