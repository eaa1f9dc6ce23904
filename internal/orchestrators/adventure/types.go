package adventure

import (
	"github.com/epicquest/rpg-engine/internal/entities"
)

// AdventureInput is the input for a location reward draw. Seed pins the
// draw; zero means derive one.
type AdventureInput struct {
	UserID   string
	Location string
	Seed     int64
}

// AdventureOutput is the output for a location reward draw
type AdventureOutput struct {
	Profile  *entities.Profile
	Location string
	Rewards  entities.RewardBundle
	LevelUp  bool
}

// WorkInput is the input for a work shift
type WorkInput struct {
	UserID string
	Seed   int64
}

// WorkOutput reports the job drawn and what it paid
type WorkOutput struct {
	Profile    *entities.Profile
	Job        Job
	Coins      int64
	Experience int64
	LevelUp    bool
}

// DailyInput is the input for the daily claim
type DailyInput struct {
	UserID string
}

// DailyOutput reports the daily reward and the resulting streak
type DailyOutput struct {
	Profile    *entities.Profile
	Coins      int64
	Experience int64
	Streak     int
	LevelUp    bool
}

// Job is one work shift option with its payout ranges.
type Job struct {
	ID            string
	Name          string
	CoinsMin      int64
	CoinsMax      int64
	ExperienceMin int64
	ExperienceMax int64
}

// DefaultJobs returns the built-in work options.
func DefaultJobs() []Job {
	return []Job{
		{ID: "farmer", Name: "Farmer", CoinsMin: 30, CoinsMax: 80, ExperienceMin: 10, ExperienceMax: 25},
		{ID: "blacksmith", Name: "Blacksmith", CoinsMin: 50, CoinsMax: 120, ExperienceMin: 15, ExperienceMax: 35},
		{ID: "merchant", Name: "Merchant", CoinsMin: 40, CoinsMax: 150, ExperienceMin: 10, ExperienceMax: 30},
		{ID: "guard", Name: "Guard", CoinsMin: 60, CoinsMax: 100, ExperienceMin: 20, ExperienceMax: 40},
		{ID: "miner", Name: "Miner", CoinsMin: 45, CoinsMax: 130, ExperienceMin: 15, ExperienceMax: 40},
	}
}
