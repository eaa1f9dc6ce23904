package progression_test

import (
	"testing"

	"github.com/stretchr/testify/suite"

	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
	"github.com/epicquest/rpg-engine/internal/progression"
)

type ProgressionTestSuite struct {
	suite.Suite
	engine *progression.Engine
}

func (s *ProgressionTestSuite) SetupTest() {
	s.engine = progression.New(nil)
}

func (s *ProgressionTestSuite) TestLevelForExperience_Monotonic() {
	prev := 0
	for xp := int64(0); xp <= 5000; xp += 17 {
		level := s.engine.LevelForExperience(xp)
		s.GreaterOrEqual(level, prev, "level dropped at xp=%d", xp)
		prev = level
	}
}

func (s *ProgressionTestSuite) TestLevelForExperience_Idempotent() {
	for _, xp := range []int64{0, 99, 100, 250, 475, 10_000} {
		first := s.engine.LevelForExperience(xp)
		second := s.engine.LevelForExperience(xp)
		s.Equal(first, second, "xp=%d", xp)
	}
}

func (s *ProgressionTestSuite) TestDefaultCurve_Boundaries() {
	s.Equal(1, s.engine.LevelForExperience(0))
	s.Equal(1, s.engine.LevelForExperience(99))
	s.Equal(2, s.engine.LevelForExperience(100))
	s.Equal(3, s.engine.LevelForExperience(250))
	s.Equal(3, s.engine.LevelForExperience(474))
	s.Equal(4, s.engine.LevelForExperience(475))
}

func (s *ProgressionTestSuite) TestApplyGain_ThresholdTableExample() {
	curve, err := progression.NewCurve([]int64{0, 100, 250, 500})
	s.Require().NoError(err)

	engine := progression.New(&progression.Config{
		Curve:  curve,
		Growth: progression.Growth{MaxHealth: 10, Attack: 2, Defense: 1, Speed: 1},
	})

	p := &entities.Profile{
		ID: "user-1", Level: 1, Experience: 0,
		Attack: 10, Defense: 5, Speed: 5, MaxHealth: 100, Health: 40,
	}

	result, err := engine.ApplyGain(p, 250)
	s.Require().NoError(err)

	// 250 XP crosses the level-2 and level-3 thresholds.
	s.True(result.LeveledUp)
	s.Equal(1, result.PreviousLevel)
	s.Equal(3, result.Level)
	s.Equal(3, p.Level)
	s.Equal(int64(250), p.Experience)

	// Two levels of fixed growth, then a full heal.
	s.Equal(120, p.MaxHealth)
	s.Equal(14, p.Attack)
	s.Equal(7, p.Defense)
	s.Equal(7, p.Speed)
	s.Equal(p.MaxHealth, p.Health)
}

func (s *ProgressionTestSuite) TestApplyGain_NoLevelUpKeepsHealth() {
	p := &entities.Profile{
		ID: "user-1", Level: 1, Experience: 0,
		Attack: 10, Defense: 5, Speed: 5, MaxHealth: 100, Health: 30,
	}

	result, err := s.engine.ApplyGain(p, 50)
	s.Require().NoError(err)

	s.False(result.LeveledUp)
	s.Equal(1, p.Level)
	s.Equal(30, p.Health, "no heal without a level-up")
}

func (s *ProgressionTestSuite) TestApplyGain_NegativeRejected() {
	p := &entities.Profile{ID: "user-1", Level: 1}

	result, err := s.engine.ApplyGain(p, -1)

	s.Nil(result)
	s.True(errors.IsInvalidArgument(err))
}

func (s *ProgressionTestSuite) TestApplyGain_RecomputeReproducesStoredLevel() {
	p := &entities.Profile{
		ID: "user-1", Level: 1, Experience: 0,
		Attack: 10, Defense: 5, Speed: 5, MaxHealth: 100, Health: 100,
	}

	_, err := s.engine.ApplyGain(p, 1234)
	s.Require().NoError(err)

	s.Equal(p.Level, s.engine.LevelForExperience(p.Experience))
}

func (s *ProgressionTestSuite) TestNewCurve_Invalid() {
	testCases := []struct {
		name       string
		thresholds []int64
	}{
		{"empty", nil},
		{"nonzero start", []int64{50, 100}},
		{"not increasing", []int64{0, 100, 100}},
		{"decreasing", []int64{0, 200, 150}},
	}

	for _, tc := range testCases {
		s.Run(tc.name, func() {
			curve, err := progression.NewCurve(tc.thresholds)
			s.Nil(curve)
			s.True(errors.IsInvalidArgument(err))
		})
	}
}

func TestProgressionSuite(t *testing.T) {
	suite.Run(t, new(ProgressionTestSuite))
}
