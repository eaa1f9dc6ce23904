package profile_test

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"

	"github.com/epicquest/rpg-engine/internal/entities"
	"github.com/epicquest/rpg-engine/internal/errors"
	"github.com/epicquest/rpg-engine/internal/pkg/clock"
	"github.com/epicquest/rpg-engine/internal/repositories/profile"
	"github.com/epicquest/rpg-engine/internal/testutils"
)

const testProfileID = "user_123"

type RedisRepositoryTestSuite struct {
	suite.Suite
	repo    profile.Repository
	clock   *clock.Fixed
	cleanup func()
	ctx     context.Context
}

func (s *RedisRepositoryTestSuite) SetupTest() {
	client, cleanup := testutils.CreateTestRedisClient(s.T())
	s.cleanup = cleanup
	s.clock = clock.NewFixed(time.Date(2025, 6, 1, 12, 0, 0, 0, time.UTC))

	repo, err := profile.NewRedis(&profile.RedisConfig{
		Client: client,
		Clock:  s.clock,
	})
	s.Require().NoError(err)
	s.repo = repo
	s.ctx = context.Background()
}

func (s *RedisRepositoryTestSuite) TearDownTest() {
	s.cleanup()
}

func (s *RedisRepositoryTestSuite) newProfile() *entities.Profile {
	return &entities.Profile{
		ID:         testProfileID,
		Level:      1,
		Experience: 0,
		Attack:     10,
		Defense:    5,
		Speed:      5,
		MaxHealth:  100,
		Health:     100,
		Coins:      100,
	}
}

func (s *RedisRepositoryTestSuite) TestCreate() {
	out, err := s.repo.Create(s.ctx, profile.CreateInput{Profile: s.newProfile()})
	s.Require().NoError(err)
	s.Equal(testProfileID, out.Profile.ID)
	s.Equal(int64(1), out.Profile.Version)
	s.Equal(s.clock.Now().UTC(), out.Profile.CreatedAt)
	s.Equal(out.Profile.CreatedAt, out.Profile.UpdatedAt)
}

func (s *RedisRepositoryTestSuite) TestCreate_AlreadyExists() {
	_, err := s.repo.Create(s.ctx, profile.CreateInput{Profile: s.newProfile()})
	s.Require().NoError(err)

	_, err = s.repo.Create(s.ctx, profile.CreateInput{Profile: s.newProfile()})
	s.Require().Error(err)
	s.True(errors.IsAlreadyExists(err))
}

func (s *RedisRepositoryTestSuite) TestCreate_Validation() {
	_, err := s.repo.Create(s.ctx, profile.CreateInput{})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Create(s.ctx, profile.CreateInput{Profile: &entities.Profile{}})
	s.True(errors.IsInvalidArgument(err))
}

func (s *RedisRepositoryTestSuite) TestGet_RoundTrip() {
	created := s.newProfile()
	created.AddItem("health_potion", 3)
	created.Equipped = map[entities.Slot]string{entities.SlotWeapon: "rusty_dagger"}
	created.SetCooldown("adventure", s.clock.Now().Add(30*time.Minute))

	_, err := s.repo.Create(s.ctx, profile.CreateInput{Profile: created})
	s.Require().NoError(err)

	got, err := s.repo.Get(s.ctx, profile.GetInput{ID: testProfileID})
	s.Require().NoError(err)
	s.Equal(int64(1), got.Profile.Version)
	s.Equal(3, got.Profile.ItemCount("health_potion"))
	s.Equal("rusty_dagger", got.Profile.EquippedItem(entities.SlotWeapon))
	s.True(got.Profile.CooldownExpiry("adventure").Equal(s.clock.Now().Add(30 * time.Minute)))
}

func (s *RedisRepositoryTestSuite) TestGet_NotFound() {
	_, err := s.repo.Get(s.ctx, profile.GetInput{ID: "nobody"})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate() {
	created, err := s.repo.Create(s.ctx, profile.CreateInput{Profile: s.newProfile()})
	s.Require().NoError(err)

	s.clock.Advance(time.Hour)

	changed := created.Profile.Clone()
	changed.Coins = 250
	changed.Experience = 120

	out, err := s.repo.Update(s.ctx, profile.UpdateInput{
		ExpectedVersion: created.Profile.Version,
		Profile:         changed,
	})
	s.Require().NoError(err)
	s.Equal(int64(2), out.Version)
	s.Equal(int64(250), out.Profile.Coins)
	s.Equal(created.Profile.CreatedAt, out.Profile.CreatedAt)
	s.True(out.Profile.UpdatedAt.After(out.Profile.CreatedAt))

	got, err := s.repo.Get(s.ctx, profile.GetInput{ID: testProfileID})
	s.Require().NoError(err)
	s.Equal(int64(2), got.Profile.Version)
	s.Equal(int64(250), got.Profile.Coins)
}

func (s *RedisRepositoryTestSuite) TestUpdate_VersionConflict() {
	created, err := s.repo.Create(s.ctx, profile.CreateInput{Profile: s.newProfile()})
	s.Require().NoError(err)

	// Two readers take the same snapshot.
	first := created.Profile.Clone()
	second := created.Profile.Clone()

	first.Coins = 200
	winner, err := s.repo.Update(s.ctx, profile.UpdateInput{
		ExpectedVersion: created.Profile.Version,
		Profile:         first,
	})
	s.Require().NoError(err)
	s.Equal(int64(2), winner.Version)

	second.Experience = 500
	_, err = s.repo.Update(s.ctx, profile.UpdateInput{
		ExpectedVersion: created.Profile.Version,
		Profile:         second,
	})
	s.Require().Error(err)
	s.True(errors.IsVersionConflict(err))

	// The loser re-reads and retries against the new version.
	fresh, err := s.repo.Get(s.ctx, profile.GetInput{ID: testProfileID})
	s.Require().NoError(err)
	s.Equal(int64(200), fresh.Profile.Coins)

	retry := fresh.Profile.Clone()
	retry.Experience = 500
	out, err := s.repo.Update(s.ctx, profile.UpdateInput{
		ExpectedVersion: fresh.Profile.Version,
		Profile:         retry,
	})
	s.Require().NoError(err)
	s.Equal(int64(3), out.Version)
	s.Equal(int64(200), out.Profile.Coins)
	s.Equal(int64(500), out.Profile.Experience)
}

func (s *RedisRepositoryTestSuite) TestUpdate_NotFound() {
	p := s.newProfile()
	_, err := s.repo.Update(s.ctx, profile.UpdateInput{ExpectedVersion: 1, Profile: p})
	s.Require().Error(err)
	s.True(errors.IsNotFound(err))
}

func (s *RedisRepositoryTestSuite) TestUpdate_Validation() {
	_, err := s.repo.Update(s.ctx, profile.UpdateInput{ExpectedVersion: 1})
	s.True(errors.IsInvalidArgument(err))

	_, err = s.repo.Update(s.ctx, profile.UpdateInput{ExpectedVersion: 0, Profile: s.newProfile()})
	s.True(errors.IsInvalidArgument(err))
}

func TestRedisRepositoryTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepositoryTestSuite))
}
