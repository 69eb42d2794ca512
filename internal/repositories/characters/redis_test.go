package characters

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/suite"

	"github.com/KirkDiggler/sheet-engine/internal/character"
	dnderr "github.com/KirkDiggler/sheet-engine/internal/errors"
	"github.com/KirkDiggler/sheet-engine/internal/rulebook"
)

type staticUUIDGenerator struct {
	id string
}

func (g *staticUUIDGenerator) New() string {
	return g.id
}

type RedisRepoTestSuite struct {
	suite.Suite
	miniRedis *miniredis.Miniredis
	client    *redis.Client
	repo      Repository
	ctx       context.Context
}

func (s *RedisRepoTestSuite) SetupTest() {
	mr, err := miniredis.Run()
	s.Require().NoError(err)
	s.miniRedis = mr

	s.client = redis.NewClient(&redis.Options{Addr: mr.Addr()})
	s.repo = NewRedisRepository(&RedisRepoConfig{
		Client:        s.client,
		UUIDGenerator: &staticUUIDGenerator{id: "generated-id"},
	})
	s.ctx = context.Background()
}

func (s *RedisRepoTestSuite) TearDownTest() {
	s.miniRedis.Close()
}

func TestRedisRepoTestSuite(t *testing.T) {
	suite.Run(t, new(RedisRepoTestSuite))
}

func (s *RedisRepoTestSuite) newDraft(id string) *character.Draft {
	return &character.Draft{
		ID:      id,
		OwnerID: "owner-1",
		Name:    "Tordek",
		Race:    "dwarf",
		Class:   "fighter",
		Level:   3,
		BaseScores: map[rulebook.Ability]int{
			"str": 16, "dex": 14, "con": 14, "int": 10, "wis": 12, "cha": 8,
		},
	}
}

func (s *RedisRepoTestSuite) TestCreateAndGet() {
	draft := s.newDraft("char-1")
	s.Require().NoError(s.repo.Create(s.ctx, draft))

	s.True(s.miniRedis.Exists("character:char-1"))

	got, err := s.repo.Get(s.ctx, "char-1")
	s.Require().NoError(err)
	s.Equal("Tordek", got.Name)
	s.Equal(3, got.Level)
	s.Equal(16, got.BaseScores["str"])
}

func (s *RedisRepoTestSuite) TestCreateAssignsID() {
	draft := s.newDraft("")
	s.Require().NoError(s.repo.Create(s.ctx, draft))
	s.Equal("generated-id", draft.ID)
	s.True(s.miniRedis.Exists("character:generated-id"))
}

func (s *RedisRepoTestSuite) TestCreateDuplicate() {
	draft := s.newDraft("char-1")
	s.Require().NoError(s.repo.Create(s.ctx, draft))

	err := s.repo.Create(s.ctx, s.newDraft("char-1"))
	s.Require().Error(err)
	s.True(dnderr.Is(err, dnderr.CodeAlreadyExists))
}

func (s *RedisRepoTestSuite) TestCreateValidation() {
	s.Error(s.repo.Create(s.ctx, nil))

	draft := s.newDraft("char-1")
	draft.OwnerID = ""
	s.Error(s.repo.Create(s.ctx, draft))
}

func (s *RedisRepoTestSuite) TestGetNotFound() {
	_, err := s.repo.Get(s.ctx, "missing")
	s.Require().Error(err)
	s.True(dnderr.IsNotFound(err))
	s.Equal("missing", dnderr.GetMeta(err)["character_id"])

	_, err = s.repo.Get(s.ctx, "")
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestGetByOwner() {
	s.Require().NoError(s.repo.Create(s.ctx, s.newDraft("char-1")))

	second := s.newDraft("char-2")
	second.Name = "Mialee"
	s.Require().NoError(s.repo.Create(s.ctx, second))

	other := s.newDraft("char-3")
	other.OwnerID = "owner-2"
	s.Require().NoError(s.repo.Create(s.ctx, other))

	drafts, err := s.repo.GetByOwner(s.ctx, "owner-1")
	s.Require().NoError(err)
	s.Len(drafts, 2)

	names := []string{drafts[0].Name, drafts[1].Name}
	s.ElementsMatch(names, []string{"Tordek", "Mialee"})

	drafts, err = s.repo.GetByOwner(s.ctx, "owner-3")
	s.Require().NoError(err)
	s.Empty(drafts)

	_, err = s.repo.GetByOwner(s.ctx, "")
	s.Error(err)
}

func (s *RedisRepoTestSuite) TestUpdate() {
	draft := s.newDraft("char-1")
	s.Require().NoError(s.repo.Create(s.ctx, draft))

	draft.Level = 4
	draft.Purse.Gold = 50
	s.Require().NoError(s.repo.Update(s.ctx, draft))

	got, err := s.repo.Get(s.ctx, "char-1")
	s.Require().NoError(err)
	s.Equal(4, got.Level)
	s.Equal(50, got.Purse.Gold)
}

func (s *RedisRepoTestSuite) TestUpdateNotFound() {
	err := s.repo.Update(s.ctx, s.newDraft("missing"))
	s.Require().Error(err)
	s.True(dnderr.IsNotFound(err))
}

func (s *RedisRepoTestSuite) TestDelete() {
	s.Require().NoError(s.repo.Create(s.ctx, s.newDraft("char-1")))

	s.Require().NoError(s.repo.Delete(s.ctx, "char-1"))
	s.False(s.miniRedis.Exists("character:char-1"))

	drafts, err := s.repo.GetByOwner(s.ctx, "owner-1")
	s.Require().NoError(err)
	s.Empty(drafts, "owner index entry removed")

	err = s.repo.Delete(s.ctx, "char-1")
	s.Require().Error(err)
	s.True(dnderr.IsNotFound(err))
}

// Legacy documents stored backpack entries as bare strings. Loading one
// through the repository normalizes them.
func (s *RedisRepoTestSuite) TestGetLegacyInventory() {
	doc := `{
		"id": "char-legacy",
		"owner_id": "owner-1",
		"name": "Regdar",
		"race": "human",
		"class": "fighter",
		"level": 1,
		"equipment": ["20x Arrow", "Longsword", {"name": "Torch", "quantity": 3}]
	}`
	s.Require().NoError(s.miniRedis.Set("character:char-legacy", doc))

	got, err := s.repo.Get(s.ctx, "char-legacy")
	s.Require().NoError(err)
	s.Require().Len(got.Backpack, 3)
	s.Equal(character.InventoryEntry{Name: "Arrow", Quantity: 20}, got.Backpack[0])
	s.Equal(character.InventoryEntry{Name: "Longsword", Quantity: 1}, got.Backpack[1])
	s.Equal(character.InventoryEntry{Name: "Torch", Quantity: 3}, got.Backpack[2])
}

func (s *RedisRepoTestSuite) TestRoundTripMagicItem() {
	draft := s.newDraft("char-1")
	draft.Backpack = []character.InventoryEntry{
		{
			Name:     "Flametongue",
			Quantity: 1,
			Magic: &character.MagicItem{
				ID:   "mi-1",
				Kind: character.MagicItemWeapon,
				Weapon: &character.MagicWeapon{
					Category:      "martial-weapons",
					Range:         rulebook.WeaponRangeMelee,
					AttackBonus:   1,
					DamageBonus:   1,
					DamageSources: []string{"1d8", "2d6"},
				},
			},
		},
	}
	s.Require().NoError(s.repo.Create(s.ctx, draft))

	got, err := s.repo.Get(s.ctx, "char-1")
	s.Require().NoError(err)
	s.Require().Len(got.Backpack, 1)
	s.Equal(draft.Backpack[0], got.Backpack[0])
}
