package farm

import (
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/chickenroad/internal/domain/models"
)

func TestDrawChickenTypeThresholds(t *testing.T) {
	cases := []struct {
		roll int
		want models.ChickenType
	}{
		{1, models.ChickenGoldenEggs},
		{5, models.ChickenGoldenEggs},
		{6, models.ChickenTripleEggs},
		{15, models.ChickenTripleEggs},
		{16, models.ChickenDoubleEggs},
		{30, models.ChickenDoubleEggs},
		{31, models.ChickenLessFood},
		{45, models.ChickenLessFood},
		{46, models.ChickenStandard},
		{100, models.ChickenStandard},
	}
	for _, tc := range cases {
		assert.Equal(t, tc.want, DrawChickenType(tc.roll), "roll %d", tc.roll)
	}
}

func TestDrawChickenTypeDistribution(t *testing.T) {
	counts := map[models.ChickenType]int{}
	for roll := 1; roll <= 100; roll++ {
		counts[DrawChickenType(roll)]++
	}
	assert.Equal(t, 5, counts[models.ChickenGoldenEggs])
	assert.Equal(t, 10, counts[models.ChickenTripleEggs])
	assert.Equal(t, 15, counts[models.ChickenDoubleEggs])
	assert.Equal(t, 15, counts[models.ChickenLessFood])
	assert.Equal(t, 55, counts[models.ChickenStandard])
}

func TestBuyChickenSpendsThenRejects(t *testing.T) {
	s := newTestStore(t, models.DefaultEconomy())

	_, err := s.BuyChicken("A")
	require.NoError(t, err)
	snap := s.Snapshot()
	assert.Equal(t, 50, snap.Money)
	assert.Equal(t, 100, snap.ChickenCost)
	assert.False(t, snap.NotEnoughMoney)

	_, err = s.BuyChicken("B")
	assert.ErrorIs(t, err, ErrInsufficientFunds)
	snap = s.Snapshot()
	assert.Equal(t, 50, snap.Money)
	assert.Equal(t, 100, snap.ChickenCost)
	assert.True(t, snap.NotEnoughMoney)
	assert.Len(t, snap.Chickens, 1)
}

func TestBuyChickenRespectsCapacity(t *testing.T) {
	econ := richEconomy()
	econ.MaxChickens = 3
	s := newTestStore(t, econ)

	wantCost := econ.ChickenCost
	for i := 0; i < 3; i++ {
		_, err := s.BuyChicken("hen")
		require.NoError(t, err)
		wantCost *= 2
		assert.Equal(t, wantCost, s.Snapshot().ChickenCost)
	}

	before := s.Snapshot()
	_, err := s.BuyChicken("one too many")
	assert.ErrorIs(t, err, ErrFlockFull)

	after := s.Snapshot()
	assert.Len(t, after.Chickens, 3)
	assert.Equal(t, before.Money, after.Money)
	assert.False(t, after.NotEnoughMoney)
}

func TestBuyChickenDrawsTypeAndProductivity(t *testing.T) {
	// Intn(100) results 0, 10, 20, 40, 80 map to rolls 1, 11, 21, 41, 81.
	s := newTestStore(t, richEconomy(), 0, 10, 20, 40, 80)

	want := []struct {
		kind         models.ChickenType
		productivity int
	}{
		{models.ChickenGoldenEggs, 1},
		{models.ChickenTripleEggs, 3},
		{models.ChickenDoubleEggs, 2},
		{models.ChickenLessFood, 1},
		{models.ChickenStandard, 1},
	}
	for _, w := range want {
		c, err := s.BuyChicken("hen")
		require.NoError(t, err)
		assert.Equal(t, w.kind, c.Type)
		assert.Equal(t, w.productivity, c.Productivity)
		assert.Equal(t, 100, c.Health)
	}

	chickens := s.Snapshot().Chickens
	require.Len(t, chickens, 5)
	assert.Equal(t, models.ChickenGoldenEggs, chickens[0].Type)
	assert.Equal(t, models.ChickenStandard, chickens[4].Type)
}

func TestSellChickenRefundsQuarterOfCurrentPrice(t *testing.T) {
	s := newTestStore(t, models.DefaultEconomy())
	c, err := s.BuyChicken("A")
	require.NoError(t, err)

	refund, err := s.SellChicken(c.ID)
	require.NoError(t, err)
	assert.Equal(t, 25, refund)

	snap := s.Snapshot()
	assert.Equal(t, 75, snap.Money)
	assert.Empty(t, snap.Chickens)
	assert.Equal(t, 100, snap.ChickenCost)

	_, err = s.SellChicken(uuid.New())
	assert.ErrorIs(t, err, ErrChickenNotFound)
	assert.Equal(t, 75, s.Snapshot().Money)
}

func TestFeedChickens(t *testing.T) {
	t.Run("caps health at 100", func(t *testing.T) {
		s := newTestStore(t, models.DefaultEconomy())
		_, err := s.CreateFirstChicken("A")
		require.NoError(t, err)
		for i := 0; i < 5; i++ {
			s.DecayHealth()
		}

		require.NoError(t, s.FeedChickens())
		snap := s.Snapshot()
		assert.Equal(t, 100, snap.Chickens[0].Health)
		assert.Equal(t, 75, snap.Money)
	})

	t.Run("efficiency lowers cost and raises gain", func(t *testing.T) {
		econ := richEconomy()
		econ.FoodEfficiency = 2
		s := newTestStore(t, econ)
		_, err := s.CreateFirstChicken("A")
		require.NoError(t, err)
		for i := 0; i < 50; i++ {
			s.DecayHealth()
		}

		require.NoError(t, s.FeedChickens())
		snap := s.Snapshot()
		assert.Equal(t, 70, snap.Chickens[0].Health)
		assert.Equal(t, econ.Money-12, snap.Money)
	})

	t.Run("rejects when unaffordable", func(t *testing.T) {
		econ := models.DefaultEconomy()
		econ.Money = 10
		s := newTestStore(t, econ)
		_, err := s.CreateFirstChicken("A")
		require.NoError(t, err)
		s.DecayHealth()

		err = s.FeedChickens()
		assert.ErrorIs(t, err, ErrInsufficientFunds)
		snap := s.Snapshot()
		assert.Equal(t, 10, snap.Money)
		assert.Equal(t, 99, snap.Chickens[0].Health)
		assert.True(t, snap.NotEnoughMoney)
	})

	t.Run("empty flock feeds for free", func(t *testing.T) {
		s := newTestStore(t, models.DefaultEconomy())
		require.NoError(t, s.FeedChickens())
		assert.Equal(t, 100, s.Snapshot().Money)
	})
}

func TestCollectAndSellEggs(t *testing.T) {
	// golden, triple, standard
	s := newTestStore(t, richEconomy(), 0, 10, 99)
	for i := 0; i < 3; i++ {
		_, err := s.BuyChicken("hen")
		require.NoError(t, err)
	}
	money := s.Snapshot().Money

	s.CollectEggs()
	s.CollectEggs()
	snap := s.Snapshot()
	assert.Equal(t, 8, snap.EggsCollected)
	assert.Equal(t, 2, snap.GoldenEggsCollected)
	assert.Equal(t, 14, snap.EggSaleValue())

	earned := s.SellEggs()
	assert.Equal(t, 14, earned)
	snap = s.Snapshot()
	assert.Equal(t, money+14, snap.Money)
	assert.Zero(t, snap.EggsCollected)
	assert.Zero(t, snap.GoldenEggsCollected)

	assert.Zero(t, s.SellEggs())
	assert.Equal(t, money+14, s.Snapshot().Money)
}

func TestSellEggsAppliesMultiplier(t *testing.T) {
	econ := richEconomy()
	econ.EggValueMultiplier = 2
	s := newTestStore(t, econ, 0)
	_, err := s.BuyChicken("goldie")
	require.NoError(t, err)
	s.CollectEggs()

	assert.Equal(t, 6, s.SellEggs())
}

func TestUpgrades(t *testing.T) {
	t.Run("capacity", func(t *testing.T) {
		s := newTestStore(t, richEconomy())
		require.NoError(t, s.BuyCapacityUpgrade())
		snap := s.Snapshot()
		assert.Equal(t, 10, snap.MaxChickens)
		assert.Equal(t, 400, snap.CapacityUpgradeCost)
		assert.Equal(t, 1_000_000-200, snap.Money)
	})

	t.Run("food efficiency", func(t *testing.T) {
		s := newTestStore(t, richEconomy())
		require.NoError(t, s.BuyUpgrade(models.UpgradeFood))
		snap := s.Snapshot()
		assert.Equal(t, 2, snap.FoodEfficiency)
		assert.Equal(t, 200, snap.FoodUpgradeCost)
	})

	t.Run("egg value", func(t *testing.T) {
		s := newTestStore(t, richEconomy())
		require.NoError(t, s.BuyUpgrade(models.UpgradeEggValue))
		require.NoError(t, s.BuyUpgrade(models.UpgradeEggValue))
		snap := s.Snapshot()
		assert.Equal(t, 3, snap.EggValueMultiplier)
		assert.Equal(t, 600, snap.EggValueUpgradeCost)
		assert.Equal(t, 1_000_000-150-300, snap.Money)
	})

	t.Run("insufficient funds leaves state untouched", func(t *testing.T) {
		s := newTestStore(t, models.DefaultEconomy())
		before := s.Snapshot()

		assert.ErrorIs(t, s.BuyUpgrade(models.UpgradeCapacity), ErrInsufficientFunds)
		after := s.Snapshot()
		assert.True(t, after.NotEnoughMoney)
		after.NotEnoughMoney = false
		assert.Equal(t, before, after)
	})

	t.Run("unknown kind", func(t *testing.T) {
		s := newTestStore(t, richEconomy())
		assert.ErrorIs(t, s.BuyUpgrade("golden-coop"), ErrUnknownUpgrade)
	})
}
