package farm

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mamadbah2/chickenroad/internal/domain/models"
)

// seqRoller replays raw Intn results in order, wrapping around.
type seqRoller struct {
	values []int
	next   int
}

func (r *seqRoller) Intn(n int) int {
	v := r.values[r.next%len(r.values)]
	r.next++
	return v % n
}

func newTestStore(t *testing.T, econ models.Economy, rolls ...int) *Store {
	t.Helper()
	if len(rolls) == 0 {
		rolls = []int{99}
	}
	return NewStore(WithEconomy(econ), WithRoller(&seqRoller{values: rolls}))
}

func richEconomy() models.Economy {
	econ := models.DefaultEconomy()
	econ.Money = 1_000_000
	return econ
}

func TestCreateFirstChicken(t *testing.T) {
	s := newTestStore(t, models.DefaultEconomy())

	c, err := s.CreateFirstChicken("  Henrietta ")
	require.NoError(t, err)
	assert.Equal(t, "Henrietta", c.Name)
	assert.Equal(t, models.ChickenStandard, c.Type)
	assert.Equal(t, 0, c.Age)
	assert.Equal(t, 100, c.Health)
	assert.Equal(t, 1, c.Productivity)

	_, err = s.CreateFirstChicken("Second")
	assert.ErrorIs(t, err, ErrFlockNotEmpty)
	assert.Len(t, s.Snapshot().Chickens, 1)
}

func TestSnapshotIsACopy(t *testing.T) {
	s := newTestStore(t, models.DefaultEconomy())
	_, err := s.CreateFirstChicken("Henrietta")
	require.NoError(t, err)

	snap := s.Snapshot()
	snap.Chickens[0].Health = 3
	snap.Chickens = append(snap.Chickens, models.Chicken{Name: "ghost"})

	fresh := s.Snapshot()
	require.Len(t, fresh.Chickens, 1)
	assert.Equal(t, 100, fresh.Chickens[0].Health)
}

func TestSubscribeReceivesEveryMutation(t *testing.T) {
	s := newTestStore(t, models.DefaultEconomy())

	var seen []models.FarmSnapshot
	s.Subscribe(func(snap models.FarmSnapshot) {
		seen = append(seen, snap)
	})
	s.Subscribe(nil)

	_, err := s.CreateFirstChicken("Henrietta")
	require.NoError(t, err)
	s.CollectEggs()
	s.SellEggs()

	require.Len(t, seen, 3)
	assert.Len(t, seen[0].Chickens, 1)
	assert.Equal(t, 1, seen[1].EggsCollected)
	assert.Equal(t, 101, seen[2].Money)
}

func TestDismissFundsNotice(t *testing.T) {
	econ := models.DefaultEconomy()
	econ.Money = 0
	s := newTestStore(t, econ)

	require.ErrorIs(t, s.BuyFoodEfficiencyUpgrade(), ErrInsufficientFunds)
	assert.True(t, s.Snapshot().NotEnoughMoney)

	s.DismissFundsNotice()
	assert.False(t, s.Snapshot().NotEnoughMoney)
}
