package farm

import (
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/chickenroad/internal/domain/models"
)

const (
	// LifeSpan is the age, in aging ticks, at which a chicken dies of old age.
	LifeSpan = 5

	epidemicDamage = 20
	stormEggLoss   = 10
	eventOutcomes  = 10
)

// DecayHealth takes one health point from every chicken, never below zero.
// Any chicken left at zero raises a death notice; the last one wins. It
// returns the notice raised by this tick, if any.
func (s *Store) DecayHealth() *models.DeathNotice {
	var raised *models.DeathNotice
	_ = s.mutate(func() error {
		for i := range s.chickens {
			s.chickens[i].Health = max(0, s.chickens[i].Health-1)
			if s.chickens[i].Health == 0 {
				s.deathNotice = models.NewDeathNotice(s.chickens[i])
				raised = s.deathNotice
			}
		}
		if raised != nil {
			notice := *raised
			raised = &notice
		}
		return nil
	})
	if raised != nil {
		s.logger.Debug("chicken starved", zap.String("chicken_id", raised.ChickenID.String()), zap.String("name", raised.Name))
	}
	return raised
}

// AgeChickens makes every chicken one tick older. Chickens at LifeSpan or
// beyond raise a death notice under the same last-wins policy as DecayHealth.
func (s *Store) AgeChickens() *models.DeathNotice {
	var raised *models.DeathNotice
	_ = s.mutate(func() error {
		for i := range s.chickens {
			s.chickens[i].Age++
			if s.chickens[i].Age >= LifeSpan {
				s.deathNotice = models.NewDeathNotice(s.chickens[i])
				raised = s.deathNotice
			}
		}
		if raised != nil {
			notice := *raised
			raised = &notice
		}
		return nil
	})
	if raised != nil {
		s.logger.Debug("chicken died of old age", zap.String("chicken_id", raised.ChickenID.String()), zap.String("name", raised.Name))
	}
	return raised
}

// RandomEvent rolls one of ten outcomes and applies it.
func (s *Store) RandomEvent() models.RandomEvent {
	event := models.EventNone
	_ = s.mutate(func() error {
		switch s.roller.Intn(eventOutcomes) + 1 {
		case 1:
			event = models.EventEpidemic
			// Health may drop below zero here; the next decay tick clamps it.
			for i := range s.chickens {
				s.chickens[i].Health -= epidemicDamage
			}
		case 2:
			event = models.EventStorm
			s.eggs = max(0, s.eggs-stormEggLoss)
		case 3:
			event = models.EventLuckyDay
			for i := range s.chickens {
				s.chickens[i].Productivity++
			}
		}
		return nil
	})

	s.logger.Info("random event", zap.String("event", string(event)))
	return event
}

// ConfirmDeath removes the chicken and clears the pending death notice. It
// reports whether a chicken was removed; the notice is cleared either way.
func (s *Store) ConfirmDeath(chickenID uuid.UUID) bool {
	var removed bool
	_ = s.mutate(func() error {
		if idx := s.indexOf(chickenID); idx >= 0 {
			s.chickens = append(s.chickens[:idx], s.chickens[idx+1:]...)
			removed = true
		}
		s.deathNotice = nil
		return nil
	})
	if removed {
		s.logger.Info("chicken buried", zap.String("chicken_id", chickenID.String()))
	}
	return removed
}
