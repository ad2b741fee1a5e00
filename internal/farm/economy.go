package farm

import (
	"fmt"
	"strings"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/chickenroad/internal/domain/models"
)

// Cumulative 1..100 roll thresholds for the chicken type draw.
const (
	goldenEggsThreshold = 5
	tripleEggsThreshold = 15
	doubleEggsThreshold = 30
	lessFoodThreshold   = 45
)

const (
	capacityUpgradeStep = 5
	healthPerFeeding    = 10
	goldenEggValue      = 3
)

// DrawChickenType maps a roll in [1, 100] onto a chicken type.
func DrawChickenType(roll int) models.ChickenType {
	switch {
	case roll <= goldenEggsThreshold:
		return models.ChickenGoldenEggs
	case roll <= tripleEggsThreshold:
		return models.ChickenTripleEggs
	case roll <= doubleEggsThreshold:
		return models.ChickenDoubleEggs
	case roll <= lessFoodThreshold:
		return models.ChickenLessFood
	default:
		return models.ChickenStandard
	}
}

// CreateFirstChicken hatches the starter chicken. Only valid on an empty flock.
func (s *Store) CreateFirstChicken(name string) (models.Chicken, error) {
	var chicken models.Chicken
	err := s.mutate(func() error {
		if len(s.chickens) > 0 {
			return ErrFlockNotEmpty
		}
		chicken = models.NewChicken(strings.TrimSpace(name), models.ChickenStandard)
		s.chickens = append(s.chickens, chicken)
		return nil
	})
	if err != nil {
		return models.Chicken{}, err
	}

	s.logger.Info("first chicken hatched", zap.String("chicken_id", chicken.ID.String()), zap.String("name", chicken.Name))
	return chicken, nil
}

// BuyChicken purchases a chicken of a randomly drawn type and doubles the price of the next one.
func (s *Store) BuyChicken(name string) (models.Chicken, error) {
	var chicken models.Chicken
	var cost int
	err := s.mutate(func() error {
		if len(s.chickens) >= s.economy.MaxChickens {
			return ErrFlockFull
		}
		if s.economy.Money < s.economy.ChickenCost {
			s.notEnoughMoney = true
			return fmt.Errorf("buy chicken for %d: %w", s.economy.ChickenCost, ErrInsufficientFunds)
		}

		kind := DrawChickenType(s.roller.Intn(100) + 1)
		chicken = models.NewChicken(strings.TrimSpace(name), kind)
		cost = s.economy.ChickenCost

		s.economy.Money -= cost
		s.chickens = append(s.chickens, chicken)
		s.economy.ChickenCost *= 2
		return nil
	})
	if err != nil {
		s.logger.Debug("buy chicken rejected", zap.Error(err))
		return models.Chicken{}, err
	}

	s.logger.Info("chicken bought",
		zap.String("chicken_id", chicken.ID.String()),
		zap.String("name", chicken.Name),
		zap.String("type", string(chicken.Type)),
		zap.Int("cost", cost))
	return chicken, nil
}

// SellChicken removes a chicken and refunds a quarter of the current chicken price.
// The refund follows the inflated price, not what was originally paid.
func (s *Store) SellChicken(id uuid.UUID) (int, error) {
	var refund int
	err := s.mutate(func() error {
		idx := s.indexOf(id)
		if idx < 0 {
			return ErrChickenNotFound
		}
		refund = s.economy.ChickenCost / 4
		s.economy.Money += refund
		s.chickens = append(s.chickens[:idx], s.chickens[idx+1:]...)
		return nil
	})
	if err != nil {
		return 0, err
	}

	s.logger.Info("chicken sold", zap.String("chicken_id", id.String()), zap.Int("refund", refund))
	return refund, nil
}

// FeedChickens restores health across the flock when the feed is affordable.
func (s *Store) FeedChickens() error {
	return s.mutate(func() error {
		cost := len(s.chickens) * s.economy.FoodCost / s.economy.FoodEfficiency
		if s.economy.Money < cost {
			s.notEnoughMoney = true
			return fmt.Errorf("feed flock for %d: %w", cost, ErrInsufficientFunds)
		}

		s.economy.Money -= cost
		gain := healthPerFeeding * s.economy.FoodEfficiency
		for i := range s.chickens {
			s.chickens[i].Health = min(models.MaxHealth, s.chickens[i].Health+gain)
		}
		return nil
	})
}

// CollectEggs credits every chicken's productivity to the egg counters.
func (s *Store) CollectEggs() {
	_ = s.mutate(func() error {
		for _, c := range s.chickens {
			if c.Type == models.ChickenGoldenEggs {
				s.goldenEggs += c.Productivity
			} else {
				s.eggs += c.Productivity
			}
		}
		return nil
	})
}

// SellEggs converts all collected eggs to money and returns the amount earned.
func (s *Store) SellEggs() int {
	var earned int
	_ = s.mutate(func() error {
		mult := s.economy.EggValueMultiplier
		earned = s.eggs*mult + s.goldenEggs*goldenEggValue*mult
		s.economy.Money += earned
		s.eggs = 0
		s.goldenEggs = 0
		return nil
	})
	return earned
}

// BuyUpgrade dispatches to the purchase of the named upgrade.
func (s *Store) BuyUpgrade(kind models.UpgradeKind) error {
	switch kind {
	case models.UpgradeCapacity:
		return s.BuyCapacityUpgrade()
	case models.UpgradeFood:
		return s.BuyFoodEfficiencyUpgrade()
	case models.UpgradeEggValue:
		return s.BuyEggValueUpgrade()
	default:
		return fmt.Errorf("%w: %q", ErrUnknownUpgrade, kind)
	}
}

// BuyCapacityUpgrade raises MaxChickens by five.
func (s *Store) BuyCapacityUpgrade() error {
	return s.buyUpgrade(models.UpgradeCapacity, &s.economy.CapacityUpgradeCost, func() {
		s.economy.MaxChickens += capacityUpgradeStep
	})
}

// BuyFoodEfficiencyUpgrade makes feeding cheaper and more nourishing.
func (s *Store) BuyFoodEfficiencyUpgrade() error {
	return s.buyUpgrade(models.UpgradeFood, &s.economy.FoodUpgradeCost, func() {
		s.economy.FoodEfficiency++
	})
}

// BuyEggValueUpgrade raises the egg sale multiplier.
func (s *Store) BuyEggValueUpgrade() error {
	return s.buyUpgrade(models.UpgradeEggValue, &s.economy.EggValueUpgradeCost, func() {
		s.economy.EggValueMultiplier++
	})
}

// buyUpgrade charges *cost, applies the effect and doubles *cost. cost must
// point into s.economy and is only dereferenced under the lock.
func (s *Store) buyUpgrade(kind models.UpgradeKind, cost *int, apply func()) error {
	var paid int
	err := s.mutate(func() error {
		if s.economy.Money < *cost {
			s.notEnoughMoney = true
			return fmt.Errorf("buy %s upgrade for %d: %w", kind, *cost, ErrInsufficientFunds)
		}
		paid = *cost
		s.economy.Money -= paid
		apply()
		*cost *= 2
		return nil
	})
	if err != nil {
		s.logger.Debug("upgrade rejected", zap.Error(err))
		return err
	}

	s.logger.Info("upgrade bought", zap.String("upgrade", string(kind)), zap.Int("cost", paid))
	return nil
}
