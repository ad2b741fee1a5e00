package reporting

import (
	"fmt"
	"math"
	"strings"

	"go.uber.org/zap"

	"github.com/mamadbah2/chickenroad/internal/domain/models"
	"github.com/mamadbah2/chickenroad/internal/farm"
)

// SnapshotSource provides the farm state to report on.
type SnapshotSource interface {
	Snapshot() models.FarmSnapshot
}

// Service produces short human readable farm summaries.
type Service struct {
	source SnapshotSource
	logger *zap.Logger
}

// NewService wires a new reporting service instance.
func NewService(source SnapshotSource, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{source: source, logger: logger}
}

// FarmReport renders the current farm state.
func (s *Service) FarmReport() string {
	snap := s.source.Snapshot()

	lines := []string{
		s.flockSummary(snap),
		fmt.Sprintf("Eggs: %d regular, %d golden (worth %d).", snap.EggsCollected, snap.GoldenEggsCollected, snap.EggSaleValue()),
		fmt.Sprintf("Money: %d. Next chicken costs %d.", snap.Money, snap.ChickenCost),
		fmt.Sprintf("Upgrades: capacity %d (next %d), food x%d (next %d), egg value x%d (next %d).",
			snap.MaxChickens, snap.CapacityUpgradeCost,
			snap.FoodEfficiency, snap.FoodUpgradeCost,
			snap.EggValueMultiplier, snap.EggValueUpgradeCost),
	}

	if snap.DeathNotice != nil {
		lines = append(lines, fmt.Sprintf("Pending death: %s awaits confirmation.", snap.DeathNotice.Name))
	}

	return strings.Join(lines, "\n")
}

// LogFarmReport writes the report fields as a structured log entry.
func (s *Service) LogFarmReport() {
	snap := s.source.Snapshot()
	s.logger.Info("farm report",
		zap.Int("chickens", len(snap.Chickens)),
		zap.Float64("average_health", AverageHealth(snap.Chickens)),
		zap.Int("eggs", snap.EggsCollected),
		zap.Int("golden_eggs", snap.GoldenEggsCollected),
		zap.Int("egg_value", snap.EggSaleValue()),
		zap.Int("money", snap.Money),
		zap.Bool("death_pending", snap.DeathNotice != nil))
}

func (s *Service) flockSummary(snap models.FarmSnapshot) string {
	if len(snap.Chickens) == 0 {
		return fmt.Sprintf("Flock: empty (capacity %d).", snap.MaxChickens)
	}

	elders := 0
	for _, c := range snap.Chickens {
		if c.Age >= farm.LifeSpan-1 {
			elders++
		}
	}

	summary := fmt.Sprintf("Flock: %d/%d chickens, average health %.1f, %d eggs per collection.",
		len(snap.Chickens), snap.MaxChickens, AverageHealth(snap.Chickens), EggsPerCollection(snap.Chickens))
	if elders > 0 {
		summary += fmt.Sprintf(" %d near the end of life.", elders)
	}
	return summary
}

// AverageHealth returns the mean flock health rounded to one decimal.
func AverageHealth(chickens []models.Chicken) float64 {
	if len(chickens) == 0 {
		return 0
	}
	var total int
	for _, c := range chickens {
		total += c.Health
	}
	avg := float64(total) / float64(len(chickens))
	return math.Round(avg*10) / 10
}

// EggsPerCollection sums the productivity of the flock.
func EggsPerCollection(chickens []models.Chicken) int {
	var total int
	for _, c := range chickens {
		total += c.Productivity
	}
	return total
}
