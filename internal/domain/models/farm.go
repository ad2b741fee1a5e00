package models

// Economy holds the tunable prices and levels of a farm.
type Economy struct {
	Money               int `json:"money"`
	MaxChickens         int `json:"max_chickens"`
	ChickenCost         int `json:"chicken_cost"`
	FoodCost            int `json:"food_cost"`
	FoodEfficiency      int `json:"food_efficiency"`
	EggValueMultiplier  int `json:"egg_value_multiplier"`
	CapacityUpgradeCost int `json:"capacity_upgrade_cost"`
	FoodUpgradeCost     int `json:"food_upgrade_cost"`
	EggValueUpgradeCost int `json:"egg_value_upgrade_cost"`
}

// DefaultEconomy mirrors the starting conditions of a new game.
func DefaultEconomy() Economy {
	return Economy{
		Money:               100,
		MaxChickens:         5,
		ChickenCost:         50,
		FoodCost:            25,
		FoodEfficiency:      1,
		EggValueMultiplier:  1,
		CapacityUpgradeCost: 200,
		FoodUpgradeCost:     100,
		EggValueUpgradeCost: 150,
	}
}

// FarmSnapshot is a read-only copy of the farm state handed to observers.
type FarmSnapshot struct {
	Economy
	Chickens            []Chicken    `json:"chickens"`
	EggsCollected       int          `json:"eggs_collected"`
	GoldenEggsCollected int          `json:"golden_eggs_collected"`
	NotEnoughMoney      bool         `json:"not_enough_money"`
	DeathNotice         *DeathNotice `json:"death_notice,omitempty"`
}

// EggSaleValue is the money SellEggs would yield right now.
func (s FarmSnapshot) EggSaleValue() int {
	return s.EggsCollected*s.EggValueMultiplier + s.GoldenEggsCollected*3*s.EggValueMultiplier
}

// UpgradeKind enumerates purchasable farm upgrades.
type UpgradeKind string

const (
	UpgradeCapacity UpgradeKind = "capacity"
	UpgradeFood     UpgradeKind = "food"
	UpgradeEggValue UpgradeKind = "egg-value"
)

// RandomEvent enumerates the outcomes of a random-event tick.
type RandomEvent string

const (
	EventNone     RandomEvent = "none"
	EventEpidemic RandomEvent = "epidemic"
	EventStorm    RandomEvent = "storm"
	EventLuckyDay RandomEvent = "lucky_day"
)
