package models

import "github.com/google/uuid"

// ChickenType determines egg productivity and flavor of a chicken.
type ChickenType string

const (
	ChickenStandard   ChickenType = "standard"
	ChickenLessFood   ChickenType = "less_food"
	ChickenDoubleEggs ChickenType = "double_eggs"
	ChickenTripleEggs ChickenType = "triple_eggs"
	ChickenGoldenEggs ChickenType = "golden_eggs"
)

// MaxHealth is the upper bound of a chicken's health.
const MaxHealth = 100

// Productivity returns the number of eggs a freshly hatched chicken of this type lays per collection.
func (t ChickenType) Productivity() int {
	switch t {
	case ChickenDoubleEggs:
		return 2
	case ChickenTripleEggs:
		return 3
	default:
		return 1
	}
}

// Chicken is a single member of the flock.
type Chicken struct {
	ID           uuid.UUID   `json:"id"`
	Name         string      `json:"name"`
	Type         ChickenType `json:"type"`
	Age          int         `json:"age"`
	Health       int         `json:"health"`
	Productivity int         `json:"productivity"`
}

// NewChicken hatches a chicken of the given type with full health.
func NewChicken(name string, kind ChickenType) Chicken {
	return Chicken{
		ID:           uuid.New(),
		Name:         name,
		Type:         kind,
		Age:          0,
		Health:       MaxHealth,
		Productivity: kind.Productivity(),
	}
}

// DeathNotice names a chicken whose removal condition has been met. The chicken
// stays in the flock until the notice is confirmed.
type DeathNotice struct {
	ID        uuid.UUID `json:"id"`
	ChickenID uuid.UUID `json:"chicken_id"`
	Name      string    `json:"name"`
}

// NewDeathNotice builds a notice for the supplied chicken.
func NewDeathNotice(c Chicken) *DeathNotice {
	return &DeathNotice{ID: uuid.New(), ChickenID: c.ID, Name: c.Name}
}
