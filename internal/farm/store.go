package farm

import (
	"errors"
	"math/rand"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/mamadbah2/chickenroad/internal/domain/models"
)

// ErrInsufficientFunds indicates the farm cannot afford the requested operation.
var ErrInsufficientFunds = errors.New("not enough money")

// ErrFlockFull indicates the flock already holds MaxChickens chickens.
var ErrFlockFull = errors.New("flock is at capacity")

// ErrFlockNotEmpty indicates the first chicken can no longer be created.
var ErrFlockNotEmpty = errors.New("flock already has chickens")

// ErrChickenNotFound indicates no chicken matches the supplied id.
var ErrChickenNotFound = errors.New("chicken not found")

// ErrUnknownUpgrade indicates an unsupported upgrade kind.
var ErrUnknownUpgrade = errors.New("unknown upgrade")

// Roller supplies random numbers in [0, n).
type Roller interface {
	Intn(n int) int
}

// Observer is notified with a fresh snapshot after every mutation.
type Observer func(models.FarmSnapshot)

// Option customizes a Store.
type Option func(*Store)

// WithRoller replaces the random source used for chicken draws and random events.
func WithRoller(r Roller) Option {
	return func(s *Store) {
		if r != nil {
			s.roller = r
		}
	}
}

// WithEconomy overrides the starting economy.
func WithEconomy(e models.Economy) Option {
	return func(s *Store) {
		s.economy = e
	}
}

// WithLogger attaches a logger.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Store owns the flock and the farm resources. Every operation runs under a
// single mutex so timer jobs and player intents never interleave.
type Store struct {
	mu             sync.Mutex
	chickens       []models.Chicken
	eggs           int
	goldenEggs     int
	economy        models.Economy
	notEnoughMoney bool
	deathNotice    *models.DeathNotice
	observers      []Observer
	roller         Roller
	logger         *zap.Logger
}

// NewStore builds an empty farm with the default economy.
func NewStore(opts ...Option) *Store {
	s := &Store{
		economy: models.DefaultEconomy(),
		roller:  rand.New(rand.NewSource(time.Now().UnixNano())),
		logger:  zap.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// Subscribe registers an observer. Observers run outside the store lock and
// must not block.
func (s *Store) Subscribe(o Observer) {
	if o == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.observers = append(s.observers, o)
}

// Snapshot returns a deep copy of the current farm state.
func (s *Store) Snapshot() models.FarmSnapshot {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.snapshotLocked()
}

// DismissFundsNotice clears the "not enough money" flag.
func (s *Store) DismissFundsNotice() {
	_ = s.mutate(func() error {
		s.notEnoughMoney = false
		return nil
	})
}

// mutate runs fn under the lock, then notifies observers with the resulting state.
func (s *Store) mutate(fn func() error) error {
	s.mu.Lock()
	err := fn()
	snap := s.snapshotLocked()
	observers := append([]Observer(nil), s.observers...)
	s.mu.Unlock()

	for _, o := range observers {
		o(snap)
	}
	return err
}

func (s *Store) snapshotLocked() models.FarmSnapshot {
	snap := models.FarmSnapshot{
		Economy:             s.economy,
		Chickens:            append([]models.Chicken{}, s.chickens...),
		EggsCollected:       s.eggs,
		GoldenEggsCollected: s.goldenEggs,
		NotEnoughMoney:      s.notEnoughMoney,
	}
	if s.deathNotice != nil {
		notice := *s.deathNotice
		snap.DeathNotice = &notice
	}
	return snap
}

func (s *Store) indexOf(id uuid.UUID) int {
	for i := range s.chickens {
		if s.chickens[i].ID == id {
			return i
		}
	}
	return -1
}
