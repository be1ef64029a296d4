// README: Trip service saves, lists and clears history and derives stats from it.
package trip

import (
	"context"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// GoalSource supplies the user's monthly CO2 goal in kg.
type GoalSource interface {
	MonthlyGoal(ctx context.Context, uid string) (float64, error)
}

type Service struct {
	store  Store
	goals  GoalSource
	events Publisher
	logger *zap.Logger
	now    func() time.Time
}

func NewService(store Store, goals GoalSource, events Publisher, logger *zap.Logger) *Service {
	if events == nil {
		events = NopPublisher{}
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, goals: goals, events: events, logger: logger, now: time.Now}
}

// Save validates cmd and stores it as the user's newest trip. A failed
// event publish is logged and does not fail the save.
func (s *Service) Save(ctx context.Context, uid string, cmd SaveCommand) (Trip, error) {
	t, err := normalize(cmd, s.now().UTC())
	if err != nil {
		return Trip{}, err
	}
	t.ID = uuid.NewString()

	if err := s.store.Append(ctx, uid, t, HistoryLimit); err != nil {
		return Trip{}, err
	}
	if err := s.events.TripSaved(ctx, uid, t); err != nil {
		s.logger.Warn("publish trip event failed",
			zap.String("uid", uid),
			zap.String("trip_id", t.ID),
			zap.Error(err),
		)
	}
	return t, nil
}

func (s *Service) List(ctx context.Context, uid string) ([]Trip, error) {
	trips, err := s.store.List(ctx, uid)
	if err != nil {
		return nil, err
	}
	if trips == nil {
		trips = []Trip{}
	}
	return trips, nil
}

func (s *Service) Clear(ctx context.Context, uid string) error {
	return s.store.Clear(ctx, uid)
}

func (s *Service) Stats(ctx context.Context, uid string) (Stats, error) {
	trips, err := s.store.List(ctx, uid)
	if err != nil {
		return Stats{}, err
	}
	goal, err := s.goals.MonthlyGoal(ctx, uid)
	if err != nil {
		return Stats{}, err
	}
	return ComputeStats(trips, s.now(), goal), nil
}

func (s *Service) Weights(ctx context.Context, uid string) (Weights, error) {
	trips, err := s.store.List(ctx, uid)
	if err != nil {
		return Weights{}, err
	}
	return PersonalizedWeights(trips), nil
}
