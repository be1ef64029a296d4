// README: Eco coach service (token-guarded Gemini tips built from trip stats).
package coach

import (
	"context"
	"errors"

	"github.com/samber/lo"
	"go.uber.org/zap"

	"ecoroute/internal/ai"
	"ecoroute/internal/modules/preference"
	"ecoroute/internal/modules/trip"
)

type Quota interface {
	UseToken(ctx context.Context, uid string) (int, error)
	EnsureUser(ctx context.Context, uid string) error
	Refund(ctx context.Context, uid string) error
}

type TripSource interface {
	List(ctx context.Context, uid string) ([]trip.Trip, error)
	Stats(ctx context.Context, uid string) (trip.Stats, error)
}

type PreferenceSource interface {
	Get(ctx context.Context, uid string) (preference.Preferences, error)
}

type Service struct {
	quota  Quota
	trips  TripSource
	prefs  PreferenceSource
	coach  ai.Coach
	logger *zap.Logger
}

func NewService(quota Quota, trips TripSource, prefs PreferenceSource, coach ai.Coach, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{quota: quota, trips: trips, prefs: prefs, coach: coach, logger: logger}
}

// Tip spends one token and asks the model for a tip. The token is refunded
// when the model call fails.
func (s *Service) Tip(ctx context.Context, uid string) (*Tip, error) {
	remaining, err := s.useToken(ctx, uid)
	if err != nil {
		return nil, err
	}

	in, err := s.context(ctx, uid)
	if err == nil {
		var res *ai.TipResult
		res, err = s.coach.EcoTip(ctx, in)
		if err == nil {
			return &Tip{Tip: res.Tip, FocusMode: res.FocusMode, TokensRemaining: remaining}, nil
		}
	}

	if refundErr := s.quota.Refund(ctx, uid); refundErr != nil {
		s.logger.Warn("refund coach token failed", zap.String("uid", uid), zap.Error(refundErr))
	}
	return nil, err
}

// useToken deducts one token, creating the user's row on first use.
func (s *Service) useToken(ctx context.Context, uid string) (int, error) {
	remaining, err := s.quota.UseToken(ctx, uid)
	if !errors.Is(err, ErrInsufficientTokens) {
		return remaining, err
	}
	if initErr := s.quota.EnsureUser(ctx, uid); initErr != nil {
		return 0, initErr
	}
	return s.quota.UseToken(ctx, uid)
}

func (s *Service) context(ctx context.Context, uid string) (ai.CoachContext, error) {
	stats, err := s.trips.Stats(ctx, uid)
	if err != nil {
		return ai.CoachContext{}, err
	}
	history, err := s.trips.List(ctx, uid)
	if err != nil {
		return ai.CoachContext{}, err
	}
	prefs, err := s.prefs.Get(ctx, uid)
	if err != nil {
		return ai.CoachContext{}, err
	}
	return ai.CoachContext{
		MonthCO2Kg:    stats.Month.CO2Saved,
		MonthTrips:    stats.Month.Trips,
		MonthDistance: stats.Month.Distance,
		MonthlyGoalKg: stats.MonthlyGoal,
		GoalProgress:  stats.GoalProgress,
		ModeCounts:    lo.CountValuesBy(history, func(t trip.Trip) string { return t.Mode }),
		Priority:      prefs.SustainabilityPriority,
	}, nil
}
