// README: Route planning service; runs validate -> resolve -> fetch -> build -> filter -> rank.
package planner

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"ecoroute/internal/maps"
)

// PreferenceSource loads a user's travel preferences. Users without stored
// preferences get the zero Preferences (Balanced, no caps).
type PreferenceSource interface {
	TravelPreferences(ctx context.Context, uid string) (Preferences, error)
}

type Options struct {
	Policy          Policy
	Profiles        map[Mode]string
	DirectionsLimit time.Duration
}

type Service struct {
	resolver *Resolver
	gateway  *Gateway
	builder  *Builder
	prefs    PreferenceSource
	policy   Policy
	logger   *zap.Logger
}

func NewService(provider maps.DirectionsProvider, prefs PreferenceSource, cost CostEstimator, opts Options, logger *zap.Logger) *Service {
	if opts.Policy.EmissionFactors == nil {
		opts.Policy = DefaultPolicy()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	policy := opts.Policy.clone()
	return &Service{
		resolver: NewResolver(opts.Profiles),
		gateway:  NewGateway(provider, opts.DirectionsLimit),
		builder:  NewBuilder(policy, cost),
		prefs:    prefs,
		policy:   policy,
		logger:   logger.Named("planner"),
	}
}

// Plan runs one planning request for uid. Every failure is a *PlanError.
func (s *Service) Plan(ctx context.Context, uid string, req PlanRequest) (*Plan, error) {
	r := newRun()

	if perr := validate(req); perr != nil {
		return nil, r.fail(perr)
	}

	if err := r.advance(StageResolvingModes); err != nil {
		return nil, s.internal(r, err)
	}
	profiles, err := s.resolver.Resolve(req.TransportModes)
	if err != nil {
		return nil, r.fail(&PlanError{Kind: ErrNoValidModes, Message: "No valid transport modes selected."})
	}

	if err := r.advance(StageFetchingDirections); err != nil {
		return nil, s.internal(r, err)
	}
	results := s.gateway.Fetch(ctx, req.Origin.Coordinate(), req.Destination.Coordinate(), profiles)

	var failures []ModeFailure
	for _, res := range results {
		if res.Err == nil {
			continue
		}
		s.logger.Warn("directions failed for mode",
			zap.String("uid", uid),
			zap.String("mode", string(res.Mode)),
			zap.String("profile", res.Profile),
			zap.Error(res.Err),
		)
		failures = append(failures, failureOf(res))
	}

	if err := r.advance(StageBuildingCandidates); err != nil {
		return nil, s.internal(r, err)
	}
	candidates, issues := s.builder.Build(results)
	for _, is := range issues {
		level := s.logger.Warn
		if errors.Is(is.Err, ErrDegenerateRoute) {
			level = s.logger.Debug
		}
		level("skipped route candidate",
			zap.String("mode", string(is.Mode)),
			zap.Int("index", is.Index),
			zap.Error(is.Err),
		)
	}

	if err := r.advance(StageFiltering); err != nil {
		return nil, s.internal(r, err)
	}
	prefs, err := s.loadPreferences(ctx, uid)
	if err != nil {
		return nil, s.internal(r, fmt.Errorf("load preferences: %w", err))
	}
	filtered := FilterByPreferences(candidates, prefs)
	if len(filtered) == 0 {
		s.logger.Info("no routes survived",
			zap.String("uid", uid),
			zap.Int("built", len(candidates)),
			zap.Int("mode_failures", len(failures)),
		)
		return nil, r.fail(noRoutesError(failures))
	}

	if err := r.advance(StageRanking); err != nil {
		return nil, s.internal(r, err)
	}
	ranked := Rank(filtered, prefs.Priority, s.policy.MaxResults)

	if err := r.advance(StageDone); err != nil {
		return nil, s.internal(r, err)
	}
	s.logger.Info("routes planned",
		zap.String("uid", uid),
		zap.Int("modes", len(profiles)),
		zap.Int("built", len(candidates)),
		zap.Int("returned", len(ranked)),
		zap.String("priority", string(prefs.Priority)),
	)
	return &Plan{Routes: ranked, Failures: failures, Stages: r.trace}, nil
}

func (s *Service) loadPreferences(ctx context.Context, uid string) (Preferences, error) {
	if s.prefs == nil {
		return Preferences{}, nil
	}
	return s.prefs.TravelPreferences(ctx, uid)
}

func (s *Service) internal(r *run, err error) *PlanError {
	s.logger.Error("route planning failed", zap.String("stage", string(r.stage)), zap.Error(err))
	return r.fail(&PlanError{Kind: err, Message: "Failed to fetch routes due to server error. Please try again."})
}

func validate(req PlanRequest) *PlanError {
	if req.Origin == nil || req.Destination == nil {
		return validationError("Both origin and destination are required.")
	}
	if err := validateEndpoint("origin", req.Origin); err != nil {
		return err
	}
	if err := validateEndpoint("destination", req.Destination); err != nil {
		return err
	}
	if len(req.TransportModes) == 0 {
		return validationError("At least one transport mode is required.")
	}
	return nil
}

func validateEndpoint(label string, e *Endpoint) *PlanError {
	if len(e.Coordinates) != 2 {
		return validationError(fmt.Sprintf("Invalid %s coordinates format.", label))
	}
	if !e.Coordinate().Valid() {
		return validationError(fmt.Sprintf("Coordinates for %s are out of valid range.", label))
	}
	return nil
}
