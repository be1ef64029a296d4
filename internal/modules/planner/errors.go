package planner

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrValidation          = errors.New("invalid route request")
	ErrNoValidModes        = errors.New("no valid transport modes selected")
	ErrProviderUnavailable = errors.New("directions provider unavailable")
	ErrNoRoutesFound       = errors.New("no routes found")
	ErrInternalComputation = errors.New("route metrics could not be computed")
	ErrDegenerateRoute     = errors.New("route shorter than minimum distance")
	ErrIllegalTransition   = errors.New("illegal planner stage transition")
)

// PlanError is returned by Service.Plan for every terminal failure.
type PlanError struct {
	Kind     error
	Stage    Stage
	Message  string
	Failures []ModeFailure
}

func (e *PlanError) Error() string {
	return e.Message
}

func (e *PlanError) Unwrap() error {
	return e.Kind
}

// KindName returns the machine-checkable error kind for err.
func KindName(err error) string {
	switch {
	case errors.Is(err, ErrValidation):
		return "ValidationError"
	case errors.Is(err, ErrNoValidModes):
		return "NoValidModes"
	case errors.Is(err, ErrNoRoutesFound):
		return "NoRoutesFound"
	case errors.Is(err, ErrProviderUnavailable):
		return "ProviderUnavailable"
	case errors.Is(err, ErrInternalComputation):
		return "InternalComputationError"
	default:
		return "InternalError"
	}
}

func validationError(msg string) *PlanError {
	return &PlanError{Kind: ErrValidation, Stage: StageValidating, Message: msg}
}

func noRoutesError(failures []ModeFailure) *PlanError {
	var b strings.Builder
	b.WriteString("No routes found for the selected criteria. Try selecting more transport modes or relaxing your distance preferences.")
	if len(failures) > 0 {
		parts := make([]string, 0, len(failures))
		for _, f := range failures {
			parts = append(parts, fmt.Sprintf("%s: %s", f.Mode, f.Error))
		}
		b.WriteString(" (")
		b.WriteString(strings.Join(parts, "; "))
		b.WriteString(")")
	}
	return &PlanError{Kind: ErrNoRoutesFound, Stage: StageFiltering, Message: b.String(), Failures: failures}
}
