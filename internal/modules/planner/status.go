package planner

import "fmt"

type Stage string

const (
	StageValidating         Stage = "validating"
	StageResolvingModes     Stage = "resolving_modes"
	StageFetchingDirections Stage = "fetching_directions"
	StageBuildingCandidates Stage = "building_candidates"
	StageFiltering          Stage = "filtering"
	StageRanking            Stage = "ranking"
	StageDone               Stage = "done"
	StageFailed             Stage = "failed"
)

// AllowedTransitions is the planning pipeline as code. It is strictly linear;
// every non-terminal stage may fail.
var AllowedTransitions = map[Stage][]Stage{
	StageValidating:         {StageResolvingModes, StageFailed},
	StageResolvingModes:     {StageFetchingDirections, StageFailed},
	StageFetchingDirections: {StageBuildingCandidates, StageFailed},
	StageBuildingCandidates: {StageFiltering, StageFailed},
	StageFiltering:          {StageRanking, StageFailed},
	StageRanking:            {StageDone, StageFailed},
}

func CanTransition(from, to Stage) bool {
	next, ok := AllowedTransitions[from]
	if !ok {
		return false
	}
	for _, s := range next {
		if s == to {
			return true
		}
	}
	return false
}

func (s Stage) Terminal() bool {
	return s == StageDone || s == StageFailed
}

// run tracks one request through the pipeline.
type run struct {
	stage Stage
	trace []Stage
}

func newRun() *run {
	return &run{stage: StageValidating, trace: []Stage{StageValidating}}
}

func (r *run) advance(to Stage) error {
	if !CanTransition(r.stage, to) {
		return fmt.Errorf("%w: %s -> %s", ErrIllegalTransition, r.stage, to)
	}
	r.stage = to
	r.trace = append(r.trace, to)
	return nil
}

// fail moves to StageFailed and stamps the stage the error happened in.
func (r *run) fail(err *PlanError) *PlanError {
	if err.Stage == "" {
		err.Stage = r.stage
	}
	if !r.stage.Terminal() {
		r.stage = StageFailed
		r.trace = append(r.trace, StageFailed)
	}
	return err
}
