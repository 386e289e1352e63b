// Package train drives the epoch loop: forward and backward passes per test
// case, in fixed case order, until the average error converges or the
// iteration cap is hit.
package train

import (
	"fmt"
	"math"

	"github.com/ffnet-ml/ffnet/internal/dataset"
	"github.com/ffnet-ml/ffnet/internal/nn"
)

// StopReason says which convergence predicate ended training. It is derived
// from the final average error, never stored as a flag.
type StopReason int

const (
	// ThresholdReached means the average error dropped to or below the
	// error threshold.
	ThresholdReached StopReason = iota

	// IterationLimit means the iteration cap was hit before the error
	// threshold.
	IterationLimit
)

// String returns the human-readable stop reason.
func (r StopReason) String() string {
	if r == ThresholdReached {
		return "error threshold reached"
	}
	return "maximum iterations reached"
}

// Result is the outcome of a training run.
type Result struct {
	Iterations   int        // epochs completed
	AverageError float64    // final average error
	Reason       StopReason // which predicate stopped the loop
}

// Trainer runs the training state machine over one network and one case set.
//
// Updates are online: each case's weight deltas are applied before the next
// case's forward pass, within the same epoch. Case order therefore shapes
// the whole trajectory and is kept exactly as loaded.
type Trainer struct {
	Net            *nn.Network
	Cases          *dataset.Set
	MaxIterations  int
	ErrorThreshold float64

	// KeepAlive is the number of epochs between Progress calls; zero
	// disables progress reporting entirely.
	KeepAlive int

	// Progress, when set, observes the iteration index and current
	// average error every KeepAlive epochs. It has no effect on control
	// flow.
	Progress func(iteration int, averageError float64)
}

// Train loops epochs until averageError <= ErrorThreshold or Iterations ==
// MaxIterations, whichever comes first.
//
// Per epoch: for every case in order, a training-mode forward pass and the
// streaming weight update; squared error accumulates across all cases and
// the epoch's average error is total/2/numCases. The running average starts
// above any real error, so at least one epoch always runs.
func (t *Trainer) Train() (Result, error) {
	if t.Net == nil || !t.Net.Training() {
		return Result{}, fmt.Errorf("train: network was not constructed in training mode")
	}
	if t.Cases == nil || t.Cases.Len() == 0 {
		return Result{}, fmt.Errorf("train: no test cases")
	}
	if !t.Cases.HasExpected() {
		return Result{}, fmt.Errorf("train: case set has no expected outputs")
	}
	if t.MaxIterations <= 0 {
		return Result{}, fmt.Errorf("train: max iterations must be positive, got %d", t.MaxIterations)
	}

	averageError := math.MaxFloat64
	iteration := 0

	for averageError > t.ErrorThreshold && iteration < t.MaxIterations {
		totalError := 0.0

		for i := 0; i < t.Cases.Len(); i++ {
			c := t.Cases.Case(i)
			if err := t.Net.SetInput(c.Input); err != nil {
				return Result{}, fmt.Errorf("train: case %d: %w", i, err)
			}
			totalError += t.Net.RunTraining(c.Expected)
			t.Net.ApplyDeltas()
		}

		totalError /= 2.0
		iteration++
		averageError = totalError / float64(t.Cases.Len())

		if t.KeepAlive != 0 && iteration%t.KeepAlive == 0 && t.Progress != nil {
			t.Progress(iteration, averageError)
		}
	}

	reason := IterationLimit
	if averageError <= t.ErrorThreshold {
		reason = ThresholdReached
	}
	return Result{Iterations: iteration, AverageError: averageError, Reason: reason}, nil
}
