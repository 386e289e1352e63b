// Copyright 2026 The ffnet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package train

import (
	"github.com/ffnet-ml/ffnet/internal/dataset"
	"github.com/ffnet-ml/ffnet/internal/train"
)

// StopReason says which convergence predicate ended training.
type StopReason = train.StopReason

const (
	// ThresholdReached means the average error dropped to or below the
	// error threshold.
	ThresholdReached = train.ThresholdReached

	// IterationLimit means the iteration cap was hit before the error
	// threshold.
	IterationLimit = train.IterationLimit
)

// Result is the outcome of a training run.
type Result = train.Result

// Trainer runs the training state machine over one network and one case set.
type Trainer = train.Trainer

// Set is an ordered collection of training or test cases.
type Set = dataset.Set

// Case is one input vector with its optional expected output.
type Case = dataset.Case

// Cases builds a Set from in-memory slices. outputs may be nil for
// inference-only sets.
func Cases(inputs, outputs [][]float64) *Set {
	return dataset.FromSlices(inputs, outputs)
}
