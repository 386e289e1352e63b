// Copyright 2026 The ffnet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package train runs the epoch loop over a network and a case set.
//
// # Basic Usage
//
//	import (
//	    "github.com/ffnet-ml/ffnet/nn"
//	    "github.com/ffnet-ml/ffnet/train"
//	)
//
//	func main() {
//	    topo, _ := nn.ParseTopology("2-2-1")
//	    net, _ := nn.New(topo, nn.Config{Activation: nn.Sigmoid, Lambda: 0.3, Training: true})
//	    net.PopulateRandom(0.1, 1.5, nn.RandomSource(1))
//
//	    cases := train.Cases(
//	        [][]float64{{0, 0}, {0, 1}, {1, 0}, {1, 1}},
//	        [][]float64{{0}, {1}, {1}, {1}},
//	    )
//
//	    t := &train.Trainer{
//	        Net:            net,
//	        Cases:          cases,
//	        MaxIterations:  100000,
//	        ErrorThreshold: 0.005,
//	    }
//	    result, _ := t.Train()
//	    _ = result
//	}
package train
