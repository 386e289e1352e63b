// Copyright 2026 The ffnet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

// Package nn provides fixed-topology feed-forward networks.
//
// # Overview
//
// This package contains:
//   - Topology: the layer-size descriptor ("2-2-1") and its parser
//   - Network: forward propagation and streaming online weight updates
//   - Activations: Sigmoid, Tanh
//
// # Basic Usage
//
//	import (
//	    "github.com/ffnet-ml/ffnet/nn"
//	)
//
//	func main() {
//	    topo, _ := nn.ParseTopology("2-2-1")
//	    net, _ := nn.New(topo, nn.Config{Activation: nn.Sigmoid, Lambda: 0.3, Training: true})
//
//	    net.SetInput([]float64{1, 0})
//	    net.RunTraining([]float64{1})
//	    net.ApplyDeltas()
//	}
//
// For the epoch loop, error threshold and iteration cap, see the train
// package.
package nn
