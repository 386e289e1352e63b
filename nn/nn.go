// Copyright 2026 The ffnet Authors. All rights reserved.
// Use of this source code is governed by an Apache 2.0
// license that can be found in the LICENSE file.

package nn

import (
	"github.com/ffnet-ml/ffnet/internal/nn"
	"github.com/ffnet-ml/ffnet/internal/topology"

	"golang.org/x/exp/rand"
)

// Topology is an immutable description of the network's layer sizes.
type Topology = topology.Topology

// ParseError reports a malformed topology descriptor.
type ParseError = topology.ParseError

// ParseTopology parses a dash-separated descriptor such as "2-2-1".
func ParseTopology(descriptor string) (Topology, error) {
	return topology.Parse(descriptor)
}

// NewTopology builds a Topology from explicit layer sizes.
func NewTopology(layers []int) (Topology, error) {
	return topology.New(layers)
}

// Activation selects the unit activation function.
type Activation = nn.Activation

const (
	// Sigmoid is the logistic function 1/(1+exp(-x)).
	Sigmoid = nn.Sigmoid

	// Tanh is the hyperbolic tangent.
	Tanh = nn.Tanh
)

// ParseActivation maps a configuration value to an Activation.
func ParseActivation(s string) (Activation, error) {
	return nn.ParseActivation(s)
}

// Config carries the immutable per-network settings.
type Config = nn.Config

// Network is a fixed-topology feed-forward network.
//
// Example:
//
//	topo, _ := nn.ParseTopology("2-2-1")
//	net, _ := nn.New(topo, nn.Config{Activation: nn.Sigmoid})
//	net.SetInput([]float64{1, 0})
//	net.Run()
//	out := net.Output()
type Network = nn.Network

// New allocates a Network for the given topology and settings.
func New(topo Topology, cfg Config) (*Network, error) {
	return nn.New(topo, cfg)
}

// RandomSource returns a seeded source for Network.PopulateRandom.
func RandomSource(seed uint64) rand.Source {
	return rand.NewSource(seed)
}
