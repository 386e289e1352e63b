// Package topology parses layer-size descriptors and derives the indices
// every other part of the network is sized from.
//
// A descriptor is a dash-separated list of positive layer sizes, for example
// "2-2-1-3": two input units, two hidden layers, three output units. The
// parsed Topology is immutable; activation buffers, weight matrices, and
// scratch vectors are all allocated from it exactly once.
package topology

import (
	"fmt"
	"strconv"
	"strings"
)

// InputLayer is the index of the input activation layer.
const InputLayer = 0

// FirstHidden is the index of the first hidden activation layer.
const FirstHidden = 1

// Topology is an ordered sequence of per-layer unit counts.
//
// The zero value is not usable; construct one with Parse or New.
type Topology struct {
	layers []int
	tag    string
}

// ParseError reports a malformed layer descriptor.
type ParseError struct {
	Descriptor string // the full descriptor as given
	Token      string // offending token, empty when the shape itself is wrong
	Reason     string
}

// Error implements the error interface.
func (e *ParseError) Error() string {
	if e.Token != "" {
		return fmt.Sprintf("topology: descriptor %q: token %q: %s", e.Descriptor, e.Token, e.Reason)
	}
	return fmt.Sprintf("topology: descriptor %q: %s", e.Descriptor, e.Reason)
}

// Parse parses a descriptor of the form "L0-L1-...-Ln".
//
// Every token must be a positive integer and at least two layers (input and
// output) must be present. The returned Topology's String() is the canonical
// form of the descriptor and is the tag used by weight persistence.
func Parse(descriptor string) (Topology, error) {
	tokens := strings.Split(descriptor, "-")
	if len(tokens) < 2 {
		return Topology{}, &ParseError{Descriptor: descriptor, Reason: "need at least 2 layers"}
	}

	layers := make([]int, len(tokens))
	for i, tok := range tokens {
		n, err := strconv.Atoi(tok)
		if err != nil {
			return Topology{}, &ParseError{Descriptor: descriptor, Token: tok, Reason: "not an integer"}
		}
		if n <= 0 {
			return Topology{}, &ParseError{Descriptor: descriptor, Token: tok, Reason: "layer size must be positive"}
		}
		layers[i] = n
	}

	return New(layers)
}

// New builds a Topology directly from a slice of layer sizes.
//
// The slice is copied; callers keep ownership of their argument.
func New(layers []int) (Topology, error) {
	if len(layers) < 2 {
		return Topology{}, &ParseError{Descriptor: tagFor(layers), Reason: "need at least 2 layers"}
	}
	for _, n := range layers {
		if n <= 0 {
			return Topology{}, &ParseError{
				Descriptor: tagFor(layers),
				Token:      strconv.Itoa(n),
				Reason:     "layer size must be positive",
			}
		}
	}

	own := make([]int, len(layers))
	copy(own, layers)
	return Topology{layers: own, tag: tagFor(own)}, nil
}

func tagFor(layers []int) string {
	parts := make([]string, len(layers))
	for i, n := range layers {
		parts[i] = strconv.Itoa(n)
	}
	return strings.Join(parts, "-")
}

// String returns the canonical descriptor, e.g. "2-2-1-3".
func (t Topology) String() string { return t.tag }

// LayerCount returns the number of activation layers.
func (t Topology) LayerCount() int { return len(t.layers) }

// ConnectivityLayers returns the number of weight layers, LayerCount()-1.
func (t Topology) ConnectivityLayers() int { return len(t.layers) - 1 }

// LastHidden returns the index of the last hidden activation layer.
func (t Topology) LastHidden() int { return len(t.layers) - 2 }

// Output returns the index of the output activation layer.
func (t Topology) Output() int { return len(t.layers) - 1 }

// Units returns the unit count of activation layer n.
func (t Topology) Units(n int) int { return t.layers[n] }

// Inputs returns the unit count of the input layer.
func (t Topology) Inputs() int { return t.layers[InputLayer] }

// Outputs returns the unit count of the output layer.
func (t Topology) Outputs() int { return t.layers[len(t.layers)-1] }

// Layers returns a copy of the per-layer unit counts.
func (t Topology) Layers() []int {
	out := make([]int, len(t.layers))
	copy(out, t.layers)
	return out
}

// WeightCount returns the total number of weights across all connectivity
// layers. Persistence uses it to size its staging buffer.
func (t Topology) WeightCount() int {
	total := 0
	for n := 0; n < t.ConnectivityLayers(); n++ {
		total += t.layers[n] * t.layers[n+1]
	}
	return total
}
