package topology_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ffnet-ml/ffnet/internal/topology"
)

func TestParse_Canonical(t *testing.T) {
	topo, err := topology.Parse("2-2-1-3")
	require.NoError(t, err)

	assert.Equal(t, "2-2-1-3", topo.String())
	assert.Equal(t, 4, topo.LayerCount())
	assert.Equal(t, 3, topo.ConnectivityLayers())
	assert.Equal(t, 1, topology.FirstHidden)
	assert.Equal(t, 2, topo.LastHidden())
	assert.Equal(t, 3, topo.Output())
	assert.Equal(t, 2, topo.Inputs())
	assert.Equal(t, 3, topo.Outputs())
	assert.Equal(t, []int{2, 2, 1, 3}, topo.Layers())
	assert.Equal(t, 2*2+2*1+1*3, topo.WeightCount())
}

func TestParse_TwoLayersMinimum(t *testing.T) {
	topo, err := topology.Parse("5-1")
	require.NoError(t, err)
	assert.Equal(t, 1, topo.ConnectivityLayers())
	assert.Equal(t, 0, topo.LastHidden()) // degenerate: no hidden layers
}

// TestParse_EmptyToken covers the "2--3" scenario: the parse fails before any
// buffer could be sized from it.
func TestParse_EmptyToken(t *testing.T) {
	_, err := topology.Parse("2--3")
	require.Error(t, err)

	var perr *topology.ParseError
	require.True(t, errors.As(err, &perr))
	assert.Equal(t, "2--3", perr.Descriptor)
}

func TestParse_Invalid(t *testing.T) {
	tests := []struct {
		name       string
		descriptor string
	}{
		{"single layer", "4"},
		{"empty", ""},
		{"zero size", "2-0-1"},
		{"negative size", "2--1-1"},
		{"non numeric", "2-a-1"},
		{"trailing dash", "2-2-"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := topology.Parse(tt.descriptor)
			var perr *topology.ParseError
			require.True(t, errors.As(err, &perr), "want *ParseError, got %v", err)
		})
	}
}

func TestNew_CopiesInput(t *testing.T) {
	layers := []int{2, 3, 1}
	topo, err := topology.New(layers)
	require.NoError(t, err)

	layers[1] = 99
	assert.Equal(t, 3, topo.Units(1), "Topology must not alias the caller's slice")
}
