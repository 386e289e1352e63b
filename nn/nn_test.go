package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ffnet-ml/ffnet/nn"
)

// The public surface must be enough to build, seed and run a network.
func TestPublicSurface(t *testing.T) {
	topo, err := nn.ParseTopology("2-2-1")
	require.NoError(t, err)
	assert.Equal(t, "2-2-1", topo.String())

	net, err := nn.New(topo, nn.Config{Activation: nn.Sigmoid, Lambda: 0.3, Training: true})
	require.NoError(t, err)

	net.PopulateRandom(0.1, 1.5, nn.RandomSource(42))

	require.NoError(t, net.SetInput([]float64{1, 0}))
	net.Run()
	out := net.Output()
	require.Len(t, out, 1)
	assert.Greater(t, out[0], 0.0)
	assert.Less(t, out[0], 1.0)
}

func TestParseActivation(t *testing.T) {
	a, err := nn.ParseActivation("Tanh")
	require.NoError(t, err)
	assert.Equal(t, nn.Tanh, a)
}
