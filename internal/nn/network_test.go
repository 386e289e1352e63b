package nn_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/diff/fd"

	"github.com/ffnet-ml/ffnet/internal/nn"
	"github.com/ffnet-ml/ffnet/internal/topology"
)

func mustTopology(t *testing.T, descriptor string) topology.Topology {
	t.Helper()
	topo, err := topology.Parse(descriptor)
	require.NoError(t, err)
	return topo
}

// With all weights at zero, every pre-activation sum is zero, so every unit
// beyond the input must sit at f(0) regardless of the input vector.
func TestRun_ZeroWeights(t *testing.T) {
	topo := mustTopology(t, "3-4-2-2")
	net, err := nn.New(topo, nn.Config{Activation: nn.Sigmoid})
	require.NoError(t, err)

	require.NoError(t, net.SetInput([]float64{0.9, -0.4, 17}))
	net.Run()

	for l := topology.FirstHidden; l <= topo.Output(); l++ {
		for _, a := range net.Activations(l) {
			assert.Equal(t, 0.5, a, "layer %d", l)
		}
	}
}

// The worked 2-2-1 example: weights ah=[[0.1,0.2],[0.3,0.4]], hF=[0.5,0.6],
// input [1,0].
func TestRun_ForwardScenario(t *testing.T) {
	topo := mustTopology(t, "2-2-1")
	net, err := nn.New(topo, nn.Config{Activation: nn.Sigmoid})
	require.NoError(t, err)

	net.SetWeight(0, 0, 0, 0.1)
	net.SetWeight(0, 0, 1, 0.2)
	net.SetWeight(0, 1, 0, 0.3)
	net.SetWeight(0, 1, 1, 0.4)
	net.SetWeight(1, 0, 0, 0.5)
	net.SetWeight(1, 1, 0, 0.6)

	require.NoError(t, net.SetInput([]float64{1, 0}))
	net.Run()

	hidden := net.Activations(1)
	assert.InDelta(t, 0.52498, hidden[0], 1e-5)
	assert.InDelta(t, 0.54983, hidden[1], 1e-5)

	out := net.Output()
	require.Len(t, out, 1)
	assert.InDelta(t, 0.64392, out[0], 1e-4)
}

// Training and inference forward passes must produce identical activations.
func TestRunTraining_MatchesRun(t *testing.T) {
	topo := mustTopology(t, "2-3-3-2")

	trainNet, err := nn.New(topo, nn.Config{Activation: nn.Tanh, Lambda: 0.3, Training: true})
	require.NoError(t, err)
	trainNet.PopulateRandom(-1, 1, rand.NewSource(7))

	runNet, err := nn.New(topo, nn.Config{Activation: nn.Tanh})
	require.NoError(t, err)
	copyWeights(topo, trainNet, runNet)

	input := []float64{0.25, -0.75}
	expected := []float64{0.1, 0.9}

	require.NoError(t, trainNet.SetInput(input))
	caseErr := trainNet.RunTraining(expected)

	require.NoError(t, runNet.SetInput(input))
	runNet.Run()

	assert.Equal(t, runNet.Output(), trainNet.Output())

	want := 0.0
	out := runNet.Output()
	for i := range out {
		d := expected[i] - out[i]
		want += d * d
	}
	assert.InDelta(t, want, caseErr, 1e-15)
}

func TestSetInput_WrongLength(t *testing.T) {
	net, err := nn.New(mustTopology(t, "2-2-1"), nn.Config{Activation: nn.Sigmoid})
	require.NoError(t, err)
	require.Error(t, net.SetInput([]float64{1, 2, 3}))
}

func TestNew_TrainingNeedsHiddenLayer(t *testing.T) {
	_, err := nn.New(mustTopology(t, "2-1"), nn.Config{Training: true})
	require.Error(t, err)

	_, err = nn.New(mustTopology(t, "2-1"), nn.Config{})
	require.NoError(t, err)
}

func TestPopulateRandom_Range(t *testing.T) {
	topo := mustTopology(t, "4-8-3")
	net, err := nn.New(topo, nn.Config{Activation: nn.Sigmoid})
	require.NoError(t, err)

	net.PopulateRandom(0.1, 1.5, rand.NewSource(42))

	for l := 0; l < topo.ConnectivityLayers(); l++ {
		for k := 0; k < topo.Units(l); k++ {
			for j := 0; j < topo.Units(l + 1); j++ {
				w := net.Weight(l, k, j)
				assert.GreaterOrEqual(t, w, 0.1)
				assert.Less(t, w, 1.5)
			}
		}
	}
}

// The streaming sweep never stores a gradient, so its deltas are checked
// against a central finite difference of the halved squared error. Every
// weight is read at its pre-case value during the sweep; the deltas must
// therefore equal -lambda * dE/dw to finite-difference accuracy.
func TestApplyDeltas_MatchesNumericalGradient(t *testing.T) {
	const lambda = 0.3
	topo := mustTopology(t, "2-3-3-2")

	net, err := nn.New(topo, nn.Config{Activation: nn.Sigmoid, Lambda: lambda, Training: true})
	require.NoError(t, err)
	net.PopulateRandom(-0.8, 0.8, rand.NewSource(1))

	input := []float64{0.6, -0.2}
	expected := []float64{0.3, 0.7}

	before := flattenWeights(topo, net)

	require.NoError(t, net.SetInput(input))
	net.RunTraining(expected)
	net.ApplyDeltas()

	after := flattenWeights(topo, net)

	// E(w) = 1/2 sum_i (expected_i - F_i(w))^2 over a probe network.
	probe, err := nn.New(topo, nn.Config{Activation: nn.Sigmoid})
	require.NoError(t, err)
	caseError := func(w []float64) float64 {
		unflattenWeights(topo, probe, w)
		if err := probe.SetInput(input); err != nil {
			t.Fatal(err)
		}
		probe.Run()
		e := 0.0
		for i, f := range probe.Output() {
			d := expected[i] - f
			e += d * d
		}
		return e / 2
	}

	grad := make([]float64, len(before))
	fd.Gradient(grad, caseError, before, &fd.Settings{Formula: fd.Central})

	for i := range before {
		wantDelta := -lambda * grad[i]
		assert.InDelta(t, wantDelta, after[i]-before[i], 1e-8, "weight %d", i)
	}
}

func copyWeights(topo topology.Topology, from, to *nn.Network) {
	for l := 0; l < topo.ConnectivityLayers(); l++ {
		for k := 0; k < topo.Units(l); k++ {
			for j := 0; j < topo.Units(l + 1); j++ {
				to.SetWeight(l, k, j, from.Weight(l, k, j))
			}
		}
	}
}

func flattenWeights(topo topology.Topology, net *nn.Network) []float64 {
	out := make([]float64, 0, topo.WeightCount())
	for l := 0; l < topo.ConnectivityLayers(); l++ {
		for k := 0; k < topo.Units(l); k++ {
			for j := 0; j < topo.Units(l + 1); j++ {
				out = append(out, net.Weight(l, k, j))
			}
		}
	}
	return out
}

func unflattenWeights(topo topology.Topology, net *nn.Network, w []float64) {
	i := 0
	for l := 0; l < topo.ConnectivityLayers(); l++ {
		for k := 0; k < topo.Units(l); k++ {
			for j := 0; j < topo.Units(l + 1); j++ {
				net.SetWeight(l, k, j, w[i])
				i++
			}
		}
	}
}
