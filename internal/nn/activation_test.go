package nn

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSigmoid_KnownValues(t *testing.T) {
	assert.InDelta(t, 0.5, Sigmoid.Apply(0), 1e-15)
	assert.InDelta(t, 0.52498, Sigmoid.Apply(0.1), 1e-5)
	assert.InDelta(t, 0.54983, Sigmoid.Apply(0.2), 1e-5)

	// f'(x) = f(x)(1-f(x)), maximal at 0
	assert.InDelta(t, 0.25, Sigmoid.Derivative(0), 1e-15)
}

func TestTanh_MatchesStdlib(t *testing.T) {
	for x := -6.0; x <= 6.0; x += 0.37 {
		assert.InDelta(t, math.Tanh(x), Tanh.Apply(x), 1e-12, "x=%v", x)
	}
}

// The sign-separated form must stay finite right up against the exp overflow
// boundary in either direction.
func TestTanh_LargeMagnitude(t *testing.T) {
	assert.InDelta(t, 1.0, Tanh.Apply(300), 1e-12)
	assert.InDelta(t, -1.0, Tanh.Apply(-300), 1e-12)
	assert.False(t, math.IsNaN(Tanh.Apply(300)))
	assert.False(t, math.IsNaN(Tanh.Apply(-300)))
}

func TestTanh_Derivative(t *testing.T) {
	for x := -3.0; x <= 3.0; x += 0.5 {
		want := 1.0 - math.Tanh(x)*math.Tanh(x)
		assert.InDelta(t, want, Tanh.Derivative(x), 1e-12, "x=%v", x)
	}
}

func TestParseActivation(t *testing.T) {
	a, err := ParseActivation("Sigmoid")
	require.NoError(t, err)
	assert.Equal(t, Sigmoid, a)

	a, err = ParseActivation("Tanh")
	require.NoError(t, err)
	assert.Equal(t, Tanh, a)

	_, err = ParseActivation("relu")
	require.Error(t, err)
}

func TestActivation_String(t *testing.T) {
	assert.Equal(t, "Sigmoid", Sigmoid.String())
	assert.Equal(t, "Tanh", Tanh.String())
}
