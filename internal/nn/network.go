// Package nn implements the N-layer feed-forward network engine: layer
// buffers sized from a topology, forward propagation in inference and
// training modes, and the streaming backward/update sweep that mutates the
// weights in place without ever materializing a gradient tensor.
package nn

import (
	"fmt"

	"golang.org/x/exp/rand"
	"gonum.org/v1/gonum/mat"
	"gonum.org/v1/gonum/stat/distuv"

	"github.com/ffnet-ml/ffnet/internal/topology"
)

// Config carries the immutable per-network settings.
//
// A Network is constructed from a Config once and never reconfigured; the
// engine exposes only operations over that fixed state.
type Config struct {
	Activation Activation // unit activation function, global to the network
	Lambda     float64    // learning rate applied to every weight delta
	Training   bool       // allocate theta/psi scratch and enable updates
}

// Network is a fixed-topology feed-forward network.
//
// All buffers are allocated once by New, sized exactly from the topology,
// and reused in place for every case of every epoch. A Network is owned by a
// single goroutine: forward and backward passes mutate shared scratch, and a
// case's update must complete before the next case begins, because updates
// are visible to the very next forward pass.
type Network struct {
	topo topology.Topology
	cfg  Config

	// activations, one vector per layer; a[0] is the input layer.
	a [][]float64

	// weights, one matrix per connectivity layer; w[n] connects layer n
	// to layer n+1 with shape Units(n) x Units(n+1). Mutated only by
	// ApplyDeltas.
	w []*mat.Dense

	// thetas holds pre-activation sums for the hidden layers, valid only
	// between a training forward pass and the backward sweep for the same
	// case. Nil in inference mode.
	thetas [][]float64

	// psis holds error terms for every non-input layer, produced at the
	// output layer by RunTraining and consumed layer by layer by
	// ApplyDeltas. Nil in inference mode.
	psis [][]float64
}

// New allocates a Network for the given topology and settings.
//
// Training mode additionally allocates one theta vector per hidden layer and
// one psi vector per non-input layer, and requires at least one hidden layer.
// Weights start at zero; populate them with PopulateRandom or weights.Load
// before use.
func New(topo topology.Topology, cfg Config) (*Network, error) {
	if cfg.Training && topo.LayerCount() < 3 {
		return nil, fmt.Errorf("nn: topology %s has no hidden layer; training needs at least 3 layers", topo)
	}

	n := &Network{topo: topo, cfg: cfg}

	n.a = make([][]float64, topo.LayerCount())
	for l := range n.a {
		n.a[l] = make([]float64, topo.Units(l))
	}

	n.w = make([]*mat.Dense, topo.ConnectivityLayers())
	for l := range n.w {
		n.w[l] = mat.NewDense(topo.Units(l), topo.Units(l+1), nil)
	}

	if cfg.Training {
		n.thetas = make([][]float64, topo.LayerCount())
		for l := topology.FirstHidden; l <= topo.LastHidden(); l++ {
			n.thetas[l] = make([]float64, topo.Units(l))
		}

		n.psis = make([][]float64, topo.LayerCount())
		for l := topology.FirstHidden; l <= topo.Output(); l++ {
			n.psis[l] = make([]float64, topo.Units(l))
		}
	}

	return n, nil
}

// Topology returns the topology the network was sized from.
func (n *Network) Topology() topology.Topology { return n.topo }

// Training reports whether the network carries training scratch buffers.
func (n *Network) Training() bool { return n.cfg.Training }

// PopulateRandom draws every weight independently from a uniform
// distribution over [min, max).
func (n *Network) PopulateRandom(min, max float64, src rand.Source) {
	u := distuv.Uniform{Min: min, Max: max, Src: src}
	for l := range n.w {
		raw := n.w[l].RawMatrix()
		for i := range raw.Data {
			raw.Data[i] = u.Rand()
		}
	}
}

// SetInput copies in into the input-layer activation buffer.
func (n *Network) SetInput(in []float64) error {
	if len(in) != n.topo.Inputs() {
		return fmt.Errorf("nn: input length %d, topology %s wants %d", len(in), n.topo, n.topo.Inputs())
	}
	copy(n.a[topology.InputLayer], in)
	return nil
}

// Run propagates the current input through every layer in inference mode.
//
// Pre-activation sums are discarded immediately after use; only the
// activation buffers are left populated.
func (n *Network) Run() {
	for l := topology.FirstHidden; l <= n.topo.Output(); l++ {
		prev := n.a[l-1]
		cur := n.a[l]
		raw := n.w[l-1].RawMatrix()
		for j := range cur {
			theta := 0.0
			for k := range prev {
				theta += prev[k] * raw.Data[k*raw.Stride+j]
			}
			cur[j] = n.cfg.Activation.Apply(theta)
		}
	}
}

// RunTraining propagates the current input in training mode.
//
// Hidden-layer pre-activation sums are retained in the theta buffers for the
// backward sweep. At the output layer the error term
//
//	psi[out][i] = (expected[i] - actual[i]) * f'(theta[out][i])
//
// is produced inline, and the case's squared-error contribution
// sum_i (expected[i]-actual[i])^2 is returned.
//
// The network must have been constructed with Training set.
func (n *Network) RunTraining(expected []float64) float64 {
	for l := topology.FirstHidden; l <= n.topo.LastHidden(); l++ {
		prev := n.a[l-1]
		cur := n.a[l]
		th := n.thetas[l]
		raw := n.w[l-1].RawMatrix()
		for j := range cur {
			sum := 0.0
			for k := range prev {
				sum += prev[k] * raw.Data[k*raw.Stride+j]
			}
			th[j] = sum
			cur[j] = n.cfg.Activation.Apply(sum)
		}
	}

	out := n.topo.Output()
	prev := n.a[out-1]
	cur := n.a[out]
	psi := n.psis[out]
	raw := n.w[out-1].RawMatrix()

	caseError := 0.0
	for i := range cur {
		theta := 0.0
		for j := range prev {
			theta += prev[j] * raw.Data[j*raw.Stride+i]
		}
		cur[i] = n.cfg.Activation.Apply(theta)
		omega := expected[i] - cur[i]
		psi[i] = omega * n.cfg.Activation.Derivative(theta)
		caseError += omega * omega
	}

	return caseError
}

// ApplyDeltas runs the streaming backward sweep for the current case,
// mutating the weights in place.
//
// For each hidden layer l from the last down to the first, and each unit k,
// the upstream error signal omega[k] = sum_j psi[l+1][j]*w[l][k][j] is
// accumulated and the connecting weights are updated by
// lambda*a[l][k]*psi[l+1][j]. Each weight element is read for omega strictly
// before it is written; psi[l+1] itself was produced from pre-update reads
// one layer further up, so every weight in the sweep is read at its
// pre-case value. Reordering these two statements, or vectorizing the layer
// update ahead of the omega accumulation, breaks the algorithm.
//
// At the first hidden layer the input-side weights are updated from the
// freshly computed psi as well, which terminates the sweep.
//
// RunTraining must have been called for the same case first.
func (n *Network) ApplyDeltas() {
	lambda := n.cfg.Lambda

	for l := n.topo.LastHidden(); l > topology.FirstHidden; l-- {
		raw := n.w[l].RawMatrix()
		psiNext := n.psis[l+1]
		for k := 0; k < n.topo.Units(l); k++ {
			row := raw.Data[k*raw.Stride : k*raw.Stride+len(psiNext)]
			omega := 0.0
			for j := range row {
				omega += psiNext[j] * row[j] // read before the write below
				row[j] += lambda * n.a[l][k] * psiNext[j]
			}
			n.psis[l][k] = omega * n.cfg.Activation.Derivative(n.thetas[l][k])
		}
	}

	l := topology.FirstHidden
	raw := n.w[l].RawMatrix()
	rawIn := n.w[topology.InputLayer].RawMatrix()
	psiNext := n.psis[l+1]
	input := n.a[topology.InputLayer]

	for k := 0; k < n.topo.Units(l); k++ {
		row := raw.Data[k*raw.Stride : k*raw.Stride+len(psiNext)]
		omega := 0.0
		for j := range row {
			omega += psiNext[j] * row[j]
			row[j] += lambda * n.a[l][k] * psiNext[j]
		}
		psiK := omega * n.cfg.Activation.Derivative(n.thetas[l][k])
		n.psis[l][k] = psiK

		for m := range input {
			rawIn.Data[m*rawIn.Stride+k] += lambda * input[m] * psiK
		}
	}
}

// Output returns a copy of the output-layer activations.
func (n *Network) Output() []float64 {
	out := make([]float64, n.topo.Outputs())
	copy(out, n.a[n.topo.Output()])
	return out
}

// Activations returns a copy of layer l's activation buffer.
func (n *Network) Activations(l int) []float64 {
	out := make([]float64, len(n.a[l]))
	copy(out, n.a[l])
	return out
}

// Weight returns the weight connecting unit k of layer l to unit j of layer
// l+1.
func (n *Network) Weight(l, k, j int) float64 { return n.w[l].At(k, j) }

// SetWeight sets the weight connecting unit k of layer l to unit j of layer
// l+1. Intended for weight loading and tests; training mutates weights only
// through ApplyDeltas.
func (n *Network) SetWeight(l, k, j int, v float64) { n.w[l].Set(k, j, v) }

// WeightMatrix returns the weight matrix of connectivity layer l. The matrix
// is shared with the network, not copied; callers must not mutate it.
func (n *Network) WeightMatrix(l int) mat.Matrix { return n.w[l] }
