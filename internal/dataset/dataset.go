// Package dataset loads test cases from whitespace-separated text files.
//
// The inputs file supplies numCases x topology.Inputs() values and the
// outputs file, when requested, numCases x topology.Outputs() values. Case
// order follows file order and is never shuffled: online weight updates make
// the training trajectory depend on it.
package dataset

import (
	"bufio"
	"fmt"
	"os"
	"strconv"

	"github.com/ffnet-ml/ffnet/internal/topology"
)

// Case is one test case: an input vector and, when the set was loaded with
// expected outputs, the expected output vector (nil otherwise).
type Case struct {
	Input    []float64
	Expected []float64
}

// Set is an ordered, immutable collection of test cases.
type Set struct {
	cases       []Case
	hasExpected bool
}

// ShapeError reports a test-case file with fewer values than the topology
// and case count require.
type ShapeError struct {
	Path string
	Want int // values required
	Got  int // values present
}

// Error implements the error interface.
func (e *ShapeError) Error() string {
	return fmt.Sprintf("dataset: %s: need %d values, found %d", e.Path, e.Want, e.Got)
}

// Load reads numCases test cases sized for topo. The outputs file is read
// only when withExpected is set; running a trained network for a plain
// output table needs no expected values.
func Load(inputsPath, outputsPath string, numCases int, topo topology.Topology, withExpected bool) (*Set, error) {
	if numCases <= 0 {
		return nil, fmt.Errorf("dataset: number of test cases must be positive, got %d", numCases)
	}

	inputs, err := readValues(inputsPath, numCases*topo.Inputs())
	if err != nil {
		return nil, err
	}

	var outputs []float64
	if withExpected {
		outputs, err = readValues(outputsPath, numCases*topo.Outputs())
		if err != nil {
			return nil, err
		}
	}

	set := &Set{cases: make([]Case, numCases), hasExpected: withExpected}
	for c := 0; c < numCases; c++ {
		set.cases[c].Input = inputs[c*topo.Inputs() : (c+1)*topo.Inputs()]
		if withExpected {
			set.cases[c].Expected = outputs[c*topo.Outputs() : (c+1)*topo.Outputs()]
		}
	}
	return set, nil
}

// FromSlices builds a Set directly from in-memory vectors, one input per
// case and, when outputs is non-nil, one expected output per case. The
// slices are not copied.
func FromSlices(inputs, outputs [][]float64) *Set {
	set := &Set{cases: make([]Case, len(inputs)), hasExpected: outputs != nil}
	for i := range inputs {
		set.cases[i].Input = inputs[i]
		if outputs != nil {
			set.cases[i].Expected = outputs[i]
		}
	}
	return set
}

// readValues parses exactly want whitespace-separated floats from path.
// Values beyond want are ignored, matching the original file contract.
func readValues(path string, want int) ([]float64, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("dataset: %w", err)
	}
	defer f.Close()

	sc := bufio.NewScanner(f)
	sc.Split(bufio.ScanWords)

	values := make([]float64, 0, want)
	for len(values) < want && sc.Scan() {
		v, err := strconv.ParseFloat(sc.Text(), 64)
		if err != nil {
			return nil, fmt.Errorf("dataset: %s: value %d: %w", path, len(values)+1, err)
		}
		values = append(values, v)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("dataset: %s: %w", path, err)
	}
	if len(values) < want {
		return nil, &ShapeError{Path: path, Want: want, Got: len(values)}
	}
	return values, nil
}

// Len returns the number of cases.
func (s *Set) Len() int { return len(s.cases) }

// Case returns case i. The returned slices are shared with the set; callers
// must not mutate them.
func (s *Set) Case(i int) Case { return s.cases[i] }

// HasExpected reports whether the set carries expected output vectors.
func (s *Set) HasExpected() bool { return s.hasExpected }
