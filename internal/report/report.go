// Package report renders human-readable console output for a run: the
// configuration echo, training results, truth tables, and weight dumps.
//
// Everything writes to an injected io.Writer so the output is testable; the
// CLI passes os.Stdout.
package report

import (
	"fmt"
	"io"
	"time"

	"gonum.org/v1/gonum/mat"

	"github.com/ffnet-ml/ffnet/internal/config"
	"github.com/ffnet-ml/ffnet/internal/dataset"
	"github.com/ffnet-ml/ffnet/internal/nn"
	"github.com/ffnet-ml/ffnet/internal/topology"
	"github.com/ffnet-ml/ffnet/internal/train"
)

// Reporter writes run reports to W.
type Reporter struct {
	W io.Writer
}

// New returns a Reporter writing to w.
func New(w io.Writer) *Reporter { return &Reporter{W: w} }

// NetworkConfigs echoes the loaded configuration.
func (r *Reporter) NetworkConfigs(cfg config.Config, configPath string) {
	fmt.Fprintf(r.W, "\n---------NETWORK CONFIGURATIONS---------\n")
	fmt.Fprintf(r.W, "Configurations File Path: %s\n", configPath)
	fmt.Fprintf(r.W, "Test Cases Input File Path: %s\n", cfg.InputsFilePath)
	fmt.Fprintf(r.W, "Test Cases Output File Path: %s\n", cfg.OutputsFilePath)
	fmt.Fprintf(r.W, "Network Config: %s\n", cfg.Topology)
	fmt.Fprintf(r.W, "Activation Function: %s\n", cfg.Activation)
	fmt.Fprintf(r.W, "Print Network Specifics: %t\n", cfg.PrintNetworkSpecifics)
	fmt.Fprintf(r.W, "Print Input Table: %t\n", cfg.PrintInputTable)
	fmt.Fprintf(r.W, "Print Truth Table: %t\n", cfg.PrintTruthTable)
	fmt.Fprintf(r.W, "Print Hidden Activations: %t\n", cfg.PrintHiddenActivations)
	fmt.Fprintf(r.W, "Keep Alive Iterations: %d\n", cfg.KeepAlive)
	fmt.Fprintf(r.W, "Weight Configuration: %s\n", cfg.WeightInit)
	if cfg.IsTraining {
		fmt.Fprintf(r.W, "Mode: Training\n")
	} else {
		fmt.Fprintf(r.W, "Mode: Running\n")
	}
	fmt.Fprintf(r.W, "Run After Training: %t\n", cfg.RunAfterTraining)
	fmt.Fprintf(r.W, "Number of Test Cases: %d\n", cfg.NumTestCases)
}

// TrainingParameters echoes the parameters that shape the training loop.
func (r *Reporter) TrainingParameters(cfg config.Config) {
	fmt.Fprintf(r.W, "\n---------TRAINING PARAMETERS---------\n")
	fmt.Fprintf(r.W, "Random Weight Range: %v to %v\n", cfg.RandomWeightMin, cfg.RandomWeightMax)
	fmt.Fprintf(r.W, "Max Iterations: %d\n", cfg.MaxIterations)
	fmt.Fprintf(r.W, "Error Threshold: %v\n", cfg.ErrorThreshold)
	fmt.Fprintf(r.W, "Lambda Value: %v\n", cfg.Lambda)
}

// Progress writes one keep-alive line; wire it to train.Trainer.Progress.
func (r *Reporter) Progress(iteration int, averageError float64) {
	fmt.Fprintf(r.W, "Iteration %d, Error = %f\n", iteration, averageError)
}

// TrainResults reports the outcome of a training run.
func (r *Reporter) TrainResults(res train.Result, elapsed time.Duration) {
	fmt.Fprintf(r.W, "\n---------TRAINING RESULTS---------\n")
	fmt.Fprintf(r.W, "Iterations: %d\n", res.Iterations)
	fmt.Fprintf(r.W, "Final Average Error: %.6f\n", res.AverageError)
	fmt.Fprintf(r.W, "Training Time: %d milliseconds\n", elapsed.Milliseconds())
	fmt.Fprintf(r.W, "Reason: %s\n", res.Reason)
}

// RunResults reports a forward-only run over the case set.
func (r *Reporter) RunResults(elapsed time.Duration) {
	fmt.Fprintf(r.W, "\n---------RUN RESULTS---------\n")
	fmt.Fprintf(r.W, "Run Time: %d milliseconds\n", elapsed.Milliseconds())
}

// InputTable prints the input vector of every test case.
func (r *Reporter) InputTable(set *dataset.Set) {
	fmt.Fprintf(r.W, "\n---------INPUT TABLE---------\n")
	fmt.Fprintf(r.W, "Inputs\n")
	for i := 0; i < set.Len(); i++ {
		fmt.Fprint(r.W, "[")
		for _, v := range set.Case(i).Input {
			fmt.Fprintf(r.W, "%.2f ", v)
		}
		fmt.Fprintln(r.W, "]")
	}
}

// TruthTable runs the network for every case and prints inputs, expected
// outputs, and actual outputs side by side. The set must carry expected
// outputs.
func (r *Reporter) TruthTable(net *nn.Network, set *dataset.Set) error {
	fmt.Fprintf(r.W, "\n---------TRUTH TABLE---------\n")
	fmt.Fprintf(r.W, "Inputs | Expected Outputs | Actual Outputs\n")

	for i := 0; i < set.Len(); i++ {
		c := set.Case(i)
		if err := net.SetInput(c.Input); err != nil {
			return err
		}
		net.Run()

		fmt.Fprint(r.W, "[")
		for _, v := range c.Input {
			fmt.Fprintf(r.W, "%.2f ", v)
		}
		fmt.Fprint(r.W, "|")
		for _, v := range c.Expected {
			fmt.Fprintf(r.W, " %.2f", v)
		}
		fmt.Fprint(r.W, " |")
		for _, v := range net.Output() {
			fmt.Fprintf(r.W, " %.4f", v)
		}
		fmt.Fprintln(r.W, "]")
	}
	return nil
}

// InputsAndOutputs runs the network for every case and prints inputs next to
// actual outputs, for sets without expected values.
func (r *Reporter) InputsAndOutputs(net *nn.Network, set *dataset.Set) error {
	fmt.Fprintf(r.W, "\n---------INPUTS AND OUTPUTS---------\n")
	fmt.Fprintf(r.W, "Inputs | Outputs\n")

	for i := 0; i < set.Len(); i++ {
		c := set.Case(i)
		if err := net.SetInput(c.Input); err != nil {
			return err
		}
		net.Run()

		fmt.Fprint(r.W, "[")
		for _, v := range c.Input {
			fmt.Fprintf(r.W, "%.2f ", v)
		}
		fmt.Fprint(r.W, "|")
		for _, v := range net.Output() {
			fmt.Fprintf(r.W, " %.17f", v)
		}
		fmt.Fprintln(r.W, "]")
	}
	return nil
}

// HiddenActivations prints the activations of every hidden layer as they
// stand after the most recent forward pass.
func (r *Reporter) HiddenActivations(net *nn.Network) {
	fmt.Fprintf(r.W, "\n---------HIDDEN ACTIVATIONS---------\n")
	topo := net.Topology()
	for l := topology.FirstHidden; l < topo.Output(); l++ {
		for k, v := range net.Activations(l) {
			fmt.Fprintf(r.W, "a[%d][%d]: %.4f\n", l, k, v)
		}
	}
}

// NetworkWeights prints every weight matrix, one connectivity layer at a
// time.
func (r *Reporter) NetworkWeights(net *nn.Network) {
	fmt.Fprintf(r.W, "\n---------NETWORK WEIGHTS---------\n")
	topo := net.Topology()
	for l := 0; l < topo.ConnectivityLayers(); l++ {
		fmt.Fprintf(r.W, "layer %d -> %d:\n", l, l+1)
		f := mat.Formatted(net.WeightMatrix(l), mat.Prefix("  "), mat.Squeeze())
		fmt.Fprintf(r.W, "  %.4f\n", f)
	}
}
