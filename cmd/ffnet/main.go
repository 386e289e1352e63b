// The ffnet command trains or runs an N-layer feed-forward network from a
// key=value configuration file.
//
// Usage:
//
//	ffnet [-config run.properties]
//
// The configuration selects the topology, weight population (random or
// loaded from a binary file), training parameters, test-case files, and
// which reports to print. Any fatal error aborts the run with a single
// descriptive message and a nonzero exit status.
package main

import (
	"flag"
	"fmt"
	"io"
	"os"
	"time"

	"golang.org/x/exp/rand"

	"github.com/ffnet-ml/ffnet/internal/config"
	"github.com/ffnet-ml/ffnet/internal/dataset"
	"github.com/ffnet-ml/ffnet/internal/nn"
	"github.com/ffnet-ml/ffnet/internal/report"
	"github.com/ffnet-ml/ffnet/internal/train"
	"github.com/ffnet-ml/ffnet/internal/weights"
)

func main() {
	configPath := flag.String("config", "ffnet.properties", "path to the run configuration file")
	flag.Parse()

	if err := run(*configPath, os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "ffnet: %v\n", err)
		os.Exit(1)
	}
}

func run(configPath string, out io.Writer) error {
	cfg, err := config.LoadFile(configPath)
	if err != nil {
		return err
	}

	r := report.New(out)
	r.NetworkConfigs(cfg, configPath)
	if cfg.IsTraining {
		r.TrainingParameters(cfg)
	}

	net, err := nn.New(cfg.Topology, nn.Config{
		Activation: cfg.Activation,
		Lambda:     cfg.Lambda,
		Training:   cfg.IsTraining,
	})
	if err != nil {
		return err
	}

	switch cfg.WeightInit {
	case config.Load:
		if err := weights.LoadFile(cfg.LoadWeightsFilePath, net); err != nil {
			return err
		}
	default:
		net.PopulateRandom(cfg.RandomWeightMin, cfg.RandomWeightMax, rand.NewSource(uint64(time.Now().UnixNano())))
	}

	cases, err := dataset.Load(cfg.InputsFilePath, cfg.OutputsFilePath, cfg.NumTestCases, cfg.Topology, cfg.NeedsExpectedOutputs())
	if err != nil {
		return err
	}

	if cfg.PrintInputTable {
		r.InputTable(cases)
	}

	if cfg.IsTraining {
		trainer := &train.Trainer{
			Net:            net,
			Cases:          cases,
			MaxIterations:  cfg.MaxIterations,
			ErrorThreshold: cfg.ErrorThreshold,
			KeepAlive:      cfg.KeepAlive,
			Progress:       r.Progress,
		}

		start := time.Now()
		res, err := trainer.Train()
		if err != nil {
			return err
		}
		r.TrainResults(res, time.Since(start))

		if cfg.PrintNetworkSpecifics {
			r.NetworkWeights(net)
		}
		if cfg.SaveWeightsToFile {
			if err := weights.SaveFile(cfg.SaveWeightsFilePath, net); err != nil {
				return err
			}
		}
		if !cfg.RunAfterTraining {
			return nil
		}
	}

	return runAll(r, cfg, net, cases)
}

// runAll evaluates every case and prints the selected tables.
func runAll(r *report.Reporter, cfg config.Config, net *nn.Network, cases *dataset.Set) error {
	start := time.Now()
	for i := 0; i < cases.Len(); i++ {
		if err := net.SetInput(cases.Case(i).Input); err != nil {
			return err
		}
		net.Run()
	}
	r.RunResults(time.Since(start))

	if cfg.PrintNetworkSpecifics && !cfg.IsTraining {
		r.NetworkWeights(net)
	}

	var err error
	if cfg.PrintTruthTable {
		err = r.TruthTable(net, cases)
	} else {
		err = r.InputsAndOutputs(net, cases)
	}
	if err != nil {
		return err
	}

	if cfg.PrintHiddenActivations {
		r.HiddenActivations(net)
	}
	return nil
}
