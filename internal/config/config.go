// Package config loads the run configuration from a key=value properties
// file and validates it before anything is allocated.
//
// Keys use the original property names (networkConfig, lambdaValue, ...).
// Lines starting with '#' or '!' are comments; unrecognized keys are ignored
// for compatibility with older property files. Missing or malformed required
// keys are fatal.
package config

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/ffnet-ml/ffnet/internal/nn"
	"github.com/ffnet-ml/ffnet/internal/topology"
)

// WeightInit selects how the weight matrices are populated before training
// or running.
type WeightInit int

const (
	// Random draws every weight from a uniform [min, max) distribution.
	Random WeightInit = iota

	// Load reads weights from a persisted binary file.
	Load
)

// String returns the configuration name of the weight mode.
func (w WeightInit) String() string {
	if w == Load {
		return "Load"
	}
	return "Random"
}

// KeyError reports a missing or malformed configuration key.
type KeyError struct {
	Key    string
	Reason string
}

// Error implements the error interface.
func (e *KeyError) Error() string {
	return fmt.Sprintf("config: key %q: %s", e.Key, e.Reason)
}

// Config is the immutable run configuration. It is built once by LoadFile or
// Parse and handed to the engine at construction; nothing reconfigures a
// network after that.
type Config struct {
	Topology   topology.Topology
	Activation nn.Activation

	RandomWeightMin float64
	RandomWeightMax float64
	MaxIterations   int
	ErrorThreshold  float64
	Lambda          float64

	WeightInit          WeightInit
	LoadWeightsFilePath string
	SaveWeightsFilePath string
	SaveWeightsToFile   bool

	IsTraining       bool
	RunAfterTraining bool

	NumTestCases    int
	InputsFilePath  string
	OutputsFilePath string

	KeepAlive int

	PrintInputTable        bool
	PrintTruthTable        bool
	PrintHiddenActivations bool
	PrintNetworkSpecifics  bool
}

// NeedsExpectedOutputs reports whether the outputs file must be read:
// training always needs expected values, and the truth table reports
// expected next to actual.
func (c Config) NeedsExpectedOutputs() bool {
	return c.IsTraining || c.PrintTruthTable
}

// LoadFile reads and validates a configuration file.
func LoadFile(path string) (Config, error) {
	f, err := os.Open(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: %w", err)
	}
	defer f.Close()

	cfg, err := Parse(f)
	if err != nil {
		return Config{}, fmt.Errorf("%w (file %s)", err, path)
	}
	return cfg, nil
}

// Parse reads key=value pairs from r and validates them into a Config.
func Parse(r io.Reader) (Config, error) {
	props, err := readProps(r)
	if err != nil {
		return Config{}, err
	}
	return build(props)
}

func readProps(r io.Reader) (map[string]string, error) {
	props := make(map[string]string)
	sc := bufio.NewScanner(r)
	for sc.Scan() {
		line := strings.TrimSpace(sc.Text())
		if line == "" || strings.HasPrefix(line, "#") || strings.HasPrefix(line, "!") {
			continue
		}
		key, value, ok := strings.Cut(line, "=")
		if !ok {
			return nil, &KeyError{Key: line, Reason: "line is not key=value"}
		}
		props[strings.TrimSpace(key)] = strings.TrimSpace(value)
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}
	return props, nil
}

func build(props map[string]string) (Config, error) {
	var cfg Config
	p := &parser{props: props}

	descriptor := p.requireString("networkConfig")
	cfg.IsTraining = p.bool("isTraining", false, true)
	cfg.RunAfterTraining = p.bool("runAfterTraining", false, false)
	cfg.NumTestCases = p.int("numTestCases", 0, true)
	cfg.InputsFilePath = p.requireString("inputsFilePath")
	cfg.KeepAlive = p.int("keepAlive", 0, false)

	cfg.PrintInputTable = p.bool("printInputTable", false, false)
	cfg.PrintTruthTable = p.bool("printTruthTable", false, false)
	cfg.PrintHiddenActivations = p.bool("printHiddenActivations", false, false)
	cfg.PrintNetworkSpecifics = p.bool("printNetworkSpecifics", false, false)

	weightMode := p.requireString("weightConfig")
	cfg.SaveWeightsToFile = p.bool("saveWeightsToFile", false, false)
	cfg.SaveWeightsFilePath = p.string("saveWeightsFilePath", "")
	cfg.LoadWeightsFilePath = p.string("loadWeightsFilePath", "")
	cfg.OutputsFilePath = p.string("outputsFilePath", "")

	cfg.MaxIterations = p.int("maxIterations", 0, false)
	cfg.ErrorThreshold = p.float("errorThreshold", 0, false)
	cfg.Lambda = p.float("lambdaValue", 0, false)
	cfg.RandomWeightMin = p.float("randomWeightMin", 0, false)
	cfg.RandomWeightMax = p.float("randomWeightMax", 0, false)

	activation := p.string("activationFunction", "Sigmoid")

	if p.err != nil {
		return Config{}, p.err
	}

	topo, err := topology.Parse(descriptor)
	if err != nil {
		return Config{}, err
	}
	cfg.Topology = topo

	cfg.Activation, err = nn.ParseActivation(activation)
	if err != nil {
		return Config{}, &KeyError{Key: "activationFunction", Reason: err.Error()}
	}

	switch weightMode {
	case "Random":
		cfg.WeightInit = Random
	case "Load":
		cfg.WeightInit = Load
	default:
		return Config{}, &KeyError{Key: "weightConfig", Reason: fmt.Sprintf("must be Random or Load, got %q", weightMode)}
	}

	return cfg, validate(cfg, p)
}

func validate(cfg Config, p *parser) error {
	if cfg.NumTestCases <= 0 {
		return &KeyError{Key: "numTestCases", Reason: "must be positive"}
	}

	if cfg.IsTraining {
		if p.missing("maxIterations") {
			return &KeyError{Key: "maxIterations", Reason: "required when training"}
		}
		if cfg.MaxIterations <= 0 {
			return &KeyError{Key: "maxIterations", Reason: "must be positive"}
		}
		if p.missing("errorThreshold") {
			return &KeyError{Key: "errorThreshold", Reason: "required when training"}
		}
		if cfg.ErrorThreshold < 0 {
			return &KeyError{Key: "errorThreshold", Reason: "must not be negative"}
		}
		if p.missing("lambdaValue") {
			return &KeyError{Key: "lambdaValue", Reason: "required when training"}
		}
		if cfg.Lambda <= 0 {
			return &KeyError{Key: "lambdaValue", Reason: "must be positive"}
		}
		if cfg.Topology.LayerCount() < 3 {
			return &KeyError{Key: "networkConfig", Reason: "training needs at least one hidden layer"}
		}
	}

	if cfg.WeightInit == Random {
		if p.missing("randomWeightMin") || p.missing("randomWeightMax") {
			return &KeyError{Key: "randomWeightMin", Reason: "random range required for weightConfig=Random"}
		}
		if cfg.RandomWeightMin >= cfg.RandomWeightMax {
			return &KeyError{Key: "randomWeightMin", Reason: "must be below randomWeightMax"}
		}
	} else if cfg.LoadWeightsFilePath == "" {
		return &KeyError{Key: "loadWeightsFilePath", Reason: "required for weightConfig=Load"}
	}

	if cfg.SaveWeightsToFile && cfg.SaveWeightsFilePath == "" {
		return &KeyError{Key: "saveWeightsFilePath", Reason: "required when saveWeightsToFile is true"}
	}

	if cfg.NeedsExpectedOutputs() && cfg.OutputsFilePath == "" {
		return &KeyError{Key: "outputsFilePath", Reason: "required when training or printing the truth table"}
	}

	if cfg.KeepAlive < 0 {
		return &KeyError{Key: "keepAlive", Reason: "must not be negative"}
	}

	return nil
}

// parser accumulates the first key error while pulling typed values out of
// the property map.
type parser struct {
	props map[string]string
	err   error
}

func (p *parser) missing(key string) bool {
	_, ok := p.props[key]
	return !ok
}

func (p *parser) fail(key, reason string) {
	if p.err == nil {
		p.err = &KeyError{Key: key, Reason: reason}
	}
}

func (p *parser) requireString(key string) string {
	v, ok := p.props[key]
	if !ok || v == "" {
		p.fail(key, "required")
		return ""
	}
	return v
}

func (p *parser) string(key, def string) string {
	if v, ok := p.props[key]; ok {
		return v
	}
	return def
}

func (p *parser) bool(key string, def, required bool) bool {
	v, ok := p.props[key]
	if !ok {
		if required {
			p.fail(key, "required")
		}
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		p.fail(key, fmt.Sprintf("not a boolean: %q", v))
		return def
	}
	return b
}

func (p *parser) int(key string, def int, required bool) int {
	v, ok := p.props[key]
	if !ok {
		if required {
			p.fail(key, "required")
		}
		return def
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		p.fail(key, fmt.Sprintf("not an integer: %q", v))
		return def
	}
	return n
}

func (p *parser) float(key string, def float64, required bool) float64 {
	v, ok := p.props[key]
	if !ok {
		if required {
			p.fail(key, "required")
		}
		return def
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		p.fail(key, fmt.Sprintf("not a number: %q", v))
		return def
	}
	return f
}
