package main

import (
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ffnet-ml/ffnet/internal/weights"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

// Full pipeline: train logical OR from a properties file, save the weights,
// rerun from the saved file, and check both reports.
func TestRun_TrainSaveThenLoad(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "inputs.txt", "0 0\n0 1\n1 0\n1 1\n")
	writeFile(t, dir, "outputs.txt", "0\n1\n1\n1\n")
	weightsPath := filepath.Join(dir, "or.bin")

	trainProps := writeFile(t, dir, "train.properties", strings.Join([]string{
		"networkConfig=2-2-1",
		"randomWeightMin=0.1",
		"randomWeightMax=1.5",
		"maxIterations=100000",
		"errorThreshold=0.005",
		"lambdaValue=0.3",
		"weightConfig=Random",
		"saveWeightsFilePath=" + weightsPath,
		"saveWeightsToFile=true",
		"isTraining=true",
		"runAfterTraining=true",
		"printInputTable=true",
		"printTruthTable=true",
		"numTestCases=4",
		"inputsFilePath=" + filepath.Join(dir, "inputs.txt"),
		"outputsFilePath=" + filepath.Join(dir, "outputs.txt"),
		"keepAlive=0",
	}, "\n"))

	var sb strings.Builder
	require.NoError(t, run(trainProps, &sb))

	out := sb.String()
	assert.Contains(t, out, "NETWORK CONFIGURATIONS")
	assert.Contains(t, out, "TRAINING PARAMETERS")
	assert.Contains(t, out, "TRAINING RESULTS")
	assert.Contains(t, out, "Reason: error threshold reached")
	assert.Contains(t, out, "INPUT TABLE")
	assert.Contains(t, out, "TRUTH TABLE")

	_, err := os.Stat(weightsPath)
	require.NoError(t, err, "weights file must have been written")

	runProps := writeFile(t, dir, "run.properties", strings.Join([]string{
		"networkConfig=2-2-1",
		"weightConfig=Load",
		"loadWeightsFilePath=" + weightsPath,
		"isTraining=false",
		"printTruthTable=true",
		"numTestCases=4",
		"inputsFilePath=" + filepath.Join(dir, "inputs.txt"),
		"outputsFilePath=" + filepath.Join(dir, "outputs.txt"),
	}, "\n"))

	sb.Reset()
	require.NoError(t, run(runProps, &sb))

	out = sb.String()
	assert.Contains(t, out, "Mode: Running")
	assert.Contains(t, out, "RUN RESULTS")
	assert.Contains(t, out, "TRUTH TABLE")
}

// Loading a weight file written for a different topology must fail before
// anything runs.
func TestRun_TopologyMismatch(t *testing.T) {
	dir := t.TempDir()

	writeFile(t, dir, "inputs.txt", "0 0\n0 1\n1 0\n1 1\n")
	weightsPath := filepath.Join(dir, "w.bin")

	// write a weight file tagged for a different topology
	other := strings.Join([]string{
		"networkConfig=2-3-1",
		"randomWeightMin=0.1",
		"randomWeightMax=1.5",
		"maxIterations=1",
		"errorThreshold=0",
		"lambdaValue=0.3",
		"weightConfig=Random",
		"saveWeightsFilePath=" + weightsPath,
		"saveWeightsToFile=true",
		"isTraining=true",
		"runAfterTraining=false",
		"numTestCases=4",
		"inputsFilePath=" + filepath.Join(dir, "inputs.txt"),
		"outputsFilePath=" + filepath.Join(dir, "outputs.txt"),
	}, "\n")
	writeFile(t, dir, "outputs.txt", "0\n1\n1\n1\n")
	otherProps := writeFile(t, dir, "other.properties", other)

	var sb strings.Builder
	require.NoError(t, run(otherProps, &sb))

	mismatchProps := writeFile(t, dir, "mismatch.properties", strings.Join([]string{
		"networkConfig=2-2-1",
		"weightConfig=Load",
		"loadWeightsFilePath=" + weightsPath,
		"isTraining=false",
		"numTestCases=4",
		"inputsFilePath=" + filepath.Join(dir, "inputs.txt"),
	}, "\n"))

	sb.Reset()
	err := run(mismatchProps, &sb)
	require.Error(t, err)
	assert.True(t, errors.Is(err, weights.ErrTopologyMismatch))
}

func TestRun_MissingConfig(t *testing.T) {
	var sb strings.Builder
	require.Error(t, run(filepath.Join(t.TempDir(), "absent.properties"), &sb))
}
