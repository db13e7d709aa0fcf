package cmd

import (
	"bytes"
	"encoding/json"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/agriscan/internal/catalog"
	"github.com/abhisek/agriscan/internal/diagnosis"
	"github.com/abhisek/agriscan/internal/scan"
)

func execute(t *testing.T, args ...string) (string, error) {
	t.Helper()
	t.Chdir(t.TempDir())

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	t.Cleanup(func() { rootCmd.SetArgs(nil) })

	err := rootCmd.Execute()
	return out.String(), err
}

func TestPresetCommand_JSON(t *testing.T) {
	out, err := execute(t, "preset", "Early Blight", "--json")
	require.NoError(t, err)

	var r report
	require.NoError(t, json.Unmarshal([]byte(out), &r))
	assert.Equal(t, scan.MethodSample, r.Method)
	assert.Equal(t, catalog.Label("Tomato Early Blight"), r.Result.Predictions[0].Label)
	assert.Equal(t, "preset", r.Result.Scorer)
	assert.Len(t, r.Treatments, 4)
	assert.Equal(t, "Early Blight", r.Chart.Bars[0].Label)
}

func TestPresetCommand_Unknown(t *testing.T) {
	_, err := execute(t, "preset", "Rust")
	var presetErr *diagnosis.UnknownPresetError
	assert.ErrorAs(t, err, &presetErr)
}

func TestScanCommand_Text(t *testing.T) {
	out, err := execute(t, "scan", "--seed", "42")
	require.NoError(t, err)
	for _, want := range []string{"Diagnosis:", "Confidence:", "Recommended Treatment", "Prevention Tips", "Disease Confidence Scores"} {
		assert.Contains(t, out, want)
	}
}

func TestScanCommand_SeedIsDeterministic(t *testing.T) {
	first, err := execute(t, "scan", "--seed", "7", "--json")
	require.NoError(t, err)
	second, err := execute(t, "scan", "--seed", "7", "--json")
	require.NoError(t, err)

	var a, b report
	require.NoError(t, json.Unmarshal([]byte(first), &a))
	require.NoError(t, json.Unmarshal([]byte(second), &b))
	assert.Equal(t, a.Result, b.Result)
}

func TestScanCommand_MissingImage(t *testing.T) {
	_, err := execute(t, "scan", "--image", "missing.png")
	var inErr *diagnosis.InvalidInputError
	assert.ErrorAs(t, err, &inErr)
}

func TestLabelsCommand(t *testing.T) {
	out, err := execute(t, "labels")
	require.NoError(t, err)
	assert.Contains(t, out, "Tomato catalog, 10 labels")
	lines := strings.Split(strings.TrimSpace(out), "\n")
	assert.Contains(t, lines[len(lines)-1], "Healthy Tomato")
}

func TestVersionCommand(t *testing.T) {
	out, err := execute(t, "version")
	require.NoError(t, err)
	assert.Equal(t, "agriscan (devel)\n", out)
}
