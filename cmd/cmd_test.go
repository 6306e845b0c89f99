package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// run executes the root command against a database in dir and returns
// everything written to stdout and stderr.
func run(t *testing.T, dir string, args ...string) (string, error) {
	t.Helper()
	t.Setenv("STEPCOACH_DB", filepath.Join(dir, "test.db"))
	t.Setenv("STEPCOACH_LOG", filepath.Join(dir, "test.log"))

	var out bytes.Buffer
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)
	rootCmd.SetArgs(args)
	defer resetFlags(rootCmd)

	err := rootCmd.Execute()
	return out.String(), err
}

// resetFlags restores defaults; cobra keeps flag values between executions.
func resetFlags(c *cobra.Command) {
	reset := func(f *pflag.Flag) {
		_ = f.Value.Set(f.DefValue)
		f.Changed = false
	}
	c.Flags().VisitAll(reset)
	c.PersistentFlags().VisitAll(reset)
	for _, sub := range c.Commands() {
		resetFlags(sub)
	}
}

func TestStatusFirstRun(t *testing.T) {
	out, err := run(t, t.TempDir(), "status")
	require.NoError(t, err)
	assert.Contains(t, out, "Answer checks: 4/4 remaining")
	assert.Contains(t, out, "Window resets: in 7 days")
}

func TestProblemAddListRemove(t *testing.T) {
	dir := t.TempDir()

	out, err := run(t, dir, "problem", "add",
		"--title", "Valid Parentheses",
		"--description", "Check that brackets are balanced.",
		"--difficulty", "easy")
	require.NoError(t, err)
	assert.Contains(t, out, `Saved "Valid Parentheses" (Easy)`)

	out, err = run(t, dir, "problem", "list")
	require.NoError(t, err)
	assert.Contains(t, out, "Valid Parentheses")
	assert.Contains(t, out, "1 problems")

	out, err = run(t, dir, "problem", "list", "--samples")
	require.NoError(t, err)
	assert.Contains(t, out, "Median of Two Sorted Arrays")

	_, err = run(t, dir, "problem", "remove", "Valid Parentheses")
	require.NoError(t, err)

	_, err = run(t, dir, "problem", "remove", "Valid Parentheses")
	assert.Error(t, err)
}

func TestProblemAddFromFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "p.json")
	require.NoError(t, os.WriteFile(path,
		[]byte(`{"title":"Climbing Stairs","description":"Count the ways.","difficulty":"Easy"}`), 0o644))

	out, err := run(t, dir, "problem", "add", "--file", path)
	require.NoError(t, err)
	assert.Contains(t, out, `Saved "Climbing Stairs"`)
}

func TestProblemImportCSV(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "problems.csv")
	csv := "title,description,difficulty\n" +
		"Climbing Stairs,Count the ways.,Easy\n" +
		"Bad Row,Missing level,Impossible\n"
	require.NoError(t, os.WriteFile(path, []byte(csv), 0o644))

	out, err := run(t, dir, "problem", "import", path)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 1 problems, skipped 1 rows")
	assert.Contains(t, out, "row 3")
}

func TestResetRequiresConfirmation(t *testing.T) {
	dir := t.TempDir()

	_, err := run(t, dir, "reset")
	assert.Error(t, err)

	out, err := run(t, dir, "reset", "--yes")
	require.NoError(t, err)
	assert.Contains(t, out, "cleared")

	out, err = run(t, dir, "history")
	require.NoError(t, err)
	assert.Contains(t, out, "No answer checks recorded.")
}

func TestVersion(t *testing.T) {
	out, err := run(t, t.TempDir(), "version")
	require.NoError(t, err)
	assert.Contains(t, out, "stepcoach")
}
