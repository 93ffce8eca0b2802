package cmd

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, data string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(data), 0o644))
}

func run(t *testing.T, args ...string) error {
	t.Helper()
	rootCmd.SetArgs(append(args, "--log-level", "error"))
	return rootCmd.Execute()
}

// workspace lays out a hub and a quori checkout side by side and moves into
// the quori checkout.
func workspace(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	writeFile(t, filepath.Join(dir, "hub", "src", "content", "people", "ada.md"),
		"---\nname: Ada\ndescription: Engineer\nsites: [semio, quori]\n---\nBio\n")
	writeFile(t, filepath.Join(dir, "hub", "src", "content", "people", "bob.md"),
		"---\nname: Bob\ndescription: Designer\nsites: [semio]\n---\n")
	writeFile(t, filepath.Join(dir, "quori", "sitehub.yaml"),
		"site: quori\nhub: ../hub\ncollections: [people]\n")
	require.NoError(t, os.MkdirAll(filepath.Join(dir, "quori", "src", "content", "people"), 0o755))
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(filepath.Join(dir, "quori")))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	return dir
}

func TestSyncPullAndIndex(t *testing.T) {
	workspace(t)

	require.NoError(t, run(t, "sync", "pull", "--config", "sitehub.yaml", "--site", "quori"))

	raw, err := os.ReadFile(filepath.Join("src", "content", "people", "ada.md"))
	require.NoError(t, err)
	assert.Contains(t, string(raw), "name: Ada\n")
	assert.Contains(t, string(raw), "Bio\n")
	assert.NoFileExists(t, filepath.Join("src", "content", "people", "bob.md"))

	require.NoError(t, run(t, "check", "--config", "sitehub.yaml", "--site", "quori"))

	out := filepath.Join("public", "data")
	require.NoError(t, run(t, "index", "--config", "sitehub.yaml", "--site", "quori", "-o", out))
	assert.FileExists(t, filepath.Join(out, "people.json"))
	assert.FileExists(t, filepath.Join(out, "site.json"))
}

func TestSyncPull_MissingHub(t *testing.T) {
	dir := workspace(t)
	require.NoError(t, os.RemoveAll(filepath.Join(dir, "hub")))

	err := run(t, "sync", "pull", "--config", "sitehub.yaml", "--site", "quori")
	assert.ErrorContains(t, err, "content root not found")
}

func TestCMS(t *testing.T) {
	workspace(t)

	out := filepath.Join("admin", "config.yml")
	require.NoError(t, run(t, "cms", "--config", "sitehub.yaml", "--site", "quori", "-o", out))
	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "folder: src/content/people")
}

func TestInit(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "sitehub.yaml")

	require.NoError(t, run(t, "init", "--site", "vizij", "--config", path))
	raw, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "site: vizij\n")

	assert.Error(t, run(t, "init", "--site", "vizij", "--config", path))
}

func TestRunPull_StopsOnCancelledContext(t *testing.T) {
	workspace(t)
	require.NoError(t, run(t, "check", "--config", "sitehub.yaml", "--site", "quori"))

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	err := runPull(ctx)
	assert.True(t, errors.Is(err, context.Canceled), err)
	assert.NoFileExists(t, filepath.Join("src", "content", "people", "ada.md"))
}
