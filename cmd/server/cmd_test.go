package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeConfig points the commands at a throwaway sqlite file and static root.
func writeConfig(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	yaml := "database:\n" +
		"  driver: sqlite\n" +
		"  dsn: " + filepath.Join(dir, "coach.db") + "\n" +
		"storage:\n" +
		"  driver: local\n" +
		"  root: " + filepath.Join(dir, "static") + "\n" +
		"log:\n" +
		"  level: error\n"
	require.NoError(t, os.WriteFile(filepath.Join(dir, "config.yaml"), []byte(yaml), 0o600))
	return dir
}

func run(t *testing.T, configDir string, args ...string) (string, error) {
	t.Helper()
	color.NoColor = true

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetArgs(append(args, "--config", configDir))
	err := cmd.Execute()
	return out.String(), err
}

func TestMigrateCommands(t *testing.T) {
	dir := writeConfig(t)

	out, err := run(t, dir, "migrate", "version")
	require.NoError(t, err)
	assert.Contains(t, out, "schema version: none")

	out, err = run(t, dir, "migrate", "up")
	require.NoError(t, err)
	assert.Contains(t, out, "migrations applied")
	assert.Contains(t, out, "schema version: 1")

	out, err = run(t, dir, "migrate", "down")
	require.NoError(t, err)
	assert.Contains(t, out, "rolled back 1 migration(s)")
	assert.Contains(t, out, "schema version: none")

	_, err = run(t, dir, "migrate", "down", "zero")
	require.Error(t, err)
}

func TestInstructorsCreate(t *testing.T) {
	dir := writeConfig(t)

	out, err := run(t, dir, "instructors", "create", "Sam")
	require.NoError(t, err)
	assert.Contains(t, out, `Instructor "Sam" created.`)
	assert.Regexp(t, `Login code: [0-9A-F]{6}`, out)
}

func TestPlayersImport(t *testing.T) {
	dir := writeConfig(t)
	roster := filepath.Join(dir, "roster.csv")
	csv := "name,age,phone\nAva,12,+15550001\n,9,\nBen,,\n"
	require.NoError(t, os.WriteFile(roster, []byte(csv), 0o600))

	out, err := run(t, dir, "players", "import", roster)
	require.NoError(t, err)
	assert.Contains(t, out, "Imported 2 players.")

	_, err = run(t, dir, "players", "import", filepath.Join(dir, "missing.csv"))
	require.Error(t, err)
}
