package cli

import (
	"bytes"
	"encoding/json"
	"path/filepath"
	"strings"
	"testing"

	"github.com/rpupo63/projectblox-backend/errs"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const fixturesPath = "../database/testdata/catalog.yaml"

// run executes catalogctl against a SQLite file and returns its stdout
func run(t *testing.T, dbPath string, stdin string, args ...string) (string, error) {
	t.Helper()

	cmd := newRootCmd()
	var out bytes.Buffer
	cmd.SetOut(&out)
	cmd.SetErr(&out)
	cmd.SetIn(strings.NewReader(stdin))
	cmd.SetArgs(append([]string{"--env-file", "", "--db-type", "sqlite", "--sqlite-path", dbPath}, args...))

	err := cmd.Execute()
	return out.String(), err
}

func seededPath(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "catalog.db")
	out, err := run(t, path, "", "seed", fixturesPath)
	require.NoError(t, err, out)
	require.Contains(t, out, "Seeded 3 categories and 5 projects")
	return path
}

func TestCategoriesTable(t *testing.T) {
	path := seededPath(t)

	out, err := run(t, path, "", "categories")
	require.NoError(t, err)

	lines := strings.Split(strings.TrimSpace(out), "\n")
	require.Len(t, lines, 4)
	assert.True(t, strings.HasPrefix(lines[0], "ID"))
	assert.Contains(t, lines[1], "electronics")
	assert.Contains(t, lines[3], "woodworking")
}

func TestProjectsJSON(t *testing.T) {
	path := seededPath(t)

	out, err := run(t, path, "", "--json", "projects", "--search", "CHAIR")
	require.NoError(t, err)

	var projects []map[string]any
	require.NoError(t, json.Unmarshal([]byte(out), &projects))
	require.Len(t, projects, 1)
	assert.Equal(t, "wooden-chair", projects[0]["slug"])
	assert.Equal(t, "Intermediate", projects[0]["difficultyLabel"])
}

func TestProjectsPaging(t *testing.T) {
	path := seededPath(t)

	out, err := run(t, path, "", "projects", "--category", "cat-wood", "--limit", "1", "--offset", "1")
	require.NoError(t, err)
	assert.Contains(t, out, "floating-bookshelf")
	assert.NotContains(t, out, "wooden-chair")

	_, err = run(t, path, "", "projects", "--offset=-1")
	assert.True(t, errs.IsInvalidFieldError(err))
}

func TestProjectAndSteps(t *testing.T) {
	path := seededPath(t)

	out, err := run(t, path, "", "project", "arduino-clock")
	require.NoError(t, err)
	assert.Contains(t, out, "Arduino Clock (arduino-clock)")
	assert.Contains(t, out, "Advanced")
	assert.Contains(t, out, "$35")

	out, err = run(t, path, "", "steps", "wooden-chair")
	require.NoError(t, err)
	cut := strings.Index(out, "1. Cut legs")
	assemble := strings.Index(out, "2. Assemble")
	finish := strings.Index(out, "3. Finish")
	require.True(t, cut >= 0 && assemble > cut && finish > assemble, out)
	assert.Contains(t, out, "tip: Use clamps")
	assert.Contains(t, out, "avoid: Measuring once")

	_, err = run(t, path, "", "project", "prototype-chair")
	assert.True(t, errs.IsNotFound(err))

	_, err = run(t, path, "", "steps", "prototype-chair")
	assert.True(t, errs.IsNotFound(err))
}

func TestBrowseSearchesOnlyTheSettledQuery(t *testing.T) {
	path := seededPath(t)

	// piped lines arrive faster than the debounce window, so only the last is searched
	out, err := run(t, path, "c\nch\ncha\nchai\nchair\n", "browse", "--debounce", "200ms")
	require.NoError(t, err)

	assert.Equal(t, 1, strings.Count(out, "result(s) for"), out)
	assert.Contains(t, out, `1 result(s) for "chair"`)
	assert.Contains(t, out, "wooden-chair")
}

func TestBrowseNoInput(t *testing.T) {
	path := seededPath(t)

	out, err := run(t, path, "", "browse")
	require.NoError(t, err)
	assert.Empty(t, out)
}

func TestMigrateRequiresSQLBackend(t *testing.T) {
	cmd := newRootCmd()
	cmd.SetOut(&bytes.Buffer{})
	cmd.SetArgs([]string{"--env-file", "", "--db-type", "d1", "migrate"})
	t.Setenv("CLOUDFLARE_ACCOUNT_ID", "a")
	t.Setenv("CLOUDFLARE_DATABASE_ID", "d")
	t.Setenv("CLOUDFLARE_API_TOKEN", "t")

	err := cmd.Execute()
	require.Error(t, err)
	assert.True(t, errs.IsConfigInvalidError(err))
}

func TestMigrate(t *testing.T) {
	out, err := run(t, filepath.Join(t.TempDir(), "fresh.db"), "", "migrate")
	require.NoError(t, err)
	assert.Contains(t, out, "Catalog tables are up to date")
}
