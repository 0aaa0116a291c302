package database

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/rpupo63/projectblox-backend/models"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadFixtures(t *testing.T) {
	fixtures, err := LoadFixtures("testdata/catalog.yaml")
	require.NoError(t, err)

	require.Len(t, fixtures.Categories, 3)
	require.Len(t, fixtures.Projects, 5)

	chair := fixtures.Projects[1]
	assert.Equal(t, "wooden-chair", chair.Slug)
	assert.Equal(t, "woodworking", chair.CategorySlug)
	assert.True(t, chair.IsFeatured)
	require.Len(t, chair.Steps, 3)
	assert.Equal(t, []string{"Use clamps", "Sand first"}, chair.Steps[1].Tips)
}

func TestLoadFixturesErrors(t *testing.T) {
	_, err := LoadFixtures(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)

	bad := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(bad, []byte("categories: [unclosed"), 0644))
	_, err = LoadFixtures(bad)
	assert.Error(t, err)
}

func TestSeedIsIdempotent(t *testing.T) {
	_, db := newSeededDatabase(t)

	fixtures, err := LoadFixtures("testdata/catalog.yaml")
	require.NoError(t, err)
	// fixed ids and step numbers collide with the first run and are skipped
	require.NoError(t, Seed(db, fixtures))

	var projects, categories, steps int64
	require.NoError(t, db.Model(&models.ProjectRecord{}).Count(&projects).Error)
	require.NoError(t, db.Model(&models.CategoryRecord{}).Count(&categories).Error)
	require.NoError(t, db.Model(&models.ProjectStepRecord{}).Count(&steps).Error)
	assert.EqualValues(t, 5, projects)
	assert.EqualValues(t, 3, categories)
	assert.EqualValues(t, 4, steps)
}

func TestSeedRejectsUnknownCategory(t *testing.T) {
	_, db := newSeededDatabase(t)

	fixtures := &Fixtures{
		Projects: []ProjectFixture{{
			ProjectRecord: models.ProjectRecord{Slug: "orphan", Title: "Orphan"},
			CategorySlug:  "knitting",
		}},
	}
	err := Seed(db, fixtures)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "knitting")

	var count int64
	require.NoError(t, db.Model(&models.ProjectRecord{}).Where("slug = ?", "orphan").Count(&count).Error)
	assert.Zero(t, count)
}

func TestSeedEncodesStepLists(t *testing.T) {
	_, db := newSeededDatabase(t)

	var step models.ProjectStepRecord
	require.NoError(t, db.Where("project_id = ? AND step_number = ?", "proj-chair", 2).First(&step).Error)
	assert.JSONEq(t, "[]", string(step.Tips))
	assert.JSONEq(t, "[]", string(step.CommonMistakes))
	assert.NotEmpty(t, step.ID)
}
