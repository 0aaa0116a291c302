package database

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/google/uuid"
	"github.com/rpupo63/projectblox-backend/models"
	"gopkg.in/yaml.v3"
	"gorm.io/datatypes"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// Fixtures is the YAML layout accepted by LoadFixtures, used to populate a
// local SQL backend. Steps reference projects and projects reference
// categories by slug, so fixture files do not need to spell out ids.
type Fixtures struct {
	Categories []models.CategoryRecord `yaml:"categories"`
	Projects   []ProjectFixture        `yaml:"projects"`
}

type ProjectFixture struct {
	models.ProjectRecord `yaml:",inline"`
	CategorySlug         string        `yaml:"category"`
	Steps                []StepFixture `yaml:"steps"`
}

type StepFixture struct {
	models.ProjectStepRecord `yaml:",inline"`
	Tips                     []string `yaml:"tips"`
	CommonMistakes           []string `yaml:"common_mistakes"`
}

// LoadFixtures reads a fixtures file
func LoadFixtures(path string) (*Fixtures, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read fixtures file: %w", err)
	}

	var fixtures Fixtures
	if err := yaml.Unmarshal(data, &fixtures); err != nil {
		return nil, fmt.Errorf("failed to parse fixtures: %w", err)
	}
	return &fixtures, nil
}

// Seed inserts the fixtures, assigning ids where missing. Existing rows with
// the same primary key are left untouched.
func Seed(db *gorm.DB, fixtures *Fixtures) error {
	return db.Transaction(func(tx *gorm.DB) error {
		categoryIDs := make(map[string]string, len(fixtures.Categories))
		for i := range fixtures.Categories {
			category := &fixtures.Categories[i]
			if category.ID == "" {
				category.ID = uuid.NewString()
			}
			categoryIDs[category.Slug] = category.ID
			if err := insert(tx, category); err != nil {
				return fmt.Errorf("seed category %s: %w", category.Slug, err)
			}
		}

		for i := range fixtures.Projects {
			fixture := &fixtures.Projects[i]
			project := &fixture.ProjectRecord
			if project.ID == "" {
				project.ID = uuid.NewString()
			}
			if fixture.CategorySlug != "" {
				categoryID, ok := categoryIDs[fixture.CategorySlug]
				if !ok {
					return fmt.Errorf("project %s references unknown category %q", project.Slug, fixture.CategorySlug)
				}
				project.CategoryID = categoryID
			}
			if err := insert(tx, project); err != nil {
				return fmt.Errorf("seed project %s: %w", project.Slug, err)
			}

			for j := range fixture.Steps {
				step, err := fixture.Steps[j].record(project.ID)
				if err != nil {
					return fmt.Errorf("seed project %s step %d: %w", project.Slug, fixture.Steps[j].StepNumber, err)
				}
				if err := insert(tx, step); err != nil {
					return fmt.Errorf("seed project %s step %d: %w", project.Slug, step.StepNumber, err)
				}
			}
		}
		return nil
	})
}

func (f StepFixture) record(projectID string) (*models.ProjectStepRecord, error) {
	step := f.ProjectStepRecord
	if step.ID == "" {
		step.ID = uuid.NewString()
	}
	step.ProjectID = projectID

	tips, err := encodeList(f.Tips)
	if err != nil {
		return nil, err
	}
	mistakes, err := encodeList(f.CommonMistakes)
	if err != nil {
		return nil, err
	}
	step.Tips = tips
	step.CommonMistakes = mistakes
	return &step, nil
}

func encodeList(list []string) (datatypes.JSON, error) {
	if list == nil {
		list = []string{}
	}
	encoded, err := json.Marshal(list)
	if err != nil {
		return nil, err
	}
	return datatypes.JSON(encoded), nil
}

func insert(tx *gorm.DB, record interface{}) error {
	return tx.Omit(clause.Associations).Clauses(clause.OnConflict{DoNothing: true}).Create(record).Error
}
