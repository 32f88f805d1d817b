// Package project persists spool jobs (cut list, settings and last plan)
// as JSON files.
package project

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/piwi3910/SpoolCut/internal/model"
)

// DefaultProjectDir returns the default directory for saved jobs: ~/.spoolcut/
func DefaultProjectDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".spoolcut")
}

// DefaultProjectPath returns the path of a named job in DefaultProjectDir.
func DefaultProjectPath(name string) string {
	return filepath.Join(DefaultProjectDir(), name+".json")
}

// SaveProject writes a project to path as indented JSON, creating any
// missing parent directories.
func SaveProject(path string, p model.Project) error {
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("failed to create project directory: %w", err)
	}
	data, err := json.MarshalIndent(p, "", "  ")
	if err != nil {
		return fmt.Errorf("failed to marshal project: %w", err)
	}
	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write project file: %w", err)
	}
	return nil
}

// LoadProject reads a project from path. Missing settings fall back to
// model.DefaultSettings.
func LoadProject(path string) (model.Project, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return model.Project{}, fmt.Errorf("failed to read project file: %w", err)
	}
	p := model.NewProject()
	if err := json.Unmarshal(data, &p); err != nil {
		return model.Project{}, fmt.Errorf("failed to parse project file: %w", err)
	}
	normalize(&p)
	return p, nil
}

// normalize keeps slices non-nil so the JSON round trip is stable.
func normalize(p *model.Project) {
	if p.Cuts == nil {
		p.Cuts = []model.CutRequest{}
	}
	if p.Result != nil {
		for i := range p.Result.Bars {
			if p.Result.Bars[i].Cuts == nil {
				p.Result.Bars[i].Cuts = []model.CutRequest{}
			}
		}
	}
}
