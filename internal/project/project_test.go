package project

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/piwi3910/SpoolCut/internal/model"
)

func TestSaveAndLoadProject(t *testing.T) {
	path := filepath.Join(t.TempDir(), "jobs", "line-12.json")

	p := model.NewProject()
	p.Name = "Line 12"
	p.Cuts = []model.CutRequest{
		{ID: "a1", Label: "S1", Length: 2400},
		{ID: "a2", Label: "S2", Length: 1200.5},
	}
	p.Settings.KerfWidth = 2.5
	p.Result = &model.PackResult{
		Bars:        []model.StockBar{{ID: 1, StockLength: 6000, Cuts: p.Cuts, Waste: 2394.5}},
		StockLength: 6000,
		KerfWidth:   2.5,
	}

	if err := SaveProject(path, p); err != nil {
		t.Fatalf("SaveProject failed: %v", err)
	}

	loaded, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if loaded.Name != "Line 12" {
		t.Errorf("expected name 'Line 12', got %q", loaded.Name)
	}
	if len(loaded.Cuts) != 2 || loaded.Cuts[1].Length != 1200.5 {
		t.Errorf("unexpected cuts %+v", loaded.Cuts)
	}
	if loaded.Settings.KerfWidth != 2.5 {
		t.Errorf("expected kerf 2.5, got %f", loaded.Settings.KerfWidth)
	}
	if loaded.Result == nil || loaded.Result.Bars[0].Waste != 2394.5 {
		t.Errorf("unexpected result %+v", loaded.Result)
	}
}

func TestLoadProjectDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "minimal.json")
	if err := os.WriteFile(path, []byte(`{"name":"Bare","cuts":null}`), 0644); err != nil {
		t.Fatal(err)
	}

	p, err := LoadProject(path)
	if err != nil {
		t.Fatalf("LoadProject failed: %v", err)
	}
	if p.Cuts == nil {
		t.Error("Cuts should not be nil after load")
	}
	if p.Settings != model.DefaultSettings() {
		t.Errorf("expected default settings, got %+v", p.Settings)
	}
	if p.Result != nil {
		t.Error("expected no result")
	}
}

func TestLoadProjectErrors(t *testing.T) {
	dir := t.TempDir()
	if _, err := LoadProject(filepath.Join(dir, "nope.json")); err == nil {
		t.Error("expected error for missing file")
	}

	bad := filepath.Join(dir, "bad.json")
	if err := os.WriteFile(bad, []byte("{not json}"), 0644); err != nil {
		t.Fatal(err)
	}
	if _, err := LoadProject(bad); err == nil {
		t.Error("expected error for invalid JSON")
	}
}

func TestDefaultProjectPath(t *testing.T) {
	path := DefaultProjectPath("job")
	if !strings.HasSuffix(path, filepath.Join(".spoolcut", "job.json")) {
		t.Errorf("unexpected default path %q", path)
	}
}
