package project

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/piwi3910/SpoolCut/internal/model"
)

func TestExportAndImportBackup(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")

	defaults := model.DefaultSettings()
	defaults.StockLength = 12000
	defaults.PressureClass = model.PN40

	p := model.NewProject()
	p.Name = "Riser"
	p.Cuts = []model.CutRequest{{ID: "r1", Label: "R1", Length: 3000}}

	if err := ExportBackup(path, defaults, []model.Project{p}); err != nil {
		t.Fatalf("ExportBackup failed: %v", err)
	}

	backup, err := ImportBackup(path)
	if err != nil {
		t.Fatalf("ImportBackup failed: %v", err)
	}

	if backup.Version != BackupVersion {
		t.Errorf("expected version %s, got %s", BackupVersion, backup.Version)
	}
	if backup.CreatedAt == "" {
		t.Error("expected non-empty CreatedAt")
	}
	if backup.Defaults.StockLength != 12000 || backup.Defaults.PressureClass != model.PN40 {
		t.Errorf("unexpected defaults %+v", backup.Defaults)
	}
	if len(backup.Projects) != 1 || backup.Projects[0].Name != "Riser" {
		t.Errorf("unexpected projects %+v", backup.Projects)
	}
}

func TestExportBackupCreatesDirectories(t *testing.T) {
	path := filepath.Join(t.TempDir(), "deep", "nested", "backup.json")

	if err := ExportBackup(path, model.DefaultSettings(), nil); err != nil {
		t.Fatalf("ExportBackup should create parent dirs: %v", err)
	}

	backup, err := ImportBackup(path)
	if err != nil {
		t.Fatalf("ImportBackup failed: %v", err)
	}
	if backup.Projects == nil {
		t.Error("Projects should not be nil")
	}
}

func TestImportBackupMissingFile(t *testing.T) {
	if _, err := ImportBackup(filepath.Join(t.TempDir(), "nope.json")); err == nil {
		t.Fatal("expected error for missing file")
	}
}

func TestImportBackupMissingVersion(t *testing.T) {
	path := filepath.Join(t.TempDir(), "noversion.json")
	if err := os.WriteFile(path, []byte(`{"projects":[]}`), 0644); err != nil {
		t.Fatal(err)
	}

	if _, err := ImportBackup(path); err == nil {
		t.Fatal("expected error for missing version")
	}
}

func TestImportBackupNilCuts(t *testing.T) {
	path := filepath.Join(t.TempDir(), "backup.json")
	data := []byte(`{"version":"1.0.0","created_at":"2025-01-01T00:00:00Z","projects":[{"name":"A","cuts":null}]}`)
	if err := os.WriteFile(path, data, 0644); err != nil {
		t.Fatal(err)
	}

	backup, err := ImportBackup(path)
	if err != nil {
		t.Fatalf("ImportBackup failed: %v", err)
	}
	if backup.Projects[0].Cuts == nil {
		t.Error("Cuts should not be nil after import")
	}
}
