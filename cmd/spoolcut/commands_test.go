package main

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"github.com/piwi3910/SpoolCut/internal/config"
	"github.com/piwi3910/SpoolCut/internal/project"
)

func newTestCLI() (*cli, *bytes.Buffer) {
	out := &bytes.Buffer{}
	return &cli{conf: config.Default(), logger: zap.NewNop(), out: out}, out
}

func writeCuts(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "cuts.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func TestRun_UnknownCommand(t *testing.T) {
	app, _ := newTestCLI()
	assert.Error(t, app.run("frobnicate", nil))
}

func TestTable_PrintsBuiltinRows(t *testing.T) {
	app, out := newTestCLI()
	require.NoError(t, app.run("table", nil))

	assert.Contains(t, out.String(), "DN")
	assert.Contains(t, out.String(), "PCD")
}

func TestPack_WritesPlanAndProject(t *testing.T) {
	app, out := newTestCLI()
	cuts := writeCuts(t, "label,length\nS1-A,4000\nS1-B,3000\nS2-A,2000\nS2-B,1000\n")
	dir := t.TempDir()
	projectPath := filepath.Join(dir, "job.json")
	xlsxPath := filepath.Join(dir, "plan.xlsx")

	err := app.run("pack", []string{"-cuts", cuts, "-project", projectPath, "-xlsx", xlsxPath, "-compare"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "2 bars, 4 cuts")
	assert.Contains(t, out.String(), "Current Settings")
	assert.FileExists(t, xlsxPath)

	p, err := project.LoadProject(projectPath)
	require.NoError(t, err)
	assert.Len(t, p.Cuts, 4)
	require.NotNil(t, p.Result)
	assert.Len(t, p.Result.Bars, 2)
}

func TestPack_OversizeCutFails(t *testing.T) {
	app, out := newTestCLI()
	cuts := writeCuts(t, "label,length\nLong,7000\n")

	err := app.run("pack", []string{"-cuts", cuts})
	assert.Error(t, err)
	assert.Contains(t, out.String(), "exceeds stock")
}

func TestPack_RequiresCutList(t *testing.T) {
	app, _ := newTestCLI()
	assert.Error(t, app.run("pack", nil))
}

func TestTemplate_BranchProfile(t *testing.T) {
	app, out := newTestCLI()
	dxfPath := filepath.Join(t.TempDir(), "saddle.dxf")

	require.NoError(t, app.run("template", []string{"-main", "200", "-branch", "100", "-dxf", dxfPath}))
	assert.Contains(t, out.String(), "ANGLE")
	assert.FileExists(t, dxfPath)
}

func TestTemplate_BranchTooLarge(t *testing.T) {
	app, _ := newTestCLI()
	assert.Error(t, app.run("template", []string{"-main", "100", "-branch", "200"}))
}

func TestPack_LoadJobWithEstimate(t *testing.T) {
	app, out := newTestCLI()
	dir := t.TempDir()
	jobPath := filepath.Join(dir, "job.json")
	cuts := writeCuts(t, "label,length\nS1-A,4000\nS1-B,3000\nS2-A,2000\nS2-B,1000\n")
	require.NoError(t, app.run("pack", []string{"-cuts", cuts, "-project", jobPath}))

	app, out = newTestCLI()
	err := app.run("pack", []string{"-load", jobPath, "-stock", "12000", "-estimate", "-price", "50"})
	require.NoError(t, err)

	assert.Contains(t, out.String(), "1 bars, 4 cuts")
	assert.Contains(t, out.String(), "buy 1")
	assert.Contains(t, out.String(), "cost 50.00")
}

func TestResolveProjectPath(t *testing.T) {
	assert.Equal(t, project.DefaultProjectPath("job1"), resolveProjectPath("job1"))
	assert.Equal(t, "job1.json", resolveProjectPath("job1.json"))
	assert.Equal(t, filepath.Join("jobs", "job1"), resolveProjectPath(filepath.Join("jobs", "job1")))
}

func TestWedge_PrintsProfileAndChart(t *testing.T) {
	app, out := newTestCLI()
	pngPath := filepath.Join(t.TempDir(), "wedge.png")

	require.NoError(t, app.run("wedge", []string{"-dn", "150", "-g12", "10", "-png", pngPath}))
	assert.Contains(t, out.String(), "12:00")
	assert.Contains(t, out.String(), "10.00")
	assert.FileExists(t, pngPath)
}

func TestWedge_SquareFace(t *testing.T) {
	app, out := newTestCLI()
	require.NoError(t, app.run("wedge", []string{"-dn", "150", "-g12", "1", "-g6", "1"}))
	assert.Contains(t, out.String(), "square")
}

func TestSegment_WritesFlatPattern(t *testing.T) {
	app, out := newTestCLI()
	dxfPath := filepath.Join(t.TempDir(), "segment.dxf")

	require.NoError(t, app.run("segment", []string{"-dn", "200", "-segments", "3", "-dxf", dxfPath}))
	assert.Contains(t, out.String(), "22.50")
	assert.FileExists(t, dxfPath)
}

func TestSegment_TooFewSegments(t *testing.T) {
	app, _ := newTestCLI()
	assert.Error(t, app.run("segment", []string{"-dn", "200", "-segments", "1"}))
}

func TestBackup_ExportImportRoundTrip(t *testing.T) {
	app, _ := newTestCLI()
	dir := t.TempDir()
	jobPath := filepath.Join(dir, "north-header.json")
	cuts := writeCuts(t, "label,length\nS1-A,1500\nS1-B,700\n")
	require.NoError(t, app.run("pack", []string{"-cuts", cuts, "-project", jobPath}))

	backupPath := filepath.Join(dir, "backup.json")
	require.NoError(t, app.run("backup", []string{"export", "-out", backupPath, jobPath}))

	restoreDir := filepath.Join(dir, "restored")
	app, out := newTestCLI()
	require.NoError(t, app.run("backup", []string{"import", "-in", backupPath, "-dir", restoreDir}))
	assert.Contains(t, out.String(), "Restored 1 job(s)")

	job, err := project.LoadProject(filepath.Join(restoreDir, "north-header.json"))
	require.NoError(t, err)
	assert.Len(t, job.Cuts, 2)
}

func TestBackup_UnknownSubcommand(t *testing.T) {
	app, _ := newTestCLI()
	assert.Error(t, app.run("backup", []string{"frobnicate"}))
	assert.Error(t, app.run("backup", nil))
}
