package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"strings"
	"syscall"
	"text/tabwriter"

	"go.uber.org/zap"

	"github.com/piwi3910/SpoolCut/internal/config"
	"github.com/piwi3910/SpoolCut/internal/dimtable"
	"github.com/piwi3910/SpoolCut/internal/engine"
	"github.com/piwi3910/SpoolCut/internal/export"
	"github.com/piwi3910/SpoolCut/internal/geometry"
	"github.com/piwi3910/SpoolCut/internal/importer"
	"github.com/piwi3910/SpoolCut/internal/model"
	"github.com/piwi3910/SpoolCut/internal/project"
	"github.com/piwi3910/SpoolCut/internal/server"
	"github.com/piwi3910/SpoolCut/internal/wedge"
)

// cli runs one subcommand against the loaded configuration.
type cli struct {
	conf   *config.Configuration
	logger *zap.Logger
	out    io.Writer
}

func (a *cli) run(command string, args []string) error {
	switch command {
	case "serve":
		return a.serve(args)
	case "pack":
		return a.pack(args)
	case "template":
		return a.template(args)
	case "table":
		return a.table(args)
	case "wedge":
		return a.wedge(args)
	case "segment":
		return a.segment(args)
	case "backup":
		return a.backup(args)
	default:
		return fmt.Errorf("unknown command %q", command)
	}
}

func (a *cli) loadTable() (*dimtable.Table, error) {
	table, err := dimtable.Load(a.conf.Dimensions.TablePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load dimension table: %w", err)
	}
	a.logger.Debug("dimension table loaded",
		zap.String("op", "cli.loadTable"),
		zap.String("path", a.conf.Dimensions.TablePath),
		zap.Int("rows", table.Len()),
	)
	return table, nil
}

func (a *cli) serve(args []string) error {
	fs := flag.NewFlagSet("serve", flag.ContinueOnError)
	addr := fs.String("addr", a.conf.Server.Addr, "listen address")
	if err := fs.Parse(args); err != nil {
		return err
	}

	table, err := a.loadTable()
	if err != nil {
		return err
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	return server.NewServer(a.conf, table, a.logger).Run(ctx, *addr)
}

func (a *cli) pack(args []string) error {
	settings := a.conf.Settings()

	fs := flag.NewFlagSet("pack", flag.ContinueOnError)
	cutsPath := fs.String("cuts", "", "cut list (.csv or .xlsx)")
	loadPath := fs.String("load", "", "re-pack a saved job instead of a cut list")
	stock := fs.Float64("stock", settings.StockLength, "stock bar length in mm")
	kerf := fs.Float64("kerf", settings.KerfWidth, "blade kerf in mm, charged per cut")
	pdfPath := fs.String("pdf", "", "write the cut plan PDF here")
	xlsxPath := fs.String("xlsx", "", "write the cut plan workbook here")
	labelsPath := fs.String("labels", "", "write QR piece labels here")
	projectPath := fs.String("project", "", "save the job here (a bare name saves under ~/.spoolcut)")
	compare := fs.Bool("compare", false, "also compare kerf and stock length alternatives")
	estimate := fs.Bool("estimate", false, "print a bar purchase estimate")
	price := fs.Float64("price", 0, "price per stock bar for -estimate")
	wastePct := fs.Float64("waste-factor", 10, "extra stock percentage for -estimate")
	if err := fs.Parse(args); err != nil {
		return err
	}

	var cuts []model.CutRequest
	switch {
	case *loadPath != "":
		job, err := project.LoadProject(*loadPath)
		if err != nil {
			return err
		}
		cuts = job.Cuts
		settings = job.Settings
		a.logger.Info("job loaded",
			zap.String("op", "cli.pack"),
			zap.String("path", *loadPath),
			zap.String("name", job.Name),
			zap.Int("cuts", len(cuts)),
		)
	case *cutsPath != "":
		imported := importer.ImportFile(*cutsPath)
		for _, w := range imported.Warnings {
			a.logger.Info("import warning", zap.String("op", "cli.pack"), zap.String("warning", w))
		}
		for _, e := range imported.Errors {
			a.logger.Warn("import error", zap.String("op", "cli.pack"), zap.String("error", e))
		}
		cuts = imported.Cuts
	default:
		return fmt.Errorf("-cuts or -load is required")
	}
	if len(cuts) == 0 {
		return fmt.Errorf("no cuts to pack")
	}

	if *loadPath == "" {
		settings.StockLength = *stock
		settings.KerfWidth = *kerf
	} else {
		// Explicit flags win over the loaded job's settings.
		fs.Visit(func(f *flag.Flag) {
			switch f.Name {
			case "stock":
				settings.StockLength = *stock
			case "kerf":
				settings.KerfWidth = *kerf
			}
		})
	}

	result := engine.New(settings).Pack(cuts)
	a.logger.Info("packed",
		zap.String("op", "cli.pack"),
		zap.Int("cuts", result.CutCount()),
		zap.Int("bars", len(result.Bars)),
		zap.Float64("efficiency", result.TotalEfficiency()),
	)
	printPlan(a.out, result, model.DetectRemnants(result, settings.MinRemnantLength))

	if *estimate {
		printEstimate(a.out, model.CalculateBarEstimate(cuts, settings.StockLength, settings.KerfWidth, *wastePct, *price))
	}
	if *compare {
		printComparison(a.out, engine.CompareScenarios(engine.BuildDefaultScenarios(settings), cuts))
	}

	outputs := []struct {
		path  string
		write func(string) error
	}{
		{*pdfPath, func(p string) error { return export.ExportPDF(p, result, settings) }},
		{*xlsxPath, func(p string) error { return export.ExportExcel(p, result) }},
		{*labelsPath, func(p string) error { return export.ExportLabels(p, result) }},
	}
	for _, o := range outputs {
		if o.path == "" {
			continue
		}
		if err := o.write(o.path); err != nil {
			return fmt.Errorf("failed to write %s: %w", o.path, err)
		}
		a.logger.Info("exported", zap.String("op", "cli.pack"), zap.String("path", o.path))
	}

	if *projectPath != "" {
		path := resolveProjectPath(*projectPath)
		p := model.NewProject()
		p.Name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		p.Cuts = cuts
		p.Settings = settings
		p.Result = &result
		if err := project.SaveProject(path, p); err != nil {
			return err
		}
		a.logger.Info("job saved", zap.String("op", "cli.pack"), zap.String("path", path))
	}

	if n := len(result.InfeasibleBars()); n > 0 {
		return fmt.Errorf("%d cut(s) longer than the %.0f mm stock", n, settings.StockLength)
	}
	return nil
}

// resolveProjectPath maps a bare job name to a file in the default project
// directory. Anything with a directory or an extension is used as given.
func resolveProjectPath(nameOrPath string) string {
	if filepath.Base(nameOrPath) == nameOrPath && filepath.Ext(nameOrPath) == "" {
		return project.DefaultProjectPath(nameOrPath)
	}
	return nameOrPath
}

func printEstimate(w io.Writer, e model.BarEstimate) {
	fmt.Fprintf(w, "\nEstimate: %.2f m incl. kerf, %.2f bars exact, buy %d (%d minimum + %.0f%% waste factor)",
		e.TotalMeters, e.BarsNeededExact, e.BarsWithWaste, e.BarsNeededMin, e.WastePercent)
	if e.PricePerBar > 0 {
		fmt.Fprintf(w, ", cost %.2f", e.EstimatedCost)
	}
	fmt.Fprintln(w)
}

func printPlan(w io.Writer, result model.PackResult, remnants []model.Remnant) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "BAR\tCUTS\tWASTE\tEFF %\tPIECES")
	for _, b := range result.Bars {
		pieces := make([]string, len(b.Cuts))
		for i, c := range b.Cuts {
			pieces[i] = fmt.Sprintf("%s=%.0f", c.Label, c.Length)
		}
		note := ""
		if !b.Feasible() {
			note = "  !! exceeds stock"
		}
		fmt.Fprintf(tw, "%d\t%d\t%.1f\t%.1f\t%s%s\n", b.ID, len(b.Cuts), b.Waste, b.Efficiency(), strings.Join(pieces, ", "), note)
	}
	_ = tw.Flush()

	fmt.Fprintf(w, "\n%d bars, %d cuts, %.1f%% efficiency, %d reusable remnant(s) totalling %.0f mm\n",
		len(result.Bars), result.CutCount(), result.TotalEfficiency(), len(remnants), model.TotalRemnantLength(remnants))
}

func printComparison(w io.Writer, results []engine.ComparisonResult) {
	tw := tabwriter.NewWriter(w, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "\nSCENARIO\tBARS\tWASTE\tWASTE %\tLONGEST END\tOVERSIZE")
	for _, r := range results {
		fmt.Fprintf(tw, "%s\t%d\t%.0f\t%.1f\t%.0f\t%d\n", r.Scenario.Name, r.BarsUsed, r.TotalWaste, r.WastePercent, r.LargestOffcut, r.InfeasibleCount)
	}
	_ = tw.Flush()
}

func (a *cli) template(args []string) error {
	fs := flag.NewFlagSet("template", flag.ContinueOnError)
	mainDN := fs.Int("main", 0, "main (header) pipe DN")
	branchDN := fs.Int("branch", 0, "branch pipe DN")
	dxfPath := fs.String("dxf", "", "write the saddle wrap-around DXF here")
	pngPath := fs.String("png", "", "write the profile chart PNG here")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *mainDN == 0 || *branchDN == 0 {
		return fmt.Errorf("-main and -branch are required")
	}

	table, err := a.loadTable()
	if err != nil {
		return err
	}
	profile, err := geometry.New(table).BranchProfile(*mainDN, *branchDN)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ANGLE\tCIRCUMFERENCE\tDEPTH")
	for _, p := range profile {
		fmt.Fprintf(tw, "%.1f\t%.1f\t%.1f\n", p.AngleDegrees, p.Circumference, p.Depth)
	}
	_ = tw.Flush()

	if *dxfPath != "" {
		if err := export.ExportBranchTemplateDXF(*dxfPath, profile); err != nil {
			return err
		}
	}
	if *pngPath != "" {
		if err := export.PlotBranchProfile(*pngPath, profile); err != nil {
			return err
		}
	}
	return nil
}

func (a *cli) table(args []string) error {
	fs := flag.NewFlagSet("table", flag.ContinueOnError)
	if err := fs.Parse(args); err != nil {
		return err
	}

	table, err := a.loadTable()
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', tabwriter.AlignRight)
	fmt.Fprintln(tw, "DN\tOD\tBEND R\tTEE\tREDUCER\tFLANGE _10\tFLANGE _16\t")
	for _, r := range table.Rows() {
		fmt.Fprintf(tw, "%d\t%.1f\t%.0f\t%.0f\t%.0f\t%s\t%s\t\n",
			r.NominalDiameter, r.OuterDiameter, r.BendRadius, r.TeeHeight, r.ReducerLength,
			flangeSummary(r.Flange10), flangeSummary(r.Flange16))
	}
	return tw.Flush()
}

func flangeSummary(f model.FlangeDims) string {
	return fmt.Sprintf("%.0f / PCD %.0f / %dx%s", f.FaceWidth, f.BoltCircle, f.HoleCount, f.BoltSize)
}

func (a *cli) wedge(args []string) error {
	fs := flag.NewFlagSet("wedge", flag.ContinueOnError)
	dn := fs.Int("dn", 0, "pipe DN")
	g12 := fs.Float64("g12", 0, "face gap at 12:00 in mm")
	g3 := fs.Float64("g3", 0, "face gap at 3:00 in mm")
	g6 := fs.Float64("g6", 0, "face gap at 6:00 in mm")
	g9 := fs.Float64("g9", 0, "face gap at 9:00 in mm")
	pngPath := fs.String("png", "", "write the cut profile chart PNG here")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dn == 0 {
		return fmt.Errorf("-dn is required")
	}

	table, err := a.loadTable()
	if err != nil {
		return err
	}
	res := wedge.Solve(table, *dn, wedge.Gaps{At12: *g12, At3: *g3, At6: *g6, At9: *g9})
	if res.MaxGap == 0 {
		fmt.Fprintln(a.out, "Face is square, no cut needed")
		return nil
	}

	fmt.Fprintf(a.out, "Tilt %.3f°, max gap %.2f mm, cut deepest at %s (%.1f°)\n",
		res.AngleDegrees, res.MaxGap, res.Orientation, res.OrientationDegrees)
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "CLOCK\tPOSITION\tCUT")
	for _, p := range res.CutProfile {
		fmt.Fprintf(tw, "%s\t%.1f\t%.2f\n", p.Clock, p.PositionDegrees, p.Cut)
	}
	_ = tw.Flush()

	if *pngPath != "" {
		return export.PlotWedgeProfile(*pngPath, res)
	}
	return nil
}

func (a *cli) segment(args []string) error {
	fs := flag.NewFlagSet("segment", flag.ContinueOnError)
	dn := fs.Int("dn", 0, "pipe DN")
	radius := fs.Float64("radius", 0, "bend radius in mm (default: the table bend radius)")
	segments := fs.Int("segments", 3, "number of segments, end pieces included")
	angle := fs.Float64("angle", 90, "total bend angle in degrees")
	dxfPath := fs.String("dxf", "", "write the full segment flat pattern DXF here")
	if err := fs.Parse(args); err != nil {
		return err
	}
	if *dn == 0 {
		return fmt.Errorf("-dn is required")
	}

	table, err := a.loadTable()
	if err != nil {
		return err
	}
	r := *radius
	if r <= 0 {
		r = table.Lookup(*dn).BendRadius
	}
	bend, err := geometry.New(table).SegmentedBend(*dn, r, *segments, *angle)
	if err != nil {
		return err
	}

	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintf(tw, "Miter\t%.2f°\n", bend.MiterAngle)
	fmt.Fprintf(tw, "Segment back / centre / belly\t%.1f / %.1f / %.1f\n", bend.BackLength, bend.CenterlineLength, bend.BellyLength)
	fmt.Fprintf(tw, "End back / centre / belly\t%.1f / %.1f / %.1f\n", bend.EndBack, bend.EndCenter, bend.EndBelly)
	_ = tw.Flush()

	if *dxfPath != "" {
		return export.ExportSegmentedBendDXF(*dxfPath, bend)
	}
	return nil
}

// backup bundles saved jobs with the configured defaults, or restores such
// a bundle into a project directory.
func (a *cli) backup(args []string) error {
	if len(args) == 0 {
		return fmt.Errorf("usage: backup export -out file job.json... | backup import -in file [-dir dir]")
	}

	switch args[0] {
	case "export":
		fs := flag.NewFlagSet("backup export", flag.ContinueOnError)
		out := fs.String("out", "", "backup file to write")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *out == "" {
			return fmt.Errorf("-out is required")
		}
		jobs := make([]model.Project, 0, fs.NArg())
		for _, path := range fs.Args() {
			job, err := project.LoadProject(resolveProjectPath(path))
			if err != nil {
				return err
			}
			jobs = append(jobs, job)
		}
		if err := project.ExportBackup(*out, a.conf.Settings(), jobs); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Backed up %d job(s) to %s\n", len(jobs), *out)
		return nil

	case "import":
		fs := flag.NewFlagSet("backup import", flag.ContinueOnError)
		in := fs.String("in", "", "backup file to read")
		dir := fs.String("dir", project.DefaultProjectDir(), "directory to restore jobs into")
		if err := fs.Parse(args[1:]); err != nil {
			return err
		}
		if *in == "" {
			return fmt.Errorf("-in is required")
		}
		data, err := project.ImportBackup(*in)
		if err != nil {
			return err
		}
		for _, job := range data.Projects {
			path := filepath.Join(*dir, job.Name+".json")
			if err := project.SaveProject(path, job); err != nil {
				return err
			}
			a.logger.Info("job restored", zap.String("op", "cli.backup"), zap.String("path", path))
		}
		fmt.Fprintf(a.out, "Restored %d job(s) from backup %s (version %s, %s)\n",
			len(data.Projects), *in, data.Version, data.CreatedAt)
		return nil

	default:
		return fmt.Errorf("unknown backup command %q", args[0])
	}
}
