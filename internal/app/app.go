package app

import (
	"context"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/google/uuid"

	"marketlog/internal/analysis/visual"
	"marketlog/internal/config"
	"marketlog/internal/dataset"
	"marketlog/internal/logger"
	"marketlog/internal/logparse"
)

// Run modes, as reported in Report.Mode.
const (
	ModeMemory    = "memory"
	ModeMinMax    = string(dataset.ModeMinMax)
	ModeMagnitude = string(dataset.ModeMagnitude)
)

// ErrNoDataPoints is returned when the input log has no market data points.
var ErrNoDataPoints = dataset.ErrNoDataPoints

// App runs one analysis pass: scan → tabulate → scale → plot → display.
type App struct {
	cfg   *config.Config
	runID string
	now   func() time.Time
}

// New validates cfg and builds an App (nothing is read yet).
func New(cfg *config.Config) (*App, error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil config")
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	logger.SetLevel(cfg.App.LogLevel)
	return &App{cfg: cfg, runID: uuid.NewString(), now: time.Now}, nil
}

// Run executes the pipeline. Every stage runs to completion before the
// next one starts, and the first error ends the run.
func (a *App) Run(ctx context.Context) (*Report, error) {
	if a == nil || a.cfg == nil {
		return nil, fmt.Errorf("app not initialized")
	}
	cfg := a.cfg
	started := a.now()
	rep := &Report{
		RunID:       a.runID,
		Input:       cfg.Input.LogPath,
		FilteredLog: logparse.FilteredLogPath(cfg.Input.OutputDir, cfg.Input.FilteredPrefix, started),
	}

	res, err := logparse.ScanFile(cfg.Input.LogPath, rep.FilteredLog)
	if err != nil {
		return nil, fmt.Errorf("scan %s: %w", cfg.Input.LogPath, err)
	}
	rep.Scanned, rep.Matched, rep.Points = res.Scanned, res.Matched, len(res.Points)
	logger.Infof("scanned %d lines, kept %d, decoded %d data points → %s", res.Scanned, res.Matched, len(res.Points), rep.FilteredLog)
	if len(res.Points) == 0 {
		return nil, ErrNoDataPoints
	}

	figs, err := a.buildFigures(res.Points, rep)
	if err != nil {
		return nil, err
	}
	style := visual.Style{
		LegendFontSize: cfg.Plot.LegendFontSize,
		Width:          cfg.Plot.Width,
		Height:         cfg.Plot.Height,
	}
	html, err := visual.BuildPage(figs, style)
	if err != nil {
		return nil, fmt.Errorf("render charts: %w", err)
	}
	rep.ChartHTML = visual.ChartPath(cfg.Input.OutputDir, cfg.Display.ChartPrefix, started, "html")
	if err := visual.WriteHTML(rep.ChartHTML, html); err != nil {
		return nil, fmt.Errorf("write charts: %w", err)
	}

	if cfg.Display.SavePNG {
		png, err := visual.RenderPNG(ctx, html, style)
		if err != nil {
			return nil, fmt.Errorf("export png: %w", err)
		}
		rep.ChartPNG = visual.ChartPath(cfg.Input.OutputDir, cfg.Display.ChartPrefix, started, "png")
		if err := os.WriteFile(rep.ChartPNG, png, 0o644); err != nil {
			return nil, fmt.Errorf("write png: %w", err)
		}
	}
	if cfg.Display.OpenBrowser {
		if err := visual.OpenInBrowser(rep.ChartHTML); err != nil {
			logger.Warnf("could not open charts, open %s manually: %v", rep.ChartHTML, err)
		}
	}
	rep.Elapsed = a.now().Sub(started)
	return rep, nil
}

func (a *App) buildFigures(points []logparse.DataPoint, rep *Report) ([]visual.Figure, error) {
	plot := a.cfg.Plot
	if plot.PlotMemory {
		rep.Mode = ModeMemory
		lt, err := dataset.BuildMemoryTable(points)
		if err != nil {
			return nil, fmt.Errorf("memory table: %w", err)
		}
		structural, err := dataset.BuildStructuralSeries(points, plot.MaxPoints)
		if err != nil {
			return nil, fmt.Errorf("memory overlays: %w", err)
		}
		rep.Metrics = lt.Columns
		return visual.MemoryFigures(lt, structural), nil
	}

	table, err := dataset.Extract(points, a.cfg.Metrics)
	if err != nil {
		return nil, fmt.Errorf("extract metrics: %w", err)
	}
	if len(table.Series) == 0 {
		return nil, errors.New("none of the configured metrics appear in the log")
	}
	scaled, err := dataset.Normalize(table, a.cfg)
	if err != nil {
		return nil, fmt.Errorf("normalize: %w", err)
	}
	rep.Metrics = table.Names()
	if plot.Transform {
		rep.Mode = ModeMinMax
	} else {
		rep.Mode = ModeMagnitude
		rep.Exponents = make(map[string]int, len(scaled))
		for _, s := range scaled {
			rep.Exponents[s.Name] = s.Exponent
		}
	}
	return []visual.Figure{visual.ComparisonFigure(scaled, a.cfg.Metrics, plot.MaxPoints, plot.SmoothingWindow)}, nil
}
