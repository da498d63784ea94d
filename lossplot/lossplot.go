// SPDX-License-Identifier: MIT
// Package: lossplot
//
// Purpose:
//   - Draw an mlp.History as a loss-per-epoch line chart, optionally stacked
//     over a learning-rate panel (plot.Align, 2×1 tiles).
//
// Contract:
//   - Format names map to gonum/plot canvas backends registered below:
//     vgimg (png, jpg, jpeg, tif, tiff), vgsvg (svg), vgpdf (pdf), vgeps (eps).
//   - Log scale is applied only when every loss is strictly positive.
//   - Save renders into memory first; a failed render leaves no file behind.

package lossplot

import (
	"bytes"
	"errors"
	"fmt"
	"image/color"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/katalvlaran/lvml/mlp"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"

	// Canvas backends for NewFormattedCanvas.
	_ "gonum.org/v1/plot/vg/vgeps"
	_ "gonum.org/v1/plot/vg/vgimg"
	_ "gonum.org/v1/plot/vg/vgpdf"
	_ "gonum.org/v1/plot/vg/vgsvg"
)

// Sentinel errors.
var (
	// ErrEmptyHistory is returned for a nil history or one without epochs.
	ErrEmptyHistory = errors.New("lossplot: history has no epochs")
	// ErrFormat is returned when the output format is not supported.
	ErrFormat = errors.New("lossplot: unsupported output format")
)

// Defaults.
const (
	DefaultWidth  = 6 * vg.Inch
	DefaultHeight = 4 * vg.Inch
	DefaultTitle  = "Training loss"
)

var (
	lossColor = color.RGBA{R: 31, G: 119, B: 180, A: 255}
	rateColor = color.RGBA{R: 214, G: 39, B: 40, A: 255}
)

// Option configures a rendering.
type Option func(*options)

type options struct {
	width, height vg.Length
	title         string
	logScale      bool
	learningRate  bool
}

func defaultOptions() options {
	return options{width: DefaultWidth, height: DefaultHeight, title: DefaultTitle}
}

// WithSize sets the canvas size.
// Panics if width or height is not positive.
func WithSize(width, height vg.Length) Option {
	if width <= 0 || height <= 0 {
		panic(fmt.Sprintf("lossplot: WithSize(%v, %v): size must be positive", width, height))
	}
	return func(o *options) { o.width, o.height = width, height }
}

// WithTitle sets the chart title.
func WithTitle(title string) Option {
	return func(o *options) { o.title = title }
}

// WithLogScale draws the loss axis logarithmically. Ignored when some loss
// is not strictly positive.
func WithLogScale(on bool) Option {
	return func(o *options) { o.logScale = on }
}

// WithLearningRate adds a second panel with the per-epoch learning rate.
func WithLearningRate(on bool) Option {
	return func(o *options) { o.learningRate = on }
}

func series(epochs []mlp.EpochStat, value func(mlp.EpochStat) float64) plotter.XYs {
	pts := make(plotter.XYs, len(epochs))
	for i, e := range epochs {
		pts[i].X = float64(e.Epoch)
		pts[i].Y = value(e)
	}

	return pts
}

func allPositive(pts plotter.XYs) bool {
	for _, p := range pts {
		if p.Y <= 0 {
			return false
		}
	}

	return true
}

// linePlot builds a single-series plot.
func linePlot(title, ylabel string, pts plotter.XYs, c color.Color, logY bool) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "epoch"
	p.Y.Label.Text = ylabel
	if logY && allPositive(pts) {
		p.Y.Scale = plot.LogScale{}
		p.Y.Tick.Marker = plot.LogTicks{Prec: -1}
	}
	line, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	line.LineStyle.Color = c
	line.LineStyle.Width = vg.Points(1.5)
	p.Add(plotter.NewGrid(), line)

	return p, nil
}

// Render draws h into w using the given format ("png", "svg", ...).
// Errors: ErrEmptyHistory, ErrFormat, or the writer's error.
func Render(h *mlp.History, w io.Writer, format string, opts ...Option) error {
	if h.Len() == 0 {
		return ErrEmptyHistory
	}
	o := defaultOptions()
	for _, opt := range opts {
		if opt != nil {
			opt(&o)
		}
	}

	c, err := draw.NewFormattedCanvas(o.width, o.height, strings.ToLower(format))
	if err != nil {
		return fmt.Errorf("%q: %w", format, ErrFormat)
	}
	dc := draw.New(c)

	lossPlot, err := linePlot(o.title, "loss", series(h.Epochs, func(e mlp.EpochStat) float64 { return e.Loss }),
		lossColor, o.logScale)
	if err != nil {
		return fmt.Errorf("lossplot: loss series: %w", err)
	}
	if !o.learningRate {
		lossPlot.Draw(dc)
	} else {
		ratePlot, err := linePlot("", "learning rate",
			series(h.Epochs, func(e mlp.EpochStat) float64 { return e.LearningRate }), rateColor, false)
		if err != nil {
			return fmt.Errorf("lossplot: rate series: %w", err)
		}
		plots := [][]*plot.Plot{{lossPlot}, {ratePlot}}
		tiles := draw.Tiles{Rows: 2, Cols: 1, PadY: vg.Millimeter * 2}
		canvases := plot.Align(plots, tiles, dc)
		lossPlot.Draw(canvases[0][0])
		ratePlot.Draw(canvases[1][0])
	}

	if _, err = c.WriteTo(w); err != nil {
		return fmt.Errorf("lossplot: write: %w", err)
	}

	return nil
}

// Save renders h into path; the format is taken from the file extension.
// Nothing is written when rendering fails.
func Save(h *mlp.History, path string, opts ...Option) error {
	format := strings.TrimPrefix(filepath.Ext(path), ".")
	if format == "" {
		return fmt.Errorf("%q has no extension: %w", path, ErrFormat)
	}
	var buf bytes.Buffer
	if err := Render(h, &buf, format, opts...); err != nil {
		return err
	}
	if err := os.WriteFile(path, buf.Bytes(), 0o644); err != nil {
		return fmt.Errorf("lossplot: %w", err)
	}

	return nil
}
