package plot

import (
	"errors"
	"fmt"
	"image/color"
	"io"
	"math"

	"github.com/drakos74/noisy-clusters/internal/model"
	"github.com/drakos74/noisy-clusters/internal/storage/file"
	"github.com/rs/zerolog/log"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"
)

// dpi maps canvas pixels to plot lengths.
const dpi = 96

// RenderErr signals that the plot could not be drawn or written.
var RenderErr = errors.New("could not render plot")

// Theme holds the non-data colors of the plot.
type Theme struct {
	Background color.Color
	Text       color.Color
	Grid       color.Color
}

// Palette maps cluster labels to colors.
type Palette struct {
	Colors   []color.Color
	Fallback color.Color
}

// Color returns the color for the label, or the fallback one if the palette has no entry for it.
func (p Palette) Color(label int) color.Color {
	if label >= 0 && label < len(p.Colors) {
		return p.Colors[label]
	}
	if p.Fallback == nil {
		return color.White
	}
	return p.Fallback
}

var (
	Base  = color.RGBA{R: 30, G: 30, B: 46, A: 255}
	Text  = color.RGBA{R: 205, G: 214, B: 244, A: 255}
	Grid  = color.RGBA{R: 108, G: 112, B: 134, A: 255}
	Peach = color.RGBA{R: 250, G: 179, B: 135, A: 255}
	Mauve = color.RGBA{R: 203, G: 166, B: 247, A: 255}
	Sky   = color.RGBA{R: 137, G: 220, B: 235, A: 255}
	White = color.RGBA{R: 255, G: 255, B: 255, A: 255}
)

// Options configures the canvas. Sizes are in pixels.
type Options struct {
	Width     int     `json:"width"`
	Height    int     `json:"height"`
	XMin      float64 `json:"x_min"`
	XMax      float64 `json:"x_max"`
	YMin      float64 `json:"y_min"`
	YMax      float64 `json:"y_max"`
	Margin    float64 `json:"margin"`
	Radius    float64 `json:"radius"`
	Title     string  `json:"title"`
	TitleSize float64 `json:"title_size"`
	LabelSize float64 `json:"label_size"`
	Theme     Theme   `json:"-"`
	Palette   Palette `json:"-"`
}

// DefaultOptions returns the dark theme 1400x800 canvas over [0.5, 8.5] on both axes.
func DefaultOptions() Options {
	return Options{
		Width:     1400,
		Height:    800,
		XMin:      0.5,
		XMax:      8.5,
		YMin:      0.5,
		YMax:      8.5,
		Margin:    20,
		Radius:    4,
		Title:     "Noisy Clusters",
		TitleSize: 42,
		LabelSize: 32,
		Theme: Theme{
			Background: Base,
			Text:       Text,
			Grid:       Grid,
		},
		Palette: Palette{
			Colors:   []color.Color{Peach, Mauve, Sky},
			Fallback: White,
		},
	}
}

func (o Options) validate() error {
	if o.Width <= 0 || o.Height <= 0 {
		return fmt.Errorf("canvas size %dx%d: %w", o.Width, o.Height, RenderErr)
	}
	for _, f := range []float64{o.XMin, o.XMax, o.YMin, o.YMax} {
		if math.IsNaN(f) || math.IsInf(f, 0) {
			return fmt.Errorf("axis bound '%v': %w", f, RenderErr)
		}
	}
	if o.XMin >= o.XMax || o.YMin >= o.YMax {
		return fmt.Errorf("axis bounds x[%v,%v] y[%v,%v]: %w", o.XMin, o.XMax, o.YMin, o.YMax, RenderErr)
	}
	if o.Radius <= 0 {
		return fmt.Errorf("marker radius '%v': %w", o.Radius, RenderErr)
	}
	if 2*o.Margin >= float64(o.Width) || 2*o.Margin >= float64(o.Height) || o.Margin < 0 {
		return fmt.Errorf("margin '%v' for %dx%d: %w", o.Margin, o.Width, o.Height, RenderErr)
	}
	if o.Theme.Background == nil || o.Theme.Text == nil || o.Theme.Grid == nil {
		return fmt.Errorf("incomplete theme: %w", RenderErr)
	}
	return nil
}

func px(n float64) vg.Length {
	return vg.Length(n) * vg.Inch / dpi
}

// Render draws the labeled rows as a scatter plot and writes it as PNG to the given path,
// replacing any existing file.
func Render(path string, rows model.Labeled, opts Options) error {
	canvas, err := Draw(rows, opts)
	if err != nil {
		return err
	}
	err = file.Write(path, func(w io.Writer) error {
		if _, err := (vgimg.PngCanvas{Canvas: canvas}).WriteTo(w); err != nil {
			return fmt.Errorf("could not encode png: %v: %w", err, RenderErr)
		}
		return nil
	})
	if err != nil {
		log.Error().Err(err).Str("path", path).Msg("could not write plot")
		if errors.Is(err, RenderErr) {
			return err
		}
		return fmt.Errorf("could not write plot '%s': %w: %w", path, err, RenderErr)
	}
	log.Info().
		Str("path", path).
		Int("points", len(rows)).
		Str("size", fmt.Sprintf("%dx%d", opts.Width, opts.Height)).
		Msg("rendered plot")
	return nil
}

// Draw draws the labeled rows on a new raster canvas.
func Draw(rows model.Labeled, opts Options) (*vgimg.Canvas, error) {
	if err := opts.validate(); err != nil {
		return nil, err
	}

	p := plot.New()
	p.BackgroundColor = opts.Theme.Background
	p.Title.Text = opts.Title
	p.Title.TextStyle.Color = opts.Theme.Text
	p.Title.TextStyle.Font.Size = px(opts.TitleSize)
	for _, axis := range []*plot.Axis{&p.X, &p.Y} {
		axis.LineStyle.Color = opts.Theme.Text
		axis.Tick.LineStyle.Color = opts.Theme.Text
		axis.Tick.Label.Color = opts.Theme.Text
		axis.Tick.Label.Font.Size = px(opts.LabelSize)
		axis.Label.TextStyle.Color = opts.Theme.Text
	}

	grid := plotter.NewGrid()
	grid.Vertical.Color = opts.Theme.Grid
	grid.Horizontal.Color = opts.Theme.Grid
	p.Add(grid)

	if len(rows) > 0 {
		xys := make(plotter.XYs, len(rows))
		for i, r := range rows {
			xys[i].X = r.Noisy.X
			xys[i].Y = r.Noisy.Y
		}
		scatter, err := plotter.NewScatter(xys)
		if err != nil {
			return nil, fmt.Errorf("could not create scatter: %v: %w", err, RenderErr)
		}
		scatter.GlyphStyleFunc = func(i int) draw.GlyphStyle {
			return draw.GlyphStyle{
				Color:  opts.Palette.Color(rows[i].Label),
				Radius: px(opts.Radius),
				Shape:  draw.CircleGlyph{},
			}
		}
		p.Add(scatter)
	}

	// fixed bounds, independent of the data extent
	p.X.Min, p.X.Max = opts.XMin, opts.XMax
	p.Y.Min, p.Y.Max = opts.YMin, opts.YMax

	canvas := vgimg.NewWith(
		vgimg.UseWH(px(float64(opts.Width)), px(float64(opts.Height))),
		vgimg.UseDPI(dpi),
		vgimg.UseBackgroundColor(opts.Theme.Background),
	)
	m := px(opts.Margin)
	p.Draw(draw.Crop(draw.New(canvas), m, -m, m, -m))

	return canvas, nil
}
