// Package render draws a sampled free-space diagram with gonum/plot.
package render

import (
	"fmt"
	"image/color"
	"io"

	"github.com/tdewolff/frechet"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/palette"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
)

// Options are the drawing options of Diagram.
type Options struct {
	Title   string
	Palette palette.Palette // heat map colors, nil uses Epsilon with 64 colors

	Borders    bool // cell borders
	Levels     bool // free-space borders at the sampled levels
	Lines      bool // steepest-descent lines
	Events     bool // critical events
	Traversals bool
}

// DefaultOptions draws everything.
var DefaultOptions = Options{
	Borders:    true,
	Levels:     true,
	Lines:      true,
	Events:     true,
	Traversals: true,
}

var (
	borderColor    = color.RGBA{128, 128, 128, 255}
	levelColor     = color.RGBA{255, 255, 255, 255}
	lineColor      = color.RGBA{255, 255, 255, 160}
	eventColor     = color.RGBA{220, 40, 40, 255}
	traversalColor = color.RGBA{0, 0, 0, 255}
)

// heatGrid exposes a heat map as plotter.GridXYZ.
type heatGrid struct {
	h *frechet.Heatmap
}

func (g heatGrid) Dims() (c, r int) { return len(g.h.Xs), len(g.h.Ys) }
func (g heatGrid) Z(c, r int) float64 { return g.h.Z[r][c] }
func (g heatGrid) X(c int) float64    { return g.h.Xs[c] }
func (g heatGrid) Y(r int) float64    { return g.h.Ys[r] }

func xys(points []frechet.Vector) plotter.XYs {
	xys := make(plotter.XYs, len(points))
	for i, p := range points {
		xys[i] = plotter.XY{X: p.X, Y: p.Y}
	}
	return xys
}

func addLine(p *plot.Plot, points []frechet.Vector, style draw.LineStyle) error {
	if len(points) < 2 {
		return nil
	}
	l, err := plotter.NewLine(xys(points))
	if err != nil {
		return err
	}
	l.LineStyle = style
	p.Add(l)
	return nil
}

// Diagram plots the free-space diagram with arclength along P on the x-axis and along Q on the y-axis.
func Diagram(s frechet.Sample, opts Options) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = opts.Title
	p.X.Label.Text = "P"
	p.Y.Label.Text = "Q"
	p.X.Min, p.X.Max = 0.0, s.Lengths.X
	p.Y.Min, p.Y.Max = 0.0, s.Lengths.Y

	if s.Heatmap != nil && 0 < len(s.Heatmap.Xs) && 0 < len(s.Heatmap.Ys) {
		pal := opts.Palette
		if pal == nil {
			pal = Epsilon.Palette(64)
		}
		hm := plotter.NewHeatMap(heatGrid{s.Heatmap}, pal)
		hm.Min, hm.Max = s.BoundsL.Start, s.BoundsL.End
		if hm.Max <= hm.Min {
			hm.Max = hm.Min + 1.0
		}
		p.Add(hm)
	}

	if opts.Borders {
		style := draw.LineStyle{Color: borderColor, Width: vg.Points(0.5)}
		for _, b := range s.Borders {
			if err := addLine(p, b[:], style); err != nil {
				return nil, fmt.Errorf("cell border: %w", err)
			}
		}
	}

	if opts.Levels || opts.Lines {
		levelStyle := draw.LineStyle{Color: levelColor, Width: vg.Points(0.75)}
		lineStyle := draw.LineStyle{Color: lineColor, Width: vg.Points(0.5), Dashes: []vg.Length{vg.Points(2), vg.Points(2)}}
		for _, c := range s.Cells {
			if opts.Levels {
				for _, lvl := range c.Levels {
					for _, arc := range lvl.Arcs {
						if err := addLine(p, arc, levelStyle); err != nil {
							return nil, fmt.Errorf("level %v of cell (%d,%d): %w", lvl.Epsilon, c.I, c.J, err)
						}
					}
				}
			}
			if opts.Lines {
				for _, line := range c.Lines {
					if err := addLine(p, line, lineStyle); err != nil {
						return nil, fmt.Errorf("steepest-descent line of cell (%d,%d): %w", c.I, c.J, err)
					}
				}
			}
		}
	}

	if opts.Events && 0 < len(s.CriticalEvents) {
		var points plotter.XYs
		style := draw.LineStyle{Color: eventColor, Width: vg.Points(1)}
		for _, t := range s.CriticalEvents {
			for _, q := range t.Points {
				points = append(points, plotter.XY{X: q.X, Y: q.Y})
			}
			if err := addLine(p, t.Points, style); err != nil {
				return nil, fmt.Errorf("critical event: %w", err)
			}
		}
		sc, err := plotter.NewScatter(points)
		if err != nil {
			return nil, fmt.Errorf("critical events: %w", err)
		}
		sc.GlyphStyle = draw.GlyphStyle{Color: eventColor, Radius: vg.Points(2), Shape: draw.CircleGlyph{}}
		p.Add(sc)
		p.Legend.Add("critical events", sc)
	}

	if opts.Traversals {
		for i, t := range s.Traversals {
			points := make([]frechet.Vector, len(t.Profile))
			for k, pp := range t.Profile {
				points[k] = frechet.Vector{X: pp.X, Y: pp.Y}
			}
			if len(points) < 2 {
				continue
			}
			l, err := plotter.NewLine(xys(points))
			if err != nil {
				return nil, fmt.Errorf("traversal %d: %w", i, err)
			}
			l.LineStyle = draw.LineStyle{Color: traversalColor, Width: vg.Points(1.5)}
			p.Add(l)
			if i == 0 {
				p.Legend.Add(fmt.Sprintf("traversal ε=%.4g", t.Epsilon.End), l)
			}
		}
	}
	return p, nil
}

// Profile plots the epsilon along a traversal against the length walked.
func Profile(t frechet.TraversalSample, title string) (*plot.Plot, error) {
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "t"
	p.Y.Label.Text = "ε"

	pts := make(plotter.XYs, len(t.Profile))
	for i, pp := range t.Profile {
		pts[i] = plotter.XY{X: pp.T, Y: pp.Epsilon}
	}
	l, err := plotter.NewLine(pts)
	if err != nil {
		return nil, err
	}
	l.LineStyle = draw.LineStyle{Color: traversalColor, Width: vg.Points(1)}
	p.Add(l)

	if 0 < len(pts) {
		eps := t.Epsilon.End
		bound, err := plotter.NewLine(plotter.XYs{{X: pts[0].X, Y: eps}, {X: pts[len(pts)-1].X, Y: eps}})
		if err != nil {
			return nil, err
		}
		bound.LineStyle = draw.LineStyle{Color: eventColor, Width: vg.Points(0.5), Dashes: []vg.Length{vg.Points(3), vg.Points(2)}}
		p.Add(bound)
	}
	return p, nil
}

// Save writes the plot to filename, the extension selects the format (png, svg, pdf, eps, jpg, tif).
func Save(p *plot.Plot, width, height vg.Length, filename string) error {
	return p.Save(width, height, filename)
}

// Write writes the plot to w in the given format.
func Write(w io.Writer, p *plot.Plot, width, height vg.Length, format string) error {
	wt, err := p.WriterTo(width, height, format)
	if err != nil {
		return err
	}
	_, err = wt.WriteTo(w)
	return err
}
