// Package plotting renders the melting-curve figure from a cleaned thermo
// table. It is a consumer of the pipeline's output, not part of the
// extraction core.
package plotting

import (
	"image/color"
	"os"
	"path/filepath"

	"github.com/rotisserie/eris"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/h204812/meltpoint/internal/table"
)

// Options controls the rendered figure.
type Options struct {
	// MinStep keeps only rows with Step >= MinStep. The melting transition
	// lives in the heating phase; earlier equilibration steps just blur it.
	MinStep float64
}

// panel describes one stacked subplot: a table column against temperature.
type panel struct {
	column string
	ylabel string
	title  string
	color  color.RGBA
}

var panels = []panel{
	{column: thermoPEPerAtom, ylabel: "Potential Energy per Atom (eV/atom)", title: "Potential Energy vs. Temperature", color: color.RGBA{B: 255, A: 255}},
	{column: "Density", ylabel: "Density (g/cm^3)", title: "Density vs. Temperature", color: color.RGBA{G: 160, A: 255}},
	{column: "Press", ylabel: "Pressure (bar)", title: "Pressure vs. Temperature", color: color.RGBA{R: 255, G: 128, A: 255}},
}

const thermoPEPerAtom = "PE_per_atom"

// RenderMeltingCurves draws PE/atom, density, and pressure against
// temperature as three stacked panels and writes a PNG to path.
func RenderMeltingCurves(t *table.Table, opts Options, path string) error {
	steps, err := t.Column("Step")
	if err != nil {
		return eris.Wrap(err, "plot")
	}
	temps, err := t.Column("Temp")
	if err != nil {
		return eris.Wrap(err, "plot")
	}

	keep := make([]int, 0, len(steps))
	for i, s := range steps {
		if s >= opts.MinStep {
			keep = append(keep, i)
		}
	}
	if len(keep) == 0 {
		return eris.Wrapf(table.ErrInvalidConfiguration, "plot: no rows with Step >= %g", opts.MinStep)
	}

	plots := make([][]*plot.Plot, len(panels))
	for pi, pn := range panels {
		vals, err := t.Column(pn.column)
		if err != nil {
			return eris.Wrap(err, "plot")
		}

		xys := make(plotter.XYs, len(keep))
		for i, r := range keep {
			xys[i].X = temps[r]
			xys[i].Y = vals[r]
		}

		p := plot.New()
		p.Title.Text = pn.title
		p.X.Label.Text = "Temperature (K)"
		p.Y.Label.Text = pn.ylabel
		p.Add(plotter.NewGrid())

		line, points, err := plotter.NewLinePoints(xys)
		if err != nil {
			return eris.Wrapf(err, "plot: series %s", pn.column)
		}
		line.Color = pn.color
		points.Color = pn.color
		points.Radius = vg.Points(1.5)
		p.Add(line, points)

		plots[pi] = []*plot.Plot{p}
	}

	img := vgimg.New(vg.Points(520), vg.Points(720))
	dc := draw.New(img)
	tiles := draw.Tiles{
		Rows: len(panels),
		Cols: 1,
		PadY: vg.Points(12),
	}
	canvases := plot.Align(plots, tiles, dc)
	for pi := range plots {
		plots[pi][0].Draw(canvases[pi][0])
	}

	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return eris.Wrapf(err, "plot: create directory %s", dir)
		}
	}
	f, err := os.Create(path)
	if err != nil {
		return eris.Wrapf(err, "plot: create %s", path)
	}
	defer f.Close()

	png := vgimg.PngCanvas{Canvas: img}
	if _, err := png.WriteTo(f); err != nil {
		return eris.Wrapf(err, "plot: write %s", path)
	}
	return nil
}
