// Package plot renders gate angle traces to PNG figures.
package plot

import (
	"bufio"
	"errors"
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"

	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/vg"
	"gonum.org/v1/plot/vg/draw"
	"gonum.org/v1/plot/vg/vgimg"

	"github.com/udisondev/gatekeep/internal/journal"
)

// ErrEmptyTrace is returned for a trace without samples.
var ErrEmptyTrace = errors.New("trace has no samples")

const (
	widthIn  = 8.0
	heightIn = 4.0
	dpi      = 150
)

var (
	targetColor = color.RGBA{R: 0x1f, G: 0x77, B: 0xb4, A: 0xff}
	angleColor  = color.RGBA{R: 0xd6, G: 0x27, B: 0x28, A: 0xff}
)

// FileName returns the PNG name used for a gate trace.
func FileName(gate string) string {
	name := strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z', r >= '0' && r <= '9', r == '-', r == '_':
			return r
		default:
			return '_'
		}
	}, gate)
	return "gate_" + name + ".png"
}

// SaveTrace writes target and measured angle over time to a PNG at path.
func SaveTrace(path string, tr journal.Trace) error {
	if tr.Len() == 0 {
		return fmt.Errorf("plotting gate %q: %w", tr.Gate, ErrEmptyTrace)
	}

	p := plot.New()
	p.Title.Text = fmt.Sprintf("Gate %s", tr.Gate)
	p.X.Label.Text = "time (s)"
	p.Y.Label.Text = "angle (deg)"
	p.Add(plotter.NewGrid())

	target := make(plotter.XYs, tr.Len())
	angle := make(plotter.XYs, tr.Len())
	for i, s := range tr.Samples {
		t := s.At.Seconds()
		target[i].X, target[i].Y = t, s.Target
		angle[i].X, angle[i].Y = t, s.Angle
	}

	targetLine, err := plotter.NewLine(target)
	if err != nil {
		return fmt.Errorf("building target line: %w", err)
	}
	targetLine.LineStyle.Width = vg.Points(1.5)
	targetLine.LineStyle.Color = targetColor
	targetLine.LineStyle.Dashes = []vg.Length{vg.Points(4), vg.Points(2)}

	angleLine, err := plotter.NewLine(angle)
	if err != nil {
		return fmt.Errorf("building angle line: %w", err)
	}
	angleLine.LineStyle.Width = vg.Points(2)
	angleLine.LineStyle.Color = angleColor

	p.Add(targetLine, angleLine)
	p.Legend.Add("target", targetLine)
	p.Legend.Add("angle", angleLine)
	p.Legend.Top = true

	return savePNG(p, path)
}

// SaveAll writes one PNG per trace into dir and returns the written paths.
func SaveAll(dir string, traces []journal.Trace) ([]string, error) {
	paths := make([]string, 0, len(traces))
	for _, tr := range traces {
		if tr.Len() == 0 {
			continue
		}
		path := filepath.Join(dir, FileName(tr.Gate))
		if err := SaveTrace(path, tr); err != nil {
			return paths, err
		}
		paths = append(paths, path)
	}
	return paths, nil
}

func savePNG(p *plot.Plot, filename string) error {
	if err := os.MkdirAll(filepath.Dir(filename), 0o755); err != nil {
		return fmt.Errorf("creating plot directory: %w", err)
	}

	c := vgimg.NewWith(
		vgimg.UseWH(vg.Length(widthIn)*vg.Inch, vg.Length(heightIn)*vg.Inch),
		vgimg.UseDPI(dpi),
	)
	p.Draw(draw.New(c))

	f, err := os.Create(filename)
	if err != nil {
		return fmt.Errorf("creating png %s: %w", filename, err)
	}
	defer f.Close()

	bw := bufio.NewWriter(f)
	if _, err := (vgimg.PngCanvas{Canvas: c}).WriteTo(bw); err != nil {
		return fmt.Errorf("writing png %s: %w", filename, err)
	}
	if err := bw.Flush(); err != nil {
		return fmt.Errorf("flushing png %s: %w", filename, err)
	}
	return nil
}
