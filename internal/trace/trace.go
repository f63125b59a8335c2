// Package trace records the iterates of a solver run and plots them.
package trace

import (
	"errors"
	"fmt"
	"sync"

	"github.com/govalues/fixed"
	"github.com/govalues/fixed/newton"
	"gonum.org/v1/plot"
	"gonum.org/v1/plot/plotter"
	"gonum.org/v1/plot/plotutil"
	"gonum.org/v1/plot/vg"
)

var ErrEmpty = errors.New("no steps recorded")

// Recorder collects solver steps. Pass its Observe method to
// [newton.WithObserver].
type Recorder struct {
	mu    sync.Mutex
	steps []newton.Step
}

// Observe records a copy of s.
func (r *Recorder) Observe(s newton.Step) {
	x := append([]fixed.Decimal(nil), s.X...)
	r.mu.Lock()
	r.steps = append(r.steps, newton.Step{Iteration: s.Iteration, X: x})
	r.mu.Unlock()
}

// Steps returns the recorded steps in order.
func (r *Recorder) Steps() []newton.Step {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]newton.Step(nil), r.steps...)
}

// Plot builds a line plot with one line per unknown, iteration number on
// the horizontal axis. Values are converted to float64, so digits beyond
// float64 precision are not visible.
func (r *Recorder) Plot(title string) (*plot.Plot, error) {
	steps := r.Steps()
	if len(steps) == 0 {
		return nil, ErrEmpty
	}
	p := plot.New()
	p.Title.Text = title
	p.X.Label.Text = "iteration"
	p.Y.Label.Text = "value"
	p.Add(plotter.NewGrid())

	for k := range steps[0].X {
		pts := make(plotter.XYs, len(steps))
		for i, s := range steps {
			f, _ := s.X[k].Float64()
			pts[i].X = float64(s.Iteration)
			pts[i].Y = f
		}
		line, err := plotter.NewLine(pts)
		if err != nil {
			return nil, fmt.Errorf("unknown %v: %w", k, err)
		}
		line.Color = plotutil.Color(k)
		p.Add(line)
		p.Legend.Add(fmt.Sprintf("x%v", k), line)
	}
	return p, nil
}

// Save writes the plot to path. The format follows the extension, for
// example .png or .svg.
func (r *Recorder) Save(path, title string) error {
	p, err := r.Plot(title)
	if err != nil {
		return err
	}
	if err := p.Save(6*vg.Inch, 4*vg.Inch, path); err != nil {
		return fmt.Errorf("saving plot: %w", err)
	}
	return nil
}
