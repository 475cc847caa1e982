package aero

import (
	"math"
	"sync/atomic"
	"time"

	"github.com/rainsdm/atmotraj/internal/geom"
)

// ForceGrid is a 3-dimensional regular lookup table of packed force
// samples over (speed, angle of attack, altitude). Axis bounds are fixed
// at construction; a populated cell is never recomputed, and staleness is
// handled by discarding the whole grid with its owning Model.
//
// An unfilled cell holds a nil pointer. Concurrent readers may race to
// fill the same cell; the computation is deterministic and each racer
// publishes a complete sample through the atomic pointer, so no reader
// can ever observe a torn cell.
type ForceGrid struct {
	model *Model

	maxSpeed    float64
	maxAoA      float64
	maxAltitude float64

	// cells is indexed [speed][aoa][altitude].
	cells [][][]atomic.Pointer[Packed]
}

func newForceGrid(m *Model, cfg Config) *ForceGrid {
	aoaRes := cfg.AoAResolution
	if aoaRes%2 == 0 {
		// An odd node count puts zero AoA exactly on a grid node, where
		// interpolation error must vanish for the most common attitude.
		aoaRes++
	}

	g := &ForceGrid{
		model:       m,
		maxSpeed:    cfg.MaxSpeed,
		maxAoA:      cfg.MaxAoA,
		maxAltitude: m.body.AtmosphereDepth,
	}

	g.cells = make([][][]atomic.Pointer[Packed], cfg.SpeedResolution)
	for i := range g.cells {
		g.cells[i] = make([][]atomic.Pointer[Packed], aoaRes)
		for j := range g.cells[i] {
			g.cells[i][j] = make([]atomic.Pointer[Packed], cfg.AltitudeResolution)
		}
	}

	if cfg.EagerFill {
		start := time.Now()
		g.fillAll()
		m.log.Debug().
			Int("cells", cfg.SpeedResolution*aoaRes*cfg.AltitudeResolution).
			Dur("elapsed", time.Since(start)).
			Msg("force cache filled eagerly")
	}
	return g
}

// GetForce returns the trilinearly interpolated packed force at the
// given coordinates, clamped onto the configured axis ranges. Missing
// corner samples are computed on demand.
func (g *ForceGrid) GetForce(speed, angleOfAttack, altitude float64) Packed {
	iv, fv := g.locate(speed/g.maxSpeed, len(g.cells))
	ia, fa := g.locate(angleOfAttack/g.maxAoA*0.5+0.5, len(g.cells[0]))
	im, fm := g.locate(altitude/g.maxAltitude, len(g.cells[0][0]))

	var corners [2][2][2]Packed
	for dv := 0; dv < 2; dv++ {
		for da := 0; da < 2; da++ {
			for dm := 0; dm < 2; dm++ {
				corners[dv][da][dm] = g.cell(iv+dv, ia+da, im+dm)
			}
		}
	}

	lerp := func(a, b Packed, f float64) Packed {
		return Packed{X: a.X + (b.X-a.X)*f, Y: a.Y + (b.Y-a.Y)*f}
	}

	c00 := lerp(corners[0][0][0], corners[0][0][1], fm)
	c01 := lerp(corners[0][1][0], corners[0][1][1], fm)
	c10 := lerp(corners[1][0][0], corners[1][0][1], fm)
	c11 := lerp(corners[1][1][0], corners[1][1][1], fm)

	c0 := lerp(c00, c01, fa)
	c1 := lerp(c10, c11, fa)
	return lerp(c0, c1, fv)
}

// locate maps a normalized coordinate onto a cell index and the fraction
// within it, clamping so the enclosing cell always exists.
func (g *ForceGrid) locate(norm float64, n int) (int, float64) {
	pos := norm * float64(n-1)
	i := int(math.Floor(pos))
	if i < 0 {
		i = 0
	}
	if i > n-2 {
		i = n - 2
	}
	frac := pos - float64(i)
	if frac < 0 {
		frac = 0
	}
	if frac > 1 {
		frac = 1
	}
	return i, frac
}

// cell returns the memoized corner sample, computing and publishing it
// first if it has never been touched.
func (g *ForceGrid) cell(iv, ia, im int) Packed {
	if p := g.cells[iv][ia][im].Load(); p != nil {
		return *p
	}
	c := g.computeCell(iv, ia, im)
	g.cells[iv][ia][im].Store(&c)
	return c
}

// computeCell evaluates the owning model's uncached path at the corner's
// coordinates in the canonical probe frame: velocity along +X, reference
// up +Y.
func (g *ForceGrid) computeCell(iv, ia, im int) Packed {
	speed := g.maxSpeed * float64(iv) / float64(len(g.cells)-1)
	aoa := g.maxAoA * (2*float64(ia)/float64(len(g.cells[0])-1) - 1)
	altitude := g.maxAltitude * float64(im) / float64(len(g.cells[0][0])-1)

	force := g.model.ComputeForces(altitude, geom.Vec3{X: speed}, geom.Vec3{Y: 1}, aoa)
	return g.model.packForces(force, altitude, speed)
}

// fillAll populates every corner, fanning out over the speed axis.
func (g *ForceGrid) fillAll() {
	parallelFor(len(g.cells), 4, func(start, end int) {
		for iv := start; iv < end; iv++ {
			for ia := range g.cells[iv] {
				for im := range g.cells[iv][ia] {
					c := g.computeCell(iv, ia, im)
					g.cells[iv][ia][im].Store(&c)
				}
			}
		}
	})
}
