// Package raster owns the drawing bitmap and turns pointer gestures into
// painted line segments.
package raster

import (
	"image"
	"image/color"
	"image/draw"
	"log"
	"math"
	"sync"

	"golang.org/x/image/vector"

	"LocalCanvas/internal/state"
)

// capSteps is the number of polygon edges used for each round end cap.
const capSteps = 12

// margin is how far outside the bitmap a segment is kept before clipping.
// It exceeds the widest stroke radius so clipped ends never show.
const margin = state.MaxStrokeWidth + 2

// Surface is a fixed size bitmap with an IDLE/DRAGGING state machine.
type Surface struct {
	mu         sync.RWMutex
	img        *image.RGBA
	background color.NRGBA

	paint *image.Uniform
	width int
	ras   *vector.Rasterizer

	dragging bool
	last     state.Point
	strokeID string
	segments int
}

var _ state.PaintTarget = (*Surface)(nil)

// NewSurface allocates a w×h bitmap filled with background. The paint style
// is initialised before returning so pointer handlers are always safe to call.
func NewSurface(w, h int, background color.Color) *Surface {
	s := &Surface{
		img:        image.NewRGBA(image.Rect(0, 0, w, h)),
		background: state.Opaque(background),
		paint:      image.NewUniform(state.Foreground),
		width:      state.DefaultStrokeWidth,
	}
	s.fill()
	return s
}

func (s *Surface) fill() {
	draw.Draw(s.img, s.img.Bounds(), image.NewUniform(s.background), image.Point{}, draw.Src)
}

// SetPaintStyle changes the color and width used for subsequent segments.
// Pixels already on the surface are left alone.
func (s *Surface) SetPaintStyle(c color.Color, width int) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.paint = image.NewUniform(state.Opaque(c))
	s.width = state.ClampWidth(float64(width))
}

// PaintStyle reports the current paint color and width.
func (s *Surface) PaintStyle() (color.NRGBA, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.paint.C.(color.NRGBA), s.width
}

// Clear fills the bitmap with the background color. It does not change the
// drag state.
func (s *Surface) Clear() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.fill()
	log.Println("[SURFACE] Cleared")
}

// PointerDown starts a new path at p.
func (s *Surface) PointerDown(p state.Point) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.dragging = true
	s.last = p
	s.strokeID = state.NextStrokeID()
	s.segments = 0
	log.Printf("[SURFACE] Stroke %s started at (%.0f, %.0f)", s.strokeID, p.X, p.Y)
}

// PointerMove paints a segment from the last recorded position to p while
// dragging. Outside a drag it does nothing and returns false.
func (s *Surface) PointerMove(p state.Point) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dragging {
		return false
	}
	if seg, ok := clipSegment(state.Segment{From: s.last, To: p}, s.img.Bounds().Inset(-margin)); ok {
		s.stroke(seg)
	}
	s.last = p
	s.segments++
	return true
}

// PointerUp finalises the current path.
func (s *Surface) PointerUp() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if !s.dragging {
		return
	}
	s.dragging = false
	log.Printf("[SURFACE] Stroke %s finished with %d segments", s.strokeID, s.segments)
	s.strokeID = ""
}

// Dragging reports whether a path is in progress.
func (s *Surface) Dragging() bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.dragging
}

func (s *Surface) Bounds() image.Rectangle { return s.img.Bounds() }

// CopyTo copies the bitmap into dst under the read lock and returns it. A
// nil dst, or one with different bounds, is replaced by a new image.
func (s *Surface) CopyTo(dst *image.RGBA) *image.RGBA {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if dst == nil || dst.Bounds() != s.img.Bounds() {
		dst = image.NewRGBA(s.img.Bounds())
	}
	copy(dst.Pix, s.img.Pix)
	return dst
}

// stroke rasterises seg as a capsule of diameter s.width, limited to the
// segment's bounding box. Caller holds mu.
func (s *Surface) stroke(seg state.Segment) {
	radius := float32(s.width) / 2
	pad := int(math.Ceil(float64(radius))) + 1
	minX, maxX := seg.From.X, seg.To.X
	if minX > maxX {
		minX, maxX = maxX, minX
	}
	minY, maxY := seg.From.Y, seg.To.Y
	if minY > maxY {
		minY, maxY = maxY, minY
	}
	full := image.Rect(
		int(math.Floor(float64(minX)))-pad, int(math.Floor(float64(minY)))-pad,
		int(math.Ceil(float64(maxX)))+pad, int(math.Ceil(float64(maxY)))+pad,
	)
	clip := full.Intersect(s.img.Bounds())
	if clip.Empty() {
		return
	}

	// The mask is anchored at clip.Min but keeps the unclipped far edge so
	// no coverage spills past the rasterizer's right border.
	size := full.Max.Sub(clip.Min)
	if s.ras == nil {
		s.ras = vector.NewRasterizer(size.X, size.Y)
	} else {
		s.ras.Reset(size.X, size.Y)
	}
	ox, oy := float32(clip.Min.X), float32(clip.Min.Y)
	capsule(s.ras, state.Segment{
		From: state.Point{X: seg.From.X - ox, Y: seg.From.Y - oy},
		To:   state.Point{X: seg.To.X - ox, Y: seg.To.Y - oy},
	}, radius)
	s.ras.Draw(s.img, clip, s.paint, image.Point{})
}

// clipSegment cuts seg down to the part inside r (Liang-Barsky). It reports
// false when nothing of seg lies inside.
func clipSegment(seg state.Segment, r image.Rectangle) (state.Segment, bool) {
	x0, y0 := float64(seg.From.X), float64(seg.From.Y)
	dx, dy := float64(seg.To.X)-x0, float64(seg.To.Y)-y0
	t0, t1 := 0.0, 1.0
	edges := [4][2]float64{
		{-dx, x0 - float64(r.Min.X)},
		{dx, float64(r.Max.X) - x0},
		{-dy, y0 - float64(r.Min.Y)},
		{dy, float64(r.Max.Y) - y0},
	}
	for _, e := range edges {
		p, q := e[0], e[1]
		if p == 0 {
			if q < 0 {
				return seg, false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return seg, false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return seg, false
			}
			t1 = math.Min(t1, t)
		}
	}
	return state.Segment{
		From: state.Point{X: float32(x0 + t0*dx), Y: float32(y0 + t0*dy)},
		To:   state.Point{X: float32(x0 + t1*dx), Y: float32(y0 + t1*dy)},
	}, true
}

// capsule traces the outline of seg widened by radius with round ends. A
// zero length segment becomes a circle.
func capsule(r *vector.Rasterizer, seg state.Segment, radius float32) {
	a, b := seg.From, seg.To
	dx, dy := float64(b.X-a.X), float64(b.Y-a.Y)
	phi := 0.0
	if dx != 0 || dy != 0 {
		// normal to the segment direction
		phi = math.Atan2(dx, -dy)
	}
	rad := float64(radius)
	at := func(c state.Point, theta float64) (float32, float32) {
		return c.X + float32(rad*math.Cos(theta)), c.Y + float32(rad*math.Sin(theta))
	}

	r.MoveTo(at(b, phi))
	for i := 1; i <= capSteps; i++ {
		r.LineTo(at(b, phi-math.Pi*float64(i)/capSteps))
	}
	for i := 0; i <= capSteps; i++ {
		r.LineTo(at(a, phi-math.Pi-math.Pi*float64(i)/capSteps))
	}
	r.ClosePath()
}
