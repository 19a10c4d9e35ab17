package raster

import (
	"image"
	"image/color"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"LocalCanvas/internal/state"
)

var red = color.NRGBA{R: 255, A: 255}

func newTestSurface() *Surface {
	return NewSurface(state.CanvasWidth, state.CanvasHeight, state.Background)
}

func rgbaAt(s *Surface, x, y int) color.RGBA {
	return s.CopyTo(nil).RGBAAt(x, y)
}

func isBlank(img *image.RGBA, bg color.NRGBA) bool {
	want := color.RGBAModel.Convert(bg).(color.RGBA)
	b := img.Bounds()
	for y := b.Min.Y; y < b.Max.Y; y++ {
		for x := b.Min.X; x < b.Max.X; x++ {
			if img.RGBAAt(x, y) != want {
				return false
			}
		}
	}
	return true
}

func TestNewSurfaceIsBlank(t *testing.T) {
	s := newTestSurface()
	assert.Equal(t, image.Rect(0, 0, 800, 600), s.Bounds())
	assert.True(t, isBlank(s.CopyTo(nil), state.Background))
	assert.False(t, s.Dragging())

	c, w := s.PaintStyle()
	assert.Equal(t, state.Foreground, c)
	assert.Equal(t, 3, w)
}

func TestHorizontalRedLine(t *testing.T) {
	s := newTestSurface()
	s.SetPaintStyle(red, 3)

	s.PointerDown(state.Point{X: 10, Y: 10})
	require.True(t, s.PointerMove(state.Point{X: 50, Y: 10}))
	s.PointerUp()

	white := color.RGBA{255, 255, 255, 255}
	solid := color.RGBA{255, 0, 0, 255}
	for x := 10; x < 50; x++ {
		assert.Equal(t, solid, rgbaAt(s, x, 10), "on the line at x=%d", x)
	}
	// a width of 3 covers y in [8.5, 11.5]
	assert.Equal(t, solid, rgbaAt(s, 30, 9))
	assert.Equal(t, white, rgbaAt(s, 30, 12))
	assert.Equal(t, white, rgbaAt(s, 30, 7))
	assert.Equal(t, white, rgbaAt(s, 5, 10))
	assert.Equal(t, white, rgbaAt(s, 55, 10))
	assert.Equal(t, white, rgbaAt(s, 300, 300))
}

func TestMoveWithoutDownPaintsNothing(t *testing.T) {
	s := newTestSurface()
	s.SetPaintStyle(red, 3)

	assert.False(t, s.PointerMove(state.Point{X: 50, Y: 10}))
	assert.False(t, s.PointerMove(state.Point{X: 100, Y: 100}))
	assert.True(t, isBlank(s.CopyTo(nil), state.Background))

	s.PointerDown(state.Point{X: 10, Y: 10})
	s.PointerUp()
	assert.False(t, s.PointerMove(state.Point{X: 60, Y: 60}), "moves after up are ignored")
	assert.True(t, isBlank(s.CopyTo(nil), state.Background))
}

func TestDraggingBetweenDownAndUp(t *testing.T) {
	s := newTestSurface()
	assert.False(t, s.Dragging())
	s.PointerDown(state.Point{X: 1, Y: 1})
	assert.True(t, s.Dragging())
	s.PointerMove(state.Point{X: 2, Y: 2})
	assert.True(t, s.Dragging())
	s.PointerUp()
	assert.False(t, s.Dragging())
	s.PointerUp()
	assert.False(t, s.Dragging())
}

func TestClearRestoresBackground(t *testing.T) {
	s := newTestSurface()
	s.SetPaintStyle(red, 15)
	s.PointerDown(state.Point{X: 0, Y: 0})
	s.PointerMove(state.Point{X: 799, Y: 599})
	s.PointerMove(state.Point{X: 0, Y: 599})
	s.PointerUp()
	require.False(t, isBlank(s.CopyTo(nil), state.Background))

	s.Clear()
	assert.True(t, isBlank(s.CopyTo(nil), state.Background))
}

func TestClearKeepsDragState(t *testing.T) {
	s := newTestSurface()
	s.PointerDown(state.Point{X: 10, Y: 10})
	s.Clear()
	assert.True(t, s.Dragging())
	assert.True(t, s.PointerMove(state.Point{X: 20, Y: 10}))
	assert.False(t, isBlank(s.CopyTo(nil), state.Background))
}

func TestSetPaintStyleOnlyAffectsLaterSegments(t *testing.T) {
	s := newTestSurface()
	s.SetPaintStyle(red, 3)
	s.PointerDown(state.Point{X: 10, Y: 10})
	s.PointerMove(state.Point{X: 50, Y: 10})

	blue := color.NRGBA{B: 255, A: 255}
	s.SetPaintStyle(blue, 3)
	s.PointerMove(state.Point{X: 50, Y: 50})
	s.PointerUp()

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgbaAt(s, 30, 10))
	assert.Equal(t, color.RGBA{0, 0, 255, 255}, rgbaAt(s, 50, 30))
}

func TestEraseWithBackground(t *testing.T) {
	s := newTestSurface()
	s.SetPaintStyle(red, 5)
	s.PointerDown(state.Point{X: 100, Y: 100})
	s.PointerMove(state.Point{X: 200, Y: 100})
	s.PointerUp()

	s.SetPaintStyle(state.Background, 15)
	s.PointerDown(state.Point{X: 90, Y: 100})
	s.PointerMove(state.Point{X: 210, Y: 100})
	s.PointerUp()

	assert.True(t, isBlank(s.CopyTo(nil), state.Background))
}

func TestSetPaintStyleClampsWidth(t *testing.T) {
	s := newTestSurface()
	s.SetPaintStyle(red, 40)
	_, w := s.PaintStyle()
	assert.Equal(t, 15, w)

	s.SetPaintStyle(red, 0)
	_, w = s.PaintStyle()
	assert.Equal(t, 1, w)
}

func TestZeroLengthSegmentPaintsDot(t *testing.T) {
	s := newTestSurface()
	s.SetPaintStyle(red, 9)
	s.PointerDown(state.Point{X: 400, Y: 300})
	s.PointerMove(state.Point{X: 400, Y: 300})
	s.PointerUp()

	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgbaAt(s, 400, 300))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgbaAt(s, 420, 300))
}

func TestStrokeAtEdgeStaysInBounds(t *testing.T) {
	s := newTestSurface()
	s.SetPaintStyle(red, 15)
	s.PointerDown(state.Point{X: 0, Y: 0})
	assert.NotPanics(t, func() {
		s.PointerMove(state.Point{X: 800, Y: 0})
		s.PointerMove(state.Point{X: 800, Y: 600})
	})
	s.PointerUp()
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, rgbaAt(s, 400, 1))
}

func TestOffSurfaceDragAllocatesLittle(t *testing.T) {
	s := newTestSurface()
	s.SetPaintStyle(red, 15)
	s.PointerDown(state.Point{X: 400, Y: 300})
	s.PointerMove(state.Point{X: 410, Y: 300}) // warm the rasterizer

	var before, after runtime.MemStats
	runtime.ReadMemStats(&before)
	s.PointerMove(state.Point{X: 6000, Y: 4000})
	s.PointerMove(state.Point{X: 1e6, Y: 1e6})
	s.PointerMove(state.Point{X: -1e6, Y: 300})
	runtime.ReadMemStats(&after)
	s.PointerUp()

	assert.Less(t, after.TotalAlloc-before.TotalAlloc, uint64(16<<20))
}

func TestOffSurfaceDragPaintsVisiblePart(t *testing.T) {
	s := newTestSurface()
	s.SetPaintStyle(red, 3)
	s.PointerDown(state.Point{X: 400, Y: 300})
	require.True(t, s.PointerMove(state.Point{X: 6000, Y: 300}))
	s.PointerUp()

	solid := color.RGBA{255, 0, 0, 255}
	assert.Equal(t, solid, rgbaAt(s, 600, 300))
	assert.Equal(t, solid, rgbaAt(s, 799, 300))
	assert.Equal(t, color.RGBA{255, 255, 255, 255}, rgbaAt(s, 799, 305))
}

func TestClipSegment(t *testing.T) {
	r := image.Rect(0, 0, 100, 100)

	seg, ok := clipSegment(state.Segment{From: state.Point{X: 10, Y: 10}, To: state.Point{X: 50, Y: 60}}, r)
	require.True(t, ok)
	assert.Equal(t, state.Segment{From: state.Point{X: 10, Y: 10}, To: state.Point{X: 50, Y: 60}}, seg)

	seg, ok = clipSegment(state.Segment{From: state.Point{X: 50, Y: 50}, To: state.Point{X: 250, Y: 50}}, r)
	require.True(t, ok)
	assert.Equal(t, state.Point{X: 100, Y: 50}, seg.To)

	_, ok = clipSegment(state.Segment{From: state.Point{X: 200, Y: 200}, To: state.Point{X: 300, Y: 250}}, r)
	assert.False(t, ok)

	_, ok = clipSegment(state.Segment{From: state.Point{X: 150, Y: 150}, To: state.Point{X: 150, Y: 150}}, r)
	assert.False(t, ok)
}

func TestCopyToReusesBuffer(t *testing.T) {
	s := newTestSurface()
	frame := s.CopyTo(nil)

	s.SetPaintStyle(red, 3)
	s.PointerDown(state.Point{X: 10, Y: 10})
	s.PointerMove(state.Point{X: 50, Y: 10})
	s.PointerUp()

	again := s.CopyTo(frame)
	assert.Same(t, frame, again)
	assert.Equal(t, color.RGBA{255, 0, 0, 255}, again.RGBAAt(30, 10))

	other := image.NewRGBA(image.Rect(0, 0, 10, 10))
	assert.NotSame(t, other, s.CopyTo(other))
}
