package ui

import (
	"image"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/driver/desktop"
	"fyne.io/fyne/v2/widget"

	"LocalCanvas/internal/raster"
	"LocalCanvas/internal/state"
)

// BoardWidget shows a raster.Surface and feeds it pointer events.
type BoardWidget struct {
	widget.BaseWidget
	surface *raster.Surface

	OnPointerDown func()
	OnPointerUp   func()
}

var _ fyne.Widget = (*BoardWidget)(nil)
var _ fyne.Draggable = (*BoardWidget)(nil)
var _ desktop.Mouseable = (*BoardWidget)(nil)
var _ desktop.Hoverable = (*BoardWidget)(nil)

func NewBoardWidget(s *raster.Surface) *BoardWidget {
	b := &BoardWidget{surface: s}
	b.ExtendBaseWidget(b)
	return b
}

// Surface returns the bitmap owner, or nil before one is bound.
func (b *BoardWidget) Surface() *raster.Surface { return b.surface }

// toBitmap maps a widget-local position to bitmap coordinates.
func (b *BoardWidget) toBitmap(pos fyne.Position) state.Point {
	bounds := b.surface.Bounds()
	size := b.Size()
	scaleX, scaleY := float32(1), float32(1)
	if size.Width > 0 && size.Height > 0 {
		scaleX = float32(bounds.Dx()) / size.Width
		scaleY = float32(bounds.Dy()) / size.Height
	}
	return state.Point{X: pos.X * scaleX, Y: pos.Y * scaleY}
}

func (b *BoardWidget) MouseDown(e *desktop.MouseEvent) {
	if b.surface == nil || e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.surface.PointerDown(b.toBitmap(e.Position))
	if b.OnPointerDown != nil {
		b.OnPointerDown()
	}
}

func (b *BoardWidget) MouseUp(e *desktop.MouseEvent) {
	if e.Button != desktop.MouseButtonPrimary {
		return
	}
	b.endStroke()
}

func (b *BoardWidget) MouseMoved(e *desktop.MouseEvent) {
	b.moveTo(e.Position)
}

func (b *BoardWidget) Dragged(e *fyne.DragEvent) {
	b.moveTo(e.Position)
}

// DragEnd fires instead of MouseUp on some drivers once a drag has begun.
func (b *BoardWidget) DragEnd() {
	b.endStroke()
}

func (b *BoardWidget) MouseIn(*desktop.MouseEvent) {}
func (b *BoardWidget) MouseOut()                   {}

func (b *BoardWidget) moveTo(pos fyne.Position) {
	if b.surface == nil {
		return
	}
	if b.surface.PointerMove(b.toBitmap(pos)) {
		b.Refresh()
	}
}

func (b *BoardWidget) endStroke() {
	if b.surface == nil || !b.surface.Dragging() {
		return
	}
	b.surface.PointerUp()
	if b.OnPointerUp != nil {
		b.OnPointerUp()
	}
}

// Clear wipes the bitmap and redraws.
func (b *BoardWidget) Clear() {
	if b.surface == nil {
		return
	}
	b.surface.Clear()
	b.Refresh()
}

// SetPaintStyle forwards to the surface; existing pixels are untouched.
func (b *BoardWidget) SetPaintStyle(c color.Color, width int) {
	if b.surface != nil {
		b.surface.SetPaintStyle(c, width)
	}
}

var _ state.PaintTarget = (*BoardWidget)(nil)

func (b *BoardWidget) MinSize() fyne.Size {
	if b.surface == nil {
		return fyne.NewSize(state.CanvasWidth, state.CanvasHeight)
	}
	bounds := b.surface.Bounds()
	return fyne.NewSize(float32(bounds.Dx()), float32(bounds.Dy()))
}

func (b *BoardWidget) CreateRenderer() fyne.WidgetRenderer {
	r := &boardWidgetRenderer{board: b}
	r.raster = canvas.NewRaster(r.generate)
	r.raster.ScaleMode = canvas.ImageScalePixels
	r.border = canvas.NewRectangle(color.Transparent)
	r.border.StrokeColor = color.Black
	r.border.StrokeWidth = 1
	return r
}

type boardWidgetRenderer struct {
	board  *BoardWidget
	raster *canvas.Raster
	border *canvas.Rectangle
	frame  *image.RGBA // reused between refreshes
}

func (r *boardWidgetRenderer) generate(w, h int) image.Image {
	if r.board.surface == nil {
		return image.NewUniform(state.Background)
	}
	r.frame = r.board.surface.CopyTo(r.frame)
	return r.frame
}

func (r *boardWidgetRenderer) Objects() []fyne.CanvasObject {
	return []fyne.CanvasObject{r.raster, r.border}
}

func (r *boardWidgetRenderer) Layout(size fyne.Size) {
	r.raster.Resize(size)
	r.border.Resize(size)
}

func (r *boardWidgetRenderer) MinSize() fyne.Size {
	return r.board.MinSize()
}

func (r *boardWidgetRenderer) Refresh() {
	r.raster.Refresh()
	r.border.Refresh()
}

func (r *boardWidgetRenderer) Destroy() {}
