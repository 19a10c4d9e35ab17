package ui

import (
	"fmt"
	"image/color"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/dialog"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"

	"LocalCanvas/internal/state"
)

// --- Color swatch, shows a single color and reports taps ---
type colorSwatch struct {
	widget.BaseWidget
	rect     *canvas.Rectangle
	OnTapped func()
}

func newColorSwatch(c color.Color, tapped func()) *colorSwatch {
	s := &colorSwatch{rect: canvas.NewRectangle(c), OnTapped: tapped}
	s.rect.SetMinSize(fyne.NewSize(32, 32))
	s.ExtendBaseWidget(s)
	return s
}

func (s *colorSwatch) CreateRenderer() fyne.WidgetRenderer {
	border := canvas.NewRectangle(color.Transparent)
	border.StrokeColor = color.Gray{Y: 150}
	border.StrokeWidth = 1
	return widget.NewSimpleRenderer(container.NewStack(s.rect, border))
}

func (s *colorSwatch) setColor(c color.Color) {
	s.rect.FillColor = c
	s.rect.Refresh()
}

func (s *colorSwatch) Tapped(_ *fyne.PointEvent) {
	if s.OnTapped != nil {
		s.OnTapped()
	}
}

// ColorChooser displays the active color as a swatch and an editable hex
// value. Tapping the swatch opens a picker; submitting the entry parses it.
type ColorChooser struct {
	widget.BaseWidget
	swatch  *colorSwatch
	hex     *widget.Entry
	current color.NRGBA
	parent  fyne.Window

	OnChanged func(color.Color)
}

func NewColorChooser(initial color.Color, parent fyne.Window, changed func(color.Color)) *ColorChooser {
	cc := &ColorChooser{
		current:   state.Opaque(initial),
		parent:    parent,
		OnChanged: changed,
	}
	cc.swatch = newColorSwatch(cc.current, cc.open)
	cc.hex = widget.NewEntry()
	cc.hex.SetText(state.HexString(cc.current))
	cc.hex.OnSubmitted = cc.Submit
	cc.ExtendBaseWidget(cc)
	return cc
}

func (cc *ColorChooser) CreateRenderer() fyne.WidgetRenderer {
	hexBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(100, 35)), cc.hex)
	return widget.NewSimpleRenderer(container.NewHBox(cc.swatch, hexBox))
}

// SetColor updates the displayed value without emitting OnChanged.
func (cc *ColorChooser) SetColor(c color.Color) {
	cc.current = state.Opaque(c)
	cc.swatch.setColor(cc.current)
	cc.hex.SetText(state.HexString(cc.current))
}

// Pick behaves as if the user chose c in the picker dialog.
func (cc *ColorChooser) Pick(c color.Color) {
	if c == nil {
		fyne.LogError("color picker returned no color", nil)
		return
	}
	if cc.OnChanged != nil {
		cc.OnChanged(c)
	}
}

// Submit parses a typed hex value. Invalid input is logged and the entry
// reverts to the current color.
func (cc *ColorChooser) Submit(text string) {
	c, err := state.ParseHexColor(text)
	if err != nil {
		fyne.LogError("color entry", err)
		cc.hex.SetText(state.HexString(cc.current))
		return
	}
	cc.Pick(c)
}

func (cc *ColorChooser) open() {
	if cc.parent == nil {
		return
	}
	picker := dialog.NewColorPicker("Color", "Pick a stroke color", cc.Pick, cc.parent)
	picker.Advanced = true
	picker.SetColor(cc.current)
	picker.Show()
}

// ModeToggle labels the action it offers: "Erase" while drawing and "Draw"
// while erasing.
type ModeToggle struct {
	*widget.Button
	erasing bool
}

func NewModeToggle(tapped func()) *ModeToggle {
	t := &ModeToggle{Button: widget.NewButton("", tapped)}
	t.apply()
	return t
}

func (t *ModeToggle) Erasing() bool { return t.erasing }

func (t *ModeToggle) SetErasing(erasing bool) {
	t.erasing = erasing
	t.apply()
}

func (t *ModeToggle) apply() {
	if t.erasing {
		t.Button.Text = "Draw"
		t.Button.Importance = widget.SuccessImportance
	} else {
		t.Button.Text = "Erase"
		t.Button.Importance = widget.DangerImportance
	}
	t.Button.Refresh()
}

// Toolbar holds the controls so the controller's state can be pushed back
// into them.
type Toolbar struct {
	Color  *ColorChooser
	Width  *widget.Slider
	Clear  *widget.Button
	Mode   *ModeToggle
	widths *widget.Label
}

// NewToolbar builds the control row and wires it to ctrl.
func NewToolbar(ctrl *state.Controller, parent fyne.Window) (*Toolbar, fyne.CanvasObject) {
	st := ctrl.State()
	tb := &Toolbar{}

	tb.Color = NewColorChooser(st.ActiveColor, parent, ctrl.OnColorPicked)

	tb.Width = widget.NewSlider(state.MinStrokeWidth, state.MaxStrokeWidth)
	tb.Width.Step = 1
	tb.Width.SetValue(float64(st.StrokeWidth))
	tb.Width.OnChanged = ctrl.OnWidthChanged
	tb.widths = widget.NewLabel("")

	tb.Clear = widget.NewButton("Clear", ctrl.OnClear)
	tb.Mode = NewModeToggle(ctrl.OnModeToggled)

	tb.Update(st)

	sliderBox := container.New(layout.NewGridWrapLayout(fyne.NewSize(150, 35)), tb.Width)
	row := container.NewHBox(
		tb.Color,
		widget.NewSeparator(),
		widget.NewLabel("Size:"),
		sliderBox,
		tb.widths,
		widget.NewSeparator(),
		tb.Clear,
		tb.Mode.Button,
	)
	return tb, container.NewCenter(row)
}

// Update re-renders the controls from s.
func (tb *Toolbar) Update(s state.DrawingState) {
	tb.Color.SetColor(s.ActiveColor)
	if int(tb.Width.Value) != s.StrokeWidth {
		tb.Width.SetValue(float64(s.StrokeWidth))
	}
	tb.widths.SetText(widthLabel(s.StrokeWidth))
	tb.Mode.SetErasing(s.IsErasing)
}

func widthLabel(w int) string {
	return fmt.Sprintf("%d px", w)
}
