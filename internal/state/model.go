package state

import (
	"errors"
	"fmt"
	"image/color"
	"math"
	"strconv"
	"strings"
)

const (
	CanvasWidth  = 800
	CanvasHeight = 600

	MinStrokeWidth     = 1
	MaxStrokeWidth     = 15
	DefaultStrokeWidth = 3
)

var (
	// Foreground is the color used on startup and after leaving erase mode.
	Foreground = color.NRGBA{A: 255}
	// Background is the surface fill; erasing paints with it.
	Background = color.NRGBA{R: 255, G: 255, B: 255, A: 255}
)

// ErrInvalidColor is returned when a color string cannot be parsed.
var ErrInvalidColor = errors.New("invalid color")

type Point struct{ X, Y float32 }

// Segment is a pair of consecutive pointer positions sampled during a drag.
type Segment struct {
	From, To Point
}

// DrawingState is everything the controls and the surface derive from.
type DrawingState struct {
	ActiveColor color.NRGBA
	StrokeWidth int
	IsErasing   bool
	IsDragging  bool
}

func DefaultState() DrawingState {
	return DrawingState{
		ActiveColor: Foreground,
		StrokeWidth: DefaultStrokeWidth,
	}
}

// ClampWidth rounds v to the nearest integer and clamps it to the stroke width range.
func ClampWidth(v float64) int {
	if math.IsNaN(v) || v < MinStrokeWidth {
		return MinStrokeWidth
	}
	if v > MaxStrokeWidth {
		return MaxStrokeWidth
	}
	return int(math.Round(v))
}

// Opaque converts any color to NRGBA with full alpha.
func Opaque(c color.Color) color.NRGBA {
	if c == nil {
		return Foreground
	}
	n := color.NRGBAModel.Convert(c).(color.NRGBA)
	n.A = 255
	return n
}

// HexString formats c as #RRGGBB.
func HexString(c color.Color) string {
	n := Opaque(c)
	return fmt.Sprintf("#%02X%02X%02X", n.R, n.G, n.B)
}

// ParseHexColor accepts #RRGGBB, RRGGBB and #RGB, case insensitive.
func ParseHexColor(s string) (color.NRGBA, error) {
	hex := strings.TrimPrefix(strings.TrimSpace(s), "#")
	if len(hex) == 3 {
		hex = string([]byte{hex[0], hex[0], hex[1], hex[1], hex[2], hex[2]})
	}
	if len(hex) != 6 {
		return color.NRGBA{}, fmt.Errorf("parse %q: %w", s, ErrInvalidColor)
	}
	v, err := strconv.ParseUint(hex, 16, 32)
	if err != nil {
		return color.NRGBA{}, fmt.Errorf("parse %q: %w", s, ErrInvalidColor)
	}
	return color.NRGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}, nil
}
