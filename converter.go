package animspec

import (
	"math"

	"github.com/tphakala/go-animspec/internal/mathutil"
)

// TwoWayConverter maps a caller type to a Size-channel Vector and back.
type TwoWayConverter[T any] struct {
	Size       int
	ToVector   func(T) *Vector
	FromVector func(*Vector) T
}

// Point is a 2D position.
type Point struct {
	X, Y float64
}

// Size is a 2D extent.
type Size struct {
	Width, Height float64
}

// Rect is an axis-aligned rectangle given by its edges.
type Rect struct {
	Left, Top, Right, Bottom float64
}

// Color is a straight-alpha color with channels in [0, 1].
type Color struct {
	R, G, B, A float64
}

// Built-in converters.
var (
	// Float64Converter maps a float64 to a one-channel vector.
	Float64Converter = TwoWayConverter[float64]{
		Size:       1,
		ToVector:   func(v float64) *Vector { return Vector1(v) },
		FromVector: func(v *Vector) float64 { return v.Get(0) },
	}

	// IntConverter maps an int to a one-channel vector, rounding to the
	// nearest integer on the way back.
	IntConverter = TwoWayConverter[int]{
		Size:       1,
		ToVector:   func(v int) *Vector { return Vector1(float64(v)) },
		FromVector: func(v *Vector) int { return int(math.Round(v.Get(0))) },
	}

	PointConverter = TwoWayConverter[Point]{
		Size:       2,
		ToVector:   func(p Point) *Vector { return Vector2(p.X, p.Y) },
		FromVector: func(v *Vector) Point { return Point{X: v.Get(0), Y: v.Get(1)} },
	}

	SizeConverter = TwoWayConverter[Size]{
		Size:       2,
		ToVector:   func(s Size) *Vector { return Vector2(s.Width, s.Height) },
		FromVector: func(v *Vector) Size { return Size{Width: v.Get(0), Height: v.Get(1)} },
	}

	RectConverter = TwoWayConverter[Rect]{
		Size:     4,
		ToVector: func(r Rect) *Vector { return Vector4(r.Left, r.Top, r.Right, r.Bottom) },
		FromVector: func(v *Vector) Rect {
			return Rect{Left: v.Get(0), Top: v.Get(1), Right: v.Get(2), Bottom: v.Get(3)}
		},
	}

	// ColorConverter interpolates in straight RGBA and clamps each channel
	// into [0, 1] when converting back, since springs may overshoot.
	ColorConverter = TwoWayConverter[Color]{
		Size:     4,
		ToVector: func(c Color) *Vector { return Vector4(c.R, c.G, c.B, c.A) },
		FromVector: func(v *Vector) Color {
			return Color{
				R: clampUnit(v.Get(0)),
				G: clampUnit(v.Get(1)),
				B: clampUnit(v.Get(2)),
				A: clampUnit(v.Get(3)),
			}
		},
	}
)

func clampUnit(x float64) float64 {
	return mathutil.Clamp(x, 0, 1)
}

func (c TwoWayConverter[T]) validate() error {
	if err := checkSize(c.Size); err != nil {
		return err
	}
	if c.ToVector == nil || c.FromVector == nil {
		return invalidf("converter needs both ToVector and FromVector")
	}
	return nil
}

// toVector converts v and checks the arity the converter promised.
func (c TwoWayConverter[T]) toVector(v T) *Vector {
	vec := c.ToVector(v)
	if vec.Size() != c.Size {
		panic(invalidf("converter produced %d channels, declared %d", vec.Size(), c.Size).Error())
	}
	return vec
}
