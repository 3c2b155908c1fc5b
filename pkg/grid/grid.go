package grid

import (
	"github.com/go-playground/validator/v10"

	"github.com/matzehuels/canvasrand/pkg/errors"
)

// Default placement values, matching what the insert command falls back to
// when no settings file exists.
const (
	DefaultCount  = 5
	DefaultPerRow = 3
	DefaultWidth  = 400.0
	DefaultHeight = 500.0
	DefaultMargin = 50.0
)

// Spec configures a grid placement.
type Spec struct {
	Count   int     `json:"count" validate:"gte=0"`
	PerRow  int     `json:"per_row" validate:"gte=1"`
	Width   float64 `json:"width" validate:"gt=0"`
	Height  float64 `json:"height" validate:"gt=0"`
	Margin  float64 `json:"margin" validate:"gte=0"`
	OriginX float64 `json:"x"`
	OriginY float64 `json:"y"`
}

// DefaultSpec returns the default 3-wide grid of 400x500 items at the origin.
func DefaultSpec() Spec {
	return Spec{
		Count:  DefaultCount,
		PerRow: DefaultPerRow,
		Width:  DefaultWidth,
		Height: DefaultHeight,
		Margin: DefaultMargin,
	}
}

// Point is the top-left corner of a placed item.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Rect is an axis-aligned bounding box.
type Rect struct {
	X      float64 `json:"x"`
	Y      float64 `json:"y"`
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Right returns the x coordinate of the right edge.
func (r Rect) Right() float64 { return r.X + r.Width }

// Bottom returns the y coordinate of the bottom edge.
func (r Rect) Bottom() float64 { return r.Y + r.Height }

var validate = validator.New()

// Validate reports a configuration error if the spec cannot be laid out.
func (s Spec) Validate() error {
	if err := validate.Struct(s); err != nil {
		return errors.Wrap(errors.ErrCodeInvalidSpec, err, "invalid placement: %s", describe(err))
	}
	return nil
}

// WithOrigin returns a copy of s anchored at (x, y).
func (s Spec) WithOrigin(x, y float64) Spec {
	s.OriginX, s.OriginY = x, y
	return s
}

// Rows returns how many rows count items occupy.
func (s Spec) Rows(count int) int {
	if count <= 0 {
		return 0
	}
	perRow := max(s.PerRow, 1)
	return (count + perRow - 1) / perRow
}

// Layout returns count points in row-major order. It returns an empty slice
// when count <= 0.
func Layout(count int, s Spec) []Point {
	if count <= 0 {
		return []Point{}
	}
	perRow := max(s.PerRow, 1)
	stepX := s.Width + s.Margin
	stepY := s.Height + s.Margin

	points := make([]Point, count)
	for i := range points {
		col := i % perRow
		row := i / perRow
		points[i] = Point{
			X: s.OriginX + float64(col)*stepX,
			Y: s.OriginY + float64(row)*stepY,
		}
	}
	return points
}

// Bounds returns the box covering items of the spec's size at points.
// It returns the zero Rect and false for no points.
func Bounds(points []Point, s Spec) (Rect, bool) {
	if len(points) == 0 {
		return Rect{}, false
	}
	minX, minY := points[0].X, points[0].Y
	maxX, maxY := minX+s.Width, minY+s.Height
	for _, p := range points[1:] {
		minX = min(minX, p.X)
		minY = min(minY, p.Y)
		maxX = max(maxX, p.X+s.Width)
		maxY = max(maxY, p.Y+s.Height)
	}
	return Rect{X: minX, Y: minY, Width: maxX - minX, Height: maxY - minY}, true
}
