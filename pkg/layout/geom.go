// Package layout holds the geometry the presentation adapters use to place
// the 14 board cells and to map a pointer position back to a pit.
//
// Coordinates are board units: the board is 8 units wide and 3 high, with
// player B's store on the left, player A's store on the right, player A's
// pits along the bottom row and player B's pits along the top row.
package layout

import "math"

// Point is a 2D position.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Scale multiplies each axis independently.
func (p Point) Scale(x, y float64) Point {
	return Point{X: p.X * x, Y: p.Y * y}
}

// Rect is an axis-aligned rectangle from Min (top-left) to Max (bottom-right).
type Rect struct {
	Min Point `json:"min"`
	Max Point `json:"max"`
}

// R is shorthand for a Rect built from corner coordinates.
func R(x0, y0, x1, y1 float64) Rect {
	return Rect{Min: Point{X: x0, Y: y0}, Max: Point{X: x1, Y: y1}}
}

func (r Rect) Scale(x, y float64) Rect {
	return Rect{Min: r.Min.Scale(x, y), Max: r.Max.Scale(x, y)}
}

func (r Rect) Width() float64  { return r.Max.X - r.Min.X }
func (r Rect) Height() float64 { return r.Max.Y - r.Min.Y }

func (r Rect) Center() Point {
	return Point{X: (r.Min.X + r.Max.X) / 2, Y: (r.Min.Y + r.Max.Y) / 2}
}

// Union returns the smallest Rect containing both r and o.
func (r Rect) Union(o Rect) Rect {
	return Rect{
		Min: Point{X: math.Min(r.Min.X, o.Min.X), Y: math.Min(r.Min.Y, o.Min.Y)},
		Max: Point{X: math.Max(r.Max.X, o.Max.X), Y: math.Max(r.Max.Y, o.Max.Y)},
	}
}

// Contains reports whether p lies inside r, edges included.
func (r Rect) Contains(p Point) bool {
	return !(p.X < r.Min.X || p.X > r.Max.X || p.Y < r.Min.Y || p.Y > r.Max.Y)
}
