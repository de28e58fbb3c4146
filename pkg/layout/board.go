package layout

// Cells is the number of cells in the board ring.
const Cells = 14

// Layout places every cell of the ring in board units.
type Layout struct {
	cells [Cells]Rect
}

// Default returns the standard two-row layout.
//
//	   0   1   2   3   4   5   6   7   8
//	0  S13 P12 P11 P10 P9  P8  P7  S6
//	1  S13                         S6
//	2  S13 P0  P1  P2  P3  P4  P5  S6
//
// Positions run counter-clockwise starting at player A's leftmost pit.
func Default() Layout {
	var l Layout
	for i := 0; i < Cells; i++ {
		f := float64(i)
		switch {
		case i == 6:
			l.cells[i] = R(7, 0, 8, 3)
		case i == 13:
			l.cells[i] = R(0, 0, 1, 3)
		case i < 6:
			l.cells[i] = R(f+1, 2, f+2, 3)
		default:
			l.cells[i] = R(13-f, 0, 14-f, 1)
		}
	}
	return l
}

// Cell returns the rectangle of the given position in board units.
func (l Layout) Cell(position int) Rect {
	return l.cells[position]
}

// Cells returns all cell rectangles in position order.
func (l Layout) Cells() []Rect {
	out := make([]Rect, Cells)
	copy(out, l.cells[:])
	return out
}

// Extent is the union of all cells.
func (l Layout) Extent() Rect {
	r := l.cells[0]
	for _, c := range l.cells[1:] {
		r = r.Union(c)
	}
	return r
}

// ScaleToFill returns the per-axis factors that stretch the layout onto a
// surface of the given size.
func (l Layout) ScaleToFill(width, height float64) (sx, sy float64) {
	e := l.Extent()
	return width / e.Width(), height / e.Height()
}

// HitTest maps a point on a surface scaled by (sx, sy) to a cell position.
// Shared edges resolve to the lower position.
func (l Layout) HitTest(p Point, sx, sy float64) (int, bool) {
	for i, c := range l.cells {
		if c.Scale(sx, sy).Contains(p) {
			return i, true
		}
	}
	return -1, false
}
