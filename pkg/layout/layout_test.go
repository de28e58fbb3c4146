package layout

import "testing"

func TestDefault_Extent(t *testing.T) {
	e := Default().Extent()
	if e != R(0, 0, 8, 3) {
		t.Errorf("Extent() = %+v, want 0,0-8,3", e)
	}
}

func TestRect_Geometry(t *testing.T) {
	r := R(1, 2, 3, 6)
	if r.Width() != 2 || r.Height() != 4 {
		t.Errorf("size = %vx%v, want 2x4", r.Width(), r.Height())
	}
	if c := r.Center(); c != (Point{X: 2, Y: 4}) {
		t.Errorf("Center() = %+v, want 2,4", c)
	}
	if s := r.Scale(10, 0.5); s != R(10, 1, 30, 3) {
		t.Errorf("Scale() = %+v", s)
	}
	if u := r.Union(R(0, 5, 2, 7)); u != R(0, 2, 3, 7) {
		t.Errorf("Union() = %+v", u)
	}
	if !r.Contains(Point{X: 1, Y: 2}) {
		t.Error("corner should be contained")
	}
	if r.Contains(Point{X: 3.01, Y: 4}) {
		t.Error("point right of rect should not be contained")
	}
}

func TestLayout_HitTest(t *testing.T) {
	l := Default()
	sx, sy := l.ScaleToFill(800, 300)
	if sx != 100 || sy != 100 {
		t.Fatalf("ScaleToFill = %v,%v, want 100,100", sx, sy)
	}

	tests := []struct {
		name string
		p    Point
		want int
		ok   bool
	}{
		{"player A first pit", Point{X: 150, Y: 250}, 0, true},
		{"player A last pit", Point{X: 650, Y: 250}, 5, true},
		{"store A", Point{X: 750, Y: 150}, 6, true},
		{"player B first pit", Point{X: 650, Y: 50}, 7, true},
		{"player B last pit", Point{X: 150, Y: 50}, 12, true},
		{"store B", Point{X: 50, Y: 150}, 13, true},
		{"middle gap", Point{X: 400, Y: 150}, -1, false},
		{"outside", Point{X: 900, Y: 150}, -1, false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := l.HitTest(tt.p, sx, sy)
			if got != tt.want || ok != tt.ok {
				t.Errorf("HitTest(%+v) = %d,%v, want %d,%v", tt.p, got, ok, tt.want, tt.ok)
			}
		})
	}
}

func TestLayout_CellsCopy(t *testing.T) {
	l := Default()
	cells := l.Cells()
	cells[0] = R(0, 0, 0, 0)
	if l.Cell(0) != R(1, 2, 2, 3) {
		t.Error("Cells() must return a copy")
	}
}
