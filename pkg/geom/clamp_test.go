package geom

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestClamp(t *testing.T) {
	b := &Bounds{Width: 200, Height: 200}

	tests := []struct {
		name string
		in   Geometry
		want Geometry
	}{
		{
			name: "past bottom right",
			in:   Geometry{Top: 150, Left: 150, Width: 100, Height: 100},
			want: Geometry{Top: 100, Left: 100, Width: 100, Height: 100},
		},
		{
			name: "negative offsets",
			in:   Geometry{Top: -20, Left: -5, Width: 50, Height: 50},
			want: Geometry{Top: 0, Left: 0, Width: 50, Height: 50},
		},
		{
			name: "already inside",
			in:   Geometry{Top: 10, Left: 30, Width: 40, Height: 40},
			want: Geometry{Top: 10, Left: 30, Width: 40, Height: 40},
		},
		{
			name: "exactly touching edges",
			in:   Geometry{Top: 100, Left: 100, Width: 100, Height: 100},
			want: Geometry{Top: 100, Left: 100, Width: 100, Height: 100},
		},
		{
			name: "larger than container",
			in:   Geometry{Top: 0, Left: 10, Width: 300, Height: 250},
			want: Geometry{Top: -50, Left: -100, Width: 300, Height: 250},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Clamp(tt.in, b)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("Clamp() mismatch (-want +got):\n%s", diff)
			}
		})
	}
}

func TestClampNilBounds(t *testing.T) {
	g := Geometry{Top: -40, Left: 9000, Width: 12, Height: 7}
	if got := Clamp(g, nil); got != g {
		t.Errorf("Clamp(g, nil) = %v, want %v", got, g)
	}
}

func TestClampIdempotent(t *testing.T) {
	values := []float64{-150, -1, 0, 0.5, 50, 99, 100, 180, 400}
	sizes := []float64{1, 40, 100, 250}
	bounds := []Bounds{{Width: 200, Height: 200}, {Width: 120, Height: 80}, {Width: 1, Height: 1}}

	for _, b := range bounds {
		for _, top := range values {
			for _, left := range values {
				for _, size := range sizes {
					g := Geometry{Top: top, Left: left, Width: size, Height: size / 2}
					once := Clamp(g, &b)
					twice := Clamp(once, &b)
					if once != twice {
						t.Fatalf("Clamp not idempotent for %v in %v: %v then %v", g, b, once, twice)
					}
				}
			}
		}
	}
}

func TestClampContainment(t *testing.T) {
	b := Bounds{Width: 300, Height: 160}
	values := []float64{-500, -3, 0, 42, 150, 299, 1000}

	for _, top := range values {
		for _, left := range values {
			g := Geometry{Top: top, Left: left, Width: 120, Height: 60}
			got := Clamp(g, &b)
			if got.Top < 0 || got.Top > b.Height-got.Height {
				t.Errorf("Clamp(%v).Top = %g out of [0, %g]", g, got.Top, b.Height-got.Height)
			}
			if got.Left < 0 || got.Left > b.Width-got.Width {
				t.Errorf("Clamp(%v).Left = %g out of [0, %g]", g, got.Left, b.Width-got.Width)
			}
			if !got.Inside(b) {
				t.Errorf("Clamp(%v) = %v not inside %v", g, got, b)
			}
		}
	}
}

func TestCapSize(t *testing.T) {
	b := &Bounds{Width: 200, Height: 200}

	tests := []struct {
		name      string
		in        Geometry
		top, left float64
		want      Geometry
	}{
		{
			name: "fits",
			in:   Geometry{Width: 80, Height: 80},
			top:  10, left: 10,
			want: Geometry{Width: 80, Height: 80},
		},
		{
			name: "overflows both edges",
			in:   Geometry{Width: 180, Height: 150},
			top:  100, left: 50,
			want: Geometry{Width: 150, Height: 100},
		},
		{
			name: "uses anchor not proposed position",
			in:   Geometry{Top: 0, Left: 0, Width: 120, Height: 120},
			top:  150, left: 150,
			want: Geometry{Top: 0, Left: 0, Width: 50, Height: 50},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := CapSize(tt.in, tt.top, tt.left, b)
			if diff := cmp.Diff(tt.want, got); diff != "" {
				t.Errorf("CapSize() mismatch (-want +got):\n%s", diff)
			}
		})
	}

	g := Geometry{Width: 900, Height: 900}
	if got := CapSize(g, 50, 50, nil); got != g {
		t.Errorf("CapSize(g, nil) = %v, want %v", got, g)
	}
}

func TestGeometryContains(t *testing.T) {
	g := Geometry{Top: 10, Left: 20, Width: 30, Height: 40}

	tests := []struct {
		x, y float64
		want bool
	}{
		{20, 10, true},
		{49.9, 49.9, true},
		{50, 20, false},
		{25, 50, false},
		{19, 20, false},
	}
	for _, tt := range tests {
		if got := g.Contains(tt.x, tt.y); got != tt.want {
			t.Errorf("Contains(%g, %g) = %v, want %v", tt.x, tt.y, got, tt.want)
		}
	}
}
