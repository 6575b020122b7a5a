package spline

import (
	"math"
	"testing"

	"github.com/unixpickle/model3d/model3d"
)

func TestCatmullRomLength(t *testing.T) {
	cases := []struct {
		name    string
		points  int
		samples int
		want    int
	}{
		{"two points", 2, 4, 5},
		{"three points", 3, 4, 9},
		{"five points dense", 5, 16, 65},
		{"single sample", 4, 1, 4},
		{"zero samples", 3, 0, 1},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			pts := make([]model3d.Coord3D, tc.points)
			for i := range pts {
				pts[i] = model3d.XYZ(float64(i)*10, float64(i), float64(i*i))
			}
			got := CatmullRom(pts, tc.samples)
			if len(got) != tc.want {
				t.Fatalf("expected %d samples, got %d", tc.want, len(got))
			}
		})
	}
}

func TestCatmullRomEndpointsExact(t *testing.T) {
	pts := []model3d.Coord3D{
		model3d.XYZ(-12.5, 3, 7.25),
		model3d.XYZ(0, 4, 20),
		model3d.XYZ(30, 2.5, 18),
		model3d.XYZ(41.75, 1, -3.5),
	}
	got := CatmullRom(pts, 8)

	if got[0] != pts[0] {
		t.Errorf("first sample %v != first point %v", got[0], pts[0])
	}
	if got[len(got)-1] != pts[len(pts)-1] {
		t.Errorf("last sample %v != last point %v", got[len(got)-1], pts[len(pts)-1])
	}
}

func TestCatmullRomPassesThroughInteriorPoints(t *testing.T) {
	pts := []model3d.Coord3D{
		model3d.XYZ(0, 0, 0),
		model3d.XYZ(10, 0, 5),
		model3d.XYZ(20, 0, -5),
		model3d.XYZ(30, 0, 0),
	}
	k := 6
	got := CatmullRom(pts, k)

	for i, p := range pts {
		s := got[i*k]
		if s.Dist(p) > 1e-9 {
			t.Errorf("sample %d = %v, expected control point %v", i*k, s, p)
		}
	}
}

func TestCatmullRomStraightLine(t *testing.T) {
	pts := []model3d.Coord3D{model3d.XYZ(0, 0, 0), model3d.XYZ(100, 0, 0)}
	got := CatmullRom(pts, 4)

	// duplicated endpoints ease in & out so spacing is uneven, but the
	// curve must stay on the line & keep moving forward
	prev := math.Inf(-1)
	for i, p := range got {
		if p.Y != 0 || p.Z != 0 {
			t.Errorf("sample %d = %v, left the line", i, p)
		}
		if p.X <= prev || p.X < 0 || p.X > 100 {
			t.Errorf("sample %d X=%.3f not increasing within [0,100]", i, p.X)
		}
		prev = p.X
	}
}

func TestCatmullRomDeterministic(t *testing.T) {
	pts := []model3d.Coord3D{
		model3d.XYZ(1.1, 2.2, 3.3),
		model3d.XYZ(4.4, 5.5, 6.6),
		model3d.XYZ(-7.7, 8.8, 9.9),
	}
	a := CatmullRom(pts, 16)
	b := CatmullRom(pts, 16)

	for i := range a {
		if a[i] != b[i] {
			t.Fatalf("sample %d differs between runs: %v vs %v", i, a[i], b[i])
		}
	}
}

func TestCatmullRomTooFewPoints(t *testing.T) {
	if got := CatmullRom(nil, 4); len(got) != 0 {
		t.Errorf("expected no samples for nil input, got %d", len(got))
	}

	one := []model3d.Coord3D{model3d.XYZ(1, 2, 3)}
	got := CatmullRom(one, 4)
	if len(got) != 1 || got[0] != one[0] {
		t.Errorf("expected single point returned unchanged, got %v", got)
	}

	got[0] = model3d.XYZ(9, 9, 9)
	if one[0] != model3d.XYZ(1, 2, 3) {
		t.Errorf("returned slice aliases the input")
	}
}
