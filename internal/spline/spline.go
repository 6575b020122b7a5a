package spline

import (
	"github.com/unixpickle/model3d/model3d"
)

// CatmullRom samples a Catmull-Rom curve passing through every given point.
//
// The first & last points are duplicated as phantom context points so the
// curve starts / ends exactly on them without any overshoot. For n points we
// return samples*(n-1)+1 points; fewer than two points are returned as is.
//
// Rendering, clearance checks & candidate search all sample roads through
// here, so the result must only ever depend on the inputs.
func CatmullRom(points []model3d.Coord3D, samples int) []model3d.Coord3D {
	n := len(points)
	if n < 2 {
		return append([]model3d.Coord3D{}, points...)
	}
	if samples < 0 {
		samples = 0
	}

	result := make([]model3d.Coord3D, 0, samples*(n-1)+1)
	for i := 0; i < n-1; i++ {
		p0 := points[0]
		if i > 0 {
			p0 = points[i-1]
		}
		p1 := points[i]
		p2 := points[i+1]
		p3 := points[n-1]
		if i+2 < n {
			p3 = points[i+2]
		}

		for s := 0; s < samples; s++ {
			t := float64(s) / float64(samples)
			result = append(result, point(p0, p1, p2, p3, t))
		}
	}

	return append(result, points[n-1])
}

// point evaluates the span p1 -> p2 at t in [0,1) with p0, p3 as context.
func point(p0, p1, p2, p3 model3d.Coord3D, t float64) model3d.Coord3D {
	t2 := t * t
	t3 := t2 * t

	blend := func(a, b, c, d float64) float64 {
		return 0.5 * (2*b +
			(-a+c)*t +
			(2*a-5*b+4*c-d)*t2 +
			(-a+3*b-3*c+d)*t3)
	}

	return model3d.Coord3D{
		X: blend(p0.X, p1.X, p2.X, p3.X),
		Y: blend(p0.Y, p1.Y, p2.Y, p3.Y),
		Z: blend(p0.Z, p1.Z, p2.Z, p3.Z),
	}
}
