package line

import (
	"image"
)

// PointsBetween returns all points on a line between a,b (inclusive),
// starting at a.
func PointsBetween(a, b image.Point) []image.Point {
	pts := []image.Point{}
	bresenham(a.X, a.Y, b.X, b.Y, func(x, y int) {
		pts = append(pts, image.Pt(x, y))
	})
	return pts
}

// Polyline returns all points along a path of joined lines. Points shared by
// consecutive lines are only returned once.
func Polyline(path []image.Point) []image.Point {
	if len(path) == 0 {
		return nil
	}
	pts := []image.Point{path[0]}
	for i := 1; i < len(path); i++ {
		if path[i] == path[i-1] {
			continue
		}
		pts = append(pts, PointsBetween(path[i-1], path[i])[1:]...)
	}
	return pts
}
