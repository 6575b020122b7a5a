package obb

import (
	"math"

	"github.com/golang/geo/r2"
	"github.com/unixpickle/model3d/model2d"
)

// Rect is an oriented rectangle on the ground plane.
// Coord.X is world X & Coord.Y is world Z. Rotation is in radians, the
// rectangle's local X axis points along (cos, sin).
type Rect struct {
	Center      model2d.Coord
	HalfExtents model2d.Coord
	Rotation    float64
}

// Axes returns the rectangle's local X & Y axes (unit length).
func (r Rect) Axes() [2]model2d.Coord {
	sin, cos := math.Sincos(r.Rotation)
	return [2]model2d.Coord{
		{X: cos, Y: sin},
		{X: -sin, Y: cos},
	}
}

// Corners returns the 4 corners, walking around the rectangle.
func (r Rect) Corners() [4]model2d.Coord {
	axes := r.Axes()
	dx := axes[0].Scale(r.HalfExtents.X)
	dy := axes[1].Scale(r.HalfExtents.Y)
	return [4]model2d.Coord{
		r.Center.Sub(dx).Sub(dy),
		r.Center.Add(dx).Sub(dy),
		r.Center.Add(dx).Add(dy),
		r.Center.Sub(dx).Add(dy),
	}
}

// Contains returns if p is inside (or on the edge of) the rectangle.
func (r Rect) Contains(p model2d.Coord) bool {
	d := p.Sub(r.Center)
	axes := r.Axes()
	return math.Abs(d.Dot(axes[0])) <= r.HalfExtents.X && math.Abs(d.Dot(axes[1])) <= r.HalfExtents.Y
}

// DistToSegment returns how far the line segment a->b comes from the
// rectangle, 0 if it touches or passes through it.
func (r Rect) DistToSegment(a, b model2d.Coord) float64 {
	la, lb := r.local(a), r.local(b)
	h := r.HalfExtents
	if clipsBox(la, lb, h) {
		return 0
	}

	// disjoint convex shapes: the closest pair is a vertex of one & an edge
	// of the other
	d := math.Min(boxDist(la, h), boxDist(lb, h))
	for _, c := range [4]model2d.Coord{{X: -h.X, Y: -h.Y}, {X: h.X, Y: -h.Y}, {X: h.X, Y: h.Y}, {X: -h.X, Y: h.Y}} {
		d = math.Min(d, segmentDist(c, la, lb))
	}
	return d
}

// Bounds returns the axis aligned box around the rectangle.
func (r Rect) Bounds() r2.Rect {
	c := r.Corners()
	return r2.RectFromPoints(toR2(c[0]), toR2(c[1]), toR2(c[2]), toR2(c[3]))
}

// Overlap returns if two rectangles overlap. Touching counts.
func Overlap(a, b Rect) bool {
	if !a.Bounds().Intersects(b.Bounds()) {
		return false
	}

	ca := a.Corners()
	cb := b.Corners()
	axesA := a.Axes()
	axesB := b.Axes()

	for _, axis := range [4]model2d.Coord{axesA[0], axesA[1], axesB[0], axesB[1]} {
		minA, maxA := project(ca, axis)
		minB, maxB := project(cb, axis)
		if maxA < minB || maxB < minA {
			return false
		}
	}
	return true
}

// BoundsOf returns the axis aligned box around some points.
func BoundsOf(pts []model2d.Coord) r2.Rect {
	if len(pts) == 0 {
		return r2.EmptyRect()
	}
	rp := make([]r2.Point, len(pts))
	for i, p := range pts {
		rp[i] = toR2(p)
	}
	return r2.RectFromPoints(rp...)
}

// local returns p in the rectangle's frame, centred on it
func (r Rect) local(p model2d.Coord) model2d.Coord {
	d := p.Sub(r.Center)
	axes := r.Axes()
	return model2d.XY(d.Dot(axes[0]), d.Dot(axes[1]))
}

// clipsBox returns if a->b touches the box [-h, h] (Liang-Barsky)
func clipsBox(a, b, h model2d.Coord) bool {
	d := b.Sub(a)
	t0, t1 := 0.0, 1.0
	for _, pq := range [4][2]float64{
		{-d.X, a.X + h.X},
		{d.X, h.X - a.X},
		{-d.Y, a.Y + h.Y},
		{d.Y, h.Y - a.Y},
	} {
		p, q := pq[0], pq[1]
		if p == 0 {
			if q < 0 {
				return false
			}
			continue
		}
		t := q / p
		if p < 0 {
			if t > t1 {
				return false
			}
			t0 = math.Max(t0, t)
		} else {
			if t < t0 {
				return false
			}
			t1 = math.Min(t1, t)
		}
	}
	return true
}

// boxDist returns the distance from p to the box [-h, h]
func boxDist(p, h model2d.Coord) float64 {
	dx := math.Max(math.Abs(p.X)-h.X, 0)
	dy := math.Max(math.Abs(p.Y)-h.Y, 0)
	return math.Hypot(dx, dy)
}

// segmentDist returns the distance from p to the line segment a->b
func segmentDist(p, a, b model2d.Coord) float64 {
	ab := b.Sub(a)
	l2 := ab.Dot(ab)
	if l2 == 0 {
		return p.Dist(a)
	}
	t := math.Max(0, math.Min(1, p.Sub(a).Dot(ab)/l2))
	return p.Dist(a.Add(ab.Scale(t)))
}

// project corners on to axis, returning the min & max
func project(corners [4]model2d.Coord, axis model2d.Coord) (float64, float64) {
	lo, hi := math.Inf(1), math.Inf(-1)
	for _, c := range corners {
		d := c.Dot(axis)
		lo = math.Min(lo, d)
		hi = math.Max(hi, d)
	}
	return lo, hi
}

// toR2 converts between coordinate types
func toR2(c model2d.Coord) r2.Point {
	return r2.Point{X: c.X, Y: c.Y}
}
