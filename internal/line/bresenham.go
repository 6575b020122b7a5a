package line

// plotFunc is called for each pixel on a line
type plotFunc func(x, y int)

// bresenham walks the integer line from (x1,y1) to (x2,y2) inclusive, in
// that order, calling plot once per pixel. Works for every octant.
func bresenham(x1, y1, x2, y2 int, plot plotFunc) {
	dx := abs(x2 - x1)
	dy := -abs(y2 - y1)

	sx, sy := 1, 1
	if x1 > x2 {
		sx = -1
	}
	if y1 > y2 {
		sy = -1
	}

	e := dx + dy
	for {
		plot(x1, y1)
		if x1 == x2 && y1 == y2 {
			return
		}
		e2 := 2 * e
		if e2 >= dy {
			e += dy
			x1 += sx
		}
		if e2 <= dx {
			e += dx
			y1 += sy
		}
	}
}

// abs of an int
func abs(i int) int {
	if i < 0 {
		return -i
	}
	return i
}
