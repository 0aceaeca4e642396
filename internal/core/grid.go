package core

// Area returns the number of cells covered by the size.
func (s Size) Area() int {
	if s.W <= 0 || s.H <= 0 {
		return 0
	}
	return s.W * s.H
}

// Contains reports whether (x, y) lies inside the half-open rectangle
// [0, W) x [0, H).
func (s Size) Contains(x, y int) bool {
	return x >= 0 && y >= 0 && x < s.W && y < s.H
}

// Index returns the row-major slice index for coordinates (x, y).
func (s Size) Index(x, y int) int { return y*s.W + x }

// Clamp pulls (x, y) onto the nearest in-bounds coordinate.
func (s Size) Clamp(x, y int) (int, int) {
	x = min(max(x, 0), max(s.W-1, 0))
	y = min(max(y, 0), max(s.H-1, 0))
	return x, y
}
