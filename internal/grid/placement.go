package grid

// Placement and collision logic: pure functions over a Grid. None of them
// mutate the grid they are given.

// RectanglesOverlap reports whether two half-open rectangles interpenetrate.
// Rectangles that only share an edge are not overlapping.
func RectanglesOverlap(aPos Position, aSize Size, bPos Position, bSize Size) bool {
	return aPos.X < bPos.X+bSize.Width && bPos.X < aPos.X+aSize.Width &&
		aPos.Y < bPos.Y+bSize.Height && bPos.Y < aPos.Y+aSize.Height
}

// PointInRect reports half-open containment: the rectangle's own top-left
// corner is inside it, the opposite corner is not.
func PointInRect(pt Position, rectPos Position, rectSize Size) bool {
	return pt.X >= rectPos.X && pt.X < rectPos.X+rectSize.Width &&
		pt.Y >= rectPos.Y && pt.Y < rectPos.Y+rectSize.Height
}

// AreaWithinBounds reports whether the rectangle lies entirely inside a
// width×height grid. Pure arithmetic, no grid access.
func AreaWithinBounds(pos Position, size Size, width, height int) bool {
	return pos.X >= 0 && pos.Y >= 0 &&
		pos.X+size.Width <= width && pos.Y+size.Height <= height
}

// IsPlacementValid reports whether the footprint is fully in bounds and
// every covered tile is available.
func IsPlacementValid(g *Grid, pos Position, size Size) bool {
	w, h := g.Size()
	return AreaWithinBounds(pos, size, w, h) && g.IsAreaAvailable(pos, size)
}

// ValidPlacementsNear searches expanding Chebyshev rings around target for
// positions where the footprint fits. The search stops at the first ring
// that yields any hit; more distant rings are not examined. Returns nil if
// no ring up to maxDistance has a valid position.
func ValidPlacementsNear(g *Grid, target Position, size Size, maxDistance int) []Position {
	for d := 1; d <= maxDistance; d++ {
		var hits []Position
		for _, p := range ringPositions(target, d) {
			if IsPlacementValid(g, p, size) {
				hits = append(hits, p)
			}
		}
		if len(hits) > 0 {
			return hits
		}
	}
	return nil
}

// ringPositions enumerates the cells at Chebyshev distance d from c: the top
// and bottom rows first, then the left and right columns between them.
func ringPositions(c Position, d int) []Position {
	out := make([]Position, 0, 8*d)
	for dx := -d; dx <= d; dx++ {
		out = append(out, Position{X: c.X + dx, Y: c.Y - d})
		out = append(out, Position{X: c.X + dx, Y: c.Y + d})
	}
	for dy := -d + 1; dy <= d-1; dy++ {
		out = append(out, Position{X: c.X - d, Y: c.Y + dy})
		out = append(out, Position{X: c.X + d, Y: c.Y + dy})
	}
	return out
}

// ClosestValidPlacement runs the ring search and picks the Manhattan-closest
// hit. Ties break by encounter order — callers must not assume a directional
// preference among equidistant candidates.
func ClosestValidPlacement(g *Grid, target Position, size Size, maxDistance int) (Position, bool) {
	candidates := ValidPlacementsNear(g, target, size, maxDistance)
	if len(candidates) == 0 {
		return Position{}, false
	}
	best := candidates[0]
	bestDist := manhattan(target, best)
	for _, p := range candidates[1:] {
		if d := manhattan(target, p); d < bestDist {
			best, bestDist = p, d
		}
	}
	return best, true
}

func manhattan(a, b Position) int {
	return abs(a.X-b.X) + abs(a.Y-b.Y)
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// LinePositions rasterizes the straight line between a and b with integer
// Bresenham. Both endpoints appear exactly once and consecutive positions
// are 8-connected. The walk runs in a canonical direction so that both
// argument orders produce the same set of cells.
func LinePositions(a, b Position) []Position {
	if b.Y < a.Y || (b.Y == a.Y && b.X < a.X) {
		pts := rasterize(b, a)
		for i, j := 0, len(pts)-1; i < j; i, j = i+1, j-1 {
			pts[i], pts[j] = pts[j], pts[i]
		}
		return pts
	}
	return rasterize(a, b)
}

func rasterize(a, b Position) []Position {
	x, y := a.X, a.Y
	dx := abs(b.X - a.X)
	dy := -abs(b.Y - a.Y)
	sx, sy := 1, 1
	if a.X > b.X {
		sx = -1
	}
	if a.Y > b.Y {
		sy = -1
	}
	err := dx + dy

	out := make([]Position, 0, dx-dy+1)
	for {
		out = append(out, Position{X: x, Y: y})
		if x == b.X && y == b.Y {
			return out
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

// PathClear reports whether every tile on the line from start to end is
// walkable. Out-of-bounds tiles read as not walkable, so a line leaving the
// grid is never clear.
func PathClear(g *Grid, start, end Position) bool {
	for _, p := range LinePositions(start, end) {
		if !g.IsWalkable(p) {
			return false
		}
	}
	return true
}

// WouldBlockPaths simulates the placement on a copy of the grid — the
// footprint's tiles become unwalkable and unbuildable — and reports whether
// any consecutive waypoint pair of any supplied path loses clearance. The
// real grid is never mutated.
func WouldBlockPaths(g *Grid, pos Position, size Size, paths [][]Position) bool {
	sim := g.Clone()
	for y := pos.Y; y < pos.Y+size.Height; y++ {
		for x := pos.X; x < pos.X+size.Width; x++ {
			p := Position{X: x, Y: y}
			if sim.InBounds(p) {
				sim.tiles[y][x].Walkable = false
				sim.tiles[y][x].Buildable = false
			}
		}
	}
	for _, path := range paths {
		for i := 0; i+1 < len(path); i++ {
			if !PathClear(sim, path[i], path[i+1]) {
				return true
			}
		}
	}
	return false
}
