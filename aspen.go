package aspen

// Cell addresses one chip within the grid's chipset list.
// Chip < 0 means the cell is authored but empty (renders as cleared pixels).
// Set < 0 means the cell has no chipset binding at all and is skipped.
type Cell struct {
	Set  int // index into the grid's chipset list
	Chip int // flat chip index within the chipset's sheet
}

// EmptyCell is a cell with no chipset binding. Cells at this value are
// skipped entirely during rendering.
var EmptyCell = Cell{Set: -1, Chip: -1}

// shadowSentinel is outside the range of any authorable cell value, so a
// shadow slot holding it never compares equal to a real cell.
const shadowSentinel = -1 << 30

// shadowNone marks a shadow slot with no recorded render. Every slot starts
// here and returns here when its cell is explicitly invalidated.
var shadowNone = Cell{Set: shadowSentinel, Chip: shadowSentinel}

// Rect is an axis-aligned rectangle. The coordinate system has its origin at
// the top-left, with Y increasing downward.
type Rect struct {
	X, Y, Width, Height float64
}

// Contains reports whether the point (x, y) lies inside the rectangle.
// Points on the edge are considered inside.
func (r Rect) Contains(x, y float64) bool {
	return x >= r.X && x <= r.X+r.Width &&
		y >= r.Y && y <= r.Y+r.Height
}

// Intersects reports whether r and other overlap.
// Adjacent rectangles (sharing only an edge) are considered intersecting.
func (r Rect) Intersects(other Rect) bool {
	return r.X <= other.X+other.Width &&
		r.X+r.Width >= other.X &&
		r.Y <= other.Y+other.Height &&
		r.Y+r.Height >= other.Y
}
