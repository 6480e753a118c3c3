package atlas

// shelfPacker implements shelf-based rectangle packing for glyph bitmaps.
//
// Rectangles are organized in horizontal shelves. Each shelf has a fixed
// height (the tallest item placed so far); new items go left-to-right on a
// shelf until no space remains, then a new shelf starts below. Simple and
// fast, and well suited to the near-uniform sizes of monospace glyphs.
type shelfPacker struct {
	width   int
	height  int
	padding int
	shelves []shelf

	usedArea int
}

// shelf is a horizontal strip in the atlas.
type shelf struct {
	y      int // Y position of shelf top
	height int // height of the shelf (tallest item so far)
	x      int // current X position (next free slot)
}

// newShelfPacker creates a packer for the given dimensions.
func newShelfPacker(width, height, padding int) *shelfPacker {
	return &shelfPacker{
		width:   width,
		height:  height,
		padding: padding,
		shelves: make([]shelf, 0, 16),
	}
}

// allocate finds space for a rectangle of the given size.
// Returns the x, y position and true, or -1, -1, false when the atlas
// cannot hold the rectangle.
func (a *shelfPacker) allocate(w, h int) (x, y int, ok bool) {
	paddedW := w + a.padding
	paddedH := h + a.padding

	for i := range a.shelves {
		s := &a.shelves[i]

		if s.x+paddedW > a.width {
			continue
		}

		if h > s.height {
			// Taller than the shelf. Extending is only possible on the
			// last shelf when there is room below it.
			if i == len(a.shelves)-1 {
				if s.y+paddedH <= a.height {
					s.height = h
					x, y = s.x, s.y
					s.x += paddedW
					a.usedArea += w * h
					return x, y, true
				}
			}
			continue
		}

		x, y = s.x, s.y
		s.x += paddedW
		a.usedArea += w * h
		return x, y, true
	}

	// No existing shelf works; start a new one.
	newY := 0
	if len(a.shelves) > 0 {
		last := a.shelves[len(a.shelves)-1]
		newY = last.y + last.height + a.padding
	}
	if newY+paddedH > a.height {
		return -1, -1, false
	}

	a.shelves = append(a.shelves, shelf{y: newY, height: h, x: paddedW})
	a.usedArea += w * h
	return 0, newY, true
}

// reset clears all allocations so the packer can be reused after a
// font or size change.
func (a *shelfPacker) reset() {
	a.shelves = a.shelves[:0]
	a.usedArea = 0
}

// utilization returns the fraction of atlas area in use, for diagnostics.
func (a *shelfPacker) utilization() float64 {
	if a.width <= 0 || a.height <= 0 {
		return 0
	}
	return float64(a.usedArea) / float64(a.width*a.height)
}
