package term

// Buffer is an in-memory Grid implementation. It backs tests and the demo,
// and can serve as a staging grid for terminal emulators that do not expose
// their own cell storage.
type Buffer struct {
	cols, rows int
	cells      []Cell
	cursor     Cursor
	scroll     int
}

// NewBuffer creates an empty cols x rows buffer. Dimensions are clamped
// to at least 1x1.
func NewBuffer(cols, rows int) *Buffer {
	cols = max(cols, 1)
	rows = max(rows, 1)
	return &Buffer{
		cols:  cols,
		rows:  rows,
		cells: make([]Cell, cols*rows),
	}
}

// Size returns the grid dimensions.
func (b *Buffer) Size() (cols, rows int) {
	return b.cols, b.rows
}

// CellAt returns the cell at (col, row), or the zero Cell out of range.
func (b *Buffer) CellAt(col, row int) Cell {
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return Cell{}
	}
	return b.cells[row*b.cols+col]
}

// SetCell stores a cell. Out-of-range positions are ignored.
func (b *Buffer) SetCell(col, row int, c Cell) {
	if col < 0 || col >= b.cols || row < 0 || row >= b.rows {
		return
	}
	b.cells[row*b.cols+col] = c
}

// WriteString writes s starting at (col, row) with the given colors and
// style. Writing stops at the end of the row; there is no wrapping.
// Returns the column after the last written cell.
func (b *Buffer) WriteString(col, row int, s string, fg, bg CellColor, style Style) int {
	for _, r := range s {
		if col >= b.cols {
			break
		}
		b.SetCell(col, row, Cell{Rune: r, FG: fg, BG: bg, Style: style})
		col++
	}
	return col
}

// Clear resets every cell to the zero Cell.
func (b *Buffer) Clear() {
	for i := range b.cells {
		b.cells[i] = Cell{}
	}
}

// Resize reallocates the grid, preserving the overlapping region.
func (b *Buffer) Resize(cols, rows int) {
	cols = max(cols, 1)
	rows = max(rows, 1)
	if cols == b.cols && rows == b.rows {
		return
	}
	cells := make([]Cell, cols*rows)
	for row := 0; row < min(rows, b.rows); row++ {
		copy(cells[row*cols:row*cols+min(cols, b.cols)],
			b.cells[row*b.cols:row*b.cols+min(cols, b.cols)])
	}
	b.cols, b.rows, b.cells = cols, rows, cells
	if b.cursor.Col >= cols {
		b.cursor.Col = cols - 1
	}
	if b.cursor.Row >= rows {
		b.cursor.Row = rows - 1
	}
}

// Cursor returns the cursor state.
func (b *Buffer) Cursor() Cursor {
	return b.cursor
}

// SetCursor positions the cursor.
func (b *Buffer) SetCursor(col, row int, visible bool) {
	b.cursor = Cursor{Col: col, Row: row, Visible: visible}
}

// ScrollOffset returns the scrollback offset (0 = live bottom).
func (b *Buffer) ScrollOffset() int {
	return b.scroll
}

// SetScrollOffset sets the scrollback offset. Negative values clamp to 0.
func (b *Buffer) SetScrollOffset(n int) {
	b.scroll = max(n, 0)
}
