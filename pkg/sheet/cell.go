package sheet

// Cell is the absolute page-space rectangle of one label slot.
type Cell struct {
	Row, Col int
	X, Y     float64
	Width    float64
	Height   float64
}

// Cell maps a flat label index to its rectangle. Fill order is row-major:
// left to right, then top to bottom, so a given index always lands on the
// same physical label across runs. The index is taken modulo the page
// capacity; cell coordinates are page-relative and identical on every page.
func (g Geometry) Cell(idx int) Cell {
	idx %= g.LabelsPerPage()
	row := idx / g.Cols
	col := idx % g.Cols
	return Cell{
		Row:    row,
		Col:    col,
		X:      g.LeftMargin + float64(col)*(g.CellWidth+g.ColGap),
		Y:      g.TopMargin + float64(row)*(g.CellHeight+g.RowGap),
		Width:  g.CellWidth,
		Height: g.CellHeight,
	}
}

// BarcodeBox returns the placement rectangle for the bar pattern inside a
// cell. The width is the fixed inset width (cell width minus two side
// margins), not the symbology's natural width. Horizontally the box is
// centered and then moved left by the calibration shift; vertically it is
// centered with a small upward bias so the text below it fits.
func (g Geometry) BarcodeBox(c Cell) (x, y, w, h float64) {
	w = c.Width - 2*g.SideMargin
	h = g.BarcodeHeight
	x = c.X + (c.Width-w)/2 - g.BarcodeShift
	y = c.Y + (c.Height-h)/2 - 0.05
	return x, y, w, h
}

// IDTextBaseline returns the center x and baseline y for the identifier
// small print directly beneath the barcode.
func (g Geometry) IDTextBaseline(c Cell) (x, y float64) {
	_, by, _, bh := g.BarcodeBox(c)
	return c.X + c.Width/2, by + bh + 0.08
}

// InstructionBaseline returns the center x and baseline y for the
// instruction line at the bottom of the cell.
func (g Geometry) InstructionBaseline(c Cell) (x, y float64) {
	return c.X + c.Width/2, c.Y + c.Height - 0.05
}
