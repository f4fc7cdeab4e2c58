// Package sheet models the physical label sheet as a fixed grid of cells.
//
// All dimensions are in inches. Coordinates use the PDF page convention of
// this repository: origin at the top-left corner of the page, y growing
// downward. Every placement computed here and in the pagination engine
// follows that convention.
package sheet

import (
	"fmt"
)

// Geometry describes a die-cut label sheet and the barcode calibration
// constants for it. It is constructed once at startup and passed by value;
// nothing mutates it afterwards.
type Geometry struct {
	PageWidth  float64 `toml:"page_width"`
	PageHeight float64 `toml:"page_height"`

	Rows int `toml:"rows"`
	Cols int `toml:"cols"`

	CellWidth  float64 `toml:"cell_width"`
	CellHeight float64 `toml:"cell_height"`

	// Offsets from the page edges to the first cell.
	LeftMargin float64 `toml:"left_margin"`
	TopMargin  float64 `toml:"top_margin"`

	// Gaps between adjacent cells.
	ColGap float64 `toml:"col_gap"`
	RowGap float64 `toml:"row_gap"`

	// SideMargin is the inset on each side of a cell that fixes the target
	// barcode width; the symbology is stretched to cell width minus twice
	// this value regardless of its natural aspect ratio.
	SideMargin    float64 `toml:"side_margin"`
	BarcodeHeight float64 `toml:"barcode_height"`

	// BarcodeShift is the calibration correction applied after centering:
	// the bar pattern is moved this far toward the left edge so printed
	// output lines up with the die cuts.
	BarcodeShift float64 `toml:"barcode_shift"`
}

// Avery5160 returns the geometry for a 30-label Avery 5160 sheet on US
// Letter. The shift and margin values were calibrated against printed
// sheets.
func Avery5160() Geometry {
	return Geometry{
		PageWidth:  8.5,
		PageHeight: 11.0,

		Rows: 10,
		Cols: 3,

		CellWidth:  2.625,
		CellHeight: 1.0,

		LeftMargin: 0.05,
		TopMargin:  0.5,

		ColGap: 0.125, // 2.75in horizontal pitch
		RowGap: 0,     // cells stack edge to edge vertically

		SideMargin:    0.138, // ~3.5mm
		BarcodeHeight: 0.4,
		BarcodeShift:  0.157, // ~4mm left of geometric center
	}
}

// LabelsPerPage returns the number of cells on one sheet.
func (g Geometry) LabelsPerPage() int {
	return g.Rows * g.Cols
}

// Validate checks that the grid tiles the page without overlap or overflow.
func (g Geometry) Validate() error {
	if g.Rows <= 0 || g.Cols <= 0 {
		return fmt.Errorf("sheet: grid must have positive dimensions, got %dx%d", g.Rows, g.Cols)
	}
	if g.CellWidth <= 0 || g.CellHeight <= 0 {
		return fmt.Errorf("sheet: cell must have positive dimensions, got %.3fx%.3f", g.CellWidth, g.CellHeight)
	}
	if g.ColGap < 0 || g.RowGap < 0 {
		return fmt.Errorf("sheet: cell gaps must not be negative")
	}
	usedWidth := g.LeftMargin + float64(g.Cols)*g.CellWidth + float64(g.Cols-1)*g.ColGap
	if usedWidth > g.PageWidth {
		return fmt.Errorf("sheet: %d columns need %.3fin, page is %.3fin wide", g.Cols, usedWidth, g.PageWidth)
	}
	usedHeight := g.TopMargin + float64(g.Rows)*g.CellHeight + float64(g.Rows-1)*g.RowGap
	if usedHeight > g.PageHeight {
		return fmt.Errorf("sheet: %d rows need %.3fin, page is %.3fin tall", g.Rows, usedHeight, g.PageHeight)
	}
	if 2*g.SideMargin >= g.CellWidth {
		return fmt.Errorf("sheet: side margin %.3fin leaves no barcode width in a %.3fin cell", g.SideMargin, g.CellWidth)
	}
	if g.BarcodeHeight <= 0 || g.BarcodeHeight > g.CellHeight {
		return fmt.Errorf("sheet: barcode height %.3fin does not fit a %.3fin cell", g.BarcodeHeight, g.CellHeight)
	}
	return nil
}
