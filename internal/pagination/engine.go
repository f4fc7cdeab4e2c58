// Package pagination packs an ordered stream of label records onto fixed
// 30-cell sheets and drives page emission through a Canvas.
//
// The engine is single threaded and processes records strictly in input
// order: output must land on a row-major physical grid, so any reordering
// would desynchronize the document from the die-cut sheet.
package pagination

import (
	"fmt"

	"github.com/arqlabs/labelforge/internal/input"
	"github.com/arqlabs/labelforge/pkg/sheet"
)

// Header layout, measured from the top of the page.
const (
	headerLine1Y    = 0.29
	headerLine2Y    = 0.42
	headerFontSize  = 8
	sourceFontSize  = 7
	idFontSize      = 6
	instructionSize = 5.5
)

// Options toggles the optional text drawn per page and per label.
type Options struct {
	Header      bool
	IDText      bool
	Instruction bool

	// HeaderText is the fixed instructional line of the page header; the
	// second header line names the current source file.
	HeaderText string
	// InstructionText is drawn beneath each barcode when Instruction is set.
	InstructionText string
}

// DefaultOptions enables all text with the standard ARQ wording.
func DefaultOptions() Options {
	return Options{
		Header:          true,
		IDText:          true,
		Instruction:     true,
		HeaderText:      "One barcode per Tasso foil pouch. To be scanned via the ARQ app.",
		InstructionText: "scan in ARQ app after taking blood sample",
	}
}

// Summary reports what a run emitted.
type Summary struct {
	Pages  int
	Labels int
}

// pageState tracks how far the current page has been filled.
type pageState int

const (
	stateFreshPage pageState = iota // nothing placed on the current page yet
	stateFilling                    // some cells placed, some free
	stateFull                       // every cell placed; next record flushes
)

// cursor is the engine's only mutable state. It is reset to a fresh page on
// every flush and discarded when the run completes.
type cursor struct {
	state  pageState
	slot   int    // next free cell index on the current page
	source string // source of the most recently placed record
}

// Engine lays label records out on pages. One engine drives one canvas at a
// time; the canvas must not be shared with concurrent callers.
type Engine struct {
	geo  sheet.Geometry
	opts Options
}

// NewEngine creates an engine for the given sheet geometry.
func NewEngine(geo sheet.Geometry, opts Options) *Engine {
	return &Engine{geo: geo, opts: opts}
}

// Run places every record on the canvas in input order and returns emission
// totals. Zero records is not an error: the canvas is never touched and the
// summary reports zero pages.
//
// A page is only ever flushed by index wraparound (all cells placed). In
// particular, a new source file arriving while the current page still has
// free cells keeps filling that page; its header is redrawn in place but no
// page break happens. This keeps multi-file batches from wasting label
// stock on trailing part-empty sheets.
//
// A barcode the canvas cannot encode aborts the whole run; the error names
// the identifier and its source file, and nothing placed so far is to be
// treated as valid output.
func (e *Engine) Run(canvas Canvas, records []input.Record) (Summary, error) {
	var sum Summary
	cur := cursor{state: stateFreshPage}

	for _, rec := range records {
		if cur.state == stateFull {
			cur = cursor{state: stateFreshPage, source: cur.source}
		}

		switch cur.state {
		case stateFreshPage:
			canvas.StartPage()
			sum.Pages++
			cur.slot = 0
			if e.opts.Header {
				e.drawHeader(canvas, rec.Source)
			}
			cur.source = rec.Source
		case stateFilling:
			if rec.Source != cur.source {
				if e.opts.Header {
					e.drawHeader(canvas, rec.Source)
				}
				cur.source = rec.Source
			}
		}

		if err := e.placeLabel(canvas, rec, cur.slot); err != nil {
			return Summary{}, err
		}
		sum.Labels++

		cur.slot++
		if cur.slot == e.geo.LabelsPerPage() {
			cur.state = stateFull
		} else {
			cur.state = stateFilling
		}
	}

	return sum, nil
}

// drawHeader draws the two centered header lines for the given source.
// It is called at most once per page start and once per mid-page source
// change, never per record.
func (e *Engine) drawHeader(canvas Canvas, source string) {
	centerX := e.geo.PageWidth / 2
	canvas.CentredText(e.opts.HeaderText, centerX, headerLine1Y, headerFontSize, true)
	canvas.CentredText("Source: "+source, centerX, headerLine2Y, sourceFontSize, false)
}

// placeLabel renders one record into the cell at slot.
func (e *Engine) placeLabel(canvas Canvas, rec input.Record, slot int) error {
	cell := e.geo.Cell(slot)

	x, y, w, h := e.geo.BarcodeBox(cell)
	if err := canvas.Barcode(rec.Identifier, x, y, w, h); err != nil {
		return fmt.Errorf("pagination: barcode %q from %s: %w", rec.Identifier, rec.Source, err)
	}

	if e.opts.IDText {
		tx, ty := e.geo.IDTextBaseline(cell)
		canvas.CentredText(rec.Identifier, tx, ty, idFontSize, false)
	}
	if e.opts.Instruction {
		tx, ty := e.geo.InstructionBaseline(cell)
		canvas.CentredText(e.opts.InstructionText, tx, ty, instructionSize, false)
	}
	return nil
}
