// Package pdf implements the pagination canvas on top of fpdf.
//
// Barcodes are encoded as Code 128, rasterized at a fixed DPI, and placed
// at exactly the box the engine asks for; the symbology's natural aspect
// ratio is deliberately overridden so the bars fill the calibrated width.
package pdf

import (
	"bytes"
	"fmt"
	"image/png"
	"io"
	"os"
	"path/filepath"

	"codeberg.org/go-pdf/fpdf"
	"github.com/boombuler/barcode"
	"github.com/boombuler/barcode/code128"
)

// rasterDPI is the resolution barcodes are rasterized at before placement.
// 300 leaves comfortable headroom over the Code 128 module count for any
// realistic identifier length while keeping images small.
const rasterDPI = 300

// DocOptions carries the PDF document metadata.
type DocOptions struct {
	Title  string
	Author string
}

// Canvas renders label pages into a single PDF document. It holds the
// document exclusively for the duration of one run; no output exists until
// WriteFile or Output succeeds, so an aborted run leaves nothing behind.
type Canvas struct {
	doc *fpdf.Fpdf

	// registered maps identifiers to image names already registered with
	// the document, so repeated identifiers reuse one raster.
	registered map[string]string
}

// NewCanvas creates a canvas on a US Letter portrait document measured in
// inches.
func NewCanvas(opts DocOptions) *Canvas {
	doc := fpdf.New("P", "in", "Letter", "")
	doc.SetAutoPageBreak(false, 0)
	doc.SetMargins(0, 0, 0)
	doc.SetTitle(opts.Title, true)
	doc.SetAuthor(opts.Author, true)
	doc.SetCreator("labelforge", true)
	return &Canvas{
		doc:        doc,
		registered: make(map[string]string),
	}
}

// StartPage opens a new page; every call after the first is a hard page
// break.
func (c *Canvas) StartPage() {
	c.doc.AddPage()
}

// Barcode draws id as Code 128 stretched to the given box. An identifier
// the symbology cannot encode is returned as an error, never substituted.
func (c *Canvas) Barcode(id string, x, y, w, h float64) error {
	name, ok := c.registered[id]
	if !ok {
		var err error
		if name, err = c.registerBarcode(id, w, h); err != nil {
			return err
		}
		c.registered[id] = name
	}
	opts := fpdf.ImageOptions{ImageType: "PNG"}
	c.doc.ImageOptions(name, x, y, w, h, false, opts, 0, "")
	return c.doc.Error()
}

// registerBarcode rasterizes id and registers the image with the document.
func (c *Canvas) registerBarcode(id string, w, h float64) (string, error) {
	code, err := code128.Encode(id)
	if err != nil {
		return "", fmt.Errorf("pdf: encode code128: %w", err)
	}
	scaled, err := barcode.Scale(code, int(w*rasterDPI), int(h*rasterDPI))
	if err != nil {
		return "", fmt.Errorf("pdf: scale code128: %w", err)
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, scaled); err != nil {
		return "", fmt.Errorf("pdf: rasterize code128: %w", err)
	}

	name := "code128/" + id
	c.doc.RegisterImageOptionsReader(name, fpdf.ImageOptions{ImageType: "PNG"}, &buf)
	if err := c.doc.Error(); err != nil {
		return "", fmt.Errorf("pdf: register barcode image: %w", err)
	}
	return name, nil
}

// CentredText draws text centered on x with its baseline at y. Size is in
// points.
func (c *Canvas) CentredText(text string, x, y, size float64, bold bool) {
	style := ""
	if bold {
		style = "B"
	}
	c.doc.SetFont("Helvetica", style, size)
	c.doc.Text(x-c.doc.GetStringWidth(text)/2, y, text)
}

// PageCount returns the number of pages emitted so far.
func (c *Canvas) PageCount() int {
	return c.doc.PageCount()
}

// Output writes the finished document to w and closes it.
func (c *Canvas) Output(w io.Writer) error {
	if err := c.doc.Output(w); err != nil {
		return fmt.Errorf("pdf: write document: %w", err)
	}
	return nil
}

// WriteFile writes the finished document to path, creating the parent
// directory if needed.
func (c *Canvas) WriteFile(path string) error {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("pdf: create output directory: %w", err)
		}
	}
	if err := c.doc.OutputFileAndClose(path); err != nil {
		return fmt.Errorf("pdf: write %s: %w", path, err)
	}
	return nil
}
