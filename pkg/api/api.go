// Package api is the public surface of labelforge: it wires the CSV input
// collaborator, the pagination engine, and the PDF canvas into one
// generation call.
package api

import (
	"errors"
	"fmt"
	"io"

	"github.com/arqlabs/labelforge/internal/input"
	"github.com/arqlabs/labelforge/internal/pagination"
	"github.com/arqlabs/labelforge/internal/render/pdf"
)

// ErrNoRecords reports a run whose inputs resolved and parsed but contained
// no printable records. No output file is created for such a run.
var ErrNoRecords = errors.New("api: no label records to print")

// Record is one label to print. Identifier is the barcode payload; Source
// is the display name of the originating file, used for page headers.
type Record struct {
	Identifier string
	Source     string
}

// Summary reports what a generation run produced.
type Summary struct {
	Pages   int // pages in the output document; each page is one sticker sheet
	Labels  int // barcodes placed
	Skipped int // CSV rows dropped for lacking an identifier value
	Files   int // input files read
}

// Generator is the main API for turning CSV files into a label sheet PDF
type Generator struct {
	options Options
}

// New creates a generator with default options
func New() *Generator {
	return NewWithOptions(DefaultOptions())
}

// NewWithOptions creates a generator with the specified options
func NewWithOptions(options Options, opts ...Option) *Generator {
	for _, opt := range opts {
		opt(&options)
	}
	return &Generator{options: options}
}

// GenerateFiles reads the given CSV files in order and writes the label
// document to outputPath. A failed run leaves no output file behind.
func (g *Generator) GenerateFiles(csvPaths []string, outputPath string) (Summary, error) {
	records, sum, err := g.readAll(csvPaths)
	if err != nil {
		return Summary{}, err
	}
	return g.run(records, sum, func(canvas *pdf.Canvas) error {
		return canvas.WriteFile(outputPath)
	})
}

// GenerateFilesTo is GenerateFiles writing the document to w instead of a
// file path.
func (g *Generator) GenerateFilesTo(csvPaths []string, w io.Writer) (Summary, error) {
	records, sum, err := g.readAll(csvPaths)
	if err != nil {
		return Summary{}, err
	}
	return g.run(records, sum, func(canvas *pdf.Canvas) error {
		return canvas.Output(w)
	})
}

// GenerateGlob generates from every file in dir matching pattern, in sorted
// order.
func (g *Generator) GenerateGlob(dir, pattern, outputPath string) (Summary, error) {
	paths, err := input.Resolve(nil, dir, pattern)
	if err != nil {
		return Summary{}, err
	}
	return g.GenerateFiles(paths, outputPath)
}

// Generate writes a label document for pre-resolved records, bypassing CSV
// input entirely.
func (g *Generator) Generate(records []Record, outputPath string) (Summary, error) {
	recs := make([]input.Record, len(records))
	for i, r := range records {
		recs[i] = input.Record{Identifier: r.Identifier, Source: r.Source}
	}
	return g.run(recs, Summary{}, func(canvas *pdf.Canvas) error {
		return canvas.WriteFile(outputPath)
	})
}

// WithOption returns a new generator with the specified option applied
func (g *Generator) WithOption(option Option) *Generator {
	newOptions := g.options
	option(&newOptions)
	return NewWithOptions(newOptions)
}

// readAll reads every file, logging per-file progress the way the CLI
// reports it, and pre-fills the summary's input-side counters.
func (g *Generator) readAll(csvPaths []string) ([]input.Record, Summary, error) {
	logger := g.options.Logger

	var records []input.Record
	var sum Summary
	for _, path := range csvPaths {
		res, err := input.ReadFile(path)
		if err != nil {
			return nil, Summary{}, err
		}
		logger.Info("Read input file", "file", path, "records", len(res.Records), "skipped", res.Skipped)
		records = append(records, res.Records...)
		sum.Skipped += res.Skipped
		sum.Files++
	}
	return records, sum, nil
}

// run validates geometry, drives the pagination engine over a fresh PDF
// canvas, and hands the finished document to write. Nothing is written on
// any failure.
func (g *Generator) run(records []input.Record, sum Summary, write func(*pdf.Canvas) error) (Summary, error) {
	if len(records) == 0 {
		return Summary{}, fmt.Errorf("%w (%d rows skipped)", ErrNoRecords, sum.Skipped)
	}
	if err := g.options.Geometry.Validate(); err != nil {
		return Summary{}, err
	}

	canvas := pdf.NewCanvas(pdf.DocOptions{
		Title:  g.options.Title,
		Author: g.options.Author,
	})
	engine := pagination.NewEngine(g.options.Geometry, pagination.Options{
		Header:          g.options.Header,
		IDText:          g.options.IDText,
		Instruction:     g.options.Instruction,
		HeaderText:      g.options.HeaderText,
		InstructionText: g.options.InstructionText,
	})

	run, err := engine.Run(canvas, records)
	if err != nil {
		return Summary{}, err
	}
	if err := write(canvas); err != nil {
		return Summary{}, err
	}

	sum.Pages = run.Pages
	sum.Labels = run.Labels
	g.options.Logger.Info("Generated label document",
		"pages", sum.Pages, "labels", sum.Labels, "skipped", sum.Skipped, "files", sum.Files)
	return sum, nil
}
