package api

import (
	"io"

	"github.com/charmbracelet/log"

	"github.com/arqlabs/labelforge/internal/pagination"
	"github.com/arqlabs/labelforge/pkg/sheet"
)

// Options represents configuration options for the label sheet generator
type Options struct {
	// Sheet geometry; defaults to Avery 5160
	Geometry sheet.Geometry

	// Text toggles
	// When false, the page header is not drawn
	Header bool
	// When false, the identifier small print beneath each barcode is not drawn
	IDText bool
	// When false, the instruction line beneath each barcode is not drawn
	Instruction bool

	// Header and instruction wording
	HeaderText      string
	InstructionText string

	// Document metadata
	Title  string
	Author string

	// Logger receives per-file progress and the final totals
	Logger *log.Logger
}

// Option is a function that modifies Options
type Option func(*Options)

// DefaultOptions returns the default options
func DefaultOptions() Options {
	text := pagination.DefaultOptions()
	return Options{
		Geometry: sheet.Avery5160(),

		Header:      true,
		IDText:      true,
		Instruction: true,

		HeaderText:      text.HeaderText,
		InstructionText: text.InstructionText,

		Title:  "Barcode labels",
		Author: "",

		Logger: log.New(io.Discard),
	}
}

// WithGeometry sets the sheet geometry
func WithGeometry(g sheet.Geometry) Option {
	return func(o *Options) {
		o.Geometry = g
	}
}

// WithHeader toggles the page header
func WithHeader(enabled bool) Option {
	return func(o *Options) {
		o.Header = enabled
	}
}

// WithIDText toggles the identifier text beneath each barcode
func WithIDText(enabled bool) Option {
	return func(o *Options) {
		o.IDText = enabled
	}
}

// WithInstruction toggles the instruction text beneath each barcode
func WithInstruction(enabled bool) Option {
	return func(o *Options) {
		o.Instruction = enabled
	}
}

// WithHeaderText sets the fixed instructional line of the page header
func WithHeaderText(text string) Option {
	return func(o *Options) {
		o.HeaderText = text
	}
}

// WithInstructionText sets the instruction line drawn beneath each barcode
func WithInstructionText(text string) Option {
	return func(o *Options) {
		o.InstructionText = text
	}
}

// WithTitle sets the document title
func WithTitle(title string) Option {
	return func(o *Options) {
		o.Title = title
	}
}

// WithAuthor sets the document author
func WithAuthor(author string) Option {
	return func(o *Options) {
		o.Author = author
	}
}

// WithLogger sets the progress logger
func WithLogger(logger *log.Logger) Option {
	return func(o *Options) {
		o.Logger = logger
	}
}
