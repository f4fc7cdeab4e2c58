package labelforge

import (
	"github.com/arqlabs/labelforge/pkg/api"
	"github.com/arqlabs/labelforge/pkg/sheet"
)

type Generator = api.Generator
type Options = api.Options
type Option = api.Option
type Record = api.Record
type Summary = api.Summary
type Geometry = sheet.Geometry

func New() *Generator                                           { return api.New() }
func NewWithOptions(options Options, opts ...Option) *Generator { return api.NewWithOptions(options, opts...) }
func DefaultOptions() Options                                   { return api.DefaultOptions() }
func Avery5160() Geometry                                       { return sheet.Avery5160() }

var (
	WithGeometry        = api.WithGeometry
	WithHeader          = api.WithHeader
	WithIDText          = api.WithIDText
	WithInstruction     = api.WithInstruction
	WithHeaderText      = api.WithHeaderText
	WithInstructionText = api.WithInstructionText
	WithTitle           = api.WithTitle
	WithAuthor          = api.WithAuthor
	WithLogger          = api.WithLogger

	ErrNoRecords = api.ErrNoRecords
)
