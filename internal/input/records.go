// Package input reads label records from CSV files. It is the only place
// that touches the input filesystem; the pagination engine consumes the
// records it produces and never sees a file.
package input

import (
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"
)

// barcodeColumn is the required CSV column holding the identifier.
const barcodeColumn = "barcode"

// ErrMissingColumn reports a CSV file whose header row has no barcode
// column at all. A present column with empty values is not an error; those
// rows are skipped and counted instead.
var ErrMissingColumn = errors.New("input: no barcode column")

// Record is one label to print: the barcode payload plus the display name
// of the file it came from. Immutable once constructed.
type Record struct {
	Identifier string
	Source     string
}

// Result carries the records read from one or more files along with the
// number of rows skipped for lacking an identifier value.
type Result struct {
	Records []Record
	Skipped int
}

// ReadFile reads the records of a single CSV file. The first row is a
// header and must contain a barcode column; all other columns are ignored.
// Rows whose barcode value is empty after trimming are skipped and counted.
func ReadFile(path string) (Result, error) {
	f, err := os.Open(path)
	if err != nil {
		return Result{}, fmt.Errorf("input: open %s: %w", path, err)
	}
	defer f.Close()

	res, err := read(f, filepath.Base(path))
	if err != nil {
		return Result{}, fmt.Errorf("input: %s: %w", path, err)
	}
	return res, nil
}

// ReadFiles concatenates the record sets of the given files in argument
// order, each file's records contiguous before the next file's begin.
func ReadFiles(paths []string) (Result, error) {
	var all Result
	for _, path := range paths {
		res, err := ReadFile(path)
		if err != nil {
			return Result{}, err
		}
		all.Records = append(all.Records, res.Records...)
		all.Skipped += res.Skipped
	}
	return all, nil
}

// read parses one CSV stream. encoding/csv drops fully blank lines before
// they surface as rows, so line numbers are tracked and the dropped lines
// are counted as skipped rows.
func read(r io.Reader, source string) (Result, error) {
	nl := &newlineCounter{r: r}
	cr := csv.NewReader(nl)
	cr.FieldsPerRecord = -1 // ragged rows are tolerated, only the barcode field matters
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err == io.EOF {
		return Result{}, nil
	}
	if err != nil {
		return Result{}, fmt.Errorf("read header: %w", err)
	}

	col := -1
	for i, name := range header {
		if i == 0 {
			name = strings.TrimPrefix(name, "\ufeff") // strip UTF-8 BOM
		}
		if strings.EqualFold(strings.TrimSpace(name), barcodeColumn) {
			col = i
			break
		}
	}
	if col < 0 {
		return Result{}, ErrMissingColumn
	}
	prev, _ := cr.FieldPos(0)

	var res Result
	for {
		row, err := cr.Read()
		if err == io.EOF {
			res.Skipped += nl.lines() - prev // blank lines after the last row
			return res, nil
		}
		if err != nil {
			return Result{}, fmt.Errorf("read row: %w", err)
		}
		line, _ := cr.FieldPos(0)
		res.Skipped += line - prev - 1 // blank lines the parser swallowed
		prev = line
		var id string
		if col < len(row) {
			id = strings.TrimSpace(row[col])
		}
		if id == "" {
			res.Skipped++
			continue
		}
		res.Records = append(res.Records, Record{Identifier: id, Source: source})
	}
}

// newlineCounter counts the lines of the stream as the CSV reader consumes
// it, so blank lines the parser never reports can be reconciled at EOF.
type newlineCounter struct {
	r    io.Reader
	n    int
	last byte
}

func (c *newlineCounter) Read(p []byte) (int, error) {
	n, err := c.r.Read(p)
	for _, b := range p[:n] {
		if b == '\n' {
			c.n++
		}
	}
	if n > 0 {
		c.last = p[n-1]
	}
	return n, err
}

// lines reports how many lines have streamed past. A final line without a
// trailing newline still counts.
func (c *newlineCounter) lines() int {
	switch c.last {
	case 0:
		return 0
	case '\n':
		return c.n
	default:
		return c.n + 1
	}
}
