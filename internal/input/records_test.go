package input

import (
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeCSV(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestReadFile(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "batch.csv",
		"sample,barcode,site\nS1,TBX-0001,NYC\nS2,TBX-0002,NYC\n")

	res, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(res.Records) != 2 {
		t.Fatalf("got %d records, want 2", len(res.Records))
	}
	if res.Records[0].Identifier != "TBX-0001" {
		t.Errorf("Identifier = %q, want TBX-0001", res.Records[0].Identifier)
	}
	if res.Records[0].Source != "batch.csv" {
		t.Errorf("Source = %q, want batch.csv", res.Records[0].Source)
	}
	if res.Skipped != 0 {
		t.Errorf("Skipped = %d, want 0", res.Skipped)
	}
}

func TestReadFileSkipsEmptyIdentifiers(t *testing.T) {
	dir := t.TempDir()
	path := writeCSV(t, dir, "gaps.csv",
		"barcode\nTBX-0001\n\n   \nTBX-0002\n")

	res, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(res.Records) != 2 {
		t.Errorf("got %d records, want 2", len(res.Records))
	}
	if res.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", res.Skipped)
	}
}

// Fully blank lines never surface as rows from the CSV parser; they must
// still show up in the skip count, including blank lines after the last row.
func TestReadFileCountsBlankLines(t *testing.T) {
	tests := []struct {
		name    string
		content string
		records int
		skipped int
	}{
		{"interior run", "barcode\nTBX-0001\n\n\nTBX-0002\n", 2, 2},
		{"trailing", "barcode\nTBX-0001\n\n", 1, 1},
		{"interior and trailing", "barcode\nTBX-0001\n\n\nTBX-0002\n\n", 2, 3},
		{"no final newline", "barcode\nTBX-0001", 1, 0},
		{"header only", "barcode\n", 0, 0},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, t.TempDir(), "blanks.csv", tt.content)
			res, err := ReadFile(path)
			if err != nil {
				t.Fatalf("ReadFile() error: %v", err)
			}
			if len(res.Records) != tt.records {
				t.Errorf("got %d records, want %d", len(res.Records), tt.records)
			}
			if res.Skipped != tt.skipped {
				t.Errorf("Skipped = %d, want %d", res.Skipped, tt.skipped)
			}
		})
	}
}

func TestReadFileHeaderTolerance(t *testing.T) {
	tests := []struct {
		name   string
		header string
	}{
		{"uppercase", "BARCODE\n"},
		{"padded", " barcode \n"},
		{"bom", "\ufeffbarcode\n"},
		{"later column", "well,Barcode\nA1,"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeCSV(t, t.TempDir(), "h.csv", tt.header+"TBX-1\n")
			if _, err := ReadFile(path); err != nil {
				t.Errorf("ReadFile() error: %v", err)
			}
		})
	}
}

func TestReadFileMissingColumn(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "bad.csv", "sample,site\nS1,NYC\n")

	_, err := ReadFile(path)
	if !errors.Is(err, ErrMissingColumn) {
		t.Errorf("ReadFile() error = %v, want ErrMissingColumn", err)
	}
}

func TestReadFileEmpty(t *testing.T) {
	path := writeCSV(t, t.TempDir(), "empty.csv", "")

	res, err := ReadFile(path)
	if err != nil {
		t.Fatalf("ReadFile() error: %v", err)
	}
	if len(res.Records) != 0 || res.Skipped != 0 {
		t.Errorf("got %d records / %d skipped, want 0 / 0", len(res.Records), res.Skipped)
	}
}

func TestReadFilesPreservesOrder(t *testing.T) {
	dir := t.TempDir()
	a := writeCSV(t, dir, "a.csv", "barcode\nA1\nA2\n")
	b := writeCSV(t, dir, "b.csv", "barcode\nB1\n")

	res, err := ReadFiles([]string{b, a})
	if err != nil {
		t.Fatalf("ReadFiles() error: %v", err)
	}
	want := []Record{
		{Identifier: "B1", Source: "b.csv"},
		{Identifier: "A1", Source: "a.csv"},
		{Identifier: "A2", Source: "a.csv"},
	}
	if len(res.Records) != len(want) {
		t.Fatalf("got %d records, want %d", len(res.Records), len(want))
	}
	for i, rec := range res.Records {
		if rec != want[i] {
			t.Errorf("record %d = %+v, want %+v", i, rec, want[i])
		}
	}
}

func TestResolveExplicitPathsWin(t *testing.T) {
	got, err := Resolve([]string{"x.csv", "y.csv"}, "somewhere", "*.csv")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(got) != 2 || got[0] != "x.csv" {
		t.Errorf("Resolve() = %v, want [x.csv y.csv]", got)
	}
}

func TestResolveDirScanSorted(t *testing.T) {
	dir := t.TempDir()
	writeCSV(t, dir, "b.csv", "barcode\n")
	writeCSV(t, dir, "a.csv", "barcode\n")
	writeCSV(t, dir, "notes.txt", "not a csv")

	got, err := Resolve(nil, dir, "")
	if err != nil {
		t.Fatalf("Resolve() error: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Resolve() matched %d files, want 2", len(got))
	}
	if filepath.Base(got[0]) != "a.csv" || filepath.Base(got[1]) != "b.csv" {
		t.Errorf("Resolve() = %v, want sorted a.csv then b.csv", got)
	}
}

func TestResolveNoMatches(t *testing.T) {
	_, err := Resolve(nil, t.TempDir(), "*.csv")
	if !errors.Is(err, ErrNoInputFiles) {
		t.Errorf("Resolve() error = %v, want ErrNoInputFiles", err)
	}
}
