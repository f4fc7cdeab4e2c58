package pagination

// Canvas is the drawing sink the engine emits into. The PDF backend
// implements it; tests substitute a recording implementation so pagination
// decisions can be checked without rendering anything.
//
// StartPage opens a new page; on every call after the first this implies a
// hard page break. Coordinates follow the sheet package convention:
// inches, top-left origin, y growing downward. Text y is the baseline.
type Canvas interface {
	StartPage()
	Barcode(id string, x, y, w, h float64) error
	CentredText(text string, x, y, size float64, bold bool)
}
