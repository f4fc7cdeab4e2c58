package sheet

import (
	"fmt"

	"github.com/BurntSushi/toml"
)

// Load reads a geometry override file in TOML format. Fields left out of
// the file keep their Avery 5160 defaults, so a calibration file only needs
// the constants being adjusted, typically barcode_shift and side_margin.
func Load(path string) (Geometry, error) {
	g := Avery5160()
	meta, err := toml.DecodeFile(path, &g)
	if err != nil {
		return Geometry{}, fmt.Errorf("sheet: decode %s: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return Geometry{}, fmt.Errorf("sheet: %s: unknown key %q", path, undecoded[0].String())
	}
	if err := g.Validate(); err != nil {
		return Geometry{}, fmt.Errorf("sheet: %s: %w", path, err)
	}
	return g, nil
}
