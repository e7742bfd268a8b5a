// Package config loads and validates ndexpr's ambient, rarely-changed
// settings: a default layout name, a tie-break name for same-rank dtype
// promotion, and a maximum rank. No other ndexpr package reads them:
// array.New always allocates row-major, dtype.Promote does not consult
// the tie-break, and the rank ceiling is checked only by Validate. Grounded on the Config-struct-plus-
// Validate pattern used throughout a robotics stack's driver configs
// (e.g. drivers/lidar/config.go), adapted to load from YAML via
// gopkg.in/yaml.v3 rather than being populated by flag parsing.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/itohio/ndexpr/internal/kernel"
	"github.com/itohio/ndexpr/shape"
)

// Defaults holds the settings a caller can load from YAML and query
// (for example through LayoutValue); no other ndexpr package reads
// them on its own.
type Defaults struct {
	// Layout names a stride arrangement; LayoutValue parses it.
	// array.New does not consult it and always allocates row-major.
	Layout string `yaml:"layout"`
	// PromotionTieBreak resolves a dtype.Promote tie between two types
	// of equal rank (currently unreachable in the 4-type lattice, since
	// every rank is distinct, but recorded for a future wider lattice).
	PromotionTieBreak string `yaml:"promotion_tie_break"`
	// MaxRank is a rank ceiling that Validate bounds by kernel.MaxDims;
	// shapes and expressions are not checked against it.
	MaxRank int `yaml:"max_rank"`
}

// Validate reports whether d is usable as-is.
func (d *Defaults) Validate() error {
	switch d.Layout {
	case "row-major", "col-major", "dynamic":
	default:
		return fmt.Errorf("config: unknown layout %q", d.Layout)
	}
	if d.MaxRank <= 0 {
		return fmt.Errorf("config: max_rank must be positive, got %d", d.MaxRank)
	}
	if d.MaxRank > kernel.MaxDims {
		return fmt.Errorf("config: max_rank %d exceeds the engine's fixed-size axis budget of %d", d.MaxRank, kernel.MaxDims)
	}
	return nil
}

// LayoutValue parses d.Layout into a shape.Layout.
func (d *Defaults) LayoutValue() shape.Layout {
	switch d.Layout {
	case "col-major":
		return shape.ColMajor
	case "dynamic":
		return shape.Dynamic
	default:
		return shape.RowMajor
	}
}

// Default returns the built-in configuration: row-major layout, no
// promotion ties to break, rank capped at the kernel's fixed axis
// budget.
func Default() Defaults {
	return Defaults{
		Layout:            "row-major",
		PromotionTieBreak: "wider",
		MaxRank:           kernel.MaxDims,
	}
}

// Load reads a YAML configuration file at path, falling back to
// Default for any field the file doesn't set.
func Load(path string) (Defaults, error) {
	d := Default()
	f, err := os.Open(path)
	if err != nil {
		return Defaults{}, fmt.Errorf("config: open %s: %w", path, err)
	}
	defer f.Close()

	if err := yaml.NewDecoder(f).Decode(&d); err != nil {
		return Defaults{}, fmt.Errorf("config: decode %s: %w", path, err)
	}
	if err := d.Validate(); err != nil {
		return Defaults{}, err
	}
	return d, nil
}
