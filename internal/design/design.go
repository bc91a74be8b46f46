// Package design describes baghouse design types and the configuration
// snapshot the calculation engine works from.
//
// Every formula or limit that differs between bolt-weld and modular
// construction lives in a Profile, so calculation code looks the profile up
// once instead of switching on the design type repeatedly.
package design

import (
	"fmt"
	"strings"

	"github.com/rshade/baghouse/internal/field"
	"github.com/rshade/baghouse/internal/units"
)

// constError is an immutable error type for sentinel errors.
type constError string

func (e constError) Error() string { return string(e) }

// Errors returned when parsing enum text.
var (
	// ErrUnknownDesignType indicates design type text that is neither bolt-weld nor modular.
	ErrUnknownDesignType = constError("unknown design type")

	// ErrUnknownRowType indicates filter row text that is neither single nor double.
	ErrUnknownRowType = constError("unknown filter row type")
)

// Type is the physical construction style of the baghouse.
type Type int

const (
	// BoltWeld is field-erected construction, sized in metric units.
	BoltWeld Type = iota
	// Modular is shop-built modules, sized in imperial units.
	Modular
)

// String returns the canonical text of the Type.
func (t Type) String() string {
	switch t {
	case BoltWeld:
		return "bolt-weld"
	case Modular:
		return "modular"
	default:
		return fmt.Sprintf("Type(%d)", int(t))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) { return []byte(t.String()), nil }

// ParseType accepts "bolt-weld", "boltweld", "bolt_weld" or "modular" in any case.
func ParseType(s string) (Type, error) {
	norm := strings.NewReplacer("-", "", "_", "", " ", "").Replace(strings.ToLower(strings.TrimSpace(s)))
	switch norm {
	case "boltweld":
		return BoltWeld, nil
	case "modular":
		return Modular, nil
	default:
		return BoltWeld, fmt.Errorf("%w: %q", ErrUnknownDesignType, s)
	}
}

// RowType is the filter row arrangement.
type RowType int

const (
	// Single places all flaps in one row.
	Single RowType = iota
	// Double splits flaps evenly across two rows; it needs an even flap count.
	Double
)

// String returns the canonical text of the RowType.
func (r RowType) String() string {
	switch r {
	case Single:
		return "single"
	case Double:
		return "double"
	default:
		return fmt.Sprintf("RowType(%d)", int(r))
	}
}

// MarshalText implements encoding.TextMarshaler.
func (r RowType) MarshalText() ([]byte, error) { return []byte(r.String()), nil }

// ParseRowType accepts "single" or "double" in any case.
func ParseRowType(s string) (RowType, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "single":
		return Single, nil
	case "double":
		return Double, nil
	default:
		return Single, fmt.Errorf("%w: %q", ErrUnknownRowType, s)
	}
}

// UnitSystem selects metric or imperial display.
type UnitSystem int

const (
	// Metric displays m², m³/min/m² and m/s.
	Metric UnitSystem = iota
	// Imperial displays sq ft and cfm/sq ft.
	Imperial
)

// String returns a human-readable representation of the UnitSystem.
func (u UnitSystem) String() string {
	if u == Imperial {
		return "imperial"
	}
	return "metric"
}

// MarshalText implements encoding.TextMarshaler.
func (u UnitSystem) MarshalText() ([]byte, error) { return []byte(u.String()), nil }

// Configuration is the design snapshot a recompute works from.
// It is a value type; the session builds a fresh one for every recompute.
type Configuration struct {
	Type Type

	// AirVolumeM3h and AirVolumeACFM are the two sides of the air volume pair.
	AirVolumeM3h  field.Value
	AirVolumeACFM field.Value

	NumEMCFlaps field.Value
	BagsPerRow  field.Value
	BagLength   field.Value
	RowType     RowType

	// ChannelWidthMm and ChannelHeightMm describe the bolt-weld inlet duct.
	ChannelWidthMm  field.Value
	ChannelHeightMm field.Value
}

// Profile returns the strategy entry for the configuration's design type.
func (c Configuration) Profile() Profile {
	return ProfileFor(c.Type)
}

// NativeAirVolume returns the air volume on the flow side the design type
// sizes with: m³/h for bolt-weld, ACFM for modular.
func (c Configuration) NativeAirVolume() float64 {
	if c.Profile().FlowSide == units.SideB {
		return c.AirVolumeACFM.Positive()
	}
	return c.AirVolumeM3h.Positive()
}

// Flaps returns the flap count, or 0 when unset or negative.
func (c Configuration) Flaps() int {
	if c.NumEMCFlaps.Float() < 0 {
		return 0
	}
	return c.NumEMCFlaps.Int()
}

// Normalized enforces the row invariant: an odd flap count always uses a
// single row. The second return reports whether the row type was changed.
func (c Configuration) Normalized() (Configuration, bool) {
	if c.RowType == Double && c.Flaps()%2 == 1 {
		c.RowType = Single
		return c, true
	}
	return c, false
}
