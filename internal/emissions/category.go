package emissions

import "fmt"

// Category identifies one emissions category in the fixed category set.
//
//nolint:recvcheck // UnmarshalText requires pointer receiver; String/Key/MarshalText use value receivers.
type Category int

const (
	// CategoryCars covers the passenger car fleet.
	CategoryCars Category = iota
	// CategoryTrucks covers heavy goods vehicles.
	CategoryTrucks
	// CategoryBuses covers buses and coaches.
	CategoryBuses
	// CategoryForklifts covers warehouse forklift operation.
	CategoryForklifts
	// CategoryCargoPlanes covers cargo flights.
	CategoryCargoPlanes
	// CategoryLighting covers office and warehouse lighting electricity.
	CategoryLighting
	// CategoryHeating covers facility heating energy.
	CategoryHeating
	// CategoryCooling covers air conditioning electricity.
	CategoryCooling
	// CategoryComputing covers IT equipment electricity.
	CategoryComputing
	// CategorySubcontractors covers emissions reported directly by
	// subcontractors, already expressed in tons CO2e.
	CategorySubcontractors
)

// Categories returns every category in display order. Callers iterate
// this instead of ranging over breakdown maps so tables and charts come
// out in a stable order.
func Categories() []Category {
	return []Category{
		CategoryCars,
		CategoryTrucks,
		CategoryBuses,
		CategoryForklifts,
		CategoryCargoPlanes,
		CategoryLighting,
		CategoryHeating,
		CategoryCooling,
		CategoryComputing,
		CategorySubcontractors,
	}
}

// String returns the human-readable label for a Category.
func (c Category) String() string {
	switch c {
	case CategoryCars:
		return "Cars"
	case CategoryTrucks:
		return "Trucks"
	case CategoryBuses:
		return "Buses"
	case CategoryForklifts:
		return "Forklifts"
	case CategoryCargoPlanes:
		return "Cargo Planes"
	case CategoryLighting:
		return "Office Lighting"
	case CategoryHeating:
		return "Heating"
	case CategoryCooling:
		return "Cooling (A/C)"
	case CategoryComputing:
		return "Computing (IT)"
	case CategorySubcontractors:
		return "Subcontractors"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// Key returns the stable machine-readable name used in JSON documents
// and API paths.
func (c Category) Key() string {
	switch c {
	case CategoryCars:
		return "cars"
	case CategoryTrucks:
		return "trucks"
	case CategoryBuses:
		return "buses"
	case CategoryForklifts:
		return "forklifts"
	case CategoryCargoPlanes:
		return "cargo_planes"
	case CategoryLighting:
		return "lighting"
	case CategoryHeating:
		return "heating"
	case CategoryCooling:
		return "cooling"
	case CategoryComputing:
		return "computing"
	case CategorySubcontractors:
		return "subcontractors"
	default:
		return fmt.Sprintf("unknown(%d)", int(c))
	}
}

// ParseCategory resolves a machine-readable key to its Category.
func ParseCategory(key string) (Category, error) {
	for _, c := range Categories() {
		if c.Key() == key {
			return c, nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownCategory, key)
}

// MarshalText implements encoding.TextMarshaler so breakdown maps keyed
// by Category marshal to JSON objects with stable string keys.
func (c Category) MarshalText() ([]byte, error) {
	return []byte(c.Key()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (c *Category) UnmarshalText(text []byte) error {
	parsed, err := ParseCategory(string(text))
	if err != nil {
		return err
	}
	*c = parsed
	return nil
}
