package model

import (
	"fmt"
	"regexp"
	"strconv"
)

// Location field names.
const (
	FieldCode       = "code"
	FieldReservedAt = "reservedAt"
)

// Default bounds of the storage space.
const (
	DefaultMaxRacks   = 10
	DefaultMaxShelves = 10
	DefaultMaxBins    = 20
)

var codePattern = regexp.MustCompile(`^R(-?\d+)-S(-?\d+)-B(-?\d+)$`)

// Slot is a rack/shelf/bin coordinate.
type Slot struct {
	Rack  int
	Shelf int
	Bin   int
}

// Code encodes the slot as its location code.
func (s Slot) Code() string {
	return MakeCode(s.Rack, s.Shelf, s.Bin)
}

// MakeCode builds "R{rack}-S{shelf}-B{bin}". Coordinates are not validated.
func MakeCode(rack, shelf, bin int) string {
	return fmt.Sprintf("R%d-S%d-B%d", rack, shelf, bin)
}

// ParseCode recovers the coordinates encoded by MakeCode.
func ParseCode(code string) (Slot, error) {
	m := codePattern.FindStringSubmatch(code)
	if m == nil {
		return Slot{}, fmt.Errorf("parse location code %q: malformed", code)
	}
	coords := make([]int, 3)
	for i := range coords {
		n, err := strconv.Atoi(m[i+1])
		if err != nil {
			return Slot{}, fmt.Errorf("parse location code %q: %w", code, err)
		}
		coords[i] = n
	}
	return Slot{Rack: coords[0], Shelf: coords[1], Bin: coords[2]}, nil
}

// LocationBounds caps each coordinate of the scan.
type LocationBounds struct {
	Racks   int
	Shelves int
	Bins    int
}

// DefaultLocationBounds returns 10 racks, 10 shelves and 20 bins.
func DefaultLocationBounds() LocationBounds {
	return LocationBounds{Racks: DefaultMaxRacks, Shelves: DefaultMaxShelves, Bins: DefaultMaxBins}
}

// WithDefaults replaces non-positive bounds with the defaults.
func (b LocationBounds) WithDefaults() LocationBounds {
	if b.Racks <= 0 {
		b.Racks = DefaultMaxRacks
	}
	if b.Shelves <= 0 {
		b.Shelves = DefaultMaxShelves
	}
	if b.Bins <= 0 {
		b.Bins = DefaultMaxBins
	}
	return b
}

// Capacity is the number of slots inside the bounds.
func (b LocationBounds) Capacity() int {
	return b.Racks * b.Shelves * b.Bins
}

// Suggestion is the result of a free-slot scan. Exhausted marks the (1,1,1)
// fallback returned when every slot inside the bounds is taken.
type Suggestion struct {
	Slot      Slot
	Exhausted bool
}

// Location is a reserved storage slot. Its existence is the reservation.
type Location struct {
	Code   string
	Fields Document
}
