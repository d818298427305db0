package domain

import (
	"slices"
	"strings"
)

// DefaultLocations is the registry used when LOCATIONS is not configured.
var DefaultLocations = []string{
	"Albuquerque, New Mexico",
	"Carlsbad, California",
	"Chula Vista, California",
	"Colorado Springs, Colorado",
	"Denver, Colorado",
	"El Cajon, California",
	"El Paso, Texas",
	"Escondido, California",
	"Fresno, California",
	"La Mesa, California",
	"Las Vegas, Nevada",
	"Los Angeles, California",
	"Oceanside, California",
	"Phoenix, Arizona",
	"Sacramento, California",
	"Salt Lake City, Utah",
	"San Diego, California",
	"Tucson, Arizona",
}

// LocationRegistry is a fixed set of "City, State" strings. It is never
// mutated after construction, so it is safe for concurrent use.
type LocationRegistry struct {
	set map[string]struct{}
}

func NewLocationRegistry(locations ...string) *LocationRegistry {
	set := make(map[string]struct{}, len(locations))
	for _, l := range locations {
		if l = strings.TrimSpace(l); l != "" {
			set[l] = struct{}{}
		}
	}
	return &LocationRegistry{set: set}
}

// IsValid reports exact (case-sensitive) membership.
func (r *LocationRegistry) IsValid(location string) bool {
	_, ok := r.set[location]
	return ok
}

func (r *LocationRegistry) List() []string {
	out := make([]string, 0, len(r.set))
	for l := range r.set {
		out = append(out, l)
	}
	slices.Sort(out)
	return out
}

func (r *LocationRegistry) Len() int { return len(r.set) }
