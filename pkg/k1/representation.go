package k1

import (
	"strings"

	"github.com/pkg/errors"
)

// Representation names an external key encoding.
type Representation int

const (
	RepresentationRaw Representation = iota + 1
	RepresentationCompressed
	RepresentationUncompressed
	RepresentationX963
	RepresentationDER
	RepresentationPEM
)

var ErrUnsupportedRepresentation = errors.New("k1: representation not supported for this key type")

var representationNames = map[Representation]string{
	RepresentationRaw:          "raw",
	RepresentationCompressed:   "compressed",
	RepresentationUncompressed: "uncompressed",
	RepresentationX963:         "x963",
	RepresentationDER:          "der",
	RepresentationPEM:          "pem",
}

func (r Representation) String() string {
	if name, ok := representationNames[r]; ok {
		return name
	}
	return "unknown"
}

// ParseRepresentation maps a case-insensitive name to a Representation.
func ParseRepresentation(name string) (Representation, error) {
	name = strings.ToLower(strings.TrimSpace(name))
	for r, n := range representationNames {
		if n == name {
			return r, nil
		}
	}
	return 0, errors.Errorf("k1: unknown representation %q", name)
}

// Binary reports whether the encoding is raw bytes rather than text.
func (r Representation) Binary() bool {
	return r != RepresentationPEM
}
