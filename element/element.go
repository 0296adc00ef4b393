package element

import (
	"strings"

	"github.com/notargets/FEMKernel/utils"
)

type Dimensionality uint8

const D2 Dimensionality = 2

type ElementGeometry uint8

const Tri ElementGeometry = iota

func (g ElementGeometry) String() string {
	if g == Tri {
		return "Triangle"
	}
	return "Unknown"
}

// Kind selects the shape function family of a finite element space. The set
// is closed: every switch over Kind covers P1 and P1b.
type Kind uint8

const (
	P1  Kind = iota // linear, one node per vertex
	P1b             // linear plus a cubic interior bubble
)

// ParseKind maps a case-insensitive identifier, "p1" or "p1b", to its Kind
func ParseKind(name string) (Kind, error) {
	switch strings.ToLower(name) {
	case "p1":
		return P1, nil
	case "p1b":
		return P1b, nil
	}
	return 0, &utils.UnknownKindError{Name: name}
}

func (k Kind) Valid() bool { return k == P1 || k == P1b }

func (k Kind) String() string {
	switch k {
	case P1:
		return "p1"
	case P1b:
		return "p1b"
	}
	return "unknown"
}

// Properties returns the parameters that define the node set of k
func (k Kind) Properties() ElementProperties {
	switch k {
	case P1:
		return ElementProperties{
			Name:                "Linear Lagrange Triangle",
			ShortName:           "P1",
			Type:                Tri,
			Order:               1,
			Np:                  3,
			NVp:                 3,
			NIp:                 0,
			Dimensions:          D2,
			MinQuadratureDegree: 2,
		}
	case P1b:
		return ElementProperties{
			Name:                "Linear Lagrange Triangle with Cubic Bubble",
			ShortName:           "P1b",
			Type:                Tri,
			Order:               3,
			Np:                  4,
			NVp:                 3,
			NIp:                 1,
			Dimensions:          D2,
			MinQuadratureDegree: 4,
		}
	}
	panic("element: invalid Kind " + k.String())
}

// MinQuadratureDegree is the lowest rule exactness a space of kind k accepts
func (k Kind) MinQuadratureDegree() int { return k.Properties().MinQuadratureDegree }
