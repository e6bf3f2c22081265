package graph

import "errors"

// ErrConstruction is wrapped by every error New reports. A map that fails
// construction must stop the process.
var ErrConstruction = errors.New("graph: invalid map data")

var (
	ErrEmptyName         = errors.New("empty location name")
	ErrDuplicateName     = errors.New("duplicate location")
	ErrSelfLoop          = errors.New("corridor loops back to its own location")
	ErrDuplicateEdge     = errors.New("neighbor listed twice")
	ErrUnknownNeighbor   = errors.New("neighbor is not a declared location")
	ErrAsymmetricEdge    = errors.New("corridor is not listed by both endpoints")
	ErrUnknownCorridor   = errors.New("weight given for a corridor that does not exist")
	ErrInvalidWeight     = errors.New("corridor weight must be positive")
	ErrConflictingWeight = errors.New("corridor weight given twice with different values")
)
