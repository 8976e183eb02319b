package element

import (
	"errors"
	"fmt"

	"github.com/notargets/fermi/shape"
)

var (
	ErrDegenerateGeometry = errors.New("degenerate element geometry")
	ErrShapeMismatch      = errors.New("element shape mismatch")

	errInverted = errors.New("negative jacobian determinant")
)

// DegenerateGeometryError reports a collapsed or inverted element, detected by
// a Jacobian determinant at or below tolerance at one integration point.
type DegenerateGeometryError struct {
	Element    int
	Kind       shape.Kind
	GaussPoint int
	Det        float64
	Err        error
}

func (e *DegenerateGeometryError) Error() string {
	msg := fmt.Sprintf("%v: element %d (%s), gauss point %d, det = %g",
		ErrDegenerateGeometry, e.Element, e.Kind, e.GaussPoint, e.Det)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *DegenerateGeometryError) Is(target error) bool { return target == ErrDegenerateGeometry }

func (e *DegenerateGeometryError) Unwrap() error { return e.Err }

// ShapeMismatchError reports node and index counts that disagree with each
// other or with the element kind.
type ShapeMismatchError struct {
	Element     int
	Kind        shape.Kind
	Nodes       int
	NodeIndexes int
	Expected    int
}

func (e *ShapeMismatchError) Error() string {
	return fmt.Sprintf("%v: element %d (%s) has %d nodes and %d node indexes, expected %d",
		ErrShapeMismatch, e.Element, e.Kind, e.Nodes, e.NodeIndexes, e.Expected)
}

func (e *ShapeMismatchError) Is(target error) bool { return target == ErrShapeMismatch }
