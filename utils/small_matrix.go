package utils

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrSingularMatrix  = errors.New("matrix is singular")
	ErrNonFiniteMatrix = errors.New("matrix has a non finite determinant")
)

// SmallMatrix is a square matrix of dimension 1, 2 or 3 stored on the stack.
// It holds the per quadrature point Jacobian, so nothing here allocates.
type SmallMatrix struct {
	Dim  int
	Data [3][3]float64
}

func NewSmallMatrix(dim int) (sm SmallMatrix) {
	if dim < 1 || dim > 3 {
		panic(fmt.Errorf("small matrix dimension must be 1, 2 or 3, have %d", dim))
	}
	sm.Dim = dim
	return
}

func (sm *SmallMatrix) At(i, j int) float64 { return sm.Data[i][j] }

func (sm *SmallMatrix) Set(i, j int, val float64) { sm.Data[i][j] = val }

func (sm *SmallMatrix) Det() (det float64) {
	var a = &sm.Data
	switch sm.Dim {
	case 1:
		det = a[0][0]
	case 2:
		det = a[0][0]*a[1][1] - a[0][1]*a[1][0]
	case 3:
		det = a[0][0]*(a[1][1]*a[2][2]-a[1][2]*a[2][1]) -
			a[0][1]*(a[1][0]*a[2][2]-a[1][2]*a[2][0]) +
			a[0][2]*(a[1][0]*a[2][1]-a[1][1]*a[2][0])
	default:
		panic(fmt.Errorf("small matrix dimension must be 1, 2 or 3, have %d", sm.Dim))
	}
	return
}

// Inverse writes the inverse into out using the closed form cofactor
// expansion. When |det| <= tol, out is left untouched and ErrSingularMatrix
// is returned together with det. A NaN or infinite det gives
// ErrNonFiniteMatrix.
func (sm *SmallMatrix) Inverse(out *SmallMatrix, tol float64) (det float64, err error) {
	var a = &sm.Data
	det = sm.Det()
	if math.IsNaN(det) || math.IsInf(det, 0) {
		err = fmt.Errorf("%w: det = %g", ErrNonFiniteMatrix, det)
		return
	}
	if math.Abs(det) <= tol {
		err = fmt.Errorf("%w: det = %g, tolerance = %g", ErrSingularMatrix, det, tol)
		return
	}
	oodet := 1. / det
	out.Dim = sm.Dim
	out.Data = [3][3]float64{}
	b := &out.Data
	switch sm.Dim {
	case 1:
		b[0][0] = oodet
	case 2:
		b[0][0] = a[1][1] * oodet
		b[0][1] = -a[0][1] * oodet
		b[1][0] = -a[1][0] * oodet
		b[1][1] = a[0][0] * oodet
	case 3:
		b[0][0] = (a[1][1]*a[2][2] - a[1][2]*a[2][1]) * oodet
		b[0][1] = (a[0][2]*a[2][1] - a[0][1]*a[2][2]) * oodet
		b[0][2] = (a[0][1]*a[1][2] - a[0][2]*a[1][1]) * oodet
		b[1][0] = (a[1][2]*a[2][0] - a[1][0]*a[2][2]) * oodet
		b[1][1] = (a[0][0]*a[2][2] - a[0][2]*a[2][0]) * oodet
		b[1][2] = (a[0][2]*a[1][0] - a[0][0]*a[1][2]) * oodet
		b[2][0] = (a[1][0]*a[2][1] - a[1][1]*a[2][0]) * oodet
		b[2][1] = (a[0][1]*a[2][0] - a[0][0]*a[2][1]) * oodet
		b[2][2] = (a[0][0]*a[1][1] - a[0][1]*a[1][0]) * oodet
	}
	return
}

func (sm SmallMatrix) String() string {
	var s string
	for i := 0; i < sm.Dim; i++ {
		s += fmt.Sprintf("%v\n", sm.Data[i][:sm.Dim])
	}
	return s
}
