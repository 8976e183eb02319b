package utils

import (
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/blas/blas64"
	"gonum.org/v1/gonum/mat"
)

// Matrix is a row-major dense matrix. Element contributions (Ae, Be) are
// returned as a Matrix so that Data() is the flattened n*n result expected
// by an assembler.
type Matrix struct {
	M *mat.Dense
}

func NewMatrix(nr, nc int, dataO ...[]float64) (R Matrix) {
	var m *mat.Dense
	if len(dataO) != 0 {
		if len(dataO[0]) != nr*nc {
			err := fmt.Errorf("mismatch in allocation: NewMatrix nr,nc = %v,%v, len(data[0]) = %v\n", nr, nc, len(dataO[0]))
			panic(err)
		}
		m = mat.NewDense(nr, nc, dataO[0])
	} else {
		m = mat.NewDense(nr, nc, make([]float64, nr*nc))
	}
	R = Matrix{m}
	return
}

// Dims, At and T minimally satisfy the mat.Matrix interface.
func (m Matrix) Dims() (r, c int)          { return m.M.Dims() }
func (m Matrix) At(i, j int) float64       { return m.M.At(i, j) }
func (m Matrix) T() mat.Matrix             { return m.M.T() }
func (m Matrix) RawMatrix() blas64.General { return m.M.RawMatrix() }

// IsEmpty is true for the zero value, returned alongside errors.
func (m Matrix) IsEmpty() bool { return m.M == nil }

// Data returns the row-major backing slice, not a copy.
func (m Matrix) Data() []float64 { return m.M.RawMatrix().Data }

// IsSymmetric compares mirrored entries with an absolute tolerance. A zero
// tolerance requires bit-identical entries.
func (m Matrix) IsSymmetric(tol float64) bool {
	var (
		nr, nc = m.Dims()
		data   = m.RawMatrix().Data
	)
	if nr != nc {
		return false
	}
	for i := 0; i < nr; i++ {
		for j := i + 1; j < nc; j++ {
			if math.Abs(data[i*nc+j]-data[j*nc+i]) > tol {
				return false
			}
		}
	}
	return true
}

// SymEigenvalues returns the ascending eigenvalues of a symmetric matrix.
func (m Matrix) SymEigenvalues() (values []float64, err error) {
	var (
		nr, _ = m.Dims()
		sym   = mat.NewSymDense(nr, nil)
	)
	if !m.IsSymmetric(0) {
		err = fmt.Errorf("eigenvalues requested for a non symmetric matrix")
		return
	}
	for i := 0; i < nr; i++ {
		for j := i; j < nr; j++ {
			sym.SetSym(i, j, m.At(i, j))
		}
	}
	var eig mat.EigenSym
	if ok := eig.Factorize(sym, false); !ok {
		err = fmt.Errorf("eigenvalue decomposition failed")
		return
	}
	values = eig.Values(nil)
	sort.Float64s(values)
	return
}

// IsPositiveSemiDefinite is true for a symmetric matrix whose smallest
// eigenvalue is no lower than -tol times the largest eigenvalue magnitude.
func (m Matrix) IsPositiveSemiDefinite(tol float64) (ok bool, err error) {
	var values []float64
	if values, err = m.SymEigenvalues(); err != nil || len(values) == 0 {
		return
	}
	scale := math.Max(math.Abs(values[0]), math.Abs(values[len(values)-1]))
	ok = values[0] >= -tol*scale
	return
}

func (m Matrix) String() string {
	if m.M == nil {
		return "<empty>"
	}
	return fmt.Sprintf("%v", mat.Formatted(m.M, mat.Squeeze()))
}

func (m Matrix) Print(msgI ...string) string {
	var (
		name = ""
	)
	if len(msgI) != 0 {
		name = msgI[0]
	}
	if m.M == nil {
		return fmt.Sprintf("%s = <empty>\n", name)
	}
	return fmt.Sprintf("%s = \n%10.6v\n", name, mat.Formatted(m.M, mat.Squeeze()))
}
