// Package quadrature provides Gaussian integration rules on the reference
// segment [-1,1], square [-1,1]^2, cube [-1,1]^3, and the unit simplices.
package quadrature

import (
	"errors"
	"fmt"
	"math"
	"sort"

	"gonum.org/v1/gonum/integrate/quad"
)

var ErrUnsupportedRule = errors.New("unsupported quadrature rule")

// Rule holds integration points in reference coordinates and their weights.
// Unused coordinates are zero.
type Rule struct {
	Dim int
	R   [][3]float64
	W   []float64
}

func (r Rule) Npts() int { return len(r.W) }

// Measure is the sum of the weights, the measure of the reference domain
func (r Rule) Measure() (m float64) {
	for _, w := range r.W {
		m += w
	}
	return
}

// GaussLegendre returns the n point Gauss-Legendre rule on [-1,1] with the
// points in ascending order.
func GaussLegendre(n int) (x, w []float64) {
	if n < 1 {
		panic(fmt.Errorf("gauss-legendre rule needs at least one point, have %d", n))
	}
	x, w = make([]float64, n), make([]float64, n)
	quad.Legendre{}.FixedLocations(x, w, -1, 1)
	idx := make([]int, n)
	for i := range idx {
		idx[i] = i
	}
	sort.Slice(idx, func(i, j int) bool { return x[idx[i]] < x[idx[j]] })
	xs, ws := make([]float64, n), make([]float64, n)
	for i, ii := range idx {
		xs[i], ws[i] = x[ii], w[ii]
	}
	return xs, ws
}

func Line(n int) (r Rule) {
	x, w := GaussLegendre(n)
	r.Dim = 1
	for i := range x {
		r.R = append(r.R, [3]float64{x[i], 0, 0})
		r.W = append(r.W, w[i])
	}
	return
}

// Quadrilateral is the n x n tensor product rule, r varying fastest
func Quadrilateral(n int) (r Rule) {
	x, w := GaussLegendre(n)
	r.Dim = 2
	for j := range x {
		for i := range x {
			r.R = append(r.R, [3]float64{x[i], x[j], 0})
			r.W = append(r.W, w[i]*w[j])
		}
	}
	return
}

// Hexahedron is the n x n x n tensor product rule, r varying fastest
func Hexahedron(n int) (r Rule) {
	x, w := GaussLegendre(n)
	r.Dim = 3
	for k := range x {
		for j := range x {
			for i := range x {
				r.R = append(r.R, [3]float64{x[i], x[j], x[k]})
				r.W = append(r.W, w[i]*w[j]*w[k])
			}
		}
	}
	return
}

// Triangle returns a rule on the triangle (0,0), (1,0), (0,1).
//
//	npts = 1: centroid, degree 1
//	npts = 3: edge midpoints, degree 2
//	npts = 6: Strang-Fix, degree 4
func Triangle(npts int) (r Rule, err error) {
	r.Dim = 2
	switch npts {
	case 1:
		r.R = [][3]float64{{1. / 3., 1. / 3.}}
		r.W = []float64{0.5}
	case 3:
		r.R = [][3]float64{{0.5, 0}, {0.5, 0.5}, {0, 0.5}}
		r.W = []float64{1. / 6., 1. / 6., 1. / 6.}
	case 6:
		var (
			a, wa = 0.445948490915965, 0.5 * 0.223381589678011
			b, wb = 0.091576213509771, 0.5 * 0.109951743655322
		)
		r.R = [][3]float64{
			{a, a}, {1 - 2*a, a}, {a, 1 - 2*a},
			{b, b}, {1 - 2*b, b}, {b, 1 - 2*b},
		}
		r.W = []float64{wa, wa, wa, wb, wb, wb}
	default:
		err = fmt.Errorf("%w: triangle with %d points", ErrUnsupportedRule, npts)
	}
	return
}

// Tetrahedron returns a rule on the tetrahedron with vertices at the origin
// and the unit coordinate points.
//
//	npts = 1: centroid, degree 1
//	npts = 4: degree 2
func Tetrahedron(npts int) (r Rule, err error) {
	r.Dim = 3
	switch npts {
	case 1:
		r.R = [][3]float64{{0.25, 0.25, 0.25}}
		r.W = []float64{1. / 6.}
	case 4:
		var (
			a = (5 + 3*math.Sqrt(5)) / 20
			b = (5 - math.Sqrt(5)) / 20
			w = 1. / 24.
		)
		r.R = [][3]float64{{b, b, b}, {a, b, b}, {b, a, b}, {b, b, a}}
		r.W = []float64{w, w, w, w}
	default:
		err = fmt.Errorf("%w: tetrahedron with %d points", ErrUnsupportedRule, npts)
	}
	return
}
