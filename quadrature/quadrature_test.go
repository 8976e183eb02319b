package quadrature

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGaussLegendre(t *testing.T) {
	{
		x, w := GaussLegendre(1)
		assert.InDeltaSlice(t, []float64{0}, x, 1.e-15)
		assert.InDeltaSlice(t, []float64{2}, w, 1.e-15)
	}
	{
		x, w := GaussLegendre(2)
		a := 1. / math.Sqrt(3)
		assert.InDeltaSlice(t, []float64{-a, a}, x, 1.e-14)
		assert.InDeltaSlice(t, []float64{1, 1}, w, 1.e-14)
	}
	{
		x, w := GaussLegendre(3)
		a := math.Sqrt(0.6)
		assert.InDeltaSlice(t, []float64{-a, 0, a}, x, 1.e-14)
		assert.InDeltaSlice(t, []float64{5. / 9., 8. / 9., 5. / 9.}, w, 1.e-14)
	}
	// n points integrate x^p exactly for p <= 2n-1
	for n := 1; n < 6; n++ {
		x, w := GaussLegendre(n)
		for p := 0; p <= 2*n-1; p++ {
			var sum float64
			for i := range x {
				sum += w[i] * math.Pow(x[i], float64(p))
			}
			exact := 0.
			if p%2 == 0 {
				exact = 2. / float64(p+1)
			}
			assert.InDeltaf(t, exact, sum, 1.e-13, "n = %d, p = %d", n, p)
		}
	}
	assert.Panics(t, func() { GaussLegendre(0) })
}

func TestTensorRules(t *testing.T) {
	{
		r := Line(2)
		assert.Equal(t, 1, r.Dim)
		assert.Equal(t, 2, r.Npts())
		assert.InDelta(t, 2., r.Measure(), 1.e-14)
	}
	{
		r := Quadrilateral(2)
		assert.Equal(t, 4, r.Npts())
		assert.InDelta(t, 4., r.Measure(), 1.e-14)
		// r varies fastest
		assert.Less(t, r.R[0][0], r.R[1][0])
		assert.Equal(t, r.R[0][1], r.R[1][1])
		// x^2 y^2 over the square is 4/9
		var sum float64
		for i, p := range r.R {
			sum += r.W[i] * p[0] * p[0] * p[1] * p[1]
		}
		assert.InDelta(t, 4./9., sum, 1.e-14)
	}
	{
		r := Hexahedron(2)
		assert.Equal(t, 8, r.Npts())
		assert.InDelta(t, 8., r.Measure(), 1.e-14)
	}
}

func TestSimplexRules(t *testing.T) {
	// Integral of x^a y^b over the unit triangle is a! b! / (a+b+2)!
	triMonomial := func(a, b int) float64 {
		return fact(a) * fact(b) / fact(a+b+2)
	}
	degree := map[int]int{1: 1, 3: 2, 6: 4}
	for npts, deg := range degree {
		r, err := Triangle(npts)
		require.NoError(t, err)
		assert.InDelta(t, 0.5, r.Measure(), 1.e-14)
		for a := 0; a <= deg; a++ {
			for b := 0; a+b <= deg; b++ {
				var sum float64
				for i, p := range r.R {
					sum += r.W[i] * math.Pow(p[0], float64(a)) * math.Pow(p[1], float64(b))
				}
				assert.InDeltaf(t, triMonomial(a, b), sum, 1.e-12, "npts = %d, a = %d, b = %d", npts, a, b)
			}
		}
	}
	// Integral of x^a y^b z^c over the unit tetrahedron is a! b! c! / (a+b+c+3)!
	tetMonomial := func(a, b, c int) float64 {
		return fact(a) * fact(b) * fact(c) / fact(a+b+c+3)
	}
	for npts, deg := range map[int]int{1: 1, 4: 2} {
		r, err := Tetrahedron(npts)
		require.NoError(t, err)
		assert.InDelta(t, 1./6., r.Measure(), 1.e-14)
		for a := 0; a <= deg; a++ {
			for b := 0; a+b <= deg; b++ {
				for c := 0; a+b+c <= deg; c++ {
					var sum float64
					for i, p := range r.R {
						sum += r.W[i] * math.Pow(p[0], float64(a)) *
							math.Pow(p[1], float64(b)) * math.Pow(p[2], float64(c))
					}
					assert.InDeltaf(t, tetMonomial(a, b, c), sum, 1.e-12, "npts = %d", npts)
				}
			}
		}
	}
	_, err := Triangle(2)
	assert.ErrorIs(t, err, ErrUnsupportedRule)
	_, err = Tetrahedron(5)
	assert.ErrorIs(t, err, ErrUnsupportedRule)
}

func fact(n int) (f float64) {
	f = 1
	for i := 2; i <= n; i++ {
		f *= float64(i)
	}
	return
}
