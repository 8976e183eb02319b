package utils

import (
	"errors"
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSmallMatrixInverse(t *testing.T) {
	// a*ainv must be the identity
	checkIdentity := func(a, ainv SmallMatrix) {
		for i := 0; i < a.Dim; i++ {
			for j := 0; j < a.Dim; j++ {
				var sum, delta float64
				for k := 0; k < a.Dim; k++ {
					sum += a.At(i, k) * ainv.At(k, j)
				}
				if i == j {
					delta = 1
				}
				assert.InDelta(t, delta, sum, 1.e-14)
			}
		}
	}
	{ // 1D is the scalar reciprocal
		a := NewSmallMatrix(1)
		a.Set(0, 0, 4)
		var ainv SmallMatrix
		det, err := a.Inverse(&ainv, DETTOL)
		require.NoError(t, err)
		assert.Equal(t, 4., det)
		assert.Equal(t, 0.25, ainv.At(0, 0))
		assert.Equal(t, 1, ainv.Dim)
	}
	{ // 2D
		a := NewSmallMatrix(2)
		a.Data = [3][3]float64{{4, 7}, {2, 6}}
		var ainv SmallMatrix
		det, err := a.Inverse(&ainv, DETTOL)
		require.NoError(t, err)
		assert.InDelta(t, 10., det, 1.e-14)
		checkIdentity(a, ainv)
	}
	{ // 3D
		a := NewSmallMatrix(3)
		a.Data = [3][3]float64{
			{2, -1, 0},
			{-1, 2, -1},
			{0, -1, 2},
		}
		var ainv SmallMatrix
		det, err := a.Inverse(&ainv, DETTOL)
		require.NoError(t, err)
		assert.InDelta(t, 4., det, 1.e-14)
		checkIdentity(a, ainv)
		assert.InDelta(t, 0.75, ainv.At(0, 0), 1.e-14)
		assert.InDelta(t, 0.5, ainv.At(0, 1), 1.e-14)
	}
}

func TestSmallMatrixSingular(t *testing.T) {
	{
		a := NewSmallMatrix(2)
		a.Data = [3][3]float64{{1, 2}, {2, 4}}
		out := NewSmallMatrix(2)
		out.Set(0, 0, 42)
		det, err := a.Inverse(&out, DETTOL)
		assert.True(t, errors.Is(err, ErrSingularMatrix))
		assert.Equal(t, 0., det)
		assert.Equal(t, 42., out.At(0, 0), "output must be untouched on failure")
	}
	{
		a := NewSmallMatrix(1)
		a.Set(0, 0, 1.e-15)
		var out SmallMatrix
		_, err := a.Inverse(&out, DETTOL)
		assert.ErrorIs(t, err, ErrSingularMatrix)
		_, err = a.Inverse(&out, 0)
		assert.NoError(t, err)
	}
	{
		a := NewSmallMatrix(1)
		a.Set(0, 0, math.NaN())
		var out SmallMatrix
		_, err := a.Inverse(&out, DETTOL)
		assert.ErrorIs(t, err, ErrNonFiniteMatrix)
	}
	{ // Infinite entries give an infinite det, not an infinite inverse
		for _, inf := range []float64{math.Inf(1), math.Inf(-1)} {
			a := NewSmallMatrix(2)
			a.Data = [3][3]float64{{inf, 0}, {0, 1}}
			out := NewSmallMatrix(2)
			det, err := a.Inverse(&out, DETTOL)
			assert.ErrorIs(t, err, ErrNonFiniteMatrix)
			assert.True(t, math.IsInf(det, 0))
			assert.Equal(t, [3][3]float64{}, out.Data)
		}
		a := NewSmallMatrix(3)
		a.Data = [3][3]float64{{1, 0, 0}, {0, math.Inf(1), 0}, {0, 0, math.Inf(1)}}
		var out SmallMatrix
		_, err := a.Inverse(&out, math.Inf(1))
		assert.ErrorIs(t, err, ErrNonFiniteMatrix)
	}
	assert.Panics(t, func() { NewSmallMatrix(0) })
	assert.Panics(t, func() { NewSmallMatrix(4) })
}
