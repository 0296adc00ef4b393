package vector

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"testing"

	"github.com/notargets/FEMKernel/utils"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const tol = 1.e-12

func mustNew(t *testing.T, data []float64) *Vector {
	t.Helper()
	v, err := New(data)
	require.NoError(t, err)
	return v
}

func randomVector(t *testing.T, rng *rand.Rand, n int) *Vector {
	data := make([]float64, n)
	for i := range data {
		data[i] = rng.Float64()*20 - 10
	}
	return mustNew(t, data)
}

func TestNewCopiesInput(t *testing.T) {
	src := []float64{1, 2, 3}
	v := mustNew(t, src)
	src[0] = 100
	assert.Equal(t, 1., v.At(0))
	raw := v.RawData()
	raw[1] = 100
	assert.Equal(t, 2., v.At(1))
	assert.Equal(t, 3, v.Len())
}

func TestNewNilSource(t *testing.T) {
	_, err := New(nil)
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrInvalidArgument))

	// An empty, non-nil source is a valid zero-length vector
	v, err := New([]float64{})
	require.NoError(t, err)
	assert.Equal(t, 0, v.Len())
}

func TestArithmetic(t *testing.T) {
	a := mustNew(t, []float64{1, 2, 3})
	b := mustNew(t, []float64{4, -5, 6})

	sum, err := a.Add(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{5, -3, 9}, sum.RawData())

	diff, err := a.Sub(b)
	require.NoError(t, err)
	assert.Equal(t, []float64{-3, 7, -3}, diff.RawData())

	assert.Equal(t, []float64{2, 4, 6}, a.Scale(2).RawData())

	axpy, err := a.AXPY(-1, b)
	require.NoError(t, err)
	assert.Equal(t, diff.RawData(), axpy.RawData())

	dot, err := a.Dot(b)
	require.NoError(t, err)
	assert.Equal(t, 12., dot)

	// Operands are untouched
	assert.Equal(t, []float64{1, 2, 3}, a.RawData())
	assert.Equal(t, []float64{4, -5, 6}, b.RawData())
}

func TestAlgebraicLaws(t *testing.T) {
	rng := rand.New(rand.NewSource(7))
	for n := 1; n <= 16; n++ {
		a, b, c := randomVector(t, rng, n), randomVector(t, rng, n), randomVector(t, rng, n)

		ab, err := a.Add(b)
		require.NoError(t, err)
		ba, err := b.Add(a)
		require.NoError(t, err)
		assert.InDeltaSlicef(t, ab.RawData(), ba.RawData(), tol, "commutativity n=%d", n)

		abc, err := ab.Add(c)
		require.NoError(t, err)
		bc, err := b.Add(c)
		require.NoError(t, err)
		aBC, err := a.Add(bc)
		require.NoError(t, err)
		assert.InDeltaSlicef(t, abc.RawData(), aBC.RawData(), 1.e-10, "associativity n=%d", n)
	}
}

func TestNormProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	for n := 1; n <= 16; n++ {
		v := randomVector(t, rng, n)
		u, err := v.Normalize()
		require.NoError(t, err)
		assert.InDelta(t, 1., u.Norm(), tol)

		vv, err := v.Dot(v)
		require.NoError(t, err)
		assert.InDelta(t, v.Norm()*v.Norm(), vv, 1.e-9*vv)
	}
	assert.InDelta(t, 5., mustNew(t, []float64{3, 4}).Norm(), tol)
}

func TestNormalizeZero(t *testing.T) {
	_, err := Zeros(4).Normalize()
	require.Error(t, err)
	assert.True(t, errors.Is(err, utils.ErrNumerical))
	var zn *utils.ZeroNormError
	require.True(t, errors.As(err, &zn))
	assert.Equal(t, 4, zn.Len)
}

func TestSizeMismatch(t *testing.T) {
	for la := 0; la <= 4; la++ {
		for lb := 0; lb <= 4; lb++ {
			if la == lb {
				continue
			}
			t.Run(fmt.Sprintf("%d-%d", la, lb), func(t *testing.T) {
				a, b := Zeros(la), Zeros(lb)
				_, errAdd := a.Add(b)
				_, errSub := a.Sub(b)
				_, errDot := a.Dot(b)
				_, errAXPY := a.AXPY(1, b)
				for _, err := range []error{errAdd, errSub, errDot, errAXPY} {
					require.Error(t, err)
					assert.True(t, errors.Is(err, utils.ErrInvalidArgument))
					var sm *utils.SizeMismatchError
					require.True(t, errors.As(err, &sm))
					assert.Equal(t, la, sm.Left)
					assert.Equal(t, lb, sm.Right)
				}
			})
		}
	}
}

func TestConcurrentNorm(t *testing.T) {
	v := mustNew(t, []float64{1, 2, 2})
	var wg sync.WaitGroup
	results := make([]float64, 32)
	for i := range results {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			results[i] = v.Norm()
		}(i)
	}
	wg.Wait()
	for _, r := range results {
		assert.Equal(t, results[0], r)
	}
	assert.InDelta(t, 3., results[0], tol)
	assert.False(t, math.IsNaN(v.Norm()))
}
