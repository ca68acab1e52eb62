package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
	"gonum.org/v1/gonum/mat"
)

// ErrEigenDecomposition is returned when the symmetric eigen solver does not converge
// or the matrix holds a NaN or infinite entry.
var ErrEigenDecomposition = errors.New("failed to compute eigendecomposition")

// EigenDecomposition computes the eigenvalues and eigenvectors of the symmetric matrix m.
//
// Only the upper triangle of m is read; symmetry is assumed, not checked.
// Eigenvalues are returned in ascending order and the i-th column of the returned
// matrix is the unit eigenvector of the i-th eigenvalue.
// On error both outputs are zero values and must not be used.
func EigenDecomposition(m mgl64.Mat3) (mgl64.Vec3, mgl64.Mat3, error) {
	if !allFinite(m[:]) {
		return mgl64.Vec3{}, mgl64.Mat3{}, errors.Wrapf(ErrEigenDecomposition, "non-finite matrix %v", m)
	}

	sym := mat.NewSymDense(3, []float64{
		m.At(0, 0), m.At(0, 1), m.At(0, 2),
		m.At(1, 0), m.At(1, 1), m.At(1, 2),
		m.At(2, 0), m.At(2, 1), m.At(2, 2),
	})

	var solver mat.EigenSym
	if ok := solver.Factorize(sym, true); !ok {
		return mgl64.Vec3{}, mgl64.Mat3{}, errors.Wrapf(ErrEigenDecomposition, "matrix %v", m)
	}

	var values mgl64.Vec3
	solver.Values(values[:])
	if !allFinite(values[:]) {
		return mgl64.Vec3{}, mgl64.Mat3{}, errors.Wrapf(ErrEigenDecomposition, "non-finite eigenvalues %v", values)
	}

	var vectors mat.Dense
	solver.VectorsTo(&vectors)

	var out mgl64.Mat3
	for row := 0; row < 3; row++ {
		for col := 0; col < 3; col++ {
			out.Set(row, col, vectors.At(row, col))
		}
	}

	return values, out, nil
}

func allFinite(values []float64) bool {
	for _, v := range values {
		if math.IsNaN(v) || math.IsInf(v, 0) {
			return false
		}
	}
	return true
}
