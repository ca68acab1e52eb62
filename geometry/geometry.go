// Package geometry provides free functions on raw 3D vectors and matrices:
// normalization, scalar triple product, orthonormal frame construction,
// symmetric eigendecomposition, the hat operator, fixed-size concatenation
// and relative pose between two (rotation, translation) pairs.
//
// Matrices follow mgl64 conventions: column-major storage, At(row, col).
package geometry

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

// Normalize returns v scaled to unit length and true.
// If the squared length of v is not strictly positive, v is returned unchanged with false.
func Normalize(v mgl64.Vec3) (mgl64.Vec3, bool) {
	sqrLength := v.Dot(v)
	if sqrLength > 0 {
		return v.Mul(1.0 / math.Sqrt(sqrLength)), true
	}

	return v, false
}

// Triple returns the scalar triple product x · (y × z).
func Triple(x, y, z mgl64.Vec3) float64 {
	return x.Dot(y.Cross(z))
}

// GenerateCoordinateSystem builds u and v such that {u, v, w} is a right-handed
// orthonormal basis. w must already be normalized.
//
// u is taken in the x-z plane when |w.x| >= |w.y| and in the y-z plane otherwise,
// so the projection being normalized never collapses to zero length.
func GenerateCoordinateSystem(w mgl64.Vec3) (u, v mgl64.Vec3) {
	if math.Abs(w[0]) >= math.Abs(w[1]) {
		invLength := 1.0 / math.Sqrt(w[0]*w[0]+w[2]*w[2])
		u = mgl64.Vec3{-w[2] * invLength, 0, w[0] * invLength}
		v = mgl64.Vec3{
			w[1] * u[2],
			w[2]*u[0] - w[0]*u[2],
			-w[1] * u[0],
		}
	} else {
		invLength := 1.0 / math.Sqrt(w[1]*w[1]+w[2]*w[2])
		u = mgl64.Vec3{0, w[2] * invLength, -w[1] * invLength}
		v = mgl64.Vec3{
			w[1]*u[2] - w[2]*u[1],
			-w[0] * u[2],
			w[0] * u[1],
		}
	}

	return u, v
}

// GenerateCoordinateSystemMatrix fills columns 1 and 2 of axis from its column 0,
// with the same construction as GenerateCoordinateSystem.
//
// Column 0 must be normalized and is expected to be the axis closest to z.
// Neither condition is checked.
func GenerateCoordinateSystemMatrix(axis *mgl64.Mat3) {
	u, v := GenerateCoordinateSystem(axis.Col(0))
	axis.SetCol(1, u)
	axis.SetCol(2, v)
}

// Hat returns the skew-symmetric matrix M such that M·x == vec × x.
func Hat(vec mgl64.Vec3) mgl64.Mat3 {
	return mgl64.Mat3FromRows(
		mgl64.Vec3{0, -vec[2], vec[1]},
		mgl64.Vec3{vec[2], 0, -vec[0]},
		mgl64.Vec3{-vec[1], vec[0], 0},
	)
}

// RelativeTransform expresses the pose (R2, t2) in the local frame of (R1, t1):
// R = R1ᵗ·R2 and t = R1ᵗ·(t2 - t1).
func RelativeTransform(R1 mgl64.Mat3, t1 mgl64.Vec3, R2 mgl64.Mat3, t2 mgl64.Vec3) (mgl64.Mat3, mgl64.Vec3) {
	R1t := R1.Transpose()
	return R1t.Mul3(R2), R1t.Mul3x1(t2.Sub(t1))
}

// RelativeIsometry is RelativeTransform for two homogeneous isometries.
// Only the upper-left 3x3 block and the translation column are read.
func RelativeIsometry(T1, T2 mgl64.Mat4) (mgl64.Mat3, mgl64.Vec3) {
	return RelativeTransform(T1.Mat3(), T1.Col(3).Vec3(), T2.Mat3(), T2.Col(3).Vec3())
}
