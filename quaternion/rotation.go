package quaternion

import (
	"math"

	"github.com/go-gl/mathgl/mgl64"
)

var next = [3]int{1, 2, 0}

// FromRotation converts a rotation matrix to a unit quaternion.
//
// Following Shoemake, the formula is chosen from the trace or, when the trace is
// not positive, from the dominant diagonal entry so the divisor never nears zero.
// The result is unspecified if R is not orthonormal with determinant +1.
func FromRotation(R mgl64.Mat3) Quaternion {
	trace := R.At(0, 0) + R.At(1, 1) + R.At(2, 2)

	if trace > 0 {
		root := math.Sqrt(trace + 1) // 2w
		w := 0.5 * root
		root = 0.5 / root // 1/(4w)
		return Quaternion{
			W: w,
			X: (R.At(2, 1) - R.At(1, 2)) * root,
			Y: (R.At(0, 2) - R.At(2, 0)) * root,
			Z: (R.At(1, 0) - R.At(0, 1)) * root,
		}
	}

	i := 0
	if R.At(1, 1) > R.At(0, 0) {
		i = 1
	}
	if R.At(2, 2) > R.At(i, i) {
		i = 2
	}
	j := next[i]
	k := next[j]

	var v [3]float64
	root := math.Sqrt(R.At(i, i) - R.At(j, j) - R.At(k, k) + 1)
	v[i] = 0.5 * root
	root = 0.5 / root
	w := (R.At(k, j) - R.At(j, k)) * root
	v[j] = (R.At(j, i) + R.At(i, j)) * root
	v[k] = (R.At(k, i) + R.At(i, k)) * root

	return Quaternion{W: w, X: v[0], Y: v[1], Z: v[2]}
}

// ToRotation returns the rotation matrix of q. q and -q give the same matrix.
func (q Quaternion) ToRotation() mgl64.Mat3 {
	twoX, twoY, twoZ := 2*q.X, 2*q.Y, 2*q.Z
	twoWX, twoWY, twoWZ := twoX*q.W, twoY*q.W, twoZ*q.W
	twoXX, twoXY, twoXZ := twoX*q.X, twoY*q.X, twoZ*q.X
	twoYY, twoYZ, twoZZ := twoY*q.Y, twoZ*q.Y, twoZ*q.Z

	return mgl64.Mat3FromRows(
		mgl64.Vec3{1 - (twoYY + twoZZ), twoXY - twoWZ, twoXZ + twoWY},
		mgl64.Vec3{twoXY + twoWZ, 1 - (twoXX + twoZZ), twoYZ - twoWX},
		mgl64.Vec3{twoXZ - twoWY, twoYZ + twoWX, 1 - (twoXX + twoYY)},
	)
}

// FromAxes converts three orthonormal axes, the columns of a rotation matrix, to a quaternion.
func FromAxes(axis [3]mgl64.Vec3) Quaternion {
	return FromRotation(mgl64.Mat3FromCols(axis[0], axis[1], axis[2]))
}

// ToAxes returns the rotated x, y and z axes, i.e. the columns of ToRotation.
func (q Quaternion) ToAxes() [3]mgl64.Vec3 {
	R := q.ToRotation()
	return [3]mgl64.Vec3{R.Col(0), R.Col(1), R.Col(2)}
}
