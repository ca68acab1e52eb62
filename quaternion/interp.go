package quaternion

import (
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/num/quat"
)

// FromMgl converts an mgl64 quaternion.
func FromMgl(q mgl64.Quat) Quaternion {
	return Quaternion{W: q.W, X: q.V[0], Y: q.V[1], Z: q.V[2]}
}

// Mgl converts q to an mgl64 quaternion.
func (q Quaternion) Mgl() mgl64.Quat {
	return mgl64.Quat{W: q.W, V: q.Vec()}
}

// FromNumber converts a gonum quaternion.
func FromNumber(n quat.Number) Quaternion {
	return Quaternion{W: n.Real, X: n.Imag, Y: n.Jmag, Z: n.Kmag}
}

// Number converts q to a gonum quaternion.
func (q Quaternion) Number() quat.Number {
	return quat.Number{Real: q.W, Imag: q.X, Jmag: q.Y, Kmag: q.Z}
}

// Nlerp interpolates linearly along the shortest arc and renormalizes.
func Nlerp(from, to Quaternion, t float64) Quaternion {
	if from.Dot(to) < 0 {
		to = to.Neg()
	}

	return from.Add(to.Sub(from).Scale(t)).Normalize()
}

// Slerp interpolates at constant angular speed along the shortest arc:
// from·(from⁻¹·to)^t. t = 0 yields from and t = 1 yields to, up to sign.
func Slerp(from, to Quaternion, t float64) Quaternion {
	if from.Dot(to) < 0 {
		to = to.Neg()
	}

	// Nearly parallel, Pow loses precision.
	if from.Dot(to) > 1-1e-9 {
		return Nlerp(from, to, t)
	}

	f := from.Number()
	delta := quat.Mul(quat.Conj(f), to.Number())
	step := quat.Pow(delta, quat.Number{Real: t})

	return FromNumber(quat.Mul(f, step)).Normalize()
}
