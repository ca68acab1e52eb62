// Package quaternion implements unit quaternions representing 3D rotations.
//
// A Quaternion is a plain value. Every constructor that builds a quaternion from a
// rotation returns a unit quaternion, and the rotation operations assume unit
// length without checking it. q and -q represent the same rotation.
package quaternion

import (
	"fmt"
	"math"

	"github.com/akmonengine/rigid/geometry"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

// Quaternion is w + xi + yj + zk.
// The zero value is not a rotation, use Identity.
type Quaternion struct {
	W, X, Y, Z float64
}

// Identity returns the identity rotation (1, 0, 0, 0).
func Identity() Quaternion {
	return Quaternion{W: 1}
}

// New builds a quaternion from its components. The caller is responsible for unit length.
func New(w, x, y, z float64) Quaternion {
	return Quaternion{W: w, X: x, Y: y, Z: z}
}

// Vec returns the vector part (x, y, z).
func (q Quaternion) Vec() mgl64.Vec3 {
	return mgl64.Vec3{q.X, q.Y, q.Z}
}

// IsIdentity reports whether q is exactly (1, 0, 0, 0). No tolerance is applied.
func (q Quaternion) IsIdentity() bool {
	return q.W == 1 && q.X == 0 && q.Y == 0 && q.Z == 0
}

// Dot returns the sum of component products.
func (q Quaternion) Dot(other Quaternion) float64 {
	return q.W*other.W + q.X*other.X + q.Y*other.Y + q.Z*other.Z
}

// Add is component-wise and does not preserve unit length.
func (q Quaternion) Add(other Quaternion) Quaternion {
	return Quaternion{q.W + other.W, q.X + other.X, q.Y + other.Y, q.Z + other.Z}
}

// Sub is component-wise and does not preserve unit length.
func (q Quaternion) Sub(other Quaternion) Quaternion {
	return Quaternion{q.W - other.W, q.X - other.X, q.Y - other.Y, q.Z - other.Z}
}

// Scale multiplies every component by t and does not preserve unit length.
func (q Quaternion) Scale(t float64) Quaternion {
	return Quaternion{q.W * t, q.X * t, q.Y * t, q.Z * t}
}

// Neg negates all components: same rotation, other sheet of the double cover.
func (q Quaternion) Neg() Quaternion {
	return Quaternion{-q.W, -q.X, -q.Y, -q.Z}
}

// Mul returns the Hamilton product q*other.
// Applied to a vector, the product rotates by other first and then by q.
func (q Quaternion) Mul(other Quaternion) Quaternion {
	return FromMgl(q.Mgl().Mul(other.Mgl()))
}

// Conj negates the vector part. It is the inverse rotation only for unit quaternions.
func (q Quaternion) Conj() Quaternion {
	return Quaternion{q.W, -q.X, -q.Y, -q.Z}
}

// Inverse returns the multiplicative inverse conj(q)/|q|².
// For a unit quaternion this is exactly Conj. The zero quaternion is returned unchanged.
// pose.Transform inverts its rotation with Conj instead, so the two only agree
// for unit quaternions.
func (q Quaternion) Inverse() Quaternion {
	sqrLength := q.Dot(q)
	if sqrLength == 0 {
		return q
	}
	if sqrLength == 1 {
		return q.Conj()
	}

	return q.Conj().Scale(1.0 / sqrLength)
}

// Len returns the Euclidean norm of the four components.
func (q Quaternion) Len() float64 {
	return math.Sqrt(q.Dot(q))
}

// Normalize returns q scaled to unit length. The zero quaternion yields Identity.
func (q Quaternion) Normalize() Quaternion {
	length := q.Len()
	if length == 0 {
		return Identity()
	}
	if length == 1 {
		return q
	}

	return q.Scale(1.0 / length)
}

// Transform rotates v by q without building a matrix:
// v' = v + w·t + u×t with u the vector part and t = 2·(u×v).
func (q Quaternion) Transform(v mgl64.Vec3) mgl64.Vec3 {
	u := q.Vec()
	t := u.Cross(v).Mul(2)
	return v.Add(t.Mul(q.W)).Add(u.Cross(t))
}

// ApproxEqual compares components within an absolute tolerance.
func (q Quaternion) ApproxEqual(other Quaternion, epsilon float64) bool {
	return scalar.EqualWithinAbs(q.W, other.W, epsilon) &&
		scalar.EqualWithinAbs(q.X, other.X, epsilon) &&
		scalar.EqualWithinAbs(q.Y, other.Y, epsilon) &&
		scalar.EqualWithinAbs(q.Z, other.Z, epsilon)
}

// SameRotation reports whether q and other describe the same rotation,
// accepting both q and -q.
func (q Quaternion) SameRotation(other Quaternion, epsilon float64) bool {
	return q.ApproxEqual(other, epsilon) || q.ApproxEqual(other.Neg(), epsilon)
}

func (q Quaternion) String() string {
	return fmt.Sprintf("(%g, %g, %g, %g)", q.W, q.X, q.Y, q.Z)
}

// FromAxisAngle returns the rotation of angle radians around axis.
// The axis is normalized first; a zero axis yields Identity.
func FromAxisAngle(axis mgl64.Vec3, angle float64) Quaternion {
	axis, ok := geometry.Normalize(axis)
	if !ok {
		return Identity()
	}

	half := angle * 0.5
	sinHalf := math.Sin(half)
	return Quaternion{
		W: math.Cos(half),
		X: axis[0] * sinHalf,
		Y: axis[1] * sinHalf,
		Z: axis[2] * sinHalf,
	}
}

// ToAxisAngle returns the unit axis and the angle of q, with the angle in [0, π].
// A quaternion with negative w is negated first, so q and -q give the same result.
// When the vector part is zero the axis is (1, 0, 0) and the angle 0.
func (q Quaternion) ToAxisAngle() (mgl64.Vec3, float64) {
	if q.W < 0 {
		q = q.Neg()
	}

	v := q.Vec()
	sqrLength := v.Dot(v)
	if sqrLength > 0 {
		length := math.Sqrt(sqrLength)
		return v.Mul(1.0 / length), 2 * math.Atan2(length, q.W)
	}

	return mgl64.Vec3{1, 0, 0}, 0
}
