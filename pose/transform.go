// Package pose implements rigid transforms: a rotation plus a translation,
// applied as v ↦ R·v + T.
//
// The rotation is stored as a unit quaternion, which is authoritative. The matrix
// form is a cache filled on demand by Rotation, so a Transform must not be read
// from several goroutines at once without external synchronization.
// Distinct Transform values share nothing and are independent.
package pose

import (
	"fmt"

	"github.com/akmonengine/rigid/quaternion"
	"github.com/go-gl/mathgl/mgl64"
	"gonum.org/v1/gonum/floats/scalar"
)

// Transform represents a position and orientation in 3D space.
// The zero value is not valid, use Identity or one of the From constructors.
type Transform struct {
	translation mgl64.Vec3
	q           quaternion.Quaternion

	// rot equals q.ToRotation() whenever rotSet is true.
	rot    mgl64.Mat3
	rotSet bool
}

// Identity returns the transform that does not move anything.
func Identity() Transform {
	var t Transform
	t.SetIdentity()
	return t
}

// FromMatrix creates a transform from a rotation matrix and a translation.
func FromMatrix(R mgl64.Mat3, T mgl64.Vec3) Transform {
	return Transform{
		translation: T,
		q:           quaternion.FromRotation(R),
		rot:         R,
		rotSet:      true,
	}
}

// FromQuat creates a transform from a quaternion and a translation.
func FromQuat(q quaternion.Quaternion, T mgl64.Vec3) Transform {
	return Transform{translation: T, q: q}
}

// FromRotation creates a pure rotation from a matrix.
func FromRotation(R mgl64.Mat3) Transform {
	return FromMatrix(R, mgl64.Vec3{})
}

// FromQuatRotation creates a pure rotation from a quaternion.
func FromQuatRotation(q quaternion.Quaternion) Transform {
	return FromQuat(q, mgl64.Vec3{})
}

// FromTranslation creates a pure translation.
func FromTranslation(T mgl64.Vec3) Transform {
	return Transform{
		translation: T,
		q:           quaternion.Identity(),
		rot:         mgl64.Ident3(),
		rotSet:      true,
	}
}

func (t Transform) Translation() mgl64.Vec3 {
	return t.translation
}

func (t Transform) QuatRotation() quaternion.Quaternion {
	return t.q
}

// Rotation returns the rotation matrix, computing and caching it from the
// quaternion when the cache is stale.
func (t *Transform) Rotation() mgl64.Mat3 {
	if !t.rotSet {
		t.rot = t.q.ToRotation()
		t.rotSet = true
	}

	return t.rot
}

// SetTransform replaces rotation and translation. The quaternion is derived from R.
func (t *Transform) SetTransform(R mgl64.Mat3, T mgl64.Vec3) {
	t.rot = R
	t.rotSet = true
	t.translation = T
	t.q = quaternion.FromRotation(R)
}

// SetQuatTransform replaces rotation and translation. The matrix cache is invalidated.
func (t *Transform) SetQuatTransform(q quaternion.Quaternion, T mgl64.Vec3) {
	t.rotSet = false
	t.q = q
	t.translation = T
}

// SetRotation replaces the rotation. The quaternion is derived from R.
func (t *Transform) SetRotation(R mgl64.Mat3) {
	t.rot = R
	t.rotSet = true
	t.q = quaternion.FromRotation(R)
}

func (t *Transform) SetTranslation(T mgl64.Vec3) {
	t.translation = T
}

// SetQuatRotation replaces the rotation. The matrix cache is invalidated.
func (t *Transform) SetQuatRotation(q quaternion.Quaternion) {
	t.rotSet = false
	t.q = q
}

// SetIdentity resets t to the identity transform.
func (t *Transform) SetIdentity() {
	t.rot = mgl64.Ident3()
	t.rotSet = true
	t.translation = mgl64.Vec3{}
	t.q = quaternion.Identity()
}

// IsIdentity reports whether the quaternion is exactly the identity and the
// translation exactly zero.
func (t Transform) IsIdentity() bool {
	return t.q.IsIdentity() && t.translation == mgl64.Vec3{}
}

// Transform applies t to the point v.
func (t Transform) Transform(v mgl64.Vec3) mgl64.Vec3 {
	return t.q.Transform(v).Add(t.translation)
}

// Mul returns t ∘ other: applying the result is applying other, then t.
func (t Transform) Mul(other Transform) Transform {
	return FromQuat(t.q.Mul(other.q), t.q.Transform(other.translation).Add(t.translation))
}

// Compose replaces t with t ∘ other.
func (t *Transform) Compose(other Transform) {
	t.rotSet = false
	t.translation = t.q.Transform(other.translation).Add(t.translation)
	t.q = t.q.Mul(other.q)
}

// Inverse inverts t in place and returns it.
// The rotation is inverted with the conjugate, which assumes a unit quaternion.
func (t *Transform) Inverse() *Transform {
	t.rotSet = false
	t.q = t.q.Conj()
	t.translation = t.q.Transform(t.translation.Mul(-1))
	return t
}

// InverseTimes returns t⁻¹ ∘ other without modifying t: the pose of other
// expressed in the local frame of t.
func (t Transform) InverseTimes(other Transform) Transform {
	qInv := t.q.Conj()
	return FromQuat(qInv.Mul(other.q), qInv.Transform(other.translation.Sub(t.translation)))
}

// ApproxEqual compares translations component-wise and rotations up to the
// quaternion double cover.
func (t Transform) ApproxEqual(other Transform, epsilon float64) bool {
	for i := range t.translation {
		if !scalar.EqualWithinAbs(t.translation[i], other.translation[i], epsilon) {
			return false
		}
	}

	return t.q.SameRotation(other.q, epsilon)
}

// Mat4 returns the homogeneous matrix of t.
func (t Transform) Mat4() mgl64.Mat4 {
	R := t.q.ToRotation()
	m := R.Mat4()
	m.SetCol(3, t.translation.Vec4(1))
	return m
}

func (t Transform) String() string {
	return fmt.Sprintf("Transform{q: %v, T: (%g, %g, %g)}", t.q, t.translation[0], t.translation[1], t.translation[2])
}

// Inverse returns the inverse of tf, leaving tf untouched.
func Inverse(tf Transform) Transform {
	tf.Inverse()
	return tf
}

// RelativeTransform returns the pose of tf2 in the local frame of tf1.
func RelativeTransform(tf1, tf2 Transform) Transform {
	return tf1.InverseTimes(tf2)
}
