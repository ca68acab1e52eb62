package motion

import (
	"math"

	"github.com/akmonengine/rigid/pose"
	"github.com/akmonengine/rigid/quaternion"
	"github.com/go-gl/mathgl/mgl64"
	"github.com/pkg/errors"
)

// ErrInvalidTime is returned by Integrate for a NaN time.
var ErrInvalidTime = errors.New("invalid motion time")

// InterpMotion moves a body from tf1 to tf2 over the normalized time [0, 1].
// The reference point, in the body frame, travels on a straight line at constant
// speed while the body spins at constant angular speed around a fixed world axis.
type InterpMotion struct {
	tf1, tf2 pose.Transform
	tf       pose.Transform

	referencePoint mgl64.Vec3

	linearVelocity  mgl64.Vec3
	angularAxis     mgl64.Vec3
	angularVelocity float64
}

// NewInterpMotion creates a motion from tf1 to tf2 around the body origin.
func NewInterpMotion(tf1, tf2 pose.Transform) *InterpMotion {
	return NewInterpMotionAround(tf1, tf2, mgl64.Vec3{})
}

// NewInterpMotionAround creates a motion from tf1 to tf2 around the body-frame point p.
func NewInterpMotionAround(tf1, tf2 pose.Transform, p mgl64.Vec3) *InterpMotion {
	m := &InterpMotion{
		tf1:            tf1,
		tf2:            tf2,
		tf:             tf1,
		referencePoint: p,
	}
	m.computeVelocity()

	return m
}

func (m *InterpMotion) computeVelocity() {
	m.linearVelocity = m.tf2.Transform(m.referencePoint).Sub(m.tf1.Transform(m.referencePoint))

	// World-frame rotation taking tf1 to tf2
	delta := m.tf2.QuatRotation().Mul(m.tf1.QuatRotation().Conj())
	m.angularAxis, m.angularVelocity = delta.ToAxisAngle()
}

// absoluteRotation returns the orientation reached at time dt.
func (m *InterpMotion) absoluteRotation(dt float64) quaternion.Quaternion {
	delta := quaternion.FromAxisAngle(m.angularAxis, m.angularVelocity*dt)
	return delta.Mul(m.tf1.QuatRotation())
}

// Integrate moves the current transform to time dt. dt is clamped to [0, 1].
func (m *InterpMotion) Integrate(dt float64) error {
	if math.IsNaN(dt) {
		return errors.Wrapf(ErrInvalidTime, "dt=%v", dt)
	}
	dt = max(0, min(dt, 1))

	q := m.absoluteRotation(dt)
	origin := m.tf1.Transform(m.referencePoint).Add(m.linearVelocity.Mul(dt))
	m.tf.SetQuatTransform(q, origin.Sub(q.Transform(m.referencePoint)))

	return nil
}

// CurrentTransform returns the pose reached by the last Integrate call.
func (m *InterpMotion) CurrentTransform() pose.Transform {
	return m.tf
}

// ReferencePoint returns the body-frame point moving on a straight line.
func (m *InterpMotion) ReferencePoint() mgl64.Vec3 {
	return m.referencePoint
}

// LinearVelocity returns the displacement of the reference point over the whole motion.
func (m *InterpMotion) LinearVelocity() mgl64.Vec3 {
	return m.linearVelocity
}

// AngularVelocity returns the rotation axis and the angle swept over the whole motion.
func (m *InterpMotion) AngularVelocity() (mgl64.Vec3, float64) {
	return m.angularAxis, m.angularVelocity
}
