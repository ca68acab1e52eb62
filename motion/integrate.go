// Package motion moves poses over time: it integrates angular velocities into
// quaternions and interpolates rigidly between two transforms.
package motion

import (
	"github.com/akmonengine/rigid/quaternion"
	"github.com/go-gl/mathgl/mgl64"
)

// IntegrateRotation advances q by the angular velocity omega (rad/s, world frame)
// over dt seconds, using q' = q + ½·(0, ω)·q·dt, then renormalizes.
func IntegrateRotation(q quaternion.Quaternion, omega mgl64.Vec3, dt float64) quaternion.Quaternion {
	omegaQuat := quaternion.New(0, omega[0], omega[1], omega[2])
	qDot := omegaQuat.Mul(q).Scale(0.5)
	return q.Add(qDot.Scale(dt)).Normalize()
}

// AngularVelocity returns the world-frame angular velocity that takes previous
// to current in dt seconds, along the shortest arc. It is the first-order inverse
// of IntegrateRotation.
func AngularVelocity(previous, current quaternion.Quaternion, dt float64) mgl64.Vec3 {
	qDelta := current.Mul(previous.Conj()).Normalize()
	if qDelta.W >= 0.0 {
		return qDelta.Vec().Mul(2.0 / dt)
	}

	return qDelta.Vec().Mul(-2.0 / dt)
}
