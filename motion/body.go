package motion

import (
	"math"

	"github.com/akmonengine/rigid/geometry"
	"github.com/akmonengine/rigid/pose"
	"github.com/go-gl/mathgl/mgl64"
)

// Body is the kinematic state of a rigid body: its current and previous pose
// and its linear and angular velocities.
type Body struct {
	// Spatial properties
	PreviousTransform pose.Transform
	Transform         pose.Transform

	// Linear motion (m/s)
	Velocity mgl64.Vec3
	// Angular motion (rad/s), world frame
	AngularVelocity mgl64.Vec3

	// Inertia tensor in the body frame
	InertiaLocal mgl64.Mat3

	LinearDamping  float64 // 0.0 - 1.0, typical: 0.01
	AngularDamping float64 // 0.0 - 1.0, typical: 0.05
}

// NewBody creates a body at rest at the given pose, with a unit inertia tensor.
func NewBody(transform pose.Transform) *Body {
	return &Body{
		PreviousTransform: transform,
		Transform:         transform,
		InertiaLocal:      mgl64.Ident3(),
	}
}

// Integrate advances the pose by dt seconds using the current velocities.
func (b *Body) Integrate(dt float64) {
	b.PreviousTransform = b.Transform

	b.Velocity = b.Velocity.Mul(math.Exp(-b.LinearDamping * dt))
	b.AngularVelocity = b.AngularVelocity.Mul(math.Exp(-b.AngularDamping * dt))

	b.Transform.SetQuatTransform(
		IntegrateRotation(b.Transform.QuatRotation(), b.AngularVelocity, dt),
		b.Transform.Translation().Add(b.Velocity.Mul(dt)),
	)
}

// Update derives the velocities from the pose change of the last dt seconds.
// A non-positive dt leaves the velocities untouched.
func (b *Body) Update(dt float64) {
	if dt <= 0 {
		return
	}

	b.Velocity = b.Transform.Translation().Sub(b.PreviousTransform.Translation()).Mul(1.0 / dt)
	b.AngularVelocity = AngularVelocity(b.PreviousTransform.QuatRotation(), b.Transform.QuatRotation(), dt)
}

// Displacement returns the current pose expressed in the previous pose's frame.
func (b *Body) Displacement() pose.Transform {
	return pose.RelativeTransform(b.PreviousTransform, b.Transform)
}

// LocalToWorld maps a body-frame point to world coordinates.
func (b *Body) LocalToWorld(p mgl64.Vec3) mgl64.Vec3 {
	return b.Transform.Transform(p)
}

// WorldToLocal maps a world point to body-frame coordinates.
func (b *Body) WorldToLocal(p mgl64.Vec3) mgl64.Vec3 {
	return pose.Inverse(b.Transform).Transform(p)
}

// InertiaWorld returns R·I·Rᵗ.
func (b *Body) InertiaWorld() mgl64.Mat3 {
	R := b.Transform.Rotation()
	return R.Mul3(b.InertiaLocal).Mul3(R.Transpose())
}

// PrincipalAxes returns the principal moments of inertia in ascending order and
// the world-frame pose whose rotation columns are the matching principal axes.
// The returned frame is right-handed.
func (b *Body) PrincipalAxes() (mgl64.Vec3, pose.Transform, error) {
	moments, axes, err := geometry.EigenDecomposition(b.InertiaWorld())
	if err != nil {
		return mgl64.Vec3{}, pose.Transform{}, err
	}

	if geometry.Triple(axes.Col(0), axes.Col(1), axes.Col(2)) < 0 {
		axes.SetCol(2, axes.Col(2).Mul(-1))
	}

	return moments, pose.FromMatrix(axes, b.Transform.Translation()), nil
}
