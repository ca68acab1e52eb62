package motion

import (
	"math"
	"testing"

	"github.com/akmonengine/rigid/geometry"
	"github.com/akmonengine/rigid/pose"
	"github.com/akmonengine/rigid/quaternion"
	"github.com/go-gl/mathgl/mgl64"
)

func almostEqual(a, b, tolerance float64) bool {
	return math.Abs(a-b) <= tolerance
}

func vec3AlmostEqual(a, b mgl64.Vec3, tolerance float64) bool {
	for i := range a {
		if !almostEqual(a[i], b[i], tolerance) {
			return false
		}
	}
	return true
}

func mat3AlmostEqual(a, b mgl64.Mat3, tolerance float64) bool {
	for i := range a {
		if !almostEqual(a[i], b[i], tolerance) {
			return false
		}
	}
	return true
}

// =============================================================================
// NewBody Tests
// =============================================================================

func TestNewBody(t *testing.T) {
	transform := pose.FromTranslation(mgl64.Vec3{1, 2, 3})
	body := NewBody(transform)

	if !body.Transform.ApproxEqual(transform, 0) {
		t.Errorf("Transform = %v, want %v", body.Transform, transform)
	}
	if !body.PreviousTransform.ApproxEqual(transform, 0) {
		t.Errorf("PreviousTransform = %v, want %v", body.PreviousTransform, transform)
	}
	if body.Velocity != (mgl64.Vec3{}) || body.AngularVelocity != (mgl64.Vec3{}) {
		t.Errorf("new body should be at rest, got v=%v ω=%v", body.Velocity, body.AngularVelocity)
	}
	if body.InertiaLocal != mgl64.Ident3() {
		t.Errorf("InertiaLocal = %v, want identity", body.InertiaLocal)
	}
}

// =============================================================================
// Integrate Tests
// =============================================================================

func TestIntegrate_LinearVelocity(t *testing.T) {
	body := NewBody(pose.Identity())
	body.Velocity = mgl64.Vec3{1, 2, 3}

	dt := 0.5
	body.Integrate(dt)

	expected := mgl64.Vec3{0.5, 1, 1.5}
	if !vec3AlmostEqual(body.Transform.Translation(), expected, 1e-12) {
		t.Errorf("Translation = %v, want %v", body.Transform.Translation(), expected)
	}
	if !body.Transform.QuatRotation().IsIdentity() {
		t.Errorf("Rotation changed without angular velocity: %v", body.Transform.QuatRotation())
	}
}

func TestIntegrate_AngularVelocity(t *testing.T) {
	body := NewBody(pose.Identity())
	body.AngularVelocity = mgl64.Vec3{0, 0, 1} // 1 rad/s around Z

	initialRotation := body.Transform.QuatRotation()
	body.Integrate(0.1)

	if body.Transform.QuatRotation().ApproxEqual(initialRotation, 1e-10) {
		t.Error("rotation did not change despite angular velocity")
	}
	if !almostEqual(body.Transform.QuatRotation().Len(), 1.0, 1e-10) {
		t.Errorf("quaternion magnitude = %v, want 1.0", body.Transform.QuatRotation().Len())
	}

	// The body turned counter-clockwise around Z
	x := body.LocalToWorld(mgl64.Vec3{1, 0, 0})
	if x.Y() <= 0 {
		t.Errorf("local x mapped to %v, expected positive y", x)
	}
}

func TestIntegrate_QuaternionNormalization(t *testing.T) {
	body := NewBody(pose.Identity())
	body.AngularVelocity = mgl64.Vec3{10, 5, 3}

	for i := 0; i < 1000; i++ {
		body.Integrate(0.01)
	}

	q := body.Transform.QuatRotation()
	if !almostEqual(q.Len(), 1.0, 1e-9) {
		t.Errorf("after 1000 steps, quaternion magnitude = %v, want 1.0", q.Len())
	}
	if math.IsNaN(q.W) || math.IsNaN(q.X) || math.IsNaN(q.Y) || math.IsNaN(q.Z) {
		t.Error("quaternion contains NaN values")
	}
}

func TestIntegrate_Damping(t *testing.T) {
	body := NewBody(pose.Identity())
	body.LinearDamping = 0.2
	body.AngularDamping = 0.1
	body.Velocity = mgl64.Vec3{0, 4, 0}
	body.AngularVelocity = mgl64.Vec3{10, 0, 0}

	dt := 0.1
	body.Integrate(dt)

	linearFactor := math.Exp(-body.LinearDamping * dt)
	angularFactor := math.Exp(-body.AngularDamping * dt)

	if !vec3AlmostEqual(body.Velocity, mgl64.Vec3{0, 4 * linearFactor, 0}, 1e-12) {
		t.Errorf("Velocity after damping = %v", body.Velocity)
	}
	if !vec3AlmostEqual(body.AngularVelocity, mgl64.Vec3{10 * angularFactor, 0, 0}, 1e-12) {
		t.Errorf("AngularVelocity after damping = %v", body.AngularVelocity)
	}
}

func TestIntegrate_PreviousTransformTracking(t *testing.T) {
	body := NewBody(pose.FromTranslation(mgl64.Vec3{5, 0, 0}))
	body.Velocity = mgl64.Vec3{1, 0, 0}
	body.AngularVelocity = mgl64.Vec3{1, 2, 3}

	initial := body.Transform
	body.Integrate(0.1)
	if !body.PreviousTransform.ApproxEqual(initial, 0) {
		t.Errorf("PreviousTransform = %v, want %v", body.PreviousTransform, initial)
	}

	current := body.Transform
	body.Integrate(0.1)
	if !body.PreviousTransform.ApproxEqual(current, 0) {
		t.Errorf("PreviousTransform after 2nd integration = %v, want %v", body.PreviousTransform, current)
	}
}

// =============================================================================
// Update Tests
// =============================================================================

func TestUpdate_RecoversVelocities(t *testing.T) {
	body := NewBody(pose.FromQuat(quaternion.FromAxisAngle(mgl64.Vec3{1, 0, 0}, 0.5), mgl64.Vec3{}))
	body.Velocity = mgl64.Vec3{3, -1, 2}
	body.AngularVelocity = mgl64.Vec3{0.2, 0.4, -0.1}

	dt := 1e-3
	body.Integrate(dt)
	wantVelocity := body.Velocity
	wantAngular := body.AngularVelocity

	body.Velocity = mgl64.Vec3{}
	body.AngularVelocity = mgl64.Vec3{}
	body.Update(dt)

	if !vec3AlmostEqual(body.Velocity, wantVelocity, 1e-9) {
		t.Errorf("Velocity = %v, want %v", body.Velocity, wantVelocity)
	}
	if !vec3AlmostEqual(body.AngularVelocity, wantAngular, 1e-4) {
		t.Errorf("AngularVelocity = %v, want %v", body.AngularVelocity, wantAngular)
	}
}

func TestUpdate_NonPositiveStep(t *testing.T) {
	body := NewBody(pose.Identity())
	body.Velocity = mgl64.Vec3{1, 0, 0}
	body.AngularVelocity = mgl64.Vec3{0, 0.5, 0}
	body.Integrate(0.1)

	wantVelocity := body.Velocity
	wantAngular := body.AngularVelocity
	for _, dt := range []float64{0, -0.1} {
		body.Update(dt)
		if body.Velocity != wantVelocity || body.AngularVelocity != wantAngular {
			t.Errorf("Update(%v) changed velocities to v=%v ω=%v", dt, body.Velocity, body.AngularVelocity)
		}
	}
}

func TestDisplacement(t *testing.T) {
	body := NewBody(pose.FromQuat(quaternion.FromAxisAngle(mgl64.Vec3{0, 0, 1}, math.Pi/2), mgl64.Vec3{1, 0, 0}))
	body.Velocity = mgl64.Vec3{0, 2, 0}
	body.Integrate(1)

	// Moving along world y is moving along local x after a quarter turn around z.
	d := body.Displacement()
	if !vec3AlmostEqual(d.Translation(), mgl64.Vec3{2, 0, 0}, 1e-12) {
		t.Errorf("Displacement translation = %v, want [2 0 0]", d.Translation())
	}
	if !d.QuatRotation().SameRotation(quaternion.Identity(), 1e-12) {
		t.Errorf("Displacement rotation = %v, want identity", d.QuatRotation())
	}
}

// =============================================================================
// Frame conversion / inertia Tests
// =============================================================================

func TestLocalWorldRoundTrip(t *testing.T) {
	body := NewBody(pose.FromQuat(quaternion.FromAxisAngle(mgl64.Vec3{1, 1, 1}, 2), mgl64.Vec3{-3, 4, 0.5}))

	points := []mgl64.Vec3{{}, {1, 0, 0}, {2, -3, 4}}
	for _, p := range points {
		got := body.WorldToLocal(body.LocalToWorld(p))
		if !vec3AlmostEqual(got, p, 1e-12) {
			t.Errorf("WorldToLocal(LocalToWorld(%v)) = %v", p, got)
		}
	}
}

func TestInertiaWorld(t *testing.T) {
	body := NewBody(pose.FromQuat(quaternion.FromAxisAngle(mgl64.Vec3{0, 0, 1}, math.Pi/2), mgl64.Vec3{}))
	body.InertiaLocal = mgl64.Diag3(mgl64.Vec3{1, 2, 3})

	I := body.InertiaWorld()

	// A quarter turn around z swaps the x and y moments.
	expected := mgl64.Diag3(mgl64.Vec3{2, 1, 3})
	if !mat3AlmostEqual(I, expected, 1e-12) {
		t.Errorf("InertiaWorld() = %v, want %v", I, expected)
	}
}

func TestPrincipalAxes(t *testing.T) {
	q := quaternion.FromAxisAngle(mgl64.Vec3{0.2, 1, -0.4}, 0.9)
	body := NewBody(pose.FromQuat(q, mgl64.Vec3{1, 2, 3}))
	body.InertiaLocal = mgl64.Diag3(mgl64.Vec3{3, 1, 2})

	moments, frame, err := body.PrincipalAxes()
	if err != nil {
		t.Fatalf("PrincipalAxes() error = %v", err)
	}

	if !vec3AlmostEqual(moments, mgl64.Vec3{1, 2, 3}, 1e-9) {
		t.Errorf("moments = %v, want [1 2 3]", moments)
	}
	if frame.Translation() != (mgl64.Vec3{1, 2, 3}) {
		t.Errorf("frame translation = %v", frame.Translation())
	}

	R := frame.Rotation()
	if got := geometry.Triple(R.Col(0), R.Col(1), R.Col(2)); !almostEqual(got, 1, 1e-9) {
		t.Errorf("principal frame handedness = %v, want 1", got)
	}

	// Smallest moment is along the local y axis.
	localY := q.Transform(mgl64.Vec3{0, 1, 0})
	if got := math.Abs(R.Col(0).Dot(localY)); !almostEqual(got, 1, 1e-9) {
		t.Errorf("first principal axis %v not aligned with %v", R.Col(0), localY)
	}
}
