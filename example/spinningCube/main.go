package main

import (
	"fmt"
	"math"

	"github.com/akmonengine/rigid/motion"
	"github.com/akmonengine/rigid/pose"
	"github.com/akmonengine/rigid/quaternion"
	"github.com/go-gl/mathgl/mgl64"
)

// Debugger prints the state of a body while it moves
type Debugger interface {
	DebugBody(step int, body *motion.Body)
	DebugInterp(dt float64, m *motion.InterpMotion)
}

type SimpleDebugger struct{}

func (d *SimpleDebugger) DebugBody(step int, body *motion.Body) {
	axis, angle := body.Transform.QuatRotation().ToAxisAngle()
	fmt.Printf("--- STEP %d ---\n", step)
	fmt.Printf("  Position: %v\n", body.Transform.Translation())
	fmt.Printf("  Rotation: axis=%v angle=%.3f\n", axis, angle)
	fmt.Printf("  Velocity: %v\n", body.Velocity)
	fmt.Printf("  Angular Velocity: %v (len=%.3f)\n", body.AngularVelocity, body.AngularVelocity.Len())

	displacement := body.Displacement()
	fmt.Printf("  Local displacement: %v\n", displacement.Translation())
}

func (d *SimpleDebugger) DebugInterp(dt float64, m *motion.InterpMotion) {
	current := m.CurrentTransform()
	corner := current.Transform(m.ReferencePoint())
	fmt.Printf("  t=%.2f corner=%v q=%v\n", dt, corner, current.QuatRotation())
}

// SetupCube creates a cube spinning around the y axis while sliding along x
func SetupCube() *motion.Body {
	start := pose.FromQuat(
		quaternion.FromAxisAngle(mgl64.Vec3{0, 0, 1}, 70.0*math.Pi/180.0),
		mgl64.Vec3{-5.0, 5.0, -5.0},
	)

	body := motion.NewBody(start)
	body.Velocity = mgl64.Vec3{1, 0, 0}
	body.AngularVelocity = mgl64.Vec3{0, math.Pi, 0}
	body.AngularDamping = 0.05
	body.InertiaLocal = mgl64.Diag3(mgl64.Vec3{3.0, 1.5, 3.0})

	return body
}

func SpinningCube(debugger Debugger) {
	fmt.Println("Spinning cube")
	fmt.Println("=============")

	body := SetupCube()
	start := body.Transform

	const dt float64 = 1.0 / 60.0
	const maxSteps int = 60

	for step := 0; step < maxSteps; step++ {
		body.Integrate(dt)
		body.Update(dt)
		if step%10 == 0 {
			debugger.DebugBody(step+1, body)
		}
	}

	moments, frame, err := body.PrincipalAxes()
	if err != nil {
		fmt.Printf("principal axes: %v\n", err)
		return
	}
	fmt.Printf("Principal moments: %v\n", moments)
	fmt.Printf("Principal frame: %v\n", frame)
	fmt.Println()

	// Replay the same motion as a single rigid interpolation
	fmt.Println("Interpolated replay")
	fmt.Println("===================")

	replay := motion.NewInterpMotionAround(start, body.Transform, mgl64.Vec3{0.5, 0.5, 0.5})
	for i := 0; i <= 4; i++ {
		t := float64(i) / 4
		if err := replay.Integrate(t); err != nil {
			fmt.Printf("integrate: %v\n", err)
			return
		}
		debugger.DebugInterp(t, replay)
	}

	relative := pose.RelativeTransform(start, replay.CurrentTransform())
	fmt.Printf("End pose seen from start: %v\n", relative)
}

func main() {
	SpinningCube(&SimpleDebugger{})
}
