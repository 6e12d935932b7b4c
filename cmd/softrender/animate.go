package main

import (
	"github.com/charmbracelet/harmonica"

	"github.com/taigrr/softrender/pkg/math3d"
)

// RotationAxis is one rotation angle whose velocity springs back toward a
// resting speed after an impulse.
type RotationAxis struct {
	Angle    float64 // Radians
	Velocity float64 // Radians per second
	Rest     float64 // Velocity the spring settles at

	spring harmonica.Spring
	accel  float64
}

// NewRotationAxis creates a critically damped axis stepped fps times per
// second.
func NewRotationAxis(fps int, rest float64) RotationAxis {
	return RotationAxis{
		Velocity: rest,
		Rest:     rest,
		spring:   harmonica.NewSpring(harmonica.FPS(fps), 4.0, 1.0),
	}
}

// Update advances the angle by dt seconds and eases the velocity toward
// Rest.
func (a *RotationAxis) Update(dt float64) {
	a.Angle += a.Velocity * dt
	a.Velocity, a.accel = a.spring.Update(a.Velocity, a.accel, a.Rest)
}

// Spinner animates the model pose.
type Spinner struct {
	Pitch, Yaw, Roll RotationAxis

	fps    int
	start  math3d.Vec3
	paused bool
}

// NewSpinner starts at the given rotation with an idle yaw speed.
func NewSpinner(fps int, start math3d.Vec3, spin float64) *Spinner {
	s := &Spinner{fps: fps, start: start}
	s.Reset()
	s.Yaw.Rest = spin
	s.Yaw.Velocity = spin
	return s
}

// Update advances every axis by dt seconds unless paused.
func (s *Spinner) Update(dt float64) {
	if s.paused {
		return
	}
	s.Pitch.Update(dt)
	s.Yaw.Update(dt)
	s.Roll.Update(dt)
}

// Impulse adds angular velocity in radians per second.
func (s *Spinner) Impulse(pitch, yaw, roll float64) {
	s.Pitch.Velocity += pitch
	s.Yaw.Velocity += yaw
	s.Roll.Velocity += roll
}

// TogglePause stops or resumes the animation.
func (s *Spinner) TogglePause() {
	s.paused = !s.paused
}

// Paused reports whether Update is a no-op.
func (s *Spinner) Paused() bool {
	return s.paused
}

// Reset returns to the starting rotation and keeps the idle speed.
func (s *Spinner) Reset() {
	spin := s.Yaw.Rest
	s.Pitch = NewRotationAxis(s.fps, 0)
	s.Yaw = NewRotationAxis(s.fps, spin)
	s.Roll = NewRotationAxis(s.fps, 0)
	s.Pitch.Angle = s.start.X
	s.Yaw.Angle = s.start.Y
	s.Roll.Angle = s.start.Z
}

// Rotation returns the pose rotation (x = pitch, y = yaw, z = roll).
func (s *Spinner) Rotation() math3d.Vec3 {
	return math3d.V3(s.Pitch.Angle, s.Yaw.Angle, s.Roll.Angle)
}
