// Package actor implements animated scene actors: a placed, oriented model
// with a set of named clips, one of which may be playing at a time.
package actor

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/brawl/internal/assets"
	"github.com/Faultbox/brawl/pkg/math"
)

// Actor is a visible model with clip playback.
// It is driven from the main loop only and is not safe for concurrent use.
type Actor struct {
	name  string
	clips map[string]time.Duration
	log   *zap.Logger

	position math.Vec3
	heading  float32 // degrees about the up axis
	visible  bool
	removed  bool

	current string
	looping bool
	elapsed time.Duration
}

// New creates a hidden actor at the origin with the given clips.
func New(name string, clips []assets.Clip, log *zap.Logger) *Actor {
	if log == nil {
		log = zap.NewNop()
	}
	a := &Actor{
		name:  name,
		clips: make(map[string]time.Duration, len(clips)),
		log:   log.With(zap.String("actor", name)),
	}
	for _, c := range clips {
		a.clips[c.Name] = c.Duration()
	}
	return a
}

// Name returns the actor name.
func (a *Actor) Name() string {
	return a.name
}

// HasClip reports whether the actor was built with the named clip.
func (a *Actor) HasClip(name string) bool {
	_, ok := a.clips[name]
	return ok
}

// SetPosition places the actor in world space.
func (a *Actor) SetPosition(pos math.Vec3) {
	a.position = pos
}

// Position returns the world-space position.
func (a *Actor) Position() math.Vec3 {
	return a.position
}

// SetHeading sets the rotation about the up axis in degrees.
func (a *Actor) SetHeading(degrees float32) {
	a.heading = degrees
}

// Heading returns the rotation about the up axis in degrees.
func (a *Actor) Heading() float32 {
	return a.heading
}

// MoveLocal translates the actor along an axis of its own frame.
func (a *Actor) MoveLocal(axis math.Vec3, delta float32) {
	if delta == 0 {
		return
	}
	world := math.Heading(a.heading).TransformDirection(axis)
	a.position = a.position.Add(world.Scale(delta))
}

// Show makes the actor visible.
func (a *Actor) Show() {
	a.visible = true
}

// Hide makes the actor invisible. Playback keeps running.
func (a *Actor) Hide() {
	a.visible = false
}

// Visible reports whether the actor should be drawn.
func (a *Actor) Visible() bool {
	return a.visible && !a.removed
}

// Loop starts a clip that repeats until stopped.
func (a *Actor) Loop(clip string) {
	a.start(clip, true)
}

// Play starts a clip that stops by itself after one pass.
func (a *Actor) Play(clip string) {
	a.start(clip, false)
}

func (a *Actor) start(clip string, loop bool) {
	if !a.HasClip(clip) {
		a.log.Warn("unknown clip", zap.String("clip", clip))
		return
	}
	a.current = clip
	a.looping = loop
	a.elapsed = 0
}

// Stop ends playback of the current clip.
func (a *Actor) Stop() {
	a.current = ""
	a.looping = false
	a.elapsed = 0
}

// CurrentClip returns the playing clip, if any.
func (a *Actor) CurrentClip() (string, bool) {
	return a.current, a.current != ""
}

// Progress returns how far into the current clip playback is, in [0, 1].
func (a *Actor) Progress() float64 {
	d := a.clips[a.current]
	if a.current == "" || d <= 0 {
		return 0
	}
	return float64(a.elapsed) / float64(d)
}

// Update advances playback by dt seconds.
func (a *Actor) Update(dt float64) {
	if a.current == "" || dt <= 0 {
		return
	}
	d := a.clips[a.current]
	a.elapsed += time.Duration(dt * float64(time.Second))
	if a.elapsed < d {
		return
	}
	if a.looping && d > 0 {
		a.elapsed %= d
		return
	}
	a.log.Debug("clip finished", zap.String("clip", a.current))
	a.Stop()
}

// Cleanup releases the actor. A removed actor is never drawn again.
func (a *Actor) Cleanup() {
	a.Stop()
	a.visible = false
	a.removed = true
}

// Removed reports whether Cleanup has been called.
func (a *Actor) Removed() bool {
	return a.removed
}

func (a *Actor) String() string {
	return fmt.Sprintf("%s@(%.2f, %.2f, %.2f)", a.name, a.position.X, a.position.Y, a.position.Z)
}
