// Package fighter turns keyboard input into fighter animation states.
//
// A Controller owns one actor and one per-frame task. Each frame it reads
// the keys of its control scheme, moves the actor along its facing and
// switches the actor's clip through a small state machine.
package fighter

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/Faultbox/brawl/internal/engine/keys"
	"github.com/Faultbox/brawl/internal/engine/scheduler"
	"github.com/Faultbox/brawl/pkg/math"
)

// DefaultWalkSpeed is the walk speed in world units per second used when
// Config.WalkSpeed is zero.
const DefaultWalkSpeed float32 = 2.0

const moveTaskName = "move"

var (
	// ErrMissingClip is returned by New when the loaded actor lacks a
	// clip for one of the fighter states.
	ErrMissingClip = errors.New("actor is missing a required clip")
	// ErrInvalidState is returned when requesting a state outside the
	// defined set.
	ErrInvalidState = errors.New("invalid fighter state")
	// ErrAlreadyStarted is returned by Start on an active fighter.
	ErrAlreadyStarted = errors.New("fighter already started")
	// ErrNotStarted is returned by Stop on an inactive fighter.
	ErrNotStarted = errors.New("fighter not started")
	// ErrClosed is returned by Start and Request after Close.
	ErrClosed = errors.New("fighter closed")
)

// Actor is the animated model driven by a controller.
type Actor interface {
	HasClip(name string) bool
	SetPosition(pos math.Vec3)
	SetHeading(degrees float32)
	MoveLocal(axis math.Vec3, delta float32)
	Show()
	Hide()
	Loop(clip string)
	Play(clip string)
	Stop()
	CurrentClip() (string, bool)
	Cleanup()
}

// ActorLoader loads the actor of a character slot.
type ActorLoader interface {
	LoadActor(slot int) (Actor, error)
}

// ActorLoaderFunc adapts a function to ActorLoader.
type ActorLoaderFunc func(slot int) (Actor, error)

func (f ActorLoaderFunc) LoadActor(slot int) (Actor, error) {
	return f(slot)
}

// Scheduler runs the controller's per-frame update.
type Scheduler interface {
	Register(key scheduler.TaskKey, fn scheduler.TaskFunc) error
	Unregister(key scheduler.TaskKey) error
}

// Keyboard reports held keys for the current frame.
type Keyboard interface {
	IsKeyDown(k keys.Key) bool
}

// Config selects the character and controls of a fighter.
type Config struct {
	Slot      int
	Scheme    SchemeID
	WalkSpeed float32
}

// Deps are the collaborators a controller needs.
type Deps struct {
	Actors    ActorLoader
	Scheduler Scheduler
	Input     Keyboard
	Logger    *zap.Logger

	// OnTransition, if set, is called after every completed transition.
	OnTransition func(from, to State)
}

// Controller drives one fighter.
type Controller struct {
	id        uuid.UUID
	slot      int
	scheme    Scheme
	walkSpeed float32

	actor Actor
	sched Scheduler
	input Keyboard
	log   *zap.Logger

	onTransition func(from, to State)

	state  State
	active bool
	closed bool
}

// requiredClips lists the clips every fighter actor must provide.
func requiredClips() []string {
	states := States()
	out := make([]string, len(states))
	for i, s := range states {
		out[i] = s.ClipName()
	}
	return out
}

// New loads the fighter's actor, faces it along the scheme heading and
// leaves it hidden. Nothing is registered with the scheduler until Start.
func New(cfg Config, deps Deps) (*Controller, error) {
	if deps.Actors == nil || deps.Scheduler == nil || deps.Input == nil {
		return nil, errors.New("fighter: actors, scheduler and input are required")
	}
	scheme, err := LookupScheme(cfg.Scheme)
	if err != nil {
		return nil, err
	}
	if err := scheme.Validate(); err != nil {
		return nil, err
	}

	speed := cfg.WalkSpeed
	if speed == 0 {
		speed = DefaultWalkSpeed
	}
	if speed < 0 {
		return nil, fmt.Errorf("fighter: walk speed must be positive, got %v", speed)
	}

	log := deps.Logger
	if log == nil {
		log = zap.NewNop()
	}

	a, err := deps.Actors.LoadActor(cfg.Slot)
	if err != nil {
		return nil, fmt.Errorf("load actor for slot %d: %w", cfg.Slot, err)
	}
	for _, clip := range requiredClips() {
		if !a.HasClip(clip) {
			a.Cleanup()
			return nil, fmt.Errorf("slot %d: %w: %s", cfg.Slot, ErrMissingClip, clip)
		}
	}

	id := uuid.New()
	c := &Controller{
		id:           id,
		slot:         cfg.Slot,
		scheme:       scheme,
		walkSpeed:    speed,
		actor:        a,
		sched:        deps.Scheduler,
		input:        deps.Input,
		log:          log.With(zap.Int("slot", cfg.Slot), zap.Stringer("fighter", id)),
		onTransition: deps.OnTransition,
	}

	a.SetHeading(scheme.Heading)
	a.Hide()

	c.log.Debug("fighter created",
		zap.Stringer("scheme", scheme.ID),
		zap.Float32("walkSpeed", speed))
	return c, nil
}

// ID returns the unique id of this controller.
func (c *Controller) ID() uuid.UUID { return c.id }

// Slot returns the character slot.
func (c *Controller) Slot() int { return c.slot }

// Scheme returns the control scheme.
func (c *Controller) Scheme() Scheme { return c.scheme }

// State returns the current state.
func (c *Controller) State() State { return c.state }

// Active reports whether the per-frame update is registered.
func (c *Controller) Active() bool { return c.active }

// TaskKey is the scheduler key of the per-frame update.
func (c *Controller) TaskKey() scheduler.TaskKey {
	return scheduler.TaskKey{Owner: c.id, Name: moveTaskName}
}

// Start places the fighter at pos, shows it idle and begins reading input.
func (c *Controller) Start(pos math.Vec3) error {
	if c.closed {
		return ErrClosed
	}
	if c.active {
		return ErrAlreadyStarted
	}

	// Nothing is touched until the update is registered, so a failed
	// Start leaves the fighter exactly as it was.
	if err := c.sched.Register(c.TaskKey(), c.update); err != nil {
		return fmt.Errorf("register fighter update: %w", err)
	}
	c.active = true

	c.actor.SetPosition(pos)
	c.actor.Show()
	if err := c.requestTransition(Idle); err != nil {
		return err
	}

	c.log.Info("fighter started", zap.Stringer("position", pos))
	return nil
}

// Stop hides the fighter and stops reading input. The current state is
// kept; a later Start re-enters Idle.
func (c *Controller) Stop() error {
	if !c.active {
		return ErrNotStarted
	}
	if err := c.sched.Unregister(c.TaskKey()); err != nil {
		return fmt.Errorf("unregister fighter update: %w", err)
	}
	c.active = false
	c.actor.Hide()
	c.log.Info("fighter stopped", zap.Stringer("state", c.state))
	return nil
}

// Request transitions to s on behalf of an outer rules layer.
func (c *Controller) Request(s State) error {
	if c.closed {
		return ErrClosed
	}
	return c.requestTransition(s)
}

// Close stops the fighter if needed and releases its actor.
func (c *Controller) Close() error {
	if c.closed {
		return nil
	}
	var err error
	if c.active {
		err = c.Stop()
	}
	c.actor.Cleanup()
	c.closed = true
	return err
}

func (c *Controller) requestTransition(next State) error {
	if !next.Valid() {
		return fmt.Errorf("%w: %v", ErrInvalidState, next)
	}
	if next == c.state {
		return nil
	}

	prev := c.state
	transitions[prev].exit(c.actor)
	c.state = next
	transitions[next].enter(c.actor)

	c.log.Debug("transition", zap.Stringer("from", prev), zap.Stringer("to", next))
	if c.onTransition != nil {
		c.onTransition(prev, next)
	}
	return nil
}

var attackPriority = [...]struct {
	button Button
	state  State
}{
	{ButtonPunchLeft, PunchLeft},
	{ButtonPunchRight, PunchRight},
	{ButtonKickLeft, KickLeft},
	{ButtonKickRight, KickRight},
}

func (c *Controller) held(b Button) bool {
	return c.input.IsKeyDown(c.scheme.Key(b))
}

func (c *Controller) actionPlaying() bool {
	clip, ok := c.actor.CurrentClip()
	return ok && actionClips[clip]
}

// update runs once per frame while the fighter is active.
func (c *Controller) update(dt float64) error {
	if c.actionPlaying() {
		return nil
	}

	if c.held(ButtonDefend) {
		if c.state != Defend {
			return c.requestTransition(Defend)
		}
		return nil
	}

	for _, a := range attackPriority {
		if c.held(a.button) {
			return c.requestTransition(a.state)
		}
	}

	var speed float32
	if c.held(ButtonMoveLeft) {
		speed += c.walkSpeed
	}
	if c.held(ButtonMoveRight) {
		speed -= c.walkSpeed
	}
	c.actor.MoveLocal(math.AxisForward, speed*float32(dt))

	return c.requestTransition(locomotionState(speed))
}

// locomotionState maps a signed walk speed to its state. Negative speed
// plays Walk and positive speed plays WalkBack.
func locomotionState(speed float32) State {
	switch {
	case speed < 0:
		return Walk
	case speed > 0:
		return WalkBack
	}
	return Idle
}
