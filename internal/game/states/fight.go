package states

import (
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/Faultbox/brawl/internal/engine/actor"
	"github.com/Faultbox/brawl/internal/engine/keys"
	"github.com/Faultbox/brawl/internal/engine/scheduler"
	"github.com/Faultbox/brawl/internal/game/fighter"
	"github.com/Faultbox/brawl/pkg/math"
)

// RestartKey restarts the round.
const RestartKey = keys.R

// Canvas draws one frame of actors.
type Canvas interface {
	Begin()
	DrawActor(a *actor.Actor)
	End()
}

// CuePlayer plays short sound cues.
type CuePlayer interface {
	PlayCue(freqHz float64, duration time.Duration) error
}

type cue struct {
	freq     float64
	duration time.Duration
}

var stateCues = map[fighter.State]cue{
	fighter.PunchLeft:  {660, 60 * time.Millisecond},
	fighter.PunchRight: {700, 60 * time.Millisecond},
	fighter.KickLeft:   {440, 90 * time.Millisecond},
	fighter.KickRight:  {470, 90 * time.Millisecond},
	fighter.Defend:     {330, 50 * time.Millisecond},
	fighter.Hit:        {220, 120 * time.Millisecond},
	fighter.Defeated:   {110, 400 * time.Millisecond},
}

// Player two's cues are pitched up a major third.
const secondPlayerPitch = 1.25

// PlayerSetup describes a fighter joining a fight.
type PlayerSetup struct {
	Slot      int
	Scheme    fighter.SchemeID
	WalkSpeed float32
	Start     math.Vec3
}

// Player is one fighter taking part in a fight.
type Player struct {
	Controller *fighter.Controller
	Actor      *actor.Actor
	Start      math.Vec3
}

// Fight is the only gameplay state: two fighters on a floor.
type Fight struct {
	players []Player
	sched   *scheduler.Scheduler
	canvas  Canvas
	sounds  CuePlayer
	log     *zap.Logger
}

// NewFight creates a fight state. sounds may be nil.
func NewFight(sched *scheduler.Scheduler, canvas Canvas, sounds CuePlayer, log *zap.Logger) *Fight {
	if log == nil {
		log = zap.NewNop()
	}
	return &Fight{
		sched:  sched,
		canvas: canvas,
		sounds: sounds,
		log:    log,
	}
}

// Join loads a fighter and adds it to the fight. Fighters must join
// before Enter.
func (f *Fight) Join(setup PlayerSetup, loader *actor.Loader, kb fighter.Keyboard) (*fighter.Controller, error) {
	var loaded *actor.Actor
	actors := fighter.ActorLoaderFunc(func(slot int) (fighter.Actor, error) {
		a, err := loader.Load(slot)
		if err != nil {
			return nil, err
		}
		loaded = a
		return a, nil
	})

	ctrl, err := fighter.New(fighter.Config{
		Slot:      setup.Slot,
		Scheme:    setup.Scheme,
		WalkSpeed: setup.WalkSpeed,
	}, fighter.Deps{
		Actors:       actors,
		Scheduler:    f.sched,
		Input:        kb,
		Logger:       f.log,
		OnTransition: f.cueHook(setup.Slot),
	})
	if err != nil {
		return nil, err
	}

	f.players = append(f.players, Player{Controller: ctrl, Actor: loaded, Start: setup.Start})
	return ctrl, nil
}

// Players returns the fighters in the order they joined.
func (f *Fight) Players() []Player {
	return f.players
}

// Close releases every fighter.
func (f *Fight) Close() error {
	var errs []error
	for _, p := range f.players {
		if err := p.Controller.Close(); err != nil {
			errs = append(errs, err)
		}
	}
	f.players = nil
	return errors.Join(errs...)
}

// cueHook plays the cue of each state entered by the fighter in slot.
func (f *Fight) cueHook(slot int) func(from, to fighter.State) {
	pitch := 1.0
	if slot == 2 {
		pitch = secondPlayerPitch
	}
	return func(from, to fighter.State) {
		c, ok := stateCues[to]
		if !ok || f.sounds == nil {
			return
		}
		if err := f.sounds.PlayCue(c.freq*pitch, c.duration); err != nil {
			f.log.Debug("cue dropped", zap.Int("slot", slot), zap.Stringer("state", to), zap.Error(err))
		}
	}
}

// Enter starts every fighter at its start position.
func (f *Fight) Enter() error {
	f.log.Info("entering fight", zap.Int("players", len(f.players)))
	for _, p := range f.players {
		if err := p.Controller.Start(p.Start); err != nil {
			return fmt.Errorf("start slot %d: %w", p.Controller.Slot(), err)
		}
	}
	return nil
}

// Exit stops every fighter that is still running.
func (f *Fight) Exit() error {
	f.log.Info("leaving fight")
	var errs []error
	for _, p := range f.players {
		if !p.Controller.Active() {
			continue
		}
		if err := p.Controller.Stop(); err != nil {
			errs = append(errs, fmt.Errorf("stop slot %d: %w", p.Controller.Slot(), err))
		}
	}
	return errors.Join(errs...)
}

// Update runs the fighter controllers, then advances clip playback.
func (f *Fight) Update(dt float64) error {
	if err := f.sched.Step(dt); err != nil {
		return err
	}
	for _, p := range f.players {
		p.Actor.Update(dt)
	}
	return nil
}

// Render draws the floor and every visible fighter.
func (f *Fight) Render() error {
	f.canvas.Begin()
	for _, p := range f.players {
		f.canvas.DrawActor(p.Actor)
	}
	f.canvas.End()
	return nil
}

// HandleInput restarts the round on RestartKey.
func (f *Fight) HandleInput(event any) error {
	press, ok := event.(KeyPress)
	if !ok || press.Key != RestartKey {
		return nil
	}
	f.log.Info("restarting round")
	if err := f.Exit(); err != nil {
		return err
	}
	return f.Enter()
}
