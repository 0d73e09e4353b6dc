package states

import (
	"errors"
	"testing"
	"time"

	"github.com/Faultbox/brawl/internal/assets"
	"github.com/Faultbox/brawl/internal/engine/actor"
	"github.com/Faultbox/brawl/internal/engine/keys"
	"github.com/Faultbox/brawl/internal/engine/scheduler"
	"github.com/Faultbox/brawl/internal/game/fighter"
	"github.com/Faultbox/brawl/pkg/math"
)

type heldKeys map[keys.Key]bool

func (h heldKeys) IsKeyDown(k keys.Key) bool { return h[k] }

type fakeCanvas struct {
	frames int
	drawn  []*actor.Actor
}

func (c *fakeCanvas) Begin()                   { c.frames++; c.drawn = c.drawn[:0] }
func (c *fakeCanvas) DrawActor(a *actor.Actor) { c.drawn = append(c.drawn, a) }
func (c *fakeCanvas) End()                     {}

type playedCue struct {
	freq float64
	dur  time.Duration
}

type fakeSounds struct {
	played []playedCue
	err    error
}

func (s *fakeSounds) PlayCue(freq float64, d time.Duration) error {
	s.played = append(s.played, playedCue{freq, d})
	return s.err
}

var (
	startOne = math.Vec3{X: -1, Y: 8, Z: -0.5}
	startTwo = math.Vec3{X: 1, Y: 8, Z: -0.5}
)

type fightHarness struct {
	fight  *Fight
	sched  *scheduler.Scheduler
	kb     heldKeys
	canvas *fakeCanvas
	sounds *fakeSounds
}

func newFight(t *testing.T) *fightHarness {
	t.Helper()
	h := &fightHarness{
		sched:  scheduler.New(nil),
		kb:     heldKeys{},
		canvas: &fakeCanvas{},
		sounds: &fakeSounds{},
	}
	h.fight = NewFight(h.sched, h.canvas, h.sounds, nil)

	loader := actor.NewLoader(assets.NewManager(), nil)
	setups := []PlayerSetup{
		{Slot: 1, Scheme: fighter.SchemeOne, WalkSpeed: 2, Start: startOne},
		{Slot: 2, Scheme: fighter.SchemeTwo, WalkSpeed: 2, Start: startTwo},
	}
	for _, s := range setups {
		if _, err := h.fight.Join(s, loader, h.kb); err != nil {
			t.Fatalf("Join(slot %d) error = %v", s.Slot, err)
		}
	}
	t.Cleanup(func() { _ = h.fight.Close() })
	return h
}

func TestFightEnterStartsFighters(t *testing.T) {
	h := newFight(t)
	if err := h.fight.Enter(); err != nil {
		t.Fatalf("Enter() error = %v", err)
	}

	for i, p := range h.fight.Players() {
		if !p.Controller.Active() {
			t.Errorf("player %d not active", i+1)
		}
		if p.Controller.State() != fighter.Idle {
			t.Errorf("player %d state = %v, want Idle", i+1, p.Controller.State())
		}
		if !p.Actor.Visible() {
			t.Errorf("player %d hidden", i+1)
		}
		if p.Actor.Position() != p.Start {
			t.Errorf("player %d at %v, want %v", i+1, p.Actor.Position(), p.Start)
		}
	}
	if h.sched.Len() != 2 {
		t.Errorf("scheduler has %d tasks, want 2", h.sched.Len())
	}
}

func TestFightUpdateMovesFighters(t *testing.T) {
	h := newFight(t)
	if err := h.fight.Enter(); err != nil {
		t.Fatal(err)
	}

	// Player one holds move-left: positive speed along local forward,
	// which heading 90 turns into -X.
	h.kb[keys.D] = true
	if err := h.fight.Update(0.5); err != nil {
		t.Fatal(err)
	}

	p1 := h.fight.Players()[0]
	want := math.Vec3{X: -2, Y: 8, Z: -0.5}
	if !p1.Actor.Position().ApproxEqual(want, 1e-4) {
		t.Errorf("player one at %v, want %v", p1.Actor.Position(), want)
	}
	if p1.Controller.State() != fighter.WalkBack {
		t.Errorf("player one state = %v, want WalkBack", p1.Controller.State())
	}
	if p2 := h.fight.Players()[1]; p2.Actor.Position() != startTwo {
		t.Errorf("player two moved to %v", p2.Actor.Position())
	}
}

func TestFightAttackPlaysCueAndFinishes(t *testing.T) {
	h := newFight(t)
	if err := h.fight.Enter(); err != nil {
		t.Fatal(err)
	}

	h.kb[keys.I] = true // player two punch-left
	if err := h.fight.Update(0.01); err != nil {
		t.Fatal(err)
	}
	p2 := h.fight.Players()[1]
	if p2.Controller.State() != fighter.PunchLeft {
		t.Fatalf("player two state = %v, want PunchLeft", p2.Controller.State())
	}
	if len(h.sounds.played) != 1 {
		t.Fatalf("played %d cues, want 1", len(h.sounds.played))
	}
	if got, want := h.sounds.played[0].freq, 660*secondPlayerPitch; got != want {
		t.Errorf("cue freq = %v, want %v", got, want)
	}

	// Punch is 12 frames at 24fps; run past it with the key released.
	delete(h.kb, keys.I)
	for i := 0; i < 10; i++ {
		if err := h.fight.Update(0.1); err != nil {
			t.Fatal(err)
		}
	}
	if p2.Controller.State() != fighter.Idle {
		t.Errorf("player two state after punch = %v, want Idle", p2.Controller.State())
	}
}

func TestFightCueErrorsIgnored(t *testing.T) {
	h := newFight(t)
	h.sounds.err = errors.New("no device")
	if err := h.fight.Enter(); err != nil {
		t.Fatal(err)
	}
	h.kb[keys.E] = true
	if err := h.fight.Update(0.01); err != nil {
		t.Fatalf("Update() error = %v", err)
	}
	if got := h.fight.Players()[0].Controller.State(); got != fighter.Defend {
		t.Errorf("state = %v, want Defend", got)
	}
}

func TestFightRender(t *testing.T) {
	h := newFight(t)
	if err := h.fight.Enter(); err != nil {
		t.Fatal(err)
	}
	if err := h.fight.Render(); err != nil {
		t.Fatal(err)
	}
	if h.canvas.frames != 1 || len(h.canvas.drawn) != 2 {
		t.Errorf("frames=%d drawn=%d, want 1 and 2", h.canvas.frames, len(h.canvas.drawn))
	}
}

func TestFightExitAndRestart(t *testing.T) {
	h := newFight(t)
	if err := h.fight.Enter(); err != nil {
		t.Fatal(err)
	}
	h.kb[keys.F] = true
	if err := h.fight.Update(0.25); err != nil {
		t.Fatal(err)
	}

	if err := h.fight.HandleInput(KeyPress{Key: keys.Space}); err != nil {
		t.Fatal(err)
	}
	if got := h.fight.Players()[0].Controller.State(); got != fighter.Walk {
		t.Fatalf("unrelated key changed state to %v", got)
	}

	delete(h.kb, keys.F)
	if err := h.fight.HandleInput(KeyPress{Key: RestartKey}); err != nil {
		t.Fatalf("restart error = %v", err)
	}
	p1 := h.fight.Players()[0]
	if p1.Actor.Position() != startOne {
		t.Errorf("player one at %v after restart, want %v", p1.Actor.Position(), startOne)
	}
	if p1.Controller.State() != fighter.Idle {
		t.Errorf("player one state after restart = %v, want Idle", p1.Controller.State())
	}

	if err := h.fight.Exit(); err != nil {
		t.Fatalf("Exit() error = %v", err)
	}
	if h.sched.Len() != 0 {
		t.Errorf("scheduler has %d tasks after Exit", h.sched.Len())
	}
	for _, p := range h.fight.Players() {
		if p.Actor.Visible() {
			t.Error("fighter visible after Exit")
		}
	}
	if err := h.fight.Exit(); err != nil {
		t.Errorf("second Exit() error = %v", err)
	}
}
