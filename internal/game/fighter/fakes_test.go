package fighter

import (
	"errors"

	"github.com/Faultbox/brawl/internal/engine/keys"
	"github.com/Faultbox/brawl/internal/engine/scheduler"
	"github.com/Faultbox/brawl/pkg/math"
)

type fakeActor struct {
	clips   map[string]bool
	ops     []string
	current string
	playing bool
	pos     math.Vec3
	heading float32
	moves   []float32
	visible bool
	cleaned bool
}

func newFakeActor(clips ...string) *fakeActor {
	if len(clips) == 0 {
		clips = requiredClips()
	}
	a := &fakeActor{clips: make(map[string]bool)}
	for _, c := range clips {
		a.clips[c] = true
	}
	return a
}

func (a *fakeActor) HasClip(name string) bool         { return a.clips[name] }
func (a *fakeActor) SetPosition(pos math.Vec3)        { a.pos = pos }
func (a *fakeActor) SetHeading(degrees float32)       { a.heading = degrees }
func (a *fakeActor) Show()                            { a.visible = true }
func (a *fakeActor) Hide()                            { a.visible = false }
func (a *fakeActor) Cleanup()                         { a.cleaned = true }
func (a *fakeActor) CurrentClip() (string, bool)      { return a.current, a.playing }
func (a *fakeActor) MoveLocal(_ math.Vec3, d float32) { a.moves = append(a.moves, d) }

func (a *fakeActor) Loop(clip string) {
	a.ops = append(a.ops, "loop:"+clip)
	a.current, a.playing = clip, true
}

func (a *fakeActor) Play(clip string) {
	a.ops = append(a.ops, "play:"+clip)
	a.current, a.playing = clip, true
}

func (a *fakeActor) Stop() {
	a.ops = append(a.ops, "stop")
	a.current, a.playing = "", false
}

// finish ends a play-once clip the way the real actor does.
func (a *fakeActor) finish() {
	a.current, a.playing = "", false
}

func (a *fakeActor) displacement() float32 {
	var sum float32
	for _, d := range a.moves {
		sum += d
	}
	return sum
}

type fakeKeyboard map[keys.Key]bool

func (k fakeKeyboard) IsKeyDown(key keys.Key) bool { return k[key] }

func (k fakeKeyboard) press(s Scheme, buttons ...Button) {
	for _, b := range buttons {
		k[s.Key(b)] = true
	}
}

func (k fakeKeyboard) releaseAll() {
	for key := range k {
		delete(k, key)
	}
}

// failingScheduler rejects every registration.
type failingScheduler struct{}

func (failingScheduler) Register(scheduler.TaskKey, scheduler.TaskFunc) error {
	return errors.New("scheduler full")
}

func (failingScheduler) Unregister(scheduler.TaskKey) error { return nil }

// stuckScheduler wraps a real scheduler and can refuse to unregister.
type stuckScheduler struct {
	*scheduler.Scheduler
	failUnregister bool
}

func (s *stuckScheduler) Unregister(key scheduler.TaskKey) error {
	if s.failUnregister {
		return errors.New("scheduler busy")
	}
	return s.Scheduler.Unregister(key)
}

type harness struct {
	ctrl  *Controller
	actor *fakeActor
	kb    fakeKeyboard
	sched *scheduler.Scheduler
	seen  [][2]State
}

func newHarness(t interface {
	Helper()
	Fatalf(string, ...any)
}, id SchemeID, speed float32) *harness {
	t.Helper()
	h := &harness{
		actor: newFakeActor(),
		kb:    fakeKeyboard{},
		sched: scheduler.New(nil),
	}
	ctrl, err := New(Config{Slot: int(id), Scheme: id, WalkSpeed: speed}, Deps{
		Actors:    ActorLoaderFunc(func(int) (Actor, error) { return h.actor, nil }),
		Scheduler: h.sched,
		Input:     h.kb,
		OnTransition: func(from, to State) {
			h.seen = append(h.seen, [2]State{from, to})
		},
	})
	if err != nil {
		t.Fatalf("New() error = %v", err)
	}
	h.ctrl = ctrl
	return h
}

func (h *harness) step(dt float64) error {
	return h.sched.Step(dt)
}
