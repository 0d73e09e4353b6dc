package fighter

import (
	"testing"

	"pgregory.net/rapid"

	"github.com/Faultbox/brawl/pkg/math"
)

var allButtons = []Button{
	ButtonMoveLeft, ButtonMoveRight,
	ButtonPunchLeft, ButtonPunchRight,
	ButtonKickLeft, ButtonKickRight,
	ButtonDefend,
}

// expectedState is what one frame should resolve to when no action clip
// is playing.
func expectedState(held map[Button]bool) (State, float32) {
	if held[ButtonDefend] {
		return Defend, 0
	}
	for _, a := range attackPriority {
		if held[a.button] {
			return a.state, 0
		}
	}
	var sign float32
	if held[ButtonMoveLeft] {
		sign++
	}
	if held[ButtonMoveRight] {
		sign--
	}
	return locomotionState(sign), sign
}

func TestPropertyFrameResolution(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		scheme := rapid.SampledFrom([]SchemeID{SchemeOne, SchemeTwo}).Draw(t, "scheme")
		speed := float32(rapid.Float64Range(0.5, 5).Draw(t, "walkSpeed"))
		h := newHarness(t, scheme, speed)
		if err := h.ctrl.Start(math.Vec3{}); err != nil {
			t.Fatalf("Start() error = %v", err)
		}

		frames := rapid.IntRange(1, 40).Draw(t, "frames")
		for f := 0; f < frames; f++ {
			held := make(map[Button]bool)
			h.kb.releaseAll()
			for _, b := range allButtons {
				if rapid.Bool().Draw(t, "held:"+b.String()) {
					held[b] = true
					h.kb.press(h.ctrl.Scheme(), b)
				}
			}
			if rapid.Bool().Draw(t, "clipEnds") {
				h.actor.finish()
			}
			dt := rapid.Float64Range(0.001, 0.1).Draw(t, "dt")

			locked := h.actor.playing && actionClips[h.actor.current]
			before := h.ctrl.State()
			ops := len(h.actor.ops)
			moves := len(h.actor.moves)

			if err := h.step(dt); err != nil {
				t.Fatalf("frame %d: %v", f, err)
			}

			if locked {
				if len(h.actor.ops) != ops || len(h.actor.moves) != moves || h.ctrl.State() != before {
					t.Fatalf("frame %d: input handled during action clip", f)
				}
				continue
			}

			want, sign := expectedState(held)
			if got := h.ctrl.State(); got != want {
				t.Fatalf("frame %d: state = %v, want %v (held %v)", f, got, want, held)
			}

			isMove := want == Idle || want == Walk || want == WalkBack
			switch {
			case isMove && len(h.actor.moves) != moves+1:
				t.Fatalf("frame %d: expected exactly one move", f)
			case !isMove && len(h.actor.moves) != moves:
				t.Fatalf("frame %d: moved while in %v", f, want)
			case isMove:
				got := h.actor.moves[moves]
				exp := sign * speed * float32(dt)
				if d := got - exp; d > 1e-5 || d < -1e-5 {
					t.Fatalf("frame %d: delta = %v, want %v", f, got, exp)
				}
			}

			// A transition is exactly one stop followed by one start.
			newOps := h.actor.ops[ops:]
			if want == before {
				if len(newOps) != 0 {
					t.Fatalf("frame %d: same-state frame touched actor: %v", f, newOps)
				}
				continue
			}
			verb := "play:"
			if want.Looping() {
				verb = "loop:"
			}
			if len(newOps) != 2 || newOps[0] != "stop" || newOps[1] != verb+want.ClipName() {
				t.Fatalf("frame %d: ops = %v for %v -> %v", f, newOps, before, want)
			}
		}
	})
}

func TestPropertyStopIsFinal(t *testing.T) {
	rapid.Check(t, func(t *rapid.T) {
		h := newHarness(t, SchemeOne, 2)
		if err := h.ctrl.Start(math.Vec3{}); err != nil {
			t.Fatal(err)
		}
		before := rapid.IntRange(0, 10).Draw(t, "before")
		for i := 0; i < before; i++ {
			h.kb.releaseAll()
			h.kb.press(h.ctrl.Scheme(), rapid.SampledFrom(allButtons).Draw(t, "button"))
			if err := h.step(0.02); err != nil {
				t.Fatal(err)
			}
		}
		if err := h.ctrl.Stop(); err != nil {
			t.Fatal(err)
		}
		state := h.ctrl.State()
		ops, moves := len(h.actor.ops), len(h.actor.moves)

		after := rapid.IntRange(1, 10).Draw(t, "after")
		for i := 0; i < after; i++ {
			h.kb.press(h.ctrl.Scheme(), rapid.SampledFrom(allButtons).Draw(t, "button"))
			if err := h.step(0.02); err != nil {
				t.Fatal(err)
			}
		}
		if len(h.actor.ops) != ops || len(h.actor.moves) != moves || h.ctrl.State() != state {
			t.Fatal("fighter changed after Stop")
		}
	})
}
