package keys

import "testing"

func TestStateSet(t *testing.T) {
	var s State
	s.set(Q, true)

	if !s.IsKeyDown(Q) {
		t.Error("Q should be down")
	}
	if s.IsKeyDown(W) {
		t.Error("W should be up")
	}

	s.set(Q, false)
	if s.IsKeyDown(Q) {
		t.Error("Q should be up after release")
	}
}

func TestStateOutOfRange(t *testing.T) {
	var s State
	s.set(Key(NumKeys+10), true)
	if s.IsKeyDown(Key(NumKeys + 10)) {
		t.Error("out of range key should never be down")
	}
}

func TestStateLoad(t *testing.T) {
	var s State
	s.set(Escape, true)

	scancodes := make([]uint8, NumKeys)
	scancodes[A] = 1
	scancodes[Left] = 1
	s.Load(scancodes)

	held := s.Held()
	if len(held) != 2 || held[0] != A || held[1] != Left {
		t.Errorf("Held() = %v, want [A Left]", held)
	}
	if s.IsKeyDown(Escape) {
		t.Error("Load should replace previous state")
	}
}
