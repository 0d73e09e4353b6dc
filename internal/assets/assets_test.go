package assets

import (
	"errors"
	"testing"
	"testing/fstest"
	"time"
)

func TestEmbeddedCharacters(t *testing.T) {
	m := NewManager()

	for _, slot := range []int{1, 2} {
		ch, err := m.Character(slot)
		if err != nil {
			t.Fatalf("Character(%d) failed: %v", slot, err)
		}
		if len(ch.Clips) != 10 {
			t.Errorf("character %d: expected 10 clips, got %d", slot, len(ch.Clips))
		}
	}
}

func TestUnknownCharacter(t *testing.T) {
	m := NewManager()

	_, err := m.Character(99)
	if !errors.Is(err, ErrUnknownCharacter) {
		t.Errorf("Character(99) error = %v, want ErrUnknownCharacter", err)
	}
}

func TestCharacterCachesManifest(t *testing.T) {
	m := NewManager()

	if _, err := m.Character(1); err != nil {
		t.Fatalf("first load failed: %v", err)
	}
	if _, err := m.Character(1); err != nil {
		t.Fatalf("second load failed: %v", err)
	}

	hits, misses := m.Stats()
	if hits != 1 || misses != 1 {
		t.Errorf("Stats() = (%d, %d), want (1, 1)", hits, misses)
	}
}

func TestCharacterRejectsBadClip(t *testing.T) {
	fsys := fstest.MapFS{
		CharacterPath(3): {Data: []byte("name: broken\nclips:\n  - {name: Idle, frames: 0, fps: 24}\n")},
	}
	m := NewManagerFS(fsys)

	if _, err := m.Character(3); err == nil {
		t.Error("expected error for clip without frames")
	}
}

func TestCharacterRejectsInvalidYAML(t *testing.T) {
	fsys := fstest.MapFS{
		CharacterPath(4): {Data: []byte("clips: [unterminated\n")},
	}
	m := NewManagerFS(fsys)

	if _, err := m.Character(4); err == nil {
		t.Error("expected error for invalid YAML")
	}
}

func TestClipDuration(t *testing.T) {
	tests := []struct {
		clip Clip
		want time.Duration
	}{
		{Clip{Name: "PunchLeft", Frames: 12, FPS: 24}, 500 * time.Millisecond},
		{Clip{Name: "Idle", Frames: 48, FPS: 24}, 2 * time.Second},
		{Clip{Name: "Broken", Frames: 10, FPS: 0}, 0},
	}

	for _, tt := range tests {
		if got := tt.clip.Duration(); got != tt.want {
			t.Errorf("%s.Duration() = %v, want %v", tt.clip.Name, got, tt.want)
		}
	}
}

func TestCacheClear(t *testing.T) {
	c := NewCache()
	c.Set("a", []byte("1"))
	c.Get("a")
	c.Get("b")

	c.Clear()

	if _, ok := c.Get("a"); ok {
		t.Error("expected cache to be empty after Clear")
	}
	hits, misses := c.Stats()
	if hits != 0 || misses != 1 {
		t.Errorf("Stats() after Clear = (%d, %d), want (0, 1)", hits, misses)
	}
}

func TestReleaseRereadsManifests(t *testing.T) {
	fsys := fstest.MapFS{
		CharacterPath(5): {Data: []byte("name: first\nclips:\n  - {name: Idle, frames: 24, fps: 24}\n")},
	}
	m := NewManagerFS(fsys)

	if _, err := m.Character(5); err != nil {
		t.Fatal(err)
	}
	fsys[CharacterPath(5)] = &fstest.MapFile{Data: []byte("name: second\nclips:\n  - {name: Idle, frames: 24, fps: 24}\n")}

	ch, err := m.Character(5)
	if err != nil {
		t.Fatal(err)
	}
	if ch.Name != "first" {
		t.Errorf("cached name = %q, want first", ch.Name)
	}

	m.Release()

	ch, err = m.Character(5)
	if err != nil {
		t.Fatal(err)
	}
	if ch.Name != "second" {
		t.Errorf("name after Release = %q, want second", ch.Name)
	}
	hits, misses := m.Stats()
	if hits != 0 || misses != 1 {
		t.Errorf("Stats() after Release = (%d, %d), want (0, 1)", hits, misses)
	}
}
