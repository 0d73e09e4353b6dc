package keys

// NumKeys bounds the key ids tracked by State (SDL_NUM_SCANCODES).
const NumKeys = 512

// State is a snapshot of which keys are held.
type State struct {
	down [NumKeys]bool
}

// IsKeyDown reports whether k is held in this snapshot.
func (s *State) IsKeyDown(k Key) bool {
	return int(k) < NumKeys && s.down[k]
}

func (s *State) set(k Key, down bool) {
	if int(k) < NumKeys {
		s.down[k] = down
	}
}

// Load replaces the snapshot with a scancode-indexed array, as returned by
// SDL_GetKeyboardState.
func (s *State) Load(scancodes []uint8) {
	s.Reset()
	n := len(scancodes)
	if n > NumKeys {
		n = NumKeys
	}
	for i := 0; i < n; i++ {
		s.set(Key(i), scancodes[i] != 0)
	}
}

// Reset releases every key.
func (s *State) Reset() {
	s.down = [NumKeys]bool{}
}

// Held returns the held keys in ascending order.
func (s *State) Held() []Key {
	var held []Key
	for i, d := range s.down {
		if d {
			held = append(held, Key(i))
		}
	}
	return held
}
