// Package keys names physical keyboard keys.
//
// Values are USB HID keyboard usage ids, the same numbering SDL2 uses for its
// scancodes, so the input package converts between the two with a plain cast.
// Keeping the type here lets gameplay code bind keys without linking SDL.
package keys

import "fmt"

// Key is a physical key position (layout independent).
type Key uint16

// Keys used by the built-in control schemes plus a few for the game loop.
const (
	Unknown Key = 0

	A Key = 4
	D Key = 7
	E Key = 8
	F Key = 9
	I Key = 12
	K Key = 14
	L Key = 15
	O Key = 18
	P Key = 19
	Q Key = 20
	R Key = 21
	S Key = 22
	W Key = 26

	Escape Key = 41
	Space  Key = 44
	F12    Key = 69

	Right Key = 79
	Left  Key = 80
	Down  Key = 81
	Up    Key = 82
)

var names = map[Key]string{
	A:      "A",
	D:      "D",
	E:      "E",
	F:      "F",
	I:      "I",
	K:      "K",
	L:      "L",
	O:      "O",
	P:      "P",
	Q:      "Q",
	R:      "R",
	S:      "S",
	W:      "W",
	Escape: "Escape",
	Space:  "Space",
	F12:    "F12",
	Right:  "Right",
	Left:   "Left",
	Down:   "Down",
	Up:     "Up",
}

func (k Key) String() string {
	if name, ok := names[k]; ok {
		return name
	}
	return fmt.Sprintf("Key(%d)", uint16(k))
}
