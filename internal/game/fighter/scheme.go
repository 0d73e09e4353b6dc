package fighter

import (
	"errors"
	"fmt"

	"github.com/Faultbox/brawl/internal/engine/keys"
)

var (
	// ErrUnknownScheme is returned for a scheme id outside the built-in set.
	ErrUnknownScheme = errors.New("unknown control scheme")
	// ErrKeyConflict is returned when two buttons of a scheme share a key.
	ErrKeyConflict = errors.New("key bound twice")
)

// Button is a logical fighter input.
type Button int

const (
	ButtonMoveLeft Button = iota
	ButtonMoveRight
	ButtonPunchLeft
	ButtonPunchRight
	ButtonKickLeft
	ButtonKickRight
	ButtonDefend

	buttonCount
)

var buttonNames = [buttonCount]string{
	ButtonMoveLeft:   "move-left",
	ButtonMoveRight:  "move-right",
	ButtonPunchLeft:  "punch-left",
	ButtonPunchRight: "punch-right",
	ButtonKickLeft:   "kick-left",
	ButtonKickRight:  "kick-right",
	ButtonDefend:     "defend",
}

func (b Button) String() string {
	if b >= 0 && b < buttonCount {
		return buttonNames[b]
	}
	return fmt.Sprintf("Button(%d)", int(b))
}

// SchemeID selects one of the built-in control schemes.
type SchemeID int

const (
	SchemeOne SchemeID = iota + 1
	SchemeTwo
)

func (id SchemeID) String() string {
	switch id {
	case SchemeOne:
		return "p1"
	case SchemeTwo:
		return "p2"
	}
	return fmt.Sprintf("SchemeID(%d)", int(id))
}

// Scheme binds each button to a physical key and fixes the fighter's facing.
type Scheme struct {
	ID      SchemeID
	Heading float32 // degrees about the up axis
	Keys    [buttonCount]keys.Key
}

// Player one faces +X from the left side; player two mirrors it, so its
// move keys are the arrow keys pointing away from and towards player one.
var builtinSchemes = map[SchemeID]Scheme{
	SchemeOne: {
		ID:      SchemeOne,
		Heading: 90,
		Keys: [buttonCount]keys.Key{
			ButtonMoveLeft:   keys.D,
			ButtonMoveRight:  keys.F,
			ButtonPunchLeft:  keys.Q,
			ButtonPunchRight: keys.W,
			ButtonKickLeft:   keys.A,
			ButtonKickRight:  keys.S,
			ButtonDefend:     keys.E,
		},
	},
	SchemeTwo: {
		ID:      SchemeTwo,
		Heading: -90,
		Keys: [buttonCount]keys.Key{
			ButtonMoveLeft:   keys.Right,
			ButtonMoveRight:  keys.Left,
			ButtonPunchLeft:  keys.I,
			ButtonPunchRight: keys.O,
			ButtonKickLeft:   keys.K,
			ButtonKickRight:  keys.L,
			ButtonDefend:     keys.P,
		},
	},
}

// LookupScheme returns a built-in scheme.
func LookupScheme(id SchemeID) (Scheme, error) {
	s, ok := builtinSchemes[id]
	if !ok {
		return Scheme{}, fmt.Errorf("%w: %d", ErrUnknownScheme, int(id))
	}
	return s, nil
}

// Key returns the key bound to b.
func (s Scheme) Key(b Button) keys.Key {
	if b < 0 || b >= buttonCount {
		return keys.Unknown
	}
	return s.Keys[b]
}

// Validate checks that every button has its own key.
func (s Scheme) Validate() error {
	seen := make(map[keys.Key]Button, buttonCount)
	for b := ButtonMoveLeft; b < buttonCount; b++ {
		k := s.Keys[b]
		if k == keys.Unknown {
			return fmt.Errorf("scheme %v: %v has no key", s.ID, b)
		}
		if other, ok := seen[k]; ok {
			return fmt.Errorf("scheme %v: %v and %v on %v: %w", s.ID, other, b, k, ErrKeyConflict)
		}
		seen[k] = b
	}
	return nil
}
