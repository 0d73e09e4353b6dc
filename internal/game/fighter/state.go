package fighter

import "fmt"

// State is a fighter animation state. Each state plays the clip of the
// same name.
type State int

const (
	// StateNone is the state of a fighter that has never been started.
	StateNone State = iota
	Idle
	Walk
	WalkBack
	PunchLeft
	PunchRight
	KickLeft
	KickRight
	Defend
	Hit
	Defeated

	stateCount
)

var stateNames = [stateCount]string{
	StateNone:  "None",
	Idle:       "Idle",
	Walk:       "Walk",
	WalkBack:   "WalkBack",
	PunchLeft:  "PunchLeft",
	PunchRight: "PunchRight",
	KickLeft:   "KickLeft",
	KickRight:  "KickRight",
	Defend:     "Defend",
	Hit:        "Hit",
	Defeated:   "Defeated",
}

// States lists every state a fighter can be requested into.
func States() []State {
	out := make([]State, 0, stateCount-1)
	for s := Idle; s < stateCount; s++ {
		out = append(out, s)
	}
	return out
}

// Valid reports whether s can be entered.
func (s State) Valid() bool {
	return s > StateNone && s < stateCount
}

func (s State) String() string {
	if s >= StateNone && s < stateCount {
		return stateNames[s]
	}
	return fmt.Sprintf("State(%d)", int(s))
}

// ClipName returns the actor clip played by the state.
func (s State) ClipName() string {
	if !s.Valid() {
		return ""
	}
	return stateNames[s]
}

// Looping reports whether the state's clip repeats until the state is left.
func (s State) Looping() bool {
	switch s {
	case Idle, Walk, WalkBack:
		return true
	}
	return false
}

// IsAction reports whether the state's clip locks out movement and new
// actions while it plays.
func (s State) IsAction() bool {
	switch s {
	case PunchLeft, PunchRight, KickLeft, KickRight, Hit:
		return true
	}
	return false
}

// transition holds the actions run when a state is left and entered.
type transition struct {
	exit  func(Actor)
	enter func(Actor)
}

var transitions = [stateCount]transition{
	StateNone:  {exit: stopPlayback, enter: func(Actor) {}},
	Idle:       {exit: stopPlayback, enter: loopClip(Idle)},
	Walk:       {exit: stopPlayback, enter: loopClip(Walk)},
	WalkBack:   {exit: stopPlayback, enter: loopClip(WalkBack)},
	PunchLeft:  {exit: stopPlayback, enter: playClip(PunchLeft)},
	PunchRight: {exit: stopPlayback, enter: playClip(PunchRight)},
	KickLeft:   {exit: stopPlayback, enter: playClip(KickLeft)},
	KickRight:  {exit: stopPlayback, enter: playClip(KickRight)},
	Defend:     {exit: stopPlayback, enter: playClip(Defend)},
	Hit:        {exit: stopPlayback, enter: playClip(Hit)},
	Defeated:   {exit: stopPlayback, enter: playClip(Defeated)},
}

func stopPlayback(a Actor) {
	a.Stop()
}

func loopClip(s State) func(Actor) {
	clip := s.ClipName()
	return func(a Actor) { a.Loop(clip) }
}

func playClip(s State) func(Actor) {
	clip := s.ClipName()
	return func(a Actor) { a.Play(clip) }
}

// actionClips is the set of clip names that block input while playing.
var actionClips = func() map[string]bool {
	m := make(map[string]bool)
	for s := Idle; s < stateCount; s++ {
		if s.IsAction() {
			m[s.ClipName()] = true
		}
	}
	return m
}()
