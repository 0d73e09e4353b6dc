package renderer

import (
	"strings"

	"github.com/Faultbox/brawl/pkg/math"
)

// Body dimensions of a drawn fighter in world units.
const (
	bodyWidth  float32 = 0.6
	bodyHeight float32 = 1.8
	headSize   float32 = 0.25
	floorDepth float32 = 0.15
	barHeight  float32 = 0.06
	barGap     float32 = 0.1
)

// Color is a linear RGBA color.
type Color struct {
	R, G, B, A float32
}

var (
	backgroundColor = Color{0.1, 0.1, 0.15, 1}
	floorColor      = Color{0.3, 0.28, 0.25, 1}
	facingColor     = Color{0.95, 0.95, 0.95, 1}
	progressColor   = Color{0.95, 0.85, 0.3, 1}

	idleColor    = Color{0.45, 0.55, 0.7, 1}
	moveColor    = Color{0.35, 0.7, 0.45, 1}
	attackColor  = Color{0.9, 0.45, 0.2, 1}
	defendColor  = Color{0.3, 0.45, 0.95, 1}
	hitColor     = Color{0.95, 0.2, 0.2, 1}
	defeatColor  = Color{0.35, 0.35, 0.35, 1}
	stoppedColor = Color{0.6, 0.6, 0.6, 1}
)

// ClipColor returns the body color for the clip an actor is showing.
func ClipColor(clip string, playing bool) Color {
	if !playing {
		return stoppedColor
	}
	switch {
	case clip == "Idle":
		return idleColor
	case strings.HasPrefix(clip, "Walk"):
		return moveColor
	case strings.HasPrefix(clip, "Punch"), strings.HasPrefix(clip, "Kick"):
		return attackColor
	case clip == "Defend":
		return defendColor
	case clip == "Hit":
		return hitColor
	case clip == "Defeated":
		return defeatColor
	}
	return stoppedColor
}

// Drawable is anything the renderer can draw as a fighter.
type Drawable interface {
	Position() math.Vec3
	Heading() float32
	Visible() bool
	CurrentClip() (string, bool)
	Progress() float64
	Removed() bool
}

// Quad is an axis-aligned rectangle on the screen plane (world X, Z).
type Quad struct {
	Min   math.Vec2
	Size  math.Vec2
	Color Color
}

// Model returns the matrix mapping the unit square onto the quad.
func (q Quad) Model() math.Mat4 {
	return math.Translate(q.Min.X, q.Min.Y, 0).Mul(math.Scale(q.Size.X, q.Size.Y, 1))
}

// Projection returns an orthographic camera looking down +Y at the
// fighting plane. viewWidth world units span the screen horizontally,
// centered on X=0, with floorZ a little above the bottom edge.
func Projection(viewWidth, aspect, floorZ float32) math.Mat4 {
	if aspect <= 0 {
		aspect = 1
	}
	half := viewWidth / 2
	height := viewWidth / aspect
	bottom := floorZ - height*0.25
	return math.Ortho(-half, half, bottom, bottom+height, -1, 1)
}

// FloorQuad is the strip the fighters stand on.
func FloorQuad(viewWidth, floorZ float32) Quad {
	return Quad{
		Min:   math.Vec2{X: -viewWidth / 2, Y: floorZ - floorDepth},
		Size:  math.Vec2{X: viewWidth, Y: floorDepth},
		Color: floorColor,
	}
}

// ActorQuads lays out the body and facing marker of d, plus a bar above
// the head showing how far the current clip has played. Hidden and removed
// actors produce nothing.
func ActorQuads(d Drawable) []Quad {
	if d.Removed() || !d.Visible() {
		return nil
	}
	base := d.Position().XZ()
	clip, playing := d.CurrentClip()

	body := Quad{
		Min:   math.Vec2{X: base.X - bodyWidth/2, Y: base.Y},
		Size:  math.Vec2{X: bodyWidth, Y: bodyHeight},
		Color: ClipColor(clip, playing),
	}

	// Models face away from their local forward axis.
	facing := math.Heading(d.Heading()).TransformDirection(math.AxisForward).Scale(-1)
	markerX := base.X - headSize/2
	switch {
	case facing.X > 0.5:
		markerX = base.X + bodyWidth/2 - headSize
	case facing.X < -0.5:
		markerX = base.X - bodyWidth/2
	}
	marker := Quad{
		Min:   math.Vec2{X: markerX, Y: base.Y + bodyHeight - headSize*1.5},
		Size:  math.Vec2{X: headSize, Y: headSize},
		Color: facingColor,
	}
	quads := []Quad{body, marker}
	if !playing {
		return quads
	}

	progress := float32(d.Progress())
	if progress <= 0 {
		return quads
	}
	if progress > 1 {
		progress = 1
	}
	bar := Quad{
		Min:   math.Vec2{X: base.X - bodyWidth/2, Y: base.Y + bodyHeight + barGap},
		Size:  math.Vec2{X: bodyWidth * progress, Y: barHeight},
		Color: progressColor,
	}
	return append(quads, bar)
}
