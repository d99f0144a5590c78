package ink

import "image"

// State is the capture state machine's position: Idle, or Capturing while
// a pointer is down. There are no intermediate persisted states, and no
// mid-stroke cancellation.
type State int

const (
	Idle State = iota
	Capturing
)

// Capturer accumulates pointer positions into an in-progress stroke and
// paints incrementally for immediate feedback. On release it commits the
// stroke through the session and performs the authoritative full redraw.
//
// Coordinates passed in must already be surface-local; translating from
// window coordinates (and suppressing scroll gestures) is the widget's
// job.
type Capturer struct {
	session *Session
	surface *image.NRGBA
	state   State
	points  []Point
}

func NewCapturer(session *Session, surface *image.NRGBA) *Capturer {
	c := &Capturer{session: session, surface: surface}
	Render(surface, session.Strokes())
	return c
}

// Surface returns the layer the capturer draws on.
func (c *Capturer) Surface() *image.NRGBA { return c.surface }

// State returns the current machine state.
func (c *Capturer) State() State { return c.state }

// Begin handles pointer-down: Idle -> Capturing, recording the down
// position as the first point. Ignored while already capturing.
func (c *Capturer) Begin(p Point) {
	if c.state != Idle {
		return
	}
	c.state = Capturing
	c.points = c.points[:0]
	c.points = append(c.points, p)
}

// Move handles pointer-move while capturing: appends the point and strokes
// only the segment from the previous point, so the surface is not redrawn
// wholesale on every move event.
func (c *Capturer) Move(p Point) {
	if c.state != Capturing {
		return
	}
	prev := c.points[len(c.points)-1]
	c.points = append(c.points, p)
	RenderSegment(c.surface, prev, p, c.session.Params())
}

// End handles pointer-up: Capturing -> Idle. A sequence of at least 2
// points commits a stroke with the active tool's semantics; a tap commits
// nothing. Either way the in-progress points are cleared and the surface
// is fully redrawn from the committed list, which reconciles any drift
// the incremental segments introduced.
func (c *Capturer) End() {
	if c.state != Capturing {
		return
	}
	c.state = Idle
	c.session.Commit(c.points)
	c.points = c.points[:0]
	Render(c.surface, c.session.Strokes())
}

// Leave handles the pointer leaving the surface, which ends the stroke
// exactly like a release.
func (c *Capturer) Leave() {
	c.End()
}

// Redraw re-renders the surface from the committed stroke list. Called
// after any out-of-band change to the working copy, such as undo.
func (c *Capturer) Redraw() {
	Render(c.surface, c.session.Strokes())
}
