package ink

// Tool selects the compositing semantics for strokes committed after the
// selection. Switching tools never touches already-committed strokes.
type Tool int

const (
	ToolPen Tool = iota
	ToolEraser
)

// Session owns the working copy of a block's annotation set for the
// duration of one editing session. It is single-writer: the host must not
// open two sessions on the same block at once. On Save the host receives
// an immutable snapshot through OnSave; on Cancel the working copy is
// discarded and the block's committed set is untouched.
type Session struct {
	tool    Tool
	color   string
	width   float64
	working Set

	// OnSave receives the finalized set, replacing the block's annotation
	// set wholesale. OnCancel is called with no payload.
	OnSave   func(Set)
	OnCancel func()
}

// NewSession seeds a session from the block's committed annotation set.
// The set is cloned so the session never mutates the host's copy.
func NewSession(initial Set) *Session {
	return &Session{
		tool:    ToolPen,
		color:   DefaultColor,
		width:   DefaultWidth,
		working: initial.Clone(),
	}
}

// SelectColor picks a pen color and forces the tool back to the pen.
func (s *Session) SelectColor(c string) {
	s.color = c
	s.tool = ToolPen
}

// SelectTool switches the blend semantics for subsequent strokes.
func (s *Session) SelectTool(t Tool) {
	s.tool = t
}

// SetWidth sets the brush size, shared by both tools. The eraser derives
// its own effective thickness from it. Non-positive values are ignored.
func (s *Session) SetWidth(w float64) {
	if w > 0 {
		s.width = w
	}
}

func (s *Session) Tool() Tool     { return s.tool }
func (s *Session) Color() string  { return s.color }
func (s *Session) Width() float64 { return s.width }

// Params returns the visual parameters a stroke committed right now would
// use. The capture path uses these for incremental segment rendering.
func (s *Session) Params() Params {
	p := Params{Kind: KindPaint, Color: s.color, Width: s.width}
	if s.tool == ToolEraser {
		p.Kind = KindErase
		p.Color = ""
	}
	return p
}

// Commit appends a stroke built from the captured points and the active
// tool state. Point sequences shorter than 2 (a tap) are inert and commit
// nothing. Reports whether a stroke was added.
func (s *Session) Commit(points []Point) bool {
	if len(points) < 2 {
		return false
	}
	p := s.Params()
	s.working = append(s.working, Stroke{
		Kind:   p.Kind,
		Color:  p.Color,
		Width:  p.Width,
		Points: append([]Point(nil), points...),
	})
	return true
}

// Undo removes the most recently committed stroke. No-op on an empty
// working copy. There is no redo: an undone stroke is unrecoverable.
func (s *Session) Undo() {
	if len(s.working) == 0 {
		return
	}
	s.working = s.working[:len(s.working)-1]
}

// Strokes returns the current working copy for rendering. Callers must
// treat it as read-only.
func (s *Session) Strokes() Set {
	return s.working
}

// Save hands an immutable snapshot of the working copy to the host and
// ends the session.
func (s *Session) Save() {
	if s.OnSave != nil {
		s.OnSave(s.working.Clone())
	}
}

// Cancel discards the working copy and ends the session.
func (s *Session) Cancel() {
	if s.OnCancel != nil {
		s.OnCancel()
	}
}
