// Package ink is the annotation engine: the stroke data model, the
// pointer-capture state machine, the compositing routine shared by live
// drawing and replay, and the editing session that owns the working copy
// of a block's strokes.
//
// The package is headless. It draws onto *image.NRGBA surfaces and knows
// nothing about windows or widgets; internal/ui binds it to Fyne.
package ink

// Kind discriminates how a stroke composites onto the surface.
type Kind int

const (
	// KindPaint composites the stroke color over earlier strokes.
	KindPaint Kind = iota
	// KindErase clears annotation pixels under the stroke path. It never
	// touches the media the annotation layer is stacked over.
	KindErase
)

// Stroke is one continuous freehand gesture. Strokes are immutable once
// committed to a Set; editing means removing and re-adding.
type Stroke struct {
	Kind   Kind
	Color  string // palette hex, meaningful only for KindPaint
	Width  float64
	Points []Point
}

// Inert reports whether the stroke has too few points to be visible.
// Inert strokes must never enter a committed Set.
func (s Stroke) Inert() bool {
	return len(s.Points) < 2
}

// Set is the ordered collection of committed strokes for one block.
// Index order is paint order: later strokes, erasers included, composite
// on top of earlier ones. Append-only during a session except for undo
// (pop-last) and load (replace-all).
type Set []Stroke

// Clone returns a deep copy, so the session's working copy and the host's
// committed set never alias each other's point slices.
func (s Set) Clone() Set {
	if s == nil {
		return nil
	}
	out := make(Set, len(s))
	for i, st := range s {
		st.Points = append([]Point(nil), st.Points...)
		out[i] = st
	}
	return out
}

// Palette is the fixed set of selectable pen colors.
var Palette = []string{
	"#22d3ee", // cyan
	"#a78bfa", // violet
	"#f472b6", // pink
	"#4ade80", // green
	"#facc15", // yellow
	"#fb7185", // rose
}

// DefaultColor is the pen color a fresh session starts with.
const DefaultColor = "#22d3ee"

// DefaultWidth is the brush size a fresh session starts with.
const DefaultWidth = 3
