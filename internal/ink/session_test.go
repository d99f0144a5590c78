package ink

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func twoPoints() []Point {
	return []Point{Pt(1, 1), Pt(2, 2)}
}

func TestSessionSeedsFromInitialSetWithoutAliasing(t *testing.T) {
	initial := Set{{Kind: KindPaint, Color: "#22d3ee", Width: 3, Points: twoPoints()}}
	s := NewSession(initial)

	require.Len(t, s.Strokes(), 1)

	// Mutating the host's copy must not leak into the working copy.
	initial[0].Points[0] = Pt(99, 99)
	assert.Equal(t, Pt(1, 1), s.Strokes()[0].Points[0])
}

func TestCommitDiscardsDegeneratePointSequences(t *testing.T) {
	tests := []struct {
		name   string
		points []Point
		want   bool
	}{
		{"empty", nil, false},
		{"tap", []Point{Pt(5, 5)}, false},
		{"two points", twoPoints(), true},
		{"many points", []Point{Pt(10, 10), Pt(10, 50), Pt(50, 50)}, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := NewSession(nil)
			got := s.Commit(tt.points)
			assert.Equal(t, tt.want, got)
			wantLen := 0
			if tt.want {
				wantLen = 1
			}
			assert.Len(t, s.Strokes(), wantLen)
		})
	}
}

func TestCommitUsesActiveToolSemantics(t *testing.T) {
	s := NewSession(nil)
	s.SelectColor("#a78bfa")
	s.SetWidth(5)
	require.True(t, s.Commit(twoPoints()))

	s.SelectTool(ToolEraser)
	require.True(t, s.Commit(twoPoints()))

	strokes := s.Strokes()
	require.Len(t, strokes, 2)
	assert.Equal(t, KindPaint, strokes[0].Kind)
	assert.Equal(t, "#a78bfa", strokes[0].Color)
	assert.Equal(t, float64(5), strokes[0].Width)
	assert.Equal(t, KindErase, strokes[1].Kind)
	assert.Empty(t, strokes[1].Color, "erase strokes carry no palette color")
}

func TestSelectColorForcesPen(t *testing.T) {
	s := NewSession(nil)
	s.SelectTool(ToolEraser)
	s.SelectColor("#fb7185")
	assert.Equal(t, ToolPen, s.Tool())
	assert.Equal(t, "#fb7185", s.Color())
}

func TestSelectToolDoesNotTouchCommittedStrokes(t *testing.T) {
	s := NewSession(nil)
	require.True(t, s.Commit(twoPoints()))
	s.SelectTool(ToolEraser)
	assert.Equal(t, KindPaint, s.Strokes()[0].Kind)
}

func TestSetWidthRejectsNonPositive(t *testing.T) {
	s := NewSession(nil)
	s.SetWidth(7)
	s.SetWidth(0)
	s.SetWidth(-3)
	assert.Equal(t, float64(7), s.Width())
}

func TestUndoIsLIFOAndBottomsOutSilently(t *testing.T) {
	s := NewSession(nil)
	for i := 0; i < 3; i++ {
		require.True(t, s.Commit(twoPoints()))
	}

	for want := 2; want >= 0; want-- {
		s.Undo()
		assert.Len(t, s.Strokes(), want)
	}

	// Undo on empty is a no-op, repeatably.
	s.Undo()
	s.Undo()
	assert.Empty(t, s.Strokes())
}

func TestSaveHandsBackSnapshot(t *testing.T) {
	s := NewSession(nil)
	require.True(t, s.Commit(twoPoints()))

	var saved Set
	s.OnSave = func(set Set) { saved = set }
	s.Save()

	require.Len(t, saved, 1)

	// The snapshot is detached: later session edits don't reach it.
	s.Undo()
	assert.Len(t, saved, 1)
}

func TestSaveWithZeroStrokesYieldsEmptySet(t *testing.T) {
	s := NewSession(nil)
	var saved Set
	called := false
	s.OnSave = func(set Set) { saved, called = set, true }
	s.Save()

	require.True(t, called)
	assert.Empty(t, saved)

	img := Replay(saved, 64, 64)
	for i := range img.Pix {
		if img.Pix[i] != 0 {
			t.Fatal("replaying an empty saved set must leave the surface transparent")
		}
	}
}

func TestCancelDeliversNoPayload(t *testing.T) {
	s := NewSession(Set{{Kind: KindPaint, Color: "#22d3ee", Width: 3, Points: twoPoints()}})
	require.True(t, s.Commit(twoPoints()))

	canceled := false
	s.OnCancel = func() { canceled = true }
	s.Cancel()
	assert.True(t, canceled)
}

func TestEraserStrokePersistsWithSentinelTag(t *testing.T) {
	s := NewSession(Set{{Kind: KindPaint, Color: "#22d3ee", Width: 3, Points: twoPoints()}})
	s.SelectTool(ToolEraser)
	require.True(t, s.Commit(twoPoints()))

	var saved Set
	s.OnSave = func(set Set) { saved = set }
	s.Save()
	require.Len(t, saved, 2)

	data, err := MarshalSet(saved)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"color":"eraser"`)
	assert.NotContains(t, Palette, EraserTag)
}
