package ui

import (
	"image/color"
	"testing"

	"github.com/stretchr/testify/assert"

	"neonpad/internal/ink"
	"neonpad/internal/store"
)

func TestPaletteColor(t *testing.T) {
	tests := []struct {
		hex  string
		want color.NRGBA
	}{
		{"#22d3ee", color.NRGBA{R: 0x22, G: 0xd3, B: 0xee, A: 0xff}},
		{"#facc15", color.NRGBA{R: 0xfa, G: 0xcc, B: 0x15, A: 0xff}},
		{"#000000", color.NRGBA{A: 0xff}},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, paletteColor(tt.hex), tt.hex)
	}
}

func TestPaletteColorMalformedFallsBackToWhite(t *testing.T) {
	for _, hex := range []string{"", "22d3ee", "#22d3e", "#22d3eeff"} {
		assert.Equal(t, color.White, paletteColor(hex), "%q", hex)
	}
}

func TestEveryPaletteEntryParses(t *testing.T) {
	for _, hex := range ink.Palette {
		assert.NotEqual(t, color.White, paletteColor(hex), hex)
	}
}

func TestSortFromLabel(t *testing.T) {
	assert.Equal(t, store.SortUpdatedDesc, sortFromLabel("Last updated"))
	assert.Equal(t, store.SortCreatedDesc, sortFromLabel("Created"))
	assert.Equal(t, store.SortTitleAsc, sortFromLabel("Title"))
	assert.Equal(t, store.SortUpdatedDesc, sortFromLabel("bogus"))
}

func TestSwatchTapSelectsColorAndPen(t *testing.T) {
	session := ink.NewSession(nil)
	session.SelectTool(ink.ToolEraser)

	tapped := false
	s := newColorSwatch(paletteColor("#f472b6"), func() {
		tapped = true
		session.SelectColor("#f472b6")
	})
	s.Tapped(nil)

	assert.True(t, tapped)
	assert.Equal(t, ink.ToolPen, session.Tool())
	assert.Equal(t, "#f472b6", session.Color())
}
