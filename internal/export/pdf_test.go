package export

import (
	"image"
	"image/color"
	"image/png"
	"os"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"neonpad/internal/ink"
	"neonpad/internal/store"
)

func solidPNG(t *testing.T, w, h int, c color.Color) string {
	t.Helper()
	img := image.NewNRGBA(image.Rect(0, 0, w, h))
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			img.Set(x, y, c)
		}
	}
	path := filepath.Join(t.TempDir(), "media.png")
	f, err := os.Create(path)
	require.NoError(t, err)
	defer f.Close()
	require.NoError(t, png.Encode(f, img))
	return path
}

func TestFlattenCompositesInkOverMedia(t *testing.T) {
	media := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for i := 3; i < len(media.Pix); i += 4 {
		media.Pix[i] = 255 // opaque black
	}

	set := ink.Set{
		{Kind: ink.KindPaint, Color: "#22d3ee", Width: 4, Points: []ink.Point{ink.Pt(20, 50), ink.Pt(80, 50)}},
	}
	flat := Flatten(media, set)

	on := flat.NRGBAAt(50, 50)
	assert.InDelta(t, 0x22, int(on.R), 1)
	assert.InDelta(t, 0xd3, int(on.G), 1)
	assert.InDelta(t, 0xee, int(on.B), 1)

	off := flat.NRGBAAt(50, 10)
	assert.Equal(t, uint8(0), off.R, "media shows through where nothing was drawn")
	assert.Equal(t, uint8(255), off.A)
}

func TestFlattenEraserRevealsMedia(t *testing.T) {
	media := image.NewNRGBA(image.Rect(0, 0, 100, 100))
	for i := 3; i < len(media.Pix); i += 4 {
		media.Pix[i] = 255
	}

	set := ink.Set{
		{Kind: ink.KindPaint, Color: "#fb7185", Width: 6, Points: []ink.Point{ink.Pt(20, 50), ink.Pt(80, 50)}},
		{Kind: ink.KindErase, Width: 20, Points: []ink.Point{ink.Pt(40, 50), ink.Pt(60, 50)}},
	}
	flat := Flatten(media, set)

	revealed := flat.NRGBAAt(50, 50)
	assert.Equal(t, uint8(0), revealed.R,
		"erasing removes only the annotation layer's pixels, the media underneath shows")

	kept := flat.NRGBAAt(25, 50)
	assert.InDelta(t, 0xfb, int(kept.R), 1, "ink outside the erase path still composites")
}

func TestNotePDFWritesFile(t *testing.T) {
	dir := t.TempDir()
	db, err := store.Open(filepath.Join(dir, "test.db"), dir, zerolog.Nop())
	require.NoError(t, err)
	defer db.Close()

	note, err := db.CreateNote("exported")
	require.NoError(t, err)
	block, err := db.AddBlock(note.ID, store.BlockImage, solidPNG(t, 120, 80, color.NRGBA{A: 255}))
	require.NoError(t, err)

	set := ink.Set{
		{Kind: ink.KindPaint, Color: "#4ade80", Width: 3, Points: []ink.Point{ink.Pt(10, 10), ink.Pt(100, 60)}},
	}
	data, err := ink.MarshalSet(set)
	require.NoError(t, err)
	require.NoError(t, db.SetAnnotations(block.ID, data))

	out := filepath.Join(dir, "note.pdf")
	require.NoError(t, NotePDF(out, db, note))

	raw, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.True(t, len(raw) > 4 && string(raw[:4]) == "%PDF", "output starts with the PDF magic")
}
