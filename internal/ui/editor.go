package ui

import (
	"image"
	"image/color"
	_ "image/jpeg"
	_ "image/png"
	"os"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/canvas"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/widget"
	"github.com/rs/zerolog"

	"neonpad/internal/ink"
	"neonpad/internal/store"
)

// AnnotationEditor is the modal editing view for one block: the media at
// the bottom, the capture surface stacked over it, editing chrome above.
// Only one editor is open at a time; the session it owns is the single
// writer for the block's annotations until Save or Cancel.
type AnnotationEditor struct {
	session *ink.Session
	board   *InkCanvas
	content fyne.CanvasObject
}

// NewAnnotationEditor opens an editing session seeded from the block's
// persisted annotations. Save writes the finalized set back through the
// store wholesale; Cancel leaves the block untouched. Either way onClose
// runs afterwards so the host can return to the note view.
func NewAnnotationEditor(db *store.DB, block *store.Block, log zerolog.Logger, onClose func()) (*AnnotationEditor, error) {
	set, err := ink.UnmarshalSet(block.Annotations)
	if err != nil {
		return nil, err
	}

	w, h := blockSurfaceSize(db, block)
	session := ink.NewSession(set)
	board := NewInkCanvas(session, w, h)

	session.OnSave = func(final ink.Set) {
		data, err := ink.MarshalSet(final)
		if err != nil {
			log.Error().Err(err).Str("block", block.ID).Msg("encode annotations")
			return
		}
		if err := db.SetAnnotations(block.ID, data); err != nil {
			log.Error().Err(err).Str("block", block.ID).Msg("save annotations")
			return
		}
		log.Debug().Str("block", block.ID).Int("strokes", len(final)).Msg("annotations saved")
	}
	session.OnCancel = func() {
		log.Debug().Str("block", block.ID).Msg("annotation edit cancelled")
	}

	saveBtn := widget.NewButton("Save", func() {
		session.Save()
		onClose()
	})
	saveBtn.Importance = widget.HighImportance
	cancelBtn := widget.NewButton("Cancel", func() {
		session.Cancel()
		onClose()
	})

	stack := container.NewStack(blockMediaObject(db, block, w, h), board)

	ed := &AnnotationEditor{
		session: session,
		board:   board,
		content: container.NewBorder(
			NewInkToolbar(session, board),
			container.NewHBox(layout.NewSpacer(), cancelBtn, saveBtn),
			nil, nil,
			container.NewCenter(stack),
		),
	}
	return ed, nil
}

// Content returns the editor's root object for the host to display.
func (ed *AnnotationEditor) Content() fyne.CanvasObject {
	return ed.content
}

// blockSurfaceSize resolves the drawing surface size for a block. Image
// dimensions come from the media header; videos and unreadable media get
// the engine default.
func blockSurfaceSize(db *store.DB, b *store.Block) (int, int) {
	if b.Kind != store.BlockImage {
		return ink.FitSurface(0, 0)
	}
	f, err := os.Open(db.MediaFile(b))
	if err != nil {
		return ink.FitSurface(0, 0)
	}
	defer f.Close()
	cfg, _, err := image.DecodeConfig(f)
	if err != nil {
		return ink.FitSurface(0, 0)
	}
	return ink.FitSurface(cfg.Width, cfg.Height)
}

// blockMediaObject builds the bottom layer of a block stack: the image
// itself, or a placeholder card for videos.
func blockMediaObject(db *store.DB, b *store.Block, w, h int) fyne.CanvasObject {
	size := fyne.NewSize(float32(w), float32(h))
	if b.Kind == store.BlockImage {
		img := canvas.NewImageFromFile(db.MediaFile(b))
		img.FillMode = canvas.ImageFillStretch
		img.SetMinSize(size)
		return img
	}
	rect := canvas.NewRectangle(color.NRGBA{R: 0x16, G: 0x1d, B: 0x33, A: 0xff})
	rect.SetMinSize(size)
	label := widget.NewLabel("video: " + b.MediaPath)
	return container.NewStack(rect, container.NewCenter(label))
}
