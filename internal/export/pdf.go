// Package export flattens a note's media blocks with their replayed
// annotation layers and writes them into a PDF.
package export

import (
	"bytes"
	"fmt"
	"image"
	_ "image/jpeg"
	"image/png"
	"os"

	"github.com/jung-kurt/gofpdf"
	xdraw "golang.org/x/image/draw"

	"neonpad/internal/ink"
	"neonpad/internal/store"
)

// pdfImageWidth caps the pixel width of images embedded in the PDF.
const pdfImageWidth = 1200

// NotePDF writes the note and its image blocks, annotations composited
// over the media, to a PDF file at path. Video blocks are listed by name
// only; their frames are not extracted.
func NotePDF(path string, db *store.DB, note *store.Note) error {
	blocks, err := db.ListBlocks(note.ID)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetTitle(note.Title, true)
	pdf.SetFont("Helvetica", "B", 16)
	pdf.AddPage()
	pdf.CellFormat(0, 10, note.Title, "", 1, "L", false, 0, "")
	pdf.SetFont("Helvetica", "", 10)

	for _, b := range blocks {
		if b.Kind != store.BlockImage {
			pdf.CellFormat(0, 8, fmt.Sprintf("[video: %s]", b.MediaPath), "", 1, "L", false, 0, "")
			continue
		}

		flat, err := flattenBlock(db, &b)
		if err != nil {
			return fmt.Errorf("flatten block %s: %w", b.ID, err)
		}

		var buf bytes.Buffer
		if err := png.Encode(&buf, flat); err != nil {
			return fmt.Errorf("encode block %s: %w", b.ID, err)
		}

		opts := gofpdf.ImageOptions{ImageType: "PNG"}
		pdf.RegisterImageOptionsReader(b.ID, opts, &buf)

		// Fit to the printable width; height follows the aspect ratio.
		const printableWidth = 190.0
		pdf.ImageOptions(b.ID, 10, pdf.GetY()+2, printableWidth, 0, true, opts, 0, "")
		pdf.Ln(4)
	}

	return pdf.OutputFileAndClose(path)
}

// flattenBlock loads the block's media and composites its annotation
// layer on top, then scales the result down for embedding.
func flattenBlock(db *store.DB, b *store.Block) (*image.NRGBA, error) {
	f, err := os.Open(db.MediaFile(b))
	if err != nil {
		return nil, fmt.Errorf("open media: %w", err)
	}
	defer f.Close()

	media, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("decode media: %w", err)
	}

	set, err := ink.UnmarshalSet(b.Annotations)
	if err != nil {
		return nil, fmt.Errorf("decode annotations: %w", err)
	}

	return scaleToWidth(Flatten(media, set), pdfImageWidth), nil
}

// Flatten reproduces the stacked-layer view as one image: the media at
// the bottom, the replayed annotation layer composited over it. The
// output is sized through ink.FitSurface, the same contract the editor
// uses, so stored points land where they were drawn.
func Flatten(media image.Image, set ink.Set) *image.NRGBA {
	bounds := media.Bounds()
	w, h := ink.FitSurface(bounds.Dx(), bounds.Dy())
	out := image.NewNRGBA(image.Rect(0, 0, w, h))
	xdraw.CatmullRom.Scale(out, out.Bounds(), media, bounds, xdraw.Src, nil)

	overlay := ink.Replay(set, w, h)
	xdraw.Draw(out, out.Bounds(), overlay, image.Point{}, xdraw.Over)
	return out
}

func scaleToWidth(img *image.NRGBA, maxWidth int) *image.NRGBA {
	b := img.Bounds()
	if b.Dx() <= maxWidth {
		return img
	}
	h := b.Dy() * maxWidth / b.Dx()
	dst := image.NewNRGBA(image.Rect(0, 0, maxWidth, h))
	xdraw.CatmullRom.Scale(dst, dst.Bounds(), img, b, xdraw.Src, nil)
	return dst
}
