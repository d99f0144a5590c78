package ink

import (
	"image"
	"math"
)

const (
	// eraserWidthScale widens erase strokes beyond their nominal width so
	// the eraser feels like a rubber rather than a thin line. The same
	// constant applies during live capture and batch replay, so a stroke
	// looks the same while drawn and after commit.
	eraserWidthScale = 2

	// glowRadius is the blur radius of the halo painted under each pen
	// stroke, in pixels.
	glowRadius = 6

	// glowAlpha is the peak opacity of the halo.
	glowAlpha = 0.45

	// DefaultSurfaceSize is the fallback edge length used when a host
	// container's dimensions are unknown or zero at first measurement.
	DefaultSurfaceSize = 300

	// maxSurfaceWidth/Height bound the drawing surface a media block is
	// displayed at.
	maxSurfaceWidth  = 640
	maxSurfaceHeight = 480
)

// FitSurface maps media dimensions to the drawing surface size used for
// that media. Points are stored in absolute surface pixels, so capture,
// replay, and export must all size their surfaces through this one
// function or saved strokes would misalign with the media.
func FitSurface(mediaW, mediaH int) (int, int) {
	if mediaW <= 0 || mediaH <= 0 {
		return DefaultSurfaceSize, DefaultSurfaceSize
	}
	w, h := mediaW, mediaH
	if w > maxSurfaceWidth {
		h = h * maxSurfaceWidth / w
		w = maxSurfaceWidth
	}
	if h > maxSurfaceHeight {
		w = w * maxSurfaceHeight / h
		h = maxSurfaceHeight
	}
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	return w, h
}

// Params carries the visual parameters for one draw call. All compositing
// state is passed explicitly; nothing is mutated on a shared context, so
// rendering two surfaces in the same frame cannot leak style between them.
type Params struct {
	Kind  Kind
	Color string
	Width float64
}

// NewSurface returns a fully transparent annotation layer. Non-positive
// dimensions fall back to DefaultSurfaceSize.
func NewSurface(w, h int) *image.NRGBA {
	if w <= 0 {
		w = DefaultSurfaceSize
	}
	if h <= 0 {
		h = DefaultSurfaceSize
	}
	return image.NewNRGBA(image.Rect(0, 0, w, h))
}

// Render is the batch mode of the compositing routine: it clears dst to
// transparent and paints every stroke of set in order. This is the
// authoritative rendering path; the incremental per-move painting done by
// RenderSegment is an optimization layered on top of it and is reconciled
// by the full redraw that follows every commit.
func Render(dst *image.NRGBA, set Set) {
	clearSurface(dst)
	for _, st := range set {
		if st.Inert() {
			continue
		}
		renderStroke(dst, st.Points, Params{Kind: st.Kind, Color: st.Color, Width: st.Width})
	}
}

// RenderSegment is the incremental mode: it strokes only the segment
// between the previous and the newest captured point, using the current
// tool parameters, so the surface is not fully redrawn on every pointer
// move.
func RenderSegment(dst *image.NRGBA, a, b Point, p Params) {
	renderStroke(dst, []Point{a, b}, p)
}

// Replay renders a committed set onto a fresh surface of the given size.
// It is a pure function of its inputs: the same set and dimensions always
// produce identical pixels.
func Replay(set Set, w, h int) *image.NRGBA {
	dst := NewSurface(w, h)
	Render(dst, set)
	return dst
}

// renderStroke rasterizes one continuous polyline with round caps and
// round joins and composites it according to p.Kind.
func renderStroke(dst *image.NRGBA, points []Point, p Params) {
	b := dst.Bounds()
	w, h := b.Dx(), b.Dy()

	radius := p.Width / 2
	if p.Kind == KindErase {
		radius = p.Width * eraserWidthScale / 2
	}
	if radius < 0.5 {
		radius = 0.5
	}

	mask := strokeMask(w, h, points, radius)

	if p.Kind == KindErase {
		eraseMask(dst, mask)
		return
	}

	r, g, bl := hexRGB(p.Color)
	halo := boxBlur(mask, w, h, glowRadius)
	paintMask(dst, halo, r, g, bl, glowAlpha)
	paintMask(dst, mask, r, g, bl, 1)
}

// strokeMask builds a per-pixel coverage mask for the polyline by stamping
// anti-aliased disks of the given radius along each segment. Overlapping
// stamps take the maximum coverage, which is what makes consecutive
// segments read as one smooth trail instead of discrete darker-at-the-seam
// lines, and gives round caps and joins for free.
func strokeMask(w, h int, points []Point, radius float64) []float64 {
	mask := make([]float64, w*h)
	if len(points) == 0 {
		return mask
	}

	step := radius * 0.4
	if step < 0.25 {
		step = 0.25
	}

	stampDisk(mask, w, h, points[0], radius)
	for i := 1; i < len(points); i++ {
		a, b := points[i-1], points[i]
		n := int(math.Ceil(a.Distance(b) / step))
		for j := 1; j <= n; j++ {
			stampDisk(mask, w, h, a.Lerp(b, float64(j)/float64(n)), radius)
		}
	}
	return mask
}

// stampDisk accumulates the coverage of one disk into the mask. Coverage
// falls linearly from 1 inside the disk to 0 half a pixel outside the rim.
func stampDisk(mask []float64, w, h int, c Point, radius float64) {
	x0 := int(math.Floor(c.X - radius - 1))
	x1 := int(math.Ceil(c.X + radius + 1))
	y0 := int(math.Floor(c.Y - radius - 1))
	y1 := int(math.Ceil(c.Y + radius + 1))
	if x0 < 0 {
		x0 = 0
	}
	if y0 < 0 {
		y0 = 0
	}
	if x1 >= w {
		x1 = w - 1
	}
	if y1 >= h {
		y1 = h - 1
	}

	for y := y0; y <= y1; y++ {
		for x := x0; x <= x1; x++ {
			dx := float64(x) + 0.5 - c.X
			dy := float64(y) + 0.5 - c.Y
			cov := radius + 0.5 - math.Sqrt(dx*dx+dy*dy)
			if cov <= 0 {
				continue
			}
			if cov > 1 {
				cov = 1
			}
			i := y*w + x
			if cov > mask[i] {
				mask[i] = cov
			}
		}
	}
}

// boxBlur returns a blurred copy of the mask: two passes of a separable
// box filter, which approximates the soft falloff of a canvas shadow well
// enough for a glow halo.
func boxBlur(mask []float64, w, h, radius int) []float64 {
	src := append([]float64(nil), mask...)
	tmp := make([]float64, len(mask))
	for pass := 0; pass < 2; pass++ {
		blurAxis(src, tmp, w, h, radius, true)
		blurAxis(tmp, src, w, h, radius, false)
	}
	return src
}

func blurAxis(src, dst []float64, w, h, radius int, horizontal bool) {
	norm := float64(2*radius + 1)
	if horizontal {
		for y := 0; y < h; y++ {
			row := y * w
			var sum float64
			for x := -radius; x <= radius; x++ {
				sum += sampleRow(src, row, x, w)
			}
			for x := 0; x < w; x++ {
				dst[row+x] = sum / norm
				sum += sampleRow(src, row, x+radius+1, w) - sampleRow(src, row, x-radius, w)
			}
		}
		return
	}
	for x := 0; x < w; x++ {
		var sum float64
		for y := -radius; y <= radius; y++ {
			sum += sampleCol(src, x, y, w, h)
		}
		for y := 0; y < h; y++ {
			dst[y*w+x] = sum / norm
			sum += sampleCol(src, x, y+radius+1, w, h) - sampleCol(src, x, y-radius, w, h)
		}
	}
}

func sampleRow(src []float64, row, x, w int) float64 {
	if x < 0 || x >= w {
		return 0
	}
	return src[row+x]
}

func sampleCol(src []float64, x, y, w, h int) float64 {
	if y < 0 || y >= h {
		return 0
	}
	return src[y*w+x]
}

// paintMask composites a solid color over dst wherever the mask has
// coverage, with source alpha = coverage * alphaScale. Standard src-over
// on non-premultiplied pixels.
func paintMask(dst *image.NRGBA, mask []float64, r, g, b, alphaScale float64) {
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			sa := mask[y*w+x] * alphaScale
			if sa <= 0 {
				continue
			}
			if sa > 1 {
				sa = 1
			}
			i := dst.PixOffset(x, y)
			da := float64(dst.Pix[i+3]) / 255
			outA := sa + da*(1-sa)
			if outA <= 0 {
				continue
			}
			blend := func(sc float64, dc uint8) uint8 {
				out := (sc*sa + float64(dc)/255*da*(1-sa)) / outA
				return uint8(math.Round(out * 255))
			}
			dst.Pix[i+0] = blend(r, dst.Pix[i+0])
			dst.Pix[i+1] = blend(g, dst.Pix[i+1])
			dst.Pix[i+2] = blend(b, dst.Pix[i+2])
			dst.Pix[i+3] = uint8(math.Round(outA * 255))
		}
	}
}

// eraseMask attenuates destination alpha by the mask coverage. Only the
// annotation layer's own pixels are affected; the media underneath is a
// separate layer and shows through wherever alpha reaches zero.
func eraseMask(dst *image.NRGBA, mask []float64) {
	bounds := dst.Bounds()
	w, h := bounds.Dx(), bounds.Dy()
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			cov := mask[y*w+x]
			if cov <= 0 {
				continue
			}
			i := dst.PixOffset(x, y)
			a := float64(dst.Pix[i+3]) / 255 * (1 - cov)
			dst.Pix[i+3] = uint8(math.Round(a * 255))
			if dst.Pix[i+3] == 0 {
				dst.Pix[i+0] = 0
				dst.Pix[i+1] = 0
				dst.Pix[i+2] = 0
			}
		}
	}
}

func clearSurface(dst *image.NRGBA) {
	for i := range dst.Pix {
		dst.Pix[i] = 0
	}
}

// hexRGB parses "#RGB" or "#RRGGBB" into components in [0,1]. Anything
// unparseable renders white rather than failing; stroke colors come from
// the fixed palette, so this path only matters for hand-edited data.
func hexRGB(hex string) (r, g, b float64) {
	if len(hex) > 0 && hex[0] == '#' {
		hex = hex[1:]
	}
	parse := func(s string) (uint32, bool) {
		var v uint32
		for i := 0; i < len(s); i++ {
			c := s[i]
			v *= 16
			switch {
			case '0' <= c && c <= '9':
				v += uint32(c - '0')
			case 'a' <= c && c <= 'f':
				v += uint32(c-'a') + 10
			case 'A' <= c && c <= 'F':
				v += uint32(c-'A') + 10
			default:
				return 0, false
			}
		}
		return v, true
	}

	switch len(hex) {
	case 3:
		rv, ok1 := parse(hex[0:1])
		gv, ok2 := parse(hex[1:2])
		bv, ok3 := parse(hex[2:3])
		if ok1 && ok2 && ok3 {
			return float64(rv*17) / 255, float64(gv*17) / 255, float64(bv*17) / 255
		}
	case 6:
		rv, ok1 := parse(hex[0:2])
		gv, ok2 := parse(hex[2:4])
		bv, ok3 := parse(hex[4:6])
		if ok1 && ok2 && ok3 {
			return float64(rv) / 255, float64(gv) / 255, float64(bv) / 255
		}
	}
	return 1, 1, 1
}
