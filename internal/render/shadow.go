package render

import (
	"image"
	"image/color"
	"image/draw"
)

// ShadowOptions configures the drop shadow drawn under the page.
type ShadowOptions struct {
	Radius  int
	Offset  image.Point
	Opacity float64
}

// ShadowResult is a page composited over its shadow.
type ShadowResult struct {
	Image *image.RGBA
	// Offset is where the page's top-left corner landed in Image.
	Offset image.Point
}

// DefaultShadowOptions returns the page shadow used by the canvas. Radius is
// the shadow width reserved on each side of the page.
func DefaultShadowOptions() ShadowOptions {
	return ShadowOptions{
		Radius:  10,
		Offset:  image.Pt(0, 2),
		Opacity: 0.35,
	}
}

// ApplyShadow composites img over a blurred copy of its alpha. The result
// has a zero origin.
func ApplyShadow(img *image.RGBA, opts ShadowOptions) ShadowResult {
	if img == nil {
		return ShadowResult{}
	}
	if img.Bounds().Empty() || opts.Opacity <= 0 {
		return ShadowResult{Image: img}
	}
	opacity := min(opts.Opacity, 1)
	radius := max(opts.Radius, 0)

	src := img.Bounds()
	padded := src.Inset(-radius)
	shadow := padded.Add(opts.Offset)
	all := src.Union(shadow)

	mask := image.NewGray(image.Rect(0, 0, padded.Dx(), padded.Dy()))
	for y := src.Min.Y; y < src.Max.Y; y++ {
		for x := src.Min.X; x < src.Max.X; x++ {
			if a := img.RGBAAt(x, y).A; a != 0 {
				mask.SetGray(x-padded.Min.X, y-padded.Min.Y, color.Gray{Y: a})
			}
		}
	}
	blurred := boxBlur(mask, radius)

	dst := image.NewRGBA(image.Rect(0, 0, all.Dx(), all.Dy()))
	if alpha := uint8(opacity*255 + 0.5); alpha > 0 {
		tint := image.NewUniform(color.RGBA{A: alpha})
		draw.DrawMask(dst, blurred.Bounds().Add(shadow.Min.Sub(all.Min)), tint, image.Point{}, blurred, image.Point{}, draw.Over)
	}
	draw.Draw(dst, src.Sub(all.Min), img, src.Min, draw.Over)
	return ShadowResult{Image: dst, Offset: src.Min.Sub(all.Min)}
}

// boxBlur averages every pixel with its neighbours within radius, first
// along rows and then along columns.
func boxBlur(src *image.Gray, radius int) *image.Gray {
	w, h := src.Bounds().Dx(), src.Bounds().Dy()
	tmp := image.NewGray(src.Bounds())
	dst := image.NewGray(src.Bounds())
	if radius <= 0 {
		copy(dst.Pix, src.Pix)
		return dst
	}
	for y := 0; y < h; y++ {
		blurLine(src.Pix[y*src.Stride:], 1, tmp.Pix[y*tmp.Stride:], w, radius)
	}
	for x := 0; x < w; x++ {
		blurLine(tmp.Pix[x:], tmp.Stride, dst.Pix[x:], h, radius)
	}
	return dst
}

func blurLine(in []uint8, stride int, out []uint8, n, radius int) {
	prefix := make([]int, n+1)
	for i := 0; i < n; i++ {
		prefix[i+1] = prefix[i] + int(in[i*stride])
	}
	for i := 0; i < n; i++ {
		lo := max(i-radius, 0)
		hi := min(i+radius, n-1)
		out[i*stride] = uint8((prefix[hi+1] - prefix[lo]) / (hi - lo + 1))
	}
}
