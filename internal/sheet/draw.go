package sheet

import (
	"image"
	"image/color"
	"math"
)

func setThickPixel(img *image.RGBA, x, y, thick int, col color.Color) {
	r := thick / 2
	for dx := -r; dx <= r; dx++ {
		for dy := -r; dy <= r; dy++ {
			p := image.Pt(x+dx, y+dy)
			if p.In(img.Bounds()) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// drawLine rasterises a segment with Bresenham's algorithm.
func drawLine(img *image.RGBA, p0, p1 image.Point, col color.Color, thick int) {
	x0, y0, x1, y1 := p0.X, p0.Y, p1.X, p1.Y
	dx := math.Abs(float64(x1 - x0))
	dy := math.Abs(float64(y1 - y0))
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx - dy
	for {
		setThickPixel(img, x0, y0, thick, col)
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 > -dy {
			err -= dy
			x0 += sx
		}
		if e2 < dx {
			err += dx
			y0 += sy
		}
	}
}

func drawPolyline(img *image.RGBA, pts []image.Point, col color.Color, thick int) {
	if len(pts) == 1 {
		setThickPixel(img, pts[0].X, pts[0].Y, thick, col)
		return
	}
	for i := 1; i < len(pts); i++ {
		drawLine(img, pts[i-1], pts[i], col, thick)
	}
}

func drawRect(img *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	drawPolyline(img, []image.Point{
		r.Min,
		{r.Max.X - 1, r.Min.Y},
		{r.Max.X - 1, r.Max.Y - 1},
		{r.Min.X, r.Max.Y - 1},
		r.Min,
	}, col, thick)
}

func fillRect(img *image.RGBA, r image.Rectangle, col color.Color) {
	r = r.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.Set(x, y, col)
		}
	}
}

func drawEllipse(img *image.RGBA, r image.Rectangle, col color.Color, thick int) {
	c := image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
	rx, ry := r.Dx()/2, r.Dy()/2
	steps := int(math.Ceil(2 * math.Pi * math.Sqrt(float64(rx*rx+ry*ry))))
	if steps < 8 {
		steps = 8
	}
	var prev image.Point
	for i := 0; i <= steps; i++ {
		angle := 2 * math.Pi * float64(i) / float64(steps)
		p := image.Pt(c.X+int(math.Cos(angle)*float64(rx)), c.Y+int(math.Sin(angle)*float64(ry)))
		if i > 0 {
			drawLine(img, prev, p, col, thick)
		}
		prev = p
	}
}

func fillEllipse(img *image.RGBA, r image.Rectangle, col color.Color) {
	c := image.Pt((r.Min.X+r.Max.X)/2, (r.Min.Y+r.Max.Y)/2)
	rx, ry := r.Dx()/2, r.Dy()/2
	if ry == 0 {
		return
	}
	for dy := -ry; dy <= ry; dy++ {
		span := int(float64(rx) * math.Sqrt(1.0-float64(dy*dy)/float64(ry*ry)))
		for dx := -span; dx <= span; dx++ {
			p := image.Pt(c.X+dx, c.Y+dy)
			if p.In(img.Bounds()) {
				img.Set(p.X, p.Y, col)
			}
		}
	}
}

// roughen displaces the interior points of a polyline by a small
// deterministic wobble.
func roughen(pts []image.Point, amount int) []image.Point {
	out := make([]image.Point, 0, len(pts)*2)
	for i, p := range pts {
		out = append(out, p)
		if i+1 < len(pts) {
			q := pts[i+1]
			mid := image.Pt((p.X+q.X)/2, (p.Y+q.Y)/2)
			if i%2 == 0 {
				mid = mid.Add(image.Pt(amount, -amount))
			} else {
				mid = mid.Add(image.Pt(-amount, amount))
			}
			out = append(out, mid)
		}
	}
	return out
}
