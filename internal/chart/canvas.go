package chart

import (
	"image/color"
	"math"

	"github.com/fogleman/gg"
)

const (
	tickFontPt   = 10.0
	labelFontPt  = 10.0
	titleFontPt  = 12.0
	legendFontPt = 9.0

	minMargin = 0.05 // fraction of the data span added on each side
)

var (
	colorAxis       = color.Black
	colorGrid       = color.RGBA{0xb0, 0xb0, 0xb0, 0xff}
	colorLegendFill = color.NRGBA{0xff, 0xff, 0xff, 0xcc}
	colorLegendEdge = color.RGBA{0xcc, 0xcc, 0xcc, 0xff}
)

// canvas lays out and paints one Plot. All coordinates are pixels unless named data.
type canvas struct {
	dc    *gg.Context
	fonts *fontSet
	plot  *Plot
	s     float64 // pixels per point

	// plot area
	x0, y0, x1, y1 float64

	xmin, xmax float64
	ymin, ymax float64
	xTicks     []Tick
	yTicks     []Tick

	xTickExtent float64 // vertical room taken by x tick labels
	legendW     float64
	legendH     float64
	legendX     float64 // top left corner of the legend box, set by drawLegend
	legendY     float64
}

func draw(p *Plot, fonts *fontSet, dpi float64) *canvas {
	w := int(math.Max(1, math.Round(p.Width*dpi)))
	h := int(math.Max(1, math.Round(p.Height*dpi)))

	dc := gg.NewContext(w, h)
	dc.SetColor(color.White)
	dc.Clear()

	c := &canvas{dc: dc, fonts: fonts, plot: p, s: dpi / 72}
	c.computeRanges()
	c.layout()

	c.drawGrid()
	c.drawSeries()
	c.drawFrame()
	c.drawXTicks()
	c.drawYTicks()
	c.drawLabels()
	c.drawLegend()
	return c
}

func (c *canvas) setFont(points float64) {
	c.dc.SetFontFace(c.fonts.face(points))
}

func (c *canvas) computeRanges() {
	p := c.plot

	xlo, xhi := math.Inf(1), math.Inf(-1)
	ylo, yhi := math.Inf(1), math.Inf(-1)
	hasBars := false

	for _, s := range p.Series {
		half := 0.0
		if s.Kind == KindBar {
			half = p.BarWidth / 2
			hasBars = true
		}
		for i, x := range s.X {
			y := s.Y[i]
			if math.IsNaN(x) || math.IsNaN(y) {
				continue
			}
			xlo = math.Min(xlo, x-half)
			xhi = math.Max(xhi, x+half)

			base := 0.0
			if s.Base != nil {
				base = s.Base[i]
			}
			top := y
			if s.Kind == KindBar {
				top = base + y
				if !p.LogY {
					ylo = math.Min(ylo, base)
					yhi = math.Max(yhi, base)
				}
			}
			if p.LogY && top <= 0 {
				continue
			}
			ylo = math.Min(ylo, top)
			yhi = math.Max(yhi, top)
		}
	}
	for _, t := range p.XTicks {
		xlo = math.Min(xlo, t.Value)
		xhi = math.Max(xhi, t.Value)
	}

	if xlo > xhi {
		xlo, xhi = 0, 1
	}
	if xlo == xhi {
		xlo, xhi = xlo-0.5, xhi+0.5
	}
	pad := (xhi - xlo) * minMargin
	c.xmin, c.xmax = xlo-pad, xhi+pad

	if p.LogY {
		if ylo > yhi {
			ylo, yhi = 1, 10
		}
		c.ymin = math.Pow(10, math.Floor(math.Log10(ylo)))
		c.ymax = math.Pow(10, math.Ceil(math.Log10(yhi)))
		if c.ymin == c.ymax {
			c.ymax *= 10
		}
		c.yTicks = logTicks(c.ymin, c.ymax)
	} else {
		if hasBars {
			ylo, yhi = math.Min(ylo, 0), math.Max(yhi, 0)
		}
		if ylo > yhi {
			ylo, yhi = 0, 1
		}
		if ylo == yhi {
			ylo, yhi = ylo-0.5, yhi+0.5
		}
		pad := (yhi - ylo) * minMargin
		// bars stay anchored on the zero line
		if !(hasBars && ylo == 0) {
			ylo -= pad
		}
		if !(hasBars && yhi == 0) {
			yhi += pad
		}
		c.ymin, c.ymax = ylo, yhi
		c.yTicks = linearTicks(ylo, yhi, clampInt(int(p.Height*1.5), 4, 9), formatCompact)
	}

	if p.XTicks != nil {
		c.xTicks = p.XTicks
	} else {
		c.xTicks = linearTicks(c.xmin, c.xmax, clampInt(int(p.Width*1.2), 4, 12), formatPlain)
	}
}

func (c *canvas) layout() {
	p := c.plot
	dc := c.dc
	W, H := float64(dc.Width()), float64(dc.Height())
	pad := 4 * c.s
	tickLen := 3.5 * c.s

	c.setFont(tickFontPt)
	yLabelW := 0.0
	for _, t := range c.yTicks {
		w, _ := dc.MeasureString(t.Label)
		yLabelW = math.Max(yLabelW, w)
	}
	_, tickH := dc.MeasureString("0")

	c.xTickExtent = tickH
	if p.TickRotation != 0 {
		th := gg.Radians(p.TickRotation)
		for _, t := range c.xTicks {
			w, h := dc.MeasureString(t.Label)
			c.xTickExtent = math.Max(c.xTickExtent, w*math.Sin(th)+h*math.Cos(th))
		}
	}

	c.setFont(labelFontPt)
	_, labelH := dc.MeasureString("Mg")
	c.setFont(titleFontPt)
	_, titleH := dc.MeasureString("Mg")

	c.measureLegend()

	left := 2*pad + labelH + pad + yLabelW + pad + tickLen
	top := 3*pad + titleH
	right := 4 * pad
	bottom := tickLen + pad + c.xTickExtent + pad + labelH + 2*pad
	if p.Legend == LegendBelow && c.legendH > 0 {
		bottom += c.legendH + 2*pad
	}

	c.x0, c.y0 = left, top
	c.x1, c.y1 = math.Max(W-right, left+10*c.s), math.Max(H-bottom, top+10*c.s)

	// rotated labels hang to the left of their tick; keep the first one on the canvas
	if p.TickRotation != 0 && len(c.xTicks) > 0 {
		c.setFont(tickFontPt)
		first := c.xTicks[0]
		bw, _ := c.rotatedBox(first.Label, p.TickRotation)
		need := bw / 2
		if p.TickAlignRight {
			need = bw
		}
		if avail := c.px(first.Value); need+pad > avail {
			c.x0 += need + pad - avail
		}
	}
}

func (c *canvas) px(x float64) float64 {
	return c.x0 + (x-c.xmin)/(c.xmax-c.xmin)*(c.x1-c.x0)
}

// py maps a data y to pixels; values outside a log axis clamp to the bottom edge.
func (c *canvas) py(y float64) float64 {
	if c.plot.LogY {
		if y <= 0 {
			return c.y1
		}
		lo, hi := math.Log10(c.ymin), math.Log10(c.ymax)
		return c.y1 - (math.Log10(y)-lo)/(hi-lo)*(c.y1-c.y0)
	}
	return c.y1 - (y-c.ymin)/(c.ymax-c.ymin)*(c.y1-c.y0)
}

func (c *canvas) valid(x, y float64) bool {
	if math.IsNaN(x) || math.IsNaN(y) || math.IsInf(x, 0) || math.IsInf(y, 0) {
		return false
	}
	return !c.plot.LogY || y > 0
}

func (c *canvas) drawGrid() {
	if !c.plot.Grid {
		return
	}
	dc := c.dc
	dc.SetColor(colorGrid)
	dc.SetLineWidth(0.5 * c.s)
	dc.SetDash(3*c.s, 3*c.s)

	for _, t := range c.xTicks {
		if t.Value < c.xmin || t.Value > c.xmax {
			continue
		}
		x := c.px(t.Value)
		dc.DrawLine(x, c.y0, x, c.y1)
		dc.Stroke()
	}
	ys := make([]float64, 0, len(c.yTicks))
	for _, t := range c.yTicks {
		ys = append(ys, t.Value)
	}
	if c.plot.LogY {
		ys = append(ys, logMinorTicks(c.ymin, c.ymax)...)
	}
	for _, v := range ys {
		y := c.py(v)
		dc.DrawLine(c.x0, y, c.x1, y)
		dc.Stroke()
	}
	dc.SetDash()
}

func (c *canvas) drawSeries() {
	dc := c.dc
	dc.Push()
	dc.DrawRectangle(c.x0, c.y0, c.x1-c.x0, c.y1-c.y0)
	dc.Clip()

	for _, s := range c.plot.Series {
		dc.SetColor(s.Color)
		switch s.Kind {
		case KindBar:
			c.drawBars(s)
		case KindLine:
			c.drawLine(s)
		case KindScatter:
			for i, x := range s.X {
				if c.valid(x, s.Y[i]) {
					dc.DrawCircle(c.px(x), c.py(s.Y[i]), 2.25*c.s)
					dc.Fill()
				}
			}
		}
	}

	dc.ResetClip()
	dc.Pop()
}

func (c *canvas) drawBars(s Series) {
	half := c.plot.BarWidth / 2
	for i, x := range s.X {
		y := s.Y[i]
		if math.IsNaN(x) || math.IsNaN(y) {
			continue
		}
		base := 0.0
		if s.Base != nil {
			base = s.Base[i]
		}
		left, right := c.px(x-half), c.px(x+half)
		top, bottom := c.py(base+y), c.py(base)
		if top > bottom {
			top, bottom = bottom, top
		}
		c.dc.DrawRectangle(left, top, right-left, bottom-top)
		c.dc.Fill()
	}
}

func (c *canvas) drawLine(s Series) {
	dc := c.dc
	dc.SetLineWidth(1.5 * c.s)
	open := false
	for i, x := range s.X {
		if !c.valid(x, s.Y[i]) {
			open = false
			continue
		}
		if open {
			dc.LineTo(c.px(x), c.py(s.Y[i]))
		} else {
			dc.MoveTo(c.px(x), c.py(s.Y[i]))
			open = true
		}
	}
	dc.Stroke()

	if s.Markers {
		for i, x := range s.X {
			if c.valid(x, s.Y[i]) {
				dc.DrawCircle(c.px(x), c.py(s.Y[i]), 3*c.s)
				dc.Fill()
			}
		}
	}
}

func (c *canvas) drawFrame() {
	c.dc.SetColor(colorAxis)
	c.dc.SetLineWidth(0.8 * c.s)
	c.dc.DrawRectangle(c.x0, c.y0, c.x1-c.x0, c.y1-c.y0)
	c.dc.Stroke()
}

func (c *canvas) drawXTicks() {
	dc := c.dc
	p := c.plot
	tickLen := 3.5 * c.s
	pad := 4 * c.s

	c.setFont(tickFontPt)
	dc.SetColor(colorAxis)
	dc.SetLineWidth(0.8 * c.s)
	for _, t := range c.xTicks {
		if t.Value < c.xmin || t.Value > c.xmax {
			continue
		}
		x := c.px(t.Value)
		dc.DrawLine(x, c.y1, x, c.y1+tickLen)
		dc.Stroke()

		y := c.y1 + tickLen + pad
		if p.TickRotation == 0 {
			dc.DrawStringAnchored(t.Label, x, y, 0.5, 1)
			continue
		}
		c.drawRotated(t.Label, x, y, p.TickRotation, p.TickAlignRight)
	}
}

// rotatedBox returns the axis-aligned size of s rotated by deg.
func (c *canvas) rotatedBox(s string, deg float64) (float64, float64) {
	w, h := c.dc.MeasureString(s)
	th := gg.Radians(deg)
	return w*math.Cos(th) + h*math.Sin(th), w*math.Sin(th) + h*math.Cos(th)
}

// drawRotated places the rotated box of s with its top edge at y, centered on x or
// ending at x when alignRight is set.
func (c *canvas) drawRotated(s string, x, y, deg float64, alignRight bool) {
	bw, bh := c.rotatedBox(s, deg)
	cx, cy := x, y+bh/2
	if alignRight {
		cx = x - bw/2
	}
	c.dc.Push()
	c.dc.RotateAbout(gg.Radians(-deg), cx, cy)
	c.dc.DrawStringAnchored(s, cx, cy, 0.5, 0.5)
	c.dc.Pop()
}

func (c *canvas) drawYTicks() {
	dc := c.dc
	tickLen := 3.5 * c.s
	pad := 4 * c.s

	c.setFont(tickFontPt)
	dc.SetColor(colorAxis)
	dc.SetLineWidth(0.8 * c.s)
	for _, t := range c.yTicks {
		if t.Value < c.ymin || t.Value > c.ymax {
			continue
		}
		y := c.py(t.Value)
		dc.DrawLine(c.x0-tickLen, y, c.x0, y)
		dc.Stroke()
		dc.DrawStringAnchored(t.Label, c.x0-tickLen-pad, y, 1, 0.5)
	}
}

func (c *canvas) drawLabels() {
	dc := c.dc
	p := c.plot
	pad := 4 * c.s
	tickLen := 3.5 * c.s
	dc.SetColor(colorAxis)

	c.setFont(labelFontPt)
	_, labelH := dc.MeasureString("Mg")
	if p.XLabel != "" {
		y := c.y1 + tickLen + pad + c.xTickExtent + pad
		dc.DrawStringAnchored(p.XLabel, (c.x0+c.x1)/2, y, 0.5, 1)
	}
	if p.YLabel != "" {
		cx, cy := 2*pad+labelH/2, (c.y0+c.y1)/2
		dc.Push()
		dc.RotateAbout(gg.Radians(-90), cx, cy)
		dc.DrawStringAnchored(p.YLabel, cx, cy, 0.5, 0.5)
		dc.Pop()
	}

	if p.Title != "" {
		// shrink long titles so they stay on narrow figures
		size := titleFontPt
		c.setFont(size)
		w, _ := dc.MeasureString(p.Title)
		if avail := float64(dc.Width()) - 2*pad; w > avail && w > 0 {
			size = math.Max(6, size*avail/w)
			c.setFont(size)
		}
		dc.DrawStringAnchored(p.Title, (c.x0+c.x1)/2, 2*pad, 0.5, 1)
	}
}

func (c *canvas) legendLayout() (cols, rows int) {
	n := len(c.plot.Series)
	cols = c.plot.LegendColumns
	if cols < 1 {
		cols = 1
	}
	if cols > n {
		cols = n
	}
	rows = (n + cols - 1) / cols
	return cols, rows
}

func (c *canvas) measureLegend() {
	p := c.plot
	if p.Legend == LegendNone || len(p.Series) == 0 {
		return
	}
	pad := 4 * c.s
	c.setFont(legendFontPt)
	_, fh := c.dc.MeasureString("Mg")

	labelW := 0.0
	for _, s := range p.Series {
		w, _ := c.dc.MeasureString(s.Name)
		labelW = math.Max(labelW, w)
	}
	cols, rows := c.legendLayout()
	colW := 2*fh + pad + labelW + 2*pad

	c.legendW = float64(cols)*colW + 2*pad
	c.legendH = float64(rows)*fh*1.5 + 2*pad
	if p.LegendTitle != "" {
		w, _ := c.dc.MeasureString(p.LegendTitle)
		c.legendW = math.Max(c.legendW, w+4*pad)
		c.legendH += fh * 1.5
	}
}

// legendOrigin returns the top left corner of the legend box for the plot's placement.
func (c *canvas) legendOrigin() (float64, float64) {
	p := c.plot
	pad := 4 * c.s
	switch p.Legend {
	case LegendUpperLeft:
		return c.x0 + 2*pad, c.y0 + 2*pad
	case LegendUpperRight:
		return c.x1 - c.legendW - 2*pad, c.y0 + 2*pad
	case LegendBest:
		return c.bestLegendOrigin()
	case LegendBelow:
		c.setFont(labelFontPt)
		_, labelH := c.dc.MeasureString("Mg")
		c.setFont(legendFontPt)
		return (c.x0+c.x1)/2 - c.legendW/2, c.y1 + 3.5*c.s + pad + c.xTickExtent + pad + labelH + 2*pad
	}
	return c.x0, c.y0
}

// bestLegendOrigin tries the four inner corners, upper right first, and keeps the one
// covering the least data. Ties go to the earlier corner.
func (c *canvas) bestLegendOrigin() (float64, float64) {
	pad := 4 * c.s
	left, right := c.x0+2*pad, c.x1-c.legendW-2*pad
	top, bottom := c.y0+2*pad, c.y1-c.legendH-2*pad
	corners := [][2]float64{{right, top}, {left, top}, {left, bottom}, {right, bottom}}

	best, bestCost := corners[0], math.Inf(1)
	for _, o := range corners {
		if cost := c.legendOverlap(o[0], o[1]); cost < bestCost {
			best, bestCost = o, cost
		}
	}
	return best[0], best[1]
}

// legendOverlap scores a legend box at (bx, by): covered bar area in pixels plus a
// marker-sized area for every line vertex or scatter point inside it.
func (c *canvas) legendOverlap(bx, by float64) float64 {
	bx1, by1 := bx+c.legendW, by+c.legendH
	marker := math.Pow(6*c.s, 2)
	cost := 0.0
	for _, s := range c.plot.Series {
		half := c.plot.BarWidth / 2
		for i, x := range s.X {
			y := s.Y[i]
			if !c.valid(x, y) {
				continue
			}
			if s.Kind != KindBar {
				px, py := c.px(x), c.py(y)
				if px >= bx && px <= bx1 && py >= by && py <= by1 {
					cost += marker
				}
				continue
			}
			base := 0.0
			if s.Base != nil {
				base = s.Base[i]
			}
			l, r := c.px(x-half), c.px(x+half)
			t, b := c.py(base+y), c.py(base)
			if t > b {
				t, b = b, t
			}
			w := math.Min(r, bx1) - math.Max(l, bx)
			h := math.Min(b, by1) - math.Max(t, by)
			if w > 0 && h > 0 {
				cost += w * h
			}
		}
	}
	return cost
}

func (c *canvas) drawLegend() {
	p := c.plot
	if c.legendW == 0 {
		return
	}
	dc := c.dc
	pad := 4 * c.s
	c.setFont(legendFontPt)
	_, fh := dc.MeasureString("Mg")

	bx, by := c.legendOrigin()
	c.legendX, c.legendY = bx, by

	dc.SetColor(colorLegendFill)
	dc.DrawRectangle(bx, by, c.legendW, c.legendH)
	dc.Fill()
	dc.SetColor(colorLegendEdge)
	dc.SetLineWidth(0.8 * c.s)
	dc.DrawRectangle(bx, by, c.legendW, c.legendH)
	dc.Stroke()

	rowH := fh * 1.5
	y := by + pad
	if p.LegendTitle != "" {
		dc.SetColor(colorAxis)
		dc.DrawStringAnchored(p.LegendTitle, bx+c.legendW/2, y+rowH/2, 0.5, 0.5)
		y += rowH
	}

	cols, rows := c.legendLayout()
	colW := (c.legendW - 2*pad) / float64(cols)
	for i, s := range p.Series {
		// column-major: fill the first column before starting the next
		col, row := i/rows, i%rows
		ex := bx + pad + float64(col)*colW
		ey := y + float64(row)*rowH + rowH/2

		dc.SetColor(s.Color)
		switch s.Kind {
		case KindBar:
			dc.DrawRectangle(ex, ey-fh*0.35, 2*fh, fh*0.7)
			dc.Fill()
		case KindLine:
			dc.SetLineWidth(1.5 * c.s)
			dc.DrawLine(ex, ey, ex+2*fh, ey)
			dc.Stroke()
			if s.Markers {
				dc.DrawCircle(ex+fh, ey, 3*c.s)
				dc.Fill()
			}
		case KindScatter:
			dc.DrawCircle(ex+fh, ey, 2.25*c.s)
			dc.Fill()
		}

		dc.SetColor(colorAxis)
		dc.DrawStringAnchored(s.Name, ex+2*fh+pad, ey, 0, 0.5)
	}
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}
