package main

import (
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// mapCanvas is the terminal rendering surface: it takes the latest layer
// descriptors and draws them onto a lat/lon cell grid with zoom and pan.
// It also keeps a cell-to-record hit index so mouse events can be resolved
// back to drawables. The pipeline never depends on anything in here.
type mapCanvas struct {
	width  int
	height int

	zoom    float64
	offsetX int
	offsetY int

	layers []Layer

	// data-fitted bounding box, recomputed per layer hand-off
	minLat, maxLat float64
	minLon, maxLon float64
	hasBounds      bool

	hits [][]canvasHit
}

type canvasHit struct {
	layer  int // index into layers, -1 for background
	record int // index into that layer's Records
}

type canvasCell struct {
	ch   rune
	fg   string
	bold bool
}

func newMapCanvas() mapCanvas {
	return mapCanvas{zoom: 1.0}
}

func (c *mapCanvas) SetSize(w, h int) {
	if w < 1 {
		w = 1
	}
	if h < 1 {
		h = 1
	}
	c.width, c.height = w, h
}

// SetLayers replaces the live layer set wholesale. The bounding box
// follows the data so the view stays fitted across filter changes.
func (c *mapCanvas) SetLayers(layers []Layer) {
	c.layers = layers
	c.fitBounds()
}

func (c *mapCanvas) fitBounds() {
	c.hasBounds = false
	grow := func(p Position) {
		if !c.hasBounds {
			c.minLat, c.maxLat = p.Lat, p.Lat
			c.minLon, c.maxLon = p.Lon, p.Lon
			c.hasBounds = true
			return
		}
		c.minLat = math.Min(c.minLat, p.Lat)
		c.maxLat = math.Max(c.maxLat, p.Lat)
		c.minLon = math.Min(c.minLon, p.Lon)
		c.maxLon = math.Max(c.maxLon, p.Lon)
	}
	for _, l := range c.layers {
		for _, rec := range l.Records {
			grow(l.Target(rec))
			if l.Kind == KindFlow && l.Origin != nil {
				grow(l.Origin(rec))
			}
		}
	}
}

func (c *mapCanvas) ZoomIn()  { c.zoom = math.Min(c.zoom*1.25, 16) }
func (c *mapCanvas) ZoomOut() { c.zoom = math.Max(c.zoom/1.25, 0.25) }

func (c *mapCanvas) Pan(dx, dy int) {
	c.offsetX += dx
	c.offsetY += dy
}

func (c *mapCanvas) ResetView() {
	c.zoom = 1.0
	c.offsetX = 0
	c.offsetY = 0
}

// project maps lat/lon onto the cell grid, equirectangular with a small
// margin, centre-zoomed, then panned.
func (c *mapCanvas) project(p Position) (int, int, bool) {
	if !c.hasBounds || c.width < 3 || c.height < 3 {
		return 0, 0, false
	}
	latSpan := c.maxLat - c.minLat
	lonSpan := c.maxLon - c.minLon
	if latSpan <= 0 {
		latSpan = 1
	}
	if lonSpan <= 0 {
		lonSpan = 1
	}

	fx := (p.Lon - c.minLon) / lonSpan
	fy := (c.maxLat - p.Lat) / latSpan

	w := float64(c.width - 2)
	h := float64(c.height - 2)

	// zoom around the view centre
	fx = 0.5 + (fx-0.5)*c.zoom
	fy = 0.5 + (fy-0.5)*c.zoom

	x := int(math.Round(fx*w)) + 1 + c.offsetX
	y := int(math.Round(fy*h)) + 1 + c.offsetY
	if x < 0 || x >= c.width || y < 0 || y >= c.height {
		return x, y, false
	}
	return x, y, true
}

// HitAt resolves a canvas cell to the drawable under it.
func (c *mapCanvas) HitAt(x, y int) (Layer, Record, bool) {
	if y < 0 || y >= len(c.hits) || x < 0 || x >= len(c.hits[y]) {
		return Layer{}, nil, false
	}
	h := c.hits[y][x]
	if h.layer < 0 || h.layer >= len(c.layers) {
		return Layer{}, nil, false
	}
	l := c.layers[h.layer]
	if h.record < 0 || h.record >= len(l.Records) {
		return Layer{}, nil, false
	}
	return l, l.Records[h.record], true
}

// Render draws volumes, then flows, then markers, so markers win hit
// testing where drawables overlap. sel highlights the selected record.
func (c *mapCanvas) Render(sel *selectionState) string {
	grid := make([][]canvasCell, c.height)
	c.hits = make([][]canvasHit, c.height)
	for y := range grid {
		grid[y] = make([]canvasCell, c.width)
		c.hits[y] = make([]canvasHit, c.width)
		for x := range grid[y] {
			grid[y][x] = canvasCell{ch: ' '}
			c.hits[y][x] = canvasHit{layer: -1, record: -1}
		}
	}

	for li, l := range c.layers {
		switch l.Kind {
		case KindVolume:
			c.drawVolumes(grid, li, l)
		}
	}
	for li, l := range c.layers {
		switch l.Kind {
		case KindFlow:
			c.drawFlows(grid, li, l)
		}
	}
	for li, l := range c.layers {
		switch l.Kind {
		case KindMarker:
			c.drawMarkers(grid, li, l)
		}
	}

	selected, selActive := sel.Active()

	var b strings.Builder
	for y := 0; y < c.height; y++ {
		for x := 0; x < c.width; x++ {
			cell := grid[y][x]
			if cell.ch == ' ' {
				b.WriteRune(' ')
				continue
			}
			st := lipgloss.NewStyle().Foreground(lipgloss.Color(cell.fg))
			if cell.bold {
				st = st.Bold(true)
			}
			if selActive {
				if l, rec, ok := c.HitAt(x, y); ok && l.Kind == sel.layer && recordsEqual(rec, selected) {
					st = st.Reverse(true)
				}
			}
			b.WriteString(st.Render(string(cell.ch)))
		}
		if y < c.height-1 {
			b.WriteRune('\n')
		}
	}
	return b.String()
}

func (c *mapCanvas) put(grid [][]canvasCell, x, y int, cell canvasCell, li, ri int) {
	if y < 0 || y >= len(grid) || x < 0 || x >= len(grid[y]) {
		return
	}
	grid[y][x] = cell
	c.hits[y][x] = canvasHit{layer: li, record: ri}
}

func (c *mapCanvas) drawVolumes(grid [][]canvasCell, li int, l Layer) {
	for ri, rec := range l.Records {
		x, y, ok := c.project(l.Target(rec))
		if !ok {
			continue
		}
		ch := volumeGlyph(l.Elevation(rec))
		col := l.Color(rec)
		c.put(grid, x, y, canvasCell{ch: ch, fg: col.Hex()}, li, ri)
	}
}

func (c *mapCanvas) drawMarkers(grid [][]canvasCell, li int, l Layer) {
	for ri, rec := range l.Records {
		x, y, ok := c.project(l.Target(rec))
		if !ok {
			continue
		}
		ch := markerGlyph(l.PixelRadius(rec))
		col := l.Color(rec)
		c.put(grid, x, y, canvasCell{ch: ch, fg: col.Hex()}, li, ri)
	}
}

func (c *mapCanvas) drawFlows(grid [][]canvasCell, li int, l Layer) {
	for ri, rec := range l.Records {
		from, okA := c.projectLoose(l.Origin(rec))
		to, okB := c.projectLoose(l.Target(rec))
		if !okA && !okB {
			continue
		}
		bold := l.Width(rec) > (lineWidthMin+lineWidthMax)/2
		col := l.Color(rec).Hex()
		c.drawLine(grid, from, to, col, bold, li, ri)
	}
}

type cellPoint struct{ x, y int }

// projectLoose keeps off-grid endpoints so a flow whose far end is panned
// out of view still draws its visible half.
func (c *mapCanvas) projectLoose(p Position) (cellPoint, bool) {
	x, y, ok := c.project(p)
	return cellPoint{x: x, y: y}, ok || c.hasBounds
}

func (c *mapCanvas) drawLine(grid [][]canvasCell, a, b cellPoint, fg string, bold bool, li, ri int) {
	dx := abs(b.x - a.x)
	dy := -abs(b.y - a.y)
	sx := 1
	if a.x > b.x {
		sx = -1
	}
	sy := 1
	if a.y > b.y {
		sy = -1
	}
	err := dx + dy

	x, y := a.x, a.y
	for {
		ch := lineGlyph(dx, dy)
		// endpoints keep any marker drawn later; midpoints take the line
		c.put(grid, x, y, canvasCell{ch: ch, fg: fg, bold: bold}, li, ri)
		if x == b.x && y == b.y {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x += sx
		}
		if e2 <= dx {
			err += dx
			y += sy
		}
	}
}

func lineGlyph(dx, dy int) rune {
	// dy is negated in the Bresenham setup
	ady := -dy
	switch {
	case ady == 0:
		return '─'
	case dx == 0:
		return '│'
	case dx >= ady*2:
		return '─'
	case ady >= dx*2:
		return '│'
	default:
		return '·'
	}
}

func markerGlyph(px float64) rune {
	switch {
	case px < 6:
		return '·'
	case px < 11:
		return '•'
	default:
		return '●'
	}
}

func volumeGlyph(elev float64) rune {
	switch {
	case elev < elevationMax*0.25:
		return '░'
	case elev < elevationMax*0.5:
		return '▒'
	case elev < elevationMax*0.75:
		return '▓'
	default:
		return '█'
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
