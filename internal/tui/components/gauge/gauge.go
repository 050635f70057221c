package gauge

import (
	"fmt"
	"image/color"
	"strings"

	drawille "github.com/exrook/drawille-go"

	"charm.land/lipgloss/v2"

	"github.com/hansajasandeepabadalge/naiterm/internal/tui/theme"
)

const (
	// dial dimensions in braille dots (2 dots per char width, 4 per char height)
	// large enough to leave a hollow center for the value text
	dialDotsWidth  = 52 // 26 chars wide
	dialDotsHeight = 52 // 13 chars tall
)

const emptyBraille rune = '⠀'

// Gauge renders a 0-100 score as a braille dial with the value in the center.
type Gauge struct {
	Value     *float64 // nil = no data yet
	Label     string
	Color     color.Color // filled portion of the dial
	BgColor   color.Color // unfilled portion
	TextColor color.Color
}

type Option func(*Gauge)

func WithBgColor(c color.Color) Option {
	return func(g *Gauge) {
		g.BgColor = c
	}
}

func WithTextColor(c color.Color) Option {
	return func(g *Gauge) {
		g.TextColor = c
	}
}

func New(value *float64, label string, c color.Color, opts ...Option) Gauge {
	g := Gauge{
		Value:     value,
		Label:     label,
		Color:     c,
		BgColor:   theme.ColorBgLight,
		TextColor: theme.ColorWhite,
	}
	for _, opt := range opts {
		opt(&g)
	}
	return g
}

func (g Gauge) Render() string {
	var (
		cx     = float64(dialDotsWidth) / 2
		cy     = float64(dialDotsHeight) / 2
		radius = float64(dialDotsWidth)/2 - 1
	)

	var fraction float64
	if g.Value != nil {
		fraction = *g.Value / 100
		fraction = min(max(fraction, 0), 1)
	}

	track := drawille.NewCanvas()
	drawDial(&track, cx, cy, radius, dialSweep)

	fill := drawille.NewCanvas()
	if fraction > 0 {
		drawDial(&fill, cx, cy, radius, fraction*dialSweep)
	}

	grid := mergeFrames(
		frameRunes(&track, dialDotsWidth, dialDotsHeight),
		frameRunes(&fill, dialDotsWidth, dialDotsHeight),
		g.BgColor,
		g.Color,
	)

	valueStr := "--"
	if g.Value != nil {
		valueStr = fmt.Sprintf("%.0f", *g.Value)
	}
	grid.stampCenter(valueStr, g.TextColor)

	labelStyle := lipgloss.NewStyle().
		Foreground(g.TextColor).
		Bold(true).
		Width(dialDotsWidth / 2).
		Align(lipgloss.Center)

	return lipgloss.JoinVertical(
		lipgloss.Center,
		grid.render(),
		labelStyle.Render(g.Label),
	)
}

// frameRunes extracts the canvas as a fixed-size rune grid, padding or
// truncating each row so all frames line up cell for cell.
func frameRunes(canvas *drawille.Canvas, dotsWidth, dotsHeight int) [][]rune {
	charWidth := dotsWidth / 2
	charHeight := dotsHeight / 4

	rows := canvas.Rows(0, 0, dotsWidth, dotsHeight)

	grid := make([][]rune, charHeight)
	for i := range charHeight {
		row := make([]rune, charWidth)
		var src []rune
		if i < len(rows) {
			src = []rune(rows[i])
		}
		for j := range charWidth {
			if j < len(src) {
				row[j] = src[j]
			} else {
				row[j] = ' '
			}
		}
		grid[i] = row
	}
	return grid
}

// cell is one terminal character of the dial plus the color it renders in.
type cell struct {
	r rune
	c color.Color
}

type frame [][]cell

// mergeFrames overlays the fill frame on the track frame. Braille dots are
// ORed together so the filled band sits on top of the track; any cell the
// fill touches takes the fill color.
func mergeFrames(track, fill [][]rune, trackColor, fillColor color.Color) frame {
	out := make(frame, len(track))
	for i := range track {
		row := make([]cell, len(track[i]))
		for j := range track[i] {
			tr := track[i][j]
			fr := ' '
			if i < len(fill) && j < len(fill[i]) {
				fr = fill[i][j]
			}

			switch {
			case hasDots(fr) && isBraille(tr):
				row[j] = cell{r: orBraille(tr, fr), c: fillColor}
			case hasDots(fr):
				row[j] = cell{r: fr, c: fillColor}
			case isBraille(tr):
				row[j] = cell{r: tr, c: trackColor}
			default:
				row[j] = cell{r: ' '}
			}
		}
		out[i] = row
	}
	return out
}

// stampCenter writes s into the middle row of the frame, centered, replacing
// whatever dial cells were there. One blank cell on each side keeps the text
// clear of the band.
func (f frame) stampCenter(s string, c color.Color) {
	if len(f) == 0 {
		return
	}
	row := f[len(f)/2]
	runes := []rune(s)
	start := (len(row) - len(runes)) / 2
	if start < 1 {
		start = 1
	}
	if start > 0 {
		row[start-1] = cell{r: ' '}
	}
	for i, r := range runes {
		if start+i >= len(row) {
			break
		}
		row[start+i] = cell{r: r, c: c}
	}
	if start+len(runes) < len(row) {
		row[start+len(runes)] = cell{r: ' '}
	}
}

// render styles the frame line by line, batching adjacent same-color cells
// into a single lipgloss call.
func (f frame) render() string {
	lines := make([]string, len(f))
	for i, row := range f {
		var (
			b   strings.Builder
			run strings.Builder
			cur color.Color
		)
		flush := func() {
			if run.Len() == 0 {
				return
			}
			if cur == nil {
				b.WriteString(run.String())
			} else {
				b.WriteString(lipgloss.NewStyle().Foreground(cur).Render(run.String()))
			}
			run.Reset()
		}
		for _, c := range row {
			if c.c != cur {
				flush()
				cur = c.c
			}
			run.WriteRune(c.r)
		}
		flush()
		lines[i] = b.String()
	}
	return strings.Join(lines, "\n")
}

// isBraille returns true if the rune is a braille character (U+2800 to U+28FF)
func isBraille(r rune) bool {
	return r >= 0x2800 && r <= 0x28FF
}

// hasDots is isBraille minus the blank braille cell
func hasDots(r rune) bool {
	return isBraille(r) && r != emptyBraille
}

// orBraille ORs the dot patterns of two braille characters together
func orBraille(a, b rune) rune {
	return emptyBraille + ((a - emptyBraille) | (b - emptyBraille))
}
