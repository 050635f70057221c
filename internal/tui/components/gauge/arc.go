package gauge

import (
	"math"

	drawille "github.com/exrook/drawille-go"
)

const (
	// dial parameters (degrees, screen coords: 0°=right, 90°=down, 180°=left, 270°=up)
	// the dial opens downward: start at 135° (lower-left), sweep clockwise 270° to 45° (lower-right)
	dialStartAngle = 135.0
	dialSweep      = 270.0
	dialThickness  = 4
)

// drawDial draws a thick arc from dialStartAngle sweeping through sweep degrees.
// each thickness step draws one midpoint circle, which keeps the band gap-free.
// see: https://en.wikipedia.org/wiki/Midpoint_circle_algorithm
func drawDial(canvas *drawille.Canvas, cx, cy, radius float64, sweep float64) {
	if sweep <= 0 {
		return
	}
	if sweep > dialSweep {
		sweep = dialSweep
	}
	end := dialStartAngle + sweep

	for t := range dialThickness {
		r := int(radius) - t
		if r <= 0 {
			continue
		}
		circleArc(canvas, int(cx), int(cy), r, dialStartAngle, end)
	}
}

// circleArc rasterizes one arc of a circle with the midpoint algorithm,
// plotting only the symmetric points whose angle lies in [start, end].
func circleArc(canvas *drawille.Canvas, cx, cy, radius int, start, end float64) {
	x := radius
	y := 0
	d := 1 - radius

	for x >= y {
		plotOctants(canvas, cx, cy, x, y, start, end)

		y++
		if d < 0 {
			d += 2*y + 1
		} else {
			x--
			d += 2*(y-x) + 1
		}
	}
}

func plotOctants(canvas *drawille.Canvas, cx, cy, x, y int, start, end float64) {
	points := [][2]int{
		{cx + x, cy - y},
		{cx + y, cy - x},
		{cx - y, cy - x},
		{cx - x, cy - y},
		{cx - x, cy + y},
		{cx - y, cy + x},
		{cx + y, cy + x},
		{cx + x, cy + y},
	}

	for _, p := range points {
		if angleWithin(cx, cy, p[0], p[1], start, end) {
			canvas.Set(p[0], p[1])
		}
	}
}

// angleWithin reports whether the point's angle from center falls inside
// [start, end]. end may exceed 360° when the arc wraps past the x axis.
func angleWithin(cx, cy, px, py int, start, end float64) bool {
	dx := float64(px - cx)
	dy := float64(py - cy) // screen Y grows downward

	angle := math.Atan2(dy, dx) * 180 / math.Pi
	if angle < 0 {
		angle += 360
	}

	if end > 360 {
		return angle >= start || angle <= end-360
	}
	return angle >= start && angle <= end
}
