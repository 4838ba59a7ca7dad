package render

import (
	"fmt"
	"image"
	"image/color"
)

var (
	defaultGridColor = color.NRGBA{255, 0, 0, 255}
	labelColor       = color.NRGBA{255, 255, 255, 255}
	labelBackground  = color.NRGBA{0, 0, 0, 255}
)

// Grid draws a one-pixel coordinate grid every spacing pixels, with
// optional "x,y" labels at each intersection.
func Grid(img *image.NRGBA, spacing int, labels bool, hex string) {
	if spacing <= 0 {
		return
	}
	gridColor := ParseColor(hex, defaultGridColor)
	b := img.Bounds()

	for x := b.Min.X + spacing; x < b.Max.X; x += spacing {
		for y := b.Min.Y; y < b.Max.Y; y++ {
			img.SetNRGBA(x, y, gridColor)
		}
	}
	for y := b.Min.Y + spacing; y < b.Max.Y; y += spacing {
		for x := b.Min.X; x < b.Max.X; x++ {
			img.SetNRGBA(x, y, gridColor)
		}
	}

	if !labels {
		return
	}
	for y := b.Min.Y + spacing; y < b.Max.Y; y += spacing {
		for x := b.Min.X + spacing; x < b.Max.X; x += spacing {
			drawLabel(img, x+2, y+2, fmt.Sprintf("%d,%d", x-b.Min.X, y-b.Min.Y), labelColor, labelBackground)
		}
	}
}

// 3x5 glyphs for digits and comma
var glyphs = map[rune][]string{
	'0': {"111", "101", "101", "101", "111"},
	'1': {"010", "110", "010", "010", "111"},
	'2': {"111", "001", "111", "100", "111"},
	'3': {"111", "001", "111", "001", "111"},
	'4': {"101", "101", "111", "001", "001"},
	'5': {"111", "100", "111", "001", "111"},
	'6': {"111", "100", "111", "101", "111"},
	'7': {"111", "001", "001", "001", "001"},
	'8': {"111", "101", "111", "101", "111"},
	'9': {"111", "101", "111", "001", "111"},
	',': {"000", "000", "000", "010", "010"},
}

const (
	glyphAdvance = 4
	labelHeight  = 7
)

// drawLabel draws text with a solid background box, clipped to img.
func drawLabel(img *image.NRGBA, x, y int, text string, fg, bg color.NRGBA) {
	b := img.Bounds()
	set := func(px, py int, c color.NRGBA) {
		if (image.Point{px, py}).In(b) {
			img.SetNRGBA(px, py, c)
		}
	}

	w := len(text) * glyphAdvance
	for dy := -1; dy < labelHeight; dy++ {
		for dx := -1; dx < w; dx++ {
			set(x+dx, y+dy, bg)
		}
	}

	cx := x
	for _, ch := range text {
		for row, line := range glyphs[ch] {
			for col, px := range line {
				if px == '1' {
					set(cx+col, y+row, fg)
				}
			}
		}
		cx += glyphAdvance
	}
}
