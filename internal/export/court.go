// Package export rasterises a board snapshot and encodes it as WebP.
package export

import (
	"fmt"
	"image"
	"image/color"
	"io"
	"math"
	"strconv"

	"github.com/HugoSmits86/nativewebp"
	"golang.org/x/image/draw"
	"golang.org/x/image/font"
	"golang.org/x/image/font/basicfont"
	"golang.org/x/image/math/fixed"

	"github.com/DoyleJ11/volley-rotation-board/internal/view"
	pkgtypes "github.com/DoyleJ11/volley-rotation-board/pkg/types"
)

// Supersample is the factor the court is drawn at before downscaling.
const Supersample = 2

var (
	courtFill = color.RGBA{R: 0xbb, G: 0xf7, B: 0xd0, A: 0xff}
	courtEdge = color.RGBA{R: 0x15, G: 0x80, B: 0x3d, A: 0xff}
	gridLine  = color.RGBA{R: 0xe6, G: 0xfb, B: 0xec, A: 0xff}
	white     = color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff}
)

// Render draws the snapshot at court resolution.
func Render(s pkgtypes.BoardSnapshot) (*image.RGBA, error) {
	w, h := int(math.Round(s.Court.Width)), int(math.Round(s.Court.Height))
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("export: empty court %vx%v", s.Court.Width, s.Court.Height)
	}

	big := image.NewRGBA(image.Rect(0, 0, w*Supersample, h*Supersample))
	draw.Draw(big, big.Bounds(), image.NewUniform(courtFill), image.Point{}, draw.Src)
	drawCourtLines(big, s)

	for _, team := range [][]pkgtypes.PlayerView{s.Left, s.Right} {
		for _, p := range team {
			drawDisc(big, p, s.Court.Footprint)
		}
	}

	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.CatmullRom.Scale(dst, dst.Bounds(), big, big.Bounds(), draw.Src, nil)

	// labels go on after scaling so basicfont stays crisp
	for _, team := range [][]pkgtypes.PlayerView{s.Left, s.Right} {
		for _, p := range team {
			drawLabel(dst, p, s.Court.Footprint)
		}
	}
	return dst, nil
}

// WriteWebP renders the snapshot and writes it as a lossless WebP.
func WriteWebP(w io.Writer, s pkgtypes.BoardSnapshot) error {
	img, err := Render(s)
	if err != nil {
		return err
	}
	if err := nativewebp.Encode(w, img, nil); err != nil {
		return fmt.Errorf("export: encode webp: %w", err)
	}
	return nil
}

func drawCourtLines(img *image.RGBA, s pkgtypes.BoardSnapshot) {
	c := s.Court
	b := img.Bounds()
	if c.Cols > 0 {
		pitch := float64(b.Dx()) / float64(c.Cols)
		for i := 1; i < c.Cols; i++ {
			fillRect(img, image.Rect(int(float64(i)*pitch), 0, int(float64(i)*pitch)+Supersample, b.Dy()), gridLine)
		}
	}
	if c.Rows > 0 {
		pitch := float64(b.Dy()) / float64(c.Rows)
		for i := 1; i < c.Rows; i++ {
			fillRect(img, image.Rect(0, int(float64(i)*pitch), b.Dx(), int(float64(i)*pitch)+Supersample), gridLine)
		}
	}

	thick := 2 * Supersample
	for _, f := range []float64{1.0 / 3, 0.5, 2.0 / 3} {
		if s.Profile == "compact" {
			y := int(f * float64(b.Dy()))
			fillRect(img, image.Rect(0, y-thick/2, b.Dx(), y+thick/2), white)
		} else {
			x := int(f * float64(b.Dx()))
			fillRect(img, image.Rect(x-thick/2, 0, x+thick/2, b.Dy()), white)
		}
	}

	edge := 4 * Supersample
	fillRect(img, image.Rect(0, 0, b.Dx(), edge), courtEdge)
	fillRect(img, image.Rect(0, b.Dy()-edge, b.Dx(), b.Dy()), courtEdge)
	fillRect(img, image.Rect(0, 0, edge, b.Dy()), courtEdge)
	fillRect(img, image.Rect(b.Dx()-edge, 0, b.Dx(), b.Dy()), courtEdge)
}

func fillRect(img *image.RGBA, r image.Rectangle, c color.Color) {
	draw.Draw(img, r.Intersect(img.Bounds()), image.NewUniform(c), image.Point{}, draw.Src)
}

func drawDisc(img *image.RGBA, p pkgtypes.PlayerView, footprint float64) {
	r := footprint * Supersample / 2
	cx := (p.X + footprint/2) * Supersample
	cy := (p.Y + footprint/2) * Supersample
	ring := 4.0 * Supersample
	fill := ParseHex(view.ColorFor(p.Color))

	b := img.Bounds()
	minX, maxX := max(int(cx-r), b.Min.X), min(int(cx+r)+1, b.Max.X)
	minY, maxY := max(int(cy-r), b.Min.Y), min(int(cy+r)+1, b.Max.Y)
	for y := minY; y < maxY; y++ {
		for x := minX; x < maxX; x++ {
			d := math.Hypot(float64(x)+0.5-cx, float64(y)+0.5-cy)
			switch {
			case d > r:
			case d > r-ring:
				img.SetRGBA(x, y, white)
			default:
				img.SetRGBA(x, y, fill)
			}
		}
	}
}

func drawLabel(img *image.RGBA, p pkgtypes.PlayerView, footprint float64) {
	face := basicfont.Face7x13
	d := &font.Drawer{Dst: img, Src: image.NewUniform(white), Face: face}
	width := d.MeasureString(p.Label)
	x := fixed.I(int(p.X+footprint/2)) - width/2
	y := fixed.I(int(p.Y+footprint/2)) + fixed.I(face.Ascent-face.Height/2)
	d.Dot = fixed.Point26_6{X: x, Y: y}
	d.DrawString(p.Label)
}

// ParseHex reads "#rrggbb". Anything else yields opaque grey.
func ParseHex(s string) color.RGBA {
	grey := color.RGBA{R: 0x6b, G: 0x72, B: 0x80, A: 0xff}
	if len(s) != 7 || s[0] != '#' {
		return grey
	}
	v, err := strconv.ParseUint(s[1:], 16, 32)
	if err != nil {
		return grey
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 0xff}
}
