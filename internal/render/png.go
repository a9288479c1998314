package render

import (
	"errors"
	"fmt"
	"image"
	"io"
	"math"

	"github.com/fogleman/gg"
	"github.com/golang/freetype/truetype"
	"golang.org/x/image/font"
	"golang.org/x/image/font/gofont/gomono"

	"bubblemap/internal/geom"
	"bubblemap/internal/palette"
	"bubblemap/internal/scene"
)

// ExportPadding is the margin left around the content in an exported image.
const ExportPadding = 50

// MaxImageSide bounds each side of an exported image, in pixels.
const MaxImageSide = 16384

var ErrImageTooLarge = errors.New("image too large")

// PNG keeps the scene and paints it with gg at 1 px per canvas unit,
// ignoring the view transform.
type PNG struct {
	retained
	theme palette.Theme
	font  *truetype.Font
	faces map[float64]font.Face
}

func NewPNG(theme palette.Theme) (*PNG, error) {
	f, err := truetype.Parse(gomono.TTF)
	if err != nil {
		return nil, fmt.Errorf("failed to load font: %w", err)
	}
	return &PNG{
		retained: newRetained(),
		theme:    theme,
		font:     f,
		faces:    make(map[float64]font.Face),
	}, nil
}

func (p *PNG) face(size float64) font.Face {
	if f, ok := p.faces[size]; ok {
		return f
	}
	f := truetype.NewFace(p.font, &truetype.Options{
		Size:    size,
		DPI:     72,
		Hinting: font.HintingFull,
	})
	p.faces[size] = f
	return f
}

// Image paints every node and edge onto a canvas sized to the content
// bounds plus padding. An empty scene yields a blank 100x100 area.
// Content wider or taller than MaxImageSide fails with ErrImageTooLarge.
func (p *PNG) Image() (image.Image, error) {
	b, ok := p.bounds()
	if !ok {
		b = geom.Rect{W: 100, H: 100}
	}
	b = b.Inset(-ExportPadding)
	if !(b.W <= MaxImageSide && b.H <= MaxImageSide) {
		return nil, fmt.Errorf("%w: %.0fx%.0f exceeds %d px per side", ErrImageTooLarge, b.W, b.H, MaxImageSide)
	}

	width := int(math.Ceil(b.W))
	height := int(math.Ceil(b.H))
	dc := gg.NewContext(width, height)
	dc.SetHexColor(p.theme.Background)
	dc.Clear()
	dc.Translate(-b.X, -b.Y)

	p.eachEdge(func(e drawnEdge) {
		p.drawEdge(dc, e)
	})
	p.eachNode(func(n scene.Node) {
		p.drawNode(dc, n)
	})
	return dc.Image(), nil
}

func (p *PNG) drawEdge(dc *gg.Context, e drawnEdge) {
	c := e.path
	dc.MoveTo(c.From.X, c.From.Y)
	dc.CubicTo(c.C1.X, c.C1.Y, c.C2.X, c.C2.Y, c.To.X, c.To.Y)
	dc.SetHexColor(e.color.Scheme().Connection)
	dc.SetLineWidth(3)
	if e.edge.Style == scene.Dashed {
		dc.SetDash(4, 6)
	} else {
		dc.SetDash()
	}
	dc.Stroke()
}

func (p *PNG) drawNode(dc *gg.Context, n scene.Node) {
	scheme := n.Color.Scheme()
	b := n.Bounds()
	radius := math.Min(20, b.H/2)

	dc.SetDash()
	dc.DrawRoundedRectangle(b.X, b.Y, b.W, b.H, radius)
	dc.SetHexColor(scheme.BG)
	dc.FillPreserve()
	dc.SetHexColor(scheme.Border)
	dc.SetLineWidth(2)
	dc.Stroke()

	dc.SetFontFace(p.face(n.EffectiveFontSize()))
	dc.SetHexColor(scheme.Text)
	c := b.Center()
	dc.DrawStringAnchored(n.Label, c.X, c.Y, 0.5, 0.5)
}

// Export writes the image as PNG to path.
func (p *PNG) Export(path string) error {
	img, err := p.Image()
	if err != nil {
		return err
	}
	if err := gg.SavePNG(path, img); err != nil {
		return fmt.Errorf("failed to save PNG: %w", err)
	}
	return nil
}

// Encode writes the image as PNG to w.
func (p *PNG) Encode(w io.Writer) error {
	img, err := p.Image()
	if err != nil {
		return err
	}
	return gg.NewContextForImage(img).EncodePNG(w)
}
