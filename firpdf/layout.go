package firpdf

import (
	"time"

	"github.com/go-pdf/fpdf"

	"github.com/linesmerrill/fir-document-api/models"
)

// Page geometry in millimetres (A4 portrait)
const (
	pageWidth     = 210.0
	pageHeight    = 297.0
	margin        = 15.0
	contentWidth  = pageWidth - 2*margin
	contentBottom = pageHeight - 30
	lineHeight    = 5.0
)

type rgb struct{ r, g, b int }

var (
	black       = rgb{0, 0, 0}
	white       = rgb{255, 255, 255}
	navy        = rgb{0, 51, 102}
	badgeRed    = rgb{220, 53, 69}
	lightGray   = rgb{200, 200, 200}
	stampGreen  = rgb{0, 100, 0}
	stampRed    = rgb{255, 0, 0}
	tickGreen   = rgb{0, 128, 0}
	footerGray  = rgb{80, 80, 80}
	placeholder = rgb{240, 240, 240}
	captionGray = rgb{100, 100, 100}
)

type elementKind int

const (
	textElement elementKind = iota
	watermarkElement
	boxElement
	checkboxElement
	imageElement
)

// element is one placed item, kept so sections can be checked without
// parsing the PDF back.
type element struct {
	page    int
	kind    elementKind
	x, y    float64
	w, h    float64
	text    string
	size    float64
	checked bool
}

// cursor is the write position. Section renderers take one and return the
// position after what they drew.
type cursor struct {
	page int
	y    float64
}

func (c cursor) down(dy float64) cursor {
	c.y += dy
	return c
}

// pen is the drawing state a section relies on between calls
type pen struct {
	family    string
	style     string
	size      float64
	text      rgb
	draw      rgb
	lineWidth float64
}

// layout owns the fpdf document of a single generation call
type layout struct {
	pdf      *fpdf.Fpdf
	tr       func(string) string
	agency   models.Agency
	copyType models.CopyType
	loc      *time.Location
	qr       bool
	pen      pen
	elements []element
}

func newLayout(agency models.Agency, copyType models.CopyType, loc *time.Location) *layout {
	pdf := fpdf.New("P", "mm", "A4", "")
	pdf.SetAutoPageBreak(false, 0)
	pdf.SetMargins(margin, margin, margin)
	return &layout{
		pdf:      pdf,
		tr:       pdf.UnicodeTranslatorFromDescriptor(""),
		agency:   agency,
		copyType: copyType,
		loc:      loc,
	}
}

// addPage starts a page with its watermark and border already drawn and
// returns a cursor at the top content offset. The pen in use before the
// break is restored, so a section continues in its own font and colours.
func (l *layout) addPage() cursor {
	saved := l.pen
	saved.lineWidth = l.pdf.GetLineWidth()

	l.pdf.AddPage()
	l.watermark()
	l.border()

	if saved.family != "" {
		l.font(saved.family, saved.style, saved.size)
	}
	l.textColor(saved.text)
	l.drawColor(saved.draw)
	l.pdf.SetLineWidth(saved.lineWidth)
	return cursor{page: l.pdf.PageNo(), y: margin}
}

// ensure moves to a new page when h millimetres do not fit above the footer
func (l *layout) ensure(c cursor, h float64) cursor {
	if c.y+h > contentBottom {
		return l.addPage()
	}
	return c
}

func (l *layout) font(family, style string, size float64) {
	l.pdf.SetFont(family, style, size)
	l.pen.family, l.pen.style, l.pen.size = family, style, size
}

func (l *layout) textColor(c rgb) {
	l.pdf.SetTextColor(c.r, c.g, c.b)
	l.pen.text = c
}

func (l *layout) fillColor(c rgb) {
	l.pdf.SetFillColor(c.r, c.g, c.b)
}

func (l *layout) drawColor(c rgb) {
	l.pdf.SetDrawColor(c.r, c.g, c.b)
	l.pen.draw = c
}

func (l *layout) width(s string) float64 {
	return l.pdf.GetStringWidth(l.tr(s))
}

func (l *layout) wrap(s string, w float64) []string {
	return wrapText(s, w, l.width)
}

// text draws s with its baseline at (x, y) on the current page
func (l *layout) text(x, y float64, s string) {
	if s == "" {
		return
	}
	l.pdf.Text(x, y, l.tr(s))
	l.elements = append(l.elements, element{page: l.pdf.PageNo(), kind: textElement, x: x, y: y, w: l.width(s), text: s, size: l.pen.size})
}

func (l *layout) centered(cx, y float64, s string) {
	l.text(cx-l.width(s)/2, y, s)
}

func (l *layout) rightAligned(rx, y float64, s string) {
	l.text(rx-l.width(s), y, s)
}

// rotated draws s centred on (cx, cy) turned counter-clockwise by angle degrees
func (l *layout) rotated(cx, cy, angle float64, s string) {
	w := l.width(s)
	l.pdf.TransformBegin()
	l.pdf.TransformRotate(angle, cx, cy)
	l.pdf.Text(cx-w/2, cy, l.tr(s))
	l.pdf.TransformEnd()
	l.elements = append(l.elements, element{page: l.pdf.PageNo(), kind: watermarkElement, x: cx, y: cy, w: w, text: s})
}

func (l *layout) box(x, y, w, h float64, style string) {
	l.pdf.Rect(x, y, w, h, style)
	l.elements = append(l.elements, element{page: l.pdf.PageNo(), kind: boxElement, x: x, y: y, w: w, h: h})
}

// checkbox draws a square whose top-left corner is at (x, y), ticked when
// checked
func (l *layout) checkbox(x, y, size float64, checked bool) {
	l.drawColor(black)
	l.pdf.Rect(x, y, size, size, "D")
	if checked {
		l.drawColor(tickGreen)
		l.tick(x+0.6, y+size*0.55, size*0.8)
		l.drawColor(black)
	}
	l.elements = append(l.elements, element{page: l.pdf.PageNo(), kind: checkboxElement, x: x, y: y, w: size, h: size, checked: checked})
}

// tick draws a check mark starting at (x, y) spanning w
func (l *layout) tick(x, y, w float64) {
	l.pdf.Line(x, y, x+w*0.35, y+w*0.35)
	l.pdf.Line(x+w*0.35, y+w*0.35, x+w, y-w*0.45)
}

func (l *layout) image(name string, x, y, w, h float64) {
	l.pdf.ImageOptions(name, x, y, w, h, false, fpdf.ImageOptions{ImageType: "PNG"}, 0, "")
	l.elements = append(l.elements, element{page: l.pdf.PageNo(), kind: imageElement, x: x, y: y, w: w, h: h, text: name})
}
