package firpdf

import (
	"fmt"
	"time"

	"github.com/linesmerrill/fir-document-api/models"
)

// stamp is the extra diagonal marking some copy types carry
type stamp struct {
	text  string
	color rgb
	size  float64
}

func stampFor(t models.CopyType) (stamp, bool) {
	switch t {
	case models.CopyTypeCertified:
		return stamp{text: "CERTIFIED TRUE COPY", color: stampGreen, size: 30}, true
	case models.CopyTypeDraft:
		return stamp{text: "DRAFT — NOT FOR LEGAL USE", color: stampRed, size: 40}, true
	}
	return stamp{}, false
}

// watermark must run before anything else is drawn on the page so the
// foreground stays on top of it.
func (l *layout) watermark() {
	cx, cy := pageWidth/2, pageHeight/2

	l.font("Helvetica", "B", 50)
	l.textColor(lightGray)
	l.rotated(cx, cy, 45, l.agency.Name)

	if s, ok := stampFor(l.copyType); ok {
		l.font("Helvetica", "B", s.size)
		l.textColor(s.color)
		l.rotated(cx, cy+30, 45, s.text)
	}
	l.textColor(black)
}

func (l *layout) border() {
	l.drawColor(navy)
	l.pdf.SetLineWidth(1)
	l.pdf.Rect(5, 5, pageWidth-10, pageHeight-10, "D")
	l.pdf.SetLineWidth(0.5)
	l.pdf.Rect(8, 8, pageWidth-16, pageHeight-16, "D")

	// corner marks
	l.pdf.Line(5, 15, 15, 15)
	l.pdf.Line(15, 5, 15, 15)
	l.pdf.Line(pageWidth-15, 5, pageWidth-15, 15)
	l.pdf.Line(pageWidth-15, 15, pageWidth-5, 15)
	l.pdf.Line(5, pageHeight-15, 15, pageHeight-15)
	l.pdf.Line(15, pageHeight-15, 15, pageHeight-5)
	l.pdf.Line(pageWidth-15, pageHeight-15, pageWidth-15, pageHeight-5)
	l.pdf.Line(pageWidth-15, pageHeight-15, pageWidth-5, pageHeight-15)
}

// footers goes back over every finished page, which is the only point where
// the page total is known.
func (l *layout) footers(documentID string, generatedAt time.Time) {
	total := l.pdf.PageCount()
	for i := 1; i <= total; i++ {
		l.pdf.SetPage(i)
		l.footer(i, total, documentID, generatedAt)
	}
}

func (l *layout) footer(page, total int, documentID string, generatedAt time.Time) {
	y := pageHeight - 20

	// graphics state is per page content stream. SetFont skips unchanged
	// fonts, so switch away first to force the operator onto this page.
	l.font("Helvetica", "", 8)
	l.font("Times", "", 7)
	l.fillColor(white)
	l.drawColor(navy)
	l.pdf.SetLineWidth(0.3)
	l.pdf.Line(margin, y-5, pageWidth-margin, y-5)

	l.textColor(footerGray)
	l.text(margin, y, "Document ID: "+documentID)
	l.text(margin, y+3, "Generated: "+formatTime(generatedAt, l.loc))
	l.centered(pageWidth/2, y, fmt.Sprintf("Page %d of %d", page, total))
	l.rightAligned(pageWidth-margin, y, fmt.Sprintf("Verify at: %s/verify", l.agency.Domain))
	l.rightAligned(pageWidth-margin, y+3, "This is a digitally signed document")
	l.textColor(black)
}
