package firpdf

import (
	"fmt"
	"math"

	"github.com/linesmerrill/fir-document-api/models"
)

const qrImageName = "verification-qr"

// header draws the title block on the first page. qr is true when the
// verification code image has been registered with the document.
func (l *layout) header(c cursor, doc *models.FIRDocument, qr bool) cursor {
	cx := pageWidth / 2

	// emblem placeholder
	l.fillColor(navy)
	l.pdf.Circle(cx, c.y+10, 12, "F")
	l.font("Helvetica", "B", 8)
	l.textColor(white)
	emblemY := c.y + 10 - float64(len(l.agency.EmblemLines)-1)*2
	for i, line := range l.agency.EmblemLines {
		l.centered(cx, emblemY+float64(i)*4, line)
	}
	c = c.down(25)

	l.font("Times", "B", 18)
	l.textColor(navy)
	l.centered(cx, c.y, l.agency.Name)
	c = c.down(8)

	l.font("Times", "", 11)
	l.textColor(black)
	l.centered(cx, c.y, doc.Station.Name)
	c = c.down(5)
	l.font("Times", "", 9)
	l.centered(cx, c.y, doc.Station.Address)
	c = c.down(5)
	l.centered(cx, c.y, fmt.Sprintf("%s, %s", doc.Station.District, doc.Station.State))
	c = c.down(10)

	const title = "FIRST INFORMATION REPORT"
	l.font("Times", "B", 14)
	l.centered(cx, c.y, title)
	tw := l.width(title)
	l.drawColor(black)
	l.pdf.SetLineWidth(0.5)
	l.pdf.Line(cx-tw/2, c.y+1, cx+tw/2, c.y+1)
	c = c.down(10)

	// case number pill
	badge := "FIR No: " + doc.CaseNumber
	l.font("Times", "B", 12)
	bw := math.Max(80, l.width(badge)+10)
	l.fillColor(badgeRed)
	l.pdf.RoundedRect(cx-bw/2, c.y-5, bw, 12, 2, "1234", "F")
	l.textColor(white)
	l.centered(cx, c.y+2, badge)
	l.textColor(black)

	if qr {
		l.image(qrImageName, pageWidth-40, 15, 25, 25)
		l.font("Times", "", 6)
		l.centered(pageWidth-27.5, 42, "Scan to verify")
	}

	return c.down(15)
}
