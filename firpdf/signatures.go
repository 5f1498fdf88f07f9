package firpdf

import (
	"github.com/linesmerrill/fir-document-api/models"
)

const (
	boxHeight    = 40.0
	boxPadding   = 3.0
	signatureGap = 5.0
	// two approval boxes share a row
	signatureColumn = (contentWidth - 10) / 2
	signatureWidth  = signatureColumn - signatureGap
	signatureRow    = boxHeight + signatureGap
)

// signaturePlaceholder draws the grey area where a wet or digital signature
// is expected.
func (l *layout) signaturePlaceholder(x, y, w float64) {
	l.fillColor(placeholder)
	l.box(x, y, w, 10, "F")
	l.font("Times", "I", 7)
	l.textColor(captionGray)
	l.centered(x+w/2, y+6, "Digital Signature")
	l.textColor(black)
}

func (l *layout) signatureFrame(x, y, w float64) {
	l.drawColor(navy)
	l.pdf.SetLineWidth(0.3)
	l.box(x, y, w, boxHeight, "D")
}

func (l *layout) filingOfficer(c cursor, number int, fo *models.FilingOfficer) cursor {
	c = l.heading(c, number, "FILING OFFICER", boxHeight+signatureGap+7)
	x, w := labelX, contentWidth-10
	l.signatureFrame(x, c.y, w)

	y := c.y + 5
	l.font("Times", "B", 9)
	l.text(x+boxPadding, y, fo.Name)
	y += 4
	l.font("Times", "", 8)
	l.text(x+boxPadding, y, fo.Designation)
	y += 4
	l.text(x+boxPadding, y, "Badge No: "+fo.BadgeNumber)
	y += 3
	l.signaturePlaceholder(x+boxPadding, y, 70)
	y += 13
	l.font("Times", "", 7)
	l.text(x+boxPadding, y, "Time: "+FormatDateTime(fo.Timestamp, l.loc))

	return c.down(signatureRow + 5)
}

const noSignatures = "No approval signatures recorded."

func (l *layout) signatures(c cursor, number int, sigs []models.Signature) cursor {
	c = l.heading(c, number, "APPROVAL SIGNATURES", 60)
	if len(sigs) == 0 {
		l.text(labelX, c.y, noSignatures)
		return c.down(6)
	}
	left, right := labelX, labelX+signatureColumn+signatureGap
	for i := 0; i < len(sigs); i += 2 {
		c = l.ensure(c, signatureRow)
		l.signatureBox(left, c.y, sigs[i])
		if i+1 < len(sigs) {
			l.signatureBox(right, c.y, sigs[i+1])
		}
		c = c.down(signatureRow)
	}
	return c
}

func (l *layout) signatureBox(x, y float64, sig models.Signature) {
	l.signatureFrame(x, y, signatureWidth)
	tx := x + boxPadding

	y += 5
	l.font("Times", "B", 9)
	l.text(tx, y, sig.OfficerName)
	y += 4
	l.font("Times", "", 8)
	l.text(tx, y, sig.Designation)
	y += 5
	l.signaturePlaceholder(tx, y, signatureWidth-2*boxPadding)
	y += 13

	l.font("Times", "", 7)
	if sig.AadhaarVerified {
		l.drawColor(tickGreen)
		l.pdf.SetLineWidth(0.3)
		l.tick(tx, y-1.2, 2.2)
		l.textColor(tickGreen)
		l.text(tx+3.5, y, "Aadhaar Verified")
		l.textColor(black)
		l.drawColor(navy)
	}
	y += 4
	l.text(tx, y, "Time: "+FormatDateTime(sig.Timestamp, l.loc))
	y += 3
	l.text(tx, y, "Location: "+sig.GPSLocation)
	y += 3
	l.text(tx, y, "Cert ID: "+sig.CertificateID)
}
