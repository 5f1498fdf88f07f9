package firpdf

import (
	"fmt"
	"strings"

	"github.com/linesmerrill/fir-document-api/models"
)

const (
	labelX     = margin + 5
	valueX     = margin + 55
	valueWidth = pageWidth - margin - valueX
	indentX    = margin + 10
	blockWidth = contentWidth - 15
)

func (l *layout) body() {
	l.font("Times", "", 10)
	l.textColor(black)
}

// heading starts a numbered section. reserve is the room the heading needs
// together with the first block under it, so a heading is never left alone
// at the bottom of a page.
func (l *layout) heading(c cursor, number int, title string, reserve float64) cursor {
	c = l.ensure(c, reserve)
	l.font("Times", "B", 12)
	l.textColor(navy)
	l.text(margin, c.y, fmt.Sprintf("%d. %s", number, title))
	c = c.down(2)
	l.drawColor(navy)
	l.pdf.SetLineWidth(0.3)
	l.pdf.Line(margin, c.y, pageWidth-margin, c.y)
	l.body()
	return c.down(5)
}

// lines writes one line per step, checking the page break before each line.
// When the caller already reserved room for the whole block the checks never
// fire; they only matter for blocks taller than a page.
func (l *layout) lines(c cursor, x float64, lines []string) cursor {
	for _, line := range lines {
		c = l.ensure(c, lineHeight+1)
		l.text(x, c.y, line)
		c = c.down(lineHeight)
	}
	return c
}

func (l *layout) labelValue(c cursor, label, value string) cursor {
	l.body()
	values := l.wrap(value, valueWidth)
	if len(values) == 0 {
		values = []string{""}
	}
	c = l.ensure(c, float64(len(values))*lineHeight+1)
	l.font("Times", "B", 10)
	l.text(labelX, c.y, label+":")
	l.body()
	c = l.lines(c, valueX, values)
	return c.down(1)
}

func (l *layout) caseDetails(c cursor, doc *models.FIRDocument) cursor {
	c = l.heading(c, 1, "CASE DETAILS", 20)
	rows := [][2]string{
		{"FIR Number", doc.CaseNumber},
		{"Date Reported", FormatDate(doc.DateReported)},
		{"Date of Occurrence", FormatDate(doc.DateOccurred)},
		{"Time of Occurrence", doc.TimeOccurred},
		{"Place of Occurrence", doc.Location},
		{"Type of Crime", doc.CrimeType},
		{"IPC/BNS Sections", strings.Join(doc.LegalSections, ", ")},
	}
	for _, row := range rows {
		c = l.labelValue(c, row[0], row[1])
	}
	return c.down(5)
}

func (l *layout) complainant(c cursor, doc *models.FIRDocument) cursor {
	c = l.heading(c, 2, "COMPLAINANT INFORMATION", 50)
	p := doc.Complainant
	phone, idNumber := p.Phone, p.IDNumber
	if l.copyType.Masked() {
		phone, idNumber = MaskPhone(phone), MaskID(idNumber)
	}
	rows := [][2]string{
		{"Name", p.Name},
		{"Father's/Husband's Name", p.ParentName},
		{"Age", fmt.Sprintf("%d years", p.Age)},
		{"Address", p.Address},
		{"Phone", phone},
		{"ID Proof", fmt.Sprintf("%s: %s", p.IDProof, idNumber)},
	}
	for _, row := range rows {
		c = l.labelValue(c, row[0], row[1])
	}
	return c.down(5)
}

const unknownAccused = "Accused: Unknown / Not Identified"

func (l *layout) accused(c cursor, doc *models.FIRDocument) cursor {
	c = l.heading(c, 3, "ACCUSED DETAILS", 40)
	if len(doc.Accused) == 0 || !doc.Accused[0].Known {
		l.text(labelX, c.y, unknownAccused)
		return c.down(6 + 5)
	}
	for i, a := range doc.Accused {
		description := l.wrap("Description: "+a.Description, blockWidth)
		var address []string
		if a.Address != "" {
			address = l.wrap("Address: "+a.Address, blockWidth)
		}
		c = l.ensure(c, float64(2+len(description)+len(address))*lineHeight+3)

		l.font("Times", "B", 10)
		l.text(labelX, c.y, fmt.Sprintf("Accused %d:", i+1))
		l.body()
		c = c.down(lineHeight)
		c = l.lines(c, indentX, append([]string{"Name: " + a.Name}, description...))
		c = l.lines(c, indentX, address)
		c = c.down(3)
	}
	return c.down(5)
}

// narrative is used for both free-text sections
func (l *layout) narrative(c cursor, number int, title, text string, reserve float64) cursor {
	c = l.heading(c, number, title, reserve)
	c = l.lines(c, labelX, l.wrap(text, contentWidth-10))
	return c.down(5)
}

func (l *layout) evidence(c cursor, doc *models.FIRDocument) cursor {
	c = l.heading(c, 5, "EVIDENCE COLLECTED", 40)
	if len(doc.Evidence) == 0 {
		l.text(labelX, c.y, "No evidence recorded.")
		return c.down(6 + 5)
	}
	for _, e := range doc.Evidence {
		item := l.wrap(e.Item, blockWidth)
		if len(item) == 0 {
			item = []string{""}
		}
		c = l.ensure(c, float64(len(item))*lineHeight+1)
		l.drawColor(black)
		l.pdf.SetLineWidth(0.2)
		l.checkbox(labelX, c.y-3, 3, e.Collected)
		c = l.lines(c, indentX, item)
	}
	return c.down(5)
}

const noWitnesses = "No witnesses recorded."

func (l *layout) witnesses(c cursor, doc *models.FIRDocument) cursor {
	c = l.heading(c, 6, "WITNESS DETAILS", 40)
	if len(doc.Witnesses) == 0 {
		l.text(labelX, c.y, noWitnesses)
		return c.down(6 + 5)
	}
	for i, w := range doc.Witnesses {
		phone := w.Phone
		if l.copyType.Masked() {
			phone = MaskPhone(phone)
		}
		address := l.wrap("Address: "+w.Address, blockWidth)
		c = l.ensure(c, float64(2+len(address))*lineHeight+1)

		l.text(labelX, c.y, fmt.Sprintf("%d. %s", i+1, w.Name))
		c = c.down(lineHeight)
		c = l.lines(c, indentX, append(address, "Phone: "+phone))
		c = c.down(1)
	}
	return c.down(5)
}
