package firpdf

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image/png"
	"strings"
	"time"

	"github.com/go-pdf/fpdf"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/linesmerrill/fir-document-api/models"
)

// ErrLayout is returned when drawing the document fails. No partial PDF is
// returned alongside it.
var ErrLayout = errors.New("fir layout failed")

// ErrNoDocument is returned when Generate is called without a document
var ErrNoDocument = errors.New("no fir document supplied")

// Options configures a Generator. Zero values are replaced with defaults.
type Options struct {
	Agency    models.Agency
	QREncoder QREncoder
	// Clock supplies the generation time
	Clock func() time.Time
	// Location is used for every rendered timestamp
	Location *time.Location
	// Compress turns on stream compression in the produced PDF
	Compress bool
	// VerifyOutput re-reads every produced PDF with pdfcpu before returning it
	VerifyOutput bool
}

// Generator renders FIR documents. It holds no per-call state and is safe
// for concurrent use.
type Generator struct {
	opts Options
}

// Result is one rendered copy of a document
type Result struct {
	PDF             []byte
	DocumentID      string
	GeneratedAt     time.Time
	VerificationURL string
	Pages           int
	CopyType        models.CopyType
	QREmbedded      bool
}

// NewGenerator returns a Generator configured with opts
func NewGenerator(opts Options) *Generator {
	opts.Agency = opts.Agency.WithDefaults()
	if opts.QREncoder == nil {
		opts.QREncoder = NewQREncoder()
	}
	if opts.Clock == nil {
		opts.Clock = time.Now
	}
	if opts.Location == nil {
		opts.Location = time.UTC
	}
	return &Generator{opts: opts}
}

// Agency returns the agency profile printed on generated documents
func (g *Generator) Agency() models.Agency {
	return g.opts.Agency
}

// Generate renders doc as the requested copy type
func (g *Generator) Generate(ctx context.Context, doc *models.FIRDocument, copyType models.CopyType) (*Result, error) {
	if doc == nil {
		return nil, ErrNoDocument
	}
	if !copyType.IsValid() {
		return nil, fmt.Errorf("%w: %q", models.ErrInvalidCopyType, copyType)
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	generatedAt := g.opts.Clock()
	documentID := DocumentHash(doc, generatedAt)
	url := VerificationURL(g.opts.Agency.Domain, doc.CaseNumber, documentID)
	qrPNG := g.qrCode(ctx, url)

	l, err := g.render(doc, copyType, documentID, generatedAt, qrPNG)
	if err != nil {
		zap.S().Errorw("fir layout failed",
			"caseNumber", doc.CaseNumber,
			"copyType", copyType,
			"error", err,
		)
		return nil, err
	}

	var buf bytes.Buffer
	if err := l.pdf.Output(&buf); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}
	pages := l.pdf.PageCount()
	if g.opts.VerifyOutput {
		if err := verifyPDF(buf.Bytes(), pages); err != nil {
			return nil, err
		}
	}

	zap.S().Debugw("generated fir document",
		"caseNumber", doc.CaseNumber,
		"copyType", copyType,
		"documentId", documentID,
		"pages", pages,
		"bytes", buf.Len(),
	)
	return &Result{
		PDF:             buf.Bytes(),
		DocumentID:      documentID,
		GeneratedAt:     generatedAt,
		VerificationURL: url,
		Pages:           pages,
		CopyType:        copyType,
		QREmbedded:      l.qr,
	}, nil
}

// GenerateAll renders one copy per copy type concurrently. Results are in
// the order of copyTypes.
func (g *Generator) GenerateAll(ctx context.Context, doc *models.FIRDocument, copyTypes []models.CopyType) ([]*Result, error) {
	results := make([]*Result, len(copyTypes))
	eg, ctx := errgroup.WithContext(ctx)
	eg.SetLimit(len(models.ValidCopyTypes()))
	for i, t := range copyTypes {
		eg.Go(func() error {
			r, err := g.Generate(ctx, doc, t)
			if err != nil {
				return fmt.Errorf("%s copy: %w", t, err)
			}
			results[i] = r
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// qrCode returns nil when the verification code cannot be produced. The
// document is then rendered without it.
func (g *Generator) qrCode(ctx context.Context, url string) []byte {
	b, err := g.opts.QREncoder.Encode(ctx, url)
	if err == nil {
		_, err = png.DecodeConfig(bytes.NewReader(b))
	}
	if err != nil {
		zap.S().Warnw("qr code unavailable, rendering without it",
			"url", url,
			"error", err,
		)
		return nil
	}
	return b
}

func (g *Generator) render(doc *models.FIRDocument, copyType models.CopyType, documentID string, generatedAt time.Time, qrPNG []byte) (l *layout, err error) {
	defer func() {
		if r := recover(); r != nil {
			l, err = nil, fmt.Errorf("%w: %v", ErrLayout, r)
		}
	}()

	l = newLayout(g.opts.Agency, copyType, g.opts.Location)
	l.pdf.SetCompression(g.opts.Compress)
	l.pdf.SetTitle("First Information Report "+doc.CaseNumber, true)
	l.pdf.SetSubject(fmt.Sprintf("%s copy", copyType), true)
	l.pdf.SetAuthor(g.opts.Agency.Name, true)
	l.pdf.SetCreator("fir-document-api", true)
	l.pdf.SetCreationDate(generatedAt)
	l.pdf.SetModificationDate(generatedAt)

	if len(qrPNG) > 0 {
		l.pdf.RegisterImageOptionsReader(qrImageName, fpdf.ImageOptions{ImageType: "PNG"}, bytes.NewReader(qrPNG))
		if l.pdf.Ok() {
			l.qr = true
		} else {
			zap.S().Warnw("qr image rejected, rendering without it", "error", l.pdf.Error())
			l.pdf.ClearError()
		}
	}

	c := l.addPage()
	c = l.header(c, doc, l.qr)
	c = l.caseDetails(c, doc)
	c = l.complainant(c, doc)
	c = l.accused(c, doc)
	c = l.narrative(c, 4, "DETAILS OF INCIDENT", doc.IncidentDescription, 60)
	c = l.evidence(c, doc)
	c = l.witnesses(c, doc)
	c = l.narrative(c, 7, "ACTION TAKEN", doc.ActionTaken, 30)
	c = c.down(5)

	section := 8
	if doc.FilingOfficer != nil {
		c = l.filingOfficer(c, section, doc.FilingOfficer)
		section++
	}
	l.signatures(c, section, doc.Signatures)
	l.footers(documentID, generatedAt)

	if err := l.pdf.Error(); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrLayout, err)
	}
	return l, nil
}

// FileName is the download name of a generated copy
func FileName(caseNumber string, copyType models.CopyType, generatedAt time.Time) string {
	safe := strings.Map(func(r rune) rune {
		switch r {
		case '/', '\\', '"', ':', '*', '?', '<', '>', '|':
			return '-'
		}
		return r
	}, caseNumber)
	return fmt.Sprintf("FIR_%s_%s_%s.pdf", safe, copyType, generatedAt.UTC().Format("2006-01-02"))
}
