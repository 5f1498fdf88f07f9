package firpdf

import (
	"bytes"
	"context"
	"fmt"
	"image"
	"image/color"
	"image/png"

	"github.com/boombuler/barcode/qr"
)

// QREncoder renders text as a PNG QR code
type QREncoder interface {
	Encode(ctx context.Context, content string) ([]byte, error)
}

// VerificationURL is the public lookup address for a generated document
func VerificationURL(domain, caseNumber, documentHash string) string {
	return fmt.Sprintf("https://%s/verify/%s?hash=%s", domain, caseNumber, documentHash)
}

// BarcodeQREncoder draws QR codes with a one module quiet zone
type BarcodeQREncoder struct {
	// Size is the target edge length in pixels. The image is never smaller
	// than one pixel per module.
	Size  int
	Dark  color.RGBA
	Light color.RGBA
	Level qr.ErrorCorrectionLevel
}

// NewQREncoder returns the encoder used for verification codes: about 100px,
// deep blue on white
func NewQREncoder() *BarcodeQREncoder {
	return &BarcodeQREncoder{
		Size:  100,
		Dark:  color.RGBA{R: 0x00, G: 0x33, B: 0x66, A: 0xff},
		Light: color.RGBA{R: 0xff, G: 0xff, B: 0xff, A: 0xff},
		Level: qr.M,
	}
}

const quietZone = 1

// Encode implements QREncoder
func (e *BarcodeQREncoder) Encode(ctx context.Context, content string) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	code, err := qr.Encode(content, e.Level, qr.Auto)
	if err != nil {
		return nil, fmt.Errorf("failed to encode qr code: %w", err)
	}

	modules := code.Bounds().Dx()
	total := modules + 2*quietZone
	scale := e.Size / total
	if scale < 1 {
		scale = 1
	}

	// palette index 0 is the light colour so the zero value is background
	img := image.NewPaletted(image.Rect(0, 0, total*scale, total*scale), color.Palette{e.Light, e.Dark})
	for y := 0; y < modules; y++ {
		for x := 0; x < modules; x++ {
			if !isDark(code.At(x, y)) {
				continue
			}
			px, py := (x+quietZone)*scale, (y+quietZone)*scale
			for dy := 0; dy < scale; dy++ {
				for dx := 0; dx < scale; dx++ {
					img.SetColorIndex(px+dx, py+dy, 1)
				}
			}
		}
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, fmt.Errorf("failed to write qr png: %w", err)
	}
	return buf.Bytes(), nil
}

func isDark(c color.Color) bool {
	r, g, b, _ := c.RGBA()
	return r+g+b < 3*0x8000
}
