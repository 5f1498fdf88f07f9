package firpdf

import (
	"bytes"
	"context"
	"image/png"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestVerificationURL(t *testing.T) {
	assert.Equal(t,
		"https://appolice.gov.in/verify/AP-2026-VJA-00234?hash=00004DA00EC3",
		VerificationURL("appolice.gov.in", "AP-2026-VJA-00234", "00004DA00EC3"),
	)
}

func TestBarcodeQREncoderEncode(t *testing.T) {
	enc := NewQREncoder()
	b, err := enc.Encode(context.Background(), VerificationURL("appolice.gov.in", "AP-2026-VJA-00234", "00004DA00EC3"))
	require.NoError(t, err)

	img, err := png.Decode(bytes.NewReader(b))
	require.NoError(t, err)
	bounds := img.Bounds()
	assert.Equal(t, bounds.Dx(), bounds.Dy())
	assert.LessOrEqual(t, bounds.Dx(), enc.Size)

	// quiet zone keeps the corner light, the finder pattern follows it
	assert.False(t, isDark(img.At(0, 0)))
	first := -1
	for i := 0; i < bounds.Dx(); i++ {
		if isDark(img.At(i, i)) {
			first = i
			break
		}
	}
	assert.Greater(t, first, 0)
}

func TestBarcodeQREncoderTinySize(t *testing.T) {
	enc := NewQREncoder()
	enc.Size = 1
	b, err := enc.Encode(context.Background(), "https://appolice.gov.in")
	require.NoError(t, err)

	cfg, err := png.DecodeConfig(bytes.NewReader(b))
	require.NoError(t, err)
	assert.Greater(t, cfg.Width, 20)
}

func TestBarcodeQREncoderCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	_, err := NewQREncoder().Encode(ctx, "https://appolice.gov.in")
	assert.ErrorIs(t, err, context.Canceled)
}
