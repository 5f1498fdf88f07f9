package firpdf

import (
	"encoding/json"
	"fmt"
	"strconv"
	"time"
	"unicode/utf16"

	"github.com/linesmerrill/fir-document-api/models"
)

// DocumentHash builds the short document id printed in the footer and
// embedded in the verification URL. The generation time is part of the
// input, so every generation gets its own id.
func DocumentHash(doc *models.FIRDocument, at time.Time) string {
	payload, err := json.Marshal(doc)
	if err != nil {
		payload = nil
	}
	return formatHash(rollingHash(string(payload) + strconv.FormatInt(at.UnixMilli(), 10)))
}

// rollingHash is the classic h*31+c string hash over UTF-16 code units,
// wrapping in a signed 32-bit accumulator.
func rollingHash(s string) int32 {
	var h int32
	for _, unit := range utf16.Encode([]rune(s)) {
		h = h*31 + int32(unit)
	}
	return h
}

func formatHash(h int32) string {
	v := int64(h)
	if v < 0 {
		v = -v
	}
	return fmt.Sprintf("%012X", v)
}
