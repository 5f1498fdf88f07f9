package firpdf

import (
	"bytes"
	"fmt"
	"sync"

	"github.com/pdfcpu/pdfcpu/pkg/api"
	"github.com/pdfcpu/pdfcpu/pkg/pdfcpu/model"
)

var disableConfigDir sync.Once

func pdfcpuConfig() *model.Configuration {
	disableConfigDir.Do(api.DisableConfigDir)
	conf := model.NewDefaultConfiguration()
	conf.ValidationMode = model.ValidationRelaxed
	return conf
}

// PageCount reads the number of pages of a PDF
func PageCount(b []byte) (int, error) {
	return api.PageCount(bytes.NewReader(b), pdfcpuConfig())
}

// verifyPDF checks that b parses as a valid PDF with the expected number of
// pages
func verifyPDF(b []byte, pages int) error {
	if err := api.Validate(bytes.NewReader(b), pdfcpuConfig()); err != nil {
		return fmt.Errorf("%w: output does not validate: %v", ErrLayout, err)
	}
	n, err := PageCount(b)
	if err != nil {
		return fmt.Errorf("%w: reading page count: %v", ErrLayout, err)
	}
	if n != pages {
		return fmt.Errorf("%w: output has %d pages, laid out %d", ErrLayout, n, pages)
	}
	return nil
}
