package handlers

import (
	"archive/zip"
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/linesmerrill/fir-document-api/api"
	"github.com/linesmerrill/fir-document-api/config"
	"github.com/linesmerrill/fir-document-api/firpdf"
	"github.com/linesmerrill/fir-document-api/models"
)

// maxDocumentBytes bounds the size of a posted FIR document
const maxDocumentBytes = 1 << 20

// Response headers describing a generated copy
const (
	DocumentIDHeader      = "X-Document-Id"
	PageCountHeader       = "X-Page-Count"
	VerificationURLHeader = "X-Verification-Url"
)

// FIR exported for testing purposes
type FIR struct {
	Generator DocumentGenerator
}

// BundleEntry describes one copy inside a bundle archive
type BundleEntry struct {
	FileName        string          `json:"fileName"`
	CopyType        models.CopyType `json:"copyType"`
	DocumentID      string          `json:"documentId"`
	Pages           int             `json:"pages"`
	VerificationURL string          `json:"verificationUrl"`
	QREmbedded      bool            `json:"qrEmbedded"`
}

// GeneratePDFHandler renders one copy of the posted FIR document
func (f FIR) GeneratePDFHandler(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeDocument(w, r)
	if !ok {
		return
	}
	copyType, err := models.ParseCopyType(r.URL.Query().Get("copyType"))
	if err != nil {
		config.ErrorStatus("invalid copyType", http.StatusBadRequest, w, err)
		return
	}
	disposition, err := parseDisposition(r.URL.Query().Get("disposition"))
	if err != nil {
		config.ErrorStatus("invalid disposition", http.StatusBadRequest, w, err)
		return
	}
	f.render(w, r, doc, copyType, disposition)
}

// SampleHandler returns the built-in sample FIR document
func (f FIR) SampleHandler(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, models.SampleFIR())
}

// SamplePDFHandler renders the built-in sample FIR document. It is shown
// inline unless another disposition is asked for.
func (f FIR) SamplePDFHandler(w http.ResponseWriter, r *http.Request) {
	copyType, err := models.ParseCopyType(r.URL.Query().Get("copyType"))
	if err != nil {
		config.ErrorStatus("invalid copyType", http.StatusBadRequest, w, err)
		return
	}
	d := r.URL.Query().Get("disposition")
	if d == "" {
		d = "inline"
	}
	disposition, err := parseDisposition(d)
	if err != nil {
		config.ErrorStatus("invalid disposition", http.StatusBadRequest, w, err)
		return
	}
	doc := models.SampleFIR()
	f.render(w, r, &doc, copyType, disposition)
}

// BundleHandler renders several copies of the posted FIR document into one
// zip archive with a manifest.json describing each copy
func (f FIR) BundleHandler(w http.ResponseWriter, r *http.Request) {
	doc, ok := decodeDocument(w, r)
	if !ok {
		return
	}
	copyTypes, err := parseCopyTypes(r.URL.Query().Get("copyType"))
	if err != nil {
		config.ErrorStatus("invalid copyType", http.StatusBadRequest, w, err)
		return
	}

	ctx, cancel := api.WithRenderTimeout(r.Context())
	defer cancel()

	start := time.Now()
	results, err := f.Generator.GenerateAll(ctx, doc, copyTypes)
	api.RecordSpanFromContext(ctx, "render-bundle", strconv.Itoa(len(copyTypes))+" copies", time.Since(start), err)
	if err != nil {
		renderError(w, err)
		return
	}

	archive, err := bundle(doc.CaseNumber, results)
	if err != nil {
		config.ErrorStatus("failed to write bundle", http.StatusInternalServerError, w, err)
		return
	}

	name := strings.TrimSuffix(firpdf.FileName(doc.CaseNumber, "bundle", results[0].GeneratedAt), ".pdf") + ".zip"
	w.Header().Set("Content-Type", "application/zip")
	w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", name))
	w.Header().Set("Content-Length", strconv.Itoa(len(archive)))
	w.Header().Set("Cache-Control", "no-store")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(archive)
}

func (f FIR) render(w http.ResponseWriter, r *http.Request, doc *models.FIRDocument, copyType models.CopyType, disposition string) {
	ctx, cancel := api.WithRenderTimeout(r.Context())
	defer cancel()

	start := time.Now()
	res, err := f.Generator.Generate(ctx, doc, copyType)
	api.RecordSpanFromContext(ctx, "render", string(copyType), time.Since(start), err)
	if err != nil {
		renderError(w, err)
		return
	}

	name := firpdf.FileName(doc.CaseNumber, res.CopyType, res.GeneratedAt)
	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", fmt.Sprintf("%s; filename=%q", disposition, name))
	w.Header().Set("Content-Length", strconv.Itoa(len(res.PDF)))
	w.Header().Set("Cache-Control", "no-store")
	w.Header().Set(DocumentIDHeader, res.DocumentID)
	w.Header().Set(PageCountHeader, strconv.Itoa(res.Pages))
	w.Header().Set(VerificationURLHeader, res.VerificationURL)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(res.PDF)
}

func decodeDocument(w http.ResponseWriter, r *http.Request) (*models.FIRDocument, bool) {
	var doc models.FIRDocument
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxDocumentBytes)).Decode(&doc); err != nil {
		config.ErrorStatus("failed to decode fir document", http.StatusBadRequest, w, err)
		return nil, false
	}
	if strings.TrimSpace(doc.CaseNumber) == "" {
		config.ErrorStatus("caseNumber is required", http.StatusBadRequest, w, nil)
		return nil, false
	}
	return &doc, true
}

func renderError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, models.ErrInvalidCopyType), errors.Is(err, firpdf.ErrNoDocument):
		config.ErrorStatus("invalid fir document request", http.StatusBadRequest, w, err)
	case errors.Is(err, context.DeadlineExceeded):
		config.ErrorStatus("fir document generation timed out", http.StatusServiceUnavailable, w, err)
	case errors.Is(err, context.Canceled):
		// the client went away, nobody reads the body
		config.ErrorStatus("fir document generation canceled", http.StatusServiceUnavailable, w, err)
	default:
		config.ErrorStatus("failed to generate fir document", http.StatusInternalServerError, w, err)
	}
}

func parseDisposition(s string) (string, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "attachment":
		return "attachment", nil
	case "inline":
		return "inline", nil
	}
	return "", fmt.Errorf("unknown disposition %q", s)
}

// parseCopyTypes reads a comma separated list of copy types. An empty list
// means every copy type. Repeats are dropped.
func parseCopyTypes(s string) ([]models.CopyType, error) {
	if strings.TrimSpace(s) == "" {
		return models.ValidCopyTypes(), nil
	}
	seen := make(map[models.CopyType]bool)
	var types []models.CopyType
	for _, part := range strings.Split(s, ",") {
		if strings.TrimSpace(part) == "" {
			continue
		}
		t, err := models.ParseCopyType(part)
		if err != nil {
			return nil, err
		}
		if !seen[t] {
			seen[t] = true
			types = append(types, t)
		}
	}
	if len(types) == 0 {
		return models.ValidCopyTypes(), nil
	}
	return types, nil
}

func bundle(caseNumber string, results []*firpdf.Result) ([]byte, error) {
	var buf bytes.Buffer
	zw := zip.NewWriter(&buf)

	manifest := make([]BundleEntry, 0, len(results))
	for _, res := range results {
		name := firpdf.FileName(caseNumber, res.CopyType, res.GeneratedAt)
		fw, err := zw.CreateHeader(&zip.FileHeader{
			Name:     name,
			Method:   zip.Deflate,
			Modified: res.GeneratedAt,
		})
		if err != nil {
			return nil, fmt.Errorf("create %s: %w", name, err)
		}
		if _, err := fw.Write(res.PDF); err != nil {
			return nil, fmt.Errorf("write %s: %w", name, err)
		}
		manifest = append(manifest, BundleEntry{
			FileName:        name,
			CopyType:        res.CopyType,
			DocumentID:      res.DocumentID,
			Pages:           res.Pages,
			VerificationURL: res.VerificationURL,
			QREmbedded:      res.QREmbedded,
		})
	}

	fw, err := zw.Create("manifest.json")
	if err != nil {
		return nil, fmt.Errorf("create manifest: %w", err)
	}
	enc := json.NewEncoder(fw)
	enc.SetIndent("", "  ")
	if err := enc.Encode(manifest); err != nil {
		return nil, fmt.Errorf("write manifest: %w", err)
	}
	if err := zw.Close(); err != nil {
		return nil, fmt.Errorf("close bundle: %w", err)
	}
	return buf.Bytes(), nil
}
