package handlers_test

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"

	"github.com/linesmerrill/fir-document-api/api/handlers"
	"github.com/linesmerrill/fir-document-api/firpdf"
	"github.com/linesmerrill/fir-document-api/models"
	"github.com/linesmerrill/fir-document-api/narrative"
)

type MockGenerator struct {
	mock.Mock
}

// Generate provides a mock function.
func (_m *MockGenerator) Generate(ctx context.Context, doc *models.FIRDocument, copyType models.CopyType) (*firpdf.Result, error) {
	ret := _m.Called(ctx, doc, copyType)

	var r0 *firpdf.Result
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*firpdf.Result)
	}
	return r0, ret.Error(1)
}

// GenerateAll provides a mock function.
func (_m *MockGenerator) GenerateAll(ctx context.Context, doc *models.FIRDocument, copyTypes []models.CopyType) ([]*firpdf.Result, error) {
	ret := _m.Called(ctx, doc, copyTypes)

	var r0 []*firpdf.Result
	if ret.Get(0) != nil {
		r0 = ret.Get(0).([]*firpdf.Result)
	}
	return r0, ret.Error(1)
}

type MockDrafter struct {
	mock.Mock
}

// Draft provides a mock function.
func (_m *MockDrafter) Draft(ctx context.Context, req models.NarrativeRequest) (*models.NarrativeDraft, error) {
	ret := _m.Called(ctx, req)

	var r0 *models.NarrativeDraft
	if ret.Get(0) != nil {
		r0 = ret.Get(0).(*models.NarrativeDraft)
	}
	return r0, ret.Error(1)
}

var generatedAt = time.Date(2026, 1, 2, 5, 15, 23, 0, time.UTC)

func TestFIR_GeneratePDFHandler(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/fir/pdf?copyType=draft&disposition=inline", strings.NewReader(`{"caseNumber":"AP/2026/17"}`))
	if err != nil {
		t.Fatal(err)
	}

	gen := &MockGenerator{}
	gen.On("Generate", mock.Anything, mock.MatchedBy(func(doc *models.FIRDocument) bool {
		return doc.CaseNumber == "AP/2026/17"
	}), models.CopyTypeDraft).Return(&firpdf.Result{
		PDF:             []byte("%PDF-1.3 fake"),
		DocumentID:      "000012AB34CD",
		GeneratedAt:     generatedAt,
		VerificationURL: "https://appolice.gov.in/verify/AP/2026/17?hash=000012AB34CD",
		Pages:           3,
		CopyType:        models.CopyTypeDraft,
	}, nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.FIR{Generator: gen}.GeneratePDFHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `inline; filename="FIR_AP-2026-17_draft_2026-01-02.pdf"`, rr.Header().Get("Content-Disposition"))
	assert.Equal(t, "000012AB34CD", rr.Header().Get(handlers.DocumentIDHeader))
	assert.Equal(t, "3", rr.Header().Get(handlers.PageCountHeader))
	assert.Equal(t, "%PDF-1.3 fake", rr.Body.String())
	gen.AssertExpectations(t)
}

func TestFIR_GeneratePDFHandlerDefaultsToOriginal(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/fir/pdf", strings.NewReader(`{"caseNumber":"FIR-1"}`))
	if err != nil {
		t.Fatal(err)
	}

	gen := &MockGenerator{}
	gen.On("Generate", mock.Anything, mock.Anything, models.CopyTypeOriginal).Return(&firpdf.Result{
		PDF:         []byte("%PDF"),
		GeneratedAt: generatedAt,
		CopyType:    models.CopyTypeOriginal,
	}, nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.FIR{Generator: gen}.GeneratePDFHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Equal(t, `attachment; filename="FIR_FIR-1_original_2026-01-02.pdf"`, rr.Header().Get("Content-Disposition"))
	gen.AssertExpectations(t)
}

func TestFIR_GeneratePDFHandlerErrors(t *testing.T) {
	tests := []struct {
		err    error
		status int
	}{
		{fmt.Errorf("wrap: %w", firpdf.ErrLayout), http.StatusInternalServerError},
		{errors.New("boom"), http.StatusInternalServerError},
		{context.DeadlineExceeded, http.StatusServiceUnavailable},
		{fmt.Errorf("%w: %q", models.ErrInvalidCopyType, "x"), http.StatusBadRequest},
	}
	for _, tt := range tests {
		t.Run(tt.err.Error(), func(t *testing.T) {
			req, err := http.NewRequest("POST", "/api/v1/fir/pdf", strings.NewReader(`{"caseNumber":"FIR-1"}`))
			if err != nil {
				t.Fatal(err)
			}
			gen := &MockGenerator{}
			gen.On("Generate", mock.Anything, mock.Anything, mock.Anything).Return(nil, tt.err)

			rr := httptest.NewRecorder()
			http.HandlerFunc(handlers.FIR{Generator: gen}.GeneratePDFHandler).ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
			assert.Equal(t, "application/json", rr.Header().Get("Content-Type"))
			assert.Empty(t, rr.Header().Get(handlers.DocumentIDHeader))
		})
	}
}

func TestFIR_GeneratePDFHandlerSkipsGeneratorOnBadInput(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/fir/pdf", strings.NewReader(`not json`))
	if err != nil {
		t.Fatal(err)
	}
	gen := &MockGenerator{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.FIR{Generator: gen}.GeneratePDFHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	gen.AssertNotCalled(t, "Generate", mock.Anything, mock.Anything, mock.Anything)
}

func TestFIR_BundleHandlerFailure(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/fir/bundle?copyType=original,certified", strings.NewReader(`{"caseNumber":"FIR-1"}`))
	if err != nil {
		t.Fatal(err)
	}
	gen := &MockGenerator{}
	gen.On("GenerateAll", mock.Anything, mock.Anything, []models.CopyType{models.CopyTypeOriginal, models.CopyTypeCertified}).
		Return(nil, fmt.Errorf("certified copy: %w", firpdf.ErrLayout))

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.FIR{Generator: gen}.BundleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusInternalServerError, rr.Code)
	gen.AssertExpectations(t)
}

func TestFIR_BundleHandlerRejectsUnknownCopyType(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/fir/bundle?copyType=original,carbon", strings.NewReader(`{"caseNumber":"FIR-1"}`))
	if err != nil {
		t.Fatal(err)
	}
	gen := &MockGenerator{}

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.FIR{Generator: gen}.BundleHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusBadRequest, rr.Code)
	gen.AssertNotCalled(t, "GenerateAll", mock.Anything, mock.Anything, mock.Anything)
}

func TestNarrative_DraftHandler(t *testing.T) {
	req, err := http.NewRequest("POST", "/api/v1/fir/narrative", strings.NewReader(`{"keywords":["chain","snatched"],"location":"Benz Circle"}`))
	if err != nil {
		t.Fatal(err)
	}
	drafter := &MockDrafter{}
	drafter.On("Draft", mock.Anything, models.NarrativeRequest{
		Keywords: []string{"chain", "snatched"},
		Location: "Benz Circle",
	}).Return(&models.NarrativeDraft{Narrative: "On the evening...", RiskScore: 7, Source: narrative.SourceModel}, nil)

	rr := httptest.NewRecorder()
	http.HandlerFunc(handlers.Narrative{Drafter: drafter}.DraftHandler).ServeHTTP(rr, req)

	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `"riskScore":7`)
	assert.Contains(t, rr.Body.String(), `"source":"model"`)
	drafter.AssertExpectations(t)
}

func TestNarrative_DraftHandlerErrors(t *testing.T) {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"no keywords", narrative.ErrNoKeywords, http.StatusBadRequest},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, err := http.NewRequest("POST", "/api/v1/fir/narrative", strings.NewReader(`{}`))
			if err != nil {
				t.Fatal(err)
			}
			drafter := &MockDrafter{}
			drafter.On("Draft", mock.Anything, mock.Anything).Return(nil, tt.err)

			rr := httptest.NewRecorder()
			http.HandlerFunc(handlers.Narrative{Drafter: drafter}.DraftHandler).ServeHTTP(rr, req)

			assert.Equal(t, tt.status, rr.Code)
		})
	}
}
