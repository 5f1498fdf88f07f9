package handlers

import (
	"archive/zip"
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/linesmerrill/fir-document-api/api"
	"github.com/linesmerrill/fir-document-api/firpdf"
	"github.com/linesmerrill/fir-document-api/models"
)

var a App

func executeRequest(req *http.Request) *httptest.ResponseRecorder {
	rr := httptest.NewRecorder()
	a.Router.ServeHTTP(rr, req)
	return rr
}

func checkResponseCode(t *testing.T, expected, actual int) {
	if expected != actual {
		t.Errorf("Expected response code %d. Got %d\n", expected, actual)
	}
}

func sampleBody(t *testing.T) *bytes.Reader {
	b, err := json.Marshal(models.SampleFIR())
	require.NoError(t, err)
	return bytes.NewReader(b)
}

func TestUnknownRoute(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/asdf", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusNotFound, response.Code)
}

func TestHealthCheckRoute(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/health", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)

	if !strings.Contains(response.Body.String(), "alive") {
		t.Errorf("Expected 'alive' in the reponse. Got '%s'", response.Body.String())
	}
}

func TestApp_WrongMethod(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/api/v1/fir/pdf", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusMethodNotAllowed, response.Code)
}

func TestApp_SampleRoute(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/api/v1/fir/sample", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	var doc models.FIRDocument
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &doc))
	assert.Equal(t, models.SampleFIR().CaseNumber, doc.CaseNumber)
	assert.NotEmpty(t, doc.Signatures)
}

func TestApp_SamplePDFRoute(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("GET", "/api/v1/fir/sample/pdf?copyType=certified", nil)
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Equal(t, "application/pdf", response.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(response.Header().Get("Content-Disposition"), `inline; filename="FIR_AP-2026-VJA-00234_certified_`))
	assert.True(t, bytes.HasPrefix(response.Body.Bytes(), []byte("%PDF-")))

	pages, err := firpdf.PageCount(response.Body.Bytes())
	require.NoError(t, err)
	assert.Equal(t, strconv.Itoa(pages), response.Header().Get(PageCountHeader))
}

func TestApp_GeneratePDFRoute(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("POST", "/api/v1/fir/pdf?copyType=public", sampleBody(t))
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Equal(t, "application/pdf", response.Header().Get("Content-Type"))
	assert.True(t, strings.HasPrefix(response.Header().Get("Content-Disposition"), `attachment; filename="FIR_AP-2026-VJA-00234_public_`))
	assert.Len(t, response.Header().Get(DocumentIDHeader), 12)
	assert.Contains(t, response.Header().Get(VerificationURLHeader), "/verify/AP-2026-VJA-00234?hash=")
	assert.Equal(t, strconv.Itoa(response.Body.Len()), response.Header().Get("Content-Length"))
}

func TestApp_GeneratePDFRouteBadRequests(t *testing.T) {
	a.Router = a.New()

	tests := []struct {
		name  string
		query string
		body  string
	}{
		{"bad json", "", `{"caseNumber":`},
		{"missing case number", "", `{"location":"MG Road"}`},
		{"blank case number", "", `{"caseNumber":"   "}`},
		{"unknown copy type", "?copyType=photocopy", `{"caseNumber":"FIR-1"}`},
		{"unknown disposition", "?disposition=email", `{"caseNumber":"FIR-1"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req, _ := http.NewRequest("POST", "/api/v1/fir/pdf"+tt.query, strings.NewReader(tt.body))
			response := executeRequest(req)

			checkResponseCode(t, http.StatusBadRequest, response.Code)
			var resp models.ErrorMessageResponse
			require.NoError(t, json.Unmarshal(response.Body.Bytes(), &resp))
			assert.NotEmpty(t, resp.Response.Message)
		})
	}
}

func TestApp_BundleRoute(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("POST", "/api/v1/fir/bundle?copyType=draft,public,draft", sampleBody(t))
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	assert.Equal(t, "application/zip", response.Header().Get("Content-Type"))
	assert.Contains(t, response.Header().Get("Content-Disposition"), "FIR_AP-2026-VJA-00234_bundle_")

	body := response.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	require.Len(t, zr.File, 3)
	assert.Equal(t, "manifest.json", zr.File[2].Name)

	rc, err := zr.File[2].Open()
	require.NoError(t, err)
	defer rc.Close()
	var manifest []BundleEntry
	require.NoError(t, json.NewDecoder(rc).Decode(&manifest))
	require.Len(t, manifest, 2)
	assert.Equal(t, models.CopyTypeDraft, manifest[0].CopyType)
	assert.Equal(t, models.CopyTypePublic, manifest[1].CopyType)

	for i, entry := range manifest {
		assert.Equal(t, zr.File[i].Name, entry.FileName)
		f, err := zr.File[i].Open()
		require.NoError(t, err)
		pdf, err := io.ReadAll(f)
		f.Close()
		require.NoError(t, err)
		pages, err := firpdf.PageCount(pdf)
		require.NoError(t, err)
		assert.Equal(t, entry.Pages, pages)
	}
}

func TestApp_BundleRouteDefaultsToEveryCopy(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("POST", "/api/v1/fir/bundle", sampleBody(t))
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	body := response.Body.Bytes()
	zr, err := zip.NewReader(bytes.NewReader(body), int64(len(body)))
	require.NoError(t, err)
	assert.Len(t, zr.File, len(models.ValidCopyTypes())+1)
}

func TestApp_NarrativeRouteUsesTemplateWithoutModel(t *testing.T) {
	a.Router = a.New()
	body := `{"keywords":["stolen","bike"],"crimeType":"Theft","location":"MG Road","complainantName":"Ravi"}`
	req, _ := http.NewRequest("POST", "/api/v1/fir/narrative", strings.NewReader(body))
	response := executeRequest(req)

	checkResponseCode(t, http.StatusOK, response.Code)
	var draft models.NarrativeDraft
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &draft))
	assert.Equal(t, "template", draft.Source)
	assert.Contains(t, draft.Narrative, "Ravi")
	assert.Contains(t, draft.Narrative, "MG Road")
	assert.Equal(t, "379 - Theft", draft.SuggestedSections[0])
	assert.Equal(t, 5, draft.RiskScore)
}

func TestApp_NarrativeRouteNeedsKeywords(t *testing.T) {
	a.Router = a.New()
	req, _ := http.NewRequest("POST", "/api/v1/fir/narrative", strings.NewReader(`{"crimeType":"Theft"}`))
	response := executeRequest(req)

	checkResponseCode(t, http.StatusBadRequest, response.Code)
}

func TestApp_MetricsRoutes(t *testing.T) {
	metrics := api.NewMetricsCollector(10, time.Hour)
	defer metrics.Stop()
	a.Metrics = metrics
	defer func() { a.Metrics = nil }()
	a.Router = a.New()
	traced := metrics.Middleware(a.Router)

	req, _ := http.NewRequest("GET", "/api/v1/fir/sample", nil)
	rr := httptest.NewRecorder()
	traced.ServeHTTP(rr, req)
	checkResponseCode(t, http.StatusOK, rr.Code)
	metrics.Flush()

	req, _ = http.NewRequest("GET", "/api/v1/metrics/summary", nil)
	response := executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)
	var summary api.Summary
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &summary))
	assert.Equal(t, int64(1), summary.TotalRequests)

	req, _ = http.NewRequest("GET", "/api/v1/metrics?limit=5", nil)
	response = executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)
	var dashboard map[string]interface{}
	require.NoError(t, json.Unmarshal(response.Body.Bytes(), &dashboard))
	assert.Len(t, dashboard["recentTraces"], 1)

	req, _ = http.NewRequest("GET", "/api/v1/metrics/route?route=GET+/api/v1/fir/sample", nil)
	response = executeRequest(req)
	checkResponseCode(t, http.StatusOK, response.Code)

	req, _ = http.NewRequest("GET", "/api/v1/metrics/route?route=GET+/nowhere", nil)
	response = executeRequest(req)
	checkResponseCode(t, http.StatusNotFound, response.Code)

	req, _ = http.NewRequest("GET", "/api/v1/metrics/route", nil)
	response = executeRequest(req)
	checkResponseCode(t, http.StatusBadRequest, response.Code)
}
