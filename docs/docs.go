// Package docs FIR Document API.
//
// Documentation of the FIR Document API. It renders First Information
// Reports into printable PDF copies and drafts incident narratives.
//
//     Schemes: https
//     BasePath: /
//     Version: 1.0.0
//
//     Consumes:
//     - application/json
//
//     Produces:
//     - application/json
//     - application/pdf
//     - application/zip
//
// swagger:meta
package docs

import (
	"github.com/linesmerrill/fir-document-api/api"
	"github.com/linesmerrill/fir-document-api/api/handlers"
	"github.com/linesmerrill/fir-document-api/models"
)

// swagger:route GET /health health healthEndpointID
// Lists the healthchex of the web service api.
// responses:
//   200: healthResponse

// Shows the current health of the api. true means it is alive, false means it is not.
// swagger:response healthResponse
type healthResponseWrapper struct {
	// in:body
	Body models.HealthCheckResponse
}

// swagger:route POST /api/v1/fir/pdf fir firPDF
// Renders one copy of a FIR document.
// produces:
// - application/pdf
// responses:
//   200: pdfResponse
//   400: errorResponse
//   500: errorResponse
//   503: errorResponse

// swagger:parameters firPDF firBundle
type firDocumentParamsWrapper struct {
	// in:body
	Body models.FIRDocument
}

// swagger:parameters firPDF samplePDF
type copyTypeParamsWrapper struct {
	// original, certified, public or draft. Defaults to original.
	// in:query
	CopyType string `json:"copyType"`
	// attachment or inline. Defaults to attachment, or inline for the sample.
	// in:query
	Disposition string `json:"disposition"`
}

// The rendered PDF. X-Document-Id, X-Page-Count and X-Verification-Url
// describe it.
// swagger:response pdfResponse
type pdfResponseWrapper struct {
	// in:body
	Body []byte
}

// swagger:route POST /api/v1/fir/bundle fir firBundle
// Renders several copies of a FIR document into one zip archive with a manifest.json.
// produces:
// - application/zip
// responses:
//   200: bundleResponse
//   400: errorResponse
//   500: errorResponse

// swagger:parameters firBundle
type bundleParamsWrapper struct {
	// Comma separated copy types. Defaults to all four.
	// in:query
	CopyType string `json:"copyType"`
}

// The zip archive, one PDF per copy plus manifest.json
// swagger:response bundleResponse
type bundleResponseWrapper struct {
	// in:body
	Body []handlers.BundleEntry
}

// swagger:route GET /api/v1/fir/sample fir sampleFIR
// Returns a fully populated sample FIR document.
// responses:
//   200: sampleResponse

// swagger:response sampleResponse
type sampleResponseWrapper struct {
	// in:body
	Body models.FIRDocument
}

// swagger:route GET /api/v1/fir/sample/pdf fir samplePDF
// Renders the sample FIR document.
// produces:
// - application/pdf
// responses:
//   200: pdfResponse
//   400: errorResponse

// swagger:route POST /api/v1/fir/narrative narrative draftNarrative
// Drafts an incident narrative from keywords or free-form notes.
// responses:
//   200: narrativeResponse
//   400: errorResponse

// swagger:parameters draftNarrative
type narrativeParamsWrapper struct {
	// in:body
	Body models.NarrativeRequest
}

// swagger:response narrativeResponse
type narrativeResponseWrapper struct {
	// in:body
	Body models.NarrativeDraft
}

// swagger:route GET /api/v1/metrics/summary metrics metricsSummary
// Summarises the requests of the current metrics window.
// responses:
//   200: metricsSummaryResponse

// swagger:response metricsSummaryResponse
type metricsSummaryResponseWrapper struct {
	// in:body
	Body api.Summary
}

// swagger:route GET /api/v1/metrics/route metrics routeMetrics
// Shows the metrics of one route, keyed as "METHOD /path".
// responses:
//   200: routeMetricsResponse
//   400: errorResponse
//   404: errorResponse

// swagger:response routeMetricsResponse
type routeMetricsResponseWrapper struct {
	// in:body
	Body api.RouteMetrics
}

// swagger:response errorResponse
type errorResponseWrapper struct {
	// in:body
	Body models.ErrorMessageResponse
}
