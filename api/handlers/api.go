package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"

	"github.com/gorilla/mux"
	"go.uber.org/zap"

	"github.com/linesmerrill/fir-document-api/api"
	"github.com/linesmerrill/fir-document-api/config"
	"github.com/linesmerrill/fir-document-api/firpdf"
	"github.com/linesmerrill/fir-document-api/models"
	"github.com/linesmerrill/fir-document-api/narrative"
)

// DocumentGenerator renders FIR documents
type DocumentGenerator interface {
	Generate(ctx context.Context, doc *models.FIRDocument, copyType models.CopyType) (*firpdf.Result, error)
	GenerateAll(ctx context.Context, doc *models.FIRDocument, copyTypes []models.CopyType) ([]*firpdf.Result, error)
}

// NarrativeDrafter drafts incident narratives from an officer's notes
type NarrativeDrafter interface {
	Draft(ctx context.Context, req models.NarrativeRequest) (*models.NarrativeDraft, error)
}

// App stores the router and its collaborators, so it can be reused
type App struct {
	Router    *mux.Router
	Config    config.Config
	Generator DocumentGenerator
	Drafter   NarrativeDrafter
	Metrics   *api.MetricsCollector

	gemini *narrative.Gemini
}

// New creates a new mux router and all the routes. Collaborators that were
// not set are built from Config.
func (a *App) New() *mux.Router {
	if a.Generator == nil {
		a.Generator = firpdf.NewGenerator(firpdf.Options{
			Agency:       a.Config.Agency,
			Location:     a.Config.Location,
			Compress:     a.Config.PDF.Compress,
			VerifyOutput: a.Config.PDF.Verify,
		})
	}
	if a.Drafter == nil {
		a.Drafter = narrative.NewWriter(nil, a.agencyName())
	}
	if a.Metrics == nil {
		a.Metrics = api.GetMetrics()
	}

	r := mux.NewRouter()

	f := FIR{Generator: a.Generator}
	n := Narrative{Drafter: a.Drafter}
	m := MetricsHandler{Metrics: a.Metrics}

	// healthchex
	r.HandleFunc("/health", healthCheckHandler).Methods("GET")

	apiCreate := r.PathPrefix("/api/v1").Subrouter()

	apiCreate.Handle("/fir/pdf", http.HandlerFunc(f.GeneratePDFHandler)).Methods("POST")
	apiCreate.Handle("/fir/bundle", http.HandlerFunc(f.BundleHandler)).Methods("POST")
	apiCreate.Handle("/fir/sample", http.HandlerFunc(f.SampleHandler)).Methods("GET")
	apiCreate.Handle("/fir/sample/pdf", http.HandlerFunc(f.SamplePDFHandler)).Methods("GET")
	apiCreate.Handle("/fir/narrative", http.HandlerFunc(n.DraftHandler)).Methods("POST")

	apiCreate.Handle("/metrics", http.HandlerFunc(m.GetMetricsDashboard)).Methods("GET")
	apiCreate.Handle("/metrics/summary", http.HandlerFunc(m.GetMetricsSummary)).Methods("GET")
	apiCreate.Handle("/metrics/route", http.HandlerFunc(m.GetRouteMetrics)).Methods("GET")

	return r
}

// Initialize is invoked by main to build the collaborators and create a router
func (a *App) Initialize() error {
	gemini, err := narrative.NewGemini(context.Background(), a.Config.Gemini.APIKey, a.Config.Gemini.Model)
	if err != nil {
		// drafting still works from templates
		zap.S().Errorw("failed to create gemini client", "error", err)
	}
	if gemini != nil {
		a.gemini = gemini
		a.Drafter = narrative.NewWriter(gemini, a.agencyName())
		zap.S().Infow("narrative drafting uses gemini", "model", a.Config.Gemini.Model)
	} else {
		zap.S().Info("narrative drafting uses templates, no gemini api key set")
	}

	a.initializeRoutes()
	return nil
}

// Close releases the app's clients
func (a *App) Close() {
	a.gemini.Close()
}

func (a *App) initializeRoutes() {
	a.Router = a.New()
}

func (a *App) agencyName() string {
	return a.Config.Agency.WithDefaults().Name
}

func healthCheckHandler(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	b, _ := json.Marshal(models.HealthCheckResponse{
		Alive: true,
	})
	_, _ = io.WriteString(w, string(b))
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		zap.S().Warnw("failed to write response", "error", err)
	}
}
