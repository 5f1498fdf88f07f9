package handlers

import (
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/linesmerrill/fir-document-api/api"
	"github.com/linesmerrill/fir-document-api/config"
	"github.com/linesmerrill/fir-document-api/models"
	"github.com/linesmerrill/fir-document-api/narrative"
)

// maxNarrativeBytes bounds the officer's notes
const maxNarrativeBytes = 64 << 10

// Narrative exported for testing purposes
type Narrative struct {
	Drafter NarrativeDrafter
}

// DraftHandler drafts an incident narrative from keywords or free-form notes
func (n Narrative) DraftHandler(w http.ResponseWriter, r *http.Request) {
	var req models.NarrativeRequest
	if err := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxNarrativeBytes)).Decode(&req); err != nil {
		config.ErrorStatus("failed to decode narrative request", http.StatusBadRequest, w, err)
		return
	}

	start := time.Now()
	draft, err := n.Drafter.Draft(r.Context(), req)
	api.RecordSpanFromContext(r.Context(), "narrative", req.CrimeType, time.Since(start), err)
	if errors.Is(err, narrative.ErrNoKeywords) {
		config.ErrorStatus("keywords or text are required", http.StatusBadRequest, w, err)
		return
	}
	if err != nil {
		config.ErrorStatus("failed to draft narrative", http.StatusInternalServerError, w, err)
		return
	}
	writeJSON(w, http.StatusOK, draft)
}
