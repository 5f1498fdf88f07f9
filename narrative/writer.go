package narrative

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/linesmerrill/fir-document-api/models"
)

// Draft sources
const (
	SourceModel    = "model"
	SourceTemplate = "template"
)

// ErrNoKeywords is returned when a request carries neither keywords nor text
var ErrNoKeywords = errors.New("no keywords or notes supplied")

// TextModel is a generative language model answering a single prompt
type TextModel interface {
	Generate(ctx context.Context, prompt string) (string, error)
}

// Writer drafts incident narratives. With no model, or when the model
// fails, drafts come from a fixed template.
type Writer struct {
	model  TextModel
	agency string
	now    func() time.Time
}

// NewWriter returns a Writer. model may be nil.
func NewWriter(model TextModel, agencyName string) *Writer {
	return &Writer{model: model, agency: agencyName, now: time.Now}
}

// Draft returns a narrative for req. It only fails on an empty request.
func (w *Writer) Draft(ctx context.Context, req models.NarrativeRequest) (*models.NarrativeDraft, error) {
	if len(req.Keywords) == 0 {
		if strings.TrimSpace(req.Text) == "" {
			return nil, ErrNoKeywords
		}
		req = merge(req, FromText(req.Text, w.now()))
	}

	if w.model == nil {
		return fallback(req), nil
	}
	text, err := w.model.Generate(ctx, buildPrompt(w.agency, req))
	if err != nil {
		zap.S().Warnw("narrative model failed, using template",
			"crimeType", req.CrimeType,
			"error", err,
		)
		return fallback(req), nil
	}
	return parseDraft(text, req), nil
}

// merge keeps what the caller filled in and takes the rest from parsed
func merge(req, parsed models.NarrativeRequest) models.NarrativeRequest {
	req.Keywords = parsed.Keywords
	req.CrimeType = or(req.CrimeType, parsed.CrimeType)
	req.Location = or(req.Location, parsed.Location)
	req.Date = or(req.Date, parsed.Date)
	req.Time = or(req.Time, parsed.Time)
	return req
}

// crimeInfo is what the hint tables are matched against
func crimeInfo(req models.NarrativeRequest) string {
	if req.CrimeType != "" {
		return req.CrimeType
	}
	return strings.Join(req.Keywords, " ")
}

func or(s, fallback string) string {
	if s == "" {
		return fallback
	}
	return s
}

func fallbackNarrative(req models.NarrativeRequest) string {
	return fmt.Sprintf("On %s at approximately %s, the complainant %s appeared at the police station and reported the following incident. "+
		"As per the statement recorded, the complainant stated that a %s occurred at %s. "+
		"The incident involved the following: %s. "+
		"The complainant further stated that immediate action is required. "+
		"Based on the complaint received, a case has been registered for further investigation. "+
		"The complainant has been assured that appropriate legal action will be taken against the accused person(s) as per the provisions of law.",
		or(req.Date, "[DATE]"),
		or(req.Time, "[TIME]"),
		or(req.ComplainantName, "[COMPLAINANT_NAME]"),
		strings.ToLower(or(req.CrimeType, "incident")),
		or(req.Location, "[LOCATION]"),
		strings.Join(req.Keywords, ", "),
	)
}

func fallback(req models.NarrativeRequest) *models.NarrativeDraft {
	return &models.NarrativeDraft{
		Narrative:         fallbackNarrative(req),
		SuggestedSections: SuggestedSections(crimeInfo(req)),
		SuggestedEvidence: SuggestedEvidence(crimeInfo(req)),
		RiskScore:         defaultRisk,
		Summary:           fmt.Sprintf("%s reported at %s", or(req.CrimeType, "Incident"), or(req.Location, "the location")),
		Source:            SourceTemplate,
	}
}

const defaultRisk = 5

var jsonObject = regexp.MustCompile(`(?s)\{.*\}`)

type modelDraft struct {
	Narrative         string   `json:"narrative"`
	SuggestedSections []string `json:"suggestedIPCSections"`
	SuggestedEvidence []string `json:"suggestedEvidence"`
	RiskScore         any      `json:"riskScore"`
	Summary           string   `json:"summary"`
}

// parseDraft reads the JSON object out of a model answer. An answer with no
// usable object is kept as the narrative itself.
func parseDraft(text string, req models.NarrativeRequest) *models.NarrativeDraft {
	var m modelDraft
	if raw := jsonObject.FindString(text); raw != "" {
		err := json.Unmarshal([]byte(raw), &m)
		if err == nil {
			return &models.NarrativeDraft{
				Narrative:         or(m.Narrative, fallbackNarrative(req)),
				SuggestedSections: nonNil(m.SuggestedSections),
				SuggestedEvidence: nonNil(m.SuggestedEvidence),
				RiskScore:         riskScore(m.RiskScore),
				Summary:           or(m.Summary, "Incident reported"),
				Source:            SourceModel,
			}
		}
		zap.S().Debugw("model answer is not a draft object", "error", err)
	}

	d := fallback(req)
	d.Summary = fmt.Sprintf("%s reported at %s", or(req.CrimeType, "Incident"), or(req.Location, "location"))
	if strings.TrimSpace(text) != "" {
		d.Narrative = strings.TrimSpace(text)
		d.Source = SourceModel
	}
	return d
}

var leadingDigits = regexp.MustCompile(`^\s*(\d+)`)

// riskScore accepts a number or a string starting with one. Anything else,
// or a value outside 1..10, gives the default.
func riskScore(v any) int {
	var n int
	switch v := v.(type) {
	case float64:
		n = int(v)
	case string:
		if m := leadingDigits.FindStringSubmatch(v); m != nil {
			n, _ = strconv.Atoi(m[1])
		}
	}
	if n < 1 || n > 10 {
		return defaultRisk
	}
	return n
}

func nonNil(s []string) []string {
	if s == nil {
		return []string{}
	}
	return s
}
