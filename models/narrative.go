package models

// NarrativeRequest carries the officer's notes for a drafted incident narrative
type NarrativeRequest struct {
	// Text is free-form notes. When Keywords is empty the keywords, crime
	// type, place, date and time are picked out of it.
	Text            string   `json:"text,omitempty"`
	Keywords        []string `json:"keywords,omitempty"`
	CrimeType       string   `json:"crimeType,omitempty"`
	Location        string   `json:"location,omitempty"`
	Date            string   `json:"date,omitempty"`
	Time            string   `json:"time,omitempty"`
	ComplainantName string   `json:"complainantName,omitempty"`
	Language        string   `json:"language,omitempty"`
}

// NarrativeDraft is a suggested narrative plus supporting hints. It is only a
// draft; officers copy what they keep into the FIRDocument.
type NarrativeDraft struct {
	Narrative         string   `json:"narrative"`
	SuggestedSections []string `json:"suggestedIPCSections"`
	SuggestedEvidence []string `json:"suggestedEvidence"`
	RiskScore         int      `json:"riskScore"`
	Summary           string   `json:"summary"`
	Source            string   `json:"source"`
}
