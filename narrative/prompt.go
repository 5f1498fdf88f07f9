package narrative

import (
	"fmt"
	"strings"

	"github.com/linesmerrill/fir-document-api/models"
)

const promptTemplate = `You are an expert police FIR (First Information Report) writer for the %s in India. Generate a professional, legally appropriate FIR narrative based on the following information.

KEYWORDS/DETAILS PROVIDED:
%s

LANGUAGE: %s

Please generate the following in JSON format:
{
  "narrative": "A detailed, professional FIR narrative paragraph (150-250 words) written in formal police language. Include all relevant details, time, place, and circumstances of the incident. Use phrases like 'The complainant stated that...' and 'As per the statement recorded...'",
  "suggestedIPCSections": ["Array of relevant IPC section numbers with brief descriptions"],
  "suggestedEvidence": ["Array of evidence that should be collected for this type of case"],
  "riskScore": "A number from 1-10 indicating the severity/urgency of the case",
  "summary": "A one-line summary of the incident (max 20 words)"
}

Important Guidelines:
1. Use formal police report language
2. Be factual and objective
3. Include placeholders like [COMPLAINANT_NAME] if name not provided
4. Mention relevant IPC/BNS sections
5. The narrative should be suitable for an official police document
6. If the language is Hindi or Telugu, generate the narrative in that language but keep section names in English

Generate ONLY the JSON response, no additional text.`

func buildPrompt(agency string, req models.NarrativeRequest) string {
	details := []string{strings.Join(req.Keywords, ", ")}
	for _, d := range []struct{ label, value string }{
		{"Crime Type", req.CrimeType},
		{"Location", req.Location},
		{"Date", req.Date},
		{"Time", req.Time},
		{"Complainant", req.ComplainantName},
	} {
		if d.value != "" {
			details = append(details, d.label+": "+d.value)
		}
	}
	return fmt.Sprintf(promptTemplate, agency, strings.Join(details, "\n"), language(req))
}

func language(req models.NarrativeRequest) string {
	switch l := strings.ToLower(req.Language); l {
	case "hindi", "telugu":
		return l
	}
	return "english"
}
