package narrative

import (
	"regexp"
	"strings"
	"time"

	"github.com/linesmerrill/fir-document-api/models"
)

type hint struct {
	key    string
	values []string
}

// checked in order, first match wins
var sectionHints = []hint{
	{"theft", []string{"379 - Theft", "380 - Theft in dwelling house", "411 - Dishonestly receiving stolen property"}},
	{"robbery", []string{"392 - Robbery", "397 - Robbery with attempt to cause death", "398 - Attempt to commit robbery"}},
	{"assault", []string{"323 - Voluntarily causing hurt", "324 - Voluntarily causing hurt by dangerous weapons", "325 - Voluntarily causing grievous hurt"}},
	{"murder", []string{"302 - Murder", "307 - Attempt to murder", "304 - Culpable homicide"}},
	{"cyber", []string{"420 - Cheating", "467 - Forgery of valuable security", "468 - Forgery for purpose of cheating", "471 - Using forged document as genuine"}},
	{"domestic", []string{"498A - Cruelty by husband or relatives", "323 - Voluntarily causing hurt", "506 - Criminal intimidation"}},
	{"fraud", []string{"420 - Cheating", "406 - Criminal breach of trust", "467 - Forgery"}},
	{"kidnapping", []string{"363 - Kidnapping", "365 - Kidnapping with intent to secretly confine", "366 - Kidnapping woman to compel marriage"}},
	{"missing", []string{"363 - Kidnapping", "365 - Wrongful confinement", "366 - Kidnapping/abducting woman"}},
	{"accident", []string{"279 - Rash driving", "337 - Causing hurt by act endangering life", "338 - Causing grievous hurt", "304A - Causing death by negligence"}},
	{"rape", []string{"376 - Rape", "354 - Assault on woman with intent to outrage modesty", "509 - Word, gesture or act intended to insult modesty"}},
	{"chain", []string{"392 - Robbery", "356 - Assault in attempt to commit theft", "379 - Theft"}},
	{"mobile", []string{"379 - Theft", "411 - Dishonestly receiving stolen property"}},
	{"vehicle", []string{"379 - Theft", "411 - Dishonestly receiving stolen property", "413 - Habitually dealing in stolen property"}},
}

var defaultSections = []string{
	"154 CrPC - Information in cognizable cases",
	"156 CrPC - Police officer's power to investigate",
}

// SuggestedSections returns legal sections usually registered for the
// described offence
func SuggestedSections(crime string) []string {
	crime = strings.ToLower(crime)
	for _, h := range sectionHints {
		if strings.Contains(crime, h.key) {
			return clone(h.values)
		}
	}
	return clone(defaultSections)
}

var baseEvidence = []string{
	"Complainant statement (written and recorded)",
	"Identity proof of complainant",
	"Photographs of the scene",
}

type evidenceHint struct {
	keys  []string
	items []string
}

var evidenceHints = []evidenceHint{
	{
		keys: []string{"theft", "robbery", "mobile", "vehicle"},
		items: []string{
			"CCTV footage from nearby areas",
			"List of stolen items with estimated value",
			"Purchase receipts/bills of stolen items",
			"Witness statements",
			"IMEI number (for mobile theft)",
		},
	},
	{
		keys: []string{"cyber", "fraud"},
		items: []string{
			"Screenshots of fraudulent messages/calls",
			"Bank transaction records",
			"Email headers and communication logs",
			"Device logs and IP addresses",
			"UPI/Payment app transaction history",
		},
	},
	{
		keys: []string{"assault", "domestic"},
		items: []string{
			"Medical examination report",
			"Injury photographs",
			"Witness statements",
			"Previous complaint records (if any)",
			"Audio/video recordings (if available)",
		},
	},
	{
		keys: []string{"accident"},
		items: []string{
			"Vehicle registration documents",
			"Driver's license",
			"Insurance documents",
			"Medical reports of injured",
			"Traffic camera footage",
			"Witness statements",
			"Sketch of accident scene",
		},
	},
}

var defaultEvidence = []string{
	"CCTV footage (if available)",
	"Witness statements",
	"Any documentary evidence",
	"Physical evidence from scene",
}

// SuggestedEvidence lists what should be collected for the described offence
func SuggestedEvidence(crime string) []string {
	crime = strings.ToLower(crime)
	items := defaultEvidence
outer:
	for _, h := range evidenceHints {
		for _, key := range h.keys {
			if strings.Contains(crime, key) {
				items = h.items
				break outer
			}
		}
	}
	return append(clone(baseEvidence), items...)
}

var crimeTypes = []struct{ key, crimeType string }{
	{"theft", "Theft"},
	{"robbery", "Robbery"},
	{"stolen", "Theft"},
	{"assault", "Assault"},
	{"beat", "Assault"},
	{"hit", "Assault"},
	{"murder", "Murder"},
	{"kill", "Murder"},
	{"fraud", "Fraud"},
	{"scam", "Cyber Fraud"},
	{"cyber", "Cyber Crime"},
	{"online", "Cyber Crime"},
	{"domestic", "Domestic Violence"},
	{"wife", "Domestic Violence"},
	{"husband", "Domestic Violence"},
	{"accident", "Road Accident"},
	{"vehicle", "Vehicle Theft"},
	{"car", "Vehicle Theft"},
	{"bike", "Vehicle Theft"},
	{"mobile", "Mobile Theft"},
	{"phone", "Mobile Theft"},
	{"missing", "Missing Person"},
	{"kidnap", "Kidnapping"},
	{"chain", "Chain Snatching"},
	{"gold", "Robbery/Theft"},
	{"jewelry", "Robbery/Theft"},
}

// DetectCrimeType guesses the offence from free text. It returns "" when
// nothing matches.
func DetectCrimeType(text string) string {
	text = strings.ToLower(text)
	for _, c := range crimeTypes {
		if strings.Contains(text, c.key) {
			return c.crimeType
		}
	}
	return ""
}

var (
	locationPatterns = []*regexp.Regexp{
		regexp.MustCompile(`(?i)\b(?:at|near|in)\s+([A-Za-z\s]+(?:market|road|street|area|colony|nagar|puram|station|mall|shop|store|house|building|office|bank|hospital))`),
		regexp.MustCompile(`(?i)([A-Za-z]+\s*(?:Central|East|West|North|South))`),
		regexp.MustCompile(`(?i)(Vijayawada|Guntur|Visakhapatnam|Hyderabad|Tirupati|Rajahmundry|Nellore|Kakinada)`),
	}
	datePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2}[/\-]\d{1,2}[/\-]\d{2,4})`),
		regexp.MustCompile(`(?i)(today|yesterday|last\s+(?:night|week|month))`),
		regexp.MustCompile(`(?i)(\d{1,2}(?:st|nd|rd|th)?\s+(?:January|February|March|April|May|June|July|August|September|October|November|December))`),
	}
	timePatterns = []*regexp.Regexp{
		regexp.MustCompile(`(\d{1,2}(?::\d{2})?\s*(?:am|pm|AM|PM))`),
		regexp.MustCompile(`(\d{1,2}:\d{2})`),
		regexp.MustCompile(`(?i)(morning|afternoon|evening|night|midnight|noon)`),
	}
	keywordSeparators = regexp.MustCompile(`[,\s]+`)
)

func firstMatch(patterns []*regexp.Regexp, text string) string {
	for _, p := range patterns {
		if m := p.FindStringSubmatch(text); m != nil {
			return strings.TrimSpace(m[1])
		}
	}
	return ""
}

// FromText fills a request from free-form notes such as
// "mobile snatched near central market yesterday 6:30 pm". Relative dates
// are resolved against now.
func FromText(text string, now time.Time) models.NarrativeRequest {
	in := models.NarrativeRequest{
		CrimeType: DetectCrimeType(text),
		Location:  firstMatch(locationPatterns, text),
		Time:      firstMatch(timePatterns, text),
	}
	for _, k := range keywordSeparators.Split(text, -1) {
		if k = strings.TrimSpace(k); k != "" {
			in.Keywords = append(in.Keywords, k)
		}
	}

	date := firstMatch(datePatterns, text)
	switch strings.ToLower(date) {
	case "today":
		date = now.Format("02/01/2006")
	case "yesterday":
		date = now.AddDate(0, 0, -1).Format("02/01/2006")
	}
	in.Date = date
	return in
}

func clone(s []string) []string {
	return append([]string(nil), s...)
}
