package narrative

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDetectCrimeType(t *testing.T) {
	assert.Equal(t, "Theft", DetectCrimeType("bag stolen from bus"))
	assert.Equal(t, "Cyber Fraud", DetectCrimeType("UPI scam call"))
	assert.Equal(t, "Road Accident", DetectCrimeType("Accident at junction"))
	assert.Equal(t, "", DetectCrimeType("noise complaint"))
}

func TestSuggestedSectionsOrder(t *testing.T) {
	// theft is checked before mobile
	assert.Equal(t, "379 - Theft", SuggestedSections("Mobile Theft")[0])
	assert.Len(t, SuggestedSections("Mobile Theft"), 3)
	assert.Len(t, SuggestedSections("mobile snatched"), 2)
}

func TestSuggestedSectionsReturnsCopy(t *testing.T) {
	s := SuggestedSections("murder")
	s[0] = "changed"
	assert.Equal(t, "302 - Murder", SuggestedSections("murder")[0])
}

func TestSuggestedEvidence(t *testing.T) {
	e := SuggestedEvidence("online fraud")
	assert.Equal(t, "Complainant statement (written and recorded)", e[0])
	assert.Contains(t, e, "Bank transaction records")
	assert.Len(t, e, 8)

	e = SuggestedEvidence("trespass")
	assert.Contains(t, e, "Physical evidence from scene")
	assert.Len(t, e, 7)
}

func TestFromText(t *testing.T) {
	now := time.Date(2026, 1, 2, 9, 0, 0, 0, time.UTC)

	in := FromText("bike stolen in Gandhi nagar yesterday night", now)
	// stolen is checked before bike
	assert.Equal(t, "Theft", in.CrimeType)
	assert.Equal(t, "Gandhi nagar", in.Location)
	assert.Equal(t, "01/01/2026", in.Date)
	assert.Equal(t, "night", in.Time)
	assert.Equal(t, []string{"bike", "stolen", "in", "Gandhi", "nagar", "yesterday", "night"}, in.Keywords)

	in = FromText("phone lost 12/03/2026, 10:30", now)
	assert.Equal(t, "12/03/2026", in.Date)
	assert.Equal(t, "10:30", in.Time)
	assert.Equal(t, "", in.Location)
}
