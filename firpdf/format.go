package firpdf

import (
	"time"
	"unicode/utf8"
)

var dateLayouts = []string{
	"2006-01-02",
	time.RFC3339,
	"2006-01-02T15:04:05",
	"2006-01-02 15:04:05",
}

func parseDate(s string) (time.Time, bool) {
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, s); err == nil {
			return t, true
		}
	}
	return time.Time{}, false
}

// FormatDate renders an ISO-like date as "02 January 2006". Input it cannot
// parse is returned unchanged.
func FormatDate(s string) string {
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	return t.Format("02 January 2006")
}

// FormatDateTime renders an ISO-like timestamp in loc with the time of day.
// Input it cannot parse is returned unchanged.
func FormatDateTime(s string, loc *time.Location) string {
	t, ok := parseDate(s)
	if !ok {
		return s
	}
	return formatTime(t, loc)
}

func formatTime(t time.Time, loc *time.Location) string {
	if loc != nil {
		t = t.In(loc)
	}
	return t.Format("02 Jan 2006, 03:04:05 pm")
}

// MaskPhone keeps only the last four characters of a phone number
func MaskPhone(phone string) string {
	return mask(phone, "XXX-XXX-")
}

// MaskID keeps only the last four characters of an identity document number
func MaskID(id string) string {
	return mask(id, "XXXX-XXXX-")
}

func mask(s, placeholder string) string {
	if s == "" {
		return "N/A"
	}
	n := utf8.RuneCountInString(s)
	if n < 4 {
		return s
	}
	r := []rune(s)
	return placeholder + string(r[n-4:])
}
