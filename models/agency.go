package models

// Agency describes the police organisation whose branding goes on every
// generated document
type Agency struct {
	Name        string   `json:"name" yaml:"name"`
	EmblemLines []string `json:"emblemLines" yaml:"emblemLines"`
	Domain      string   `json:"domain" yaml:"domain"`
	TimeZone    string   `json:"timeZone" yaml:"timeZone"`
}

// DefaultAgency returns the Andhra Pradesh Police profile
func DefaultAgency() Agency {
	return Agency{
		Name:        "ANDHRA PRADESH POLICE",
		EmblemLines: []string{"AP", "POLICE"},
		Domain:      "appolice.gov.in",
		TimeZone:    "Asia/Kolkata",
	}
}

// WithDefaults fills any empty field from DefaultAgency
func (a Agency) WithDefaults() Agency {
	d := DefaultAgency()
	if a.Name == "" {
		a.Name = d.Name
	}
	if len(a.EmblemLines) == 0 {
		a.EmblemLines = d.EmblemLines
	}
	if a.Domain == "" {
		a.Domain = d.Domain
	}
	if a.TimeZone == "" {
		a.TimeZone = d.TimeZone
	}
	return a
}
