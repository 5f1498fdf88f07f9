package models

// FIRDocument is one First Information Report as assembled upstream. The PDF
// generator only reads it.
type FIRDocument struct {
	CaseNumber          string         `json:"caseNumber"`
	DateReported        string         `json:"dateReported"`
	DateOccurred        string         `json:"dateOccurred"`
	TimeOccurred        string         `json:"timeOccurred"`
	Location            string         `json:"location"`
	CrimeType           string         `json:"crimeType"`
	LegalSections       []string       `json:"ipcSections"`
	Complainant         Complainant    `json:"complainant"`
	Accused             []Accused      `json:"accused"`
	IncidentDescription string         `json:"incidentDescription"`
	Evidence            []Evidence     `json:"evidence"`
	Witnesses           []Witness      `json:"witnesses"`
	ActionTaken         string         `json:"actionTaken"`
	FilingOfficer       *FilingOfficer `json:"filingOfficer,omitempty"`
	Signatures          []Signature    `json:"signatures"`
	Station             Station        `json:"station"`
}

// Complainant holds the details of the person lodging the report
type Complainant struct {
	Name       string `json:"name"`
	ParentName string `json:"fatherName"`
	Age        int    `json:"age"`
	Address    string `json:"address"`
	Phone      string `json:"phone"`
	IDProof    string `json:"idProof"`
	IDNumber   string `json:"idNumber"`
}

// Accused holds what is known about one accused person
type Accused struct {
	Name        string `json:"name"`
	Description string `json:"description"`
	Address     string `json:"address"`
	Known       bool   `json:"known"`
}

// Evidence is one checklist item
type Evidence struct {
	Item      string `json:"item"`
	Collected bool   `json:"collected"`
}

// Witness holds a witness's contact details
type Witness struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	Phone   string `json:"phone"`
}

// FilingOfficer is the officer who filed the report, distinct from the
// approval chain
type FilingOfficer struct {
	Name        string `json:"name"`
	Designation string `json:"designation"`
	BadgeNumber string `json:"badgeNumber"`
	Timestamp   string `json:"timestamp"`
}

// Signature is one approval in the sign-off chain
type Signature struct {
	OfficerName     string `json:"officerName"`
	Designation     string `json:"designation"`
	AadhaarVerified bool   `json:"aadhaarVerified"`
	Timestamp       string `json:"timestamp"`
	GPSLocation     string `json:"gpsLocation"`
	CertificateID   string `json:"certificateId"`
}

// Station identifies the police station the report was filed at
type Station struct {
	Name     string `json:"name"`
	Address  string `json:"address"`
	District string `json:"district"`
	State    string `json:"state"`
}
