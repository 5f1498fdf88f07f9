package models

// SampleFIR returns a fully populated report used for previews and tests
func SampleFIR() FIRDocument {
	return FIRDocument{
		CaseNumber:    "AP-2026-VJA-00234",
		DateReported:  "2026-01-02",
		DateOccurred:  "2026-01-01",
		TimeOccurred:  "18:30",
		Location:      "Central Market, MG Road, Vijayawada",
		CrimeType:     "Theft - Mobile Phone",
		LegalSections: []string{"379", "380", "411"},
		Complainant: Complainant{
			Name:       "Rajesh Kumar Sharma",
			ParentName: "Suresh Kumar Sharma",
			Age:        35,
			Address:    "H.No. 12-4-56, Gandhi Nagar, Vijayawada, Krishna District, Andhra Pradesh - 520001",
			Phone:      "9876543210",
			IDProof:    "Aadhaar Card",
			IDNumber:   "1234-5678-9012",
		},
		Accused: []Accused{
			{
				Name:        "Unknown",
				Description: "Male, approximately 25-30 years old, medium build, wearing red shirt and black jeans, fled on a black motorcycle",
				Known:       false,
			},
		},
		IncidentDescription: `On 01-01-2026 at approximately 18:30 hours, the complainant Shri Rajesh Kumar Sharma appeared at the police station and lodged the following complaint:

The complainant stated that he was walking through Central Market, MG Road, Vijayawada when an unknown person on a black motorcycle snatched his mobile phone (Samsung Galaxy S23 Ultra, Black color, IMEI: 123456789012345) worth approximately Rs. 1,25,000/- from his hand and fled towards the railway station side.

The complainant immediately raised an alarm but the accused managed to escape. The complainant then approached this police station to lodge the complaint.

Based on the complaint received, a case has been registered under sections 379 and 380 of IPC for investigation. The matter is under investigation.`,
		Evidence: []Evidence{
			{Item: "Written complaint from complainant", Collected: true},
			{Item: "CCTV footage from nearby shops", Collected: true},
			{Item: "Mobile purchase bill/receipt", Collected: true},
			{Item: "IMEI documentation", Collected: true},
			{Item: "Witness statements", Collected: false},
			{Item: "Photographs of incident location", Collected: true},
		},
		Witnesses: []Witness{
			{Name: "Venkat Rao", Address: "Shop No. 45, Central Market, Vijayawada", Phone: "9988776655"},
			{Name: "Lakshmi Devi", Address: "H.No. 8-2-34, MG Road, Vijayawada", Phone: "9877665544"},
		},
		ActionTaken: `1. FIR has been registered under sections 379, 380 of IPC.
2. Scene of crime has been visited and inspected.
3. CCTV footage from nearby establishments has been collected.
4. Mobile IMEI has been blocked through CEIR portal.
5. Alert has been circulated to all nearby police stations.
6. Investigation is in progress.`,
		FilingOfficer: &FilingOfficer{
			Name:        "K. Suresh Kumar",
			Designation: "Constable",
			BadgeNumber: "PC-1234",
			Timestamp:   "2026-01-02T10:45:23+05:30",
		},
		Signatures: []Signature{
			{
				OfficerName:     "K. Suresh Kumar",
				Designation:     "Constable (PC-1234)",
				AadhaarVerified: true,
				Timestamp:       "02-01-2026 10:45:23",
				GPSLocation:     "16.5062° N, 80.6480° E",
				CertificateID:   "DSC-AP-2026-001234",
			},
			{
				OfficerName:     "R. Venkata Rao",
				Designation:     "Sub Inspector (SI)",
				AadhaarVerified: true,
				Timestamp:       "02-01-2026 11:30:15",
				GPSLocation:     "16.5062° N, 80.6480° E",
				CertificateID:   "DSC-AP-2026-005678",
			},
			{
				OfficerName:     "P. Lakshmi Narayana",
				Designation:     "Circle Inspector (CI)",
				AadhaarVerified: true,
				Timestamp:       "02-01-2026 14:15:42",
				GPSLocation:     "16.5062° N, 80.6480° E",
				CertificateID:   "DSC-AP-2026-009012",
			},
		},
		Station: Station{
			Name:     "Vijayawada Central Police Station",
			Address:  "Police Station Road, Governorpet",
			District: "Krishna District",
			State:    "Andhra Pradesh - 520002",
		},
	}
}
