package certificate

// DocumentType enum (Colombian identity document types)
type DocumentType string

const (
	DocTypeCC DocumentType = "CC" // cédula de ciudadanía
	DocTypeCE DocumentType = "CE" // cédula de extranjería
	DocTypeTI DocumentType = "TI" // tarjeta de identidad
	DocTypePA DocumentType = "PA" // pasaporte
	DocTypeRC DocumentType = "RC" // registro civil
	DocTypeMS DocumentType = "MS" // menor sin identificación
)

// Claims holds the structured fields extracted from a medical-leave
// certificate. Every field is best-effort: the extraction collaborator may
// leave any of them empty, and an empty field is never itself an error.
type Claims struct {
	PatientName        string       `json:"patient_name,omitempty"`
	PatientDocType     DocumentType `json:"patient_doc_type,omitempty"`
	PatientDocNumber   string       `json:"patient_doc_number,omitempty"`
	PhysicianName      string       `json:"physician_name,omitempty"`
	PhysicianDocType   DocumentType `json:"physician_doc_type,omitempty"`
	PhysicianDocNumber string       `json:"physician_doc_number,omitempty"`
	PhysicianLicense   string       `json:"physician_license,omitempty"`
	PayerName          string       `json:"payer_name,omitempty"`
	DiagnosisCode      string       `json:"diagnosis_code,omitempty"`
	DiagnosisText      string       `json:"diagnosis_text,omitempty"`
	// LeaveDays is kept as the raw extracted string; it may be non-numeric
	// or empty and the validator degrades accordingly.
	LeaveDays      string `json:"leave_days,omitempty"`
	LeaveStartDate string `json:"leave_start_date,omitempty"`
	LeaveEndDate   string `json:"leave_end_date,omitempty"`
}

// ForensicAttributes carries the document-level forensic metadata produced by
// the extraction side. The verification core passes them through unchanged;
// it never re-derives them.
type ForensicAttributes struct {
	Creator          string   `json:"creator,omitempty"`
	Producer         string   `json:"producer,omitempty"`
	CreationDate     string   `json:"creation_date,omitempty"`
	ModificationDate string   `json:"modification_date,omitempty"`
	FontCount        int      `json:"font_count"`
	ImageCount       int      `json:"image_count"`
	Alerts           []string `json:"alerts,omitempty"`
}

// Extraction is the pair the front door hands to the engine: one certificate's
// claims plus its forensic metadata.
type Extraction struct {
	Claims   Claims             `json:"claims"`
	Forensic ForensicAttributes `json:"forensic"`
}
