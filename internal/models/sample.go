package models

// EcgSample is one ECG recording in the pool. LabelIDs keeps the association
// order from import; element 0 is treated as the sample's primary label when
// attributing past performance.
type EcgSample struct {
	ID         string   `bson:"_id,omitempty" json:"id"`
	SamplePath string   `bson:"sample_path" json:"sample_path"`
	Gender     string   `bson:"gender,omitempty" json:"gender,omitempty"`
	Age        int      `bson:"age,omitempty" json:"age,omitempty"`
	LabelIDs   []string `bson:"label_ids" json:"label_ids"`
}

// PrimaryLabelID returns the label used for performance attribution, or ""
// when the sample carries no labels.
func (s *EcgSample) PrimaryLabelID() string {
	if len(s.LabelIDs) == 0 {
		return ""
	}
	return s.LabelIDs[0]
}

// Eligible reports whether the sample can appear in a generated quiz.
func (s *EcgSample) Eligible() bool {
	return len(s.LabelIDs) > 0
}

// DiagnosticLabel is a SNOMED-style coded diagnosis. LabelDesc is globally
// unique and is what quiz choices display.
type DiagnosticLabel struct {
	ID        string `bson:"_id,omitempty" json:"id"`
	LabelCode int    `bson:"label_code" json:"label_code"`
	LabelDesc string `bson:"label_desc" json:"label_desc"`
}
