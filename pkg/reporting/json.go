package reporting

import (
	"encoding/json"
	"os"
	"time"
)

// AuditSnapshot is the JSON shape of a full audit export.
type AuditSnapshot struct {
	GeneratedAt  time.Time           `json:"generated_at"`
	DenialCount  int                 `json:"denial_count"`
	Denials      []DenialRecord      `json:"denials"`
	StateChanges []StateChangeRecord `json:"state_changes"`
}

// JSONReporter writes the denial audit as an indented JSON document.
type JSONReporter struct{}

// NewJSONReporter creates a JSON reporter.
func NewJSONReporter() *JSONReporter {
	return &JSONReporter{}
}

// FormatAudit renders the audit snapshot as indented JSON bytes.
func (r *JSONReporter) FormatAudit(denials []DenialRecord, states []StateChangeRecord) ([]byte, error) {
	snapshot := AuditSnapshot{
		GeneratedAt:  time.Now().UTC(),
		DenialCount:  len(denials),
		Denials:      denials,
		StateChanges: states,
	}
	return json.MarshalIndent(snapshot, "", "  ")
}

// WriteAuditJSON writes the audit snapshot to path.
func (r *JSONReporter) WriteAuditJSON(denials []DenialRecord, states []StateChangeRecord, path string) error {
	data, err := r.FormatAudit(denials, states)
	if err != nil {
		return err
	}
	if err := EnsureParentDir(path); err != nil {
		return err
	}
	return os.WriteFile(path, data, 0644)
}
