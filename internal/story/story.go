// Package story reduces Jira issues to flat records that can be handed to an
// assistant as plain JSON.
package story

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/dt-pm-tools/jira-stories/internal/adf"
	"github.com/dt-pm-tools/jira-stories/internal/config"
	"github.com/dt-pm-tools/jira-stories/internal/jira"
)

// Defaults used when a rich-text field has nothing to offer.
const (
	DefaultDescription        = "No description provided."
	DefaultAcceptanceCriteria = "No acceptance criteria provided."
)

// Record is the normalized form of one user story. Field order is the
// serialized key order.
type Record struct {
	Epic               string `json:"Epic #"              yaml:"Epic #"`
	Story              string `json:"User Story #"        yaml:"User Story #"`
	Title              string `json:"Title"               yaml:"Title"`
	Description        string `json:"Description"         yaml:"Description"`
	AcceptanceCriteria string `json:"Acceptance Criteria" yaml:"Acceptance Criteria"`
	Priority           string `json:"Priority"            yaml:"Priority"`
	Developer          string `json:"Developer"           yaml:"Developer"`
	QA                 string `json:"QA"                  yaml:"QA"`
	ProductOwner       string `json:"Product Owner"       yaml:"Product Owner"`
}

// JSON returns the record as compact JSON text.
func (r Record) JSON() (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(r); err != nil {
		return "", fmt.Errorf("encoding record %s: %w", r.Story, err)
	}
	return string(bytes.TrimRight(buf.Bytes(), "\n")), nil
}

// Normalizer maps Jira issues to records.
type Normalizer struct {
	// AcceptanceField is the custom field ID holding acceptance criteria.
	AcceptanceField string
	// QA is copied verbatim into every record.
	QA string
}

// NewNormalizer returns a Normalizer configured from cfg.
func NewNormalizer(cfg config.Config) Normalizer {
	field := cfg.AcceptanceField
	if field == "" {
		field = config.DefaultAcceptanceField
	}
	return Normalizer{AcceptanceField: field, QA: cfg.QA}
}

// Normalize maps one issue to a record. Missing nested objects yield empty
// values rather than an error.
func (n Normalizer) Normalize(issue jira.Issue) Record {
	f := issue.Fields

	rec := Record{
		Story:              issue.Key,
		Title:              f.Summary,
		Description:        f.Description.Text(),
		AcceptanceCriteria: n.acceptanceCriteria(f),
		QA:                 n.QA,
	}
	if rec.Description == "" {
		rec.Description = DefaultDescription
	}
	if f.Parent != nil {
		rec.Epic = f.Parent.Key
	}
	if f.Priority != nil {
		rec.Priority = f.Priority.Name
	}
	if f.Assignee != nil {
		rec.Developer = f.Assignee.DisplayName
	}
	if f.Reporter != nil {
		rec.ProductOwner = f.Reporter.DisplayName
	}
	return rec
}

// The default applies only when the field is absent (or null); a present
// field with no text yields an empty string.
func (n Normalizer) acceptanceCriteria(f jira.Fields) string {
	raw, ok := f.Custom(n.AcceptanceField)
	if !ok {
		return DefaultAcceptanceCriteria
	}
	field := adf.ParseField(raw)
	if !field.Present {
		return DefaultAcceptanceCriteria
	}
	return field.Text()
}

// NormalizeAll maps issues to records, preserving order.
func (n Normalizer) NormalizeAll(issues []jira.Issue) []Record {
	records := make([]Record, 0, len(issues))
	for _, issue := range issues {
		records = append(records, n.Normalize(issue))
	}
	return records
}
