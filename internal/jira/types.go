package jira

import (
	"encoding/json"

	"github.com/dt-pm-tools/jira-stories/internal/adf"
)

// Issue represents a JIRA issue from the REST API v3.
type Issue struct {
	Key    string `json:"key"`
	Fields Fields `json:"fields"`
}

// Fields contains the issue fields we care about. Every field returned by
// the API is also kept raw so custom fields can be looked up by ID.
type Fields struct {
	Summary     string    `json:"summary"`
	Parent      *Parent   `json:"parent,omitempty"`
	Priority    *Priority `json:"priority,omitempty"`
	Assignee    *User     `json:"assignee,omitempty"`
	Reporter    *User     `json:"reporter,omitempty"`
	Description adf.Field `json:"description"`

	Raw map[string]json.RawMessage `json:"-"`
}

// UnmarshalJSON decodes the typed fields and keeps the raw field map.
func (f *Fields) UnmarshalJSON(data []byte) error {
	type alias Fields
	var typed alias
	if err := json.Unmarshal(data, &typed); err != nil {
		return err
	}
	var raw map[string]json.RawMessage
	if err := json.Unmarshal(data, &raw); err != nil {
		return err
	}
	*f = Fields(typed)
	f.Raw = raw
	return nil
}

// Custom returns the raw value of a field by ID (e.g. "customfield_10900").
// ok is false when the key is absent from the response.
func (f Fields) Custom(id string) (json.RawMessage, bool) {
	v, ok := f.Raw[id]
	return v, ok
}

// Parent is the issue's parent link; for stories this is the epic.
type Parent struct {
	Key string `json:"key"`
}

// Priority represents a JIRA priority.
type Priority struct {
	Name string `json:"name"`
}

// User represents a JIRA user.
type User struct {
	EmailAddress string `json:"emailAddress"`
	DisplayName  string `json:"displayName"`
}

// SearchResponse is the response from GET /rest/api/3/search/jql.
type SearchResponse struct {
	Issues        []Issue `json:"issues"`
	NextPageToken string  `json:"nextPageToken,omitempty"`
	IsLast        bool    `json:"isLast,omitempty"`
}
