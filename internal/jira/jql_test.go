package jira

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBuildStoryJQL(t *testing.T) {
	tests := []struct {
		name     string
		project  string
		excluded []string
		want     string
	}{
		{
			name:     "default exclusions",
			project:  "WCX",
			excluded: []string{"Closed", "Cancelled"},
			want:     "project = WCX AND issuetype = Story AND sprint in openSprints() AND status NOT IN (Closed, Cancelled) ORDER BY created DESC",
		},
		{
			name:     "status with spaces is quoted",
			project:  "WCX",
			excluded: []string{"Closed", "Cancelled", "In Testing"},
			want:     `project = WCX AND issuetype = Story AND sprint in openSprints() AND status NOT IN (Closed, Cancelled, "In Testing") ORDER BY created DESC`,
		},
		{
			name:    "no exclusions",
			project: "ABC",
			want:    "project = ABC AND issuetype = Story AND sprint in openSprints() ORDER BY created DESC",
		},
		{
			name:     "quotes are escaped",
			project:  `My "Proj"`,
			excluded: []string{"Done"},
			want:     `project = "My \"Proj\"" AND issuetype = Story AND sprint in openSprints() AND status NOT IN (Done) ORDER BY created DESC`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, BuildStoryJQL(tt.project, tt.excluded))
		})
	}
}

func TestStoryFields(t *testing.T) {
	assert.Equal(t,
		[]string{"summary", "parent", "priority", "assignee", "reporter", "description", "customfield_10900"},
		StoryFields("customfield_10900"))
	assert.NotContains(t, StoryFields(""), "")
}
