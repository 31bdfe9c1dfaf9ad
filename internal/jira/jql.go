package jira

import (
	"fmt"
	"strings"
)

// StoryFields returns the issue fields needed to normalize a story, including
// the acceptance criteria custom field.
func StoryFields(acceptanceField string) []string {
	fields := []string{"summary", "parent", "priority", "assignee", "reporter", "description"}
	if acceptanceField != "" {
		fields = append(fields, acceptanceField)
	}
	return fields
}

// BuildStoryJQL returns the query for open stories in the project's active
// sprints, newest first.
func BuildStoryJQL(project string, excludedStatuses []string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "project = %s AND issuetype = Story AND sprint in openSprints()", quoteValue(project))

	if len(excludedStatuses) > 0 {
		quoted := make([]string, 0, len(excludedStatuses))
		for _, s := range excludedStatuses {
			quoted = append(quoted, quoteValue(s))
		}
		fmt.Fprintf(&b, " AND status NOT IN (%s)", strings.Join(quoted, ", "))
	}

	b.WriteString(" ORDER BY created DESC")
	return b.String()
}

// quoteValue quotes a JQL value when it is not a bare word.
func quoteValue(v string) string {
	v = strings.TrimSpace(v)
	if v != "" && !strings.ContainsAny(v, " \t\"'(),=!<>~") {
		return v
	}
	return `"` + strings.ReplaceAll(v, `"`, `\"`) + `"`
}
