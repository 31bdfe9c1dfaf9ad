package pipeline

import (
	"context"
	"encoding/json"
	"errors"
	"testing"

	"github.com/dt-pm-tools/jira-stories/internal/assistant"
	"github.com/dt-pm-tools/jira-stories/internal/config"
	"github.com/dt-pm-tools/jira-stories/internal/jira"
	"github.com/dt-pm-tools/jira-stories/internal/story"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"
)

type fakeSource struct {
	issues []jira.Issue
	err    error

	gotJQL    string
	gotFields []string
}

func (f *fakeSource) SearchIssues(_ context.Context, jql string, fields []string) ([]jira.Issue, error) {
	f.gotJQL = jql
	f.gotFields = fields
	return f.issues, f.err
}

type fakeSink struct {
	run   *assistant.Run
	err   error
	calls []string

	gotAssistant string
}

func (f *fakeSink) CreateThreadAndRun(_ context.Context, assistantID, content string) (*assistant.Run, error) {
	f.gotAssistant = assistantID
	f.calls = append(f.calls, content)
	return f.run, f.err
}

func testConfig() config.Config {
	return config.Config{
		Project:          "WCX",
		ExcludedStatuses: []string{"Closed", "Cancelled"},
		AcceptanceField:  "customfield_10900",
		QA:               "QA Team",
		AssistantID:      "asst_1",
	}
}

func testIssues(t *testing.T) []jira.Issue {
	t.Helper()
	var resp jira.SearchResponse
	require.NoError(t, json.Unmarshal([]byte(`{"issues":[
		{"key":"WCX-2","fields":{"summary":"second newest","description":{"content":[{"text":"first desc"}]}}},
		{"key":"WCX-1","fields":{"summary":"older"}}
	]}`), &resp))
	return resp.Issues
}

func TestFetch(t *testing.T) {
	src := &fakeSource{issues: testIssues(t)}
	p := New(testConfig(), src, nil, zaptest.NewLogger(t))

	records, err := p.Fetch(context.Background())
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "project = WCX AND issuetype = Story AND sprint in openSprints() AND status NOT IN (Closed, Cancelled) ORDER BY created DESC", src.gotJQL)
	assert.Contains(t, src.gotFields, "customfield_10900")
	assert.Equal(t, "WCX-2", records[0].Story)
	assert.Equal(t, "first desc", records[0].Description)
	assert.Equal(t, story.DefaultDescription, records[1].Description)
	assert.Equal(t, "QA Team", records[1].QA)
}

func TestFetch_SourceError(t *testing.T) {
	boom := errors.New("boom")
	p := New(testConfig(), &fakeSource{err: boom}, nil, nil)

	_, err := p.Fetch(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
}

func TestForward_SendsOnlyFirstRecord(t *testing.T) {
	sink := &fakeSink{run: &assistant.Run{ID: "run_1", Status: "queued"}}
	p := New(testConfig(), &fakeSource{issues: testIssues(t)}, sink, zaptest.NewLogger(t))

	res, err := p.Forward(context.Background(), false)
	require.NoError(t, err)

	require.Len(t, sink.calls, 1)
	assert.Equal(t, "asst_1", sink.gotAssistant)
	assert.Equal(t, res.Payload, sink.calls[0])
	assert.Equal(t, "WCX-2", res.Record.Story)
	assert.Equal(t, "run_1", res.Run.ID)

	var sent map[string]string
	require.NoError(t, json.Unmarshal([]byte(sink.calls[0]), &sent))
	assert.Equal(t, "WCX-2", sent["User Story #"])
	assert.Equal(t, story.DefaultAcceptanceCriteria, sent["Acceptance Criteria"])
}

func TestForward_DryRun(t *testing.T) {
	sink := &fakeSink{}
	p := New(testConfig(), &fakeSource{issues: testIssues(t)}, sink, nil)

	res, err := p.Forward(context.Background(), true)
	require.NoError(t, err)
	assert.Empty(t, sink.calls)
	assert.Nil(t, res.Run)
	assert.Contains(t, res.Payload, `"User Story #":"WCX-2"`)
}

func TestForward_NoStories(t *testing.T) {
	sink := &fakeSink{}
	p := New(testConfig(), &fakeSource{}, sink, nil)

	_, err := p.Forward(context.Background(), false)
	assert.ErrorIs(t, err, ErrNoStories)
	assert.Empty(t, sink.calls)
}

func TestForward_SinkError(t *testing.T) {
	boom := errors.New("assistant down")
	p := New(testConfig(), &fakeSource{issues: testIssues(t)}, &fakeSink{err: boom}, nil)

	_, err := p.Forward(context.Background(), false)
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Contains(t, err.Error(), "forwarding WCX-2")
}

func TestForward_NoSink(t *testing.T) {
	p := New(testConfig(), &fakeSource{issues: testIssues(t)}, nil, nil)

	_, err := p.Forward(context.Background(), false)
	assert.Error(t, err)
}
