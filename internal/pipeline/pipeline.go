// Package pipeline fetches open stories, normalizes them, and forwards the
// first one to an assistant thread.
package pipeline

import (
	"context"
	"errors"
	"fmt"

	"github.com/dt-pm-tools/jira-stories/internal/assistant"
	"github.com/dt-pm-tools/jira-stories/internal/config"
	"github.com/dt-pm-tools/jira-stories/internal/jira"
	"github.com/dt-pm-tools/jira-stories/internal/story"
	"go.uber.org/zap"
)

// ErrNoStories is returned by Forward when the search matched nothing.
var ErrNoStories = errors.New("no open stories found")

// IssueSource searches an issue tracker.
type IssueSource interface {
	SearchIssues(ctx context.Context, jql string, fields []string) ([]jira.Issue, error)
}

// ThreadStarter starts an assistant run on a new thread.
type ThreadStarter interface {
	CreateThreadAndRun(ctx context.Context, assistantID, content string) (*assistant.Run, error)
}

// Pipeline wires the issue source, normalizer and assistant together.
type Pipeline struct {
	cfg        config.Config
	source     IssueSource
	sink       ThreadStarter
	normalizer story.Normalizer
	logger     *zap.Logger
}

// New creates a Pipeline. sink may be nil when only fetching.
func New(cfg config.Config, source IssueSource, sink ThreadStarter, logger *zap.Logger) *Pipeline {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Pipeline{
		cfg:        cfg,
		source:     source,
		sink:       sink,
		normalizer: story.NewNormalizer(cfg),
		logger:     logger.Named("pipeline"),
	}
}

// Result is the outcome of Forward.
type Result struct {
	Record story.Record
	// Payload is the JSON text sent as the thread's user message.
	Payload string
	// Run is nil on a dry run.
	Run *assistant.Run
}

// Fetch searches for open stories and normalizes every match.
func (p *Pipeline) Fetch(ctx context.Context) ([]story.Record, error) {
	jql := jira.BuildStoryJQL(p.cfg.Project, p.cfg.ExcludedStatuses)
	fields := jira.StoryFields(p.normalizer.AcceptanceField)

	issues, err := p.source.SearchIssues(ctx, jql, fields)
	if err != nil {
		return nil, fmt.Errorf("searching stories: %w", err)
	}
	p.logger.Info("fetched stories", zap.String("project", p.cfg.Project), zap.Int("count", len(issues)))

	return p.normalizer.NormalizeAll(issues), nil
}

// Forward fetches stories and starts an assistant thread with the first
// record. With dryRun set the assistant is not called.
func (p *Pipeline) Forward(ctx context.Context, dryRun bool) (*Result, error) {
	records, err := p.Fetch(ctx)
	if err != nil {
		return nil, err
	}
	if len(records) == 0 {
		return nil, ErrNoStories
	}

	first := records[0]
	payload, err := first.JSON()
	if err != nil {
		return nil, err
	}
	result := &Result{Record: first, Payload: payload}

	if dryRun {
		p.logger.Debug("dry run, not forwarding", zap.String("story", first.Story))
		return result, nil
	}
	if p.sink == nil {
		return nil, errors.New("no assistant configured")
	}

	run, err := p.sink.CreateThreadAndRun(ctx, p.cfg.AssistantID, payload)
	if err != nil {
		return nil, fmt.Errorf("forwarding %s: %w", first.Story, err)
	}
	result.Run = run
	return result, nil
}
