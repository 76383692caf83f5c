package mock

import (
	"context"
	"sync"

	"github.com/bobinette/knowledgehub"
)

// Assistant answers with the fixed values below, or fails with Err.
type Assistant struct {
	Improved string
	Title    string
	Summary  string
	Tags     []string
	Err      error

	mu    sync.Mutex
	calls []string
}

func (a *Assistant) Improve(ctx context.Context, content, mode string) (string, error) {
	a.record("improve:" + mode)
	if a.Err != nil {
		return "", a.Err
	}
	return a.Improved, nil
}

func (a *Assistant) SuggestTitle(ctx context.Context, content string) (string, error) {
	a.record("title")
	if a.Err != nil {
		return "", a.Err
	}
	return a.Title, nil
}

func (a *Assistant) GenerateSummary(ctx context.Context, content, title string) (string, error) {
	a.record("summary")
	if a.Err != nil {
		return "", a.Err
	}
	return a.Summary, nil
}

func (a *Assistant) SuggestTags(ctx context.Context, content string, category knowledgehub.Category) ([]string, error) {
	a.record("tags:" + string(category))
	if a.Err != nil {
		return nil, a.Err
	}
	return a.Tags, nil
}

// Calls lists the calls received, e.g. "summary" or "improve:clarity".
func (a *Assistant) Calls() []string {
	a.mu.Lock()
	defer a.mu.Unlock()
	return append([]string{}, a.calls...)
}

func (a *Assistant) record(call string) {
	a.mu.Lock()
	defer a.mu.Unlock()
	a.calls = append(a.calls, call)
}
