package mock

import (
	"context"

	"github.com/fwojciec/jdoc2md"
)

var _ jdoc2md.PageLoader = (*PageLoader)(nil)

// PageLoader is a mock implementation of jdoc2md.PageLoader.
type PageLoader struct {
	LoadPagesFn func(ctx context.Context) (*jdoc2md.PageSet, error)
}

func (l *PageLoader) LoadPages(ctx context.Context) (*jdoc2md.PageSet, error) {
	return l.LoadPagesFn(ctx)
}

var _ jdoc2md.PageMatcher = (*PageMatcher)(nil)

// PageMatcher is a mock implementation of jdoc2md.PageMatcher.
type PageMatcher struct {
	MatchFn func(path string) bool
}

func (m *PageMatcher) Match(path string) bool {
	return m.MatchFn(path)
}
