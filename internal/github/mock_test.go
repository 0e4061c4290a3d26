package github

import (
	"context"
	"time"

	"github.com/google/go-github/v67/github"
	"github.com/stretchr/testify/mock"
)

// mockRepositoriesService はRepositoriesServiceのモック
type mockRepositoriesService struct {
	mock.Mock
}

func (m *mockRepositoriesService) GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error) {
	args := m.Called(ctx, owner, repo, path, opts)
	var file *github.RepositoryContent
	if v := args.Get(0); v != nil {
		file = v.(*github.RepositoryContent)
	}
	var dir []*github.RepositoryContent
	if v := args.Get(1); v != nil {
		dir = v.([]*github.RepositoryContent)
	}
	return file, dir, nil, args.Error(2)
}

// mockIssuesService はIssuesServiceのモック
type mockIssuesService struct {
	mock.Mock
}

func (m *mockIssuesService) AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error) {
	args := m.Called(ctx, owner, repo, number, labels)
	return nil, nil, args.Error(0)
}

func fastRetry(attempts int) RetryStrategy {
	return RetryStrategy{
		MaxAttempts:  attempts,
		InitialDelay: time.Millisecond,
		MaxDelay:     5 * time.Millisecond,
	}
}
