// Package mocks provides testify based mocks of the GitHub collaborators.
package mocks

import (
	"context"

	"github.com/douhashi/gzlabeler/internal/github"
	"github.com/stretchr/testify/mock"
)

// MockFetcher is a mock implementation of manifest.Fetcher
type MockFetcher struct {
	mock.Mock
}

// NewMockFetcher creates a new MockFetcher
func NewMockFetcher() *MockFetcher {
	return &MockFetcher{}
}

// FetchManifest mocks the FetchManifest method
func (m *MockFetcher) FetchManifest(ctx context.Context, path string) (string, error) {
	args := m.Called(ctx, path)
	return args.String(0), args.Error(1)
}

// WithManifest sets up a successful fetch for the given path
func (m *MockFetcher) WithManifest(path, content string) *MockFetcher {
	m.On("FetchManifest", mock.Anything, path).Return(content, nil)
	return m
}

// MockPublisher is a mock implementation of github.LabelPublisher
type MockPublisher struct {
	mock.Mock
}

// NewMockPublisher creates a new MockPublisher
func NewMockPublisher() *MockPublisher {
	return &MockPublisher{}
}

// PublishLabels mocks the PublishLabels method
func (m *MockPublisher) PublishLabels(ctx context.Context, repo github.RepoRef, number int, labels []string) error {
	args := m.Called(ctx, repo, number, labels)
	return args.Error(0)
}

// MockBackend combines MockFetcher and MockPublisher
type MockBackend struct {
	*MockFetcher
	*MockPublisher
}

// NewMockBackend creates a new MockBackend
func NewMockBackend() *MockBackend {
	return &MockBackend{
		MockFetcher:   NewMockFetcher(),
		MockPublisher: NewMockPublisher(),
	}
}

// AssertExpectations asserts expectations on both mocks
func (m *MockBackend) AssertExpectations(t mock.TestingT) bool {
	ok := m.MockFetcher.AssertExpectations(t)
	return m.MockPublisher.AssertExpectations(t) && ok
}
