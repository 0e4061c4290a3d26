package github

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/douhashi/gzlabeler/internal/logger"
	"github.com/google/go-github/v67/github"
	"golang.org/x/oauth2"
)

// ErrTokenRequired はトークンが指定されていない場合のエラー
var ErrTokenRequired = errors.New("GitHub token is required")

// RepoRef はowner/repoの組
type RepoRef struct {
	Owner string
	Repo  string
}

// String returns owner/repo
func (r RepoRef) String() string {
	return r.Owner + "/" + r.Repo
}

// ParseRepoRef は"owner/repo"形式の文字列をRepoRefに変換する
func ParseRepoRef(s string) (RepoRef, error) {
	owner, repo, ok := strings.Cut(strings.TrimSpace(s), "/")
	if !ok || owner == "" || repo == "" || strings.Contains(repo, "/") {
		return RepoRef{}, fmt.Errorf("invalid repository %q: expected owner/repo", s)
	}
	return RepoRef{Owner: owner, Repo: repo}, nil
}

// DefaultManifestSource はマニフェストを保持するリポジトリ
var DefaultManifestSource = RepoRef{Owner: "ignition-tooling", Repo: "gazebodistro"}

// RepositoriesService はClientが使用するRepositories APIのサブセット
type RepositoriesService interface {
	GetContents(ctx context.Context, owner, repo, path string, opts *github.RepositoryContentGetOptions) (*github.RepositoryContent, []*github.RepositoryContent, *github.Response, error)
}

// IssuesService はClientが使用するIssues APIのサブセット
type IssuesService interface {
	AddLabelsToIssue(ctx context.Context, owner, repo string, number int, labels []string) ([]*github.Label, *github.Response, error)
}

// Client はマニフェストの取得とラベルの付与を行うGitHub APIクライアント
type Client struct {
	repositories RepositoriesService
	issues       IssuesService
	source       RepoRef
	ref          string
	retry        RetryStrategy
	logger       logger.Logger
}

type clientOptions struct {
	baseURL string
	source  RepoRef
	ref     string
	retry   RetryStrategy
	logger  logger.Logger
}

// ClientOption はClientの設定オプション
type ClientOption func(*clientOptions)

// WithBaseURL はAPIのベースURLを設定する (GitHub Enterprise等)
func WithBaseURL(baseURL string) ClientOption {
	return func(o *clientOptions) {
		o.baseURL = baseURL
	}
}

// WithManifestSource はマニフェストを取得するリポジトリとrefを設定する
func WithManifestSource(source RepoRef, ref string) ClientOption {
	return func(o *clientOptions) {
		o.source = source
		o.ref = ref
	}
}

// WithRetryStrategy はリトライ戦略を設定する
func WithRetryStrategy(strategy RetryStrategy) ClientOption {
	return func(o *clientOptions) {
		o.retry = strategy
	}
}

// WithLogger はロガーを設定する
func WithLogger(log logger.Logger) ClientOption {
	return func(o *clientOptions) {
		o.logger = log
	}
}

// NewClient は新しいGitHub APIクライアントを作成する
func NewClient(token string, opts ...ClientOption) (*Client, error) {
	if token == "" {
		return nil, ErrTokenRequired
	}

	o := &clientOptions{
		source: DefaultManifestSource,
		retry:  DefaultRetryStrategy(),
		logger: logger.NewNop(),
	}
	for _, opt := range opts {
		opt(o)
	}

	// oauth2のトランスポートの下でリクエスト/レスポンスをログ出力する
	base := &http.Client{
		Transport: &loggingRoundTripper{
			base:   http.DefaultTransport,
			logger: o.logger,
		},
	}
	ctx := context.WithValue(context.Background(), oauth2.HTTPClient, base)
	ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})

	gh := github.NewClient(oauth2.NewClient(ctx, ts))
	if o.baseURL != "" {
		u, err := url.Parse(o.baseURL)
		if err != nil {
			return nil, fmt.Errorf("invalid GitHub API URL: %w", err)
		}
		if !strings.HasSuffix(u.Path, "/") {
			u.Path += "/"
		}
		gh.BaseURL = u
	}

	return newClientWithServices(gh.Repositories, gh.Issues, o), nil
}

func newClientWithServices(repos RepositoriesService, issues IssuesService, o *clientOptions) *Client {
	if o.logger == nil {
		o.logger = logger.NewNop()
	}
	return &Client{
		repositories: repos,
		issues:       issues,
		source:       o.source,
		ref:          o.ref,
		retry:        o.retry,
		logger:       o.logger,
	}
}

// Source はマニフェストを取得するリポジトリを返す
func (c *Client) Source() RepoRef {
	return c.source
}

// FetchManifest はマニフェストリポジトリからファイルを取得し、デコードしたテキストを返す
func (c *Client) FetchManifest(ctx context.Context, path string) (string, error) {
	if path == "" {
		return "", errors.New("path is required")
	}

	var opts *github.RepositoryContentGetOptions
	if c.ref != "" {
		opts = &github.RepositoryContentGetOptions{Ref: c.ref}
	}

	var file *github.RepositoryContent
	err := RetryWithStrategy(ctx, c.retry, func() error {
		f, _, _, err := c.repositories.GetContents(ctx, c.source.Owner, c.source.Repo, path, opts)
		if err != nil {
			return ClassifyError(err)
		}
		file = f
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("failed to get %s from %s: %w", path, c.source, err)
	}
	if file == nil {
		return "", fmt.Errorf("%s in %s is a directory", path, c.source)
	}

	content, err := file.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode %s: %w", path, err)
	}

	c.logger.Debug("manifest fetched",
		"repository", c.source.String(),
		"path", path,
		"sha", file.GetSHA(),
		"bytes", len(content),
	)

	return content, nil
}

// PublishLabels はプルリクエストにラベルを追加する
func (c *Client) PublishLabels(ctx context.Context, repo RepoRef, number int, labels []string) error {
	if repo.Owner == "" {
		return errors.New("owner is required")
	}
	if repo.Repo == "" {
		return errors.New("repo is required")
	}
	if number <= 0 {
		return fmt.Errorf("invalid pull request number: %d", number)
	}
	if len(labels) == 0 {
		return errors.New("labels are required")
	}

	err := RetryWithStrategy(ctx, c.retry, func() error {
		_, _, err := c.issues.AddLabelsToIssue(ctx, repo.Owner, repo.Repo, number, labels)
		return ClassifyError(err)
	})
	if err != nil {
		return fmt.Errorf("failed to add labels to %s#%d: %w", repo, number, err)
	}

	c.logger.Info("labels added",
		"repository", repo.String(),
		"pull_request", number,
		"labels", labels,
	)

	return nil
}
