package action

import (
	"context"
	"encoding/json"
	"fmt"
	"os"

	"github.com/douhashi/gzlabeler/internal/github"
	gh "github.com/google/go-github/v67/github"
)

// PullRequestContext はイベントから取り出した1件のプルリクエストの情報
type PullRequestContext struct {
	// Repository はラベルを付与するリポジトリ
	Repository github.RepoRef
	// Number はプルリクエスト番号
	Number int
	// Library はリポジトリ名 (マニフェストのキー)
	Library string
	// Target はベースブランチ名
	Target string
}

// EventSource はプルリクエストの情報を読み込むインターフェース。
// イベントにプルリクエストが含まれない場合はnil, nilを返す
type EventSource interface {
	Load(ctx context.Context) (*PullRequestContext, error)
}

// FileEventSource はGitHub Actionsのイベントペイロードファイルを読み込む
type FileEventSource struct {
	// Path はイベントペイロードのパス (GITHUB_EVENT_PATH)
	Path string
	// Repository はowner/repo形式のリポジトリ (GITHUB_REPOSITORY)
	Repository string
}

// NewFileEventSourceFromEnv はActionsの環境変数からFileEventSourceを作成する
func NewFileEventSourceFromEnv() *FileEventSource {
	return &FileEventSource{
		Path:       os.Getenv("GITHUB_EVENT_PATH"),
		Repository: os.Getenv("GITHUB_REPOSITORY"),
	}
}

// Load はイベントペイロードを読み込む
func (s *FileEventSource) Load(ctx context.Context) (*PullRequestContext, error) {
	if s.Path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(s.Path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("failed to read event payload: %w", err)
	}

	var event gh.PullRequestEvent
	if err := json.Unmarshal(data, &event); err != nil {
		return nil, fmt.Errorf("failed to decode event payload %s: %w", s.Path, err)
	}
	if event.PullRequest == nil {
		return nil, nil
	}

	repo, err := s.destination(&event)
	if err != nil {
		return nil, err
	}

	number := event.PullRequest.GetNumber()
	if number == 0 {
		number = event.GetNumber()
	}
	if number <= 0 {
		return nil, fmt.Errorf("pull request number is missing in %s", s.Path)
	}

	library := event.GetRepo().GetName()
	if library == "" {
		library = repo.Repo
	}

	return &PullRequestContext{
		Repository: repo,
		Number:     number,
		Library:    library,
		Target:     event.PullRequest.GetBase().GetRef(),
	}, nil
}

// destination はGITHUB_REPOSITORYを優先し、無ければペイロードのリポジトリを使う
func (s *FileEventSource) destination(event *gh.PullRequestEvent) (github.RepoRef, error) {
	if s.Repository != "" {
		return github.ParseRepoRef(s.Repository)
	}

	repo := event.GetRepo()
	if repo.GetOwner().GetLogin() == "" || repo.GetName() == "" {
		return github.RepoRef{}, fmt.Errorf("repository is missing in %s", s.Path)
	}
	return github.RepoRef{Owner: repo.GetOwner().GetLogin(), Repo: repo.GetName()}, nil
}

// StaticEventSource は固定のプルリクエスト情報を返す (ローカル実行用)
type StaticEventSource struct {
	Context *PullRequestContext
}

// Load は保持しているプルリクエスト情報を返す
func (s StaticEventSource) Load(ctx context.Context) (*PullRequestContext, error) {
	return s.Context, nil
}
