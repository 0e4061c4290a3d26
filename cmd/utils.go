package cmd

import (
	"os"

	"github.com/douhashi/gzlabeler/internal/action"
	"github.com/douhashi/gzlabeler/internal/config"
	"github.com/douhashi/gzlabeler/internal/github"
	"github.com/douhashi/gzlabeler/internal/logger"
)

// defaultConfigPaths は--config未指定時に探す設定ファイル
var defaultConfigPaths = []string{
	".github/gzlabeler.yml",
	".github/gzlabeler.yaml",
	"gzlabeler.yml",
	"gzlabeler.yaml",
}

// findConfigFile はカレントディレクトリから設定ファイルを探す。見つからなければ空文字列を返す
func findConfigFile() string {
	for _, path := range defaultConfigPaths {
		if info, err := os.Stat(path); err == nil && !info.IsDir() {
			return path
		}
	}
	return ""
}

// backendFactory はGitHubクライアントを作成する関数を返す。テストで差し替える
var backendFactory = func(cfg *config.Config, log logger.Logger) action.BackendFactory {
	return func(token string) (action.Backend, error) {
		opts := append(cfg.ClientOptions(), github.WithLogger(log))
		client, err := github.NewClient(token, opts...)
		if err != nil {
			return nil, err
		}
		return client, nil
	}
}

// newRunner は設定からRunnerを作成する
func newRunner(cfg *config.Config, log logger.Logger, events action.EventSource, opts ...action.Option) (*action.Runner, error) {
	policy, err := cfg.Policy()
	if err != nil {
		return nil, err
	}
	catalog, err := cfg.Catalog()
	if err != nil {
		return nil, err
	}

	base := []action.Option{
		action.WithToken(cfg.GitHub.Token),
		action.WithPolicy(policy),
		action.WithCatalog(catalog),
		action.WithConcurrency(cfg.Match.Concurrency),
		action.WithLogger(log),
	}
	return action.NewRunner(events, backendFactory(cfg, log), append(base, opts...)...), nil
}
