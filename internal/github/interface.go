package github

import (
	"context"

	"github.com/douhashi/gzlabeler/internal/manifest"
)

// LabelPublisher はプルリクエストにラベルを付与するインターフェース
type LabelPublisher interface {
	PublishLabels(ctx context.Context, repo RepoRef, number int, labels []string) error
}

// Clientがマニフェスト取得とラベル付与の両方を実装していることをコンパイル時に確認
var (
	_ manifest.Fetcher = (*Client)(nil)
	_ LabelPublisher   = (*Client)(nil)
)
