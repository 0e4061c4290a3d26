package matcher

import (
	"context"
	"fmt"

	"github.com/douhashi/gzlabeler/internal/logger"
	"github.com/douhashi/gzlabeler/internal/manifest"
	"github.com/douhashi/gzlabeler/internal/train"
)

// MatchContext は1回の実行の入力
type MatchContext struct {
	// Library は評価対象のリポジトリ名 (例: gz-math)
	Library string
	// Target はプルリクエストのベースブランチ名 (例: gz-math7)
	Target string
}

// Result は1トレインの判定結果
type Result struct {
	Train train.Train
	// Library は実際にマニフェストで見つかったライブラリ名
	Library string
	Entry   manifest.LibraryEntry
	Found   bool
	Renamed bool
	Matched bool
}

// Matcher はトレインのマニフェストとライブラリのバージョンを照合する
type Matcher struct {
	fetcher manifest.Fetcher
	policy  MatchPolicy
	logger  logger.Logger
}

// NewMatcher は新しいMatcherを作成する
func NewMatcher(fetcher manifest.Fetcher, policy MatchPolicy, log logger.Logger) *Matcher {
	return &Matcher{
		fetcher: fetcher,
		policy:  policy,
		logger:  log,
	}
}

// Policy は使用中のポリシーを返す
func (m *Matcher) Policy() MatchPolicy {
	return m.policy
}

// Match はトレインのマニフェストを取得して判定する
func (m *Matcher) Match(ctx context.Context, mc MatchContext, t train.Train) (Result, error) {
	result := Result{Train: t}

	mf, err := manifest.Load(ctx, m.fetcher, t.ManifestPath())
	if err != nil {
		return result, fmt.Errorf("train %s: %w", t.Name, err)
	}

	library := mc.Library
	entry, found := mf.Lookup(library)

	// gz→ignの改名前の名前はコレクションのマニフェストにのみ残っている
	if !found && t.Kind == train.KindCollection {
		if renamed, ok := m.policy.Rename(library); ok {
			if e, ok := mf.Lookup(renamed); ok {
				library, entry, found = renamed, e, true
				result.Renamed = true
			}
		}
	}

	if !found {
		m.debug("library not tracked by train",
			"train", t.Name,
			"library", mc.Library,
		)
		return result, nil
	}

	result.Library = library
	result.Entry = entry
	result.Found = true
	result.Matched = entry.HasVersion() && m.policy.Equal(entry.Version, mc.Target)

	m.debug("train evaluated",
		"train", t.Name,
		"library", library,
		"version", entry.Version,
		"target", mc.Target,
		"matched", result.Matched,
	)

	return result, nil
}

func (m *Matcher) debug(msg string, keysAndValues ...interface{}) {
	if m.logger != nil {
		m.logger.Debug(msg, keysAndValues...)
	}
}
