package matcher

import (
	"context"
	"errors"
	"testing"

	"github.com/douhashi/gzlabeler/internal/manifest"
	"github.com/douhashi/gzlabeler/internal/train"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func allPaths() []string {
	return []string{
		"collection-citadel.yaml",
		"collection-fortress.yaml",
		"collection-garden.yaml",
		"gazebo9.yaml",
		"gazebo11.yaml",
	}
}

func TestAggregator_Aggregate(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: citadelのみ一致する", func(t *testing.T) {
		files := emptyDistro()
		files["collection-citadel.yaml"] = manifestYAML(map[string]string{"gz-math": "gz-math7"})
		files["collection-fortress.yaml"] = manifestYAML(map[string]string{"gz-math": "gz-math8"})
		f := newFakeFetcher(files)

		a := NewAggregator(NewMatcher(f, DefaultPolicy(), nil), train.DefaultCatalog())
		report, err := a.Aggregate(ctx, MatchContext{Library: "gz-math", Target: "gz-math7"})
		require.NoError(t, err)

		assert.Equal(t, []string{"🏰 citadel"}, report.Labels.Labels())
		assert.Len(t, report.Results, 5)
	})

	t.Run("正常系: フォールバック後のmainブランチが一致する", func(t *testing.T) {
		files := emptyDistro()
		files["collection-garden.yaml"] = manifestYAML(map[string]string{"ign-launch": "main"})
		f := newFakeFetcher(files)

		a := NewAggregator(NewMatcher(f, DefaultPolicy(), nil), train.DefaultCatalog())
		report, err := a.Aggregate(ctx, MatchContext{Library: "gz-launch", Target: "main"})
		require.NoError(t, err)

		assert.Equal(t, []string{"🌱 garden"}, report.Labels.Labels())
		assert.True(t, report.Results[2].Renamed)
	})

	t.Run("正常系: フォールバックの名前はクラシックに引き継がれない", func(t *testing.T) {
		files := emptyDistro()
		files["collection-citadel.yaml"] = manifestYAML(map[string]string{"ign-launch": "main"})
		files["gazebo11.yaml"] = manifestYAML(map[string]string{"ign-launch": "main"})
		f := newFakeFetcher(files)

		a := NewAggregator(NewMatcher(f, DefaultPolicy(), nil), train.DefaultCatalog())
		report, err := a.Aggregate(ctx, MatchContext{Library: "gz-launch", Target: "main"})
		require.NoError(t, err)

		assert.Equal(t, []string{"🏰 citadel"}, report.Labels.Labels())
	})

	t.Run("正常系: 正規化ポリシーで一致する", func(t *testing.T) {
		files := emptyDistro()
		files["collection-citadel.yaml"] = manifestYAML(map[string]string{"gz-math": "citadel-7"})
		f := newFakeFetcher(files)

		a := NewAggregator(NewMatcher(f, NormalizedPolicy(), nil), train.DefaultCatalog())
		report, err := a.Aggregate(ctx, MatchContext{Library: "gz-math", Target: "citadel-7"})
		require.NoError(t, err)

		assert.Equal(t, []string{"🏰 citadel"}, report.Labels.Labels())
	})

	t.Run("正常系: どのトレインにも無い場合は空", func(t *testing.T) {
		f := newFakeFetcher(emptyDistro())

		a := NewAggregator(NewMatcher(f, DefaultPolicy(), nil), train.DefaultCatalog())
		report, err := a.Aggregate(ctx, MatchContext{Library: "foo", Target: "foo"})
		require.NoError(t, err)

		assert.True(t, report.Labels.IsEmpty())
		assert.Equal(t, allPaths(), f.Calls())
	})

	t.Run("正常系: 一致後も全トレインを評価し宣言順に並ぶ", func(t *testing.T) {
		files := map[string]string{}
		for _, p := range allPaths() {
			files[p] = manifestYAML(map[string]string{"sdformat": "sdf9"})
		}
		f := newFakeFetcher(files)

		a := NewAggregator(NewMatcher(f, DefaultPolicy(), nil), train.DefaultCatalog())
		report, err := a.Aggregate(ctx, MatchContext{Library: "sdformat", Target: "sdf9"})
		require.NoError(t, err)

		assert.Equal(t, []string{
			"🏰 citadel",
			"🏯 fortress",
			"🌱 garden",
			"Gazebo 9️",
			"Gazebo 1️1️",
		}, report.Labels.Labels())
		assert.Equal(t, allPaths(), f.Calls())
	})

	t.Run("正常系: 同名のトレインは重複したまま返る", func(t *testing.T) {
		catalog, err := train.NewCatalog(
			[]train.Definition{{Name: "garden", Label: "garden"}},
			[]train.Definition{{Name: "garden", Label: "garden"}},
		)
		require.NoError(t, err)
		f := newFakeFetcher(map[string]string{
			"collection-garden.yaml": manifestYAML(map[string]string{"gz-sim": "gz-sim7"}),
			"garden.yaml":            manifestYAML(map[string]string{"gz-sim": "gz-sim7"}),
		})

		a := NewAggregator(NewMatcher(f, DefaultPolicy(), nil), catalog)
		report, err := a.Aggregate(ctx, MatchContext{Library: "gz-sim", Target: "gz-sim7"})
		require.NoError(t, err)

		assert.Equal(t, []string{"garden", "garden"}, report.Labels.Labels())
	})

	t.Run("異常系: gazebo9のパース失敗で全体が失敗する", func(t *testing.T) {
		files := emptyDistro()
		files["collection-citadel.yaml"] = manifestYAML(map[string]string{"gz-math": "gz-math7"})
		files["gazebo9.yaml"] = "repositories: [broken\n"
		f := newFakeFetcher(files)

		a := NewAggregator(NewMatcher(f, DefaultPolicy(), nil), train.DefaultCatalog())
		report, err := a.Aggregate(ctx, MatchContext{Library: "gz-math", Target: "gz-math7"})
		require.Error(t, err)
		assert.Nil(t, report)
		assert.Contains(t, err.Error(), "gazebo9")

		var parseErr *manifest.ParseError
		assert.True(t, errors.As(err, &parseErr))
		assert.NotContains(t, f.Calls(), "gazebo11.yaml")
	})
}

func TestAggregator_Aggregate_Concurrent(t *testing.T) {
	ctx := context.Background()

	t.Run("正常系: 並列評価でも宣言順に並ぶ", func(t *testing.T) {
		files := map[string]string{}
		for _, p := range allPaths() {
			files[p] = manifestYAML(map[string]string{"sdformat": "sdf9"})
		}
		f := newFakeFetcher(files)

		a := NewAggregator(NewMatcher(f, DefaultPolicy(), nil), train.DefaultCatalog(), WithConcurrency(5))
		report, err := a.Aggregate(ctx, MatchContext{Library: "sdformat", Target: "sdf9"})
		require.NoError(t, err)

		assert.Equal(t, []string{
			"🏰 citadel",
			"🏯 fortress",
			"🌱 garden",
			"Gazebo 9️",
			"Gazebo 1️1️",
		}, report.Labels.Labels())
		assert.ElementsMatch(t, allPaths(), f.Calls())
		for i, r := range report.Results {
			assert.Equal(t, train.DefaultCatalog().All()[i], r.Train)
		}
	})

	t.Run("異常系: 並列評価でも1つの失敗で全体が失敗する", func(t *testing.T) {
		files := emptyDistro()
		files["collection-citadel.yaml"] = manifestYAML(map[string]string{"gz-math": "gz-math7"})
		f := newFakeFetcher(files)
		f.errors["gazebo9.yaml"] = errors.New("unexpected EOF")

		a := NewAggregator(NewMatcher(f, DefaultPolicy(), nil), train.DefaultCatalog(), WithConcurrency(3))
		report, err := a.Aggregate(ctx, MatchContext{Library: "gz-math", Target: "gz-math7"})
		require.Error(t, err)
		assert.Nil(t, report)
	})

	t.Run("正常系: 0以下の並列数は無視される", func(t *testing.T) {
		a := NewAggregator(nil, train.Catalog{}, WithConcurrency(0))
		assert.Equal(t, 1, a.concurrency)
	})
}
