package matcher

import (
	"context"

	"github.com/douhashi/gzlabeler/internal/train"
	"golang.org/x/sync/errgroup"
)

// Report は全トレインの判定結果
type Report struct {
	Labels  LabelSet
	Results []Result
}

// Aggregator はコレクション、クラシックの順に全トレインを評価する
type Aggregator struct {
	matcher     *Matcher
	catalog     train.Catalog
	concurrency int
}

// AggregatorOption はAggregatorの設定オプション
type AggregatorOption func(*Aggregator)

// WithConcurrency は同時に評価するトレイン数を設定する
func WithConcurrency(n int) AggregatorOption {
	return func(a *Aggregator) {
		if n > 0 {
			a.concurrency = n
		}
	}
}

// NewAggregator は新しいAggregatorを作成する
func NewAggregator(m *Matcher, catalog train.Catalog, opts ...AggregatorOption) *Aggregator {
	a := &Aggregator{
		matcher:     m,
		catalog:     catalog,
		concurrency: 1,
	}
	for _, opt := range opts {
		opt(a)
	}
	return a
}

// Aggregate は全トレインを評価し、一致したラベルを宣言順に返す。
// いずれかのトレインでエラーが発生した場合はラベルを返さない
func (a *Aggregator) Aggregate(ctx context.Context, mc MatchContext) (*Report, error) {
	trains := a.catalog.All()

	var (
		results []Result
		err     error
	)
	if a.concurrency > 1 {
		results, err = a.evaluateConcurrently(ctx, mc, trains)
	} else {
		results, err = a.evaluateSequentially(ctx, mc, trains)
	}
	if err != nil {
		return nil, err
	}

	var labels []string
	for _, r := range results {
		if r.Matched {
			labels = append(labels, r.Train.Label)
		}
	}

	return &Report{
		Labels:  NewLabelSet(labels...),
		Results: results,
	}, nil
}

func (a *Aggregator) evaluateSequentially(ctx context.Context, mc MatchContext, trains []train.Train) ([]Result, error) {
	results := make([]Result, 0, len(trains))
	for _, t := range trains {
		r, err := a.matcher.Match(ctx, mc, t)
		if err != nil {
			return nil, err
		}
		results = append(results, r)
	}
	return results, nil
}

func (a *Aggregator) evaluateConcurrently(ctx context.Context, mc MatchContext, trains []train.Train) ([]Result, error) {
	results := make([]Result, len(trains))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(a.concurrency)
	for i, t := range trains {
		i, t := i, t
		g.Go(func() error {
			r, err := a.matcher.Match(gctx, mc, t)
			if err != nil {
				return err
			}
			results[i] = r
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	return results, nil
}
