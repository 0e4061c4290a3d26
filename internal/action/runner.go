package action

import (
	"context"
	"errors"
	"fmt"

	"github.com/douhashi/gzlabeler/internal/github"
	"github.com/douhashi/gzlabeler/internal/logger"
	"github.com/douhashi/gzlabeler/internal/manifest"
	"github.com/douhashi/gzlabeler/internal/matcher"
	"github.com/douhashi/gzlabeler/internal/train"
)

// Backend はマニフェストの取得とラベルの付与を行う外部サービス
type Backend interface {
	manifest.Fetcher
	github.LabelPublisher
}

// BackendFactory はトークンからBackendを作成する
type BackendFactory func(token string) (Backend, error)

// Runner はイベントの読み込みからラベルの付与までを1回実行する
type Runner struct {
	events      EventSource
	factory     BackendFactory
	token       string
	policy      matcher.MatchPolicy
	catalog     train.Catalog
	concurrency int
	dryRun      bool
	workflow    *Workflow
	logger      logger.Logger
}

// Option はRunnerの設定オプション
type Option func(*Runner)

// WithToken はGitHubトークンを設定する
func WithToken(token string) Option {
	return func(r *Runner) {
		r.token = token
	}
}

// WithPolicy は判定ポリシーを設定する
func WithPolicy(policy matcher.MatchPolicy) Option {
	return func(r *Runner) {
		r.policy = policy
	}
}

// WithCatalog は評価するトレイン一覧を設定する
func WithCatalog(catalog train.Catalog) Option {
	return func(r *Runner) {
		r.catalog = catalog
	}
}

// WithConcurrency は同時に評価するトレイン数を設定する
func WithConcurrency(n int) Option {
	return func(r *Runner) {
		r.concurrency = n
	}
}

// WithDryRun はラベルを付与せずに判定のみ行う
func WithDryRun(dryRun bool) Option {
	return func(r *Runner) {
		r.dryRun = dryRun
	}
}

// WithWorkflow はワークフローコマンドの出力先を設定する
func WithWorkflow(wf *Workflow) Option {
	return func(r *Runner) {
		r.workflow = wf
	}
}

// WithLogger はロガーを設定する
func WithLogger(log logger.Logger) Option {
	return func(r *Runner) {
		r.logger = log
	}
}

// NewRunner は新しいRunnerを作成する
func NewRunner(events EventSource, factory BackendFactory, opts ...Option) *Runner {
	r := &Runner{
		events:      events,
		factory:     factory,
		policy:      matcher.DefaultPolicy(),
		catalog:     train.DefaultCatalog(),
		concurrency: 1,
		logger:      logger.NewNop(),
	}
	for _, opt := range opts {
		opt(r)
	}
	if r.logger == nil {
		r.logger = logger.NewNop()
	}
	return r
}

// Run はプルリクエストに付与すべきラベルを判定し、付与する
func (r *Runner) Run(ctx context.Context) (Outcome, error) {
	if r.events == nil {
		return nil, errors.New("event source is required")
	}
	if r.factory == nil {
		return nil, errors.New("backend factory is required")
	}

	pr, err := r.events.Load(ctx)
	if err != nil {
		return nil, err
	}
	if pr == nil {
		r.debug("Labeler action must be run for pull requests.")
		return NotApplicable{Reason: "event has no pull request"}, nil
	}

	if r.token == "" {
		r.debug("Failed to get token")
		return MissingCredential{}, nil
	}

	backend, err := r.factory(r.token)
	if err != nil {
		return nil, fmt.Errorf("failed to create GitHub client: %w", err)
	}

	log := r.logger.WithFields(
		"library", pr.Library,
		"target", pr.Target,
	)
	m := matcher.NewMatcher(backend, r.policy, log)
	agg := matcher.NewAggregator(m, r.catalog, matcher.WithConcurrency(r.concurrency))

	report, err := agg.Aggregate(ctx, matcher.MatchContext{Library: pr.Library, Target: pr.Target})
	if err != nil {
		return nil, err
	}

	outcome := Ran{
		PullRequest: *pr,
		Labels:      report.Labels,
		Results:     report.Results,
	}

	if report.Labels.IsEmpty() {
		log.Info("no train matched")
		return outcome, nil
	}
	if r.dryRun {
		log.Info("labels matched (dry run)", "labels", report.Labels.Labels())
		return outcome, nil
	}

	r.debug(fmt.Sprintf("Adding labels: %s to PR [%d]", report.Labels, pr.Number))
	if err := backend.PublishLabels(ctx, pr.Repository, pr.Number, report.Labels.Labels()); err != nil {
		return nil, err
	}
	outcome.Published = true

	return outcome, nil
}

func (r *Runner) debug(msg string) {
	r.logger.Debug(msg)
	r.workflow.Debug(msg)
}
