package github

import (
	"context"
	"time"

	"github.com/sethvargo/go-retry"
)

// RetryStrategy defines the retry behavior for GitHub API operations
type RetryStrategy struct {
	MaxAttempts  int
	InitialDelay time.Duration
	MaxDelay     time.Duration
	// JitterPercent は待機時間に加える揺らぎ (±%)
	JitterPercent uint64
}

// DefaultRetryStrategy returns a default retry strategy
func DefaultRetryStrategy() RetryStrategy {
	return RetryStrategy{
		MaxAttempts:   3,
		InitialDelay:  1 * time.Second,
		MaxDelay:      30 * time.Second,
		JitterPercent: 25,
	}
}

// NewRetryStrategy は試行回数と初回待機時間を指定したリトライ戦略を返す
func NewRetryStrategy(maxAttempts int, initialDelay time.Duration) RetryStrategy {
	rs := DefaultRetryStrategy()
	rs.MaxAttempts = maxAttempts
	rs.InitialDelay = initialDelay
	if rs.MaxDelay < initialDelay {
		rs.MaxDelay = initialDelay
	}
	return rs
}

// NoRetry returns a strategy that executes the operation once
func NoRetry() RetryStrategy {
	return RetryStrategy{MaxAttempts: 1}
}

// Backoff は指数バックオフ (ジッター、上限、リトライ回数付き) を作成する。
// 状態を持つため呼び出しごとに作成する
func (rs RetryStrategy) Backoff() retry.Backoff {
	var b retry.Backoff
	if rs.InitialDelay > 0 {
		b = retry.NewExponential(rs.InitialDelay)
	} else {
		b = retry.BackoffFunc(func() (time.Duration, bool) { return 0, false })
	}
	if rs.JitterPercent > 0 {
		b = retry.WithJitterPercent(rs.JitterPercent, b)
	}
	if rs.MaxDelay > 0 {
		b = retry.WithCappedDuration(rs.MaxDelay, b)
	}

	retries := uint64(0)
	if rs.MaxAttempts > 1 {
		retries = uint64(rs.MaxAttempts - 1)
	}
	return retry.WithMaxRetries(retries, b)
}

// RetryWithStrategy executes a function with retry logic.
// リトライ可能なGitHubErrorのみ再実行し、RetryAfterがあればMaxDelayを上限に優先する
func RetryWithStrategy(ctx context.Context, strategy RetryStrategy, operation func() error) error {
	var wait time.Duration

	base := strategy.Backoff()
	backoff := retry.BackoffFunc(func() (time.Duration, bool) {
		next, stop := base.Next()
		if stop {
			return 0, true
		}
		if wait > 0 {
			next = wait
			if strategy.MaxDelay > 0 && next > strategy.MaxDelay {
				next = strategy.MaxDelay
			}
		}
		return next, false
	})

	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		err := operation()
		wait = retryAfter(err)
		return MarkRetryable(err)
	})
}
