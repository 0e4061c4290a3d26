package github

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/google/go-github/v67/github"
	"github.com/sethvargo/go-retry"
)

// GitHubErrorType represents the type of GitHub API error
type GitHubErrorType int

const (
	// ErrorTypeRateLimit indicates rate limit exceeded
	ErrorTypeRateLimit GitHubErrorType = iota
	// ErrorTypeNetworkTimeout indicates network timeout
	ErrorTypeNetworkTimeout
	// ErrorTypeAuthentication indicates authentication failure
	ErrorTypeAuthentication
	// ErrorTypeNotFound indicates resource not found
	ErrorTypeNotFound
	// ErrorTypeServerError indicates server error (5xx)
	ErrorTypeServerError
	// ErrorTypeUnknown indicates unknown error type
	ErrorTypeUnknown
)

// String returns the string representation of the error type
func (t GitHubErrorType) String() string {
	switch t {
	case ErrorTypeRateLimit:
		return "RateLimit"
	case ErrorTypeNetworkTimeout:
		return "NetworkTimeout"
	case ErrorTypeAuthentication:
		return "Authentication"
	case ErrorTypeNotFound:
		return "NotFound"
	case ErrorTypeServerError:
		return "ServerError"
	default:
		return "Unknown"
	}
}

// GitHubError represents a structured GitHub API error
type GitHubError struct {
	Type        GitHubErrorType
	StatusCode  int
	Message     string
	RetryAfter  time.Duration
	OriginalErr error
}

// Error implements the error interface
func (e *GitHubError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("GitHub API error [%s %d]: %s", e.Type, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("GitHub API error [%s]: %s", e.Type, e.Message)
}

// Unwrap returns the original error
func (e *GitHubError) Unwrap() error {
	return e.OriginalErr
}

// IsRetryable returns true if the error is retryable
func (e *GitHubError) IsRetryable() bool {
	switch e.Type {
	case ErrorTypeRateLimit, ErrorTypeNetworkTimeout, ErrorTypeServerError:
		return true
	default:
		return false
	}
}

// ClassifyError はgo-githubのエラーをGitHubErrorに変換する
func ClassifyError(err error) error {
	if err == nil {
		return nil
	}

	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		return err
	}

	// キャンセルやタイムアウトは呼び出し側の都合なのでそのまま返す
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return err
	}

	classified := &GitHubError{
		Type:        ErrorTypeUnknown,
		Message:     err.Error(),
		OriginalErr: err,
	}

	var rateErr *github.RateLimitError
	var abuseErr *github.AbuseRateLimitError
	var respErr *github.ErrorResponse
	var netErr net.Error

	switch {
	case errors.As(err, &rateErr):
		classified.Type = ErrorTypeRateLimit
		classified.Message = rateErr.Message
		classified.StatusCode = statusCode(rateErr.Response)
		if wait := time.Until(rateErr.Rate.Reset.Time); wait > 0 {
			classified.RetryAfter = wait
		}

	case errors.As(err, &abuseErr):
		classified.Type = ErrorTypeRateLimit
		classified.Message = abuseErr.Message
		classified.StatusCode = statusCode(abuseErr.Response)
		classified.RetryAfter = abuseErr.GetRetryAfter()

	case errors.As(err, &respErr):
		classified.Message = respErr.Message
		classified.StatusCode = statusCode(respErr.Response)
		classified.Type = typeForStatus(classified.StatusCode)

	case errors.As(err, &netErr):
		classified.Type = ErrorTypeNetworkTimeout
	}

	return classified
}

func statusCode(resp *http.Response) int {
	if resp == nil {
		return 0
	}
	return resp.StatusCode
}

func typeForStatus(code int) GitHubErrorType {
	switch {
	case code == http.StatusUnauthorized || code == http.StatusForbidden:
		return ErrorTypeAuthentication
	case code == http.StatusNotFound:
		return ErrorTypeNotFound
	case code == http.StatusTooManyRequests:
		return ErrorTypeRateLimit
	case code >= 500 && code < 600:
		return ErrorTypeServerError
	default:
		return ErrorTypeUnknown
	}
}

// MarkRetryable はリトライ可能なGitHubErrorをretry.RetryableErrorで包む。
// それ以外のエラーはそのまま返す
func MarkRetryable(err error) error {
	var ghErr *GitHubError
	if errors.As(err, &ghErr) && ghErr.IsRetryable() {
		return retry.RetryableError(err)
	}
	return err
}

// retryAfter はエラーが指定する待機時間を返す
func retryAfter(err error) time.Duration {
	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		return ghErr.RetryAfter
	}
	return 0
}

// IsRateLimitError checks if the error is a rate limit error
func IsRateLimitError(err error) bool {
	return hasType(err, ErrorTypeRateLimit)
}

// IsNotFoundError checks if the error is a not found error
func IsNotFoundError(err error) bool {
	return hasType(err, ErrorTypeNotFound)
}

// IsAuthenticationError checks if the error is an authentication error
func IsAuthenticationError(err error) bool {
	return hasType(err, ErrorTypeAuthentication)
}

func hasType(err error, t GitHubErrorType) bool {
	var ghErr *GitHubError
	if errors.As(err, &ghErr) {
		return ghErr.Type == t
	}
	return false
}
