package github

import (
	"net/http"
	"strings"
	"time"

	"github.com/douhashi/gzlabeler/internal/logger"
)

// loggingRoundTripper はGitHub APIへのリクエスト/レスポンスをログ出力するラウンドトリッパー
type loggingRoundTripper struct {
	base   http.RoundTripper
	logger logger.Logger
}

// RoundTrip はHTTPリクエストを実行し、結果をデバッグログに出力する
func (rt *loggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	fields := []interface{}{
		"method", req.Method,
		"url", req.URL.String(),
	}
	if scheme := authScheme(req.Header.Get("Authorization")); scheme != "" {
		fields = append(fields, "auth_scheme", scheme)
	}
	rt.logger.Debug("github_api_request", fields...)

	resp, err := rt.base.RoundTrip(req)
	duration := time.Since(start)
	if err != nil {
		rt.logger.Error("github_api_error",
			"method", req.Method,
			"url", req.URL.String(),
			"duration_ms", duration.Milliseconds(),
			"error", err.Error(),
		)
		return nil, err
	}

	respFields := []interface{}{
		"status_code", resp.StatusCode,
		"duration_ms", duration.Milliseconds(),
	}
	if remaining := resp.Header.Get("X-RateLimit-Remaining"); remaining != "" {
		respFields = append(respFields, "rate_limit_remaining", remaining)
	}
	if reset := resp.Header.Get("X-RateLimit-Reset"); reset != "" {
		respFields = append(respFields, "rate_limit_reset", reset)
	}
	rt.logger.Debug("github_api_response", respFields...)

	return resp, nil
}

// authScheme はAuthorizationヘッダーのスキーム部分のみを返す
func authScheme(auth string) string {
	if auth == "" {
		return ""
	}
	scheme, _, found := strings.Cut(auth, " ")
	if !found {
		return "[REDACTED]"
	}
	return scheme
}
