package logger

import (
	"regexp"
	"strings"
)

const masked = "***MASKED***"

// センシティブなキーのパターン（大文字小文字を区別しない）
var sensitiveKeyPatterns = []string{
	"token",
	"secret",
	"password",
	"authorization",
	"credential",
	"github_token",
	"access_token",
}

// GitHubのトークン形式 (ghp_, ghs_, ghu_, gho_, ghr_, github_pat_)
var tokenValuePattern = regexp.MustCompile(`^(ghp|ghs|ghu|gho|ghr)_[A-Za-z0-9]{20,}$|^github_pat_[A-Za-z0-9_]{20,}$`)

var authValuePattern = regexp.MustCompile(`(?i)^(Bearer|token)\s+\S{20,}$`)

// SanitizeArgs はログ引数（key-valueペア）のセンシティブな値をマスクする
func SanitizeArgs(args ...interface{}) []interface{} {
	if len(args) == 0 {
		return args
	}

	sanitized := make([]interface{}, len(args))
	copy(sanitized, args)

	for i := 0; i < len(sanitized)-1; i += 2 {
		key, ok := sanitized[i].(string)
		if !ok {
			continue
		}
		if isSensitiveKey(key) {
			sanitized[i+1] = masked
			continue
		}
		if s, ok := sanitized[i+1].(string); ok && isSensitiveValue(s) {
			sanitized[i+1] = maskValue(s)
		}
	}

	return sanitized
}

func isSensitiveKey(key string) bool {
	lowerKey := strings.ToLower(key)
	for _, pattern := range sensitiveKeyPatterns {
		if lowerKey == pattern ||
			strings.HasPrefix(lowerKey, pattern+"_") ||
			strings.HasSuffix(lowerKey, "_"+pattern) {
			return true
		}
	}
	return false
}

func isSensitiveValue(s string) bool {
	return tokenValuePattern.MatchString(s) || authValuePattern.MatchString(s)
}

// maskValue はプレフィックスを残してマスクする
func maskValue(s string) string {
	if i := strings.Index(s, "_"); i > 0 && tokenValuePattern.MatchString(s) {
		return s[:i+1] + masked
	}
	if i := strings.Index(s, " "); i > 0 {
		return s[:i+1] + masked
	}
	return masked
}
