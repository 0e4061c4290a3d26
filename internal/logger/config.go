package logger

import (
	"os"
	"strings"
)

// ConfigFromEnv は環境変数から設定を読み込む
func ConfigFromEnv() *Config {
	config := &Config{
		Level:  "info",
		Format: "text",
	}

	// GitHub Actionsのデバッグログ有効化 (RUNNER_DEBUG=1) もDEBUGと同様に扱う
	if isTrue(os.Getenv("DEBUG")) || isTrue(os.Getenv("RUNNER_DEBUG")) {
		config.Level = "debug"
	}

	// LOG_LEVELはDEBUGより優先
	if level := os.Getenv("LOG_LEVEL"); level != "" {
		config.Level = strings.ToLower(level)
	}

	if format := os.Getenv("LOG_FORMAT"); format != "" {
		config.Format = strings.ToLower(format)
	}

	return config
}

// NewFromEnv は環境変数から設定を読み込んでロガーを作成する
func NewFromEnv(opts ...Option) (Logger, error) {
	config := ConfigFromEnv()
	return New(append([]Option{
		WithLevel(config.Level),
		WithFormat(config.Format),
	}, opts...)...)
}

func isTrue(s string) bool {
	s = strings.ToLower(s)
	return s == "true" || s == "1" || s == "yes" || s == "on"
}
