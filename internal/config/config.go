package config

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/douhashi/gzlabeler/internal/github"
	"github.com/douhashi/gzlabeler/internal/matcher"
	"github.com/douhashi/gzlabeler/internal/train"
	"github.com/spf13/viper"
)

// EnvPrefix は環境変数のプレフィックス
const EnvPrefix = "GZLABELER"

// Config はアプリケーション全体の設定
type Config struct {
	GitHub   GitHubConfig   `mapstructure:"github"`
	Manifest ManifestConfig `mapstructure:"manifest"`
	Match    MatchConfig    `mapstructure:"match"`
	Trains   TrainsConfig   `mapstructure:"trains"`
}

// GitHubConfig はGitHub関連の設定
type GitHubConfig struct {
	Token          string        `mapstructure:"token"`
	APIURL         string        `mapstructure:"api_url"`
	MaxRetries     int           `mapstructure:"max_retries"`
	RetryBaseDelay time.Duration `mapstructure:"retry_base_delay"`
}

// ManifestConfig はマニフェストを保持するリポジトリの設定
type ManifestConfig struct {
	Owner string `mapstructure:"owner"`
	Repo  string `mapstructure:"repo"`
	Ref   string `mapstructure:"ref"`
}

// MatchConfig はバージョン判定の設定
type MatchConfig struct {
	Comparison   string             `mapstructure:"comparison"`
	Separator    string             `mapstructure:"separator"`
	LegacyRename LegacyRenameConfig `mapstructure:"legacy_rename"`
	Concurrency  int                `mapstructure:"concurrency"`
}

// LegacyRenameConfig は旧名称へのフォールバック設定
type LegacyRenameConfig struct {
	Enabled bool   `mapstructure:"enabled"`
	From    string `mapstructure:"from"`
	To      string `mapstructure:"to"`
}

// TrainsConfig は評価するトレインの一覧
type TrainsConfig struct {
	Collections []train.Definition `mapstructure:"collections"`
	Classics    []train.Definition `mapstructure:"classics"`
}

// NewConfig は新しいConfigを作成する
func NewConfig() *Config {
	return &Config{
		GitHub: GitHubConfig{
			MaxRetries:     3,
			RetryBaseDelay: 1 * time.Second,
		},
		Manifest: ManifestConfig{
			Owner: github.DefaultManifestSource.Owner,
			Repo:  github.DefaultManifestSource.Repo,
		},
		Match: MatchConfig{
			Comparison: matcher.ComparisonExact.String(),
			Separator:  "-",
			LegacyRename: LegacyRenameConfig{
				Enabled: true,
				From:    "gz",
				To:      "ign",
			},
			Concurrency: 1,
		},
		Trains: TrainsConfig{
			Collections: train.DefaultCollections(),
			Classics:    train.DefaultClassics(),
		},
	}
}

// Load は設定ファイルと環境変数から設定を読み込む
// configPathが空の場合は環境変数とデフォルト値のみを使用する
func (c *Config) Load(configPath string) error {
	v := viper.New()

	// 環境変数の設定
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// GITHUB_TOKENとActionsのinputもサポート
	if err := v.BindEnv("github.token", EnvPrefix+"_GITHUB_TOKEN", "GITHUB_TOKEN", "INPUT_GITHUB-TOKEN"); err != nil {
		return err
	}

	// デフォルト値の設定
	v.SetDefault("github.token", c.GitHub.Token)
	v.SetDefault("github.api_url", c.GitHub.APIURL)
	v.SetDefault("github.max_retries", c.GitHub.MaxRetries)
	v.SetDefault("github.retry_base_delay", c.GitHub.RetryBaseDelay)
	v.SetDefault("manifest.owner", c.Manifest.Owner)
	v.SetDefault("manifest.repo", c.Manifest.Repo)
	v.SetDefault("manifest.ref", c.Manifest.Ref)
	v.SetDefault("match.comparison", c.Match.Comparison)
	v.SetDefault("match.separator", c.Match.Separator)
	v.SetDefault("match.legacy_rename.enabled", c.Match.LegacyRename.Enabled)
	v.SetDefault("match.legacy_rename.from", c.Match.LegacyRename.From)
	v.SetDefault("match.legacy_rename.to", c.Match.LegacyRename.To)
	v.SetDefault("match.concurrency", c.Match.Concurrency)

	// 設定ファイルを読み込む
	if configPath != "" {
		v.SetConfigFile(configPath)
		if err := v.ReadInConfig(); err != nil {
			return fmt.Errorf("failed to read config file: %w", err)
		}
	}

	// リストは要素単位でマージされるため、指定があれば置き換える
	if v.IsSet("trains.collections") {
		c.Trains.Collections = nil
	}
	if v.IsSet("trains.classics") {
		c.Trains.Classics = nil
	}

	// 設定を構造体にマッピング
	if err := v.Unmarshal(c); err != nil {
		return fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return nil
}

// Validate は設定の妥当性を検証する
// トークンの有無はここでは検証しない
func (c *Config) Validate() error {
	if c.GitHub.MaxRetries < 1 {
		return errors.New("github.max_retries must be at least 1")
	}
	if c.GitHub.RetryBaseDelay < 0 {
		return errors.New("github.retry_base_delay must not be negative")
	}
	if c.Manifest.Owner == "" || c.Manifest.Repo == "" {
		return errors.New("manifest.owner and manifest.repo are required")
	}
	if c.Match.Concurrency < 1 {
		return errors.New("match.concurrency must be at least 1")
	}
	if _, err := c.Policy(); err != nil {
		return err
	}
	if _, err := c.Catalog(); err != nil {
		return err
	}
	return nil
}

// Policy は設定からMatchPolicyを作成する
func (c *Config) Policy() (matcher.MatchPolicy, error) {
	comparison, err := matcher.ParseComparison(c.Match.Comparison)
	if err != nil {
		return matcher.MatchPolicy{}, fmt.Errorf("match.comparison: %w", err)
	}
	if comparison == matcher.ComparisonNormalized && c.Match.Separator == "" {
		return matcher.MatchPolicy{}, errors.New("match.separator is required for normalized comparison")
	}
	if c.Match.LegacyRename.Enabled && c.Match.LegacyRename.From == "" {
		return matcher.MatchPolicy{}, errors.New("match.legacy_rename.from is required when enabled")
	}

	return matcher.MatchPolicy{
		Comparison: comparison,
		Separator:  c.Match.Separator,
		LegacyRename: matcher.LegacyRename{
			Enabled: c.Match.LegacyRename.Enabled,
			From:    c.Match.LegacyRename.From,
			To:      c.Match.LegacyRename.To,
		},
	}, nil
}

// Catalog は設定からトレイン一覧を作成する
func (c *Config) Catalog() (train.Catalog, error) {
	catalog, err := train.NewCatalog(c.Trains.Collections, c.Trains.Classics)
	if err != nil {
		return train.Catalog{}, fmt.Errorf("trains.%w", err)
	}
	if len(catalog.All()) == 0 {
		return train.Catalog{}, errors.New("at least one train is required")
	}
	return catalog, nil
}

// RetryStrategy は設定からGitHub APIのリトライ戦略を作成する
func (c *Config) RetryStrategy() github.RetryStrategy {
	if c.GitHub.MaxRetries <= 1 {
		return github.NoRetry()
	}
	return github.NewRetryStrategy(c.GitHub.MaxRetries, c.GitHub.RetryBaseDelay)
}

// ManifestSource はマニフェストを取得するリポジトリを返す
func (c *Config) ManifestSource() github.RepoRef {
	return github.RepoRef{Owner: c.Manifest.Owner, Repo: c.Manifest.Repo}
}

// ClientOptions は設定からGitHubクライアントのオプションを作成する
func (c *Config) ClientOptions() []github.ClientOption {
	opts := []github.ClientOption{
		github.WithManifestSource(c.ManifestSource(), c.Manifest.Ref),
		github.WithRetryStrategy(c.RetryStrategy()),
	}
	if c.GitHub.APIURL != "" {
		opts = append(opts, github.WithBaseURL(c.GitHub.APIURL))
	}
	return opts
}
