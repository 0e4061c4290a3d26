package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/douhashi/gzlabeler/internal/matcher"
	"github.com/douhashi/gzlabeler/internal/train"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// clearEnv はテスト中に設定へ影響する環境変数を空にする
func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"GITHUB_TOKEN",
		"INPUT_GITHUB-TOKEN",
		"GZLABELER_GITHUB_TOKEN",
		"GZLABELER_MATCH_COMPARISON",
		"GZLABELER_MATCH_CONCURRENCY",
		"GZLABELER_MANIFEST_REF",
	} {
		t.Setenv(key, "")
	}
}

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "gzlabeler.yml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestNewConfig(t *testing.T) {
	t.Run("正常系: デフォルト設定でConfigを作成できる", func(t *testing.T) {
		cfg := NewConfig()
		require.NotNil(t, cfg)

		assert.Equal(t, 3, cfg.GitHub.MaxRetries)
		assert.Equal(t, time.Second, cfg.GitHub.RetryBaseDelay)
		assert.Equal(t, "ignition-tooling", cfg.Manifest.Owner)
		assert.Equal(t, "gazebodistro", cfg.Manifest.Repo)
		assert.Equal(t, "exact", cfg.Match.Comparison)
		assert.True(t, cfg.Match.LegacyRename.Enabled)
		assert.Equal(t, 1, cfg.Match.Concurrency)
		assert.NoError(t, cfg.Validate())
	})

	t.Run("正常系: デフォルトのポリシーとトレイン一覧", func(t *testing.T) {
		cfg := NewConfig()

		policy, err := cfg.Policy()
		require.NoError(t, err)
		assert.Equal(t, matcher.DefaultPolicy(), policy)

		catalog, err := cfg.Catalog()
		require.NoError(t, err)
		assert.Equal(t, train.DefaultCatalog(), catalog)
	})
}

func TestConfig_Load(t *testing.T) {
	tests := []struct {
		name          string
		configContent string
		envVars       map[string]string
		wantErr       bool
		checkFunc     func(*testing.T, *Config)
	}{
		{
			name: "正常系: YAMLファイルから設定を読み込める",
			configContent: `
github:
  token: test-token-from-file
  api_url: https://ghe.example.com/api/v3
  max_retries: 5
  retry_base_delay: 2s
manifest:
  ref: master
match:
  comparison: normalized
  separator: "-"
  legacy_rename:
    enabled: false
  concurrency: 4
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "test-token-from-file", cfg.GitHub.Token)
				assert.Equal(t, "https://ghe.example.com/api/v3", cfg.GitHub.APIURL)
				assert.Equal(t, 5, cfg.GitHub.MaxRetries)
				assert.Equal(t, 2*time.Second, cfg.GitHub.RetryBaseDelay)
				assert.Equal(t, "ignition-tooling", cfg.Manifest.Owner)
				assert.Equal(t, "master", cfg.Manifest.Ref)
				assert.Equal(t, "normalized", cfg.Match.Comparison)
				assert.False(t, cfg.Match.LegacyRename.Enabled)
				assert.Equal(t, "gz", cfg.Match.LegacyRename.From)
				assert.Equal(t, 4, cfg.Match.Concurrency)
			},
		},
		{
			name: "正常系: トレイン一覧はファイルの指定で置き換わる",
			configContent: `
trains:
  collections:
    - name: harmonic
      label: "🌿 harmonic"
`,
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, []train.Definition{{Name: "harmonic", Label: "🌿 harmonic"}}, cfg.Trains.Collections)
				assert.Equal(t, train.DefaultClassics(), cfg.Trains.Classics)
			},
		},
		{
			name: "正常系: 環境変数GITHUB_TOKENが使われる",
			envVars: map[string]string{
				"GITHUB_TOKEN": "env-token",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "env-token", cfg.GitHub.Token)
			},
		},
		{
			name: "正常系: Actionsのinputからトークンを読み込める",
			envVars: map[string]string{
				"INPUT_GITHUB-TOKEN": "input-token",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "input-token", cfg.GitHub.Token)
			},
		},
		{
			name: "正常系: プレフィックス付き環境変数がファイルより優先される",
			configContent: `
github:
  token: file-token
match:
  concurrency: 2
`,
			envVars: map[string]string{
				"GZLABELER_GITHUB_TOKEN":      "prefixed-token",
				"GZLABELER_MATCH_CONCURRENCY": "8",
				"GZLABELER_MANIFEST_REF":      "ci",
			},
			checkFunc: func(t *testing.T, cfg *Config) {
				assert.Equal(t, "prefixed-token", cfg.GitHub.Token)
				assert.Equal(t, 8, cfg.Match.Concurrency)
				assert.Equal(t, "ci", cfg.Manifest.Ref)
			},
		},
		{
			name:          "異常系: 不正なYAMLはエラー",
			configContent: "github: [broken\n",
			wantErr:       true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			clearEnv(t)
			for k, v := range tt.envVars {
				t.Setenv(k, v)
			}

			path := ""
			if tt.configContent != "" {
				path = writeConfig(t, tt.configContent)
			}

			cfg := NewConfig()
			err := cfg.Load(path)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			if tt.checkFunc != nil {
				tt.checkFunc(t, cfg)
			}
		})
	}

	t.Run("異常系: 存在しないファイルはエラー", func(t *testing.T) {
		clearEnv(t)
		cfg := NewConfig()
		err := cfg.Load(filepath.Join(t.TempDir(), "missing.yml"))
		assert.Error(t, err)
	})
}

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name    string
		modify  func(*Config)
		wantErr string
	}{
		{
			name:    "異常系: max_retriesが0",
			modify:  func(c *Config) { c.GitHub.MaxRetries = 0 },
			wantErr: "github.max_retries",
		},
		{
			name:    "異常系: retry_base_delayが負",
			modify:  func(c *Config) { c.GitHub.RetryBaseDelay = -time.Second },
			wantErr: "github.retry_base_delay",
		},
		{
			name:    "異常系: manifest.repoが空",
			modify:  func(c *Config) { c.Manifest.Repo = "" },
			wantErr: "manifest.owner and manifest.repo",
		},
		{
			name:    "異常系: concurrencyが0",
			modify:  func(c *Config) { c.Match.Concurrency = 0 },
			wantErr: "match.concurrency",
		},
		{
			name:    "異常系: 不明な比較方式",
			modify:  func(c *Config) { c.Match.Comparison = "semver" },
			wantErr: "match.comparison",
		},
		{
			name: "異常系: 正規化で区切り文字が空",
			modify: func(c *Config) {
				c.Match.Comparison = "normalized"
				c.Match.Separator = ""
			},
			wantErr: "match.separator",
		},
		{
			name:    "異常系: フォールバック有効でfromが空",
			modify:  func(c *Config) { c.Match.LegacyRename.From = "" },
			wantErr: "match.legacy_rename.from",
		},
		{
			name: "異常系: ラベルの無いトレイン",
			modify: func(c *Config) {
				c.Trains.Classics = []train.Definition{{Name: "gazebo9"}}
			},
			wantErr: "trains.classics[0]",
		},
		{
			name: "異常系: トレインが1つも無い",
			modify: func(c *Config) {
				c.Trains.Collections = nil
				c.Trains.Classics = nil
			},
			wantErr: "at least one train",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewConfig()
			tt.modify(cfg)

			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}

	t.Run("正常系: フォールバック無効ならfromは空でもよい", func(t *testing.T) {
		cfg := NewConfig()
		cfg.Match.LegacyRename = LegacyRenameConfig{}
		assert.NoError(t, cfg.Validate())
	})
}

func TestConfig_RetryStrategy(t *testing.T) {
	t.Run("正常系: max_retriesが1ならリトライしない", func(t *testing.T) {
		cfg := NewConfig()
		cfg.GitHub.MaxRetries = 1
		assert.Equal(t, 1, cfg.RetryStrategy().MaxAttempts)
	})

	t.Run("正常系: 設定値が反映される", func(t *testing.T) {
		cfg := NewConfig()
		cfg.GitHub.MaxRetries = 4
		cfg.GitHub.RetryBaseDelay = 50 * time.Millisecond

		rs := cfg.RetryStrategy()
		assert.Equal(t, 4, rs.MaxAttempts)
		assert.Equal(t, 50*time.Millisecond, rs.InitialDelay)
	})
}

func TestConfig_ClientOptions(t *testing.T) {
	cfg := NewConfig()
	assert.Len(t, cfg.ClientOptions(), 2)

	cfg.GitHub.APIURL = "https://ghe.example.com/api/v3"
	assert.Len(t, cfg.ClientOptions(), 3)
	assert.Equal(t, "ignition-tooling/gazebodistro", cfg.ManifestSource().String())
}
