package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/douhashi/gzlabeler/internal/config"
	"github.com/douhashi/gzlabeler/internal/logger"
	"github.com/douhashi/gzlabeler/internal/version"
	"github.com/spf13/cobra"
)

var (
	cfgFile   string
	verbose   bool
	rootCmd   *cobra.Command
	appLog    logger.Logger
	appConfig *config.Config
)

func init() {
	rootCmd = NewRootCmd()
}

// NewRootCmd creates a new root command with all subcommands
func NewRootCmd() *cobra.Command {
	cmd := newRootCmd()
	// サブコマンドを追加
	cmd.AddCommand(newRunCmd())
	cmd.AddCommand(newCheckCmd())
	cmd.AddCommand(newTrainsCmd())
	return cmd
}

func newRootCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   version.Name,
		Short: "リリーストレインのラベルを付与するツール",
		Long: `gzlabelerは、プルリクエストのベースブランチとgazebodistroのマニフェストを照合し、
該当するリリーストレインのラベルをプルリクエストに付与するツールです。`,
		Version:      version.Get().String(),
		SilenceUsage: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			// 設定ファイルを先に読み込む
			cfg, err := loadConfig(cfgFile)
			if err != nil {
				return fmt.Errorf("failed to initialize config: %w", err)
			}
			appConfig = cfg

			// ロガーの初期化 (標準出力はワークフローコマンド用)
			if verbose {
				os.Setenv("DEBUG", "true")
			}
			appLog, err = logger.NewFromEnv(logger.WithOutput(cmd.ErrOrStderr()))
			if err != nil {
				return fmt.Errorf("failed to initialize logger: %w", err)
			}

			return nil
		},
	}

	cmd.PersistentFlags().StringVarP(&cfgFile, "config", "c", "", "設定ファイルのパス")
	cmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "詳細出力")

	return cmd
}

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		stop()
		os.Exit(1)
	}
}

func loadConfig(path string) (*config.Config, error) {
	if path == "" {
		path = findConfigFile()
	}

	cfg := config.NewConfig()
	if err := cfg.Load(path); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	return cfg, nil
}
