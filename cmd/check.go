package cmd

import (
	"errors"
	"fmt"

	"github.com/douhashi/gzlabeler/internal/action"
	"github.com/douhashi/gzlabeler/internal/utils"
	"github.com/spf13/cobra"
)

// gitRunner はライブラリ名の検出に使うgitコマンド。テストで差し替える
var gitRunner utils.GitRunner = utils.RunGit

func newCheckCmd() *cobra.Command {
	var (
		library string
		branch  string
	)

	cmd := &cobra.Command{
		Use:   "check",
		Short: "ライブラリとブランチに一致するラベルを表示",
		Long: `イベントを使わずに、指定したライブラリとブランチに一致するラベルを1行ずつ表示します。
ラベルの付与は行いません。マニフェストの取得にはGITHUB_TOKENが必要です。
--libraryを省略した場合はカレントディレクトリのoriginリモートのリポジトリ名を使用します。`,
		Example: `  gzlabeler check --library gz-launch --branch main`,
		RunE: func(cmd *cobra.Command, args []string) error {
			if library == "" {
				repo, err := utils.DetectRepository(cmd.Context(), gitRunner, ".")
				if err != nil {
					return fmt.Errorf("--library is required outside of a GitHub clone: %w", err)
				}
				library = repo.Repo
				appLog.Debug("library detected from origin", "library", library)
			}

			events := action.StaticEventSource{Context: &action.PullRequestContext{
				Library: library,
				Target:  branch,
			}}

			runner, err := newRunner(appConfig, appLog, events, action.WithDryRun(true))
			if err != nil {
				return err
			}

			outcome, err := runner.Run(cmd.Context())
			if err != nil {
				return err
			}

			switch o := outcome.(type) {
			case action.MissingCredential:
				return errors.New("GitHub token is required: set GITHUB_TOKEN")
			case action.Ran:
				for _, label := range o.Labels.Labels() {
					fmt.Fprintln(cmd.OutOrStdout(), label)
				}
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&library, "library", "l", "", "ライブラリ名 (例: gz-math)")
	cmd.Flags().StringVarP(&branch, "branch", "b", "", "ブランチ名 (例: gz-math7)")
	_ = cmd.MarkFlagRequired("branch")

	return cmd
}
