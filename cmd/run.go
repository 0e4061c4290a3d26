package cmd

import (
	"github.com/douhashi/gzlabeler/internal/action"
	"github.com/spf13/cobra"
)

// eventSource はrunで読み込むイベント。テストで差し替える
var eventSource = func() action.EventSource {
	return action.NewFileEventSourceFromEnv()
}

func newRunCmd() *cobra.Command {
	var dryRun bool

	cmd := &cobra.Command{
		Use:   "run",
		Short: "プルリクエストにラベルを付与",
		Long: `GitHub Actionsのpull_requestイベントを読み込み、ベースブランチに一致する
リリーストレインのラベルをプルリクエストに付与します。

イベントはGITHUB_EVENT_PATH、トークンはGITHUB_TOKENまたはinputのgithub-tokenから取得します。
失敗した場合は::error::コマンドを出力して終了コード1で終了します。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			wf := action.NewWorkflow(cmd.OutOrStdout())

			runner, err := newRunner(appConfig, appLog, eventSource(),
				action.WithDryRun(dryRun),
				action.WithWorkflow(wf),
			)
			if err != nil {
				wf.Error(err.Error())
				return err
			}

			outcome, err := runner.Run(cmd.Context())
			if err != nil {
				appLog.Error("run failed", "error", err)
				wf.Error(err.Error())
				return err
			}

			appLog.Info("run finished", "outcome", outcome.String())
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "ラベルを付与せずに判定のみ行う")

	return cmd
}
