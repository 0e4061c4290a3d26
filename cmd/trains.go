package cmd

import (
	"fmt"

	"github.com/spf13/cobra"
)

func newTrainsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "trains",
		Short: "評価するトレインの一覧を表示",
		Long:  `設定されたリリーストレインを評価順に、種別とマニフェストのパスとともに表示します。`,
		RunE: func(cmd *cobra.Command, args []string) error {
			catalog, err := appConfig.Catalog()
			if err != nil {
				return err
			}

			source := appConfig.ManifestSource()
			fmt.Fprintf(cmd.OutOrStdout(), "マニフェスト: %s\n", source)
			for _, t := range catalog.All() {
				fmt.Fprintf(cmd.OutOrStdout(), "  %-10s %-10s %-26s %s\n", t.Name, t.Kind, t.ManifestPath(), t.Label)
			}
			return nil
		},
	}
	return cmd
}
