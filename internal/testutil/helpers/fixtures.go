package helpers

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"testing"

	"github.com/google/go-github/v67/github"
)

// ManifestYAML はライブラリ名→バージョンからgazebodistro形式のYAMLを作る
func ManifestYAML(versions map[string]string) string {
	if len(versions) == 0 {
		return "repositories: {}\n"
	}

	libs := make([]string, 0, len(versions))
	for lib := range versions {
		libs = append(libs, lib)
	}
	sort.Strings(libs)

	var b strings.Builder
	b.WriteString("repositories:\n")
	for _, lib := range libs {
		fmt.Fprintf(&b, "  %s:\n    type: git\n    url: https://github.com/gazebosim/%s\n    version: %q\n", lib, lib, versions[lib])
	}
	return b.String()
}

// PullRequestEvent はテスト用のpull_requestイベントを作る
func PullRequestEvent(owner, repo, baseRef string, number int) *github.PullRequestEvent {
	return &github.PullRequestEvent{
		Action: github.String("opened"),
		Number: github.Int(number),
		PullRequest: &github.PullRequest{
			Number: github.Int(number),
			Base: &github.PullRequestBranch{
				Ref: github.String(baseRef),
			},
		},
		Repo: &github.Repository{
			Name:     github.String(repo),
			FullName: github.String(owner + "/" + repo),
			Owner: &github.User{
				Login: github.String(owner),
			},
		},
	}
}

// WriteEventFile はイベントペイロードを一時ファイルに書き出してパスを返す
func WriteEventFile(t *testing.T, payload interface{}) string {
	t.Helper()

	data, err := json.Marshal(payload)
	if err != nil {
		t.Fatalf("failed to marshal event: %v", err)
	}

	path := filepath.Join(t.TempDir(), "event.json")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("failed to write event: %v", err)
	}
	return path
}
