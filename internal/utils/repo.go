package utils

import (
	"bytes"
	"context"
	"fmt"
	"os/exec"
	"strings"

	"github.com/douhashi/gzlabeler/internal/github"
)

// RemoteError はリモートリポジトリの検出に失敗したことを表す
type RemoteError struct {
	Step  string // どの段階で失敗したか
	Cause error
}

func (e *RemoteError) Error() string {
	return fmt.Sprintf("failed to detect repository (%s): %v", e.Step, e.Cause)
}

func (e *RemoteError) Unwrap() error {
	return e.Cause
}

// GitRunner はgitコマンドを実行し、標準出力を返す
type GitRunner func(ctx context.Context, dir string, args ...string) (string, error)

// RunGit はgitコマンドを実行する
func RunGit(ctx context.Context, dir string, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = dir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		if s := strings.TrimSpace(stderr.String()); s != "" {
			return "", fmt.Errorf("git %s failed: %w\nstderr: %s", strings.Join(args, " "), err, s)
		}
		return "", fmt.Errorf("git %s failed: %w", strings.Join(args, " "), err)
	}
	return strings.TrimSpace(stdout.String()), nil
}

// DetectRepository はdirのoriginリモートからGitHubリポジトリを取得する
// ローカル実行でライブラリ名を省略した場合に使用する
func DetectRepository(ctx context.Context, run GitRunner, dir string) (github.RepoRef, error) {
	if run == nil {
		run = RunGit
	}

	url, err := run(ctx, dir, "remote", "get-url", "origin")
	if err != nil {
		return github.RepoRef{}, &RemoteError{Step: "remote_url", Cause: err}
	}

	repo, err := ParseGitHubURL(url)
	if err != nil {
		return github.RepoRef{}, &RemoteError{Step: "url_parsing", Cause: err}
	}
	return repo, nil
}
