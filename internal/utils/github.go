package utils

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/douhashi/gzlabeler/internal/github"
)

var (
	httpsPattern = regexp.MustCompile(`^https://github\.com/([^/]+)/([^/]+?)(?:\.git)?/?$`)
	sshPattern   = regexp.MustCompile(`^(?:ssh://)?git@github\.com[:/]([^/]+)/([^/]+?)(?:\.git)?$`)
)

// ParseGitHubURL はGitHubのURLからowner/repo情報を抽出する
// 以下の形式に対応:
// - https://github.com/owner/repo.git
// - https://github.com/owner/repo
// - git@github.com:owner/repo.git
// - ssh://git@github.com/owner/repo.git
func ParseGitHubURL(url string) (github.RepoRef, error) {
	url = strings.TrimSpace(url)

	for _, pattern := range []*regexp.Regexp{httpsPattern, sshPattern} {
		if matches := pattern.FindStringSubmatch(url); len(matches) == 3 {
			return github.RepoRef{
				Owner: matches[1],
				Repo:  strings.TrimSuffix(matches[2], ".git"),
			}, nil
		}
	}

	return github.RepoRef{}, fmt.Errorf("invalid GitHub URL format: %s", url)
}
