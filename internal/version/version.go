package version

import (
	"fmt"
	"runtime/debug"
)

// Name はバイナリ名
const Name = "gzlabeler"

var (
	// Version はビルド時に設定されるバージョン情報
	Version = "dev"
	// Commit はビルド時に設定されるGitコミットハッシュ
	Commit = "none"
	// Date はビルド時に設定されるビルド日時
	Date = "unknown"
)

// Info はバージョン情報を保持する構造体
type Info struct {
	Version string
	Commit  string
	Date    string
}

// String は "dev (commit none, built unknown)" 形式で返す
func (i Info) String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", i.Version, i.Commit, i.Date)
}

// Get は現在のバージョン情報を返す。
// ldflagsで設定されていない項目は `go install` 時のビルド情報で補う
func Get() Info {
	return resolve(Info{Version: Version, Commit: Commit, Date: Date}, debug.ReadBuildInfo)
}

func resolve(info Info, read func() (*debug.BuildInfo, bool)) Info {
	bi, ok := read()
	if !ok || bi == nil {
		return info
	}

	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" && s.Value != "" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" && s.Value != "" {
				info.Date = s.Value
			}
		}
	}
	return info
}
